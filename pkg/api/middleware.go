package api

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
)

// apiKeyHeader carries the caller's key on every protected request.
const apiKeyHeader = "X-API-Key"

// requireAPIKey rejects requests whose key header is missing or does not
// match the configured key, and counts every attempt that carried one.
// Keys are compared in constant time.
func requireAPIKey(expectedKey string, metrics *Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(apiKeyHeader)
			if key == "" {
				sendError(w, "Missing "+apiKeyHeader+" header", http.StatusUnauthorized)
				return
			}
			if subtle.ConstantTimeCompare([]byte(key), []byte(expectedKey)) != 1 {
				metrics.RecordAuthRequest(false)
				sendError(w, "Invalid API key", http.StatusUnauthorized)
				return
			}
			metrics.RecordAuthRequest(true)
			next.ServeHTTP(w, r)
		})
	}
}

// sendSuccess writes data inside the standard response envelope.
func sendSuccess(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: data})
}

// sendError writes a failure envelope with the given status.
func sendError(w http.ResponseWriter, message string, statusCode int) {
	writeJSON(w, statusCode, APIResponse{Success: false, Error: message})
}

func writeJSON(w http.ResponseWriter, status int, resp APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}
