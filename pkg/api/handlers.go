package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/finforge/nacha/pkg/ach"
	"github.com/finforge/nacha/pkg/archive"
)

// Server holds the API server state
type Server struct {
	sessions *sessionRegistry
	archive  *archive.Archive
	config   ServerConfig
	metrics  *Metrics
}

// NewServer creates a new API server
func NewServer(fileArchive *archive.Archive, config ServerConfig, metrics *Metrics) *Server {
	return &Server{
		sessions: newSessionRegistry(),
		archive:  fileArchive,
		config:   config,
		metrics:  metrics,
	}
}

// handleHealth reports service health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.metrics.RecordHealthCheck(true)
	sendSuccess(w, map[string]string{"status": "healthy"})
}

// handleCreateFile opens a new draft file, filling header values from the
// request with configured defaults underneath.
func (s *Server) handleCreateFile(w http.ResponseWriter, r *http.Request) {
	var req CreateFileRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.metrics.RecordBuildOperation("create_file", false)
			sendError(w, "Invalid JSON in request body", http.StatusBadRequest)
			return
		}
	}

	defaults := s.config.FileDefaults
	file, err := ach.NewFile(ach.FileConfig{
		IDModifier:      orDefault(req.IDModifier, defaults.IDModifier),
		Destination:     orDefault(req.Destination, defaults.Destination),
		DestinationName: orDefault(req.DestinationName, defaults.DestinationName),
		Origin:          orDefault(req.Origin, defaults.Origin),
		OriginName:      orDefault(req.OriginName, defaults.OriginName),
		ReferenceCode:   orDefault(req.ReferenceCode, defaults.ReferenceCode),
		BlockingFactor:  orDefaultInt(req.BlockingFactor, defaults.BlockingFactor),
	})
	if err != nil {
		s.metrics.RecordBuildOperation("create_file", false)
		sendError(w, fmt.Sprintf("Failed to create file: %v", err), http.StatusBadRequest)
		return
	}

	id := s.sessions.add(file)
	s.metrics.RecordBuildOperation("create_file", true)
	sendSuccess(w, FileStatus{ID: id})
}

// handleListFiles lists every build session.
func (s *Server) handleListFiles(w http.ResponseWriter, r *http.Request) {
	sendSuccess(w, s.sessions.list())
}

// handleGetFile reports one session's status.
func (s *Server) handleGetFile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var status FileStatus
	found, _ := s.sessions.with(id, func(sess *session) error {
		status = FileStatus{
			ID:         id,
			Finalized:  sess.file.Finalized(),
			BatchCount: sess.batchCount(),
			EntryCount: sess.entryCount(),
		}
		return nil
	})
	if !found {
		sendError(w, "File not found", http.StatusNotFound)
		return
	}
	sendSuccess(w, status)
}

// handleDeleteFile discards a draft session.
func (s *Server) handleDeleteFile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !s.sessions.remove(id) {
		sendError(w, "File not found", http.StatusNotFound)
		return
	}
	sendSuccess(w, map[string]string{"id": id})
}

// handleCreateBatch adds a draft batch to a file session.
func (s *Server) handleCreateBatch(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req CreateBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.metrics.RecordBuildOperation("add_batch", false)
		sendError(w, "Invalid JSON in request body", http.StatusBadRequest)
		return
	}

	effectiveDate := time.Now()
	if req.EffectiveDate != "" {
		parsed, err := time.Parse("2006-01-02", req.EffectiveDate)
		if err != nil {
			s.metrics.RecordBuildOperation("add_batch", false)
			sendError(w, "Invalid effective_date, want YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		effectiveDate = parsed
	}

	defaults := s.config.BatchDefaults
	var status BatchStatus
	found, err := s.sessions.with(id, func(sess *session) error {
		if sess.file.Finalized() {
			return ach.ErrFileFinalized
		}
		batch, err := ach.NewBatch(ach.BatchConfig{
			ServiceCode:   orDefault(req.ServiceCode, ach.ServiceCreditsOnly),
			ClassCode:     orDefault(req.ClassCode, ach.EntryClassPPD),
			CompanyName:   orDefault(req.CompanyName, defaults.CompanyName),
			Description:   req.Description,
			CompanyID:     orDefault(req.CompanyID, defaults.CompanyID),
			ODFIID:        orDefault(req.ODFIID, defaults.ODFIID),
			EffectiveDate: effectiveDate,
		})
		if err != nil {
			return err
		}
		sess.batches = append(sess.batches, batch)
		status = BatchStatus{FileID: id, Batch: len(sess.batches)}
		return nil
	})
	if !found {
		sendError(w, "File not found", http.StatusNotFound)
		return
	}
	if err != nil {
		s.metrics.RecordBuildOperation("add_batch", false)
		sendError(w, fmt.Sprintf("Failed to add batch: %v", err), buildErrorStatus(err))
		return
	}

	s.metrics.RecordBuildOperation("add_batch", true)
	sendSuccess(w, status)
}

// handleAddEntry adds one entry to a draft batch.
func (s *Server) handleAddEntry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	batchNumber, err := strconv.Atoi(chi.URLParam(r, "batch"))
	if err != nil || batchNumber < 1 {
		sendError(w, "Invalid batch number", http.StatusBadRequest)
		return
	}

	var req AddEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.metrics.RecordBuildOperation("add_entry", false)
		sendError(w, "Invalid JSON in request body", http.StatusBadRequest)
		return
	}

	var status BatchStatus
	found, err := s.sessions.with(id, func(sess *session) error {
		if batchNumber > len(sess.batches) {
			return fmt.Errorf("file has no draft batch %d", batchNumber)
		}
		batch := sess.batches[batchNumber-1]

		entry, err := ach.NewEntry(ach.EntryConfig{
			TransactionCode: orDefault(req.TransactionCode, ach.TransCheckingCredit),
			RDFIID:          req.RDFIID,
			AccountNumber:   req.AccountNumber,
			Amount:          req.Amount,
			ID:              req.ID,
			Name:            req.Name,
		})
		if err != nil {
			return err
		}
		if err := batch.AddEntry(entry); err != nil {
			return err
		}
		status = BatchStatus{FileID: id, Batch: batchNumber, EntryCount: batch.EntryCount()}
		return nil
	})
	if !found {
		sendError(w, "File not found", http.StatusNotFound)
		return
	}
	if err != nil {
		s.metrics.RecordBuildOperation("add_entry", false)
		sendError(w, fmt.Sprintf("Failed to add entry: %v", err), buildErrorStatus(err))
		return
	}

	s.metrics.RecordBuildOperation("add_entry", true)
	sendSuccess(w, status)
}

// handleFinalizeFile moves the draft batches into the file in order,
// finalizes it, and optionally archives the rendered text
// (?archive=true). Finalizing an already-finalized file is a no-op that
// reports the same totals.
func (s *Server) handleFinalizeFile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	wantArchive := r.URL.Query().Get("archive") == "true"

	var result FinalizeResult
	found, err := s.sessions.with(id, func(sess *session) error {
		for _, batch := range sess.batches {
			if err := sess.file.AddBatch(batch); err != nil {
				return err
			}
		}
		sess.batches = nil

		if err := sess.file.Finalize(); err != nil {
			return err
		}

		control := sess.file.Control()
		result = FinalizeResult{ID: id}
		var err error
		if result.BatchCount, err = control.GetInt("batchCount"); err != nil {
			return err
		}
		if result.EntryCount, err = control.GetInt("entryCount"); err != nil {
			return err
		}
		if result.DebitAmount, err = control.GetInt("debitAmount"); err != nil {
			return err
		}
		if result.CreditAmount, err = control.GetInt("creditAmount"); err != nil {
			return err
		}
		if result.BlockCount, err = control.GetInt("blockCount"); err != nil {
			return err
		}

		if wantArchive {
			archiveID, err := s.archive.Put(sess.file)
			if err != nil {
				s.metrics.RecordArchiveOperation("put", false)
				return err
			}
			s.metrics.RecordArchiveOperation("put", true)
			result.ArchiveID = archiveID
		}
		return nil
	})
	if !found {
		sendError(w, "File not found", http.StatusNotFound)
		return
	}
	if err != nil {
		s.metrics.RecordBuildOperation("finalize", false)
		sendError(w, fmt.Sprintf("Failed to finalize file: %v", err), buildErrorStatus(err))
		return
	}

	s.metrics.RecordBuildOperation("finalize", true)
	s.metrics.RecordFileFinalized(result.EntryCount)
	sendSuccess(w, result)
}

// handleGetFileText returns the rendered file as plain text. The session
// must be finalized first.
func (s *Server) handleGetFileText(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var text string
	found, err := s.sessions.with(id, func(sess *session) error {
		rendered, err := sess.file.Render()
		if err != nil {
			return err
		}
		text = rendered
		return nil
	})
	if !found {
		sendError(w, "File not found", http.StatusNotFound)
		return
	}
	if err != nil {
		sendError(w, fmt.Sprintf("Failed to render file: %v", err), buildErrorStatus(err))
		return
	}

	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(text))
}

// handleListArchive lists archived files.
func (s *Server) handleListArchive(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.archive.List()
	if err != nil {
		s.metrics.RecordArchiveOperation("list", false)
		sendError(w, fmt.Sprintf("Failed to list archive: %v", err), http.StatusInternalServerError)
		return
	}
	s.metrics.RecordArchiveOperation("list", true)
	sendSuccess(w, summaries)
}

// handleGetArchived returns one archived file as plain text.
func (s *Server) handleGetArchived(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	entry, err := s.archive.Get(id)
	if errors.Is(err, archive.ErrNotFound) {
		s.metrics.RecordArchiveOperation("get", false)
		sendError(w, "Archived file not found", http.StatusNotFound)
		return
	}
	if err != nil {
		s.metrics.RecordArchiveOperation("get", false)
		sendError(w, fmt.Sprintf("Failed to read archive: %v", err), http.StatusInternalServerError)
		return
	}

	s.metrics.RecordArchiveOperation("get", true)
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(entry.Text))
}

// handleDeleteArchived removes one archived file.
func (s *Server) handleDeleteArchived(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	err := s.archive.Delete(id)
	if errors.Is(err, archive.ErrNotFound) {
		s.metrics.RecordArchiveOperation("delete", false)
		sendError(w, "Archived file not found", http.StatusNotFound)
		return
	}
	if err != nil {
		s.metrics.RecordArchiveOperation("delete", false)
		sendError(w, fmt.Sprintf("Failed to delete archived file: %v", err), http.StatusInternalServerError)
		return
	}
	s.metrics.RecordArchiveOperation("delete", true)
	sendSuccess(w, map[string]string{"id": id})
}

// buildErrorStatus maps construction errors to HTTP statuses: lifecycle
// violations are conflicts, everything else is a bad request.
func buildErrorStatus(err error) int {
	var buildErr *ach.BuildError
	if errors.As(err, &buildErr) {
		return http.StatusConflict
	}
	return http.StatusBadRequest
}

func orDefault(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}

func orDefaultInt(value, fallback int) int {
	if value != 0 {
		return value
	}
	return fallback
}
