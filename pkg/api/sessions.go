package api

import (
	"sync"

	"github.com/segmentio/ksuid"

	"github.com/finforge/nacha/pkg/ach"
)

// session is one in-progress file build. Batches stay in the draft list
// until finalization because adding a batch to a file finalizes the batch;
// entries can only be added while a batch is still a draft.
type session struct {
	file    *ach.File
	batches []*ach.Batch
}

// entryCount counts entries across the draft batches and, after
// finalization, the file's own batches.
func (s *session) entryCount() int {
	n := s.file.EntryCount()
	for _, batch := range s.batches {
		n += batch.EntryCount()
	}
	return n
}

func (s *session) batchCount() int {
	return s.file.BatchCount() + len(s.batches)
}

// sessionRegistry tracks build sessions by id. The ach aggregates are
// deliberately unsynchronized single-owner values, so every mutation of a
// session happens under the registry lock.
type sessionRegistry struct {
	mu       sync.Mutex
	sessions map[string]*session
}

func newSessionRegistry() *sessionRegistry {
	return &sessionRegistry{
		sessions: make(map[string]*session),
	}
}

// add registers a file under a fresh id and returns the id.
func (sr *sessionRegistry) add(file *ach.File) string {
	sr.mu.Lock()
	defer sr.mu.Unlock()

	id := ksuid.New().String()
	sr.sessions[id] = &session{file: file}
	return id
}

// with runs fn against the session while holding the registry lock.
// Returns false if the id is unknown.
func (sr *sessionRegistry) with(id string, fn func(*session) error) (bool, error) {
	sr.mu.Lock()
	defer sr.mu.Unlock()

	s, ok := sr.sessions[id]
	if !ok {
		return false, nil
	}
	return true, fn(s)
}

// remove drops a session. Returns false if the id is unknown.
func (sr *sessionRegistry) remove(id string) bool {
	sr.mu.Lock()
	defer sr.mu.Unlock()

	if _, ok := sr.sessions[id]; !ok {
		return false
	}
	delete(sr.sessions, id)
	return true
}

// list returns the status of every session, in no particular order.
func (sr *sessionRegistry) list() []FileStatus {
	sr.mu.Lock()
	defer sr.mu.Unlock()

	statuses := make([]FileStatus, 0, len(sr.sessions))
	for id, s := range sr.sessions {
		statuses = append(statuses, FileStatus{
			ID:         id,
			Finalized:  s.file.Finalized(),
			BatchCount: s.batchCount(),
			EntryCount: s.entryCount(),
		})
	}
	return statuses
}
