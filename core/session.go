package core

import (
	"sync"
	"time"
)

// QueryRecord is one entry in a session's interpretation history.
type QueryRecord struct {
	QueryID         string    `json:"query_id"`
	Text            string    `json:"text"`
	Intent          Intent    `json:"intent"`
	ConfidenceScore float64   `json:"confidence_score"`
	Executed        bool      `json:"executed"`
	At              time.Time `json:"at"`
}

// Session represents a conversational container tracking mutable key/value
// state plus an ordered history of interpreted queries. It is safe for
// concurrent access.
//
// Contract:
//   - State mutations update the Updated timestamp
//   - GetRecords returns a defensive copy to avoid external mutation
//   - Clone performs deep copies of maps/slices for safe divergence.
type Session struct {
	ID       string            `json:"id"`
	State    map[string]any    `json:"state"`
	Records  []QueryRecord     `json:"records"`
	Created  time.Time         `json:"created"`
	Updated  time.Time         `json:"updated"`
	Metadata map[string]string `json:"metadata"`
	mu       sync.RWMutex
}

// NewSession creates a new session with the given ID.
func NewSession(id string) *Session {
	now := time.Now()
	return &Session{ID: id, State: map[string]any{}, Records: []QueryRecord{}, Created: now, Updated: now, Metadata: map[string]string{}}
}

// GetState returns the value and existence flag for a state key.
func (s *Session) GetState(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.State[key]
	return v, ok
}

// SetState sets a key/value pair in session state updating the Updated timestamp.
func (s *Session) SetState(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.State[key] = value
	s.Updated = time.Now()
}

// MergeState merges the provided key/value pairs into State.
func (s *Session) MergeState(delta map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range delta {
		s.State[k] = v
	}
	s.Updated = time.Now()
}

// StateSnapshot returns a shallow copy of the session state.
func (s *Session) StateSnapshot() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]any, len(s.State))
	for k, v := range s.State {
		out[k] = v
	}
	return out
}

// AddRecord appends a query record to the history updating the Updated timestamp.
func (s *Session) AddRecord(r QueryRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Records = append(s.Records, r)
	s.Updated = time.Now()
}

// GetRecords returns a defensive copy of the full history.
func (s *Session) GetRecords() []QueryRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := make([]QueryRecord, len(s.Records))
	copy(records, s.Records)
	return records
}

// LastRecord returns the most recent query record, if any.
func (s *Session) LastRecord() (QueryRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.Records) == 0 {
		return QueryRecord{}, false
	}
	return s.Records[len(s.Records)-1], true
}

// Clone returns a deep copy of the session safe for independent mutation.
func (s *Session) Clone() *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	clone := &Session{ID: s.ID, State: make(map[string]any, len(s.State)), Records: make([]QueryRecord, len(s.Records)), Created: s.Created, Updated: s.Updated, Metadata: make(map[string]string, len(s.Metadata))}
	for k, v := range s.State {
		clone.State[k] = v
	}
	copy(clone.Records, s.Records)
	for k, v := range s.Metadata {
		clone.Metadata[k] = v
	}
	return clone
}

// SessionStore persists sessions and their evolving state / query history.
type SessionStore interface {
	Create(id string) (*Session, error)
	Get(id string) (*Session, error)
	AppendRecord(sessionID string, record QueryRecord) error
	ApplyDelta(sessionID string, delta map[string]any) error
}
