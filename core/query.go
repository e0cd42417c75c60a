package core

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// MinQueryLength is the minimum accepted query text length after trimming.
	MinQueryLength = 3
	// MaxQueryLength is the maximum accepted query text length.
	MaxQueryLength = 5000
)

// Query is the validated, immutable input value for interpretation. Length
// bounds are enforced at construction; a Query that exists is a valid Query.
// Create one per inbound request and treat all fields as read-only.
type Query struct {
	ID        string         `json:"id"`
	Text      string         `json:"text"`
	UserID    string         `json:"user_id,omitempty"`
	SessionID string         `json:"session_id,omitempty"`
	Context   map[string]any `json:"context,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// QueryOption mutates construction-time query attributes.
type QueryOption func(q *Query)

// WithUserID attaches the requesting user's identifier.
func WithUserID(userID string) QueryOption {
	return func(q *Query) { q.UserID = userID }
}

// WithSessionID binds the query to a conversational session.
func WithSessionID(sessionID string) QueryOption {
	return func(q *Query) { q.SessionID = sessionID }
}

// WithContext merges the provided key/value pairs into the query context.
func WithContext(ctx map[string]any) QueryOption {
	return func(q *Query) {
		for k, v := range ctx {
			q.Context[k] = v
		}
	}
}

// WithContextValue sets a single context key/value pair.
func WithContextValue(key string, value any) QueryOption {
	return func(q *Query) { q.Context[key] = value }
}

// NewQuery validates and constructs a Query. The text is trimmed before the
// length check; construction fails with ErrTextTooShort / ErrTextTooLong when
// the trimmed text falls outside [MinQueryLength, MaxQueryLength].
func NewQuery(text string, optFns ...QueryOption) (*Query, error) {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) < MinQueryLength {
		return nil, ErrTextTooShort
	}
	if len(trimmed) > MaxQueryLength {
		return nil, ErrTextTooLong
	}

	q := &Query{
		ID:        NewID(),
		Text:      trimmed,
		Context:   map[string]any{},
		CreatedAt: time.Now().UTC(),
	}

	for _, fn := range optFns {
		fn(q)
	}

	return q, nil
}

// HasSessionState reports whether the query carries conversational state
// (a session binding or non-empty context). Drives query type detection.
func (q *Query) HasSessionState() bool {
	return q.SessionID != "" || len(q.Context) > 0
}

// ToMap returns a serialization-friendly dictionary form of the query.
func (q *Query) ToMap() map[string]any {
	ctx := make(map[string]any, len(q.Context))
	for k, v := range q.Context {
		ctx[k] = v
	}
	return map[string]any{
		"id":         q.ID,
		"text":       q.Text,
		"user_id":    q.UserID,
		"session_id": q.SessionID,
		"context":    ctx,
		"created_at": q.CreatedAt.Format(time.RFC3339Nano),
	}
}

// QueryFromMap reconstructs a Query from its dictionary form, re-running text
// validation so a malformed payload cannot smuggle in an invalid Query.
func QueryFromMap(m map[string]any) (*Query, error) {
	text, _ := m["text"].(string)

	q, err := NewQuery(text)
	if err != nil {
		return nil, err
	}

	if id, ok := m["id"].(string); ok && id != "" {
		q.ID = id
	}
	if userID, ok := m["user_id"].(string); ok {
		q.UserID = userID
	}
	if sessionID, ok := m["session_id"].(string); ok {
		q.SessionID = sessionID
	}
	if ctx, ok := m["context"].(map[string]any); ok {
		for k, v := range ctx {
			q.Context[k] = v
		}
	}
	if raw, ok := m["created_at"].(string); ok {
		if ts, err := time.Parse(time.RFC3339Nano, raw); err == nil {
			q.CreatedAt = ts
		}
	}

	return q, nil
}

// NewID generates a new unique identifier for queries and execution results.
func NewID() string { return uuid.NewString() }
