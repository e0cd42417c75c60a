package core

import (
	"sync"
	"time"
)

// Status is the terminal outcome classification of an execution.
type Status string

const (
	// StatusPending is the only non-terminal status; every result starts here.
	StatusPending Status = "pending"
	// StatusSuccess marks a fully successful execution.
	StatusSuccess Status = "success"
	// StatusPartialSuccess marks an execution that produced usable results
	// alongside at least one failure.
	StatusPartialSuccess Status = "partial_success"
	// StatusFailed marks an execution that produced no usable result.
	StatusFailed Status = "failed"
	// StatusTimeout marks an execution interrupted by a deadline.
	StatusTimeout Status = "timeout"
	// StatusCancelled marks an execution interrupted by explicit cancellation.
	StatusCancelled Status = "cancelled"
)

// IsTerminal reports whether the status permits no further transitions.
func (s Status) IsTerminal() bool { return s != StatusPending }

// IsSuccessful reports whether the execution produced usable results.
func (s Status) IsSuccessful() bool {
	return s == StatusSuccess || s == StatusPartialSuccess
}

// String returns the wire representation of the status.
func (s Status) String() string { return string(s) }

// ExecutionResult is the terminal artifact of executing an Interpretation.
// It follows a strict state machine: pending -> {success, partial_success,
// failed, timeout, cancelled}, with no transition out of a terminal state.
// The explicit mutators (AddResult, AddServiceUsed) operate only while the
// result is pending; finalizing seals the instance. All methods are safe for
// concurrent use, which lets a handler keep recording collaborators while
// the executor races it against a deadline.
type ExecutionResult struct {
	QueryID       string
	ExecutionID   string
	Status        Status
	Results       map[string]any
	ErrorMessage  string
	ExecutionTime float64 // seconds
	ServicesUsed  []string
	Metadata      map[string]any
	Timestamp     time.Time

	mu sync.Mutex
}

// NewExecutionResult constructs a pending result for the given query.
func NewExecutionResult(queryID string) *ExecutionResult {
	return &ExecutionResult{
		QueryID:      queryID,
		ExecutionID:  NewID(),
		Status:       StatusPending,
		Results:      map[string]any{},
		ServicesUsed: []string{},
		Metadata:     map[string]any{},
		Timestamp:    time.Now().UTC(),
	}
}

// AddResult records a key/value pair in the results payload. Returns
// ErrResultSealed once the result has reached a terminal state.
func (r *ExecutionResult) AddResult(key string, value any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Status.IsTerminal() {
		return ErrResultSealed
	}
	r.Results[key] = value
	return nil
}

// AddServiceUsed appends a collaborator name to the services-used list.
// The list is append-only and de-duplicated. Returns ErrResultSealed once
// the result has reached a terminal state.
func (r *ExecutionResult) AddServiceUsed(service string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Status.IsTerminal() {
		return ErrResultSealed
	}
	for _, s := range r.ServicesUsed {
		if s == service {
			return nil
		}
	}
	r.ServicesUsed = append(r.ServicesUsed, service)
	return nil
}

// SetMetadata records a metadata key/value pair; metadata stays writable for
// the producer until the result is sealed.
func (r *ExecutionResult) SetMetadata(key string, value any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Status.IsTerminal() {
		return ErrResultSealed
	}
	r.Metadata[key] = value
	return nil
}

// Complete merges the payload into the results and seals the result as
// success. Returns ErrResultSealed if already terminal.
func (r *ExecutionResult) Complete(payload map[string]any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Status.IsTerminal() {
		return ErrResultSealed
	}
	for k, v := range payload {
		r.Results[k] = v
	}
	r.Status = StatusSuccess
	return nil
}

// CompletePartial merges the payload and seals the result as
// partial_success, recording why the execution was incomplete.
func (r *ExecutionResult) CompletePartial(payload map[string]any, reason string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Status.IsTerminal() {
		return ErrResultSealed
	}
	for k, v := range payload {
		r.Results[k] = v
	}
	r.Status = StatusPartialSuccess
	r.ErrorMessage = reason
	return nil
}

// Fail seals the result as failed. A failed result requires a non-empty
// error message; an empty message is rejected with ErrEmptyErrorMessage.
func (r *ExecutionResult) Fail(message string) error {
	if message == "" {
		return ErrEmptyErrorMessage
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Status.IsTerminal() {
		return ErrResultSealed
	}
	r.Status = StatusFailed
	r.ErrorMessage = message
	return nil
}

// MarkTimeout seals the result as timeout, retaining whatever results and
// services were recorded before the deadline expired.
func (r *ExecutionResult) MarkTimeout(message string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Status.IsTerminal() {
		return ErrResultSealed
	}
	r.Status = StatusTimeout
	r.ErrorMessage = message
	return nil
}

// MarkCancelled seals the result as cancelled, retaining whatever results
// and services were recorded before the cancellation signal.
func (r *ExecutionResult) MarkCancelled(message string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Status.IsTerminal() {
		return ErrResultSealed
	}
	r.Status = StatusCancelled
	r.ErrorMessage = message
	return nil
}

// SetExecutionTime stamps the wall-clock duration of the execution. The
// executor stamps every result, terminal or not, so this deliberately
// bypasses sealing.
func (r *ExecutionResult) SetExecutionTime(d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ExecutionTime = d.Seconds()
}

// GetStatus returns the current status.
func (r *ExecutionResult) GetStatus() Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.Status
}

// GetErrorMessage returns the recorded error message, if any.
func (r *ExecutionResult) GetErrorMessage() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ErrorMessage
}

// GetExecutionTime returns the stamped wall-clock duration in seconds.
func (r *ExecutionResult) GetExecutionTime() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ExecutionTime
}

// GetResults returns a defensive copy of the results payload.
func (r *ExecutionResult) GetResults() map[string]any {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]any, len(r.Results))
	for k, v := range r.Results {
		out[k] = v
	}
	return out
}

// GetServicesUsed returns a defensive copy of the services-used list.
func (r *ExecutionResult) GetServicesUsed() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string{}, r.ServicesUsed...)
}

// IsSuccessful reports whether the execution produced usable results.
func (r *ExecutionResult) IsSuccessful() bool { return r.GetStatus().IsSuccessful() }

// IsTerminal reports whether the result has been sealed.
func (r *ExecutionResult) IsTerminal() bool { return r.GetStatus().IsTerminal() }

// ToMap returns a serialization-friendly dictionary form of the result.
func (r *ExecutionResult) ToMap() map[string]any {
	r.mu.Lock()
	defer r.mu.Unlock()

	results := make(map[string]any, len(r.Results))
	for k, v := range r.Results {
		results[k] = v
	}
	md := make(map[string]any, len(r.Metadata))
	for k, v := range r.Metadata {
		md[k] = v
	}

	return map[string]any{
		"query_id":               r.QueryID,
		"execution_id":           r.ExecutionID,
		"status":                 r.Status.String(),
		"results":                results,
		"error_message":          r.ErrorMessage,
		"execution_time_seconds": r.ExecutionTime,
		"services_used":          append([]string{}, r.ServicesUsed...),
		"metadata":               md,
		"timestamp":              r.Timestamp.Format(time.RFC3339Nano),
		"is_successful":          r.Status.IsSuccessful(),
	}
}

// ResultFromMap reconstructs an ExecutionResult from its dictionary form.
// The failed-requires-message invariant is re-checked on the way in.
func ResultFromMap(m map[string]any) (*ExecutionResult, error) {
	queryID, _ := m["query_id"].(string)
	r := NewExecutionResult(queryID)

	if id, ok := m["execution_id"].(string); ok && id != "" {
		r.ExecutionID = id
	}
	if results, ok := m["results"].(map[string]any); ok {
		for k, v := range results {
			r.Results[k] = v
		}
	}
	if md, ok := m["metadata"].(map[string]any); ok {
		for k, v := range md {
			r.Metadata[k] = v
		}
	}
	for _, s := range toStrings(m["services_used"]) {
		_ = r.AddServiceUsed(s)
	}
	if raw, ok := m["timestamp"].(string); ok {
		if ts, err := time.Parse(time.RFC3339Nano, raw); err == nil {
			r.Timestamp = ts
		}
	}
	r.ExecutionTime = toFloat(m["execution_time_seconds"])

	message, _ := m["error_message"].(string)
	status, _ := m["status"].(string)
	switch Status(status) {
	case StatusPending, "":
		// stays pending
	case StatusSuccess:
		r.Status = StatusSuccess
	case StatusPartialSuccess:
		r.Status = StatusPartialSuccess
		r.ErrorMessage = message
	case StatusFailed:
		if message == "" {
			return nil, ErrEmptyErrorMessage
		}
		r.Status = StatusFailed
		r.ErrorMessage = message
	case StatusTimeout:
		r.Status = StatusTimeout
		r.ErrorMessage = message
	case StatusCancelled:
		r.Status = StatusCancelled
		r.ErrorMessage = message
	default:
		r.Status = StatusPending
	}

	return r, nil
}
