package executor

import (
	"context"
	"fmt"

	"github.com/hupe1980/queryflow/core"
)

// Handler error codes.
const (
	// ErrCodeValidation marks interpretation parameters rejected by a handler.
	ErrCodeValidation = "VALIDATION_ERROR"
	// ErrCodeExecution marks a failure inside the handler itself.
	ErrCodeExecution = "EXECUTION_ERROR"
	// ErrCodeCollaborator marks a failure raised by a collaborator service.
	ErrCodeCollaborator = "COLLABORATOR_ERROR"
)

// HandlerError provides structured error information for handler failures.
type HandlerError struct {
	HandlerName string // Handler that produced the error
	Code        string // Error code for programmatic handling
	Message     string // Human-readable error message
	Cause       error  // Underlying error, if any
}

// Error implements the error interface.
func (e *HandlerError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("handler %s [%s]: %s: %v", e.HandlerName, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("handler %s [%s]: %s", e.HandlerName, e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *HandlerError) Unwrap() error { return e.Cause }

// NewValidationError creates a HandlerError for parameter validation failures.
func NewValidationError(handler, message string, cause error) *HandlerError {
	return &HandlerError{HandlerName: handler, Code: ErrCodeValidation, Message: message, Cause: cause}
}

// NewExecutionError creates a HandlerError for failures inside the handler.
func NewExecutionError(handler, message string, cause error) *HandlerError {
	return &HandlerError{HandlerName: handler, Code: ErrCodeExecution, Message: message, Cause: cause}
}

// NewCollaboratorError creates a HandlerError for collaborator call failures.
func NewCollaboratorError(handler, message string, cause error) *HandlerError {
	return &HandlerError{HandlerName: handler, Code: ErrCodeCollaborator, Message: message, Cause: cause}
}

// Handler is the contract for executing a single intent. Implementations must
// be safe for concurrent use; the executor may run them from multiple
// goroutines.
type Handler interface {
	// Name returns the unique handler name.
	Name() string

	// Description explains what the handler does.
	Description() string

	// Intent returns the intent this handler serves.
	Intent() core.Intent

	// Parameters returns the JSON schema the interpretation parameters are
	// validated against before Call runs. A nil schema skips validation.
	Parameters() map[string]any

	// Call performs the execution. The returned payload is merged into the
	// execution result on success; a returned error fails the execution with
	// the error's message.
	Call(ctx context.Context, ec *Context, in *core.Interpretation) (map[string]any, error)
}
