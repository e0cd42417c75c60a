package executor

import (
	"context"
	"time"

	"github.com/hupe1980/queryflow/core"
	"github.com/hupe1980/queryflow/logging"
)

// Context is the handler's window into a running execution. It binds the
// in-flight ExecutionResult to the collaborator Invoker so that every
// collaborator touched is recorded on the result, including executions later
// sealed as timeout or cancelled.
type Context struct {
	result  *core.ExecutionResult
	invoker core.Invoker
	logger  logging.Logger
}

// QueryID returns the identifier of the query being executed.
func (c *Context) QueryID() string { return c.result.QueryID }

// ExecutionID returns the identifier of this execution attempt.
func (c *Context) ExecutionID() string { return c.result.ExecutionID }

// AddResult records an intermediate key/value pair on the execution result.
// Recording fails with ErrResultSealed after the executor seals the result.
func (c *Context) AddResult(key string, value any) error {
	return c.result.AddResult(key, value)
}

// SetMetadata records a metadata key/value pair on the execution result.
func (c *Context) SetMetadata(key string, value any) error {
	return c.result.SetMetadata(key, value)
}

// InvokeCollaborator calls a named collaborator service. The service is
// recorded on the result before the call so interrupted executions still
// report what they touched. Failures come back as COLLABORATOR_ERROR.
func (c *Context) InvokeCollaborator(ctx context.Context, service string, request map[string]any) (map[string]any, error) {
	if c.invoker == nil {
		return nil, &HandlerError{Code: ErrCodeCollaborator, Message: "no collaborator invoker configured", HandlerName: service}
	}

	_ = c.result.AddServiceUsed(service)

	start := time.Now()
	resp, err := c.invoker.Invoke(ctx, service, request)
	dur := time.Since(start)

	if err != nil {
		c.logger.Error("collaborator call failed", "service", service, "duration", dur, "error", err)
		return nil, &HandlerError{Code: ErrCodeCollaborator, Message: "collaborator call failed", HandlerName: service, Cause: err}
	}

	c.logger.Debug("collaborator call completed", "service", service, "duration", dur)
	return resp, nil
}
