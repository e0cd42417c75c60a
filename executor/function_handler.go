package executor

import (
	"context"

	"github.com/hupe1980/queryflow/core"
	"github.com/hupe1980/queryflow/internal/util"
)

// HandlerFunc is the function form of an intent handler body.
type HandlerFunc func(ctx context.Context, ec *Context, in *core.Interpretation) (map[string]any, error)

// FunctionHandlerOptions configures a FunctionHandler.
type FunctionHandlerOptions struct {
	// Description explains what the handler does.
	Description string
	// Parameters is the JSON schema the interpretation parameters are
	// validated against. Nil skips validation.
	Parameters map[string]any
}

// FunctionHandler wraps a plain function as a Handler, optionally validating
// interpretation parameters against a JSON schema before invoking it.
type FunctionHandler struct {
	name        string
	description string
	intent      core.Intent
	schema      map[string]any
	fn          HandlerFunc
}

var _ Handler = (*FunctionHandler)(nil)

// NewFunctionHandler creates a Handler from a function.
func NewFunctionHandler(name string, intent core.Intent, fn HandlerFunc, optFns ...func(o *FunctionHandlerOptions)) *FunctionHandler {
	opts := FunctionHandlerOptions{}

	for _, optFn := range optFns {
		optFn(&opts)
	}

	return &FunctionHandler{
		name:        name,
		description: opts.Description,
		intent:      intent,
		schema:      opts.Parameters,
		fn:          fn,
	}
}

// NewFunctionHandlerFromStruct creates a Handler whose parameter schema is
// derived from a plain argument struct via reflection.
func NewFunctionHandlerFromStruct(name string, intent core.Intent, argsStruct any, fn HandlerFunc, optFns ...func(o *FunctionHandlerOptions)) *FunctionHandler {
	h := NewFunctionHandler(name, intent, fn, optFns...)
	h.schema = util.CreateSchema(argsStruct)
	return h
}

// Name returns the handler name.
func (h *FunctionHandler) Name() string { return h.name }

// Description returns the handler description.
func (h *FunctionHandler) Description() string { return h.description }

// Intent returns the intent this handler serves.
func (h *FunctionHandler) Intent() core.Intent { return h.intent }

// Parameters returns the parameter schema, if any.
func (h *FunctionHandler) Parameters() map[string]any { return h.schema }

// Call validates the interpretation parameters against the schema, then
// invokes the wrapped function.
func (h *FunctionHandler) Call(ctx context.Context, ec *Context, in *core.Interpretation) (map[string]any, error) {
	if h.schema != nil {
		if err := util.ValidateParameters(in.Parameters, h.schema); err != nil {
			return nil, NewValidationError(h.name, "invalid parameters", err)
		}
	}

	return h.fn(ctx, ec, in)
}
