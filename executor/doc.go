// Package executor dispatches interpretations to intent handlers and owns the
// execution result lifecycle. The Executor never returns a Go error: every
// failure mode (blocked gate, missing handler, handler error, panic, deadline,
// cancellation) is expressed as a terminal ExecutionResult so callers have a
// single artifact to inspect.
//
// Handlers implement the Handler interface or wrap a plain function with
// NewFunctionHandler. They talk to collaborator services exclusively through
// the execution Context, which records every service touched on the result
// even when the execution is later cut short.
package executor
