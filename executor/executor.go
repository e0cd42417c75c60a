package executor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hupe1980/queryflow/core"
	"github.com/hupe1980/queryflow/logging"
)

// Options configures an Executor.
type Options struct {
	// Registry holds the intent handlers. Defaults to Builtin().
	Registry *Registry
	// Invoker backs collaborator calls made by handlers. Nil is allowed;
	// handlers that call collaborators will then fail with a descriptive
	// error while self-contained handlers keep working.
	Invoker core.Invoker
	// Logger receives execution diagnostics. Defaults to NoOpLogger.
	Logger logging.Logger
	// Timeout is the per-execution budget layered on top of the caller's
	// context. Zero disables the executor-side deadline.
	Timeout time.Duration
}

// Executor dispatches interpretations to intent handlers. Execute never
// returns a Go error: every outcome, including refusals and infrastructure
// failures, is a sealed ExecutionResult.
type Executor struct {
	registry *Registry
	invoker  core.Invoker
	logger   logging.Logger
	timeout  time.Duration
}

// New creates an Executor.
func New(optFns ...func(o *Options)) *Executor {
	opts := Options{
		Registry: Builtin(),
		Logger:   logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Registry == nil {
		opts.Registry = Builtin()
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}

	return &Executor{
		registry: opts.Registry,
		invoker:  opts.Invoker,
		logger:   opts.Logger,
		timeout:  opts.Timeout,
	}
}

// Registry returns the executor's handler registry.
func (e *Executor) Registry() *Registry { return e.registry }

// CanAttempt reports why an execution would be refused, as a list of
// human-readable blockers. An empty list means Execute would dispatch. It is
// a read-only precondition check; nothing is executed.
func (e *Executor) CanAttempt(in *core.Interpretation) []string {
	var blockers []string

	if !in.Intent.RequiresExecution() {
		blockers = append(blockers, fmt.Sprintf("intent %q does not require execution", in.Intent))
	}
	if !in.ConfidenceLevel.CanAutoExecute() {
		blockers = append(blockers, fmt.Sprintf("confidence level %q does not permit auto-execution", in.ConfidenceLevel))
	}
	if len(in.Parameters) == 0 {
		blockers = append(blockers, "no parameters were extracted")
	}
	if _, ok := e.registry.Get(in.Intent); !ok {
		blockers = append(blockers, fmt.Sprintf("no handler registered for intent %q", in.Intent))
	}

	return blockers
}

// Execute runs the interpretation through its handler, honoring the
// auto-execution gate: interpretations whose CanExecute is false are refused
// with a failed result and no handler runs.
func (e *Executor) Execute(ctx context.Context, in *core.Interpretation) *core.ExecutionResult {
	return e.execute(ctx, in, false)
}

// Force runs the interpretation through its handler regardless of the
// auto-execution gate. Intended for callers that obtained explicit user
// confirmation for a low-confidence or informational interpretation.
func (e *Executor) Force(ctx context.Context, in *core.Interpretation) *core.ExecutionResult {
	return e.execute(ctx, in, true)
}

type handlerOutcome struct {
	payload map[string]any
	err     error
}

func (e *Executor) execute(ctx context.Context, in *core.Interpretation, force bool) *core.ExecutionResult {
	start := time.Now()
	result := core.NewExecutionResult(in.QueryID)
	defer func() { result.SetExecutionTime(time.Since(start)) }()

	_ = result.SetMetadata("intent", in.Intent.String())
	if force {
		_ = result.SetMetadata("forced", true)
	}

	if !force && !in.CanExecute() {
		_ = result.Fail("interpretation does not support execution")
		e.logger.Warn("execution refused",
			"query_id", in.QueryID,
			"intent", in.Intent.String(),
			"confidence_level", in.ConfidenceLevel.String(),
		)
		return result
	}

	handler, ok := e.registry.Get(in.Intent)
	if !ok {
		_ = result.Fail(fmt.Sprintf("no handler registered for intent %q", in.Intent))
		return result
	}

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	ec := &Context{result: result, invoker: e.invoker, logger: e.logger}

	done := make(chan handlerOutcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- handlerOutcome{err: NewExecutionError(handler.Name(), fmt.Sprintf("handler panicked: %v", r), nil)}
			}
		}()
		payload, err := handler.Call(ctx, ec, in)
		done <- handlerOutcome{payload: payload, err: err}
	}()

	select {
	case out := <-done:
		if out.err != nil {
			// A handler surfacing the context error is classified the same
			// as the executor observing ctx.Done itself.
			if errors.Is(out.err, context.DeadlineExceeded) {
				_ = result.MarkTimeout(fmt.Sprintf("execution exceeded deadline: %v", out.err))
				return result
			}
			if errors.Is(out.err, context.Canceled) {
				_ = result.MarkCancelled(fmt.Sprintf("execution cancelled: %v", out.err))
				return result
			}

			msg := out.err.Error()
			if msg == "" {
				msg = "handler failed"
			}
			_ = result.Fail(msg)
			e.logger.Error("handler execution failed",
				"query_id", in.QueryID,
				"handler", handler.Name(),
				"duration", time.Since(start),
				"error", out.err,
			)
			return result
		}
		_ = result.Complete(out.payload)
		e.logger.Info("handler execution completed",
			"query_id", in.QueryID,
			"handler", handler.Name(),
			"duration", time.Since(start),
		)
	case <-ctx.Done():
		// The handler goroutine may still be running; sealing the result
		// here turns its late mutations into ErrResultSealed no-ops.
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			_ = result.MarkTimeout(fmt.Sprintf("execution exceeded deadline: %v", ctx.Err()))
		} else {
			_ = result.MarkCancelled(fmt.Sprintf("execution cancelled: %v", ctx.Err()))
		}
		e.logger.Warn("handler execution interrupted",
			"query_id", in.QueryID,
			"handler", handler.Name(),
			"status", result.GetStatus().String(),
		)
	}

	return result
}
