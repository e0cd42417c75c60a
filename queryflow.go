// Package queryflow provides a high-level façade over the interpreter and
// executor, enabling rapid construction of query-driven orchestration layers.
// Most applications interact with this package by:
//  1. Creating a QueryFlow via New() (optionally overriding rules, handlers,
//     the collaborator invoker, the session store or the logger)
//  2. Interpreting raw query text into structured interpretations
//  3. Executing interpretations, or letting Process run the full pipeline
//
// All defaults are safe for local development and testing: built-in rules,
// the stock handler registry, in-memory collaborators and an in-memory
// session store. Production deployments typically supply real collaborator
// backends and a structured logger.
package queryflow

import (
	"context"
	"time"

	"github.com/hupe1980/queryflow/collaborator"
	"github.com/hupe1980/queryflow/core"
	"github.com/hupe1980/queryflow/executor"
	"github.com/hupe1980/queryflow/interpreter"
	"github.com/hupe1980/queryflow/logging"
	"github.com/hupe1980/queryflow/session"
)

// Options configures the QueryFlow instance.
type Options struct {
	// Rules is the interpreter's pattern table. Defaults to the built-in
	// rules covering every classifiable intent.
	Rules *interpreter.RuleSet

	// Handlers is the executor's handler registry. Defaults to the stock
	// collaborator-backed handlers.
	Handlers *executor.Registry

	// Invoker backs collaborator calls. Defaults to the in-memory invoker
	// with canned services.
	Invoker core.Invoker

	// SessionStore persists conversational state and query history.
	// Defaults to an in-memory store.
	SessionStore core.SessionStore

	// Logger (defaults to NoOp logger if nil).
	Logger logging.Logger

	// ExecutionTimeout bounds each execution. Zero disables the
	// executor-side deadline.
	ExecutionTimeout time.Duration
}

// QueryFlow is the high-level façade aggregating the interpreter, the
// executor and the session store.
type QueryFlow struct {
	opts     Options
	interp   *interpreter.Interpreter
	exec     *executor.Executor
	sessions core.SessionStore
	logger   logging.Logger
}

// New creates a new QueryFlow instance with optional overrides. Any unset
// component is initialized with its in-memory default.
func New(optFns ...func(o *Options)) *QueryFlow {
	opts := Options{
		Rules:        interpreter.DefaultRules(),
		Handlers:     executor.Builtin(),
		Invoker:      collaborator.WithDefaults(),
		SessionStore: session.NewInMemoryStore(),
		Logger:       logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}
	if opts.SessionStore == nil {
		opts.SessionStore = session.NewInMemoryStore()
	}

	interp := interpreter.New(func(o *interpreter.Options) {
		o.Rules = opts.Rules
		o.Logger = opts.Logger
	})

	exec := executor.New(func(o *executor.Options) {
		o.Registry = opts.Handlers
		o.Invoker = opts.Invoker
		o.Logger = opts.Logger
		o.Timeout = opts.ExecutionTimeout
	})

	return &QueryFlow{
		opts:     opts,
		interp:   interp,
		exec:     exec,
		sessions: opts.SessionStore,
		logger:   opts.Logger,
	}
}

// RegisterHandler adds an intent handler to the executor's registry.
func (f *QueryFlow) RegisterHandler(h executor.Handler) error {
	return f.exec.Registry().Register(h)
}

// Interpret validates the query text and classifies it. Queries bound to a
// session are seeded with the session's state so follow-up queries are
// detected as conversational.
func (f *QueryFlow) Interpret(_ context.Context, text string, optFns ...core.QueryOption) (*core.Interpretation, error) {
	q, err := f.newQuery(text, optFns...)
	if err != nil {
		return nil, err
	}
	return f.interp.Interpret(q), nil
}

// Execute runs an interpretation through the executor, honoring the
// auto-execution gate.
func (f *QueryFlow) Execute(ctx context.Context, in *core.Interpretation) *core.ExecutionResult {
	return f.exec.Execute(ctx, in)
}

// Force runs an interpretation through the executor regardless of the
// auto-execution gate. Use only after obtaining explicit confirmation.
func (f *QueryFlow) Force(ctx context.Context, in *core.Interpretation) *core.ExecutionResult {
	return f.exec.Force(ctx, in)
}

// CanAttempt reports why an interpretation would be refused by Execute, as a
// list of human-readable blockers. Empty means Execute would dispatch.
func (f *QueryFlow) CanAttempt(in *core.Interpretation) []string {
	return f.exec.CanAttempt(in)
}

// Process runs the full pipeline: interpret the text, execute when the
// interpretation permits it, and record the exchange on the session. The
// returned result is nil when the auto-execution gate kept the executor out
// of the loop; callers can inspect the interpretation's guidance and decide
// whether to call Force.
func (f *QueryFlow) Process(ctx context.Context, text string, optFns ...core.QueryOption) (*core.Interpretation, *core.ExecutionResult, error) {
	q, err := f.newQuery(text, optFns...)
	if err != nil {
		return nil, nil, err
	}

	in := f.interp.Interpret(q)

	var result *core.ExecutionResult
	if in.CanExecute() {
		result = f.exec.Execute(ctx, in)
	}

	if q.SessionID != "" {
		record := core.QueryRecord{
			QueryID:         q.ID,
			Text:            q.Text,
			Intent:          in.Intent,
			ConfidenceScore: in.ConfidenceScore,
			Executed:        result != nil && result.IsSuccessful(),
			At:              time.Now().UTC(),
		}
		if err := f.sessions.AppendRecord(q.SessionID, record); err != nil {
			f.logger.Warn("session record failed", "session_id", q.SessionID, "error", err)
		}
		delta := map[string]any{
			"previous_intent":   in.Intent.String(),
			"previous_query_id": q.ID,
		}
		if err := f.sessions.ApplyDelta(q.SessionID, delta); err != nil {
			f.logger.Warn("session state update failed", "session_id", q.SessionID, "error", err)
		}
	}

	return in, result, nil
}

// Session returns a clone of the named session's current snapshot.
func (f *QueryFlow) Session(sessionID string) (*core.Session, error) {
	return f.sessions.Get(sessionID)
}

// newQuery builds a validated Query and seeds its context from session state
// without overwriting caller-provided context values.
func (f *QueryFlow) newQuery(text string, optFns ...core.QueryOption) (*core.Query, error) {
	q, err := core.NewQuery(text, optFns...)
	if err != nil {
		return nil, err
	}

	if q.SessionID != "" {
		sess, err := f.sessions.Get(q.SessionID)
		if err != nil {
			f.logger.Warn("session lookup failed", "session_id", q.SessionID, "error", err)
			return q, nil
		}
		for k, v := range sess.StateSnapshot() {
			if _, exists := q.Context[k]; !exists {
				q.Context[k] = v
			}
		}
	}

	return q, nil
}
