package executor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/queryflow/core"
)

// stubInvoker returns a canned payload for every service.
func stubInvoker(payload map[string]any) core.Invoker {
	return core.InvokerFunc(func(_ context.Context, _ string, _ map[string]any) (map[string]any, error) {
		return payload, nil
	})
}

func executableInterpretation(intent core.Intent, params map[string]any) *core.Interpretation {
	in := core.NewInterpretation("q-1", intent, 0.9) // very_high
	for k, v := range params {
		in.Parameters[k] = v
	}
	return in
}

func TestExecute_RefusesNonExecutableInterpretation(t *testing.T) {
	exec := New()

	// Informational intent: the gate refuses before any handler runs.
	in := executableInterpretation(core.IntentSearchDocuments, map[string]any{"search_terms": "x"})

	result := exec.Execute(context.Background(), in)

	assert.Equal(t, core.StatusFailed, result.GetStatus())
	assert.Equal(t, "interpretation does not support execution", result.GetErrorMessage())
	assert.Empty(t, result.GetServicesUsed())
}

func TestExecute_RefusesLowConfidence(t *testing.T) {
	exec := New(func(o *Options) { o.Invoker = stubInvoker(map[string]any{"ok": true}) })

	in := core.NewInterpretation("q-1", core.IntentExecuteWorkflow, 0.6) // medium
	in.Parameters["workflow_id"] = "wf-1"

	result := exec.Execute(context.Background(), in)
	assert.Equal(t, core.StatusFailed, result.GetStatus())
}

func TestForce_BypassesGate(t *testing.T) {
	exec := New(func(o *Options) { o.Invoker = stubInvoker(map[string]any{"documents": []any{}}) })

	in := core.NewInterpretation("q-1", core.IntentSearchDocuments, 0.6)
	in.Parameters["search_terms"] = "kubernetes"

	result := exec.Force(context.Background(), in)

	assert.Equal(t, core.StatusSuccess, result.GetStatus())
	assert.Equal(t, []string{core.ServiceDocumentStore}, result.GetServicesUsed())
}

func TestExecute_MissingHandler(t *testing.T) {
	exec := New() // Builtin has no configure_system handler

	in := executableInterpretation(core.IntentConfigureSystem, map[string]any{"setting": "x"})

	result := exec.Execute(context.Background(), in)

	assert.Equal(t, core.StatusFailed, result.GetStatus())
	assert.Contains(t, result.GetErrorMessage(), "configure_system")
}

func TestExecute_WorkflowSuccess(t *testing.T) {
	exec := New(func(o *Options) {
		o.Invoker = stubInvoker(map[string]any{"run_id": "r-77", "state": "started"})
	})

	in := executableInterpretation(core.IntentExecuteWorkflow, map[string]any{"workflow_id": "analysis-42"})

	result := exec.Execute(context.Background(), in)

	require.Equal(t, core.StatusSuccess, result.GetStatus())
	assert.True(t, result.IsSuccessful())

	results := result.GetResults()
	assert.Equal(t, "analysis-42", results["workflow_id"]) // echoed by the handler
	assert.Equal(t, "r-77", results["run_id"])
	assert.Equal(t, []string{core.ServiceWorkflowEngine}, result.GetServicesUsed())
	assert.GreaterOrEqual(t, result.GetExecutionTime(), 0.0)
}

func TestExecute_HandlerValidationFailure(t *testing.T) {
	exec := New(func(o *Options) { o.Invoker = stubInvoker(nil) })

	// Parameters are non-empty so the gate passes, but the handler schema
	// requires workflow_id.
	in := executableInterpretation(core.IntentExecuteWorkflow, map[string]any{"job": "nightly"})

	result := exec.Execute(context.Background(), in)

	assert.Equal(t, core.StatusFailed, result.GetStatus())
	assert.Contains(t, result.GetErrorMessage(), ErrCodeValidation)
}

func TestExecute_CollaboratorFailure(t *testing.T) {
	exec := New(func(o *Options) {
		o.Invoker = core.InvokerFunc(func(context.Context, string, map[string]any) (map[string]any, error) {
			return nil, errors.New("engine unavailable")
		})
	})

	in := executableInterpretation(core.IntentExecuteWorkflow, map[string]any{"workflow_id": "wf-1"})

	result := exec.Execute(context.Background(), in)

	assert.Equal(t, core.StatusFailed, result.GetStatus())
	assert.Contains(t, result.GetErrorMessage(), "engine unavailable")
	// The collaborator was touched before it failed.
	assert.Equal(t, []string{core.ServiceWorkflowEngine}, result.GetServicesUsed())
}

func TestExecute_Timeout(t *testing.T) {
	slow := core.InvokerFunc(func(ctx context.Context, _ string, _ map[string]any) (map[string]any, error) {
		select {
		case <-time.After(500 * time.Millisecond):
			return map[string]any{}, nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	})

	exec := New(func(o *Options) {
		o.Invoker = slow
		o.Timeout = 20 * time.Millisecond
	})

	in := executableInterpretation(core.IntentExecuteWorkflow, map[string]any{"workflow_id": "wf-1"})

	result := exec.Execute(context.Background(), in)

	assert.Equal(t, core.StatusTimeout, result.GetStatus())
	assert.NotEmpty(t, result.GetErrorMessage())
	// Services touched before the deadline stay on the record.
	assert.Equal(t, []string{core.ServiceWorkflowEngine}, result.GetServicesUsed())
	assert.Greater(t, result.GetExecutionTime(), 0.0)
}

func TestExecute_Cancellation(t *testing.T) {
	started := make(chan struct{})
	blocking := core.InvokerFunc(func(ctx context.Context, _ string, _ map[string]any) (map[string]any, error) {
		close(started)
		<-ctx.Done()
		return nil, ctx.Err()
	})

	exec := New(func(o *Options) { o.Invoker = blocking })

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	in := executableInterpretation(core.IntentExecuteWorkflow, map[string]any{"workflow_id": "wf-1"})

	result := exec.Execute(ctx, in)

	assert.Equal(t, core.StatusCancelled, result.GetStatus())
	assert.Equal(t, []string{core.ServiceWorkflowEngine}, result.GetServicesUsed())
}

func TestExecute_HandlerPanicBecomesFailure(t *testing.T) {
	registry := NewRegistry(NewFunctionHandler("boom", core.IntentExecuteWorkflow,
		func(context.Context, *Context, *core.Interpretation) (map[string]any, error) {
			panic("kaboom")
		},
	))

	exec := New(func(o *Options) { o.Registry = registry })

	in := executableInterpretation(core.IntentExecuteWorkflow, map[string]any{"workflow_id": "wf-1"})

	result := exec.Execute(context.Background(), in)

	assert.Equal(t, core.StatusFailed, result.GetStatus())
	assert.Contains(t, result.GetErrorMessage(), "panicked")
}

func TestCanAttempt(t *testing.T) {
	exec := New()

	ready := executableInterpretation(core.IntentExecuteWorkflow, map[string]any{"workflow_id": "wf-1"})
	assert.Empty(t, exec.CanAttempt(ready))

	blocked := core.NewInterpretation("q-1", core.IntentGreeting, 0.3)
	blockers := exec.CanAttempt(blocked)
	assert.Len(t, blockers, 4) // wrong intent class, low confidence, no params, no handler
}

func TestRegistry_RejectsDuplicateIntent(t *testing.T) {
	r := NewRegistry(SearchDocumentsHandler())

	err := r.Register(SearchDocumentsHandler())
	assert.Error(t, err)

	r.Replace(SearchDocumentsHandler()) // replace is always allowed
	assert.Equal(t, 1, r.Len())
}

func TestBuiltin_CoversCollaboratorBackedIntents(t *testing.T) {
	r := Builtin()

	for _, intent := range []core.Intent{
		core.IntentSearchDocuments,
		core.IntentListResources,
		core.IntentAnalyzeContent,
		core.IntentSummarizeContent,
		core.IntentExecuteWorkflow,
		core.IntentCheckStatus,
		core.IntentGetMetrics,
	} {
		h, ok := r.Get(intent)
		require.True(t, ok, intent)
		assert.Equal(t, intent, h.Intent())
		assert.NotEmpty(t, h.Description())
	}
}
