package collaborator

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/hupe1980/queryflow/core"
)

// ServiceFunc implements a single collaborator service.
type ServiceFunc func(ctx context.Context, request map[string]any) (map[string]any, error)

// Call records one Invoke for later inspection.
type Call struct {
	Service string
	Request map[string]any
}

// InMemoryInvoker routes service calls to registered in-process functions.
// It records every call and is safe for concurrent use.
type InMemoryInvoker struct {
	mu       sync.RWMutex
	services map[string]ServiceFunc
	calls    []Call
}

var _ core.Invoker = (*InMemoryInvoker)(nil)

// New creates an empty InMemoryInvoker.
func New() *InMemoryInvoker {
	return &InMemoryInvoker{services: make(map[string]ServiceFunc)}
}

// WithDefaults creates an InMemoryInvoker preloaded with deterministic canned
// implementations for every well-known service name.
func WithDefaults() *InMemoryInvoker {
	inv := New()
	inv.RegisterService(core.ServiceDocumentStore, documentStore(defaultDocuments))
	inv.RegisterService(core.ServiceContentAnalyzer, contentAnalyzer)
	inv.RegisterService(core.ServiceWorkflowEngine, workflowEngine)
	inv.RegisterService(core.ServiceHealthMonitor, healthMonitor)
	inv.RegisterService(core.ServiceMetrics, metricsService)
	inv.RegisterService(core.ServiceSummarizer, summarizer)
	inv.RegisterService(core.ServiceResourceRegistry, resourceRegistry)
	return inv
}

// RegisterService installs or replaces the implementation for a service name.
func (i *InMemoryInvoker) RegisterService(name string, fn ServiceFunc) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.services[name] = fn
}

// Invoke implements core.Invoker. Every call is recorded, including calls to
// unregistered services.
func (i *InMemoryInvoker) Invoke(ctx context.Context, service string, request map[string]any) (map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reqCopy := make(map[string]any, len(request))
	for k, v := range request {
		reqCopy[k] = v
	}

	i.mu.Lock()
	i.calls = append(i.calls, Call{Service: service, Request: reqCopy})
	fn, ok := i.services[service]
	i.mu.Unlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrServiceNotFound, service)
	}

	return fn(ctx, request)
}

// Calls returns a copy of the recorded calls in order.
func (i *InMemoryInvoker) Calls() []Call {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return append([]Call{}, i.calls...)
}

// Reset clears the recorded calls.
func (i *InMemoryInvoker) Reset() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.calls = nil
}

// Document is an entry in the canned document store.
type Document struct {
	ID      string
	Title   string
	Content string
}

var defaultDocuments = []Document{
	{ID: "doc-1", Title: "Kubernetes Operations Guide", Content: "Cluster upgrades, node pools and kubernetes networking."},
	{ID: "doc-2", Title: "Incident Response Playbook", Content: "Steps for triaging and resolving production incidents."},
	{ID: "doc-3", Title: "Quarterly Metrics Report", Content: "Usage statistics and performance numbers for the quarter."},
	{ID: "doc-4", Title: "Workflow Engine Manual", Content: "Defining, executing and monitoring workflows."},
}

// documentStore builds a substring-matching search over a fixed corpus.
func documentStore(docs []Document) ServiceFunc {
	return func(_ context.Context, request map[string]any) (map[string]any, error) {
		query, _ := request["query"].(string)
		query = strings.ToLower(strings.TrimSpace(query))

		matches := make([]map[string]any, 0, len(docs))
		for _, d := range docs {
			if query == "" ||
				strings.Contains(strings.ToLower(d.Title), query) ||
				strings.Contains(strings.ToLower(d.Content), query) {
				matches = append(matches, map[string]any{"id": d.ID, "title": d.Title})
			}
		}

		return map[string]any{"documents": matches, "count": len(matches)}, nil
	}
}

func contentAnalyzer(_ context.Context, request map[string]any) (map[string]any, error) {
	subject := fmt.Sprintf("%v", request["parameters"])
	return map[string]any{
		"analysis": map[string]any{
			"word_count": len(strings.Fields(subject)),
			"sentiment":  "neutral",
		},
	}, nil
}

func workflowEngine(_ context.Context, request map[string]any) (map[string]any, error) {
	workflowID, _ := request["workflow_id"].(string)
	if workflowID == "" {
		return nil, fmt.Errorf("workflow engine: missing workflow_id")
	}
	return map[string]any{
		"run_id": "run-" + workflowID,
		"state":  "started",
	}, nil
}

func healthMonitor(_ context.Context, request map[string]any) (map[string]any, error) {
	service, _ := request["service"].(string)
	if service == "" {
		service = "all"
	}
	return map[string]any{
		"service":        service,
		"healthy":        true,
		"uptime_seconds": 86400,
	}, nil
}

func metricsService(_ context.Context, request map[string]any) (map[string]any, error) {
	timeRange, _ := request["time_range"].(string)
	if timeRange == "" {
		timeRange = "today"
	}
	return map[string]any{
		"time_range": timeRange,
		"metrics": map[string]any{
			"queries_processed": 128,
			"error_rate":        0.02,
		},
	}, nil
}

func summarizer(_ context.Context, request map[string]any) (map[string]any, error) {
	subject := fmt.Sprintf("%v", request["parameters"])
	if len(subject) > 80 {
		subject = subject[:80]
	}
	return map[string]any{"summary": subject}, nil
}

func resourceRegistry(_ context.Context, _ map[string]any) (map[string]any, error) {
	resources := []map[string]any{
		{"name": "document_store", "kind": "storage"},
		{"name": "workflow_engine", "kind": "compute"},
		{"name": "metrics_service", "kind": "observability"},
	}
	return map[string]any{"resources": resources, "count": len(resources)}, nil
}
