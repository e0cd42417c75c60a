package core

import "context"

// Well-known collaborator service names. Handlers address collaborators by
// these names; Invoker implementations decide what backs them.
const (
	// ServiceDocumentStore resolves document search requests.
	ServiceDocumentStore = "document_store"
	// ServiceContentAnalyzer performs content analysis.
	ServiceContentAnalyzer = "content_analyzer"
	// ServiceWorkflowEngine runs workflows.
	ServiceWorkflowEngine = "workflow_engine"
	// ServiceHealthMonitor reports service health.
	ServiceHealthMonitor = "health_monitor"
	// ServiceMetrics reports operational metrics.
	ServiceMetrics = "metrics_service"
	// ServiceSummarizer condenses content.
	ServiceSummarizer = "summarizer"
	// ServiceResourceRegistry lists registered resources.
	ServiceResourceRegistry = "resource_registry"
)

// Invoker is the uniform contract for calling collaborator services. A
// collaborator is opaque to this core: it either returns a JSON-like payload
// or fails with a descriptive error, and the executor treats any failure
// uniformly regardless of collaborator identity.
//
// Implementations should:
//   - Honor context cancellation on blocking calls
//   - Be safe for concurrent use
//   - Return errors with messages fit for surfacing to callers verbatim
type Invoker interface {
	// Invoke calls the named service with a request payload and returns its
	// response payload or an error.
	Invoke(ctx context.Context, service string, request map[string]any) (map[string]any, error)
}

// InvokerFunc adapts a plain function to the Invoker interface.
type InvokerFunc func(ctx context.Context, service string, request map[string]any) (map[string]any, error)

// Invoke implements Invoker.
func (f InvokerFunc) Invoke(ctx context.Context, service string, request map[string]any) (map[string]any, error) {
	return f(ctx, service, request)
}
