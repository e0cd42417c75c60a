package executor

import (
	"context"

	"github.com/hupe1980/queryflow/core"
)

// Builtin returns a Registry preloaded with the stock handlers. Each handler
// delegates the actual work to a named collaborator service through the
// execution Context, so the same registry works against any Invoker.
func Builtin() *Registry {
	return NewRegistry(
		SearchDocumentsHandler(),
		ListResourcesHandler(),
		AnalyzeContentHandler(),
		SummarizeContentHandler(),
		ExecuteWorkflowHandler(),
		CheckStatusHandler(),
		GetMetricsHandler(),
	)
}

// SearchDocumentsHandler serves search_documents via the document store.
func SearchDocumentsHandler() Handler {
	return NewFunctionHandler("search_documents", core.IntentSearchDocuments,
		func(ctx context.Context, ec *Context, in *core.Interpretation) (map[string]any, error) {
			request := map[string]any{"query": in.Parameters["search_terms"]}
			if dt, ok := in.Entities["document_type"]; ok {
				request["document_type"] = dt
			}
			return ec.InvokeCollaborator(ctx, core.ServiceDocumentStore, request)
		},
		func(o *FunctionHandlerOptions) {
			o.Description = "Searches the document store for matching documents."
		},
	)
}

// ListResourcesHandler serves list_resources via the resource registry.
func ListResourcesHandler() Handler {
	return NewFunctionHandler("list_resources", core.IntentListResources,
		func(ctx context.Context, ec *Context, in *core.Interpretation) (map[string]any, error) {
			return ec.InvokeCollaborator(ctx, core.ServiceResourceRegistry, map[string]any{
				"filters": in.Entities,
			})
		},
		func(o *FunctionHandlerOptions) {
			o.Description = "Lists registered resources, optionally filtered."
		},
	)
}

// AnalyzeContentHandler serves analyze_content via the content analyzer.
func AnalyzeContentHandler() Handler {
	return NewFunctionHandler("analyze_content", core.IntentAnalyzeContent,
		func(ctx context.Context, ec *Context, in *core.Interpretation) (map[string]any, error) {
			return ec.InvokeCollaborator(ctx, core.ServiceContentAnalyzer, map[string]any{
				"parameters": in.Parameters,
				"entities":   in.Entities,
			})
		},
		func(o *FunctionHandlerOptions) {
			o.Description = "Analyzes content through the content analyzer service."
		},
	)
}

// SummarizeContentHandler serves summarize_content via the summarizer.
func SummarizeContentHandler() Handler {
	return NewFunctionHandler("summarize_content", core.IntentSummarizeContent,
		func(ctx context.Context, ec *Context, in *core.Interpretation) (map[string]any, error) {
			return ec.InvokeCollaborator(ctx, core.ServiceSummarizer, map[string]any{
				"parameters": in.Parameters,
				"entities":   in.Entities,
			})
		},
		func(o *FunctionHandlerOptions) {
			o.Description = "Condenses content through the summarizer service."
		},
	)
}

// ExecuteWorkflowHandler serves execute_workflow via the workflow engine.
// It requires a workflow_id parameter and echoes it in the result payload.
func ExecuteWorkflowHandler() Handler {
	return NewFunctionHandler("execute_workflow", core.IntentExecuteWorkflow,
		func(ctx context.Context, ec *Context, in *core.Interpretation) (map[string]any, error) {
			workflowID, _ := in.Parameters["workflow_id"].(string)
			if workflowID == "" {
				return nil, NewValidationError("execute_workflow", "workflow_id parameter is required", nil)
			}

			request := map[string]any{"workflow_id": workflowID}
			if wt, ok := in.Entities["workflow_type"]; ok {
				request["workflow_type"] = wt
			}

			resp, err := ec.InvokeCollaborator(ctx, core.ServiceWorkflowEngine, request)
			if err != nil {
				return nil, err
			}

			payload := map[string]any{"workflow_id": workflowID}
			for k, v := range resp {
				payload[k] = v
			}
			return payload, nil
		},
		func(o *FunctionHandlerOptions) {
			o.Description = "Triggers a workflow run on the workflow engine."
			o.Parameters = map[string]any{
				"type": "object",
				"properties": map[string]any{
					"workflow_id": map[string]any{
						"type":        "string",
						"description": "Identifier of the workflow to run",
					},
				},
				"required": []string{"workflow_id"},
			}
		},
	)
}

// CheckStatusHandler serves check_status via the health monitor.
func CheckStatusHandler() Handler {
	return NewFunctionHandler("check_status", core.IntentCheckStatus,
		func(ctx context.Context, ec *Context, in *core.Interpretation) (map[string]any, error) {
			service := "all"
			if s, ok := in.Entities["service_name"].(string); ok && s != "" {
				service = s
			}
			return ec.InvokeCollaborator(ctx, core.ServiceHealthMonitor, map[string]any{
				"service": service,
			})
		},
		func(o *FunctionHandlerOptions) {
			o.Description = "Reports service health through the health monitor."
		},
	)
}

// GetMetricsHandler serves get_metrics via the metrics service.
func GetMetricsHandler() Handler {
	return NewFunctionHandler("get_metrics", core.IntentGetMetrics,
		func(ctx context.Context, ec *Context, in *core.Interpretation) (map[string]any, error) {
			timeRange := "today"
			if tr, ok := in.Entities["time_range"].(string); ok && tr != "" {
				timeRange = tr
			}
			return ec.InvokeCollaborator(ctx, core.ServiceMetrics, map[string]any{
				"time_range": timeRange,
			})
		},
		func(o *FunctionHandlerOptions) {
			o.Description = "Fetches operational metrics for a time range."
		},
	)
}
