package core

import (
	"fmt"
	"sort"
)

// Intent is the closed-set classification of what a query is asking for.
// Each variant carries static, compile-time-known attributes (priority and
// category flags) looked up from an immutable table, so behavior stays
// attached to the variant instead of being scattered through intent checks.
type Intent string

const (
	// IntentSearchDocuments asks for documents matching some criteria.
	IntentSearchDocuments Intent = "search_documents"
	// IntentRetrieveInformation asks for a specific piece of information.
	IntentRetrieveInformation Intent = "retrieve_information"
	// IntentListResources asks for an inventory of registered resources.
	IntentListResources Intent = "list_resources"
	// IntentAnalyzeContent asks for an analysis of supplied content.
	IntentAnalyzeContent Intent = "analyze_content"
	// IntentCompareItems asks for a comparison between two or more items.
	IntentCompareItems Intent = "compare_items"
	// IntentSummarizeContent asks for a condensed form of supplied content.
	IntentSummarizeContent Intent = "summarize_content"
	// IntentExecuteWorkflow asks to run an existing workflow.
	IntentExecuteWorkflow Intent = "execute_workflow"
	// IntentCreateWorkflow asks to create or modify a workflow definition.
	IntentCreateWorkflow Intent = "create_workflow"
	// IntentCheckStatus asks for the health of a service or the system.
	IntentCheckStatus Intent = "check_status"
	// IntentGetMetrics asks for operational metrics.
	IntentGetMetrics Intent = "get_metrics"
	// IntentConfigureSystem asks to change a system setting.
	IntentConfigureSystem Intent = "configure_system"
	// IntentGreeting is a conversational opener with no actionable content.
	IntentGreeting Intent = "greeting"
	// IntentClarification is a follow-up clarifying a previous exchange.
	IntentClarification Intent = "clarification"
	// IntentAcknowledgment is a conversational acknowledgment.
	IntentAcknowledgment Intent = "acknowledgment"
	// IntentUnknown is the degraded classification when no rule matches.
	IntentUnknown Intent = "unknown"
)

// IntentInfo holds the static attributes attached to an intent variant.
type IntentInfo struct {
	// Priority breaks ties between equally scored candidates (higher wins).
	Priority int
	// Informational intents retrieve and display existing data.
	Informational bool
	// Analytical intents derive new insight from existing data.
	Analytical bool
	// Operational intents change system state and therefore require execution.
	Operational bool
	// Conversational intents carry no actionable request.
	Conversational bool
}

// intentTable is the immutable metadata table for the closed intent set.
// Built once at init, read-only thereafter; safe for concurrent use.
var intentTable = map[Intent]IntentInfo{
	IntentExecuteWorkflow:     {Priority: 10, Operational: true},
	IntentCreateWorkflow:      {Priority: 9, Operational: true},
	IntentConfigureSystem:     {Priority: 8, Operational: true},
	IntentAnalyzeContent:      {Priority: 7, Analytical: true},
	IntentCompareItems:        {Priority: 6, Analytical: true},
	IntentSummarizeContent:    {Priority: 5, Analytical: true},
	IntentSearchDocuments:     {Priority: 4, Informational: true},
	IntentRetrieveInformation: {Priority: 3, Informational: true},
	IntentListResources:       {Priority: 3, Informational: true},
	IntentCheckStatus:         {Priority: 3, Informational: true},
	IntentGetMetrics:          {Priority: 3, Informational: true},
	IntentGreeting:            {Priority: 2, Conversational: true},
	IntentClarification:       {Priority: 2, Conversational: true},
	IntentAcknowledgment:      {Priority: 2, Conversational: true},
	IntentUnknown:             {Priority: 0},
}

// Info returns the static attribute record for the intent. Unknown variants
// fall back to the IntentUnknown record.
func (i Intent) Info() IntentInfo {
	if info, ok := intentTable[i]; ok {
		return info
	}
	return intentTable[IntentUnknown]
}

// Priority returns the tie-breaking priority of the intent.
func (i Intent) Priority() int { return i.Info().Priority }

// IsInformational reports whether the intent retrieves and displays data.
func (i Intent) IsInformational() bool { return i.Info().Informational }

// IsAnalytical reports whether the intent derives insight from data.
func (i Intent) IsAnalytical() bool { return i.Info().Analytical }

// IsOperational reports whether the intent changes system state.
func (i Intent) IsOperational() bool { return i.Info().Operational }

// IsConversational reports whether the intent carries no actionable request.
func (i Intent) IsConversational() bool { return i.Info().Conversational }

// RequiresExecution reports whether executing the intent performs a state
// change. Derived: operational intents and only those require execution.
func (i Intent) RequiresExecution() bool { return i.IsOperational() }

// IsValid reports whether the value names a member of the closed intent set.
func (i Intent) IsValid() bool {
	_, ok := intentTable[i]
	return ok
}

// String returns the wire representation of the intent.
func (i Intent) String() string { return string(i) }

// ParseIntent converts a string into an Intent, rejecting values outside the
// closed set.
func ParseIntent(s string) (Intent, error) {
	in := Intent(s)
	if !in.IsValid() {
		return IntentUnknown, fmt.Errorf("%w: %q", ErrUnknownIntent, s)
	}
	return in, nil
}

// Intents returns all intent variants in deterministic (lexicographic) order.
func Intents() []Intent {
	out := make([]Intent, 0, len(intentTable))
	for i := range intentTable {
		out = append(out, i)
	}
	sort.Slice(out, func(a, b int) bool { return out[a] < out[b] })
	return out
}
