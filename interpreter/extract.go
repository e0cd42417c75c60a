package interpreter

import (
	"strings"

	"github.com/hupe1980/queryflow/core"
)

// Vocabularies for entity extraction. Matching is first-hit on lower-cased
// text; order encodes specificity (e.g. "spreadsheet" before "sheet" is not
// needed here because terms do not overlap).
var (
	documentTypes = []string{"pdf", "spreadsheet", "presentation", "report", "document", "file"}
	serviceNames  = []string{"database", "api", "server", "gateway", "cache", "queue", "storage"}
	workflowTypes = []string{"analysis", "processing", "transformation", "etl", "backup", "deployment"}
	timeRanges    = []string{"today", "yesterday", "this week", "last week", "this month", "last month"}
)

// extractEntities pulls descriptive attributes out of the lower-cased query
// text. Entities describe the request; they never gate execution. Rules exist
// only for search_documents, check_status and execute_workflow; every other
// intent yields an empty map.
func extractEntities(intent core.Intent, lowered string) map[string]any {
	entities := map[string]any{}

	switch intent {
	case core.IntentSearchDocuments:
		if dt := firstMatch(lowered, documentTypes); dt != "" {
			entities["document_type"] = dt
		}
	case core.IntentCheckStatus:
		if svc := firstMatch(lowered, serviceNames); svc != "" {
			entities["service_name"] = svc
		}
	case core.IntentExecuteWorkflow:
		if wt := firstMatch(lowered, workflowTypes); wt != "" {
			entities["workflow_type"] = wt
		}
	default:
		return entities
	}

	if tr := firstMatch(lowered, timeRanges); tr != "" {
		entities["time_range"] = tr
	}

	return entities
}

// extractParameters pulls the values a handler would need from the original
// (case-preserved) query text. Only intents with a defined parameter shape
// produce anything; everything else yields an empty map.
func extractParameters(intent core.Intent, text string) map[string]any {
	params := map[string]any{}

	switch intent {
	case core.IntentExecuteWorkflow:
		if id := tokenAfter(text, "workflow", "analysis", "process", "job", "pipeline"); id != "" {
			params["workflow_id"] = id
		}
	case core.IntentSearchDocuments:
		if terms := searchTerms(text); terms != "" {
			params["search_terms"] = terms
		}
	}

	return params
}

// firstMatch returns the first vocabulary term contained in the text.
func firstMatch(lowered string, terms []string) string {
	for _, t := range terms {
		if strings.Contains(lowered, t) {
			return t
		}
	}
	return ""
}

// tokenAfter returns the token immediately following the first occurrence of
// any keyword, with surrounding punctuation stripped. Keywords are matched
// case-insensitively against whole tokens.
func tokenAfter(text string, keywords ...string) string {
	fields := strings.Fields(text)
	for idx, f := range fields {
		token := strings.ToLower(trimPunct(f))
		for _, kw := range keywords {
			if token == kw && idx+1 < len(fields) {
				return trimPunct(fields[idx+1])
			}
		}
	}
	return ""
}

// searchTerms extracts the subject of a document search: a quoted phrase when
// present, otherwise everything after the first topic preposition.
func searchTerms(text string) string {
	if q := quotedPhrase(text); q != "" {
		return q
	}

	fields := strings.Fields(text)
	for idx, f := range fields {
		switch strings.ToLower(trimPunct(f)) {
		case "in", "about", "for", "on", "regarding":
			if idx+1 < len(fields) {
				return trimPunct(strings.Join(fields[idx+1:], " "))
			}
		}
	}

	return ""
}

// quotedPhrase returns the content of the first double-quoted span, if any.
func quotedPhrase(text string) string {
	start := strings.Index(text, `"`)
	if start < 0 {
		return ""
	}
	end := strings.Index(text[start+1:], `"`)
	if end < 0 {
		return ""
	}
	return strings.TrimSpace(text[start+1 : start+1+end])
}

// trimPunct strips leading/trailing sentence punctuation from a token while
// preserving interior characters (hyphens, underscores, digits).
func trimPunct(s string) string {
	return strings.Trim(s, `.,:;!?"'()[]{}`)
}
