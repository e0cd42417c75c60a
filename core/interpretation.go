package core

import (
	"sort"
)

// QueryType categorizes the surface form of a query.
type QueryType string

const (
	// QueryTypeConversational marks queries carrying session/context state.
	QueryTypeConversational QueryType = "conversational"
	// QueryTypeCommand marks queries opening with an imperative verb.
	QueryTypeCommand QueryType = "command"
	// QueryTypeNaturalLanguage marks queries containing interrogative markers.
	QueryTypeNaturalLanguage QueryType = "natural_language"
	// QueryTypeStructured marks everything else (keyword / fragment style).
	QueryTypeStructured QueryType = "structured"
)

// Alternative is a runner-up intent classification surfaced when the chosen
// classification is not decisively better than its competitors.
type Alternative struct {
	Intent Intent  `json:"intent"`
	Score  float64 `json:"score"`
}

// Interpretation is the structured decision artifact produced from a Query:
// the chosen intent, its confidence, extracted entities and parameters, and
// the guidance (suggestions, clarifications, alternatives) derived from the
// confidence policy. Instances are built by the interpreter and treated as
// immutable once returned.
type Interpretation struct {
	QueryID                string          `json:"query_id"`
	Intent                 Intent          `json:"intent"`
	ConfidenceLevel        ConfidenceLevel `json:"confidence_level"`
	ConfidenceScore        float64         `json:"confidence_score"`
	QueryType              QueryType       `json:"query_type"`
	Entities               map[string]any  `json:"entities"`
	Parameters             map[string]any  `json:"parameters"`
	SuggestedActions       []string        `json:"suggested_actions"`
	ClarificationQuestions []string        `json:"clarification_questions"`
	Alternatives           []Alternative   `json:"alternative_interpretations"`
	Metadata               map[string]any  `json:"metadata"`
}

// NewInterpretation constructs an Interpretation for the given query and
// intent. Scores outside [0,1] are silently clamped into range; this is
// documented construction behavior, not validation. The confidence level is
// derived from the clamped score.
func NewInterpretation(queryID string, intent Intent, score float64) *Interpretation {
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}

	level, _ := ConfidenceFromScore(score) // cannot fail after clamping

	return &Interpretation{
		QueryID:                queryID,
		Intent:                 intent,
		ConfidenceLevel:        level,
		ConfidenceScore:        score,
		QueryType:              QueryTypeStructured,
		Entities:               map[string]any{},
		Parameters:             map[string]any{},
		SuggestedActions:       []string{},
		ClarificationQuestions: []string{},
		Alternatives:           []Alternative{},
		Metadata:               map[string]any{},
	}
}

// CanExecute reports whether the interpretation may be executed
// automatically: the intent must require execution, the confidence level
// must permit auto-execution, and at least one parameter must be present.
func (in *Interpretation) CanExecute() bool {
	return in.Intent.RequiresExecution() &&
		in.ConfidenceLevel.CanAutoExecute() &&
		len(in.Parameters) > 0
}

// NeedsClarification reports whether the caller should go back to the user
// before acting: either the confidence policy demands it or the interpreter
// attached explicit clarification questions.
func (in *Interpretation) NeedsClarification() bool {
	return in.ConfidenceLevel.RequiresClarification() || len(in.ClarificationQuestions) > 0
}

// SetAlternatives normalizes and installs the runner-up candidates: the
// chosen intent is excluded, entries at or below 0.2 are dropped, the rest
// are sorted by score descending (intent name breaks ties) and capped at 3.
func (in *Interpretation) SetAlternatives(candidates []Alternative) {
	filtered := make([]Alternative, 0, len(candidates))
	for _, c := range candidates {
		if c.Intent == in.Intent || c.Score <= 0.2 {
			continue
		}
		filtered = append(filtered, c)
	}

	sort.Slice(filtered, func(a, b int) bool {
		if filtered[a].Score != filtered[b].Score {
			return filtered[a].Score > filtered[b].Score
		}
		return filtered[a].Intent < filtered[b].Intent
	})

	if len(filtered) > 3 {
		filtered = filtered[:3]
	}

	in.Alternatives = filtered
}

// ToMap returns a serialization-friendly dictionary form of the interpretation.
func (in *Interpretation) ToMap() map[string]any {
	entities := make(map[string]any, len(in.Entities))
	for k, v := range in.Entities {
		entities[k] = v
	}
	params := make(map[string]any, len(in.Parameters))
	for k, v := range in.Parameters {
		params[k] = v
	}
	md := make(map[string]any, len(in.Metadata))
	for k, v := range in.Metadata {
		md[k] = v
	}

	alts := make([]map[string]any, len(in.Alternatives))
	for i, a := range in.Alternatives {
		alts[i] = map[string]any{"intent": a.Intent.String(), "score": a.Score}
	}

	return map[string]any{
		"query_id":                    in.QueryID,
		"intent":                      in.Intent.String(),
		"confidence_level":            in.ConfidenceLevel.String(),
		"confidence_score":            in.ConfidenceScore,
		"query_type":                  string(in.QueryType),
		"entities":                    entities,
		"parameters":                  params,
		"suggested_actions":           append([]string{}, in.SuggestedActions...),
		"clarification_questions":     append([]string{}, in.ClarificationQuestions...),
		"alternative_interpretations": alts,
		"metadata":                    md,
		"can_execute":                 in.CanExecute(),
		"needs_clarification":         in.NeedsClarification(),
	}
}

// InterpretationFromMap reconstructs an Interpretation from its dictionary
// form. Derived properties (can_execute, needs_clarification) are recomputed
// from the reconstructed fields, never read from the payload.
func InterpretationFromMap(m map[string]any) (*Interpretation, error) {
	queryID, _ := m["query_id"].(string)

	rawIntent, _ := m["intent"].(string)
	intent, err := ParseIntent(rawIntent)
	if err != nil {
		return nil, err
	}

	score := toFloat(m["confidence_score"])
	in := NewInterpretation(queryID, intent, score)

	if qt, ok := m["query_type"].(string); ok && qt != "" {
		in.QueryType = QueryType(qt)
	}
	if entities, ok := m["entities"].(map[string]any); ok {
		for k, v := range entities {
			in.Entities[k] = v
		}
	}
	if params, ok := m["parameters"].(map[string]any); ok {
		for k, v := range params {
			in.Parameters[k] = v
		}
	}
	if md, ok := m["metadata"].(map[string]any); ok {
		for k, v := range md {
			in.Metadata[k] = v
		}
	}
	in.SuggestedActions = append(in.SuggestedActions, toStrings(m["suggested_actions"])...)
	in.ClarificationQuestions = append(in.ClarificationQuestions, toStrings(m["clarification_questions"])...)

	var alts []Alternative
	switch raw := m["alternative_interpretations"].(type) {
	case []map[string]any:
		for _, a := range raw {
			alts = append(alts, alternativeFromMap(a))
		}
	case []any:
		for _, item := range raw {
			if a, ok := item.(map[string]any); ok {
				alts = append(alts, alternativeFromMap(a))
			}
		}
	}
	in.SetAlternatives(alts)

	return in, nil
}

func alternativeFromMap(m map[string]any) Alternative {
	name, _ := m["intent"].(string)
	intent, err := ParseIntent(name)
	if err != nil {
		intent = IntentUnknown
	}
	return Alternative{Intent: intent, Score: toFloat(m["score"])}
}

// toFloat coerces JSON-ish numeric values into float64.
func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return 0
	}
}

// toStrings coerces a []string or JSON-decoded []any into []string.
func toStrings(v any) []string {
	switch s := v.(type) {
	case []string:
		return s
	case []any:
		out := make([]string, 0, len(s))
		for _, item := range s {
			if str, ok := item.(string); ok {
				out = append(out, str)
			}
		}
		return out
	default:
		return nil
	}
}
