package interpreter

import (
	"strings"
	"time"

	"github.com/hupe1980/queryflow/core"
	"github.com/hupe1980/queryflow/internal/util"
	"github.com/hupe1980/queryflow/logging"
)

// Options configures an Interpreter.
type Options struct {
	// Rules is the pattern table used for classification. Defaults to
	// DefaultRules when nil.
	Rules *RuleSet
	// Logger receives classification diagnostics. Defaults to NoOpLogger.
	Logger logging.Logger
}

// Interpreter classifies queries into interpretations. It is stateless apart
// from its immutable rule table and safe for concurrent use.
type Interpreter struct {
	rules  *RuleSet
	logger logging.Logger
}

// New creates an Interpreter.
func New(optFns ...func(o *Options)) *Interpreter {
	opts := Options{
		Rules:  DefaultRules(),
		Logger: logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Rules == nil {
		opts.Rules = DefaultRules()
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}

	return &Interpreter{rules: opts.Rules, logger: opts.Logger}
}

// Interpret classifies the query and returns a fully populated
// Interpretation. It never returns an error: when no rule matches with a
// usable score the interpretation degrades to the unknown intent with the
// clarification guidance the confidence policy demands. The same query text
// always yields the same intent, score and guidance.
func (i *Interpreter) Interpret(q *core.Query) *core.Interpretation {
	start := time.Now()
	lowered := strings.ToLower(q.Text)

	candidates := i.rules.Candidates(lowered)

	intent := core.IntentUnknown
	score := 0.0
	if len(candidates) > 0 && candidates[0].Score >= MinCandidateScore {
		intent = candidates[0].Intent
		score = candidates[0].Score
	}

	in := core.NewInterpretation(q.ID, intent, score)
	in.QueryType = detectQueryType(q, lowered)
	in.Entities = extractEntities(intent, lowered)
	in.Parameters = extractParameters(intent, q.Text)
	in.SetAlternatives(candidates)

	i.attachGuidance(in)

	in.Metadata["candidate_count"] = len(candidates)
	in.Metadata["interpreted_in_ms"] = time.Since(start).Milliseconds()

	i.logger.Info("query interpreted",
		"query_id", q.ID,
		"intent", intent.String(),
		"confidence_score", score,
		"confidence_level", in.ConfidenceLevel.String(),
		"query_type", string(in.QueryType),
	)

	return in
}

// attachGuidance derives suggested actions and clarification questions from
// the confidence policy, the intent category and the alternative candidates.
func (i *Interpreter) attachGuidance(in *core.Interpretation) {
	if in.ConfidenceLevel.CanAutoExecute() && in.Intent.RequiresExecution() {
		in.SuggestedActions = append(in.SuggestedActions,
			i.render("Execute {{.action}} directly.", map[string]any{
				"action": intentAction(in.Intent),
			}),
		)
	}

	if in.Intent.IsInformational() {
		in.SuggestedActions = append(in.SuggestedActions,
			"Retrieve and display the requested information.",
		)
	}

	if in.ConfidenceLevel.ShouldSuggestAlternatives() {
		in.SuggestedActions = append(in.SuggestedActions,
			i.render("Confirm that you want to {{.action}}.", map[string]any{
				"action": intentAction(in.Intent),
			}),
		)
		for _, alt := range in.Alternatives {
			in.SuggestedActions = append(in.SuggestedActions,
				i.render("Rephrase your request if you meant to {{.action}}.", map[string]any{
					"action": intentAction(alt.Intent),
				}),
			)
		}
	}

	if !in.ConfidenceLevel.RequiresClarification() {
		return
	}

	if in.Intent == core.IntentUnknown {
		in.ClarificationQuestions = append(in.ClarificationQuestions,
			"I could not work out what you are asking for. Could you rephrase it?",
			"Are you trying to search for something, analyze content, or run a workflow?",
		)
		return
	}

	in.ClarificationQuestions = append(in.ClarificationQuestions,
		i.render("Did you mean to {{.action}}?", map[string]any{
			"action": intentAction(in.Intent),
		}),
		"Could you add more detail to your request?",
	)
}

// render expands a guidance template, falling back to the raw text when the
// template is malformed so guidance generation never aborts interpretation.
func (i *Interpreter) render(text string, data map[string]any) string {
	out, err := util.RenderTemplate(text, data)
	if err != nil {
		i.logger.Warn("guidance template failed", "template", text, "error", err)
		return text
	}
	return out
}

// intentAction turns an intent name into a readable action phrase.
func intentAction(intent core.Intent) string {
	return strings.ReplaceAll(intent.String(), "_", " ")
}

// imperativeVerbs are the leading words that mark a query as a command.
var imperativeVerbs = map[string]struct{}{
	"execute": {}, "run": {}, "start": {}, "launch": {}, "trigger": {},
	"stop": {}, "create": {}, "delete": {}, "list": {}, "show": {},
	"find": {}, "search": {}, "locate": {}, "analyze": {}, "compare": {},
	"summarize": {}, "configure": {}, "enable": {}, "disable": {},
	"check": {}, "get": {}, "fetch": {}, "display": {},
}

// interrogativeWords are the leading words that mark a query as natural
// language even without a question mark.
var interrogativeWords = map[string]struct{}{
	"what": {}, "who": {}, "when": {}, "where": {}, "why": {}, "how": {},
	"which": {}, "can": {}, "could": {}, "would": {}, "should": {},
	"is": {}, "are": {}, "do": {}, "does": {}, "did": {},
}

// detectQueryType applies the detection order: session state wins, then the
// imperative form, then interrogative markers, then the structured fallback.
func detectQueryType(q *core.Query, lowered string) core.QueryType {
	if q.HasSessionState() {
		return core.QueryTypeConversational
	}

	fields := strings.Fields(lowered)
	if len(fields) > 0 {
		first := strings.Trim(fields[0], ",.!?:;")
		if _, ok := imperativeVerbs[first]; ok {
			return core.QueryTypeCommand
		}
		if _, ok := interrogativeWords[first]; ok {
			return core.QueryTypeNaturalLanguage
		}
	}
	if strings.Contains(lowered, "?") {
		return core.QueryTypeNaturalLanguage
	}

	return core.QueryTypeStructured
}
