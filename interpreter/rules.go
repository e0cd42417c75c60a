package interpreter

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hupe1980/queryflow/core"
)

const (
	// MatchWeight is the score contributed by each matching pattern in a group.
	MatchWeight = 0.3
	// MaxGroupScore caps the score of a single pattern group.
	MaxGroupScore = 0.9
	// MinCandidateScore is the floor below which the best candidate degrades
	// to the unknown intent.
	MinCandidateScore = 0.1
)

// PatternGroup is a list of lower-case substrings matched against the query
// text. The group score is min(matchCount x MatchWeight, MaxGroupScore).
type PatternGroup []string

// score counts how many of the group's patterns occur in the text.
func (g PatternGroup) score(text string) float64 {
	matches := 0
	for _, p := range g {
		if p != "" && strings.Contains(text, p) {
			matches++
		}
	}
	if matches == 0 {
		return 0
	}
	s := float64(matches) * MatchWeight
	if s > MaxGroupScore {
		s = MaxGroupScore
	}
	return s
}

// RuleSet binds intents to their pattern groups. An intent's score against a
// text is the maximum score across its groups; intents with no matching
// pattern are omitted from the candidate set. A RuleSet is immutable after
// construction and safe for concurrent use.
type RuleSet struct {
	groups map[core.Intent][]PatternGroup
}

// NewRuleSet builds a RuleSet from explicit per-intent groups. Patterns are
// lower-cased; intents outside the closed set are rejected.
func NewRuleSet(groups map[core.Intent][]PatternGroup) (*RuleSet, error) {
	rs := &RuleSet{groups: make(map[core.Intent][]PatternGroup, len(groups))}
	for intent, gs := range groups {
		if !intent.IsValid() {
			return nil, fmt.Errorf("%w: %q", core.ErrUnknownIntent, intent)
		}
		copied := make([]PatternGroup, 0, len(gs))
		for _, g := range gs {
			ng := make(PatternGroup, 0, len(g))
			for _, p := range g {
				p = strings.ToLower(strings.TrimSpace(p))
				if p != "" {
					ng = append(ng, p)
				}
			}
			if len(ng) > 0 {
				copied = append(copied, ng)
			}
		}
		if len(copied) > 0 {
			rs.groups[intent] = copied
		}
	}
	return rs, nil
}

// Score returns the intent's score against the lower-cased text: the maximum
// group score, or 0 when no pattern matches.
func (rs *RuleSet) Score(intent core.Intent, text string) float64 {
	best := 0.0
	for _, g := range rs.groups[intent] {
		if s := g.score(text); s > best {
			best = s
		}
	}
	return best
}

// Candidates scores every intent with at least one matching pattern and
// returns them ordered by (score, priority) descending; the intent name
// breaks remaining ties for determinism.
func (rs *RuleSet) Candidates(text string) []core.Alternative {
	out := make([]core.Alternative, 0, len(rs.groups))
	for intent := range rs.groups {
		if s := rs.Score(intent, text); s > 0 {
			out = append(out, core.Alternative{Intent: intent, Score: s})
		}
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].Score != out[b].Score {
			return out[a].Score > out[b].Score
		}
		if out[a].Intent.Priority() != out[b].Intent.Priority() {
			return out[a].Intent.Priority() > out[b].Intent.Priority()
		}
		return out[a].Intent < out[b].Intent
	})
	return out
}

// Intents returns the intents covered by this rule set in deterministic order.
func (rs *RuleSet) Intents() []core.Intent {
	out := make([]core.Intent, 0, len(rs.groups))
	for intent := range rs.groups {
		out = append(out, intent)
	}
	sort.Slice(out, func(a, b int) bool { return out[a] < out[b] })
	return out
}

// Groups returns a defensive copy of the pattern groups for an intent.
func (rs *RuleSet) Groups(intent core.Intent) []PatternGroup {
	gs := rs.groups[intent]
	out := make([]PatternGroup, len(gs))
	for i, g := range gs {
		out[i] = append(PatternGroup{}, g...)
	}
	return out
}

// rulesFile is the YAML wire form of a RuleSet.
type rulesFile struct {
	Intents map[string][][]string `yaml:"intents"`
}

// LoadRules reads a YAML rule table, e.g.:
//
//	intents:
//	  search_documents:
//	    - [find, search, locate, document, file, report]
//	  execute_workflow:
//	    - [execute, run, start, launch, trigger, workflow]
//
// Intent names outside the closed set are rejected.
func LoadRules(r io.Reader) (*RuleSet, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read rules: %w", err)
	}
	return ParseRules(data)
}

// ParseRules parses a YAML rule table from bytes.
func ParseRules(data []byte) (*RuleSet, error) {
	var file rulesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse rules: %w", err)
	}

	groups := make(map[core.Intent][]PatternGroup, len(file.Intents))
	for name, rawGroups := range file.Intents {
		intent, err := core.ParseIntent(name)
		if err != nil {
			return nil, err
		}
		gs := make([]PatternGroup, len(rawGroups))
		for i, raw := range rawGroups {
			gs[i] = PatternGroup(raw)
		}
		groups[intent] = gs
	}

	return NewRuleSet(groups)
}

// Encode writes the rule set back out as YAML.
func (rs *RuleSet) Encode(w io.Writer) error {
	file := rulesFile{Intents: make(map[string][][]string, len(rs.groups))}
	for intent, gs := range rs.groups {
		raw := make([][]string, len(gs))
		for i, g := range gs {
			raw[i] = append([]string{}, g...)
		}
		file.Intents[intent.String()] = raw
	}
	return yaml.NewEncoder(w).Encode(file)
}

// DefaultRules returns the built-in rule table covering every classifiable
// intent. The patterns are deliberately plain substrings; matching is a
// heuristic, not a grammar.
func DefaultRules() *RuleSet {
	rs, err := NewRuleSet(map[core.Intent][]PatternGroup{
		core.IntentSearchDocuments: {
			{"find", "search", "locate", "document", "file", "report"},
			{"look for", "look up"},
		},
		core.IntentRetrieveInformation: {
			{"what is", "what are", "tell me about", "show me", "who is", "describe"},
		},
		core.IntentListResources: {
			{"list", "show all", "display all", "resource", "inventory", "catalog"},
		},
		core.IntentAnalyzeContent: {
			{"analyze", "analysis", "examine", "inspect", "evaluate", "assess"},
		},
		core.IntentCompareItems: {
			{"compare", "versus", " vs ", "difference between", "contrast"},
		},
		core.IntentSummarizeContent: {
			{"summarize", "summary", "condense", "brief overview", "key points"},
		},
		core.IntentExecuteWorkflow: {
			{"execute", "run", "start", "launch", "trigger", "workflow"},
		},
		core.IntentCreateWorkflow: {
			{"create workflow", "new workflow", "define workflow", "modify workflow", "update workflow", "build a workflow"},
		},
		core.IntentCheckStatus: {
			{"status", "health", "is it running", "uptime", "online", "availability"},
		},
		core.IntentGetMetrics: {
			{"metrics", "statistics", "stats", "usage", "performance", "how many"},
		},
		core.IntentConfigureSystem: {
			{"configure", "setting", "enable", "disable", "change the config", "set up"},
		},
		core.IntentGreeting: {
			{"hello", "hi there", "hey", "good morning", "good afternoon", "good evening"},
		},
		core.IntentClarification: {
			{"what do you mean", "clarify", "i don't understand", "can you explain", "confused"},
		},
		core.IntentAcknowledgment: {
			{"thanks", "thank you", "got it", "okay", "sounds good", "perfect"},
		},
	})
	if err != nil { // unreachable: the table above only names valid intents
		panic(err)
	}
	return rs
}
