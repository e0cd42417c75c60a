// Package interpreter implements the deterministic, pattern-based classifier
// that turns a validated core.Query into a core.Interpretation. It contains:
//
//   - RuleSet: immutable per-intent pattern groups with substring scoring
//     (built-in defaults or loaded from YAML)
//   - Interpreter: the pure classification function (intent selection,
//     query type detection, entity/parameter extraction, suggested actions,
//     clarification questions, alternative interpretations)
//
// The interpreter never fails for a valid Query: classification ambiguity
// degrades to the unknown intent with low confidence rather than an error.
// Rule tables are built once and are safe for concurrent use.
package interpreter
