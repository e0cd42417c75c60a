package core

import "fmt"

// ConfidenceLevel is the discretized certainty bucket derived from a
// continuous classification score. The level, not the raw score, drives the
// execution policy (clarification, auto-execution, alternative suggestions).
type ConfidenceLevel string

const (
	// ConfidenceVeryLow covers scores in [0, 0.3).
	ConfidenceVeryLow ConfidenceLevel = "very_low"
	// ConfidenceLow covers scores in [0.3, 0.5).
	ConfidenceLow ConfidenceLevel = "low"
	// ConfidenceMedium covers scores in [0.5, 0.7).
	ConfidenceMedium ConfidenceLevel = "medium"
	// ConfidenceHigh covers scores in [0.7, 0.85).
	ConfidenceHigh ConfidenceLevel = "high"
	// ConfidenceVeryHigh covers scores in [0.85, 1.0]; 1.0 is inclusive.
	ConfidenceVeryHigh ConfidenceLevel = "very_high"
)

// confidenceBand binds a level to its half-open score interval [Min, Max).
// The last band additionally includes Max itself.
type confidenceBand struct {
	Level ConfidenceLevel
	Min   float64
	Max   float64
}

// confidenceBands is ordered ascending; built once, read-only thereafter.
var confidenceBands = []confidenceBand{
	{ConfidenceVeryLow, 0.0, 0.3},
	{ConfidenceLow, 0.3, 0.5},
	{ConfidenceMedium, 0.5, 0.7},
	{ConfidenceHigh, 0.7, 0.85},
	{ConfidenceVeryHigh, 0.85, 1.0},
}

// ConfidenceFromScore maps a score in [0,1] to its confidence level. Scores
// outside the domain are rejected, not clamped; clamping is the documented
// behavior of Interpretation construction only.
func ConfidenceFromScore(score float64) (ConfidenceLevel, error) {
	if score < 0 || score > 1 {
		return "", fmt.Errorf("%w: %v", ErrScoreOutOfRange, score)
	}
	for _, b := range confidenceBands {
		if score >= b.Min && score < b.Max {
			return b.Level, nil
		}
	}
	return ConfidenceVeryHigh, nil // score == 1.0
}

// ParseConfidenceLevel converts a string into a ConfidenceLevel.
func ParseConfidenceLevel(s string) (ConfidenceLevel, error) {
	for _, b := range confidenceBands {
		if string(b.Level) == s {
			return b.Level, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownConfidenceLevel, s)
}

// Bounds returns the score interval [min, max) bound to the level. For
// ConfidenceVeryHigh max (1.0) is inclusive.
func (c ConfidenceLevel) Bounds() (min, max float64) {
	for _, b := range confidenceBands {
		if b.Level == c {
			return b.Min, b.Max
		}
	}
	return 0, 0
}

// RequiresClarification reports whether the level is too weak to act on
// without asking the user to narrow the request.
func (c ConfidenceLevel) RequiresClarification() bool {
	return c == ConfidenceVeryLow || c == ConfidenceLow
}

// CanAutoExecute reports whether the level permits automatic execution.
// Only the very_high bucket qualifies.
func (c ConfidenceLevel) CanAutoExecute() bool { return c == ConfidenceVeryHigh }

// ShouldSuggestAlternatives reports whether runner-up classifications should
// be surfaced to the caller.
func (c ConfidenceLevel) ShouldSuggestAlternatives() bool {
	return c == ConfidenceLow || c == ConfidenceMedium
}

// RiskLevel returns the operational risk label bound to the level.
func (c ConfidenceLevel) RiskLevel() string {
	switch c {
	case ConfidenceVeryLow:
		return "high"
	case ConfidenceLow:
		return "high"
	case ConfidenceMedium:
		return "medium"
	case ConfidenceHigh:
		return "low"
	case ConfidenceVeryHigh:
		return "minimal"
	default:
		return "high"
	}
}

// IsValid reports whether the value names a defined confidence level.
func (c ConfidenceLevel) IsValid() bool {
	for _, b := range confidenceBands {
		if b.Level == c {
			return true
		}
	}
	return false
}

// String returns the wire representation of the level.
func (c ConfidenceLevel) String() string { return string(c) }

// ConfidenceLevels returns all levels ordered from very_low to very_high.
func ConfidenceLevels() []ConfidenceLevel {
	out := make([]ConfidenceLevel, len(confidenceBands))
	for i, b := range confidenceBands {
		out[i] = b.Level
	}
	return out
}
