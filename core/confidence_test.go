package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfidenceFromScore_Intervals(t *testing.T) {
	cases := []struct {
		score float64
		want  ConfidenceLevel
	}{
		{0.0, ConfidenceVeryLow},
		{0.1, ConfidenceVeryLow},
		{0.29, ConfidenceVeryLow},
		{0.3, ConfidenceLow},
		{0.49, ConfidenceLow},
		{0.5, ConfidenceMedium},
		{0.69, ConfidenceMedium},
		{0.7, ConfidenceHigh},
		{0.84, ConfidenceHigh},
		{0.85, ConfidenceVeryHigh},
		{0.95, ConfidenceVeryHigh},
		{1.0, ConfidenceVeryHigh},
	}

	for _, tc := range cases {
		level, err := ConfidenceFromScore(tc.score)
		assert.NoError(t, err)
		assert.Equal(t, tc.want, level, "score %v", tc.score)
	}
}

func TestConfidenceFromScore_ExactlyOneBand(t *testing.T) {
	// Sweep the domain and verify the returned level's bounds contain the score.
	for s := 0.0; s <= 1.0; s += 0.01 {
		level, err := ConfidenceFromScore(s)
		assert.NoError(t, err)
		min, max := level.Bounds()
		inBand := (s >= min && s < max) || (level == ConfidenceVeryHigh && s == 1.0)
		assert.True(t, inBand, "score %v mapped to %s [%v,%v)", s, level, min, max)
	}
}

func TestConfidenceFromScore_OutOfDomain(t *testing.T) {
	_, err := ConfidenceFromScore(-0.1)
	assert.ErrorIs(t, err, ErrScoreOutOfRange)

	_, err = ConfidenceFromScore(1.1)
	assert.ErrorIs(t, err, ErrScoreOutOfRange)
}

func TestConfidenceLevel_Policy(t *testing.T) {
	assert.True(t, ConfidenceVeryLow.RequiresClarification())
	assert.True(t, ConfidenceLow.RequiresClarification())
	assert.False(t, ConfidenceMedium.RequiresClarification())
	assert.False(t, ConfidenceHigh.RequiresClarification())
	assert.False(t, ConfidenceVeryHigh.RequiresClarification())

	for _, level := range ConfidenceLevels() {
		assert.Equal(t, level == ConfidenceVeryHigh, level.CanAutoExecute(), "level %s", level)
	}

	assert.False(t, ConfidenceVeryLow.ShouldSuggestAlternatives())
	assert.True(t, ConfidenceLow.ShouldSuggestAlternatives())
	assert.True(t, ConfidenceMedium.ShouldSuggestAlternatives())
	assert.False(t, ConfidenceHigh.ShouldSuggestAlternatives())
	assert.False(t, ConfidenceVeryHigh.ShouldSuggestAlternatives())
}

func TestConfidenceLevel_RiskLevel(t *testing.T) {
	assert.Equal(t, "high", ConfidenceVeryLow.RiskLevel())
	assert.Equal(t, "high", ConfidenceLow.RiskLevel())
	assert.Equal(t, "medium", ConfidenceMedium.RiskLevel())
	assert.Equal(t, "low", ConfidenceHigh.RiskLevel())
	assert.Equal(t, "minimal", ConfidenceVeryHigh.RiskLevel())
}

func TestParseConfidenceLevel(t *testing.T) {
	level, err := ParseConfidenceLevel("medium")
	assert.NoError(t, err)
	assert.Equal(t, ConfidenceMedium, level)

	_, err = ParseConfidenceLevel("extreme")
	assert.ErrorIs(t, err, ErrUnknownConfidenceLevel)
}
