package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInterpretation_ClampsScore(t *testing.T) {
	low := NewInterpretation("q-1", IntentSearchDocuments, -0.4)
	assert.Equal(t, 0.0, low.ConfidenceScore)
	assert.Equal(t, ConfidenceVeryLow, low.ConfidenceLevel)

	high := NewInterpretation("q-1", IntentSearchDocuments, 1.7)
	assert.Equal(t, 1.0, high.ConfidenceScore)
	assert.Equal(t, ConfidenceVeryHigh, high.ConfidenceLevel)
}

func TestInterpretation_CanExecuteGrid(t *testing.T) {
	// can_execute must hold exactly when the intent requires execution, the
	// level allows auto-execution, and parameters are present.
	for _, intent := range Intents() {
		for _, level := range ConfidenceLevels() {
			for _, withParams := range []bool{false, true} {
				min, _ := level.Bounds()
				in := NewInterpretation("q-1", intent, min)
				require.Equal(t, level, in.ConfidenceLevel)

				if withParams {
					in.Parameters["workflow_id"] = "wf-1"
				}

				want := intent.RequiresExecution() && level.CanAutoExecute() && withParams
				assert.Equal(t, want, in.CanExecute(), "intent=%s level=%s params=%v", intent, level, withParams)
			}
		}
	}
}

func TestInterpretation_NeedsClarification(t *testing.T) {
	weak := NewInterpretation("q-1", IntentUnknown, 0.1)
	assert.True(t, weak.NeedsClarification())

	confident := NewInterpretation("q-1", IntentSearchDocuments, 0.9)
	assert.False(t, confident.NeedsClarification())

	confident.ClarificationQuestions = append(confident.ClarificationQuestions, "Which document set?")
	assert.True(t, confident.NeedsClarification())
}

func TestInterpretation_SetAlternatives(t *testing.T) {
	in := NewInterpretation("q-1", IntentSearchDocuments, 0.6)
	in.SetAlternatives([]Alternative{
		{Intent: IntentSearchDocuments, Score: 0.55}, // chosen intent, dropped
		{Intent: IntentRetrieveInformation, Score: 0.5},
		{Intent: IntentListResources, Score: 0.2}, // at threshold, dropped
		{Intent: IntentAnalyzeContent, Score: 0.3},
		{Intent: IntentSummarizeContent, Score: 0.45},
		{Intent: IntentCompareItems, Score: 0.25},
	})

	assert.LessOrEqual(t, len(in.Alternatives), 3)
	for i, alt := range in.Alternatives {
		assert.NotEqual(t, in.Intent, alt.Intent)
		assert.Greater(t, alt.Score, 0.2)
		if i > 0 {
			assert.GreaterOrEqual(t, in.Alternatives[i-1].Score, alt.Score)
		}
	}
	assert.Equal(t, IntentRetrieveInformation, in.Alternatives[0].Intent)
}

func TestInterpretation_MapRoundTrip(t *testing.T) {
	in := NewInterpretation("q-7", IntentExecuteWorkflow, 0.9)
	in.QueryType = QueryTypeCommand
	in.Entities["workflow_type"] = "analysis"
	in.Parameters["workflow_id"] = "wf-1"
	in.SuggestedActions = append(in.SuggestedActions, "Execute the workflow directly")
	in.SetAlternatives([]Alternative{{Intent: IntentCreateWorkflow, Score: 0.3}})

	restored, err := InterpretationFromMap(in.ToMap())
	require.NoError(t, err)

	assert.Equal(t, in.QueryID, restored.QueryID)
	assert.Equal(t, in.Intent, restored.Intent)
	assert.Equal(t, in.ConfidenceLevel, restored.ConfidenceLevel)
	assert.Equal(t, in.ConfidenceScore, restored.ConfidenceScore)
	assert.Equal(t, in.QueryType, restored.QueryType)
	assert.Equal(t, in.Entities, restored.Entities)
	assert.Equal(t, in.Parameters, restored.Parameters)
	assert.Equal(t, in.Alternatives, restored.Alternatives)

	// Derived properties must be recomputed, not copied.
	assert.Equal(t, in.CanExecute(), restored.CanExecute())
	assert.Equal(t, in.NeedsClarification(), restored.NeedsClarification())
}

func TestInterpretationFromMap_RejectsUnknownIntent(t *testing.T) {
	_, err := InterpretationFromMap(map[string]any{
		"query_id": "q-1",
		"intent":   "teleport",
	})
	assert.ErrorIs(t, err, ErrUnknownIntent)
}
