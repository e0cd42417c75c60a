package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSchema(t *testing.T) {
	type args struct {
		WorkflowID string  `json:"workflow_id" description:"workflow to run"`
		Priority   int     `json:"priority,omitempty"`
		Threshold  float64 `json:"threshold"`
		DryRun     bool    `json:"dry_run,omitempty"`
		ignored    string  //nolint:unused // unexported fields are skipped
	}

	schema := CreateSchema(args{})

	assert.Equal(t, "object", schema["type"])

	props, ok := schema["properties"].(map[string]any)
	require.True(t, ok)
	assert.Len(t, props, 4)

	wf, ok := props["workflow_id"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "string", wf["type"])
	assert.Equal(t, "workflow to run", wf["description"])

	assert.Equal(t, []string{"workflow_id", "threshold"}, schema["required"])
}

func TestCreateSchema_NonStruct(t *testing.T) {
	schema := CreateSchema("not a struct")
	assert.Equal(t, "object", schema["type"])
	assert.Empty(t, schema["properties"])
}

func TestValidateParameters(t *testing.T) {
	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"workflow_id": map[string]any{"type": "string"},
			"priority":    map[string]any{"type": "integer"},
		},
		"required": []string{"workflow_id"},
	}

	assert.NoError(t, ValidateParameters(map[string]any{"workflow_id": "wf-1"}, schema))
	assert.NoError(t, ValidateParameters(map[string]any{"workflow_id": "wf-1", "priority": 3}, schema))
	// JSON-decoded numbers arrive as float64; whole values pass as integers.
	assert.NoError(t, ValidateParameters(map[string]any{"workflow_id": "wf-1", "priority": float64(3)}, schema))
	// Extra fields not named in the schema are allowed.
	assert.NoError(t, ValidateParameters(map[string]any{"workflow_id": "wf-1", "extra": true}, schema))

	err := ValidateParameters(map[string]any{}, schema)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "workflow_id", verr.Field)

	err = ValidateParameters(map[string]any{"workflow_id": 42}, schema)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "workflow_id", verr.Field)
}

func TestValidateParameters_RequiredFromJSON(t *testing.T) {
	// A schema decoded from JSON carries required as []any.
	schema := map[string]any{
		"type":       "object",
		"properties": map[string]any{"name": map[string]any{"type": "string"}},
		"required":   []any{"name"},
	}

	assert.Error(t, ValidateParameters(map[string]any{}, schema))
	assert.NoError(t, ValidateParameters(map[string]any{"name": "x"}, schema))
}
