package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTemplate_PlainTextFastPath(t *testing.T) {
	out, err := RenderTemplate("no markers here", nil)
	require.NoError(t, err)
	assert.Equal(t, "no markers here", out)
}

func TestRenderTemplate_Substitution(t *testing.T) {
	out, err := RenderTemplate("Did you mean to {{.action}}?", map[string]any{"action": "execute workflow"})
	require.NoError(t, err)
	assert.Equal(t, "Did you mean to execute workflow?", out)
}

func TestRenderTemplate_Funcs(t *testing.T) {
	out, err := RenderTemplate(`{{upper .name}} / {{default "fallback" .missing}}`, map[string]any{"name": "queryflow"})
	require.NoError(t, err)
	assert.Equal(t, "QUERYFLOW / fallback", out)

	out, err = RenderTemplate(`{{join ", " .items}}`, map[string]any{"items": []any{"a", "b", 3}})
	require.NoError(t, err)
	assert.Equal(t, "a, b, 3", out)
}

func TestRenderTemplate_MalformedTemplate(t *testing.T) {
	_, err := RenderTemplate("{{.unclosed", nil)
	assert.Error(t, err)
}
