package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/queryflow/core"
)

func TestInMemoryStore_LazyGet(t *testing.T) {
	store := NewInMemoryStore()

	sess, err := store.Get("s-1")
	require.NoError(t, err)
	assert.Equal(t, "s-1", sess.ID)
	assert.Empty(t, sess.GetRecords())
}

func TestInMemoryStore_AppendRecord(t *testing.T) {
	store := NewInMemoryStore()

	record := core.QueryRecord{
		QueryID:         "q-1",
		Text:            "Execute workflow analysis-42",
		Intent:          core.IntentExecuteWorkflow,
		ConfidenceScore: 0.6,
		Executed:        false,
		At:              time.Now().UTC(),
	}
	require.NoError(t, store.AppendRecord("s-1", record))

	sess, err := store.Get("s-1")
	require.NoError(t, err)

	records := sess.GetRecords()
	require.Len(t, records, 1)
	assert.Equal(t, "q-1", records[0].QueryID)
	assert.Equal(t, core.IntentExecuteWorkflow, records[0].Intent)

	last, ok := sess.LastRecord()
	require.True(t, ok)
	assert.Equal(t, record.QueryID, last.QueryID)
}

func TestInMemoryStore_ApplyDelta(t *testing.T) {
	store := NewInMemoryStore()

	require.NoError(t, store.ApplyDelta("s-1", map[string]any{"previous_intent": "check_status"}))
	require.NoError(t, store.ApplyDelta("s-1", map[string]any{"topic": "deployments"}))

	sess, err := store.Get("s-1")
	require.NoError(t, err)

	state := sess.StateSnapshot()
	assert.Equal(t, "check_status", state["previous_intent"])
	assert.Equal(t, "deployments", state["topic"])
}

func TestInMemoryStore_ReturnsClones(t *testing.T) {
	store := NewInMemoryStore()

	first, err := store.Get("s-1")
	require.NoError(t, err)
	first.SetState("mutated", true)

	second, err := store.Get("s-1")
	require.NoError(t, err)
	_, ok := second.GetState("mutated")
	assert.False(t, ok, "mutations on returned clones must not leak into the store")
}

func TestInMemoryStore_CreateOverwrites(t *testing.T) {
	store := NewInMemoryStore()

	require.NoError(t, store.ApplyDelta("s-1", map[string]any{"k": "v"}))

	fresh, err := store.Create("s-1")
	require.NoError(t, err)
	assert.Empty(t, fresh.StateSnapshot())
}
