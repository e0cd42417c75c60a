package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_State(t *testing.T) {
	s := NewSession("s-1")

	_, ok := s.GetState("topic")
	assert.False(t, ok)

	s.SetState("topic", "deployments")
	v, ok := s.GetState("topic")
	require.True(t, ok)
	assert.Equal(t, "deployments", v)

	s.MergeState(map[string]any{"previous_intent": "check_status", "topic": "workflows"})
	snapshot := s.StateSnapshot()
	assert.Equal(t, "workflows", snapshot["topic"])
	assert.Equal(t, "check_status", snapshot["previous_intent"])

	// Mutating the snapshot must not affect the session.
	snapshot["topic"] = "tampered"
	v, _ = s.GetState("topic")
	assert.Equal(t, "workflows", v)
}

func TestSession_Records(t *testing.T) {
	s := NewSession("s-1")

	_, ok := s.LastRecord()
	assert.False(t, ok)

	s.AddRecord(QueryRecord{QueryID: "q-1", Intent: IntentCheckStatus, At: time.Now()})
	s.AddRecord(QueryRecord{QueryID: "q-2", Intent: IntentExecuteWorkflow, Executed: true, At: time.Now()})

	records := s.GetRecords()
	require.Len(t, records, 2)

	last, ok := s.LastRecord()
	require.True(t, ok)
	assert.Equal(t, "q-2", last.QueryID)
	assert.True(t, last.Executed)

	// The returned slice is a defensive copy.
	records[0].QueryID = "tampered"
	fresh := s.GetRecords()
	assert.Equal(t, "q-1", fresh[0].QueryID)
}

func TestSession_CloneDiverges(t *testing.T) {
	s := NewSession("s-1")
	s.SetState("k", "v")
	s.AddRecord(QueryRecord{QueryID: "q-1"})

	clone := s.Clone()
	clone.SetState("k", "changed")
	clone.AddRecord(QueryRecord{QueryID: "q-2"})

	v, _ := s.GetState("k")
	assert.Equal(t, "v", v)
	assert.Len(t, s.GetRecords(), 1)
	assert.Len(t, clone.GetRecords(), 2)
}

func TestSession_UpdatedAdvances(t *testing.T) {
	s := NewSession("s-1")
	created := s.Created

	s.SetState("k", "v")
	assert.False(t, s.Updated.Before(created))
}
