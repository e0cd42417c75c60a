package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferLogger(level LogLevel) (*QueryFlowLogger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	cfg := DefaultLoggerConfig()
	cfg.Level = level
	cfg.Output = buf
	cfg.AddSource = false
	return NewLogger(cfg), buf
}

func TestQueryFlowLogger_LevelFiltering(t *testing.T) {
	logger, buf := newBufferLogger(LogLevelWarn)

	logger.Debug("debug line")
	logger.Info("info line")
	logger.Warn("warn line")
	logger.Error("error line")

	out := buf.String()
	assert.NotContains(t, out, "debug line")
	assert.NotContains(t, out, "info line")
	assert.Contains(t, out, "warn line")
	assert.Contains(t, out, "error line")
}

func TestQueryFlowLogger_ContextualFields(t *testing.T) {
	logger, buf := newBufferLogger(LogLevelInfo)

	logger.
		WithComponent("interpreter").
		WithQuery("s-1", "q-1").
		WithContext("user_id", "u-1").
		Info("query received")

	out := buf.String()
	assert.Contains(t, out, `"component":"interpreter"`)
	assert.Contains(t, out, `"session_id":"s-1"`)
	assert.Contains(t, out, `"query_id":"q-1"`)
	assert.Contains(t, out, `"user_id":"u-1"`)
}

func TestQueryFlowLogger_WithDoesNotMutateParent(t *testing.T) {
	logger, buf := newBufferLogger(LogLevelInfo)

	_ = logger.WithComponent("executor")
	logger.Info("plain line")

	assert.NotContains(t, buf.String(), `"component"`)
}

func TestQueryFlowLogger_DomainHelpers(t *testing.T) {
	logger, buf := newBufferLogger(LogLevelInfo)

	logger.LogInterpretation("execute_workflow", 0.6, 3*time.Millisecond)
	logger.LogHandlerCall("execute_workflow", 5*time.Millisecond, false, errors.New("engine down"))
	logger.LogCollaboratorCall("workflow_engine", 2*time.Millisecond, true, nil)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "Query interpreted")
	assert.Contains(t, lines[1], "Handler execution failed")
	assert.Contains(t, lines[1], "engine down")
	assert.Contains(t, lines[2], "Collaborator call completed")
}

func TestLogLevel_String(t *testing.T) {
	assert.Equal(t, "DEBUG", LogLevelDebug.String())
	assert.Equal(t, "ERROR", LogLevelError.String())
	assert.Equal(t, "UNKNOWN", LogLevel(42).String())
}

func TestNoOpLogger_ImplementsLogger(t *testing.T) {
	var _ Logger = NoOpLogger{}
	var _ Logger = &SlogAdapter{}
}
