package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferedLogger(t *testing.T, format string) (*Logger, *bytes.Buffer) {
	t.Helper()
	log, err := NewLogger(&Config{Level: DebugLevel, Format: format, AppName: "Alertcast", Version: "1.0.0"})
	require.NoError(t, err)
	var buf bytes.Buffer
	log.SetOutput(&buf)
	return log, &buf
}

func decode(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestJSONFormat(t *testing.T) {
	log, buf := newBufferedLogger(t, "json")

	log.WithField("report_id", "r1").WithError(errors.New("boom")).Warn("dispatch degraded")

	entry := decode(t, buf)
	assert.Equal(t, "dispatch degraded", entry["message"])
	assert.Equal(t, "warning", entry["level"])
	assert.Equal(t, "Alertcast", entry["app"])
	assert.Equal(t, "1.0.0", entry["version"])
	assert.Equal(t, "r1", entry["report_id"])
	assert.Equal(t, "boom", entry["error"])
}

func TestWithFieldDoesNotMutateParent(t *testing.T) {
	log, buf := newBufferedLogger(t, "json")

	_ = log.WithField("child", true)
	log.Info("parent")

	assert.NotContains(t, decode(t, buf), "child")
}

func TestWithContext(t *testing.T) {
	log, buf := newBufferedLogger(t, "json")
	ctx := context.WithValue(context.Background(), RequestIDKey, "req-9")
	ctx = context.WithValue(ctx, ReportIDKey, "r9")

	log.WithContext(ctx).Info("hello")

	entry := decode(t, buf)
	assert.Equal(t, "req-9", entry["request_id"])
	assert.Equal(t, "r9", entry["report_id"])
}

func TestLogDispatchSummary(t *testing.T) {
	log, buf := newBufferedLogger(t, "json")

	log.LogDispatchSummary("r1", map[string]int{"push_attempted": 3, "push_failed": 1}, 1500*time.Millisecond)

	entry := decode(t, buf)
	assert.Equal(t, "dispatch_summary", entry["type"])
	assert.Equal(t, float64(3), entry["push_attempted"])
	assert.Equal(t, float64(1), entry["push_failed"])
	assert.Equal(t, float64(1500), entry["duration_ms"])
}

func TestLogAPIRequestLevel(t *testing.T) {
	log, buf := newBufferedLogger(t, "json")

	log.LogAPIRequest("POST", "/publicize_report", 500, time.Millisecond, "")

	entry := decode(t, buf)
	assert.Equal(t, "error", entry["level"])
	assert.NotContains(t, entry, "request_id")
}

func TestTextFormat(t *testing.T) {
	log, buf := newBufferedLogger(t, "text")

	log.WithFields(map[string]interface{}{"b": 2, "a": 1}).Info("ready")

	line := buf.String()
	assert.Contains(t, line, "[INFO]")
	assert.Contains(t, line, "[Alertcast]")
	assert.True(t, strings.HasSuffix(line, "ready a=1 b=2\n"), line)
}

func TestLevelFiltering(t *testing.T) {
	log, buf := newBufferedLogger(t, "json")
	log.SetLevel(ErrorLevel)

	log.Info("dropped")

	assert.Zero(t, buf.Len())
}
