package logger_adapter

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"property-viewer/internal/core/port"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var records []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var rec map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &rec))
		records = append(records, rec)
	}
	return records
}

func TestSlogAdapter_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogAdapter(SlogConfig{Writer: &buf, Level: slog.LevelDebug, IsJSON: true})

	child := logger.WithFields(port.Fields{"component": "coordinator"})
	child.Debug("loading", port.Fields{"attempt": 1})
	child.Error("failed", errors.New("boom"), nil)

	records := decodeLines(t, &buf)
	require.Len(t, records, 2)

	assert.Equal(t, "loading", records[0]["msg"])
	assert.Equal(t, "coordinator", records[0]["component"])
	assert.EqualValues(t, 1, records[0]["attempt"])

	assert.Equal(t, "ERROR", records[1]["level"])
	assert.Equal(t, "boom", records[1]["error"])
}

func TestSlogAdapter_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogAdapter(SlogConfig{Writer: &buf, Level: slog.LevelWarn, IsJSON: true})

	logger.Info("hidden", nil)
	logger.Warn("shown", nil)

	records := decodeLines(t, &buf)
	require.Len(t, records, 1)
	assert.Equal(t, "shown", records[0]["msg"])
}

func TestSlogAdapter_Tint(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogAdapter(SlogConfig{Writer: &buf, UseColor: true})

	logger.Info("hello", port.Fields{"user_id": "u1"})

	assert.Contains(t, buf.String(), "hello")
	assert.Contains(t, buf.String(), "u1")
}

type recordingLogger struct {
	fields port.Fields
	msgs   *[]string
}

func (r *recordingLogger) Info(msg string, _ port.Fields)          { *r.msgs = append(*r.msgs, "info:"+msg) }
func (r *recordingLogger) Warn(msg string, _ port.Fields)          { *r.msgs = append(*r.msgs, "warn:"+msg) }
func (r *recordingLogger) Error(msg string, _ error, _ port.Fields) { *r.msgs = append(*r.msgs, "error:"+msg) }
func (r *recordingLogger) Debug(msg string, _ port.Fields)         { *r.msgs = append(*r.msgs, "debug:"+msg) }
func (r *recordingLogger) WithFields(fields port.Fields) port.LoggerPort {
	return &recordingLogger{fields: fields, msgs: r.msgs}
}

func TestMultiLoggerAdapter(t *testing.T) {
	_, err := NewMultiloggerAdapter()
	require.Error(t, err)

	var a, b []string
	multi, err := NewMultiloggerAdapter(&recordingLogger{msgs: &a}, &recordingLogger{msgs: &b})
	require.NoError(t, err)

	multi.WithFields(port.Fields{"k": "v"}).Warn("careful", nil)
	multi.Error("bad", nil, nil)

	assert.Equal(t, []string{"warn:careful", "error:bad"}, a)
	assert.Equal(t, a, b)
}

func TestNewFluentLoggerAdapter_NilClient(t *testing.T) {
	_, err := NewFluentLoggerAdapter(nil, slog.LevelInfo)
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warn"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}
