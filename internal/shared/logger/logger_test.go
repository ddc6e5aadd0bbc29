package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"mflix-catalog/internal/shared/contextkeys"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerInterface_Contract(t *testing.T) {
	var _ Logger = NewLogger()
	var _ Logger = NewLoggerWithConfig("info", "json")
	var _ Logger = New(Options{Backend: BackendZap})
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		entry := map[string]interface{}{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry), line)
		out = append(out, entry)
	}
	return out
}

func TestLogrusLogger_JSONFieldsAndContext(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{Backend: BackendLogrus, Level: "debug", Format: "json", Output: buf})

	ctx := context.WithValue(context.Background(), contextkeys.RequestIDKey, "req-1")
	ctx = context.WithValue(ctx, contextkeys.OperationKey, "create_index")

	log.WithComponent("catalog").
		WithContext(ctx).
		WithFields(map[string]interface{}{"index": "title_1"}).
		Info("Index created")

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "Index created", lines[0]["message"])
	assert.Equal(t, "info", lines[0]["level"])
	assert.Equal(t, "catalog", lines[0]["component"])
	assert.Equal(t, "req-1", lines[0]["request_id"])
	assert.Equal(t, "create_index", lines[0]["operation"])
	assert.Equal(t, "title_1", lines[0]["index"])
}

func TestLogrusLogger_LevelFiltering(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{Level: "warn", Format: "json", Output: buf})

	log.Info("dropped")
	log.Debugf("dropped %d", 1)
	log.Warnf("kept %d", 2)

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "kept 2", lines[0]["message"])
}

func TestLogrusLogger_WithContextWithoutValues(t *testing.T) {
	log := NewLoggerWithConfig("info", "text")
	assert.Same(t, log, log.WithContext(context.Background()))
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]logrus.Level{
		"DEBUG":   logrus.DebugLevel,
		"debug":   logrus.DebugLevel,
		"warning": logrus.WarnLevel,
		"ERROR":   logrus.ErrorLevel,
		"fatal":   logrus.FatalLevel,
		"":        logrus.InfoLevel,
		"bogus":   logrus.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, parseLogLevel(in), in)
	}
}

func TestSelectFormatter(t *testing.T) {
	_, isJSON := selectFormatter("json", "").(*logrus.JSONFormatter)
	assert.True(t, isJSON)

	_, isJSON = selectFormatter("", "production").(*logrus.JSONFormatter)
	assert.True(t, isJSON)

	_, isText := selectFormatter("text", "development").(*logrus.TextFormatter)
	assert.True(t, isText)
}

func TestZapLogger_JSONFieldsAndContext(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{Backend: "ZAP", Level: "debug", Format: "json", Output: buf})
	require.IsType(t, &ZapLogger{}, log)

	ctx := context.WithValue(context.Background(), contextkeys.RequestIDKey, "req-9")
	log.WithComponent("http").
		WithContext(ctx).
		WithFields(map[string]interface{}{"count": 3}).
		Infof("listed %s", "indexes")

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "listed indexes", lines[0]["message"])
	assert.Equal(t, "http", lines[0]["component"])
	assert.Equal(t, "req-9", lines[0]["request_id"])
	assert.EqualValues(t, 3, lines[0]["count"])
}

func TestZapLogger_LevelFiltering(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{Backend: BackendZap, Level: "error", Format: "json", Output: buf})

	log.Warn("dropped")
	log.Error("kept")

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "kept", lines[0]["message"])
}
