package log

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		out = append(out, m)
	}
	return out
}

func TestLoggerFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerWithWriter(&buf, zapcore.DebugLevel).With("request_id", "abc")
	l.Warn("chunk skipped", map[string]any{"index": 2})

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	require.Equal(t, "warn", lines[0]["level"])
	require.Equal(t, "chunk skipped", lines[0]["message"])
	require.Equal(t, "abc", lines[0]["request_id"])
	require.Contains(t, lines[0], "timestamp")
	fields := lines[0]["fields"].(map[string]any)
	require.Equal(t, float64(2), fields["index"])
}

func TestLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerWithWriter(&buf, zapcore.WarnLevel)
	l.Debug("hidden", nil)
	l.Info("hidden", nil)
	l.Error("shown", nil)
	l.Sugar().Warnf("shown %d", 2)

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 2)
	require.Equal(t, "shown 2", lines[1]["message"])
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("")
	require.NoError(t, err)
	require.Equal(t, zapcore.InfoLevel, lvl)

	lvl, err = ParseLevel("debug")
	require.NoError(t, err)
	require.Equal(t, zapcore.DebugLevel, lvl)

	_, err = ParseLevel("loud")
	require.Error(t, err)
}
