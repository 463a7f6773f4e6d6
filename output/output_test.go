package output

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/arjunmahishi/snipq/snipq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var result = &snipq.Result{
	Code:      "if a < b {\n}",
	Start:     4,
	End:       16,
	StartLine: 2,
	EndLine:   3,
}

func TestWritePlain(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(Config{Output: &buf}).Write(result))
	assert.Equal(t, "if a < b {\n}\n", buf.String())
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(Config{JSON: true, Compact: true, Output: &buf}).Write(result))
	assert.Equal(t,
		`{"code":"if a < b {\n}","start":4,"end":16,"start_line":2,"end_line":3,"disjoint":false}`+"\n",
		buf.String(),
	)
}

func TestWriteJSONShort(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(Config{JSON: true, Short: true, Compact: true, Output: &buf}).Write(result))
	assert.Equal(t, `{"start":4,"end":16,"start_line":2,"end_line":3,"disjoint":false}`+"\n", buf.String())
}

func TestWriteJSONIndented(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(Config{Output: &buf}).WriteValue(map[string]int{"a": 1}))
	assert.Equal(t, "{\n  \"a\": 1\n}\n", buf.String())
}

func TestWriteError(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteError(&buf, errors.New("selector not found: .x")))
	assert.Equal(t, `{"error":"selector not found: .x"}`+"\n", buf.String())
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: LevelInfo, Format: FormatJSON, Output: &buf})

	logger.Debug("hidden")
	logger.Info("shown", "n", 1)

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)

	buf.Reset()
	NewLogger(LoggerConfig{Output: &buf}).Info("below default level")
	assert.Empty(t, buf.String())
}

func TestLoggerConfigOverride(t *testing.T) {
	base := DefaultLoggerConfig()
	assert.Equal(t, LevelWarn, base.Level)
	assert.Equal(t, FormatText, base.Format)

	cfg := base.Override("debug", "")
	assert.Equal(t, LevelDebug, cfg.Level)
	assert.Equal(t, FormatText, cfg.Format)
	assert.Equal(t, base.Output, cfg.Output)

	var buf bytes.Buffer
	cfg = base.Override("", "json")
	cfg.Output = &buf
	logger := NewLogger(cfg)
	logger.Info("hidden")
	logger.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"level":"WARN"`)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		level LogLevel
		want  slog.Level
	}{
		{LevelDebug, slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{LevelError, slog.LevelError},
		{"", slog.LevelWarn},
		{"verbose", slog.LevelWarn},
	}
	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.level))
		})
	}
}
