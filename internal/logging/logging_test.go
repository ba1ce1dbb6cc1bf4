package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_JSONRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, "warn", "json")
	require.NoError(t, err)

	log.Info("hidden")
	log.Warn("photo ambiguous", zap.String("teacher", "Jay sir"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "photo ambiguous", entry["msg"])
	assert.Equal(t, "Jay sir", entry["teacher"])
}

func TestNew_ConsoleDefault(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, "", "")
	require.NoError(t, err)

	log.Info("listening", zap.String("addr", "127.0.0.1:8501"))
	assert.Contains(t, buf.String(), "listening")
	assert.Contains(t, buf.String(), "127.0.0.1:8501")
}

func TestNew_Invalid(t *testing.T) {
	_, err := New(&bytes.Buffer{}, "loud", "json")
	assert.Error(t, err)
	_, err = New(&bytes.Buffer{}, "info", "xml")
	assert.Error(t, err)
}
