package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSONRespectsLevel(t *testing.T) {
	var buffer bytes.Buffer
	logger := New(&buffer, "json", "warn")

	logger.Info("hidden")
	logger.Warn("refresh failed", "slug", "hello-world")

	lines := strings.Split(strings.TrimSpace(buffer.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "refresh failed", entry["msg"])
	assert.Equal(t, "hello-world", entry["slug"])
}

func TestNewText(t *testing.T) {
	var buffer bytes.Buffer
	New(&buffer, "TEXT", "debug").Debug("hello", "k", "v")

	assert.Contains(t, buffer.String(), "msg=hello")
	assert.Contains(t, buffer.String(), "k=v")
}
