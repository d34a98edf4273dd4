package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	formatter, level := log.Formatter, log.GetLevel()
	SetOutput(&buf)
	t.Cleanup(func() {
		SetOutput(os.Stdout)
		log.SetFormatter(formatter)
		log.SetLevel(level)
	})
	return &buf
}

func TestLogMutationErrorJSON(t *testing.T) {
	buf := captureLogs(t)
	Configure("info", "json")

	LogMutationError("asset", "delete", assert.AnError)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "asset", entry["resource"])
	assert.Equal(t, "delete", entry["action"])
	assert.Contains(t, entry["msg"], "catalog save failed")
}

func TestConfigureKeepsLevelOnUnknownValue(t *testing.T) {
	buf := captureLogs(t)
	Configure("warn", "text")
	Configure("loud", "text")

	Info("hidden")
	Warn("shown %d", 1)

	assert.Equal(t, logrus.WarnLevel, Logger().GetLevel())
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown 1")
}
