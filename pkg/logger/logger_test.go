package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Level(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, New("debug").GetLevel())
	assert.Equal(t, logrus.InfoLevel, New("loud").GetLevel())
}

func TestNew_WritesJSON(t *testing.T) {
	var buf bytes.Buffer
	log := newWithOutput("info", &buf)

	log.WithFields(logrus.Fields{"service": "incident", "method": "Verify"}).Info("Recording verification")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "incident", entry["service"])
	assert.Equal(t, "Recording verification", entry["msg"])
	assert.Equal(t, "info", entry["level"])
}
