package config

import (
	"bytes"
	"encoding/json"
	"runtime"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, runtime.NumCPU(), cfg.Workers)
	assert.Equal(t, 5, cfg.Iterations)
	assert.Equal(t, int64(0), cfg.Seed)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoadEnvironment(t *testing.T) {
	t.Setenv("HASHFLOOD_WORKERS", "3")
	t.Setenv("HASHFLOOD_ITERATIONS", "7")
	t.Setenv("HASHFLOOD_SEED", "42")
	t.Setenv("HASHFLOOD_LOG_LEVEL", "debug")
	t.Setenv("HASHFLOOD_LOG_FORMAT", "json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, Config{
		Workers:    3,
		Iterations: 7,
		Seed:       42,
		LogLevel:   "debug",
		LogFormat:  "json",
	}, cfg)
}

func TestLoadInvalid(t *testing.T) {
	t.Setenv("HASHFLOOD_WORKERS", "many")

	_, err := Load()
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger("debug", "json", &buf)
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, logger.Level)

	logger.WithField("collider", "DJBX31A").Debug("hello")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "DJBX31A", entry["collider"])

	logger, err = NewLogger("info", "text", &buf)
	require.NoError(t, err)
	assert.IsType(t, &prefixed.TextFormatter{}, logger.Formatter)
}

func TestNewLoggerInvalid(t *testing.T) {
	_, err := NewLogger("loud", "text", &bytes.Buffer{})
	assert.Error(t, err)

	_, err = NewLogger("info", "xml", &bytes.Buffer{})
	assert.Error(t, err)
}
