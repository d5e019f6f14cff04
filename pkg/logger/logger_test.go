package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupReleaseWritesJSON(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })
	var buf bytes.Buffer

	Setup("debug", "release", &buf)
	log.Debug().Str("sku", "WM001").Msg("loaded")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "loaded", line["message"])
	assert.Equal(t, "WM001", line["sku"])
	assert.Equal(t, "debug", line["level"])
}

func TestSetLevelFallsBackToInfo(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })
	var buf bytes.Buffer

	Setup("loud", "release", &buf)
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())

	buf.Reset()
	Log.Debug().Msg("hidden")
	assert.Empty(t, buf.String())
}
