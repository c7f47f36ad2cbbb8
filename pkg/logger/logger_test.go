package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/prateleira-api/pkg/logger"
)

func TestNew_JSONConServicioYComponente(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{Env: "production", Level: "debug", Service: "prateleira-api", Out: &buf})

	cl := l.Component("alerts")
	cl.Info().Int("created", 2).Msg("escaneo completado")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "prateleira-api", entry["service"])
	assert.Equal(t, "alerts", entry["component"])
	assert.Equal(t, "info", entry["level"])
	assert.EqualValues(t, 2, entry["created"])
}

func TestNew_NivelFiltra(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{Env: "production", Level: "WARN", Out: &buf})

	l.Info().Msg("oculto")
	assert.Zero(t, buf.Len())

	l.Warn().Msg("visible")
	assert.Contains(t, buf.String(), "visible")
}

func TestNew_NivelDesconocidoUsaInfo(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{Env: "production", Level: "verbose", Out: &buf})

	l.Debug().Msg("oculto")
	assert.Zero(t, buf.Len())
	l.Info().Msg("visible")
	assert.NotZero(t, buf.Len())
}
