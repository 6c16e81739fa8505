package config

import (
	"bytes"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "APP_ENV", "SESSION_SECRET", "SESSION_IDLE_TTL", "SESSION_SWEEP_INTERVAL", "REQUEST_TIMEOUT", "OTEL_EXPORTER_OTLP_ENDPOINT"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	c, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, "5175", c.Port)
	assert.Equal(t, "rps_session", c.SessionCookie)
	assert.Equal(t, DevSecret, c.SessionSecret)
	assert.Equal(t, 2*time.Hour, c.SessionIdle)
	assert.Equal(t, 5*time.Minute, c.SweepInterval)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
	assert.Empty(t, c.OTLPEndpoint)
	assert.False(t, c.Production())
}

func TestParseOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("SESSION_IDLE_TTL", "15m")
	t.Setenv("SESSION_SECRET", "s3cret")
	t.Setenv("APP_ENV", "production")

	c, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, "8080", c.Port)
	assert.Equal(t, 15*time.Minute, c.SessionIdle)
	assert.True(t, c.Production())
}

func TestParseRejectsDevSecretInProduction(t *testing.T) {
	t.Setenv("SESSION_SECRET", "")
	os.Unsetenv("SESSION_SECRET")
	t.Setenv("APP_ENV", "production")

	_, err := Parse()
	assert.ErrorContains(t, err, "SESSION_SECRET")
}

func TestParseRejectsBadDuration(t *testing.T) {
	t.Setenv("SESSION_IDLE_TTL", "soon")
	_, err := Parse()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := Config{
		SessionSecret:  "x",
		SessionIdle:    time.Hour,
		SweepInterval:  time.Minute,
		RequestTimeout: time.Second,
	}
	require.NoError(t, base.Validate())

	prod := base
	prod.AppEnv = "production"
	prod.SessionSecret = DevSecret
	assert.Error(t, prod.Validate())

	noIdle := base
	noIdle.SessionIdle = 0
	assert.Error(t, noIdle.Validate())

	noSecret := base
	noSecret.SessionSecret = ""
	assert.Error(t, noSecret.Validate())
}

func TestSetupLogging(t *testing.T) {
	prevLogger, prevLevel := log.Logger, zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = prevLogger
		zerolog.SetGlobalLevel(prevLevel)
	})

	var buf bytes.Buffer
	Config{LogLevel: "warn", LogFormat: "json"}.SetupLogging(&buf)

	log.Info().Msg("hidden")
	log.Warn().Msg("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"message":"shown"`)
}
