package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/raywall/storefront/pkg/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigure(t *testing.T) {
	t.Cleanup(func() {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		zerolog.DefaultContextLogger = nil
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	})

	t.Run("default level info", func(t *testing.T) {
		_ = ConfigureTo(&bytes.Buffer{}, config.LoggingConf{Enabled: true}, "storefront")
		assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
	})

	t.Run("custom level debug", func(t *testing.T) {
		_ = ConfigureTo(&bytes.Buffer{}, config.LoggingConf{Enabled: true, Level: "DEBUG"}, "storefront")
		assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
	})

	t.Run("json carries service name", func(t *testing.T) {
		var buf bytes.Buffer
		l := ConfigureTo(&buf, config.LoggingConf{Enabled: true, Level: "info", Format: "json"}, "storefront")
		l.Info().Str("route", "/users").Msg("hello")

		var line map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
		assert.Equal(t, "storefront", line["service"])
		assert.Equal(t, "hello", line["message"])
		assert.Equal(t, "/users", line["route"])
		assert.NotNil(t, zerolog.DefaultContextLogger)
	})

	t.Run("disabled logger writes nothing", func(t *testing.T) {
		var buf bytes.Buffer
		l := ConfigureTo(&buf, config.LoggingConf{Enabled: false}, "storefront")
		l.Error().Msg("dropped")
		assert.Zero(t, buf.Len())
	})
}
