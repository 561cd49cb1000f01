package envloader

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsAndOverrides(t *testing.T) {
	type Config struct {
		Table  string  `env:"SF_TABLE" envDefault:"storefront"`
		Port   int     `env:"SF_PORT" envDefault:"8080"`
		Conns  int32   `env:"SF_CONNS" envDefault:"100"`
		Buffer uint64  `env:"SF_BUFFER" envDefault:"1048576"`
		Debug  bool    `env:"SF_DEBUG" envDefault:"1"`
		Ratio  float32 `env:"SF_RATIO" envDefault:"1.5"`
	}

	config := &Config{}
	require.NoError(t, Load(config))
	assert.Equal(t, "storefront", config.Table)
	assert.Equal(t, 8080, config.Port)
	assert.Equal(t, int32(100), config.Conns)
	assert.Equal(t, uint64(1048576), config.Buffer)
	assert.True(t, config.Debug)
	assert.Equal(t, float32(1.5), config.Ratio)

	t.Setenv("SF_TABLE", "shop-dev")
	t.Setenv("SF_PORT", "9090")
	t.Setenv("SF_DEBUG", "false")

	config2 := &Config{}
	require.NoError(t, Load(config2))
	assert.Equal(t, "shop-dev", config2.Table)
	assert.Equal(t, 9090, config2.Port)
	assert.False(t, config2.Debug)
}

func TestLoad_KeepsPresetValues(t *testing.T) {
	type Config struct {
		Table string `env:"SF_TABLE" envDefault:"storefront"`
		Port  int    `env:"SF_PORT" envDefault:"8080"`
	}

	// values decoded from YAML beat the defaults
	config := &Config{Table: "from-yaml", Port: 3000}
	require.NoError(t, Load(config))
	assert.Equal(t, "from-yaml", config.Table)
	assert.Equal(t, 3000, config.Port)

	// but not the environment
	t.Setenv("SF_PORT", "4000")
	require.NoError(t, Load(config))
	assert.Equal(t, 4000, config.Port)
}

func TestLoad_DurationAndSlices(t *testing.T) {
	type Config struct {
		Timeout time.Duration `env:"SF_TIMEOUT" envDefault:"3s"`
		Tags    []string      `env:"SF_TAGS"`
	}

	config := &Config{}
	require.NoError(t, Load(config))
	assert.Equal(t, 3*time.Second, config.Timeout)
	assert.Nil(t, config.Tags)

	t.Setenv("SF_TIMEOUT", "250ms")
	t.Setenv("SF_TAGS", "env:dev, team:shop,,")
	config2 := &Config{}
	require.NoError(t, Load(config2))
	assert.Equal(t, 250*time.Millisecond, config2.Timeout)
	assert.Equal(t, []string{"env:dev", "team:shop"}, config2.Tags)
}

func TestLoad_Required(t *testing.T) {
	type Config struct {
		Bucket string `env:"SF_BUCKET" envRequired:"true"`
	}

	err := Load(&Config{})
	var missing *MissingEnvError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "SF_BUCKET", missing.EnvVar)

	assert.NoError(t, Load(&Config{Bucket: "preset"}))

	t.Setenv("SF_BUCKET", "seed")
	config := &Config{}
	require.NoError(t, Load(config))
	assert.Equal(t, "seed", config.Bucket)
}

func TestLoad_WithoutEnvTag(t *testing.T) {
	type Config struct {
		Port string `env:"SF_PORT" envDefault:"8080"`
		Host string
	}

	config := &Config{Host: "original"}
	require.NoError(t, Load(config))
	assert.Equal(t, "8080", config.Port)
	assert.Equal(t, "original", config.Host)
}

func TestLoad_NestedStructs(t *testing.T) {
	type StoreConf struct {
		Table    string `env:"SF_TABLE" envDefault:"storefront"`
		Endpoint string `env:"SF_ENDPOINT"`
	}
	type ServerConf struct {
		Port int `env:"SF_PORT" envDefault:"8080"`
	}
	type AppConfig struct {
		Server ServerConf
		Store  *StoreConf
	}

	t.Setenv("SF_ENDPOINT", "http://localhost:8000")

	config := &AppConfig{}
	require.NoError(t, Load(config))
	assert.Equal(t, 8080, config.Server.Port)
	require.NotNil(t, config.Store)
	assert.Equal(t, "storefront", config.Store.Table)
	assert.Equal(t, "http://localhost:8000", config.Store.Endpoint)

	type Wrapped struct {
		Server struct {
			Port int `env:"SF_PORT"`
		}
	}
	t.Setenv("SF_PORT", "eighty")
	var fe *FieldError
	require.ErrorAs(t, Load(&Wrapped{}), &fe)
	assert.Equal(t, "Server.Port", fe.FieldName)
}

func TestLoad_InvalidConfig(t *testing.T) {
	var config string
	err := Load(config)
	assert.ErrorContains(t, err, "pointer to struct")

	var config2 int
	err = Load(&config2)
	assert.ErrorContains(t, err, "pointer to struct")
}

func TestLoad_ConversionErrors(t *testing.T) {
	type Config struct {
		Port int `env:"SF_PORT" envDefault:"not-a-number"`
	}

	err := Load(&Config{})
	var fe *FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "Port", fe.FieldName)
	assert.Contains(t, err.Error(), `cannot set Port from SF_PORT="not-a-number"`)

	type BadDuration struct {
		Timeout time.Duration `env:"SF_TIMEOUT" envDefault:"soon"`
	}
	assert.Error(t, Load(&BadDuration{}))
}

func TestLoad_UnsupportedType(t *testing.T) {
	type Config struct {
		Ports []int `env:"SF_PORTS" envDefault:"1,2"`
	}

	err := Load(&Config{})
	var ut *UnsupportedTypeError
	assert.ErrorAs(t, err, &ut)
}

func TestMustLoad(t *testing.T) {
	type Config struct {
		Port string `env:"SF_PORT" envDefault:"8080"`
	}

	config := &Config{}
	assert.NotPanics(t, func() { MustLoad(config) })
	assert.Equal(t, "8080", config.Port)

	assert.Panics(t, func() { MustLoad("not-a-pointer") })
}
