package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWithEnv_ReadsYAML(t *testing.T) {
	cfg, err := LoadWithEnv[Config]("test", "testdata")
	require.NoError(t, err)

	assert.Equal(t, "addrcard-test", cfg.Env.ServiceName)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 3*time.Second, cfg.HTTP.Timeouts.ReadTimeout)
	require.NotNil(t, cfg.Store)
	assert.Equal(t, StoreDriverMemory, cfg.Store.Driver)
	require.NotNil(t, cfg.Schema)
	assert.Equal(t, PhoneRulePresence, cfg.Schema.PhoneRule)
	require.NotNil(t, cfg.I18n)
	assert.Equal(t, []string{"de", "en"}, cfg.I18n.SupportedLocales)
}

func TestLoadWithEnv_EnvOverridesYAML(t *testing.T) {
	t.Setenv("STORE_DRIVER", "redis")
	t.Setenv("SCHEMA_PHONERULE", "minLength")

	cfg, err := LoadWithEnv[Config]("test", "testdata")
	require.NoError(t, err)

	assert.Equal(t, StoreDriverRedis, cfg.Store.Driver)
	assert.Equal(t, PhoneRuleMinLength, cfg.Schema.PhoneRule)
}

func TestLoadWithEnv_MissingFile(t *testing.T) {
	_, err := LoadWithEnv[Config]("does-not-exist", "testdata")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found in any search path")
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, cfg.applyDefaults())

	assert.Equal(t, defaultMaxRequestBodySize, cfg.HTTP.MaxRequestBodySize)
	assert.Equal(t, StoreDriverBlob, cfg.Store.Driver)
	assert.Equal(t, "address", cfg.Store.Key)
	assert.Equal(t, defaultBlobURL, cfg.Store.Blob.URL)
	assert.Equal(t, PhoneRuleMinLength, cfg.Schema.PhoneRule)
	assert.Equal(t, 256, cfg.QRCode.Size)
	assert.Equal(t, "M", cfg.QRCode.ErrorCorrectionLevel)
	assert.Equal(t, "en", cfg.I18n.DefaultLocale)
}

func TestApplyDefaults_RejectsUnknownValues(t *testing.T) {
	tests := []struct {
		name string
		cfg  *Config
		want string
	}{
		{
			name: "store driver",
			cfg:  &Config{Store: &StoreConfig{Driver: "sqlite"}},
			want: "unknown store driver",
		},
		{
			name: "phone rule",
			cfg:  &Config{Schema: &SchemaConfig{PhoneRule: "digitsOnly"}},
			want: "unknown phone rule",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.applyDefaults()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
