package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv(EnvAppKey, "key")
	t.Setenv(EnvAppSecret, "secret")
	t.Setenv(EnvAccessToken, "token")
}

func clearOptionalEnv(t *testing.T) {
	for _, name := range []string{EnvHttpURL, EnvLanguage, EnvTimeout, EnvReadOnly, EnvLogLevel, EnvOtelEndpoint} {
		t.Setenv(name, "")
	}
}

func TestFromEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		setRequiredEnv(t)
		clearOptionalEnv(t)

		cfg, err := FromEnv()
		require.NoError(t, err)

		assert.Equal(t, "key", cfg.AppKey)
		assert.Equal(t, "secret", cfg.AppSecret)
		assert.Equal(t, "token", cfg.AccessToken)
		assert.Equal(t, DefaultHttpURL, cfg.HttpURL)
		assert.Equal(t, language.English, cfg.Language)
		assert.Equal(t, DefaultTimeout, cfg.Timeout)
		assert.False(t, cfg.ReadOnly)
		assert.Equal(t, log.InfoLevel, cfg.LogLevel)
	})

	t.Run("overrides", func(t *testing.T) {
		setRequiredEnv(t)
		clearOptionalEnv(t)
		t.Setenv(EnvHttpURL, "http://localhost:8080")
		t.Setenv(EnvLanguage, "zh-HK")
		t.Setenv(EnvTimeout, "3s")
		t.Setenv(EnvReadOnly, "true")
		t.Setenv(EnvLogLevel, "debug")

		cfg, err := FromEnv()
		require.NoError(t, err)

		assert.Equal(t, "http://localhost:8080", cfg.HttpURL)
		assert.Equal(t, "zh-HK", cfg.LanguageHeader())
		assert.Equal(t, 3*time.Second, cfg.Timeout)
		assert.True(t, cfg.ReadOnly)
		assert.Equal(t, log.DebugLevel, cfg.LogLevel)
	})

	t.Run("missing variables are all reported", func(t *testing.T) {
		t.Setenv(EnvAppKey, "")
		t.Setenv(EnvAppSecret, "")
		t.Setenv(EnvAccessToken, "token")

		_, err := FromEnv()
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrMissingEnv))
		assert.Contains(t, err.Error(), EnvAppKey)
		assert.Contains(t, err.Error(), EnvAppSecret)
		assert.NotContains(t, err.Error(), EnvAccessToken)
	})

	t.Run("malformed values", func(t *testing.T) {
		cases := map[string]string{
			EnvHttpURL:  "ftp://example.com",
			EnvLanguage: "fr",
			EnvTimeout:  "soon",
			EnvReadOnly: "maybe",
			EnvLogLevel: "loud",
		}

		for name, value := range cases {
			t.Run(name, func(t *testing.T) {
				setRequiredEnv(t)
				clearOptionalEnv(t)
				t.Setenv(name, value)

				_, err := FromEnv()
				assert.Error(t, err)
			})
		}
	})
}

func TestFromFile(t *testing.T) {
	setRequiredEnv(t)
	clearOptionalEnv(t)
	t.Setenv(EnvAppKey, "")

	path := filepath.Join(t.TempDir(), "longport.yaml")
	contents := `
app_key: file-key
app_secret: file-secret
access_token: file-token
http_url: https://openapi.longportapp.cn
language: zh-CN
timeout: 5s
readonly: true
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	cfg, err := FromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "file-key", cfg.AppKey)
	assert.Equal(t, "secret", cfg.AppSecret, "env takes precedence over file")
	assert.Equal(t, "token", cfg.AccessToken)
	assert.Equal(t, "https://openapi.longportapp.cn", cfg.HttpURL)
	assert.Equal(t, "zh-CN", cfg.LanguageHeader())
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.True(t, cfg.ReadOnly)
}

func TestFromFileMissing(t *testing.T) {
	_, err := FromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
