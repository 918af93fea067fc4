package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

const (
	DefaultHttpURL = "https://openapi.longportapp.com"
	DefaultTimeout = 10 * time.Second
)

const (
	EnvAppKey       = "LONGPORT_APP_KEY"
	EnvAppSecret    = "LONGPORT_APP_SECRET"
	EnvAccessToken  = "LONGPORT_ACCESS_TOKEN"
	EnvHttpURL      = "LONGPORT_HTTP_URL"
	EnvLanguage     = "LONGPORT_LANGUAGE"
	EnvTimeout      = "LONGPORT_TIMEOUT"
	EnvReadOnly     = "LONGPORT_READONLY"
	EnvLogLevel     = "LONGPORT_LOG_LEVEL"
	EnvOtelEndpoint = "OTEL_EXPORTER_OTLP_ENDPOINT"
)

var ErrMissingEnv = errors.New("missing environment variables")

var supportedLanguages = []language.Tag{
	language.English,
	language.MustParse("zh-CN"),
	language.MustParse("zh-HK"),
}

// Config holds the credentials and endpoint used by every OpenAPI call. It is
// built once at startup and must not be mutated after it is handed to a client.
type Config struct {
	AppKey       string
	AppSecret    string
	AccessToken  string
	HttpURL      string
	Language     language.Tag
	Timeout      time.Duration
	ReadOnly     bool
	LogLevel     log.Level
	OtelEndpoint string
}

type fileConfig struct {
	AppKey       string `yaml:"app_key"`
	AppSecret    string `yaml:"app_secret"`
	AccessToken  string `yaml:"access_token"`
	HttpURL      string `yaml:"http_url"`
	Language     string `yaml:"language"`
	Timeout      string `yaml:"timeout"`
	ReadOnly     bool   `yaml:"readonly"`
	LogLevel     string `yaml:"log_level"`
	OtelEndpoint string `yaml:"otel_endpoint"`
}

func New(appKey, appSecret, accessToken string) *Config {
	return &Config{
		AppKey:      appKey,
		AppSecret:   appSecret,
		AccessToken: accessToken,
		HttpURL:     DefaultHttpURL,
		Language:    language.English,
		Timeout:     DefaultTimeout,
		LogLevel:    log.InfoLevel,
	}
}

// FromEnv builds a Config from the LONGPORT_* environment variables. Every
// missing required variable is reported in a single error.
func FromEnv() (*Config, error) {
	var missing []string

	appKey := os.Getenv(EnvAppKey)
	if appKey == "" {
		missing = append(missing, EnvAppKey)
	}

	appSecret := os.Getenv(EnvAppSecret)
	if appSecret == "" {
		missing = append(missing, EnvAppSecret)
	}

	accessToken := os.Getenv(EnvAccessToken)
	if accessToken == "" {
		missing = append(missing, EnvAccessToken)
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("FromEnv: %w: %s", ErrMissingEnv, strings.Join(missing, ", "))
	}

	cfg := New(appKey, appSecret, accessToken)
	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, fmt.Errorf("FromEnv: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("FromEnv: %w", err)
	}

	return cfg, nil
}

// FromFile reads a YAML config file. Environment variables, when set, take
// precedence over values from the file.
func FromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("FromFile: failed to read %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("FromFile: failed to unmarshal %s: %w", path, err)
	}

	cfg := New(fc.AppKey, fc.AppSecret, fc.AccessToken)
	cfg.ReadOnly = fc.ReadOnly
	cfg.OtelEndpoint = fc.OtelEndpoint

	if fc.HttpURL != "" {
		cfg.HttpURL = fc.HttpURL
	}

	if fc.Language != "" {
		if cfg.Language, err = parseLanguage(fc.Language); err != nil {
			return nil, fmt.Errorf("FromFile: %w", err)
		}
	}

	if fc.Timeout != "" {
		if cfg.Timeout, err = time.ParseDuration(fc.Timeout); err != nil {
			return nil, fmt.Errorf("FromFile: invalid timeout %q: %w", fc.Timeout, err)
		}
	}

	if fc.LogLevel != "" {
		if cfg.LogLevel, err = log.ParseLevel(fc.LogLevel); err != nil {
			return nil, fmt.Errorf("FromFile: %w", err)
		}
	}

	if v := os.Getenv(EnvAppKey); v != "" {
		cfg.AppKey = v
	}

	if v := os.Getenv(EnvAppSecret); v != "" {
		cfg.AppSecret = v
	}

	if v := os.Getenv(EnvAccessToken); v != "" {
		cfg.AccessToken = v
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, fmt.Errorf("FromFile: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("FromFile: %w", err)
	}

	return cfg, nil
}

func (c *Config) applyEnvOverrides() error {
	var err error

	if v := os.Getenv(EnvHttpURL); v != "" {
		c.HttpURL = v
	}

	if v := os.Getenv(EnvLanguage); v != "" {
		if c.Language, err = parseLanguage(v); err != nil {
			return err
		}
	}

	if v := os.Getenv(EnvTimeout); v != "" {
		if c.Timeout, err = time.ParseDuration(v); err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvTimeout, v, err)
		}
	}

	if v := os.Getenv(EnvReadOnly); v != "" {
		if c.ReadOnly, err = strconv.ParseBool(v); err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvReadOnly, v, err)
		}
	}

	if v := os.Getenv(EnvLogLevel); v != "" {
		if c.LogLevel, err = log.ParseLevel(v); err != nil {
			return fmt.Errorf("invalid %s: %w", EnvLogLevel, err)
		}
	}

	if v := os.Getenv(EnvOtelEndpoint); v != "" {
		c.OtelEndpoint = v
	}

	return nil
}

func (c *Config) Validate() error {
	var missing []string
	if c.AppKey == "" {
		missing = append(missing, "app key")
	}

	if c.AppSecret == "" {
		missing = append(missing, "app secret")
	}

	if c.AccessToken == "" {
		missing = append(missing, "access token")
	}

	if len(missing) > 0 {
		return fmt.Errorf("Validate: %w: %s", ErrMissingEnv, strings.Join(missing, ", "))
	}

	u, err := url.Parse(c.HttpURL)
	if err != nil {
		return fmt.Errorf("Validate: invalid http url %q: %w", c.HttpURL, err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("Validate: invalid http url %q: scheme must be http or https", c.HttpURL)
	}

	if u.Host == "" {
		return fmt.Errorf("Validate: invalid http url %q: missing host", c.HttpURL)
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("Validate: timeout must be positive, got %v", c.Timeout)
	}

	return nil
}

// LanguageHeader is the value sent as Accept-Language.
func (c *Config) LanguageHeader() string {
	return c.Language.String()
}

func parseLanguage(s string) (language.Tag, error) {
	tag, err := language.Parse(s)
	if err != nil {
		return language.Und, fmt.Errorf("invalid language %q: %w", s, err)
	}

	for _, supported := range supportedLanguages {
		if tag == supported {
			return tag, nil
		}
	}

	return language.Und, fmt.Errorf("unsupported language %q, expected one of en, zh-CN, zh-HK", s)
}
