package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Dictionary DictionaryConfig `yaml:"dictionary"`
	Annotate   AnnotateConfig   `yaml:"annotate"`
	Log        LogConfig        `yaml:"log"`
	CORS       CORSConfig       `yaml:"cors"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Content-Type,X-Request-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DictionaryConfig says where the CC-CEDICT text comes from and how loading
// is retried. URL takes precedence over Path.
type DictionaryConfig struct {
	Path           string        `yaml:"path"            env:"DICTIONARY_PATH"            env-default:"./cedict_ts.u8"`
	URL            string        `yaml:"url"             env:"DICTIONARY_URL"`
	FetchTimeout   time.Duration `yaml:"fetch_timeout"   env:"DICTIONARY_FETCH_TIMEOUT"   env-default:"60s"`
	RetryInterval  time.Duration `yaml:"retry_interval"  env:"DICTIONARY_RETRY_INTERVAL"  env-default:"30s"`
	ReloadInterval time.Duration `yaml:"reload_interval" env:"DICTIONARY_RELOAD_INTERVAL" env-default:"0s"`
}

// AnnotateConfig holds limits for the annotation endpoint.
type AnnotateConfig struct {
	MaxInputRunes      int `yaml:"max_input_runes"       env:"ANNOTATE_MAX_INPUT_RUNES"       env-default:"20000"`
	RateLimitPerMinute int `yaml:"rate_limit_per_minute" env:"ANNOTATE_RATE_LIMIT_PER_MINUTE" env-default:"120"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// UsesURL reports whether the dictionary is downloaded rather than read from disk.
func (c DictionaryConfig) UsesURL() bool {
	return c.URL != ""
}
