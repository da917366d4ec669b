package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}

	if err := c.Dictionary.validate(); err != nil {
		return fmt.Errorf("dictionary: %w", err)
	}

	if c.Annotate.MaxInputRunes <= 0 {
		return fmt.Errorf("annotate.max_input_runes must be > 0 (got %d)", c.Annotate.MaxInputRunes)
	}
	if c.Annotate.RateLimitPerMinute < 0 {
		return fmt.Errorf("annotate.rate_limit_per_minute must be >= 0 (got %d)", c.Annotate.RateLimitPerMinute)
	}

	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text (got %q)", c.Log.Format)
	}

	return nil
}

func (d *DictionaryConfig) validate() error {
	if strings.TrimSpace(d.Path) == "" && strings.TrimSpace(d.URL) == "" {
		return fmt.Errorf("path or url is required")
	}

	if d.URL != "" {
		u, err := url.Parse(d.URL)
		if err != nil {
			return fmt.Errorf("url: %w", err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("url must use http or https (got %q)", u.Scheme)
		}
		if u.Host == "" {
			return fmt.Errorf("url must have a host")
		}
	}

	if d.RetryInterval <= 0 {
		return fmt.Errorf("retry_interval must be > 0 (got %v)", d.RetryInterval)
	}
	if d.ReloadInterval < 0 {
		return fmt.Errorf("reload_interval must be >= 0 (got %v)", d.ReloadInterval)
	}
	if d.FetchTimeout <= 0 {
		return fmt.Errorf("fetch_timeout must be > 0 (got %v)", d.FetchTimeout)
	}

	return nil
}
