package configs

import (
	"fmt"
	"strings"

	"log-stats/internal/shared/validators"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultUserAgentPattern = `bot|Bot|crawl|Crawl|GoogleOther`
	DefaultGeolocationAPI   = "http://www.geoplugin.net/json.gp"
)

var defaults = map[string]any{
	"log.level":                   "info",
	"input.batch_size":            1000,
	"output.dir":                  ".",
	"output.top_n":                20,
	"bots.user_agent_pattern":     DefaultUserAgentPattern,
	"session.delimiter":           "1m",
	"resolution.dns_timeout":      "2s",
	"geolocation.api_url":         DefaultGeolocationAPI,
	"geolocation.max_calls":       3,
	"geolocation.window":          "2s",
	"geolocation.http_timeout":    "5s",
	"geolocation.sample_size":     300,
	"geolocation.tld_sample_size": 300,
	"server.port":                 8080,
	"server.read_header_timeout":  5,
	"server.read_timeout":         10,
	"server.write_timeout":        60,
	"server.idle_timeout":         60,
}

// FlagKeys maps command line flag names to configuration keys.
// Flags that were set on the command line override the file.
var FlagKeys = map[string]string{
	"verbose":        "log.verbose",
	"input":          "input.path",
	"output-dir":     "output.dir",
	"year":           "output.year",
	"top":            "output.top_n",
	"cache-dir":      "cache.base_path",
	"load":           "snapshot.load_path",
	"save":           "snapshot.save_path",
	"bots":           "bots.ip_file",
	"known-crawlers": "bots.detect_known_crawlers",
	"resolve":        "resolution.enabled",
	"geoloc-db":      "geolocation.db_path",
	"geoloc-sample":  "geolocation.sample_size",
	"tld-sample":     "geolocation.tld_sample_size",
	"port":           "server.port",
}

// LoadConfig reads configuration from an optional file, applies flag overrides and validates it.
var LoadConfig = func(configPath string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %q: %w", configPath, err)
		}
	}

	if flags != nil {
		for name, key := range FlagKeys {
			flag := flags.Lookup(name)
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, fmt.Errorf("failed to bind flag %q: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	validate := validators.New()
	if err := validate.Struct(&cfg); err != nil {
		var validationErrors []string
		if ve, ok := err.(validators.ValidationErrors); ok {
			for _, e := range ve {
				validationErrors = append(validationErrors, formatValidationError(e))
			}
		}
		return nil, fmt.Errorf("config validation failed: %s", strings.Join(validationErrors, ", "))
	}

	return &cfg, nil
}

// formatValidationError formats a single validation error into a readable string.
func formatValidationError(e validators.FieldError) string {
	field := e.Field()

	// "Config.Geolocation.MaxCalls" -> "geolocation.maxcalls"
	if parts := strings.Split(e.StructNamespace(), "."); len(parts) >= 2 {
		field = strings.ToLower(strings.Join(parts[1:], "."))
	}

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s (required)", field)
	case "min", "max", "oneof":
		return fmt.Sprintf("%s (%s=%s)", field, e.Tag(), e.Param())
	default:
		return fmt.Sprintf("%s (%s)", field, e.Tag())
	}
}
