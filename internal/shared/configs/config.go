package configs

import "time"

// Config holds all configuration for the application.
type Config struct {
	Log         LogConfig         `mapstructure:"log" validate:"required"`
	Input       InputConfig       `mapstructure:"input" validate:"required"`
	Output      OutputConfig      `mapstructure:"output" validate:"required"`
	Cache       CacheConfig       `mapstructure:"cache"`
	Snapshot    SnapshotConfig    `mapstructure:"snapshot"`
	Bots        BotsConfig        `mapstructure:"bots" validate:"required"`
	Session     SessionConfig     `mapstructure:"session" validate:"required"`
	Resolution  ResolutionConfig  `mapstructure:"resolution" validate:"required"`
	Geolocation GeolocationConfig `mapstructure:"geolocation" validate:"required"`
	Server      ServerConfig      `mapstructure:"server" validate:"required"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level   string `mapstructure:"level" validate:"required"`
	Verbose bool   `mapstructure:"verbose"`
}

// InputConfig describes the access log to ingest. An empty path or "-" reads stdin.
type InputConfig struct {
	Path      string `mapstructure:"path"`
	BatchSize int    `mapstructure:"batch_size" validate:"required,min=1"`
}

// OutputConfig describes where reports are written.
type OutputConfig struct {
	Dir  string `mapstructure:"dir" validate:"required"`
	Year int    `mapstructure:"year" validate:"min=0"` // 0 = every year
	TopN int    `mapstructure:"top_n" validate:"required,min=1"`
}

// CacheConfig holds the incremental cache location. Empty disables the cache.
type CacheConfig struct {
	BasePath string `mapstructure:"base_path"`
}

// SnapshotConfig holds JSON snapshot paths. Empty disables the direction.
type SnapshotConfig struct {
	LoadPath string `mapstructure:"load_path"`
	SavePath string `mapstructure:"save_path"`
}

// BotsConfig holds bot classification inputs.
type BotsConfig struct {
	IPFile              string `mapstructure:"ip_file"`
	UserAgentPattern    string `mapstructure:"user_agent_pattern" validate:"required,regexp"`
	DetectKnownCrawlers bool   `mapstructure:"detect_known_crawlers"`
}

// SessionConfig holds the inactivity gap that starts a new session.
type SessionConfig struct {
	Delimiter time.Duration `mapstructure:"delimiter" validate:"required,min=1s"`
}

// ResolutionConfig controls the DNS resolution and merge pass.
type ResolutionConfig struct {
	Enabled    bool          `mapstructure:"enabled"`
	DNSTimeout time.Duration `mapstructure:"dns_timeout" validate:"required"`
}

// GeolocationConfig holds the geolocation API, its throttle and the local database.
type GeolocationConfig struct {
	DBPath        string        `mapstructure:"db_path"`
	APIURL        string        `mapstructure:"api_url" validate:"required,url"`
	MaxCalls      int           `mapstructure:"max_calls" validate:"required,min=1"`
	Window        time.Duration `mapstructure:"window" validate:"required"`
	HTTPTimeout   time.Duration `mapstructure:"http_timeout" validate:"required"`
	SampleSize    int           `mapstructure:"sample_size" validate:"min=0"`
	TLDSampleSize int           `mapstructure:"tld_sample_size" validate:"min=0"`
}

// ServerConfig holds report server configuration.
type ServerConfig struct {
	Port              int `mapstructure:"port" validate:"required,min=1,max=65535"`
	ReadHeaderTimeout int `mapstructure:"read_header_timeout" validate:"required,min=1"` // seconds
	ReadTimeout       int `mapstructure:"read_timeout" validate:"required,min=1"`        // seconds (headers+body)
	WriteTimeout      int `mapstructure:"write_timeout" validate:"required,min=1"`       // seconds (response)
	IdleTimeout       int `mapstructure:"idle_timeout" validate:"required,min=1"`        // seconds (keep-alive)
}
