package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store  StoreConfig  `yaml:"store" mapstructure:"store"`
	Fetch  FetchConfig  `yaml:"fetch" mapstructure:"fetch"`
	EDGAR  EDGARConfig  `yaml:"edgar" mapstructure:"edgar"`
	Server ServerConfig `yaml:"server" mapstructure:"server"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures run persistence. An empty path keeps runs in
// memory.
type StoreConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// FetchConfig configures page rendering and per-source-family throttling.
type FetchConfig struct {
	NavTimeoutSecs   int `yaml:"nav_timeout_secs" mapstructure:"nav_timeout_secs"`
	SelectorWaitSecs int `yaml:"selector_wait_secs" mapstructure:"selector_wait_secs"`
	NewsThrottleMs   int `yaml:"news_throttle_ms" mapstructure:"news_throttle_ms"`
	NewsJitterMs     int `yaml:"news_jitter_ms" mapstructure:"news_jitter_ms"`
	PressThrottleMs  int `yaml:"press_throttle_ms" mapstructure:"press_throttle_ms"`
	PressJitterMs    int `yaml:"press_jitter_ms" mapstructure:"press_jitter_ms"`
}

// EDGARConfig configures SEC filing scans.
type EDGARConfig struct {
	UserAgent   string `yaml:"user_agent" mapstructure:"user_agent"`
	MaxFilings  int    `yaml:"max_filings" mapstructure:"max_filings"`
	WindowYears int    `yaml:"window_years" mapstructure:"window_years"`
	ThrottleMs  int    `yaml:"throttle_ms" mapstructure:"throttle_ms"`
	JitterMs    int    `yaml:"jitter_ms" mapstructure:"jitter_ms"`
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("RADAR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.path", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("fetch.nav_timeout_secs", 45)
	v.SetDefault("fetch.selector_wait_secs", 15)
	v.SetDefault("fetch.news_throttle_ms", 3000)
	v.SetDefault("fetch.news_jitter_ms", 2000)
	v.SetDefault("fetch.press_throttle_ms", 2000)
	v.SetDefault("fetch.press_jitter_ms", 1500)
	v.SetDefault("edgar.user_agent", "collab-radar research@sellsadvisors.com")
	v.SetDefault("edgar.max_filings", 25)
	v.SetDefault("edgar.window_years", 2)
	v.SetDefault("edgar.throttle_ms", 500)
	v.SetDefault("edgar.jitter_ms", 500)
	v.SetDefault("edgar.timeout_secs", 30)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
