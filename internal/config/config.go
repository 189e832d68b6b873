package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	LogLevel string       `mapstructure:"log_level"`
	Server   ServerConfig `mapstructure:"server"`
	Live     LiveConfig   `mapstructure:"live"`
	Assist   AssistConfig `mapstructure:"assist"`
}

type ServerConfig struct {
	ListenAddr      string `mapstructure:"listen_addr"`
	MaxTextBytes    int    `mapstructure:"max_text_bytes"`
	Workers         int    `mapstructure:"workers"`
	RequestTimeout  int    `mapstructure:"request_timeout"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"`
}

// LiveConfig holds the recompute delays used by the TUI and watch mode.
type LiveConfig struct {
	CaseDebounceMS int `mapstructure:"case_debounce_ms"`
	TrimDebounceMS int `mapstructure:"trim_debounce_ms"`
}

type AssistConfig struct {
	APIKey            string  `mapstructure:"api_key"`
	Model             string  `mapstructure:"model"`
	Temperature       float64 `mapstructure:"temperature"`
	MaxImageBytes     int     `mapstructure:"max_image_bytes"`
	RequestsPerMinute int     `mapstructure:"requests_per_minute"`
}

func (l LiveConfig) CaseDebounce() time.Duration {
	return time.Duration(l.CaseDebounceMS) * time.Millisecond
}

func (l LiveConfig) TrimDebounce() time.Duration {
	return time.Duration(l.TrimDebounceMS) * time.Millisecond
}

type LoadOptions struct {
	Cmd        flagBinder
	ConfigFile string
	Defaults   Config
}

type flagBinder interface {
	Flags() *pflag.FlagSet
}

func DefaultConfig() Config {
	return Config{
		LogLevel: "info",
		Server: ServerConfig{
			ListenAddr:      ":8080",
			MaxTextBytes:    1 << 20,
			Workers:         2,
			RequestTimeout:  60,
			ShutdownTimeout: 30,
		},
		Live: LiveConfig{
			CaseDebounceMS: 150,
			TrimDebounceMS: 250,
		},
		Assist: AssistConfig{
			APIKey:            "",
			Model:             "gemini-2.0-flash",
			Temperature:       0.7,
			MaxImageBytes:     4 << 20,
			RequestsPerMinute: 10,
		},
	}
}

// flagKeys maps flag names to config keys.
var flagKeys = map[string]string{
	"log-level":                  "log_level",
	"server-listen-addr":         "server.listen_addr",
	"server-max-text-bytes":      "server.max_text_bytes",
	"workers":                    "server.workers",
	"server-request-timeout":     "server.request_timeout",
	"server-shutdown-timeout":    "server.shutdown_timeout",
	"live-case-debounce-ms":      "live.case_debounce_ms",
	"live-trim-debounce-ms":      "live.trim_debounce_ms",
	"assist-api-key":             "assist.api_key",
	"assist-model":               "assist.model",
	"assist-temperature":         "assist.temperature",
	"assist-max-image-bytes":     "assist.max_image_bytes",
	"assist-requests-per-minute": "assist.requests_per_minute",
}

func RegisterFlags(fs *pflag.FlagSet, defaults Config) {
	fs.String("log-level", defaults.LogLevel, "Log level (debug|info|warn|error)")
	fs.String("server-listen-addr", defaults.Server.ListenAddr, "HTTP listen address")
	fs.Int("server-max-text-bytes", defaults.Server.MaxTextBytes, "Maximum request text size in bytes")
	fs.Int("workers", defaults.Server.Workers, "Max concurrent assistant calls served over HTTP")
	fs.Int("server-request-timeout", defaults.Server.RequestTimeout, "Per-request timeout in seconds")
	fs.Int("server-shutdown-timeout", defaults.Server.ShutdownTimeout, "Graceful shutdown drain period in seconds")
	fs.Int("live-case-debounce-ms", defaults.Live.CaseDebounceMS, "Case converter recompute delay in milliseconds")
	fs.Int("live-trim-debounce-ms", defaults.Live.TrimDebounceMS, "Word remover recompute delay in milliseconds")
	fs.String("assist-api-key", defaults.Assist.APIKey, "Gemini API key")
	fs.String("assist-model", defaults.Assist.Model, "Gemini model name")
	fs.Float64("assist-temperature", defaults.Assist.Temperature, "Sampling temperature for assistant answers")
	fs.Int("assist-max-image-bytes", defaults.Assist.MaxImageBytes, "Maximum diagram size in bytes")
	fs.Int("assist-requests-per-minute", defaults.Assist.RequestsPerMinute, "Assistant request budget per minute (0 = unlimited)")
}

func Load(opts LoadOptions) (Config, error) {
	v := viper.New()

	setDefaults(v, opts.Defaults)
	if opts.Cmd != nil {
		if err := bindFlags(v, opts.Cmd.Flags()); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	v.SetEnvPrefix("TOOLHUB")
	replacer := strings.NewReplacer("-", "_", ".", "_")
	v.SetEnvKeyReplacer(replacer)
	if err := v.BindEnv("assist.api_key", "TOOLHUB_ASSIST_API_KEY", "GEMINI_API_KEY"); err != nil {
		return Config{}, fmt.Errorf("bind api key env vars: %w", err)
	}
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName("toolhub")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, c Config) {
	v.SetDefault("log_level", c.LogLevel)
	v.SetDefault("server.listen_addr", c.Server.ListenAddr)
	v.SetDefault("server.max_text_bytes", c.Server.MaxTextBytes)
	v.SetDefault("server.workers", c.Server.Workers)
	v.SetDefault("server.request_timeout", c.Server.RequestTimeout)
	v.SetDefault("server.shutdown_timeout", c.Server.ShutdownTimeout)
	v.SetDefault("live.case_debounce_ms", c.Live.CaseDebounceMS)
	v.SetDefault("live.trim_debounce_ms", c.Live.TrimDebounceMS)
	v.SetDefault("assist.api_key", c.Assist.APIKey)
	v.SetDefault("assist.model", c.Assist.Model)
	v.SetDefault("assist.temperature", c.Assist.Temperature)
	v.SetDefault("assist.max_image_bytes", c.Assist.MaxImageBytes)
	v.SetDefault("assist.requests_per_minute", c.Assist.RequestsPerMinute)
}

// bindFlags binds every registered config flag present in fs to its key.
// Subcommands may register only a subset.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}
