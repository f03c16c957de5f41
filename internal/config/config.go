package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"tenability/internal/fed"
)

const envPrefix = "TENABILITY"

// Config holds the settings shared by the server and the CLI.
type Config struct {
	Port     string
	DBPath   string
	LogLevel string
	FED      fed.Params
	Imports  []string
	Auth     Auth
	Replay   time.Duration
}

type Auth struct {
	SigningKey string
	TokenTTL   time.Duration
}

// SetDefaults registers defaults for every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("db.path", "app.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("fed.monitoring_height", fed.DefaultMonitoringHeight)
	v.SetDefault("fed.threshold", fed.DefaultThreshold)
	v.SetDefault("fed.strict_range", false)
	v.SetDefault("import.paths", []string{})
	v.SetDefault("auth.signing_key", "")
	v.SetDefault("auth.token_ttl", time.Hour)
	v.SetDefault("replay.interval", 200*time.Millisecond)
}

// New returns a viper instance with defaults and TENABILITY_* env overrides.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// ReadFile reads configs/config.yml (or the given file). A missing default file is not an error.
func ReadFile(v *viper.Viper, file string) error {
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.AddConfigPath("configs") // configs/config.yml
		v.SetConfigName("config")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// BindFlags binds every flag in fs whose name maps to a config key.
// Flag names use dashes where keys use dots, e.g. --monitoring-height → fed.monitoring_height.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet, keys map[string]string) error {
	for flag, key := range keys {
		f := fs.Lookup(flag)
		if f == nil {
			return fmt.Errorf("unknown flag %q", flag)
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %q: %w", flag, err)
		}
	}
	return nil
}

// Load extracts a validated Config from v.
func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		Port:     v.GetString("port"),
		DBPath:   v.GetString("db.path"),
		LogLevel: strings.ToLower(v.GetString("log.level")),
		FED: fed.Params{
			MonitoringHeight: v.GetFloat64("fed.monitoring_height"),
			Threshold:        v.GetFloat64("fed.threshold"),
			StrictRange:      v.GetBool("fed.strict_range"),
		},
		Imports: v.GetStringSlice("import.paths"),
		Auth: Auth{
			SigningKey: v.GetString("auth.signing_key"),
			TokenTTL:   v.GetDuration("auth.token_ttl"),
		},
		Replay: v.GetDuration("replay.interval"),
	}

	if cfg.FED.MonitoringHeight < 0 {
		return Config{}, fmt.Errorf("fed.monitoring_height must be >= 0, got %g", cfg.FED.MonitoringHeight)
	}
	if !(cfg.FED.Threshold > 0 && cfg.FED.Threshold <= 1) {
		return Config{}, fmt.Errorf("fed.threshold must be in (0, 1], got %g", cfg.FED.Threshold)
	}
	if cfg.Auth.TokenTTL <= 0 {
		return Config{}, fmt.Errorf("auth.token_ttl must be positive, got %s", cfg.Auth.TokenTTL)
	}
	if cfg.Replay <= 0 {
		return Config{}, fmt.Errorf("replay.interval must be positive, got %s", cfg.Replay)
	}
	return cfg, nil
}
