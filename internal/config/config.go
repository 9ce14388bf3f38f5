package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPrefix = "LAYOUTGPT"

	envDevelopment = "development"

	defaultPort      = "5000"
	defaultEnv       = "production"
	defaultLogLevel  = "info"
	defaultLogFormat = "json"
)

// Config holds application configuration sourced from the environment.
type Config struct {
	Port      string `mapstructure:"port" validate:"required,numeric"`
	Env       string `mapstructure:"env" validate:"oneof=development production test"`
	LogLevel  string `mapstructure:"log_level" validate:"oneof=debug info warn error"`
	LogFormat string `mapstructure:"log_format" validate:"oneof=json console"`
	// Profiler mounts /debug/pprof; it only takes effect in development.
	Profiler bool `mapstructure:"profiler"`
}

// IsDev reports whether the service runs in development mode.
func (c Config) IsDev() bool {
	return c.Env == envDevelopment
}

// ProfilerEnabled reports whether the pprof routes should be served.
func (c Config) ProfilerEnabled() bool {
	return c.Profiler && c.IsDev()
}

// Load reads .env (if present) and the environment and returns a validated Config.
func Load() (Config, error) {
	return LoadFrom(".env")
}

// LoadFrom is Load with an explicit dotenv path.
func LoadFrom(dotenvPath string) (Config, error) {
	// Best-effort: a missing file is fine, real deployments inject env vars.
	// godotenv never overwrites variables that are already set.
	_ = godotenv.Load(dotenvPath)

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("port", defaultPort)
	v.SetDefault("env", defaultEnv)
	v.SetDefault("log_level", defaultLogLevel)
	v.SetDefault("log_format", defaultLogFormat)
	v.SetDefault("profiler", false)

	// PORT without prefix is what most hosts set.
	_ = v.BindEnv("port", envPrefix+"_PORT", "PORT")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}
