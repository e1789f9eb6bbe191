package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/samirrijal/bubblepoint/internal/core/domain"
	"github.com/samirrijal/bubblepoint/internal/pkg/rootfind"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Solver    SolverConfig    `mapstructure:"solver"`
	Mixture   MixtureConfig   `mapstructure:"mixture"`
	Valkey    ValkeyConfig    `mapstructure:"valkey"`
	NATS      NATSConfig      `mapstructure:"nats"`
	Temporal  TemporalConfig  `mapstructure:"temporal"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Port         int `mapstructure:"port"`
	ReadTimeout  int `mapstructure:"read_timeout"`
	WriteTimeout int `mapstructure:"write_timeout"`
}

// SolverConfig are the bisection tolerances.
type SolverConfig struct {
	XTol    float64 `mapstructure:"xtol"`
	RTol    float64 `mapstructure:"rtol"`
	FTol    float64 `mapstructure:"ftol"`
	MaxIter int     `mapstructure:"max_iter"`
}

func (s SolverConfig) Options() rootfind.Options {
	return rootfind.Options{XTol: s.XTol, RTol: s.RTol, FTol: s.FTol, MaxIter: s.MaxIter}
}

// MixtureConfig selects the default binary pair.
type MixtureConfig struct {
	Component1 string `mapstructure:"component1"`
	Component2 string `mapstructure:"component2"`
}

type ValkeyConfig struct {
	Addr       string `mapstructure:"addr"`
	TTLSeconds int    `mapstructure:"ttl_seconds"`
}

type NATSConfig struct {
	URL string `mapstructure:"url"`
}

type TemporalConfig struct {
	HostPort  string `mapstructure:"host_port"`
	Namespace string `mapstructure:"namespace"`
	TaskQueue string `mapstructure:"task_queue"`
}

type TelemetryConfig struct {
	ServiceName string `mapstructure:"service_name"`
	TempoAddr   string `mapstructure:"tempo_addr"`
	Enabled     bool   `mapstructure:"enabled"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from file and environment variables.
func Load(service string) (*Config, error) {
	return LoadWithFlags(service, nil)
}

// LoadWithFlags is Load with command-line flags bound on top. A flag wins
// over env and file only when it was set explicitly; flag names use the
// dotted config keys (e.g. --solver.max_iter).
func LoadWithFlags(service string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v, service)

	// Config file (optional)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	_ = v.ReadInConfig() // OK if missing

	// Environment variables: BUBBLEPOINT_SOLVER_MAX_ITER → solver.max_iter
	v.SetEnvPrefix("BUBBLEPOINT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper, service string) {
	opts := rootfind.DefaultOptions()

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("solver.xtol", opts.XTol)
	v.SetDefault("solver.rtol", opts.RTol)
	v.SetDefault("solver.ftol", opts.FTol)
	v.SetDefault("solver.max_iter", opts.MaxIter)
	v.SetDefault("mixture.component1", string(domain.Water))
	v.SetDefault("mixture.component2", string(domain.Ethanol))
	v.SetDefault("valkey.addr", "localhost:6379")
	v.SetDefault("valkey.ttl_seconds", 3600)
	v.SetDefault("nats.url", "nats://localhost:4222")
	v.SetDefault("temporal.host_port", "localhost:7233")
	v.SetDefault("temporal.namespace", "default")
	v.SetDefault("temporal.task_queue", "isotherm-queue")
	v.SetDefault("telemetry.service_name", service)
	v.SetDefault("telemetry.tempo_addr", "tempo:4317")
	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// Validate checks that required configuration fields are present and sane.
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port must be 1-65535, got %d", c.Server.Port))
	}
	if c.Server.ReadTimeout <= 0 {
		errs = append(errs, "server.read_timeout must be positive")
	}
	if c.Server.WriteTimeout <= 0 {
		errs = append(errs, "server.write_timeout must be positive")
	}
	if err := c.Solver.Options().Validate(); err != nil {
		errs = append(errs, "solver: "+err.Error())
	}
	if c.Solver.MaxIter == 0 {
		errs = append(errs, "solver.max_iter must be positive")
	}
	if _, err := domain.NewMixture(domain.ComponentID(c.Mixture.Component1), domain.ComponentID(c.Mixture.Component2)); err != nil {
		errs = append(errs, "mixture: "+err.Error())
	}
	if c.Valkey.TTLSeconds < 0 {
		errs = append(errs, "valkey.ttl_seconds must not be negative")
	}
	if c.Temporal.TaskQueue == "" {
		errs = append(errs, "temporal.task_queue is required")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
