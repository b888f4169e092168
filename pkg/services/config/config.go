package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/de-tools/plan-analytics/pkg/analytics/montecarlo"
	"github.com/spf13/viper"
)

const EnvPrefix = "ANALYTICS"

type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Log    LogConfig    `mapstructure:"log"`
	Engine EngineConfig `mapstructure:"engine"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	CORSOrigins     []string      `mapstructure:"cors_origins"`
}

type LogConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
}

type EngineConfig struct {
	IRR            IRRConfig            `mapstructure:"irr"`
	NPV            NPVConfig            `mapstructure:"npv"`
	MonteCarlo     MonteCarloConfig     `mapstructure:"monte_carlo"`
	Attribution    AttributionConfig    `mapstructure:"attribution"`
	Prioritization PrioritizationConfig `mapstructure:"prioritization"`
}

type IRRConfig struct {
	InitialGuess            float64 `mapstructure:"initial_guess"`
	MaxIterations           int     `mapstructure:"max_iterations"`
	Tolerance               float64 `mapstructure:"tolerance"`
	ResidualThreshold       float64 `mapstructure:"residual_threshold"`
	DefaultReinvestmentRate float64 `mapstructure:"default_reinvestment_rate"`
}

type NPVConfig struct {
	DefaultDiscountRate float64 `mapstructure:"default_discount_rate"`
}

type MonteCarloConfig struct {
	DefaultIterations int `mapstructure:"default_iterations"`
	MaxIterations     int `mapstructure:"max_iterations"`
	HistogramBins     int `mapstructure:"histogram_bins"`
	Workers           int `mapstructure:"workers"`
	ChunkSize         int `mapstructure:"chunk_size"`
}

type AttributionConfig struct {
	MaxChannels int `mapstructure:"max_channels"`
}

type PrioritizationConfig struct {
	EffortScale         float64 `mapstructure:"effort_scale"`
	QuickWinMaxEffort   float64 `mapstructure:"quick_win_max_effort"`
	HighConfidence      float64 `mapstructure:"high_confidence"`
	HighConfidenceDepth int     `mapstructure:"high_confidence_depth"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.cors_origins", []string{"*"})

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)

	v.SetDefault("engine.irr.initial_guess", 0.10)
	v.SetDefault("engine.irr.max_iterations", 1000)
	v.SetDefault("engine.irr.tolerance", 1e-6)
	v.SetDefault("engine.irr.residual_threshold", 1.0)
	v.SetDefault("engine.irr.default_reinvestment_rate", 0.10)

	v.SetDefault("engine.npv.default_discount_rate", 0.10)

	v.SetDefault("engine.monte_carlo.default_iterations", 10000)
	v.SetDefault("engine.monte_carlo.max_iterations", 50000)
	v.SetDefault("engine.monte_carlo.histogram_bins", 20)
	v.SetDefault("engine.monte_carlo.workers", 4)
	v.SetDefault("engine.monte_carlo.chunk_size", 1000)

	v.SetDefault("engine.attribution.max_channels", 10)

	v.SetDefault("engine.prioritization.effort_scale", 10.0)
	v.SetDefault("engine.prioritization.quick_win_max_effort", 2.0)
	v.SetDefault("engine.prioritization.high_confidence", 0.8)
	v.SetDefault("engine.prioritization.high_confidence_depth", 5)
}

// Default returns the built-in configuration, ignoring files and the
// environment.
func Default() *Config {
	v := viper.New()
	setDefaults(v)

	cfg, err := decode(v)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads configuration from defaults, an optional file and ANALYTICS_*
// environment variables, in increasing order of precedence. An empty path
// skips the file.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return decode(v)
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse analytics config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Addr is the host:port the HTTP server listens on.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d is out of range", c.Server.Port)
	}
	mc := c.Engine.MonteCarlo
	if mc.MaxIterations <= 0 || mc.MaxIterations > montecarlo.IterationCap {
		return fmt.Errorf("engine.monte_carlo.max_iterations must be in 1..%d", montecarlo.IterationCap)
	}
	if mc.HistogramBins <= 0 {
		return fmt.Errorf("engine.monte_carlo.histogram_bins must be positive")
	}
	if mc.Workers <= 0 || mc.ChunkSize <= 0 {
		return fmt.Errorf("engine.monte_carlo.workers and engine.monte_carlo.chunk_size must be positive")
	}
	if c.Engine.MonteCarlo.DefaultIterations <= 0 {
		return fmt.Errorf("engine.monte_carlo.default_iterations must be positive")
	}
	if c.Engine.IRR.MaxIterations <= 0 || c.Engine.IRR.Tolerance <= 0 {
		return fmt.Errorf("engine.irr.max_iterations and engine.irr.tolerance must be positive")
	}
	if c.Engine.Prioritization.EffortScale <= 0 {
		return fmt.Errorf("engine.prioritization.effort_scale must be positive")
	}
	return nil
}
