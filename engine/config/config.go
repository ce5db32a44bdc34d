package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/1siamBot/horde-survivor/engine/core"
	"github.com/1siamBot/horde-survivor/engine/sim"
)

const (
	EnvConfig      = "SURVIVOR_CONFIG"
	EnvMetricsAddr = "SURVIVOR_METRICS_ADDR"
)

// MaxTickRate keeps the tick period at one millisecond or more
const MaxTickRate = 1000

// Config is the root of the YAML configuration
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Sim     SimConfig     `yaml:"sim"`
	Assets  AssetsConfig  `yaml:"assets"`
	Metrics MetricsConfig `yaml:"metrics"`
	Log     LogConfig     `yaml:"log"`
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

type SimConfig struct {
	TickRate         int     `yaml:"tick_rate"`
	Seed             uint64  `yaml:"seed"`
	SpawnCooldownMs  int64   `yaml:"spawn_cooldown_ms"`
	BossIntervalMs   int64   `yaml:"boss_interval_ms"`
	MysteriousChance float64 `yaml:"mysterious_chance"`
}

type AssetsConfig struct {
	Dir string `yaml:"dir"`
}

type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text or json
}

// Default reproduces the game's built-in numbers
func Default() *Config {
	return &Config{
		Window: WindowConfig{Width: 800, Height: 600, Title: "Horde Survivor"},
		Sim: SimConfig{
			TickRate:         core.TickRate,
			Seed:             1,
			SpawnCooldownMs:  2000,
			BossIntervalMs:   45000,
			MysteriousChance: 0.10,
		},
		Assets: AssetsConfig{Dir: "assets"},
		Log:    LogConfig{Level: "info", Format: "text"},
	}
}

// Load reads the YAML file at path over the defaults. An empty path falls
// back to $SURVIVOR_CONFIG, and with neither set the defaults are returned.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the simulation cannot run with
func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Sim.TickRate <= 0 || c.Sim.TickRate > MaxTickRate {
		errs = append(errs, fmt.Errorf("tick_rate %d must be in 1..%d", c.Sim.TickRate, MaxTickRate))
	}
	if c.Sim.SpawnCooldownMs <= 0 {
		errs = append(errs, fmt.Errorf("spawn_cooldown_ms %d must be positive", c.Sim.SpawnCooldownMs))
	}
	if c.Sim.BossIntervalMs <= 0 {
		errs = append(errs, fmt.Errorf("boss_interval_ms %d must be positive", c.Sim.BossIntervalMs))
	}
	if c.Sim.MysteriousChance < 0 || c.Sim.MysteriousChance > 1 {
		errs = append(errs, fmt.Errorf("mysterious_chance %v outside [0, 1]", c.Sim.MysteriousChance))
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	if f := strings.ToLower(c.Log.Format); f != "text" && f != "json" {
		errs = append(errs, fmt.Errorf("log format %q must be text or json", c.Log.Format))
	}
	return errors.Join(errs...)
}

// MetricsAddr is the configured listen address, else $SURVIVOR_METRICS_ADDR.
// Empty means metrics are not served.
func (c *Config) MetricsAddr() string {
	if c.Metrics.Addr != "" {
		return c.Metrics.Addr
	}
	return os.Getenv(EnvMetricsAddr)
}

// Tuning builds simulation numbers from the configured playfield and timers
func (c *Config) Tuning() sim.Tuning {
	t := sim.DefaultTuning()
	field := core.Size{W: c.Window.Width, H: c.Window.Height}
	t.Field = field
	t.Entities.Field = field
	t.Spawn.Field = field
	t.Seed = c.Sim.Seed
	t.Spawn.Cooldown = c.Sim.SpawnCooldownMs
	t.Spawn.BossInterval = c.Sim.BossIntervalMs
	t.Spawn.MysteriousChance = c.Sim.MysteriousChance
	return t
}

// Logger builds the slog logger described by the log section
func (c *Config) Logger() *slog.Logger {
	level, _ := parseLevel(c.Log.Level)
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(c.Log.Format, "json") {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log level %q: %w", s, err)
	}
	return l, nil
}
