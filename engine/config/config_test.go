package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1siamBot/horde-survivor/engine/core"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "survivor.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaultsWithoutPath(t *testing.T) {
	t.Setenv(EnvConfig, "")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeFile(t, `
window:
  width: 1024
sim:
  seed: 42
  boss_interval_ms: 30000
log:
  level: debug
  format: json
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1024, cfg.Window.Width)
	assert.Equal(t, 600, cfg.Window.Height, "unset keys keep defaults")
	assert.Equal(t, uint64(42), cfg.Sim.Seed)
	assert.Equal(t, int64(2000), cfg.Sim.SpawnCooldownMs)

	tun := cfg.Tuning()
	assert.Equal(t, core.Size{W: 1024, H: 600}, tun.Field)
	assert.Equal(t, tun.Field, tun.Spawn.Field)
	assert.Equal(t, tun.Field, tun.Entities.Field)
	assert.Equal(t, int64(30000), tun.Spawn.BossInterval)
	assert.Equal(t, uint64(42), tun.Seed)
	assert.True(t, cfg.Logger().Enabled(t.Context(), slog.LevelDebug))
}

func TestLoadFromEnv(t *testing.T) {
	path := writeFile(t, "sim:\n  tick_rate: 30\n")
	t.Setenv(EnvConfig, path)
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.Sim.TickRate)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeFile(t, "window: [1, 2"))
	assert.ErrorContains(t, err, "parse config")

	_, err = Load(writeFile(t, "sim:\n  tick_rate: 0\n  mysterious_chance: 2\n"))
	assert.ErrorContains(t, err, "tick_rate")
	assert.ErrorContains(t, err, "mysterious_chance")
}

func TestValidateTickRateBounds(t *testing.T) {
	cfg := Default()
	cfg.Sim.TickRate = MaxTickRate
	assert.NoError(t, cfg.Validate())
	cfg.Sim.TickRate = MaxTickRate + 1
	assert.ErrorContains(t, cfg.Validate(), "tick_rate")
}

func TestValidateLogSettings(t *testing.T) {
	cfg := Default()
	cfg.Log.Level = "loud"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Log.Format = "xml"
	assert.Error(t, cfg.Validate())
}

func TestMetricsAddrFallsBackToEnv(t *testing.T) {
	t.Setenv(EnvMetricsAddr, ":9100")
	cfg := Default()
	assert.Equal(t, ":9100", cfg.MetricsAddr())
	cfg.Metrics.Addr = ":2112"
	assert.Equal(t, ":2112", cfg.MetricsAddr())
}
