package spawn

import (
	"log/slog"
	"math"
	"math/rand/v2"

	"github.com/1siamBot/horde-survivor/engine/core"
	"github.com/1siamBot/horde-survivor/engine/entity"
)

// Archetype is the unscaled health and speed of a monster kind
type Archetype struct {
	Health int
	Speed  float64
}

// Config tunes the director. Times are in milliseconds.
type Config struct {
	Field              core.Size
	Cooldown           int64
	BossInterval       int64
	MysteriousChance   float64
	MysteriousFromWave int
	EdgeOffset         float64 // how far outside the field edge spawns sit
	Growth             float64 // per-wave health multiplier

	Normals    [2]Archetype
	Mysterious Archetype
	Boss       Archetype
}

func DefaultConfig() Config {
	return Config{
		Field:              core.Size{W: 800, H: 600},
		Cooldown:           2000,
		BossInterval:       45000,
		MysteriousChance:   0.10,
		MysteriousFromWave: 3,
		EdgeOffset:         64,
		Growth:             1.15,
		Normals:            [2]Archetype{{Health: 20, Speed: 3}, {Health: 10, Speed: 6}},
		Mysterious:         Archetype{Health: 1, Speed: 8},
		Boss:               Archetype{Health: 100, Speed: 1.5},
	}
}

// Waves is the slice of wave state the director reads and the boss flag it sets
type Waves interface {
	Number() int
	StartedAt() int64
	BossSpawned() bool
	MarkBossSpawned()
}

// Director spawns monsters on a timer and one boss per wave
type Director struct {
	cfg   Config
	store *entity.Store
	waves Waves
	rng   *rand.Rand
	bus   *core.EventBus
	log   *slog.Logger

	lastSpawn int64
}

func NewDirector(cfg Config, store *entity.Store, waves Waves, rng *rand.Rand, bus *core.EventBus, log *slog.Logger) *Director {
	if rng == nil {
		rng = rand.New(rand.NewPCG(3, 4))
	}
	if log == nil {
		log = slog.Default()
	}
	return &Director{cfg: cfg, store: store, waves: waves, rng: rng, bus: bus, log: log}
}

// Reset restarts the spawn timer from now
func (d *Director) Reset(now int64) {
	d.lastSpawn = now
}

// ScaledHealth is base * growth^(wave-1), rounded down. A tiny epsilon keeps
// values like 100*1.15 from flooring to 114 through binary rounding.
func ScaledHealth(base, wave int, growth float64) int {
	if wave < 1 {
		wave = 1
	}
	return int(math.Floor(float64(base)*math.Pow(growth, float64(wave-1)) + 1e-9))
}

// MaybeSpawn runs the edge spawner and the boss gate for time now and
// returns whatever it spawned
func (d *Director) MaybeSpawn(now int64) []*entity.Monster {
	var out []*entity.Monster
	if now-d.lastSpawn > d.cfg.Cooldown {
		d.lastSpawn = now
		out = append(out, d.spawnEdge(now))
	}
	if !d.waves.BossSpawned() && now-d.waves.StartedAt() > d.cfg.BossInterval {
		d.waves.MarkBossSpawned()
		out = append(out, d.spawnBoss(now))
	}
	return out
}

func (d *Director) spawnEdge(now int64) *entity.Monster {
	wave := d.waves.Number()
	pos := d.edgePosition()

	var m *entity.Monster
	if wave >= d.cfg.MysteriousFromWave && d.rng.Float64() < d.cfg.MysteriousChance {
		a := d.cfg.Mysterious
		m = d.store.SpawnMonster(entity.Mysterious, 0, pos, a.Health, a.Speed)
	} else {
		skin := d.rng.IntN(len(d.cfg.Normals))
		a := d.cfg.Normals[skin]
		m = d.store.SpawnMonster(entity.Normal, skin, pos, ScaledHealth(a.Health, wave, d.cfg.Growth), a.Speed)
	}

	d.bus.Emit(core.Event{Type: core.EvtMonsterSpawned, At: now, Payload: info(m)})
	d.log.Debug("monster spawned", "id", m.ID, "variant", m.Variant, "health", m.Health, "wave", wave)
	return m
}

// edgePosition picks one of the four sides, then a point along it just
// outside the visible field
func (d *Director) edgePosition() core.Vec2 {
	w, h := d.cfg.Field.W, d.cfg.Field.H
	switch d.rng.IntN(4) {
	case 0:
		return core.Vec2{X: float64(d.rng.IntN(w)), Y: -d.cfg.EdgeOffset}
	case 1:
		return core.Vec2{X: float64(w), Y: float64(d.rng.IntN(h))}
	case 2:
		return core.Vec2{X: float64(d.rng.IntN(w)), Y: float64(h)}
	default:
		return core.Vec2{X: -d.cfg.EdgeOffset, Y: float64(d.rng.IntN(h))}
	}
}

func (d *Director) spawnBoss(now int64) *entity.Monster {
	wave := d.waves.Number()
	size := d.store.Config().BossSize
	pos := core.Vec2{X: float64(d.cfg.Field.W-size.W) / 2, Y: 0}
	health := ScaledHealth(d.cfg.Boss.Health, wave, d.cfg.Growth)
	m := d.store.SpawnMonster(entity.Boss, 0, pos, health, d.cfg.Boss.Speed)

	d.bus.Emit(core.Event{Type: core.EvtMonsterSpawned, At: now, Payload: info(m)})
	d.bus.Emit(core.Event{Type: core.EvtBossSpawned, At: now, Payload: info(m)})
	d.log.Info("boss spawned", "id", m.ID, "health", health, "wave", wave)
	return m
}

func info(m *entity.Monster) core.EntityInfo {
	return core.EntityInfo{ID: uint64(m.ID), Kind: m.Variant.String(), Pos: m.Pos}
}
