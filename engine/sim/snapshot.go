package sim

import (
	"image"

	"github.com/1siamBot/horde-survivor/engine/combat"
	"github.com/1siamBot/horde-survivor/engine/core"
	"github.com/1siamBot/horde-survivor/engine/entity"
)

// Snapshot is an immutable copy of everything the renderer draws. It shares
// no memory with the simulation.
type Snapshot struct {
	RunID   string
	State   core.GameState
	Tick    uint64
	Now     int64
	Elapsed int64 // ms since the run started
	Field   core.Size
	Layout  Layout

	Wave     int
	Selected int // highlighted upgrade, -1 for none

	Player      PlayerView
	Monsters    []MonsterView
	Projectiles []ProjectileView
	Loot        *LootView

	Stats Stats
}

type PlayerView struct {
	Pos            core.Vec2
	Size           core.Size
	Hitbox         image.Rectangle
	Health         int
	MaxHealth      int
	Aim            float64
	GunFlipped     bool
	Weapon         combat.Kind
	Ammo           int
	MaxAmmo        int
	Reloading      bool
	ReloadProgress float64
	DamageLevel    int
	MasteryLevel   int
}

type MonsterView struct {
	ID        entity.ID
	Variant   entity.Variant
	Skin      int
	Pos       core.Vec2
	Size      core.Size
	Health    int // never negative
	MaxHealth int
}

type ProjectileView struct {
	Pos  core.Vec2
	Size core.Size
}

type LootView struct {
	Pos  core.Vec2
	Size core.Size
}

// Stats accumulates over one run
type Stats struct {
	Kills          [3]int // by entity.Variant
	BossesDefeated int
	ShotsFired     int
	Hits           int
	DamageTaken    int
	LootCollected  int
}

// TotalKills sums kills over all variants
func (s Stats) TotalKills() int {
	return s.Kills[entity.Normal] + s.Kills[entity.Boss] + s.Kills[entity.Mysterious]
}

// Snapshot copies the current state for rendering
func (s *Simulation) Snapshot() *Snapshot {
	snap := &Snapshot{
		RunID:    s.runID.String(),
		State:    s.waves.State(),
		Tick:     s.ticks,
		Now:      s.now,
		Elapsed:  max(s.now-s.runStart, 0),
		Field:    s.tuning.Field,
		Layout:   s.layout,
		Wave:     s.waves.Number(),
		Selected: -1,
		Stats:    s.stats,
	}
	if u, ok := s.waves.Selected(); ok {
		snap.Selected = int(u)
	}

	if p := s.store.Player(); p != nil {
		snap.Player = PlayerView{
			Pos:            p.Pos,
			Size:           p.Size,
			Hitbox:         p.Hitbox(),
			Health:         p.Health,
			MaxHealth:      p.MaxHealth,
			Aim:            p.Aim,
			GunFlipped:     p.GunFlipped(),
			Weapon:         p.Gun.Kind(),
			Ammo:           p.Gun.Ammo(),
			MaxAmmo:        p.Gun.MaxAmmo(),
			Reloading:      p.Gun.Reloading(),
			ReloadProgress: p.Gun.ReloadProgress(s.now),
			DamageLevel:    p.Gun.DamageLevel(),
			MasteryLevel:   p.Gun.MasteryLevel(),
		}
	}

	snap.Monsters = make([]MonsterView, 0, s.store.MonsterCount())
	s.store.ForEachMonster(func(m *entity.Monster) bool {
		snap.Monsters = append(snap.Monsters, MonsterView{
			ID:        m.ID,
			Variant:   m.Variant,
			Skin:      m.Skin,
			Pos:       m.Pos,
			Size:      m.Size,
			Health:    max(m.Health, 0),
			MaxHealth: m.MaxHealth,
		})
		return true
	})

	snap.Projectiles = make([]ProjectileView, 0, s.store.ProjectileCount())
	s.store.ForEachProjectile(func(p *entity.Projectile) bool {
		snap.Projectiles = append(snap.Projectiles, ProjectileView{Pos: p.Pos, Size: p.Size})
		return true
	})

	if l := s.store.Loot(); l != nil {
		snap.Loot = &LootView{Pos: l.Pos, Size: l.Size}
	}
	return snap
}
