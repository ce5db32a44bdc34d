package entity

import (
	"image"

	"github.com/1siamBot/horde-survivor/engine/core"
)

// Config fixes the footprints and projectile speed the store stamps onto
// new entities
type Config struct {
	Field           core.Size
	MonsterSize     core.Size
	BossSize        core.Size
	ProjectileSize  core.Size
	ProjectileSpeed float64 // px per tick
	LootSize        core.Size
}

// DefaultConfig matches 32px placeholder sprites at the game's scales
func DefaultConfig() Config {
	return Config{
		Field:           core.Size{W: 800, H: 600},
		MonsterSize:     core.Size{W: 32, H: 32}.Scaled(1.5),
		BossSize:        core.Size{W: 32, H: 32}.Scaled(2.5),
		ProjectileSize:  core.Size{W: 8, H: 8},
		ProjectileSpeed: 10,
		LootSize:        core.Size{W: 32, H: 32},
	}
}

// Store holds every live entity. Removal is two-phase: Destroy* marks, and
// RemoveDead compacts once per tick, so iteration never sees a shifting slice.
type Store struct {
	cfg    Config
	nextID ID

	player      *Player
	monsters    []*Monster
	projectiles []*Projectile
	loot        *Loot
}

func NewStore(cfg Config) *Store {
	return &Store{cfg: cfg}
}

func (s *Store) Config() Config { return s.cfg }

// Field is the playfield rectangle
func (s *Store) Field() image.Rectangle {
	return image.Rect(0, 0, s.cfg.Field.W, s.cfg.Field.H)
}

func (s *Store) newID() ID {
	s.nextID++
	return s.nextID
}

// SetPlayer installs p as the chased player, assigning it an ID
func (s *Store) SetPlayer(p *Player) {
	p.ID = s.newID()
	s.player = p
}

func (s *Store) Player() *Player { return s.player }

// SpawnMonster adds a monster at pos chasing the current player
func (s *Store) SpawnMonster(v Variant, skin int, pos core.Vec2, health int, speed float64) *Monster {
	size := s.cfg.MonsterSize
	if v == Boss {
		size = s.cfg.BossSize
	}
	m := &Monster{
		ID:        s.newID(),
		Variant:   v,
		Skin:      skin,
		Pos:       pos,
		Size:      size,
		Health:    health,
		MaxHealth: health,
		Speed:     speed,
	}
	if s.player != nil {
		m.Target = s.player.ID
	}
	s.monsters = append(s.monsters, m)
	return m
}

// SpawnProjectile adds a projectile centered on pos travelling along angle.
// Projectiles without positive damage are refused and nil is returned.
func (s *Store) SpawnProjectile(pos core.Vec2, angle float64, damage int) *Projectile {
	if damage <= 0 {
		return nil
	}
	size := s.cfg.ProjectileSize
	p := &Projectile{
		ID:     s.newID(),
		Pos:    core.Vec2{X: pos.X - float64(size.W)/2, Y: pos.Y - float64(size.H)/2},
		Size:   size,
		Vel:    core.FromAngle(angle, s.cfg.ProjectileSpeed),
		Damage: damage,
	}
	s.projectiles = append(s.projectiles, p)
	return p
}

// DropLoot places the chest at pos. It fails if one is already on the ground.
func (s *Store) DropLoot(pos core.Vec2) (*Loot, bool) {
	if s.loot != nil {
		return s.loot, false
	}
	s.loot = &Loot{ID: s.newID(), Pos: pos, Size: s.cfg.LootSize}
	return s.loot, true
}

func (s *Store) Loot() *Loot { return s.loot }

// TakeLoot removes and returns the chest, if any
func (s *Store) TakeLoot() *Loot {
	l := s.loot
	s.loot = nil
	return l
}

// Target resolves a monster's chase handle
func (s *Store) Target(m *Monster) *Player {
	if s.player != nil && s.player.ID == m.Target {
		return s.player
	}
	return nil
}

// DestroyMonster marks m for removal at the next RemoveDead
func (s *Store) DestroyMonster(m *Monster) { m.removed = true }

// DestroyProjectile marks p for removal at the next RemoveDead
func (s *Store) DestroyProjectile(p *Projectile) { p.removed = true }

// ForEachMonster visits live monsters in spawn order until fn returns false
func (s *Store) ForEachMonster(fn func(*Monster) bool) {
	for _, m := range s.monsters {
		if m.removed {
			continue
		}
		if !fn(m) {
			return
		}
	}
}

// ForEachProjectile visits live projectiles in spawn order until fn returns false
func (s *Store) ForEachProjectile(fn func(*Projectile) bool) {
	for _, p := range s.projectiles {
		if p.removed {
			continue
		}
		if !fn(p) {
			return
		}
	}
}

// RemoveDead compacts both collections, dropping marked entities,
// projectiles that left the playfield and monsters with no health left.
// It returns how many of each were evicted.
func (s *Store) RemoveDead() (monsters, projectiles int) {
	field := s.Field()

	keptM := s.monsters[:0]
	for _, m := range s.monsters {
		if m.removed || m.Dead() {
			m.removed = true
			monsters++
			continue
		}
		keptM = append(keptM, m)
	}
	clear(s.monsters[len(keptM):])
	s.monsters = keptM

	keptP := s.projectiles[:0]
	for _, p := range s.projectiles {
		if p.removed || !p.Bounds().Overlaps(field) {
			p.removed = true
			projectiles++
			continue
		}
		keptP = append(keptP, p)
	}
	clear(s.projectiles[len(keptP):])
	s.projectiles = keptP
	return monsters, projectiles
}

// Clear drops every monster and projectile. The player and loot stay.
func (s *Store) Clear() {
	clear(s.monsters)
	s.monsters = s.monsters[:0]
	clear(s.projectiles)
	s.projectiles = s.projectiles[:0]
}

// Reset empties the store completely and restarts ID assignment
func (s *Store) Reset() {
	s.Clear()
	s.player = nil
	s.loot = nil
	s.nextID = 0
}

// MonsterCount counts monsters not yet marked for removal
func (s *Store) MonsterCount() int {
	n := 0
	s.ForEachMonster(func(*Monster) bool { n++; return true })
	return n
}

// ProjectileCount counts projectiles not yet marked for removal
func (s *Store) ProjectileCount() int {
	n := 0
	s.ForEachProjectile(func(*Projectile) bool { n++; return true })
	return n
}
