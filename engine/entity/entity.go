package entity

import (
	"image"
	"math"

	"github.com/1siamBot/horde-survivor/engine/combat"
	"github.com/1siamBot/horde-survivor/engine/core"
)

// ID is a store-unique entity identifier. Zero is never assigned.
type ID uint64

// Variant tags a monster's behavior class
type Variant uint8

const (
	Normal Variant = iota
	Boss
	Mysterious
)

func (v Variant) String() string {
	switch v {
	case Normal:
		return "normal"
	case Boss:
		return "boss"
	case Mysterious:
		return "mysterious"
	default:
		return "unknown"
	}
}

// Intent holds the movement keys currently held
type Intent struct {
	Up, Down, Left, Right bool
}

// hitbox is the fraction of the sprite the player actually collides with
const (
	hitboxW = 0.5
	hitboxH = 0.8
)

// ---- Player ----

type Player struct {
	ID        ID
	Pos       core.Vec2 // top-left of the sprite
	Size      core.Size
	Health    int
	MaxHealth int
	Speed     float64
	Intent    Intent
	Aim       float64 // radians, 0 = east
	Gun       *combat.Controller
}

// Bounds is the full sprite rectangle
func (p *Player) Bounds() image.Rectangle {
	return core.BoxAt(p.Pos, p.Size)
}

// Hitbox is the reduced collision rectangle centered in the sprite
func (p *Player) Hitbox() image.Rectangle {
	hs := core.Size{W: int(float64(p.Size.W) * hitboxW), H: int(float64(p.Size.H) * hitboxH)}
	off := core.Vec2{X: float64(p.Size.W-hs.W) / 2, Y: float64(p.Size.H-hs.H) / 2}
	return core.BoxAt(p.Pos.Add(off), hs)
}

func (p *Player) Center() core.Vec2 { return core.Center(p.Pos, p.Size) }

// TakeDamage subtracts n, clamping at zero, and returns the new health
func (p *Player) TakeDamage(n int) int {
	p.Health -= n
	if p.Health < 0 {
		p.Health = 0
	}
	return p.Health
}

// Heal adds n, clamping at MaxHealth
func (p *Player) Heal(n int) {
	p.Health = min(p.Health+n, p.MaxHealth)
}

func (p *Player) IncreaseMaxHealth(n int) {
	p.MaxHealth += n
}

func (p *Player) Alive() bool { return p.Health > 0 }

// Move applies one tick of intent and keeps the sprite inside field
func (p *Player) Move(field core.Size) {
	var d core.Vec2
	if p.Intent.Up {
		d.Y -= p.Speed
	}
	if p.Intent.Down {
		d.Y += p.Speed
	}
	if p.Intent.Left {
		d.X -= p.Speed
	}
	if p.Intent.Right {
		d.X += p.Speed
	}
	p.Pos = p.Pos.Add(d)
	p.Pos.X = core.Clamp(p.Pos.X, 0, float64(max(field.W-p.Size.W, 0)))
	p.Pos.Y = core.Clamp(p.Pos.Y, 0, float64(max(field.H-p.Size.H, 0)))
}

// AimAt points the weapon from the sprite center toward target
func (p *Player) AimAt(target core.Vec2) {
	p.Aim = p.Center().AngleTo(target)
}

// GunFlipped reports whether the weapon sprite should be mirrored
func (p *Player) GunFlipped() bool {
	return math.Abs(p.Aim) > math.Pi/2
}

// Muzzle is the point projectiles leave from, dist pixels along the aim
func (p *Player) Muzzle(dist float64) core.Vec2 {
	return p.Center().Add(core.FromAngle(p.Aim, dist))
}

func (p *Player) ClearIntent() { p.Intent = Intent{} }

// ---- Monster ----

type Monster struct {
	ID        ID
	Variant   Variant
	Skin      int // sprite index within the variant
	Pos       core.Vec2
	Size      core.Size
	Health    int
	MaxHealth int
	Speed     float64
	Target    ID // player being chased; a handle, not ownership

	removed bool
}

func (m *Monster) Bounds() image.Rectangle { return core.BoxAt(m.Pos, m.Size) }
func (m *Monster) Center() core.Vec2 { return core.Center(m.Pos, m.Size) }
func (m *Monster) Removed() bool { return m.removed }
func (m *Monster) Dead() bool { return m.Health <= 0 }

// ApplyDamage subtracts n. Health may go negative until the monster is removed.
func (m *Monster) ApplyDamage(n int) {
	m.Health -= n
}

// Advance steps the monster toward target by its speed. A monster already
// centered on the target stays put.
func (m *Monster) Advance(target core.Vec2) {
	d := target.Sub(m.Center())
	dist := d.Len()
	if dist == 0 {
		return
	}
	m.Pos = m.Pos.Add(d.Scale(m.Speed / dist))
}

// ---- Projectile ----

type Projectile struct {
	ID     ID
	Pos    core.Vec2
	Size   core.Size
	Vel    core.Vec2
	Damage int

	removed bool
}

func (p *Projectile) Bounds() image.Rectangle { return core.BoxAt(p.Pos, p.Size) }
func (p *Projectile) Removed() bool { return p.removed }

// Advance moves the projectile by its velocity
func (p *Projectile) Advance() {
	p.Pos = p.Pos.Add(p.Vel)
}

// ---- Loot ----

// Loot is the chest dropped once per wave
type Loot struct {
	ID   ID
	Pos  core.Vec2
	Size core.Size
}

func (l *Loot) Bounds() image.Rectangle { return core.BoxAt(l.Pos, l.Size) }
