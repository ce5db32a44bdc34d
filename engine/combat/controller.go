package combat

import "math/rand/v2"

// State is the weapon state machine position
type State uint8

const (
	StateIdle State = iota
	StateFiring
	StateReloading
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFiring:
		return "firing"
	case StateReloading:
		return "reloading"
	default:
		return "unknown"
	}
}

// Shot is one projectile a successful attack asks the caller to spawn
type Shot struct {
	Angle  float64
	Damage int
}

// Controller is the per-player weapon, ammo and reload state machine. It
// also owns the upgrade levels, since they only matter through weapon stats.
type Controller struct {
	stats Stats
	ammo  int

	reloading   bool
	reloadStart int64

	fired      bool
	lastAttack int64

	damageLevel  int
	masteryLevel int

	rng *rand.Rand
}

// NewController equips kind with a full magazine. rng drives pellet spread;
// nil falls back to a fixed seed so spread stays reproducible.
func NewController(kind Kind, rng *rand.Rand) *Controller {
	if rng == nil {
		rng = rand.New(rand.NewPCG(1, 2))
	}
	c := &Controller{rng: rng}
	c.Switch(kind)
	return c
}

// Switch equips a weapon: ammo is refilled to the new maximum, any reload is
// cancelled and upgrade bonuses are reapplied.
func (c *Controller) Switch(kind Kind) {
	if !kind.Valid() {
		return
	}
	c.reloading = false
	c.stats = StatsFor(kind, c.damageLevel, c.masteryLevel)
	c.ammo = c.stats.MaxAmmo
}

// Reapply recomputes stats for the equipped weapon, picking up new upgrade
// levels. It behaves exactly like switching to the same weapon.
func (c *Controller) Reapply() {
	c.Switch(c.stats.Kind)
}

// Attack tries to fire at time now. It fails while reloading, during the
// cooldown window, or with an empty magazine.
func (c *Controller) Attack(now int64) bool {
	if c.reloading || c.ammo <= 0 {
		return false
	}
	if c.fired && now-c.lastAttack < c.stats.Cooldown {
		return false
	}
	c.fired = true
	c.lastAttack = now
	c.ammo--
	if c.ammo == 0 {
		c.reloading = true
		c.reloadStart = now
	}
	return true
}

// Fire attacks and, on success, returns the projectiles to spawn along aim.
// Multi-pellet weapons perturb each pellet independently within the spread
// cone; every pellet carries the full weapon damage.
func (c *Controller) Fire(now int64, aim float64) []Shot {
	if !c.Attack(now) {
		return nil
	}
	n := max(c.stats.Pellets, 1)
	shots := make([]Shot, n)
	for i := range shots {
		angle := aim
		if c.stats.Spread > 0 {
			angle += (c.rng.Float64()*2 - 1) * c.stats.Spread
		}
		shots[i] = Shot{Angle: angle, Damage: c.stats.Damage}
	}
	return shots
}

// Tick finishes a reload once the reload time has fully elapsed
func (c *Controller) Tick(now int64) {
	if c.reloading && now-c.reloadStart >= c.stats.Reload {
		c.reloading = false
		c.ammo = c.stats.MaxAmmo
	}
}

// StartReload begins a manual reload. No-op if already reloading or full.
func (c *Controller) StartReload(now int64) bool {
	if c.reloading || c.ammo >= c.stats.MaxAmmo {
		return false
	}
	c.reloading = true
	c.reloadStart = now
	return true
}

func (c *Controller) UpgradeDamage() { c.damageLevel++ }
func (c *Controller) UpgradeMastery() { c.masteryLevel++ }

// State reports the machine position at time now
func (c *Controller) State(now int64) State {
	switch {
	case c.reloading:
		return StateReloading
	case c.fired && now-c.lastAttack < c.stats.Cooldown:
		return StateFiring
	default:
		return StateIdle
	}
}

// ReloadProgress returns how far the current reload is, in [0, 1]
func (c *Controller) ReloadProgress(now int64) float64 {
	if !c.reloading {
		return 0
	}
	p := float64(now-c.reloadStart) / float64(c.stats.Reload)
	return min(max(p, 0), 1)
}

func (c *Controller) Kind() Kind { return c.stats.Kind }
func (c *Controller) Stats() Stats { return c.stats }
func (c *Controller) Ammo() int { return c.ammo }
func (c *Controller) MaxAmmo() int { return c.stats.MaxAmmo }
func (c *Controller) Damage() int { return c.stats.Damage }
func (c *Controller) ReloadTime() int64 { return c.stats.Reload }
func (c *Controller) Cooldown() int64 { return c.stats.Cooldown }
func (c *Controller) Reloading() bool { return c.reloading }
func (c *Controller) DamageLevel() int { return c.damageLevel }
func (c *Controller) MasteryLevel() int { return c.masteryLevel }
