package combat

import "math"

// Kind identifies a weapon variant
type Kind uint8

const (
	Pistol Kind = iota
	Shotgun
	Rifle
)

// ChestChoices is the order weapons are offered when a chest is opened
var ChestChoices = [3]Kind{Pistol, Rifle, Shotgun}

func (k Kind) String() string {
	switch k {
	case Pistol:
		return "pistol"
	case Shotgun:
		return "shotgun"
	case Rifle:
		return "rifle"
	default:
		return "unknown"
	}
}

// Valid reports whether k names a known weapon
func (k Kind) Valid() bool {
	return k <= Rifle
}

// Spec holds the base stats of a weapon before upgrades
type Spec struct {
	Damage   int
	MaxAmmo  int
	Reload   int64   // ms
	Cooldown int64   // ms between shots
	Pellets  int     // projectiles per shot
	Spread   float64 // max per-pellet deviation in radians
}

const (
	shotgunPellets = 8
	shotgunSpread  = 10 * math.Pi / 180

	// MinReload is the floor for upgraded reload times
	MinReload int64 = 100
)

var specs = [...]Spec{
	Pistol:  {Damage: 5, MaxAmmo: 15, Reload: 1500, Cooldown: 200, Pellets: 1},
	Shotgun: {Damage: 5, MaxAmmo: 2, Reload: 3000, Cooldown: 1000, Pellets: shotgunPellets, Spread: shotgunSpread},
	Rifle:   {Damage: 30, MaxAmmo: 3, Reload: 2500, Cooldown: 800, Pellets: 1},
}

// SpecFor returns the base stats for a weapon kind
func SpecFor(k Kind) Spec {
	if !k.Valid() {
		k = Pistol
	}
	return specs[k]
}

// Stats are the effective weapon numbers after upgrade bonuses
type Stats struct {
	Kind     Kind
	Damage   int
	MaxAmmo  int
	Reload   int64
	Cooldown int64
	Pellets  int
	Spread   float64
}

// DamagePerLevel is the bullet damage gained per damage upgrade level
func DamagePerLevel(k Kind) int {
	if k == Rifle {
		return 5
	}
	return 1
}

// AmmoPerLevel is the magazine size gained per mastery level
func AmmoPerLevel(k Kind) int {
	if k == Pistol {
		return 5
	}
	return 1
}

// ReloadCutPerLevel is the reload time removed per mastery level
func ReloadCutPerLevel(k Kind) int64 {
	if k == Shotgun {
		return 100
	}
	return 200
}

// StatsFor applies upgrade levels to the base stats of k
func StatsFor(k Kind, damageLevel, masteryLevel int) Stats {
	base := SpecFor(k)
	reload := base.Reload - int64(masteryLevel)*ReloadCutPerLevel(k)
	if reload < MinReload {
		reload = MinReload
	}
	return Stats{
		Kind:     k,
		Damage:   base.Damage + damageLevel*DamagePerLevel(k),
		MaxAmmo:  base.MaxAmmo + masteryLevel*AmmoPerLevel(k),
		Reload:   reload,
		Cooldown: base.Cooldown,
		Pellets:  base.Pellets,
		Spread:   base.Spread,
	}
}
