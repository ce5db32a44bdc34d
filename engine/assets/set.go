package assets

import "github.com/1siamBot/horde-survivor/engine/combat"

// Entity scales applied to the source images
const (
	PlayerScale  = 3
	MonsterScale = 1.5
	BossScale    = 2.5
	GunScale     = 2
)

// Entry describes one sprite file
type Entry struct {
	Name     string
	Scale    float64
	Fallback Fallback
}

// Manifest is every file the game reads from the assets directory
var Manifest = []Entry{
	{"Protagonist.png", PlayerScale, Blue},
	{"Monster1.png", MonsterScale, Purple},
	{"Monster2.png", MonsterScale, Purple},
	{"Boss.png", BossScale, Magenta},
	{"Mysterious.png", MonsterScale, Cyan},
	{"chest.png", 1, Gold},
	{"gun.png", GunScale, White},
	{"shotgun.png", GunScale, White},
	{"rifle.png", GunScale, White},
	{"click to start.png", 1, White},
}

// Set is every sprite the game draws
type Set struct {
	Player     Sprite
	Monsters   [2]Sprite // by monster skin
	Boss       Sprite
	Mysterious Sprite
	Chest      Sprite
	Guns       [3]Sprite // by combat.Kind
	Title      Sprite
}

// LoadSet loads the manifest once, before the simulation starts
func LoadSet(l *Loader) *Set {
	got := make(map[string]Sprite, len(Manifest))
	fallbacks := 0
	for _, e := range Manifest {
		sp := l.Load(e.Name, e.Scale, e.Fallback)
		if sp.Fallback {
			fallbacks++
		}
		got[e.Name] = sp
	}
	l.log.Info("sprites loaded", "total", len(Manifest), "fallbacks", fallbacks)

	s := &Set{
		Player:     got["Protagonist.png"],
		Monsters:   [2]Sprite{got["Monster1.png"], got["Monster2.png"]},
		Boss:       got["Boss.png"],
		Mysterious: got["Mysterious.png"],
		Chest:      got["chest.png"],
		Title:      got["click to start.png"],
	}
	s.Guns[combat.Pistol] = got["gun.png"]
	s.Guns[combat.Shotgun] = got["shotgun.png"]
	s.Guns[combat.Rifle] = got["rifle.png"]
	return s
}
