package ai

import (
	"log/slog"
	"math"

	"github.com/1siamBot/horde-survivor/engine/combat"
	"github.com/1siamBot/horde-survivor/engine/core"
	"github.com/1siamBot/horde-survivor/engine/sim"
	"github.com/1siamBot/horde-survivor/engine/wave"
)

// Difficulty controls how often the autopilot re-plans and how much room
// it keeps from the horde
type Difficulty int

const (
	DiffEasy Difficulty = iota
	DiffMedium
	DiffHard
)

func (d Difficulty) String() string {
	switch d {
	case DiffEasy:
		return "easy"
	case DiffHard:
		return "hard"
	default:
		return "medium"
	}
}

// Config tunes the autopilot
type Config struct {
	ThinkInterval int64   // ms between decisions
	KiteDistance  float64 // px; closer monsters are backed away from
	Weapons       []combat.Kind
	AutoRestart   bool
}

// ConfigFor returns the preset for d
func ConfigFor(d Difficulty) Config {
	cfg := Config{
		ThinkInterval: 100,
		KiteDistance:  180,
		Weapons:       []combat.Kind{combat.Rifle, combat.Shotgun, combat.Pistol},
	}
	switch d {
	case DiffEasy:
		cfg.ThinkInterval = 250
		cfg.KiteDistance = 0
	case DiffHard:
		cfg.ThinkInterval = 50
		cfg.KiteDistance = 240
	}
	return cfg
}

// Autopilot plays the game from snapshots alone, producing the same
// commands a person at the keyboard would
type Autopilot struct {
	cfg Config
	log *slog.Logger

	lastThink int64
	thought   bool
	held      [4]bool // by sim.Direction
	wasPlay   bool
}

func New(cfg Config, log *slog.Logger) *Autopilot {
	if log == nil {
		log = slog.Default()
	}
	return &Autopilot{cfg: cfg, log: log}
}

// Decide returns the commands for snap. It stays quiet until ThinkInterval
// has passed since its last decision.
func (a *Autopilot) Decide(snap *sim.Snapshot) []sim.Command {
	playing := snap.State == core.StatePlaying
	if playing && !a.wasPlay {
		// intermissions wipe movement intent
		a.held = [4]bool{}
	}
	a.wasPlay = playing

	if a.thought && snap.Now-a.lastThink < a.cfg.ThinkInterval {
		return nil
	}
	a.thought = true
	a.lastThink = snap.Now

	switch snap.State {
	case core.StateMenu:
		return []sim.Command{sim.StartGame()}
	case core.StateGameOver:
		if a.cfg.AutoRestart {
			return []sim.Command{sim.Restart()}
		}
		return nil
	case core.StateWaveCompleted:
		// round robin over the upgrades, one per cleared wave
		i := (snap.Wave - 1) % len(wave.Upgrades)
		a.log.Debug("autopilot upgrade", "wave", snap.Wave, "upgrade", wave.Upgrades[i].String())
		return []sim.Command{sim.SelectUpgrade(i), sim.ConfirmUpgrade()}
	case core.StateChestOpen:
		k := a.pickWeapon()
		a.log.Debug("autopilot weapon", "weapon", k.String())
		return []sim.Command{sim.ChooseWeapon(k)}
	}
	return a.fight(snap)
}

func (a *Autopilot) pickWeapon() combat.Kind {
	for _, k := range a.cfg.Weapons {
		if k.Valid() {
			return k
		}
	}
	return combat.Pistol
}

func (a *Autopilot) fight(snap *sim.Snapshot) []sim.Command {
	var out []sim.Command
	p := &snap.Player
	me := core.Center(p.Pos, p.Size)

	target, dist, ok := Nearest(snap, me)
	if !ok {
		if !p.Reloading && p.Ammo < p.MaxAmmo {
			out = append(out, sim.ReloadPressed())
		}
		return a.steer(out, core.Vec2{})
	}

	out = append(out, sim.SetAim(me.AngleTo(target)))
	switch {
	case p.Reloading:
	case p.Ammo == 0:
		out = append(out, sim.ReloadPressed())
	default:
		out = append(out, sim.FirePressed())
	}

	var want core.Vec2
	if dist < a.cfg.KiteDistance {
		away := me.Sub(target)
		if l := away.Len(); l > 0 {
			want = away.Scale(1 / l)
		}
		// drift back toward the middle so the corners do not trap us
		mid := core.Vec2{X: float64(snap.Field.W) / 2, Y: float64(snap.Field.H) / 2}
		home := mid.Sub(me)
		if l := home.Len(); l > 0 {
			want = want.Add(home.Scale(0.5 / l))
		}
	}
	return a.steer(out, want)
}

// steer turns a desired heading into key presses and releases, sending
// only the keys that change
func (a *Autopilot) steer(out []sim.Command, want core.Vec2) []sim.Command {
	const dead = 0.3
	next := [4]bool{
		sim.DirUp:    want.Y < -dead,
		sim.DirDown:  want.Y > dead,
		sim.DirLeft:  want.X < -dead,
		sim.DirRight: want.X > dead,
	}
	for d := range next {
		if next[d] != a.held[d] {
			out = append(out, sim.SetMovement(sim.Direction(d), next[d]))
		}
	}
	a.held = next
	return out
}

// Nearest finds the monster whose center is closest to from
func Nearest(snap *sim.Snapshot, from core.Vec2) (core.Vec2, float64, bool) {
	best, bestD := core.Vec2{}, math.Inf(1)
	for i := range snap.Monsters {
		m := &snap.Monsters[i]
		c := core.Center(m.Pos, m.Size)
		if d := from.DistanceTo(c); d < bestD {
			best, bestD = c, d
		}
	}
	return best, bestD, !math.IsInf(bestD, 1)
}
