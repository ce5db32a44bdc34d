package sim

import (
	"log/slog"
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/1siamBot/horde-survivor/engine/collision"
	"github.com/1siamBot/horde-survivor/engine/combat"
	"github.com/1siamBot/horde-survivor/engine/core"
	"github.com/1siamBot/horde-survivor/engine/entity"
	"github.com/1siamBot/horde-survivor/engine/spawn"
	"github.com/1siamBot/horde-survivor/engine/wave"
)

// Tuning is every number the simulation is built from
type Tuning struct {
	Field        core.Size
	PlayerSize   core.Size
	PlayerSpeed  float64 // px per tick
	PlayerHealth int
	MuzzleOffset float64 // px from the player center along the aim
	StartWeapon  combat.Kind
	Seed         uint64

	Entities entity.Config
	Spawn    spawn.Config
}

func DefaultTuning() Tuning {
	field := core.Size{W: 800, H: 600}
	ents := entity.DefaultConfig()
	ents.Field = field
	sp := spawn.DefaultConfig()
	sp.Field = field
	return Tuning{
		Field:        field,
		PlayerSize:   core.Size{W: 32, H: 32}.Scaled(3),
		PlayerSpeed:  5,
		PlayerHealth: 100,
		MuzzleOffset: 40,
		StartWeapon:  combat.Pistol,
		Seed:         1,
		Entities:     ents,
		Spawn:        sp,
	}
}

// Simulation owns all game state. It is driven from a single goroutine:
// HandleInput and Tick must not be called concurrently.
type Simulation struct {
	tuning Tuning
	layout Layout
	rng    *rand.Rand
	bus    *core.EventBus
	log    *slog.Logger

	store    *entity.Store
	waves    *wave.Controller
	director *spawn.Director
	resolver *collision.Resolver

	runID    uuid.UUID
	runStart int64
	now      int64
	ticks    uint64

	pointer    core.Vec2
	hasPointer bool
	fire       bool // pending fire request, consumed by the next Playing tick
	stats      Stats
}

// New builds a simulation sitting in the start menu
func New(t Tuning, log *slog.Logger) *Simulation {
	if log == nil {
		log = slog.Default()
	}
	s := &Simulation{
		tuning: t,
		layout: NewLayout(t.Field),
		rng:    rand.New(rand.NewPCG(t.Seed, t.Seed^0x9e3779b97f4a7c15)),
		bus:    core.NewEventBus(),
		log:    log,
		store:  entity.NewStore(t.Entities),
	}
	s.rebuild(0)
	return s
}

func (s *Simulation) Bus() *core.EventBus { return s.bus }
func (s *Simulation) Tuning() Tuning { return s.tuning }
func (s *Simulation) Layout() Layout { return s.layout }
func (s *Simulation) State() core.GameState { return s.waves.State() }
func (s *Simulation) Now() int64 { return s.now }
func (s *Simulation) RunID() uuid.UUID { return s.runID }
func (s *Simulation) Stats() Stats { return s.stats }

// rebuild replaces the player and every component with fresh ones under a
// new run id. The wave controller comes back in the menu state.
func (s *Simulation) rebuild(now int64) {
	s.runID = uuid.New()
	runLog := s.log.With("run_id", s.runID.String())

	s.store.Reset()
	s.store.SetPlayer(&entity.Player{
		Pos:       core.Vec2{X: float64(s.tuning.Field.W-s.tuning.PlayerSize.W) / 2, Y: float64(s.tuning.Field.H-s.tuning.PlayerSize.H) / 2},
		Size:      s.tuning.PlayerSize,
		Health:    s.tuning.PlayerHealth,
		MaxHealth: s.tuning.PlayerHealth,
		Speed:     s.tuning.PlayerSpeed,
		Gun:       combat.NewController(s.tuning.StartWeapon, s.rng),
	})

	s.waves = wave.NewController(s.store, s.bus, runLog)
	s.director = spawn.NewDirector(s.tuning.Spawn, s.store, s.waves, s.rng, s.bus, runLog)
	s.resolver = collision.NewResolver(s.store, s.waves, s.bus, runLog)
	s.director.Reset(now)

	s.runStart = now
	s.now = now
	s.ticks = 0
	s.hasPointer = false
	s.fire = false
	s.stats = Stats{}
}

// Reset starts a fresh run at wave one in Playing
func (s *Simulation) Reset(now int64) {
	s.rebuild(now)
	s.waves.Reset(now)
	s.bus.Emit(core.Event{Type: core.EvtGameReset, At: now})
	s.log.Info("game reset", "run_id", s.runID.String())
}

// Tick advances one frame. Outside Playing it only records the time.
func (s *Simulation) Tick(now int64) {
	s.now = now
	if s.waves.State() != core.StatePlaying {
		return
	}
	s.ticks++

	p := s.store.Player()
	p.Move(s.tuning.Field)
	if s.hasPointer {
		p.AimAt(s.pointer)
	}
	p.Gun.Tick(now)
	if s.fire {
		s.fire = false
		s.shoot(now, p)
	}

	s.director.MaybeSpawn(now)

	s.store.ForEachProjectile(func(pr *entity.Projectile) bool {
		pr.Advance()
		return true
	})
	s.store.ForEachMonster(func(m *entity.Monster) bool {
		if target := s.store.Target(m); target != nil {
			m.Advance(target.Center())
		}
		return true
	})

	out := s.resolver.Resolve(now)
	s.record(out)
	state := s.waves.CheckTransitions(now, wave.Transition{BossKilled: out.BossKilled, LootCollected: out.LootCollected})
	s.store.RemoveDead()

	if state.Intermission() {
		s.fire = false
	}
}

func (s *Simulation) shoot(now int64, p *entity.Player) {
	shots := p.Gun.Fire(now, p.Aim)
	if len(shots) == 0 {
		return
	}
	muzzle := p.Muzzle(s.tuning.MuzzleOffset)
	for _, shot := range shots {
		pr := s.store.SpawnProjectile(muzzle, shot.Angle, shot.Damage)
		if pr == nil {
			continue
		}
		s.stats.ShotsFired++
		s.bus.Emit(core.Event{Type: core.EvtProjectileFired, At: now, Payload: core.EntityInfo{ID: uint64(pr.ID), Kind: p.Gun.Kind().String(), Pos: pr.Pos}})
	}
}

func (s *Simulation) record(out collision.Outcome) {
	for v, n := range out.Kills {
		s.stats.Kills[v] += n
	}
	if out.BossKilled {
		s.stats.BossesDefeated++
	}
	s.stats.Hits += out.Hits
	s.stats.DamageTaken += out.DamageTaken
	if out.LootCollected {
		s.stats.LootCollected++
	}
}

// HandleInput applies one command at the time of the last tick. Commands
// that make no sense in the current state are ignored.
func (s *Simulation) HandleInput(cmd Command) bool {
	state := s.waves.State()
	p := s.store.Player()
	switch cmd.Type {
	case CmdSetMovement:
		// releases always land so a key held across an intermission
		// cannot stick
		if cmd.Pressed && state != core.StatePlaying {
			return false
		}
		switch cmd.Dir {
		case DirUp:
			p.Intent.Up = cmd.Pressed
		case DirDown:
			p.Intent.Down = cmd.Pressed
		case DirLeft:
			p.Intent.Left = cmd.Pressed
		case DirRight:
			p.Intent.Right = cmd.Pressed
		default:
			return false
		}
		return true
	case CmdSetAim:
		p.Aim = cmd.Angle
		s.hasPointer = false
		return true
	case CmdSetPointer:
		s.pointer = core.Vec2{X: float64(cmd.X), Y: float64(cmd.Y)}
		s.hasPointer = true
		return true
	case CmdFire:
		if state != core.StatePlaying {
			return false
		}
		s.fire = true
		return true
	case CmdReload:
		if state != core.StatePlaying {
			return false
		}
		return p.Gun.StartReload(s.now)
	case CmdPointerClick:
		next, ok := s.layout.click(state, cmd.X, cmd.Y)
		if !ok {
			return false
		}
		return s.HandleInput(next)
	case CmdSelectUpgrade:
		return s.waves.SelectUpgrade(cmd.Index)
	case CmdConfirmUpgrade:
		return s.waves.Confirm(s.now)
	case CmdChooseWeapon:
		// range-check before narrowing so large indexes cannot wrap onto a kind
		if cmd.Index < 0 || cmd.Index > int(combat.Rifle) {
			return false
		}
		return s.waves.ChooseWeapon(s.now, combat.Kind(cmd.Index))
	case CmdStartGame:
		if state != core.StateMenu {
			return false
		}
		s.Reset(s.now)
		return true
	case CmdRestart:
		if state != core.StateGameOver {
			return false
		}
		s.Reset(s.now)
		return true
	}
	return false
}
