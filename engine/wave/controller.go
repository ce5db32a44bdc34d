package wave

import (
	"log/slog"

	"github.com/1siamBot/horde-survivor/engine/combat"
	"github.com/1siamBot/horde-survivor/engine/core"
	"github.com/1siamBot/horde-survivor/engine/entity"
)

// Upgrade is one of the between-wave choices
type Upgrade uint8

const (
	UpgradeHealth Upgrade = iota
	UpgradeDamage
	UpgradeMastery
)

// Upgrades lists the choices in menu order
var Upgrades = [3]Upgrade{UpgradeHealth, UpgradeDamage, UpgradeMastery}

func (u Upgrade) String() string {
	switch u {
	case UpgradeHealth:
		return "health"
	case UpgradeDamage:
		return "damage"
	case UpgradeMastery:
		return "mastery"
	default:
		return "unknown"
	}
}

const (
	// HealthStep is the max health granted by the health upgrade
	HealthStep = 20
	// HealPercent of max health is restored after any upgrade
	HealPercent = 40
)

// Transition is what the collision pass reports for a tick
type Transition struct {
	BossKilled    bool
	LootCollected bool
}

// Controller runs wave progression and the intermissions between waves.
// It starts in the menu; Reset enters the first wave.
type Controller struct {
	store *entity.Store
	bus   *core.EventBus
	log   *slog.Logger

	state       core.GameState
	number      int
	startedAt   int64
	bossSpawned bool
	lootDropped bool
	selected    int // upgrade cursor, -1 when nothing is selected
}

func NewController(store *entity.Store, bus *core.EventBus, log *slog.Logger) *Controller {
	if log == nil {
		log = slog.Default()
	}
	return &Controller{store: store, bus: bus, log: log, state: core.StateMenu, number: 1, selected: -1}
}

func (c *Controller) State() core.GameState { return c.state }
func (c *Controller) Number() int { return c.number }
func (c *Controller) StartedAt() int64 { return c.startedAt }
func (c *Controller) BossSpawned() bool { return c.bossSpawned }
func (c *Controller) MarkBossSpawned() { c.bossSpawned = true }
func (c *Controller) LootDropped() bool { return c.lootDropped }
func (c *Controller) MarkLootDropped() { c.lootDropped = true }

// Selected returns the highlighted upgrade, if any
func (c *Controller) Selected() (Upgrade, bool) {
	if c.selected < 0 {
		return 0, false
	}
	return Upgrades[c.selected], true
}

// CheckTransitions moves out of Playing after a tick. A dead player wins
// over a boss kill, which wins over a chest pickup.
func (c *Controller) CheckTransitions(now int64, t Transition) core.GameState {
	if c.state != core.StatePlaying {
		return c.state
	}
	p := c.store.Player()
	switch {
	case p != nil && !p.Alive():
		c.enter(core.StateGameOver)
		c.bus.Emit(core.Event{Type: core.EvtGameOver, At: now, Payload: core.WaveInfo{Wave: c.number}})
		c.log.Info("game over", "wave", c.number)
	case t.BossKilled:
		c.enter(core.StateWaveCompleted)
		c.bus.Emit(core.Event{Type: core.EvtWaveCompleted, At: now, Payload: core.WaveInfo{Wave: c.number}})
		c.log.Info("wave completed", "wave", c.number)
	case t.LootCollected:
		c.enter(core.StateChestOpen)
		c.log.Info("chest opened", "wave", c.number)
	}
	return c.state
}

func (c *Controller) enter(s core.GameState) {
	c.state = s
	c.selected = -1
	if p := c.store.Player(); p != nil {
		p.ClearIntent()
	}
}

// SelectUpgrade highlights choice i. Out of range or outside the upgrade
// screen it does nothing.
func (c *Controller) SelectUpgrade(i int) bool {
	if c.state != core.StateWaveCompleted || i < 0 || i >= len(Upgrades) {
		return false
	}
	c.selected = i
	return true
}

// Confirm applies the highlighted upgrade
func (c *Controller) Confirm(now int64) bool {
	u, ok := c.Selected()
	if !ok {
		return false
	}
	return c.ConfirmUpgrade(now, u)
}

// ConfirmUpgrade applies u, heals, refreshes weapon stats and starts the
// next wave
func (c *Controller) ConfirmUpgrade(now int64, u Upgrade) bool {
	p := c.store.Player()
	if c.state != core.StateWaveCompleted || p == nil {
		return false
	}
	switch u {
	case UpgradeHealth:
		p.IncreaseMaxHealth(HealthStep)
	case UpgradeDamage:
		p.Gun.UpgradeDamage()
	case UpgradeMastery:
		p.Gun.UpgradeMastery()
	default:
		return false
	}
	p.Heal(p.MaxHealth * HealPercent / 100)
	p.Gun.Reapply()

	c.bus.Emit(core.Event{Type: core.EvtUpgradeApplied, At: now, Payload: core.WaveInfo{Wave: c.number, Detail: u.String()}})
	c.log.Info("upgrade applied", "upgrade", u, "wave", c.number, "max_health", p.MaxHealth)
	c.StartNextWave(now)
	return true
}

// StartNextWave advances the counter and clears the field
func (c *Controller) StartNextWave(now int64) {
	c.number++
	c.startedAt = now
	c.bossSpawned = false
	c.lootDropped = false
	c.selected = -1
	c.store.Clear()
	c.state = core.StatePlaying

	c.bus.Emit(core.Event{Type: core.EvtWaveStarted, At: now, Payload: core.WaveInfo{Wave: c.number}})
	c.log.Info("wave started", "wave", c.number)
}

// ChooseWeapon equips k and closes the chest screen
func (c *Controller) ChooseWeapon(now int64, k combat.Kind) bool {
	p := c.store.Player()
	if c.state != core.StateChestOpen || p == nil || !k.Valid() {
		return false
	}
	p.Gun.Switch(k)
	c.state = core.StatePlaying

	c.bus.Emit(core.Event{Type: core.EvtWeaponSwitched, At: now, Payload: core.WaveInfo{Wave: c.number, Detail: k.String()}})
	c.log.Info("weapon chosen", "weapon", k, "wave", c.number)
	return true
}

// Reset returns to wave one and enters Playing
func (c *Controller) Reset(now int64) {
	c.number = 1
	c.startedAt = now
	c.bossSpawned = false
	c.lootDropped = false
	c.selected = -1
	c.state = core.StatePlaying
}
