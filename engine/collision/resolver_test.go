package collision

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1siamBot/horde-survivor/engine/combat"
	"github.com/1siamBot/horde-survivor/engine/core"
	"github.com/1siamBot/horde-survivor/engine/entity"
	"github.com/1siamBot/horde-survivor/engine/wave"
)

type lootFlag struct{ dropped bool }

func (f *lootFlag) LootDropped() bool { return f.dropped }
func (f *lootFlag) MarkLootDropped() { f.dropped = true }

type fixture struct {
	store  *entity.Store
	player *entity.Player
	flag   *lootFlag
	bus    *core.EventBus
	r      *Resolver
}

// newFixture puts a 96x96 player at (400, 300); its hitbox spans
// x 424..472, y 310..386
func newFixture() *fixture {
	store := entity.NewStore(entity.DefaultConfig())
	p := &entity.Player{
		Pos: core.Vec2{X: 400, Y: 300}, Size: core.Size{W: 96, H: 96},
		Health: 100, MaxHealth: 100, Speed: 5,
		Gun: combat.NewController(combat.Pistol, nil),
	}
	store.SetPlayer(p)
	flag := &lootFlag{}
	bus := core.NewEventBus()
	return &fixture{store: store, player: p, flag: flag, bus: bus, r: NewResolver(store, flag, bus, nil)}
}

func TestContactDamageTable(t *testing.T) {
	assert.Equal(t, 200, ContactDamage(entity.Boss, 100))
	assert.Equal(t, 30, ContactDamage(entity.Mysterious, 120))
	assert.Equal(t, 10, ContactDamage(entity.Normal, 500))
}

func TestProjectileHitsFirstLivingMonsterOnly(t *testing.T) {
	f := newFixture()
	a := f.store.SpawnMonster(entity.Normal, 0, core.Vec2{X: 100, Y: 100}, 20, 3)
	b := f.store.SpawnMonster(entity.Normal, 0, core.Vec2{X: 100, Y: 100}, 20, 3)
	p := f.store.SpawnProjectile(core.Vec2{X: 110, Y: 110}, 0, 5)

	out := f.r.Resolve(0)
	assert.Equal(t, 1, out.Hits)
	assert.Equal(t, 15, a.Health)
	assert.Equal(t, 20, b.Health, "no piercing")
	assert.True(t, p.Removed())
}

func TestProjectileSkipsAlreadyDeadMonster(t *testing.T) {
	f := newFixture()
	a := f.store.SpawnMonster(entity.Normal, 0, core.Vec2{X: 100, Y: 100}, 5, 3)
	b := f.store.SpawnMonster(entity.Normal, 0, core.Vec2{X: 100, Y: 100}, 20, 3)
	f.store.SpawnProjectile(core.Vec2{X: 110, Y: 110}, 0, 5)
	f.store.SpawnProjectile(core.Vec2{X: 110, Y: 110}, 0, 5)

	out := f.r.Resolve(0)
	assert.Equal(t, 2, out.Hits)
	assert.Equal(t, 0, a.Health)
	assert.Equal(t, 15, b.Health)
	assert.Equal(t, 1, out.Kills[entity.Normal])
}

func TestKillDropsLootOncePerWave(t *testing.T) {
	f := newFixture()
	f.store.SpawnMonster(entity.Normal, 0, core.Vec2{X: 100, Y: 100}, 5, 3)
	f.store.SpawnProjectile(core.Vec2{X: 110, Y: 110}, 0, 5)

	out := f.r.Resolve(0)
	require.True(t, out.LootDropped)
	require.NotNil(t, f.store.Loot())
	assert.Equal(t, core.Vec2{X: 100, Y: 100}, f.store.Loot().Pos)
	assert.True(t, f.flag.dropped)

	f.store.RemoveDead()
	f.store.TakeLoot()
	f.store.SpawnMonster(entity.Normal, 0, core.Vec2{X: 200, Y: 100}, 5, 3)
	f.store.SpawnProjectile(core.Vec2{X: 210, Y: 110}, 0, 5)
	out = f.r.Resolve(1)
	assert.False(t, out.LootDropped)
	assert.Nil(t, f.store.Loot())
}

func TestNoDropWhileChestOnGround(t *testing.T) {
	f := newFixture()
	f.store.DropLoot(core.Vec2{X: 10, Y: 10})
	f.store.SpawnMonster(entity.Normal, 0, core.Vec2{X: 100, Y: 100}, 5, 3)
	f.store.SpawnProjectile(core.Vec2{X: 110, Y: 110}, 0, 5)

	out := f.r.Resolve(0)
	assert.False(t, out.LootDropped)
	assert.False(t, f.flag.dropped)
}

func TestContactKillsMonsterAndHurtsPlayer(t *testing.T) {
	f := newFixture()
	n := f.store.SpawnMonster(entity.Normal, 0, core.Vec2{X: 430, Y: 320}, 20, 3)
	m := f.store.SpawnMonster(entity.Mysterious, 0, core.Vec2{X: 440, Y: 330}, 1, 8)
	far := f.store.SpawnMonster(entity.Normal, 0, core.Vec2{X: 0, Y: 0}, 20, 3)

	out := f.r.Resolve(0)
	assert.Equal(t, 2, out.Contacts)
	assert.Equal(t, 35, out.DamageTaken)
	assert.Equal(t, 65, f.player.Health)
	assert.True(t, n.Removed())
	assert.True(t, m.Removed())
	assert.False(t, far.Removed())
	assert.Zero(t, out.Kills[entity.Normal], "contact is not a kill")
	assert.False(t, out.LootDropped, "contact skips kill bookkeeping")
}

func TestSpriteCornerOutsideHitboxIsSafe(t *testing.T) {
	f := newFixture()
	// overlaps the full sprite (400..496) but not the hitbox (424..472)
	f.store.SpawnMonster(entity.Normal, 0, core.Vec2{X: 370, Y: 300}, 20, 3)
	out := f.r.Resolve(0)
	assert.Zero(t, out.Contacts)
	assert.Equal(t, 100, f.player.Health)
}

func TestBossContactIsLethal(t *testing.T) {
	f := newFixture()
	f.store.SpawnMonster(entity.Boss, 0, core.Vec2{X: 410, Y: 310}, 100, 1.5)
	out := f.r.Resolve(0)
	assert.True(t, out.PlayerDied)
	assert.Equal(t, 0, f.player.Health)
	assert.Equal(t, 100, out.DamageTaken)
	assert.False(t, out.BossKilled)
}

func TestBossShotDeadWhileTouchingPlayer(t *testing.T) {
	f := newFixture()
	waves := wave.NewController(f.store, f.bus, nil)
	waves.Reset(0)
	f.r = NewResolver(f.store, waves, f.bus, nil)

	boss := f.store.SpawnMonster(entity.Boss, 0, core.Vec2{X: 410, Y: 310}, 1, 1.5)
	f.store.SpawnProjectile(core.Vec2{X: 420, Y: 320}, 0, 30)

	var kills, contacts int
	f.bus.On(core.EvtMonsterKilled, func(core.Event) { kills++ })
	f.bus.On(core.EvtMonsterContact, func(core.Event) { contacts++ })

	out := f.r.Resolve(100)
	state := waves.CheckTransitions(100, wave.Transition{BossKilled: out.BossKilled, LootCollected: out.LootCollected})
	f.bus.Dispatch()

	assert.True(t, out.BossKilled)
	assert.True(t, boss.Removed())
	assert.Equal(t, core.StateWaveCompleted, state)
	assert.Equal(t, 100, f.player.Health)
	assert.Equal(t, 1, kills)
	assert.Zero(t, contacts)
	assert.True(t, out.LootDropped)
	assert.True(t, waves.LootDropped())

	f.store.RemoveDead()
	assert.Zero(t, f.store.MonsterCount())
}

func TestNormalShotDeadWhileTouchingPlayer(t *testing.T) {
	f := newFixture()
	m := f.store.SpawnMonster(entity.Normal, 0, core.Vec2{X: 420, Y: 320}, 5, 3)
	f.store.SpawnProjectile(core.Vec2{X: 430, Y: 330}, 0, 5)

	out := f.r.Resolve(50)

	// projectiles resolve first, so the kill pre-empts its touch
	assert.True(t, m.Removed())
	assert.Equal(t, 1, out.Kills[entity.Normal])
	assert.Zero(t, out.Contacts)
	assert.Zero(t, out.DamageTaken)
	assert.Equal(t, 100, f.player.Health)
	assert.True(t, out.LootDropped)
	assert.True(t, f.flag.LootDropped())
}

func TestLootPickup(t *testing.T) {
	f := newFixture()
	f.player.Intent = entity.Intent{Up: true}
	f.store.DropLoot(core.Vec2{X: 430, Y: 330})

	out := f.r.Resolve(0)
	assert.True(t, out.LootCollected)
	assert.Nil(t, f.store.Loot())
	assert.Equal(t, entity.Intent{}, f.player.Intent)
}

func TestLootWaitsWhenBossDiesSameTick(t *testing.T) {
	f := newFixture()
	f.store.DropLoot(core.Vec2{X: 430, Y: 330})
	f.store.SpawnMonster(entity.Boss, 0, core.Vec2{X: 0, Y: 0}, 1, 1.5)
	f.store.SpawnProjectile(core.Vec2{X: 10, Y: 10}, 0, 5)

	out := f.r.Resolve(0)
	assert.True(t, out.BossKilled)
	assert.False(t, out.LootCollected)
	assert.NotNil(t, f.store.Loot())
}
