package combat

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestAttackRespectsCooldown(t *testing.T) {
	c := NewController(Pistol, nil)
	require.Equal(t, 15, c.Ammo())

	assert.True(t, c.Attack(1000))
	assert.Equal(t, 14, c.Ammo())

	assert.False(t, c.Attack(1000+c.Cooldown()-1), "second shot inside cooldown")
	assert.Equal(t, 14, c.Ammo(), "failed attack leaves ammo unchanged")

	assert.True(t, c.Attack(1000+c.Cooldown()))
	assert.Equal(t, 13, c.Ammo())
}

func TestFirstAttackAllowedAtTimeZero(t *testing.T) {
	c := NewController(Rifle, nil)
	assert.True(t, c.Attack(0))
}

func TestEmptyMagazineStartsReload(t *testing.T) {
	c := NewController(Shotgun, nil)
	require.True(t, c.Attack(0))
	require.True(t, c.Attack(1000))
	assert.Zero(t, c.Ammo())
	assert.True(t, c.Reloading())
	assert.Equal(t, StateReloading, c.State(1000))
	assert.False(t, c.Attack(5000), "no firing while reloading")

	c.Tick(1000 + c.ReloadTime())
	assert.False(t, c.Reloading())
	assert.Equal(t, c.MaxAmmo(), c.Ammo())
}

func TestManualReloadBoundary(t *testing.T) {
	c := NewController(Pistol, nil)
	require.True(t, c.Attack(0))

	const start = 500
	require.True(t, c.StartReload(start))

	c.Tick(start + c.ReloadTime() - 1)
	assert.True(t, c.Reloading())
	assert.Equal(t, 14, c.Ammo())

	c.Tick(start + c.ReloadTime())
	assert.False(t, c.Reloading())
	assert.Equal(t, c.MaxAmmo(), c.Ammo())
}

func TestStartReloadNoOps(t *testing.T) {
	c := NewController(Pistol, nil)
	assert.False(t, c.StartReload(0), "full magazine")

	c.Attack(0)
	require.True(t, c.StartReload(10))
	assert.False(t, c.StartReload(20), "already reloading")
	assert.InDelta(t, 0.0, c.ReloadProgress(10), 1e-9)
	assert.InDelta(t, 0.5, c.ReloadProgress(10+c.ReloadTime()/2), 1e-9)
}

func TestSwitchCancelsReloadAndRefills(t *testing.T) {
	c := NewController(Pistol, nil)
	c.Attack(0)
	c.StartReload(0)

	c.Switch(Shotgun)
	assert.False(t, c.Reloading())
	assert.Equal(t, Shotgun, c.Kind())
	assert.Equal(t, 2, c.Ammo())
}

func TestRifleDamageAfterUpgrades(t *testing.T) {
	c := NewController(Pistol, nil)
	c.UpgradeDamage()
	c.UpgradeDamage()

	c.Switch(Rifle)
	assert.Equal(t, 40, c.Damage())

	c.Switch(Pistol)
	assert.Equal(t, 7, c.Damage())
}

func TestMasteryFormulas(t *testing.T) {
	cases := []struct {
		kind    Kind
		levels  int
		ammo    int
		reload  int64
		damage0 int
	}{
		{Pistol, 1, 20, 1300, 5},
		{Shotgun, 2, 4, 2800, 5},
		{Rifle, 3, 6, 1900, 30},
		{Pistol, 10, 65, MinReload, 5},
	}
	for _, tc := range cases {
		s := StatsFor(tc.kind, 0, tc.levels)
		assert.Equal(t, tc.ammo, s.MaxAmmo, tc.kind.String())
		assert.Equal(t, tc.reload, s.Reload, tc.kind.String())
		assert.Equal(t, tc.damage0, s.Damage, tc.kind.String())
	}
}

func TestReapplyPicksUpMastery(t *testing.T) {
	c := NewController(Pistol, nil)
	c.UpgradeMastery()
	assert.Equal(t, 15, c.MaxAmmo(), "levels apply only on reapply")
	c.Reapply()
	assert.Equal(t, 20, c.MaxAmmo())
	assert.Equal(t, 20, c.Ammo())
}

func TestShotgunFanIsSeededAndBounded(t *testing.T) {
	fire := func() []Shot {
		c := NewController(Shotgun, rand.New(rand.NewPCG(7, 7)))
		return c.Fire(0, 1.0)
	}
	a, b := fire(), fire()
	require.Len(t, a, 8)
	assert.Equal(t, a, b, "same seed, same fan")

	distinct := map[float64]bool{}
	for _, s := range a {
		assert.LessOrEqual(t, math.Abs(s.Angle-1.0), shotgunSpread)
		assert.Equal(t, 5, s.Damage)
		distinct[s.Angle] = true
	}
	assert.Greater(t, len(distinct), 1, "pellets are perturbed independently")
}

func TestSingleShotWeaponsFireStraight(t *testing.T) {
	c := NewController(Rifle, nil)
	shots := c.Fire(0, 0.25)
	require.Len(t, shots, 1)
	assert.Equal(t, Shot{Angle: 0.25, Damage: 30}, shots[0])
	assert.Nil(t, c.Fire(1, 0.25), "cooldown")
}

func TestAmmoStaysInBounds(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		c := NewController(Kind(rapid.IntRange(0, 2).Draw(t, "kind")), nil)
		now := int64(0)
		steps := rapid.IntRange(1, 200).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			now += int64(rapid.IntRange(0, 400).Draw(t, "dt"))
			switch rapid.IntRange(0, 5).Draw(t, "op") {
			case 0, 1:
				c.Attack(now)
			case 2:
				c.StartReload(now)
			case 3:
				c.Switch(Kind(rapid.IntRange(0, 2).Draw(t, "switch")))
			case 4:
				if rapid.Bool().Draw(t, "upgradeDamage") {
					c.UpgradeDamage()
				} else {
					c.UpgradeMastery()
				}
				c.Reapply()
			}
			c.Tick(now)
			if c.Ammo() < 0 || c.Ammo() > c.MaxAmmo() {
				t.Fatalf("ammo %d outside [0, %d]", c.Ammo(), c.MaxAmmo())
			}
			if c.Damage() <= 0 {
				t.Fatalf("non-positive damage %d", c.Damage())
			}
		}
	})
}
