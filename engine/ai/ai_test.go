package ai

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1siamBot/horde-survivor/engine/combat"
	"github.com/1siamBot/horde-survivor/engine/core"
	"github.com/1siamBot/horde-survivor/engine/sim"
)

func playingSnap() *sim.Snapshot {
	return &sim.Snapshot{
		State: core.StatePlaying,
		Now:   1000,
		Field: core.Size{W: 800, H: 600},
		Wave:  1,
		Player: sim.PlayerView{
			Pos:     core.Vec2{X: 352, Y: 252},
			Size:    core.Size{W: 96, H: 96},
			Ammo:    5,
			MaxAmmo: 15,
		},
	}
}

func monsterAt(cx, cy float64) sim.MonsterView {
	return sim.MonsterView{Pos: core.Vec2{X: cx - 24, Y: cy - 24}, Size: core.Size{W: 48, H: 48}, Health: 10, MaxHealth: 10}
}

func find(cmds []sim.Command, t sim.CommandType) (sim.Command, bool) {
	for _, c := range cmds {
		if c.Type == t {
			return c, true
		}
	}
	return sim.Command{}, false
}

func TestNearest(t *testing.T) {
	snap := playingSnap()
	_, _, ok := Nearest(snap, core.Vec2{})
	assert.False(t, ok)

	snap.Monsters = []sim.MonsterView{monsterAt(700, 300), monsterAt(400, 100)}
	c, d, ok := Nearest(snap, core.Vec2{X: 400, Y: 300})
	require.True(t, ok)
	assert.Equal(t, core.Vec2{X: 400, Y: 100}, c)
	assert.InDelta(t, 200, d, 1e-9)
}

func TestAimsAndFiresAtNearest(t *testing.T) {
	snap := playingSnap()
	snap.Monsters = []sim.MonsterView{monsterAt(700, 300)}
	cmds := New(ConfigFor(DiffMedium), nil).Decide(snap)

	aim, ok := find(cmds, sim.CmdSetAim)
	require.True(t, ok)
	assert.InDelta(t, 0, aim.Angle, 1e-9)
	_, ok = find(cmds, sim.CmdFire)
	assert.True(t, ok)
	_, ok = find(cmds, sim.CmdSetMovement)
	assert.False(t, ok, "target is beyond kite distance")
}

func TestReloadsWhenEmpty(t *testing.T) {
	snap := playingSnap()
	snap.Player.Ammo = 0
	snap.Monsters = []sim.MonsterView{monsterAt(700, 300)}
	cmds := New(ConfigFor(DiffMedium), nil).Decide(snap)
	_, fired := find(cmds, sim.CmdFire)
	_, reloaded := find(cmds, sim.CmdReload)
	assert.False(t, fired)
	assert.True(t, reloaded)
}

func TestTopsUpWhenClear(t *testing.T) {
	cmds := New(ConfigFor(DiffMedium), nil).Decide(playingSnap())
	assert.Equal(t, []sim.Command{sim.ReloadPressed()}, cmds)
}

func TestKitesAwayAndReleases(t *testing.T) {
	a := New(ConfigFor(DiffMedium), nil)
	snap := playingSnap()
	snap.Monsters = []sim.MonsterView{monsterAt(500, 300)}

	cmds := a.Decide(snap)
	mv, ok := find(cmds, sim.CmdSetMovement)
	require.True(t, ok)
	assert.Equal(t, sim.SetMovement(sim.DirLeft, true), mv)

	snap.Now += 100
	snap.Monsters = nil
	snap.Player.Ammo = snap.Player.MaxAmmo
	assert.Equal(t, []sim.Command{sim.SetMovement(sim.DirLeft, false)}, a.Decide(snap))
}

func TestThinkInterval(t *testing.T) {
	a := New(ConfigFor(DiffMedium), nil)
	snap := playingSnap()
	require.NotEmpty(t, a.Decide(snap))
	snap.Now += 50
	assert.Empty(t, a.Decide(snap))
	snap.Now += 50
	assert.NotEmpty(t, a.Decide(snap))
}

func TestMenus(t *testing.T) {
	a := New(ConfigFor(DiffMedium), nil)
	snap := &sim.Snapshot{State: core.StateMenu}
	assert.Equal(t, []sim.Command{sim.StartGame()}, a.Decide(snap))

	a = New(ConfigFor(DiffMedium), nil)
	snap = &sim.Snapshot{State: core.StateWaveCompleted, Wave: 2}
	assert.Equal(t, []sim.Command{sim.SelectUpgrade(1), sim.ConfirmUpgrade()}, a.Decide(snap))

	a = New(ConfigFor(DiffMedium), nil)
	snap = &sim.Snapshot{State: core.StateChestOpen}
	assert.Equal(t, []sim.Command{sim.ChooseWeapon(combat.Rifle)}, a.Decide(snap))

	a = New(ConfigFor(DiffMedium), nil)
	assert.Empty(t, a.Decide(&sim.Snapshot{State: core.StateGameOver}))
	cfg := ConfigFor(DiffMedium)
	cfg.AutoRestart = true
	assert.Equal(t, []sim.Command{sim.Restart()}, New(cfg, nil).Decide(&sim.Snapshot{State: core.StateGameOver}))
}

func TestPlaysARealGame(t *testing.T) {
	s := sim.New(sim.DefaultTuning(), nil)
	clock := sim.NewClock(s, sim.ClockConfig{}, nil)
	a := New(ConfigFor(DiffHard), nil)

	snap := clock.Snapshot()
	for now := int64(0); now < 60_000; now += core.FrameMillis {
		for _, cmd := range a.Decide(snap) {
			clock.Submit(cmd)
		}
		snap = clock.Step(now)
	}

	assert.Positive(t, snap.Stats.ShotsFired)
	assert.Positive(t, snap.Stats.TotalKills())
	assert.False(t, math.IsNaN(snap.Player.Aim))
}
