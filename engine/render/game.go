package render

import (
	"context"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/1siamBot/horde-survivor/engine/core"
	"github.com/1siamBot/horde-survivor/engine/input"
	"github.com/1siamBot/horde-survivor/engine/sim"
)

// Source is the running simulation as seen from the window
type Source interface {
	input.Submitter
	Snapshot() *sim.Snapshot
}

// Bindings maps keys to actions; several keys may share one
var Bindings = map[ebiten.Key]input.Action{
	ebiten.KeyW:          input.ActUp,
	ebiten.KeyArrowUp:    input.ActUp,
	ebiten.KeyS:          input.ActDown,
	ebiten.KeyArrowDown:  input.ActDown,
	ebiten.KeyA:          input.ActLeft,
	ebiten.KeyArrowLeft:  input.ActLeft,
	ebiten.KeyD:          input.ActRight,
	ebiten.KeyArrowRight: input.ActRight,
	ebiten.KeyR:          input.ActReload,
	ebiten.KeyEnter:      input.ActConfirm,
	ebiten.KeySpace:      input.ActConfirm,
	ebiten.Key1:          input.ActOne,
	ebiten.Key2:          input.ActTwo,
	ebiten.Key3:          input.ActThree,
}

// Game adapts a Source to ebiten. Update samples devices and forwards
// commands; Draw renders whatever snapshot the clock published last.
type Game struct {
	ctx    context.Context
	src    Source
	r      *Renderer
	mapper *input.Mapper
	field  core.Size

	// Autopilot, when set, replaces device input
	Autopilot func(*sim.Snapshot) []sim.Command
}

func NewGame(ctx context.Context, src Source, r *Renderer, field core.Size) *Game {
	return &Game{ctx: ctx, src: src, r: r, mapper: input.NewMapper(), field: field}
}

func (g *Game) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.r.ShowHitboxes = !g.r.ShowHitboxes
	}
	snap := g.src.Snapshot()
	if snap == nil {
		return nil
	}
	if g.Autopilot != nil {
		for _, cmd := range g.Autopilot(snap) {
			g.src.Submit(cmd)
		}
		return nil
	}
	g.mapper.Forward(g.src, snap.State, poll())
	return nil
}

func poll() input.Frame {
	var f input.Frame
	for k, a := range Bindings {
		if ebiten.IsKeyPressed(k) {
			f.Held[a] = true
		}
	}
	f.CursorX, f.CursorY = ebiten.CursorPosition()
	f.Fire = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	f.Click = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	return f
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.r.Draw(screen, g.src.Snapshot())
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.field.W, g.field.H
}
