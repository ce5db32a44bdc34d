package input

import (
	"github.com/1siamBot/horde-survivor/engine/combat"
	"github.com/1siamBot/horde-survivor/engine/core"
	"github.com/1siamBot/horde-survivor/engine/sim"
)

// Action is a bound key, independent of the device that produced it
type Action uint8

const (
	ActUp Action = iota
	ActDown
	ActLeft
	ActRight
	ActReload
	ActConfirm
	ActOne
	ActTwo
	ActThree
	NumActions
)

var moves = [...]struct {
	act Action
	dir sim.Direction
}{
	{ActUp, sim.DirUp},
	{ActDown, sim.DirDown},
	{ActLeft, sim.DirLeft},
	{ActRight, sim.DirRight},
}

// Frame is the device state sampled once per frame
type Frame struct {
	Held             [NumActions]bool
	CursorX, CursorY int
	Fire             bool // primary button held
	Click            bool // primary button went down this frame
}

// Submitter accepts commands for the next tick
type Submitter interface {
	Submit(sim.Command) bool
}

// Mapper turns successive frames into simulation commands. Keys are edge
// triggered; the fire button repeats while held and the gun cooldown paces it.
type Mapper struct {
	prev      Frame
	prevState core.GameState
	started   bool
}

func NewMapper() *Mapper {
	return &Mapper{}
}

func (m *Mapper) justPressed(f *Frame, a Action) bool {
	return f.Held[a] && !m.prev.Held[a]
}

// Commands returns the commands frame f stands for while the game is in
// state. The frame becomes the baseline for the next call.
func (m *Mapper) Commands(state core.GameState, f Frame) []sim.Command {
	var out []sim.Command

	// presses made during an intermission were dropped, so they are
	// resent once play resumes
	resume := m.started && state == core.StatePlaying && m.prevState != core.StatePlaying
	for _, mv := range moves {
		held := f.Held[mv.act]
		if held != m.prev.Held[mv.act] || (resume && held) {
			out = append(out, sim.SetMovement(mv.dir, held))
		}
	}

	if !m.started || f.CursorX != m.prev.CursorX || f.CursorY != m.prev.CursorY {
		out = append(out, sim.SetPointer(f.CursorX, f.CursorY))
	}

	switch state {
	case core.StatePlaying:
		if f.Fire {
			out = append(out, sim.FirePressed())
		}
		if m.justPressed(&f, ActReload) {
			out = append(out, sim.ReloadPressed())
		}
	case core.StateMenu:
		if m.justPressed(&f, ActConfirm) {
			out = append(out, sim.StartGame())
		}
	case core.StateGameOver:
		if m.justPressed(&f, ActConfirm) {
			out = append(out, sim.Restart())
		}
	case core.StateWaveCompleted:
		for i, a := range [...]Action{ActOne, ActTwo, ActThree} {
			if m.justPressed(&f, a) {
				out = append(out, sim.SelectUpgrade(i))
			}
		}
		if m.justPressed(&f, ActConfirm) {
			out = append(out, sim.ConfirmUpgrade())
		}
	case core.StateChestOpen:
		for i, a := range [...]Action{ActOne, ActTwo, ActThree} {
			if m.justPressed(&f, a) {
				out = append(out, sim.ChooseWeapon(combat.ChestChoices[i]))
			}
		}
	}

	if f.Click && state != core.StatePlaying {
		out = append(out, sim.PointerClick(f.CursorX, f.CursorY))
	}

	m.prev = f
	m.prevState = state
	m.started = true
	return out
}

// Forward maps f and submits the result, returning how many commands the
// inbox took
func (m *Mapper) Forward(to Submitter, state core.GameState, f Frame) int {
	n := 0
	for _, cmd := range m.Commands(state, f) {
		if to.Submit(cmd) {
			n++
		}
	}
	return n
}
