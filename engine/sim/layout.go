package sim

import (
	"image"

	"github.com/1siamBot/horde-survivor/engine/combat"
	"github.com/1siamBot/horde-survivor/engine/core"
	"github.com/1siamBot/horde-survivor/engine/wave"
)

// Layout holds the clickable rectangles of every menu screen, in playfield
// pixels. The renderer draws buttons at the same rectangles.
type Layout struct {
	Start    image.Rectangle
	Restart  image.Rectangle
	Upgrades [len(wave.Upgrades)]image.Rectangle
	Confirm  image.Rectangle
	Weapons  [len(combat.ChestChoices)]image.Rectangle // ChestChoices order
}

func NewLayout(field core.Size) Layout {
	cx, cy := field.W/2, field.H/2
	btnW, btnH := 200, 44
	l := Layout{
		Start:   centered(cx, cy+40, btnW, btnH),
		Restart: centered(cx, cy+110, btnW, btnH),
		Confirm: centered(cx, cy+110, btnW, btnH),
	}
	cardW, cardH, gap := 160, 120, 20
	for i := range l.Upgrades {
		x := cx + (i-1)*(cardW+gap)
		l.Upgrades[i] = centered(x, cy-30, cardW, cardH)
		l.Weapons[i] = centered(x, cy-30, cardW, cardH)
	}
	return l
}

func centered(cx, cy, w, h int) image.Rectangle {
	return image.Rect(cx-w/2, cy-h/2, cx-w/2+w, cy-h/2+h)
}

func hit(r image.Rectangle, x, y int) bool {
	return image.Pt(x, y).In(r)
}

// click resolves a pointer click in state s to the command it stands for
func (l Layout) click(s core.GameState, x, y int) (Command, bool) {
	switch s {
	case core.StateMenu:
		if hit(l.Start, x, y) {
			return StartGame(), true
		}
	case core.StateGameOver:
		if hit(l.Restart, x, y) {
			return Restart(), true
		}
	case core.StateWaveCompleted:
		for i, r := range l.Upgrades {
			if hit(r, x, y) {
				return SelectUpgrade(i), true
			}
		}
		if hit(l.Confirm, x, y) {
			return ConfirmUpgrade(), true
		}
	case core.StateChestOpen:
		for i, r := range l.Weapons {
			if hit(r, x, y) {
				return ChooseWeapon(combat.ChestChoices[i]), true
			}
		}
	}
	return Command{}, false
}
