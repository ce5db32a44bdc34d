package render

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/1siamBot/horde-survivor/engine/combat"
	"github.com/1siamBot/horde-survivor/engine/core"
	"github.com/1siamBot/horde-survivor/engine/sim"
	"github.com/1siamBot/horde-survivor/engine/wave"
)

var upgradeText = map[wave.Upgrade][2]string{
	wave.UpgradeHealth:  {"VITALITY", fmt.Sprintf("+%d max health", wave.HealthStep)},
	wave.UpgradeDamage:  {"FIREPOWER", "+damage per shot"},
	wave.UpgradeMastery: {"MASTERY", "+ammo, faster reload"},
}

func (r *Renderer) drawMenu(screen *ebiten.Image, snap *sim.Snapshot) {
	cx := snap.Field.W / 2
	b := r.title.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(cx-b.Dx()/2), float64(snap.Layout.Start.Min.Y-b.Dy()-30))
	screen.DrawImage(r.title, op)

	drawCentered(screen, "HORDE SURVIVOR", cx, snap.Field.H/4)
	drawButton(screen, snap.Layout.Start, "START", confirmColor)
	drawCentered(screen, "WASD move, mouse aims and fires, R reloads", cx, snap.Layout.Start.Max.Y+30)
}

func (r *Renderer) drawUpgrades(screen *ebiten.Image, snap *sim.Snapshot) {
	dim(screen, snap.Field)
	cx := snap.Field.W / 2
	drawCentered(screen, fmt.Sprintf("WAVE %d CLEARED", snap.Wave), cx, snap.Layout.Upgrades[0].Min.Y-40)
	drawCentered(screen, "Choose an upgrade (1-3), then confirm", cx, snap.Layout.Upgrades[0].Min.Y-22)

	for i, rect := range snap.Layout.Upgrades {
		clr := buttonColor
		if i == snap.Selected {
			clr = selectColor
		}
		drawPanel(screen, rect, clr, i == snap.Selected)
		txt := upgradeText[wave.Upgrades[i]]
		mid := (rect.Min.X + rect.Max.X) / 2
		drawCentered(screen, txt[0], mid, rect.Min.Y+30)
		drawCentered(screen, txt[1], mid, rect.Min.Y+60)
		drawCentered(screen, fmt.Sprintf("[%d]", i+1), mid, rect.Max.Y-24)
	}

	clr := buttonColor
	if snap.Selected >= 0 {
		clr = confirmColor
	}
	drawButton(screen, snap.Layout.Confirm, "CONFIRM", clr)
}

func (r *Renderer) drawChest(screen *ebiten.Image, snap *sim.Snapshot) {
	dim(screen, snap.Field)
	cx := snap.Field.W / 2
	drawCentered(screen, "CHEST OPENED: pick a weapon (1-3)", cx, snap.Layout.Weapons[0].Min.Y-30)

	for i, rect := range snap.Layout.Weapons {
		kind := combat.ChestChoices[i]
		current := kind == snap.Player.Weapon
		drawPanel(screen, rect, buttonColor, current)

		gun := r.guns[int(kind)%len(r.guns)]
		b := gun.Bounds()
		mid := (rect.Min.X + rect.Max.X) / 2
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(float64(mid-b.Dx()/2), float64(rect.Min.Y+20))
		screen.DrawImage(gun, op)

		st := combat.SpecFor(kind)
		drawCentered(screen, strings.ToUpper(kind.String()), mid, rect.Max.Y-50)
		drawCentered(screen, fmt.Sprintf("dmg %d  ammo %d", st.Damage, st.MaxAmmo), mid, rect.Max.Y-34)
		drawCentered(screen, fmt.Sprintf("[%d]", i+1), mid, rect.Max.Y-18)
	}
}

func (r *Renderer) drawGameOver(screen *ebiten.Image, snap *sim.Snapshot) {
	dim(screen, snap.Field)
	cx, cy := snap.Field.W/2, snap.Field.H/2
	panel := image.Rect(cx-200, cy-170, cx+200, snap.Layout.Restart.Max.Y+20)
	drawPanel(screen, panel, panelColor, false)

	// glow, as debug text has no bold face
	title := "GAME OVER"
	tx, ty := cx-len(title)*3, panel.Min.Y+24
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			ebitenutil.DebugPrintAt(screen, title, tx+dx, ty+dy)
		}
	}
	vector.DrawFilledRect(screen, float32(cx-60), float32(ty+18), 120, 3, dangerColor, false)

	st := snap.Stats
	lines := []string{
		fmt.Sprintf("Survived:        %ds", snap.Elapsed/1000),
		fmt.Sprintf("Wave reached:    %d", snap.Wave),
		fmt.Sprintf("Monsters killed: %d", st.TotalKills()),
		fmt.Sprintf("Bosses defeated: %d", st.BossesDefeated),
		fmt.Sprintf("Shots fired:     %d", st.ShotsFired),
		fmt.Sprintf("Accuracy:        %s", accuracy(st)),
		fmt.Sprintf("Damage taken:    %d", st.DamageTaken),
	}
	for i, l := range lines {
		ebitenutil.DebugPrintAt(screen, l, cx-len(l)*3, ty+40+i*20)
	}
	drawButton(screen, snap.Layout.Restart, "PLAY AGAIN", confirmColor)
}

func accuracy(s sim.Stats) string {
	if s.ShotsFired == 0 {
		return "-"
	}
	return fmt.Sprintf("%d%%", s.Hits*100/s.ShotsFired)
}

func dim(screen *ebiten.Image, field core.Size) {
	vector.DrawFilledRect(screen, 0, 0, float32(field.W), float32(field.H), color.RGBA{0, 0, 0, 160}, false)
}

func drawCentered(screen *ebiten.Image, s string, cx, y int) {
	ebitenutil.DebugPrintAt(screen, s, cx-len(s)*3, y)
}

func drawPanel(screen *ebiten.Image, r image.Rectangle, clr color.RGBA, highlight bool) {
	x, y, w, h := float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy())
	vector.DrawFilledRect(screen, x, y, w, h, clr, false)
	border := borderColor
	if highlight {
		border = accentColor
	}
	vector.StrokeRect(screen, x, y, w, h, 2, border, false)
}

// drawButton lightens under the cursor; the rectangle is the same one the
// simulation hit-tests clicks against
func drawButton(screen *ebiten.Image, r image.Rectangle, label string, clr color.RGBA) {
	mx, my := ebiten.CursorPosition()
	hovered := image.Pt(mx, my).In(r)
	if hovered {
		clr.R = uint8(min(int(clr.R)+30, 255))
		clr.G = uint8(min(int(clr.G)+30, 255))
		clr.B = uint8(min(int(clr.B)+30, 255))
	}
	drawPanel(screen, r, clr, hovered)
	drawCentered(screen, label, (r.Min.X+r.Max.X)/2, (r.Min.Y+r.Max.Y)/2-6)
}
