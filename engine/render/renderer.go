package render

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/1siamBot/horde-survivor/engine/assets"
	"github.com/1siamBot/horde-survivor/engine/core"
	"github.com/1siamBot/horde-survivor/engine/entity"
	"github.com/1siamBot/horde-survivor/engine/sim"
)

var (
	bgColor      = color.RGBA{24, 26, 20, 255}
	barBack      = color.RGBA{64, 64, 64, 255}
	barHealth    = color.RGBA{220, 30, 30, 255}
	barReload    = color.RGBA{255, 200, 50, 255}
	barBorder    = color.RGBA{255, 255, 255, 255}
	shotColor    = color.RGBA{255, 230, 90, 255}
	hitboxColor  = color.RGBA{0, 255, 0, 160}
	panelColor   = color.RGBA{15, 15, 30, 230}
	borderColor  = color.RGBA{0, 140, 200, 255}
	accentColor  = color.RGBA{0, 200, 255, 255}
	buttonColor  = color.RGBA{25, 35, 55, 240}
	selectColor  = color.RGBA{0, 100, 160, 255}
	confirmColor = color.RGBA{50, 180, 80, 255}
	dangerColor  = color.RGBA{220, 50, 50, 255}
)

// Renderer draws snapshots. It never touches the simulation.
type Renderer struct {
	player     *ebiten.Image
	monsters   [2]*ebiten.Image
	boss       *ebiten.Image
	mysterious *ebiten.Image
	chest      *ebiten.Image
	guns       [3]*ebiten.Image
	title      *ebiten.Image

	// ShowHitboxes outlines the player's damage box
	ShowHitboxes bool
}

// NewRenderer uploads the sprite set to the GPU
func NewRenderer(set *assets.Set) *Renderer {
	up := func(s assets.Sprite) *ebiten.Image { return ebiten.NewImageFromImage(s.Image) }
	r := &Renderer{
		player:     up(set.Player),
		boss:       up(set.Boss),
		mysterious: up(set.Mysterious),
		chest:      up(set.Chest),
		title:      up(set.Title),
	}
	for i := range set.Monsters {
		r.monsters[i] = up(set.Monsters[i])
	}
	for i := range set.Guns {
		r.guns[i] = up(set.Guns[i])
	}
	return r
}

// Draw renders one frame of snap
func (r *Renderer) Draw(screen *ebiten.Image, snap *sim.Snapshot) {
	screen.Fill(bgColor)
	if snap == nil {
		return
	}
	if snap.State == core.StateMenu {
		r.drawMenu(screen, snap)
		return
	}

	if snap.Loot != nil {
		drawFitted(screen, r.chest, snap.Loot.Pos, snap.Loot.Size)
	}
	for i := range snap.Monsters {
		r.drawMonster(screen, &snap.Monsters[i])
	}
	for _, p := range snap.Projectiles {
		vector.DrawFilledRect(screen, float32(p.Pos.X), float32(p.Pos.Y), float32(p.Size.W), float32(p.Size.H), shotColor, false)
	}
	r.drawPlayer(screen, &snap.Player)
	r.drawHUD(screen, snap)

	switch snap.State {
	case core.StateWaveCompleted:
		r.drawUpgrades(screen, snap)
	case core.StateChestOpen:
		r.drawChest(screen, snap)
	case core.StateGameOver:
		r.drawGameOver(screen, snap)
	}
}

// drawFitted stretches img over the box at pos
func drawFitted(dst, img *ebiten.Image, pos core.Vec2, size core.Size) {
	b := img.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(size.W)/float64(b.Dx()), float64(size.H)/float64(b.Dy()))
	op.GeoM.Translate(pos.X, pos.Y)
	dst.DrawImage(img, op)
}

func (r *Renderer) drawMonster(screen *ebiten.Image, m *sim.MonsterView) {
	img := r.monsters[m.Skin%len(r.monsters)]
	switch m.Variant {
	case entity.Boss:
		img = r.boss
	case entity.Mysterious:
		img = r.mysterious
	}
	drawFitted(screen, img, m.Pos, m.Size)

	if m.Variant == entity.Boss && m.MaxHealth > 0 {
		w := float32(m.Size.W)
		x, y := float32(m.Pos.X), float32(m.Pos.Y)-8
		vector.DrawFilledRect(screen, x, y, w, 4, barBack, false)
		vector.DrawFilledRect(screen, x, y, w*float32(m.Health)/float32(m.MaxHealth), 4, barHealth, false)
	}
}

func (r *Renderer) drawPlayer(screen *ebiten.Image, p *sim.PlayerView) {
	drawFitted(screen, r.player, p.Pos, p.Size)

	gun := r.guns[int(p.Weapon)%len(r.guns)]
	b := gun.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-float64(b.Dx())/2, -float64(b.Dy())/2)
	if p.GunFlipped {
		op.GeoM.Scale(1, -1)
	}
	op.GeoM.Rotate(p.Aim)
	op.GeoM.Translate(p.Pos.X+float64(p.Size.W)/2, p.Pos.Y+float64(p.Size.H)/2)
	screen.DrawImage(gun, op)

	if r.ShowHitboxes {
		h := p.Hitbox
		vector.StrokeRect(screen, float32(h.Min.X), float32(h.Min.Y), float32(h.Dx()), float32(h.Dy()), 1, hitboxColor, false)
	}
}

func (r *Renderer) drawHUD(screen *ebiten.Image, snap *sim.Snapshot) {
	p := &snap.Player
	h := float32(snap.Field.H)

	// health
	x, y, w, bh := float32(15), h-35, float32(200), float32(20)
	vector.DrawFilledRect(screen, x, y, w, bh, barBack, false)
	if p.MaxHealth > 0 {
		vector.DrawFilledRect(screen, x, y, w*float32(max(p.Health, 0))/float32(p.MaxHealth), bh, barHealth, false)
	}
	vector.StrokeRect(screen, x, y, w, bh, 1, barBorder, false)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%d/%d", max(p.Health, 0), p.MaxHealth), int(x)+6, int(y)+3)

	// ammo or reload
	ay := int(y) - 22
	if p.Reloading {
		vector.DrawFilledRect(screen, x, float32(ay)+4, w, 8, barBack, false)
		vector.DrawFilledRect(screen, x, float32(ay)+4, w*float32(p.ReloadProgress), 8, barReload, false)
		ebitenutil.DebugPrintAt(screen, "RELOADING", int(x+w)+8, ay)
	} else {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s  %d/%d", p.Weapon, p.Ammo, p.MaxAmmo), int(x), ay)
	}

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Wave %d", snap.Wave), 15, 12)
	timer := fmt.Sprintf("Time: %d", snap.Elapsed/1000)
	ebitenutil.DebugPrintAt(screen, timer, snap.Field.W-len(timer)*6-15, 12)
}
