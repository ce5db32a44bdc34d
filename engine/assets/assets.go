package assets

import (
	"image"
	"image/color"
	"image/draw"
	_ "image/png"
	"io/fs"
	"log/slog"

	xdraw "golang.org/x/image/draw"

	"github.com/1siamBot/horde-survivor/engine/core"
)

// PlaceholderSide is the unscaled edge of a substitute sprite
const PlaceholderSide = 32

// Fallback names the flat color painted when an image cannot be loaded
type Fallback struct {
	Name  string
	Color color.RGBA
}

var (
	Blue    = Fallback{"blue", color.RGBA{0, 0, 255, 255}}
	Purple  = Fallback{"purple", color.RGBA{128, 0, 128, 255}}
	Magenta = Fallback{"magenta", color.RGBA{255, 0, 255, 255}}
	Cyan    = Fallback{"cyan", color.RGBA{0, 255, 255, 255}}
	Gold    = Fallback{"gold", color.RGBA{218, 165, 32, 255}}
	White   = Fallback{"white", color.RGBA{255, 255, 255, 255}}
)

// Sprite is a decoded, scaled image ready for upload. Fallback is set when
// Image is a placeholder, and FallbackColor then names its color.
type Sprite struct {
	Name          string
	Image         image.Image
	Fallback      bool
	FallbackColor string
}

// Size is the sprite footprint in pixels
func (s Sprite) Size() core.Size {
	b := s.Image.Bounds()
	return core.Size{W: b.Dx(), H: b.Dy()}
}

// Loader reads sprites from a filesystem. It never fails: anything missing
// or undecodable comes back as a placeholder.
type Loader struct {
	fsys fs.FS
	log  *slog.Logger
}

func NewLoader(fsys fs.FS, log *slog.Logger) *Loader {
	if log == nil {
		log = slog.Default()
	}
	return &Loader{fsys: fsys, log: log}
}

// Load decodes name and scales it by scale
func (l *Loader) Load(name string, scale float64, fb Fallback) Sprite {
	src, err := l.decode(name)
	if err != nil {
		l.log.Warn("sprite fallback", "name", name, "color", fb.Name, "err", err)
		return Placeholder(name, scale, fb)
	}
	return Sprite{Name: name, Image: Scale(src, scale)}
}

func (l *Loader) decode(name string) (image.Image, error) {
	if l.fsys == nil {
		return nil, fs.ErrNotExist
	}
	f, err := l.fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	return img, err
}

// Placeholder is a solid square of PlaceholderSide*scale pixels
func Placeholder(name string, scale float64, fb Fallback) Sprite {
	side := max(int(PlaceholderSide*scale), 1)
	img := image.NewRGBA(image.Rect(0, 0, side, side))
	draw.Draw(img, img.Bounds(), image.NewUniform(fb.Color), image.Point{}, draw.Src)
	return Sprite{Name: name, Image: img, Fallback: true, FallbackColor: fb.Name}
}

// Scale resizes src by f with Catmull-Rom filtering. A factor of 1 returns
// src untouched.
func Scale(src image.Image, f float64) image.Image {
	if f == 1 {
		return src
	}
	b := src.Bounds()
	w, h := max(int(float64(b.Dx())*f), 1), max(int(float64(b.Dy())*f), 1)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, b, xdraw.Over, nil)
	return dst
}
