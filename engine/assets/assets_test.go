package assets

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1siamBot/horde-survivor/engine/combat"
	"github.com/1siamBot/horde-survivor/engine/core"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{200, 10, 10, 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestLoadScalesDecodedImage(t *testing.T) {
	fsys := fstest.MapFS{"hero.png": {Data: encodePNG(t, 20, 10)}}
	sp := NewLoader(fsys, nil).Load("hero.png", 3, Blue)

	assert.False(t, sp.Fallback)
	assert.Empty(t, sp.FallbackColor)
	assert.Equal(t, core.Size{W: 60, H: 30}, sp.Size())
}

func TestMissingFileGivesPlaceholder(t *testing.T) {
	sp := NewLoader(fstest.MapFS{}, nil).Load("nope.png", 1.5, Purple)
	assert.True(t, sp.Fallback)
	assert.Equal(t, "purple", sp.FallbackColor)
	assert.Equal(t, core.Size{W: 48, H: 48}, sp.Size())
	r, g, b, a := sp.Image.At(10, 10).RGBA()
	assert.Equal(t, [4]uint32{0x8080, 0, 0x8080, 0xffff}, [4]uint32{r, g, b, a})
}

func TestGarbageFileGivesPlaceholder(t *testing.T) {
	fsys := fstest.MapFS{"bad.png": {Data: []byte("not an image")}}
	sp := NewLoader(fsys, nil).Load("bad.png", 2.5, Magenta)
	assert.True(t, sp.Fallback)
	assert.Equal(t, core.Size{W: 80, H: 80}, sp.Size())
}

func TestPlaceholderIsDeterministic(t *testing.T) {
	a := Placeholder("x", 3, Blue)
	b := Placeholder("x", 3, Blue)
	assert.Equal(t, a, b)
}

func TestNilFilesystem(t *testing.T) {
	sp := NewLoader(nil, nil).Load("any.png", 1, White)
	assert.True(t, sp.Fallback)
	assert.Equal(t, core.Size{W: 32, H: 32}, sp.Size())
}

func TestLoadSet(t *testing.T) {
	fsys := fstest.MapFS{
		"Protagonist.png": {Data: encodePNG(t, 32, 32)},
		"rifle.png":       {Data: encodePNG(t, 16, 6)},
	}
	set := LoadSet(NewLoader(fsys, nil))
	assert.False(t, set.Player.Fallback)
	assert.Equal(t, core.Size{W: 96, H: 96}, set.Player.Size())
	assert.Equal(t, core.Size{W: 32, H: 12}, set.Guns[combat.Rifle].Size())
	assert.True(t, set.Boss.Fallback)
	assert.Equal(t, "magenta", set.Boss.FallbackColor)
	assert.Equal(t, core.Size{W: 48, H: 48}, set.Monsters[1].Size())
}
