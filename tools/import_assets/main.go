// Command import_assets copies source art into the assets directory under
// the names the game loads, resized to the base sprite size. Files with no
// source can be filled with the same placeholders the game would draw.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	xdraw "golang.org/x/image/draw"

	"github.com/1siamBot/horde-survivor/engine/assets"
)

const titleFile = "click to start.png"

func main() {
	src := flag.String("src", "", "directory with source art named as in the manifest")
	dst := flag.String("dst", "assets", "assets directory to write")
	size := flag.Int("size", assets.PlaceholderSide, "longest side of an imported sprite")
	placeholders := flag.Bool("placeholders", false, "write placeholders for files that are still missing")
	flag.Parse()

	if err := os.MkdirAll(*dst, 0o755); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	failed := false
	for _, e := range assets.Manifest {
		out := filepath.Join(*dst, e.Name)
		switch {
		case *src != "" && exists(filepath.Join(*src, e.Name)):
			limit := *size
			if e.Name == titleFile {
				limit = 0
			}
			if err := importPNG(filepath.Join(*src, e.Name), out, limit); err != nil {
				fmt.Printf("  ✗ %s: %v\n", e.Name, err)
				failed = true
				continue
			}
			fmt.Printf("  → %s\n", out)
		case exists(out):
			fmt.Printf("  ✓ %s\n", out)
		case *placeholders:
			sp := assets.Placeholder(e.Name, 1, e.Fallback)
			if err := writePNG(out, sp.Image); err != nil {
				fmt.Printf("  ✗ %s: %v\n", e.Name, err)
				failed = true
				continue
			}
			fmt.Printf("  ▢ %s (%s)\n", out, e.Fallback.Name)
		default:
			fmt.Printf("  ⚠ missing %s, the game will draw %s\n", e.Name, e.Fallback.Name)
		}
	}
	if failed {
		os.Exit(1)
	}
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// importPNG decodes src and writes it to dst with its longest side fitted
// to limit. A limit of 0 copies the pixels unchanged.
func importPNG(src, dst string, limit int) error {
	f, err := os.Open(src)
	if err != nil {
		return err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("decode %s: %w", src, err)
	}

	b := img.Bounds()
	if limit > 0 && max(b.Dx(), b.Dy()) != limit {
		w, h := limit, limit
		if b.Dx() > b.Dy() {
			h = max(b.Dy()*limit/b.Dx(), 1)
		} else if b.Dy() > b.Dx() {
			w = max(b.Dx()*limit/b.Dy(), 1)
		}
		out := image.NewRGBA(image.Rect(0, 0, w, h))
		xdraw.CatmullRom.Scale(out, out.Bounds(), img, b, xdraw.Over, nil)
		img = out
	}
	return writePNG(dst, img)
}

func writePNG(path string, img image.Image) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(out, img); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
