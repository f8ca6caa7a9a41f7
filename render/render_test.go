package render_test

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hajimehoshi/go-cdt"
	"github.com/hajimehoshi/go-cdt/render"
)

func square(t *testing.T) *cdt.Result {
	t.Helper()
	points := []cdt.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}}
	res, err := cdt.Triangulate(points, nil)
	if err != nil {
		t.Fatal(err)
	}
	return res
}

func TestPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "square.png")
	if err := render.PNG(path, square(t), render.Options{Size: 64, Margin: 4}); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 64 {
		t.Errorf("bounds = %v, want 64x64", b)
	}

	// The lower left corner of the square is a vertex, drawn over white.
	r, g, b, _ := img.At(4, 59).RGBA()
	if r == 0xffff && g == 0xffff && b == 0xffff {
		t.Error("no vertex drawn at the lower left corner")
	}
}

func TestSVG(t *testing.T) {
	var buf bytes.Buffer
	if err := render.SVG(&buf, square(t), render.Options{}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "<svg") {
		t.Fatal("no svg element")
	}
	// Four sides and one diagonal.
	if got := strings.Count(out, "<line"); got != 5 {
		t.Errorf("%d lines, want 5", got)
	}
	if got := strings.Count(out, "<circle"); got != 4 {
		t.Errorf("%d circles, want 4", got)
	}
}

func TestEmpty(t *testing.T) {
	res, err := cdt.Triangulate(nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := render.SVG(&buf, res, render.Options{}); err != nil {
		t.Fatal(err)
	}
	if img := render.Image(res, render.Options{Size: 8}); img.Bounds().Dx() != 8 {
		t.Errorf("width = %d, want 8", img.Bounds().Dx())
	}
}
