//go:build example
// +build example

package main

import (
	"fmt"
	"image/color"
	"math/rand"

	"github.com/hajimehoshi/ebiten"
	"github.com/hajimehoshi/ebiten/ebitenutil"
	"github.com/hajimehoshi/ebiten/inpututil"

	"github.com/hajimehoshi/go-cdt"
)

const (
	screenWidth  = 640
	screenHeight = 480
)

var (
	edgeColor       = color.RGBA{0x40, 0x80, 0xff, 0xff}
	constraintColor = color.RGBA{0xff, 0xc0, 0x00, 0xff}
	unresolvedColor = color.RGBA{0xff, 0x20, 0x20, 0xff}
	pointColor      = color.White
)

type viewer struct {
	points      []cdt.Point
	constraints []cdt.Edge

	// steps is the operation budget; 0 runs to completion.
	steps int

	result *cdt.Result
	err    error
}

func newViewer() *viewer {
	v := &viewer{}
	v.reset()
	return v
}

func (v *viewer) reset() {
	v.points = v.points[:0]
	v.constraints = v.constraints[:0]
	for i := 0; i < 40; i++ {
		v.points = append(v.points, cdt.Point{
			X: 40 + rand.Float64()*(screenWidth-80),
			Y: 40 + rand.Float64()*(screenHeight-80),
		})
	}
	for i := 0; i+1 < 8; i += 2 {
		v.constraints = append(v.constraints, cdt.Edge{A: i, B: i + 1})
	}
	v.steps = 1
	v.triangulate()
}

func (v *viewer) triangulate() {
	t := cdt.NewTriangulator(cdt.Options{
		MaxOperations: v.steps,
		CheckMesh:     true,
	})
	t.AddPoints(v.points...)
	for _, c := range v.constraints {
		t.AddConstraint(c.A, c.B)
	}
	v.result, v.err = t.Triangulate()
}

func (v *viewer) update(screen *ebiten.Image) error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		if v.steps > 0 {
			v.steps++
			v.triangulate()
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter):
		v.steps = 0
		v.triangulate()
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		v.points = v.points[:0]
		v.constraints = v.constraints[:0]
		v.steps = 0
		v.triangulate()
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		v.reset()
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		x, y := ebiten.CursorPosition()
		v.points = append(v.points, cdt.Point{X: float64(x), Y: float64(y)})
		v.triangulate()
	}

	if ebiten.IsDrawingSkipped() {
		return nil
	}
	v.draw(screen)
	return nil
}

func (v *viewer) draw(screen *ebiten.Image) {
	screen.Fill(color.Black)

	r := v.result
	if r != nil {
		for _, tri := range r.Triangles {
			for i := 0; i < 3; i++ {
				a, b := r.Points[tri[i]], r.Points[tri[(i+1)%3]]
				ebitenutil.DrawLine(screen, a.X, a.Y, b.X, b.Y, edgeColor)
			}
		}
		for _, c := range v.constraints {
			if c.A >= len(r.Remap) || c.B >= len(r.Remap) {
				continue
			}
			a, b := r.Points[r.Remap[c.A]], r.Points[r.Remap[c.B]]
			ebitenutil.DrawLine(screen, a.X, a.Y, b.X, b.Y, constraintColor)
		}
		for _, c := range r.Unresolved {
			a, b := r.Points[r.Remap[c.A]], r.Points[r.Remap[c.B]]
			ebitenutil.DrawLine(screen, a.X, a.Y, b.X, b.Y, unresolvedColor)
		}
	}
	for _, p := range v.points {
		ebitenutil.DrawRect(screen, p.X-1, p.Y-1, 3, 3, pointColor)
	}

	msg := fmt.Sprintf("SPACE: step  ENTER: finish  CLICK: add point  C: clear  R: random\nsteps: %d", v.steps)
	if r != nil {
		msg += fmt.Sprintf("  triangles: %d  unresolved: %d  complete: %v", len(r.Triangles), len(r.Unresolved), r.Complete)
	}
	if v.err != nil {
		msg += "\n" + v.err.Error()
	}
	ebitenutil.DebugPrint(screen, msg)
}

func main() {
	v := newViewer()
	if err := ebiten.Run(v.update, screenWidth, screenHeight, 1, "Constrained Delaunay triangulation"); err != nil {
		panic(err)
	}
}
