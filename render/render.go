// SGI FREE SOFTWARE LICENSE B (Version 2.0, Sept. 18, 2008)
// Copyright (C) [dates of first publication] Silicon Graphics, Inc.
// All Rights Reserved.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies
// of the Software, and to permit persons to whom the Software is furnished to do so,
// subject to the following conditions:
//
// The above copyright notice including the dates of first publication and either this
// permission notice or a reference to http://oss.sgi.com/projects/FreeB/ shall be
// included in all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR IMPLIED,
// INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY, FITNESS FOR A
// PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL SILICON GRAPHICS, INC.
// BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER IN AN ACTION OF CONTRACT,
// TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE
// OR OTHER DEALINGS IN THE SOFTWARE.
//
// Except as contained in this notice, the name of Silicon Graphics, Inc. shall not
// be used in advertising or otherwise to promote the sale, use or other dealings in
// this Software without prior written authorization from Silicon Graphics, Inc.

// Package render draws triangulations for debugging.
package render

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"io"
	"math"

	svg "github.com/ajstarks/svgo/float"
	"github.com/llgcode/draw2d/draw2dimg"
	"github.com/llgcode/draw2d/draw2dkit"
	"github.com/pkg/errors"

	"github.com/hajimehoshi/go-cdt"
)

var (
	background      = color.RGBA{0xff, 0xff, 0xff, 0xff}
	edgeColor       = color.RGBA{0x00, 0x00, 0xff, 0xff}
	pointColor      = color.RGBA{0x22, 0x22, 0x22, 0xff}
	unresolvedColor = color.RGBA{0xff, 0x00, 0x00, 0xff}
)

// Options controls the output size.
type Options struct {
	// Size is the width and height of the picture in pixels. 0 means 512.
	Size int

	// Margin is the empty border in pixels. 0 means 16.
	Margin float64
}

func (o Options) size() int {
	if o.Size <= 0 {
		return 512
	}
	return o.Size
}

func (o Options) margin() float64 {
	if o.Margin <= 0 {
		return 16
	}
	return o.Margin
}

// transform maps points into picture coordinates, keeping the aspect ratio
// and putting +y up.
type transform struct {
	min    cdt.Point
	scale  float64
	margin float64
	size   float64
}

func newTransform(points []cdt.Point, opts Options) transform {
	t := transform{
		scale:  1,
		margin: opts.margin(),
		size:   float64(opts.size()),
	}
	if len(points) == 0 {
		return t
	}
	t.min = points[0]
	max := points[0]
	for _, p := range points[1:] {
		t.min.X = math.Min(t.min.X, p.X)
		t.min.Y = math.Min(t.min.Y, p.Y)
		max.X = math.Max(max.X, p.X)
		max.Y = math.Max(max.Y, p.Y)
	}
	if extent := math.Max(max.X-t.min.X, max.Y-t.min.Y); extent > 0 {
		t.scale = (t.size - 2*t.margin) / extent
	}
	return t
}

func (t transform) apply(p cdt.Point) (float64, float64) {
	x := t.margin + (p.X-t.min.X)*t.scale
	y := t.size - t.margin - (p.Y-t.min.Y)*t.scale
	return x, y
}

// edges returns every triangle edge of res once.
func edges(res *cdt.Result) []cdt.Edge {
	var es []cdt.Edge
	for k, tri := range res.Triangles {
		for i := 0; i < 3; i++ {
			if n := res.Adjacency[3*k+i]; n != -1 && n < 3*k {
				continue
			}
			es = append(es, cdt.Edge{A: tri[(i+1)%3], B: tri[(i+2)%3]})
		}
	}
	return es
}

// Image draws res onto a new RGBA image.
func Image(res *cdt.Result, opts Options) *image.RGBA {
	size := opts.size()
	t := newTransform(res.Points, opts)

	dest := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(dest, dest.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	gc := draw2dimg.NewGraphicContext(dest)
	gc.SetLineWidth(1)
	gc.SetStrokeColor(edgeColor)
	for _, e := range edges(res) {
		gc.MoveTo(t.apply(res.Points[e.A]))
		gc.LineTo(t.apply(res.Points[e.B]))
		gc.Stroke()
	}

	gc.SetLineWidth(2)
	gc.SetStrokeColor(unresolvedColor)
	for _, e := range res.Unresolved {
		gc.MoveTo(t.apply(res.Points[res.Remap[e.A]]))
		gc.LineTo(t.apply(res.Points[res.Remap[e.B]]))
		gc.Stroke()
	}

	gc.SetFillColor(pointColor)
	for _, p := range res.Points {
		x, y := t.apply(p)
		draw2dkit.Circle(gc, x, y, 2)
		gc.Fill()
	}
	return dest
}

// PNG draws res into a PNG file at path.
func PNG(path string, res *cdt.Result, opts Options) error {
	if err := draw2dimg.SaveToPngFile(path, Image(res, opts)); err != nil {
		return errors.Wrapf(err, "render: writing %s", path)
	}
	return nil
}

// SVG writes res as an SVG document to w.
func SVG(w io.Writer, res *cdt.Result, opts Options) error {
	size := float64(opts.size())
	t := newTransform(res.Points, opts)

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(size, size)
	canvas.Rect(0, 0, size, size, "fill:white")

	for _, e := range edges(res) {
		x1, y1 := t.apply(res.Points[e.A])
		x2, y2 := t.apply(res.Points[e.B])
		canvas.Line(x1, y1, x2, y2, "stroke:blue;stroke-width:1")
	}
	for _, e := range res.Unresolved {
		x1, y1 := t.apply(res.Points[res.Remap[e.A]])
		x2, y2 := t.apply(res.Points[res.Remap[e.B]])
		canvas.Line(x1, y1, x2, y2, "stroke:red;stroke-width:2")
	}
	for _, p := range res.Points {
		x, y := t.apply(p)
		canvas.Circle(x, y, 2, "fill:#222")
	}
	canvas.End()

	if _, err := buf.WriteTo(w); err != nil {
		return errors.Wrap(err, "render: writing SVG")
	}
	return nil
}
