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

package cdt

import (
	"math"
)

// Point is a 2D vertex.
type Point struct {
	X float64
	Y float64
}

func (a Point) Add(b Point) Point {
	return Point{X: a.X + b.X, Y: a.Y + b.Y}
}

func (a Point) Sub(b Point) Point {
	return Point{X: a.X - b.X, Y: a.Y - b.Y}
}

func (a Point) Scale(s float64) Point {
	return Point{X: a.X * s, Y: a.Y * s}
}

func (a Point) Dot(b Point) float64 {
	return a.X*b.X + a.Y*b.Y
}

// Cross returns the z component of the 3D cross product of a and b.
func (a Point) Cross(b Point) float64 {
	return a.X*b.Y - a.Y*b.X
}

// Perpendicular returns a rotated by 90 degrees counterclockwise.
func (a Point) Perpendicular() Point {
	return Point{X: -a.Y, Y: a.X}
}

const (
	// onEdgeEpsilon is the distance below which a point counts as lying on
	// a triangle edge, so both triangles sharing the edge accept it.
	onEdgeEpsilon = 1e-12

	// collinearEpsilon bounds the sine of the angle between a constraint
	// and a vertex direction for the vertex to count as lying on it.
	collinearEpsilon = 1e-9
)

// orient returns twice the signed area of the triangle (a, b, c).
// It is positive when a, b, c are in counterclockwise order.
func orient(a, b, c Point) float64 {
	return b.Sub(a).Cross(c.Sub(a))
}

// edgeSigns classifies a signed distance. A distance within onEdgeEpsilon
// of zero is both non-negative and non-positive.
func edgeSigns(d float64) (nonNeg, nonPos bool) {
	if math.Abs(d) < onEdgeEpsilon {
		return true, true
	}
	return d > 0, d < 0
}

// pointInTriangle reports whether p lies inside the triangle (v0, v1, v2) or
// on its boundary, for either winding. A triangle whose three distances to p
// are all exactly zero is degenerate and contains nothing.
func pointInTriangle(p, v0, v1, v2 Point) bool {
	d0 := p.Sub(v0).Dot(v1.Sub(v0).Perpendicular())
	d1 := p.Sub(v1).Dot(v2.Sub(v1).Perpendicular())
	d2 := p.Sub(v2).Dot(v0.Sub(v2).Perpendicular())

	if d0 == 0 && d1 == 0 && d2 == 0 {
		return false
	}

	pos0, neg0 := edgeSigns(d0)
	pos1, neg1 := edgeSigns(d1)
	pos2, neg2 := edgeSigns(d2)

	return (pos0 && pos1 && pos2) || (neg0 && neg1 && neg2)
}

// segmentsIntersect reports whether the segments [a1, b1] and [a2, b2]
// properly cross. Touching at an endpoint or overlapping collinearly is not a
// crossing.
func segmentsIntersect(a1, b1, a2, b2 Point) bool {
	a1b1 := b1.Sub(a1)
	b1b2 := b2.Sub(b1)
	b1a2 := a2.Sub(b1)
	a2b2 := b2.Sub(a2)
	b2b1 := b1.Sub(b2)
	b2a1 := a1.Sub(b2)
	return a1b1.Cross(b1b2)*a1b1.Cross(b1a2) < 0 &&
		a2b2.Cross(b2b1)*a2b2.Cross(b2a1) < 0
}

func sign(f float64) int {
	switch {
	case f < 0:
		return -1
	case f > 0:
		return 1
	}
	return 0
}

// isConvexQuad reports whether the quadrilateral a, b, c, d (in this cyclic
// order) is strictly convex. Any straight corner makes it non-convex.
func isConvexQuad(a, b, c, d Point) bool {
	ab := b.Sub(a)
	bc := c.Sub(b)
	cd := d.Sub(c)
	da := a.Sub(d)
	sa := sign(da.Cross(ab))
	sb := sign(ab.Cross(bc))
	sc := sign(bc.Cross(cd))
	sd := sign(cd.Cross(da))
	return sa != 0 && sa == sb && sb == sc && sc == sd
}

// needsFlip is the angle-sum in-circle test. p is the apex of a
// counterclockwise triangle whose edge (v2, v1) is shared with a neighbour
// whose apex is v3. The edge is illegal when the angles at p and v3 sum to
// more than 180 degrees, which is decided from sin(A+B) without computing
// either angle.
func needsFlip(p, v1, v2, v3 Point) bool {
	v13 := v1.Sub(v3)
	v23 := v2.Sub(v3)
	v1p := v1.Sub(p)
	v2p := v2.Sub(p)

	cosA := v13.Dot(v23)
	cosB := v1p.Dot(v2p)

	switch {
	case cosA >= 0 && cosB >= 0:
		return false
	case cosA < 0 && cosB < 0:
		return true
	}
	sinA := v13.Cross(v23)
	sinB := v2p.Cross(v1p)
	return sinA*cosB+sinB*cosA < 0
}

// onSegment reports whether v lies on the open segment from a to b, within
// collinearEpsilon.
func onSegment(v, a, b Point) bool {
	dir := b.Sub(a)
	av := v.Sub(a)
	along := av.Dot(dir)
	if along <= 0 || along >= dir.Dot(dir) {
		return false
	}
	return math.Abs(av.Cross(dir)) <= collinearEpsilon*math.Sqrt(av.Dot(av)*dir.Dot(dir))
}
