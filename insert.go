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

	"github.com/emirpasic/gods/stacks/arraystack"
)

// superTriangle strictly contains the normalized square [-1, 1]x[-1, 1] with
// a wide margin, so its vertices rarely take part in a hull edge's
// circumcircle.
var superTriangle = [3]Point{
	{X: 0, Y: 1000},
	{X: -900, Y: -500},
	{X: 900, Y: -500},
}

// normalize maps points into [-1, 1]x[-1, 1], centred on the middle of their
// bounding box and scaled by half of its larger side. ok is false when the
// bounding box is a single point.
func normalize(points []Point) (out []Point, ok bool) {
	lo, hi := points[0], points[0]
	for _, p := range points[1:] {
		lo.X = math.Min(lo.X, p.X)
		lo.Y = math.Min(lo.Y, p.Y)
		hi.X = math.Max(hi.X, p.X)
		hi.Y = math.Max(hi.Y, p.Y)
	}

	scale := math.Max(hi.X-lo.X, hi.Y-lo.Y)
	if scale == 0 {
		return nil, false
	}
	scale *= 0.5
	inv := 1 / scale
	center := lo.Add(hi).Scale(0.5)

	out = make([]Point, len(points), len(points)+len(superTriangle))
	for i, p := range points {
		out[i] = p.Sub(center).Scale(inv)
	}
	return out, true
}

// dedup drops exact duplicates, keeping the first occurrence of every point.
// remap[i] is the output index of input point i. Equality is Go's == on
// both coordinates; points that differ in the last bit are kept.
func dedup(points []Point) (out []Point, remap []int) {
	index := make(map[Point]int, len(points))
	out = make([]Point, 0, len(points))
	remap = make([]int, len(points))
	for i, p := range points {
		j, ok := index[p]
		if !ok {
			j = len(out)
			index[p] = j
			out = append(out, p)
		}
		remap[i] = j
	}
	return out, remap
}

// newMesh normalizes points and installs the super-triangle after them.
// It returns nil for degenerate input.
func newMesh(points []Point) *mesh {
	verts, ok := normalize(points)
	if !ok {
		return nil
	}
	n := len(verts)
	verts = append(verts, superTriangle[:]...)

	expected := 3 * (2*n + 1)
	m := &mesh{
		verts: verts,
		tris:  make([]int, 0, expected),
		adj:   make([]int, 0, expected),
	}
	m.placed = make([]bool, n)
	m.addTriangle(n, n+1, n+2, -1, -1, -1)
	return m
}

// locate returns the base of the first triangle containing p, or -1.
func (m *mesh) locate(p Point) int {
	for t := 0; t < len(m.tris); t += 3 {
		if pointInTriangle(p, m.verts[m.tris[t]], m.verts[m.tris[t+1]], m.verts[m.tris[t+2]]) {
			return t
		}
	}
	return -1
}

// insert adds vertex v to the triangulation: the containing triangle is split
// in three and the Delaunay property is restored around v.
func (m *mesh) insert(v int, dirty *arraystack.Stack) bool {
	t := m.locate(m.verts[v])
	if t == -1 {
		return false
	}
	t0, t1, t2 := m.splitTriangle(t, v)
	m.placed[v] = true

	dirty.Clear()
	dirty.Push(t0)
	dirty.Push(t1)
	dirty.Push(t2)
	m.legalize(dirty)
	return true
}

func unlocked(u, v int) bool {
	return false
}

// closeHull fills the pockets left along the convex hull once the
// super-triangle is gone. A boundary edge with a placed vertex strictly on
// its outer side is not a hull edge. It gets a triangle towards the vertex
// seeing it under the largest angle, which is then legalized.
func (m *mesh) closeHull(dirty *arraystack.Stack) {
	for m.fillPocket(dirty) {
	}
}

func (m *mesh) fillPocket(dirty *arraystack.Stack) bool {
	// Boundary edges run counterclockwise around the mesh, from
	// tris[next(c)] to tris[prev(c)] for a boundary corner c.
	boundary := make(map[Edge]int)
	var corners []int
	for c, n := range m.adj {
		if n == -1 {
			boundary[Edge{A: m.tris[next(c)], B: m.tris[prev(c)]}] = c
			corners = append(corners, c)
		}
	}

	for _, c := range corners {
		u, v := m.tris[next(c)], m.tris[prev(c)]
		w := m.pocketApex(u, v, boundary)
		if w == -1 {
			continue
		}

		// The triangle (v, u, w) takes (v, u) from c and links to the
		// boundary edges (w, u) and (v, w) when they exist.
		t := len(m.tris)
		nv, nu := -1, -1
		if cw, ok := boundary[Edge{A: w, B: u}]; ok {
			nv = base(cw)
			m.adj[cw] = t
		}
		if cw, ok := boundary[Edge{A: v, B: w}]; ok {
			nu = base(cw)
			m.adj[cw] = t
		}
		m.addTriangle(v, u, w, nv, nu, base(c))
		m.adj[c] = t

		dirty.Clear()
		dirty.Push(t)
		dirty.Push(t + 1)
		dirty.Push(t + 2)
		m.relegalize(dirty, unlocked)
		return true
	}
	return false
}

// pocketApex returns the placed vertex outside the boundary edge (u, v) that
// sees it under the largest angle and can close it, or -1.
func (m *mesh) pocketApex(u, v int, boundary map[Edge]int) int {
	pu, pv := m.verts[u], m.verts[v]
	uv := pv.Sub(pu)

	best, bestCos := -1, 2.0
	for w, pw := range m.verts {
		if w == u || w == v || !m.placed[w] {
			continue
		}
		uw := pw.Sub(pu)
		if uv.Cross(uw) >= -collinearEpsilon*math.Sqrt(uv.Dot(uv)*uw.Dot(uw)) {
			continue
		}
		a, b := pu.Sub(pw), pv.Sub(pw)
		cos := a.Dot(b) / math.Sqrt(a.Dot(a)*b.Dot(b))
		if cos >= bestCos || !m.canClose(u, v, w, boundary) {
			continue
		}
		best, bestCos = w, cos
	}
	return best
}

// canClose reports whether the triangle (v, u, w) can be added outside the
// boundary edge (u, v) without overlapping the mesh.
func (m *mesh) canClose(u, v, w int, boundary map[Edge]int) bool {
	if m.coversVertex(v, u, w) {
		return false
	}
	pu, pv, pw := m.verts[u], m.verts[v], m.verts[w]
	for e := range boundary {
		pa, pb := m.verts[e.A], m.verts[e.B]
		if segmentsIntersect(pu, pw, pa, pb) || segmentsIntersect(pw, pv, pa, pb) {
			return false
		}
	}
	for _, e := range [...]Edge{{A: u, B: w}, {A: w, B: v}} {
		if _, ok := boundary[Edge{A: e.B, B: e.A}]; ok {
			continue
		}
		if m.findEdge(e.A, e.B) != -1 {
			return false
		}
	}
	return true
}

// coversVertex reports whether some placed vertex other than a, b and c lies
// in the triangle (a, b, c) or on its boundary.
func (m *mesh) coversVertex(a, b, c int) bool {
	pa, pb, pc := m.verts[a], m.verts[b], m.verts[c]
	for v, p := range m.verts {
		if v == a || v == b || v == c || !m.placed[v] {
			continue
		}
		if pointInTriangle(p, pa, pb, pc) {
			return true
		}
	}
	return false
}
