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
	"github.com/emirpasic/gods/sets/hashset"
	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
)

// Edge is a pair of vertex indices. Constraints and crossing edges are
// unordered; A and B carry the order they were given in.
type Edge struct {
	A int
	B int
}

func (e Edge) sorted() Edge {
	if e.A > e.B {
		return Edge{A: e.B, B: e.A}
	}
	return e
}

// Triangle holds the vertex indices of a counterclockwise triangle.
type Triangle [3]int

// Options configures a Triangulator.
type Options struct {
	// MaxOperations caps the number of point insertions plus constraint
	// recoveries. The triangulation is cleaned up and returned with
	// Complete set to false when the cap is reached. 0 means no cap.
	MaxOperations int

	// CheckMesh verifies the adjacency of the result before returning it.
	CheckMesh bool
}

// Result is a finished triangulation.
type Result struct {
	// Points are the distinct input points in first-occurrence order, with
	// their original coordinates.
	Points []Point

	// Remap maps every input point index to its index in Points.
	Remap []int

	// Triangles index into Points.
	Triangles []Triangle

	// Adjacency[3k+i] is 3 times the index of the triangle sharing the edge
	// opposite corner i of triangle k, or -1 on the boundary.
	Adjacency []int

	// Unresolved lists the constraints, as given, that are not edges of the
	// result.
	Unresolved []Edge

	// Crossings lists the edges found crossing constraints before they were
	// recovered, with indices into Points.
	Crossings []Edge

	// Complete is false when MaxOperations stopped the triangulation early.
	Complete bool
}

// Validate checks the triangle and adjacency invariants of r.
func (r *Result) Validate() error {
	tris := make([]int, 0, 3*len(r.Triangles))
	for _, t := range r.Triangles {
		tris = append(tris, t[:]...)
	}
	return checkMesh(tris, r.Adjacency, len(r.Points))
}

// HasEdge reports whether the points a and b are joined by a triangle edge.
func (r *Result) HasEdge(a, b int) bool {
	for _, t := range r.Triangles {
		for i := range t {
			u, v := t[i], t[(i+1)%3]
			if (u == a && v == b) || (u == b && v == a) {
				return true
			}
		}
	}
	return false
}

// Triangulator accumulates points and constraints for a constrained
// Delaunay triangulation.
type Triangulator struct {
	opts        Options
	points      []Point
	constraints []Edge
}

func NewTriangulator(opts Options) *Triangulator {
	return &Triangulator{
		opts: opts,
	}
}

// AddPoints appends points. Constraint indices refer to the order of all
// added points.
func (t *Triangulator) AddPoints(points ...Point) {
	t.points = append(t.points, points...)
}

// AddConstraint requires the segment between points a and b to be a chain of
// triangle edges.
func (t *Triangulator) AddConstraint(a, b int) {
	t.constraints = append(t.constraints, Edge{A: a, B: b})
}

// Triangulate runs the triangulation over everything added so far. The
// Triangulator can be reused; every call starts from scratch.
func (t *Triangulator) Triangulate() (*Result, error) {
	r := &Result{
		Complete: true,
	}
	if len(t.points) < 3 {
		return r, nil
	}

	points, remap := dedup(t.points)
	if len(points) < 3 {
		return r, nil
	}
	m := newMesh(points)
	if m == nil {
		return r, nil
	}

	budget := t.opts.MaxOperations
	spend := func() bool {
		if t.opts.MaxOperations <= 0 {
			return true
		}
		if budget == 0 {
			return false
		}
		budget--
		return true
	}

	dirty := arraystack.New()
	for v := range points {
		if !spend() {
			r.Complete = false
			break
		}
		if !m.insert(v, dirty) {
			klog.Warningf("cdt: point %d (%v) is not inside the triangulation; skipped", v, points[v])
		}
	}
	m.removeSuperTriangle()
	m.closeHull(dirty)

	k := newConstrainer(m)
	seen := hashset.New()
	for _, e := range t.constraints {
		if !r.Complete || !spend() {
			r.Complete = false
			break
		}
		if e.A < 0 || e.A >= len(remap) || e.B < 0 || e.B >= len(remap) {
			klog.V(2).Infof("cdt: constraint (%d, %d) is out of range; skipped", e.A, e.B)
			continue
		}
		a, b := remap[e.A], remap[e.B]
		if a == b {
			klog.V(2).Infof("cdt: constraint (%d, %d) is degenerate; skipped", e.A, e.B)
			continue
		}
		key := Edge{A: a, B: b}.sorted()
		if seen.Contains(key) {
			continue
		}
		seen.Add(key)
		if !k.insert(a, b) {
			klog.V(2).Infof("cdt: constraint (%d, %d) could not be recovered", e.A, e.B)
			r.Unresolved = append(r.Unresolved, e)
		}
	}

	if t.opts.CheckMesh {
		if err := m.check(); err != nil {
			return nil, errors.Wrap(err, "cdt: triangulation is corrupted")
		}
	}

	r.Points = points
	r.Remap = remap
	r.Crossings = k.crossings
	r.Adjacency = m.adj
	r.Triangles = make([]Triangle, len(m.tris)/3)
	for i := range r.Triangles {
		copy(r.Triangles[i][:], m.tris[3*i:3*i+3])
	}

	klog.V(1).Infof("cdt: %d points (%d distinct), %d triangles, %d constraints, %d unresolved, complete: %v",
		len(t.points), len(points), len(r.Triangles), len(t.constraints), len(r.Unresolved), r.Complete)
	return r, nil
}

// Triangulate is a shorthand for a Triangulator with default options.
func Triangulate(points []Point, constraints []Edge) (*Result, error) {
	t := NewTriangulator(Options{})
	t.AddPoints(points...)
	t.constraints = append(t.constraints, constraints...)
	return t.Triangulate()
}
