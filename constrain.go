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

	"github.com/emirpasic/gods/queues/arrayqueue"
	"github.com/emirpasic/gods/sets/hashset"
	"github.com/emirpasic/gods/stacks/arraystack"
)

// walkResult is what a search around a constraint endpoint found.
type walkResult int

const (
	walkNone walkResult = iota
	// walkReached: the other endpoint is a neighbour of the pivot.
	walkReached
	// walkCollinear: a neighbouring vertex lies on the constraint.
	walkCollinear
	// walkCrossing: the edge facing the pivot crosses the constraint.
	walkCrossing
)

// constrainer forces constraint edges into a finished Delaunay mesh.
type constrainer struct {
	m *mesh

	locked *hashset.Set // Edge, sorted

	visit   *arraystack.Stack
	visited *hashset.Set
	dirty   *arraystack.Stack

	crossings []Edge
}

func newConstrainer(m *mesh) *constrainer {
	return &constrainer{
		m:       m,
		locked:  hashset.New(),
		visit:   arraystack.New(),
		visited: hashset.New(),
		dirty:   arraystack.New(),
	}
}

func (k *constrainer) lock(u, v int) {
	k.locked.Add(Edge{A: u, B: v}.sorted())
}

func (k *constrainer) isLocked(u, v int) bool {
	return k.locked.Contains(Edge{A: u, B: v}.sorted())
}

// rotateAround visits the triangles around the vertex held by corner start,
// moving only across the two edges incident to the vertex. fn gets the
// vertex's corner in each triangle and ends the walk by returning true.
func (k *constrainer) rotateAround(start int, fn func(c int) bool) {
	m := k.m
	v := m.tris[start]

	k.visit.Clear()
	k.visited.Clear()
	k.visit.Push(base(start))
	k.visited.Add(base(start))

	for !k.visit.Empty() {
		x, _ := k.visit.Pop()
		c := m.cornerOf(x.(int), v)
		if c == -1 {
			continue
		}
		if fn(c) {
			return
		}
		for _, s := range [...]int{next(c), prev(c)} {
			n := m.adj[s]
			if n != -1 && !k.visited.Contains(n) {
				k.visited.Add(n)
				k.visit.Push(n)
			}
		}
	}
}

// aroundVertex looks at the triangles around the pivot held by corner start
// for the first sign of the constraint towards b. The returned corner holds
// the pivot for walkReached and walkCrossing, and the collinear vertex for
// walkCollinear.
func (k *constrainer) aroundVertex(start, b int) (res walkResult, corner int) {
	m := k.m
	pa, pb := m.point(start), m.verts[b]
	corner = -1

	k.rotateAround(start, func(c int) bool {
		if m.cornerOf(base(c), b) != -1 {
			res, corner = walkReached, c
			return true
		}

		best, bestDist := -1, math.Inf(1)
		for _, i := range [...]int{next(c), prev(c)} {
			if !onSegment(m.point(i), pa, pb) {
				continue
			}
			d := m.point(i).Sub(pa)
			if dist := d.Dot(d); dist < bestDist {
				best, bestDist = i, dist
			}
		}
		if best != -1 {
			res, corner = walkCollinear, best
			return true
		}

		if segmentsIntersect(m.point(next(c)), m.point(prev(c)), pa, pb) {
			res, corner = walkCrossing, c
			return true
		}
		return false
	})
	return res, corner
}

// crossingsFrom walks from the pivot at corner c towards b through the
// triangles the constraint passes, collecting the edges it crosses. The
// walk ends at b or at the first vertex lying on the constraint, which is
// returned as end.
func (k *constrainer) crossingsFrom(c, b int) (end int, edges []Edge, ok bool) {
	m := k.m
	pa, pb := m.point(c), m.verts[b]

	u, v := m.tris[next(c)], m.tris[prev(c)]
	edges = []Edge{{A: u, B: v}}

	k.visited.Clear()
	k.visited.Add(base(c))
	n := m.adj[c]
	for {
		if n == -1 || k.visited.Contains(n) {
			return -1, edges, false
		}
		k.visited.Add(n)

		cw := m.apex(n, u, v)
		assert(cw != -1)
		w := m.tris[cw]
		pw := m.verts[w]
		if w == b || onSegment(pw, pa, pb) {
			return w, edges, true
		}

		// Leave through (u, w), opposite v, or (w, v), opposite u.
		cu, cv := m.cornerOf(n, u), m.cornerOf(n, v)
		exit, bestDist := -1, -1.0
		for _, e := range [...]struct{ corner, x int }{{cv, u}, {cu, v}} {
			px := m.verts[e.x]
			if !segmentsIntersect(px, pw, pa, pb) {
				continue
			}
			dx, dw := px.Sub(pa), pw.Sub(pa)
			if dist := math.Max(dx.Dot(dx), dw.Dot(dw)); dist > bestDist {
				exit, bestDist = e.corner, dist
			}
		}
		if exit == -1 {
			if sign(orient(pa, pb, pw)) == sign(orient(pa, pb, m.verts[u])) {
				exit = cu
			} else {
				exit = cv
			}
		}

		u, v = m.tris[next(exit)], m.tris[prev(exit)]
		edges = append(edges, Edge{A: u, B: v})
		n = m.adj[exit]
	}
}

// resolve flips the crossing edges away until none crosses the segment from
// a to b. Every edge next to a flip is returned so the caller can restore
// the Delaunay property around them, also when resolve fails.
func (k *constrainer) resolve(a, b int, edges []Edge) (touched []Edge, ok bool) {
	m := k.m
	pa, pb := m.verts[a], m.verts[b]

	queue := arrayqueue.New()
	for _, e := range edges {
		queue.Enqueue(e)
	}

	limit := m.flipLimit()
	stalled := 0
	for !queue.Empty() {
		if stalled > 0 && stalled >= queue.Size() {
			return touched, false
		}
		x, _ := queue.Dequeue()
		e := x.(Edge)
		if k.isLocked(e.A, e.B) {
			return touched, false
		}

		c := m.findEdge(e.A, e.B)
		assert(c != -1)
		n := m.adj[c]
		if n == -1 {
			return touched, false
		}
		u, v := m.tris[next(c)], m.tris[prev(c)]
		cq := m.apex(n, u, v)
		assert(cq != -1)
		p, q := m.tris[c], m.tris[cq]

		if !isConvexQuad(m.verts[p], m.verts[u], m.verts[q], m.verts[v]) {
			queue.Enqueue(e)
			stalled++
			continue
		}
		if limit--; limit < 0 {
			return touched, false
		}
		stalled = 0

		m.flipEdge(c)
		touched = append(touched, Edge{A: p, B: u}, Edge{A: u, B: q}, Edge{A: q, B: v}, Edge{A: v, B: p})
		if segmentsIntersect(m.verts[p], m.verts[q], pa, pb) {
			queue.Enqueue(Edge{A: p, B: q})
		} else {
			touched = append(touched, Edge{A: p, B: q})
		}
	}
	return touched, true
}

// restore re-legalizes the given edges, leaving locked edges in place.
func (k *constrainer) restore(edges []Edge) {
	k.dirty.Clear()
	for _, e := range edges {
		if c := k.m.findEdge(e.A, e.B); c != -1 {
			k.dirty.Push(c)
		}
	}
	k.m.relegalize(k.dirty, k.isLocked)
}

// insert makes the segment between vertices a and b a chain of mesh edges
// and locks them. The segment is split at every vertex lying on it.
func (k *constrainer) insert(a, b int) bool {
	m := k.m
	start := -1
	for i, v := range m.tris {
		if v == a {
			start = i
			break
		}
		if v == b {
			a, b = b, a
			start = i
			break
		}
	}
	if start == -1 {
		return false
	}

	for {
		res, c := k.aroundVertex(start, b)
		switch res {
		case walkReached:
			k.lock(a, b)
			return true

		case walkCollinear:
			w := m.tris[c]
			k.lock(a, w)
			a, start = w, c

		case walkCrossing:
			end, edges, ok := k.crossingsFrom(c, b)
			k.crossings = append(k.crossings, edges...)
			if !ok {
				return false
			}
			touched, ok := k.resolve(a, end, edges)
			ok = ok && m.findEdge(a, end) != -1
			if ok {
				k.lock(a, end)
			}
			k.restore(touched)
			if !ok {
				return false
			}
			if end == b {
				return true
			}
			a = end
			start = m.findCorner(end)

		default:
			return false
		}
	}
}
