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
	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/plan-systems/klog"
)

// flipLimit bounds the flips of one legalization pass. Exact arithmetic
// needs far fewer; the bound only stops near-cocircular rounding noise from
// flipping a diagonal back and forth.
func (m *mesh) flipLimit() int {
	return 4*len(m.tris) + 64
}

// illegal reports whether the edge opposite corner c fails the angle-sum
// test against the apex of the neighbouring triangle.
func (m *mesh) illegal(c int) bool {
	n := m.adj[c]
	if n == -1 {
		return false
	}
	v1, v2 := m.tris[prev(c)], m.tris[next(c)]
	cq := m.apex(n, v1, v2)
	assert(cq != -1)
	return needsFlip(m.verts[m.tris[c]], m.verts[v1], m.verts[v2], m.verts[m.tris[cq]])
}

// legalize restores the Delaunay property around a freshly inserted vertex.
//
// Every corner on the dirty stack holds the new vertex p; the edge opposite
// it is tested and flipped when illegal. A flip leaves p in both rewritten
// triangles, and the two outer edges facing p are pushed so the flip can
// propagate. Edges incident to p are Delaunay and never retested.
func (m *mesh) legalize(dirty *arraystack.Stack) {
	limit := m.flipLimit()
	for !dirty.Empty() {
		v, _ := dirty.Pop()
		c := v.(int)
		if !m.illegal(c) {
			continue
		}
		if limit--; limit < 0 {
			klog.Warningf("cdt: legalization did not settle, %d dirty edges left", dirty.Size())
			dirty.Clear()
			return
		}
		c1, c2 := m.flipEdge(c)
		if m.adj[c1] != -1 {
			dirty.Push(c1)
		}
		if m.adj[c2] != -1 {
			dirty.Push(c2)
		}
	}
}

// relegalize is legalize for a mesh holding constraint edges. Locked edges
// never flip, a flip needs a strictly convex quadrilateral, and all four
// outer edges of a flipped quadrilateral are retested since the corners on
// the stack no longer share a common vertex.
func (m *mesh) relegalize(dirty *arraystack.Stack, locked func(u, v int) bool) {
	limit := m.flipLimit()
	for !dirty.Empty() {
		v, _ := dirty.Pop()
		c := v.(int)
		n := m.adj[c]
		if n == -1 {
			continue
		}
		a, b := m.tris[next(c)], m.tris[prev(c)]
		if locked(a, b) {
			continue
		}
		cq := m.apex(n, a, b)
		assert(cq != -1)
		p, q := m.verts[m.tris[c]], m.verts[m.tris[cq]]
		pa, pb := m.verts[a], m.verts[b]
		if !needsFlip(p, pb, pa, q) || !isConvexQuad(p, pa, q, pb) {
			continue
		}
		if limit--; limit < 0 {
			klog.Warningf("cdt: constrained legalization did not settle, %d dirty edges left", dirty.Size())
			dirty.Clear()
			return
		}
		c1, c2 := m.flipEdge(c)
		dirty.Push(c1)
		dirty.Push(prev(c1))
		dirty.Push(c2)
		dirty.Push(next(c2))
	}
}
