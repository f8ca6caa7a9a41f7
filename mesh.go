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

// mesh is the working triangulation of one Triangulate call.
//
// Triangle k occupies tris[3k], tris[3k+1] and tris[3k+2]; 3k is its base.
// adj is parallel to tris: adj[base+i] is the base of the triangle sharing
// the edge opposite corner i, or -1 on the boundary. All triangles keep
// the counterclockwise winding of the super-triangle, so a shared edge
// runs in opposite directions in its two triangles.
type mesh struct {
	verts []Point
	tris  []int
	adj   []int

	// placed marks the input vertices that made it into the mesh.
	placed []bool
}

func assert(cond bool) {
	if !cond {
		panic("cdt: assertion error")
	}
}

// base returns the base index of the triangle owning corner c.
func base(c int) int {
	return c / 3 * 3
}

// next returns the corner after c in the same triangle.
func next(c int) int {
	if c%3 == 2 {
		return c - 2
	}
	return c + 1
}

// prev returns the corner before c in the same triangle.
func prev(c int) int {
	if c%3 == 0 {
		return c + 2
	}
	return c - 1
}

func (m *mesh) point(c int) Point {
	return m.verts[m.tris[c]]
}

// addTriangle appends the triangle (a, b, c) with the given neighbours and
// returns its base.
func (m *mesh) addTriangle(a, b, c int, na, nb, nc int) int {
	t := len(m.tris)
	m.tris = append(m.tris, a, b, c)
	m.adj = append(m.adj, na, nb, nc)
	return t
}

// retarget makes the neighbour slot of triangle from that points at
// oldTri point at newTri instead.
func (m *mesh) retarget(from, oldTri, newTri int) {
	if from == -1 {
		return
	}
	for i := from; i < from+3; i++ {
		if m.adj[i] == oldTri {
			m.adj[i] = newTri
			return
		}
	}
	// A neighbour that does not point back means the mesh is corrupted.
	assert(false)
}

// apex returns the corner of triangle t holding neither u nor v, or -1.
func (m *mesh) apex(t, u, v int) int {
	for i := t; i < t+3; i++ {
		if w := m.tris[i]; w != u && w != v {
			return i
		}
	}
	return -1
}

// cornerOf returns the corner of triangle t holding vertex v, or -1.
func (m *mesh) cornerOf(t, v int) int {
	for i := t; i < t+3; i++ {
		if m.tris[i] == v {
			return i
		}
	}
	return -1
}

// findCorner scans the triangle buffer for the first corner holding v.
func (m *mesh) findCorner(v int) int {
	for i, w := range m.tris {
		if w == v {
			return i
		}
	}
	return -1
}

// findEdge scans the triangle buffer for a triangle with the edge (u, v) and
// returns the corner opposite that edge, or -1.
func (m *mesh) findEdge(u, v int) int {
	for t := 0; t < len(m.tris); t += 3 {
		cu := m.cornerOf(t, u)
		if cu == -1 {
			continue
		}
		if m.tris[next(cu)] == v {
			return prev(cu)
		}
		if m.tris[prev(cu)] == v {
			return next(cu)
		}
	}
	return -1
}

// splitTriangle replaces the triangle (x, y, z) at t by the three triangles
// (p, x, y), (p, y, z) and (p, z, x), where p lies inside it. The first
// reuses t, the other two are appended. The three bases are returned with p
// at corner 0 of each.
//
//	             x
//
//	             p
//
//	    y                 z
func (m *mesh) splitTriangle(t, p int) (int, int, int) {
	x, y, z := m.tris[t], m.tris[t+1], m.tris[t+2]
	// Neighbours across (y, z), (z, x) and (x, y).
	nx, ny, nz := m.adj[t], m.adj[t+1], m.adj[t+2]

	bottom := len(m.tris)
	topRight := bottom + 3

	m.tris[t], m.tris[t+1], m.tris[t+2] = p, x, y
	m.adj[t], m.adj[t+1], m.adj[t+2] = nz, bottom, topRight

	m.addTriangle(p, y, z, nx, topRight, t)
	m.addTriangle(p, z, x, ny, t, bottom)

	m.retarget(nx, t, bottom)
	m.retarget(ny, t, topRight)
	return t, bottom, topRight
}

// flipEdge replaces the edge opposite corner c by the other diagonal of the
// quadrilateral formed with the neighbouring triangle.
//
// With the triangle at c being (p, a, b) and its neighbour (q, b, a), the two
// triangles become (p, a, q) and (q, b, p); each keeps its slots and only one
// vertex changes. The corners of p in both triangles are returned. Their
// opposite edges, (a, q) and (q, b), are the outer edges of the quadrilateral
// facing away from p.
func (m *mesh) flipEdge(c int) (int, int) {
	t := base(c)
	n := m.adj[c]
	assert(n != -1)

	ca, cb := next(c), prev(c)
	p, a, b := m.tris[c], m.tris[ca], m.tris[cb]

	cq := m.apex(n, a, b)
	assert(cq != -1)
	cqb, cqa := next(cq), prev(cq)
	assert(m.tris[cqb] == b && m.tris[cqa] == a)
	q := m.tris[cq]

	nbp := m.adj[ca]  // across (b, p)
	naq := m.adj[cqb] // across (a, q)

	m.tris[cb] = q
	m.tris[cqa] = p

	m.adj[c] = naq
	m.adj[ca] = n
	m.adj[cq] = nbp
	m.adj[cqb] = t

	m.retarget(naq, n, t)
	m.retarget(nbp, t, n)
	return c, cqa
}

// removeSuperTriangle drops the three trailing super-triangle vertices and
// every triangle using one of them, then compacts the adjacency slots.
func (m *mesh) removeSuperTriangle() {
	n := len(m.verts) - 3
	m.verts = m.verts[:n]

	// offsets[k] is how far triangle k moves, or -1 when it is removed.
	offsets := make([]int, len(m.tris)/3)
	kept := 0
	offset := 0
	for t := 0; t < len(m.tris); t += 3 {
		if m.tris[t] >= n || m.tris[t+1] >= n || m.tris[t+2] >= n {
			offsets[t/3] = -1
			offset -= 3
			continue
		}
		offsets[t/3] = offset
		copy(m.tris[kept:kept+3], m.tris[t:t+3])
		copy(m.adj[kept:kept+3], m.adj[t:t+3])
		kept += 3
	}
	m.tris = m.tris[:kept]
	m.adj = m.adj[:kept]

	for i, a := range m.adj {
		if a == -1 {
			continue
		}
		if off := offsets[a/3]; off == -1 {
			m.adj[i] = -1
		} else {
			m.adj[i] = a + off
		}
	}
}
