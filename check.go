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
	"github.com/pkg/errors"
)

// Errors reported by the mesh checker.
var (
	ErrBrokenAdjacency    = errors.New("cdt: broken adjacency")
	ErrDegenerateTriangle = errors.New("cdt: degenerate triangle")
)

// checkMesh verifies the invariants of a flattened triangle buffer and its
// parallel adjacency buffer: every triangle has three distinct in-range
// vertices, every neighbour link points back exactly once, and two linked
// triangles share exactly the edge opposite the linking corner.
func checkMesh(tris, adj []int, numVerts int) error {
	if len(tris)%3 != 0 {
		return errors.Errorf("cdt: triangle buffer length %d is not a multiple of 3", len(tris))
	}
	if len(adj) != len(tris) {
		return errors.Wrapf(ErrBrokenAdjacency, "adjacency length %d, triangle length %d", len(adj), len(tris))
	}

	for t := 0; t < len(tris); t += 3 {
		a, b, c := tris[t], tris[t+1], tris[t+2]
		for _, v := range [...]int{a, b, c} {
			if v < 0 || v >= numVerts {
				return errors.Wrapf(ErrDegenerateTriangle, "triangle %d: vertex %d out of range", t, v)
			}
		}
		if a == b || b == c || c == a {
			return errors.Wrapf(ErrDegenerateTriangle, "triangle %d: repeated vertex (%d, %d, %d)", t, a, b, c)
		}

		for i := t; i < t+3; i++ {
			n := adj[i]
			if n == -1 {
				continue
			}
			if n < 0 || n%3 != 0 || n >= len(tris) || n == t {
				return errors.Wrapf(ErrBrokenAdjacency, "slot %d: bad neighbour %d", i, n)
			}
			back := 0
			for j := n; j < n+3; j++ {
				if adj[j] == t {
					back++
				}
			}
			if back != 1 {
				return errors.Wrapf(ErrBrokenAdjacency, "slot %d: neighbour %d points back %d times", i, n, back)
			}
			shared := 0
			for j := n; j < n+3; j++ {
				if w := tris[j]; w == a || w == b || w == c {
					shared++
				}
			}
			if shared != 2 {
				return errors.Wrapf(ErrBrokenAdjacency, "slot %d: neighbour %d shares %d vertices", i, n, shared)
			}
			u, v := tris[next(i)], tris[prev(i)]
			found := 0
			for j := n; j < n+3; j++ {
				if w := tris[j]; w == u || w == v {
					found++
				}
			}
			if found != 2 {
				return errors.Wrapf(ErrBrokenAdjacency, "slot %d: neighbour %d is not across edge (%d, %d)", i, n, u, v)
			}
		}
	}
	return nil
}

func (m *mesh) check() error {
	return checkMesh(m.tris, m.adj, len(m.verts))
}
