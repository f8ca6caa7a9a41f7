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

// Package pointfile reads and writes point sets and triangulations as text.
//
// Each record starts with a keyword:
//
//	p x y      a point
//	c a b      a constraint between points a and b
//	t a b c    a triangle
//	u a b      a constraint that could not be recovered
//
// Indices count points from 0 in the order they appear. Everything after a
// # up to the end of the line is a comment.
package pointfile

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"

	"github.com/hajimehoshi/go-cdt"
)

var (
	ErrSyntax = errors.New("pointfile: syntax error")
	ErrIndex  = errors.New("pointfile: point index out of range")
)

// Document is the content of a point file.
type Document struct {
	Points      []cdt.Point
	Constraints []cdt.Edge
	Triangles   []cdt.Triangle
	Unresolved  []cdt.Edge
}

type file struct {
	Records []*record `@@*`
}

type record struct {
	Pos lexer.Position

	Point      *point  `  "p" @@`
	Constraint *pair   `| "c" @@`
	Triangle   *triple `| "t" @@`
	Unresolved *pair   `| "u" @@`
}

type point struct {
	X float64 `@Number`
	Y float64 `@Number`
}

type pair struct {
	A int `@Number`
	B int `@Number`
}

type triple struct {
	A int `@Number`
	B int `@Number`
	C int `@Number`
}

var fileLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "Number", Pattern: `[-+]?(\d+\.?\d*|\.\d+)([eE][-+]?\d+)?`},
	{Name: "Keyword", Pattern: `[a-z]+`},
	{Name: "whitespace", Pattern: `\s+`},
})

var fileParser = participle.MustBuild[file](
	participle.Lexer(fileLexer),
	participle.Elide("Comment", "whitespace"),
)

// Parse reads a point file.
func Parse(r io.Reader) (*Document, error) {
	f, err := fileParser.Parse("", r)
	if err != nil {
		return nil, errors.Wrapf(ErrSyntax, "%v", err)
	}
	return build(f)
}

// ParseString reads a point file from s.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

func build(f *file) (*Document, error) {
	d := &Document{}
	for _, r := range f.Records {
		if r.Point != nil {
			d.Points = append(d.Points, cdt.Point{X: r.Point.X, Y: r.Point.Y})
		}
	}

	check := func(r *record, indices ...int) error {
		for _, i := range indices {
			if i < 0 || i >= len(d.Points) {
				return errors.Wrapf(ErrIndex, "%s: index %d, %d points", r.Pos, i, len(d.Points))
			}
		}
		return nil
	}

	for _, r := range f.Records {
		switch {
		case r.Constraint != nil:
			c := r.Constraint
			if err := check(r, c.A, c.B); err != nil {
				return nil, err
			}
			d.Constraints = append(d.Constraints, cdt.Edge{A: c.A, B: c.B})
		case r.Triangle != nil:
			t := r.Triangle
			if err := check(r, t.A, t.B, t.C); err != nil {
				return nil, err
			}
			d.Triangles = append(d.Triangles, cdt.Triangle{t.A, t.B, t.C})
		case r.Unresolved != nil:
			u := r.Unresolved
			if err := check(r, u.A, u.B); err != nil {
				return nil, err
			}
			d.Unresolved = append(d.Unresolved, cdt.Edge{A: u.A, B: u.B})
		}
	}
	return d, nil
}

// Write writes the points, triangles and unresolved constraints of res.
// Unresolved constraints are written with indices into res.Points.
func Write(w io.Writer, res *cdt.Result) error {
	bw := bufio.NewWriter(w)

	bw.WriteString("# " + strconv.Itoa(len(res.Points)) + " points, " + strconv.Itoa(len(res.Triangles)) + " triangles\n")
	for _, p := range res.Points {
		bw.WriteString("p ")
		bw.WriteString(strconv.FormatFloat(p.X, 'g', -1, 64))
		bw.WriteByte(' ')
		bw.WriteString(strconv.FormatFloat(p.Y, 'g', -1, 64))
		bw.WriteByte('\n')
	}
	for _, t := range res.Triangles {
		writeIndices(bw, "t", t[:]...)
	}
	for _, e := range res.Unresolved {
		writeIndices(bw, "u", res.Remap[e.A], res.Remap[e.B])
	}
	if !res.Complete {
		bw.WriteString("# incomplete\n")
	}

	if err := bw.Flush(); err != nil {
		return errors.Wrap(err, "pointfile: write failed")
	}
	return nil
}

func writeIndices(bw *bufio.Writer, keyword string, indices ...int) {
	bw.WriteString(keyword)
	for _, i := range indices {
		bw.WriteByte(' ')
		bw.WriteString(strconv.Itoa(i))
	}
	bw.WriteByte('\n')
}
