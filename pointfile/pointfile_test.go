package pointfile_test

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/pkg/errors"

	"github.com/hajimehoshi/go-cdt"
	"github.com/hajimehoshi/go-cdt/pointfile"
)

func TestParse(t *testing.T) {
	const src = `# a square with one diagonal
p 0 0
p 1 0
p 1 1   # top right
p 0 1
c 0 2
t 0 1 2
t 0 2 3
u 1 3
p -2.5e1 .5
`
	d, err := pointfile.ParseString(src)
	if err != nil {
		t.Fatal(err)
	}
	want := &pointfile.Document{
		Points: []cdt.Point{
			{X: 0, Y: 0},
			{X: 1, Y: 0},
			{X: 1, Y: 1},
			{X: 0, Y: 1},
			{X: -25, Y: 0.5},
		},
		Constraints: []cdt.Edge{{A: 0, B: 2}},
		Triangles:   []cdt.Triangle{{0, 1, 2}, {0, 2, 3}},
		Unresolved:  []cdt.Edge{{A: 1, B: 3}},
	}
	if !reflect.DeepEqual(d, want) {
		t.Errorf("got %+v, want %+v", d, want)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		err  error
	}{
		{"unknown keyword", "q 1 2\n", pointfile.ErrSyntax},
		{"missing coordinate", "p 1\n", pointfile.ErrSyntax},
		{"fractional index", "p 0 0\np 1 1\nc 0 1.5\n", pointfile.ErrSyntax},
		{"index out of range", "p 0 0\np 1 1\nc 0 2\n", pointfile.ErrIndex},
		{"negative index", "p 0 0\np 1 1\np 2 0\nt 0 1 -1\n", pointfile.ErrIndex},
	}
	for _, tc := range tests {
		_, err := pointfile.ParseString(tc.src)
		if err == nil {
			t.Errorf("%s: no error", tc.name)
			continue
		}
		if errors.Cause(err) != tc.err {
			t.Errorf("%s: got %v, want %v", tc.name, err, tc.err)
		}
	}
}

func TestWrite(t *testing.T) {
	points := []cdt.Point{
		{X: 0, Y: 0},
		{X: 2, Y: 0},
		{X: 2, Y: 2},
		{X: 0, Y: 2},
		{X: 0, Y: 0},
		{X: 0.1, Y: 1e-7},
	}
	res, err := cdt.Triangulate(points, []cdt.Edge{{A: 0, B: 2}, {A: 1, B: 3}})
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := pointfile.Write(&buf, res); err != nil {
		t.Fatal(err)
	}
	d, err := pointfile.Parse(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(d.Points, res.Points) {
		t.Errorf("Points = %v, want %v", d.Points, res.Points)
	}
	if !reflect.DeepEqual(d.Triangles, res.Triangles) {
		t.Errorf("Triangles = %v, want %v", d.Triangles, res.Triangles)
	}
	if len(d.Unresolved) != len(res.Unresolved) {
		t.Errorf("len(Unresolved) = %d, want %d", len(d.Unresolved), len(res.Unresolved))
	}
}
