package cdt

import (
	"math/rand"
	"reflect"
	"sort"
	"testing"
)

// hullSize counts the points on the convex hull boundary, including points
// lying on a hull edge.
func hullSize(points []Point) int {
	ps := append([]Point(nil), points...)
	sort.Slice(ps, func(i, j int) bool {
		if ps[i].X != ps[j].X {
			return ps[i].X < ps[j].X
		}
		return ps[i].Y < ps[j].Y
	})
	chain := func(ps []Point) []Point {
		var h []Point
		for _, p := range ps {
			for len(h) >= 2 && orient(h[len(h)-2], h[len(h)-1], p) < 0 {
				h = h[:len(h)-1]
			}
			h = append(h, p)
		}
		return h
	}
	lower := chain(ps)
	for i, j := 0, len(ps)-1; i < j; i, j = i+1, j-1 {
		ps[i], ps[j] = ps[j], ps[i]
	}
	upper := chain(ps)
	return len(lower) + len(upper) - 2
}

func checkResult(t *testing.T, r *Result, constraints []Edge) {
	t.Helper()

	if err := r.Validate(); err != nil {
		t.Fatal(err)
	}

	for i, tri := range r.Triangles {
		a, b, c := r.Points[tri[0]], r.Points[tri[1]], r.Points[tri[2]]
		if orient(a, b, c) < 0 {
			t.Errorf("triangle %d %v is clockwise", i, tri)
		}
	}

	used := make([]bool, len(r.Points))
	for _, tri := range r.Triangles {
		for _, v := range tri {
			used[v] = true
		}
	}
	for v, ok := range used {
		if !ok {
			t.Errorf("point %d %v is not part of any triangle", v, r.Points[v])
		}
	}

	unresolved := make(map[Edge]bool)
	for _, e := range r.Unresolved {
		unresolved[e] = true
	}
	locked := make(map[Edge]bool)
	for _, e := range constraints {
		if unresolved[e] {
			continue
		}
		a, b := r.Remap[e.A], r.Remap[e.B]
		locked[Edge{A: a, B: b}.sorted()] = true
		if !r.HasEdge(a, b) {
			t.Errorf("constraint %v is missing", e)
		}
	}

	// Legality is judged on the normalized coordinates the mesh was built on.
	verts, _ := normalize(r.Points)
	for k, tri := range r.Triangles {
		for i := 0; i < 3; i++ {
			n := r.Adjacency[3*k+i]
			if n == -1 {
				continue
			}
			u, v := tri[(i+1)%3], tri[(i+2)%3]
			if locked[Edge{A: u, B: v}.sorted()] {
				continue
			}
			q := -1
			for _, w := range r.Triangles[n/3] {
				if w != u && w != v {
					q = w
				}
			}
			if needsFlip(verts[tri[i]], verts[v], verts[u], verts[q]) {
				t.Errorf("edge (%d, %d) between triangles %d and %d is not Delaunay", u, v, k, n/3)
			}
		}
	}
}

func randomPoints(rnd *rand.Rand, n int, size float64) []Point {
	points := make([]Point, n)
	for i := range points {
		points[i] = Point{X: rnd.Float64() * size, Y: rnd.Float64() * size}
	}
	return points
}

func TestSquare(t *testing.T) {
	points := []Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}}
	r, err := Triangulate(points, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(r.Triangles) != 2 {
		t.Fatalf("len(Triangles) = %d, want 2", len(r.Triangles))
	}
	checkResult(t, r, nil)

	diagonals := 0
	if r.HasEdge(0, 3) {
		diagonals++
	}
	if r.HasEdge(1, 2) {
		diagonals++
	}
	if diagonals != 1 {
		t.Errorf("%d diagonals, want 1", diagonals)
	}
	for _, e := range [][2]int{{0, 1}, {1, 3}, {3, 2}, {2, 0}} {
		if !r.HasEdge(e[0], e[1]) {
			t.Errorf("side %v is missing", e)
		}
	}
}

func TestConstraintOnHull(t *testing.T) {
	points := []Point{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 1, Y: 2}, {X: 1, Y: 0.5}}
	for _, c := range []Edge{{A: 0, B: 2}, {A: 0, B: 1}} {
		r, err := Triangulate(points, []Edge{c})
		if err != nil {
			t.Fatal(err)
		}
		if len(r.Unresolved) != 0 {
			t.Errorf("constraint %v: Unresolved = %v, want none", c, r.Unresolved)
		}
		if !r.HasEdge(c.A, c.B) {
			t.Errorf("constraint %v is missing", c)
		}
		checkResult(t, r, []Edge{c})
	}
}

func TestConstraintRecovery(t *testing.T) {
	points := []Point{
		{X: 0, Y: 0},
		{X: 10, Y: 0},
		{X: 4, Y: 1},
		{X: 6, Y: -1},
		{X: 5, Y: 3},
		{X: 5, Y: -3},
		{X: 2, Y: -2},
		{X: 8, Y: 2},
	}

	plain, err := Triangulate(points, nil)
	if err != nil {
		t.Fatal(err)
	}
	if plain.HasEdge(0, 1) {
		t.Fatal("edge (0, 1) is already Delaunay")
	}

	constraints := []Edge{{A: 0, B: 1}}
	r, err := Triangulate(points, constraints)
	if err != nil {
		t.Fatal(err)
	}
	if len(r.Unresolved) != 0 {
		t.Errorf("Unresolved = %v, want none", r.Unresolved)
	}
	if len(r.Crossings) == 0 {
		t.Error("no crossing edges reported")
	}
	if len(r.Triangles) != len(plain.Triangles) {
		t.Errorf("len(Triangles) = %d, want %d", len(r.Triangles), len(plain.Triangles))
	}
	checkResult(t, r, constraints)
}

func TestCollinearConstraint(t *testing.T) {
	points := []Point{
		{X: 0, Y: 0},
		{X: 2, Y: 0},
		{X: 4, Y: 0},
		{X: 2, Y: 0.3},
		{X: 2, Y: -0.3},
		{X: 1, Y: 3},
		{X: 3, Y: -3},
	}
	constraints := []Edge{{A: 0, B: 2}}
	r, err := Triangulate(points, constraints)
	if err != nil {
		t.Fatal(err)
	}
	if len(r.Unresolved) != 0 {
		t.Errorf("Unresolved = %v, want none", r.Unresolved)
	}
	if !r.HasEdge(0, 1) || !r.HasEdge(1, 2) {
		t.Error("constraint through point 1 is not split into (0, 1) and (1, 2)")
	}
	if r.HasEdge(0, 2) {
		t.Error("edge (0, 2) passes through point 1")
	}
}

func TestCrossingConstraints(t *testing.T) {
	points := []Point{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 2}, {X: 0, Y: 2}}
	r, err := Triangulate(points, []Edge{{A: 0, B: 2}, {A: 1, B: 3}})
	if err != nil {
		t.Fatal(err)
	}
	if !r.HasEdge(0, 2) {
		t.Error("first constraint (0, 2) is missing")
	}
	if want := []Edge{{A: 1, B: 3}}; !reflect.DeepEqual(r.Unresolved, want) {
		t.Errorf("Unresolved = %v, want %v", r.Unresolved, want)
	}
	if err := r.Validate(); err != nil {
		t.Error(err)
	}
}

func TestSkippedConstraints(t *testing.T) {
	points := []Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: 0}}
	constraints := []Edge{
		{A: 0, B: 0},
		{A: 0, B: 3},
		{A: 0, B: 9},
		{A: -1, B: 1},
		{A: 0, B: 1},
		{A: 1, B: 0},
		{A: 3, B: 1},
	}
	r, err := Triangulate(points, constraints)
	if err != nil {
		t.Fatal(err)
	}
	if len(r.Unresolved) != 0 {
		t.Errorf("Unresolved = %v, want none", r.Unresolved)
	}
	if len(r.Triangles) != 1 {
		t.Errorf("len(Triangles) = %d, want 1", len(r.Triangles))
	}
}

func TestRandom(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	points := randomPoints(rnd, 100, 1000)

	var constraints []Edge
	for len(constraints) < 10 {
		e := Edge{A: rnd.Intn(len(points)), B: rnd.Intn(len(points))}
		if e.A == e.B {
			continue
		}
		ok := true
		for _, c := range constraints {
			if e.sorted() == c.sorted() ||
				segmentsIntersect(points[e.A], points[e.B], points[c.A], points[c.B]) {
				ok = false
				break
			}
		}
		if ok {
			constraints = append(constraints, e)
		}
	}

	tr := NewTriangulator(Options{CheckMesh: true})
	tr.AddPoints(points...)
	for _, c := range constraints {
		tr.AddConstraint(c.A, c.B)
	}
	r, err := tr.Triangulate()
	if err != nil {
		t.Fatal(err)
	}
	if len(r.Unresolved) != 0 {
		t.Errorf("Unresolved = %v, want none", r.Unresolved)
	}
	if got, want := len(r.Triangles), 2*len(points)-2-hullSize(points); got != want {
		t.Errorf("len(Triangles) = %d, want %d", got, want)
	}
	checkResult(t, r, constraints)
}

func TestTriangleCount(t *testing.T) {
	rnd := rand.New(rand.NewSource(2))
	for _, n := range []int{3, 4, 10, 50, 200} {
		points := randomPoints(rnd, n, 1)
		r, err := Triangulate(points, nil)
		if err != nil {
			t.Fatal(err)
		}
		if got, want := len(r.Triangles), 2*n-2-hullSize(points); got != want {
			t.Errorf("n = %d: len(Triangles) = %d, want %d", n, got, want)
		}
		checkResult(t, r, nil)
	}
}

func TestThinPoints(t *testing.T) {
	// A long flat point set leaves pockets along the hull that have to be
	// closed after the super-triangle is gone.
	rnd := rand.New(rand.NewSource(3))
	points := make([]Point, 60)
	for i := range points {
		points[i] = Point{X: rnd.Float64() * 1000, Y: rnd.Float64()}
	}
	r, err := Triangulate(points, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := len(r.Triangles), 2*len(points)-2-hullSize(points); got != want {
		t.Errorf("len(Triangles) = %d, want %d", got, want)
	}
	checkResult(t, r, nil)
}

func TestNormalizationInvariance(t *testing.T) {
	rnd := rand.New(rand.NewSource(4))
	var points []Point
	for i := 0; i < 40; i++ {
		points = append(points, Point{X: float64(rnd.Intn(64)), Y: float64(rnd.Intn(64))})
	}
	moved := make([]Point, len(points))
	for i, p := range points {
		moved[i] = p.Scale(4).Add(Point{X: 16, Y: -32})
	}
	constraints := []Edge{{A: 0, B: 1}, {A: 2, B: 3}}

	r1, err := Triangulate(points, constraints)
	if err != nil {
		t.Fatal(err)
	}
	r2, err := Triangulate(moved, constraints)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(r1.Triangles, r2.Triangles) {
		t.Errorf("triangles differ:\n%v\n%v", r1.Triangles, r2.Triangles)
	}
	if !reflect.DeepEqual(r1.Adjacency, r2.Adjacency) {
		t.Error("adjacency differs")
	}
	if !reflect.DeepEqual(r1.Unresolved, r2.Unresolved) {
		t.Errorf("unresolved differ: %v, %v", r1.Unresolved, r2.Unresolved)
	}
}

func TestDegenerate(t *testing.T) {
	tests := []struct {
		name     string
		points   []Point
		distinct int
	}{
		{"empty", nil, 0},
		{"two points", []Point{{X: 0, Y: 0}, {X: 1, Y: 1}}, 0},
		{"duplicates", []Point{{X: 1, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 2}}, 0},
		{"collinear", []Point{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 2}, {X: 3, Y: 3}}, 4},
	}
	for _, tc := range tests {
		r, err := Triangulate(tc.points, []Edge{{A: 0, B: 1}})
		if err != nil {
			t.Errorf("%s: %v", tc.name, err)
			continue
		}
		if len(r.Triangles) != 0 {
			t.Errorf("%s: len(Triangles) = %d, want 0", tc.name, len(r.Triangles))
		}
		if len(r.Points) != tc.distinct {
			t.Errorf("%s: len(Points) = %d, want %d", tc.name, len(r.Points), tc.distinct)
		}
		if !r.Complete {
			t.Errorf("%s: Complete = false", tc.name)
		}
	}
}

func TestDedup(t *testing.T) {
	points := []Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 0}}
	r, err := Triangulate(points, nil)
	if err != nil {
		t.Fatal(err)
	}
	if want := []Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}; !reflect.DeepEqual(r.Points, want) {
		t.Errorf("Points = %v, want %v", r.Points, want)
	}
	if want := []int{0, 1, 0, 2, 1}; !reflect.DeepEqual(r.Remap, want) {
		t.Errorf("Remap = %v, want %v", r.Remap, want)
	}
	if len(r.Triangles) != 1 {
		t.Errorf("len(Triangles) = %d, want 1", len(r.Triangles))
	}
}

func TestMaxOperations(t *testing.T) {
	rnd := rand.New(rand.NewSource(5))
	points := randomPoints(rnd, 20, 10)
	constraints := []Edge{{A: 0, B: 1}}

	for _, tc := range []struct {
		ops      int
		complete bool
	}{
		{0, true},
		{5, false},
		{20, false},
		{21, true},
	} {
		tr := NewTriangulator(Options{MaxOperations: tc.ops, CheckMesh: true})
		tr.AddPoints(points...)
		for _, c := range constraints {
			tr.AddConstraint(c.A, c.B)
		}
		r, err := tr.Triangulate()
		if err != nil {
			t.Fatalf("MaxOperations %d: %v", tc.ops, err)
		}
		if r.Complete != tc.complete {
			t.Errorf("MaxOperations %d: Complete = %v, want %v", tc.ops, r.Complete, tc.complete)
		}
		if err := r.Validate(); err != nil {
			t.Errorf("MaxOperations %d: %v", tc.ops, err)
		}
	}
}

func TestTriangulatorReuse(t *testing.T) {
	tr := NewTriangulator(Options{})
	tr.AddPoints(Point{X: 0, Y: 0}, Point{X: 1, Y: 0}, Point{X: 0, Y: 1})
	r1, err := tr.Triangulate()
	if err != nil {
		t.Fatal(err)
	}
	r2, err := tr.Triangulate()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(r1, r2) {
		t.Error("repeated Triangulate calls differ")
	}

	tr.AddPoints(Point{X: 1, Y: 1})
	r3, err := tr.Triangulate()
	if err != nil {
		t.Fatal(err)
	}
	if len(r3.Triangles) != 2 {
		t.Errorf("len(Triangles) = %d, want 2", len(r3.Triangles))
	}
}
