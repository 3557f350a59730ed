package spline

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/worldforge/pkg/math"
)

func TestStraightLineLength(t *testing.T) {
	s := New([]math.Vec2{{X: 0, Y: 0}, {X: 100, Y: 0}})
	if got := s.Length(); gomath.Abs(got-100) > 1e-6 {
		t.Errorf("Length() = %v, want 100", got)
	}
}

func TestAtInterpolatesWaypoints(t *testing.T) {
	s := New([]math.Vec2{{X: 0, Y: 0}, {X: 100, Y: 0}})
	mid := s.At(50)
	if gomath.Abs(mid.X-50) > 1e-6 || gomath.Abs(mid.Y) > 1e-6 {
		t.Errorf("At(50) = %v, want (50,0)", mid)
	}
}

func TestAtClampsToEndpoints(t *testing.T) {
	s := New([]math.Vec2{{X: 0, Y: 0}, {X: 100, Y: 0}})
	if got := s.At(-10); got != (math.Vec2{X: 0, Y: 0}) {
		t.Errorf("At(-10) = %v, want start", got)
	}
	end := s.At(1e9)
	if gomath.Abs(end.X-100) > 1e-6 {
		t.Errorf("At(beyond) = %v, want end", end)
	}
}

func TestCurvePassesThroughControlPoints(t *testing.T) {
	pts := []math.Vec2{{X: 0, Y: 0}, {X: 100, Y: 50}, {X: 200, Y: 0}, {X: 300, Y: 80}}
	s := New(pts)

	// Each control point must lie on the curve (within the resolution of
	// the arc table).
	for _, p := range pts {
		best := 1e18
		s.Walk(1, func(_ float64, q math.Vec2) {
			if d := p.Distance(q); d < best {
				best = d
			}
		})
		if best > 1.5 {
			t.Errorf("control point %v is %.2fm from the curve", p, best)
		}
	}
}

func TestConstantSpeedSampling(t *testing.T) {
	// Unevenly spaced control points must still produce evenly spaced
	// samples along the arc.
	s := New([]math.Vec2{{X: 0, Y: 0}, {X: 60, Y: 0}, {X: 300, Y: 0}})
	var prev math.Vec2
	first := true
	s.Walk(10, func(d float64, p math.Vec2) {
		if !first && d > 0 && d < s.Length() {
			gap := p.Distance(prev)
			if gap < 8 || gap > 12 {
				t.Fatalf("uneven arc sampling: gap %.2fm at d=%.1f", gap, d)
			}
		}
		prev = p
		first = false
	})
}

func TestTangentDirection(t *testing.T) {
	s := New([]math.Vec2{{X: 0, Y: 0}, {X: 100, Y: 0}})
	tan := s.Tangent(50)
	if gomath.Abs(tan.X-1) > 1e-6 || gomath.Abs(tan.Y) > 1e-6 {
		t.Errorf("Tangent(50) = %v, want (1,0)", tan)
	}
}

func TestWalkCoversEndpoints(t *testing.T) {
	s := New([]math.Vec2{{X: 0, Y: 0}, {X: 95, Y: 0}})
	var ds []float64
	s.Walk(10, func(d float64, _ math.Vec2) { ds = append(ds, d) })
	if ds[0] != 0 {
		t.Errorf("Walk first d = %v, want 0", ds[0])
	}
	if last := ds[len(ds)-1]; gomath.Abs(last-s.Length()) > 1e-9 {
		t.Errorf("Walk last d = %v, want %v", last, s.Length())
	}
}
