// Package spline implements Catmull-Rom splines with arc-length
// parameterization, used to lay roads and rivers over the terrain.
package spline

import (
	"sort"

	"github.com/Faultbox/worldforge/pkg/math"
)

// samplesPerSegment controls the resolution of the arc-length table.
// Sampling through the table keeps point density along the curve
// independent of control-point spacing.
const samplesPerSegment = 24

// Spline is a Catmull-Rom curve through ground-plane control points with a
// precomputed arc-length table for constant-speed sampling. Immutable after
// construction.
type Spline struct {
	points  []math.Vec2
	samples []math.Vec2 // fine polyline approximation
	arc     []float64   // cumulative length at each sample
	length  float64
}

// New builds a spline through the given waypoints. The curve interpolates
// every waypoint; endpoints are clamped by duplicating the first and last
// control points. At least two waypoints are required; with exactly two the
// curve degenerates to a straight segment.
func New(waypoints []math.Vec2) *Spline {
	s := &Spline{points: waypoints}

	segments := len(waypoints) - 1
	s.samples = make([]math.Vec2, 0, segments*samplesPerSegment+1)
	s.arc = make([]float64, 0, segments*samplesPerSegment+1)

	s.samples = append(s.samples, waypoints[0])
	s.arc = append(s.arc, 0)

	for seg := 0; seg < segments; seg++ {
		p0 := s.control(seg - 1)
		p1 := s.control(seg)
		p2 := s.control(seg + 1)
		p3 := s.control(seg + 2)

		for i := 1; i <= samplesPerSegment; i++ {
			t := float64(i) / samplesPerSegment
			p := catmullRom(p0, p1, p2, p3, t)
			prev := s.samples[len(s.samples)-1]
			s.length += p.Distance(prev)
			s.samples = append(s.samples, p)
			s.arc = append(s.arc, s.length)
		}
	}
	return s
}

// control returns the control point for index i, clamping past the ends.
func (s *Spline) control(i int) math.Vec2 {
	if i < 0 {
		i = 0
	}
	if i >= len(s.points) {
		i = len(s.points) - 1
	}
	return s.points[i]
}

// catmullRom evaluates the uniform Catmull-Rom basis.
func catmullRom(p0, p1, p2, p3 math.Vec2, t float64) math.Vec2 {
	t2 := t * t
	t3 := t2 * t
	return math.Vec2{
		X: 0.5 * (2*p1.X + (p2.X-p0.X)*t +
			(2*p0.X-5*p1.X+4*p2.X-p3.X)*t2 +
			(3*p1.X-p0.X-3*p2.X+p3.X)*t3),
		Y: 0.5 * (2*p1.Y + (p2.Y-p0.Y)*t +
			(2*p0.Y-5*p1.Y+4*p2.Y-p3.Y)*t2 +
			(3*p1.Y-p0.Y-3*p2.Y+p3.Y)*t3),
	}
}

// Length returns the total arc length in meters.
func (s *Spline) Length() float64 {
	return s.length
}

// At returns the point at arc distance d from the start. Distances outside
// [0, Length] clamp to the endpoints.
func (s *Spline) At(d float64) math.Vec2 {
	if d <= 0 {
		return s.samples[0]
	}
	if d >= s.length {
		return s.samples[len(s.samples)-1]
	}

	i := sort.SearchFloat64s(s.arc, d)
	if i == 0 {
		return s.samples[0]
	}
	span := s.arc[i] - s.arc[i-1]
	if span == 0 {
		return s.samples[i]
	}
	t := (d - s.arc[i-1]) / span
	a, b := s.samples[i-1], s.samples[i]
	return math.Vec2{
		X: math.Lerp(a.X, b.X, t),
		Y: math.Lerp(a.Y, b.Y, t),
	}
}

// Tangent returns the unit direction of travel at arc distance d.
func (s *Spline) Tangent(d float64) math.Vec2 {
	const h = 0.5
	a := s.At(d - h)
	b := s.At(d + h)
	t := b.Sub(a)
	if t.Length() == 0 {
		// Degenerate (coincident waypoints); fall back to +X.
		return math.Vec2{X: 1}
	}
	return t.Normalize()
}

// Walk invokes fn at every arc-length multiple of step along the curve,
// including both endpoints. Sampling is constant-speed regardless of
// control-point spacing.
func (s *Spline) Walk(step float64, fn func(d float64, p math.Vec2)) {
	if step <= 0 {
		step = 1
	}
	for d := 0.0; d < s.length; d += step {
		fn(d, s.At(d))
	}
	fn(s.length, s.At(s.length))
}
