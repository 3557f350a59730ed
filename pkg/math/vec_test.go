package math

import (
	gomath "math"
	"testing"
)

func TestVec2Add(t *testing.T) {
	a := Vec2{1, 2}
	b := Vec2{3, 4}
	got := a.Add(b)
	want := Vec2{4, 6}
	if got != want {
		t.Errorf("Vec2.Add() = %v, want %v", got, want)
	}
}

func TestVec2Length(t *testing.T) {
	v := Vec2{3, 4}
	got := v.Length()
	want := 5.0
	if got != want {
		t.Errorf("Vec2.Length() = %v, want %v", got, want)
	}
}

func TestVec2Perp(t *testing.T) {
	v := Vec2{1, 0}
	got := v.Perp()
	want := Vec2{0, 1}
	if got != want {
		t.Errorf("Vec2.Perp() = %v, want %v", got, want)
	}
	if d := v.Dot(got); d != 0 {
		t.Errorf("Perp not orthogonal, dot = %v", d)
	}
}

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3Normalize(t *testing.T) {
	v := Vec3{3, 4, 12}
	n := v.Normalize()
	l := n.Length()
	if l < 0.999999 || l > 1.000001 {
		t.Errorf("Vec3.Normalize().Length() = %v, want ~1", l)
	}
}

func TestVec3RotateY(t *testing.T) {
	v := Vec3{1, 2, 0}
	got := v.RotateY(gomath.Pi / 2)
	if got.Y != 2 {
		t.Errorf("RotateY changed Y: %v", got.Y)
	}
	if gomath.Abs(got.X) > 1e-9 || gomath.Abs(got.Z+1) > 1e-9 {
		t.Errorf("RotateY(pi/2) = %v, want ~{0,2,-1}", got)
	}
}

func TestSmoothstep(t *testing.T) {
	if got := Smoothstep(0); got != 0 {
		t.Errorf("Smoothstep(0) = %v, want 0", got)
	}
	if got := Smoothstep(1); got != 1 {
		t.Errorf("Smoothstep(1) = %v, want 1", got)
	}
	if got := Smoothstep(0.5); got != 0.5 {
		t.Errorf("Smoothstep(0.5) = %v, want 0.5", got)
	}
	if got := Smoothstep(-2); got != 0 {
		t.Errorf("Smoothstep(-2) = %v, want 0 (clamped)", got)
	}
}
