package astro

import (
	"math"
	"testing"
)

func vecClose(a, b Vec3, eps float64) bool {
	return math.Abs(a.X-b.X) <= eps && math.Abs(a.Y-b.Y) <= eps && math.Abs(a.Z-b.Z) <= eps
}

func TestVec3Norm(t *testing.T) {
	tests := []struct {
		name string
		v    Vec3
		want float64
	}{
		{"zero", Vec3{0, 0, 0}, 0},
		{"unit x", Vec3{1, 0, 0}, 1},
		{"3-4-5", Vec3{3, 4, 0}, 5},
		{"negative", Vec3{-3, -4, 0}, 5},
		{"3D", Vec3{1, 2, 2}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Norm(); math.Abs(got-tt.want) > 1e-10 {
				t.Errorf("Norm() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVec3Normalized(t *testing.T) {
	tests := []struct {
		name string
		v    Vec3
		want Vec3
	}{
		{"unit x", Vec3{5, 0, 0}, Vec3{1, 0, 0}},
		{"diagonal", Vec3{1, 1, 0}, Vec3{1 / math.Sqrt(2), 1 / math.Sqrt(2), 0}},
		{"zero", Vec3{0, 0, 0}, Vec3{0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Normalized(); !vecClose(got, tt.want, 1e-10) {
				t.Errorf("Normalized() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVec3CrossDot(t *testing.T) {
	x, y, z := Vec3{X: 1}, Vec3{Y: 1}, Vec3{Z: 1}
	if got := x.Cross(y); !vecClose(got, z, 1e-12) {
		t.Errorf("x × y = %v, want %v", got, z)
	}
	if got := x.Dot(y); got != 0 {
		t.Errorf("x · y = %v, want 0", got)
	}
	if got := (Vec3{1, 2, 3}).Dot(Vec3{4, 5, 6}); got != 32 {
		t.Errorf("Dot = %v, want 32", got)
	}
}

func TestVec3Lerp(t *testing.T) {
	a, b := Vec3{0, 0, 0}, Vec3{10, -4, 2}
	tests := []struct {
		t    float64
		want Vec3
	}{
		{0, a},
		{1, b},
		{0.5, Vec3{5, -2, 1}},
	}
	for _, tt := range tests {
		if got := a.Lerp(b, tt.t); !vecClose(got, tt.want, 1e-12) {
			t.Errorf("Lerp(%v) = %v, want %v", tt.t, got, tt.want)
		}
	}
}

func TestVec3RotateY(t *testing.T) {
	got := Vec3{X: 1}.RotateY(math.Pi / 2)
	if !vecClose(got, Vec3{Z: -1}, 1e-12) {
		t.Errorf("RotateY(pi/2) = %v, want (0,0,-1)", got)
	}
	if d := got.Norm(); math.Abs(d-1) > 1e-12 {
		t.Errorf("rotation changed length to %v", d)
	}
}

func TestProject_CenterAndCulling(t *testing.T) {
	cfg := DefaultProjectionConfig(80, 24)
	view := View{Eye: Vec3{0, 18, 28}, Target: Vec3{}}

	// The look-at point lands in the middle of the grid.
	p, ok := Project(Vec3{}, view, cfg)
	if !ok {
		t.Fatal("origin should be visible")
	}
	if math.Abs(p.X-40) > 1e-9 || math.Abs(p.Y-12) > 1e-9 {
		t.Errorf("origin projected to (%v,%v), want (40,12)", p.X, p.Y)
	}
	if !p.InBounds(cfg) {
		t.Error("origin should be in bounds")
	}

	// Points behind the eye are culled.
	if _, ok := Project(Vec3{0, 20, 40}, view, cfg); ok {
		t.Error("point behind camera should not project")
	}
}

func TestProject_Orientation(t *testing.T) {
	cfg := DefaultProjectionConfig(80, 24)
	view := View{Eye: Vec3{0, 0, 10}, Target: Vec3{}}

	right, ok := Project(Vec3{X: 1}, view, cfg)
	if !ok || right.X <= 40 {
		t.Errorf("+X should project right of center, got %v", right.X)
	}
	up, ok := Project(Vec3{Y: 1}, view, cfg)
	if !ok || up.Y >= 12 {
		t.Errorf("+Y should project above center, got %v", up.Y)
	}

	near, _ := Project(Vec3{X: 1, Z: 5}, view, cfg)
	far, _ := Project(Vec3{X: 1, Z: -5}, view, cfg)
	if near.Scale <= far.Scale {
		t.Errorf("nearer points should scale larger: near=%v far=%v", near.Scale, far.Scale)
	}
}

func TestProject_ZeroGrid(t *testing.T) {
	if _, ok := Project(Vec3{}, View{Eye: Vec3{Z: 5}}, ProjectionConfig{}); ok {
		t.Error("zero-sized grid should not project")
	}
}
