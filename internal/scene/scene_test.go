package scene

import (
	"math"
	"testing"
	"time"

	"github.com/litescript/ls-cosmos/internal/astro"
	"github.com/litescript/ls-cosmos/internal/camera"
	"github.com/litescript/ls-cosmos/internal/catalog"
	"github.com/litescript/ls-cosmos/internal/rng"
	"github.com/litescript/ls-cosmos/internal/state"
)

func near(a, b astro.Vec3) bool {
	return a.Dist(b) < 1e-9
}

func newScene(t *testing.T) *Scene {
	t.Helper()
	cat, err := catalog.Load()
	if err != nil {
		t.Fatalf("catalog.Load: %v", err)
	}
	stars := astro.GenerateStarField(rng.New(1), astro.DefaultStarFieldConfig())
	return New(cat, stars)
}

func TestOrbitPosition(t *testing.T) {
	p := catalog.Planet{OrbitRadius: 4, OrbitSpeed: math.Pi / 2}

	tests := []struct {
		elapsed time.Duration
		want    astro.Vec3
	}{
		{0, astro.Vec3{X: 4}},
		{time.Second, astro.Vec3{Z: 4}},
		{2 * time.Second, astro.Vec3{X: -4}},
		{4 * time.Second, astro.Vec3{X: 4}},
	}
	for _, tt := range tests {
		if got := OrbitPosition(p, tt.elapsed); !near(got, tt.want) {
			t.Errorf("OrbitPosition(%v) = %+v, want %+v", tt.elapsed, got, tt.want)
		}
	}
}

func TestOrbitPosition_StaysOnRing(t *testing.T) {
	p := catalog.Planet{OrbitRadius: 7, OrbitSpeed: 0.25, InitialPi: 1}
	for s := 0; s < 100; s += 7 {
		pos := OrbitPosition(p, time.Duration(s)*time.Second)
		if r := pos.Norm(); math.Abs(r-7) > 1e-9 {
			t.Errorf("radius at %ds = %v, want 7", s, r)
		}
		if pos.Y != 0 {
			t.Errorf("Y at %ds = %v, want 0", s, pos.Y)
		}
	}
}

func TestScene_InitialPositions(t *testing.T) {
	s := newScene(t)

	tests := []struct {
		id   string
		want astro.Vec3
	}{
		{"mercury", astro.Vec3{X: 4}},
		{"venus", astro.Vec3{Z: 5.5}},
		{"mars", astro.Vec3{X: -7}},
	}
	for _, tt := range tests {
		got, ok := s.Position(tt.id)
		if !ok {
			t.Fatalf("Position(%q) not found", tt.id)
		}
		if !near(got, tt.want) {
			t.Errorf("Position(%q) = %+v, want %+v", tt.id, got, tt.want)
		}
	}
	if _, ok := s.Position("pluto"); ok {
		t.Error("Position(pluto) should not be found")
	}
}

func TestScene_Advance(t *testing.T) {
	s := newScene(t)
	before, _ := s.Position("mercury")

	s.Advance(time.Second)
	s.Advance(-time.Second)

	if s.Elapsed() != time.Second {
		t.Errorf("Elapsed = %v, want 1s", s.Elapsed())
	}
	after, _ := s.Position("mercury")
	if near(before, after) {
		t.Error("mercury did not move")
	}
}

func TestScene_PlanetAtWraps(t *testing.T) {
	s := newScene(t)
	n := s.Len()
	if n != 7 {
		t.Fatalf("Len = %d, want 7", n)
	}
	if s.PlanetAt(0).ID != s.PlanetAt(n).ID {
		t.Error("PlanetAt(n) should wrap to 0")
	}
	if s.PlanetAt(-1).ID != s.PlanetAt(n-1).ID {
		t.Error("PlanetAt(-1) should wrap to the last planet")
	}
	if got := s.Index(s.PlanetAt(3).ID); got != 3 {
		t.Errorf("Index = %d, want 3", got)
	}
	if got := s.Index("pluto"); got != -1 {
		t.Errorf("Index(pluto) = %d, want -1", got)
	}
}

func TestScene_Target(t *testing.T) {
	s := newScene(t)

	if s.Target("pluto") != nil {
		t.Error("Target(pluto) should be nil")
	}

	var tgt camera.Target = s.Target("venus")
	pos, ok := tgt.Position()
	if !ok || !near(pos, astro.Vec3{Z: 5.5}) {
		t.Errorf("venus target = %+v, %v", pos, ok)
	}

	s.Advance(2 * time.Second)
	moved, _ := tgt.Position()
	if near(pos, moved) {
		t.Error("target did not track the orbit")
	}

	s.Close()
	if _, ok := tgt.Position(); ok {
		t.Error("target should report gone after Close")
	}
}

func TestScene_Bodies(t *testing.T) {
	s := newScene(t)
	bodies := s.Bodies()
	if len(bodies) != s.Len() {
		t.Fatalf("len(Bodies) = %d, want %d", len(bodies), s.Len())
	}
	for i, b := range bodies {
		if b.Planet.ID != s.PlanetAt(i).ID {
			t.Errorf("Bodies[%d] = %q, want %q", i, b.Planet.ID, s.PlanetAt(i).ID)
		}
	}
	if s.Stars() == nil || len(s.Stars().Stars) != 300 {
		t.Error("scene should carry the 300-star field")
	}
}

func TestQualityScaling(t *testing.T) {
	tests := []struct {
		q        state.Quality
		stride   int
		segments int
	}{
		{state.QualityHigh, 1, 128},
		{state.QualityMedium, 2, 96},
		{state.QualityLow, 4, 48},
	}
	for _, tt := range tests {
		if got := StarStride(tt.q); got != tt.stride {
			t.Errorf("StarStride(%v) = %d, want %d", tt.q, got, tt.stride)
		}
		if got := RingSegments(tt.q); got != tt.segments {
			t.Errorf("RingSegments(%v) = %d, want %d", tt.q, got, tt.segments)
		}
	}
}
