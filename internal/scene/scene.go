// Package scene tracks the live orbital positions of the planets and the
// background starfield.
package scene

import (
	"math"
	"time"

	"github.com/litescript/ls-cosmos/internal/astro"
	"github.com/litescript/ls-cosmos/internal/camera"
	"github.com/litescript/ls-cosmos/internal/catalog"
	"github.com/litescript/ls-cosmos/internal/state"
)

// OrbitPosition returns where p sits on the orbital (XZ) plane after elapsed.
func OrbitPosition(p catalog.Planet, elapsed time.Duration) astro.Vec3 {
	angle := astro.NormalizeAngle(p.InitialAngle() + p.OrbitSpeed*elapsed.Seconds())
	return astro.Vec3{
		X: math.Cos(angle) * p.OrbitRadius,
		Y: 0,
		Z: math.Sin(angle) * p.OrbitRadius,
	}
}

// Body is a planet with its current position.
type Body struct {
	Planet catalog.Planet
	Pos    astro.Vec3
}

// Scene owns the orbital clock. It runs on the render loop and is not safe
// for concurrent use.
type Scene struct {
	planets []catalog.Planet
	index   map[string]int
	stars   *astro.StarField
	elapsed time.Duration
	closed  bool
}

// New builds a scene over the catalog's planets.
func New(cat *catalog.Catalog, stars *astro.StarField) *Scene {
	planets := cat.Planets()
	index := make(map[string]int, len(planets))
	for i, p := range planets {
		index[p.ID] = i
	}
	return &Scene{planets: planets, index: index, stars: stars}
}

// Advance moves the orbital clock forward.
func (s *Scene) Advance(dt time.Duration) {
	if dt > 0 {
		s.elapsed += dt
	}
}

// Elapsed returns the orbital clock.
func (s *Scene) Elapsed() time.Duration {
	return s.elapsed
}

// Stars returns the background starfield, which may be nil.
func (s *Scene) Stars() *astro.StarField {
	return s.stars
}

// Len returns the number of planets.
func (s *Scene) Len() int {
	return len(s.planets)
}

// PlanetAt returns the planet at index i, wrapping in both directions.
func (s *Scene) PlanetAt(i int) catalog.Planet {
	n := len(s.planets)
	return s.planets[((i%n)+n)%n]
}

// Index returns the position of id in orbit order, or -1.
func (s *Scene) Index(id string) int {
	if i, ok := s.index[id]; ok {
		return i
	}
	return -1
}

// Position returns the live position of planet id.
func (s *Scene) Position(id string) (astro.Vec3, bool) {
	i, ok := s.index[id]
	if !ok || s.closed {
		return astro.Vec3{}, false
	}
	return OrbitPosition(s.planets[i], s.elapsed), true
}

// Bodies returns every planet with its current position, in orbit order.
func (s *Scene) Bodies() []Body {
	out := make([]Body, len(s.planets))
	for i, p := range s.planets {
		out[i] = Body{Planet: p, Pos: OrbitPosition(p, s.elapsed)}
	}
	return out
}

// Target returns a live handle for the camera to follow, or nil for an
// unknown planet.
func (s *Scene) Target(id string) camera.Target {
	if _, ok := s.index[id]; !ok {
		return nil
	}
	return target{scene: s, id: id}
}

// Close marks the scene torn down. Outstanding targets report the planet
// gone, which ends any camera follow.
func (s *Scene) Close() {
	s.closed = true
}

type target struct {
	scene *Scene
	id    string
}

func (t target) Position() (astro.Vec3, bool) {
	return t.scene.Position(t.id)
}

// StarStride returns how sparsely to draw the starfield at quality q.
func StarStride(q state.Quality) int {
	switch q {
	case state.QualityMedium:
		return 2
	case state.QualityLow:
		return 4
	}
	return 1
}

// RingSegments returns the orbit ring resolution at quality q.
func RingSegments(q state.Quality) int {
	switch q {
	case state.QualityMedium:
		return 96
	case state.QualityLow:
		return 48
	}
	return 128
}
