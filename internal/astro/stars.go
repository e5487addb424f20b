package astro

import (
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/litescript/ls-cosmos/internal/rng"
)

// Star is one background point on the celestial shell.
type Star struct {
	Pos          Vec3
	Opacity      float64 // Base brightness, 0.3-1.0
	TwinkleSpeed float64 // Noise cycles per second
}

// StarFieldConfig controls procedural starfield generation.
type StarFieldConfig struct {
	Count     int
	MinRadius float64
	MaxRadius float64
	NoiseSeed int64
}

// DefaultStarFieldConfig returns the 300-star shell between radius 50 and 100.
func DefaultStarFieldConfig() StarFieldConfig {
	return StarFieldConfig{
		Count:     300,
		MinRadius: 50,
		MaxRadius: 100,
		NoiseSeed: 1,
	}
}

// StarField is a fixed set of stars plus the noise that drives their twinkle.
type StarField struct {
	Stars []Star
	noise opensimplex.Noise
}

// GenerateStarField scatters stars uniformly over a spherical shell.
func GenerateStarField(src rng.Source, cfg StarFieldConfig) *StarField {
	stars := make([]Star, cfg.Count)
	span := cfg.MaxRadius - cfg.MinRadius
	for i := range stars {
		theta := src.Float64() * 2 * math.Pi
		phi := math.Acos(2*src.Float64() - 1)
		r := cfg.MinRadius + src.Float64()*span
		stars[i] = Star{
			Pos: Vec3{
				X: r * math.Sin(phi) * math.Cos(theta),
				Y: r * math.Sin(phi) * math.Sin(theta),
				Z: r * math.Cos(phi),
			},
			Opacity:      0.3 + src.Float64()*0.7,
			TwinkleSpeed: 0.5 + src.Float64()*2,
		}
	}
	return &StarField{
		Stars: stars,
		noise: opensimplex.NewNormalized(cfg.NoiseSeed),
	}
}

// Brightness returns star i's brightness at time t seconds, in [0, 1].
// Stars breathe between half and full base opacity along a smooth noise curve.
func (f *StarField) Brightness(i int, t float64) float64 {
	if i < 0 || i >= len(f.Stars) {
		return 0
	}
	s := f.Stars[i]
	n := f.noise.Eval2(float64(i)*13.37, t*s.TwinkleSpeed)
	return s.Opacity * (0.5 + 0.5*n)
}

// Subset returns every nth star, used to thin the field at lower quality.
func (f *StarField) Subset(n int) []int {
	if n < 1 {
		n = 1
	}
	idx := make([]int, 0, len(f.Stars)/n+1)
	for i := 0; i < len(f.Stars); i += n {
		idx = append(idx, i)
	}
	return idx
}
