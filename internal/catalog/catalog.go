// Package catalog holds the static planet and zodiac tables that drive the
// scene and every content module.
package catalog

import (
	"embed"
	"errors"
	"fmt"
	"math"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var dataFS embed.FS

// Element is one of the four classical elements a sign belongs to.
type Element string

const (
	Fire  Element = "fire"
	Earth Element = "earth"
	Air   Element = "air"
	Water Element = "water"
)

// Sign is a zodiac sign.
type Sign struct {
	ID      string  `yaml:"id" json:"id"`
	Name    string  `yaml:"name" json:"name"`
	Element Element `yaml:"element" json:"element"`
	Symbol  string  `yaml:"symbol" json:"symbol"`
	Dates   string  `yaml:"dates" json:"dates"`
}

// Feature is one tab inside a planet's content panel.
type Feature struct {
	ID          string    `yaml:"id"`
	Title       string    `yaml:"title"`
	Description string    `yaml:"description"`
	Icon        string    `yaml:"icon"`
	Gradient    [2]string `yaml:"gradient"`
}

// Planet describes one orbiting body and the module it opens.
type Planet struct {
	ID          string    `yaml:"id"`
	Name        string    `yaml:"name"`
	Label       string    `yaml:"label"`
	Module      string    `yaml:"module"`
	Color       string    `yaml:"color"`
	Accent      string    `yaml:"accent"`
	OrbitRadius float64   `yaml:"orbit_radius"`
	OrbitSpeed  float64   `yaml:"orbit_speed"` // radians per second
	Size        float64   `yaml:"size"`
	InitialPi   float64   `yaml:"initial_angle"`
	Description string    `yaml:"description"`
	Features    []Feature `yaml:"features"`
}

// InitialAngle returns the orbital phase at t=0 in radians.
func (p Planet) InitialAngle() float64 {
	return p.InitialPi * math.Pi
}

var (
	ErrUnknownPlanet = errors.New("unknown planet")
	ErrUnknownSign   = errors.New("unknown sign")
)

// Catalog is the parsed, validated content of the embedded tables.
type Catalog struct {
	planets []Planet
	signs   []Sign

	planetIdx map[string]int
	signIdx   map[string]int
}

// Load parses and validates the embedded planet and zodiac tables.
func Load() (*Catalog, error) {
	var c Catalog
	if err := decode("data/planets.yaml", &c.planets); err != nil {
		return nil, err
	}
	if err := decode("data/zodiac.yaml", &c.signs); err != nil {
		return nil, err
	}
	if err := c.index(); err != nil {
		return nil, err
	}
	return &c, nil
}

func decode(name string, out any) error {
	raw, err := dataFS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}

func (c *Catalog) index() error {
	if len(c.signs) != 12 {
		return fmt.Errorf("zodiac has %d signs, want 12", len(c.signs))
	}
	c.planetIdx = make(map[string]int, len(c.planets))
	for i, p := range c.planets {
		if _, dup := c.planetIdx[p.ID]; dup {
			return fmt.Errorf("duplicate planet id %q", p.ID)
		}
		if len(p.Features) != 3 {
			return fmt.Errorf("planet %q has %d features, want 3", p.ID, len(p.Features))
		}
		c.planetIdx[p.ID] = i
	}
	c.signIdx = make(map[string]int, len(c.signs))
	for i, s := range c.signs {
		if _, dup := c.signIdx[s.ID]; dup {
			return fmt.Errorf("duplicate sign id %q", s.ID)
		}
		switch s.Element {
		case Fire, Earth, Air, Water:
		default:
			return fmt.Errorf("sign %q has unknown element %q", s.ID, s.Element)
		}
		c.signIdx[s.ID] = i
	}
	return nil
}

// Planets returns the planets in orbit order, innermost first.
func (c *Catalog) Planets() []Planet {
	out := make([]Planet, len(c.planets))
	copy(out, c.planets)
	return out
}

// Planet looks up a planet by id.
func (c *Catalog) Planet(id string) (Planet, error) {
	i, ok := c.planetIdx[id]
	if !ok {
		return Planet{}, fmt.Errorf("%w: %q", ErrUnknownPlanet, id)
	}
	return c.planets[i], nil
}

// PlanetIndex returns the orbit-order index of a planet, or -1.
func (c *Catalog) PlanetIndex(id string) int {
	if i, ok := c.planetIdx[id]; ok {
		return i
	}
	return -1
}

// Signs returns the zodiac in canonical order, Aries first.
func (c *Catalog) Signs() []Sign {
	out := make([]Sign, len(c.signs))
	copy(out, c.signs)
	return out
}

// SignAt returns the sign at a zodiac index, wrapping modulo 12.
func (c *Catalog) SignAt(i int) Sign {
	n := len(c.signs)
	return c.signs[((i%n)+n)%n]
}

// Sign looks up a sign by id.
func (c *Catalog) Sign(id string) (Sign, error) {
	i, ok := c.signIdx[id]
	if !ok {
		return Sign{}, fmt.Errorf("%w: %q", ErrUnknownSign, id)
	}
	return c.signs[i], nil
}

// SignIndex returns the zodiac index of a sign, or -1.
func (c *Catalog) SignIndex(id string) int {
	if i, ok := c.signIdx[id]; ok {
		return i
	}
	return -1
}

// ModuleFor returns the content module name a planet opens.
func (c *Catalog) ModuleFor(planetID string) (string, error) {
	p, err := c.Planet(planetID)
	if err != nil {
		return "", err
	}
	return p.Module, nil
}

var (
	defaultOnce sync.Once
	defaultCat  *Catalog
)

// Default returns the process-wide catalog. The embedded tables are
// validated by tests, so a load failure here is a build defect.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Load()
		if err != nil {
			panic(fmt.Sprintf("catalog: %v", err))
		}
		defaultCat = c
	})
	return defaultCat
}
