// Package horoscope produces the daily reading for a sign.
package horoscope

import (
	"embed"
	"fmt"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/litescript/ls-cosmos/internal/catalog"
)

//go:embed data/horoscope.yaml
var dataFS embed.FS

// Text is one daily reading variant.
type Text struct {
	Title    string `yaml:"title" json:"title"`
	Overview string `yaml:"overview" json:"overview"`
	Love     string `yaml:"love" json:"love"`
	Career   string `yaml:"career" json:"career"`
	Health   string `yaml:"health" json:"health"`
	Advice   string `yaml:"advice" json:"advice"`
}

// Aspects are the six daily life-area scores, each in [25, 100].
type Aspects struct {
	Love   int `yaml:"love" json:"love"`
	Career int `yaml:"career" json:"career"`
	Health int `yaml:"health" json:"health"`
	Luck   int `yaml:"luck" json:"luck"`
	Spirit int `yaml:"spirit" json:"spirit"`
	Energy int `yaml:"energy" json:"energy"`
}

// LuckyColor is the color of the day for an element.
type LuckyColor struct {
	Name  string `yaml:"name" json:"name"`
	Emoji string `yaml:"emoji" json:"emoji"`
}

// ElementStyle is the presentation for an element.
type ElementStyle struct {
	Label      string     `yaml:"label" json:"label"`
	Icon       string     `yaml:"icon" json:"icon"`
	Gradient   [2]string  `yaml:"gradient" json:"gradient"`
	LuckyColor LuckyColor `yaml:"lucky_color" json:"lucky_color"`
	Readings   []Text     `yaml:"readings" json:"-"`
}

// Affinity is a sign that resonates with the reading's sign.
type Affinity struct {
	Sign     catalog.Sign `json:"sign"`
	Strength int          `json:"strength"`
}

// Reading is the full daily horoscope.
type Reading struct {
	Sign        catalog.Sign `json:"sign"`
	Date        string       `json:"date"`
	Element     string       `json:"element"`
	Text        Text         `json:"text"`
	Aspects     Aspects      `json:"aspects"`
	Affinities  []Affinity   `json:"affinities"`
	LuckyNumber int          `json:"lucky_number"`
	LuckyColor  LuckyColor   `json:"lucky_color"`
}

type affinityDef struct {
	Sign     string `yaml:"sign"`
	Strength int    `yaml:"strength"`
}

type tables struct {
	Elements   map[catalog.Element]ElementStyle `yaml:"elements"`
	Aspects    map[string]Aspects               `yaml:"aspects"`
	Affinities map[string][]affinityDef         `yaml:"affinities"`
}

// Horoscope computes daily readings.
type Horoscope struct {
	cat *catalog.Catalog
	t   tables
}

// New loads the embedded reading tables.
func New(cat *catalog.Catalog) (*Horoscope, error) {
	raw, err := dataFS.ReadFile("data/horoscope.yaml")
	if err != nil {
		return nil, fmt.Errorf("read horoscope tables: %w", err)
	}
	var t tables
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return nil, fmt.Errorf("parse horoscope tables: %w", err)
	}
	for _, s := range cat.Signs() {
		if len(t.Elements[s.Element].Readings) == 0 {
			return nil, fmt.Errorf("horoscope tables: no readings for %s", s.Element)
		}
		if _, ok := t.Aspects[s.ID]; !ok {
			return nil, fmt.Errorf("horoscope tables: no aspects for %s", s.ID)
		}
		for _, a := range t.Affinities[s.ID] {
			if _, err := cat.Sign(a.Sign); err != nil {
				return nil, fmt.Errorf("horoscope tables: %s affinity: %w", s.ID, err)
			}
		}
	}
	return &Horoscope{cat: cat, t: t}, nil
}

// Element returns the presentation for an element.
func (h *Horoscope) Element(e catalog.Element) ElementStyle {
	return h.t.Elements[e]
}

// Daily returns the reading for a sign on the given calendar date.
func (h *Horoscope) Daily(signID string, date time.Time) (Reading, error) {
	sign, err := h.cat.Sign(signID)
	if err != nil {
		return Reading{}, err
	}
	style := h.t.Elements[sign.Element]

	affinities := make([]Affinity, 0, len(h.t.Affinities[sign.ID]))
	for _, a := range h.t.Affinities[sign.ID] {
		other, _ := h.cat.Sign(a.Sign)
		affinities = append(affinities, Affinity{Sign: other, Strength: a.Strength})
	}

	return Reading{
		Sign:        sign,
		Date:        date.Format("2006-01-02"),
		Element:     style.Label,
		Text:        style.Readings[date.YearDay()%len(style.Readings)],
		Aspects:     ShiftAspects(h.t.Aspects[sign.ID], date.Day()),
		Affinities:  affinities,
		LuckyNumber: LuckyNumber(sign.ID, date.Day()),
		LuckyColor:  style.LuckyColor,
	}, nil
}

// ShiftAspects moves each baseline by the day of month, alternating
// direction per area, and clamps to [25, 100].
func ShiftAspects(base Aspects, dayOfMonth int) Aspects {
	s := dayOfMonth % 10
	return Aspects{
		Love:   clamp(base.Love + s - 5),
		Career: clamp(base.Career - s + 3),
		Health: clamp(base.Health + s - 4),
		Luck:   clamp(base.Luck - s + 6),
		Spirit: clamp(base.Spirit + s - 2),
		Energy: clamp(base.Energy - s + 4),
	}
}

func clamp(v int) int {
	return max(25, min(100, v))
}

// LuckyNumber hashes the sign id with the day of month into 1..99.
func LuckyNumber(signID string, dayOfMonth int) int {
	sum := 0
	for _, r := range signID {
		sum += int(r)
	}
	return (sum+dayOfMonth)%99 + 1
}

var (
	defaultOnce sync.Once
	defaultH    *Horoscope
)

// Default returns a horoscope over the default catalog.
func Default() *Horoscope {
	defaultOnce.Do(func() {
		h, err := New(catalog.Default())
		if err != nil {
			panic(fmt.Sprintf("horoscope: %v", err))
		}
		defaultH = h
	})
	return defaultH
}

// Daily returns the reading for a sign using the default tables.
func Daily(signID string, date time.Time) (Reading, error) {
	return Default().Daily(signID, date)
}
