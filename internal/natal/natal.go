// Package natal derives a symbolic birth chart from a date and time.
//
// Placements are arithmetic over the zodiac order, not ephemeris positions,
// and the same input always yields the same chart.
package natal

import (
	"embed"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/litescript/ls-cosmos/internal/catalog"
)

//go:embed data/natal.yaml
var dataFS embed.FS

var (
	ErrInvalidDate = errors.New("natal: invalid birth date")
	ErrInvalidTime = errors.New("natal: invalid birth time")
)

// Placement is a planet in a sign.
type Placement struct {
	Name     string       `json:"name"`
	Icon     string       `json:"icon"`
	Sign     catalog.Sign `json:"sign"`
	Meaning  string       `json:"meaning"`
	Analysis string       `json:"analysis"`
}

// House is one of the twelve houses with the sign on its cusp.
type House struct {
	Number      int          `json:"number"`
	Name        string       `json:"name"`
	Sign        catalog.Sign `json:"sign"`
	Description string       `json:"description"`
	Analysis    string       `json:"analysis"`
	Keyword     string       `json:"keyword"`
}

// Chart is a derived natal chart.
type Chart struct {
	Sun       catalog.Sign `json:"sun"`
	Moon      catalog.Sign `json:"moon"`
	Ascendant catalog.Sign `json:"ascendant"`
	Planets   []Placement  `json:"planets"`
	Houses    []House      `json:"houses"`
}

type planetDef struct {
	Name     string            `yaml:"name"`
	Icon     string            `yaml:"icon"`
	Offset   int               `yaml:"offset"`
	Template string            `yaml:"template"`
	Traits   map[string]string `yaml:"traits"`
}

type houseDef struct {
	Number      int    `yaml:"number"`
	Name        string `yaml:"name"`
	Keyword     string `yaml:"keyword"`
	Description string `yaml:"description"`
}

type tables struct {
	Planets        []planetDef                `yaml:"planets"`
	Houses         []houseDef                 `yaml:"houses"`
	HouseAnalysis  string                     `yaml:"house_analysis"`
	ElementQuality map[catalog.Element]string `yaml:"element_quality"`
	BigThree       map[string]string          `yaml:"big_three"`
}

// Deriver computes charts against a zodiac catalog.
type Deriver struct {
	cat *catalog.Catalog
	t   tables
}

// NewDeriver loads the embedded planet and house tables.
func NewDeriver(cat *catalog.Catalog) (*Deriver, error) {
	raw, err := dataFS.ReadFile("data/natal.yaml")
	if err != nil {
		return nil, fmt.Errorf("read natal tables: %w", err)
	}
	var t tables
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return nil, fmt.Errorf("parse natal tables: %w", err)
	}
	if len(t.Planets) != 5 {
		return nil, fmt.Errorf("natal tables: %d planets, want 5", len(t.Planets))
	}
	if len(t.Houses) != 12 {
		return nil, fmt.Errorf("natal tables: %d houses, want 12", len(t.Houses))
	}
	for _, p := range t.Planets {
		for _, s := range cat.Signs() {
			if p.Traits[s.ID] == "" {
				return nil, fmt.Errorf("natal tables: %s has no trait for %s", p.Name, s.ID)
			}
		}
	}
	return &Deriver{cat: cat, t: t}, nil
}

// Meaning describes what the sun, moon or ascendant represents.
func (d *Deriver) Meaning(key string) string {
	return d.t.BigThree[key]
}

// parseInput validates "YYYY-MM-DD" and "HH:MM".
func parseInput(date, clock string) (month, day, hour int, err error) {
	t, perr := time.Parse("2006-01-02", strings.TrimSpace(date))
	if perr != nil {
		return 0, 0, 0, fmt.Errorf("%w %q: %v", ErrInvalidDate, date, perr)
	}
	hh, mm, ok := strings.Cut(strings.TrimSpace(clock), ":")
	h, herr := strconv.Atoi(hh)
	m, merr := strconv.Atoi(mm)
	if !ok || herr != nil || merr != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, 0, 0, fmt.Errorf("%w %q", ErrInvalidTime, clock)
	}
	return int(t.Month()), t.Day(), h, nil
}

// GenerateChart derives the chart for a birth date and local time.
func (d *Deriver) GenerateChart(date, clock string) (Chart, error) {
	month, day, hour, err := parseInput(date, clock)
	if err != nil {
		return Chart{}, err
	}

	sun := d.sunSign(month, day)
	moonIdx := (day + month*3) % 12
	ascIdx := (hour / 2) % 12

	chart := Chart{
		Sun:       sun,
		Moon:      d.cat.SignAt(moonIdx),
		Ascendant: d.cat.SignAt(ascIdx),
		Planets:   make([]Placement, len(d.t.Planets)),
		Houses:    make([]House, len(d.t.Houses)),
	}

	for i, p := range d.t.Planets {
		sign := d.cat.SignAt(day + month*2 + hour + p.Offset)
		chart.Planets[i] = Placement{
			Name:    p.Name,
			Icon:    p.Icon,
			Sign:    sign,
			Meaning: p.Name + " em " + sign.Name,
			Analysis: strings.NewReplacer(
				"{sign}", sign.Name,
				"{trait}", p.Traits[sign.ID],
			).Replace(p.Template),
		}
	}

	for i, h := range d.t.Houses {
		sign := d.cat.SignAt(i + ascIdx)
		chart.Houses[i] = House{
			Number:      h.Number,
			Name:        h.Name,
			Sign:        sign,
			Description: h.Description,
			Keyword:     h.Keyword,
			Analysis: strings.NewReplacer(
				"{sign}", sign.Name,
				"{number}", strconv.Itoa(h.Number),
				"{area}", strings.ToLower(h.Name),
				"{quality}", d.t.ElementQuality[sign.Element],
			).Replace(d.t.HouseAnalysis),
		}
	}
	return chart, nil
}

// sunRange is an inclusive month/day span. Capricorn wraps the year end.
type sunRange struct {
	sign           string
	startM, startD int
	endM, endD     int
}

var sunRanges = []sunRange{
	{"capricorn", 12, 22, 1, 19},
	{"aquarius", 1, 20, 2, 18},
	{"pisces", 2, 19, 3, 20},
	{"aries", 3, 21, 4, 19},
	{"taurus", 4, 20, 5, 20},
	{"gemini", 5, 21, 6, 20},
	{"cancer", 6, 21, 7, 22},
	{"leo", 7, 23, 8, 22},
	{"virgo", 8, 23, 9, 22},
	{"libra", 9, 23, 10, 22},
	{"scorpio", 10, 23, 11, 21},
	{"sagittarius", 11, 22, 12, 21},
}

// SunSignID returns the tropical sun sign for a month and day.
func SunSignID(month, day int) string {
	for _, r := range sunRanges {
		if (month == r.startM && day >= r.startD) || (month == r.endM && day <= r.endD) {
			return r.sign
		}
	}
	return "capricorn"
}

func (d *Deriver) sunSign(month, day int) catalog.Sign {
	s, _ := d.cat.Sign(SunSignID(month, day))
	return s
}

var (
	defaultOnce    sync.Once
	defaultDeriver *Deriver
)

// Default returns a deriver over the default catalog.
func Default() *Deriver {
	defaultOnce.Do(func() {
		d, err := NewDeriver(catalog.Default())
		if err != nil {
			panic(fmt.Sprintf("natal: %v", err))
		}
		defaultDeriver = d
	})
	return defaultDeriver
}

// GenerateChart derives a chart with the default deriver.
func GenerateChart(date, clock string) (Chart, error) {
	return Default().GenerateChart(date, clock)
}
