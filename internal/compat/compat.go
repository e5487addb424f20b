// Package compat scores the affinity of two zodiac signs by element.
package compat

import "github.com/litescript/ls-cosmos/internal/catalog"

// DefaultBase is used when either sign or element is unknown.
const DefaultBase = 50

var elementTable = map[catalog.Element]map[catalog.Element]int{
	catalog.Fire:  {catalog.Fire: 85, catalog.Earth: 40, catalog.Air: 90, catalog.Water: 45},
	catalog.Earth: {catalog.Fire: 40, catalog.Earth: 80, catalog.Air: 50, catalog.Water: 85},
	catalog.Air:   {catalog.Fire: 90, catalog.Earth: 50, catalog.Air: 75, catalog.Water: 55},
	catalog.Water: {catalog.Fire: 45, catalog.Earth: 85, catalog.Air: 55, catalog.Water: 80},
}

// Base returns the element affinity, 0-100. The table is symmetric.
func Base(a, b catalog.Element) int {
	if row, ok := elementTable[a]; ok {
		if v, ok := row[b]; ok {
			return v
		}
	}
	return DefaultBase
}

// Scores are the three affinity percentages for a pair of signs.
type Scores struct {
	SignA      string `json:"sign_a"`
	SignB      string `json:"sign_b"`
	Base       int    `json:"base"`
	Love       int    `json:"love"`
	Friendship int    `json:"friendship"`
	Work       int    `json:"work"`
}

// Engine scores signs from a zodiac catalog.
type Engine struct {
	cat *catalog.Catalog
}

// New returns an engine over cat.
func New(cat *catalog.Catalog) *Engine {
	return &Engine{cat: cat}
}

// Score compares two signs by id. Unknown ids score from DefaultBase.
func (e *Engine) Score(signA, signB string) Scores {
	base := DefaultBase
	a, errA := e.cat.Sign(signA)
	b, errB := e.cat.Sign(signB)
	if errA == nil && errB == nil {
		base = Base(a.Element, b.Element)
	}

	love := base + 5
	if signA == signB {
		love = base - 10
	}
	return Scores{
		SignA:      signA,
		SignB:      signB,
		Base:       base,
		Love:       clamp(love),
		Friendship: clamp(base + 5),
		Work:       clamp(base - 5),
	}
}

func clamp(v int) int {
	return max(0, min(100, v))
}

// Score compares two signs against the default catalog.
func Score(signA, signB string) Scores {
	return New(catalog.Default()).Score(signA, signB)
}

// Category is one of the three scored relationship areas.
type Category string

const (
	Love       Category = "love"
	Friendship Category = "friendship"
	Work       Category = "work"
)

// Categories lists the areas in display order.
var Categories = []Category{Love, Friendship, Work}

// Label returns the Portuguese name of the category.
func (c Category) Label() string {
	switch c {
	case Love:
		return "Amor"
	case Friendship:
		return "Amizade"
	case Work:
		return "Trabalho"
	}
	return ""
}

// Value returns the score for category c.
func (s Scores) Value(c Category) int {
	switch c {
	case Love:
		return s.Love
	case Friendship:
		return s.Friendship
	case Work:
		return s.Work
	}
	return 0
}

var analyses = map[Category][3]string{
	Love: {
		"Conexao intensa e natural. Voces se complementam profundamente.",
		"Bom potencial com esforco mutuo. Aprendem um com o outro.",
		"Desafios significativos, mas grande potencial de crescimento.",
	},
	Friendship: {
		"Amizade solida e duradoura. Sintonia natural.",
		"Amizade boa com momentos de ajuste. Crescimento mutuo.",
		"Precisa de paciencia e compreensao. Diferentes perspectivas.",
	},
	Work: {
		"Parceria produtiva e harmoniosa. Boa divisao de forcas.",
		"Colaboracao funcional. Compensam fraquezas um do outro.",
		"Necessita mediacao e comunicacao clara. Visoes distintas.",
	},
}

// Analysis returns the tiered commentary for a score: 80 and up, 60 and
// up, or below.
func Analysis(c Category, score int) string {
	tiers, ok := analyses[c]
	if !ok {
		return ""
	}
	switch {
	case score >= 80:
		return tiers[0]
	case score >= 60:
		return tiers[1]
	}
	return tiers[2]
}
