// Package tarot draws three-card major arcana spreads and assembles their
// narrative readings.
package tarot

import (
	"embed"
	"errors"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/litescript/ls-cosmos/internal/rng"
)

//go:embed data/*.yaml
var dataFS embed.FS

const DeckSize = 22

// ReversalThreshold is the draw value above which a card lands reversed.
const ReversalThreshold = 0.7

var (
	ErrCardCount   = errors.New("tarot: a reading needs exactly 3 cards")
	ErrUnknownCard = errors.New("tarot: unknown card")
)

// Energy classifies a card archetype or a whole reading.
type Energy string

const (
	Positive       Energy = "positive"
	Challenging    Energy = "challenging"
	Transformative Energy = "transformative"
	Neutral        Energy = "neutral"
)

// EnergyLabel returns the display label for a reading energy.
func EnergyLabel(e Energy) string {
	switch e {
	case Positive:
		return "Energia Positiva"
	case Challenging:
		return "Energia Desafiadora"
	case Transformative:
		return "Energia Transformadora"
	}
	return "Energia Neutra"
}

// Group is the thematic category used to pick transition phrasing.
type Group string

const (
	Beginnings     Group = "beginnings"
	Power          Group = "power"
	Intuition      Group = "intuition"
	Structure      Group = "structure"
	Transformation Group = "transformation"
	Emotion        Group = "emotion"
	Wisdom         Group = "wisdom"
	Completion     Group = "completion"
)

// Position is a slot in the spread.
type Position int

const (
	Past Position = iota
	Present
	Future
)

// Label returns the Portuguese slot name.
func (p Position) Label() string {
	switch p {
	case Past:
		return "Passado"
	case Present:
		return "Presente"
	case Future:
		return "Futuro"
	}
	return ""
}

// Card is one of the major arcana.
type Card struct {
	ID       int      `yaml:"id" json:"id"`
	Name     string   `yaml:"name" json:"name"`
	Numeral  string   `yaml:"numeral" json:"numeral"`
	Keywords []string `yaml:"keywords" json:"keywords"`
	Upright  string   `yaml:"upright" json:"upright"`
	Reversed string   `yaml:"reversed" json:"reversed"`
}

// DrawnCard is a card placed in the spread.
type DrawnCard struct {
	Card     Card   `json:"card"`
	Reversed bool   `json:"reversed"`
	Position string `json:"position"`
}

type orientation struct {
	Upright  string `yaml:"upright"`
	Reversed string `yaml:"reversed"`
}

func (o orientation) text(reversed bool) string {
	if reversed {
		return o.Reversed
	}
	return o.Upright
}

type extended struct {
	ID      int         `yaml:"id"`
	Group   Group       `yaml:"group"`
	Energy  Energy      `yaml:"energy"`
	Past    orientation `yaml:"past"`
	Present orientation `yaml:"present"`
	Future  orientation `yaml:"future"`
}

func (x extended) insight(p Position, reversed bool) string {
	switch p {
	case Past:
		return x.Past.text(reversed)
	case Present:
		return x.Present.text(reversed)
	}
	return x.Future.text(reversed)
}

type pools struct {
	Groups      map[Group]string `yaml:"groups"`
	Openings    []string         `yaml:"openings"`
	Closings    []string         `yaml:"closings"`
	Transitions struct {
		SameGroup                  []string `yaml:"same_group"`
		BeginningsToTransformation []string `yaml:"beginnings_to_transformation"`
		PowerToEmotion             []string `yaml:"power_to_emotion"`
		ChallengeToPositive        []string `yaml:"challenge_to_positive"`
		Generic                    []string `yaml:"generic"`
	} `yaml:"transitions"`
	Advice map[Energy][]string `yaml:"advice"`
	Cards  []extended          `yaml:"cards"`
}

// Engine holds the deck and the reading tables.
type Engine struct {
	deck  []Card
	ext   [DeckSize]extended
	pools pools
}

// Load parses and validates the embedded deck and reading tables.
func Load() (*Engine, error) {
	var e Engine
	if err := decode("data/deck.yaml", &e.deck); err != nil {
		return nil, err
	}
	if err := decode("data/readings.yaml", &e.pools); err != nil {
		return nil, err
	}
	if err := e.validate(); err != nil {
		return nil, err
	}
	return &e, nil
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

func (e *Engine) validate() error {
	if len(e.deck) != DeckSize {
		return fmt.Errorf("deck has %d cards, want %d", len(e.deck), DeckSize)
	}
	for i, c := range e.deck {
		if c.ID != i {
			return fmt.Errorf("deck entry %d has id %d", i, c.ID)
		}
	}
	if len(e.pools.Cards) != DeckSize {
		return fmt.Errorf("readings cover %d cards, want %d", len(e.pools.Cards), DeckSize)
	}
	seen := make(map[int]bool, DeckSize)
	for _, x := range e.pools.Cards {
		if x.ID < 0 || x.ID >= DeckSize || seen[x.ID] {
			return fmt.Errorf("readings: bad or duplicate card id %d", x.ID)
		}
		if _, ok := e.pools.Groups[x.Group]; !ok {
			return fmt.Errorf("card %d: unknown group %q", x.ID, x.Group)
		}
		seen[x.ID] = true
		e.ext[x.ID] = x
	}

	p := e.pools
	required := map[string][]string{
		"openings":                     p.Openings,
		"closings":                     p.Closings,
		"transitions.same_group":       p.Transitions.SameGroup,
		"transitions.beginnings":       p.Transitions.BeginningsToTransformation,
		"transitions.power_to_emotion": p.Transitions.PowerToEmotion,
		"transitions.challenge":        p.Transitions.ChallengeToPositive,
		"transitions.generic":          p.Transitions.Generic,
		"advice.positive":              p.Advice[Positive],
		"advice.challenging":           p.Advice[Challenging],
		"advice.transformative":        p.Advice[Transformative],
	}
	for name, pool := range required {
		if len(pool) == 0 {
			return fmt.Errorf("readings: empty pool %s", name)
		}
	}
	return nil
}

// Deck returns the 22 cards in order.
func (e *Engine) Deck() []Card {
	out := make([]Card, len(e.deck))
	copy(out, e.deck)
	return out
}

// Card returns the card with the given id.
func (e *Engine) Card(id int) (Card, error) {
	if id < 0 || id >= len(e.deck) {
		return Card{}, fmt.Errorf("%w: %d", ErrUnknownCard, id)
	}
	return e.deck[id], nil
}

// GroupName returns the thematic group of a card in prose.
func (e *Engine) GroupName(id int) string {
	if id < 0 || id >= DeckSize {
		return ""
	}
	return e.pools.Groups[e.ext[id].Group]
}

// Draw deals three distinct cards for Passado, Presente and Futuro. Each
// card is independently reversed with probability 0.3.
func (e *Engine) Draw(src rng.Source) []DrawnCard {
	order := rng.Shuffle(src, len(e.deck))
	out := make([]DrawnCard, 3)
	for i := range out {
		out[i] = DrawnCard{
			Card:     e.deck[order[i]],
			Reversed: src.Float64() > ReversalThreshold,
			Position: Position(i).Label(),
		}
	}
	return out
}

var (
	defaultOnce   sync.Once
	defaultEngine *Engine
)

// Default returns the engine built from the embedded tables.
func Default() *Engine {
	defaultOnce.Do(func() {
		e, err := Load()
		if err != nil {
			panic(fmt.Sprintf("tarot: %v", err))
		}
		defaultEngine = e
	})
	return defaultEngine
}

// Draw deals a spread from the default engine.
func Draw(src rng.Source) []DrawnCard {
	return Default().Draw(src)
}

// GenerateReading reads a spread with the default engine.
func GenerateReading(cards []DrawnCard, src rng.Source) (Reading, error) {
	return Default().GenerateReading(cards, src)
}
