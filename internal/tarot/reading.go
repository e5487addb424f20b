package tarot

import (
	"fmt"
	"strings"

	"github.com/litescript/ls-cosmos/internal/rng"
)

// Reading is the interpreted spread.
type Reading struct {
	Narrative      string `json:"narrative"`
	PastInsight    string `json:"past_insight"`
	PresentInsight string `json:"present_insight"`
	FutureInsight  string `json:"future_insight"`
	Advice         string `json:"advice"`
	Energy         Energy `json:"energy"`
}

// GenerateReading interprets exactly three cards ordered past, present,
// future. Only phrasing variants depend on src; the energy class and the
// insights are fixed by the cards.
func (e *Engine) GenerateReading(cards []DrawnCard, src rng.Source) (Reading, error) {
	if len(cards) != 3 {
		return Reading{}, fmt.Errorf("%w: got %d", ErrCardCount, len(cards))
	}
	ext := make([]extended, 3)
	for i, c := range cards {
		if c.Card.ID < 0 || c.Card.ID >= DeckSize {
			return Reading{}, fmt.Errorf("%w: %d", ErrUnknownCard, c.Card.ID)
		}
		ext[i] = e.ext[c.Card.ID]
	}

	insights := make([]string, 3)
	for i, x := range ext {
		insights[i] = x.insight(Position(i), cards[i].Reversed)
	}

	energy := assessEnergy(cards, ext)

	opening := strings.NewReplacer(
		"{past}", e.pools.Groups[ext[0].Group],
		"{present}", e.pools.Groups[ext[1].Group],
		"{future}", e.pools.Groups[ext[2].Group],
	).Replace(rng.Pick(src, e.pools.Openings))
	trans1 := e.transition(src, ext[0], ext[1])
	trans2 := e.transition(src, ext[1], ext[2])
	closing := rng.Pick(src, e.pools.Closings)

	narrative := fmt.Sprintf("%s\n\n%s %s %s\n\n%s %s %s",
		opening,
		insights[0], trans1, insights[1],
		trans2, insights[2], closing)

	return Reading{
		Narrative:      narrative,
		PastInsight:    insights[0],
		PresentInsight: insights[1],
		FutureInsight:  insights[2],
		Advice:         rng.Pick(src, e.pools.Advice[energy]),
		Energy:         energy,
	}, nil
}

// cardEnergy applies reversal: positive turns challenging and challenging
// turns transformative.
func cardEnergy(base Energy, reversed bool) Energy {
	if !reversed {
		return base
	}
	switch base {
	case Positive:
		return Challenging
	case Challenging:
		return Transformative
	}
	return base
}

func assessEnergy(cards []DrawnCard, ext []extended) Energy {
	counts := make(map[Energy]int, 4)
	for i, x := range ext {
		counts[cardEnergy(x.Energy, cards[i].Reversed)]++
	}
	switch {
	case counts[Transformative] >= 2:
		return Transformative
	case counts[Challenging] >= 2:
		return Challenging
	case counts[Positive] >= 2:
		return Positive
	case counts[Transformative] >= 1 && counts[Challenging] >= 1:
		return Transformative
	}
	return Positive
}

// transition picks the connecting sentence between two adjacent cards.
// Archetype energies are compared before reversal.
func (e *Engine) transition(src rng.Source, a, b extended) string {
	t := e.pools.Transitions
	switch {
	case a.Group == b.Group:
		return rng.Pick(src, t.SameGroup)
	case a.Group == Beginnings && b.Group == Transformation:
		return rng.Pick(src, t.BeginningsToTransformation)
	case a.Group == Power && b.Group == Emotion:
		return rng.Pick(src, t.PowerToEmotion)
	case a.Energy == Challenging && (b.Energy == Positive || b.Energy == Neutral):
		return rng.Pick(src, t.ChallengeToPositive)
	}
	return rng.Pick(src, t.Generic)
}
