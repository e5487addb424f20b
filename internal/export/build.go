package export

import (
	"fmt"
	"time"

	"github.com/litescript/ls-cosmos/internal/astro"
	"github.com/litescript/ls-cosmos/internal/catalog"
	"github.com/litescript/ls-cosmos/internal/compat"
	"github.com/litescript/ls-cosmos/internal/dreams"
	"github.com/litescript/ls-cosmos/internal/lunar"
	"github.com/litescript/ls-cosmos/internal/rng"
	"github.com/litescript/ls-cosmos/internal/tarot"
)

// Tarot draws a spread from a seeded source so the result can be replayed.
func Tarot(e *tarot.Engine, seed uint64) (TarotResult, error) {
	src := rng.New(seed)
	cards := e.Draw(src)
	reading, err := e.GenerateReading(cards, src)
	if err != nil {
		return TarotResult{}, fmt.Errorf("tarot reading: %w", err)
	}
	return TarotResult{Seed: seed, Cards: cards, Reading: reading}, nil
}

// Moon builds the calendar for a month with today's phase details.
func Moon(year int, month time.Month, today time.Time) MoonResult {
	idx := lunar.PhaseIndex(today)
	return MoonResult{
		Year:      year,
		Month:     int(month),
		MonthName: lunar.MonthName(month),
		Today: MoonToday{
			Date:         today.UTC().Format("2006-01-02"),
			JulianDate:   astro.JulianDate(today),
			Index:        idx,
			Phase:        lunar.Phase(idx),
			Illumination: lunar.Illumination(idx),
			DaysUntilNew: lunar.DaysUntilNew(today),
			Ritual:       lunar.RitualFor(idx),
		},
		Days: lunar.MonthPhases(year, month),
	}
}

// Compat scores two signs. Both ids must exist in cat.
func Compat(cat *catalog.Catalog, a, b string) (CompatResult, error) {
	for _, id := range []string{a, b} {
		if _, err := cat.Sign(id); err != nil {
			return CompatResult{}, err
		}
	}
	s := compat.New(cat).Score(a, b)
	res := CompatResult{Scores: s, Analysis: make(map[string]string, len(compat.Categories))}
	for _, c := range compat.Categories {
		res.Analysis[string(c)] = compat.Analysis(c, s.Value(c))
	}
	return res, nil
}

// Dream looks up symbols for a query in one category, or all of them.
func Dream(d *dreams.Dictionary, query, category string) DreamResult {
	if category == "" {
		category = dreams.All
	}
	return DreamResult{
		Query:    query,
		Category: category,
		Symbols:  d.Search(query, category),
	}
}
