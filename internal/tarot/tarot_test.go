package tarot

import (
	"errors"
	"strings"
	"testing"

	"github.com/litescript/ls-cosmos/internal/rng"
)

// stubSource always picks the first pool entry and returns a fixed float.
type stubSource struct {
	f float64
}

func (s stubSource) Intn(int) int      { return 0 }
func (s stubSource) Float64() float64 { return s.f }

func spread(t *testing.T, ids []int, reversed []bool) []DrawnCard {
	t.Helper()
	e := Default()
	out := make([]DrawnCard, len(ids))
	for i, id := range ids {
		c, err := e.Card(id)
		if err != nil {
			t.Fatalf("Card(%d): %v", id, err)
		}
		out[i] = DrawnCard{Card: c, Position: Position(i % 3).Label()}
		if reversed != nil {
			out[i].Reversed = reversed[i]
		}
	}
	return out
}

func TestLoad(t *testing.T) {
	e, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	deck := e.Deck()
	if len(deck) != DeckSize {
		t.Fatalf("len(Deck) = %d, want %d", len(deck), DeckSize)
	}
	if deck[0].Name != "O Louco" || deck[21].Name != "O Mundo" {
		t.Errorf("deck ends = %q, %q", deck[0].Name, deck[21].Name)
	}
	for id := 0; id < DeckSize; id++ {
		x := e.ext[id]
		for _, p := range []Position{Past, Present, Future} {
			for _, rev := range []bool{false, true} {
				if x.insight(p, rev) == "" {
					t.Errorf("card %d %s reversed=%v has no insight", id, p.Label(), rev)
				}
			}
		}
		if e.GroupName(id) == "" {
			t.Errorf("card %d has no group name", id)
		}
	}
}

func TestCard_Unknown(t *testing.T) {
	for _, id := range []int{-1, 22} {
		if _, err := Default().Card(id); !errors.Is(err, ErrUnknownCard) {
			t.Errorf("Card(%d) error = %v, want ErrUnknownCard", id, err)
		}
	}
}

func TestGenerateReading_CardCount(t *testing.T) {
	src := rng.New(1)
	for _, n := range []int{0, 2, 4} {
		ids := make([]int, n)
		for i := range ids {
			ids[i] = i
		}
		_, err := GenerateReading(spread(t, ids, nil), src)
		if !errors.Is(err, ErrCardCount) {
			t.Errorf("%d cards: error = %v, want ErrCardCount", n, err)
		}
	}
}

func TestGenerateReading_UnknownCard(t *testing.T) {
	cards := spread(t, []int{0, 1, 2}, nil)
	cards[1].Card.ID = 99
	if _, err := GenerateReading(cards, rng.New(1)); !errors.Is(err, ErrUnknownCard) {
		t.Errorf("error = %v, want ErrUnknownCard", err)
	}
}

func TestGenerateReading_Totality(t *testing.T) {
	for seed := uint64(0); seed < 200; seed++ {
		src := rng.New(seed)
		cards := Draw(src)
		r, err := GenerateReading(cards, src)
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		if r.Narrative == "" || r.PastInsight == "" || r.PresentInsight == "" || r.FutureInsight == "" || r.Advice == "" {
			t.Errorf("seed %d: empty field in %+v", seed, r)
		}
		switch r.Energy {
		case Positive, Challenging, Transformative:
		default:
			t.Errorf("seed %d: Energy = %q", seed, r.Energy)
		}
		if got := len(strings.Split(r.Narrative, "\n\n")); got != 3 {
			t.Errorf("seed %d: narrative has %d paragraphs, want 3", seed, got)
		}
	}
}

func TestGenerateReading_Deterministic(t *testing.T) {
	a, _ := GenerateReading(spread(t, []int{3, 9, 17}, nil), rng.New(42))
	b, _ := GenerateReading(spread(t, []int{3, 9, 17}, nil), rng.New(42))
	if a != b {
		t.Errorf("same seed produced different readings:\n%+v\n%+v", a, b)
	}
}

func TestAssessEnergy(t *testing.T) {
	tests := []struct {
		name     string
		ids      []int
		reversed []bool
		want     Energy
	}{
		{"two positive", []int{0, 1, 2}, nil, Positive},
		{"positives reversed", []int{0, 1, 2}, []bool{true, true, false}, Challenging},
		{"three transformative", []int{10, 12, 13}, nil, Transformative},
		{"transformative is reversal invariant", []int{10, 12, 2}, []bool{true, true, false}, Transformative},
		{"two challenging", []int{15, 16, 0}, nil, Challenging},
		{"challenging reversed becomes transformative", []int{15, 16, 2}, []bool{true, true, false}, Transformative},
		{"one transformative one challenging", []int{10, 15, 2}, nil, Transformative},
		{"all neutral defaults positive", []int{2, 4, 5}, nil, Positive},
		{"neutral reversed stays neutral", []int{2, 4, 0}, []bool{true, true, false}, Positive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := GenerateReading(spread(t, tt.ids, tt.reversed), stubSource{})
			if err != nil {
				t.Fatal(err)
			}
			if r.Energy != tt.want {
				t.Errorf("Energy = %v, want %v", r.Energy, tt.want)
			}
		})
	}
}

func TestGenerateReading_Insights(t *testing.T) {
	e := Default()
	cards := spread(t, []int{0, 1, 2}, []bool{false, true, false})
	r, err := e.GenerateReading(cards, stubSource{})
	if err != nil {
		t.Fatal(err)
	}
	if r.PastInsight != e.ext[0].Past.Upright {
		t.Errorf("PastInsight = %q", r.PastInsight)
	}
	if r.PresentInsight != e.ext[1].Present.Reversed {
		t.Errorf("PresentInsight = %q", r.PresentInsight)
	}
	if r.FutureInsight != e.ext[2].Future.Upright {
		t.Errorf("FutureInsight = %q", r.FutureInsight)
	}
	if !strings.HasPrefix(r.Narrative, "As cartas revelam uma jornada marcada por novos comecos no passado, forca e poder no presente") {
		t.Errorf("opening = %q", strings.SplitN(r.Narrative, "\n", 2)[0])
	}
}

func TestTransitionRules(t *testing.T) {
	e := Default()
	tr := e.pools.Transitions

	tests := []struct {
		name string
		ids  []int
		want string
	}{
		{"same group", []int{10, 12, 0}, tr.SameGroup[0]},
		{"beginnings to transformation", []int{0, 13, 2}, tr.BeginningsToTransformation[0]},
		{"power to emotion", []int{1, 3, 2}, tr.PowerToEmotion[0]},
		{"challenging to positive", []int{15, 17, 2}, tr.ChallengeToPositive[0]},
		{"challenging to neutral", []int{15, 2, 0}, tr.ChallengeToPositive[0]},
		{"generic", []int{2, 4, 0}, tr.Generic[0]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := e.GenerateReading(spread(t, tt.ids, nil), stubSource{})
			if err != nil {
				t.Fatal(err)
			}
			middle := strings.Split(r.Narrative, "\n\n")[1]
			want := r.PastInsight + " " + tt.want + " " + r.PresentInsight
			if middle != want {
				t.Errorf("middle paragraph = %q, want %q", middle, want)
			}
		})
	}
}

func TestTransition_ReversalDoesNotChangeRule(t *testing.T) {
	e := Default()
	// Reversed Devil is still a challenging archetype for phrasing.
	r, _ := e.GenerateReading(spread(t, []int{15, 17, 2}, []bool{true, false, false}), stubSource{})
	if !strings.Contains(r.Narrative, e.pools.Transitions.ChallengeToPositive[0]) {
		t.Error("expected uplift transition for a reversed challenging card")
	}
}

func TestDraw(t *testing.T) {
	cards := Default().Draw(rng.New(7))
	if len(cards) != 3 {
		t.Fatalf("len = %d, want 3", len(cards))
	}
	labels := []string{"Passado", "Presente", "Futuro"}
	seen := map[int]bool{}
	for i, c := range cards {
		if c.Position != labels[i] {
			t.Errorf("cards[%d].Position = %q, want %q", i, c.Position, labels[i])
		}
		if seen[c.Card.ID] {
			t.Errorf("card %d drawn twice", c.Card.ID)
		}
		seen[c.Card.ID] = true
	}
}

func TestDraw_Reversal(t *testing.T) {
	tests := []struct {
		f    float64
		want bool
	}{
		{0.7, false},
		{0.71, true},
		{0.1, false},
	}
	for _, tt := range tests {
		for _, c := range Default().Draw(stubSource{f: tt.f}) {
			if c.Reversed != tt.want {
				t.Errorf("Float64 %v: Reversed = %v, want %v", tt.f, c.Reversed, tt.want)
			}
		}
	}
}

func TestDraw_ReversalRate(t *testing.T) {
	src := rng.New(99)
	var reversed, total int
	for i := 0; i < 2000; i++ {
		for _, c := range Draw(src) {
			total++
			if c.Reversed {
				reversed++
			}
		}
	}
	rate := float64(reversed) / float64(total)
	if rate < 0.25 || rate > 0.35 {
		t.Errorf("reversal rate = %.3f, want ~0.3", rate)
	}
}

func TestEnergyLabel(t *testing.T) {
	tests := map[Energy]string{
		Positive:       "Energia Positiva",
		Challenging:    "Energia Desafiadora",
		Transformative: "Energia Transformadora",
	}
	for e, want := range tests {
		if got := EnergyLabel(e); got != want {
			t.Errorf("EnergyLabel(%v) = %q, want %q", e, got, want)
		}
	}
}
