package horoscope

import (
	"errors"
	"testing"
	"time"

	"github.com/litescript/ls-cosmos/internal/catalog"
)

func TestDaily(t *testing.T) {
	date := time.Date(2025, time.March, 14, 9, 0, 0, 0, time.UTC)
	r, err := Daily("aries", date)
	if err != nil {
		t.Fatalf("Daily: %v", err)
	}
	if r.Sign.ID != "aries" || r.Element != "Fogo" {
		t.Errorf("sign/element = %s/%s", r.Sign.ID, r.Element)
	}
	if r.Date != "2025-03-14" {
		t.Errorf("Date = %q", r.Date)
	}
	// Day 73 of the year selects variant 73 % 3 = 1.
	fire := Default().Element(catalog.Fire)
	if r.Text != fire.Readings[1] {
		t.Errorf("Text.Title = %q, want %q", r.Text.Title, fire.Readings[1].Title)
	}
	if len(r.Affinities) != 5 || r.Affinities[0].Sign.ID != "leo" || r.Affinities[0].Strength != 95 {
		t.Errorf("Affinities = %+v", r.Affinities)
	}
	if r.LuckyColor.Name != "Vermelho" {
		t.Errorf("LuckyColor = %+v", r.LuckyColor)
	}
}

func TestDaily_Deterministic(t *testing.T) {
	date := time.Date(2025, time.July, 2, 0, 0, 0, 0, time.UTC)
	for _, s := range catalog.Default().Signs() {
		a, err := Daily(s.ID, date)
		if err != nil {
			t.Fatalf("Daily(%s): %v", s.ID, err)
		}
		b, _ := Daily(s.ID, date)
		if a.Text != b.Text || a.Aspects != b.Aspects || a.LuckyNumber != b.LuckyNumber {
			t.Errorf("Daily(%s) not deterministic", s.ID)
		}
	}
}

func TestDaily_UnknownSign(t *testing.T) {
	if _, err := Daily("ophiuchus", time.Now()); !errors.Is(err, catalog.ErrUnknownSign) {
		t.Errorf("error = %v, want ErrUnknownSign", err)
	}
}

func TestShiftAspects(t *testing.T) {
	base := Aspects{Love: 78, Career: 92, Health: 85, Luck: 70, Spirit: 65, Energy: 95}

	tests := []struct {
		day  int
		want Aspects
	}{
		// shift 0
		{10, Aspects{Love: 73, Career: 95, Health: 81, Luck: 76, Spirit: 63, Energy: 99}},
		// shift 7
		{17, Aspects{Love: 80, Career: 88, Health: 88, Luck: 69, Spirit: 70, Energy: 92}},
	}
	for _, tt := range tests {
		if got := ShiftAspects(base, tt.day); got != tt.want {
			t.Errorf("ShiftAspects(day %d) = %+v, want %+v", tt.day, got, tt.want)
		}
	}
}

func TestShiftAspects_Clamped(t *testing.T) {
	got := ShiftAspects(Aspects{Love: 100, Career: 20, Health: 100, Luck: 0, Spirit: 100, Energy: 0}, 9)
	want := Aspects{Love: 100, Career: 25, Health: 100, Luck: 25, Spirit: 100, Energy: 25}
	if got != want {
		t.Errorf("ShiftAspects = %+v, want %+v", got, want)
	}
}

func TestLuckyNumber(t *testing.T) {
	// "leo" = 108 + 101 + 111 = 320
	if got := LuckyNumber("leo", 5); got != (320+5)%99+1 {
		t.Errorf("LuckyNumber(leo, 5) = %d, want %d", got, (320+5)%99+1)
	}
	for _, s := range catalog.Default().Signs() {
		for day := 1; day <= 31; day++ {
			if n := LuckyNumber(s.ID, day); n < 1 || n > 99 {
				t.Errorf("LuckyNumber(%s, %d) = %d out of range", s.ID, day, n)
			}
		}
	}
}
