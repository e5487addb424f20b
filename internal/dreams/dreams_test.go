package dreams

import (
	"errors"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	d, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(d.Categories) != 8 {
		t.Errorf("len(Categories) = %d, want 8", len(d.Categories))
	}
	perCategory := map[string]int{}
	for _, s := range d.Symbols {
		perCategory[s.Category]++
		if s.Meaning == "" || len(s.Emotions) == 0 {
			t.Errorf("symbol %q incomplete", s.Symbol)
		}
	}
	for _, c := range d.Categories {
		if perCategory[c.ID] == 0 {
			t.Errorf("category %q has no symbols", c.ID)
		}
	}
}

func TestCategories(t *testing.T) {
	cats := Categories()
	if cats[0].ID != All || cats[0].Label != "Todos" {
		t.Errorf("first category = %+v, want all", cats[0])
	}
	if len(cats) != 9 {
		t.Errorf("len = %d, want 9", len(cats))
	}
}

func TestSearch(t *testing.T) {
	total := len(Default().Symbols)

	tests := []struct {
		name     string
		query    string
		category string
		want     int
	}{
		{"empty matches all", "", All, total},
		{"empty category is all", "", "", total},
		{"case insensitive", "AGUA", All, 1},
		{"substring", "sa", All, 3},
		{"category only", "", "animais", 5},
		{"category and query", "ca", "animais", 1},
		{"no match", "zzz", All, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Search(tt.query, tt.category)
			if len(got) != tt.want {
				t.Errorf("Search(%q, %q) returned %d, want %d", tt.query, tt.category, len(got), tt.want)
			}
		})
	}
}

func TestDetect(t *testing.T) {
	got := Default().Detect("Sonhei que estava a voar sobre o mar e vi uma cobra.")
	names := map[string]bool{}
	for _, s := range got {
		names[s.Symbol] = true
	}
	for _, want := range []string{"Voar", "Mar", "Cobra"} {
		if !names[want] {
			t.Errorf("Detect missed %q (got %v)", want, names)
		}
	}
	if names["Agua"] {
		t.Error("Detect matched a symbol that is not in the text")
	}

	if len(Default().Detect("amarelo")) != 0 {
		t.Error("Detect should match whole words only")
	}
}

func TestJournal(t *testing.T) {
	j := NewJournal(Default())
	base := time.Date(2025, 5, 1, 7, 0, 0, 0, time.UTC)
	n := 0
	j.now = func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Hour)
	}

	if _, err := j.Add("   "); !errors.Is(err, ErrEmptyEntry) {
		t.Errorf("Add(blank) error = %v, want ErrEmptyEntry", err)
	}

	first, err := j.Add("Uma casa antiga perto do mar")
	if err != nil {
		t.Fatal(err)
	}
	second, _ := j.Add("De novo o mar, agora com um peixe")

	if first.ID == "" || first.ID == second.ID {
		t.Errorf("ids = %q, %q", first.ID, second.ID)
	}
	if len(first.Symbols) != 2 {
		t.Errorf("first.Symbols = %v, want Mar and Casa", first.Symbols)
	}

	entries := j.Entries()
	if len(entries) != 2 || entries[0].ID != second.ID {
		t.Errorf("Entries should be newest first")
	}

	rec := j.Recurring()
	if rec["Mar"] != 2 || rec["Peixe"] != 1 {
		t.Errorf("Recurring = %v", rec)
	}

	if err := j.Remove(first.ID); err != nil {
		t.Errorf("Remove: %v", err)
	}
	if err := j.Remove(first.ID); !errors.Is(err, ErrEntryNotFound) {
		t.Errorf("second Remove error = %v, want ErrEntryNotFound", err)
	}
	if j.Len() != 1 {
		t.Errorf("Len = %d, want 1", j.Len())
	}
}
