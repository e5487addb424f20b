// Package dreams is the dream symbol dictionary and the session journal.
package dreams

import (
	"embed"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/symbols.yaml
var dataFS embed.FS

// All matches every category in Search.
const All = "all"

// Category groups related symbols.
type Category struct {
	ID    string `yaml:"id" json:"id"`
	Label string `yaml:"label" json:"label"`
}

// Symbol is one dictionary entry.
type Symbol struct {
	Symbol   string   `yaml:"symbol" json:"symbol"`
	Category string   `yaml:"category" json:"category"`
	Meaning  string   `yaml:"meaning" json:"meaning"`
	Emotions []string `yaml:"emotions" json:"emotions"`
}

// Dictionary is the parsed symbol table.
type Dictionary struct {
	Categories []Category `yaml:"categories"`
	Symbols    []Symbol   `yaml:"symbols"`

	patterns []*regexp.Regexp
}

// Load parses and validates the embedded dictionary.
func Load() (*Dictionary, error) {
	raw, err := dataFS.ReadFile("data/symbols.yaml")
	if err != nil {
		return nil, fmt.Errorf("read dream symbols: %w", err)
	}
	var d Dictionary
	if err := yaml.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("parse dream symbols: %w", err)
	}

	known := make(map[string]bool, len(d.Categories))
	for _, c := range d.Categories {
		known[c.ID] = true
	}
	d.patterns = make([]*regexp.Regexp, len(d.Symbols))
	for i, s := range d.Symbols {
		if !known[s.Category] {
			return nil, fmt.Errorf("dream symbol %q: unknown category %q", s.Symbol, s.Category)
		}
		d.patterns[i] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(s.Symbol) + `\b`)
	}
	return &d, nil
}

// AllCategories returns the categories with the catch-all first.
func (d *Dictionary) AllCategories() []Category {
	out := make([]Category, 0, len(d.Categories)+1)
	out = append(out, Category{ID: All, Label: "Todos"})
	return append(out, d.Categories...)
}

// Search returns symbols whose name contains query, ignoring case, within
// category. An empty query matches everything; category All matches every
// category.
func (d *Dictionary) Search(query, category string) []Symbol {
	q := strings.ToLower(strings.TrimSpace(query))
	var out []Symbol
	for _, s := range d.Symbols {
		if category != All && category != "" && s.Category != category {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(s.Symbol), q) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// Detect returns the symbols mentioned as whole words in text, in
// dictionary order.
func (d *Dictionary) Detect(text string) []Symbol {
	var out []Symbol
	for i, p := range d.patterns {
		if p.MatchString(text) {
			out = append(out, d.Symbols[i])
		}
	}
	return out
}

var (
	defaultOnce sync.Once
	defaultDict *Dictionary
)

// Default returns the embedded dictionary.
func Default() *Dictionary {
	defaultOnce.Do(func() {
		d, err := Load()
		if err != nil {
			panic(fmt.Sprintf("dreams: %v", err))
		}
		defaultDict = d
	})
	return defaultDict
}

// Search queries the embedded dictionary.
func Search(query, category string) []Symbol {
	return Default().Search(query, category)
}

// Categories lists the embedded categories, catch-all first.
func Categories() []Category {
	return Default().AllCategories()
}
