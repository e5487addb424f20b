// Package meditation holds the guided meditations, the session timer and
// the 4-7-8 breathing pacer.
package meditation

import (
	"embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/meditations.yaml
var dataFS embed.FS

// Any is the phase of meditations that suit every lunar phase.
const Any = "Qualquer"

// All disables filtering in Filter and ByIntention.
const All = "all"

// Meditation is one guided session.
type Meditation struct {
	ID          int      `yaml:"id"`
	Title       string   `yaml:"title"`
	Duration    int      `yaml:"duration"` // seconds
	Phase       string   `yaml:"phase"`
	Intention   string   `yaml:"intention"`
	Description string   `yaml:"description"`
	Steps       []string `yaml:"steps"`
}

var (
	loadOnce    sync.Once
	meditations []Meditation
	loadErr     error
)

func load() ([]Meditation, error) {
	loadOnce.Do(func() {
		raw, err := dataFS.ReadFile("data/meditations.yaml")
		if err != nil {
			loadErr = fmt.Errorf("read meditations: %w", err)
			return
		}
		var doc struct {
			Meditations []Meditation `yaml:"meditations"`
		}
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			loadErr = fmt.Errorf("parse meditations: %w", err)
			return
		}
		for _, m := range doc.Meditations {
			if m.Duration <= 0 || len(m.Steps) == 0 {
				loadErr = fmt.Errorf("meditation %d: needs a duration and steps", m.ID)
				return
			}
		}
		meditations = doc.Meditations
	})
	return meditations, loadErr
}

func mustLoad() []Meditation {
	ms, err := load()
	if err != nil {
		panic(fmt.Sprintf("meditation: %v", err))
	}
	return ms
}

// List returns every meditation.
func List() []Meditation {
	ms := mustLoad()
	out := make([]Meditation, len(ms))
	copy(out, ms)
	return out
}

// Filter returns the meditations suited to a lunar phase. Meditations
// marked Any always match, and a meditation tagged with a broad phase such
// as "Crescente" matches every phase name containing it.
func Filter(phase string) []Meditation {
	if phase == "" || phase == All {
		return List()
	}
	var out []Meditation
	for _, m := range mustLoad() {
		if m.Phase == Any || strings.Contains(phase, m.Phase) {
			out = append(out, m)
		}
	}
	return out
}

// Intentions lists the distinct intentions, lower-cased, in first-seen
// order with All first.
func Intentions() []string {
	seen := map[string]bool{}
	out := []string{All}
	for _, m := range mustLoad() {
		k := strings.ToLower(m.Intention)
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	return out
}

// ByIntention returns the meditations whose intention matches, ignoring case.
func ByIntention(intention string) []Meditation {
	if intention == "" || intention == All {
		return List()
	}
	var out []Meditation
	for _, m := range mustLoad() {
		if strings.EqualFold(m.Intention, intention) {
			out = append(out, m)
		}
	}
	return out
}

// FormatTime renders whole seconds as MM:SS. Negative input renders as 00:00.
func FormatTime(seconds int) string {
	seconds = max(seconds, 0)
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
