package lunar

import (
	"embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/moon.yaml
var dataFS embed.FS

// PhaseInfo describes a phase for display.
type PhaseInfo struct {
	Name    string   `yaml:"name" json:"name"`
	Symbol  string   `yaml:"symbol" json:"symbol"`
	Energy  string   `yaml:"energy" json:"energy"`
	Meaning string   `yaml:"meaning" json:"meaning"`
	Tips    []string `yaml:"tips" json:"tips"`
}

// Step is one numbered ritual instruction.
type Step struct {
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
}

// Ritual is the practice suggested for a phase.
type Ritual struct {
	Phase       string   `yaml:"phase" json:"phase"`
	Name        string   `yaml:"name" json:"name"`
	Intention   string   `yaml:"intention" json:"intention"`
	Duration    string   `yaml:"duration" json:"duration"`
	BestTime    string   `yaml:"best_time" json:"best_time"`
	Materials   []string `yaml:"materials" json:"materials"`
	Steps       []Step   `yaml:"steps" json:"steps"`
	Affirmation string   `yaml:"affirmation" json:"affirmation"`
	Element     string   `yaml:"element" json:"element"`
	Icon        string   `yaml:"icon" json:"icon"`
}

type content struct {
	Phases        []PhaseInfo       `yaml:"phases"`
	Rituals       []Ritual          `yaml:"rituals"`
	ElementColors map[string]string `yaml:"element_colors"`
}

var (
	loadOnce sync.Once
	loaded   content
	loadErr  error
)

func load() (content, error) {
	loadOnce.Do(func() {
		raw, err := dataFS.ReadFile("data/moon.yaml")
		if err != nil {
			loadErr = fmt.Errorf("read moon tables: %w", err)
			return
		}
		if err := yaml.Unmarshal(raw, &loaded); err != nil {
			loadErr = fmt.Errorf("parse moon tables: %w", err)
			return
		}
		if len(loaded.Phases) != Phases || len(loaded.Rituals) != Phases {
			loadErr = fmt.Errorf("moon tables: %d phases and %d rituals, want %d each",
				len(loaded.Phases), len(loaded.Rituals), Phases)
		}
	})
	return loaded, loadErr
}

func mustLoad() content {
	c, err := load()
	if err != nil {
		panic(fmt.Sprintf("lunar: %v", err))
	}
	return c
}

// Phase returns the display data for a phase index. Indices wrap.
func Phase(index int) PhaseInfo {
	return mustLoad().Phases[((index%Phases)+Phases)%Phases]
}

// RitualFor returns the ritual for a phase index. Indices wrap.
func RitualFor(index int) Ritual {
	return mustLoad().Rituals[((index%Phases)+Phases)%Phases]
}

// ElementColor returns the accent color for a ritual element.
func ElementColor(element string) string {
	if c, ok := mustLoad().ElementColors[element]; ok {
		return c
	}
	return "#a78bfa"
}
