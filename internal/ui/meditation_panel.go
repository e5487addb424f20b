package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/litescript/ls-cosmos/internal/lunar"
	"github.com/litescript/ls-cosmos/internal/meditation"
)

type meditationPanel struct {
	deps      Deps
	intention int
	cursor    int
	timer     *meditation.Timer
	breathing time.Duration
}

func newMeditationPanel(deps Deps) *meditationPanel {
	return &meditationPanel{deps: deps}
}

func (p *meditationPanel) Capturing() bool { return false }

// Tick drives the session timer and the breathing pacer.
func (p *meditationPanel) Tick(dt time.Duration) {
	p.breathing += dt
	if p.timer != nil && p.timer.Tick(dt) {
		p.deps.Log.Info("meditation %q finished", p.timer.Meditation().Title)
	}
}

func (p *meditationPanel) list(feature string) []meditation.Meditation {
	if feature == "rituals" {
		return meditation.Filter(lunar.Phase(lunar.PhaseIndex(p.deps.Now())).Name)
	}
	return meditation.ByIntention(meditation.Intentions()[p.intention])
}

func (p *meditationPanel) Update(msg tea.KeyMsg, feature string) tea.Cmd {
	if feature == "breathing" {
		if isKey(msg, "r") {
			p.breathing = 0
		}
		return nil
	}

	if p.timer != nil {
		switch {
		case isKey(msg, " ", "enter", "p"):
			p.timer.Toggle()
		case isKey(msg, "r"):
			p.timer.Reset()
		case isKey(msg, "x"):
			p.timer = nil
		}
		return nil
	}

	items := p.list(feature)
	switch {
	case feature != "rituals" && isKey(msg, "left", "h"):
		n := len(meditation.Intentions())
		p.intention = (p.intention + n - 1) % n
		p.cursor = 0
	case feature != "rituals" && isKey(msg, "right", "l"):
		p.intention = (p.intention + 1) % len(meditation.Intentions())
		p.cursor = 0
	case isKey(msg, "down", "j"):
		p.cursor = min(p.cursor+1, max(0, len(items)-1))
	case isKey(msg, "up", "k"):
		p.cursor = max(0, p.cursor-1)
	case isKey(msg, "enter") && len(items) > 0:
		p.timer = meditation.NewTimer(items[min(p.cursor, len(items)-1)], p.deps.Bell)
	}
	return nil
}

func (p *meditationPanel) View(feature string, width int) string {
	if feature == "breathing" {
		return p.breathView(width)
	}
	if p.timer != nil {
		return p.timerView(width)
	}

	var b strings.Builder
	if feature == "rituals" {
		phase := lunar.Phase(lunar.PhaseIndex(p.deps.Now()))
		b.WriteString(section("Rituais Lunares", width))
		b.WriteString("\n\n")
		fmt.Fprintf(&b, "%s %s\n\n", phase.Symbol, mutedStyle.Render(phase.Name))
	} else {
		b.WriteString(section("Meditacoes", width))
		b.WriteString("\n\n")
		b.WriteString(wrap(choice(meditation.Intentions(), p.intention), width))
		b.WriteString("\n\n")
	}

	items := p.list(feature)
	for i, m := range items {
		head := fmt.Sprintf("%s  %s", m.Title, meditation.FormatTime(m.Duration))
		if i == p.cursor {
			b.WriteString(activeStyle.Render("▶ " + head))
		} else {
			b.WriteString(textStyle.Render("  " + head))
		}
		b.WriteString("\n")
		b.WriteString(dimStyle.Render(fmt.Sprintf("    %s · %s", m.Phase, m.Intention)))
		b.WriteString("\n")
	}
	if len(items) > 0 {
		b.WriteString("\n")
		b.WriteString(wrap(items[min(p.cursor, len(items)-1)].Description, width))
		b.WriteString("\n\n")
		b.WriteString(dimStyle.Render("enter: iniciar"))
	}
	return b.String()
}

func (p *meditationPanel) timerView(width int) string {
	t := p.timer
	m := t.Meditation()

	var b strings.Builder
	b.WriteString(section(m.Title, width))
	b.WriteString("\n\n")
	secs := int((t.Remaining() + time.Second - 1) / time.Second)
	fmt.Fprintf(&b, "  %s  %s\n", titleStyle.Render(meditation.FormatTime(secs)), meter(int(t.Progress()*100), 24))
	fmt.Fprintf(&b, "  %s\n\n", accentStyle.Render("["+t.Label()+"]"))

	for i, s := range m.Steps {
		line := fmt.Sprintf("%d. %s", i+1, s)
		if i == t.Step() && t.State() != meditation.Idle {
			b.WriteString(activeStyle.Render(line))
		} else {
			b.WriteString(mutedStyle.Render(line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("espaco: iniciar/pausar | r: resetar | x: escolher outra"))
	return b.String()
}

func (p *meditationPanel) breathView(width int) string {
	phase, frac := meditation.Breath(p.breathing)

	// The bar fills while inhaling, holds full, and drains while exhaling.
	fill := 1.0
	switch phase {
	case meditation.Inhale:
		fill = frac
	case meditation.Exhale:
		fill = 1 - frac
	}

	var b strings.Builder
	b.WriteString(section("Respiracao 4-7-8", width))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "  %s\n\n", titleStyle.Render(phase.Label()))
	fmt.Fprintf(&b, "  %s\n\n", meter(int(fill*100), 30))
	b.WriteString(wrap("Inspire pelo nariz por 4 segundos, segure por 7 e expire pela boca por 8.", width))
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("r: recomecar"))
	return b.String()
}
