package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/litescript/ls-cosmos/internal/tarot"
)

type tarotPanel struct {
	e       *tarot.Engine
	deps    Deps
	cards   []tarot.DrawnCard
	reading tarot.Reading
	err     error
	cursor  int
}

func newTarotPanel(e *tarot.Engine, deps Deps) *tarotPanel {
	return &tarotPanel{e: e, deps: deps}
}

func (p *tarotPanel) Capturing() bool { return false }

func (p *tarotPanel) Update(msg tea.KeyMsg, feature string) tea.Cmd {
	switch feature {
	case "major":
		n := len(p.e.Deck())
		switch {
		case isKey(msg, "down", "j"):
			p.cursor = (p.cursor + 1) % n
		case isKey(msg, "up", "k"):
			p.cursor = (p.cursor + n - 1) % n
		}
	case "guide":
	default:
		switch {
		case isKey(msg, "enter", " ", "d"):
			p.draw()
		case isKey(msg, "r"):
			p.cards = nil
			p.err = nil
		}
	}
	return nil
}

func (p *tarotPanel) draw() {
	p.cards = p.e.Draw(p.deps.Rand)
	p.reading, p.err = p.e.GenerateReading(p.cards, p.deps.Rand)
	if p.err != nil {
		p.deps.Log.Warn("tarot reading: %v", p.err)
	}
}

func (p *tarotPanel) View(feature string, width int) string {
	switch feature {
	case "major":
		return p.deckView(width)
	case "guide":
		return p.guideView(width)
	default:
		return p.spreadView(width)
	}
}

func (p *tarotPanel) spreadView(width int) string {
	var b strings.Builder
	b.WriteString(section("Tiragem", width))
	b.WriteString("\n\n")
	if len(p.cards) == 0 {
		b.WriteString(dimStyle.Render("enter: tirar tres cartas"))
		return b.String()
	}
	if p.err != nil {
		b.WriteString(errorStyle.Render(p.err.Error()))
		return b.String()
	}

	for _, c := range p.cards {
		orient := "normal"
		if c.Reversed {
			orient = "invertida"
		}
		fmt.Fprintf(&b, "%-9s %s %s %s\n",
			mutedStyle.Render(c.Position),
			accentStyle.Render(c.Card.Numeral),
			titleStyle.Render(c.Card.Name),
			dimStyle.Render("("+orient+")"))
	}
	b.WriteString("\n")
	b.WriteString(wrap(p.reading.Narrative, width))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "%s %s\n", mutedStyle.Render("Energia:"), textStyle.Render(tarot.EnergyLabel(p.reading.Energy)))
	b.WriteString(wrap(p.reading.Advice, width))
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("enter: nova tiragem | r: limpar"))
	return b.String()
}

func (p *tarotPanel) deckView(width int) string {
	deck := p.e.Deck()
	c := deck[p.cursor]

	var b strings.Builder
	b.WriteString(section("Arcanos Maiores", width))
	b.WriteString("\n\n")
	lo := max(0, min(p.cursor-3, len(deck)-7))
	for i := lo; i < min(lo+7, len(deck)); i++ {
		line := fmt.Sprintf("%-5s %s", deck[i].Numeral, deck[i].Name)
		if i == p.cursor {
			b.WriteString(activeStyle.Render("▶ " + line))
		} else {
			b.WriteString(dimStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %s\n", titleStyle.Render(c.Name), mutedStyle.Render(p.e.GroupName(c.ID)))
	b.WriteString(mutedStyle.Render(strings.Join(c.Keywords, " · ")))
	b.WriteString("\n\n")
	b.WriteString(accentStyle.Render("Normal"))
	b.WriteString("\n")
	b.WriteString(wrap(c.Upright, width))
	b.WriteString("\n")
	b.WriteString(accentStyle.Render("Invertida"))
	b.WriteString("\n")
	b.WriteString(wrap(c.Reversed, width))
	return b.String()
}

func (p *tarotPanel) guideView(width int) string {
	var b strings.Builder
	b.WriteString(section("Como Interpretar", width))
	b.WriteString("\n\n")
	for _, pos := range []tarot.Position{tarot.Past, tarot.Present, tarot.Future} {
		b.WriteString(accentStyle.Render(pos.Label()))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(wrap("A tiragem de tres cartas le o passado, o presente e o futuro em sequencia. "+
		"Cartas invertidas suavizam, atrasam ou voltam para dentro a energia do arcano.", width))
	b.WriteString("\n\n")
	for _, e := range []tarot.Energy{tarot.Positive, tarot.Challenging, tarot.Transformative, tarot.Neutral} {
		fmt.Fprintf(&b, "  %s\n", textStyle.Render(tarot.EnergyLabel(e)))
	}
	return b.String()
}
