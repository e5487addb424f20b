package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/litescript/ls-cosmos/internal/catalog"
	"github.com/litescript/ls-cosmos/internal/horoscope"
	"github.com/litescript/ls-cosmos/internal/natal"
)

type horoscopePanel struct {
	h       *horoscope.Horoscope
	deps    Deps
	signs   []catalog.Sign
	sign    int
	reading horoscope.Reading
	err     error
}

func newHoroscopePanel(h *horoscope.Horoscope, deps Deps) *horoscopePanel {
	p := &horoscopePanel{h: h, deps: deps, signs: deps.Catalog.Signs()}
	now := deps.Now()
	p.sign = max(0, deps.Catalog.SignIndex(natal.SunSignID(int(now.Month()), now.Day())))
	p.refresh()
	return p
}

func (p *horoscopePanel) refresh() {
	p.reading, p.err = p.h.Daily(p.signs[p.sign].ID, p.deps.Now())
}

func (p *horoscopePanel) Capturing() bool { return false }

func (p *horoscopePanel) Update(msg tea.KeyMsg, _ string) tea.Cmd {
	n := len(p.signs)
	switch {
	case isKey(msg, "left", "h"):
		p.sign = (p.sign + n - 1) % n
	case isKey(msg, "right", "l"):
		p.sign = (p.sign + 1) % n
	default:
		return nil
	}
	p.refresh()
	return nil
}

func (p *horoscopePanel) View(feature string, width int) string {
	var b strings.Builder
	b.WriteString(p.signPicker())
	b.WriteString("\n\n")
	if p.err != nil {
		b.WriteString(errorStyle.Render(p.err.Error()))
		return b.String()
	}

	r := p.reading
	switch feature {
	case "lucky":
		b.WriteString(section("Numeros da Sorte", width))
		b.WriteString("\n\n")
		fmt.Fprintf(&b, "  %s %s\n", mutedStyle.Render("Numero:"), titleStyle.Render(fmt.Sprint(r.LuckyNumber)))
		fmt.Fprintf(&b, "  %s %s %s\n", mutedStyle.Render("Cor:"), r.LuckyColor.Emoji, textStyle.Render(r.LuckyColor.Name))
		fmt.Fprintf(&b, "  %s %s\n", mutedStyle.Render("Elemento:"), textStyle.Render(r.Element))
	case "compat":
		b.WriteString(section("Afinidades", width))
		b.WriteString("\n\n")
		for _, a := range r.Affinities {
			fmt.Fprintf(&b, "  %s %-12s %s\n", a.Sign.Symbol, a.Sign.Name, meter(a.Strength, 20))
		}
	default:
		b.WriteString(section(r.Text.Title, width))
		b.WriteString("\n\n")
		b.WriteString(wrap(r.Text.Overview, width))
		b.WriteString("\n\n")
		for _, row := range []struct{ label, text string }{
			{"Amor", r.Text.Love},
			{"Carreira", r.Text.Career},
			{"Saude", r.Text.Health},
			{"Conselho", r.Text.Advice},
		} {
			b.WriteString(accentStyle.Render(row.label))
			b.WriteString("\n")
			b.WriteString(wrap(row.text, width))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		for _, row := range []struct {
			label string
			v     int
		}{
			{"Amor", r.Aspects.Love},
			{"Carreira", r.Aspects.Career},
			{"Saude", r.Aspects.Health},
			{"Sorte", r.Aspects.Luck},
			{"Espirito", r.Aspects.Spirit},
			{"Energia", r.Aspects.Energy},
		} {
			fmt.Fprintf(&b, "  %-9s %s\n", row.label, meter(row.v, 20))
		}
	}
	return b.String()
}

func (p *horoscopePanel) signPicker() string {
	s := p.signs[p.sign]
	style := p.h.Element(s.Element)
	return fmt.Sprintf("%s %s %s  %s  %s",
		dimStyle.Render("◀"),
		titleStyle.Render(s.Symbol+" "+s.Name),
		dimStyle.Render("▶"),
		mutedStyle.Render(s.Dates),
		mutedStyle.Render(style.Icon+" "+style.Label))
}
