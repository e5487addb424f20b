package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/litescript/ls-cosmos/internal/natal"
)

type natalPanel struct {
	d      *natal.Deriver
	date   field
	clock  field
	active int // 0 date, 1 time, -1 not editing
	chart  *natal.Chart
	err    error
	scroll int
}

func newNatalPanel(d *natal.Deriver, deps Deps) *natalPanel {
	return &natalPanel{
		d:      d,
		date:   newField("AAAA-MM-DD", 10, digitsAnd('-')),
		clock:  newField("HH:MM", 5, digitsAnd(':')),
		active: -1,
	}
}

func (p *natalPanel) Capturing() bool { return p.active >= 0 }

func (p *natalPanel) focus(i int) {
	p.active = i
	p.date.focused = i == 0
	p.clock.focused = i == 1
}

func (p *natalPanel) Update(msg tea.KeyMsg, feature string) tea.Cmd {
	if p.active >= 0 {
		switch msg.Type {
		case tea.KeyEsc:
			p.focus(-1)
		case tea.KeyTab, tea.KeyDown:
			p.focus(1 - p.active)
		case tea.KeyEnter:
			if p.active == 0 {
				p.focus(1)
			} else {
				p.focus(-1)
				p.generate()
			}
		default:
			if p.active == 0 {
				p.date.update(msg)
			} else {
				p.clock.update(msg)
			}
		}
		return nil
	}

	switch {
	case isKey(msg, "enter", "e"):
		p.focus(0)
	case isKey(msg, "down", "j"):
		p.scroll++
	case isKey(msg, "up", "k"):
		p.scroll = max(0, p.scroll-1)
	}
	return nil
}

func (p *natalPanel) generate() {
	c, err := p.d.GenerateChart(p.date.text(), p.clock.text())
	p.err = err
	p.scroll = 0
	if err != nil {
		p.chart = nil
		return
	}
	p.chart = &c
}

func (p *natalPanel) View(feature string, width int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s   %s %s\n",
		mutedStyle.Render("Data:"), p.date.view(),
		mutedStyle.Render("Hora:"), p.clock.view())
	if p.err != nil {
		b.WriteString(errorStyle.Render(p.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if p.chart == nil {
		b.WriteString(dimStyle.Render("enter: informar nascimento"))
		return b.String()
	}
	c := p.chart

	var lines []string
	switch feature {
	case "planets":
		lines = append(lines, section("Planetas", width), "")
		for _, pl := range c.Planets {
			lines = append(lines,
				fmt.Sprintf("%s %s em %s", pl.Icon, titleStyle.Render(pl.Name), textStyle.Render(pl.Sign.Name)),
				wrap(pl.Meaning, width),
				wrap(pl.Analysis, width),
				"")
		}
	case "houses":
		lines = append(lines, section("12 Casas", width), "")
		for _, h := range c.Houses {
			lines = append(lines,
				fmt.Sprintf("%s %s %s", accentStyle.Render(fmt.Sprintf("%2d", h.Number)), titleStyle.Render(h.Name), mutedStyle.Render(h.Sign.Symbol+" "+h.Sign.Name)),
				wrap(h.Analysis, width),
				"")
		}
	default:
		lines = append(lines, section("Mapa Natal", width), "")
		for _, bt := range []struct {
			label, key string
			sign       string
		}{
			{"Sol", "sun", c.Sun.Symbol + " " + c.Sun.Name},
			{"Lua", "moon", c.Moon.Symbol + " " + c.Moon.Name},
			{"Ascendente", "ascendant", c.Ascendant.Symbol + " " + c.Ascendant.Name},
		} {
			lines = append(lines,
				fmt.Sprintf("%-11s %s", accentStyle.Render(bt.label), titleStyle.Render(bt.sign)),
				wrap(p.d.Meaning(bt.key), width),
				"")
		}
	}

	text := strings.Join(lines, "\n")
	rows := strings.Split(text, "\n")
	start := min(p.scroll, max(0, len(rows)-1))
	b.WriteString(strings.Join(rows[start:], "\n"))
	return b.String()
}
