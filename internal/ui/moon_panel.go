package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/litescript/ls-cosmos/internal/lunar"
)

type moonPanel struct {
	deps   Deps
	month  time.Time // first day of the displayed calendar month
	ritual int
}

func newMoonPanel(deps Deps) *moonPanel {
	now := deps.Now()
	return &moonPanel{
		deps:   deps,
		month:  time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC),
		ritual: lunar.PhaseIndex(now),
	}
}

func (p *moonPanel) Capturing() bool { return false }

func (p *moonPanel) Update(msg tea.KeyMsg, feature string) tea.Cmd {
	step := 0
	switch {
	case isKey(msg, "left", "h"):
		step = -1
	case isKey(msg, "right", "l"):
		step = 1
	default:
		return nil
	}
	switch feature {
	case "calendar":
		p.month = p.month.AddDate(0, step, 0)
	case "rituals":
		p.ritual = (p.ritual + step + lunar.Phases) % lunar.Phases
	}
	return nil
}

func (p *moonPanel) View(feature string, width int) string {
	switch feature {
	case "calendar":
		return p.calendarView(width)
	case "rituals":
		return p.ritualView(width)
	default:
		return p.todayView(width)
	}
}

func (p *moonPanel) todayView(width int) string {
	now := p.deps.Now()
	idx := lunar.PhaseIndex(now)
	info := lunar.Phase(idx)

	var b strings.Builder
	b.WriteString(section("Fase Atual", width))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "  %s  %s\n", info.Symbol, titleStyle.Render(info.Name))
	fmt.Fprintf(&b, "  %s %d%%   %s %.1f dias\n\n",
		mutedStyle.Render("Iluminacao:"), lunar.Illumination(idx),
		mutedStyle.Render("Proxima lua nova:"), lunar.DaysUntilNew(now))
	b.WriteString(accentStyle.Render(info.Energy))
	b.WriteString("\n")
	b.WriteString(wrap(info.Meaning, width))
	b.WriteString("\n\n")
	for _, tip := range info.Tips {
		b.WriteString(wrap("• "+tip, width))
		b.WriteString("\n")
	}
	return b.String()
}

func (p *moonPanel) calendarView(width int) string {
	year, month := p.month.Year(), p.month.Month()
	days := lunar.MonthPhases(year, month)

	var b strings.Builder
	b.WriteString(section(fmt.Sprintf("%s %d", lunar.MonthName(month), year), width))
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render(" Dom  Seg  Ter  Qua  Qui  Sex  Sab"))
	b.WriteString("\n")

	today := p.deps.Now()
	lead := int(p.month.Weekday())
	b.WriteString(strings.Repeat("     ", lead))
	for i, d := range days {
		cell := fmt.Sprintf("%2d%s ", d.Day, lunar.Phase(d.Phase).Symbol)
		if today.Year() == year && today.Month() == month && today.Day() == d.Day {
			cell = activeStyle.Render(cell)
		} else {
			cell = textStyle.Render(cell)
		}
		b.WriteString(cell)
		if (lead+i+1)%7 == 0 {
			b.WriteString("\n")
		}
	}
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("←/→ mes"))
	return b.String()
}

func (p *moonPanel) ritualView(width int) string {
	r := lunar.RitualFor(p.ritual)

	var b strings.Builder
	b.WriteString(section(r.Icon+" "+r.Name, width))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "%s  %s\n", hexStyle(lunar.ElementColor(r.Element)).Render(r.Phase), mutedStyle.Render(r.Intention))
	fmt.Fprintf(&b, "%s %s   %s %s\n\n",
		mutedStyle.Render("Duracao:"), r.Duration,
		mutedStyle.Render("Melhor horario:"), r.BestTime)
	b.WriteString(accentStyle.Render("Materiais"))
	b.WriteString("\n")
	b.WriteString(wrap(strings.Join(r.Materials, ", "), width))
	b.WriteString("\n\n")
	for i, s := range r.Steps {
		b.WriteString(wrap(fmt.Sprintf("%d. %s: %s", i+1, s.Title, s.Description), width))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(titleStyle.Render(wrap("\""+r.Affirmation+"\"", width)))
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("←/→ fase"))
	return b.String()
}
