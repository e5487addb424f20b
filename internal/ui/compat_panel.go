package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/litescript/ls-cosmos/internal/catalog"
	"github.com/litescript/ls-cosmos/internal/compat"
)

type compatPanel struct {
	engine *compat.Engine
	signs  []catalog.Sign
	pick   [2]int
	focus  int
}

func newCompatPanel(deps Deps) *compatPanel {
	return &compatPanel{
		engine: compat.New(deps.Catalog),
		signs:  deps.Catalog.Signs(),
		pick:   [2]int{0, 4},
	}
}

func (p *compatPanel) Capturing() bool { return false }

func (p *compatPanel) Update(msg tea.KeyMsg, _ string) tea.Cmd {
	n := len(p.signs)
	switch {
	case isKey(msg, "up", "k", "down", "j"):
		p.focus = 1 - p.focus
	case isKey(msg, "left", "h"):
		p.pick[p.focus] = (p.pick[p.focus] + n - 1) % n
	case isKey(msg, "right", "l"):
		p.pick[p.focus] = (p.pick[p.focus] + 1) % n
	}
	return nil
}

func (p *compatPanel) scores() compat.Scores {
	return p.engine.Score(p.signs[p.pick[0]].ID, p.signs[p.pick[1]].ID)
}

func (p *compatPanel) View(feature string, width int) string {
	var b strings.Builder
	for i := range p.pick {
		s := p.signs[p.pick[i]]
		marker := "  "
		style := mutedStyle
		if i == p.focus {
			marker = "▶ "
			style = activeStyle
		}
		fmt.Fprintf(&b, "%s%s\n", style.Render(marker), style.Render(s.Symbol+" "+s.Name))
	}
	b.WriteString("\n")

	cat := compat.Category(feature)
	if cat.Label() == "" {
		cat = compat.Love
	}
	sc := p.scores()
	v := sc.Value(cat)

	b.WriteString(section(cat.Label(), width))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "  %s\n\n", meter(v, 30))
	b.WriteString(wrap(compat.Analysis(cat, v), width))
	b.WriteString("\n\n")
	for _, c := range compat.Categories {
		fmt.Fprintf(&b, "  %-9s %s\n", c.Label(), meter(sc.Value(c), 12))
	}
	return b.String()
}
