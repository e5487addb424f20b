package ui

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/litescript/ls-cosmos/internal/dreams"
)

type dreamsPanel struct {
	dict     *dreams.Dictionary
	journal  *dreams.Journal
	deps     Deps
	query    field
	entry    field
	category int
	cursor   int
	status   string
}

func newDreamsPanel(dict *dreams.Dictionary, deps Deps) *dreamsPanel {
	return &dreamsPanel{
		dict:    dict,
		journal: dreams.NewJournal(dict),
		deps:    deps,
		query:   newField("/ buscar simbolo", 30, nil),
		entry:   newField("n: registrar um sonho", 280, nil),
	}
}

func (p *dreamsPanel) Capturing() bool { return p.query.focused || p.entry.focused }

func (p *dreamsPanel) categoryID() string {
	return p.dict.AllCategories()[p.category].ID
}

func (p *dreamsPanel) results(feature string) []dreams.Symbol {
	switch feature {
	case "categories":
		return p.dict.Search("", p.categoryID())
	case "search":
		return p.dict.Search(p.query.text(), dreams.All)
	}
	return nil
}

func (p *dreamsPanel) Update(msg tea.KeyMsg, feature string) tea.Cmd {
	if p.query.focused {
		if msg.Type == tea.KeyEnter || msg.Type == tea.KeyEsc {
			p.query.focused = false
		} else if p.query.update(msg) {
			p.cursor = 0
		}
		return nil
	}
	if p.entry.focused {
		switch msg.Type {
		case tea.KeyEsc:
			p.entry.focused = false
		case tea.KeyEnter:
			p.entry.focused = false
			p.save()
		default:
			p.entry.update(msg)
		}
		return nil
	}

	switch feature {
	case "journal":
		entries := p.journal.Entries()
		switch {
		case isKey(msg, "n", "enter"):
			p.entry.focused = true
		case isKey(msg, "x", "delete") && len(entries) > 0:
			if err := p.journal.Remove(entries[min(p.cursor, len(entries)-1)].ID); err != nil {
				p.status = err.Error()
			}
			p.cursor = max(0, min(p.cursor, p.journal.Len()-1))
		case isKey(msg, "down", "j"):
			p.cursor = min(p.cursor+1, max(0, len(entries)-1))
		case isKey(msg, "up", "k"):
			p.cursor = max(0, p.cursor-1)
		}
	default:
		n := len(p.results(feature))
		switch {
		case feature == "search" && isKey(msg, "/"):
			p.query.focused = true
		case feature == "categories" && isKey(msg, "left", "h"):
			k := len(p.dict.AllCategories())
			p.category = (p.category + k - 1) % k
			p.cursor = 0
		case feature == "categories" && isKey(msg, "right", "l"):
			p.category = (p.category + 1) % len(p.dict.AllCategories())
			p.cursor = 0
		case isKey(msg, "down", "j"):
			p.cursor = min(p.cursor+1, max(0, n-1))
		case isKey(msg, "up", "k"):
			p.cursor = max(0, p.cursor-1)
		}
	}
	return nil
}

func (p *dreamsPanel) save() {
	e, err := p.journal.Add(p.entry.value)
	if err != nil {
		p.status = err.Error()
		return
	}
	p.entry.value = ""
	p.cursor = 0
	p.status = fmt.Sprintf("sonho registrado, %d simbolos", len(e.Symbols))
	p.deps.Log.Debug("journal entry %s with %d symbols", e.ID, len(e.Symbols))
}

func (p *dreamsPanel) View(feature string, width int) string {
	var b strings.Builder
	switch feature {
	case "journal":
		b.WriteString(section("Diario Onirico", width))
		b.WriteString("\n\n")
		b.WriteString(p.entry.view())
		b.WriteString("\n")
		if p.status != "" {
			b.WriteString(mutedStyle.Render(p.status))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		now := p.deps.Now()
		for i, e := range p.journal.Entries() {
			when := humanize.RelTime(e.Date, now, "ago", "from now")
			head := fmt.Sprintf("%s  %s", when, strings.Join(e.Symbols, ", "))
			if i == p.cursor {
				b.WriteString(activeStyle.Render("▶ " + head))
			} else {
				b.WriteString(mutedStyle.Render("  " + head))
			}
			b.WriteString("\n")
			b.WriteString(wrap(e.Text, width))
			b.WriteString("\n")
		}
		if p.journal.Len() > 0 {
			if rec := recurring(p.journal.Recurring()); rec != "" {
				b.WriteString("\n")
				b.WriteString(mutedStyle.Render("Recorrentes: "))
				b.WriteString(textStyle.Render(rec))
				b.WriteString("\n")
			}
			b.WriteString(dimStyle.Render("x: apagar"))
		}
		return b.String()

	case "categories":
		b.WriteString(section("Categorias", width))
		b.WriteString("\n\n")
		labels := make([]string, 0, 9)
		for _, c := range p.dict.AllCategories() {
			labels = append(labels, c.Label)
		}
		b.WriteString(wrap(choice(labels, p.category), width))
		b.WriteString("\n\n")

	default:
		b.WriteString(section("Buscar Simbolos", width))
		b.WriteString("\n\n")
		b.WriteString(p.query.view())
		b.WriteString("\n\n")
	}

	res := p.results(feature)
	if len(res) == 0 {
		b.WriteString(dimStyle.Render("nenhum simbolo encontrado"))
		return b.String()
	}
	cur := min(p.cursor, len(res)-1)
	lo := max(0, min(cur-4, len(res)-9))
	for i := lo; i < min(lo+9, len(res)); i++ {
		if i == cur {
			b.WriteString(activeStyle.Render("▶ " + res[i].Symbol))
		} else {
			b.WriteString(dimStyle.Render("  " + res[i].Symbol))
		}
		b.WriteString("\n")
	}
	sel := res[cur]
	b.WriteString("\n")
	b.WriteString(titleStyle.Render(sel.Symbol))
	b.WriteString("\n")
	b.WriteString(wrap(sel.Meaning, width))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(strings.Join(sel.Emotions, " · ")))
	return b.String()
}

// recurring lists symbols seen in more than one entry, most frequent first.
func recurring(counts map[string]int) string {
	type kv struct {
		sym string
		n   int
	}
	var out []kv
	for sym, n := range counts {
		if n > 1 {
			out = append(out, kv{sym, n})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].n != out[j].n {
			return out[i].n > out[j].n
		}
		return out[i].sym < out[j].sym
	})
	parts := make([]string, len(out))
	for i, e := range out {
		parts[i] = fmt.Sprintf("%s ×%d", e.sym, e.n)
	}
	return strings.Join(parts, ", ")
}
