package ui

import (
	"strings"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
)

// field is a single-line text input. It only handles printable runes,
// backspace and ctrl+u; the owning panel decides what enter and esc mean.
type field struct {
	value    string
	limit    int
	focused  bool
	hint     string
	accepted func(rune) bool
}

func newField(hint string, limit int, accept func(rune) bool) field {
	return field{hint: hint, limit: limit, accepted: accept}
}

func (f *field) update(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyBackspace:
		if f.value != "" {
			_, size := utf8.DecodeLastRuneInString(f.value)
			f.value = f.value[:len(f.value)-size]
		}
		return true
	case tea.KeyCtrlU:
		f.value = ""
		return true
	case tea.KeySpace:
		return f.insert(' ')
	case tea.KeyRunes:
		changed := false
		for _, r := range msg.Runes {
			changed = f.insert(r) || changed
		}
		return changed
	}
	return false
}

func (f *field) insert(r rune) bool {
	if f.accepted != nil && !f.accepted(r) {
		return false
	}
	if f.limit > 0 && utf8.RuneCountInString(f.value) >= f.limit {
		return false
	}
	f.value += string(r)
	return true
}

func (f field) view() string {
	if f.value == "" && !f.focused {
		return dimStyle.Render(f.hint)
	}
	cursor := ""
	if f.focused {
		cursor = accentStyle.Render("▏")
	}
	return textStyle.Render(f.value) + cursor
}

func (f field) text() string {
	return strings.TrimSpace(f.value)
}

func digitsAnd(extra rune) func(rune) bool {
	return func(r rune) bool {
		return (r >= '0' && r <= '9') || r == extra
	}
}
