package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-cosmos/internal/catalog"
)

// SelectPlanetMsg asks the root model to open a planet.
type SelectPlanetMsg struct {
	PlanetID string
}

// GalaxyModel is the wide view of every orbit. It owns keyboard focus and
// label toggles; the scene itself is rendered from the frame it is given.
type GalaxyModel struct {
	width   int
	height  int
	planets []catalog.Planet
	focus   int
	labels  bool
}

// NewGalaxyModel creates the galaxy view with the first planet focused.
func NewGalaxyModel(planets []catalog.Planet) GalaxyModel {
	return GalaxyModel{planets: planets, labels: true}
}

// SetSize updates the viewport size.
func (m GalaxyModel) SetSize(width, height int) GalaxyModel {
	m.width = width
	m.height = height
	return m
}

// Focused returns the focused planet.
func (m GalaxyModel) Focused() catalog.Planet {
	return m.planets[m.focus]
}

// FocusID moves focus to a planet by id.
func (m GalaxyModel) FocusID(id string) GalaxyModel {
	for i, p := range m.planets {
		if p.ID == id {
			m.focus = i
		}
	}
	return m
}

// Update handles input messages.
func (m GalaxyModel) Update(msg tea.Msg) (GalaxyModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || len(m.planets) == 0 {
		return m, nil
	}
	n := len(m.planets)
	switch key.String() {
	case "j", "down", "right":
		m.focus = (m.focus + 1) % n
	case "k", "up", "left":
		m.focus = (m.focus + n - 1) % n
	case "l":
		m.labels = !m.labels
	case "enter", " ":
		id := m.Focused().ID
		return m, func() tea.Msg { return SelectPlanetMsg{PlanetID: id} }
	}
	return m, nil
}

func (m GalaxyModel) canvasHeight() int {
	return max(5, m.height-3)
}

// View renders the scene and the focus HUD.
func (m GalaxyModel) View(f sceneFrame) string {
	if m.width < 40 || m.height < 10 {
		return "Terminal too small for galaxy view"
	}
	f.focus = m.Focused().ID
	f.labels = m.labels
	canvas, _ := renderScene(f, m.width, m.canvasHeight())
	return lipgloss.JoinVertical(lipgloss.Left, canvas, m.renderHUD())
}

// positions returns where each planet lands for a frame, for mouse hits.
func (m GalaxyModel) positions(f sceneFrame) []screenPos {
	_, pos := renderScene(f, m.width, m.canvasHeight())
	return pos
}

func (m GalaxyModel) renderHUD() string {
	p := m.Focused()
	var b strings.Builder
	b.WriteString(hexStyle(p.Color).Bold(true).Render("◉ " + p.Name))
	b.WriteString("  ")
	b.WriteString(textStyle.Render(p.Label))
	b.WriteString("  ")
	b.WriteString(dimStyle.Render(fmt.Sprintf("orbita %.1f", p.OrbitRadius)))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(p.Description))
	return b.String()
}
