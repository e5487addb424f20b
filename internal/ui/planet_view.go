package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-cosmos/internal/catalog"
	"github.com/litescript/ls-cosmos/internal/modules"
)

const (
	sidebarWidth = 22
	loadingText  = "Alinhando os astros..."
)

// PlanetModel is the close view: a planet sidebar, the followed planet and
// the module content behind tabbed features.
type PlanetModel struct {
	width   int
	height  int
	planets []catalog.Planet
	planet  catalog.Planet
	feature int
}

// NewPlanetModel creates the planet view.
func NewPlanetModel(planets []catalog.Planet) PlanetModel {
	return PlanetModel{planets: planets}
}

// SetSize updates the viewport size.
func (m PlanetModel) SetSize(width, height int) PlanetModel {
	m.width = width
	m.height = height
	return m
}

// SetPlanet shows p and selects its first feature.
func (m PlanetModel) SetPlanet(p catalog.Planet) PlanetModel {
	m.planet = p
	m.feature = 0
	return m
}

// Planet returns the displayed planet.
func (m PlanetModel) Planet() catalog.Planet {
	return m.planet
}

// Feature returns the id of the active feature tab.
func (m PlanetModel) Feature() string {
	if len(m.planet.Features) == 0 {
		return ""
	}
	return m.planet.Features[m.feature].ID
}

// CycleFeature moves the active tab by step, wrapping.
func (m PlanetModel) CycleFeature(step int) PlanetModel {
	n := len(m.planet.Features)
	if n > 0 {
		m.feature = ((m.feature+step)%n + n) % n
	}
	return m
}

// Neighbor returns the planet step places away in orbit order.
func (m PlanetModel) Neighbor(step int) catalog.Planet {
	n := len(m.planets)
	for i, p := range m.planets {
		if p.ID == m.planet.ID {
			return m.planets[((i+step)%n+n)%n]
		}
	}
	return m.planet
}

func (m PlanetModel) contentWidth() int {
	return max(20, m.width-sidebarWidth-4)
}

// View renders the sidebar, a small follow view and the content panel.
func (m PlanetModel) View(f sceneFrame, panel Panel, status modules.Status, loadErr error) string {
	side := m.renderSidebar(f)

	var body strings.Builder
	body.WriteString(hexStyle(m.planet.Color).Bold(true).Render(m.planet.Name + " · " + m.planet.Label))
	body.WriteString("\n")
	body.WriteString(m.renderTabs())
	body.WriteString("\n\n")

	width := m.contentWidth()
	switch status {
	case modules.StatusReady:
		body.WriteString(panel.View(m.Feature(), width))
	case modules.StatusFailed:
		body.WriteString(errorStyle.Render(fmt.Sprintf("Falha ao carregar modulo: %v", loadErr)))
	default:
		body.WriteString(accentStyle.Render(loadingText))
	}

	content := lipgloss.NewStyle().
		Width(width).
		MaxHeight(max(1, m.height)).
		Render(body.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, side, "  ", content)
}

func (m PlanetModel) renderTabs() string {
	titles := make([]string, len(m.planet.Features))
	for i, ft := range m.planet.Features {
		titles[i] = ft.Icon + " " + ft.Title
	}
	return choice(titles, m.feature)
}

func (m PlanetModel) renderSidebar(f sceneFrame) string {
	var b strings.Builder
	for _, p := range m.planets {
		line := fmt.Sprintf("%-18s", p.Name)
		if p.ID == m.planet.ID {
			b.WriteString(hexStyle(p.Color).Bold(true).Render("▶ " + line))
		} else {
			b.WriteString(dimStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	miniH := min(10, max(0, m.height-len(m.planets)-2))
	if miniH >= 4 {
		f.focus = m.planet.ID
		mini, _ := renderScene(f, sidebarWidth, miniH)
		b.WriteString(mini)
	}
	return lipgloss.NewStyle().Width(sidebarWidth).Render(b.String())
}
