// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-cosmos/internal/camera"
	"github.com/litescript/ls-cosmos/internal/catalog"
	"github.com/litescript/ls-cosmos/internal/logging"
	"github.com/litescript/ls-cosmos/internal/modules"
	"github.com/litescript/ls-cosmos/internal/perf"
	"github.com/litescript/ls-cosmos/internal/scene"
	"github.com/litescript/ls-cosmos/internal/state"
	"github.com/litescript/ls-cosmos/internal/version"
)

const (
	frameInterval = 80 * time.Millisecond
	panelTimeout  = 10 * time.Second
	// compactHeight is the terminal height below which the logo is hidden.
	compactHeight = 32
)

// Msg types for Bubble Tea
type (
	// AnimTickMsg drives the scene, the camera and animated panels.
	AnimTickMsg time.Time

	// panelReadyMsg signals a lazily loaded panel finished loading.
	panelReadyMsg struct {
		id  string
		err error
	}
)

// Options configure the root model.
type Options struct {
	Camera camera.Config
	Perf   perf.Config
	// NoAnim makes camera flights instant and disables auto-rotation.
	NoAnim bool
	Log    *logging.Logger
	Now    func() time.Time
}

// DefaultOptions returns the interactive defaults.
func DefaultOptions() Options {
	return Options{
		Camera: camera.DefaultConfig(),
		Perf:   perf.DefaultConfig(),
	}
}

// Model is the root Bubble Tea model.
type Model struct {
	// Dependencies
	state  *state.Manager
	scene  *scene.Scene
	cam    *camera.Choreographer
	perf   *perf.Monitor
	panels *modules.Registry[Panel]
	log    *logging.Logger
	now    func() time.Time
	noAnim bool

	// Session mirror, fed by the state subscription
	sub     state.SubscriptionID
	changes chan state.Session
	session state.Session

	// UI state
	width     int
	height    int
	ready     bool
	animTick  int
	lastFrame time.Time
	showLog   bool

	planets []catalog.Planet
	byID    map[string]catalog.Planet

	// Sub-models
	galaxy GalaxyModel
	planet PlanetModel
}

// New creates the root model. The model subscribes to st; call Close when
// the program exits.
func New(st *state.Manager, sc *scene.Scene, panels *modules.Registry[Panel], opts Options) Model {
	if opts.Log == nil {
		opts.Log = logging.Discard()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	camCfg := opts.Camera
	if camCfg.Ease == nil {
		camCfg = camera.DefaultConfig()
	}
	if opts.NoAnim {
		camCfg.Duration = 0
	}

	bodies := sc.Bodies()
	planets := make([]catalog.Planet, len(bodies))
	byID := make(map[string]catalog.Planet, len(bodies))
	for i, b := range bodies {
		planets[i] = b.Planet
		byID[b.Planet.ID] = b.Planet
	}

	cam := camera.New(camCfg, nil)
	cam.SetAutoRotate(!opts.NoAnim)

	mon := perf.NewMonitor(opts.Perf)
	mon.OnDecline = func() { st.DeclineQuality() }
	mon.OnIncline = func() { st.InclineQuality() }

	changes := make(chan state.Session, 64)
	log := opts.Log.Named("ui")
	sub := st.Subscribe(func(s state.Session) {
		select {
		case changes <- s:
		default:
			log.Warn("session change dropped: %s", s.CurrentView)
		}
	})

	return Model{
		state:   st,
		scene:   sc,
		cam:     cam,
		perf:    mon,
		panels:  panels,
		log:     log,
		now:     opts.Now,
		noAnim:  opts.NoAnim,
		sub:     sub,
		changes: changes,
		session: st.Session(),
		planets: planets,
		byID:    byID,
		galaxy:  NewGalaxyModel(planets),
		planet:  NewPlanetModel(planets),
	}
}

// Close detaches the model from the session. A transition still in flight
// is reset so the session never stays stuck mid-flight.
func (m Model) Close() {
	m.state.Unsubscribe(m.sub)
	if m.state.Session().IsTransitioning {
		m.state.Reset()
	}
	m.cam.Reset()
	m.scene.Close()
}

// Session returns the session as last seen by the UI.
func (m Model) Session() state.Session {
	return m.session
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return animTickCmd()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmds = append(cmds, m.handleKey(msg))

	case tea.MouseMsg:
		cmds = append(cmds, m.handleMouse(msg))

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		contentHeight := max(1, msg.Height-m.chromeHeight())
		m.galaxy = m.galaxy.SetSize(msg.Width, contentHeight)
		m.planet = m.planet.SetSize(msg.Width, contentHeight)

	case AnimTickMsg:
		m.animate(time.Time(msg))
		cmds = append(cmds, animTickCmd())

	case SelectPlanetMsg:
		if !m.state.SelectPlanet(msg.PlanetID) {
			m.log.Debug("select %s ignored in %s", msg.PlanetID, m.state.Session().CurrentView)
		}

	case panelReadyMsg:
		if msg.err != nil {
			m.log.Error("module %s failed to load: %v", msg.id, msg.err)
		} else {
			m.log.Debug("module %s ready", msg.id)
		}
	}

	cmds = append(cmds, m.drain()...)
	return m, tea.Batch(cmds...)
}

// animate advances one frame by the wall time since the previous tick.
func (m *Model) animate(t time.Time) {
	dt := frameInterval
	if !m.lastFrame.IsZero() {
		dt = t.Sub(m.lastFrame)
	}
	m.lastFrame = t
	if dt <= 0 {
		return
	}
	m.animTick++

	m.perf.Frame(dt)
	m.scene.Advance(dt)
	m.cam.Update(dt)

	// Timers keep running while their planet is out of view.
	for _, id := range m.panels.IDs() {
		if m.panels.Status(id) != modules.StatusReady {
			continue
		}
		if p, _ := m.panels.Request(context.Background(), id); p != nil {
			if tk, ok := p.(ticker); ok {
				tk.Tick(dt)
			}
		}
	}
}

// drain applies every session change queued by the subscription, in order.
func (m *Model) drain() []tea.Cmd {
	var cmds []tea.Cmd
	for {
		select {
		case next := <-m.changes:
			prev := m.session
			m.session = next
			if cmd := m.react(prev, next); cmd != nil {
				cmds = append(cmds, cmd)
			}
		default:
			if latest := m.state.Session(); latest != m.session {
				// A change was dropped; reconcile with the final state.
				prev := m.session
				m.session = latest
				if cmd := m.react(prev, latest); cmd != nil {
					cmds = append(cmds, cmd)
				}
				continue
			}
			return cmds
		}
	}
}

// react drives the camera and panels from a session change. Camera
// completions call back into the state manager, which queues the next
// change for the same drain.
func (m *Model) react(prev, next state.Session) tea.Cmd {
	st := m.state
	var cmd tea.Cmd

	switch next.CurrentView {
	case state.TransitioningToPlanet:
		if prev.CurrentView == state.TransitioningToPlanet && prev.SelectedPlanetID == next.SelectedPlanetID {
			break
		}
		id := next.SelectedPlanetID
		if p, ok := m.byID[id]; ok {
			m.planet = m.planet.SetPlanet(p)
		}
		m.galaxy = m.galaxy.FocusID(id)
		m.cam.SetAutoRotate(false)
		m.log.Info("flying to %s", id)
		m.cam.ZoomToPlanet(m.scene.Target(id), func() { st.OnZoomComplete() })
		cmd = m.requestPanel(id)

	case state.TransitioningToGalaxy:
		if prev.CurrentView != state.TransitioningToGalaxy {
			m.log.Info("returning to galaxy")
			m.cam.ReturnToGalaxy(func() { st.OnReturnComplete() })
		}

	case state.GalaxyView:
		if prev.CurrentView != state.GalaxyView {
			if prev.CurrentView != state.TransitioningToGalaxy {
				m.cam.Reset()
			}
			m.cam.SetAutoRotate(!m.noAnim)
		}
	}

	if next.QualityLevel != prev.QualityLevel {
		m.log.Info("render quality %s -> %s (%.1f fps)", prev.QualityLevel, next.QualityLevel, m.perf.FPS())
	}
	return cmd
}

// requestPanel starts loading the panel for id and, if it is not ready yet,
// returns a command that reports when it is.
func (m *Model) requestPanel(id string) tea.Cmd {
	_, status := m.panels.Request(context.Background(), id)
	if status != modules.StatusPending {
		return nil
	}
	reg := m.panels
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), panelTimeout)
		defer cancel()
		_, err := reg.Wait(ctx, id)
		return panelReadyMsg{id: id, err: err}
	}
}

// activePanel returns the loaded panel for the selected planet.
func (m Model) activePanel() (Panel, modules.Status) {
	id := m.planet.Planet().ID
	if id == "" {
		return nil, modules.StatusUnknown
	}
	p, status := m.panels.Request(context.Background(), id)
	return p, status
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		return tea.Quit
	}

	sess := m.state.Session()
	if sess.CurrentView == state.PlanetView && !m.showLog {
		if p, status := m.activePanel(); status == modules.StatusReady && p.Capturing() {
			return p.Update(msg, m.planet.Feature())
		}
	}

	switch msg.String() {
	case "q":
		return tea.Quit
	case "L":
		m.showLog = !m.showLog
		return nil
	}
	if m.showLog {
		if msg.String() == "esc" {
			m.showLog = false
		}
		return nil
	}
	if sess.IsTransitioning {
		return nil
	}

	switch sess.CurrentView {
	case state.GalaxyView:
		var cmd tea.Cmd
		m.galaxy, cmd = m.galaxy.Update(msg)
		return cmd

	case state.PlanetView:
		switch msg.String() {
		case "esc", "backspace":
			m.state.ReturnToGalaxy()
		case "[":
			m.state.SwitchPlanet(m.planet.Neighbor(-1).ID)
		case "]":
			m.state.SwitchPlanet(m.planet.Neighbor(1).ID)
		case "tab":
			m.planet = m.planet.CycleFeature(1)
		case "shift+tab":
			m.planet = m.planet.CycleFeature(-1)
		default:
			if p, status := m.activePanel(); status == modules.StatusReady {
				return p.Update(msg, m.planet.Feature())
			}
		}
	}
	return nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return nil
	}
	sess := m.state.Session()
	if sess.CurrentView != state.GalaxyView || sess.IsTransitioning || m.showLog {
		return nil
	}
	top := strings.Count(m.renderHeader(), "\n") + 1
	id, ok := hit(m.galaxy.positions(m.frame()), msg.X, msg.Y-top)
	if !ok {
		return nil
	}
	m.galaxy = m.galaxy.FocusID(id)
	return func() tea.Msg { return SelectPlanetMsg{PlanetID: id} }
}

func (m Model) frame() sceneFrame {
	return sceneFrame{
		scene:   m.scene,
		view:    m.cam.View(),
		quality: m.session.QualityLevel,
		labels:  true,
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var content string
	switch {
	case m.showLog:
		content = renderEventLog(m.state.RecentEvents(12), m.now(), m.width)
	case m.session.CurrentView == state.PlanetView:
		p, status := m.activePanel()
		content = m.planet.View(m.frame(), p, status, m.panels.Err(m.planet.Planet().ID))
	default:
		content = m.galaxy.View(m.frame())
	}

	return m.renderFrame(content)
}

func (m Model) renderFrame(content string) string {
	header := m.renderHeader()
	footer := m.renderFooter()

	return header + "\n" + content + "\n" + footer
}

// chromeHeight is the number of rows taken by header and footer.
func (m Model) chromeHeight() int {
	return strings.Count(m.renderHeader(), "\n") + 3
}

func (m Model) renderHeader() string {
	if m.height < compactHeight {
		return titleStyle.Render("  ✦ LS-COSMOS") + "  " + m.renderStatusLine() + "\n"
	}
	return m.renderLogo() + "  " + m.renderStatusLine() + "\n"
}

var logo = []string{
	`  ██╗     ███████╗       ██████╗ ██████╗ ███████╗███╗   ███╗ ██████╗ ███████╗`,
	`  ██║     ██╔════╝      ██╔════╝██╔═══██╗██╔════╝████╗ ████║██╔═══██╗██╔════╝`,
	`  ██║     ███████╗█████╗██║     ██║   ██║███████╗██╔████╔██║██║   ██║███████╗`,
	`  ██║     ╚════██║╚════╝██║     ██║   ██║╚════██║██║╚██╔╝██║██║   ██║╚════██║`,
	`  ███████╗███████║      ╚██████╗╚██████╔╝███████║██║ ╚═╝ ██║╚██████╔╝███████║`,
	`  ╚══════╝╚══════╝       ╚═════╝ ╚═════╝ ╚══════╝╚═╝     ╚═╝ ╚═════╝ ╚══════╝`,
}

func (m Model) renderLogo() string {
	var b strings.Builder
	b.WriteString("\n")

	for row, line := range logo {
		runes := []rune(line)
		for col, r := range runes {
			color := gradientColor(col, row, len(runes), len(logo))
			b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(string(r)))
		}
		b.WriteString("\n")
	}

	b.WriteString(dimStyle.Render("  Astrologia · Tarot · Lua · Sonhos · Meditacao"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("  (c) 2025 litescript.net | v%s", version.Version)))
	b.WriteString("\n\n")

	return b.String()
}

// gradientColor returns a hex color for a position in the logo gradient.
// Deep indigo -> violet -> rose gold, dimming toward the bottom rows.
func gradientColor(col, row, width, height int) string {
	xRatio := float64(col) / float64(width)
	yRatio := float64(row) / float64(height)

	var r, g, b float64
	switch {
	case xRatio < 0.5:
		t := xRatio / 0.5
		r = 76 + t*(157-76)
		g = 70 + t*(78-70)
		b = 220 + t*(221-220)
	default:
		t := (xRatio - 0.5) / 0.5
		r = 157 + t*(244-157)
		g = 78 + t*(162-78)
		b = 221 + t*(97-221)
	}

	fade := 1.0 - yRatio*0.45
	return fmt.Sprintf("#%02X%02X%02X", clampByte(r*fade), clampByte(g*fade), clampByte(b*fade))
}

func clampByte(v float64) int {
	return max(0, min(255, int(v)))
}

func (m Model) renderStatusLine() string {
	parts := []string{m.breadcrumb()}
	parts = append(parts, dimStyle.Render(fmt.Sprintf("quality %s", m.session.QualityLevel)))
	if fps := m.perf.FPS(); fps > 0 {
		parts = append(parts, dimStyle.Render(fmt.Sprintf("%.1f fps", fps)))
	}
	return strings.Join(parts, dimStyle.Render("  |  "))
}

func (m Model) breadcrumb() string {
	crumbs := []string{"Galaxia"}
	s := m.session
	if s.HasSelection() {
		p := m.byID[s.SelectedPlanetID]
		crumbs = append(crumbs, p.Name)
		if s.CurrentView == state.PlanetView && len(p.Features) > 0 {
			crumbs = append(crumbs, p.Features[m.planet.feature].Title)
		}
	}
	last := len(crumbs) - 1
	out := dimStyle.Render(strings.Join(crumbs[:last], " › "))
	if last > 0 {
		out += dimStyle.Render(" › ")
	}
	return out + accentStyle.Render(crumbs[last])
}

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

func (m Model) renderFooter() string {
	spinner := accentStyle.Render(spinnerFrames[m.animTick%len(spinnerFrames)])

	var status string
	switch m.session.CurrentView {
	case state.TransitioningToPlanet:
		status = spinner + " " + m.renderShimmerText("Viajando para "+m.byID[m.session.SelectedPlanetID].Name+"...")
	case state.TransitioningToGalaxy:
		status = spinner + " " + m.renderShimmerText("Voltando para a galaxia...")
	default:
		if ev := m.state.RecentEvents(1); len(ev) > 0 {
			status = spinner + dimStyle.Render(" "+describeEvent(ev[0], m.now()))
		} else {
			status = spinner + dimStyle.Render(" pronto")
		}
	}

	var help string
	switch {
	case m.showLog:
		help = "L/esc: close log"
	case m.session.CurrentView == state.PlanetView:
		help = "tab: feature | [/]: planet | esc: galaxy | L: log | q: quit"
	default:
		help = "j/k: focus | enter: visit | l: labels | L: log | q: quit"
	}

	return "  " + status + "  " + dimStyle.Render("|") + "  " + dimStyle.Render(help)
}

// renderShimmerText renders text with a subtle moving shine effect.
func (m Model) renderShimmerText(text string) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}
	pos := m.animTick % (len(runes) + 8)

	var out strings.Builder
	for i, r := range runes {
		dist := abs(i - pos + 4)

		var r8, g8, b8 int
		switch {
		case dist <= 1:
			r8, g8, b8 = 180, 160, 220
		case dist <= 3:
			r8, g8, b8 = 140, 120, 180
		case dist <= 5:
			r8, g8, b8 = 110, 90, 150
		default:
			r8, g8, b8 = 80, 70, 120
		}
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", r8, g8, b8)))
		out.WriteString(style.Render(string(r)))
	}
	return out.String()
}

func animTickCmd() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return AnimTickMsg(t)
	})
}
