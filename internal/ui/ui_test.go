package ui

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/litescript/ls-cosmos/internal/catalog"
	"github.com/litescript/ls-cosmos/internal/modules"
	"github.com/litescript/ls-cosmos/internal/rng"
	"github.com/litescript/ls-cosmos/internal/scene"
	"github.com/litescript/ls-cosmos/internal/state"
)

var testNow = time.Date(2025, 3, 14, 21, 0, 0, 0, time.UTC)

// stubPanel records the keys it receives.
type stubPanel struct {
	mu        sync.Mutex
	keys      []string
	features  []string
	capturing bool
	ticks     int
}

func (p *stubPanel) Update(msg tea.KeyMsg, feature string) tea.Cmd {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys = append(p.keys, msg.String())
	p.features = append(p.features, feature)
	return nil
}

func (p *stubPanel) View(feature string, width int) string {
	return "stub:" + feature
}

func (p *stubPanel) Capturing() bool { return p.capturing }

func (p *stubPanel) Tick(time.Duration) { p.ticks++ }

func (p *stubPanel) received() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.keys...)
}

type harness struct {
	t     *testing.T
	m     Model
	st    *state.Manager
	reg   *modules.Registry[Panel]
	clock time.Time
}

func newHarness(t *testing.T, opts Options, reg *modules.Registry[Panel]) *harness {
	t.Helper()
	cat := catalog.Default()
	if reg == nil {
		reg = modules.NewRegistry[Panel]()
		deps := Deps{Catalog: cat, Rand: rng.New(7), Now: func() time.Time { return testNow }}
		if err := RegisterPanels(reg, deps); err != nil {
			t.Fatalf("RegisterPanels: %v", err)
		}
	}
	st := state.NewManager(state.DefaultConfig())
	opts.Now = func() time.Time { return testNow }
	m := New(st, scene.New(cat, nil), reg, opts)
	t.Cleanup(m.Close)

	h := &harness{t: t, m: m, st: st, reg: reg, clock: testNow}
	h.send(tea.WindowSizeMsg{Width: 140, Height: 48})
	return h
}

func (h *harness) send(msg tea.Msg) tea.Cmd {
	updated, cmd := h.m.Update(msg)
	h.m = updated.(Model)
	return cmd
}

func (h *harness) key(s string) {
	switch s {
	case "enter":
		h.send(tea.KeyMsg{Type: tea.KeyEnter})
	case "esc":
		h.send(tea.KeyMsg{Type: tea.KeyEsc})
	case "tab":
		h.send(tea.KeyMsg{Type: tea.KeyTab})
	default:
		h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	}
}

// tick advances the animation clock by one frame.
func (h *harness) tick() {
	h.clock = h.clock.Add(frameInterval)
	h.send(AnimTickMsg(h.clock))
}

// settle ticks until the session stops transitioning.
func (h *harness) settle() {
	h.t.Helper()
	for range 100 {
		if !h.m.Session().IsTransitioning {
			return
		}
		h.tick()
	}
	h.t.Fatalf("still transitioning: %+v", h.m.Session())
}

func stubRegistry(cat *catalog.Catalog, p *stubPanel, release <-chan struct{}) *modules.Registry[Panel] {
	reg := modules.NewRegistry[Panel]()
	for _, pl := range cat.Planets() {
		reg.Register(pl.ID, func(context.Context) (Panel, error) {
			if release != nil {
				<-release
			}
			return p, nil
		})
	}
	return reg
}

func TestNavigation_ZoomAndReturn(t *testing.T) {
	h := newHarness(t, DefaultOptions(), nil)

	h.send(SelectPlanetMsg{PlanetID: "mars"})
	if got := h.m.Session().CurrentView; got != state.TransitioningToPlanet {
		t.Fatalf("view after select = %s, want %s", got, state.TransitioningToPlanet)
	}

	frames := 0
	for h.m.Session().IsTransitioning && frames < 100 {
		h.tick()
		frames++
	}
	s := h.m.Session()
	if s.CurrentView != state.PlanetView || s.SelectedPlanetID != "mars" {
		t.Fatalf("session after zoom = %+v", s)
	}
	// 1200ms at 80ms per frame
	if frames != 15 {
		t.Errorf("zoom took %d frames, want 15", frames)
	}
	if !h.m.cam.Following() {
		t.Error("camera should follow the planet after the zoom")
	}
	if got := h.m.planet.Planet().ID; got != "mars" {
		t.Errorf("planet view shows %q, want mars", got)
	}

	h.key("esc")
	if got := h.m.Session().CurrentView; got != state.TransitioningToGalaxy {
		t.Fatalf("view after esc = %s, want %s", got, state.TransitioningToGalaxy)
	}
	if h.m.cam.Following() {
		t.Error("camera should stop following on return")
	}
	h.settle()
	s = h.m.Session()
	if s.CurrentView != state.GalaxyView || s.HasSelection() {
		t.Errorf("session after return = %+v", s)
	}
}

func TestNavigation_KeysIgnoredWhileTransitioning(t *testing.T) {
	h := newHarness(t, DefaultOptions(), nil)

	h.send(SelectPlanetMsg{PlanetID: "venus"})
	focus := h.m.galaxy.Focused().ID

	h.key("esc")
	h.key("j")
	h.key("]")
	h.send(SelectPlanetMsg{PlanetID: "saturn"})

	s := h.m.Session()
	if s.CurrentView != state.TransitioningToPlanet || s.SelectedPlanetID != "venus" {
		t.Errorf("session = %+v, want transition to venus", s)
	}
	if got := h.m.galaxy.Focused().ID; got != focus {
		t.Errorf("focus moved to %s during transition", got)
	}
}

func TestNavigation_GalaxyKeys(t *testing.T) {
	h := newHarness(t, DefaultOptions(), nil)

	first := h.m.galaxy.Focused().ID
	h.key("j")
	if got := h.m.galaxy.Focused().ID; got == first {
		t.Errorf("j did not move focus from %s", first)
	}
	h.key("k")
	if got := h.m.galaxy.Focused().ID; got != first {
		t.Errorf("k focus = %s, want %s", got, first)
	}

	var cmd tea.Cmd
	h.m.galaxy, cmd = h.m.galaxy.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter should produce a command")
	}
	msg, ok := cmd().(SelectPlanetMsg)
	if !ok || msg.PlanetID != first {
		t.Errorf("enter produced %#v, want SelectPlanetMsg{%s}", msg, first)
	}
}

func TestNavigation_NoAnimSwitchPlanet(t *testing.T) {
	opts := DefaultOptions()
	opts.NoAnim = true
	h := newHarness(t, opts, nil)

	h.send(SelectPlanetMsg{PlanetID: "mercury"})
	h.tick()
	if got := h.m.Session().CurrentView; got != state.PlanetView {
		t.Fatalf("view after one frame = %s, want %s", got, state.PlanetView)
	}

	h.key("]")
	if got := h.m.Session().SelectedPlanetID; got != "venus" {
		t.Errorf("] selected %q, want venus", got)
	}
	h.settle()

	h.key("[")
	h.settle()
	h.key("[")
	h.settle()
	if got := h.m.Session().SelectedPlanetID; got != "neptune" {
		t.Errorf("[ wrapped to %q, want neptune", got)
	}
	if got := h.m.planet.Planet().ID; got != "neptune" {
		t.Errorf("planet view shows %q, want neptune", got)
	}
}

func TestPanel_PlaceholderUntilLoaded(t *testing.T) {
	cat := catalog.Default()
	stub := &stubPanel{}
	release := make(chan struct{})
	opts := DefaultOptions()
	opts.NoAnim = true
	h := newHarness(t, opts, stubRegistry(cat, stub, release))

	h.send(SelectPlanetMsg{PlanetID: "mercury"})
	h.tick()
	if !strings.Contains(h.m.View(), loadingText) {
		t.Error("view should show the loading text while the module loads")
	}

	close(release)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if _, err := h.reg.Wait(ctx, "mercury"); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if !strings.Contains(h.m.View(), "stub:daily") {
		t.Error("view should show the loaded panel")
	}
}

func TestPanel_KeyRouting(t *testing.T) {
	cat := catalog.Default()
	stub := &stubPanel{}
	opts := DefaultOptions()
	opts.NoAnim = true
	h := newHarness(t, opts, stubRegistry(cat, stub, nil))

	h.send(SelectPlanetMsg{PlanetID: "mercury"})
	h.tick()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if _, err := h.reg.Wait(ctx, "mercury"); err != nil {
		t.Fatalf("Wait: %v", err)
	}

	h.key("x")
	h.key("tab")
	h.key("y")
	if got := h.m.planet.Feature(); got != "lucky" {
		t.Errorf("feature after tab = %q, want lucky", got)
	}
	got := stub.received()
	if len(got) != 2 || got[0] != "x" || got[1] != "y" {
		t.Fatalf("panel keys = %v, want [x y]", got)
	}
	if stub.features[0] != "daily" || stub.features[1] != "lucky" {
		t.Errorf("panel features = %v, want [daily lucky]", stub.features)
	}

	// A capturing panel sees keys the root would otherwise handle.
	stub.capturing = true
	h.key("q")
	h.key("esc")
	if h.m.Session().CurrentView != state.PlanetView {
		t.Error("esc should reach the capturing panel, not return to galaxy")
	}
	if got := stub.received(); len(got) != 4 || got[2] != "q" || got[3] != "esc" {
		t.Errorf("capturing panel keys = %v", got)
	}

	h.tick()
	if stub.ticks == 0 {
		t.Error("animated panel should be ticked")
	}
}

func TestPanel_LoadFailure(t *testing.T) {
	cat := catalog.Default()
	reg := modules.NewRegistry[Panel]()
	for _, p := range cat.Planets() {
		reg.Register(p.ID, func(context.Context) (Panel, error) {
			panic("corrupt deck")
		})
	}
	opts := DefaultOptions()
	opts.NoAnim = true
	h := newHarness(t, opts, reg)

	h.send(SelectPlanetMsg{PlanetID: "mars"})
	h.tick()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if _, err := reg.Wait(ctx, "mars"); err == nil {
		t.Fatal("Wait should report the loader panic")
	}
	if !strings.Contains(h.m.View(), "Falha ao carregar") {
		t.Error("view should report the failed module")
	}
	if h.m.Session().CurrentView != state.PlanetView {
		t.Error("a failed module should not block navigation")
	}
}

func TestQualityChangeReachesView(t *testing.T) {
	h := newHarness(t, DefaultOptions(), nil)

	h.st.DeclineQuality()
	h.tick()
	if got := h.m.Session().QualityLevel; got != state.QualityMedium {
		t.Errorf("quality = %s, want %s", got, state.QualityMedium)
	}
}

func TestClose_ResetsMidTransition(t *testing.T) {
	h := newHarness(t, DefaultOptions(), nil)

	h.send(SelectPlanetMsg{PlanetID: "jupiter"})
	h.tick()
	h.m.Close()

	s := h.st.Session()
	if s.CurrentView != state.GalaxyView || s.IsTransitioning || s.HasSelection() {
		t.Errorf("session after Close = %+v", s)
	}
}

func TestEventLogToggle(t *testing.T) {
	h := newHarness(t, DefaultOptions(), nil)

	h.send(SelectPlanetMsg{PlanetID: "moon"})
	h.settle()
	h.key("L")
	view := h.m.View()
	if !strings.Contains(view, "Event Log") || !strings.Contains(view, "select moon") {
		t.Error("event log should list the selection")
	}
	h.key("L")
	if strings.Contains(h.m.View(), "Event Log") {
		t.Error("second L should close the log")
	}
}

func TestHit(t *testing.T) {
	positions := []screenPos{{id: "a", x: 10, y: 5}, {id: "b", x: 14, y: 5}}
	tests := []struct {
		x, y int
		want string
		ok   bool
	}{
		{10, 5, "a", true},
		{11, 5, "a", true},
		{13, 6, "b", true},
		{10, 8, "", false},
		{30, 5, "", false},
	}
	for _, tt := range tests {
		got, ok := hit(positions, tt.x, tt.y)
		if got != tt.want || ok != tt.ok {
			t.Errorf("hit(%d, %d) = %q, %v, want %q, %v", tt.x, tt.y, got, ok, tt.want, tt.ok)
		}
	}
}

func TestGradientColor(t *testing.T) {
	if got := gradientColor(0, 0, 10, 6); got != "#4C46DC" {
		t.Errorf("gradientColor(0, 0) = %s, want #4C46DC", got)
	}
	if top, bottom := gradientColor(5, 0, 10, 6), gradientColor(5, 5, 10, 6); top <= bottom {
		t.Errorf("bottom row %s should be darker than top %s", bottom, top)
	}
}
