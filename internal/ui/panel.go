package ui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/litescript/ls-cosmos/internal/catalog"
	"github.com/litescript/ls-cosmos/internal/dreams"
	"github.com/litescript/ls-cosmos/internal/horoscope"
	"github.com/litescript/ls-cosmos/internal/logging"
	"github.com/litescript/ls-cosmos/internal/meditation"
	"github.com/litescript/ls-cosmos/internal/modules"
	"github.com/litescript/ls-cosmos/internal/natal"
	"github.com/litescript/ls-cosmos/internal/rng"
	"github.com/litescript/ls-cosmos/internal/tarot"
)

// Panel is the content shown beside the planet view. Panels are created
// lazily through the module registry and keep their state for the session.
type Panel interface {
	// Update handles a key for the active feature tab.
	Update(msg tea.KeyMsg, feature string) tea.Cmd
	// View renders the active feature tab at the given width.
	View(feature string, width int) string
	// Capturing reports whether a text field owns the keyboard.
	Capturing() bool
}

// ticker is implemented by panels that animate.
type ticker interface {
	Tick(dt time.Duration)
}

// Deps are the shared services panels are built from.
type Deps struct {
	Catalog *catalog.Catalog
	Rand    rng.Source
	Bell    meditation.Bell
	Now     func() time.Time
	Log     *logging.Logger
}

func (d Deps) withDefaults() Deps {
	if d.Catalog == nil {
		d.Catalog = catalog.Default()
	}
	if d.Rand == nil {
		d.Rand = rng.NewEntropy()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Log == nil {
		d.Log = logging.Discard()
	}
	return d
}

// RegisterPanels binds one loader per planet, keyed by planet id, according
// to the module each planet opens.
func RegisterPanels(reg *modules.Registry[Panel], deps Deps) error {
	deps = deps.withDefaults()
	for _, p := range deps.Catalog.Planets() {
		module, err := deps.Catalog.ModuleFor(p.ID)
		if err != nil {
			return err
		}
		load, err := panelLoader(module, deps)
		if err != nil {
			return fmt.Errorf("planet %s: %w", p.ID, err)
		}
		reg.Register(p.ID, load)
	}
	return nil
}

func panelLoader(module string, deps Deps) (modules.Loader[Panel], error) {
	switch module {
	case "horoscope":
		return func(context.Context) (Panel, error) {
			h, err := horoscope.New(deps.Catalog)
			if err != nil {
				return nil, err
			}
			return newHoroscopePanel(h, deps), nil
		}, nil
	case "natal":
		return func(context.Context) (Panel, error) {
			d, err := natal.NewDeriver(deps.Catalog)
			if err != nil {
				return nil, err
			}
			return newNatalPanel(d, deps), nil
		}, nil
	case "tarot":
		return func(context.Context) (Panel, error) {
			e, err := tarot.Load()
			if err != nil {
				return nil, err
			}
			return newTarotPanel(e, deps), nil
		}, nil
	case "dreams":
		return func(context.Context) (Panel, error) {
			d, err := dreams.Load()
			if err != nil {
				return nil, err
			}
			return newDreamsPanel(d, deps), nil
		}, nil
	case "compat":
		return func(context.Context) (Panel, error) {
			return newCompatPanel(deps), nil
		}, nil
	case "moon":
		return func(context.Context) (Panel, error) {
			return newMoonPanel(deps), nil
		}, nil
	case "meditation":
		return func(context.Context) (Panel, error) {
			return newMeditationPanel(deps), nil
		}, nil
	}
	return nil, fmt.Errorf("no panel for module %q", module)
}

func isKey(msg tea.KeyMsg, keys ...string) bool {
	s := msg.String()
	for _, k := range keys {
		if s == k {
			return true
		}
	}
	return false
}
