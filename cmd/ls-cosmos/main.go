// Command ls-cosmos is a terminal cosmic explorer: fly between planets that
// each open a divination module.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/litescript/ls-cosmos/internal/astro"
	"github.com/litescript/ls-cosmos/internal/catalog"
	"github.com/litescript/ls-cosmos/internal/chime"
	"github.com/litescript/ls-cosmos/internal/dreams"
	"github.com/litescript/ls-cosmos/internal/export"
	"github.com/litescript/ls-cosmos/internal/horoscope"
	"github.com/litescript/ls-cosmos/internal/logging"
	"github.com/litescript/ls-cosmos/internal/meditation"
	"github.com/litescript/ls-cosmos/internal/modules"
	"github.com/litescript/ls-cosmos/internal/natal"
	"github.com/litescript/ls-cosmos/internal/rng"
	"github.com/litescript/ls-cosmos/internal/scene"
	"github.com/litescript/ls-cosmos/internal/state"
	"github.com/litescript/ls-cosmos/internal/tarot"
	"github.com/litescript/ls-cosmos/internal/ui"
	"github.com/litescript/ls-cosmos/internal/version"
)

// CLI flags for headless mode
var (
	tarotMode     bool
	natalDate     string
	natalTime     string
	moonMonth     string
	compatPair    string
	horoscopeSign string
	dreamQuery    string
	dreamCategory string
	schemaKind    string
	jsonOut       bool
	seed          uint64
)

func main() {
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	logFile := flag.String("log-file", "", "Write TUI logs to this file")
	sound := flag.Bool("sound", false, "Ring a singing bowl when a meditation ends")
	noAnim := flag.Bool("no-anim", false, "Instant camera moves, no auto-rotation")
	quality := flag.String("quality", "high", "Starting render quality (high, medium, low)")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.BoolVar(&tarotMode, "tarot", false, "Draw a three-card tarot spread")
	flag.StringVar(&natalDate, "natal", "", "Natal chart for a birth date (YYYY-MM-DD)")
	flag.StringVar(&natalTime, "time", "12:00", "Birth time for --natal (HH:MM)")
	flag.StringVar(&moonMonth, "moon", "", "Lunar calendar for a month (YYYY-MM, or 'now')")
	flag.StringVar(&compatPair, "compat", "", "Compatibility for two signs (e.g. aries,leo)")
	flag.StringVar(&horoscopeSign, "horoscope", "", "Daily horoscope for a sign id")
	flag.StringVar(&dreamQuery, "dream", "", "Search the dream dictionary")
	flag.StringVar(&dreamCategory, "category", dreams.All, "Dream category for --dream")
	flag.StringVar(&schemaKind, "schema", "", "Print the JSON Schema for a result kind")
	flag.BoolVar(&jsonOut, "json", false, "Write headless results as JSON")
	flag.Uint64Var(&seed, "seed", 0, "Random seed (0 picks one)")
	flag.Parse()

	if *showVersion {
		fmt.Printf("ls-cosmos v%s\n", version.Version)
		return
	}

	logger := logging.New(logging.ParseLevel(*logLevel))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	if seed == 0 {
		seed = rng.EntropySeed()
	}

	headless := tarotMode || natalDate != "" || moonMonth != "" || compatPair != "" ||
		horoscopeSign != "" || dreamQuery != "" || schemaKind != ""
	if headless {
		if err := runHeadless(os.Stdout, time.Now(), logger.Named("headless")); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "ls-cosmos needs a terminal. For scripted use try --tarot, --moon now, --horoscope SIGN or --json.")
		os.Exit(2)
	}

	// stderr belongs to the TUI
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logger.SetOutput(f)
	} else {
		logger.SetOutput(io.Discard)
	}

	q, err := state.ParseQuality(*quality)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	if err := runTUI(ctx, logger, q, *sound, *noAnim); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

func runTUI(ctx context.Context, logger *logging.Logger, quality state.Quality, sound, noAnim bool) error {
	cat, err := catalog.Load()
	if err != nil {
		return err
	}

	var bell meditation.Bell = chime.Silent{}
	if sound {
		player, err := chime.NewPlayer(chime.DefaultConfig(), logger.Named("chime"))
		if err != nil {
			logger.Warn("sound disabled: %v", err)
		} else {
			defer player.Close()
			bell = player
		}
	}

	stateCfg := state.DefaultConfig()
	stateCfg.InitialQuality = quality
	stateMgr := state.NewManager(stateCfg)
	logger.Info("session %s started", stateMgr.ID())

	stars := astro.GenerateStarField(rng.New(seed), astro.DefaultStarFieldConfig())
	sc := scene.New(cat, stars)

	panels := modules.NewRegistry[ui.Panel]()
	modLog := logger.Named("modules")
	panels.OnReady(func(id string, err error) {
		if err != nil {
			modLog.Error("%s: %v", id, err)
			return
		}
		modLog.Debug("%s loaded", id)
	})
	deps := ui.Deps{
		Catalog: cat,
		Rand:    rng.New(seed),
		Bell:    bell,
		Log:     logger.Named("panel"),
	}
	if err := ui.RegisterPanels(panels, deps); err != nil {
		return err
	}

	opts := ui.DefaultOptions()
	opts.NoAnim = noAnim
	opts.Log = logger
	model := ui.New(stateMgr, sc, panels, opts)
	defer model.Close()

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	_, err = p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// runHeadless handles all headless modes without starting the TUI.
func runHeadless(w io.Writer, now time.Time, logger *logging.Logger) error {
	if schemaKind != "" {
		kind, err := export.ParseKind(schemaKind)
		if err != nil {
			return fmt.Errorf("%w (known: %v)", err, export.Kinds())
		}
		return export.WriteSchema(w, kind)
	}

	cat, err := catalog.Load()
	if err != nil {
		return err
	}

	switch {
	case tarotMode:
		logger.Debug("tarot seed %d", seed)
		r, err := export.Tarot(tarot.Default(), seed)
		if err != nil {
			return err
		}
		return emit(w, export.KindTarot, r, now, func() { export.WriteTarot(w, r) })

	case natalDate != "":
		d, err := natal.NewDeriver(cat)
		if err != nil {
			return err
		}
		c, err := d.GenerateChart(natalDate, natalTime)
		if err != nil {
			return err
		}
		return emit(w, export.KindNatal, c, now, func() { export.WriteNatal(w, c) })

	case moonMonth != "":
		year, month, err := parseMonth(moonMonth, now)
		if err != nil {
			return err
		}
		r := export.Moon(year, month, now)
		return emit(w, export.KindMoon, r, now, func() { export.WriteMoon(w, r) })

	case compatPair != "":
		a, b, ok := strings.Cut(compatPair, ",")
		if !ok {
			return fmt.Errorf("--compat wants two signs separated by a comma, got %q", compatPair)
		}
		r, err := export.Compat(cat, strings.TrimSpace(a), strings.TrimSpace(b))
		if err != nil {
			return err
		}
		return emit(w, export.KindCompat, r, now, func() { export.WriteCompat(w, r) })

	case horoscopeSign != "":
		h, err := horoscope.New(cat)
		if err != nil {
			return err
		}
		r, err := h.Daily(strings.ToLower(horoscopeSign), now)
		if err != nil {
			return err
		}
		return emit(w, export.KindHoroscope, r, now, func() { export.WriteHoroscope(w, r) })

	case dreamQuery != "":
		d, err := dreams.Load()
		if err != nil {
			return err
		}
		r := export.Dream(d, dreamQuery, dreamCategory)
		return emit(w, export.KindDream, r, now, func() { export.WriteDream(w, r) })
	}
	return nil
}

func emit(w io.Writer, kind export.Kind, data any, now time.Time, text func()) error {
	if jsonOut {
		return export.WriteJSON(w, kind, data, now)
	}
	text()
	return nil
}

// parseMonth reads YYYY-MM, or "now" for the month containing now.
func parseMonth(s string, now time.Time) (int, time.Month, error) {
	if strings.EqualFold(s, "now") {
		return now.Year(), now.Month(), nil
	}
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return 0, 0, fmt.Errorf("--moon wants YYYY-MM: %w", err)
	}
	return t.Year(), t.Month(), nil
}
