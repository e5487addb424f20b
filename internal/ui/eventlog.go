package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/litescript/ls-cosmos/internal/state"
)

// describeEvent renders one navigation event with a relative timestamp.
func describeEvent(e state.Event, now time.Time) string {
	var what string
	switch e.Type {
	case state.EventQuality:
		what = fmt.Sprintf("quality → %s", e.Quality)
	case state.EventSelect, state.EventSwitch:
		what = fmt.Sprintf("%s %s", strings.ToLower(string(e.Type)), e.PlanetID)
	default:
		what = strings.ToLower(strings.ReplaceAll(string(e.Type), "_", " "))
	}
	return fmt.Sprintf("%s (%s)", what, humanize.RelTime(e.Timestamp, now, "ago", "from now"))
}

// renderEventLog lists events newest first.
func renderEventLog(events []state.Event, now time.Time, width int) string {
	var b strings.Builder
	b.WriteString(section("Event Log", width))
	b.WriteString("\n\n")
	if len(events) == 0 {
		b.WriteString(dimStyle.Render("no navigation yet"))
		return b.String()
	}
	for i := len(events) - 1; i >= 0; i-- {
		e := events[i]
		b.WriteString(mutedStyle.Render(e.Timestamp.Format("15:04:05")))
		b.WriteString("  ")
		b.WriteString(textStyle.Render(describeEvent(e, now)))
		b.WriteString("  ")
		b.WriteString(dimStyle.Render(fmt.Sprintf("%s → %s", e.From, e.To)))
		b.WriteString("\n")
	}
	return b.String()
}
