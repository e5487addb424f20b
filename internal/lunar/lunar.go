// Package lunar maps calendar dates onto the eight-phase lunar cycle.
package lunar

import (
	"math"
	"time"

	"github.com/litescript/ls-cosmos/internal/astro"
)

// SynodicMonth is the mean new-moon to new-moon period in days.
const SynodicMonth = 29.53058770576

// Phases is the number of discrete phases in a cycle.
const Phases = 8

// Epoch is a known new moon.
var Epoch = time.Date(2000, time.January, 6, 18, 14, 0, 0, time.UTC)

var illumination = [Phases]int{0, 25, 50, 75, 100, 75, 50, 25}

// Age returns the fraction of the current cycle elapsed at t, in [0, 1).
func Age(t time.Time) float64 {
	return astro.Fract(astro.DaysBetween(Epoch, t) / SynodicMonth)
}

// PhaseIndex returns the phase at t, 0 (new) through 7 (waning crescent).
// Dates before the epoch wrap into the previous cycles.
func PhaseIndex(t time.Time) int {
	return int(math.Floor(Age(t)*Phases)) % Phases
}

// Illumination returns the displayed lit percentage for a phase index.
// Out-of-range indices wrap.
func Illumination(index int) int {
	return illumination[((index%Phases)+Phases)%Phases]
}

// DaysUntilNew returns how many days remain until the next new moon.
func DaysUntilNew(t time.Time) float64 {
	return (1 - Age(t)) * SynodicMonth
}

// DayPhase is the phase for one calendar day.
type DayPhase struct {
	Day   int `json:"day"`
	Phase int `json:"phase"`
}

// DaysIn returns the number of days in a month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MonthPhases returns the phase at UTC midnight for every day of a month.
func MonthPhases(year int, month time.Month) []DayPhase {
	n := DaysIn(year, month)
	out := make([]DayPhase, n)
	for d := 1; d <= n; d++ {
		out[d-1] = DayPhase{
			Day:   d,
			Phase: PhaseIndex(time.Date(year, month, d, 0, 0, 0, 0, time.UTC)),
		}
	}
	return out
}

var monthNames = [12]string{
	"janeiro", "fevereiro", "marco", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

// MonthName returns the Portuguese month name.
func MonthName(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return monthNames[m-1]
}
