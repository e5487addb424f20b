package astro

import (
	"math"
	"time"
)

// SecondsPerDay is used to convert durations to fractional days.
const SecondsPerDay = 86400.0

// JulianDate returns the Julian Date for a given time.
func JulianDate(t time.Time) float64 {
	t = t.UTC()

	y := float64(t.Year())
	m := float64(t.Month())
	d := float64(t.Day())

	h := float64(t.Hour())
	min := float64(t.Minute())
	sec := float64(t.Second())
	ns := float64(t.Nanosecond())

	dayFrac := (h + min/60 + sec/3600 + ns/3600e9) / 24.0

	// January and February count as months 13 and 14 of the previous year.
	if m <= 2 {
		y--
		m += 12
	}

	// Gregorian calendar correction
	A := math.Floor(y / 100)
	B := 2 - A + math.Floor(A/4)

	return math.Floor(365.25*(y+4716)) +
		math.Floor(30.6001*(m+1)) +
		d + dayFrac + B - 1524.5
}

// DaysBetween returns the signed number of days from a to b. It works on
// Unix seconds because time.Duration saturates past about 292 years.
func DaysBetween(a, b time.Time) float64 {
	secs := float64(b.Unix() - a.Unix())
	nanos := float64(b.Nanosecond() - a.Nanosecond())
	return secs/SecondsPerDay + nanos/(SecondsPerDay*1e9)
}

// Fract returns the fractional part of x in [0, 1), also for negative x.
func Fract(x float64) float64 {
	return x - math.Floor(x)
}

// NormalizeAngle wraps an angle in radians to [0, 2π).
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}
