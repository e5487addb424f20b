package astro

import (
	"math"
	"testing"
	"time"
)

func TestJulianDate(t *testing.T) {
	tests := []struct {
		name string
		t    time.Time
		want float64
	}{
		{"J2000 epoch", time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC), 2451545.0},
		{"1999 new year", time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC), 2451179.5},
		{"2024 leap day", time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), 2460369.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := JulianDate(tt.t)
			if math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("JulianDate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2000, 1, 6, 18, 14, 0, 0, time.UTC)
	b := a.Add(36 * time.Hour)
	if got := DaysBetween(a, b); math.Abs(got-1.5) > 1e-12 {
		t.Errorf("DaysBetween = %v, want 1.5", got)
	}
	if got := DaysBetween(b, a); math.Abs(got+1.5) > 1e-12 {
		t.Errorf("DaysBetween reversed = %v, want -1.5", got)
	}

	// Spans longer than time.Duration can hold.
	far := time.Date(2400, 1, 6, 18, 14, 0, 0, time.UTC)
	want := (JulianDate(far) - JulianDate(a))
	if got := DaysBetween(a, far); math.Abs(got-want) > 1e-6 {
		t.Errorf("DaysBetween 400y = %v, want %v", got, want)
	}
	if got := DaysBetween(far, a); math.Abs(got+want) > 1e-6 {
		t.Errorf("DaysBetween -400y = %v, want %v", got, -want)
	}
}

func TestFract(t *testing.T) {
	tests := []struct {
		x, want float64
	}{
		{0, 0},
		{1.25, 0.25},
		{-0.25, 0.75},
		{-3.5, 0.5},
	}
	for _, tt := range tests {
		if got := Fract(tt.x); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Fract(%v) = %v, want %v", tt.x, got, tt.want)
		}
	}
}

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		a, want float64
	}{
		{0, 0},
		{-math.Pi / 2, 3 * math.Pi / 2},
		{5 * math.Pi, math.Pi},
	}
	for _, tt := range tests {
		if got := NormalizeAngle(tt.a); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("NormalizeAngle(%v) = %v, want %v", tt.a, got, tt.want)
		}
	}
}
