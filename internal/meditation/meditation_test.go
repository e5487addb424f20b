package meditation

import (
	"testing"
	"time"
)

func TestList(t *testing.T) {
	ms := List()
	if len(ms) != 8 {
		t.Fatalf("len(List()) = %d, want 8", len(ms))
	}
	for _, m := range ms {
		if m.Title == "" || m.Duration <= 0 || len(m.Steps) == 0 {
			t.Errorf("meditation %d incomplete: %+v", m.ID, m)
		}
	}
}

func TestFilter(t *testing.T) {
	tests := []struct {
		phase string
		want  []int
	}{
		{All, []int{1, 2, 3, 4, 5, 6, 7, 8}},
		{"Lua Nova", []int{1, 2, 4, 6, 7}},
		{"Lua Cheia", []int{1, 3, 4, 6, 7}},
		{"Crescente Inicial", []int{1, 4, 6, 7, 8}},
		{"Quarto Minguante", []int{1, 4, 5, 6, 7}},
		{"Minguante Gibosa", []int{1, 4, 6, 7}},
	}

	for _, tt := range tests {
		t.Run(tt.phase, func(t *testing.T) {
			got := Filter(tt.phase)
			if len(got) != len(tt.want) {
				t.Fatalf("Filter(%q) returned %d, want %d", tt.phase, len(got), len(tt.want))
			}
			for i, m := range got {
				if m.ID != tt.want[i] {
					t.Errorf("Filter(%q)[%d].ID = %d, want %d", tt.phase, i, m.ID, tt.want[i])
				}
			}
		})
	}
}

func TestIntentions(t *testing.T) {
	in := Intentions()
	if in[0] != All {
		t.Errorf("Intentions()[0] = %q, want %q", in[0], All)
	}
	if len(in) != 9 {
		t.Errorf("len(Intentions()) = %d, want 9", len(in))
	}
	if got := ByIntention("GRATIDAO"); len(got) != 1 || got[0].ID != 7 {
		t.Errorf("ByIntention(GRATIDAO) = %+v", got)
	}
}

func TestFormatTime(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "00:00"},
		{59, "00:59"},
		{300, "05:00"},
		{754, "12:34"},
		{-3, "00:00"},
	}
	for _, tt := range tests {
		if got := FormatTime(tt.in); got != tt.want {
			t.Errorf("FormatTime(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

type countingBell struct{ rings int }

func (b *countingBell) Ring() { b.rings++ }

func TestTimerLifecycle(t *testing.T) {
	bell := &countingBell{}
	m := Meditation{ID: 99, Duration: 10, Steps: []string{"a", "b"}}
	tm := NewTimer(m, bell)

	if tm.State() != Idle || tm.Label() != "Iniciar" {
		t.Fatalf("new timer state = %v (%s)", tm.State(), tm.Label())
	}
	if tm.Tick(time.Second) {
		t.Error("idle timer should not advance")
	}

	tm.Toggle()
	if tm.State() != Running || tm.Label() != "Pausar" {
		t.Fatalf("after Toggle state = %v", tm.State())
	}
	tm.Tick(4 * time.Second)
	if tm.Remaining() != 6*time.Second {
		t.Errorf("Remaining = %v, want 6s", tm.Remaining())
	}
	if tm.Step() != 0 {
		t.Errorf("Step = %d, want 0", tm.Step())
	}

	tm.Toggle()
	if tm.State() != Paused || tm.Label() != "Continuar" {
		t.Fatalf("after second Toggle state = %v", tm.State())
	}
	tm.Tick(time.Minute)
	if tm.Remaining() != 6*time.Second {
		t.Errorf("paused timer moved to %v", tm.Remaining())
	}

	tm.Resume()
	tm.Tick(2 * time.Second)
	if tm.Step() != 1 {
		t.Errorf("Step = %d, want 1 at 60%%", tm.Step())
	}

	if !tm.Tick(time.Hour) {
		t.Error("Tick past the end should report completion")
	}
	if tm.Remaining() != 0 {
		t.Errorf("Remaining = %v, want 0", tm.Remaining())
	}
	if tm.State() != Done || tm.Progress() != 1 {
		t.Errorf("state = %v progress = %v", tm.State(), tm.Progress())
	}
	if tm.Step() != 1 {
		t.Errorf("Step = %d, want last step", tm.Step())
	}
	if tm.Tick(time.Second) {
		t.Error("finished timer completed twice")
	}
	if bell.rings != 1 {
		t.Errorf("bell rang %d times, want 1", bell.rings)
	}

	tm.Toggle()
	if tm.State() != Running || tm.Remaining() != 10*time.Second {
		t.Errorf("restart state = %v remaining = %v", tm.State(), tm.Remaining())
	}
	tm.Reset()
	if tm.State() != Idle || tm.Elapsed() != 0 {
		t.Errorf("Reset state = %v elapsed = %v", tm.State(), tm.Elapsed())
	}
}

func TestTimerNilBell(t *testing.T) {
	tm := NewTimer(Meditation{Duration: 1, Steps: []string{"x"}}, nil)
	tm.Start()
	if !tm.Tick(2 * time.Second) {
		t.Error("timer without a bell should still finish")
	}
}

func TestBreath(t *testing.T) {
	tests := []struct {
		at    time.Duration
		phase BreathPhase
		frac  float64
	}{
		{0, Inhale, 0},
		{2 * time.Second, Inhale, 0.5},
		{4 * time.Second, Hold, 0},
		{11 * time.Second, Exhale, 0},
		{15 * time.Second, Exhale, 0.5},
		{19 * time.Second, Inhale, 0},
		{-time.Second, Inhale, 0},
	}
	for _, tt := range tests {
		phase, frac := Breath(tt.at)
		if phase != tt.phase || frac != tt.frac {
			t.Errorf("Breath(%v) = %v, %v, want %v, %v", tt.at, phase, frac, tt.phase, tt.frac)
		}
	}
	if Exhale.Label() != "Expire" || Hold.Label() != "Segure" || Inhale.Label() != "Inspire" {
		t.Error("breath labels changed")
	}
}
