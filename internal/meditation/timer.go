package meditation

import "time"

// Bell is rung once when a timer runs out.
type Bell interface {
	Ring()
}

// TimerState is the lifecycle of a Timer.
type TimerState int

const (
	Idle TimerState = iota
	Running
	Paused
	Done
)

func (s TimerState) String() string {
	switch s {
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Done:
		return "done"
	default:
		return "idle"
	}
}

// Timer counts a meditation down. It is driven by Tick rather than by its
// own clock so the UI tick and tests control time.
type Timer struct {
	med       Meditation
	bell      Bell
	total     time.Duration
	remaining time.Duration
	state     TimerState
}

// NewTimer prepares a timer for m. bell may be nil.
func NewTimer(m Meditation, bell Bell) *Timer {
	total := time.Duration(m.Duration) * time.Second
	return &Timer{med: m, bell: bell, total: total, remaining: total}
}

func (t *Timer) Meditation() Meditation { return t.med }
func (t *Timer) State() TimerState { return t.state }
func (t *Timer) Remaining() time.Duration { return t.remaining }
func (t *Timer) Elapsed() time.Duration { return t.total - t.remaining }

// Start runs the timer from the full duration.
func (t *Timer) Start() {
	t.remaining = t.total
	t.state = Running
}

// Pause stops the countdown. It is a no-op unless running.
func (t *Timer) Pause() {
	if t.state == Running {
		t.state = Paused
	}
}

// Resume continues a paused countdown.
func (t *Timer) Resume() {
	if t.state == Paused {
		t.state = Running
	}
}

// Toggle pauses a running timer, resumes a paused one, and starts an idle
// or finished one.
func (t *Timer) Toggle() {
	switch t.state {
	case Running:
		t.Pause()
	case Paused:
		t.Resume()
	default:
		t.Start()
	}
}

// Reset returns to idle with the full duration remaining.
func (t *Timer) Reset() {
	t.remaining = t.total
	t.state = Idle
}

// Tick advances a running timer by dt and reports whether it finished on
// this tick. Remaining time never goes below zero.
func (t *Timer) Tick(dt time.Duration) bool {
	if t.state != Running || dt <= 0 {
		return false
	}
	t.remaining -= dt
	if t.remaining > 0 {
		return false
	}
	t.remaining = 0
	t.state = Done
	if t.bell != nil {
		t.bell.Ring()
	}
	return true
}

// Progress is the completed fraction in [0, 1].
func (t *Timer) Progress() float64 {
	if t.total <= 0 {
		return 1
	}
	return 1 - float64(t.remaining)/float64(t.total)
}

// Step returns the index of the current guidance step. Steps are spread
// evenly across the duration.
func (t *Timer) Step() int {
	n := len(t.med.Steps)
	if n == 0 {
		return 0
	}
	return min(int(t.Progress()*float64(n)), n-1)
}

// Label is the play button text for the current state.
func (t *Timer) Label() string {
	switch t.state {
	case Running:
		return "Pausar"
	case Paused:
		return "Continuar"
	default:
		return "Iniciar"
	}
}
