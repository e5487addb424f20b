package meditation

import "time"

// BreathPhase is one part of the 4-7-8 cycle.
type BreathPhase int

const (
	Inhale BreathPhase = iota
	Hold
	Exhale
)

const (
	inhaleFor = 4 * time.Second
	holdFor   = 7 * time.Second
	exhaleFor = 8 * time.Second

	// BreathCycle is the length of one full 4-7-8 breath.
	BreathCycle = inhaleFor + holdFor + exhaleFor
)

func (p BreathPhase) Label() string {
	switch p {
	case Hold:
		return "Segure"
	case Exhale:
		return "Expire"
	default:
		return "Inspire"
	}
}

// Breath returns the phase at elapsed time and how far through that phase
// the breath is, in [0, 1).
func Breath(elapsed time.Duration) (BreathPhase, float64) {
	if elapsed < 0 {
		elapsed = 0
	}
	at := elapsed % BreathCycle
	switch {
	case at < inhaleFor:
		return Inhale, float64(at) / float64(inhaleFor)
	case at < inhaleFor+holdFor:
		return Hold, float64(at-inhaleFor) / float64(holdFor)
	default:
		return Exhale, float64(at-inhaleFor-holdFor) / float64(exhaleFor)
	}
}
