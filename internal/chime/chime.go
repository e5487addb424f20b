// Package chime synthesizes the singing-bowl bell rung at the end of a
// meditation.
package chime

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Config shapes the bowl tone.
type Config struct {
	SampleRate beep.SampleRate
	Frequency  float64 // fundamental, Hz
	Overtone   float64 // ratio of the overtone to the fundamental
	Duration   time.Duration
	Attack     time.Duration
	Release    time.Duration
	Volume     float64 // 0 silences, 1 is full scale
}

// DefaultConfig is a soft bowl around C5 with a long tail.
func DefaultConfig() Config {
	return Config{
		SampleRate: beep.SampleRate(44100),
		Frequency:  528,
		Overtone:   2.76,
		Duration:   3 * time.Second,
		Attack:     15 * time.Millisecond,
		Release:    2600 * time.Millisecond,
		Volume:     0.6,
	}
}

type sine struct {
	freq  float64
	phase float64
	left  int
	rate  beep.SampleRate
}

func newSine(freq float64, d time.Duration, rate beep.SampleRate) *sine {
	return &sine{freq: freq, left: rate.N(d), rate: rate}
}

func (s *sine) Stream(samples [][2]float64) (int, bool) {
	if s.left <= 0 {
		return 0, false
	}
	n := min(len(samples), s.left)
	for i := range n {
		v := math.Sin(2 * math.Pi * s.phase)
		samples[i][0], samples[i][1] = v, v
		s.phase += s.freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
	}
	s.left -= n
	return n, true
}

func (s *sine) Err() error { return nil }

// envelope ramps a stream in linearly over attack and out over release.
type envelope struct {
	src     beep.Streamer
	pos     int
	attack  int
	release int
	total   int
}

func newEnvelope(src beep.Streamer, d, attack, release time.Duration, rate beep.SampleRate) *envelope {
	total := rate.N(d)
	return &envelope{
		src:     src,
		attack:  min(rate.N(attack), total),
		release: min(rate.N(release), total),
		total:   total,
	}
}

func (e *envelope) gain(pos int) float64 {
	g := 1.0
	if e.attack > 0 && pos < e.attack {
		g = float64(pos) / float64(e.attack)
	}
	if start := e.total - e.release; e.release > 0 && pos >= start {
		g = min(g, float64(e.total-pos)/float64(e.release))
	}
	return max(g, 0)
}

func (e *envelope) Stream(samples [][2]float64) (int, bool) {
	n, ok := e.src.Stream(samples)
	for i := range n {
		g := e.gain(e.pos)
		samples[i][0] *= g
		samples[i][1] *= g
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.src.Err() }

func volume(s beep.Streamer, v float64) beep.Streamer {
	if v <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(v)}
}

// Bowl returns a finite streamer for one strike. The overtone decays faster
// than the fundamental.
func Bowl(cfg Config) beep.Streamer {
	rate := cfg.SampleRate
	fund := newEnvelope(newSine(cfg.Frequency, cfg.Duration, rate), cfg.Duration, cfg.Attack, cfg.Release, rate)
	over := newEnvelope(newSine(cfg.Frequency*cfg.Overtone, cfg.Duration, rate), cfg.Duration, cfg.Attack, cfg.Release/3, rate)
	mixed := beep.Mix(volume(fund, 0.7), volume(over, 0.3))
	return volume(mixed, cfg.Volume)
}
