// Package perf watches frame pacing and reports sustained slowdowns or
// recoveries so the renderer can step its quality level.
package perf

import "time"

// Config controls how frame rate is sampled and judged.
type Config struct {
	// Window is the length of one sampling window.
	Window time.Duration
	// Iterations is how many windows are judged together.
	Iterations int
	// LowerFPS and UpperFPS bound the acceptable frame rate.
	LowerFPS float64
	UpperFPS float64
	// Threshold is the fraction of windows that must fall outside the
	// bounds before a decline or incline fires.
	Threshold float64
}

// DefaultConfig is tuned for the 80ms animation tick (12.5 fps nominal).
func DefaultConfig() Config {
	return Config{
		Window:     500 * time.Millisecond,
		Iterations: 6,
		LowerFPS:   8,
		UpperFPS:   11,
		Threshold:  0.75,
	}
}

// Monitor accumulates frame durations and fires OnDecline or OnIncline
// once per judged batch of windows.
type Monitor struct {
	cfg Config

	OnDecline func()
	OnIncline func()

	frames  int
	elapsed time.Duration
	fps     []float64
	last    float64
}

// NewMonitor creates a monitor. Zero fields in cfg fall back to defaults.
func NewMonitor(cfg Config) *Monitor {
	def := DefaultConfig()
	if cfg.Window <= 0 {
		cfg.Window = def.Window
	}
	if cfg.Iterations <= 0 {
		cfg.Iterations = def.Iterations
	}
	if cfg.LowerFPS <= 0 {
		cfg.LowerFPS = def.LowerFPS
	}
	if cfg.UpperFPS <= cfg.LowerFPS {
		cfg.UpperFPS = cfg.LowerFPS + 1
	}
	if cfg.Threshold <= 0 || cfg.Threshold > 1 {
		cfg.Threshold = def.Threshold
	}
	return &Monitor{cfg: cfg, fps: make([]float64, 0, cfg.Iterations)}
}

// Frame records one rendered frame that took dt since the previous one.
func (m *Monitor) Frame(dt time.Duration) {
	if dt <= 0 {
		return
	}
	m.frames++
	m.elapsed += dt
	if m.elapsed < m.cfg.Window {
		return
	}

	fps := float64(m.frames) / m.elapsed.Seconds()
	m.last = fps
	m.fps = append(m.fps, fps)
	m.frames = 0
	m.elapsed = 0

	if len(m.fps) >= m.cfg.Iterations {
		m.judge()
		m.fps = m.fps[:0]
	}
}

// FPS returns the rate measured over the most recent complete window.
func (m *Monitor) FPS() float64 {
	return m.last
}

func (m *Monitor) judge() {
	var below, above int
	for _, f := range m.fps {
		switch {
		case f < m.cfg.LowerFPS:
			below++
		case f > m.cfg.UpperFPS:
			above++
		}
	}
	n := float64(len(m.fps))
	switch {
	case float64(below)/n >= m.cfg.Threshold:
		if m.OnDecline != nil {
			m.OnDecline()
		}
	case float64(above)/n >= m.cfg.Threshold:
		if m.OnIncline != nil {
			m.OnIncline()
		}
	}
}

// Reset discards partially collected windows.
func (m *Monitor) Reset() {
	m.frames = 0
	m.elapsed = 0
	m.fps = m.fps[:0]
}
