package chime

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/litescript/ls-cosmos/internal/logging"
)

// Silent is a bell that makes no sound.
type Silent struct{}

func (Silent) Ring() {}

// Player rings the bowl through the system speaker.
type Player struct {
	mu   sync.Mutex
	cfg  Config
	log  *logging.Logger
	open bool
}

// NewPlayer opens the audio device. Callers that cannot get audio should
// fall back to Silent.
func NewPlayer(cfg Config, log *logging.Logger) (*Player, error) {
	if log == nil {
		log = logging.Discard()
	}
	if err := speaker.Init(cfg.SampleRate, cfg.SampleRate.N(100*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	log.Debug("speaker ready at %d Hz", cfg.SampleRate)
	return &Player{cfg: cfg, log: log, open: true}, nil
}

// Ring plays one strike without blocking.
func (p *Player) Ring() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.open {
		return
	}
	p.log.Debug("ring")
	speaker.Play(beep.Seq(Bowl(p.cfg), beep.Callback(func() {
		p.log.Debug("ring finished")
	})))
}

// Close stops playback and releases the device.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.open {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.open = false
}
