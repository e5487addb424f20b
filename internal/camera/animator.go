package camera

import (
	"time"

	"github.com/litescript/ls-cosmos/internal/astro"
)

// Animator runs a single eased transition between two camera views.
// Starting a new animation replaces any animation in flight; the replaced
// animation's onComplete never fires.
type Animator interface {
	Animate(from, to astro.View, duration time.Duration, ease Easing, onUpdate func(astro.View), onComplete func())
	Cancel()
	// Active reports whether a timeline is in flight.
	Active() bool
}

// Advancer is an Animator driven by explicit frame ticks.
type Advancer interface {
	Advance(dt time.Duration)
}

type tween struct {
	from, to   astro.View
	duration   time.Duration
	elapsed    time.Duration
	ease       Easing
	onUpdate   func(astro.View)
	onComplete func()
}

// TweenAnimator is a tick-driven Animator. It holds at most one timeline.
// Not safe for concurrent use; the render loop owns it.
type TweenAnimator struct {
	active *tween
}

// NewTweenAnimator returns an idle animator.
func NewTweenAnimator() *TweenAnimator {
	return &TweenAnimator{}
}

// Animate starts a new timeline, dropping the current one. A zero or
// negative duration completes on the next Advance.
func (a *TweenAnimator) Animate(from, to astro.View, duration time.Duration, ease Easing, onUpdate func(astro.View), onComplete func()) {
	if ease == nil {
		ease = Linear
	}
	a.active = &tween{
		from:       from,
		to:         to,
		duration:   duration,
		ease:       ease,
		onUpdate:   onUpdate,
		onComplete: onComplete,
	}
}

// Cancel drops the active timeline without completing it.
func (a *TweenAnimator) Cancel() {
	a.active = nil
}

// Active reports whether a timeline is running.
func (a *TweenAnimator) Active() bool {
	return a.active != nil
}

// Advance moves the active timeline forward by dt, publishing the eased
// view and firing onComplete once progress reaches 1.
func (a *TweenAnimator) Advance(dt time.Duration) {
	tw := a.active
	if tw == nil {
		return
	}
	tw.elapsed += dt

	progress := 1.0
	if tw.duration > 0 {
		progress = float64(tw.elapsed) / float64(tw.duration)
	}
	if progress > 1 {
		progress = 1
	}

	k := tw.ease(progress)
	if tw.onUpdate != nil {
		tw.onUpdate(astro.View{
			Eye:    tw.from.Eye.Lerp(tw.to.Eye, k),
			Target: tw.from.Target.Lerp(tw.to.Target, k),
		})
	}

	if progress >= 1 {
		// Clear before the callback so it may start the next timeline.
		a.active = nil
		if tw.onComplete != nil {
			tw.onComplete()
		}
	}
}
