// Package camera choreographs the virtual camera between the wide galaxy
// framing and a close framing that follows a moving planet.
package camera

import (
	"math"
	"time"

	"github.com/litescript/ls-cosmos/internal/astro"
)

// Target is a live handle to an orbiting body. ok is false once the body
// is gone, which ends follow mode.
type Target interface {
	Position() (pos astro.Vec3, ok bool)
}

// Config holds the tuned framing constants.
type Config struct {
	Distance       float64       // Radial distance from planet to camera
	LateralOffset  float64       // Sideways offset so the planet sits off-center
	Height         float64       // Camera height above the orbital plane
	LookShiftRatio float64       // Look-at shift as a fraction of LateralOffset
	Duration       time.Duration // Zoom and return animation length
	Ease           Easing
	FollowLerp     float64 // Fraction of the remaining gap closed per reference frame
	FollowFPS      float64 // Frame rate FollowLerp was tuned at
	AutoRotate     float64 // Galaxy-view orbit speed, radians per second
	Galaxy         astro.View
}

// DefaultConfig returns the framing used by the application.
func DefaultConfig() Config {
	return Config{
		Distance:       3.5,
		LateralOffset:  6,
		Height:         2,
		LookShiftRatio: 0.3,
		Duration:       1200 * time.Millisecond,
		Ease:           Power3InOut,
		FollowLerp:     0.06,
		FollowFPS:      60,
		AutoRotate:     2 * math.Pi / 60 * 0.3,
		Galaxy: astro.View{
			Eye:    astro.Vec3{X: 0, Y: 18, Z: 28},
			Target: astro.Vec3{},
		},
	}
}

// FollowView computes the close framing for a planet at pos. The camera sits
// outward along the planet's orbital angle and is pushed sideways; it looks
// at a point shifted the other way so the planet renders left of center.
func (c Config) FollowView(pos astro.Vec3) astro.View {
	angle := math.Atan2(pos.Z, pos.X)
	side := angle + math.Pi/2
	shift := c.LateralOffset * c.LookShiftRatio

	return astro.View{
		Eye: astro.Vec3{
			X: pos.X + math.Cos(angle)*c.Distance + c.LateralOffset*math.Cos(side),
			Y: c.Height,
			Z: pos.Z + math.Sin(angle)*c.Distance + c.LateralOffset*math.Sin(side),
		},
		Target: astro.Vec3{
			X: pos.X - shift*math.Cos(side),
			Y: 0,
			Z: pos.Z - shift*math.Sin(side),
		},
	}
}

// Choreographer owns the camera view. It runs on the render loop and is not
// safe for concurrent use.
type Choreographer struct {
	cfg  Config
	anim Animator

	view       astro.View
	follow     Target
	following  bool
	autoRotate bool
}

// New returns a choreographer at the galaxy framing.
func New(cfg Config, anim Animator) *Choreographer {
	if anim == nil {
		anim = NewTweenAnimator()
	}
	return &Choreographer{
		cfg:  cfg,
		anim: anim,
		view: cfg.Galaxy,
	}
}

// View returns the current camera view.
func (c *Choreographer) View() astro.View {
	return c.view
}

// Following reports whether follow mode is active.
func (c *Choreographer) Following() bool {
	return c.following
}

// Config returns the framing constants.
func (c *Choreographer) Config() Config {
	return c.cfg
}

// SetAutoRotate enables the slow galaxy-view orbit. It only moves the
// camera while no animation or follow is in progress.
func (c *Choreographer) SetAutoRotate(on bool) {
	c.autoRotate = on
}

// ZoomToPlanet animates toward target and then follows it. A nil or
// vanished target skips the animation and the follow phase but still
// reports completion so navigation can settle.
func (c *Choreographer) ZoomToPlanet(target Target, onComplete func()) {
	c.anim.Cancel()
	c.StopFollowing()

	var pos astro.Vec3
	ok := false
	if target != nil {
		pos, ok = target.Position()
	}
	if !ok {
		if onComplete != nil {
			onComplete()
		}
		return
	}

	dest := c.cfg.FollowView(pos)
	// The look-at point is fixed for the whole zoom; only the eye travels.
	from := astro.View{Eye: c.view.Eye, Target: dest.Target}

	c.anim.Animate(from, dest, c.cfg.Duration, c.cfg.Ease,
		func(v astro.View) { c.view = v },
		func() {
			c.follow = target
			c.following = true
			if onComplete != nil {
				onComplete()
			}
		})
}

// ReturnToGalaxy stops following and animates back to the wide framing
// while looking at the sun.
func (c *Choreographer) ReturnToGalaxy(onComplete func()) {
	c.StopFollowing()
	c.anim.Cancel()

	from := astro.View{Eye: c.view.Eye, Target: c.cfg.Galaxy.Target}
	c.anim.Animate(from, c.cfg.Galaxy, c.cfg.Duration, c.cfg.Ease,
		func(v astro.View) { c.view = v },
		onComplete)
}

// StopFollowing leaves follow mode immediately.
func (c *Choreographer) StopFollowing() {
	c.following = false
	c.follow = nil
}

// Reset cancels everything and snaps to the galaxy framing.
func (c *Choreographer) Reset() {
	c.anim.Cancel()
	c.StopFollowing()
	c.view = c.cfg.Galaxy
}

// Update runs one frame: advance the animation, then track the followed
// target or auto-rotate the galaxy view.
func (c *Choreographer) Update(dt time.Duration) {
	if adv, ok := c.anim.(Advancer); ok {
		adv.Advance(dt)
	}

	if c.following {
		c.track(dt)
		return
	}
	if c.autoRotate && !c.anim.Active() {
		angle := c.cfg.AutoRotate * dt.Seconds()
		c.view.Eye = c.view.Eye.Sub(c.view.Target).RotateY(angle).Add(c.view.Target)
	}
}


// track eases the eye toward the live follow framing. The look-at snaps so
// the planet stays anchored on screen.
func (c *Choreographer) track(dt time.Duration) {
	if c.follow == nil {
		c.StopFollowing()
		return
	}
	pos, ok := c.follow.Position()
	if !ok {
		c.StopFollowing()
		return
	}

	want := c.cfg.FollowView(pos)
	c.view.Eye = c.view.Eye.Lerp(want.Eye, c.lerpFactor(dt))
	c.view.Target = want.Target
}

// lerpFactor converts the per-reference-frame smoothing factor to the
// elapsed dt so follow speed does not depend on the tick rate.
func (c *Choreographer) lerpFactor(dt time.Duration) float64 {
	if c.cfg.FollowFPS <= 0 {
		return c.cfg.FollowLerp
	}
	frames := dt.Seconds() * c.cfg.FollowFPS
	return 1 - math.Pow(1-c.cfg.FollowLerp, frames)
}
