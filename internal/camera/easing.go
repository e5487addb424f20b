package camera

// Easing maps linear progress in [0,1] to eased progress in [0,1].
type Easing func(t float64) float64

// Linear applies no easing.
func Linear(t float64) float64 {
	return clamp01(t)
}

// Power3InOut is a cubic ease-in-out: slow start, fast middle, slow finish.
func Power3InOut(t float64) float64 {
	t = clamp01(t)
	if t < 0.5 {
		return 4 * t * t * t
	}
	u := -2*t + 2
	return 1 - u*u*u/2
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
