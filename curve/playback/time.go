package playback

import "math"

// WrapTime maps t into [0, maxTime), negative times counting back from the end.
func WrapTime(t, maxTime float64) float64 {
	if maxTime <= 0 {
		return 0
	}

	t = math.Mod(t, maxTime)
	if t < 0 {
		t += maxTime
	}

	return t
}

func ClampTime(t, maxTime float64) float64 {
	return math.Max(0, math.Min(t, maxTime))
}

// Progress is the fraction of the curve traveled at t, in [0, 1).
func Progress(t, maxTime float64) float64 {
	if maxTime <= 0 {
		return 0
	}

	progress := math.Mod(t/maxTime, 1)
	if progress < 0 {
		progress++
	}

	return progress
}

func TimeAt(progress, maxTime float64) float64 {
	return maxTime * progress
}
