package effects

// lerp performs linear interpolation between a and b
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// EaseOutCubic starts fast and settles slowly: 1 - (1-t)^3.
func EaseOutCubic(t float64) float64 {
	return 1 - pow(1-t, 3)
}

// clamp01 limits progress to [0, 1]
func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// pow calculates x^n
func pow(x float64, n int) float64 {
	result := 1.0
	for i := 0; i < n; i++ {
		result *= x
	}
	return result
}
