package audio

// cubicInterpolate evaluates a Catmull-Rom style cubic through four
// consecutive samples at fractional position t in [0, 1) between y1 and y2.
func cubicInterpolate(y0, y1, y2, y3, t float32) float32 {
	a := y3 - y2 - y0 + y1
	b := y0 - y1 - a
	c := y2 - y0
	return ((a*t+b)*t+c)*t + y1
}
