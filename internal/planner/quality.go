package planner

import "math"

// JPEG quantizer bounds accepted by ffmpeg's -q:v for mjpeg. Lower is better.
const (
	qscaleBest  = 2
	qscaleWorst = 31
)

// QScale maps a 0–100 quality percentage to ffmpeg's -q:v scale. Input is
// clamped to [0,100], mapped linearly (100→2, 0→31), rounded half-to-even,
// and clamped to [2,31].
func QScale(quality int) int {
	q := float64(clamp(quality, 0, 100))
	v := int(math.RoundToEven(qscaleWorst - q/100*(qscaleWorst-qscaleBest)))
	return clamp(v, qscaleBest, qscaleWorst)
}

// clamp restricts v to the inclusive range [lo, hi].
func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
