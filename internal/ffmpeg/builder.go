package ffmpeg

import (
	"strconv"

	"github.com/backmassage/resizehelper/internal/planner"
)

// Unit is everything ffmpeg needs to render one output.
type Unit struct {
	Binary string // Resolved ffmpeg path.
	Input  string
	Output string
	Recipe planner.Recipe
	QScale int // -q:v value, 2 (best) to 31.
}

// Build constructs the complete ffmpeg argument slice for a unit, with the
// binary as element 0. Stdin is disabled, the banner hidden, only errors
// logged, and an existing output overwritten.
func Build(u Unit) []string {
	args := make([]string, 0, 20)

	// --- Preamble ---
	args = append(args, u.Binary, "-nostdin", "-hide_banner", "-loglevel", "error", "-y")

	// --- Input ---
	args = append(args, "-i", u.Input)

	// --- Graph and mapping ---
	args = append(args,
		"-filter_complex", u.Recipe.FilterComplex(),
		"-map", planner.OutputLabel,
		"-frames:v", "1",
	)

	// --- Encoder ---
	args = append(args, "-q:v", strconv.Itoa(u.QScale))

	return append(args, u.Output)
}
