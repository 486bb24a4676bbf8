package planner

import (
	"fmt"
	"strings"

	"github.com/backmassage/resizehelper/internal/config"
)

// Filter graph pad labels.
const (
	labelBackground = "[bg]"
	labelForeground = "[fg]"
	labelOut        = "[out]"
)

// OutputLabel is the graph output that ffmpeg's -map must select.
const OutputLabel = labelOut

// Recipe is the geometry plan for one unit: a solid background of the
// target size with the fitted source overlaid at the origin.
type Recipe struct {
	Mode       config.Mode
	Width      int
	Height     int
	Background string
}

// Plan builds the recipe for fitting a source into w×h in the given mode.
func Plan(mode config.Mode, w, h int, background string) Recipe {
	return Recipe{Mode: mode, Width: w, Height: h, Background: background}
}

// FilterComplex renders the three-part ffmpeg filter graph: background
// source, mode-specific foreground chain, and the overlay that flattens to
// rgb24 so transparent regions take the background color.
func (r Recipe) FilterComplex() string {
	return strings.Join([]string{
		r.backgroundChain(),
		r.foregroundChain(),
		labelBackground + labelForeground + "overlay=0:0,format=rgb24" + labelOut,
	}, ";")
}

func (r Recipe) backgroundChain() string {
	return fmt.Sprintf("color=c=%s:s=%dx%d%s", r.Background, r.Width, r.Height, labelBackground)
}

// foregroundChain scales [0:v] per mode and converts to rgba. Unknown
// modes fall back to stretch.
func (r Recipe) foregroundChain() string {
	w, h := r.Width, r.Height
	var chain string
	switch r.Mode {
	case config.ModePad:
		chain = fmt.Sprintf("scale=%d:%d:force_original_aspect_ratio=decrease,pad=%d:%d:(ow-iw)/2:(oh-ih)/2:color=0x00000000", w, h, w, h)
	case config.ModeCrop:
		chain = fmt.Sprintf("scale=%d:%d:force_original_aspect_ratio=increase,crop=%d:%d", w, h, w, h)
	default:
		chain = fmt.Sprintf("scale=%d:%d", w, h)
	}
	return "[0:v]" + chain + ",format=rgba" + labelForeground
}

// Rect is a placed rectangle in target pixel coordinates.
type Rect struct {
	X, Y          int
	Width, Height int
}

// FitRect predicts where the scaled source lands inside the target for a
// srcW×srcH input. For pad the rect lies inside the target (letterbox),
// for crop it covers the target and may extend past it (negative offsets
// are the cropped margins), for stretch it equals the target. The free
// axis is truncated, so ffmpeg's result may differ by a pixel.
func FitRect(mode config.Mode, srcW, srcH, w, h int) Rect {
	if srcW <= 0 || srcH <= 0 || mode == config.ModeStretch || !mode.Valid() {
		return Rect{Width: w, Height: h}
	}

	sx := float64(w) / float64(srcW)
	sy := float64(h) / float64(srcH)
	s := sx
	if (mode == config.ModePad && sy < sx) || (mode == config.ModeCrop && sy > sx) {
		s = sy
	}

	fw := scaledDim(srcW, s, w, s == sx)
	fh := scaledDim(srcH, s, h, s == sy)
	return Rect{X: (w - fw) / 2, Y: (h - fh) / 2, Width: fw, Height: fh}
}

// scaledDim scales n by s; the axis that determined s maps exactly to target.
func scaledDim(n int, s float64, target int, exact bool) int {
	if exact {
		return target
	}
	v := int(float64(n) * s)
	if v < 1 {
		v = 1
	}
	return v
}
