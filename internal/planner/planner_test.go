package planner

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/backmassage/resizehelper/internal/config"
)

func TestQScale(t *testing.T) {
	tests := []struct {
		quality int
		want    int
	}{
		{100, 2},
		{0, 31},
		{90, 5},  // 31 - 26.1 = 4.9
		{50, 16}, // 16.5 rounds half to even
		{75, 9},  // 9.25
		{-10, 31},
		{250, 2},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, QScale(tt.quality), "QScale(%d)", tt.quality)
	}
}

func TestQScale_MonotonicAndBounded(t *testing.T) {
	prev := QScale(0)
	for q := 1; q <= 100; q++ {
		got := QScale(q)
		assert.GreaterOrEqual(t, got, 2)
		assert.LessOrEqual(t, got, 31)
		assert.LessOrEqual(t, got, prev, "quality %d should not raise qscale", q)
		prev = got
	}
}

func TestFilterComplex(t *testing.T) {
	tests := []struct {
		name string
		mode config.Mode
		want string
	}{
		{
			"pad",
			config.ModePad,
			"color=c=white:s=800x600[bg];" +
				"[0:v]scale=800:600:force_original_aspect_ratio=decrease,pad=800:600:(ow-iw)/2:(oh-ih)/2:color=0x00000000,format=rgba[fg];" +
				"[bg][fg]overlay=0:0,format=rgb24[out]",
		},
		{
			"crop",
			config.ModeCrop,
			"color=c=white:s=800x600[bg];" +
				"[0:v]scale=800:600:force_original_aspect_ratio=increase,crop=800:600,format=rgba[fg];" +
				"[bg][fg]overlay=0:0,format=rgb24[out]",
		},
		{
			"stretch",
			config.ModeStretch,
			"color=c=white:s=800x600[bg];" +
				"[0:v]scale=800:600,format=rgba[fg];" +
				"[bg][fg]overlay=0:0,format=rgb24[out]",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Plan(tt.mode, 800, 600, "white").FilterComplex())
		})
	}
}

func TestFilterComplex_BackgroundPassthrough(t *testing.T) {
	fc := Plan(config.ModePad, 10, 20, "#ff0000").FilterComplex()
	assert.True(t, strings.HasPrefix(fc, "color=c=#ff0000:s=10x20[bg];"))
	assert.True(t, strings.HasSuffix(fc, OutputLabel))
}

func TestFilterComplex_UnknownModeStretches(t *testing.T) {
	got := Plan("zoom", 50, 50, "black").FilterComplex()
	want := Plan(config.ModeStretch, 50, 50, "black").FilterComplex()
	assert.Equal(t, want, got)
}

func TestFitRect(t *testing.T) {
	tests := []struct {
		name       string
		mode       config.Mode
		srcW, srcH int
		w, h       int
		want       Rect
	}{
		{"pad wide into square", config.ModePad, 1000, 500, 100, 100, Rect{X: 0, Y: 25, Width: 100, Height: 50}},
		{"pad tall into square", config.ModePad, 500, 1000, 100, 100, Rect{X: 25, Y: 0, Width: 50, Height: 100}},
		{"crop wide into square", config.ModeCrop, 1000, 500, 100, 100, Rect{X: -50, Y: 0, Width: 200, Height: 100}},
		{"stretch ignores aspect", config.ModeStretch, 1000, 500, 100, 100, Rect{Width: 100, Height: 100}},
		{"same aspect", config.ModePad, 1600, 1200, 800, 600, Rect{Width: 800, Height: 600}},
		{"unknown source", config.ModePad, 0, 0, 80, 60, Rect{Width: 80, Height: 60}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FitRect(tt.mode, tt.srcW, tt.srcH, tt.w, tt.h))
		})
	}
}
