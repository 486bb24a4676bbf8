package proof

import (
	"context"
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/resizehelper/internal/config"
	"github.com/backmassage/resizehelper/internal/pipeline"
)

var pageObject = regexp.MustCompile(`/Type /Page[^s]`)

func writeJPEG(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, imaging.Save(imaging.New(w, h, color.NRGBA{B: 200, A: 255}), p))
	return p
}

func TestPageSize(t *testing.T) {
	tests := []struct {
		name   string
		w, h   int
		dpi    float64
		wd, ht float64
	}{
		{"landscape", 800, 600, 200, 4, 3},
		{"portrait", 300, 600, 300, 1, 2},
		{"zero dpi uses default", 150, 75, 0, 2, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wd, ht := PageSize(tt.w, tt.h, tt.dpi)
			assert.InDelta(t, tt.wd, wd, 1e-9)
			assert.InDelta(t, tt.ht, ht, 1e-9)
		})
	}
}

func TestPagesFromUnits(t *testing.T) {
	j150 := config.Job{Width: 800, Height: 600, DPI: 150}
	j300 := config.Job{Width: 800, Height: 600, DPI: 300}
	small := config.Job{Width: 10, Height: 10, DPI: 72}
	units := []pipeline.UnitOutcome{
		{Output: "/out/800x600px/a.jpg", Job: j150},
		{Output: "/out/10x10px/a.jpg", Job: small, Err: errors.New("boom")},
		{Output: "/out/800x600px/a.jpg", Job: j300},
		{Output: "/out/800x600px/b.jpg", Job: j150},
	}

	pages := PagesFromUnits(units)
	assert.Equal(t, []Page{
		{Path: "/out/800x600px/a.jpg", Job: j300},
		{Path: "/out/800x600px/b.jpg", Job: j150},
	}, pages)
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	pages := []Page{
		{Path: writeJPEG(t, dir, "a.jpg", 800, 600), Job: config.Job{Width: 800, Height: 600, DPI: 200}},
		{Path: writeJPEG(t, dir, "b.jpg", 2400, 100), Job: config.Job{Width: 2400, Height: 100, DPI: 300}},
	}
	out := filepath.Join(dir, FileName)

	res, err := Sheet{MaxEdge: 400}.Write(context.Background(), out, pages)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Pages)
	assert.Empty(t, res.Skipped)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, len(data) > 4 && string(data[:4]) == "%PDF")
	assert.Len(t, pageObject.FindAll(data, -1), 2)
}

func TestWrite_SkipsUnreadable(t *testing.T) {
	dir := t.TempDir()
	broken := filepath.Join(dir, "broken.jpg")
	require.NoError(t, os.WriteFile(broken, []byte("not a jpeg"), 0o644))
	pages := []Page{
		{Path: broken, Job: config.Job{Width: 1, Height: 1, DPI: 72}},
		{Path: writeJPEG(t, dir, "ok.jpg", 100, 100), Job: config.Job{Width: 100, Height: 100, DPI: 100}},
		{Path: filepath.Join(dir, "missing.jpg"), Job: config.Job{Width: 1, Height: 1, DPI: 72}},
	}

	res, err := Sheet{Workers: 1}.Write(context.Background(), filepath.Join(dir, FileName), pages)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Pages)
	assert.Len(t, res.Skipped, 2)
	assert.Contains(t, res.Skipped[0].Error(), "broken.jpg")
}

func TestWrite_NothingToWrite(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, FileName)

	_, err := Sheet{}.Write(context.Background(), out, nil)
	assert.ErrorIs(t, err, ErrNoPages)

	_, err = Sheet{}.Write(context.Background(), out, []Page{{Path: filepath.Join(dir, "gone.jpg")}})
	assert.ErrorIs(t, err, ErrNoPages)
	assert.NoFileExists(t, out)
}

func TestWrite_Cancelled(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Sheet{}.Write(ctx, filepath.Join(dir, FileName), []Page{
		{Path: writeJPEG(t, dir, "a.jpg", 10, 10), Job: config.Job{Width: 10, Height: 10, DPI: 72}},
	})
	assert.ErrorIs(t, err, context.Canceled)
}
