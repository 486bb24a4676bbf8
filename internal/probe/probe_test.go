package probe

import (
	"context"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeImage(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	img := imaging.New(w, h, color.NRGBA{R: 200, G: 10, B: 10, A: 255})
	require.NoError(t, imaging.Save(img, path))
	return path
}

func TestDecodeConfig_Formats(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name   string
		format string
	}{
		{"a.png", "png"},
		{"b.jpg", "jpeg"},
		{"c.gif", "gif"},
		{"d.bmp", "bmp"},
		{"e.tif", "tiff"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeImage(t, dir, tt.name, 64, 48)
			info, err := DecodeConfig(path)
			require.NoError(t, err)
			assert.Equal(t, Info{Width: 64, Height: 48, Format: tt.format, Via: "decoder"}, info)
			assert.Equal(t, "64x48", info.Resolution())
			assert.Equal(t, "landscape", info.Orientation())
		})
	}
}

func TestProbe_UnknownFormatWithoutFfprobe(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.heic")
	require.NoError(t, os.WriteFile(path, []byte("not really heic"), 0o644))

	_, err := Prober{}.Probe(context.Background(), path)
	assert.Error(t, err)
}

func TestProbe_Missing(t *testing.T) {
	_, err := Prober{Ffprobe: "/nonexistent/ffprobe"}.Probe(context.Background(), "/nonexistent/a.png")
	assert.Error(t, err)
}

func TestParseJSON_PicksLargestVideoStream(t *testing.T) {
	data := []byte(`{"streams":[
		{"index":0,"codec_name":"hevc","codec_type":"video","width":512,"height":512},
		{"index":1,"codec_name":"hevc","codec_type":"video","width":4032,"height":3024},
		{"index":2,"codec_name":"aac","codec_type":"audio"}
	]}`)
	info, err := ParseJSON(data)
	require.NoError(t, err)
	assert.Equal(t, Info{Width: 4032, Height: 3024, Format: "hevc", Via: "ffprobe"}, info)
}

func TestParseJSON_Errors(t *testing.T) {
	_, err := ParseJSON([]byte(`{"streams":[]}`))
	assert.ErrorIs(t, err, ErrNoImageStream)

	_, err = ParseJSON([]byte(`not json`))
	assert.Error(t, err)
}

func TestOrientation(t *testing.T) {
	assert.Equal(t, "portrait", Info{Width: 10, Height: 20}.Orientation())
	assert.Equal(t, "square", Info{Width: 10, Height: 10}.Orientation())
}

func TestFfprobeBeside(t *testing.T) {
	dir := t.TempDir()
	assert.Empty(t, FfprobeBeside(filepath.Join(dir, "ffmpeg")))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "ffprobe"), []byte("#!/bin/sh\n"), 0o755))
	assert.Equal(t, filepath.Join(dir, "ffprobe"), FfprobeBeside(filepath.Join(dir, "ffmpeg")))
	assert.Empty(t, FfprobeBeside(""))
}
