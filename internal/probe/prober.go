package probe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"os"
	"os/exec"
	"path/filepath"

	// Registered decoders for DecodeConfig.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrNoImageStream is returned when ffprobe reports no picture stream.
var ErrNoImageStream = errors.New("no image stream found")

// Prober inspects source images.
type Prober struct {
	// Ffprobe is the ffprobe binary used for formats Go cannot decode.
	// Empty disables the fallback.
	Ffprobe string
}

// FfprobeBeside returns the ffprobe path next to an ffmpeg binary when it
// exists and is executable, else "".
func FfprobeBeside(ffmpeg string) string {
	if ffmpeg == "" {
		return ""
	}
	p := filepath.Join(filepath.Dir(ffmpeg), "ffprobe")
	fi, err := os.Stat(p)
	if err != nil || !fi.Mode().IsRegular() || fi.Mode().Perm()&0o111 == 0 {
		return ""
	}
	return p
}

// Probe returns the dimensions of the image at path.
func (p Prober) Probe(ctx context.Context, path string) (Info, error) {
	info, err := DecodeConfig(path)
	if err == nil {
		return info, nil
	}
	if !errors.Is(err, image.ErrFormat) || p.Ffprobe == "" {
		return Info{}, err
	}
	return p.ffprobe(ctx, path)
}

// DecodeConfig reads the image header with Go's registered decoders.
func DecodeConfig(path string) (Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, err
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return Info{}, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return Info{Width: cfg.Width, Height: cfg.Height, Format: format, Via: "decoder"}, nil
}

func (p Prober) ffprobe(ctx context.Context, path string) (Info, error) {
	cmd := exec.CommandContext(ctx, p.Ffprobe,
		"-v", "quiet",
		"-print_format", "json",
		"-show_streams",
		path,
	)
	out, err := cmd.Output()
	if err != nil {
		return Info{}, fmt.Errorf("ffprobe %q: %w", path, err)
	}
	return ParseJSON(out)
}

// ParseJSON converts raw ffprobe JSON output into an Info, taking the
// largest video stream (HEIC exposes tiles as separate streams).
// Exported for testing without a real ffprobe binary.
func ParseJSON(data []byte) (Info, error) {
	var raw ffprobeOutput
	if err := json.Unmarshal(data, &raw); err != nil {
		return Info{}, fmt.Errorf("parse ffprobe JSON: %w", err)
	}

	var best *ffprobeStream
	for i := range raw.Streams {
		s := &raw.Streams[i]
		if s.CodecType != "video" || s.Width <= 0 || s.Height <= 0 {
			continue
		}
		if best == nil || s.Width*s.Height > best.Width*best.Height {
			best = s
		}
	}
	if best == nil {
		return Info{}, ErrNoImageStream
	}
	return Info{Width: best.Width, Height: best.Height, Format: best.CodecName, Via: "ffprobe"}, nil
}
