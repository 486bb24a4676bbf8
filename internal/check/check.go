// Package check provides the system diagnostics behind the check command:
// which ffmpeg is used and why, whether sips and exiftool are present, and
// whether this ffmpeg build can run the filter graphs of every fit mode.
package check

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/backmassage/resizehelper/internal/config"
	"github.com/backmassage/resizehelper/internal/engine"
	"github.com/backmassage/resizehelper/internal/ffmpeg"
	"github.com/backmassage/resizehelper/internal/planner"
	"github.com/backmassage/resizehelper/internal/probe"
	"github.com/backmassage/resizehelper/internal/toolexec"
)

// ErrRenderFailed is returned by RunCheck when a test render fails.
var ErrRenderFailed = errors.New("ffmpeg test render failed")

// Logger is the minimal logging interface needed by RunCheck.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(bool, string, ...interface{})
}

// ToolLocator resolves the external tools.
type ToolLocator interface {
	Locate() (engine.Tools, error)
}

// commandOutput runs a command and returns its stdout. Replaced in tests.
var commandOutput = func(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// RunCheck logs the availability of every tool and test-renders a small
// image in each fit mode. It keeps going after a failure and returns the
// first fatal problem: a missing required tool or a failed render.
func RunCheck(ctx context.Context, loc ToolLocator, inv toolexec.Invoker, log Logger) error {
	log.Info("=== System Check ===")

	tools, err := loc.Locate()
	if tools.Ffmpeg != "" {
		log.Success("ffmpeg: %s (found via %s)", tools.Ffmpeg, describeSource(tools.Source))
		logVersion(ctx, log, "  ", tools.Ffmpeg, "-version")
		checkFfprobe(log, tools.Ffmpeg)
	}
	if err != nil {
		log.Error("%v", err)
		return err
	}

	log.Success("sips: %s", tools.Sips)
	if tools.HasExiftool() {
		log.Success("exiftool: %s", tools.Exiftool)
		logVersion(ctx, log, "  version ", tools.Exiftool, "-ver")
	} else {
		log.Warn("exiftool not installed (optional; sips alone sets the DPI)")
	}

	return checkRender(ctx, log, inv, tools.Ffmpeg)
}

func describeSource(s engine.Source) string {
	switch s {
	case engine.SourceEnv:
		return "$" + engine.EnvFfmpegPath
	case engine.SourceBundled:
		return "bundled bin/ffmpeg"
	case engine.SourceWellKnown:
		return "package manager location"
	case engine.SourcePath:
		return "PATH"
	}
	return string(s)
}

// logVersion logs the first line of a tool's version output.
func logVersion(ctx context.Context, log Logger, prefix, bin string, args ...string) {
	out, err := commandOutput(ctx, bin, args...)
	if err != nil {
		log.Warn("%s found but %s failed: %v", filepath.Base(bin), strings.Join(args, " "), err)
		return
	}
	first := strings.TrimSpace(string(out))
	if idx := strings.Index(first, "\n"); idx > 0 {
		first = first[:idx]
	}
	log.Info("%s%s", prefix, first)
}

func checkFfprobe(log Logger, ffmpegPath string) {
	if p := probe.FfprobeBeside(ffmpegPath); p != "" {
		log.Success("ffprobe: %s", p)
		return
	}
	log.Warn("ffprobe not found beside ffmpeg (inspect falls back to built-in decoders)")
}

// checkRender renders a generated 32x16 PNG into a 16x16 JPEG once per
// fit mode.
func checkRender(ctx context.Context, log Logger, inv toolexec.Invoker, ffmpegPath string) error {
	dir, err := os.MkdirTemp("", "resizehelper-check-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	src := filepath.Join(dir, "check.png")
	if err := imaging.Save(imaging.New(32, 16, color.NRGBA{R: 255, A: 255}), src); err != nil {
		return fmt.Errorf("write test image: %w", err)
	}

	var failed error
	for _, mode := range config.Modes {
		log.Info("Testing %s render...", mode)
		err := ffmpeg.Execute(ctx, inv, ffmpeg.Unit{
			Binary: ffmpegPath,
			Input:  src,
			Output: filepath.Join(dir, "check-"+string(mode)+".jpg"),
			Recipe: planner.Plan(mode, 16, 16, config.DefaultBackground),
			QScale: planner.QScale(config.DefaultQuality),
		})
		if err != nil {
			log.Error("%s render failed: %v", mode, err)
			if failed == nil {
				failed = fmt.Errorf("%w: %s: %w", ErrRenderFailed, mode, err)
			}
			continue
		}
		log.Success("%s render works", mode)
	}
	return failed
}
