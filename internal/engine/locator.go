// Package engine locates the external tools a run depends on: the ffmpeg
// render engine (required), the native DPI stamper sips (required), and
// exiftool (optional, enables resolution tag enrichment).
package engine

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
)

// Sentinel errors returned by Locate when a required tool is missing.
var (
	ErrFfmpegNotFound = errors.New("ffmpeg not found (expected e.g. /opt/homebrew/bin/ffmpeg)")
	ErrSipsNotFound   = errors.New("sips not found (should be present on macOS)")
)

// EnvFfmpegPath names the environment variable that overrides ffmpeg discovery.
const EnvFfmpegPath = "FFMPEG_PATH"

// DefaultSipsPath is where macOS ships sips.
const DefaultSipsPath = "/usr/bin/sips"

// WellKnownFfmpeg lists package-manager install locations checked after
// the bundled binary.
var WellKnownFfmpeg = []string{"/opt/homebrew/bin/ffmpeg", "/usr/local/bin/ffmpeg"}

// Source records which lookup rule produced the ffmpeg path.
type Source string

const (
	SourceEnv       Source = "env"
	SourceBundled   Source = "bundled"
	SourceWellKnown Source = "well-known"
	SourcePath      Source = "path"
)

// Tools holds resolved absolute paths. Exiftool is empty when unavailable.
type Tools struct {
	Ffmpeg   string
	Sips     string
	Exiftool string
	Source   Source
}

// HasExiftool reports whether the optional enrichment step can run.
func (t Tools) HasExiftool() bool { return t.Exiftool != "" }

// Locator resolves tool paths. The zero value is not usable; start from
// [NewLocator] and override fields in tests.
type Locator struct {
	Getenv       func(string) string
	LookPath     func(string) (string, error)
	IsExecutable func(string) bool
	// ResourceRoot is the directory searched for a bundled bin/ffmpeg.
	ResourceRoot string
	WellKnown    []string
	SipsPath     string
}

// NewLocator returns a Locator bound to the process environment. The
// resource root is the directory containing the running executable.
func NewLocator() *Locator {
	return &Locator{
		Getenv:       os.Getenv,
		LookPath:     exec.LookPath,
		IsExecutable: IsExecutable,
		ResourceRoot: executableDir(),
		WellKnown:    WellKnownFfmpeg,
		SipsPath:     DefaultSipsPath,
	}
}

// Locate resolves ffmpeg, sips, and exiftool. ffmpeg is searched in order:
// FFMPEG_PATH, <ResourceRoot>/bin/ffmpeg, the well-known paths, then PATH.
func (l *Locator) Locate() (Tools, error) {
	var t Tools

	ff, src, ok := l.findFfmpeg()
	if !ok {
		return t, ErrFfmpegNotFound
	}
	t.Ffmpeg, t.Source = ff, src

	sips := l.SipsPath
	if sips == "" {
		sips = DefaultSipsPath
	}
	if !l.IsExecutable(sips) {
		return t, ErrSipsNotFound
	}
	t.Sips = sips

	if p, err := l.LookPath("exiftool"); err == nil {
		t.Exiftool = p
	}
	return t, nil
}

func (l *Locator) findFfmpeg() (string, Source, bool) {
	if p := l.Getenv(EnvFfmpegPath); p != "" && l.IsExecutable(p) {
		return p, SourceEnv, true
	}
	if l.ResourceRoot != "" {
		if p := filepath.Join(l.ResourceRoot, "bin", "ffmpeg"); l.IsExecutable(p) {
			return p, SourceBundled, true
		}
	}
	for _, p := range l.WellKnown {
		if l.IsExecutable(p) {
			return p, SourceWellKnown, true
		}
	}
	if p, err := l.LookPath("ffmpeg"); err == nil {
		return p, SourcePath, true
	}
	return "", "", false
}

// IsExecutable reports whether path is a regular file with any execute bit.
func IsExecutable(path string) bool {
	fi, err := os.Stat(path)
	if err != nil || !fi.Mode().IsRegular() {
		return false
	}
	return fi.Mode().Perm()&0o111 != 0
}

func executableDir() string {
	exe, err := os.Executable()
	if err != nil {
		return ""
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe)
}
