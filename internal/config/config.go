// Package config holds runtime configuration: defaults, job specs, the
// optional TOML file, .env loading, and validation. Defaults match the web
// form: pad mode, white background, quality 90, 75 dpi.
package config

import (
	"fmt"
	"strings"
	"time"
)

// --- Enum types for validated string fields ---

// Mode selects how a source is fitted into the target rectangle.
type Mode string

const (
	ModePad     Mode = "pad"     // Letterbox onto the background (default).
	ModeCrop    Mode = "crop"    // Fill and center-crop the overflow.
	ModeStretch Mode = "stretch" // Scale to exact size, ignoring aspect.
)

// Modes lists the valid fitting modes in display order.
var Modes = []Mode{ModePad, ModeCrop, ModeStretch}

// Valid reports whether m is one of [Modes].
func (m Mode) Valid() bool {
	switch m {
	case ModePad, ModeCrop, ModeStretch:
		return true
	}
	return false
}

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Supported message languages.
const (
	LangEnglish = "en"
	LangGerman  = "de"
)

const (
	DefaultBackground = "white"
	DefaultQuality    = 90
	DefaultDPI        = 75
	DefaultSipsPath   = "/usr/bin/sips"
	DefaultAddr       = "127.0.0.1:0"
)

// Config holds all runtime settings. It is populated by [DefaultConfig],
// then layered with the config file, .env, and CLI flags before being
// handed (by pointer) to the packages that need it.
type Config struct {
	// Paths.
	InputDir  string `toml:"input_dir"`
	OutputDir string `toml:"output_dir"`

	// Batch parameters.
	Jobs       []Job  `toml:"jobs"`
	Mode       Mode   `toml:"mode"`
	Background string `toml:"background"`
	Quality    int    `toml:"quality"`
	DefaultDPI int    `toml:"default_dpi"` // DPI for job specs that omit "@dpi".

	// External tools.
	FfmpegPath  string        `toml:"ffmpeg_path"` // Explicit override; FFMPEG_PATH wins when set.
	SipsPath    string        `toml:"sips_path"`   // Default: /usr/bin/sips.
	ToolTimeout time.Duration `toml:"tool_timeout"`

	// Extras.
	Proof bool   `toml:"proof"` // Write proof.pdf after a run.
	Lang  string `toml:"lang"`  // "en" or "de".
	Addr  string `toml:"addr"`  // Listen address for serve.

	// Display and logging.
	Verbose   bool      `toml:"verbose"`
	ColorMode ColorMode `toml:"color"`
	LogFile   string    `toml:"log_file"`
}

// DefaultConfig returns a Config with all defaults applied. Jobs and paths
// are left empty; callers supply them.
func DefaultConfig() Config {
	return Config{
		Mode:       ModePad,
		Background: DefaultBackground,
		Quality:    DefaultQuality,
		DefaultDPI: DefaultDPI,
		SipsPath:   DefaultSipsPath,
		Lang:       LangEnglish,
		Addr:       DefaultAddr,
		ColorMode:  ColorAuto,
	}
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// Validate checks enum fields, numeric ranges, and job specs. When
// requireRun is set, input/output directories and at least one job are
// also required. All problems are reported together in a [*ConfigError].
func (c *Config) Validate(requireRun bool) error {
	ce := &ConfigError{}

	if !c.Mode.Valid() {
		msg := fmt.Sprintf("mode: must be one of pad, crop, stretch; got %q", c.Mode)
		if s := SuggestMode(string(c.Mode)); s != "" {
			msg += fmt.Sprintf(" (did you mean %q?)", s)
		}
		ce.Errors = append(ce.Errors, msg)
	}
	if c.Quality < 0 || c.Quality > 100 {
		ce.Errors = append(ce.Errors, fmt.Sprintf("quality: must be between 0 and 100, got %d", c.Quality))
	}
	if c.DefaultDPI <= 0 {
		ce.Errors = append(ce.Errors, fmt.Sprintf("default_dpi: must be positive, got %d", c.DefaultDPI))
	}
	if strings.TrimSpace(c.Background) == "" {
		ce.Errors = append(ce.Errors, "background: must not be empty")
	}
	if c.ToolTimeout < 0 {
		ce.Errors = append(ce.Errors, "tool_timeout: must not be negative")
	}
	switch c.Lang {
	case LangEnglish, LangGerman:
	default:
		ce.Errors = append(ce.Errors, fmt.Sprintf("lang: must be en or de, got %q", c.Lang))
	}
	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		ce.Errors = append(ce.Errors, fmt.Sprintf("color: must be auto, always or never, got %q", c.ColorMode))
	}
	for i, j := range c.Jobs {
		if err := j.Validate(); err != nil {
			ce.Errors = append(ce.Errors, fmt.Sprintf("jobs[%d]: %v", i, err))
		}
	}

	if requireRun {
		if c.InputDir == "" || c.OutputDir == "" {
			ce.Errors = append(ce.Errors, "need both input and output directories")
		}
		if len(c.Jobs) == 0 {
			ce.Errors = append(ce.Errors, "need at least one job (e.g. --job 800x600@150)")
		}
	}

	if ce.HasErrors() {
		return ce
	}
	return nil
}
