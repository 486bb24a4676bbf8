package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Job is one requested output size: a pixel rectangle plus the DPI
// metadata stamped on the result.
type Job struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
	DPI    int `toml:"dpi"`
}

// String renders the job in the same form [ParseJob] accepts.
func (j Job) String() string {
	return fmt.Sprintf("%dx%d@%d", j.Width, j.Height, j.DPI)
}

// Label is the size directory name, e.g. "800x600px".
func (j Job) Label() string {
	return fmt.Sprintf("%dx%dpx", j.Width, j.Height)
}

// Validate requires every field to be positive.
func (j Job) Validate() error {
	if j.Width <= 0 || j.Height <= 0 {
		return fmt.Errorf("width and height must be positive, got %dx%d", j.Width, j.Height)
	}
	if j.DPI <= 0 {
		return fmt.Errorf("dpi must be positive, got %d", j.DPI)
	}
	return nil
}

// ParseJob parses "WxH" or "WxH@DPI" (case-insensitive x). A missing DPI
// takes defaultDPI.
func ParseJob(s string, defaultDPI int) (Job, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return Job{}, errors.New("empty job spec")
	}

	size, dpiStr, hasDPI := strings.Cut(raw, "@")
	ws, hs, ok := strings.Cut(strings.ToLower(size), "x")
	if !ok {
		return Job{}, fmt.Errorf("invalid job %q (use WxH or WxH@DPI)", s)
	}

	var j Job
	var err error
	if j.Width, err = parsePositive(ws); err != nil {
		return Job{}, fmt.Errorf("invalid width in %q: %w", s, err)
	}
	if j.Height, err = parsePositive(hs); err != nil {
		return Job{}, fmt.Errorf("invalid height in %q: %w", s, err)
	}
	j.DPI = defaultDPI
	if hasDPI {
		if j.DPI, err = parsePositive(dpiStr); err != nil {
			return Job{}, fmt.Errorf("invalid dpi in %q: %w", s, err)
		}
	}
	return j, j.Validate()
}

func parsePositive(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, errors.New("not an integer")
	}
	if n <= 0 {
		return 0, errors.New("must be positive")
	}
	return n, nil
}
