package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/backmassage/resizehelper/internal/config"
)

// ErrNoJobs is returned by RunConfig.Validate when no job is given.
var ErrNoJobs = errors.New("at least one job is required")

// RunConfig is the immutable parameter set for one batch. It is passed
// by value and never mutated by the pipeline.
type RunConfig struct {
	InputDir   string
	OutputDir  string
	Jobs       []config.Job
	Mode       config.Mode
	Background string
	Quality    int
}

// NewRunConfig extracts the batch parameters from cfg. Jobs are copied.
func NewRunConfig(cfg *config.Config) RunConfig {
	return RunConfig{
		InputDir:   config.ExpandHome(cfg.InputDir),
		OutputDir:  config.ExpandHome(cfg.OutputDir),
		Jobs:       append([]config.Job(nil), cfg.Jobs...),
		Mode:       cfg.Mode,
		Background: cfg.Background,
		Quality:    cfg.Quality,
	}
}

// Validate rejects a run that cannot produce a meaningful result.
func (rc RunConfig) Validate() error {
	if strings.TrimSpace(rc.InputDir) == "" || strings.TrimSpace(rc.OutputDir) == "" {
		return errors.New("input and output folders are required")
	}
	if len(rc.Jobs) == 0 {
		return ErrNoJobs
	}
	for i, j := range rc.Jobs {
		if err := j.Validate(); err != nil {
			return fmt.Errorf("job %d: %w", i+1, err)
		}
	}
	if !rc.Mode.Valid() {
		return fmt.Errorf("invalid mode %q", rc.Mode)
	}
	if rc.Quality < 0 || rc.Quality > 100 {
		return fmt.Errorf("quality must be 0-100, got %d", rc.Quality)
	}
	if strings.TrimSpace(rc.Background) == "" {
		return errors.New("background color is required")
	}
	return nil
}
