package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/backmassage/resizehelper/internal/config"
	"github.com/backmassage/resizehelper/internal/display"
	"github.com/backmassage/resizehelper/internal/engine"
	"github.com/backmassage/resizehelper/internal/logging"
	"github.com/backmassage/resizehelper/internal/metadata"
	"github.com/backmassage/resizehelper/internal/naming"
	"github.com/backmassage/resizehelper/internal/planner"
	"github.com/backmassage/resizehelper/internal/probe"
	"github.com/backmassage/resizehelper/internal/toolexec"
)

// ToolLocator resolves the external tools for a run.
type ToolLocator interface {
	Locate() (engine.Tools, error)
}

// ConfigError is a failure that aborted the run before any unit. Its
// message is the localized single log line of the run.
type ConfigError struct {
	Line string
	Err  error
}

func (e *ConfigError) Error() string { return e.Line }
func (e *ConfigError) Unwrap() error { return e.Err }

// Result is the outcome of a batch. Lines is the ordered run log: one
// line per unit followed by the terminal line, or a single line when the
// run was rejected or found no images.
type Result struct {
	RunID string
	Lines []string
	Units []UnitOutcome
	Stats RunStats
	Tools engine.Tools
}

// Runner executes batches. Nil fields take process defaults. A Runner is
// never mutated by Run, so one value may serve concurrent callers.
type Runner struct {
	Locator  ToolLocator
	Invoker  toolexec.Invoker
	Log      *logging.Logger
	Messages *Messages
	NewRunID func() string
}

func (r Runner) withDefaults() Runner {
	if r.Locator == nil {
		r.Locator = engine.NewLocator()
	}
	if r.Invoker == nil {
		r.Invoker = toolexec.ExecInvoker{}
	}
	if r.Log == nil {
		r.Log = logging.Discard()
	}
	if r.Messages == nil {
		r.Messages = NewMessages(config.LangEnglish)
	}
	if r.NewRunID == nil {
		r.NewRunID = uuid.NewString
	}
	return r
}

// Run is the top-level batch entry point. It validates rc, locates tools,
// checks the input folder, creates the output folder, and renders every
// file × job unit sequentially (files outer, jobs inner).
func (r *Runner) Run(ctx context.Context, rc RunConfig) (Result, error) {
	return r.withDefaults().run(ctx, rc)
}

func (r Runner) run(ctx context.Context, rc RunConfig) (Result, error) {
	res := Result{RunID: r.NewRunID()}

	if err := rc.Validate(); err != nil {
		return r.reject(res, r.Messages.InvalidRun(err), err)
	}

	tools, err := r.Locator.Locate()
	if err != nil {
		line := err.Error()
		switch {
		case errors.Is(err, engine.ErrFfmpegNotFound):
			line = r.Messages.FfmpegMissing()
		case errors.Is(err, engine.ErrSipsNotFound):
			line = r.Messages.SipsMissing()
		}
		return r.reject(res, line, err)
	}
	res.Tools = tools

	if fi, err := os.Stat(rc.InputDir); err != nil || !fi.IsDir() {
		return r.reject(res, r.Messages.InputMissing(rc.InputDir), ErrDirNotFound)
	}
	if err := os.MkdirAll(rc.OutputDir, 0o755); err != nil {
		return r.reject(res, r.Messages.OutputFailed(rc.OutputDir, err), err)
	}

	files, err := Discover(rc.InputDir)
	if err != nil {
		return r.reject(res, r.Messages.InputUnreadable(err), err)
	}

	logBatchHeader(r.Log, res.RunID, rc, tools)

	if len(files) == 0 {
		line := r.Messages.NoImages()
		r.Log.Warn("%s", line)
		res.Lines = []string{line}
		return res, nil
	}

	res.Stats = RunStats{Files: len(files), Jobs: len(rc.Jobs), Total: len(files) * len(rc.Jobs)}
	ur := &unitRunner{
		ffmpeg:  tools.Ffmpeg,
		invoker: r.Invoker,
		stamper: metadata.Stamper{Invoker: r.Invoker, Sips: tools.Sips, Exiftool: tools.Exiftool},
		rc:      rc,
		qscale:  planner.QScale(rc.Quality),
	}
	prober := probe.Prober{Ffprobe: probe.FfprobeBeside(tools.Ffmpeg)}
	owners := naming.NewCollisionTracker()

	idx := 0
	for _, src := range files {
		if r.Log.Verbose() && ctx.Err() == nil {
			logSource(ctx, r.Log, prober, src, rc)
		}
		for _, job := range rc.Jobs {
			idx++
			u := ur.render(ctx, src, job)
			u.Index, u.Total = idx, res.Stats.Total
			r.record(&res, owners, u)
		}
	}

	res.Lines = append(res.Lines, r.Messages.Done())
	logSummary(r.Log, &res.Stats)
	return res, nil
}

// reject produces the single-line result of a configuration failure.
func (r Runner) reject(res Result, line string, err error) (Result, error) {
	r.Log.Error("%s", line)
	res.Lines = []string{line}
	return res, &ConfigError{Line: line, Err: err}
}

// record appends a unit's line and outcome and updates stats.
func (r Runner) record(res *Result, owners *naming.CollisionTracker, u UnitOutcome) {
	line := u.Line()
	res.Lines = append(res.Lines, line)
	res.Units = append(res.Units, u)

	if !u.OK() {
		res.Stats.Failed++
		r.Log.Error("%s", line)
		return
	}

	res.Stats.Succeeded++
	r.Log.Success("%s", line)
	if fi, err := os.Stat(u.Output); err == nil {
		res.Stats.OutputBytes += fi.Size()
	}
	switch u.Enrich {
	case metadata.EnrichSucceeded:
		res.Stats.EnrichSucceeded++
	case metadata.EnrichFailedIgnored:
		res.Stats.EnrichFailed++
		r.Log.Debug(r.Log.Verbose(), "  exiftool failed (ignored): %v", u.EnrichErr)
	}
	if prev, over := owners.Claim(u.Output, naming.UnitKey(u.Source, u.Job)); over {
		res.Stats.Overwritten++
		r.Log.Warn("  %s overwrote the output of %s", filepath.Base(u.Output), prev)
	}
}

func logBatchHeader(log *logging.Logger, runID string, rc RunConfig, tools engine.Tools) {
	jobs := make([]string, len(rc.Jobs))
	for i, j := range rc.Jobs {
		jobs[i] = j.String()
	}
	log.Info("=== Run %s ===", runID)
	log.Info("In:   %s", rc.InputDir)
	log.Info("Out:  %s", rc.OutputDir)
	log.Info("Jobs: %s", strings.Join(jobs, ", "))
	log.Info("Mode: %s | BG: %s | Quality: %d (q:v %d)", rc.Mode, rc.Background, rc.Quality, planner.QScale(rc.Quality))
	log.Debug(log.Verbose(), "ffmpeg: %s (%s)", tools.Ffmpeg, tools.Source)
	if tools.HasExiftool() {
		log.Debug(log.Verbose(), "exiftool: %s", tools.Exiftool)
	} else {
		log.Debug(log.Verbose(), "exiftool: not installed, resolution tags left to sips")
	}
}

// logSource logs source dimensions and where each job will place the
// image. Probe failures are logged and otherwise ignored.
func logSource(ctx context.Context, log *logging.Logger, prober probe.Prober, src string, rc RunConfig) {
	info, err := prober.Probe(ctx, src)
	if err != nil {
		log.Debug(true, "  %s: cannot probe: %v", filepath.Base(src), err)
		return
	}
	log.Debug(true, "  %s: %s %s (%s)", filepath.Base(src), info.Format, info.Resolution(), info.Orientation())
	for _, j := range rc.Jobs {
		fit := planner.FitRect(rc.Mode, info.Width, info.Height, j.Width, j.Height)
		log.Debug(true, "    %s: image %dx%d at (%d,%d), print %s",
			j.Label(), fit.Width, fit.Height, fit.X, fit.Y, display.FormatPrintSize(j.Width, j.Height, j.DPI))
	}
}

func logSummary(log *logging.Logger, stats *RunStats) {
	log.Info("==============================")
	log.Info("Done: %d ok, %d failed of %d (%d files x %d jobs)",
		stats.Succeeded, stats.Failed, stats.Total, stats.Files, stats.Jobs)
	if stats.Succeeded > 0 {
		log.Info("  Output written: %s", display.FormatBytes(stats.OutputBytes))
	}
	if stats.EnrichFailed > 0 {
		log.Warn("  exiftool failed on %d outputs (DPI still set by sips)", stats.EnrichFailed)
	}
	if stats.Overwritten > 0 {
		log.Warn("  %d outputs were overwritten later in this run", stats.Overwritten)
	}
	if stats.Failed > 0 {
		log.Error("  %d units failed", stats.Failed)
	} else {
		log.Success("  All units succeeded")
	}
}
