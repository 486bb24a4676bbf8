package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/backmassage/resizehelper/internal/config"
	"github.com/backmassage/resizehelper/internal/ffmpeg"
	"github.com/backmassage/resizehelper/internal/metadata"
	"github.com/backmassage/resizehelper/internal/naming"
	"github.com/backmassage/resizehelper/internal/planner"
	"github.com/backmassage/resizehelper/internal/toolexec"
)

// UnitOutcome is the result of rendering one (source, job) pair.
type UnitOutcome struct {
	Index  int // 1-based position in the run.
	Total  int
	Source string
	Job    config.Job
	Output string
	Err    error
	Enrich metadata.EnrichOutcome
	// EnrichErr is the swallowed exiftool error, if any.
	EnrichErr error
}

// OK reports whether the unit produced its output.
func (u UnitOutcome) OK() bool { return u.Err == nil }

// Line renders the unit's log line:
//
//	[i/N] OK  name -> WxHpx @ DPIdpi
//	[i/N] FAIL name -> WxHpx @ DPIdpi  |  error
func (u UnitOutcome) Line() string {
	name := filepath.Base(u.Source)
	if u.Err == nil {
		return fmt.Sprintf("[%d/%d] OK  %s -> %dx%dpx @ %ddpi",
			u.Index, u.Total, name, u.Job.Width, u.Job.Height, u.Job.DPI)
	}
	return fmt.Sprintf("[%d/%d] FAIL %s -> %dx%dpx @ %ddpi  |  %v",
		u.Index, u.Total, name, u.Job.Width, u.Job.Height, u.Job.DPI, u.Err)
}

// unitRunner renders single units with the tools and settings fixed for
// one run.
type unitRunner struct {
	ffmpeg  string
	invoker toolexec.Invoker
	stamper metadata.Stamper
	rc      RunConfig
	qscale  int
}

// render creates the size folder, renders src with ffmpeg, and stamps DPI.
// Any step failing aborts the unit; a cancelled context fails it before
// any work.
func (u *unitRunner) render(ctx context.Context, src string, job config.Job) UnitOutcome {
	out := UnitOutcome{Source: src, Job: job, Output: naming.OutputPath(u.rc.OutputDir, src, job)}

	if err := ctx.Err(); err != nil {
		out.Err = err
		return out
	}
	if err := os.MkdirAll(naming.SizeDir(u.rc.OutputDir, job), 0o755); err != nil {
		out.Err = err
		return out
	}

	err := ffmpeg.Execute(ctx, u.invoker, ffmpeg.Unit{
		Binary: u.ffmpeg,
		Input:  src,
		Output: out.Output,
		Recipe: planner.Plan(u.rc.Mode, job.Width, job.Height, u.rc.Background),
		QScale: u.qscale,
	})
	if err != nil {
		out.Err = err
		return out
	}

	res, err := u.stamper.Stamp(ctx, out.Output, job.DPI)
	out.Enrich, out.EnrichErr = res.Enrich, res.EnrichErr
	if err != nil {
		out.Err = err
	}
	return out
}
