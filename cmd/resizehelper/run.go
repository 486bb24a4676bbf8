package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/backmassage/resizehelper/internal/config"
	"github.com/backmassage/resizehelper/internal/display"
	"github.com/backmassage/resizehelper/internal/logging"
	"github.com/backmassage/resizehelper/internal/pipeline"
	"github.com/backmassage/resizehelper/internal/proof"
)

type runOptions struct {
	in, out string
	jobs    []string
	mode    config.Mode
	bg      string
	quality int
	dpi     int
	proof   bool
	timeout time.Duration
}

var runOpts = runOptions{mode: config.ModePad}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Resize every image in a folder to each job size",
	Example: `  resizehelper run --in ~/Photos/IN --out ~/Photos/Out --job 800x600@150 --job 1200x1200@300
  resizehelper run -i IN -o Out -j 800x600,400x300 --mode crop --bg black --proof`,
	Args: cobra.NoArgs,
	RunE: runBatch,
}

func init() {
	addRunFlags(runCmd.Flags(), &runOpts)
}

func addRunFlags(f *pflag.FlagSet, o *runOptions) {
	f.StringVarP(&o.in, "in", "i", "", "input folder (not searched recursively)")
	f.StringVarP(&o.out, "out", "o", "", "output folder; one subfolder per size is created")
	f.StringArrayVarP(&o.jobs, "job", "j", nil, "output size WxH[@DPI]; repeatable, comma-separated lists allowed")
	f.Var(config.ModeValue{P: &o.mode}, "mode", "fit mode: pad, crop or stretch")
	f.StringVar(&o.bg, "bg", config.DefaultBackground, "background color for pad bars and transparency")
	f.IntVarP(&o.quality, "quality", "q", config.DefaultQuality, "JPEG quality 0-100")
	f.IntVar(&o.dpi, "dpi", config.DefaultDPI, "DPI for jobs given without @DPI")
	f.BoolVar(&o.proof, "proof", false, "write proof.pdf with every output at print size")
	f.DurationVar(&o.timeout, "timeout", 0, "limit for each tool invocation (0 = none)")
}

// applyRunFlags overlays the run flags set in fs on cfg.
func applyRunFlags(fs *pflag.FlagSet, o runOptions, cfg *config.Config) error {
	if fs.Changed("in") {
		cfg.InputDir = config.NormalizeDirArg(o.in)
	}
	if fs.Changed("out") {
		cfg.OutputDir = config.NormalizeDirArg(o.out)
	}
	if fs.Changed("mode") {
		cfg.Mode = o.mode
	}
	if fs.Changed("bg") {
		cfg.Background = o.bg
	}
	if fs.Changed("quality") {
		cfg.Quality = o.quality
	}
	if fs.Changed("dpi") {
		cfg.DefaultDPI = o.dpi
	}
	if fs.Changed("proof") {
		cfg.Proof = o.proof
	}
	if fs.Changed("timeout") {
		cfg.ToolTimeout = o.timeout
	}
	if fs.Changed("job") {
		jobs, err := config.ParseJobs(splitSpecs(o.jobs), cfg.DefaultDPI)
		if err != nil {
			return err
		}
		cfg.Jobs = jobs
	}
	return nil
}

// splitSpecs flattens comma-separated job lists.
func splitSpecs(specs []string) []string {
	var out []string
	for _, s := range specs {
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func runBatch(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd.Flags(), globals)
	if err != nil {
		return err
	}
	if err := applyRunFlags(cmd.Flags(), runOpts, &cfg); err != nil {
		return err
	}
	if err := cfg.Validate(true); err != nil {
		return err
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		return err
	}
	defer log.Close()

	display.PrintBanner(os.Stdout)

	ctx, stop := interruptContext(cmd.Context(), log, "failing the remaining units")
	defer stop()

	rc := pipeline.NewRunConfig(&cfg)
	res, err := newRunner(&cfg, log).Run(ctx, rc)
	if err != nil {
		// Already logged as the run's single line.
		return exitError{1}
	}

	if cfg.Proof && res.Stats.Succeeded > 0 {
		writeProof(ctx, log, rc.OutputDir, res)
	}
	if !res.Stats.AllSucceeded() {
		return exitError{1}
	}
	return nil
}

// writeProof writes the proof sheet. Failures are logged only.
func writeProof(ctx context.Context, log *logging.Logger, outputDir string, res pipeline.Result) {
	path := filepath.Join(outputDir, proof.FileName)
	pr, err := proof.Sheet{}.Write(ctx, path, proof.PagesFromUnits(res.Units))
	for _, skipped := range pr.Skipped {
		log.Warn("Proof: skipped %v", skipped)
	}
	if err != nil {
		log.Warn("Proof sheet not written: %v", err)
		return
	}
	log.Success("Proof sheet: %s (%d pages)", path, pr.Pages)
}
