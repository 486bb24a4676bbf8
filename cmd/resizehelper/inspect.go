package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/backmassage/resizehelper/internal/display"
	"github.com/backmassage/resizehelper/internal/logging"
	"github.com/backmassage/resizehelper/internal/metadata"
	"github.com/backmassage/resizehelper/internal/probe"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect FILE...",
	Short: "Show pixel size, format and stored print resolution of images",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd.Flags(), globals)
		if err != nil {
			return err
		}
		log, err := logging.NewLogger(&cfg)
		if err != nil {
			return err
		}
		defer log.Close()

		// ffprobe is optional here; a missing sips does not matter.
		tools, _ := newLocator(&cfg).Locate()
		prober := probe.Prober{Ffprobe: probe.FfprobeBeside(tools.Ffmpeg)}

		failed := false
		for _, path := range args {
			if !inspectFile(cmd, log, prober, path) {
				failed = true
			}
		}
		if failed {
			return exitError{1}
		}
		return nil
	},
}

func inspectFile(cmd *cobra.Command, log *logging.Logger, prober probe.Prober, path string) bool {
	name := filepath.Base(path)
	info, err := prober.Probe(cmd.Context(), path)
	if err != nil {
		log.Error("%s: %v", name, err)
		return false
	}
	log.Info("%s: %s %s px, %s (via %s)", name, info.Format, info.Resolution(), info.Orientation(), info.Via)

	res, err := metadata.ReadResolution(path)
	if err != nil {
		log.Warn("  no resolution metadata")
		return true
	}
	log.Info("  %.0f x %.0f dpi (%s), prints at %s",
		res.X, res.Y, res.Source, display.FormatPrintSize(info.Width, info.Height, res.DPI()))
	return true
}
