package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/backmassage/resizehelper/internal/config"
	"github.com/backmassage/resizehelper/internal/display"
	"github.com/backmassage/resizehelper/internal/logging"
	"github.com/backmassage/resizehelper/internal/web"
)

var serveOpts struct {
	addr    string
	in, out string
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the batch form in the browser",
	Long: `serve starts a local web page with the input and output folders, fit
mode, background, quality and five size rows. Submitting the form runs a
batch and shows its log. The folders default to ~/Desktop/Resize-helper/IN
and ~/Desktop/Resize-helper/Out, which are created on start.`,
	Args: cobra.NoArgs,
	RunE: serve,
}

func init() {
	f := serveCmd.Flags()
	f.StringVar(&serveOpts.addr, "addr", config.DefaultAddr, "listen address (port 0 picks a free port)")
	f.StringVarP(&serveOpts.in, "in", "i", "", "prefilled input folder")
	f.StringVarP(&serveOpts.out, "out", "o", "", "prefilled output folder")
}

func serve(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd.Flags(), globals)
	if err != nil {
		return err
	}
	fs := cmd.Flags()
	if fs.Changed("addr") {
		cfg.Addr = serveOpts.addr
	}
	if fs.Changed("in") {
		cfg.InputDir = config.NormalizeDirArg(serveOpts.in)
	}
	if fs.Changed("out") {
		cfg.OutputDir = config.NormalizeDirArg(serveOpts.out)
	}
	if err := cfg.Validate(false); err != nil {
		return err
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		return err
	}
	defer log.Close()

	display.PrintBanner(os.Stdout)

	in, out := config.ExpandHome(cfg.InputDir), config.ExpandHome(cfg.OutputDir)
	if in == "" || out == "" {
		defIn, defOut, err := web.DefaultDirs()
		if err != nil {
			log.Warn("No home folder for default folders: %v", err)
		} else {
			if in == "" {
				in = defIn
			}
			if out == "" {
				out = defOut
			}
			if err := web.EnsureDirs(defIn, defOut); err != nil {
				log.Warn("Cannot create default folders: %v", err)
			}
		}
	}

	handler := web.NewHandler(web.NewSession(in, out), newRunner(&cfg, log), log, cfg.Lang)
	ln, url, err := web.Listen(cfg.Addr)
	if err != nil {
		return err
	}
	log.Success("Serving on %s", url)
	log.Info("Press Ctrl+C to stop")

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return web.Serve(gctx, ln, web.LogRequests(handler, log))
	})
	g.Go(func() error {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigCh)
		select {
		case sig := <-sigCh:
			log.Warn("Received %s, shutting down", sig)
			cancel()
		case <-gctx.Done():
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("Server stopped")
	return nil
}
