package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/backmassage/resizehelper/internal/config"
	"github.com/backmassage/resizehelper/internal/engine"
	"github.com/backmassage/resizehelper/internal/logging"
	"github.com/backmassage/resizehelper/internal/pipeline"
	"github.com/backmassage/resizehelper/internal/toolexec"
)

// globalOptions holds the persistent flags. They are applied over the
// config file only when given on the command line.
type globalOptions struct {
	configPath string
	logFile    string
	color      config.ColorMode
	noColor    bool
	verbose    bool
	lang       string
}

var globals = globalOptions{color: config.ColorAuto, lang: config.LangEnglish}

var rootCmd = &cobra.Command{
	Use:   "resizehelper",
	Short: "Batch-resize images to JPEG at fixed pixel sizes and DPI",
	Long: `resizehelper renders every image in an input folder once per size job
(width x height @ DPI) into <output>/<W>x<H>px/<name>.jpg, using ffmpeg for
the resize and sips (plus exiftool when installed) to stamp the DPI.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	addGlobalFlags(rootCmd.PersistentFlags(), &globals)

	rootCmd.Version = version + " (" + commit + ")"
	rootCmd.SetVersionTemplate("resizehelper {{.Version}}\n")
	rootCmd.AddCommand(runCmd, checkCmd, serveCmd, inspectCmd)
}

func addGlobalFlags(fs *pflag.FlagSet, g *globalOptions) {
	fs.StringVarP(&g.configPath, "config", "c", "", "config file (default: $RESIZEHELPER_CONFIG, ./resizehelper.toml, or the user config dir)")
	fs.StringVar(&g.logFile, "log", "", "also append log lines to this file")
	fs.Var(config.ColorModeValue{P: &g.color}, "color", "colorize output: auto, always or never")
	fs.BoolVar(&g.noColor, "no-color", false, "disable colors (same as --color never)")
	fs.BoolVarP(&g.verbose, "verbose", "v", false, "log tool paths, source sizes and image placement")
	fs.StringVar(&g.lang, "lang", config.LangEnglish, "message language: en or de")
}

// exitError ends the process with code after the failure was already
// reported through the logger.
type exitError struct{ code int }

func (e exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		var ee exitError
		if errors.As(err, &ee) {
			return ee.code
		}
		fmt.Fprintf(os.Stderr, "resizehelper: %v\n", err)
		return 1
	}
	return 0
}

// loadConfig layers defaults, .env, the config file and the persistent
// flags set in fs. Subcommands apply their own flags on top.
func loadConfig(fs *pflag.FlagSet, g globalOptions) (config.Config, error) {
	cfg := config.DefaultConfig()
	if err := config.LoadEnv(".env"); err != nil {
		return cfg, err
	}

	path := g.configPath
	if path == "" {
		p, err := config.Discover()
		if err != nil {
			return cfg, err
		}
		path = p
	}
	if path != "" {
		if err := config.LoadFile(path, &cfg); err != nil {
			return cfg, err
		}
	}

	if fs.Changed("log") {
		cfg.LogFile = g.logFile
	}
	if fs.Changed("color") {
		cfg.ColorMode = g.color
	}
	if g.noColor {
		cfg.ColorMode = config.ColorNever
	}
	if fs.Changed("verbose") {
		cfg.Verbose = g.verbose
	}
	if fs.Changed("lang") {
		cfg.Lang = g.lang
	}
	return cfg, nil
}

// newLocator binds tool discovery to cfg. FFMPEG_PATH from the environment
// still beats ffmpeg_path from the config file.
func newLocator(cfg *config.Config) *engine.Locator {
	loc := engine.NewLocator()
	loc.SipsPath = cfg.SipsPath
	if ff := config.ExpandHome(cfg.FfmpegPath); ff != "" {
		loc.Getenv = func(key string) string {
			if v := os.Getenv(key); v != "" || key != engine.EnvFfmpegPath {
				return v
			}
			return ff
		}
	}
	return loc
}

func newRunner(cfg *config.Config, log *logging.Logger) *pipeline.Runner {
	inv := toolexec.ExecInvoker{Timeout: cfg.ToolTimeout}
	if cfg.Verbose {
		inv.Tee = os.Stderr
	}
	return &pipeline.Runner{
		Locator:  newLocator(cfg),
		Invoker:  inv,
		Log:      log,
		Messages: pipeline.NewMessages(cfg.Lang),
	}
}

// interruptContext cancels on SIGINT or SIGTERM, logging the interrupt.
// Call stop when done to release the signal handler.
func interruptContext(parent context.Context, log *logging.Logger, what string) (context.Context, func()) {
	ctx, cancel := context.WithCancel(parent)
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigCh:
			log.Warn("Received %s, %s", sig, what)
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, func() {
		signal.Stop(sigCh)
		cancel()
	}
}
