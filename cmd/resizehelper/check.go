package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/backmassage/resizehelper/internal/check"
	"github.com/backmassage/resizehelper/internal/display"
	"github.com/backmassage/resizehelper/internal/logging"
	"github.com/backmassage/resizehelper/internal/toolexec"
)

// checkTimeout bounds each test render when no tool timeout is configured.
const checkTimeout = 30 * time.Second

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Show which tools will be used and test-render each fit mode",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(cmd.Flags(), globals)
		if err != nil {
			return err
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

		timeout := cfg.ToolTimeout
		if timeout == 0 {
			timeout = checkTimeout
		}
		inv := toolexec.ExecInvoker{Timeout: timeout}
		if err := check.RunCheck(cmd.Context(), newLocator(&cfg), inv, log); err != nil {
			return exitError{1}
		}
		log.Success("All checks passed")
		return nil
	},
}
