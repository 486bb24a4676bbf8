package toolexec

//go:generate mockgen -destination=mocks/mock_invoker.go -package=mocks . Invoker

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
	"strings"
	"time"
)

// Invoker runs one external command to completion.
type Invoker interface {
	Run(ctx context.Context, name string, args ...string) error
}

// ExecInvoker runs commands with os/exec.
type ExecInvoker struct {
	// Timeout bounds each invocation; zero means no limit.
	Timeout time.Duration
	// Tee, when set, also receives the child's stderr as it is written.
	Tee io.Writer
}

// Run executes name with args. Stdin and stdout are attached to the null
// device. A start failure or non-zero exit returns a *CommandError.
func (e ExecInvoker) Run(ctx context.Context, name string, args ...string) error {
	if e.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, name, args...)

	var stderrBuf bytes.Buffer
	if e.Tee != nil {
		cmd.Stderr = io.MultiWriter(&stderrBuf, e.Tee)
	} else {
		cmd.Stderr = &stderrBuf
	}

	err := cmd.Run()
	if err == nil {
		return nil
	}

	ce := &CommandError{
		Argv:     append([]string{name}, args...),
		Stderr:   stderrBuf.String(),
		ExitCode: -1,
		Err:      err,
	}
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		ce.ExitCode = ee.ExitCode()
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		ce.Err = ctxErr
	}
	return ce
}

// CommandError describes a failed tool invocation.
type CommandError struct {
	Argv     []string
	Stderr   string
	ExitCode int // -1 when the process never exited normally.
	Err      error
}

// Error renders "<stderr>  |  cmd: <argv>". Empty stderr becomes
// "unknown error" for plain non-zero exits and the underlying error text
// when the process could not be started or was cancelled.
func (e *CommandError) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" {
		msg = "unknown error"
		var ee *exec.ExitError
		if e.Err != nil && !errors.As(e.Err, &ee) {
			msg = e.Err.Error()
		}
	}
	return msg + "  |  cmd: " + strings.Join(e.Argv, " ")
}

func (e *CommandError) Unwrap() error { return e.Err }
