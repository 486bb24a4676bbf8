package ffmpeg

import (
	"context"

	"github.com/backmassage/resizehelper/internal/toolexec"
)

// Execute builds and runs the ffmpeg command for a unit through inv. A
// failure is returned as the invoker's error (a *toolexec.CommandError for
// the exec invoker).
func Execute(ctx context.Context, inv toolexec.Invoker, u Unit) error {
	args := Build(u)
	return inv.Run(ctx, args[0], args[1:]...)
}
