// Command resizehelper batch-resizes a folder of images into JPEGs at fixed
// pixel sizes and print resolutions, one subfolder per size.
//
// Subcommands run a batch from the command line (run), serve the same
// batch as a local browser form (serve), report tool discovery (check),
// and show an image's dimensions and DPI (inspect).
package main

import "os"

// version and commit are injected at build time via -ldflags.
var (
	version = "1.0.0-dev"
	commit  = "unknown"
)

func main() {
	os.Exit(Execute())
}
