package display

import (
	"fmt"
	"io"

	"github.com/backmassage/resizehelper/internal/term"
)

const banner = ` ___         _           _  _     _
| _ \___ __(_)______   | || |___| |_ __  ___ _ _
|   / -_|_-< |_ / -_)  | __ / -_) | '_ \/ -_) '_|
|_|_\___/__/_/__\___|  |_||_\___|_| .__/\___|_|
                                  |_|
`

// PrintBanner prints the ASCII art banner to w, in magenta when colors
// are enabled.
func PrintBanner(w io.Writer) {
	fmt.Fprintln(w, term.Paint(term.Magenta, banner))
}
