package display

import (
	"fmt"
)

// FormatBytes returns a human-readable size (B, KiB, MiB, GiB, TiB, PiB).
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	suffixes := []string{"KiB", "MiB", "GiB", "TiB", "PiB", "EiB"}
	if exp >= len(suffixes) {
		exp = len(suffixes) - 1
		div = 1
		for i := 0; i <= exp; i++ {
			div *= unit
		}
	}
	return fmt.Sprintf("%.1f %s", float64(bytes)/float64(div), suffixes[exp])
}

// FormatPrintSize returns the physical size of a w×h pixel image at dpi,
// e.g. "8.00 x 6.00 in (20.3 x 15.2 cm)". A non-positive dpi yields "n/a".
func FormatPrintSize(w, h, dpi int) string {
	if dpi <= 0 {
		return "n/a"
	}
	wi := float64(w) / float64(dpi)
	hi := float64(h) / float64(dpi)
	return fmt.Sprintf("%.2f x %.2f in (%.1f x %.1f cm)", wi, hi, wi*2.54, hi*2.54)
}
