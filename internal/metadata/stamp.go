package metadata

import (
	"context"
	"strconv"

	"github.com/backmassage/resizehelper/internal/toolexec"
)

// EnrichOutcome is the result of the optional exiftool step.
type EnrichOutcome int

const (
	EnrichSkipped       EnrichOutcome = iota // exiftool not installed, or sips failed first.
	EnrichSucceeded                          // Tags rewritten.
	EnrichFailedIgnored                      // exiftool failed; the unit still succeeds.
)

func (o EnrichOutcome) String() string {
	switch o {
	case EnrichSucceeded:
		return "succeeded"
	case EnrichFailedIgnored:
		return "failed (ignored)"
	default:
		return "skipped"
	}
}

// SipsArgs returns the sips arguments that set both DPI axes in place.
func SipsArgs(path string, dpi int) []string {
	d := strconv.Itoa(dpi)
	return []string{"--setProperty", "dpiWidth", d, "--setProperty", "dpiHeight", d, path}
}

// ExiftoolArgs returns the exiftool arguments that set EXIF and JFIF
// resolution to dpi pixels per inch, overwriting the file in place.
func ExiftoolArgs(path string, dpi int) []string {
	d := strconv.Itoa(dpi)
	return []string{
		"-overwrite_original",
		"-XResolution=" + d,
		"-YResolution=" + d,
		"-ResolutionUnit=inches",
		"-JFIF:XResolution=" + d,
		"-JFIF:YResolution=" + d,
		"-JFIF:ResolutionUnit=inches",
		path,
	}
}

// Stamper applies DPI metadata to finished outputs.
type Stamper struct {
	Invoker  toolexec.Invoker
	Sips     string
	Exiftool string // Empty disables enrichment.
}

// StampResult reports the enrichment step. EnrichErr holds the swallowed
// exiftool error when Enrich is EnrichFailedIgnored.
type StampResult struct {
	Enrich    EnrichOutcome
	EnrichErr error
}

// Stamp sets dpi on path. A sips failure is returned as an error; an
// exiftool failure is recorded in the result only.
func (s Stamper) Stamp(ctx context.Context, path string, dpi int) (StampResult, error) {
	if err := s.Invoker.Run(ctx, s.Sips, SipsArgs(path, dpi)...); err != nil {
		return StampResult{Enrich: EnrichSkipped}, err
	}
	if s.Exiftool == "" {
		return StampResult{Enrich: EnrichSkipped}, nil
	}
	if err := s.Invoker.Run(ctx, s.Exiftool, ExiftoolArgs(path, dpi)...); err != nil {
		return StampResult{Enrich: EnrichFailedIgnored, EnrichErr: err}, nil
	}
	return StampResult{Enrich: EnrichSucceeded}, nil
}
