package naming

import (
	"path/filepath"
	"strings"

	"github.com/backmassage/resizehelper/internal/config"
)

// OutputExt is the extension of every rendered file.
const OutputExt = ".jpg"

// Stem returns the base name of path without its final extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// SizeDir returns the per-size directory for job under outputDir.
func SizeDir(outputDir string, job config.Job) string {
	return filepath.Join(outputDir, job.Label())
}

// OutputPath builds the output file path for rendering src with job.
func OutputPath(outputDir, src string, job config.Job) string {
	return filepath.Join(SizeDir(outputDir, job), Stem(src)+OutputExt)
}
