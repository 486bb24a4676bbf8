package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrDirNotFound is returned when the source folder is missing or is not
// a directory.
var ErrDirNotFound = errors.New("directory not found")

// Supported image file extensions (lowercase, with leading dot).
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".tif":  true,
	".tiff": true,
	".bmp":  true,
	".webp": true,
	".gif":  true,
	".heic": true,
	".heif": true,
}

// IsSupported reports whether name has a supported extension, ignoring case.
// A name that is only an extension, such as ".jpg", has no extension.
func IsSupported(name string) bool {
	ext := filepath.Ext(name)
	if ext == name {
		return false
	}
	return imageExtensions[strings.ToLower(ext)]
}

// Discover lists the supported image files directly inside dir. It does
// not recurse; symlinks are followed and only regular files are kept.
// Paths are returned sorted by name. An empty result is not an error.
func Discover(dir string) ([]string, error) {
	fi, err := os.Stat(dir)
	if err != nil || !fi.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrDirNotFound, dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if !IsSupported(e.Name()) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		files = append(files, path)
	}
	sort.Strings(files)
	return files, nil
}
