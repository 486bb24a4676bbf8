package web

import (
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/backmassage/resizehelper/internal/config"
)

// RowCount is the number of job rows on the form.
const RowCount = 5

// Row holds one job row exactly as typed.
type Row struct {
	W, H, DPI string
}

// FormState is the text shown in the form's fields.
type FormState struct {
	InputDir   string
	OutputDir  string
	Mode       string
	Background string
	Quality    string
	Rows       [RowCount]Row
}

// Session remembers the last submitted form values for the life of the
// server, so the form comes back filled in after a run or a rejection.
type Session struct {
	mu    sync.Mutex
	state FormState

	// inDir and outDir are the startup folders. A submit with an empty
	// folder field falls back to these, not to the last-used value.
	inDir, outDir string
}

// NewSession returns a session prefilled with the given folders and the
// default mode, background, quality, and row DPI.
func NewSession(inputDir, outputDir string) *Session {
	s := &Session{
		state: FormState{
			InputDir:   inputDir,
			OutputDir:  outputDir,
			Mode:       string(config.ModePad),
			Background: config.DefaultBackground,
			Quality:    strconv.Itoa(config.DefaultQuality),
		},
		inDir:  inputDir,
		outDir: outputDir,
	}
	for i := range s.state.Rows {
		s.state.Rows[i].DPI = strconv.Itoa(config.DefaultDPI)
	}
	return s
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() FormState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Defaults returns the folders the session started with.
func (s *Session) Defaults() FormState {
	return FormState{InputDir: s.inDir, OutputDir: s.outDir}
}

// setFields stores everything but the rows.
func (s *Session) setFields(f FormState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.InputDir = f.InputDir
	s.state.OutputDir = f.OutputDir
	s.state.Mode = f.Mode
	s.state.Background = f.Background
	s.state.Quality = f.Quality
}

func (s *Session) setRows(rows [RowCount]Row) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Rows = rows
}

// DefaultDirs returns ~/Desktop/Resize-helper/IN and .../Out.
func DefaultDirs() (in, out string, err error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", "", err
	}
	base := filepath.Join(home, "Desktop", "Resize-helper")
	return filepath.Join(base, "IN"), filepath.Join(base, "Out"), nil
}

// EnsureDirs creates the given folders if they do not exist.
func EnsureDirs(dirs ...string) error {
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return err
		}
	}
	return nil
}
