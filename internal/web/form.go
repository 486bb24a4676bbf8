package web

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/backmassage/resizehelper/internal/config"
)

// formError is a validation failure; key is its catalog message.
type formError struct{ key string }

func (e formError) Error() string { return e.key }

// first returns the first value of key, or def when missing or empty.
func first(v url.Values, key, def string) string {
	if s := v.Get(key); s != "" {
		return s
	}
	return def
}

// readFields extracts the non-row fields. defaults supplies the folders
// when the form omits them. An unknown mode falls back to pad.
func readFields(v url.Values, defaults FormState) FormState {
	f := FormState{
		InputDir:   strings.TrimSpace(first(v, "in_dir", defaults.InputDir)),
		OutputDir:  strings.TrimSpace(first(v, "out_dir", defaults.OutputDir)),
		Mode:       strings.TrimSpace(first(v, "mode", string(config.ModePad))),
		Background: strings.TrimSpace(first(v, "bg", config.DefaultBackground)),
		Quality:    strings.TrimSpace(first(v, "quality", strconv.Itoa(config.DefaultQuality))),
	}
	if !config.Mode(f.Mode).Valid() {
		f.Mode = string(config.ModePad)
	}
	if f.Background == "" {
		f.Background = config.DefaultBackground
	}
	if f.Quality == "" {
		f.Quality = strconv.Itoa(config.DefaultQuality)
	}
	return f
}

// parseQuality accepts 0 through 100 written as plain digits.
func parseQuality(s string) (int, error) {
	q, ok := atoiDigits(s)
	if !ok || q > 100 {
		return 0, formError{msgBadQuality}
	}
	return q, nil
}

// readRows parses the job rows. Rows with both width and height empty are
// skipped; an empty DPI means the default.
func readRows(v url.Values) ([RowCount]Row, []config.Job, error) {
	var rows [RowCount]Row
	var jobs []config.Job
	defDPI := strconv.Itoa(config.DefaultDPI)

	for i := range rows {
		n := strconv.Itoa(i + 1)
		r := Row{
			W:   strings.TrimSpace(v.Get("w" + n)),
			H:   strings.TrimSpace(v.Get("h" + n)),
			DPI: strings.TrimSpace(first(v, "dpi"+n, defDPI)),
		}
		if r.DPI == "" {
			r.DPI = defDPI
		}
		rows[i] = r

		if r.W == "" && r.H == "" {
			continue
		}
		if r.W == "" || r.H == "" {
			return rows, nil, formError{msgHalfRow}
		}
		w, okW := atoiDigits(r.W)
		h, okH := atoiDigits(r.H)
		dpi, okD := atoiDigits(r.DPI)
		if !okW || !okH || !okD {
			return rows, nil, formError{msgNotInteger}
		}
		jobs = append(jobs, config.Job{Width: w, Height: h, DPI: dpi})
	}
	if len(jobs) == 0 {
		return rows, nil, formError{msgNoRows}
	}
	return rows, jobs, nil
}

// atoiDigits parses a non-empty string of ASCII digits.
func atoiDigits(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	return n, err == nil
}
