// Package proof writes a PDF proof sheet of a run's outputs. Each output
// gets its own page sized to the physical print size implied by its pixel
// dimensions and DPI, so printing the page at 100% shows the real size.
package proof

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/phpdave11/gofpdf"
	"golang.org/x/sync/errgroup"

	"github.com/backmassage/resizehelper/internal/config"
	"github.com/backmassage/resizehelper/internal/metadata"
	"github.com/backmassage/resizehelper/internal/pipeline"
)

// FileName is the proof sheet's name inside the output folder.
const FileName = "proof.pdf"

// DefaultMaxEdge bounds the embedded image's longer side in pixels.
const DefaultMaxEdge = 1600

// ErrNoPages is returned when there is nothing to put on the sheet.
var ErrNoPages = errors.New("no outputs to proof")

// Page is one output to place on the sheet. Job supplies the DPI when the
// file itself carries no readable resolution.
type Page struct {
	Path string
	Job  config.Job
}

// Sheet configures proof sheet generation.
type Sheet struct {
	Workers     int // Concurrent image preparations; <= 0 means 4.
	MaxEdge     int // <= 0 means DefaultMaxEdge.
	JPEGQuality int // Embedded JPEG quality; out of range means 85.
}

// Result reports what was written.
type Result struct {
	Path    string
	Pages   int
	Skipped []error // One per output that could not be embedded.
}

// PagesFromUnits lists the successful outputs of a run. When several units
// wrote the same file, the last one wins, matching what is on disk.
func PagesFromUnits(units []pipeline.UnitOutcome) []Page {
	pos := make(map[string]int)
	var pages []Page
	for _, u := range units {
		if !u.OK() {
			continue
		}
		if i, ok := pos[u.Output]; ok {
			pages[i].Job = u.Job
			continue
		}
		pos[u.Output] = len(pages)
		pages = append(pages, Page{Path: u.Output, Job: u.Job})
	}
	return pages
}

// PageSize returns the print size in inches of a w×h pixel image at dpi.
func PageSize(w, h int, dpi float64) (float64, float64) {
	if dpi <= 0 {
		dpi = config.DefaultDPI
	}
	return float64(w) / dpi, float64(h) / dpi
}

type prepared struct {
	id     string
	buf    *bytes.Buffer
	wd, ht float64
	err    error
}

// Write renders pages into a PDF at path. Pages that cannot be read are
// skipped and reported in Result.Skipped; an error is returned only when
// no page could be embedded or the PDF cannot be written.
func (s Sheet) Write(ctx context.Context, path string, pages []Page) (Result, error) {
	res := Result{Path: path}
	if len(pages) == 0 {
		return res, ErrNoPages
	}

	items := make([]prepared, len(pages))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers())
	for i, p := range pages {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			items[i] = s.prepare(i, p)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return res, err
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{UnitStr: "in"})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	opts := gofpdf.ImageOptions{ImageType: "JPG", ReadDpi: false}

	for _, it := range items {
		if it.err != nil {
			res.Skipped = append(res.Skipped, it.err)
			continue
		}
		pdf.AddPageFormat("P", gofpdf.SizeType{Wd: it.wd, Ht: it.ht})
		pdf.RegisterImageOptionsReader(it.id, opts, it.buf)
		pdf.ImageOptions(it.id, 0, 0, it.wd, it.ht, false, opts, 0, "")
		res.Pages++
	}
	if res.Pages == 0 {
		return res, fmt.Errorf("%w: %w", ErrNoPages, errors.Join(res.Skipped...))
	}
	if err := pdf.OutputFileAndClose(path); err != nil {
		return res, fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return res, nil
}

// prepare loads one output, down-samples it if needed, and computes its
// page size from the full-resolution dimensions.
func (s Sheet) prepare(i int, p Page) prepared {
	it := prepared{id: fmt.Sprintf("img_%d", i)}

	img, err := imaging.Open(p.Path)
	if err != nil {
		it.err = fmt.Errorf("%s: %w", filepath.Base(p.Path), err)
		return it
	}
	b := img.Bounds()

	dpi := float64(p.Job.DPI)
	if r, err := metadata.ReadResolution(p.Path); err == nil && r.X > 0 {
		dpi = r.X
	}
	it.wd, it.ht = PageSize(b.Dx(), b.Dy(), dpi)

	edge := s.maxEdge()
	var embed image.Image = img
	if b.Dx() > edge || b.Dy() > edge {
		embed = imaging.Fit(img, edge, edge, imaging.Lanczos)
	}
	it.buf = new(bytes.Buffer)
	if err := imaging.Encode(it.buf, embed, imaging.JPEG, imaging.JPEGQuality(s.quality())); err != nil {
		it.err = fmt.Errorf("%s: %w", filepath.Base(p.Path), err)
	}
	return it
}

func (s Sheet) workers() int {
	if s.Workers <= 0 {
		return 4
	}
	return s.Workers
}

func (s Sheet) maxEdge() int {
	if s.MaxEdge <= 0 {
		return DefaultMaxEdge
	}
	return s.MaxEdge
}

func (s Sheet) quality() int {
	if s.JPEGQuality <= 0 || s.JPEGQuality > 100 {
		return 85
	}
	return s.JPEGQuality
}
