package metadata

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/dsoprea/go-exif/v3"
	exifcommon "github.com/dsoprea/go-exif/v3/common"
)

// ErrNoResolution is returned when an image carries no usable density.
var ErrNoResolution = errors.New("no resolution metadata")

// Where a Resolution was read from.
const (
	SourceEXIF = "exif"
	SourceJFIF = "jfif"
	SourcePNG  = "png"
)

// Resolution is a print density in pixels per inch.
type Resolution struct {
	X, Y   float64
	Source string
}

// DPI returns the horizontal density rounded to the nearest integer.
func (r Resolution) DPI() int { return int(math.Round(r.X)) }

// ReadResolution reads the print density of the image at path.
func ReadResolution(path string) (Resolution, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Resolution{}, err
	}
	return ParseResolution(data)
}

// ParseResolution extracts density from encoded image bytes, preferring
// EXIF tags, then JFIF APP0, then PNG pHYs.
func ParseResolution(data []byte) (Resolution, error) {
	if r, err := parseEXIF(data); err == nil {
		return r, nil
	}
	if r, err := parseJFIF(data); err == nil {
		return r, nil
	}
	if r, err := parsePNG(data); err == nil {
		return r, nil
	}
	return Resolution{}, ErrNoResolution
}

// parseEXIF reads XResolution/YResolution/ResolutionUnit from IFD0.
func parseEXIF(data []byte) (res Resolution, err error) {
	// go-exif reports some malformed input by panicking.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("exif: %v", r)
		}
	}()

	rawExif, err := exif.SearchAndExtractExif(data)
	if err != nil {
		return Resolution{}, err
	}

	im := exifcommon.NewIfdMapping()
	if err := exifcommon.LoadStandardIfds(im); err != nil {
		return Resolution{}, err
	}
	ti := exif.NewTagIndex()

	_, index, err := exif.Collect(im, ti, rawExif)
	if err != nil {
		return Resolution{}, err
	}
	if index.RootIfd == nil {
		return Resolution{}, ErrNoResolution
	}

	x, okX := rationalTag(index.RootIfd, "XResolution")
	y, okY := rationalTag(index.RootIfd, "YResolution")
	if !okX {
		return Resolution{}, ErrNoResolution
	}
	if !okY {
		y = x
	}

	// ResolutionUnit: 2 = inch (default), 3 = centimeter.
	if unit, ok := shortTag(index.RootIfd, "ResolutionUnit"); ok && unit == 3 {
		x *= 2.54
		y *= 2.54
	}
	return Resolution{X: x, Y: y, Source: SourceEXIF}, nil
}

func rationalTag(ifd *exif.Ifd, name string) (float64, bool) {
	tags, err := ifd.FindTagWithName(name)
	if err != nil || len(tags) == 0 {
		return 0, false
	}
	val, err := tags[0].Value()
	if err != nil {
		return 0, false
	}
	rats, ok := val.([]exifcommon.Rational)
	if !ok || len(rats) == 0 || rats[0].Denominator == 0 {
		return 0, false
	}
	return float64(rats[0].Numerator) / float64(rats[0].Denominator), true
}

func shortTag(ifd *exif.Ifd, name string) (uint16, bool) {
	tags, err := ifd.FindTagWithName(name)
	if err != nil || len(tags) == 0 {
		return 0, false
	}
	val, err := tags[0].Value()
	if err != nil {
		return 0, false
	}
	switch v := val.(type) {
	case []uint16:
		if len(v) > 0 {
			return v[0], true
		}
	case uint16:
		return v, true
	}
	return 0, false
}

// parseJFIF walks JPEG markers up to start-of-scan looking for the JFIF
// APP0 segment and returns its density when the unit is inch or cm.
func parseJFIF(data []byte) (Resolution, error) {
	if len(data) < 4 || data[0] != 0xFF || data[1] != 0xD8 {
		return Resolution{}, errors.New("not a JPEG")
	}
	i := 2
	for i+4 <= len(data) {
		if data[i] != 0xFF {
			return Resolution{}, errors.New("jpeg: bad marker")
		}
		marker := data[i+1]
		if marker == 0xFF { // fill byte
			i++
			continue
		}
		if marker == 0xDA || marker == 0xD9 { // SOS / EOI
			break
		}
		segLen := int(binary.BigEndian.Uint16(data[i+2 : i+4]))
		if segLen < 2 || i+2+segLen > len(data) {
			return Resolution{}, errors.New("jpeg: truncated segment")
		}
		seg := data[i+4 : i+2+segLen]
		if marker == 0xE0 && len(seg) >= 12 && bytes.Equal(seg[:5], []byte("JFIF\x00")) {
			unit := seg[7]
			x := float64(binary.BigEndian.Uint16(seg[8:10]))
			y := float64(binary.BigEndian.Uint16(seg[10:12]))
			switch unit {
			case 1:
				return Resolution{X: x, Y: y, Source: SourceJFIF}, nil
			case 2:
				return Resolution{X: x * 2.54, Y: y * 2.54, Source: SourceJFIF}, nil
			}
			return Resolution{}, ErrNoResolution
		}
		i += 2 + segLen
	}
	return Resolution{}, ErrNoResolution
}

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

// parsePNG reads the pHYs chunk; only the meter unit yields a density.
func parsePNG(data []byte) (Resolution, error) {
	if !bytes.HasPrefix(data, pngSignature) {
		return Resolution{}, errors.New("not a PNG")
	}
	buf := bytes.NewReader(data[len(pngSignature):])
	for {
		var length uint32
		if err := binary.Read(buf, binary.BigEndian, &length); err != nil {
			break
		}
		chunkType := make([]byte, 4)
		if _, err := io.ReadFull(buf, chunkType); err != nil {
			break
		}
		switch string(chunkType) {
		case "pHYs":
			var phys struct {
				X, Y uint32
				Unit byte
			}
			if err := binary.Read(buf, binary.BigEndian, &phys); err != nil {
				return Resolution{}, err
			}
			if phys.Unit != 1 {
				return Resolution{}, ErrNoResolution
			}
			return Resolution{X: float64(phys.X) * 0.0254, Y: float64(phys.Y) * 0.0254, Source: SourcePNG}, nil
		case "IDAT", "IEND":
			return Resolution{}, ErrNoResolution
		}
		// skip chunk data + CRC
		if _, err := buf.Seek(int64(length)+4, io.SeekCurrent); err != nil {
			break
		}
	}
	return Resolution{}, ErrNoResolution
}
