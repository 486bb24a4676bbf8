package metadata

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dsoprea/go-exif/v3"
	exifcommon "github.com/dsoprea/go-exif/v3/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/backmassage/resizehelper/internal/toolexec/mocks"
)

func TestSipsArgs(t *testing.T) {
	want := []string{"--setProperty", "dpiWidth", "300", "--setProperty", "dpiHeight", "300", "/out/a.jpg"}
	assert.Equal(t, want, SipsArgs("/out/a.jpg", 300))
}

func TestExiftoolArgs(t *testing.T) {
	want := []string{
		"-overwrite_original",
		"-XResolution=72", "-YResolution=72", "-ResolutionUnit=inches",
		"-JFIF:XResolution=72", "-JFIF:YResolution=72", "-JFIF:ResolutionUnit=inches",
		"/out/a.jpg",
	}
	assert.Equal(t, want, ExiftoolArgs("/out/a.jpg", 72))
}

func TestStamp(t *testing.T) {
	sipsErr := errors.New("sips: cannot open")
	exifErr := errors.New("exiftool: bad file")

	tests := []struct {
		name      string
		exiftool  string
		sipsErr   error
		exifErr   error
		wantErr   error
		wantOut   EnrichOutcome
		exifCalls int
	}{
		{"no exiftool", "", nil, nil, nil, EnrichSkipped, 0},
		{"exiftool succeeds", "/usr/local/bin/exiftool", nil, nil, nil, EnrichSucceeded, 1},
		{"exiftool failure is swallowed", "/usr/local/bin/exiftool", nil, exifErr, nil, EnrichFailedIgnored, 1},
		{"sips failure stops", "/usr/local/bin/exiftool", sipsErr, nil, sipsErr, EnrichSkipped, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			inv := mocks.NewMockInvoker(ctrl)
			inv.EXPECT().
				Run(gomock.Any(), "/usr/bin/sips", "--setProperty", "dpiWidth", "150", "--setProperty", "dpiHeight", "150", "/out/a.jpg").
				Return(tt.sipsErr)
			inv.EXPECT().
				Run(gomock.Any(), tt.exiftool, gomock.Any()).
				Return(tt.exifErr).
				Times(tt.exifCalls)

			s := Stamper{Invoker: inv, Sips: "/usr/bin/sips", Exiftool: tt.exiftool}
			res, err := s.Stamp(context.Background(), "/out/a.jpg", 150)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantOut, res.Enrich)
			if tt.wantOut == EnrichFailedIgnored {
				assert.ErrorIs(t, res.EnrichErr, exifErr)
			}
		})
	}
}

func TestEnrichOutcome_String(t *testing.T) {
	assert.Equal(t, "skipped", EnrichSkipped.String())
	assert.Equal(t, "succeeded", EnrichSucceeded.String())
	assert.Equal(t, "failed (ignored)", EnrichFailedIgnored.String())
}

// jfifJPEG returns a minimal JPEG prefix with a JFIF APP0 segment.
func jfifJPEG(unit byte, x, y uint16) []byte {
	var b bytes.Buffer
	b.Write([]byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10})
	b.WriteString("JFIF\x00")
	b.Write([]byte{0x01, 0x01, unit})
	_ = binary.Write(&b, binary.BigEndian, x)
	_ = binary.Write(&b, binary.BigEndian, y)
	b.Write([]byte{0x00, 0x00, 0xFF, 0xD9})
	return b.Bytes()
}

func TestParseResolution_JFIF(t *testing.T) {
	r, err := ParseResolution(jfifJPEG(1, 300, 300))
	require.NoError(t, err)
	assert.Equal(t, Resolution{X: 300, Y: 300, Source: SourceJFIF}, r)
	assert.Equal(t, 300, r.DPI())

	r, err = ParseResolution(jfifJPEG(2, 100, 100))
	require.NoError(t, err)
	assert.InDelta(t, 254.0, r.X, 0.001)

	_, err = ParseResolution(jfifJPEG(0, 1, 1))
	assert.ErrorIs(t, err, ErrNoResolution, "aspect-only density has no DPI")
}

func exifBlob(t *testing.T, unit uint16) []byte {
	t.Helper()
	im := exifcommon.NewIfdMapping()
	require.NoError(t, exifcommon.LoadStandardIfds(im))
	ti := exif.NewTagIndex()

	ib := exif.NewIfdBuilder(im, ti, exifcommon.IfdStandardIfdIdentity, binary.BigEndian)
	require.NoError(t, ib.AddStandardWithName("XResolution", []exifcommon.Rational{{Numerator: 150, Denominator: 1}}))
	require.NoError(t, ib.AddStandardWithName("YResolution", []exifcommon.Rational{{Numerator: 150, Denominator: 1}}))
	require.NoError(t, ib.AddStandardWithName("ResolutionUnit", []uint16{unit}))

	data, err := exif.NewIfdByteEncoder().EncodeToExif(ib)
	require.NoError(t, err)
	return data
}

func TestParseResolution_EXIF(t *testing.T) {
	r, err := ParseResolution(exifBlob(t, 2))
	require.NoError(t, err)
	assert.Equal(t, SourceEXIF, r.Source)
	assert.InDelta(t, 150.0, r.X, 0.001)
	assert.InDelta(t, 150.0, r.Y, 0.001)

	r, err = ParseResolution(exifBlob(t, 3))
	require.NoError(t, err)
	assert.InDelta(t, 381.0, r.X, 0.001, "dots per cm convert to inches")
}

func TestParseResolution_PNG(t *testing.T) {
	var b bytes.Buffer
	b.Write(pngSignature)
	_ = binary.Write(&b, binary.BigEndian, uint32(9))
	b.WriteString("pHYs")
	_ = binary.Write(&b, binary.BigEndian, uint32(11811))
	_ = binary.Write(&b, binary.BigEndian, uint32(11811))
	b.WriteByte(1)
	b.Write([]byte{0, 0, 0, 0}) // CRC, unchecked

	r, err := ParseResolution(b.Bytes())
	require.NoError(t, err)
	assert.Equal(t, SourcePNG, r.Source)
	assert.Equal(t, 300, r.DPI())
}

func TestParseResolution_None(t *testing.T) {
	_, err := ParseResolution([]byte("plain text"))
	assert.ErrorIs(t, err, ErrNoResolution)
}

func TestReadResolution_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.jpg")
	require.NoError(t, os.WriteFile(path, jfifJPEG(1, 72, 72), 0o644))

	r, err := ReadResolution(path)
	require.NoError(t, err)
	assert.Equal(t, 72, r.DPI())

	_, err = ReadResolution(filepath.Join(t.TempDir(), "missing.jpg"))
	assert.Error(t, err)
}
