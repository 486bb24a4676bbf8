package probe

import "fmt"

// Info describes a source image.
type Info struct {
	Width  int
	Height int
	Format string // Decoder name ("jpeg", "png", ...) or ffprobe codec name.
	Via    string // "decoder" or "ffprobe".
}

// Resolution formats the dimensions as "WxH".
func (i Info) Resolution() string {
	return fmt.Sprintf("%dx%d", i.Width, i.Height)
}

// Orientation returns "landscape", "portrait", or "square".
func (i Info) Orientation() string {
	switch {
	case i.Width > i.Height:
		return "landscape"
	case i.Height > i.Width:
		return "portrait"
	default:
		return "square"
	}
}

// --- ffprobe JSON wire types ---

type ffprobeOutput struct {
	Streams []ffprobeStream `json:"streams"`
}

type ffprobeStream struct {
	Index     int    `json:"index"`
	CodecName string `json:"codec_name"`
	CodecType string `json:"codec_type"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
}
