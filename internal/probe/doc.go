// Package probe reads the pixel dimensions and format of a source image
// without decoding its pixels. Go's decoders (plus x/image for BMP, TIFF
// and WebP) are tried first; formats they cannot read, such as HEIC, fall
// back to a single ffprobe JSON call when an ffprobe binary is known.
//
// Probing is informational: it feeds verbose logs, inspect, and the proof
// sheet. The render path never depends on it.
package probe
