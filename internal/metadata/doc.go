// Package metadata writes and reads print resolution on rendered images.
//
// Writing is two steps: sips sets the DPI properties (required), then
// exiftool, when installed, rewrites the EXIF and JFIF resolution tags so
// every reader agrees. An exiftool failure never fails the unit; it is
// reported as [EnrichFailedIgnored].
//
// Reading (used by inspect and the proof sheet) tries EXIF via go-exif,
// then the JFIF APP0 density, then a PNG pHYs chunk.
package metadata
