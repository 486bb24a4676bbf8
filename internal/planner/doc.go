// Package planner turns the per-run parameters into the pieces ffmpeg needs
// for one unit: the JPEG quantizer scale (quality.go) and the fit-mode
// filter graph that composites the scaled source onto a solid background
// (filter.go). It performs no I/O.
package planner
