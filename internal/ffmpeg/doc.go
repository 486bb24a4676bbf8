// Package ffmpeg builds and executes the single-frame ffmpeg command that
// renders one unit: decode the source, composite it onto the background
// per the planner's filter graph, and encode one JPEG frame.
package ffmpeg
