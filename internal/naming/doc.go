// Package naming derives output paths for rendered units and tracks which
// unit last claimed each path within a run.
//
// Layout: <outputDir>/<W>x<H>px/<stem>.jpg, where stem is the source file
// name without its final extension. Two units can map to the same path
// (same size requested at two DPIs, or "a.png" next to "a.tif"); the later
// unit overwrites the earlier one and the tracker reports it.
package naming
