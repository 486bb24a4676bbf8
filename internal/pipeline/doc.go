// Package pipeline runs a batch: enumerate the source folder, render every
// (file, job) unit in row-major order, and collect one log line per unit
// plus a terminal line.
//
// A unit failure becomes a FAIL line and the batch continues. Only
// configuration problems (missing tools, missing input folder, an output
// folder that cannot be created, an invalid RunConfig) abort a run; they
// produce a single line and a *ConfigError.
package pipeline
