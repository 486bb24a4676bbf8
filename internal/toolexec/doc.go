// Package toolexec runs the external image tools (ffmpeg, sips, exiftool).
//
// Every invocation discards stdout, captures stderr, and reports a non-zero
// exit as a [*CommandError] whose text carries the trimmed stderr and the
// full command line. The [Invoker] interface is the seam tests replace with
// the generated mock in toolexec/mocks.
package toolexec
