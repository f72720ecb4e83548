// Package logs provides a time-bounded rotating text log. A Sink appends
// lines to a single file and, when a TTL is configured, periodically embeds
// age markers into the file and rewrites it to discard everything older
// than the TTL. An optional Archiver interface lets you capture the trimmed
// region instead of dropping it, and the included archiver and compressor
// subpackages save trimmed regions as time-stamped (optionally gzipped)
// archive files.
//
// The New() methods return a Sink that satisfies io.WriteCloser, so it
// works with log.SetOutput() and most log packages. Unlike size-based
// rotators (lumberjack and friends), the active file is never renamed:
// the same path always holds the most recent TTL window of log lines.
//
// The formatter subpackage is an independent helper that renders an
// argument list into a printable line with optional prefixes and a
// timestamp annotation:
//
//	https://pkg.go.dev/github.com/panth977-packages/logs/formatter
//	https://pkg.go.dev/github.com/panth977-packages/logs/archiver
//	https://pkg.go.dev/github.com/panth977-packages/logs/compressor
//
// This is a best-effort, single-process debug log. Two Sinks pointed at the
// same path interleave rewrites unpredictably; use one Sink per path.
package logs
