package logs

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// markerPattern matches an age marker anywhere in the file and captures its
// millisecond timestamp. The surrounding dashes and spaces are part of the
// wire format; Marker and this pattern must round-trip exactly.
var markerPattern = regexp.MustCompile(`---------- TIMESTAMP: (\d+) ---------- `)

// Marker returns the age marker line for the given time. The maintenance
// cycle appends one of these every run; they are what lets a later cycle
// (even in a restarted process) find how much of the file has expired.
func Marker(t time.Time) string {
	return fmt.Sprintf("---------- TIMESTAMP: %d ---------- ", t.UnixMilli())
}

// Markers returns the timestamps of all age markers found in content, in
// file order. The file is append-only between rewrites, so this order is
// also chronological.
func Markers(content []byte) []time.Time {
	var stamps []time.Time

	for _, match := range markerPattern.FindAllSubmatch(content, -1) {
		ms, err := strconv.ParseInt(string(match[1]), 10, 64)
		if err != nil {
			continue // corrupt marker; skip it.
		}

		stamps = append(stamps, time.UnixMilli(ms))
	}

	return stamps
}

// markerCut returns the byte offset content should be cut at: the start of
// the first age marker whose timestamp is strictly after expiry. Markers at
// exactly the expiry instant are expired. When every marker has expired (or
// none parse), the whole file is expired and len(content) is returned.
func markerCut(content []byte, expiry time.Time) int {
	expiryMs := expiry.UnixMilli()

	for _, match := range markerPattern.FindAllSubmatchIndex(content, -1) {
		ms, err := strconv.ParseInt(string(content[match[2]:match[3]]), 10, 64)
		if err != nil {
			continue // corrupt marker; not a cut candidate.
		}

		if ms > expiryMs {
			return match[0]
		}
	}

	return len(content)
}
