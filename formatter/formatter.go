// Package formatter renders an argument list into one printable log line,
// with optional per-line prefixing and a timestamp annotation. It is a pure
// helper: no I/O, no state. Feed its output to a logs.Sink, or anywhere else.
package formatter

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/davecgh/go-spew/spew"
)

// Timestamp selects the timestamp annotation prepended to each line.
type Timestamp uint8

// The available timestamp annotations.
const (
	TSNone  Timestamp = iota // no timestamp (default).
	TSEpoch                  // whole seconds since the unix epoch.
	TSISO                    // ISO-8601 in UTC with millisecond precision.
)

// ISOFormat is the Go time layout used by the TSISO annotation.
const ISOFormat = "2006-01-02T15:04:05.000Z"

// Options control how Format decorates the rendered arguments.
type Options struct {
	// ForEachLine applies the prefix and timestamp steps to every line of
	// the rendered output instead of once for the whole record.
	ForEachLine bool
	// AddPrefix is a static prefix prepended to every line.
	AddPrefix string
	// AddTS prepends a timestamp, computed once per call, to every line.
	AddTS Timestamp
}

// Now returns the current time. It is a variable so tests may replace it.
var Now = time.Now //nolint:gochecknoglobals

// pretty renders composite values. Pointer addresses and capacities are
// noise in a text log, and sorted keys keep repeated dumps comparable.
var pretty = &spew.ConfigState{ //nolint:gochecknoglobals
	Indent:                  "  ",
	SortKeys:                true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
}

// Format renders args into one string: values space-joined, composite values
// pretty-printed. The call-time prefix may be empty (absent). Decoration is
// prepended innermost-first: the static Options prefix, then the call-time
// prefix, then the timestamp. Lines are rejoined with "\n".
func Format(prefix string, args []any, opts Options) string {
	base := render(args)

	lines := []string{base}
	if opts.ForEachLine {
		lines = strings.Split(base, "\n")
	}

	var stamp string

	switch opts.AddTS {
	case TSEpoch:
		stamp = strconv.FormatInt(Now().Unix(), 10)
	case TSISO:
		stamp = Now().UTC().Format(ISOFormat)
	case TSNone:
	}

	for idx, line := range lines {
		if opts.AddPrefix != "" {
			line = opts.AddPrefix + " " + line
		}

		if prefix != "" {
			line = prefix + " " + line
		}

		if stamp != "" {
			line = stamp + " " + line
		}

		lines[idx] = line
	}

	return strings.Join(lines, "\n")
}

// render turns each argument into a string and joins them with spaces.
func render(args []any) string {
	parts := make([]string, len(args))
	for idx, arg := range args {
		parts[idx] = renderValue(arg)
	}

	return strings.Join(parts, " ")
}

// renderValue converts one value to a string. Strings pass through verbatim,
// composite kinds are pretty-printed, everything else goes through fmt.
func renderValue(value any) string {
	switch val := value.(type) {
	case string:
		return val
	case error:
		return val.Error()
	case fmt.Stringer:
		return val.String()
	}

	kind := reflect.ValueOf(value).Kind()
	if kind == reflect.Ptr {
		if elem := reflect.ValueOf(value); !elem.IsNil() {
			kind = elem.Elem().Kind()
		}
	}

	switch kind { //nolint:exhaustive
	case reflect.Struct, reflect.Map, reflect.Slice, reflect.Array:
		return strings.TrimSuffix(pretty.Sdump(value), "\n")
	default:
		return fmt.Sprint(value)
	}
}
