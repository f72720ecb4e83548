package logs_test

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/panth977-packages/logs"
	"github.com/panth977-packages/logs/archiver"
	"github.com/panth977-packages/logs/compressor"
	"github.com/panth977-packages/logs/formatter"
)

// This example shows the simplest useful configuration: a debug log that
// always holds roughly the last hour of lines. Once per minute everything
// older than the TTL is trimmed off the front of the file.
func Example_debugLog() {
	log.SetOutput(logs.NewMust(&logs.Config{
		Filepath: "/var/log/file.log", // optional.
		TTL:      time.Hour,           // keep one hour of lines.
		FileMode: logs.FileMode,       // default: 0600
		DirMode:  logs.DirMode,        // default: 0750
	}))
}

// This example demonstrates every Config member, including an Archiver that
// saves trimmed content into time-stamped files and compresses them.
func Example_archiver() {
	const (
		OneHour = time.Hour
		OneWeek = 7 * 24 * time.Hour
		Keep    = 10
	)

	sink, err := logs.New(&logs.Config{
		Filepath:   "/var/log/file.log", // not required, but recommended.
		TTL:        OneHour,             // trim lines older than an hour.
		MaxFileAge: OneWeek,             // delete a stale file left from a prior run.
		Separator:  "\n",                // default.
		Archiver: &archiver.Layout{ // optional: nil discards trimmed content.
			ArchiveDir:  "/var/log/archives",            // override archive file location.
			FileCount:   Keep,                           // keep 10 archive files.
			FileAge:     OneWeek,                        // delete archives older than a week.
			FileMode:    logs.FileMode,                  // default: 0600.
			Format:      archiver.FormatDefault,         // This is the default Time Format.
			UseUTC:      false,                          // default is false.
			Joiner:      "-",                            // prefix and time stamp separator.
			PostArchive: compressor.CompressPostArchive, // optional: gzip each archive.
			Filer:       nil,                            // use default: os procedures.
		},
	})
	if err != nil {
		panic(err)
	}

	log.SetOutput(sink)
}

func ExampleNew() {
	sink, err := logs.New(&logs.Config{
		Filepath: "/var/log/service.log",
		TTL:      24 * time.Hour,
	})
	if err != nil {
		panic(err)
	}

	log.SetOutput(sink)
}

func ExampleNewMust() {
	log.SetOutput(logs.NewMust(&logs.Config{
		Filepath: "/var/log/service.log",
		TTL:      24 * time.Hour,
	}))
}

// Force a maintenance cycle on SIGHUP signal.
func ExampleSink_Trim() {
	sink := logs.NewMust(&logs.Config{
		Filepath: "/var/log/service.log",
		TTL:      time.Hour,
	})
	log.SetOutput(sink)

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGHUP)

	go func() {
		<-sigc

		if err := sink.Trim(); err != nil {
			panic(err)
		}
	}()
}

// Pair the formatter with a sink: render an argument list into one decorated
// line, then append it.
func ExampleSink_WriteString() {
	sink := logs.NewMust(&logs.Config{Filepath: "/var/log/service.log", TTL: time.Hour})

	line := formatter.Format("worker-7", []any{"cache warmed", map[string]int{"keys": 512}},
		formatter.Options{AddPrefix: "[app]", AddTS: formatter.TSISO, ForEachLine: true})

	if err := sink.WriteString(line); err != nil {
		panic(err)
	}
}
