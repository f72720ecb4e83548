// Package main is a simple example app to write logs and watch the TTL trim
// cycle keep the file bounded.
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/panth977-packages/logs"
	"github.com/panth977-packages/logs/archiver"
	"github.com/panth977-packages/logs/compressor"
	"github.com/panth977-packages/logs/formatter"
)

// ///////////////////////////////////////////////////////////////////////// //

/* Watch the log file shrink back down every time a trim cycle runs. */

// Usage, plain TTL sink:
//   go run ./cmd/exampleapp ttl
//
// Usage, TTL sink that archives trimmed content:
//   go run ./cmd/exampleapp archive
//
// Usage, same but compressing each archive file:
//   go run ./cmd/exampleapp archive compress

const (
	logFilePath     = "/tmp/myfolder/myfile.log"
	logTTL          = 10 * time.Second
	timeBetweenLogs = 100 * time.Millisecond
	trimEvery       = 5 * time.Second
	archiveCount    = 5
)

// ///////////////////////////////////////////////////////////////////////// //

func main() {
	var (
		sink *logs.Sink
		err  error
	)

	switch {
	case isArg("archive"):
		sink, err = archiveTestor()
	case isArg("ttl"):
		sink, err = ttlTestor()
	default:
		fmt.Println("pass test arg: ttl or archive")
		os.Exit(1)
	}

	if err != nil {
		panic(err)
	}

	go makeTrims(sink)
	makeLogs(sink)
}

// Write fake logs!
func makeLogs(sink *logs.Sink) {
	opts := formatter.Options{AddPrefix: "[exampleapp]", AddTS: formatter.TSISO}

	ticker := time.NewTicker(timeBetweenLogs)
	for range ticker.C {
		fmt.Print(".")

		line := formatter.Format("demo", []any{"tick", time.Now().UnixMilli()}, opts)
		if err := sink.WriteString(line); err != nil {
			panic(err)
		}
	}
}

// The built-in trim schedule runs once a minute; force extra cycles so the
// demo is less boring to watch.
func makeTrims(sink *logs.Sink) {
	ticker := time.NewTicker(trimEvery)
	for range ticker.C {
		if err := sink.Trim(); err != nil {
			panic(err)
		}

		if info, err := os.Stat(logFilePath); err == nil {
			fmt.Printf("\ntrimmed: %s is %d bytes\n", logFilePath, info.Size())
		}
	}
}

func ttlTestor() (*logs.Sink, error) {
	return logs.New(&logs.Config{
		Filepath: logFilePath,
		TTL:      logTTL,
	})
}

func archiveTestor() (*logs.Sink, error) {
	return logs.New(&logs.Config{
		Filepath: logFilePath,
		TTL:      logTTL,
		Archiver: &archiver.Layout{
			FileCount:   archiveCount,
			PostArchive: getPost(),
		},
	})
}

func getPost() func(string, string) {
	if isArg("compress") {
		return func(fileName, archiveFile string) {
			fmt.Printf("\narchived: %s -> %s\n", fileName, archiveFile)
			compressor.CompressBackgroundWithLog(archiveFile, func(s string, v ...any) { fmt.Printf(s, v...) })
		}
	}

	return func(fileName, archiveFile string) {
		fmt.Printf("\narchived: %s -> %s\n", fileName, archiveFile)
	}
}

// seems easy, but flag is better.
func isArg(arg string) bool {
	for _, a := range os.Args {
		if strings.EqualFold(a, arg) {
			return true
		}
	}

	return false
}
