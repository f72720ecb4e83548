// Package archiver provides an Archiver for logs that saves trimmed log
// content into time-stamped archive files. Each maintenance cycle that
// discards an expired region of the log hands that region here, and it is
// written to a new file named with the current time. This package also
// provides the ability to limit archive files by count (number of files)
// and by age (of files). By default archive files are named:
// service-2006-01-02T15-04-05.000.log. Control the time format with the
// Layout.Format parameter.
package archiver

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/panth977-packages/logs"
	"github.com/panth977-packages/logs/filer"
)

// Layout defines how time-stamped archive files have their names decided.
type Layout struct {
	filer.Filer

	ArchiveDir string        // Location where archive files are written. Default: the log file's directory.
	FileCount  int           // Maximum number of archive files.
	FileAge    time.Duration // Maximum age of archive files.
	FileMode   os.FileMode   // POSIX mode for archive files. Default: 0600.
	UseUTC     bool          // Sets the time zone to UTC when writing Time Formats (archive files).
	Format     string        // Format for Go Time. Used as the name.
	Joiner     string        // The string between the file name prefix and time stamp. Default: -
	// Mockable interfaces. Can be used for custom processing. Setting these is very optional.
	PostArchive func(fileName, archiveFile string)
}

// Some Formats you may use in your app.
const (
	FormatDefault = "2006-01-02T15-04-05.000" // Default: Used if Format = ""
	FormatNoSecnd = "2006-01-02T15-04-05"     // Example: Same thing, sans msec.
)

// Some constants this package uses; not really needed externally.
const (
	LogExt        = ".log"
	DefaultJoiner = "-"
	GZext         = ".gz"
)

// Post satisfies the logs.Archiver interface.
func (l *Layout) Post(fileName, archiveFile string) {
	if l.PostArchive != nil {
		l.PostArchive(fileName, archiveFile)
	}
}

// Archive writes the trimmed region to a new time-stamped archive file and
// prunes archives past their age or count limits. Returns the archive path.
func (l *Layout) Archive(fileName string, data []byte) (string, error) {
	now := time.Now()
	if l.UseUTC {
		now = now.UTC()
	}

	var (
		dir         = l.getArchiveDir(fileName)
		archiveFile = filepath.Join(dir, l.getPrefix(fileName)+now.Format(l.Format)+LogExt)
	)

	err := l.WriteFile(archiveFile, data, l.FileMode)
	if err != nil {
		return "", fmt.Errorf("error writing archive: %w", err)
	}

	return archiveFile, l.deleteOldArchives(l.getAllArchiveFiles(fileName))
}

// Dirs validates input data and returns the list of directories being used.
func (l *Layout) Dirs(fileName string) ([]string, error) {
	if l.Format == "" {
		l.Format = FormatDefault
	}

	if l.Joiner == "" {
		l.Joiner = DefaultJoiner
	}

	if l.FileMode == 0 {
		l.FileMode = logs.FileMode
	}

	if l.Filer == nil {
		l.Filer = filer.Default()
	}

	switch fpath := filepath.Dir(fileName); {
	case l.ArchiveDir == "" || fpath == l.ArchiveDir:
		return []string{fpath}, nil
	default:
		return []string{fpath, l.ArchiveDir}, nil
	}
}

func (l *Layout) getArchiveDir(fileName string) string {
	if l.ArchiveDir != "" {
		return l.ArchiveDir
	}

	return filepath.Dir(fileName)
}

// deleteOldArchives deletes any archive files that are older than FileAge.
// Then it deletes extra archives if we're over our FileCount count.
func (l *Layout) deleteOldArchives(archives *archiveFiles) error {
	gone := make(map[string]struct{})

	if l.FileAge > 0 {
		// Parse the time stamp out of each file name.
		// If the time is older than FileAge, delete the file.
		for idx, when := range archives.stamps {
			if time.Since(when) < l.FileAge {
				continue
			}

			err := l.Remove(archives.Files[idx])
			if err != nil {
				return fmt.Errorf("error removing file: %w", err)
			}

			gone[archives.Files[idx]] = struct{}{}
		}
	}

	count := len(archives.Files) - len(gone)

	if l.FileCount > 0 {
		for _, fileName := range archives.Files {
			if count <= l.FileCount {
				return nil
			}

			if _, ok := gone[fileName]; ok {
				continue // already deleted this one.
			}

			err := l.Remove(fileName)
			if err != nil {
				return fmt.Errorf("error removing file: %w", err)
			}

			count--
		}
	}

	return nil
}

// getPrefix returns the expected - or created - prefix on our archive files.
func (l *Layout) getPrefix(fileName string) string {
	return strings.TrimSuffix(filepath.Base(fileName), LogExt) + l.Joiner
}

// getAllArchiveFiles finds all the archive files that match our Time Format,
// sorted oldest first.
func (l *Layout) getAllArchiveFiles(fileName string) *archiveFiles {
	var (
		list   = &archiveFiles{Files: []string{}, stamps: []time.Time{}}
		dir    = l.getArchiveDir(fileName)
		prefix = l.getPrefix(fileName)
	)

	fileList, err := l.ReadDir(dir)
	if err != nil || len(fileList) == 0 {
		return list
	}

	for idx := range fileList {
		name := fileList[idx].Name()
		if !strings.HasPrefix(name, prefix) {
			continue // not our file.
		}

		part := strings.TrimSuffix(strings.TrimPrefix(name, prefix), GZext)

		t, err := time.Parse(l.Format, strings.TrimSuffix(part, LogExt))
		if err == nil { // if err != nil, then not our file.
			list.Files = append(list.Files, filepath.Join(dir, name))
			list.stamps = append(list.stamps, t)
		}
	}

	sort.Sort(list)

	return list
}

// Our interface must satisfy a logs.Archiver.
var _ logs.Archiver = (*Layout)(nil)
