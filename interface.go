package logs

//go:generate mockgen -destination=mocks/archiver.go -package=mocks github.com/panth977-packages/logs Archiver

// Archiver receives the expired region of the log file each time a
// maintenance cycle trims it. A working Archiver is included in the
// archiver subpackage. Use it directly, extend it, or bring your own.
// A Sink with a nil Archiver simply discards trimmed content.
type Archiver interface {
	// Archive is called with the bytes about to be discarded from the
	// front of fileName. It returns the path the bytes were saved to,
	// or "" if they were intentionally dropped.
	Archive(fileName string, data []byte) (archiveFile string, err error)
	// Post is called after the trimmed region is archived and the log
	// file rewritten. This is blocking, so if it does something like
	// compress the archive file, it should run in a go routine and
	// return immediately.
	Post(fileName, archiveFile string)

	// Dirs is called once on startup.
	// This should do any validation and return a list of directories to create.
	Dirs(fileName string) (dirPaths []string, err error)
}
