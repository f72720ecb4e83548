package logs

import (
	"fmt"
	"io"
	"log"
	"os"
	"path"
	"path/filepath"
	"reflect"
	"time"

	"github.com/panth977-packages/logs/filer"
)

// These are the default directory and log file POSIX modes.
const (
	FileMode os.FileMode = 0o600
	DirMode  os.FileMode = 0o750
)

// DefaultSeparator is appended after every line when Config.Separator is omitted.
const DefaultSeparator = "\n"

// trimInterval is how often the maintenance cycle runs when a TTL is set.
// It bounds the write amplification of the full-file rewrite and is
// deliberately not configurable.
const trimInterval = time.Minute

// openRetryInterval is how long to wait before retrying openLog after a failure.
// Prevents a storm of syscalls when the log file has permission or other persistent errors.
const openRetryInterval = 10 * time.Second

// Config is the data needed to create a new Sink.
type Config struct {
	Filepath   string        // Full path to log file. Set this, the default is lousy.
	TTL        time.Duration // Content older than this is trimmed every minute. 0 disables trimming.
	MaxFileAge time.Duration // A pre-existing file older than this is deleted on startup. 0 disables.
	Separator  string        // Appended after every line. Default: newline.
	FileMode   os.FileMode   // POSIX mode for new files.
	DirMode    os.FileMode   // POSIX mode for new folders.
	Archiver   Archiver      // Optional: receives trimmed content. Nil discards it.
	// Logf receives maintenance-cycle errors that must not interrupt logging.
	// Default: log.Printf.
	Logf func(msg string, v ...any)
	// Filer overrides file system procedures. Setting this is very optional.
	Filer filer.Filer
}

// Sink is what you get in return for providing a Config. Use this to set log
// output. You must obtain a Sink by calling one of the New() procedures.
type Sink struct {
	config      *Config       // incoming configuration.
	log         chan []byte   // incoming log lines passed across go routines.
	resp        chan *resp    // response sent back across go routines.
	signal      chan struct{} // used for Trim and Close ops.
	ticker      *time.Ticker  // fires the periodic maintenance cycle. Nil without a TTL.
	tickDone    chan struct{} // tells the trimmer go routine to quit.
	tickStopped chan struct{} // closed once the trimmer go routine has quit.
	File        *os.File      // The active open file. Useful for direct writing.
	filer.Filer               // overridable file system procedures.
	lastOpenErr error         // last error from openLog; used to avoid retry storm.
	lastOpened  time.Time     // when openLog was last attempted (for backoff).
}

// resp is used to send responses back across our go routines.
type resp struct {
	size int
	err  error
}

// New takes in your configuration and returns a Sink you can use with
// log.SetOutput(). When a TTL is configured, the provided Sink runs one
// maintenance cycle immediately and then once per minute until Close.
func New(config *Config) (*Sink, error) {
	sink := &Sink{config: config}

	err := sink.initialize(false)
	if err != nil {
		return nil, err
	}

	return sink, nil
}

// NewMust takes in your configuration and returns a Sink you can use with
// log.SetOutput(). If an error occurs opening the log file or making log
// directories it is ignored (and retried later on the write path).
func NewMust(config *Config) *Sink {
	sink := &Sink{config: config}
	_ = sink.initialize(true)

	return sink
}

// initialize runs all the startup routines.
func (s *Sink) initialize(ignoreErrors bool) error {
	var err error

	defer func() {
		if err == nil || ignoreErrors {
			s.log = make(chan []byte)
			s.resp = make(chan *resp)
			s.signal = make(chan struct{})

			go s.processLogChannel()
			s.startTrimmer()
		}
	}()

	if err = s.setConfigDefaults(); err != nil {
		return err
	}

	if err = s.expireOldFile(); err != nil {
		return err
	}

	err = s.checkOpen()

	return err
}

// setConfigDefaults does exactly what it says. Sets missing values.
func (s *Sink) setConfigDefaults() error {
	if s.config.Filepath == "" {
		s.config.Filepath = filepath.Join(os.TempDir(),
			filepath.Base(os.Args[0])+"-"+path.Base(reflect.TypeOf((*Sink)(nil)).Elem().PkgPath())+".log")
	}

	if s.config.Separator == "" {
		s.config.Separator = DefaultSeparator
	}

	if s.config.DirMode == 0 {
		s.config.DirMode = DirMode
	}

	if s.config.FileMode == 0 {
		s.config.FileMode = FileMode
	}

	if s.config.Logf == nil {
		s.config.Logf = log.Printf
	}

	if s.config.Filer == nil {
		s.config.Filer = filer.Default()
	}

	s.Filer = s.config.Filer

	if s.config.Archiver == nil {
		return nil
	}

	dirs, err := s.config.Archiver.Dirs(s.config.Filepath)
	if err != nil {
		return fmt.Errorf("validating Archiver: %w", err)
	}

	for _, dir := range dirs {
		err := s.MkdirAll(dir, s.config.DirMode)
		if err != nil {
			return fmt.Errorf("making directories for logfiles: %w", err)
		}
	}

	return nil
}

// expireOldFile deletes the log file when it pre-exists construction and its
// creation time is older than MaxFileAge. This runs exactly once, before the
// file is opened and before any maintenance activity. A file created by this
// construction is never deleted because it does not exist when we stat it.
func (s *Sink) expireOldFile() error {
	if s.config.MaxFileAge <= 0 {
		return nil
	}

	info, err := s.Stat(s.config.Filepath)
	if err != nil {
		return nil //nolint:nilerr // no pre-existing file, nothing to expire.
	}

	created := info.CreateTime
	if created.IsZero() {
		// Creation time is unavailable on this file system.
		created = info.ModTime()
	}

	if time.Since(created) <= s.config.MaxFileAge {
		return nil
	}

	if err := s.Remove(s.config.Filepath); err != nil {
		return fmt.Errorf("removing expired log file: %w", err)
	}

	return nil
}

// processLogChannel runs in a go routine and reads the incoming logs channel.
// Received lines are dispatched to the write method. Replies are then sent to
// the response channel. This also handles trim cycles and routine shutdown.
// Everything except background archiver actions (compression?) happens in
// this one go routine.
func (s *Sink) processLogChannel() {
	for {
		select {
		case b := <-s.log:
			size, err := s.write(b)
			s.resp <- &resp{size, err}
		case _, ok := <-s.signal:
			if !ok {
				s.signal = nil
				s.resp <- &resp{err: s.stop()}

				return
			}

			s.resp <- &resp{err: s.trim()}
		}
	}
}

// startTrimmer runs the eager maintenance cycle and schedules the periodic
// one. Does nothing unless a TTL is configured, so a Sink without a TTL
// grows its file unbounded.
func (s *Sink) startTrimmer() {
	if s.config.TTL <= 0 {
		return
	}

	if err := s.Trim(); err != nil {
		s.config.Logf("[logs] trim cycle: %v", err)
	}

	s.ticker = time.NewTicker(trimInterval)
	s.tickDone = make(chan struct{})
	s.tickStopped = make(chan struct{})

	go s.runTrimmer()
}

// runTrimmer runs in a go routine, triggering a maintenance cycle on every
// tick. Cycle errors are reported through Logf and never stop the schedule;
// the next tick retries independently.
func (s *Sink) runTrimmer() {
	defer close(s.tickStopped)

	for {
		select {
		case <-s.ticker.C:
			if err := s.Trim(); err != nil {
				s.config.Logf("[logs] trim cycle: %v", err)
			}
		case <-s.tickDone:
			return
		}
	}
}

// openLog opens the log file for writing.
// If the file exists, it is appended to. If it does not exist, it is created.
// Any necessary folders are also created.
func (s *Sink) openLog() error {
	err := s.MkdirAll(filepath.Dir(s.config.Filepath), s.config.DirMode)
	if err != nil {
		return fmt.Errorf("making directories for logfiles: %w", err)
	}

	s.File, err = s.OpenFile(s.config.Filepath, os.O_WRONLY|os.O_APPEND|os.O_CREATE, s.config.FileMode)
	if err != nil {
		return fmt.Errorf("error with new logfile: %w", err)
	}

	return nil
}

// checkOpen makes sure the log file is open and ready for writing.
// When the log file cannot be opened (e.g. permission denied), retries are
// backed off to avoid a storm of syscalls that can cause high CPU and IO.
func (s *Sink) checkOpen() error {
	if s.File != nil {
		return nil
	}

	if s.lastOpenErr != nil && time.Since(s.lastOpened) < openRetryInterval {
		return s.lastOpenErr
	}

	s.lastOpened = time.Now()
	s.lastOpenErr = s.openLog()

	return s.lastOpenErr
}

// Write sends one line to the file, followed by the configured separator.
// This satisfies the io.Writer interface so you can pass *Sink into
// log.SetOutput(). The returned count does not include the separator.
func (s *Sink) Write(b []byte) (int, error) {
	s.log <- b
	resp := <-s.resp

	return resp.size, resp.err
}

// WriteString appends one line to the file, followed by the configured separator.
func (s *Sink) WriteString(line string) error {
	_, err := s.Write([]byte(line))

	return err
}

// write sends a line into the log file after everything checks out - from a channel message.
func (s *Sink) write(b []byte) (int, error) {
	if err := s.checkOpen(); err != nil {
		return 0, err
	}

	size, err := s.File.Write(b)
	if err != nil {
		return size, fmt.Errorf("error writing log msg: %w", err)
	}

	if _, err := s.File.WriteString(s.config.Separator); err != nil {
		return size, fmt.Errorf("error writing log separator: %w", err)
	}

	return size, nil
}

// Trim forces a maintenance cycle immediately. The cycle appends a fresh age
// marker, then rewrites the file keeping only content at or after the oldest
// marker still within the TTL window. Does nothing unless a TTL is configured.
func (s *Sink) Trim() error {
	s.signal <- struct{}{}

	return (<-s.resp).err
}

// trim runs one maintenance cycle - from a channel message.
// Trim decisions are recomputed from the file's current contents every
// cycle; nothing is remembered between cycles, so a restarted process picks
// up exactly where the markers left off.
func (s *Sink) trim() error {
	if s.config.TTL <= 0 {
		return nil
	}

	if _, err := s.Stat(s.config.Filepath); err != nil {
		return nil //nolint:nilerr // file was removed externally; nothing to trim.
	}

	now := time.Now()

	// The marker goes through the regular write path. Its timestamp is
	// always newer than the expiry cutoff, so a successful cycle always
	// leaves at least this marker in the file.
	if _, err := s.write([]byte(Marker(now))); err != nil {
		return fmt.Errorf("writing age marker: %w", err)
	}

	content, err := s.ReadFile(s.config.Filepath)
	if err != nil {
		return fmt.Errorf("reading log file: %w", err)
	}

	cut := markerCut(content, now.Add(-s.config.TTL))
	if cut == 0 {
		return nil // oldest marker is still fresh; keep the whole file.
	}

	if s.config.Archiver != nil {
		archiveFile, err := s.config.Archiver.Archive(s.config.Filepath, content[:cut])
		if err != nil {
			s.config.Logf("[logs] archiving trimmed content: %v", err)
		} else if archiveFile != "" {
			defer s.config.Archiver.Post(s.config.Filepath, archiveFile)
		}
	}

	// Rewrite in place. The open handle is in append mode and must keep
	// addressing the same inode, so no tempfile-and-rename here.
	if err := s.WriteFile(s.config.Filepath, content[cut:], s.config.FileMode); err != nil {
		return fmt.Errorf("rewriting log file: %w", err)
	}

	return nil
}

// Close stops the go routines, closes the active log file session and all
// channels. An in-flight maintenance cycle is allowed to finish first.
// If another Write() is sent, a panic will ensue.
func (s *Sink) Close() error {
	if s.ticker != nil {
		s.ticker.Stop()
		close(s.tickDone)
		<-s.tickStopped
	}

	defer close(s.resp)
	close(s.signal)

	return (<-s.resp).err
}

// close closes the active log file - from a channel message.
func (s *Sink) close() error {
	if s.File == nil {
		return nil
	}

	err := s.File.Close()
	s.File = nil

	if err != nil {
		return fmt.Errorf("closing log file %s: %w", s.config.Filepath, err)
	}

	return nil
}

// stop closes everything down.
func (s *Sink) stop() error {
	if s.log != nil {
		close(s.log)
	}

	s.log = nil

	return s.close()
}

// Our Sink must satisfy an io.WriteCloser.
var _ io.WriteCloser = (*Sink)(nil)
