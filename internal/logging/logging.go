package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
)

// Subsystem owns the console and file sinks and the shared threshold.
type Subsystem struct {
	mu      sync.Mutex
	name    string
	console io.Writer
	tempDir string

	level  *slog.LevelVar
	sinks  atomic.Pointer[[]slog.Handler]
	file   *os.File
	path   string
	logger *slog.Logger
}

// Option configures a Subsystem.
type Option func(*Subsystem)

// WithConsole sets the console sink writer (default os.Stderr).
func WithConsole(w io.Writer) Option {
	return func(s *Subsystem) {
		s.console = w
	}
}

// WithTempDir sets the directory the log file is created in
// (default os.TempDir()).
func WithTempDir(dir string) Option {
	return func(s *Subsystem) {
		s.tempDir = dir
	}
}

// New creates a Subsystem for the named add-on. Nothing is written until
// Initialize attaches the sinks.
func New(name string, opts ...Option) *Subsystem {
	s := &Subsystem{
		name:    name,
		console: os.Stderr,
		tempDir: os.TempDir(),
		level:   new(slog.LevelVar),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.level.Set(DefaultSeverity.Level())
	s.logger = slog.New(&fanout{sinks: &s.sinks, level: s.level}).With("logger", name)
	return s
}

// Initialize drops any attached sinks, attaches a console sink and a
// truncated file sink at <tempdir>/<name>.log, announces the file path and
// applies level. Calling it again starts over with a fresh file.
//
// A file that cannot be opened leaves the console sink in place; the error
// is returned so the caller can report it.
func (s *Subsystem) Initialize(level Severity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.detachLocked()

	opts := &slog.HandlerOptions{Level: s.level, ReplaceAttr: replaceLevel}
	sinks := []slog.Handler{slog.NewTextHandler(s.console, opts)}

	path := filepath.Join(s.tempDir, s.name+".log")
	f, fileErr := os.Create(path)
	if fileErr == nil {
		s.file = f
		s.path = path
		sinks = append(sinks, slog.NewTextHandler(f, opts))
	}
	s.sinks.Store(&sinks)

	if fileErr != nil {
		s.level.Set(level.Level())
		s.logger.Warn("log file unavailable, logging to console only", "path", path, "error", fileErr)
		return fmt.Errorf("opening log file %s: %w", path, fileErr)
	}

	s.level.Set(slog.LevelDebug)
	s.logger.Info("Logging into: " + path)
	s.level.Set(level.Level())
	return nil
}

// SetLevel changes the threshold for every attached sink. It takes effect
// for the next log call.
func (s *Subsystem) SetLevel(level Severity) {
	s.level.Set(level.Level())
}

// Level returns the current threshold.
func (s *Subsystem) Level() Severity {
	l := s.level.Level()
	for _, sev := range AllSeverities() {
		if sev.Level() == l {
			return sev
		}
	}
	sev, _ := ParseSeverity(levelName(l))
	return sev
}

// Logger returns the add-on logger. It stays valid across Initialize and
// Shutdown; after Shutdown it discards everything.
func (s *Subsystem) Logger() *slog.Logger {
	return s.logger
}

// Path returns the active log file path, or "" without a file sink.
func (s *Subsystem) Path() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.path
}

// Shutdown detaches all sinks and closes the log file.
func (s *Subsystem) Shutdown() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.detachLocked()
}

func (s *Subsystem) detachLocked() error {
	s.sinks.Store(nil)
	s.path = ""
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	if err != nil {
		return fmt.Errorf("closing log file: %w", err)
	}
	return nil
}
