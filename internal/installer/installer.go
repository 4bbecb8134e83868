package installer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"github.com/bgs-labs/sketcher/internal/branding"
)

// Installer installs and probes the native module.
type Installer struct {
	interpreter string
	runner      Runner
	prober      Prober
	httpClient  *http.Client
	indexURL    string
	userAgent   string
	logger      *slog.Logger

	mu     sync.Mutex
	target *Target
	module *ModuleInfo
}

// Option configures an Installer.
type Option func(*Installer)

// WithInterpreter sets the interpreter the module is installed into
// (default "python3").
func WithInterpreter(path string) Option {
	return func(i *Installer) {
		i.interpreter = path
	}
}

// WithRunner sets the command runner used for pip and version detection.
func WithRunner(r Runner) Option {
	return func(i *Installer) {
		i.runner = r
	}
}

// WithProber replaces the import check.
func WithProber(p Prober) Option {
	return func(i *Installer) {
		i.prober = p
	}
}

// WithHTTPClient sets a custom HTTP client (useful for testing).
func WithHTTPClient(c *http.Client) Option {
	return func(i *Installer) {
		i.httpClient = c
	}
}

// WithIndexURL sets the package index base URL.
func WithIndexURL(url string) Option {
	return func(i *Installer) {
		i.indexURL = url
	}
}

// WithTarget fixes the install target instead of asking the interpreter.
func WithTarget(t Target) Option {
	return func(i *Installer) {
		i.target = &t
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(i *Installer) {
		i.logger = l
	}
}

// New creates an Installer. Without WithProber it probes by importing the
// branded native module in the configured interpreter.
func New(opts ...Option) *Installer {
	i := &Installer{
		interpreter: "python3",
		runner:      ExecRunner{},
		httpClient:  http.DefaultClient,
		indexURL:    branding.IndexURL(),
		userAgent:   branding.AddonID() + "-installer",
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(i)
	}
	if i.prober == nil {
		i.prober = ExecProber{
			Interpreter: i.interpreter,
			Module:      branding.NativeModule(),
			Entry:       "slvs",
			Runner:      i.runner,
		}
	}
	return i
}

// Target returns the install target, asking the interpreter for its
// version on first use.
func (i *Installer) Target(ctx context.Context) (Target, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.target != nil {
		return *i.target, nil
	}
	out, err := i.runner.Run(ctx, i.interpreter, "--version")
	if err != nil {
		return Target{}, fmt.Errorf("querying %s version: %w", i.interpreter, err)
	}
	t, err := ParseInterpreterVersion(string(out))
	if err != nil {
		return Target{}, err
	}
	i.target = &t
	return t, nil
}

// LocateBundledArtifact returns the first wheel under dir built for the
// current target.
func (i *Installer) LocateBundledArtifact(ctx context.Context, dir string) (string, bool) {
	t, err := i.Target(ctx)
	if err != nil {
		i.logger.Debug("cannot determine install target", "error", err)
		return "", false
	}
	path, ok := LocateBundledArtifact(dir, t)
	if ok {
		i.logger.Info("Local installation file available: " + path)
	}
	return path, ok
}

// Probe reports whether the native module imports. It never panics; any
// failure reads as false. A successful probe records the module location.
func (i *Installer) Probe(ctx context.Context) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			i.logger.Debug("probe panicked", "panic", r)
			i.setModule(nil)
			ok = false
		}
	}()

	m, err := i.prober.Probe(ctx)
	if err != nil {
		i.logger.Debug("native module probe failed", "error", err)
		i.setModule(nil)
		return false
	}
	i.setModule(&m)
	return true
}

// Module returns the location recorded by the last successful probe.
func (i *Installer) Module() (ModuleInfo, bool) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.module == nil {
		return ModuleInfo{}, false
	}
	return *i.module, true
}

// Forget drops the recorded module location.
func (i *Installer) Forget() {
	i.setModule(nil)
}

func (i *Installer) setModule(m *ModuleInfo) {
	i.mu.Lock()
	i.module = m
	i.mu.Unlock()
}

// InstallFromPath installs the wheel at path. It does not register
// anything with the host.
func (i *Installer) InstallFromPath(ctx context.Context, path string) Result {
	if path == "" {
		return failure(FailureNotFound, path, "no package file given")
	}
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return failure(FailureNotFound, path, "file does not exist")
		}
		return failure(FailureOther, path, "%v", err)
	}
	if info.IsDir() {
		return failure(FailureNotFound, path, "path is a directory")
	}

	w, err := ParseWheelName(path)
	if err != nil {
		return failure(FailureOther, path, "%v", err)
	}
	t, err := i.Target(ctx)
	if err != nil {
		return failure(FailureOther, path, "%v", err)
	}
	if !w.Compatible(t) {
		return failure(FailureIncompatiblePlatform, path, "%s", w.mismatch(t))
	}

	if i.Probe(ctx) {
		m, _ := i.Module()
		return alreadyInstalled(path, m)
	}
	return i.installWheel(ctx, path, path)
}

// InstallFromIndex installs the newest wheel of name published on the
// package index for the current target.
func (i *Installer) InstallFromIndex(ctx context.Context, name string) Result {
	if name == "" {
		return failure(FailureNotFound, name, "no package name given")
	}
	if i.Probe(ctx) {
		m, _ := i.Module()
		return alreadyInstalled(name, m)
	}
	t, err := i.Target(ctx)
	if err != nil {
		return failure(FailureOther, name, "%v", err)
	}

	project, err := i.fetchProject(ctx, name)
	if errors.Is(err, errProjectNotFound) {
		return failure(FailureNotFound, name, "package is not published on %s", i.indexURL)
	}
	if err != nil {
		return failure(FailureOther, name, "%v", err)
	}

	file, version, err := SelectWheel(project, t)
	if err != nil {
		return failure(FailureIncompatiblePlatform, name, "%v", err)
	}
	i.logger.Info("downloading package", "package", name, "version", version, "file", file.Filename)

	dir, err := os.MkdirTemp("", branding.AddonID()+"-wheel-*")
	if err != nil {
		return failure(FailureOther, name, "creating download directory: %v", err)
	}
	defer os.RemoveAll(dir)

	local, err := i.download(ctx, file, dir)
	if err != nil {
		return failure(FailureOther, name, "%v", err)
	}
	return i.installWheel(ctx, local, name)
}

// installWheel runs pip on a local wheel and re-probes.
func (i *Installer) installWheel(ctx context.Context, wheelPath, source string) Result {
	i.logger.Info("installing package", "file", filepath.Base(wheelPath))
	out, err := i.runner.Run(ctx, i.interpreter, "-m", "pip", "install", "--upgrade", wheelPath)
	if err != nil {
		i.logger.Error("pip install failed", "source", source, "error", err)
		return failure(FailureOther, source, "pip install: %v: %s", err, lastLine(out))
	}

	if !i.Probe(ctx) {
		return failure(FailureImportError, source, "installed, but %s does not import", branding.NativeModule())
	}
	m, _ := i.Module()
	i.logger.Info("native module installed", "module", m.Name, "path", m.Path)
	return success(source, m)
}
