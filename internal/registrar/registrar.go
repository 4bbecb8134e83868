// Package registrar drives the add-on lifecycle. Activation registers the
// base capabilities unconditionally and the dependent ones only when the
// native solver module probes successfully; deactivation undoes exactly
// what was registered, dependents first.
package registrar

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"sync"

	"github.com/Masterminds/semver/v3"
	"github.com/bgs-labs/sketcher/internal/branding"
	"github.com/bgs-labs/sketcher/internal/capability"
	"github.com/bgs-labs/sketcher/internal/host"
	"github.com/bgs-labs/sketcher/internal/installer"
	"github.com/bgs-labs/sketcher/internal/logging"
	"github.com/bgs-labs/sketcher/internal/presets"
)

var (
	// ErrHostRegistration wraps a failed base registration. Activation is
	// aborted and everything it did is undone.
	ErrHostRegistration = errors.New("host registration failed")
	// ErrUnsupportedHost is returned when the host is older than the
	// minimum version the add-on supports.
	ErrUnsupportedHost = errors.New("unsupported host version")
	// ErrNotActive is returned by Deactivate when nothing is registered.
	ErrNotActive = errors.New("add-on is not active")
	// ErrAlreadyActive is returned by Activate outside the Unregistered state.
	ErrAlreadyActive = errors.New("add-on is already active")
)

// Installer is the part of the native module installer the registrar uses.
type Installer interface {
	Probe(ctx context.Context) bool
	InstallFromPath(ctx context.Context, path string) installer.Result
	InstallFromIndex(ctx context.Context, name string) installer.Result
	Forget()
}

// Settings supplies the configured log level.
type Settings interface {
	LogLevel() logging.Severity
}

// Versioned is implemented by hosts that report their version.
type Versioned interface {
	Version() string
}

// Source selects what RequestInstallAndUpgrade installs. Path wins when
// both are set.
type Source struct {
	Path    string
	Package string
}

// FromPath installs a local wheel.
func FromPath(path string) Source { return Source{Path: path} }

// FromIndex installs a package from the package index.
func FromIndex(name string) Source { return Source{Package: name} }

func (s Source) String() string {
	if s.Path != "" {
		return s.Path
	}
	return s.Package
}

// Registrar owns the registration state of one add-on instance.
type Registrar struct {
	mu        sync.Mutex
	host      host.Registry
	caps      *capability.Set
	installer Installer
	logs      *logging.Subsystem
	settings  Settings

	presetSrc   fs.FS
	presetDir   string
	force       bool
	hostVersion string
	minHost     string

	state      State
	base       []capability.Capability
	dependents []capability.Capability
}

// Option configures a Registrar.
type Option func(*Registrar)

// WithCapabilities replaces the embedded capability set.
func WithCapabilities(s *capability.Set) Option {
	return func(r *Registrar) {
		r.caps = s
	}
}

// WithPresets sets the bundled presets and the directory they go to.
// Without it, Activate skips the presets step.
func WithPresets(src fs.FS, dir string) Option {
	return func(r *Registrar) {
		r.presetSrc = src
		r.presetDir = dir
	}
}

// WithForcePresets overwrites existing presets on Activate.
func WithForcePresets(force bool) Option {
	return func(r *Registrar) {
		r.force = force
	}
}

// WithHostVersion sets the host version checked on Activate. Hosts that
// implement Versioned need not set it.
func WithHostVersion(v string) Option {
	return func(r *Registrar) {
		r.hostVersion = v
	}
}

// WithMinHostVersion overrides the minimum supported host version.
func WithMinHostVersion(v string) Option {
	return func(r *Registrar) {
		r.minHost = v
	}
}

// New creates an unregistered Registrar.
func New(h host.Registry, inst Installer, logs *logging.Subsystem, settings Settings, opts ...Option) *Registrar {
	r := &Registrar{
		host:      h,
		caps:      capability.Default(),
		installer: inst,
		logs:      logs,
		settings:  settings,
		minHost:   branding.MinHostVersion(),
	}
	if v, ok := h.(Versioned); ok {
		r.hostVersion = v.Version()
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// State returns the current lifecycle state.
func (r *Registrar) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Registered reports whether the dependent capabilities are live.
func (r *Registrar) Registered() bool {
	return r.State() == FullyRegistered
}

func (r *Registrar) logger() *slog.Logger {
	return r.logs.Logger()
}

// Activate brings the add-on up. A missing native module is not an error:
// the registrar stops at BaseRegistered and logs a warning. A failed base
// registration is fatal; the registrar rolls back, removing a presets
// directory it just created, and stays Unregistered.
func (r *Registrar) Activate(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != Unregistered {
		return fmt.Errorf("%w: %s", ErrAlreadyActive, r.state)
	}
	if err := r.checkHostVersion(); err != nil {
		return err
	}

	// The console sink survives a file sink failure, which Initialize reports.
	_ = r.logs.Initialize(r.settings.LogLevel())
	log := r.logger()

	created := r.ensurePresets(log)

	base, err := r.registerAll(r.caps.Base())
	if err != nil {
		log.Error("registering base capabilities failed", "error", err)
		r.removePresets(log, created)
		_ = r.logs.Shutdown()
		return fmt.Errorf("%w: %w", ErrHostRegistration, err)
	}
	r.base = base
	r.state = BaseRegistered
	log.Info(fmt.Sprintf("Enabled %s base, version: %s", branding.DisplayName(), branding.Version()))

	if !r.installer.Probe(ctx) {
		log.Warn(fmt.Sprintf("%s module isn't available, only base modules registered", branding.NativeModule()))
		return nil
	}
	if err := r.registerDependentsLocked(); err != nil {
		log.Error("registering dependent capabilities failed", "error", err)
	}
	return nil
}

// Deactivate unregisters everything Activate and any upgrade registered,
// dependents first in reverse order, then the base capabilities, then
// shuts logging down.
func (r *Registrar) Deactivate(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state == Unregistered {
		return ErrNotActive
	}
	log := r.logger()

	if r.state == FullyRegistered {
		unregisterAll(r.host, r.dependents)
		r.dependents = nil
		r.installer.Forget()
	}
	unregisterAll(r.host, r.base)
	r.base = nil
	r.state = Unregistered

	log.Info(fmt.Sprintf("Disabled %s", branding.DisplayName()))
	return r.logs.Shutdown()
}

// RequestInstallAndUpgrade installs the native module from src. When the
// module becomes available while only the base is registered, the dependent
// capabilities are registered in place. A failed install leaves the state
// unchanged; the returned Result carries the reason.
func (r *Registrar) RequestInstallAndUpgrade(ctx context.Context, src Source) installer.Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	log := r.logger()

	var res installer.Result
	switch {
	case src.Path != "":
		res = r.installer.InstallFromPath(ctx, src.Path)
	case src.Package != "":
		res = r.installer.InstallFromIndex(ctx, src.Package)
	default:
		res = installer.Result{
			Status:  installer.StatusFailed,
			Failure: installer.FailureNotFound,
			Message: "no package file or name given",
		}
	}
	if !res.OK() {
		log.Error("installing native module failed", "source", src.String(), "reason", res.String())
		return res
	}
	if r.state != BaseRegistered {
		return res
	}

	if !r.installer.Probe(ctx) {
		res.Status = installer.StatusFailed
		res.Failure = installer.FailureImportError
		res.Message = fmt.Sprintf("%s does not import after install", branding.NativeModule())
		log.Error("installing native module failed", "source", src.String(), "reason", res.String())
		return res
	}
	if err := r.registerDependentsLocked(); err != nil {
		log.Error("registering dependent capabilities failed", "error", err)
		res.Status = installer.StatusFailed
		res.Failure = installer.FailureOther
		res.Message = err.Error()
		return res
	}
	return res
}

// registerDependentsLocked moves BaseRegistered to FullyRegistered, or
// leaves the state alone and returns the error after rolling back.
func (r *Registrar) registerDependentsLocked() error {
	deps, err := r.registerAll(r.caps.Dependent())
	if err != nil {
		return err
	}
	r.dependents = deps
	r.state = FullyRegistered
	r.logger().Info("Registered dependent modules", "count", len(deps))
	return nil
}

// registerAll registers caps in order. On failure the ones it registered
// are unregistered in reverse and the error is returned.
func (r *Registrar) registerAll(caps []capability.Capability) ([]capability.Capability, error) {
	done := make([]capability.Capability, 0, len(caps))
	for _, c := range caps {
		if err := r.host.Register(c.Descriptor()); err != nil {
			unregisterAll(r.host, done)
			return nil, fmt.Errorf("registering %s: %w", c.Descriptor(), err)
		}
		done = append(done, c)
	}
	return done, nil
}

func unregisterAll(h host.Registry, caps []capability.Capability) {
	for i := len(caps) - 1; i >= 0; i-- {
		h.Unregister(caps[i].Descriptor())
	}
}

// ensurePresets returns the directory it created, or "" when it created
// none.
func (r *Registrar) ensurePresets(log *slog.Logger) string {
	if r.presetSrc == nil || r.presetDir == "" {
		return ""
	}
	report, err := presets.Ensure(r.presetSrc, r.presetDir, r.force)
	created := ""
	if report != nil && report.Created {
		created = report.Dir
	}
	if err != nil {
		log.Error("installing presets failed", "dir", r.presetDir, "error", err)
		return created
	}
	if len(report.Copied) > 0 {
		log.Debug("installed presets", "dir", report.Dir, "files", len(report.Copied))
	}
	return created
}

func (r *Registrar) removePresets(log *slog.Logger, dir string) {
	if dir == "" {
		return
	}
	if err := os.RemoveAll(dir); err != nil {
		log.Error("removing presets directory failed", "dir", dir, "error", err)
		return
	}
	log.Debug("removed presets directory", "dir", dir)
}

func (r *Registrar) checkHostVersion() error {
	if r.hostVersion == "" || r.minHost == "" {
		return nil
	}
	have, err := semver.NewVersion(r.hostVersion)
	if err != nil {
		return fmt.Errorf("%w: cannot parse %q: %v", ErrUnsupportedHost, r.hostVersion, err)
	}
	c, err := semver.NewConstraint(">= " + r.minHost)
	if err != nil {
		return fmt.Errorf("minimum host version %q: %w", r.minHost, err)
	}
	if !c.Check(have) {
		return fmt.Errorf("%w: %s requires host %s or newer, got %s",
			ErrUnsupportedHost, branding.DisplayName(), r.minHost, have)
	}
	return nil
}
