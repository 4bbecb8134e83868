package registrar

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bgs-labs/sketcher/internal/capability"
	"github.com/bgs-labs/sketcher/internal/host"
	"github.com/bgs-labs/sketcher/internal/installer"
	"github.com/bgs-labs/sketcher/internal/logging"
)

const testLogName = "geometry_sketcher"

// fakeInstaller simulates the native module. Install calls succeed unless
// failWith is set, and make the module importable when installFixes is set.
type fakeInstaller struct {
	available    bool
	installFixes bool
	failWith     *installer.Result
	installs     []string
	probes       int
	forgets      int
}

func (f *fakeInstaller) Probe(context.Context) bool {
	f.probes++
	return f.available
}

func (f *fakeInstaller) InstallFromPath(_ context.Context, path string) installer.Result {
	return f.install(path)
}

func (f *fakeInstaller) InstallFromIndex(_ context.Context, name string) installer.Result {
	return f.install(name)
}

func (f *fakeInstaller) install(src string) installer.Result {
	f.installs = append(f.installs, src)
	if f.available {
		return installer.Result{Status: installer.StatusAlreadyInstalled, Source: src}
	}
	if f.failWith != nil {
		return *f.failWith
	}
	if f.installFixes {
		f.available = true
	}
	return installer.Result{Status: installer.StatusSuccess, Source: src}
}

func (f *fakeInstaller) Forget() { f.forgets++ }

type fixedLevel logging.Severity

func (l fixedLevel) LogLevel() logging.Severity { return logging.Severity(l) }

// spyRegistry records every Unregister attempt, including ones for
// descriptors that were never registered.
type spyRegistry struct {
	*host.Memory
	attempts []string
}

func (s *spyRegistry) Unregister(d host.Descriptor) {
	s.attempts = append(s.attempts, d.ID)
	s.Memory.Unregister(d)
}

type fixture struct {
	reg    *Registrar
	host   *spyRegistry
	logs   *logging.Subsystem
	logDir string
}

func newFixture(t *testing.T, inst Installer, opts ...Option) *fixture {
	t.Helper()
	return newFixtureWithHost(t, "4.2.0", inst, logging.DefaultSeverity, opts...)
}

func newFixtureWithHost(t *testing.T, version string, inst Installer, level logging.Severity, opts ...Option) *fixture {
	t.Helper()
	dir := t.TempDir()
	logs := logging.New(testLogName, logging.WithConsole(io.Discard), logging.WithTempDir(dir))
	t.Cleanup(func() { _ = logs.Shutdown() })

	h := &spyRegistry{Memory: host.NewMemory(version)}
	return &fixture{
		reg:    New(h, inst, logs, fixedLevel(level), opts...),
		host:   h,
		logs:   logs,
		logDir: dir,
	}
}

func (f *fixture) logContent(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(f.logDir, testLogName+".log"))
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	return string(data)
}

func (f *fixture) registeredIDs() []string {
	var ids []string
	for _, d := range f.host.Registered() {
		ids = append(ids, d.ID)
	}
	return ids
}

func (f *fixture) countRegisters(id string) int {
	n := 0
	for _, e := range f.host.Events() {
		if e.Op == host.OpRegister && e.ID == id {
			n++
		}
	}
	return n
}

func ids(caps []capability.Capability) []string {
	out := make([]string, 0, len(caps))
	for _, c := range caps {
		out = append(out, c.ID)
	}
	return out
}

func reversed(s []string) []string {
	out := make([]string, len(s))
	for i, v := range s {
		out[len(s)-1-i] = v
	}
	return out
}

func countLevel(log, level string) int {
	return strings.Count(log, "level="+level+" ")
}
