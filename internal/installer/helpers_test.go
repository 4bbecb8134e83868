package installer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// fakeEnv simulates an interpreter: pip installs flip the module to
// importable unless pipErr or brokenImport is set.
type fakeEnv struct {
	mu           sync.Mutex
	version      string
	installed    bool
	pipErr       error
	brokenImport bool
	pipCalls     [][]string
}

func newFakeEnv() *fakeEnv {
	return &fakeEnv{version: "Python 3.11.4"}
}

func (e *fakeEnv) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(args) == 1 && args[0] == "--version" {
		return []byte(e.version + "\n"), nil
	}
	if len(args) >= 3 && args[0] == "-m" && args[1] == "pip" {
		e.pipCalls = append(e.pipCalls, args)
		if e.pipErr != nil {
			return []byte("ERROR: could not install\n"), e.pipErr
		}
		e.installed = true
		return []byte("Successfully installed\n"), nil
	}
	return nil, errors.New("unexpected command " + name + " " + strings.Join(args, " "))
}

func (e *fakeEnv) Probe(context.Context) (ModuleInfo, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.installed || e.brokenImport {
		return ModuleInfo{}, errors.New("No module named 'py_slvs'")
	}
	return ModuleInfo{Name: "py_slvs", Path: "/site-packages/py_slvs"}, nil
}

func (e *fakeEnv) pipCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.pipCalls)
}

func newTestInstaller(env *fakeEnv, opts ...Option) *Installer {
	base := []Option{
		WithRunner(env),
		WithProber(env),
		WithTarget(Target{Platform: "linux", Major: 3, Minor: 11}),
	}
	return New(append(base, opts...)...)
}

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("wheel"), 0644); err != nil {
		t.Fatal(err)
	}
}
