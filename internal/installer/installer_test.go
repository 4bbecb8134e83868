package installer

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func TestInstallFromPathNotFound(t *testing.T) {
	env := newFakeEnv()
	inst := newTestInstaller(env)

	r := inst.InstallFromPath(context.Background(), "/nonexistent.whl")
	if r.Status != StatusFailed || r.Failure != FailureNotFound {
		t.Fatalf("result = %+v, want NotFound failure", r)
	}
	if !errors.Is(r.Err(), ErrNotFound) {
		t.Errorf("Err() = %v, want ErrNotFound", r.Err())
	}
	if env.pipCount() != 0 {
		t.Error("pip ran for a missing file")
	}
}

func TestInstallFromPathIncompatible(t *testing.T) {
	dir := t.TempDir()
	tests := []string{
		"py_slvs-1.0.6-cp310-cp310-manylinux_2_17_x86_64.whl",
		"py_slvs-1.0.6-cp311-cp311-win_amd64.whl",
	}
	for _, name := range tests {
		path := filepath.Join(dir, name)
		touch(t, path)

		env := newFakeEnv()
		r := newTestInstaller(env).InstallFromPath(context.Background(), path)
		if r.Failure != FailureIncompatiblePlatform {
			t.Errorf("%s: result = %+v, want IncompatiblePlatform", name, r)
		}
		if !errors.Is(r.Err(), ErrIncompatiblePlatform) {
			t.Errorf("%s: Err() = %v, want ErrIncompatiblePlatform", name, r.Err())
		}
	}
}

func TestInstallFromPathNotAWheel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "py_slvs.tar.gz")
	touch(t, path)
	r := newTestInstaller(newFakeEnv()).InstallFromPath(context.Background(), path)
	if r.Failure != FailureOther {
		t.Errorf("result = %+v, want Other", r)
	}
}

func TestInstallFromPathSuccess(t *testing.T) {
	path := filepath.Join(t.TempDir(), "py_slvs-1.0.6-cp311-cp311-manylinux_2_17_x86_64.whl")
	touch(t, path)

	env := newFakeEnv()
	inst := newTestInstaller(env)
	r := inst.InstallFromPath(context.Background(), path)
	if r.Status != StatusSuccess {
		t.Fatalf("result = %+v, want success", r)
	}
	if r.Err() != nil {
		t.Errorf("Err() = %v, want nil", r.Err())
	}
	if r.Module.Path != "/site-packages/py_slvs" {
		t.Errorf("Module.Path = %q", r.Module.Path)
	}
	if m, ok := inst.Module(); !ok || m.Name != "py_slvs" {
		t.Errorf("Module() = %+v, %v", m, ok)
	}
	if env.pipCount() != 1 {
		t.Errorf("pip ran %d times, want 1", env.pipCount())
	}
}

func TestInstallFromPathAlreadyInstalled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "py_slvs-1.0.6-cp311-cp311-manylinux_2_17_x86_64.whl")
	touch(t, path)

	env := newFakeEnv()
	env.installed = true
	r := newTestInstaller(env).InstallFromPath(context.Background(), path)
	if r.Status != StatusAlreadyInstalled || !r.OK() {
		t.Fatalf("result = %+v, want AlreadyInstalled", r)
	}
	if env.pipCount() != 0 {
		t.Error("pip ran although the module was importable")
	}
}

func TestInstallFromPathPipFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "py_slvs-1.0.6-cp311-cp311-manylinux_2_17_x86_64.whl")
	touch(t, path)

	env := newFakeEnv()
	env.pipErr = errors.New("exit status 1")
	r := newTestInstaller(env).InstallFromPath(context.Background(), path)
	if r.Failure != FailureOther {
		t.Fatalf("result = %+v, want Other", r)
	}
	if !errors.Is(r.Err(), ErrInstall) {
		t.Errorf("Err() = %v, want ErrInstall", r.Err())
	}
}

func TestInstallFromPathImportError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "py_slvs-1.0.6-cp311-cp311-manylinux_2_17_x86_64.whl")
	touch(t, path)

	env := newFakeEnv()
	env.brokenImport = true
	r := newTestInstaller(env).InstallFromPath(context.Background(), path)
	if r.Failure != FailureImportError {
		t.Fatalf("result = %+v, want ImportError", r)
	}
	if !errors.Is(r.Err(), ErrImport) {
		t.Errorf("Err() = %v, want ErrImport", r.Err())
	}
}

func TestProbeRecoversPanic(t *testing.T) {
	inst := New(WithProber(ProbeFunc(func(ctx context.Context) (ModuleInfo, error) {
		panic("segfault in extension init")
	})))
	if inst.Probe(context.Background()) {
		t.Error("Probe returned true after panic")
	}
	if _, ok := inst.Module(); ok {
		t.Error("module recorded after panic")
	}
}

func TestForget(t *testing.T) {
	env := newFakeEnv()
	env.installed = true
	inst := newTestInstaller(env)
	if !inst.Probe(context.Background()) {
		t.Fatal("Probe = false")
	}
	inst.Forget()
	if _, ok := inst.Module(); ok {
		t.Error("Module() still set after Forget")
	}
}

func TestTargetDetectedFromInterpreter(t *testing.T) {
	env := newFakeEnv()
	env.version = "Python 3.10.12"
	inst := New(WithRunner(env), WithProber(env))

	target, err := inst.Target(context.Background())
	if err != nil {
		t.Fatalf("Target: %v", err)
	}
	if target.PythonTag() != "cp310" {
		t.Errorf("PythonTag() = %q, want cp310", target.PythonTag())
	}
	if target.Platform != CurrentPlatform() {
		t.Errorf("Platform = %q, want %q", target.Platform, CurrentPlatform())
	}
}

func TestExecProberUsesRunner(t *testing.T) {
	var gotArgs []string
	p := ExecProber{
		Interpreter: "python3",
		Module:      "py_slvs",
		Entry:       "slvs",
		Runner: RunnerFunc(func(ctx context.Context, name string, args ...string) ([]byte, error) {
			gotArgs = args
			return []byte("/usr/lib/python3/site-packages/py_slvs\n"), nil
		}),
	}
	m, err := p.Probe(context.Background())
	if err != nil {
		t.Fatalf("Probe: %v", err)
	}
	if m.Path != "/usr/lib/python3/site-packages/py_slvs" {
		t.Errorf("Path = %q", m.Path)
	}
	if len(gotArgs) != 4 || gotArgs[2] != "py_slvs" || gotArgs[3] != "slvs" {
		t.Errorf("args = %q", gotArgs)
	}
}
