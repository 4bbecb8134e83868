package installer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

// newIndexServer serves a project JSON document for py-slvs and the wheel
// files it references.
func newIndexServer(t *testing.T, files map[string][]byte, releases map[string][]IndexFile) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)

	for version := range releases {
		for k := range releases[version] {
			f := &releases[version][k]
			f.URL = server.URL + "/files/" + f.Filename
		}
	}

	mux.HandleFunc("/pypi/py-slvs/json", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(Project{
			Info:     ProjectInfo{Name: "py-slvs", Version: "1.0.6"},
			Releases: releases,
		})
	})
	mux.HandleFunc("/files/", func(w http.ResponseWriter, r *http.Request) {
		data, ok := files[r.URL.Path[len("/files/"):]]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Write(data)
	})
	mux.HandleFunc("/", http.NotFound)
	t.Cleanup(server.Close)
	return server
}

func digest(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

func wheelFile(name string, data []byte) IndexFile {
	return IndexFile{Filename: name, PackageType: "bdist_wheel", Digests: Digests{SHA256: digest(data)}}
}

func TestInstallFromIndexPicksNewestCompatible(t *testing.T) {
	newLinux := "py_slvs-1.0.6-cp311-cp311-manylinux_2_17_x86_64.whl"
	oldLinux := "py_slvs-1.0.5-cp311-cp311-manylinux_2_17_x86_64.whl"
	newWin := "py_slvs-1.1.0-cp311-cp311-win_amd64.whl"
	files := map[string][]byte{newLinux: []byte("new"), oldLinux: []byte("old"), newWin: []byte("win")}
	releases := map[string][]IndexFile{
		"1.0.5": {wheelFile(oldLinux, files[oldLinux])},
		"1.0.6": {{Filename: "py_slvs-1.0.6.tar.gz", PackageType: "sdist"}, wheelFile(newLinux, files[newLinux])},
		"1.1.0": {wheelFile(newWin, files[newWin])},
		"dev":   {wheelFile(newLinux, files[newLinux])},
	}
	server := newIndexServer(t, files, releases)

	env := newFakeEnv()
	inst := newTestInstaller(env, WithIndexURL(server.URL), WithHTTPClient(server.Client()))

	r := inst.InstallFromIndex(context.Background(), "py-slvs")
	if r.Status != StatusSuccess {
		t.Fatalf("result = %+v, want success", r)
	}
	if env.pipCount() != 1 {
		t.Fatalf("pip ran %d times, want 1", env.pipCount())
	}
	installed := env.pipCalls[0][len(env.pipCalls[0])-1]
	if got := installed[len(installed)-len(newLinux):]; got != newLinux {
		t.Errorf("installed %q, want %q", installed, newLinux)
	}
}

func TestInstallFromIndexNotFound(t *testing.T) {
	server := newIndexServer(t, nil, nil)
	inst := newTestInstaller(newFakeEnv(), WithIndexURL(server.URL), WithHTTPClient(server.Client()))

	r := inst.InstallFromIndex(context.Background(), "no-such-package")
	if r.Failure != FailureNotFound {
		t.Fatalf("result = %+v, want NotFound", r)
	}
}

func TestInstallFromIndexNoWheelForTarget(t *testing.T) {
	name := "py_slvs-1.0.6-cp39-cp39-win_amd64.whl"
	files := map[string][]byte{name: []byte("w")}
	server := newIndexServer(t, files, map[string][]IndexFile{"1.0.6": {wheelFile(name, files[name])}})
	inst := newTestInstaller(newFakeEnv(), WithIndexURL(server.URL), WithHTTPClient(server.Client()))

	r := inst.InstallFromIndex(context.Background(), "py-slvs")
	if r.Failure != FailureIncompatiblePlatform {
		t.Fatalf("result = %+v, want IncompatiblePlatform", r)
	}
}

func TestInstallFromIndexChecksumMismatch(t *testing.T) {
	name := "py_slvs-1.0.6-cp311-cp311-manylinux_2_17_x86_64.whl"
	files := map[string][]byte{name: []byte("tampered")}
	f := wheelFile(name, []byte("original"))
	server := newIndexServer(t, files, map[string][]IndexFile{"1.0.6": {f}})

	env := newFakeEnv()
	inst := newTestInstaller(env, WithIndexURL(server.URL), WithHTTPClient(server.Client()))
	r := inst.InstallFromIndex(context.Background(), "py-slvs")
	if r.Failure != FailureOther {
		t.Fatalf("result = %+v, want Other", r)
	}
	if env.pipCount() != 0 {
		t.Error("pip ran on a wheel with a bad checksum")
	}
}

func TestInstallFromIndexNetworkError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	inst := newTestInstaller(newFakeEnv(), WithIndexURL(url))
	r := inst.InstallFromIndex(context.Background(), "py-slvs")
	if r.Failure != FailureOther {
		t.Fatalf("result = %+v, want Other", r)
	}
	if !errors.Is(r.Err(), ErrInstall) {
		t.Errorf("Err() = %v, want ErrInstall", r.Err())
	}
}

func TestInstallFromIndexAlreadyInstalled(t *testing.T) {
	env := newFakeEnv()
	env.installed = true
	inst := newTestInstaller(env, WithIndexURL("http://127.0.0.1:0"))
	r := inst.InstallFromIndex(context.Background(), "py-slvs")
	if r.Status != StatusAlreadyInstalled {
		t.Fatalf("result = %+v, want AlreadyInstalled", r)
	}
}
