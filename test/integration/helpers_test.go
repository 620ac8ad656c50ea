//go:build integration

package integration_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stylegen-labs/stylegen/internal/jsondoc"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir    string // HOME, so ~/.stylegen stays inside the sandbox
	BinDir     string // prepended to PATH, holds the fake package manager
	ProjectDir string // the JavaScript project being configured
	Registry   *fakeRegistry
}

// setupTestEnv creates isolated temp directories, a fake npm registry and a
// fake package manager so the whole generator runs without network access.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake package manager is a shell script")
	}

	env := &testEnv{
		HomeDir:    t.TempDir(),
		BinDir:     t.TempDir(),
		ProjectDir: t.TempDir(),
		Registry:   newFakeRegistry(t),
	}

	t.Setenv("HOME", env.HomeDir)
	t.Setenv("PATH", env.BinDir+string(os.PathListSeparator)+os.Getenv("PATH"))

	return env
}

// installFakeManager writes an executable named name that records its
// arguments into the project and exits with code.
func installFakeManager(t *testing.T, env *testEnv, name string, code int) {
	t.Helper()
	script := "#!/bin/sh\n" +
		"echo \"$@\" > .fake-install\n" +
		"exit " + strconv.Itoa(code) + "\n"
	writeFile(t, filepath.Join(env.BinDir, name), script)
	if err := os.Chmod(filepath.Join(env.BinDir, name), 0755); err != nil {
		t.Fatalf("chmod %s: %v", name, err)
	}
}

// fakeRegistry answers /<name>/latest with a fixed version per package.
type fakeRegistry struct {
	*httptest.Server

	mu        sync.Mutex
	versions  map[string]string
	requested []string
}

func newFakeRegistry(t *testing.T) *fakeRegistry {
	t.Helper()
	r := &fakeRegistry{versions: map[string]string{}}
	r.Server = httptest.NewServer(http.HandlerFunc(r.serve))
	t.Cleanup(r.Close)
	return r
}

func (r *fakeRegistry) serve(w http.ResponseWriter, req *http.Request) {
	name, ok := strings.CutSuffix(strings.TrimPrefix(req.URL.Path, "/"), "/latest")
	if !ok {
		http.NotFound(w, req)
		return
	}

	r.mu.Lock()
	r.requested = append(r.requested, name)
	version, found := r.versions[name]
	r.mu.Unlock()

	if !found {
		version = "1.0.0"
	}
	if version == "missing" {
		http.NotFound(w, req)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"name":"` + name + `","version":"` + version + `"}`))
}

func (r *fakeRegistry) set(name, version string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.versions[name] = version
}

func (r *fakeRegistry) requestCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.requested)
}

// --- File helpers ---

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating dir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s", path)
	}
}

func assertNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Lstat(path); err == nil {
		t.Errorf("expected path to not exist: %s", path)
	}
}

func readDoc(t *testing.T, path string) jsondoc.Document {
	t.Helper()
	doc, ok, err := jsondoc.Read(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	if !ok {
		t.Fatalf("expected file to exist: %s", path)
	}
	return doc
}
