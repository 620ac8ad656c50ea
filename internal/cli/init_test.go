package cli

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/spf13/viper"
	"github.com/stylegen-labs/stylegen/internal/config"
	"github.com/stylegen-labs/stylegen/internal/jsondoc"
	"github.com/stylegen-labs/stylegen/internal/npm"
)

// newRegistry serves {"version": version} for every /<name>/latest request.
func newRegistry(t *testing.T, version string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if !strings.HasSuffix(r.URL.Path, "/latest") {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"version":"` + version + `"}`))
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func resetConfig(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Setenv("HOME", t.TempDir())
	t.Cleanup(viper.Reset)
}

func readJSON(t *testing.T, path string) jsondoc.Document {
	t.Helper()
	doc, ok, err := jsondoc.Read(path)
	if err != nil || !ok {
		t.Fatalf("reading %s: ok=%v err=%v", path, ok, err)
	}
	return doc
}

func TestRunInit_AcceptDefaults(t *testing.T) {
	resetConfig(t)
	srv, _ := newRegistry(t, "8.1.0")
	dir := t.TempDir()

	var out bytes.Buffer
	opts := initOptions{yes: true, skipInstall: true, registry: srv.URL, concurrency: 2}
	if err := runInit(context.Background(), strings.NewReader(""), &out, dir, opts); err != nil {
		t.Fatalf("runInit: %v", err)
	}

	for _, f := range []string{".eslintrc.json", ".stylelintrc", ".prettierrc", "package.json", ".stylegen.yaml"} {
		if _, err := os.Stat(filepath.Join(dir, f)); err != nil {
			t.Errorf("%s not written: %v", f, err)
		}
	}

	pkg := readJSON(t, filepath.Join(dir, "package.json"))
	if got, _ := jsondoc.Lookup(pkg, "devDependencies.eslint-plugin-babel"); got != "^8.1.0" {
		t.Errorf("eslint-plugin-babel = %v, want ^8.1.0", got)
	}

	text := out.String()
	for _, want := range []string{"Setting up Eslint...", "Setting up Stylelint...", "Setting up Prettier...", "Scripts: lintcss, lintjs", "  eslint ^8.1.0", "Run 'npm install'"} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
}

func TestRunInit_Interactive(t *testing.T) {
	resetConfig(t)
	srv, _ := newRegistry(t, "1.0.0")
	dir := t.TempDir()

	// react only, then defaults, then no stylelint and no prettier.
	input := "2\n\n\n\n\nn\nn\n"
	var out bytes.Buffer
	opts := initOptions{skipInstall: true, registry: srv.URL}
	if err := runInit(context.Background(), strings.NewReader(input), &out, dir, opts); err != nil {
		t.Fatalf("runInit: %v\n%s", err, out.String())
	}

	eslintrc := readJSON(t, filepath.Join(dir, ".eslintrc.json"))
	if got, _ := jsondoc.Lookup(eslintrc, "settings.react.version"); got != "detect" {
		t.Errorf("react overlay not applied: %v", eslintrc)
	}
	for _, f := range []string{".stylelintrc", ".prettierrc"} {
		if _, err := os.Stat(filepath.Join(dir, f)); err == nil {
			t.Errorf("%s should not be written", f)
		}
	}
	if !strings.Contains(out.String(), "? Which eslint plugins would you like to use?") {
		t.Errorf("prompt not printed:\n%s", out.String())
	}
}

func TestRunInit_DryRun(t *testing.T) {
	resetConfig(t)
	srv, hits := newRegistry(t, "2.0.0")
	dir := t.TempDir()

	var out bytes.Buffer
	opts := initOptions{yes: true, dryRun: true, registry: srv.URL}
	if err := runInit(context.Background(), nil, &out, dir, opts); err != nil {
		t.Fatalf("runInit: %v", err)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("dry run wrote %d entries", len(entries))
	}
	if hits.Load() == 0 {
		t.Error("dry run should still resolve versions")
	}
	for _, want := range []string{"--- .eslintrc.json", "--- .prettierrc", "--- package.json", `"lintjs"`} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestRunInit_DryRunMergesExistingPackageJSON(t *testing.T) {
	resetConfig(t)
	srv, _ := newRegistry(t, "2.0.0")
	dir := t.TempDir()
	original := `{"name":"demo-app","scripts":{"test":"jest"}}`
	pkgPath := filepath.Join(dir, "package.json")
	if err := os.WriteFile(pkgPath, []byte(original), 0644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	opts := initOptions{yes: true, dryRun: true, registry: srv.URL}
	if err := runInit(context.Background(), nil, &out, dir, opts); err != nil {
		t.Fatalf("runInit: %v", err)
	}

	text := out.String()
	_, pkgSection, found := strings.Cut(text, "--- package.json\n")
	if !found {
		t.Fatalf("package.json section missing:\n%s", text)
	}
	for _, want := range []string{`"name": "demo-app"`, `"test": "jest"`, `"lintjs"`, `"eslint": "^2.0.0"`} {
		if !strings.Contains(pkgSection, want) {
			t.Errorf("package.json preview missing %s:\n%s", want, pkgSection)
		}
	}

	data, err := os.ReadFile(pkgPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != original {
		t.Errorf("dry run modified package.json: %s", data)
	}
}

func TestRunInit_RegistryFailure(t *testing.T) {
	resetConfig(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := runInit(context.Background(), nil, &bytes.Buffer{}, t.TempDir(), initOptions{yes: true, skipInstall: true, registry: srv.URL})
	if !errors.Is(err, npm.ErrResolution) {
		t.Fatalf("expected ErrResolution, got %v", err)
	}
}

func TestRunInit_BadArguments(t *testing.T) {
	resetConfig(t)
	dir := t.TempDir()
	file := filepath.Join(dir, "file.txt")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		dir  string
		opts initOptions
		want string
	}{
		{"unknown package manager", dir, initOptions{yes: true, packageManager: "bower"}, "unsupported package manager"},
		{"missing directory", filepath.Join(dir, "nope"), initOptions{yes: true}, "project directory"},
		{"not a directory", file, initOptions{yes: true}, "is not a directory"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := runInit(context.Background(), nil, &bytes.Buffer{}, tt.dir, tt.opts)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestInitSettings_FlagsOverrideConfig(t *testing.T) {
	resetConfig(t)
	t.Setenv("STYLEGEN_PACKAGE_MANAGER", "yarn")
	t.Setenv("STYLEGEN_CONCURRENCY", "8")
	config.Load()

	s, err := initSettings(initOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if s.PackageManager != "yarn" || s.Concurrency != 8 {
		t.Errorf("settings from env = %+v", s)
	}

	s, err = initSettings(initOptions{packageManager: "pnpm", concurrency: 3, registry: "http://localhost:4873"})
	if err != nil {
		t.Fatal(err)
	}
	if s.PackageManager != "pnpm" || s.Concurrency != 3 || s.Registry != "http://localhost:4873" {
		t.Errorf("settings with flags = %+v", s)
	}
}
