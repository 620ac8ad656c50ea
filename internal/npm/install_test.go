package npm

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// writeFakeManager creates an executable shell script standing in for npm.
func writeFakeManager(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fake requires a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "fake-npm")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCommandInstaller_Success(t *testing.T) {
	manager := writeFakeManager(t, `echo "ran $1 in $(pwd)"`)
	project := t.TempDir()

	var stdout bytes.Buffer
	inst := &CommandInstaller{Manager: manager, Stdout: &stdout, Stderr: &stdout}
	if err := inst.Install(context.Background(), project); err != nil {
		t.Fatalf("Install: %v", err)
	}

	out := stdout.String()
	if !strings.Contains(out, "ran install") {
		t.Errorf("expected install argument, got %q", out)
	}
	resolved, _ := filepath.EvalSymlinks(project)
	if !strings.Contains(out, project) && !strings.Contains(out, resolved) {
		t.Errorf("expected to run in %s, got %q", project, out)
	}
}

func TestCommandInstaller_NonZeroExit(t *testing.T) {
	manager := writeFakeManager(t, "exit 3")

	var buf bytes.Buffer
	inst := &CommandInstaller{Manager: manager, Stdout: &buf, Stderr: &buf}
	err := inst.Install(context.Background(), t.TempDir())
	if !errors.Is(err, ErrInstall) {
		t.Fatalf("expected ErrInstall, got %v", err)
	}
	if !strings.Contains(err.Error(), "code 3") {
		t.Errorf("error should carry exit code: %v", err)
	}
}

func TestCommandInstaller_MissingBinary(t *testing.T) {
	inst := &CommandInstaller{Manager: "definitely-not-a-package-manager"}
	err := inst.Install(context.Background(), t.TempDir())
	if !errors.Is(err, ErrInstall) {
		t.Fatalf("expected ErrInstall, got %v", err)
	}
}

func TestValidManager(t *testing.T) {
	for _, m := range []string{"npm", "yarn", "pnpm"} {
		if !ValidManager(m) {
			t.Errorf("ValidManager(%q) = false", m)
		}
	}
	if ValidManager("bun") {
		t.Error("ValidManager(bun) = true")
	}
}
