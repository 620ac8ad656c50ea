package npm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// ErrInstall is returned when the package manager fails.
var ErrInstall = errors.New("installation failed")

// Installer installs the dependencies declared in a project's package.json.
type Installer interface {
	Install(ctx context.Context, dir string) error
}

// Supported package managers.
const (
	ManagerNPM  = "npm"
	ManagerYarn = "yarn"
	ManagerPNPM = "pnpm"
)

// ValidManager reports whether name is a supported package manager.
func ValidManager(name string) bool {
	switch name {
	case ManagerNPM, ManagerYarn, ManagerPNPM:
		return true
	}
	return false
}

// CommandInstaller runs `<manager> install` in the project directory.
type CommandInstaller struct {
	// Manager is the package manager binary name or path; defaults to npm.
	Manager string

	// Stdout and Stderr can be set for testing; defaults to os.Stdout/os.Stderr.
	Stdout io.Writer
	Stderr io.Writer
}

// Install runs the package manager and streams its output. A missing binary
// or a non-zero exit is reported as ErrInstall.
func (c *CommandInstaller) Install(ctx context.Context, dir string) error {
	manager := c.Manager
	if manager == "" {
		manager = ManagerNPM
	}

	bin, err := exec.LookPath(manager)
	if err != nil {
		return fmt.Errorf("%w: %s not found on PATH: %v", ErrInstall, manager, err)
	}

	cmd := exec.CommandContext(ctx, bin, "install")
	cmd.Dir = dir

	stdout := c.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := c.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("%w: %s install exited with code %d", ErrInstall, manager, exitErr.ExitCode())
		}
		return fmt.Errorf("%w: running %s install: %v", ErrInstall, manager, err)
	}
	return nil
}
