package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/stylegen-labs/stylegen/internal/npm"
	"golang.org/x/term"
)

var (
	cyan  = color.New(color.FgCyan, color.Bold).SprintFunc()
	green = color.New(color.FgGreen).SprintFunc()
	dim   = color.New(color.Faint).SprintFunc()
)

// stepNotifier prints composer progress lines to w.
func stepNotifier(w io.Writer) func(string) {
	return func(msg string) {
		fmt.Fprintf(w, "%s %s\n", cyan("==>"), msg)
	}
}

// newInstaller returns the installer for manager. When stderr is a terminal
// the package manager output is captured behind a spinner and only replayed
// if the install fails.
func newInstaller(manager string, out io.Writer) npm.Installer {
	if !term.IsTerminal(int(os.Stderr.Fd())) {
		return &npm.CommandInstaller{Manager: manager, Stdout: out, Stderr: os.Stderr}
	}
	return &spinnerInstaller{manager: manager, out: out}
}

type spinnerInstaller struct {
	manager string
	out     io.Writer
}

func (s *spinnerInstaller) Install(ctx context.Context, dir string) error {
	var buf bytes.Buffer
	inner := &npm.CommandInstaller{Manager: s.manager, Stdout: &buf, Stderr: &buf}

	sp := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	sp.Writer = os.Stderr
	sp.Suffix = fmt.Sprintf(" %s install", s.manager)
	sp.Start()
	err := inner.Install(ctx, dir)
	sp.Stop()

	if err != nil {
		_, _ = s.out.Write(buf.Bytes())
	}
	return err
}
