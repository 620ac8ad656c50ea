// Package compose turns a PreferenceSet into configuration documents and a
// package.json fragment. Each concern (ESLint, Stylelint, Prettier) is a step
// that takes the fragment accumulated so far and returns the extended one;
// nothing is shared between steps except that explicit value.
package compose

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/stylegen-labs/stylegen/internal/jsondoc"
	"github.com/stylegen-labs/stylegen/internal/manifest"
	"github.com/stylegen-labs/stylegen/internal/npm"
	"github.com/stylegen-labs/stylegen/internal/prefs"
	"github.com/stylegen-labs/stylegen/internal/templates"
)

// Script entries contributed to package.json.
const (
	ScriptLintJS   = "lintjs"
	ScriptLintCSS  = "lintcss"
	lintJSCommand  = "eslint . --ext js --ext jsx"
	lintCSSCommand = "stylelint ."
)

// Packages each concern depends on, before plugins are added.
var (
	eslintPackages    = []string{"eslint"}
	stylelintPackages = []string{"stylelint", "stylelint-config-css-modules", "stylelint-config-recommended"}
	prettierPackages  = []string{"prettier"}
)

// Result describes one composed concern.
type Result struct {
	Concern templates.Concern

	// Path is the output file, absolute or relative to the working directory.
	Path string

	// Document is the composed configuration before it was merged with any
	// file already present at Path.
	Document jsondoc.Document

	// Written is what ended up on disk. Nil in dry-run mode.
	Written jsondoc.Document

	// Packages lists every npm package the concern referenced.
	Packages []string
}

// Report is the outcome of a full run.
type Report struct {
	Results     []Result
	Fragment    manifest.Fragment
	PackageJSON jsondoc.Document // in dry-run mode, the document that would be written
	Installed   bool
	StyleSaved  bool
}

// Composer composes and writes configuration for one project directory.
type Composer struct {
	ProjectDir  string
	Registry    *templates.Registry
	Resolver    npm.Resolver
	Installer   npm.Installer
	Concurrency int

	// SkipInstall leaves package installation to the user.
	SkipInstall bool

	// DryRun composes everything but writes no files and installs nothing.
	DryRun bool

	// Notify receives one human-readable line per step. Optional.
	Notify func(msg string)

	Logger zerolog.Logger
}

// Step composes one concern.
type Step func(ctx context.Context, ps *prefs.PreferenceSet, frag manifest.Fragment) (Result, manifest.Fragment, error)

// Steps returns the composition steps enabled by ps, in templates.Concerns
// order. ESLint is always enabled.
func (c *Composer) Steps(ps *prefs.PreferenceSet) []Step {
	var steps []Step
	for _, concern := range templates.Concerns() {
		switch concern {
		case templates.ESLint:
			steps = append(steps, c.ComposeLint)
		case templates.Stylelint:
			if ps.Stylelint() {
				steps = append(steps, c.ComposeStylelint)
			}
		case templates.Prettier:
			if ps.Prettier() {
				steps = append(steps, c.ComposePrettier)
			}
		}
	}
	return steps
}

// Run composes every enabled concern, merges the accumulated fragment into
// package.json, installs dependencies and saves the style record, in that
// order. The first failure stops the run; files written before it stay.
func (c *Composer) Run(ctx context.Context, ps *prefs.PreferenceSet) (*Report, error) {
	report := &Report{}
	frag := manifest.Empty()

	for _, step := range c.Steps(ps) {
		res, next, err := step(ctx, ps, frag)
		if err != nil {
			return report, err
		}
		frag = next
		report.Results = append(report.Results, res)
	}
	report.Fragment = frag

	if c.DryRun {
		pkg, err := manifest.PreviewPackageJSON(c.ProjectDir, frag)
		if err != nil {
			return report, fmt.Errorf("preview package.json: %w", err)
		}
		report.PackageJSON = pkg
		return report, nil
	}

	c.notify("Updating package.json...")
	pkg, err := manifest.MergeIntoPackageJSON(c.ProjectDir, frag)
	if err != nil {
		return report, fmt.Errorf("write package.json: %w", err)
	}
	report.PackageJSON = pkg

	if !c.SkipInstall {
		c.notify("Installing dependencies...")
		if err := c.installer().Install(ctx, c.ProjectDir); err != nil {
			return report, fmt.Errorf("install: %w", err)
		}
		report.Installed = true
	}

	if err := prefs.SaveStyleRecord(c.ProjectDir, ps.StyleRecord()); err != nil {
		return report, fmt.Errorf("save style record: %w", err)
	}
	report.StyleSaved = true

	return report, nil
}

// Plan composes every enabled concern without touching the filesystem.
func (c *Composer) Plan(ctx context.Context, ps *prefs.PreferenceSet) (*Report, error) {
	dry := *c
	dry.DryRun = true
	dry.SkipInstall = true
	return dry.Run(ctx, ps)
}

// ComposeLint renders the ESLint base document and folds the overlay of
// every selected plugin onto it in selection order. The selection is checked
// against the registry before anything is resolved or written.
func (c *Composer) ComposeLint(ctx context.Context, ps *prefs.PreferenceSet, frag manifest.Fragment) (Result, manifest.Fragment, error) {
	c.notify("Setting up Eslint...")
	concern := templates.ESLint

	plugins := ps.Plugins()
	if err := c.registry().ValidateSelection(plugins); err != nil {
		return Result{}, frag, c.wrap(concern, err)
	}

	doc, err := templates.RenderBase(concern, templateData(ps))
	if err != nil {
		return Result{}, frag, c.wrap(concern, err)
	}

	packages := append([]string(nil), eslintPackages...)
	for _, name := range plugins {
		plugin, err := c.registry().Lookup(name)
		if err != nil {
			return Result{}, frag, c.wrap(concern, err)
		}
		overlay, err := c.registry().Overlay(name)
		if err != nil {
			return Result{}, frag, c.wrap(concern, err)
		}
		doc, err = jsondoc.Merge(doc, overlay, jsondoc.Concat)
		if err != nil {
			return Result{}, frag, c.wrap(concern, fmt.Errorf("plugin %q: %w", name, err))
		}
		packages = append(packages, plugin.Package)
		c.Logger.Debug().Str("plugin", name).Msg("merged overlay")
	}

	res, frag, err := c.finish(ctx, concern, doc, packages, frag)
	if err != nil {
		return Result{}, frag, err
	}
	return res, frag.WithScript(ScriptLintJS, lintJSCommand), nil
}

// ComposeStylelint writes .stylelintrc and adds the lintcss script.
func (c *Composer) ComposeStylelint(ctx context.Context, ps *prefs.PreferenceSet, frag manifest.Fragment) (Result, manifest.Fragment, error) {
	c.notify("Setting up Stylelint...")
	concern := templates.Stylelint

	doc, err := templates.RenderBase(concern, templateData(ps))
	if err != nil {
		return Result{}, frag, c.wrap(concern, err)
	}

	res, frag, err := c.finish(ctx, concern, doc, stylelintPackages, frag)
	if err != nil {
		return Result{}, frag, err
	}
	return res, frag.WithScript(ScriptLintCSS, lintCSSCommand), nil
}

// ComposePrettier writes .prettierrc.
func (c *Composer) ComposePrettier(ctx context.Context, ps *prefs.PreferenceSet, frag manifest.Fragment) (Result, manifest.Fragment, error) {
	c.notify("Setting up Prettier...")
	concern := templates.Prettier

	doc, err := templates.RenderBase(concern, templateData(ps))
	if err != nil {
		return Result{}, frag, c.wrap(concern, err)
	}
	return c.finish(ctx, concern, doc, prettierPackages, frag)
}

// finish resolves the concern's packages, records them in the fragment and
// writes the document on top of whatever already exists at its path.
func (c *Composer) finish(ctx context.Context, concern templates.Concern, doc jsondoc.Document, packages []string, frag manifest.Fragment) (Result, manifest.Fragment, error) {
	versions, err := npm.ResolveAll(ctx, c.Resolver, packages, c.Concurrency)
	if err != nil {
		return Result{}, frag, c.wrap(concern, err)
	}
	for name, v := range versions {
		c.Logger.Debug().Str("concern", string(concern)).Str("package", name).Str("constraint", v).Msg("resolved")
	}

	res := Result{
		Concern:  concern,
		Path:     filepath.Join(c.ProjectDir, concern.OutputFile()),
		Document: doc,
		Packages: append([]string(nil), packages...),
	}

	if !c.DryRun {
		written, err := jsondoc.Extend(res.Path, doc)
		if err != nil {
			return Result{}, frag, c.wrap(concern, err)
		}
		res.Written = written
		c.Logger.Debug().Str("path", res.Path).Msg("wrote configuration")
	}

	return res, frag.WithDevDependencies(versions), nil
}

func (c *Composer) wrap(concern templates.Concern, err error) error {
	return fmt.Errorf("compose %s: %w", concern, err)
}

func (c *Composer) notify(msg string) {
	if c.Notify != nil {
		c.Notify(msg)
	}
}

func (c *Composer) registry() *templates.Registry {
	if c.Registry == nil {
		c.Registry = templates.Builtin()
	}
	return c.Registry
}

func (c *Composer) installer() npm.Installer {
	if c.Installer == nil {
		return &npm.CommandInstaller{}
	}
	return c.Installer
}

func templateData(ps *prefs.PreferenceSet) templates.Data {
	return templates.NewData(string(ps.Indent()), ps.UseSemi(), string(ps.Quotes()), ps.NoConsole())
}
