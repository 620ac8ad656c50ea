package templates

import (
	"errors"
	"fmt"
	"path"

	"github.com/stylegen-labs/stylegen/internal/jsondoc"
)

// ErrMissingOverlay is returned when a selected plugin has no overlay document.
var ErrMissingOverlay = errors.New("missing overlay document")

// OverlayProvider supplies the overlay document for one plugin.
type OverlayProvider interface {
	Overlay() (jsondoc.Document, error)
}

// OverlayFunc adapts a function to OverlayProvider.
type OverlayFunc func() (jsondoc.Document, error)

// Overlay calls f.
func (f OverlayFunc) Overlay() (jsondoc.Document, error) { return f() }

// StaticOverlay is a provider backed by an in-memory document.
type StaticOverlay jsondoc.Document

// Overlay returns a copy of the document.
func (s StaticOverlay) Overlay() (jsondoc.Document, error) {
	return jsondoc.Clone(jsondoc.Document(s)), nil
}

// Plugin is one selectable ESLint plugin.
type Plugin struct {
	Name    string
	Package string // npm package providing the plugin
	Default bool   // pre-selected in the prompt
	Overlay OverlayProvider
}

// Registry maps plugin names to their overlay providers. The zero value is
// an empty registry.
type Registry struct {
	plugins map[string]Plugin
	order   []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{plugins: make(map[string]Plugin)}
}

// Register adds a plugin. Registering the same name twice is an error.
func (r *Registry) Register(p Plugin) error {
	if p.Name == "" {
		return fmt.Errorf("plugin name is required")
	}
	if p.Overlay == nil {
		return fmt.Errorf("plugin %q: %w", p.Name, ErrMissingOverlay)
	}
	if r.plugins == nil {
		r.plugins = make(map[string]Plugin)
	}
	if _, dup := r.plugins[p.Name]; dup {
		return fmt.Errorf("plugin %q registered twice", p.Name)
	}
	if p.Package == "" {
		p.Package = "eslint-plugin-" + p.Name
	}
	r.plugins[p.Name] = p
	r.order = append(r.order, p.Name)
	return nil
}

// Names returns the registered plugin names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Plugins returns the registered plugins in registration order.
func (r *Registry) Plugins() []Plugin {
	out := make([]Plugin, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.plugins[name])
	}
	return out
}

// Lookup returns the plugin registered under name.
func (r *Registry) Lookup(name string) (Plugin, error) {
	p, ok := r.plugins[name]
	if !ok {
		return Plugin{}, fmt.Errorf("plugin %q: %w", name, ErrMissingOverlay)
	}
	return p, nil
}

// Overlay loads the overlay document for name.
func (r *Registry) Overlay(name string) (jsondoc.Document, error) {
	p, err := r.Lookup(name)
	if err != nil {
		return nil, err
	}
	doc, err := p.Overlay.Overlay()
	if err != nil {
		return nil, fmt.Errorf("plugin %q: %w", name, err)
	}
	return doc, nil
}

// ValidateSelection checks that every selected name is registered, before any
// composition work starts.
func (r *Registry) ValidateSelection(names []string) error {
	var unknown []string
	for _, n := range names {
		if _, ok := r.plugins[n]; !ok {
			unknown = append(unknown, n)
		}
	}
	if len(unknown) > 0 {
		return fmt.Errorf("unknown plugins %q: %w", unknown, ErrMissingOverlay)
	}
	return nil
}

// Validate loads every registered overlay and checks it against the ESLint
// fragment schema.
func (r *Registry) Validate() error {
	for _, name := range r.order {
		doc, err := r.Overlay(name)
		if err != nil {
			return err
		}
		res, err := ValidateDocument(doc)
		if err != nil {
			return fmt.Errorf("plugin %q: %w", name, err)
		}
		if !res.Valid {
			return fmt.Errorf("plugin %q overlay is invalid: %s", name, res.Issues[0].String())
		}
	}
	return nil
}

// embeddedOverlay reads eslint/plugins/<name>.json from the embedded files.
func embeddedOverlay(name string) OverlayProvider {
	return OverlayFunc(func() (jsondoc.Document, error) {
		p := path.Join("files", "eslint", "plugins", name+".json")
		data, err := filesFS.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMissingOverlay, err)
		}
		return jsondoc.Parse(data)
	})
}

// builtinPlugins is the table of plugins offered by the prompt, in the order
// they are listed.
var builtinPlugins = []Plugin{
	{Name: "babel", Default: true},
	{Name: "react"},
	{Name: "css-modules"},
	{Name: "lodash"},
	{Name: "sonarjs"},
	{Name: "import"},
	{Name: "promise"},
	{Name: "jsdoc"},
	{Name: "no-use-extend-native"},
}

// Builtin returns a registry holding the plugins shipped with the binary.
func Builtin() *Registry {
	r := NewRegistry()
	for _, p := range builtinPlugins {
		p.Overlay = embeddedOverlay(p.Name)
		// Names in builtinPlugins are unique.
		_ = r.Register(p)
	}
	return r
}
