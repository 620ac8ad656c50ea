package manifest

import (
	"sort"

	"github.com/stylegen-labs/stylegen/internal/jsondoc"
)

// Fragment is the set of package.json entries contributed by a run.
type Fragment struct {
	devDependencies map[string]string
	scripts         map[string]string
}

// Empty returns a fragment with no entries.
func Empty() Fragment {
	return Fragment{}
}

// WithDevDependencies returns a copy of f with every entry of deps set.
func (f Fragment) WithDevDependencies(deps map[string]string) Fragment {
	out := f.clone()
	for name, c := range deps {
		out.devDependencies[name] = c
	}
	return out
}

// WithScript returns a copy of f with the script name set to command.
func (f Fragment) WithScript(name, command string) Fragment {
	out := f.clone()
	out.scripts[name] = command
	return out
}

// DevDependencies returns a copy of the devDependencies map.
func (f Fragment) DevDependencies() map[string]string { return copyMap(f.devDependencies) }

// ScriptNames returns the script names in sorted order.
func (f Fragment) ScriptNames() []string {
	return sortedKeys(f.scripts)
}

// DevDependencyNames returns the devDependency names in sorted order.
func (f Fragment) DevDependencyNames() []string {
	return sortedKeys(f.devDependencies)
}

// Document converts the fragment to the package.json shape. The three
// sections are always present, even when empty.
func (f Fragment) Document() jsondoc.Document {
	return jsondoc.Document{
		"scripts":         toAny(f.scripts),
		"devDependencies": toAny(f.devDependencies),
		"dependencies":    map[string]any{},
	}
}

func (f Fragment) clone() Fragment {
	return Fragment{
		devDependencies: copyMap(f.devDependencies),
		scripts:         copyMap(f.scripts),
	}
}

func copyMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func toAny(m map[string]string) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
