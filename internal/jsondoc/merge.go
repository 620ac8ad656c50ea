package jsondoc

import (
	"fmt"

	"dario.cat/mergo"
)

// Document is a decoded JSON object.
type Document = map[string]any

// ArrayPolicy decides what happens when both sides of a merge hold an array
// under the same key.
type ArrayPolicy int

const (
	// Concat keeps the base elements and appends the overlay elements.
	// Plugin overlays are folded with this policy so that list-valued
	// settings such as "plugins" and "extends" accumulate.
	Concat ArrayPolicy = iota

	// Replace lets the overlay array win outright. Used when extending a file
	// that already exists so that re-running with the same answers does not
	// duplicate rule arguments.
	Replace
)

// String returns the policy name.
func (p ArrayPolicy) String() string {
	switch p {
	case Concat:
		return "concat"
	case Replace:
		return "replace"
	default:
		return "unknown"
	}
}

// Merge deep-merges overlay onto base and returns a new document. On a key
// collision the overlay value wins, except that two objects are merged
// recursively and two arrays are combined according to policy. Neither input
// is modified and the result shares no maps or slices with them.
func Merge(base, overlay Document, policy ArrayPolicy) (Document, error) {
	out := Clone(base)
	if out == nil {
		out = make(Document, len(overlay))
	}
	src := Clone(overlay)
	if len(src) == 0 {
		return out, nil
	}
	dropShapeConflicts(out, src)

	opts := []func(*mergo.Config){mergo.WithOverride}
	if policy == Concat {
		opts = append(opts, mergo.WithAppendSlice)
	}
	if err := mergo.Merge(&out, src, opts...); err != nil {
		return nil, fmt.Errorf("merging documents (%s): %w", policy, err)
	}
	return out, nil
}

// dropShapeConflicts removes base values that the overlay replaces with a
// container of a different shape (object vs array vs scalar). mergo only
// merges like with like; with those entries gone the overlay value is
// copied in as is.
func dropShapeConflicts(base, overlay Document) {
	for k, ov := range overlay {
		bv, ok := base[k]
		if !ok {
			continue
		}
		switch o := ov.(type) {
		case map[string]any:
			if bm, isMap := bv.(map[string]any); isMap {
				dropShapeConflicts(bm, o)
			} else {
				delete(base, k)
			}
		case []any:
			if _, isSlice := bv.([]any); !isSlice {
				delete(base, k)
			}
		}
	}
}

// Clone returns a deep copy of doc.
func Clone(doc Document) Document {
	if doc == nil {
		return nil
	}
	return cloneValue(doc).(map[string]any)
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(val))
		for k, e := range val {
			m[k] = cloneValue(e)
		}
		return m
	case []any:
		a := make([]any, len(val))
		for i, e := range val {
			a[i] = cloneValue(e)
		}
		return a
	default:
		return val
	}
}
