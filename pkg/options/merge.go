// Package options implements the configuration tree and deep-merge engine
// used to combine per-chart-type default options with caller overrides.
//
// Trees are nested string-keyed maps, shaped exactly like the external
// charting library's options object. Merging never mutates its inputs: the
// defaults returned by chart.DefaultsFor stay reusable across builds.
//
// # Explicit nulls
//
// An override key holding an explicit nil is not the same as an absent key:
// the nil survives the merge and occupies the key in the output, letting a
// caller suppress a default (for example, removing a line chart's default
// fill color). This asymmetry from delete-key semantics is deliberate and
// controlled by [WithDroppedNulls] for callers that want plain removal
// instead.
package options

import (
	"github.com/tiendc/go-deepcopy"
)

// Tree is a nested configuration tree.
type Tree map[string]any

// Clone returns a deep copy of the tree. The copy shares no maps or slices
// with the original.
func Clone(t Tree) Tree {
	if t == nil {
		return nil
	}
	var out Tree
	if err := deepcopy.Copy(&out, t); err != nil {
		// The copier only fails on values a Tree should never hold
		// (channels, functions). Fall back to a shallow per-key copy.
		out = make(Tree, len(t))
		for k, v := range t {
			out[k] = v
		}
	}
	return out
}

// MergeOption configures merge behavior.
type MergeOption func(*merger)

type merger struct {
	dropNulls bool
}

// WithDroppedNulls makes explicit nil overrides delete their key from the
// output instead of occupying it with a null value.
func WithDroppedNulls() MergeOption {
	return func(m *merger) { m.dropNulls = true }
}

// Merge deep-merges overrides onto defaults and returns a new tree.
//
// For every key in overrides: when both sides hold maps, the merge recurses;
// otherwise the override value replaces the default wholesale. Arrays are
// never merged element-wise. Neither input is modified, and no part of either
// input is aliased by the result.
func Merge(defaults, overrides Tree, opts ...MergeOption) Tree {
	m := merger{}
	for _, opt := range opts {
		opt(&m)
	}
	return m.merge(defaults, overrides)
}

func (m *merger) merge(defaults, overrides Tree) Tree {
	out := make(Tree, len(defaults)+len(overrides))
	for k, v := range defaults {
		out[k] = cloneValue(v)
	}

	for k, v := range overrides {
		if v == nil {
			if m.dropNulls {
				delete(out, k)
			} else {
				out[k] = nil
			}
			continue
		}

		ov, oOK := asTree(v)
		dv, dOK := asTree(out[k])
		if oOK && dOK {
			out[k] = m.merge(dv, ov)
			continue
		}
		out[k] = cloneValue(v)
	}

	return out
}

// asTree normalizes both Tree and plain map[string]any values (the shape
// produced by encoding/json) to a Tree.
func asTree(v any) (Tree, bool) {
	switch t := v.(type) {
	case Tree:
		return t, true
	case map[string]any:
		return Tree(t), true
	default:
		return nil, false
	}
}

// cloneValue deep-copies a single tree value.
func cloneValue(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case Tree:
		return Clone(t)
	case map[string]any:
		return map[string]any(Clone(Tree(t)))
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	case []string:
		out := make([]string, len(t))
		copy(out, t)
		return out
	case []float64:
		out := make([]float64, len(t))
		copy(out, t)
		return out
	default:
		// Remaining values are scalars and immutable.
		return v
	}
}
