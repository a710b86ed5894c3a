// Package minimizer reduces a fully expanded style configuration to the
// overrides it needs on top of a base style.
package minimizer

import (
	"github.com/wonderfulspam/format-smith/pkg/document"
)

// Diff returns the entries of target that must be layered over base to
// reproduce it. Keys that only exist in base are never emitted.
//
// Nested mappings are compared key by key. A nested mapping whose diff is
// empty is dropped, including one that is absent from base, since missing
// sub-mappings default to empty. Any other pair of values is compared by deep
// equality and target's value is copied verbatim when they differ, so a shape
// mismatch always replaces the base value wholesale.
func Diff(target, base *document.Mapping) *document.Mapping {
	out := document.NewMapping()

	for _, e := range target.Entries() {
		baseValue, inBase := base.Get(e.Key)
		targetMap, targetIsMap := document.AsMapping(e.Value)

		if !inBase {
			if targetIsMap {
				if nested := Diff(targetMap, document.NewMapping()); nested.Len() > 0 {
					out.Set(e.Key, nested)
				}
				continue
			}
			out.Set(e.Key, document.Clone(e.Value))
			continue
		}

		if baseMap, baseIsMap := document.AsMapping(baseValue); targetIsMap && baseIsMap {
			if nested := Diff(targetMap, baseMap); nested.Len() > 0 {
				out.Set(e.Key, nested)
			}
			continue
		}

		if !document.Equal(e.Value, baseValue) {
			out.Set(e.Key, document.Clone(e.Value))
		}
	}

	return out
}
