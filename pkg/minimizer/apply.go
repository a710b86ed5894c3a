package minimizer

import (
	"github.com/wonderfulspam/format-smith/pkg/document"
)

// Apply layers override over base and returns the merged configuration.
// Mappings present on both sides are merged recursively; any other override
// value replaces the base value. Neither argument is modified.
func Apply(base, override *document.Mapping) *document.Mapping {
	out := base.Clone()

	for _, e := range override.Entries() {
		overrideMap, overrideIsMap := document.AsMapping(e.Value)
		current, _ := out.Get(e.Key)
		if currentMap, ok := document.AsMapping(current); ok && overrideIsMap {
			out.Set(e.Key, Apply(currentMap, overrideMap))
			continue
		}
		out.Set(e.Key, document.Clone(e.Value))
	}

	return out
}

// Expand reconstructs the full configuration an override document describes
// on top of base. The BasedOnStyle key itself is not part of the result.
func Expand(override, base *document.Mapping) *document.Mapping {
	return Apply(base, override.Without(basedOnStyle))
}

// BaseStyle returns the BasedOnStyle value of an override document.
func BaseStyle(override *document.Mapping) (string, bool) {
	v, ok := override.Get(basedOnStyle)
	if !ok {
		return "", false
	}
	return document.ScalarString(v)
}
