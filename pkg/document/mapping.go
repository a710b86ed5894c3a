package document

import "gopkg.in/yaml.v3"

// Entry is a single key/value pair of a Mapping.
type Entry struct {
	Key   Scalar
	Value Node
}

// Mapping is an insertion-ordered map from scalar keys to nodes. The zero
// value is not usable; create one with NewMapping.
//
// A document root returned by Parse remembers the YAML it was decoded from
// and is written back in that exact spelling until Set or Delete changes it.
// Clones and mappings built in code have no source.
type Mapping struct {
	entries []Entry
	index   map[Scalar]int
	source  *yaml.Node
}

// NewMapping creates an empty mapping.
func NewMapping() *Mapping {
	return &Mapping{index: make(map[Scalar]int)}
}

func (*Mapping) Kind() Kind { return KindMapping }

// Len returns the number of own keys. Nested mappings are not counted.
func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}

// Get returns the value stored under key.
func (m *Mapping) Get(key Scalar) (Node, bool) {
	if m == nil {
		return nil, false
	}
	i, ok := m.index[key]
	if !ok {
		return nil, false
	}
	return m.entries[i].Value, true
}

// Lookup returns the value stored under a string key.
func (m *Mapping) Lookup(key string) (Node, bool) {
	return m.Get(String(key))
}

// Has reports whether key is present.
func (m *Mapping) Has(key Scalar) bool {
	_, ok := m.Get(key)
	return ok
}

// Set stores value under key. An existing key keeps its position.
func (m *Mapping) Set(key Scalar, value Node) {
	m.source = nil
	if i, ok := m.index[key]; ok {
		m.entries[i].Value = value
		return
	}
	m.index[key] = len(m.entries)
	m.entries = append(m.entries, Entry{Key: key, Value: value})
}

// SetString is Set with a string key.
func (m *Mapping) SetString(key string, value Node) {
	m.Set(String(key), value)
}

// Delete removes key and reports whether it was present.
func (m *Mapping) Delete(key Scalar) bool {
	i, ok := m.index[key]
	if !ok {
		return false
	}
	m.source = nil
	m.entries = append(m.entries[:i], m.entries[i+1:]...)
	delete(m.index, key)
	for j := i; j < len(m.entries); j++ {
		m.index[m.entries[j].Key] = j
	}
	return true
}

// Entries returns the entries in insertion order. The returned slice is a
// copy; the values are shared.
func (m *Mapping) Entries() []Entry {
	if m == nil {
		return nil
	}
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

// Keys returns the keys in insertion order.
func (m *Mapping) Keys() []Scalar {
	if m == nil {
		return nil
	}
	keys := make([]Scalar, len(m.entries))
	for i, e := range m.entries {
		keys[i] = e.Key
	}
	return keys
}

// Clone returns a deep copy of m.
func (m *Mapping) Clone() *Mapping {
	out := NewMapping()
	if m == nil {
		return out
	}
	for _, e := range m.entries {
		out.Set(e.Key, Clone(e.Value))
	}
	return out
}

// Without returns a shallow copy of m with the given keys removed.
func (m *Mapping) Without(keys ...Scalar) *Mapping {
	out := NewMapping()
	if m == nil {
		return out
	}
	skip := make(map[Scalar]bool, len(keys))
	for _, k := range keys {
		skip[k] = true
	}
	for _, e := range m.entries {
		if !skip[e.Key] {
			out.Set(e.Key, e.Value)
		}
	}
	return out
}

// Equal reports whether both mappings hold the same keys with deeply equal
// values, regardless of order.
func (m *Mapping) Equal(o *Mapping) bool {
	if m.Len() != o.Len() {
		return false
	}
	if m == nil || o == nil {
		return true
	}
	for _, e := range m.entries {
		v, ok := o.Get(e.Key)
		if !ok || !Equal(e.Value, v) {
			return false
		}
	}
	return true
}
