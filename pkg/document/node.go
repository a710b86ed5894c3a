package document

import "strconv"

// Kind identifies which variant of the document tree a Node holds.
type Kind int

const (
	KindScalar Kind = iota
	KindSequence
	KindMapping
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Node is one of Scalar, Sequence or *Mapping.
type Node interface {
	Kind() Kind
}

// Short YAML tags used for scalars.
const (
	TagStr   = "!!str"
	TagInt   = "!!int"
	TagBool  = "!!bool"
	TagNull  = "!!null"
)

// Scalar is an opaque atom. Two scalars are equal when both tag and
// canonical value match.
type Scalar struct {
	Tag   string
	Value string
}

func (Scalar) Kind() Kind { return KindScalar }

// String returns a string scalar.
func String(s string) Scalar { return Scalar{Tag: TagStr, Value: s} }

// Int returns an integer scalar.
func Int(i int64) Scalar { return Scalar{Tag: TagInt, Value: strconv.FormatInt(i, 10)} }

// Bool returns a boolean scalar.
func Bool(b bool) Scalar { return Scalar{Tag: TagBool, Value: strconv.FormatBool(b)} }

// Null returns the null scalar.
func Null() Scalar { return Scalar{Tag: TagNull, Value: "null"} }

// Sequence is an ordered list of nodes.
type Sequence []Node

func (Sequence) Kind() Kind { return KindSequence }

// Equal reports deep equality of two nodes. Mapping equality ignores key
// order; sequence equality does not.
func Equal(a, b Node) bool {
	switch x := a.(type) {
	case Scalar:
		y, ok := b.(Scalar)
		return ok && x == y
	case Sequence:
		y, ok := b.(Sequence)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !Equal(x[i], y[i]) {
				return false
			}
		}
		return true
	case *Mapping:
		y, ok := b.(*Mapping)
		return ok && x.Equal(y)
	case nil:
		return b == nil
	}
	return false
}

// Clone returns a deep copy of n.
func Clone(n Node) Node {
	switch x := n.(type) {
	case Sequence:
		out := make(Sequence, len(x))
		for i, item := range x {
			out[i] = Clone(item)
		}
		return out
	case *Mapping:
		return x.Clone()
	default:
		return n
	}
}

// AsMapping returns n as a mapping if it is one.
func AsMapping(n Node) (*Mapping, bool) {
	m, ok := n.(*Mapping)
	return m, ok && m != nil
}
