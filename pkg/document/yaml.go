package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// documentStart is the marker yaml.v3 places between documents of a stream.
const documentStart = "---\n"

// MaxNodes bounds how many nodes a single document may expand to once its
// aliases are resolved.
const MaxNodes = 100000

// errTooLarge is returned when alias expansion exceeds MaxNodes.
var errTooLarge = fmt.Errorf("document expands to more than %d nodes", MaxNodes)

// Parse decodes every document in data. Each document must have a mapping
// at its root.
func Parse(data []byte) ([]*Mapping, error) {
	return ParseAll(bytes.NewReader(data))
}

// ParseAll decodes a YAML stream into its documents, in order.
func ParseAll(r io.Reader) ([]*Mapping, error) {
	dec := yaml.NewDecoder(r)

	var docs []*Mapping
	for i := 0; ; i++ {
		var root yaml.Node
		err := dec.Decode(&root)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &InputFormatError{Index: i, Err: err}
		}

		node, err := FromYAML(&root)
		if err != nil {
			return nil, &InputFormatError{Index: i, Err: err}
		}
		m, ok := AsMapping(node)
		if !ok {
			return nil, &InputFormatError{Index: i, Err: fmt.Errorf("root is a %s, not a mapping", node.Kind())}
		}
		m.source = root.Content[0]
		docs = append(docs, m)
	}

	return docs, nil
}

// ParseSingle decodes data that must hold exactly one mapping document.
func ParseSingle(data []byte) (*Mapping, error) {
	docs, err := Parse(data)
	if err != nil {
		return nil, err
	}
	if len(docs) != 1 {
		return nil, &InputFormatError{Index: NoIndex, Err: fmt.Errorf("expected exactly one document, found %d", len(docs))}
	}
	return docs[0], nil
}

// FromYAML converts a yaml.v3 node tree into a document Node. Aliases are
// expanded in place; a tree that expands to more than MaxNodes nodes is
// rejected.
func FromYAML(n *yaml.Node) (Node, error) {
	c := &converter{budget: MaxNodes}
	return c.convert(n)
}

// converter counts the nodes it produces so nested aliases cannot blow up.
type converter struct {
	budget int
}

func (c *converter) convert(n *yaml.Node) (Node, error) {
	if c.budget--; c.budget < 0 {
		return nil, errTooLarge
	}

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return Null(), nil
		}
		return c.convert(n.Content[0])
	case yaml.AliasNode:
		if n.Alias == nil {
			return nil, fmt.Errorf("line %d: dangling alias", n.Line)
		}
		return c.convert(n.Alias)
	case yaml.ScalarNode:
		return scalarFromYAML(n)
	case yaml.SequenceNode:
		seq := make(Sequence, 0, len(n.Content))
		for _, item := range n.Content {
			v, err := c.convert(item)
			if err != nil {
				return nil, err
			}
			seq = append(seq, v)
		}
		return seq, nil
	case yaml.MappingNode:
		m := NewMapping()
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, err := c.convert(n.Content[i])
			if err != nil {
				return nil, err
			}
			key, ok := k.(Scalar)
			if !ok {
				return nil, fmt.Errorf("line %d: mapping key is a %s, not a scalar", n.Content[i].Line, k.Kind())
			}
			if m.Has(key) {
				return nil, fmt.Errorf("line %d: duplicate key %q", n.Content[i].Line, key.Value)
			}
			v, err := c.convert(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			m.Set(key, v)
		}
		return m, nil
	default:
		return nil, fmt.Errorf("line %d: unsupported node kind %d", n.Line, n.Kind)
	}
}

// scalarFromYAML canonicalises bool, int and null spellings so equal values
// compare equal regardless of how they were written.
func scalarFromYAML(n *yaml.Node) (Scalar, error) {
	tag := n.ShortTag()
	switch tag {
	case TagNull:
		return Null(), nil
	case TagBool:
		var b bool
		if err := n.Decode(&b); err != nil {
			return Scalar{}, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return Bool(b), nil
	case TagInt:
		var i int64
		if err := n.Decode(&i); err != nil {
			// Out of int64 range; keep the literal.
			return Scalar{Tag: tag, Value: n.Value}, nil
		}
		return Int(i), nil
	default:
		return Scalar{Tag: tag, Value: n.Value}, nil
	}
}

// ToYAML converts a document Node into a yaml.v3 node tree.
func ToYAML(n Node) *yaml.Node {
	switch x := n.(type) {
	case Scalar:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: x.Tag, Value: x.Value}
	case Sequence:
		out := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range x {
			out.Content = append(out.Content, ToYAML(item))
		}
		return out
	case *Mapping:
		if x.source != nil {
			return x.source
		}
		out := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, e := range x.Entries() {
			out.Content = append(out.Content, ToYAML(e.Key), ToYAML(e.Value))
		}
		return out
	default:
		return ToYAML(Null())
	}
}

// Marshal serializes docs as a YAML stream. Documents returned unmodified by
// Parse keep their original scalar spelling. Documents are separated by
// "---" lines; the stream never starts with one.
func Marshal(docs ...*Mapping) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)

	for i, doc := range docs {
		if err := enc.Encode(ToYAML(doc)); err != nil {
			return nil, fmt.Errorf("encoding document %d: %w", i, err)
		}
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("closing encoder: %w", err)
	}

	return []byte(strings.TrimPrefix(buf.String(), documentStart)), nil
}

// Write serializes docs to w.
func Write(w io.Writer, docs ...*Mapping) error {
	data, err := Marshal(docs...)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// ScalarString returns the value of n when it is a scalar.
func ScalarString(n Node) (string, bool) {
	s, ok := n.(Scalar)
	if !ok {
		return "", false
	}
	return s.Value, true
}
