// Package yamlcodec translates YAML values documents to and from the
// domain value tree, preserving mapping key order in both directions.
package yamlcodec

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/nathantilsley/values-sentry/internal/overlay/domain"
)

// Codec implements ports.Codec on top of yaml.v3. Decoding goes through
// yaml.Node rather than map[string]any so key order survives.
type Codec struct{}

// New creates a new YAML codec.
func New() *Codec {
	return &Codec{}
}

// Decode parses data into a value tree. An empty document decodes to an
// empty mapping so it can participate in a chain as a no-op layer.
func (c *Codec) Decode(source string, data []byte) (domain.Value, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return domain.Value{}, domain.NewParseError(source, err)
	}
	if root.Kind == 0 || len(root.Content) == 0 {
		return domain.MappingValue(), nil
	}
	return fromNode(source, root.Content[0])
}

// Encode serializes a value tree with 2-space indentation. Output is
// deterministic: the same tree always yields the same bytes.
func (c *Codec) Encode(doc domain.Value) ([]byte, error) {
	node, err := toNode(doc)
	if err != nil {
		return nil, fmt.Errorf("building yaml node: %w", err)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return nil, fmt.Errorf("encoding document: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("closing encoder: %w", err)
	}
	return buf.Bytes(), nil
}

func fromNode(source string, n *yaml.Node) (domain.Value, error) {
	switch n.Kind {
	case yaml.AliasNode:
		return fromNode(source, n.Alias)

	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return domain.Value{}, domain.NewParseError(source, err)
		}
		return domain.ScalarValue(v), nil

	case yaml.SequenceNode:
		items := make([]domain.Value, 0, len(n.Content))
		for _, child := range n.Content {
			item, err := fromNode(source, child)
			if err != nil {
				return domain.Value{}, err
			}
			items = append(items, item)
		}
		return domain.SequenceValue(items...), nil

	case yaml.MappingNode:
		entries := make([]domain.Entry, 0, len(n.Content)/2)
		index := make(map[string]int, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			keyNode, valNode := n.Content[i], n.Content[i+1]
			if keyNode.Kind != yaml.ScalarNode {
				return domain.Value{}, domain.NewParseError(source,
					fmt.Errorf("line %d: non-scalar mapping key", keyNode.Line))
			}
			val, err := fromNode(source, valNode)
			if err != nil {
				return domain.Value{}, err
			}
			// A duplicate key within one document overwrites in place,
			// keeping the first occurrence's position.
			if idx, ok := index[keyNode.Value]; ok {
				entries[idx].Value = val
				continue
			}
			index[keyNode.Value] = len(entries)
			entries = append(entries, domain.Entry{Key: keyNode.Value, Value: val})
		}
		return domain.MappingValue(entries...), nil
	}

	return domain.Value{}, domain.NewParseError(source, fmt.Errorf("unsupported yaml node kind %d", n.Kind))
}

func toNode(v domain.Value) (*yaml.Node, error) {
	switch v.Kind {
	case domain.KindScalar:
		n := &yaml.Node{}
		if err := n.Encode(v.Scalar); err != nil {
			return nil, err
		}
		return n, nil

	case domain.KindSequence:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range v.Sequence {
			child, err := toNode(item)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, child)
		}
		return n, nil

	case domain.KindMapping:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, e := range v.Mapping {
			keyNode := &yaml.Node{}
			if err := keyNode.Encode(e.Key); err != nil {
				return nil, err
			}
			valNode, err := toNode(e.Value)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, keyNode, valNode)
		}
		return n, nil
	}

	return nil, fmt.Errorf("unsupported value kind %d", v.Kind)
}
