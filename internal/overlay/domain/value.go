// Package domain holds the core model for values-overlay resolution:
// an ordered value tree, the deep-merge rules, and the result types
// shared by every adapter.
package domain

// Kind discriminates the three shapes a value node can take.
type Kind int

const (
	KindScalar   Kind = iota // strings, numbers, booleans, null
	KindSequence             // ordered list of values
	KindMapping              // ordered string-keyed mapping
)

// Value is one node in a values document: a scalar, a sequence, or a
// mapping. Mappings keep their entries in insertion order so resolved
// documents serialize reproducibly.
//
// Values are treated as immutable once built; merge operations return
// fresh nodes and may share untouched subtrees with their inputs.
type Value struct {
	Kind     Kind
	Scalar   any     // set when Kind == KindScalar
	Sequence []Value // set when Kind == KindSequence
	Mapping  []Entry // set when Kind == KindMapping
}

// Entry is one key/value pair in an ordered mapping.
type Entry struct {
	Key   string
	Value Value
}

// ScalarValue wraps a decoded scalar.
func ScalarValue(v any) Value {
	return Value{Kind: KindScalar, Scalar: v}
}

// SequenceValue wraps an ordered list of values.
func SequenceValue(items ...Value) Value {
	return Value{Kind: KindSequence, Sequence: items}
}

// MappingValue wraps ordered entries into a mapping node.
func MappingValue(entries ...Entry) Value {
	return Value{Kind: KindMapping, Mapping: entries}
}

// Get looks up a key in a mapping node. Returns false for missing keys
// and for non-mapping receivers.
func (v Value) Get(key string) (Value, bool) {
	if v.Kind != KindMapping {
		return Value{}, false
	}
	for _, e := range v.Mapping {
		if e.Key == key {
			return e.Value, true
		}
	}
	return Value{}, false
}

// Keys returns the mapping keys in stored order. Nil for non-mappings.
func (v Value) Keys() []string {
	if v.Kind != KindMapping {
		return nil
	}
	keys := make([]string, len(v.Mapping))
	for i, e := range v.Mapping {
		keys[i] = e.Key
	}
	return keys
}

// Equal reports structural equality, including mapping entry order.
func Equal(a, b Value) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindScalar:
		return a.Scalar == b.Scalar
	case KindSequence:
		if len(a.Sequence) != len(b.Sequence) {
			return false
		}
		for i := range a.Sequence {
			if !Equal(a.Sequence[i], b.Sequence[i]) {
				return false
			}
		}
		return true
	case KindMapping:
		if len(a.Mapping) != len(b.Mapping) {
			return false
		}
		for i := range a.Mapping {
			if a.Mapping[i].Key != b.Mapping[i].Key {
				return false
			}
			if !Equal(a.Mapping[i].Value, b.Mapping[i].Value) {
				return false
			}
		}
		return true
	}
	return false
}

// DeepMerge merges over onto base. When both nodes are mappings they
// merge key by key, recursively; every other combination resolves in
// favour of over. Sequences are replaced wholesale, never concatenated,
// and a mapping/scalar conflict is not an error - later wins.
//
// Result key order is first-occurrence order: base keys in base order,
// then keys only over defines, in over's order.
func DeepMerge(base, over Value) Value {
	if base.Kind != KindMapping || over.Kind != KindMapping {
		return over
	}

	merged := make([]Entry, len(base.Mapping), len(base.Mapping)+len(over.Mapping))
	index := make(map[string]int, len(base.Mapping))
	for i, e := range base.Mapping {
		merged[i] = e
		index[e.Key] = i
	}
	for _, e := range over.Mapping {
		if i, ok := index[e.Key]; ok {
			merged[i].Value = DeepMerge(merged[i].Value, e.Value)
			continue
		}
		index[e.Key] = len(merged)
		merged = append(merged, e)
	}
	return Value{Kind: KindMapping, Mapping: merged}
}
