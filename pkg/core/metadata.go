package core

import "fmt"

// ValueKind discriminates metadata values. Only strings are date-parse candidates.
type ValueKind int

const (
	KindOther ValueKind = iota
	KindString
)

// Value is a single metadata value as stored in the document.
type Value struct {
	Kind ValueKind
	Text string
	Raw  any
}

// StringValue builds a string Value.
func StringValue(s string) Value {
	return Value{Kind: KindString, Text: s, Raw: s}
}

// OtherValue builds a non-string Value (numbers, booleans, lists, maps).
func OtherValue(v any) Value {
	return Value{Kind: KindOther, Raw: v}
}

// AsString returns the text and true only for string values.
func (v Value) AsString() (string, bool) {
	if v.Kind != KindString {
		return "", false
	}
	return v.Text, true
}

func (v Value) String() string {
	if v.Kind == KindString {
		return v.Text
	}
	return fmt.Sprintf("%v", v.Raw)
}

// Property is one key/value pair of a metadata block.
type Property struct {
	Key   string
	Value Value
}

// Metadata is the ordered key/value block at the head of a document.
// Order is the order in which keys were stored.
type Metadata []Property

// Get returns the value stored under the exact key.
func (m Metadata) Get(key string) (Value, bool) {
	for _, p := range m {
		if p.Key == key {
			return p.Value, true
		}
	}
	return Value{}, false
}

// Keys returns the keys in stored order.
func (m Metadata) Keys() []string {
	keys := make([]string, 0, len(m))
	for _, p := range m {
		keys = append(keys, p.Key)
	}
	return keys
}

// Map flattens the block into a map, losing order.
func (m Metadata) Map() map[string]any {
	out := make(map[string]any, len(m))
	for _, p := range m {
		out[p.Key] = p.Value.Raw
	}
	return out
}
