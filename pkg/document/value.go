// Package document holds the decoded form of an NVUE configuration
// document: an immutable tree of mappings, sequences, and scalars with
// mapping key order preserved from the source text.
package document

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind discriminates the variants of Value.
type Kind int

const (
	KindNull Kind = iota
	KindMapping
	KindSequence
	KindString
	KindInt
	KindFloat
	KindBool
)

func (k Kind) String() string {
	s, ok := map[Kind]string{
		KindNull:     "null",
		KindMapping:  "mapping",
		KindSequence: "sequence",
		KindString:   "string",
		KindInt:      "int",
		KindFloat:    "float",
		KindBool:     "bool",
	}[k]
	if ok {
		return s
	}
	return "<unknown kind>"
}

// Value is one node of a configuration document. Exactly one of the
// payload fields is meaningful, selected by Kind.
type Value struct {
	Kind  Kind
	Map   Mapping // KindMapping
	Seq   []Value // KindSequence
	Str   string  // KindString
	Int   int64   // KindInt
	Float float64 // KindFloat
	Bool  bool    // KindBool
}

// Entry is one key/value pair of a Mapping.
type Entry struct {
	Key   string
	Value Value
}

// Mapping is an ordered list of key/value pairs. Iteration over the
// slice visits keys in document order.
type Mapping []Entry

// Get returns the value for key and whether it is present.
func (m Mapping) Get(key string) (Value, bool) {
	for _, e := range m {
		if e.Key == key {
			return e.Value, true
		}
	}
	return Value{}, false
}

// Has reports whether key is present.
func (m Mapping) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Keys returns the mapping keys in document order.
func (m Mapping) Keys() []string {
	keys := make([]string, len(m))
	for i, e := range m {
		keys[i] = e.Key
	}
	return keys
}

// IsScalar reports whether v is a string, number, or boolean.
func (v Value) IsScalar() bool {
	switch v.Kind {
	case KindString, KindInt, KindFloat, KindBool:
		return true
	default:
		return false
	}
}

// IsEmptyMapping reports whether v is a mapping with no entries.
func (v Value) IsEmptyMapping() bool {
	return v.Kind == KindMapping && len(v.Map) == 0
}

// Text returns the command token for a scalar value. Booleans render as
// "true"/"false", floats in the shortest form that round-trips. For
// non-scalar values it returns a bracketed placeholder; callers emitting
// commands must check IsScalar first.
func (v Value) Text() string {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindInt:
		return strconv.FormatInt(v.Int, 10)
	case KindFloat:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindNull:
		return ""
	}
	return fmt.Sprintf("<%s>", v.Kind)
}

// Null returns the null value.
func Null() Value { return Value{Kind: KindNull} }

// String returns a string scalar.
func String(s string) Value { return Value{Kind: KindString, Str: s} }

// Int returns an integer scalar.
func Int(i int64) Value { return Value{Kind: KindInt, Int: i} }

// Float returns a floating-point scalar.
func Float(f float64) Value { return Value{Kind: KindFloat, Float: f} }

// Bool returns a boolean scalar.
func Bool(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// Map returns a mapping value over the given entries, preserving order.
func Map(entries ...Entry) Value {
	if entries == nil {
		entries = Mapping{}
	}
	return Value{Kind: KindMapping, Map: entries}
}

// Seq returns a sequence value.
func Seq(items ...Value) Value {
	return Value{Kind: KindSequence, Seq: items}
}

// E builds a mapping entry; shorthand for literals in tests and callers.
func E(key string, v Value) Entry { return Entry{Key: key, Value: v} }

// GoString renders a compact debug form, useful in test failures.
func (v Value) GoString() string {
	var b strings.Builder
	writeDebug(&b, v)
	return b.String()
}

func writeDebug(b *strings.Builder, v Value) {
	switch v.Kind {
	case KindMapping:
		b.WriteByte('{')
		for i, e := range v.Map {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(e.Key)
			b.WriteString(": ")
			writeDebug(b, e.Value)
		}
		b.WriteByte('}')
	case KindSequence:
		b.WriteByte('[')
		for i, item := range v.Seq {
			if i > 0 {
				b.WriteString(", ")
			}
			writeDebug(b, item)
		}
		b.WriteByte(']')
	case KindNull:
		b.WriteString("null")
	case KindString:
		b.WriteString(strconv.Quote(v.Str))
	default:
		b.WriteString(v.Text())
	}
}
