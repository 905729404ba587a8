package document

import (
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
)

// Parse decodes YAML (or JSON, which YAML subsumes) into a Value tree.
// Mapping key order follows the source text. Empty or whitespace-only
// input yields the null value rather than an error.
func Parse(data []byte) (Value, error) {
	if strings.TrimSpace(string(data)) == "" {
		return Null(), nil
	}

	var raw any
	if err := yaml.UnmarshalWithOptions(data, &raw, yaml.UseOrderedMap()); err != nil {
		return Null(), fmt.Errorf("decode document: %w", err)
	}
	return fromRaw(raw), nil
}

// fromRaw lifts the decoder's dynamic representation into the tagged
// Value form. Unrecognized scalar types degrade to their string form.
func fromRaw(raw any) Value {
	switch t := raw.(type) {
	case nil:
		return Null()
	case yaml.MapSlice:
		m := make(Mapping, 0, len(t))
		for _, item := range t {
			m = append(m, Entry{
				Key:   scalarKey(item.Key),
				Value: fromRaw(item.Value),
			})
		}
		return Value{Kind: KindMapping, Map: m}
	case []any:
		seq := make([]Value, 0, len(t))
		for _, item := range t {
			seq = append(seq, fromRaw(item))
		}
		return Value{Kind: KindSequence, Seq: seq}
	case string:
		return String(t)
	case bool:
		return Bool(t)
	case int:
		return Int(int64(t))
	case int64:
		return Int(t)
	case uint64:
		return Int(int64(t))
	case float64:
		return Float(t)
	default:
		return String(fmt.Sprint(t))
	}
}

// scalarKey renders a mapping key as a string token. YAML allows
// non-string keys; commands are token strings, so everything flattens.
func scalarKey(key any) string {
	if s, ok := key.(string); ok {
		return s
	}
	return fmt.Sprint(key)
}
