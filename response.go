package atlas

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"k8s.io/apimachinery/pkg/util/sets"
)

type Kind int

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindTime
	KindObject
	KindArray
)

var kindNames = [...]string{"null", "string", "number", "bool", "time", "object", "array"}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Value is one field of a response: a scalar, a date, a [Node] or an array.
// The zero Value is null.
type Value struct {
	kind Kind
	str  string
	num  json.Number
	b    bool
	t    time.Time
	node *Node
	arr  []Value
}

func (v Value) Kind() Kind   { return v.kind }
func (v Value) IsNull() bool { return v.kind == KindNull }

// Str returns the string, "" for other kinds.
func (v Value) Str() string { return v.str }

// Number returns the number as decoded, "" for other kinds.
func (v Value) Number() json.Number { return v.num }

func (v Value) Int() int64 {
	if v.kind != KindNumber {
		return 0
	}
	if n, err := v.num.Int64(); err == nil {
		return n
	}
	f, _ := v.num.Float64()
	return int64(math.Trunc(f))
}

func (v Value) Float() float64 {
	f, _ := v.num.Float64()
	return f
}

func (v Value) Bool() bool      { return v.b }
func (v Value) Time() time.Time { return v.t }

// Node returns the object, nil for other kinds.
func (v Value) Node() *Node { return v.node }

// Array returns the elements, nil for other kinds.
func (v Value) Array() []Value { return v.arr }

// Get looks up a field when v is an object; null otherwise.
//
// Usage:
//
//	tree.Get("output").Get("volume").Int()
func (v Value) Get(name string) Value {
	return v.node.Get(name)
}

// Any converts back to plain Go values: string, json.Number, bool,
// time.Time, map[string]any, []any or nil.
func (v Value) Any() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return v.num
	case KindBool:
		return v.b
	case KindTime:
		return v.t
	case KindObject:
		out := make(map[string]any, v.node.Len())
		for k, f := range v.node.fields {
			out[k] = f.Any()
		}
		return out
	case KindArray:
		out := make([]any, len(v.arr))
		for i, e := range v.arr {
			out[i] = e.Any()
		}
		return out
	}
	return nil
}

func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return v.num.String()
	case KindBool:
		return fmt.Sprint(v.b)
	case KindTime:
		return v.t.Format(time.RFC3339)
	case KindObject, KindArray:
		return fmt.Sprint(v.Any())
	}
	return "null"
}

// Node is a mapped JSON object, one field per key.
type Node struct {
	fields map[string]Value
}

// Get returns the field name, null when absent. Safe on a nil Node.
func (n *Node) Get(name string) Value {
	v, _ := n.Lookup(name)
	return v
}

func (n *Node) Lookup(name string) (Value, bool) {
	if n == nil {
		return Value{}, false
	}
	v, ok := n.fields[name]
	return v, ok
}

// Keys returns the field names, sorted.
func (n *Node) Keys() []string {
	if n == nil {
		return nil
	}
	return sets.List(sets.KeySet(n.fields))
}

func (n *Node) Len() int {
	if n == nil {
		return 0
	}
	return len(n.fields)
}

// ========================= MAPPER =========================

// Mapper turns decoded JSON into a [Value] tree.
type Mapper struct {
	// Called on every string field of an object. Nil disables date detection.
	DetectDate func(string) (time.Time, bool)
}

var defaultMapper = Mapper{DetectDate: DetectDate}

// Map converts v, as produced by encoding/json, with the default mapper.
func Map(v any) Value { return defaultMapper.Map(v) }

// MapNode converts a JSON object with the default mapper.
func MapNode(obj map[string]any) *Node { return defaultMapper.MapNode(obj) }

// MapJSON decodes data and maps it with the default mapper.
func MapJSON(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return Value{}, err
	}
	return Map(v), nil
}

// Map converts a top level value. Scalars are kept as they are, only object
// fields go through date detection.
func (m Mapper) Map(v any) Value {
	return m.element(v)
}

func (m Mapper) MapNode(obj map[string]any) *Node {
	node := &Node{fields: make(map[string]Value, len(obj))}
	for k, v := range obj {
		node.fields[k] = m.field(v)
	}
	return node
}

// field maps an object field, the only place strings may become dates.
func (m Mapper) field(v any) Value {
	if s, ok := v.(string); ok {
		if m.DetectDate != nil {
			if t, ok := m.DetectDate(s); ok {
				return Value{kind: KindTime, t: t}
			}
		}
		return Value{kind: KindString, str: s}
	}
	return m.element(v)
}

// element maps without touching strings: array items and top level values.
func (m Mapper) element(v any) Value {
	switch t := v.(type) {
	case nil:
		return Value{}
	case string:
		return Value{kind: KindString, str: t}
	case json.Number:
		return Value{kind: KindNumber, num: t}
	case float64:
		return Value{kind: KindNumber, num: json.Number(formatFloat(t))}
	case int:
		return Value{kind: KindNumber, num: json.Number(formatInteger(t))}
	case int64:
		return Value{kind: KindNumber, num: json.Number(formatInteger(t))}
	case bool:
		return Value{kind: KindBool, b: t}
	case time.Time:
		return Value{kind: KindTime, t: t}
	case map[string]any:
		return Value{kind: KindObject, node: m.MapNode(t)}
	case []any:
		arr := make([]Value, len(t))
		for i, e := range t {
			arr[i] = m.element(e)
		}
		return Value{kind: KindArray, arr: arr}
	}
	// Not produced by encoding/json
	return Value{kind: KindString, str: fmt.Sprint(v)}
}

func formatFloat(f float64) string {
	return massage(f)
}
