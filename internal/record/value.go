// Package record defines the typed record family produced by classification:
// a closed JSON value model, three-state fields (absent / null / present),
// and one struct per GitLab payload shape.
package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// Value is the closed recursion domain for JSON payloads. Exactly four
// concrete kinds exist: Null, Scalar, Object, Array.
type Value interface {
	isValue()
}

// Null is JSON null.
type Null struct{}

// Scalar holds a JSON string, number, or boolean. Numbers are kept as
// json.Number so 64-bit identifiers survive intact.
type Scalar struct {
	Raw any
}

// Object is a JSON object with already-converted values.
type Object map[string]Value

// Array is a JSON array with already-converted elements.
type Array []Value

func (Null) isValue()   {}
func (Scalar) isValue() {}
func (Object) isValue() {}
func (Array) isValue()  {}

// FromJSON parses raw bytes into the Value model.
func FromJSON(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}
	return FromAny(raw), nil
}

// FromAny converts a decoded encoding/json value (map/slice/scalar/nil)
// into the Value model.
func FromAny(v any) Value {
	switch t := v.(type) {
	case nil:
		return Null{}
	case map[string]any:
		obj := make(Object, len(t))
		for k, e := range t {
			obj[k] = FromAny(e)
		}
		return obj
	case []any:
		arr := make(Array, len(t))
		for i, e := range t {
			arr[i] = FromAny(e)
		}
		return arr
	default:
		return Scalar{Raw: t}
	}
}

// String returns the scalar as a string if it is one.
func (s Scalar) String() (string, bool) {
	v, ok := s.Raw.(string)
	return v, ok
}

// Int64 returns the scalar as an int64 if it is an integral number.
func (s Scalar) Int64() (int64, bool) {
	switch n := s.Raw.(type) {
	case json.Number:
		v, err := n.Int64()
		return v, err == nil
	case float64:
		return int64(n), n == float64(int64(n))
	}
	return 0, false
}

// Float64 returns the scalar as a float64 if it is a number.
func (s Scalar) Float64() (float64, bool) {
	switch n := s.Raw.(type) {
	case json.Number:
		v, err := n.Float64()
		return v, err == nil
	case float64:
		return n, true
	}
	return 0, false
}

// Bool returns the scalar as a bool if it is one.
func (s Scalar) Bool() (bool, bool) {
	v, ok := s.Raw.(bool)
	return v, ok
}

// Keys returns the object's keys in sorted order.
func (o Object) Keys() []string {
	keys := make([]string, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Has reports whether the object contains every listed key.
func (o Object) Has(keys ...string) bool {
	for _, k := range keys {
		if _, ok := o[k]; !ok {
			return false
		}
	}
	return true
}
