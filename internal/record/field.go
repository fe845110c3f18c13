package record

// State distinguishes a field that the payload omitted, a field that was
// explicitly null, and a field that carried a value.
type State uint8

const (
	StateAbsent State = iota
	StateNull
	StatePresent
)

func (s State) String() string {
	switch s {
	case StateNull:
		return "null"
	case StatePresent:
		return "present"
	default:
		return "absent"
	}
}

// Field is a three-state scalar field. The zero Field is absent.
type Field[T any] struct {
	state State
	val   T
}

// Present wraps a value in a present Field.
func Present[T any](v T) Field[T] {
	return Field[T]{state: StatePresent, val: v}
}

// NullField returns a Field that was explicitly null in the payload.
func NullField[T any]() Field[T] {
	return Field[T]{state: StateNull}
}

// State returns the field's state.
func (f Field[T]) State() State { return f.state }

// IsAbsent reports whether the payload omitted the field.
func (f Field[T]) IsAbsent() bool { return f.state == StateAbsent }

// IsNull reports whether the payload carried an explicit null.
func (f Field[T]) IsNull() bool { return f.state == StateNull }

// Get returns the value and whether the field is present.
func (f Field[T]) Get() (T, bool) {
	return f.val, f.state == StatePresent
}

// Or returns the value if present, otherwise def.
func (f Field[T]) Or(def T) T {
	if f.state == StatePresent {
		return f.val
	}
	return def
}

// Field extractors. Missing key → absent; JSON null → null; matching scalar
// kind → present. A present value of the wrong scalar kind degrades to
// absent: undeclared structure never aborts classification.

func strField(o Object, key string) Field[string] {
	v, ok := o[key]
	if !ok {
		return Field[string]{}
	}
	switch t := v.(type) {
	case Null:
		return NullField[string]()
	case Scalar:
		if s, ok := t.String(); ok {
			return Present(s)
		}
	}
	return Field[string]{}
}

func intField(o Object, key string) Field[int64] {
	v, ok := o[key]
	if !ok {
		return Field[int64]{}
	}
	switch t := v.(type) {
	case Null:
		return NullField[int64]()
	case Scalar:
		if n, ok := t.Int64(); ok {
			return Present(n)
		}
	}
	return Field[int64]{}
}

func floatField(o Object, key string) Field[float64] {
	v, ok := o[key]
	if !ok {
		return Field[float64]{}
	}
	switch t := v.(type) {
	case Null:
		return NullField[float64]()
	case Scalar:
		if n, ok := t.Float64(); ok {
			return Present(n)
		}
	}
	return Field[float64]{}
}

func boolField(o Object, key string) Field[bool] {
	v, ok := o[key]
	if !ok {
		return Field[bool]{}
	}
	switch t := v.(type) {
	case Null:
		return NullField[bool]()
	case Scalar:
		if b, ok := t.Bool(); ok {
			return Present(b)
		}
	}
	return Field[bool]{}
}

// strListField extracts an array of strings (e.g. parent_ids, tag_list,
// scopes). Non-string elements are skipped.
func strListField(o Object, key string) Field[[]string] {
	v, ok := o[key]
	if !ok {
		return Field[[]string]{}
	}
	switch t := v.(type) {
	case Null:
		return NullField[[]string]()
	case Array:
		out := make([]string, 0, len(t))
		for _, e := range t {
			if s, ok := e.(Scalar); ok {
				if str, ok := s.String(); ok {
					out = append(out, str)
				}
			}
		}
		return Present(out)
	}
	return Field[[]string]{}
}

// strMapField extracts a string→string object (e.g. commit trailers).
func strMapField(o Object, key string) Field[map[string]string] {
	v, ok := o[key]
	if !ok {
		return Field[map[string]string]{}
	}
	switch t := v.(type) {
	case Null:
		return NullField[map[string]string]()
	case Object:
		out := make(map[string]string, len(t))
		for k, e := range t {
			if s, ok := e.(Scalar); ok {
				if str, ok := s.String(); ok {
					out[k] = str
				}
			}
		}
		return Present(out)
	}
	return Field[map[string]string]{}
}

// nestedObject returns the object under key for recursive decoding.
// Absent and null both yield (nil, nil); a present non-object value is a
// schema mismatch and yields a FieldError.
func nestedObject(o Object, base, key string) (Object, error) {
	v, ok := o[key]
	if !ok {
		return nil, nil
	}
	switch t := v.(type) {
	case Null:
		return nil, nil
	case Object:
		return t, nil
	default:
		return nil, &FieldError{Base: base, Field: key, Err: ErrWrongKind}
	}
}

// nestedArray returns the array under key for recursive decoding, with the
// same absent/null/mismatch behavior as nestedObject.
func nestedArray(o Object, base, key string) (Array, error) {
	v, ok := o[key]
	if !ok {
		return nil, nil
	}
	switch t := v.(type) {
	case Null:
		return nil, nil
	case Array:
		return t, nil
	default:
		return nil, &FieldError{Base: base, Field: key, Err: ErrWrongKind}
	}
}
