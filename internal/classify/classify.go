package classify

import (
	"glmirror/internal/record"
)

// Classify resolves a JSON value to exactly one record. It is total:
// unmatched or scalar payloads degrade to record.Unknown, never an error.
// Decoder failures (schema mismatches on declared nested fields) are the
// one surfaced error, since they indicate an upstream API change.
func Classify(v record.Value) (record.Record, error) {
	switch t := v.(type) {
	case record.Object:
		return classifyObject(t)
	case record.Array:
		return classifyArray(t)
	default:
		// Bare scalars and nulls have no variant of their own.
		return &record.Unknown{Raw: v}, nil
	}
}

// Bytes parses raw JSON and classifies it in one step.
func Bytes(data []byte) (record.Record, error) {
	v, err := record.FromJSON(data)
	if err != nil {
		return nil, err
	}
	return Classify(v)
}

func classifyObject(o record.Object) (record.Record, error) {
	rule := match(o)
	if rule == nil {
		return &record.Unknown{Raw: o}, nil
	}
	return rule.Decode(o)
}

// classifyArray classifies the first non-null element and decodes the whole
// array with that variant. Elements are not re-matched individually; a
// homogeneous array is assumed (inherited trade-off, kept deliberately).
func classifyArray(a record.Array) (record.Record, error) {
	var first record.Object
	for _, e := range a {
		if o, ok := e.(record.Object); ok {
			first = o
			break
		}
	}
	if first == nil {
		// Empty, or nothing but nulls and scalars: report the empty
		// list sentinel rather than guessing an element shape.
		return &record.List{}, nil
	}

	rule := match(first)
	if rule == nil {
		items := make([]record.Record, 0, len(a))
		for _, e := range a {
			items = append(items, &record.Unknown{Raw: e})
		}
		return &record.List{Base: "Unknown", Plural: "Unknowns", Items: items}, nil
	}

	items := make([]record.Record, 0, len(a))
	for _, e := range a {
		o, ok := e.(record.Object)
		if !ok {
			items = append(items, &record.Unknown{Raw: e})
			continue
		}
		rec, err := rule.Decode(o)
		if err != nil {
			return nil, err
		}
		items = append(items, rec)
	}
	return &record.List{Base: rule.Base, Plural: rule.Plural, Items: items}, nil
}
