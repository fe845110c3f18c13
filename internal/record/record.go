package record

import (
	"errors"
	"fmt"
)

// Record is one classified payload shape. BaseType is the variant tag,
// e.g. "Project" or "Commit".
type Record interface {
	BaseType() string
}

// List wraps a homogeneous array of records. Base is the singular element
// tag, Plural the collection tag ("User" / "Users"). An empty array has no
// base and reports the EmptyList sentinel tag.
type List struct {
	Base   string
	Plural string
	Items  []Record
}

// EmptyList is the base type reported for an empty JSON array.
const EmptyList = "EmptyList"

func (l *List) BaseType() string {
	if l.Base == "" {
		return EmptyList
	}
	return l.Plural
}

// Unknown holds a payload that matched no variant, losslessly. Scalars and
// unmatched objects both land here.
type Unknown struct {
	Raw Value
}

func (u *Unknown) BaseType() string { return "Unknown" }

// Unrecognized is always true for Unknown records.
func (u *Unknown) Unrecognized() bool { return true }

// ErrWrongKind marks a declared nested field whose value had the wrong
// containing kind (e.g. a string where the schema expects an object).
var ErrWrongKind = errors.New("unexpected JSON kind")

// FieldError identifies the variant and field on a schema mismatch with the
// upstream API. It is surfaced, never swallowed.
type FieldError struct {
	Base  string
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s.%s: %v", e.Base, e.Field, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }
