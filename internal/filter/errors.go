package filter

import "fmt"

// InvalidFilterError reports a field or operator token the registry does not know.
type InvalidFilterError struct {
	Kind  string // "field" or "operator"
	Token string
}

func (e *InvalidFilterError) Error() string {
	return fmt.Sprintf("filter contains invalid %s: %q", e.Kind, e.Token)
}

// InvalidFilterValueError reports a value that could not be coerced to the field's type.
type InvalidFilterValueError struct {
	Field string
	Value string
	Want  string // e.g. "an integer"
	Err   error
}

func (e *InvalidFilterValueError) Error() string {
	want := e.Want
	if want == "" {
		want = "an integer"
	}
	return fmt.Sprintf("filter value %q for field %s is not %s", e.Value, e.Field, want)
}

func (e *InvalidFilterValueError) Unwrap() error { return e.Err }

// MultipleInequalityFieldsError is returned when two distinct fields carry a
// non-equality operator in the same filter list.
type MultipleInequalityFieldsError struct {
	First  string
	Second string
}

func (e *MultipleInequalityFieldsError) Error() string {
	return fmt.Sprintf("inequality filter is allowed on only one field (got %s and %s)", e.First, e.Second)
}
