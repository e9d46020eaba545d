package models

import "encoding/json"

// Field is one member of a partial update. Set reports whether the caller
// supplied the field at all; a supplied JSON null sets Value to its zero value.
type Field[T any] struct {
	Set   bool
	Value T
}

// Set returns a Field carrying v.
func Set[T any](v T) Field[T] {
	return Field[T]{Set: true, Value: v}
}

// UnmarshalJSON marks the field as present and decodes its value.
func (f *Field[T]) UnmarshalJSON(b []byte) error {
	f.Set = true
	return json.Unmarshal(b, &f.Value)
}

// ApplyTo copies the value into dst when the field was supplied.
func (f Field[T]) ApplyTo(dst *T) {
	if f.Set {
		*dst = f.Value
	}
}
