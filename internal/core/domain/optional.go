package domain

import "encoding/json"

// Optional carries a JSON field while remembering whether the payload
// mentioned it at all. A field that is absent decodes to the zero Optional;
// a field that is present decodes with Set true, and an explicit null
// additionally records Null. Partial updates rely on this distinction to
// tell "leave unchanged" apart from "explicitly clear".
type Optional[T any] struct {
	Value T
	Set   bool
	Null  bool
}

// Some wraps a value as an explicitly-set Optional.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

// Cleared returns an explicitly-nulled Optional.
func Cleared[T any]() Optional[T] {
	return Optional[T]{Set: true, Null: true}
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Null = true
		var zero T
		o.Value = zero
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || o.Null {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}
