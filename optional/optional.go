// Package optional provides a small type-safe Optional value for modeling data
// that may or may not be present, as a set of size zero or one. It exists so
// that "absent" is a distinct state rather than an empty string or nil that
// callers have to interpret.
package optional

import "fmt"

// Value represents a value of type T that may or may not be present.
// Use Some(value) to create a present Value, or None() for an absent one.
// The zero value of Value is absent.
type Value[T any] struct {
	value T
	isSet bool
}

// Some creates a Value containing the given value.
func Some[T any](value T) Value[T] {
	return Value[T]{value: value, isSet: true}
}

// None creates an absent Value.
func None[T any]() Value[T] {
	return Value[T]{}
}

// Get returns the value and a boolean indicating whether it is present.
// This is the safe way to extract a value.
func (o Value[T]) Get() (T, bool) {
	return o.value, o.isSet
}

// GetOrElse returns the value if present, or the provided default if absent.
func (o Value[T]) GetOrElse(defaultValue T) T {
	if o.isSet {
		return o.value
	}

	return defaultValue
}

// NonEmpty returns true if the Value contains a value.
func (o Value[T]) NonEmpty() bool {
	return o.isSet
}

// Empty returns true if the Value does not contain a value.
func (o Value[T]) Empty() bool {
	return !o.isSet
}

// Map transforms the value inside a Value using the provided function.
// Returns Some(f(value)) if present, None otherwise.
func Map[T, U any](o Value[T], f func(T) U) Value[U] {
	if o.isSet {
		return Some(f(o.value))
	}

	return None[U]()
}

// String returns "Some(value)" if present, or "None" if absent.
func (o Value[T]) String() string {
	if o.isSet {
		return fmt.Sprintf("Some(%v)", o.value)
	}

	return "None"
}
