package models

// Attr is a best-effort attribute value. When Err is set, Value holds the
// zero value and callers should treat the attribute as unavailable.
type Attr[T any] struct {
	Value T
	Err   error
}

// Some wraps a successfully read value.
func Some[T any](v T) Attr[T] {
	return Attr[T]{Value: v}
}

// Fail records why an attribute could not be read.
func Fail[T any](err error) Attr[T] {
	return Attr[T]{Err: err}
}

// OK reports whether the value was read successfully
func (a Attr[T]) OK() bool {
	return a.Err == nil
}

// Or returns the value, or fallback if the read failed.
func (a Attr[T]) Or(fallback T) T {
	if a.Err != nil {
		return fallback
	}
	return a.Value
}

// Get returns the value, or the zero value if the read failed.
func (a Attr[T]) Get() T {
	var zero T
	return a.Or(zero)
}

// From builds an Attr from a value/error pair.
func From[T any](v T, err error) Attr[T] {
	if err != nil {
		return Fail[T](err)
	}
	return Some(v)
}
