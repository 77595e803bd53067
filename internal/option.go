package internal

// Option holds at most one pending value, consumed by Take.
type Option[T any] struct {
	value T
	ok    bool
}

// Set the pending value, replacing any previous one.
func (o *Option[T]) Set(value T) {
	o.value = value
	o.ok = true
}

// Take returns the pending value, if any, and clears it.
func (o *Option[T]) Take() (value T, ok bool) {
	value, ok = o.value, o.ok
	var zero T
	o.value = zero
	o.ok = false
	return
}

// Pending reports whether a value is waiting.
func (o *Option[T]) Pending() bool {
	return o.ok
}
