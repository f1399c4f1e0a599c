package domain

// Optional is a tri-state field wrapper used by patch structs so that
// "not supplied" is distinguishable from "explicitly cleared" and from a
// concrete value.
type Optional[T any] struct {
	set   bool
	null  bool
	value T
}

// Set wraps a concrete value.
func Set[T any](v T) Optional[T] {
	return Optional[T]{set: true, value: v}
}

// Null marks the field as explicitly cleared.
func Null[T any]() Optional[T] {
	return Optional[T]{set: true, null: true}
}

// IsSet reports whether the field was supplied at all.
func (o Optional[T]) IsSet() bool { return o.set }

// IsNull reports whether the field was supplied as an explicit clear.
func (o Optional[T]) IsNull() bool { return o.set && o.null }

// Value returns the wrapped value and whether a concrete value is present.
func (o Optional[T]) Value() (T, bool) {
	if !o.set || o.null {
		var zero T
		return zero, false
	}
	return o.value, true
}

// applyPtr patches a nullable *V destination from an Optional[V].
func applyPtr[V any](dst **V, o Optional[V]) {
	if !o.IsSet() {
		return
	}
	if o.IsNull() {
		*dst = nil
		return
	}
	v, _ := o.Value()
	*dst = &v
}

// applyValue patches a required scalar destination from an Optional[V].
// An explicit null is ignored: required fields cannot be cleared.
func applyValue[V any](dst *V, o Optional[V]) {
	if v, ok := o.Value(); ok {
		*dst = v
	}
}
