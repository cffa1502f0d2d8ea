package feature

// Sentinel is the literal written to the output table for a feature that
// could not be computed. It is distinct from the empty string, which means
// the upstream source genuinely returned nothing.
const Sentinel = "Error"

// Field is a tagged optional: either a computed value or a failure marker.
// Extractors convert their own errors into failed fields at their boundary,
// so a failure never propagates past the feature it belongs to.
type Field[T any] struct {
	value T
	valid bool
}

// Ok wraps a successfully computed value.
func Ok[T any](v T) Field[T] {
	return Field[T]{value: v, valid: true}
}

// Fail returns the failure marker for T.
func Fail[T any]() Field[T] {
	return Field[T]{}
}

// Value returns the computed value and whether it is valid.
func (f Field[T]) Value() (T, bool) {
	return f.value, f.valid
}

// Failed reports whether the feature could not be computed.
func (f Field[T]) Failed() bool {
	return !f.valid
}
