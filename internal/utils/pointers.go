package utils

// Ptr returns a pointer to a copy of v, for optional request fields
func Ptr[T any](v T) *T {
	return &v
}

// Value dereferences v, or returns the zero value when v is nil
func Value[T any](v *T) T {
	if v == nil {
		var zero T
		return zero
	}
	return *v
}
