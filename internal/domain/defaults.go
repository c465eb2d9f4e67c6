package domain

// FirstSet returns the value of the first non-nil pointer, or fallback.
// Import files use it to cascade item, category and file-wide defaults.
func FirstSet[T any](fallback T, ptrs ...*T) T {
	for _, p := range ptrs {
		if p != nil {
			return *p
		}
	}
	return fallback
}
