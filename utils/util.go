// Package utils holds small generic helpers shared across the pipeline.
package utils

// Filter returns the elements of items for which keep returns true,
// preserving order. The result is never nil.
func Filter[T any](items []T, keep func(T) bool) []T {
	filtered := make([]T, 0, len(items))
	for _, item := range items {
		if keep(item) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}
