// Package collection holds small generic helpers used to narrow and order
// in-memory result sets before they are rendered.
package collection

import "slices"

// FilterBy returns the items for which keep reports true, preserving order.
// The input slice is never modified.
func FilterBy[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

// SortBy returns a stably sorted copy of items.
func SortBy[T any](items []T, less func(a, b T) bool) []T {
	out := slices.Clone(items)
	slices.SortStableFunc(out, func(a, b T) int {
		switch {
		case less(a, b):
			return -1
		case less(b, a):
			return 1
		default:
			return 0
		}
	})
	return out
}

// Descending flips a less function.
func Descending[T any](less func(a, b T) bool) func(a, b T) bool {
	return func(a, b T) bool { return less(b, a) }
}
