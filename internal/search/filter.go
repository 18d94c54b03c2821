package search

import "strings"

// Field extracts a searchable string from an item. Returning nil means
// the item has no value for it and the field is skipped.
type Field[T any] func(T) *string

// Filter keeps the items where any field contains query, ignoring case.
// A blank query returns items as they are.
func Filter[T any](items []T, query string, fields ...Field[T]) []T {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return items
	}

	filtered := make([]T, 0, len(items))
	for _, item := range items {
		if matches(item, q, fields) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

func matches[T any](item T, q string, fields []Field[T]) bool {
	for _, field := range fields {
		v := field(item)
		if v == nil {
			continue
		}
		if strings.Contains(strings.ToLower(*v), q) {
			return true
		}
	}
	return false
}

// Value wraps a plain string getter into a Field.
func Value[T any](get func(T) string) Field[T] {
	return func(item T) *string {
		v := get(item)
		return &v
	}
}
