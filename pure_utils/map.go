package pure_utils

import "slices"

// Map returns a new slice with the same length as src, but with values transformed by f
func Map[T, U any](src []T, f func(T) U) []U {
	us := make([]U, len(src))
	for i := range src {
		us[i] = f(src[i])
	}
	return us
}

// FlatMap maps every element to a slice and concatenates the results.
func FlatMap[T, U any](src []T, f func(T) []U) []U {
	us := make([]U, 0, len(src))
	for _, item := range src {
		us = append(us, f(item)...)
	}
	return slices.Clip(us)
}
