package models

import "slices"

// The collections below are sets stored as ordered slices so that JSON keeps
// the shape older backups have.

func addToSet[T comparable](s []T, v T) ([]T, bool) {
	if slices.Contains(s, v) {
		return s, false
	}
	return append(s, v), true
}

func removeFromSet[T comparable](s []T, v T) ([]T, bool) {
	i := slices.Index(s, v)
	if i < 0 {
		return s, false
	}
	return slices.Delete(s, i, i+1), true
}
