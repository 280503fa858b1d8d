// Package xiter holds small iterator adapters shared by the lexer packages.
package xiter

import (
	"cmp"
	"iter"
	"maps"
	"slices"
)

// SortedKeys yields map keys in deterministic sorted order.
func SortedKeys[K cmp.Ordered, V any](m map[K]V) iter.Seq[K] {
	return slices.Values(slices.Sorted(maps.Keys(m)))
}

// Until yields the values of a fallible sequence up to its first error,
// which is stored in *errp. Stopping early leaves *errp untouched.
func Until[V any](seq iter.Seq2[V, error], errp *error) iter.Seq[V] {
	return func(yield func(V) bool) {
		for v, err := range seq {
			if err != nil {
				*errp = err
				return
			}
			if !yield(v) {
				return
			}
		}
	}
}
