package internal

import (
	"iter"
)

// Merge collects key/value sequences into a new map.
// Later sequences replace the values of earlier ones.
func Merge[K comparable, V any](seqs ...iter.Seq2[K, V]) map[K]V {
	merged := make(map[K]V)
	for _, seq := range seqs {
		for key, value := range seq {
			merged[key] = value
		}
	}
	return merged
}
