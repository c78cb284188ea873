// Package generics implements small generic data structure helpers missing
// from the stdlib, trimmed down to the ones this project's search and
// reporting code actually uses.
package generics

// SliceMap executes fn sequentially for every element of in, and returns a
// mapped slice in the same order.
func SliceMap[In, Out any](in []In, fn func(e In) Out) []Out {
	out := make([]Out, len(in))
	for i, e := range in {
		out[i] = fn(e)
	}
	return out
}

// KeysSlice returns a slice with the keys of a map, in unspecified order.
// Useful for types like a search tree's state-hash keys, which have no
// natural ordering to sort by.
func KeysSlice[Map interface{ ~map[K]V }, K comparable, V any](m Map) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}
