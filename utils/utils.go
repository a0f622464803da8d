package utils

import (
	"slices"
	"sort"
	"strings"
)

// SortKeys returns the keys of m in ascending order.
func SortKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SortedOrder returns the permutation that visits keys in ascending order,
// leaving keys itself untouched.
func SortedOrder(keys []string) []int {
	order := make([]int, len(keys))
	for i := range order {
		order[i] = i
	}
	slices.SortFunc(order, func(a, b int) int {
		return strings.Compare(keys[a], keys[b])
	})
	return order
}
