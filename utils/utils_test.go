package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortKeys(t *testing.T) {
	m := map[string]int{"b": 2, "a": 1, "c": 3}
	assert.Equal(t, []string{"a", "b", "c"}, SortKeys(m))
	assert.Empty(t, SortKeys(map[string]bool{}))
}

func TestSortedOrder(t *testing.T) {
	keys := []string{"10", "2", "1"}
	order := SortedOrder(keys)
	assert.Equal(t, []int{2, 0, 1}, order)
	assert.Equal(t, []string{"10", "2", "1"}, keys)
}
