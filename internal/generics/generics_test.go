package generics

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSliceMap(t *testing.T) {
	got := SliceMap([]int{1, 2, 3}, func(v int) int { return v * v })
	assert.Equal(t, []int{1, 4, 9}, got)
}

func TestKeysSlice(t *testing.T) {
	m := map[int]string{1: "1", 5: "5", 3: "3"}
	got := KeysSlice(m)
	slices.Sort(got)
	assert.Equal(t, []int{1, 3, 5}, got)
}
