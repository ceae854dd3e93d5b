package util

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestSortedKeys(t *testing.T) {
	// GIVEN
	input := map[int]string{
		2: "two",
		0: "zero",
		1: "one",
	}

	// WHEN
	result := SortedKeys(input)

	// THEN
	assert.Equal(t, []int{0, 1, 2}, result)
}
