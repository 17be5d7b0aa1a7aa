package columns

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeinterleave_EvenSplit(t *testing.T) {
	items := []string{"a0", "b0", "a1", "b1", "a2", "b2"}

	cols := Deinterleave(items, 2)

	require.Len(t, cols, 2)
	assert.Equal(t, []string{"a0", "a1", "a2"}, cols[0])
	assert.Equal(t, []string{"b0", "b1", "b2"}, cols[1])
}

func TestDeinterleave_RemainderGoesToLeadingColumns(t *testing.T) {
	// 7 items over 3 columns: columns 0 holds the single extra leading line.
	items := []int{1, 2, 3, 4, 5, 6, 7}

	cols := Deinterleave(items, 3)

	assert.Equal(t, [][]int{{1, 2, 5}, {3, 6}, {4, 7}}, cols)
}

func TestDeinterleave_RoundTrip(t *testing.T) {
	for n := 1; n <= 5; n++ {
		for size := 0; size <= 17; size++ {
			t.Run(fmt.Sprintf("n=%d/size=%d", n, size), func(t *testing.T) {
				items := make([]int, size)
				for i := range items {
					items[i] = i
				}

				cols := Deinterleave(items, n)

				total := 0
				for _, c := range cols {
					total += len(c)
					for j := 1; j < len(c); j++ {
						assert.Less(t, c[j-1], c[j], "column order must follow input order")
					}
				}
				assert.Equal(t, size, total)
				if size == 0 {
					assert.Empty(t, Flatten(cols))
				} else {
					assert.Equal(t, items, Flatten(cols))
				}
			})
		}
	}
}

func TestFlatten_ThenDeinterleave(t *testing.T) {
	// Columns of unequal height, tallest on the left, as a slide renders them.
	cols := [][]string{
		{"Why A", "A detail one", "A detail two"},
		{"Why B", "B detail"},
		{"Why C", "C detail"},
	}

	flat := Flatten(cols)
	assert.Equal(t, []string{"Why A", "A detail one", "Why B", "Why C", "A detail two", "B detail", "C detail"}, flat)

	assert.Equal(t, cols, Deinterleave(flat, 3))
}

func TestDeinterleave_SingleColumnCopies(t *testing.T) {
	items := []string{"x", "y"}
	cols := Deinterleave(items, 0)
	require.Len(t, cols, 1)
	cols[0][0] = "changed"
	assert.Equal(t, "x", items[0])
}
