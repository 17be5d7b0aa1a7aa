// Package columns recovers multi-column slide layouts that text extraction
// flattened into a single row-major sequence.
package columns

// Deinterleave distributes items across n columns. When len(items) is not a
// multiple of n, the first len%n columns each take one extra leading item
// before the rest is dealt round-robin; this matches a layout where the
// leftmost columns start one line higher than the others.
//
// The total count is conserved and every column keeps input order.
// n <= 1 returns a single column holding a copy of items.
func Deinterleave[T any](items []T, n int) [][]T {
	if n <= 1 {
		col := make([]T, len(items))
		copy(col, items)
		return [][]T{col}
	}

	cols := make([][]T, n)
	for i := range cols {
		cols[i] = make([]T, 0, len(items)/n+1)
	}

	remainder := len(items) % n
	for i := 0; i < remainder; i++ {
		cols[i] = append(cols[i], items[i])
	}
	for i, item := range items[remainder:] {
		cols[i%n] = append(cols[i%n], item)
	}
	return cols
}

// Flatten is the inverse of Deinterleave: it emits the extra leading items of
// the longer columns first, then the remaining items row by row.
func Flatten[T any](cols [][]T) []T {
	if len(cols) == 0 {
		return nil
	}
	short := len(cols[0])
	for _, c := range cols {
		if len(c) < short {
			short = len(c)
		}
	}

	var out []T
	lead := make([]int, len(cols))
	for i, c := range cols {
		if len(c) > short {
			out = append(out, c[0])
			lead[i] = 1
		}
	}
	for row := 0; row < short; row++ {
		for i, c := range cols {
			out = append(out, c[row+lead[i]])
		}
	}
	return out
}
