package extract

import (
	"sort"
	"strings"
)

// shape is a positioned text carrier on a slide. Coordinates are EMU.
type shape struct {
	x, y  int64
	lines []string
}

type slideContent struct {
	headings [][]string // group shapes, document order
	shapes   []shape
}

// flatten emits the slide as lines. Heading carriers precede positioned text
// on every slide but the first, whose positioned text holds the identifier and
// date the metadata detector expects at the top.
func (sc slideContent) flatten(first bool, snap int64) []string {
	var body []string
	for _, row := range clusterRows(sc.shapes, snap) {
		for _, s := range row {
			body = append(body, s.lines...)
			body = append(body, "")
		}
	}
	var heads []string
	for _, h := range sc.headings {
		heads = append(heads, h...)
		heads = append(heads, "")
	}
	if first {
		return append(body, heads...)
	}
	return append(heads, body...)
}

// clusterRows sorts shapes top-to-bottom and groups those whose vertical
// offset is within snap of the row's first shape; each row reads left to right.
func clusterRows(shapes []shape, snap int64) [][]shape {
	sorted := make([]shape, len(shapes))
	copy(sorted, shapes)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].y != sorted[j].y {
			return sorted[i].y < sorted[j].y
		}
		return sorted[i].x < sorted[j].x
	})

	var rows [][]shape
	for _, s := range sorted {
		if n := len(rows); n > 0 && abs64(s.y-rows[n-1][0].y) < snap {
			rows[n-1] = append(rows[n-1], s)
			continue
		}
		rows = append(rows, []shape{s})
	}
	for _, r := range rows {
		sort.SliceStable(r, func(i, j int) bool { return r[i].x < r[j].x })
	}
	return rows
}

// flattenTable turns table rows into lines. A label row (one non-empty cell)
// over item rows yields the label, each item, then a blank line. Any other
// table is read row-major with one non-empty cell per line, which gives
// label/value pairs for two-column tables.
func flattenTable(rows [][]string) []string {
	var out []string
	labelled := len(rows) >= 2 && countNonEmpty(rows[0]) == 1
	if labelled {
		out = append(out, firstNonEmpty(rows[0]))
		rows = rows[1:]
	}
	for _, r := range rows {
		for _, c := range r {
			if c = strings.TrimSpace(c); c != "" {
				out = append(out, c)
			}
		}
	}
	if labelled {
		out = append(out, "")
	}
	return out
}

func countNonEmpty(cells []string) int {
	n := 0
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			n++
		}
	}
	return n
}

func firstNonEmpty(cells []string) string {
	for _, c := range cells {
		if c = strings.TrimSpace(c); c != "" {
			return c
		}
	}
	return ""
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
