package parse

import (
	"sort"
	"strings"

	"github.com/garvonious-ui/cuervo-intel-sub000/internal/core/columns"
)

type labelHit struct {
	label      string
	start, end int
}

// pairedSections reads the lists under labels. Two labels separated only
// by whitespace and at most th.PairGap runes sit on the same slide row;
// their bodies arrive interleaved and are split back into two columns.
// A label with no partner is read as a single list. Blocks of minLen runes
// or fewer are dropped. The returned offset is where the first label
// starts, or -1 when none was found.
func pairedSections(text string, labels []string, stops []string, minLen int, th Thresholds) (map[string][]string, int) {
	hits := locateLabels(text, labels)
	out := make(map[string][]string, len(labels))
	for _, l := range labels {
		out[l] = []string{}
	}
	if len(hits) == 0 {
		return out, -1
	}

	// bodyEnd is where the content following hits[i] stops.
	bodyEnd := func(i int) int {
		end := len(text)
		if i+1 < len(hits) {
			end = hits[i+1].start
		}
		from := hits[i].end
		for _, s := range stops {
			if j := strings.Index(text[from:], s); j >= 0 && from+j < end {
				end = from + j
			}
		}
		return end
	}

	for i := 0; i < len(hits); i++ {
		h := hits[i]
		if i+1 < len(hits) && sameRow(text, h, hits[i+1], th.PairGap) {
			partner := hits[i+1]
			body := text[partner.end:bodyEnd(i+1)]
			cols := columns.Deinterleave(blocksLongerThan(body, minLen), 2)
			out[h.label] = cols[0]
			out[partner.label] = cols[1]
			i++
			continue
		}
		out[h.label] = blocksLongerThan(text[h.end:bodyEnd(i)], minLen)
	}
	return out, hits[0].start
}

// locateLabels finds the first occurrence of each label, ordered by
// position.
func locateLabels(text string, labels []string) []labelHit {
	var hits []labelHit
	for _, l := range labels {
		if i := strings.Index(text, l); i >= 0 {
			hits = append(hits, labelHit{label: l, start: i, end: i + len(l)})
		}
	}
	sort.Slice(hits, func(a, b int) bool { return hits[a].start < hits[b].start })
	return hits
}

func sameRow(text string, a, b labelHit, gap int) bool {
	if b.start < a.end {
		return false
	}
	between := text[a.end:b.start]
	return strings.TrimSpace(between) == "" && runeLen(between) <= gap
}
