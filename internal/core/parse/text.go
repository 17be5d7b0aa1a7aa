package parse

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

const preamble = "preamble"

var (
	reBlankRun     = regexp.MustCompile(`\n{2,}`)
	reSentenceStop = regexp.MustCompile(`[.!?]+["”’)]?\s+`)
)

func runeLen(s string) int { return utf8.RuneCountInString(s) }

// SplitBlocks splits text on blank lines, trimming each block and dropping
// empty ones.
func SplitBlocks(text string) []string {
	var out []string
	for _, b := range reBlankRun.Split(text, -1) {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}

// SplitLines returns the trimmed non-blank lines of text.
func SplitLines(text string) []string {
	var out []string
	for _, ln := range strings.Split(text, "\n") {
		if ln = strings.TrimSpace(ln); ln != "" {
			out = append(out, ln)
		}
	}
	return out
}

// blocksLongerThan keeps blocks whose rune length exceeds minLen.
func blocksLongerThan(text string, minLen int) []string {
	out := []string{}
	for _, b := range SplitBlocks(text) {
		if runeLen(b) > minLen {
			out = append(out, b)
		}
	}
	return out
}

func firstLine(text string) string {
	if lines := SplitLines(text); len(lines) > 0 {
		return lines[0]
	}
	return ""
}

func firstBlock(text string) string {
	if blocks := SplitBlocks(text); len(blocks) > 0 {
		return blocks[0]
	}
	return ""
}

// indexAny returns the position and length of the earliest of needles in
// text, or -1.
func indexAny(text string, needles ...string) (int, int) {
	pos, size := -1, 0
	for _, n := range needles {
		if i := strings.Index(text, n); i >= 0 && (pos < 0 || i < pos) {
			pos, size = i, len(n)
		}
	}
	return pos, size
}

// splitSubHeadings walks text line by line and files each line under the
// most recent line that equals one of headings. Lines before the first
// heading are filed under "preamble".
func splitSubHeadings(text string, headings ...string) map[string]string {
	parts := map[string]string{}
	current := preamble
	var buf []string
	flush := func() {
		parts[current] = strings.TrimSpace(strings.Join(buf, "\n"))
	}
	for _, line := range strings.Split(text, "\n") {
		stripped := strings.TrimSpace(line)
		matched := false
		for _, h := range headings {
			if stripped == h {
				flush()
				current, buf, matched = h, nil, true
				break
			}
		}
		if !matched {
			buf = append(buf, line)
		}
	}
	flush()
	return parts
}

// firstOf returns the first non-missing value among keys.
func firstOf(parts map[string]string, keys ...string) string {
	for _, k := range keys {
		if v, ok := parts[k]; ok {
			return v
		}
	}
	return ""
}

// splitSentences breaks prose into sentences at terminal punctuation
// followed by whitespace.
func splitSentences(text string) []string {
	text = strings.Join(strings.Fields(text), " ")
	var out []string
	start := 0
	for _, loc := range reSentenceStop.FindAllStringIndex(text, -1) {
		if s := strings.TrimSpace(text[start:loc[1]]); s != "" {
			out = append(out, s)
		}
		start = loc[1]
	}
	if s := strings.TrimSpace(text[start:]); s != "" {
		out = append(out, s)
	}
	return out
}

// ParseNumber reads a display number such as "12,400", "3.5%", or "1.2M".
// Anything unreadable is 0.
func ParseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
	mult := 1.0
	if s != "" {
		switch s[len(s)-1] {
		case 'K', 'k':
			mult = 1e3
		case 'M', 'm':
			mult = 1e6
		case 'B', 'b':
			mult = 1e9
		}
		if mult != 1 {
			s = strings.TrimSpace(s[:len(s)-1])
		}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v * mult
}
