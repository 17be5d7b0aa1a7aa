package extract

import (
	"regexp"
	"strings"
)

var (
	reCRLF       = regexp.MustCompile(`\r\n?`)
	reNUL        = regexp.MustCompile("\x00")
	reFormFeed   = regexp.MustCompile(`\n?\f\n?`)
	reMultiBlank = regexp.MustCompile(`\n{3,}`)
)

// Normalize cleans line endings and page breaks without touching line content.
// Keeps line breaks; collapses runs of blank lines into a single blank line
// since parsers only distinguish "line" from "paragraph".
func Normalize(s string) string {
	if s == "" {
		return s
	}
	s = reCRLF.ReplaceAllString(s, "\n")
	s = reNUL.ReplaceAllString(s, "")
	s = reFormFeed.ReplaceAllString(s, "\n\n")
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " \t")
	}
	s = strings.Join(lines, "\n")
	s = reMultiBlank.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
