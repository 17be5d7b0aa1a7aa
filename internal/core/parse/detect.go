package parse

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/garvonious-ui/cuervo-intel-sub000/constants"
	"github.com/garvonious-ui/cuervo-intel-sub000/internal/common"
)

const (
	minDetectLines = 3
	typeScanLines  = 5
	dateScanLines  = 8
)

var (
	reISODate   = regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`)
	reMonthDate = regexp.MustCompile(`(?i)\b(?:Jan(?:uary)?|Feb(?:ruary)?|Mar(?:ch)?|Apr(?:il)?|May|June?|July?|Aug(?:ust)?|Sep(?:t(?:ember)?)?|Oct(?:ober)?|Nov(?:ember)?|Dec(?:ember)?)\.?\s+\d{1,2},?\s+\d{4}\b`)
)

// Metadata is what the title slide of a report tells us about it.
type Metadata struct {
	Type       constants.ReportType
	Identifier string
	Date       string
}

// DetectMetadata reads the report type, identifier and date from the
// first lines of an extracted text blob.
func DetectMetadata(text string) (Metadata, error) {
	lines := SplitLines(text)
	if len(lines) < minDetectLines {
		return Metadata{}, common.DetectionError(
			fmt.Sprintf("text too short to detect report type (%d non-blank lines)", len(lines)))
	}

	rt, ok := detectType(head(lines, typeScanLines))
	if !ok {
		return Metadata{}, common.DetectionError(
			fmt.Sprintf("could not detect report type from: %q", head(lines, typeScanLines)))
	}

	return Metadata{
		Type:       rt,
		Identifier: detectIdentifier(lines[0]),
		Date:       detectDate(head(lines, dateScanLines)),
	}, nil
}

func head(lines []string, n int) []string {
	if len(lines) < n {
		return lines
	}
	return lines[:n]
}

// detectIdentifier strips quoting and a trailing possessive, so
// "“acme.co's TikTok”" becomes "acme.co".
func detectIdentifier(line string) string {
	id := strings.Trim(line, "'\"‘’“” \t")
	for _, marker := range []string{"'s ", "’s "} {
		if i := strings.Index(id, marker); i >= 0 {
			id = id[:i]
		}
	}
	return strings.TrimSpace(id)
}

func detectType(lines []string) (constants.ReportType, bool) {
	for _, line := range lines {
		key := strings.ToLower(line)
		for _, sig := range constants.TypeSignatures {
			if key == sig.Pattern {
				return sig.Type, true
			}
		}
	}
	for _, line := range lines {
		key := strings.ToLower(line)
		for _, sig := range constants.TypeSignatures {
			if strings.Contains(key, sig.Pattern) || strings.Contains(sig.Pattern, key) {
				return sig.Type, true
			}
		}
	}
	return "", false
}

func detectDate(lines []string) string {
	for _, line := range lines {
		if m := reISODate.FindString(line); m != "" {
			return m
		}
	}
	for _, line := range lines {
		if m := reMonthDate.FindString(line); m != "" {
			return m
		}
	}
	return ""
}
