package parse

import (
	"regexp"
	"strings"

	"github.com/garvonious-ui/cuervo-intel-sub000/internal/entity"
)

const (
	insightMinLen  = 30
	verbatimMinLen = 8
)

var (
	reNOPDLabel  = regexp.MustCompile(`(?mi)^[ \t]*(NEEDS|OBJECTIONS|DESIRES|PAIN POINTS)[ \t]*$`)
	reTerritory  = regexp.MustCompile(`Territory \d+`)
	searchedMark = []string{"What You Searched"}
	whyMark      = []string{"Why You're Searching", "Why You’re Searching"}
	execMarks    = append(append([]string{}, searchedMark...), whyMark...)
)

// ParseExecutiveSummary reads the search term, search purpose and the
// longer insight paragraphs.
func ParseExecutiveSummary(text string, _ Thresholds) *entity.ExecutiveSummary {
	res := &entity.ExecutiveSummary{KeyInsights: []string{}}

	if i, n := indexAny(text, searchedMark...); i >= 0 {
		rest := text[i+n:]
		if j, m := indexAny(rest, whyMark...); j >= 0 {
			res.SearchTerm = firstLine(rest[:j])
			res.SearchPurpose = firstBlock(rest[j+m:])
		} else {
			res.SearchTerm = firstLine(rest)
		}
	}

	for _, p := range SplitBlocks(text) {
		if i, _ := indexAny(p, execMarks...); i >= 0 {
			continue
		}
		if runeLen(p) > insightMinLen {
			res.KeyInsights = append(res.KeyInsights, p)
		}
	}
	if len(res.KeyInsights) > 0 {
		res.Overview = res.KeyInsights[0]
	}
	return res
}

// ParseAudienceProfile splits the NEEDS / OBJECTIONS / DESIRES / PAIN POINTS
// breakdown. Text before the first label is the summary; with no labels the
// whole text is.
func ParseAudienceProfile(text string, th Thresholds) *entity.AudienceProfile {
	res := entity.NewAudienceProfile()
	locs := reNOPDLabel.FindAllStringSubmatchIndex(text, -1)
	if len(locs) == 0 {
		res.Summary = strings.TrimSpace(text)
		return res
	}
	res.Summary = strings.TrimSpace(text[:locs[0][0]])

	for i, loc := range locs {
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		items := blocksLongerThan(text[loc[1]:end], th.MinItemLen)
		switch strings.ToUpper(text[loc[2]:loc[3]]) {
		case "NEEDS":
			res.Needs = append(res.Needs, items...)
		case "OBJECTIONS":
			res.Objections = append(res.Objections, items...)
		case "DESIRES":
			res.Desires = append(res.Desires, items...)
		case "PAIN POINTS":
			res.PainPoints = append(res.PainPoints, items...)
		}
	}
	return res
}

// ParseCreatorSummary reads the creator summary sub-headings. The topline
// falls back to the text before any sub-heading.
func ParseCreatorSummary(text string, th Thresholds) *entity.CreatorSummary {
	parts := splitSubHeadings(text,
		"Search Purpose", "Topline", "What it Means for You", "What it Means",
		"Common Themes and Topics", "Common Themes", "What Hits", "What Misses")

	res := &entity.CreatorSummary{
		SearchPurpose: parts["Search Purpose"],
		Topline:       firstOf(parts, "Topline", preamble),
		WhatItMeans:   firstOf(parts, "What it Means for You", "What it Means"),
		WhatHits:      parts["What Hits"],
		WhatMisses:    parts["What Misses"],
		CommonThemes:  []string{},
	}
	if themes := firstOf(parts, "Common Themes and Topics", "Common Themes"); themes != "" {
		res.CommonThemes = blocksLongerThan(themes, th.MinItemLen)
	}
	return res
}

// ParseHowToWin reads the summary, the "Territory N" blocks and the
// audience verbatims that follow the last territory.
func ParseHowToWin(text string, th Thresholds) *entity.HowToWin {
	res := &entity.HowToWin{Territories: []string{}, AudienceVerbatims: []string{}}

	parts := reTerritory.Split(text, -1)
	summary := strings.TrimSpace(parts[0])
	if i := strings.Index(summary, "Audience Verbatims"); i >= 0 {
		summary = strings.TrimSpace(summary[:i])
	}
	res.Summary = summary

	for _, part := range parts[1:] {
		part = strings.TrimSpace(part)
		if runeLen(part) > th.MinBlockLen {
			res.Territories = append(res.Territories, firstBlock(part))
		}
	}

	locs := reTerritory.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return res
	}
	after := SplitBlocks(text[locs[len(locs)-1][1]:])
	if len(after) > 1 {
		for _, para := range after[1:] {
			if runeLen(para) <= verbatimMinLen {
				continue
			}
			for _, line := range SplitLines(para) {
				if runeLen(line) > verbatimMinLen {
					res.AudienceVerbatims = append(res.AudienceVerbatims, line)
				}
			}
		}
	}
	return res
}

// ParseSummaryBlock keeps a free-text section as is.
func ParseSummaryBlock(text string, _ Thresholds) *entity.SummaryBlock {
	return &entity.SummaryBlock{Summary: strings.TrimSpace(text)}
}
