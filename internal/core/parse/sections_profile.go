package parse

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/garvonious-ui/cuervo-intel-sub000/internal/core/columns"
	"github.com/garvonious-ui/cuervo-intel-sub000/internal/entity"
)

var (
	reSnapshotValue = regexp.MustCompile(`^[\d,]+\.?\d*\s*[%KkMmBb]?$`)
	reStatValue     = regexp.MustCompile(`^[\d,]+(\.\d+)?\s*[%KkMmBb]?$`)
	reInlineNumber  = regexp.MustCompile(`[\d,]*\d(\.\d+)?\s*[%KkMmBb]?`)
	rePostType      = regexp.MustCompile(`(?i)^(videos?|reels?|carousels?|images?|photos?|static)$`)
)

// ParseSnapshot reads the followers/following pair and the average
// likes/comments/engagement trio. Labels come first, then their values
// in the same order.
func ParseSnapshot(text string, _ Thresholds) *entity.Snapshot {
	var (
		labels1, labels2 []string
		values1, values2 []float64
		inGroup1         bool
		inGroup2         bool
		pastLabels1      bool
		pastLabels2      bool
	)

scan:
	for _, line := range SplitLines(text) {
		low := strings.ToLower(line)
		switch {
		case low == "followers":
			inGroup1 = true
			labels1 = append(labels1, "followers")
		case low == "following" && inGroup1:
			labels1 = append(labels1, "following")
			pastLabels1 = true
		case pastLabels1 && !inGroup2 && reSnapshotValue.MatchString(line):
			values1 = append(values1, ParseNumber(line))
			if len(values1) >= len(labels1) {
				pastLabels1 = false
			}
		case low == "avg likes":
			inGroup2 = true
			labels2 = append(labels2, "avg_likes")
		case strings.Contains(low, "avg comments") && inGroup2:
			labels2 = append(labels2, "avg_comments")
		case strings.Contains(low, "avg engagement rate") && inGroup2:
			labels2 = append(labels2, "avg_engagement_rate")
			pastLabels2 = true
		case pastLabels2 && reSnapshotValue.MatchString(line):
			values2 = append(values2, ParseNumber(line))
			if len(values2) >= len(labels2) {
				break scan
			}
		}
	}

	snap := &entity.Snapshot{}
	set := map[string]*float64{
		"followers":           &snap.Followers,
		"following":           &snap.Following,
		"avg_likes":           &snap.AvgLikes,
		"avg_comments":        &snap.AvgComments,
		"avg_engagement_rate": &snap.AvgEngagementRate,
	}
	for i, l := range labels1 {
		if i < len(values1) {
			*set[l] = values1[i]
		}
	}
	for i, l := range labels2 {
		if i < len(values2) {
			*set[l] = values2[i]
		}
	}
	return snap
}

// ParseSponsorships reads the current sponsorship summary, categories and
// companies.
func ParseSponsorships(text string, _ Thresholds) *entity.Sponsorships {
	parts := splitSubHeadings(text,
		"Sponsorship Summary", "Current Categories", "Integration Summary", "Current Companies")
	return &entity.Sponsorships{
		Summary:            firstOf(parts, "Sponsorship Summary", preamble),
		IntegrationSummary: parts["Integration Summary"],
		Categories:         shortNames(parts["Current Categories"], 2, 40),
		Companies:          shortNames(parts["Current Companies"], 1, 40),
	}
}

// shortNames keeps lines strictly between minLen and maxLen runes that do
// not end a sentence.
func shortNames(text string, minLen, maxLen int) []string {
	out := []string{}
	for _, l := range SplitLines(text) {
		if n := runeLen(l); n > minLen && n < maxLen && !strings.HasSuffix(l, ".") {
			out = append(out, l)
		}
	}
	return out
}

func isWhyLabel(line string) bool {
	return strings.Contains(line, "Why it Works") || strings.Contains(line, "Why it works")
}

func isHowLabel(line string) bool {
	return strings.Contains(line, "How to Activate") || strings.Contains(line, "How to activate")
}

func countWhyLabels(text string) int {
	return strings.Count(text, "Why it Works") + strings.Count(text, "Why it works")
}

// ParseFutureSponsorships reads the suggested sponsorship categories. When
// the slide lays n categories out side by side, every "Why it Works" label
// precedes the first "How to Activate" label and the bodies arrive
// interleaved n ways. Anything else is read sequentially.
func ParseFutureSponsorships(text string, th Thresholds) []entity.SponsorshipSuggestion {
	lines := strings.Split(text, "\n")
	n := countWhyLabels(text)

	firstWhy, lastWhy, firstHow, lastHow := -1, -1, -1, -1
	for i, l := range lines {
		if isWhyLabel(l) {
			if firstWhy < 0 {
				firstWhy = i
			}
			lastWhy = i
		}
		if isHowLabel(l) {
			if firstHow < 0 {
				firstHow = i
			}
			lastHow = i
		}
	}
	if n <= 1 || firstHow >= 0 && lastWhy > firstHow {
		return sequentialSponsorships(lines)
	}

	names := categoryNames(lines[:firstWhy], n, th)

	whyEnd := len(lines)
	if firstHow >= 0 {
		whyEnd = max(firstHow, lastWhy+1)
	}
	whyCols := columns.Deinterleave(SplitBlocks(strings.Join(lines[lastWhy+1:whyEnd], "\n")), n)

	howCols := make([][]string, n)
	if lastHow >= 0 {
		region := strings.Join(lines[lastHow+1:], "\n")
		if blocks := SplitBlocks(region); len(blocks) == n {
			for i, b := range blocks {
				howCols[i] = actionItems(b)
			}
		} else {
			for i, col := range columns.Deinterleave(SplitLines(region), n) {
				howCols[i] = splitSentences(strings.Join(col, " "))
			}
		}
	}

	out := make([]entity.SponsorshipSuggestion, 0, n)
	for i := 0; i < n; i++ {
		how := howCols[i]
		if how == nil {
			how = []string{}
		}
		out = append(out, entity.SponsorshipSuggestion{
			Category:      names[i],
			WhyItWorks:    strings.Join(whyCols[i], " "),
			HowToActivate: how,
		})
	}
	return out
}

// categoryNames picks the n names closest to the labels from the text
// above them, padding with numbered placeholders when too few are found.
func categoryNames(pre []string, n int, th Thresholds) []string {
	var names []string
	for _, l := range pre {
		l = strings.TrimSpace(l)
		size := runeLen(l)
		if size > 5 && size < th.CategoryMaxLen && !strings.ContainsAny(l[len(l)-1:], ".!?:") {
			names = append(names, l)
		}
	}
	if len(names) > n {
		names = names[len(names)-n:]
	}
	for i := len(names); i < n; i++ {
		names = append(names, "Category "+strconv.Itoa(i+1))
	}
	return names
}

var reBullet = regexp.MustCompile(`^(?:[•\-*–▪●]|\d+[.)])\s*`)

// actionItems reads a block either as a bulleted list or as prose split
// into sentences.
func actionItems(block string) []string {
	lines := SplitLines(block)
	bulleted := len(lines) > 1
	for _, l := range lines {
		if !reBullet.MatchString(l) {
			bulleted = false
			break
		}
	}
	if bulleted {
		out := make([]string, 0, len(lines))
		for _, l := range lines {
			out = append(out, strings.TrimSpace(reBullet.ReplaceAllString(l, "")))
		}
		return out
	}
	return splitSentences(strings.Join(lines, " "))
}

// sequentialSponsorships reads category / Why it Works / How to Activate
// runs in document order.
func sequentialSponsorships(lines []string) []entity.SponsorshipSuggestion {
	out := []entity.SponsorshipSuggestion{}
	var (
		category string
		why, how []string
		inWhy    bool
		inHow    bool
	)
	flush := func() {
		if category != "" && (len(why) > 0 || len(how) > 0) {
			out = append(out, entity.SponsorshipSuggestion{
				Category:      category,
				WhyItWorks:    strings.TrimSpace(strings.Join(why, " ")),
				HowToActivate: append([]string{}, how...),
			})
			why, how = nil, nil
		}
	}

	for i, line := range lines {
		s := strings.TrimSpace(line)
		switch {
		case isWhyLabel(s):
			flush()
			inWhy, inHow = true, false
		case isHowLabel(s):
			inWhy, inHow = false, true
		case s == "":
		case (inWhy || inHow) && runeLen(s) < 60 && nextIsWhy(lines, i):
			flush()
			category = s
			inWhy, inHow = false, false
		case inWhy:
			why = append(why, s)
		case inHow:
			how = append(how, s)
		case runeLen(s) > 3 && runeLen(s) < 60:
			flush()
			category = s
		}
	}
	flush()
	return out
}

// nextIsWhy reports whether the next non-blank line after i is a
// "Why it Works" label.
func nextIsWhy(lines []string, i int) bool {
	for _, l := range lines[i+1:] {
		if l = strings.TrimSpace(l); l != "" {
			return isWhyLabel(l)
		}
	}
	return false
}

var postStatLabels = []struct {
	label string
	field func(*entity.PostStats) *float64
}{
	{"Min Views", func(p *entity.PostStats) *float64 { return &p.MinViews }},
	{"Max Views", func(p *entity.PostStats) *float64 { return &p.MaxViews }},
	{"Median Views", func(p *entity.PostStats) *float64 { return &p.MedianViews }},
	{"Avg Views", func(p *entity.PostStats) *float64 { return &p.AvgViews }},
	{"Min Likes", func(p *entity.PostStats) *float64 { return &p.MinLikes }},
	{"Max Likes", func(p *entity.PostStats) *float64 { return &p.MaxLikes }},
	{"Median Likes", func(p *entity.PostStats) *float64 { return &p.MedianLikes }},
	{"Avg Likes", func(p *entity.PostStats) *float64 { return &p.AvgLikes }},
	{"Min Comments", func(p *entity.PostStats) *float64 { return &p.MinComments }},
	{"Max Comments", func(p *entity.PostStats) *float64 { return &p.MaxComments }},
	{"Median Comments", func(p *entity.PostStats) *float64 { return &p.MedianComments }},
	{"Avg Comments", func(p *entity.PostStats) *float64 { return &p.AvgComments }},
	{"Avg Engagement Rate", func(p *entity.PostStats) *float64 { return &p.AvgEngagementRate }},
	{"Avg Shares", func(p *entity.PostStats) *float64 { return &p.AvgShares }},
}

func statLabel(line string) (func(*entity.PostStats) *float64, bool) {
	for _, l := range postStatLabels {
		if strings.EqualFold(line, l.label) {
			return l.field, true
		}
	}
	return nil, false
}

func isFootnote(line string, th Thresholds) bool {
	if runeLen(line) >= th.FootnoteMaxLen {
		return false
	}
	for _, p := range []string{"*", "†", "‡", "¹", "Note"} {
		if strings.HasPrefix(line, p) {
			return true
		}
	}
	return false
}

// ParseStatistics reads the all-posts statistics grid.
func ParseStatistics(text string, th Thresholds) *entity.Statistics {
	return &entity.Statistics{AllPosts: parsePostStats(text, th)}
}

// parsePostStats reads label/value pairs. A run of k consecutive labels
// (one slide row) takes the next k well-formed values in order; a value
// must show up within th.StatLookahead lines of where it is expected.
// Footnotes are skipped and another label ends the search.
func parsePostStats(text string, th Thresholds) entity.PostStats {
	var stats entity.PostStats
	lines := SplitLines(text)
	for i := 0; i < len(lines); {
		field, ok := statLabel(lines[i])
		if !ok {
			i++
			continue
		}
		run := []func(*entity.PostStats) *float64{field}
		j := i + 1
		for ; j < len(lines); j++ {
			f, ok := statLabel(lines[j])
			if !ok {
				break
			}
			run = append(run, f)
		}

		var values []float64
		limit := j + len(run) - 1 + th.StatLookahead
		for ; j < len(lines) && j < limit && len(values) < len(run); j++ {
			if _, isLabel := statLabel(lines[j]); isLabel {
				break
			}
			if isFootnote(lines[j], th) {
				continue
			}
			if reStatValue.MatchString(lines[j]) {
				values = append(values, ParseNumber(lines[j]))
			}
		}
		for k, v := range values {
			*run[k](&stats) = v
		}
		i = j
	}
	return stats
}

// ParseStatisticsByPostType reads one statistics grid per post-type label
// line ("Videos", "Carousels", ...). Nil when no label is found.
func ParseStatisticsByPostType(text string, th Thresholds) map[string]entity.PostStats {
	var (
		out     map[string]entity.PostStats
		current string
		buf     []string
	)
	flush := func() {
		if current == "" {
			return
		}
		if out == nil {
			out = map[string]entity.PostStats{}
		}
		out[current] = parsePostStats(strings.Join(buf, "\n"), th)
	}
	for _, line := range strings.Split(text, "\n") {
		s := strings.TrimSpace(line)
		if rePostType.MatchString(s) {
			flush()
			current = strings.TrimSuffix(strings.ToLower(s), "s")
			buf = nil
			continue
		}
		buf = append(buf, line)
	}
	flush()
	return out
}

var topPostLabels = []string{"Caption", "Engagement Rate", "Likes Count", "Comment Count", "Views Count", "Link"}

func topPostLabel(line string) (string, bool) {
	line = strings.TrimSuffix(strings.TrimSpace(line), ":")
	for _, l := range topPostLabels {
		if strings.EqualFold(line, l) {
			return l, true
		}
	}
	return "", false
}

func isPostURL(line string) bool {
	return strings.Contains(line, "tiktok.com") || strings.Contains(line, "instagram.com")
}

const captionMaxLines = 4

// ParseTopPostPair reads a "Most / Least" slide. The deck always emits the
// most-performing post's fields before the least-performing one's, so the
// first occurrence of a label belongs to the most post and the second to
// the least, whatever the column layout.
func ParseTopPostPair(text string, th Thresholds) (most, least *entity.TopPost) {
	lines := strings.Split(text, "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}

	var posts [2]entity.TopPost
	var found [2]bool
	seen := map[string]int{}
	used := map[int]bool{}

	claim := func(label string) (*entity.TopPost, bool) {
		idx := seen[label]
		seen[label]++
		if idx > 1 {
			return nil, false
		}
		found[idx] = true
		return &posts[idx], true
	}

	for i, line := range lines {
		if used[i] || line == "" {
			continue
		}
		label, ok := topPostLabel(line)
		if !ok {
			if isPostURL(line) {
				if p, ok := claim("Link"); ok {
					p.Link = line
				}
			}
			continue
		}
		p, ok := claim(label)
		if !ok {
			continue
		}
		switch label {
		case "Caption":
			var caption []string
			for j := i + 1; j < len(lines) && j <= i+captionMaxLines; j++ {
				if lines[j] == "" {
					break
				}
				if _, isLabel := topPostLabel(lines[j]); isLabel {
					break
				}
				caption = append(caption, lines[j])
				used[j] = true
			}
			p.Caption = strings.Join(caption, " ")
		case "Link":
			for j := i + 1; j < len(lines) && j <= i+th.StatLookahead; j++ {
				if isPostURL(lines[j]) || strings.HasPrefix(lines[j], "http") {
					p.Link = lines[j]
					used[j] = true
					break
				}
			}
		default:
			for j := i + 1; j < len(lines) && j <= i+th.StatLookahead; j++ {
				if _, isLabel := topPostLabel(lines[j]); isLabel {
					break
				}
				if m := reInlineNumber.FindString(lines[j]); m != "" {
					v := ParseNumber(m)
					switch label {
					case "Engagement Rate":
						p.EngagementRate = v
					case "Likes Count":
						p.Likes = v
					case "Comment Count":
						p.Comments = v
					case "Views Count":
						p.Views = v
					}
					used[j] = true
					break
				}
			}
		}
	}

	if found[0] {
		most = &posts[0]
	}
	if found[1] {
		least = &posts[1]
	}
	return most, least
}
