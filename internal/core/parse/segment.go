package parse

import (
	"sort"
	"strings"

	"github.com/garvonious-ui/cuervo-intel-sub000/constants"
)

// Section headings as they appear in autostrat exports.
const (
	HeadingExecutiveSummary      = "Executive Summary"
	HeadingAudienceProfile       = "Audience Profile"
	HeadingSnapshot              = "Snapshot"
	HeadingCreatorSummary        = "Creator Summary"
	HeadingHashtagAnalysis       = "Hashtag Analysis"
	HeadingConversations         = "Interesting Conversations"
	HeadingConversationMap       = "Conversation Map"
	HeadingContentTrends         = "Content Trends"
	HeadingBrandMentions         = "Brand Mentions"
	HeadingInMarketCampaigns     = "In-Market Campaigns"
	HeadingHowToWin              = "How to Win With This Audience"
	HeadingCreatorArchetypes     = "Creator Archetypes"
	HeadingSponsorships          = "Sponsorship Analysis"
	HeadingFutureSponsorships    = "Future Sponsorship Suggestions"
	HeadingEngagementAnalysis    = "Engagement Analysis"
	HeadingPostingAnalysis       = "Posting Analysis"
	HeadingStatsByPostType       = "Summary Statistics - By Post Type"
	HeadingStatsAllPosts         = "Summary Statistics - All Posts"
	HeadingStats                 = "Summary Statistics"
	HeadingMostLeastLiked        = "Most / Least Liked"
	HeadingMostLeastComments     = "Most / Least Comments"
	HeadingMostLeastEngaged      = "Most / Least Engaged"
	HeadingNewsAnalysis          = "News Analysis"
	HeadingNewsTrends            = "News Trends"
	HeadingTopStories            = "Top Stories"
	HeadingCompetitorCoverage    = "Competitor Coverage"
	HeadingTrendingNarratives    = "Trending Narratives"
	HeadingSWOT                  = "SWOT Analysis"
	HeadingKeyStatistics         = "Key Statistics"
	HeadingNotableQuotes         = "Notable Quotes"
	HeadingStrategicImplications = "Strategic Implications"
	HeadingAppendix              = "Appendix"

	appendixPrefix = "appendix_"

	boilerplateStart = "How to use this deck"
	boilerplateEnd   = "Autostrat Team"
)

// Headings is the heading vocabulary in canonical order.
var Headings = []string{
	HeadingExecutiveSummary,
	HeadingAudienceProfile,
	HeadingSnapshot,
	HeadingCreatorSummary,
	HeadingHashtagAnalysis,
	HeadingConversations,
	HeadingConversationMap,
	HeadingContentTrends,
	HeadingBrandMentions,
	HeadingInMarketCampaigns,
	HeadingHowToWin,
	HeadingCreatorArchetypes,
	HeadingSponsorships,
	HeadingFutureSponsorships,
	HeadingEngagementAnalysis,
	HeadingPostingAnalysis,
	HeadingStatsByPostType,
	HeadingStatsAllPosts,
	HeadingStats,
	HeadingMostLeastLiked,
	HeadingMostLeastComments,
	HeadingMostLeastEngaged,
	HeadingNewsAnalysis,
	HeadingNewsTrends,
	HeadingTopStories,
	HeadingCompetitorCoverage,
	HeadingTrendingNarratives,
	HeadingSWOT,
	HeadingKeyStatistics,
	HeadingNotableQuotes,
	HeadingStrategicImplications,
	HeadingAppendix,
}

// Sections maps a heading (or appendix_<heading>) to its trimmed body.
type Sections map[string]string

// Get returns the body stored under heading and whether the heading was
// found at all. A found heading may have an empty body.
func (s Sections) Get(heading string) (string, bool) {
	v, ok := s[heading]
	return v, ok
}

type headingMatch struct {
	start, end int
	heading    string
}

func (m headingMatch) size() int { return m.end - m.start }

// Segment splits an extracted report into sections keyed by heading.
func Segment(text string) Sections {
	text = stripBoilerplate(text)
	matches := resolveOverlaps(findHeadings(text))

	appendixAt := -1
	for _, m := range matches {
		if m.heading == HeadingAppendix {
			appendixAt = m.start
			break
		}
	}

	sections := Sections{}
	for i, m := range matches {
		next := len(text)
		if i+1 < len(matches) {
			next = matches[i+1].start
		}
		var body string
		if next > m.end {
			body = strings.TrimSpace(text[m.end:next])
		}

		key := m.heading
		if appendixAt >= 0 && m.start > appendixAt && m.heading != HeadingAppendix {
			key = appendixPrefix + m.heading
		}
		// A table of contents repeats headings with empty bodies; keep the
		// longest body seen for a key, first one on ties.
		if prev, ok := sections[key]; ok && runeLen(prev) >= runeLen(body) {
			continue
		}
		sections[key] = body
	}
	return sections
}

func stripBoilerplate(text string) string {
	start := strings.Index(text, boilerplateStart)
	if start < 0 {
		return text
	}
	end := strings.Index(text[start:], boilerplateEnd)
	if end < 0 {
		return text
	}
	end += start
	if nl := strings.IndexByte(text[end:], '\n'); nl >= 0 {
		return text[:start] + text[end+nl:]
	}
	return text[:start]
}

func findHeadings(text string) []headingMatch {
	titles := signatureLines(text)
	inTitle := func(pos int) bool {
		for _, t := range titles {
			if pos >= t[0] && pos < t[1] {
				return true
			}
		}
		return false
	}

	var out []headingMatch
	for _, h := range Headings {
		for off := 0; off < len(text); {
			i := strings.Index(text[off:], h)
			if i < 0 {
				break
			}
			start := off + i
			if !inTitle(start) {
				out = append(out, headingMatch{start: start, end: start + len(h), heading: h})
			}
			off = start + len(h)
		}
	}
	return out
}

// signatureLines returns the byte ranges of title-slide lines naming the
// report type, such as "TikTok Hashtag Analysis Presentation". Headings
// found inside them do not open a section.
func signatureLines(text string) [][2]int {
	var out [][2]int
	seen := 0
	for off := 0; off < len(text) && seen < typeScanLines; {
		end := strings.IndexByte(text[off:], '\n')
		if end < 0 {
			end = len(text)
		} else {
			end += off
		}
		line := strings.ToLower(strings.TrimSpace(text[off:end]))
		if line != "" {
			seen++
			for _, sig := range constants.TypeSignatures {
				if strings.Contains(line, sig.Pattern) {
					out = append(out, [2]int{off, end})
					break
				}
			}
		}
		off = end + 1
	}
	return out
}

// resolveOverlaps drops matches nested inside a longer match and orders
// the rest by position, longer first on ties.
func resolveOverlaps(matches []headingMatch) []headingMatch {
	kept := matches[:0:0]
	for i, m := range matches {
		nested := false
		for j, o := range matches {
			if i != j && o.size() > m.size() && o.start <= m.start && m.end <= o.end {
				nested = true
				break
			}
		}
		if !nested {
			kept = append(kept, m)
		}
	}
	sort.SliceStable(kept, func(a, b int) bool {
		if kept[a].start != kept[b].start {
			return kept[a].start < kept[b].start
		}
		return kept[a].size() > kept[b].size()
	})
	return kept
}
