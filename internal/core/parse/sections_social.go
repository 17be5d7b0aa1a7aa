package parse

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/garvonious-ui/cuervo-intel-sub000/internal/entity"
)

const (
	brandMaxLen      = 30
	archetypeMinPart = 20
)

var (
	reConversation = regexp.MustCompile(`Conversation \d+`)
	reArchetype    = regexp.MustCompile(`The [A-Z][^\n]{3,40}`)
	reAppealLine   = regexp.MustCompile(`\nAppeal\n`)
	reHashtag      = regexp.MustCompile(`#[\p{L}\p{N}_]+`)

	hashtagLabels = []string{"Key Findings", "Opportunities", "Gaps, Risks or Unmet Needs", "Strategic Actions"}
	hashtagStops  = []string{HeadingConversations, HeadingContentTrends}
	brandFields   = []string{"Context", "Reception", "Sentiment", "Verbatims"}
)

// titledPairs reads title/description pairs: a paragraph of at most
// th.TitleMaxLen runes titles the paragraph after it; a longer paragraph
// with several lines carries its own title on the first line.
func titledPairs(text string, th Thresholds) []entity.TitledItem {
	out := []entity.TitledItem{}
	paras := SplitBlocks(text)
	for i := 0; i < len(paras); {
		p := paras[i]
		if runeLen(p) <= th.TitleMaxLen && i+1 < len(paras) {
			out = append(out, entity.TitledItem{Title: p, Description: paras[i+1]})
			i += 2
			continue
		}
		if lines := SplitLines(p); len(lines) >= 2 {
			out = append(out, entity.TitledItem{Title: lines[0], Description: strings.Join(lines[1:], " ")})
		}
		i++
	}
	return out
}

func ParseContentTrends(text string, th Thresholds) []entity.ContentTrend {
	pairs := titledPairs(text, th)
	out := make([]entity.ContentTrend, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, entity.ContentTrend{Trend: p.Title, Description: p.Description})
	}
	return out
}

func ParseInMarketCampaigns(text string, th Thresholds) []entity.Campaign {
	pairs := titledPairs(text, th)
	out := make([]entity.Campaign, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, entity.Campaign{Campaign: p.Title, Description: p.Description})
	}
	return out
}

// ParseTitledItems reads story lists such as Top Stories and Competitor
// Coverage.
func ParseTitledItems(text string, th Thresholds) []entity.TitledItem {
	return titledPairs(text, th)
}

// ParseCreatorArchetypes reads "The <Name>" archetype blocks with their
// Appeal and Examples sub-blocks.
func ParseCreatorArchetypes(text string, th Thresholds) []entity.CreatorArchetype {
	out := []entity.CreatorArchetype{}
	locs := reArchetype.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		for _, part := range reAppealLine.Split(text, -1) {
			part = strings.TrimSpace(part)
			if runeLen(part) <= archetypeMinPart {
				continue
			}
			lines := SplitLines(part)
			desc := ""
			if len(lines) > 1 {
				desc = strings.Join(lines[1:min(3, len(lines))], " ")
			}
			out = append(out, entity.CreatorArchetype{Archetype: lines[0], Description: desc, Examples: []string{}})
		}
		return out
	}

	for i, loc := range locs {
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		arch := entity.CreatorArchetype{
			Archetype: strings.TrimSpace(text[loc[0]:loc[1]]),
			Examples:  []string{},
		}
		block := strings.TrimSpace(text[loc[1]:end])
		desc, rest, hasAppeal := strings.Cut(block, "Appeal")
		arch.Description = strings.TrimSpace(desc)
		if hasAppeal {
			// Any further "Appeal" belongs to the appeal text itself.
			rest, _, _ = strings.Cut(rest, "Appeal")
			appeal, examples, hasExamples := strings.Cut(rest, "Examples")
			arch.Appeal = strings.TrimSpace(appeal)
			if hasExamples {
				for _, ex := range SplitLines(examples) {
					if runeLen(ex) > th.MinItemLen {
						arch.Examples = append(arch.Examples, ex)
					}
				}
			}
		}
		out = append(out, arch)
	}
	return out
}

// ParseBrandMentions reads brand blocks: a short capitalised brand line,
// then Context / Reception / Sentiment / Verbatims sub-blocks. Brands with
// no context are dropped.
func ParseBrandMentions(text string, _ Thresholds) []entity.BrandMention {
	out := []entity.BrandMention{}
	lines := SplitLines(text)

	var (
		current *entity.BrandMention
		field   string
	)
	flush := func() {
		if current == nil {
			return
		}
		current.Context = strings.TrimSpace(current.Context)
		current.Reception = strings.TrimSpace(current.Reception)
		current.Sentiment = strings.TrimSpace(current.Sentiment)
		if current.Context != "" {
			out = append(out, *current)
		}
	}

	for i, line := range lines {
		if isBrandField(line) {
			field = strings.ToLower(line)
			continue
		}
		// A brand line opens a new block before any field label, or when
		// it is directly followed by "Context".
		startsBlock := i+1 < len(lines) && lines[i+1] == brandFields[0]
		if looksLikeBrand(line) && (field == "" || startsBlock) {
			flush()
			current = &entity.BrandMention{Brand: line, Verbatims: []string{}}
			field = ""
			continue
		}
		if current == nil {
			continue
		}
		switch field {
		case "context", "":
			current.Context += " " + line
		case "reception":
			current.Reception += " " + line
		case "sentiment":
			current.Sentiment += " " + line
		case "verbatims":
			current.Verbatims = append(current.Verbatims, line)
		}
	}
	flush()
	return out
}

func isBrandField(line string) bool {
	for _, f := range brandFields {
		if line == f {
			return true
		}
	}
	return false
}

func looksLikeBrand(line string) bool {
	if runeLen(line) >= brandMaxLen || strings.HasSuffix(line, ".") {
		return false
	}
	r, _ := utf8.DecodeRuneInString(line)
	return unicode.IsUpper(r)
}

// ParseHashtagAnalysis reads the findings / opportunities / gaps / actions
// lists. Headings sharing a slide row are de-interleaved.
func ParseHashtagAnalysis(text string, th Thresholds) *entity.HashtagAnalysis {
	lists, first := pairedSections(text, hashtagLabels, hashtagStops, th.MinBlockLen, th)
	res := &entity.HashtagAnalysis{
		KeyFindings:         lists["Key Findings"],
		Opportunities:       lists["Opportunities"],
		GapsRisksUnmetNeeds: lists["Gaps, Risks or Unmet Needs"],
		StrategicActions:    lists["Strategic Actions"],
		RelatedHashtags:     []string{},
	}
	if first > 0 {
		res.Summary = strings.TrimSpace(text[:first])
	}
	seen := map[string]bool{}
	for _, tag := range reHashtag.FindAllString(res.Summary, -1) {
		if !seen[tag] {
			seen[tag] = true
			res.RelatedHashtags = append(res.RelatedHashtags, tag)
		}
	}
	return res
}

// ParseConversations reads the "Conversation N" blocks: title line, then
// description.
func ParseConversations(text string, _ Thresholds) []entity.Conversation {
	out := []entity.Conversation{}
	for _, part := range reConversation.Split(text, -1)[1:] {
		lines := SplitLines(part)
		if len(lines) == 0 {
			continue
		}
		out = append(out, entity.Conversation{Title: lines[0], Description: strings.Join(lines[1:], " ")})
	}
	return out
}

// ParseConversationMap reads the conversation map sub-headings.
func ParseConversationMap(text string, th Thresholds) *entity.ConversationMap {
	res := &entity.ConversationMap{OverarchingPatterns: []string{}, ActionOpportunities: []string{}}
	parts := splitSubHeadings(text,
		"Conversation Map Analysis", "Relationship Analysis", "Overarching Patterns", "Conversation Action Opportunities")

	res.Summary = firstOf(parts, "Conversation Map Analysis", preamble)
	res.RelationshipAnalysis = parts["Relationship Analysis"]
	if v := parts["Overarching Patterns"]; v != "" {
		res.OverarchingPatterns = blocksLongerThan(v, th.MinBlockLen)
	}
	if v := parts["Conversation Action Opportunities"]; v != "" {
		res.ActionOpportunities = blocksLongerThan(v, th.MinBlockLen)
	}
	return res
}
