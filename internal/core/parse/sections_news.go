package parse

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/garvonious-ui/cuervo-intel-sub000/internal/core/columns"
	"github.com/garvonious-ui/cuervo-intel-sub000/internal/entity"
)

var (
	reSentimentPct = regexp.MustCompile(`(?i)\b(positive|neutral|negative)\b[^\d%]{0,20}?(\d+(?:\.\d+)?)\s*%`)
	rePctSentiment = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*%\s*(positive|neutral|negative)\b`)
	reStatLead     = regexp.MustCompile(`^([$€£]?\d[\d,]*(?:\.\d+)?\s*(?:[%KkMmBbx×+]|bn|mn)?)(?:\s+(.+))?$`)

	newsMarkers   = []string{"Sentiment", "Key Topics", "Opportunities", "Risks"}
	swotLabels    = []string{"Strengths", "Weaknesses", "Opportunities", "Threats"}
	actionMarkers = []string{"Action Items", "Recommended Actions"}
	quoteChars    = `"'“”‘’`
)

// ParseNewsAnalysis reads the news analysis summary, the sentiment split,
// the key topics and the paired Opportunities / Risks lists.
func ParseNewsAnalysis(text string, th Thresholds) *entity.NewsAnalysis {
	res := &entity.NewsAnalysis{KeyTopics: []string{}}

	first := len(text)
	for _, m := range newsMarkers {
		if i := strings.Index(text, m); i >= 0 && i < first {
			first = i
		}
	}
	res.Summary = strings.TrimSpace(text[:first])

	res.SentimentBreakdown = sentimentBreakdown(sentimentRegion(text))

	if i := strings.Index(text, "Key Topics"); i >= 0 {
		region := text[i+len("Key Topics"):]
		for _, m := range newsMarkers {
			if j := strings.Index(region, m); j >= 0 {
				region = region[:j]
			}
		}
		for _, l := range SplitLines(region) {
			l = strings.TrimSpace(reBullet.ReplaceAllString(l, ""))
			if l != "" && runeLen(l) <= th.TitleMaxLen {
				res.KeyTopics = append(res.KeyTopics, l)
			}
		}
	}

	lists, _ := pairedSections(text, []string{"Opportunities", "Risks"}, nil, th.MinItemLen, th)
	res.Opportunities = lists["Opportunities"]
	res.Risks = lists["Risks"]
	return res
}

// sentimentRegion narrows the text to the sentiment panel: the span after
// the Sentiment label up to the next label, or else only the lines that are
// nothing but a label and a percentage. Summary prose is never scanned.
func sentimentRegion(text string) string {
	if i := strings.Index(text, newsMarkers[0]); i >= 0 {
		region := text[i+len(newsMarkers[0]):]
		for _, m := range newsMarkers[1:] {
			if j := strings.Index(region, m); j >= 0 {
				region = region[:j]
			}
		}
		return region
	}
	var panel []string
	for _, l := range SplitLines(text) {
		l = strings.TrimSpace(l)
		if wholeMatch(reSentimentPct, l) || wholeMatch(rePctSentiment, l) {
			panel = append(panel, l)
		}
	}
	return strings.Join(panel, "\n")
}

func wholeMatch(re *regexp.Regexp, s string) bool {
	loc := re.FindStringIndex(s)
	return loc != nil && loc[0] == 0 && loc[1] == len(s)
}

func sentimentBreakdown(text string) entity.SentimentBreakdown {
	var sb entity.SentimentBreakdown
	seen := map[string]bool{}
	set := func(label, value string) {
		label = strings.ToLower(label)
		v := ParseNumber(value)
		if seen[label] || v > 100 {
			return
		}
		seen[label] = true
		switch label {
		case "positive":
			sb.PositivePct = v
		case "neutral":
			sb.NeutralPct = v
		case "negative":
			sb.NegativePct = v
		}
	}
	for _, m := range reSentimentPct.FindAllStringSubmatch(text, -1) {
		set(m[1], m[2])
	}
	for _, m := range rePctSentiment.FindAllStringSubmatch(text, -1) {
		set(m[2], m[1])
	}
	return sb
}

// newsPairs reads title/description pairs from news slides. Three layouts
// are recognised: alternating title and description paragraphs, cards two
// to a row with both titles before both descriptions, and anything else
// through titledPairs.
func newsPairs(text string, th Thresholds) []entity.TitledItem {
	paras := SplitBlocks(text)
	short := func(s string) bool { return runeLen(s) <= th.TitleMaxLen }

	if n := len(paras); n > 0 && n%2 == 0 {
		cols := columns.Deinterleave(paras, 2)
		if all(cols[0], short) && none(cols[1], short) {
			out := make([]entity.TitledItem, 0, n/2)
			for i := range cols[0] {
				out = append(out, entity.TitledItem{Title: cols[0][i], Description: cols[1][i]})
			}
			return out
		}
	}

	if n := len(paras); n > 0 && n%4 == 0 {
		out := make([]entity.TitledItem, 0, n/2)
		for g := 0; g < n; g += 4 {
			row := paras[g : g+4]
			if !short(row[0]) || !short(row[1]) || short(row[2]) || short(row[3]) {
				out = nil
				break
			}
			out = append(out,
				entity.TitledItem{Title: row[0], Description: row[2]},
				entity.TitledItem{Title: row[1], Description: row[3]})
		}
		if out != nil {
			return out
		}
	}

	return titledPairs(text, th)
}

func all(items []string, pred func(string) bool) bool {
	for _, s := range items {
		if !pred(s) {
			return false
		}
	}
	return true
}

func none(items []string, pred func(string) bool) bool {
	for _, s := range items {
		if pred(s) {
			return false
		}
	}
	return true
}

func ParseNewsTrends(text string, th Thresholds) []entity.ContentTrend {
	pairs := newsPairs(text, th)
	out := make([]entity.ContentTrend, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, entity.ContentTrend{Trend: p.Title, Description: p.Description})
	}
	return out
}

// ParseTrendingNarratives reads narrative/description pairs. Brands are
// filled in by the assembler once brand mentions are known.
func ParseTrendingNarratives(text string, th Thresholds) []entity.Narrative {
	pairs := newsPairs(text, th)
	out := make([]entity.Narrative, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, entity.Narrative{Narrative: p.Title, Description: p.Description, BrandsInvolved: []string{}})
	}
	return out
}

// ParseSWOT reads the four quadrants. Labels sharing a slide row mark a
// 2x2 grid and their bodies are de-interleaved.
func ParseSWOT(text string, th Thresholds) *entity.SWOT {
	lists, _ := pairedSections(text, swotLabels, nil, th.MinItemLen, th)
	return &entity.SWOT{
		Strengths:     lists["Strengths"],
		Weaknesses:    lists["Weaknesses"],
		Opportunities: lists["Opportunities"],
		Threats:       lists["Threats"],
	}
}

// ParseKeyStatistics reads lines that open with a figure. The rest of the
// line describes it, or the next line does when the figure stands alone.
func ParseKeyStatistics(text string, _ Thresholds) []entity.KeyStatistic {
	out := []entity.KeyStatistic{}
	lines := SplitLines(text)
	for i := 0; i < len(lines); i++ {
		m := reStatLead.FindStringSubmatch(lines[i])
		if m == nil {
			continue
		}
		stat := entity.KeyStatistic{Value: strings.TrimSpace(m[1]), Description: strings.TrimSpace(m[2])}
		if stat.Description == "" && i+1 < len(lines) && !reStatLead.MatchString(lines[i+1]) {
			stat.Description = lines[i+1]
			i++
		}
		out = append(out, stat)
	}
	return out
}

// ParseNotableQuotes reads quoted blocks, dropping attribution lines.
func ParseNotableQuotes(text string, _ Thresholds) []string {
	out := []string{}
	for _, block := range SplitBlocks(text) {
		if r, _ := utf8.DecodeRuneInString(block); !strings.ContainsRune(quoteChars, r) {
			continue
		}
		var parts []string
		for _, l := range SplitLines(block) {
			if strings.HasPrefix(l, "—") || strings.HasPrefix(l, "–") || strings.HasPrefix(l, "- ") {
				continue
			}
			parts = append(parts, l)
		}
		if q := strings.Trim(strings.Join(parts, " "), quoteChars+" "); q != "" {
			out = append(out, q)
		}
	}
	return out
}

// ParseStrategicImplications reads the summary and the action items, which
// either follow an "Action Items" label or are the bulleted lines.
func ParseStrategicImplications(text string, _ Thresholds) *entity.StrategicImplications {
	res := &entity.StrategicImplications{ActionItems: []string{}}

	if i, n := indexAny(text, actionMarkers...); i >= 0 {
		res.Summary = strings.TrimSpace(text[:i])
		for _, block := range SplitBlocks(text[i+n:]) {
			res.ActionItems = append(res.ActionItems, blockItems(block)...)
		}
		return res
	}

	var summary []string
	for _, l := range SplitLines(text) {
		if reBullet.MatchString(l) {
			res.ActionItems = append(res.ActionItems, strings.TrimSpace(reBullet.ReplaceAllString(l, "")))
			continue
		}
		summary = append(summary, l)
	}
	res.Summary = strings.Join(summary, "\n")
	return res
}

// blockItems splits a bulleted block into its lines and keeps any other
// block whole.
func blockItems(block string) []string {
	lines := SplitLines(block)
	for _, l := range lines {
		if !reBullet.MatchString(l) {
			return []string{strings.Join(lines, " ")}
		}
	}
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		out = append(out, strings.TrimSpace(reBullet.ReplaceAllString(l, "")))
	}
	return out
}
