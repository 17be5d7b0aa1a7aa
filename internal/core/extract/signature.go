package extract

import (
	"strings"

	"github.com/garvonious-ui/cuervo-intel-sub000/constants"
)

var (
	newsCues    = []string{"google news", "news analysis", "top stories", "trending narratives"}
	profileCues = []string{"snapshot", "creator summary", "followers", "sponsorship analysis"}
	searchCues  = []string{"what you searched", "why you're searching"}
)

// InjectSignature makes sure a slide-deck blob carries a report-type line near
// the top. Decks often drop the title slide subtitle the PDF export has, so
// the type is inferred from content cues. The signature is inserted as the
// second non-blank line; text that already has one within the first window
// characters is returned unchanged.
func InjectSignature(text string, window int) (string, bool) {
	head := []rune(strings.ToLower(text))
	if len(head) > window {
		head = head[:window]
	}
	headStr := string(head)
	for _, sig := range constants.TypeSignatures {
		if strings.Contains(headStr, sig.Pattern) {
			return text, false
		}
	}

	sig := inferSignature(strings.ToLower(text))
	if sig == "" {
		return text, false
	}

	lines := strings.Split(text, "\n")
	for i, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		out := make([]string, 0, len(lines)+1)
		out = append(out, lines[:i+1]...)
		out = append(out, sig)
		out = append(out, lines[i+1:]...)
		return strings.Join(out, "\n"), true
	}
	return text, false
}

func inferSignature(lower string) string {
	if containsAny(lower, newsCues) {
		return "Google News Analysis Presentation"
	}

	tiktok := strings.Count(lower, "tiktok")
	instagram := strings.Count(lower, "instagram")
	var platform string
	switch {
	case tiktok == 0 && instagram == 0:
		return ""
	case tiktok >= instagram:
		platform = "TikTok"
	default:
		platform = "Instagram"
	}

	switch {
	case containsAny(lower, profileCues):
		return platform + " Profile Analysis Presentation"
	case strings.Contains(lower, "hashtag analysis"):
		return platform + " Hashtag Analysis Presentation"
	case platform == "TikTok" && strings.Contains(lower, "keyword"):
		return "TikTok Keyword Analysis Presentation"
	case platform == "TikTok" && containsAny(lower, searchCues):
		return "TikTok Search Analysis Presentation"
	}
	return ""
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
