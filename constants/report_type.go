package constants

import (
	"strings"
)

// ReportType is the kind of autostrat export a document was generated as.
// The string value is what lands in the report_type field of the JSON output.
type ReportType string

const (
	InstagramProfile ReportType = "instagram_profile"
	TikTokProfile    ReportType = "tiktok_profile"
	InstagramHashtag ReportType = "instagram_hashtag"
	TikTokHashtag    ReportType = "tiktok_hashtag"
	TikTokKeywords   ReportType = "tiktok_keywords"
	TikTokSearch     ReportType = "tiktok_search"
	GoogleNews       ReportType = "google_news"
)

var allReportTypes = []ReportType{
	InstagramProfile,
	TikTokProfile,
	InstagramHashtag,
	TikTokHashtag,
	TikTokKeywords,
	TikTokSearch,
	GoogleNews,
}

var reportDirs = map[ReportType]string{
	InstagramProfile: "instagram_profiles",
	TikTokProfile:    "tiktok_profiles",
	InstagramHashtag: "instagram_hashtags",
	TikTokHashtag:    "tiktok_hashtags",
	TikTokKeywords:   "tiktok_keywords",
	TikTokSearch:     "tiktok_searches",
	GoogleNews:       "google_news",
}

var reportLabels = map[ReportType]string{
	InstagramProfile: "Instagram Profiles",
	TikTokProfile:    "TikTok Profiles",
	InstagramHashtag: "Instagram Hashtags",
	TikTokHashtag:    "TikTok Hashtags",
	TikTokKeywords:   "TikTok Keywords",
	TikTokSearch:     "TikTok Searches",
	GoogleNews:       "Google News",
}

// JSON key each report type stores its identifier under.
var identifierKeys = map[ReportType]string{
	InstagramProfile: "username",
	TikTokProfile:    "username",
	InstagramHashtag: "hashtag",
	TikTokHashtag:    "hashtag",
	TikTokKeywords:   "keyword",
	TikTokSearch:     "search_query",
	GoogleNews:       "search_query",
}

// ReportTypes returns every known report type in display order.
func ReportTypes() []ReportType {
	out := make([]ReportType, len(allReportTypes))
	copy(out, allReportTypes)
	return out
}

// Dir is the output subdirectory for the type.
func (t ReportType) Dir() string { return reportDirs[t] }

// Label is the human readable name.
func (t ReportType) Label() string { return reportLabels[t] }

// IdentifierKey is the JSON key holding the report identifier.
func (t ReportType) IdentifierKey() string { return identifierKeys[t] }

func (t ReportType) Valid() bool {
	_, ok := reportDirs[t]
	return ok
}

func (t ReportType) IsProfile() bool {
	return t == InstagramProfile || t == TikTokProfile
}

// ParseReportType accepts either the kind string ("tiktok_hashtag") or the
// directory name ("tiktok_hashtags").
func ParseReportType(input string) (ReportType, bool) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		return "", false
	}
	for _, t := range allReportTypes {
		if normalized == string(t) || normalized == reportDirs[t] {
			return t, true
		}
	}
	return "", false
}
