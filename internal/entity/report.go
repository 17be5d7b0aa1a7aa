package entity

import (
	"github.com/garvonious-ui/cuervo-intel-sub000/constants"
)

// Report is the structured record produced from one autostrat export.
// Exactly one identifier field is set, chosen by ReportType.IdentifierKey,
// and it is written even when empty. Sub-records are nil when their section
// was not found in the document; a found section is always written.
type Report struct {
	ReportType  constants.ReportType `json:"report_type"`
	Username    *string              `json:"username,omitempty"`
	Hashtag     *string              `json:"hashtag,omitempty"`
	Keyword     *string              `json:"keyword,omitempty"`
	SearchQuery *string              `json:"search_query,omitempty"`
	ReportDate  string               `json:"report_date"`

	ExecutiveSummary *ExecutiveSummary `json:"executive_summary,omitempty"`
	Snapshot         *Snapshot         `json:"snapshot,omitempty"`
	CreatorSummary   *CreatorSummary   `json:"creator_summary,omitempty"`
	AudienceProfile  *AudienceProfile  `json:"audience_profile,omitempty"`

	Sponsorships          *Sponsorships            `json:"sponsorships,omitempty"`
	SponsorshipSuggestion *[]SponsorshipSuggestion `json:"future_sponsorship_suggestions,omitempty"`

	Statistics         *Statistics   `json:"statistics,omitempty"`
	EngagementAnalysis *SummaryBlock `json:"engagement_analysis,omitempty"`
	PostingAnalysis    *SummaryBlock `json:"posting_analysis,omitempty"`
	TopPosts           *TopPosts     `json:"top_posts,omitempty"`

	HowToWin         *HowToWin           `json:"how_to_win,omitempty"`
	HashtagAnalysis  *HashtagAnalysis    `json:"hashtag_analysis,omitempty"`
	Conversations    *[]Conversation     `json:"interesting_conversations,omitempty"`
	ConversationMap  *ConversationMap    `json:"conversation_map,omitempty"`
	ContentTrends    *[]ContentTrend     `json:"content_trends,omitempty"`
	BrandMentions    *[]BrandMention     `json:"brand_mentions,omitempty"`
	Campaigns        *[]Campaign         `json:"in_market_campaigns,omitempty"`
	CreatorArchetype *[]CreatorArchetype `json:"creator_archetypes,omitempty"`

	NewsAnalysis          *NewsAnalysis          `json:"news_analysis,omitempty"`
	NewsTrends            *[]ContentTrend        `json:"news_trends,omitempty"`
	TopStories            *[]TitledItem          `json:"top_stories,omitempty"`
	CompetitorCoverage    *[]TitledItem          `json:"competitor_coverage,omitempty"`
	TrendingNarratives    *[]Narrative           `json:"trending_narratives,omitempty"`
	SWOT                  *SWOT                  `json:"swot_analysis,omitempty"`
	KeyStatistics         *[]KeyStatistic        `json:"key_statistics,omitempty"`
	Quotes                *[]string              `json:"quotes,omitempty"`
	StrategicImplications *StrategicImplications `json:"strategic_implications,omitempty"`
}

// List wraps a parsed list section for a Report field. A section that was
// found but yielded nothing is stored as an empty list, not nil.
func List[T any](items []T) *[]T {
	if items == nil {
		items = []T{}
	}
	return &items
}

// Identifier returns whichever identifier field the report carries.
func (r *Report) Identifier() string {
	for _, p := range []*string{r.Username, r.Hashtag, r.Keyword, r.SearchQuery} {
		if p != nil {
			return *p
		}
	}
	return ""
}

// SetIdentifier stores id under the key the report type uses.
func (r *Report) SetIdentifier(id string) {
	r.Username, r.Hashtag, r.Keyword, r.SearchQuery = nil, nil, nil, nil
	switch r.ReportType.IdentifierKey() {
	case "username":
		r.Username = &id
	case "hashtag":
		r.Hashtag = &id
	case "keyword":
		r.Keyword = &id
	default:
		r.SearchQuery = &id
	}
}

// NewReport starts a report of type rt with its identifier and date set.
func NewReport(rt constants.ReportType, identifier, date string) *Report {
	r := &Report{ReportType: rt, ReportDate: date}
	r.SetIdentifier(identifier)
	return r
}
