package entity

// AudienceProfile is the needs/objections/desires/pain-points breakdown.
type AudienceProfile struct {
	Summary    string   `json:"summary"`
	Needs      []string `json:"needs"`
	Objections []string `json:"objections"`
	Desires    []string `json:"desires"`
	PainPoints []string `json:"pain_points"`
}

func NewAudienceProfile() *AudienceProfile {
	return &AudienceProfile{
		Needs:      []string{},
		Objections: []string{},
		Desires:    []string{},
		PainPoints: []string{},
	}
}

type ExecutiveSummary struct {
	Overview      string   `json:"overview"`
	KeyInsights   []string `json:"key_insights"`
	SearchTerm    string   `json:"search_term"`
	SearchPurpose string   `json:"search_purpose"`
}

// Snapshot holds the headline account numbers of a profile report.
type Snapshot struct {
	Followers         float64 `json:"followers"`
	Following         float64 `json:"following"`
	AvgLikes          float64 `json:"avg_likes"`
	AvgComments       float64 `json:"avg_comments"`
	AvgEngagementRate float64 `json:"avg_engagement_rate"`
}

type CreatorSummary struct {
	SearchPurpose string   `json:"search_purpose"`
	Topline       string   `json:"topline"`
	WhatItMeans   string   `json:"what_it_means"`
	CommonThemes  []string `json:"common_themes"`
	WhatHits      string   `json:"what_hits"`
	WhatMisses    string   `json:"what_misses"`
}

type HowToWin struct {
	Summary           string   `json:"summary"`
	Territories       []string `json:"territories"`
	AudienceVerbatims []string `json:"audience_verbatims"`
}

type Sponsorships struct {
	Summary            string   `json:"summary"`
	IntegrationSummary string   `json:"integration_summary"`
	Categories         []string `json:"categories"`
	Companies          []string `json:"companies"`
}

type SponsorshipSuggestion struct {
	Category      string   `json:"category"`
	WhyItWorks    string   `json:"why_it_works"`
	HowToActivate []string `json:"how_to_activate"`
}

type ContentTrend struct {
	Trend       string `json:"trend"`
	Description string `json:"description"`
}

// TitledItem is a title/description pair (top stories, competitor coverage).
type TitledItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type Campaign struct {
	Campaign    string `json:"campaign"`
	Description string `json:"description"`
}

type CreatorArchetype struct {
	Archetype   string   `json:"archetype"`
	Description string   `json:"description"`
	Appeal      string   `json:"appeal"`
	Examples    []string `json:"examples"`
}

type BrandMention struct {
	Brand     string   `json:"brand"`
	Context   string   `json:"context"`
	Reception string   `json:"reception"`
	Sentiment string   `json:"sentiment"`
	Verbatims []string `json:"verbatims"`
}

type HashtagAnalysis struct {
	Summary             string   `json:"summary"`
	KeyFindings         []string `json:"key_findings"`
	Opportunities       []string `json:"opportunities"`
	GapsRisksUnmetNeeds []string `json:"gaps_risks_unmet_needs"`
	StrategicActions    []string `json:"strategic_actions"`
	RelatedHashtags     []string `json:"related_hashtags"`
}

type Conversation struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type ConversationMap struct {
	Summary              string   `json:"summary"`
	RelationshipAnalysis string   `json:"relationship_analysis"`
	OverarchingPatterns  []string `json:"overarching_patterns"`
	ActionOpportunities  []string `json:"action_opportunities"`
}

// TopPost is one of the most/least performing posts called out by the deck.
type TopPost struct {
	Caption        string  `json:"caption"`
	EngagementRate float64 `json:"engagement_rate"`
	Likes          float64 `json:"likes"`
	Comments       float64 `json:"comments"`
	Views          float64 `json:"views"`
	Link           string  `json:"link"`
}

type TopPosts struct {
	MostLiked      *TopPost `json:"most_liked,omitempty"`
	LeastLiked     *TopPost `json:"least_liked,omitempty"`
	MostCommented  *TopPost `json:"most_commented,omitempty"`
	LeastCommented *TopPost `json:"least_commented,omitempty"`
	MostEngaged    *TopPost `json:"most_engaged,omitempty"`
	LeastEngaged   *TopPost `json:"least_engaged,omitempty"`
}

// PostStats is the min/max/median/avg grid of one statistics slide.
type PostStats struct {
	MinViews          float64 `json:"min_views"`
	MaxViews          float64 `json:"max_views"`
	MedianViews       float64 `json:"median_views"`
	AvgViews          float64 `json:"avg_views"`
	MinLikes          float64 `json:"min_likes"`
	MaxLikes          float64 `json:"max_likes"`
	MedianLikes       float64 `json:"median_likes"`
	AvgLikes          float64 `json:"avg_likes"`
	MinComments       float64 `json:"min_comments"`
	MaxComments       float64 `json:"max_comments"`
	MedianComments    float64 `json:"median_comments"`
	AvgComments       float64 `json:"avg_comments"`
	AvgEngagementRate float64 `json:"avg_engagement_rate"`
	AvgShares         float64 `json:"avg_shares"`
}

type Statistics struct {
	AllPosts      PostStats            `json:"all_posts"`
	ByContentType map[string]PostStats `json:"by_content_type,omitempty"`
}

type SummaryBlock struct {
	Summary string `json:"summary"`
}

type SentimentBreakdown struct {
	PositivePct float64 `json:"positive_pct"`
	NeutralPct  float64 `json:"neutral_pct"`
	NegativePct float64 `json:"negative_pct"`
}

type NewsAnalysis struct {
	Summary            string             `json:"summary"`
	SentimentBreakdown SentimentBreakdown `json:"sentiment_breakdown"`
	KeyTopics          []string           `json:"key_topics"`
	Opportunities      []string           `json:"opportunities"`
	Risks              []string           `json:"risks"`
}

type Narrative struct {
	Narrative      string   `json:"narrative"`
	Description    string   `json:"description"`
	BrandsInvolved []string `json:"brands_involved"`
}

type SWOT struct {
	Strengths     []string `json:"strengths"`
	Weaknesses    []string `json:"weaknesses"`
	Opportunities []string `json:"opportunities"`
	Threats       []string `json:"threats"`
}

type KeyStatistic struct {
	Value       string `json:"value"`
	Description string `json:"description"`
}

type StrategicImplications struct {
	Summary     string   `json:"summary"`
	ActionItems []string `json:"action_items"`
}
