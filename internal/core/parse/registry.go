package parse

import (
	"strings"

	"github.com/garvonious-ui/cuervo-intel-sub000/internal/entity"
)

// SectionKind names a section parser.
type SectionKind string

const (
	KindExecutiveSummary      SectionKind = "executive_summary"
	KindAudienceProfile       SectionKind = "audience_profile"
	KindSnapshot              SectionKind = "snapshot"
	KindCreatorSummary        SectionKind = "creator_summary"
	KindHowToWin              SectionKind = "how_to_win"
	KindSponsorships          SectionKind = "sponsorships"
	KindFutureSponsorships    SectionKind = "future_sponsorships"
	KindContentTrends         SectionKind = "content_trends"
	KindInMarketCampaigns     SectionKind = "in_market_campaigns"
	KindTitledItems           SectionKind = "titled_items"
	KindCreatorArchetypes     SectionKind = "creator_archetypes"
	KindBrandMentions         SectionKind = "brand_mentions"
	KindHashtagAnalysis       SectionKind = "hashtag_analysis"
	KindConversations         SectionKind = "interesting_conversations"
	KindConversationMap       SectionKind = "conversation_map"
	KindTopPostPair           SectionKind = "top_post_pair"
	KindStatistics            SectionKind = "statistics"
	KindStatisticsByPostType  SectionKind = "statistics_by_post_type"
	KindNewsAnalysis          SectionKind = "news_analysis"
	KindNewsTrends            SectionKind = "news_trends"
	KindTrendingNarratives    SectionKind = "trending_narratives"
	KindSWOT                  SectionKind = "swot_analysis"
	KindKeyStatistics         SectionKind = "key_statistics"
	KindNotableQuotes         SectionKind = "notable_quotes"
	KindStrategicImplications SectionKind = "strategic_implications"
	KindSummaryBlock          SectionKind = "summary_block"
)

// SectionParser turns one section body into its record. Parsers never
// fail; missing content yields an empty record.
type SectionParser func(text string, th Thresholds) any

// PostPair is the most/least result of a top-post slide.
type PostPair struct {
	Most  *entity.TopPost `json:"most,omitempty"`
	Least *entity.TopPost `json:"least,omitempty"`
}

var registry = map[SectionKind]SectionParser{
	KindExecutiveSummary:      func(t string, th Thresholds) any { return ParseExecutiveSummary(t, th) },
	KindAudienceProfile:       func(t string, th Thresholds) any { return ParseAudienceProfile(t, th) },
	KindSnapshot:              func(t string, th Thresholds) any { return ParseSnapshot(t, th) },
	KindCreatorSummary:        func(t string, th Thresholds) any { return ParseCreatorSummary(t, th) },
	KindHowToWin:              func(t string, th Thresholds) any { return ParseHowToWin(t, th) },
	KindSponsorships:          func(t string, th Thresholds) any { return ParseSponsorships(t, th) },
	KindFutureSponsorships:    func(t string, th Thresholds) any { return ParseFutureSponsorships(t, th) },
	KindContentTrends:         func(t string, th Thresholds) any { return ParseContentTrends(t, th) },
	KindInMarketCampaigns:     func(t string, th Thresholds) any { return ParseInMarketCampaigns(t, th) },
	KindTitledItems:           func(t string, th Thresholds) any { return ParseTitledItems(t, th) },
	KindCreatorArchetypes:     func(t string, th Thresholds) any { return ParseCreatorArchetypes(t, th) },
	KindBrandMentions:         func(t string, th Thresholds) any { return ParseBrandMentions(t, th) },
	KindHashtagAnalysis:       func(t string, th Thresholds) any { return ParseHashtagAnalysis(t, th) },
	KindConversations:         func(t string, th Thresholds) any { return ParseConversations(t, th) },
	KindConversationMap:       func(t string, th Thresholds) any { return ParseConversationMap(t, th) },
	KindStatistics:            func(t string, th Thresholds) any { return ParseStatistics(t, th) },
	KindStatisticsByPostType:  func(t string, th Thresholds) any { return ParseStatisticsByPostType(t, th) },
	KindNewsAnalysis:          func(t string, th Thresholds) any { return ParseNewsAnalysis(t, th) },
	KindNewsTrends:            func(t string, th Thresholds) any { return ParseNewsTrends(t, th) },
	KindTrendingNarratives:    func(t string, th Thresholds) any { return ParseTrendingNarratives(t, th) },
	KindSWOT:                  func(t string, th Thresholds) any { return ParseSWOT(t, th) },
	KindKeyStatistics:         func(t string, th Thresholds) any { return ParseKeyStatistics(t, th) },
	KindNotableQuotes:         func(t string, th Thresholds) any { return ParseNotableQuotes(t, th) },
	KindStrategicImplications: func(t string, th Thresholds) any { return ParseStrategicImplications(t, th) },
	KindSummaryBlock:          func(t string, th Thresholds) any { return ParseSummaryBlock(t, th) },
	KindTopPostPair: func(t string, th Thresholds) any {
		most, least := ParseTopPostPair(t, th)
		return PostPair{Most: most, Least: least}
	},
}

var headingKinds = map[string]SectionKind{
	HeadingExecutiveSummary:      KindExecutiveSummary,
	HeadingAudienceProfile:       KindAudienceProfile,
	HeadingSnapshot:              KindSnapshot,
	HeadingCreatorSummary:        KindCreatorSummary,
	HeadingHashtagAnalysis:       KindHashtagAnalysis,
	HeadingConversations:         KindConversations,
	HeadingConversationMap:       KindConversationMap,
	HeadingContentTrends:         KindContentTrends,
	HeadingBrandMentions:         KindBrandMentions,
	HeadingInMarketCampaigns:     KindInMarketCampaigns,
	HeadingHowToWin:              KindHowToWin,
	HeadingCreatorArchetypes:     KindCreatorArchetypes,
	HeadingSponsorships:          KindSponsorships,
	HeadingFutureSponsorships:    KindFutureSponsorships,
	HeadingEngagementAnalysis:    KindSummaryBlock,
	HeadingPostingAnalysis:       KindSummaryBlock,
	HeadingStatsByPostType:       KindStatisticsByPostType,
	HeadingStatsAllPosts:         KindStatistics,
	HeadingStats:                 KindStatistics,
	HeadingMostLeastLiked:        KindTopPostPair,
	HeadingMostLeastComments:     KindTopPostPair,
	HeadingMostLeastEngaged:      KindTopPostPair,
	HeadingNewsAnalysis:          KindNewsAnalysis,
	HeadingNewsTrends:            KindNewsTrends,
	HeadingTopStories:            KindTitledItems,
	HeadingCompetitorCoverage:    KindTitledItems,
	HeadingTrendingNarratives:    KindTrendingNarratives,
	HeadingSWOT:                  KindSWOT,
	HeadingKeyStatistics:         KindKeyStatistics,
	HeadingNotableQuotes:         KindNotableQuotes,
	HeadingStrategicImplications: KindStrategicImplications,
}

// Lookup returns the parser registered for kind.
func Lookup(kind SectionKind) (SectionParser, bool) {
	p, ok := registry[kind]
	return p, ok
}

// KindForHeading maps a section key, appendix keys included, to the kind
// of parser that reads it.
func KindForHeading(heading string) (SectionKind, bool) {
	k, ok := headingKinds[strings.TrimPrefix(heading, appendixPrefix)]
	return k, ok
}

// ParseSection runs the parser for a segmented section. It reports false
// for headings no parser reads, such as the appendix itself.
func ParseSection(heading, text string, th Thresholds) (any, bool) {
	kind, ok := KindForHeading(heading)
	if !ok {
		return nil, false
	}
	p, ok := Lookup(kind)
	if !ok {
		return nil, false
	}
	return p(text, th), true
}
