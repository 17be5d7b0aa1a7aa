package parse

import (
	"fmt"
	"strings"

	"github.com/garvonious-ui/cuervo-intel-sub000/constants"
	"github.com/garvonious-ui/cuervo-intel-sub000/internal/common"
	"github.com/garvonious-ui/cuervo-intel-sub000/internal/entity"
)

// builder fills the sub-records one report type carries.
type builder func(r *entity.Report, s Sections, th Thresholds)

var builders = map[constants.ReportType]builder{
	constants.TikTokHashtag:    buildTikTokHashtag,
	constants.InstagramHashtag: buildInstagramHashtag,
	constants.TikTokKeywords:   buildTikTokKeywords,
	constants.TikTokSearch:     buildTikTokSearch,
	constants.TikTokProfile:    buildProfile(HeadingStats, HeadingStatsAllPosts),
	constants.InstagramProfile: buildProfile(HeadingStatsAllPosts, HeadingStats),
	constants.GoogleNews:       buildGoogleNews,
}

// Assemble builds the typed report for meta.Type out of segmented
// sections. Sections the type does not use are ignored and missing ones
// leave their field empty.
func Assemble(meta Metadata, sections Sections, th Thresholds) (*entity.Report, error) {
	build, ok := builders[meta.Type]
	if !ok {
		return nil, common.NewAppError("UNKNOWN_REPORT_TYPE",
			fmt.Sprintf("no builder for report type %q", meta.Type), common.ErrUnknownReportType)
	}
	r := entity.NewReport(meta.Type, meta.Identifier, meta.Date)
	build(r, sections, th)
	return r, nil
}

// section runs the registered parser for heading, when the deck has that
// section, and hands the typed record to set.
func section[T any](s Sections, heading string, th Thresholds, set func(T)) bool {
	text, ok := s.Get(heading)
	if !ok {
		return false
	}
	v, ok := ParseSection(heading, text, th)
	if !ok {
		return false
	}
	rec, ok := v.(T)
	if !ok {
		return false
	}
	set(rec)
	return true
}

func into[T any](dst *T) func(T) {
	return func(v T) { *dst = v }
}

func listInto[T any](dst **[]T) func([]T) {
	return func(v []T) { *dst = entity.List(v) }
}

func buildTikTokHashtag(r *entity.Report, s Sections, th Thresholds) {
	section(s, HeadingExecutiveSummary, th, into(&r.ExecutiveSummary))
	section(s, HeadingAudienceProfile, th, into(&r.AudienceProfile))
	section(s, HeadingHashtagAnalysis, th, into(&r.HashtagAnalysis))
	section(s, HeadingConversations, th, listInto(&r.Conversations))
	section(s, HeadingConversationMap, th, into(&r.ConversationMap))
	section(s, HeadingContentTrends, th, listInto(&r.ContentTrends))
	section(s, HeadingBrandMentions, th, listInto(&r.BrandMentions))
	section(s, HeadingInMarketCampaigns, th, listInto(&r.Campaigns))
	section(s, HeadingHowToWin, th, into(&r.HowToWin))
	section(s, HeadingCreatorArchetypes, th, listInto(&r.CreatorArchetype))
}

func buildInstagramHashtag(r *entity.Report, s Sections, th Thresholds) {
	section(s, HeadingExecutiveSummary, th, into(&r.ExecutiveSummary))
	section(s, HeadingAudienceProfile, th, into(&r.AudienceProfile))
	section(s, HeadingHashtagAnalysis, th, into(&r.HashtagAnalysis))
	section(s, HeadingContentTrends, th, listInto(&r.ContentTrends))
	section(s, HeadingBrandMentions, th, listInto(&r.BrandMentions))
	section(s, HeadingCreatorArchetypes, th, listInto(&r.CreatorArchetype))
	section(s, HeadingHowToWin, th, into(&r.HowToWin))
}

func buildTikTokKeywords(r *entity.Report, s Sections, th Thresholds) {
	section(s, HeadingExecutiveSummary, th, into(&r.ExecutiveSummary))
	section(s, HeadingAudienceProfile, th, into(&r.AudienceProfile))
	section(s, HeadingContentTrends, th, listInto(&r.ContentTrends))
	section(s, HeadingBrandMentions, th, listInto(&r.BrandMentions))
	section(s, HeadingCreatorArchetypes, th, listInto(&r.CreatorArchetype))
	section(s, HeadingHowToWin, th, into(&r.HowToWin))
}

func buildTikTokSearch(r *entity.Report, s Sections, th Thresholds) {
	buildTikTokKeywords(r, s, th)
	section(s, HeadingConversations, th, listInto(&r.Conversations))
	section(s, HeadingInMarketCampaigns, th, listInto(&r.Campaigns))
}

// buildProfile reads statistics from the first of statsHeadings present;
// TikTok decks title the all-posts grid differently from Instagram ones.
func buildProfile(statsHeadings ...string) builder {
	return func(r *entity.Report, s Sections, th Thresholds) {
		section(s, HeadingAudienceProfile, th, into(&r.AudienceProfile))
		section(s, HeadingSnapshot, th, into(&r.Snapshot))
		section(s, HeadingCreatorSummary, th, into(&r.CreatorSummary))
		section(s, HeadingSponsorships, th, into(&r.Sponsorships))
		section(s, HeadingFutureSponsorships, th, listInto(&r.SponsorshipSuggestion))
		section(s, HeadingEngagementAnalysis, th, into(&r.EngagementAnalysis))
		section(s, HeadingPostingAnalysis, th, into(&r.PostingAnalysis))
		section(s, HeadingHowToWin, th, into(&r.HowToWin))

		for _, h := range statsHeadings {
			if section(s, h, th, into(&r.Statistics)) {
				break
			}
		}
		section(s, HeadingStatsByPostType, th, func(byType map[string]entity.PostStats) {
			if r.Statistics == nil {
				r.Statistics = &entity.Statistics{}
			}
			r.Statistics.ByContentType = byType
		})

		var posts entity.TopPosts
		found := false
		pair := func(most, least **entity.TopPost) func(PostPair) {
			return func(p PostPair) {
				*most, *least = p.Most, p.Least
				found = true
			}
		}
		section(s, HeadingMostLeastLiked, th, pair(&posts.MostLiked, &posts.LeastLiked))
		section(s, HeadingMostLeastComments, th, pair(&posts.MostCommented, &posts.LeastCommented))
		section(s, HeadingMostLeastEngaged, th, pair(&posts.MostEngaged, &posts.LeastEngaged))
		if found {
			r.TopPosts = &posts
		}
	}
}

func buildGoogleNews(r *entity.Report, s Sections, th Thresholds) {
	section(s, HeadingExecutiveSummary, th, into(&r.ExecutiveSummary))
	section(s, HeadingNewsAnalysis, th, into(&r.NewsAnalysis))
	section(s, HeadingNewsTrends, th, listInto(&r.NewsTrends))
	section(s, HeadingTopStories, th, listInto(&r.TopStories))
	section(s, HeadingCompetitorCoverage, th, listInto(&r.CompetitorCoverage))
	section(s, HeadingBrandMentions, th, listInto(&r.BrandMentions))
	section(s, HeadingTrendingNarratives, th, listInto(&r.TrendingNarratives))
	section(s, HeadingSWOT, th, into(&r.SWOT))
	section(s, HeadingKeyStatistics, th, listInto(&r.KeyStatistics))
	section(s, HeadingNotableQuotes, th, listInto(&r.Quotes))
	section(s, HeadingStrategicImplications, th, into(&r.StrategicImplications))
	section(s, HeadingAudienceProfile, th, into(&r.AudienceProfile))

	if r.TrendingNarratives != nil && r.BrandMentions != nil {
		linkNarrativeBrands(*r.TrendingNarratives, *r.BrandMentions)
	}
}

// linkNarrativeBrands lists, for each narrative, the mentioned brands that
// its text names.
func linkNarrativeBrands(narratives []entity.Narrative, mentions []entity.BrandMention) {
	for i := range narratives {
		text := strings.ToLower(narratives[i].Narrative + " " + narratives[i].Description)
		for _, m := range mentions {
			if m.Brand != "" && strings.Contains(text, strings.ToLower(m.Brand)) {
				narratives[i].BrandsInvolved = append(narratives[i].BrandsInvolved, m.Brand)
			}
		}
	}
}
