package parse

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garvonious-ui/cuervo-intel-sub000/internal/entity"
)

var th = DefaultThresholds()

func TestParseAudienceProfile_NoLabels(t *testing.T) {
	got := ParseAudienceProfile("  Just a summary paragraph.  ", th)

	assert.Equal(t, "Just a summary paragraph.", got.Summary)
	for _, list := range [][]string{got.Needs, got.Objections, got.Desires, got.PainPoints} {
		assert.NotNil(t, list)
		assert.Empty(t, list)
	}
}

func TestParseAudienceProfile_Labels(t *testing.T) {
	text := strings.Join([]string{
		"Audience overview here",
		"NEEDS",
		"Affordable options for weekends",
		"",
		"ok",
		"",
		"Reliable delivery windows",
		"OBJECTIONS",
		"Too pricey for daily use",
		"DESIRES",
		"Limited drops",
		"PAIN POINTS",
		"Long queues at launch events",
	}, "\n")

	got := ParseAudienceProfile(text, th)
	assert.Equal(t, "Audience overview here", got.Summary)
	assert.Equal(t, []string{"Affordable options for weekends", "Reliable delivery windows"}, got.Needs)
	assert.Equal(t, []string{"Too pricey for daily use"}, got.Objections)
	assert.Equal(t, []string{"Limited drops"}, got.Desires)
	assert.Equal(t, []string{"Long queues at launch events"}, got.PainPoints)
}

func TestParseHashtagAnalysis_PairedHeadings(t *testing.T) {
	text := "Overview of #tequila and #mezcal chatter\nKey Findings\nOpportunities\n" + strings.Join([]string{
		"Finding one is long",
		"Opportunity one long",
		"Finding two is long",
		"Opportunity two long",
		"Finding three long",
		"Opportunity three lo",
	}, "\n\n")

	got := ParseHashtagAnalysis(text, th)
	assert.Equal(t, []string{"Finding one is long", "Finding two is long", "Finding three long"}, got.KeyFindings)
	assert.Equal(t, []string{"Opportunity one long", "Opportunity two long", "Opportunity three lo"}, got.Opportunities)
	assert.Equal(t, "Overview of #tequila and #mezcal chatter", got.Summary)
	assert.Equal(t, []string{"#tequila", "#mezcal"}, got.RelatedHashtags)
	assert.NotNil(t, got.GapsRisksUnmetNeeds)
	assert.Empty(t, got.GapsRisksUnmetNeeds)
}

func TestParseHashtagAnalysis_UnpairedHeadings(t *testing.T) {
	text := "Key Findings\nFinding alpha block\n\nFinding beta block\n\nOpportunities\nOpportunity gamma text"

	got := ParseHashtagAnalysis(text, th)
	assert.Equal(t, []string{"Finding alpha block", "Finding beta block"}, got.KeyFindings)
	assert.Equal(t, []string{"Opportunity gamma text"}, got.Opportunities)
	assert.Empty(t, got.Summary)
}

func TestParseFutureSponsorships_Columns(t *testing.T) {
	text := strings.Join([]string{
		"Suggested partners for next season.",
		"Outdoor Festivals",
		"Premium Mixology",
		"Streaming Partnerships",
		"Why it Works",
		"Why it Works",
		"Why it Works",
		"Festival crowds match the core audience.",
		"",
		"Bartender content drives saves.",
		"",
		"Streaming hosts build trust.",
		"How to Activate",
		"How to Activate",
		"How to Activate",
		"Sponsor a tasting tent. Run a VIP raffle.",
		"",
		"Host a cocktail masterclass.",
		"",
		"Co-create a watch party kit. Offer promo codes.",
	}, "\n")

	got := ParseFutureSponsorships(text, th)
	assert.Equal(t, []entity.SponsorshipSuggestion{
		{
			Category:      "Outdoor Festivals",
			WhyItWorks:    "Festival crowds match the core audience.",
			HowToActivate: []string{"Sponsor a tasting tent.", "Run a VIP raffle."},
		},
		{
			Category:      "Premium Mixology",
			WhyItWorks:    "Bartender content drives saves.",
			HowToActivate: []string{"Host a cocktail masterclass."},
		},
		{
			Category:      "Streaming Partnerships",
			WhyItWorks:    "Streaming hosts build trust.",
			HowToActivate: []string{"Co-create a watch party kit.", "Offer promo codes."},
		},
	}, got)
}

func TestParseFutureSponsorships_HowLinesDeinterleaved(t *testing.T) {
	text := strings.Join([]string{
		"Festivals Circuit",
		"Mixology Studio",
		"Why it Works",
		"Why it Works",
		"Crowds match the audience.",
		"",
		"Bartenders drive saves.",
		"How to Activate",
		"How to Activate",
		"Sponsor a tent.",
		"Host a class.",
		"Run a raffle.",
		"Film a recipe.",
	}, "\n")

	got := ParseFutureSponsorships(text, th)
	require.Len(t, got, 2)
	assert.Equal(t, "Festivals Circuit", got[0].Category)
	assert.Equal(t, []string{"Sponsor a tent.", "Run a raffle."}, got[0].HowToActivate)
	assert.Equal(t, "Mixology Studio", got[1].Category)
	assert.Equal(t, []string{"Host a class.", "Film a recipe."}, got[1].HowToActivate)
}

func TestParseFutureSponsorships_Sequential(t *testing.T) {
	single := "Outdoor Festivals\nWhy it Works\nCrowds match the audience.\nHow to Activate\nSponsor a tent.\nRun a raffle."
	assert.Equal(t, []entity.SponsorshipSuggestion{{
		Category:      "Outdoor Festivals",
		WhyItWorks:    "Crowds match the audience.",
		HowToActivate: []string{"Sponsor a tent.", "Run a raffle."},
	}}, ParseFutureSponsorships(single, th))

	stacked := strings.Join([]string{
		"Outdoor Festivals",
		"Why it Works",
		"Crowds match the audience.",
		"How to Activate",
		"Sponsor a tent.",
		"Premium Mixology",
		"Why it Works",
		"Bartenders drive saves.",
		"How to Activate",
		"Host a masterclass.",
	}, "\n")
	assert.Equal(t, []entity.SponsorshipSuggestion{
		{Category: "Outdoor Festivals", WhyItWorks: "Crowds match the audience.", HowToActivate: []string{"Sponsor a tent."}},
		{Category: "Premium Mixology", WhyItWorks: "Bartenders drive saves.", HowToActivate: []string{"Host a masterclass."}},
	}, ParseFutureSponsorships(stacked, th))
}

func TestParseTopPostPair(t *testing.T) {
	text := strings.Join([]string{
		"Most Liked",
		"Least Liked",
		"Caption",
		"Sunset margarita pour",
		"Caption",
		"Rainy day unboxing",
		"Likes Count",
		"12,400",
		"Likes Count",
		"310",
		"Engagement Rate",
		"8.5%",
		"Engagement Rate",
		"0.4%",
		"https://www.tiktok.com/@acme/video/1",
		"https://www.tiktok.com/@acme/video/2",
	}, "\n")

	most, least := ParseTopPostPair(text, th)
	require.NotNil(t, most)
	require.NotNil(t, least)

	assert.Equal(t, "Sunset margarita pour", most.Caption)
	assert.InDelta(t, 12400, most.Likes, 0.001)
	assert.InDelta(t, 8.5, most.EngagementRate, 0.001)
	assert.Equal(t, "https://www.tiktok.com/@acme/video/1", most.Link)

	assert.Equal(t, "Rainy day unboxing", least.Caption)
	assert.InDelta(t, 310, least.Likes, 0.001)
	assert.InDelta(t, 0.4, least.EngagementRate, 0.001)
	assert.Equal(t, "https://www.tiktok.com/@acme/video/2", least.Link)
}

func TestParseTopPostPair_Empty(t *testing.T) {
	most, least := ParseTopPostPair("", th)
	assert.Nil(t, most)
	assert.Nil(t, least)
}

func TestParseStatistics(t *testing.T) {
	text := strings.Join([]string{
		"All Posts",
		"Min Views",
		"* excludes live streams",
		"1,200",
		"Max Views",
		"50.2K",
		"Median Views",
		"Avg Views",
		"8,000",
		"9,500",
		"Avg Engagement Rate",
		"4.2%",
	}, "\n")

	got := ParseStatistics(text, th).AllPosts
	assert.InDelta(t, 1200, got.MinViews, 0.001)
	assert.InDelta(t, 50200, got.MaxViews, 0.001)
	assert.InDelta(t, 8000, got.MedianViews, 0.001)
	assert.InDelta(t, 9500, got.AvgViews, 0.001)
	assert.InDelta(t, 4.2, got.AvgEngagementRate, 0.001)
	assert.Zero(t, got.MinLikes)
}

func TestParseStatistics_LookaheadBounded(t *testing.T) {
	text := "Min Views\nnot a number\nstill words\nmore words\n1,200"
	assert.Zero(t, ParseStatistics(text, th).AllPosts.MinViews)
}

func TestParseStatisticsByPostType(t *testing.T) {
	got := ParseStatisticsByPostType("Videos\nAvg Views\n1,000\nCarousels\nAvg Views\n2,000", th)
	require.Len(t, got, 2)
	assert.InDelta(t, 1000, got["video"].AvgViews, 0.001)
	assert.InDelta(t, 2000, got["carousel"].AvgViews, 0.001)

	assert.Nil(t, ParseStatisticsByPostType("Avg Views\n1,000", th))
}

func TestParseSnapshot(t *testing.T) {
	text := "Followers\nFollowing\n12,400\n310\nAvg Likes\nAvg Comments\nAvg Engagement Rate\n1.2K\n45\n6.1%"

	got := ParseSnapshot(text, th)
	assert.InDelta(t, 12400, got.Followers, 0.001)
	assert.InDelta(t, 310, got.Following, 0.001)
	assert.InDelta(t, 1200, got.AvgLikes, 0.001)
	assert.InDelta(t, 45, got.AvgComments, 0.001)
	assert.InDelta(t, 6.1, got.AvgEngagementRate, 0.001)
}

func TestParseSWOT(t *testing.T) {
	grid := strings.Join([]string{
		"Strengths",
		"Weaknesses",
		"Heritage brand recognition",
		"",
		"Premium price point",
		"",
		"Loyal bartender network",
		"",
		"Limited younger reach",
		"Opportunities",
		"Threats",
		"Ready-to-drink growth",
		"",
		"Celebrity tequila brands",
	}, "\n")

	got := ParseSWOT(grid, th)
	assert.Equal(t, []string{"Heritage brand recognition", "Loyal bartender network"}, got.Strengths)
	assert.Equal(t, []string{"Premium price point", "Limited younger reach"}, got.Weaknesses)
	assert.Equal(t, []string{"Ready-to-drink growth"}, got.Opportunities)
	assert.Equal(t, []string{"Celebrity tequila brands"}, got.Threats)

	sequential := "Strengths\nHeritage brand recognition\n\nLoyal bartender network\nWeaknesses\nPremium price point"
	got = ParseSWOT(sequential, th)
	assert.Equal(t, []string{"Heritage brand recognition", "Loyal bartender network"}, got.Strengths)
	assert.Equal(t, []string{"Premium price point"}, got.Weaknesses)
	assert.Empty(t, got.Opportunities)
	assert.Empty(t, got.Threats)
}

const (
	longA = "Agave growers report a second poor harvest, pushing wholesale prices to a five year high across Jalisco."
	longB = "Celebrity-backed labels keep launching, and coverage questions whether the category can absorb them all."
)

func TestParseNewsTrends_Layouts(t *testing.T) {
	want := []entity.ContentTrend{
		{Trend: "Agave shortage", Description: longA},
		{Trend: "Celebrity brands", Description: longB},
	}

	alternating := strings.Join([]string{"Agave shortage", longA, "Celebrity brands", longB}, "\n\n")
	assert.Equal(t, want, ParseNewsTrends(alternating, th))

	cards := strings.Join([]string{"Agave shortage", "Celebrity brands", longA, longB}, "\n\n")
	assert.Equal(t, want, ParseNewsTrends(cards, th))
}

func TestParseKeyStatistics(t *testing.T) {
	got := ParseKeyStatistics("62%\nof coverage mentions agave prices\n3.4M impressions across outlets", th)
	assert.Equal(t, []entity.KeyStatistic{
		{Value: "62%", Description: "of coverage mentions agave prices"},
		{Value: "3.4M", Description: "impressions across outlets"},
	}, got)
}

func TestParseNotableQuotes(t *testing.T) {
	text := "“This is the best agave year yet.”\n— Industry analyst\n\nPlain paragraph without quotes\n\n\"Prices will rise again.\""
	assert.Equal(t, []string{"This is the best agave year yet.", "Prices will rise again."}, ParseNotableQuotes(text, th))
}

func TestParseStrategicImplications(t *testing.T) {
	text := "Lean into heritage storytelling.\nAction Items\n1. Launch a heritage campaign\n2. Partner with bartenders\n\nReview pricing quarterly"
	got := ParseStrategicImplications(text, th)
	assert.Equal(t, "Lean into heritage storytelling.", got.Summary)
	assert.Equal(t, []string{"Launch a heritage campaign", "Partner with bartenders", "Review pricing quarterly"}, got.ActionItems)

	got = ParseStrategicImplications("Keep the focus on quality.\n• Audit distributors\n• Refresh packaging", th)
	assert.Equal(t, "Keep the focus on quality.", got.Summary)
	assert.Equal(t, []string{"Audit distributors", "Refresh packaging"}, got.ActionItems)
}

func TestParseNewsAnalysis(t *testing.T) {
	text := strings.Join([]string{
		"Coverage was steady through the quarter.",
		"Sentiment",
		"Positive 48%",
		"Neutral 40%",
		"Negative 12%",
		"Key Topics",
		"Agave prices",
		"Celebrity brands",
		"Opportunities",
		"Risks",
		"Premium gifting season",
		"",
		"Supply shortages",
	}, "\n")

	got := ParseNewsAnalysis(text, th)
	assert.Equal(t, "Coverage was steady through the quarter.", got.Summary)
	assert.Equal(t, entity.SentimentBreakdown{PositivePct: 48, NeutralPct: 40, NegativePct: 12}, got.SentimentBreakdown)
	assert.Equal(t, []string{"Agave prices", "Celebrity brands"}, got.KeyTopics)
	assert.Equal(t, []string{"Premium gifting season"}, got.Opportunities)
	assert.Equal(t, []string{"Supply shortages"}, got.Risks)
}

func TestParseNewsAnalysis_SentimentIgnoresProse(t *testing.T) {
	text := strings.Join([]string{
		"Positive coverage grew 250% year over year as the category kept expanding into new markets.",
		"Negative 12% of headlines mentioned shortages in the last quarter of the reporting window.",
		"Sentiment",
		"Positive 62%",
		"Key Topics",
		"Agave prices",
	}, "\n")

	got := ParseNewsAnalysis(text, th)
	assert.Equal(t, entity.SentimentBreakdown{PositivePct: 62}, got.SentimentBreakdown)
}

func TestParseNewsAnalysis_SentimentWithoutLabel(t *testing.T) {
	text := strings.Join([]string{
		"Positive coverage grew 250% year over year as the category kept expanding into new markets.",
		"Negative reviews fell 8% after the launch.",
		"Positive 130%",
		"Positive 55%",
		"30% neutral",
	}, "\n")

	got := ParseNewsAnalysis(text, th)
	assert.Equal(t, entity.SentimentBreakdown{PositivePct: 55, NeutralPct: 30}, got.SentimentBreakdown)
}

func TestParseCreatorArchetypes(t *testing.T) {
	text := "The Weekend Host\nThrows backyard parties.\nAppeal\nRelatable and fun.\nExamples\n@hostwithmost\n@partyplanner\n\nThe Cocktail Nerd\nObsesses over ratios."

	got := ParseCreatorArchetypes(text, th)
	require.Len(t, got, 2)
	assert.Equal(t, "The Weekend Host", got[0].Archetype)
	assert.Equal(t, "Throws backyard parties.", got[0].Description)
	assert.Equal(t, "Relatable and fun.", got[0].Appeal)
	assert.Equal(t, []string{"@hostwithmost", "@partyplanner"}, got[0].Examples)
	assert.Equal(t, "The Cocktail Nerd", got[1].Archetype)
	assert.Equal(t, "Obsesses over ratios.", got[1].Description)
}

func TestParseBrandMentions(t *testing.T) {
	text := strings.Join([]string{
		"Acme Spirits",
		"Context",
		"Strong coverage of launch",
		"Sentiment",
		"Mostly positive",
		"Verbatims",
		"love the new bottle",
		"Blue Agave Co",
		"Context",
		"Sponsored a festival",
		"NoContext Brand",
	}, "\n")

	got := ParseBrandMentions(text, th)
	require.Len(t, got, 2)
	assert.Equal(t, entity.BrandMention{
		Brand:     "Acme Spirits",
		Context:   "Strong coverage of launch",
		Sentiment: "Mostly positive",
		Verbatims: []string{"love the new bottle"},
	}, got[0])
	assert.Equal(t, "Blue Agave Co", got[1].Brand)
	assert.Equal(t, "Sponsored a festival NoContext Brand", got[1].Context)
}

func TestParseHowToWin(t *testing.T) {
	text := strings.Join([]string{
		"Win by owning the weekend ritual.",
		"Audience Verbatims",
		"Territory 1",
		"Own Friday night hosting moments",
		"Territory 2",
		"Teach simple three-ingredient cocktails",
		"",
		"\"I just want something easy to make\"",
		"\"Tequila sodas all summer long\"",
	}, "\n")

	got := ParseHowToWin(text, th)
	assert.Equal(t, "Win by owning the weekend ritual.", got.Summary)
	assert.Equal(t, []string{"Own Friday night hosting moments", "Teach simple three-ingredient cocktails"}, got.Territories)
	assert.Equal(t, []string{"\"I just want something easy to make\"", "\"Tequila sodas all summer long\""}, got.AudienceVerbatims)
}

func TestParseConversations(t *testing.T) {
	text := "Intro text\nConversation 1\nBrunch cocktails\nPeople swap recipes.\nThey tag friends.\nConversation 2\nHangover cures"

	assert.Equal(t, []entity.Conversation{
		{Title: "Brunch cocktails", Description: "People swap recipes. They tag friends."},
		{Title: "Hangover cures", Description: ""},
	}, ParseConversations(text, th))
}

func TestParseNumber(t *testing.T) {
	cases := map[string]float64{
		"12,400": 12400,
		"3.5%":   3.5,
		"1.5M":   1.5e6,
		"2k":     2000,
		"n/a":    0,
		"":       0,
	}
	for in, want := range cases {
		assert.InDelta(t, want, ParseNumber(in), 0.0001, in)
	}
}

func TestParseSection_Registry(t *testing.T) {
	for _, h := range Headings {
		if h == HeadingAppendix {
			continue
		}
		kind, ok := KindForHeading(h)
		require.True(t, ok, h)
		_, ok = Lookup(kind)
		assert.True(t, ok, h)
	}

	v, ok := ParseSection("appendix_"+HeadingMostLeastLiked, "Caption\nHello there", th)
	require.True(t, ok)
	pair, isPair := v.(PostPair)
	require.True(t, isPair)
	require.NotNil(t, pair.Most)
	assert.Equal(t, "Hello there", pair.Most.Caption)

	_, ok = ParseSection(HeadingAppendix, "", th)
	assert.False(t, ok)
}
