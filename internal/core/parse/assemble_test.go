package parse

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garvonious-ui/cuervo-intel-sub000/constants"
	"github.com/garvonious-ui/cuervo-intel-sub000/internal/common"
)

const profileDeck = `acme.co
TikTok Profile Analysis Presentation
January 6, 2026
Snapshot
Followers
Following
12,400
310
Avg Likes
Avg Comments
Avg Engagement Rate
1.2K
45
6.1%
Creator Summary
Topline
Acme pours tequila cocktails for weekend hosts.`

func assembleText(t *testing.T, text string) ([]byte, error) {
	t.Helper()
	meta, err := DetectMetadata(text)
	require.NoError(t, err)
	r, err := Assemble(meta, Segment(text), th)
	if err != nil {
		return nil, err
	}
	return json.Marshal(r)
}

func TestAssemble_Profile(t *testing.T) {
	meta, err := DetectMetadata(profileDeck)
	require.NoError(t, err)

	r, err := Assemble(meta, Segment(profileDeck), th)
	require.NoError(t, err)

	assert.Equal(t, constants.TikTokProfile, r.ReportType)
	require.NotNil(t, r.Username)
	assert.Equal(t, "acme.co", *r.Username)
	assert.Equal(t, "acme.co", r.Identifier())
	assert.Equal(t, "January 6, 2026", r.ReportDate)
	require.NotNil(t, r.Snapshot)
	assert.InDelta(t, 12400, r.Snapshot.Followers, 0.001)
	assert.InDelta(t, 1200, r.Snapshot.AvgLikes, 0.001)
	require.NotNil(t, r.CreatorSummary)
	assert.Equal(t, "Acme pours tequila cocktails for weekend hosts.", r.CreatorSummary.Topline)
	assert.Nil(t, r.Statistics)
	assert.Nil(t, r.TopPosts)
	assert.Nil(t, r.ExecutiveSummary)
}

func TestAssemble_Idempotent(t *testing.T) {
	first, err := assembleText(t, profileDeck)
	require.NoError(t, err)
	second, err := assembleText(t, profileDeck)
	require.NoError(t, err)
	assert.JSONEq(t, string(first), string(second))
}

func TestAssemble_UnknownType(t *testing.T) {
	_, err := Assemble(Metadata{Type: "myspace_profile", Identifier: "x"}, Sections{}, th)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrUnknownReportType)
}

func TestAssemble_StatisticsPreference(t *testing.T) {
	s := Sections{
		HeadingStats:         "Avg Views\n100",
		HeadingStatsAllPosts: "Avg Views\n200",
	}

	tiktok, err := Assemble(Metadata{Type: constants.TikTokProfile, Identifier: "a"}, s, th)
	require.NoError(t, err)
	assert.InDelta(t, 100, tiktok.Statistics.AllPosts.AvgViews, 0.001)

	insta, err := Assemble(Metadata{Type: constants.InstagramProfile, Identifier: "a"}, s, th)
	require.NoError(t, err)
	assert.InDelta(t, 200, insta.Statistics.AllPosts.AvgViews, 0.001)
}

func TestAssemble_GoogleNewsLinksBrands(t *testing.T) {
	narrative := "Prices climbed again this quarter and Acme Spirits responded with a limited reserve release for collectors."
	s := Sections{
		HeadingBrandMentions:      "Acme Spirits\nContext\nStrong coverage of launch",
		HeadingTrendingNarratives: strings.Join([]string{"Agave prices climb", narrative}, "\n\n"),
	}

	r, err := Assemble(Metadata{Type: constants.GoogleNews, Identifier: "tequila"}, s, th)
	require.NoError(t, err)

	assert.Equal(t, "tequila", r.Identifier())
	require.NotNil(t, r.TrendingNarratives)
	narratives := *r.TrendingNarratives
	require.Len(t, narratives, 1)
	assert.Equal(t, "Agave prices climb", narratives[0].Narrative)
	assert.Equal(t, []string{"Acme Spirits"}, narratives[0].BrandsInvolved)
}

func TestAssemble_EmptySectionStillPresent(t *testing.T) {
	sections := Sections{
		HeadingAudienceProfile:   "",
		HeadingContentTrends:     "",
		HeadingBrandMentions:     "",
		HeadingInMarketCampaigns: "",
	}
	r, err := Assemble(Metadata{Type: constants.TikTokHashtag, Identifier: "#margarita"}, sections, th)
	require.NoError(t, err)

	assert.Equal(t, "#margarita", r.Identifier())
	require.NotNil(t, r.AudienceProfile)
	assert.Empty(t, r.AudienceProfile.Needs)
	assert.Nil(t, r.HashtagAnalysis)

	b, err := json.Marshal(r)
	require.NoError(t, err)
	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(b, &doc))

	for _, key := range []string{"content_trends", "brand_mentions", "in_market_campaigns"} {
		require.Contains(t, doc, key)
		assert.JSONEq(t, "[]", string(doc[key]), key)
	}
	assert.NotContains(t, doc, "interesting_conversations")
	assert.NotContains(t, doc, "hashtag_analysis")
}

func TestAssemble_EmptyIdentifierKeyWritten(t *testing.T) {
	r, err := Assemble(Metadata{Type: constants.TikTokHashtag, Date: "2026-01-06"}, Sections{}, th)
	require.NoError(t, err)

	b, err := json.Marshal(r)
	require.NoError(t, err)
	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(b, &doc))
	require.Contains(t, doc, "hashtag")
	assert.JSONEq(t, `""`, string(doc["hashtag"]))
	assert.NotContains(t, doc, "username")
}
