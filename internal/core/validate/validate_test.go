package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garvonious-ui/cuervo-intel-sub000/constants"
	"github.com/garvonious-ui/cuervo-intel-sub000/internal/common"
	"github.com/garvonious-ui/cuervo-intel-sub000/internal/core/parse"
	"github.com/garvonious-ui/cuervo-intel-sub000/internal/entity"
)

func TestValidateReport_Valid(t *testing.T) {
	r := entity.NewReport(constants.TikTokHashtag, "#margarita", "2026-01-06")
	r.AudienceProfile = &entity.AudienceProfile{
		Summary: "Weekend hosts", Needs: []string{"easy recipes"},
		Objections: []string{}, Desires: []string{}, PainPoints: []string{},
	}
	r.ContentTrends = entity.List([]entity.ContentTrend{{Trend: "Batch cocktails", Description: "Pitchers for parties"}})
	require.NoError(t, ValidateReport(r))
}

func TestValidateReport_EveryTypeCompiles(t *testing.T) {
	for _, rt := range constants.ReportTypes() {
		_, err := CompileSchema(BuildReportSchema(rt))
		assert.NoError(t, err, rt)
	}
}

func TestValidateReport_MissingIdentifier(t *testing.T) {
	r := &entity.Report{ReportType: constants.TikTokProfile, ReportDate: ""}
	err := ValidateReport(r)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrSchema)
}

func TestValidateReport_ForeignSection(t *testing.T) {
	// profiles carry no SWOT
	r := entity.NewReport(constants.InstagramProfile, "acme", "")
	r.SWOT = &entity.SWOT{Strengths: []string{"reach"}}
	err := ValidateReport(r)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrSchema)
}

func TestValidateReport_HeuristicValuesNotBounded(t *testing.T) {
	r := entity.NewReport(constants.GoogleNews, "tequila", "")
	r.NewsAnalysis = &entity.NewsAnalysis{
		SentimentBreakdown: entity.SentimentBreakdown{PositivePct: 140},
	}
	assert.NoError(t, ValidateReport(r))
}

func TestValidateReport_NewsProsePercentages(t *testing.T) {
	text := strings.Join([]string{
		"tequila",
		"Google News Analysis Presentation",
		"2026-01-06",
		"News Analysis",
		"Positive coverage grew 250% year over year as the category kept expanding into new markets.",
		"Sentiment",
		"Positive 62%",
		"Neutral 30%",
		"Key Topics",
		"Agave prices",
	}, "\n")
	meta, err := parse.DetectMetadata(text)
	require.NoError(t, err)
	r, err := parse.Assemble(meta, parse.Segment(text), parse.DefaultThresholds())
	require.NoError(t, err)

	require.NotNil(t, r.NewsAnalysis)
	assert.InDelta(t, 62, r.NewsAnalysis.SentimentBreakdown.PositivePct, 0.001)
	assert.NoError(t, ValidateReport(r))
}

func TestValidateReport_WrongSectionShape(t *testing.T) {
	b := []byte(`{"report_type":"google_news","search_query":"tequila","report_date":"","top_stories":{"title":"x"}}`)
	err := ValidateJSONAgainstSchema(BuildReportSchema(constants.GoogleNews), b)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrSchema)
}

func TestValidateReport_UnknownType(t *testing.T) {
	assert.ErrorIs(t, ValidateReport(&entity.Report{ReportType: "myspace"}), common.ErrSchema)
	assert.ErrorIs(t, ValidateReport(nil), common.ErrSchema)
}

func TestValidateJSONAgainstSchema(t *testing.T) {
	schema := map[string]any{
		"type":     "object",
		"required": []string{"a"},
	}
	assert.NoError(t, ValidateJSONAgainstSchema(schema, []byte(`{"a":1}`)))
	assert.Error(t, ValidateJSONAgainstSchema(schema, []byte(`{}`)))
	assert.Error(t, ValidateJSONAgainstSchema(schema, []byte(`not json`)))
}
