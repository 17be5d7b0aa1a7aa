package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garvonious-ui/cuervo-intel-sub000/constants"
	"github.com/garvonious-ui/cuervo-intel-sub000/internal/common"
)

func TestDetectMetadata(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Metadata
	}{
		{
			name: "exact title line with possessive identifier",
			text: "acme.co's TikTok\nTikTok Profile Analysis Presentation\nJanuary 6, 2026\nExecutive Summary",
			want: Metadata{Type: constants.TikTokProfile, Identifier: "acme.co", Date: "January 6, 2026"},
		},
		{
			name: "iso date preferred over month date",
			text: "#tequila\nTikTok Hashtag Analysis Presentation\nDecember 1, 2025\n2025-12-02",
			want: Metadata{Type: constants.TikTokHashtag, Identifier: "#tequila", Date: "2025-12-02"},
		},
		{
			name: "substring match and curly quotes",
			text: "“Tequila”\nGoogle News Analysis Presentation – Weekly\nno date here",
			want: Metadata{Type: constants.GoogleNews, Identifier: "Tequila"},
		},
		{
			name: "abbreviated month",
			text: "margarita\nTikTok Keyword Analysis Presentation\nSept. 9 2025",
			want: Metadata{Type: constants.TikTokKeywords, Identifier: "margarita", Date: "Sept. 9 2025"},
		},
		{
			name: "search report",
			text: "best tequila for margaritas\nTikTok Search Analysis Presentation\n2026-02-14",
			want: Metadata{Type: constants.TikTokSearch, Identifier: "best tequila for margaritas", Date: "2026-02-14"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetectMetadata(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectMetadata_Errors(t *testing.T) {
	_, err := DetectMetadata("one\n\ntwo\n")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrDetection)
	assert.Contains(t, err.Error(), "too short")

	_, err = DetectMetadata("Acme\nQuarterly Business Review\nMarch 3, 2026")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrDetection)
	assert.Contains(t, err.Error(), "Quarterly Business Review")
}
