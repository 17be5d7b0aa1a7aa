package repository

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garvonious-ui/cuervo-intel-sub000/constants"
	"github.com/garvonious-ui/cuervo-intel-sub000/internal/common"
	"github.com/garvonious-ui/cuervo-intel-sub000/internal/entity"
)

func seedReports(t *testing.T) string {
	t.Helper()
	base := t.TempDir()
	w := NewWriter(base, nil)
	for _, id := range []string{"acme", "globex"} {
		r := entity.NewReport(constants.TikTokProfile, id, "")
		r.Snapshot = &entity.Snapshot{Followers: 10}
		_, err := w.Write(r)
		require.NoError(t, err)
	}
	_, err := w.Write(entity.NewReport(constants.TikTokProfile, "initech", ""))
	require.NoError(t, err)

	dir := filepath.Join(base, constants.TikTokProfile.Dir())
	require.NoError(t, os.WriteFile(filepath.Join(dir, "_index.json"), []byte(`{}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte(`{"a":`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte(`x`), 0o644))
	return base
}

func TestLoader_LoadAll(t *testing.T) {
	l := NewLoader(seedReports(t), nil)

	all, err := l.LoadAll(constants.TikTokProfile)
	require.NoError(t, err)
	assert.Equal(t, []string{"acme", "globex", "initech"}, Stems(all))

	empty, err := l.LoadAll(constants.GoogleNews)
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = l.LoadAll("myspace")
	assert.ErrorIs(t, err, common.ErrUnknownReportType)
}

func TestLoader_Load(t *testing.T) {
	l := NewLoader(seedReports(t), nil)

	raw, err := l.Load(constants.TikTokProfile, "ACME")
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"username": "acme"`)

	_, err = l.Load(constants.TikTokProfile, "nobody")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestLoader_SectionAcrossAndCounts(t *testing.T) {
	l := NewLoader(seedReports(t), nil)

	snaps, err := l.SectionAcross(constants.TikTokProfile, "snapshot")
	require.NoError(t, err)
	assert.Len(t, snaps, 2)
	assert.JSONEq(t, `{"followers":10,"following":0,"avg_likes":0,"avg_comments":0,"avg_engagement_rate":0}`, string(snaps["acme"]))

	counts, err := l.Counts()
	require.NoError(t, err)
	assert.Equal(t, 3, counts[constants.TikTokProfile])
	assert.Equal(t, 0, counts[constants.GoogleNews])
}
