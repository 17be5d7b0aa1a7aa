package core

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garvonious-ui/cuervo-intel-sub000/constants"
	"github.com/garvonious-ui/cuervo-intel-sub000/internal/common"
	"github.com/garvonious-ui/cuervo-intel-sub000/internal/core/extract"
	"github.com/garvonious-ui/cuervo-intel-sub000/internal/repository"
)

// stubExtractor serves canned text keyed by file base name.
type stubExtractor struct {
	mu    sync.Mutex
	texts map[string]string
	calls int
}

func (s *stubExtractor) Extract(_ context.Context, path string) (extract.ExtractionResult, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	text, ok := s.texts[filepath.Base(path)]
	if !ok {
		return extract.ExtractionResult{}, common.ExtractionError(path, errors.New("corrupt document"))
	}
	return extract.ExtractionResult{Text: text, Method: extract.MethodPdftotext}, nil
}

var deckTexts = map[string]string{
	"a_profile.pdf": "acme.co\nTikTok Profile Analysis Presentation\nJanuary 6, 2026\nSnapshot\nFollowers\n12,400",
	"b_hashtag.pptx": "#Margarita\nTikTok Hashtag Analysis Presentation\n2026-01-06\n" +
		"Audience Profile\nWeekend hosts who want easy drinks.",
	"c_news.pdf": "Tequila\nGoogle News Analysis Presentation\n2026-01-07\nNotable Quotes\n\"Agave is back,\" said a bartender.",
}

func seedInputs(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), []byte(n), 0o644))
	}
	return dir
}

func TestProcessDirectory_PartialFailure(t *testing.T) {
	in := seedInputs(t, "c_news.pdf", "a_profile.pdf", "d_broken.pdf", "b_hashtag.pptx", "readme.txt")
	out := t.TempDir()
	p := NewProcessor(nil, &stubExtractor{texts: deckTexts}, repository.NewWriter(out, nil), nil,
		Options{ValidateSchema: true, Workers: 3})

	outcomes, err := p.ProcessDirectory(context.Background(), in)
	require.NoError(t, err)
	require.Len(t, outcomes, 4)

	names := make([]string, len(outcomes))
	for i, o := range outcomes {
		names[i] = filepath.Base(o.SourceFile)
	}
	assert.Equal(t, []string{"a_profile.pdf", "b_hashtag.pptx", "c_news.pdf", "d_broken.pdf"}, names)

	for _, o := range outcomes[:3] {
		require.Nil(t, o.Error, o.SourceFile)
		require.NotNil(t, o.OutputPath)
		assert.FileExists(t, *o.OutputPath)
	}
	assert.Equal(t, "tiktok_profiles", *outcomes[0].ReportType)
	assert.Equal(t, "#Margarita", *outcomes[1].Identifier)
	assert.Equal(t, filepath.Join(out, "tiktok_hashtags", "margarita.json"), *outcomes[1].OutputPath)

	bad := outcomes[3]
	require.NotNil(t, bad.Error)
	assert.Nil(t, bad.OutputPath)
	assert.Nil(t, bad.ReportType)
	assert.Contains(t, *bad.Error, "corrupt document")

	sum := Summarize(outcomes)
	assert.Equal(t, 3, sum.Succeeded)
	assert.Equal(t, 1, sum.Failed)

	var written int
	for _, dir := range []string{"tiktok_profiles", "tiktok_hashtags", "google_news"} {
		entries, err := os.ReadDir(filepath.Join(out, dir))
		require.NoError(t, err)
		written += len(entries)
	}
	assert.Equal(t, 3, written)
}

func TestProcessDirectory_MissingDir(t *testing.T) {
	p := NewProcessor(nil, &stubExtractor{}, repository.NewWriter(t.TempDir(), nil), nil, Options{})
	_, err := p.ProcessDirectory(context.Background(), filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestProcessFile_DetectionFailure(t *testing.T) {
	in := seedInputs(t, "x.pdf")
	stub := &stubExtractor{texts: map[string]string{"x.pdf": "just\nsome\nwords\nhere"}}
	p := NewProcessor(nil, stub, repository.NewWriter(t.TempDir(), nil), nil, Options{})

	out, err := p.ProcessFile(context.Background(), filepath.Join(in, "x.pdf"))
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrDetection)
	require.NotNil(t, out.Error)
	assert.Equal(t, err.Error(), *out.Error)
}

func TestProcessFile_SkipUnchanged(t *testing.T) {
	ctx := context.Background()
	in := seedInputs(t, "a_profile.pdf")
	ledger, err := repository.OpenLedger(ctx, common.LedgerConfig{DSN: filepath.Join(t.TempDir(), "runs.db")}, nil)
	require.NoError(t, err)
	defer ledger.Close()

	stub := &stubExtractor{texts: deckTexts}
	p := NewProcessor(nil, stub, repository.NewWriter(t.TempDir(), nil), ledger, Options{SkipUnchanged: true})
	path := filepath.Join(in, "a_profile.pdf")

	first, err := p.ProcessFile(ctx, path)
	require.NoError(t, err)
	assert.False(t, first.Skipped)

	second, err := p.ProcessFile(ctx, path)
	require.NoError(t, err)
	assert.True(t, second.Skipped)
	assert.Equal(t, 1, stub.calls)

	require.NoError(t, os.WriteFile(path, []byte("changed"), 0o644))
	third, err := p.ProcessFile(ctx, path)
	require.NoError(t, err)
	assert.False(t, third.Skipped)
	assert.Equal(t, 2, stub.calls)

	runs, err := ledger.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	statuses := map[constants.RunStatus]int{}
	for _, r := range runs {
		statuses[r.Status]++
	}
	assert.Equal(t, 2, statuses[constants.RunStatusWritten])
	assert.Equal(t, 1, statuses[constants.RunStatusSkipped])
}
