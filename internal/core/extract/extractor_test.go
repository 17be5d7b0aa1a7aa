package extract

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garvonious-ui/cuervo-intel-sub000/constants"
	"github.com/garvonious-ui/cuervo-intel-sub000/internal/common"
)

type fakeRunner struct {
	stdout string
	stderr string
	err    error
	block  bool

	gotName string
	gotArgs []string
}

func (f *fakeRunner) Run(ctx context.Context, name string, _ *slog.Logger, args ...string) ([]byte, []byte, error) {
	f.gotName = name
	f.gotArgs = args
	if f.block {
		<-ctx.Done()
		return nil, nil, ctx.Err()
	}
	return []byte(f.stdout), []byte(f.stderr), f.err
}

func TestExtract_PDFViaPdftotext(t *testing.T) {
	r := &fakeRunner{stdout: "Acme\r\nTikTok Profile Analysis Presentation\n\n\n\nJanuary 6, 2026\f"}
	e := NewExtractor(Config{Pdftotext: "/usr/bin/pdftotext"}, slog.Default(), WithRunner(r))

	res, err := e.Extract(context.Background(), "/reports/Acme.PDF")
	require.NoError(t, err)

	assert.Equal(t, "/usr/bin/pdftotext", r.gotName)
	assert.Equal(t, []string{"-enc", "UTF-8", "/reports/Acme.PDF", "-"}, r.gotArgs)
	assert.Equal(t, "Acme\nTikTok Profile Analysis Presentation\n\nJanuary 6, 2026", res.Text)
	assert.Equal(t, 1, res.Pages)
	assert.Equal(t, constants.PDF, res.SourceType)
	assert.Equal(t, MethodPdftotext, res.Method)
}

func TestExtract_PDFLayoutFlag(t *testing.T) {
	r := &fakeRunner{stdout: "x"}
	e := NewExtractor(Config{Layout: true}, nil, WithRunner(r))

	_, err := e.Extract(context.Background(), "deck.pdf")
	require.NoError(t, err)
	assert.Equal(t, "pdftotext", r.gotName)
	assert.Equal(t, "-layout", r.gotArgs[0])
}

func TestExtract_PDFNonZeroExit(t *testing.T) {
	r := &fakeRunner{stderr: "Syntax Error: Couldn't read xref table", err: errors.New("exit status 1")}
	e := NewExtractor(Config{}, nil, WithRunner(r))

	_, err := e.Extract(context.Background(), "broken.pdf")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrExtraction))
	assert.Contains(t, err.Error(), "Couldn't read xref table")
}

func TestExtract_PDFTimeout(t *testing.T) {
	r := &fakeRunner{block: true}
	e := NewExtractor(Config{Timeout: 20 * time.Millisecond}, nil, WithRunner(r))

	_, err := e.Extract(context.Background(), "slow.pdf")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrExtraction))
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestExtract_UnsupportedExtension(t *testing.T) {
	e := NewExtractor(Config{}, nil, WithRunner(&fakeRunner{}))

	_, err := e.Extract(context.Background(), "notes.docx")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrUnsupportedFormat))
	assert.False(t, errors.Is(err, common.ErrExtraction))
}

func TestNormalize(t *testing.T) {
	in := "Title  \r\nline\x00 two\f\f\n\n\n\nend\t"
	assert.Equal(t, "Title\nline two\n\nend", Normalize(in))
	assert.Equal(t, "", Normalize(""))
}
