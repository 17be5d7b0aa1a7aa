package export

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/garvonious-ui/cuervo-intel-sub000/internal/core"
)

func ptr(s string) *string { return &s }

func TestManifestXLSX(t *testing.T) {
	outcomes := []core.Outcome{
		{SourceFile: "in/a.pdf", OutputPath: ptr("out/tiktok_profiles/acme.json"), ReportType: ptr("tiktok_profiles"), Identifier: ptr("acme")},
		{SourceFile: "in/b.pdf", Error: ptr("DETECTION_FAILED: could not detect report type")},
		{SourceFile: "in/c.pdf", Skipped: true},
	}

	b, err := NewService(nil).ManifestXLSX(outcomes)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetBatch)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"Source File", "Report Type", "Identifier", "Output Path", "Error"}, rows[0])
	assert.Equal(t, []string{"in/a.pdf", "tiktok_profiles", "acme", "out/tiktok_profiles/acme.json"}, rows[1][:4])
	assert.Equal(t, "DETECTION_FAILED: could not detect report type", rows[2][4])
	assert.Equal(t, "skipped (unchanged)", rows[3][4])

	failed, err := f.GetCellValue(SheetSummary, "B3")
	require.NoError(t, err)
	assert.Equal(t, "1", failed)
}

func TestWriteManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batch.xlsx")
	require.NoError(t, NewService(nil).WriteManifest(path, nil))
	assert.FileExists(t, path)
}
