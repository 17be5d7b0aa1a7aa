package common

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "data/autostrat", cfg.Output.Dir)
	assert.Equal(t, BackendPdftotext, cfg.Extract.Backend)
	assert.Equal(t, 30*time.Second, cfg.Extract.Timeout)
	assert.Equal(t, int64(190500), cfg.Extract.RowSnapEMU)
	assert.Equal(t, 80, cfg.Parse.TitleMaxLen)
	assert.True(t, cfg.Parse.ValidateSchema)
	assert.Equal(t, 1, cfg.Batch.Workers)
	assert.Empty(t, cfg.Ledger.DSN)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cuervo.yaml")
	require.NoError(t, os.WriteFile(path, []byte("autostrat_dir: /srv/reports\nworkers: 3\ntitle_max_len: 64\n"), 0o644))

	t.Setenv("WORKERS", "6")
	t.Setenv("EXTRACT_TIMEOUT", "5s")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/reports", cfg.Output.Dir)
	assert.Equal(t, 64, cfg.Parse.TitleMaxLen)
	assert.Equal(t, 6, cfg.Batch.Workers)
	assert.Equal(t, 5*time.Second, cfg.Extract.Timeout)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)

	var appErr *AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "CONFIG_ERROR", appErr.Code)
}

func TestConfig_Validate(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	cfg.Extract.Backend = "ghostscript"
	cfg.Batch.Workers = 0

	err = cfg.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.Contains(t, err.Error(), "PDF_BACKEND")
	assert.Contains(t, err.Error(), "WORKERS")
}

func TestToStatus(t *testing.T) {
	assert.Nil(t, ToStatus(nil))
	assert.Contains(t, ToStatus(DetectionError("too short")).Error(), "InvalidArgument")
	assert.Contains(t, ToStatus(ExtractionError("a.pdf", errors.New("exit 1"))).Error(), "Internal")
	assert.True(t, errors.Is(ExtractionError("a.pdf", errors.New("exit 1")), ErrExtraction))
}
