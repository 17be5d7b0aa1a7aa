package extract

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/garvonious-ui/cuervo-intel-sub000/constants"
	"github.com/garvonious-ui/cuervo-intel-sub000/internal/common"
)

type Config struct {
	Pdftotext       string        // binary name or absolute path; if empty -> "pdftotext"
	Layout          bool          // pass -layout to pdftotext
	Backend         string        // common.BackendPdftotext | common.BackendNative
	Timeout         time.Duration // per-document bound on the subprocess, default 30s
	RowSnapEMU      int64         // slide shapes closer than this vertically share a row
	SignatureWindow int           // leading characters searched for a report-type line
}

// ConfigFrom maps the application config onto the extractor config.
func ConfigFrom(c common.ExtractConfig) Config {
	return Config{
		Pdftotext:       c.Pdftotext,
		Layout:          c.Layout,
		Backend:         c.Backend,
		Timeout:         c.Timeout,
		RowSnapEMU:      c.RowSnapEMU,
		SignatureWindow: c.SignatureWindow,
	}
}

type Extractor struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

type Option func(*Extractor)

// WithRunner swaps the subprocess runner, mostly for tests.
func WithRunner(r Runner) Option {
	return func(e *Extractor) {
		if r != nil {
			e.runner = r
		}
	}
}

func NewExtractor(cfg Config, logger *slog.Logger, opts ...Option) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pdftotext == "" {
		cfg.Pdftotext = "pdftotext"
	}
	if cfg.Backend == "" {
		cfg.Backend = common.BackendPdftotext
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.RowSnapEMU <= 0 {
		cfg.RowSnapEMU = 190500
	}
	if cfg.SignatureWindow <= 0 {
		cfg.SignatureWindow = 500
	}
	e := &Extractor{cfg: cfg, runner: execRunner{}, logger: logger}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Extract picks a strategy based on file extension.
func (e *Extractor) Extract(ctx context.Context, path string) (ExtractionResult, error) {
	start := time.Now()
	ext := constants.NormalizeExt(filepath.Ext(path))
	e.logger.Debug("starting text extraction", "path", path, "ext", ext)

	var (
		res ExtractionResult
		err error
	)
	switch constants.MapExtToFormat(ext) {
	case constants.PDF:
		res, err = e.extractPDF(ctx, path)
	case constants.PPTX:
		res, err = e.extractPPTX(ctx, path)
	default:
		e.logger.Error("unsupported document extension", "path", path, "extension", ext)
		return ExtractionResult{}, common.NewAppError("UNSUPPORTED_FORMAT",
			fmt.Sprintf("unsupported extension %q", ext), common.ErrUnsupportedFormat)
	}
	res.Duration = time.Since(start)
	if err != nil {
		return res, common.ExtractionError(path, err)
	}
	res.Text = Normalize(res.Text)

	e.logger.Info("text extracted",
		"path", path,
		"method", res.Method,
		"pages", res.Pages,
		"bytes", len(res.Text),
		"signature_injected", res.SignatureInjected,
		"duration_ms", res.Duration.Milliseconds(),
	)
	return res, nil
}
