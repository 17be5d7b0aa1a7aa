package core

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/garvonious-ui/cuervo-intel-sub000/constants"
	"github.com/garvonious-ui/cuervo-intel-sub000/internal/common"
	"github.com/garvonious-ui/cuervo-intel-sub000/internal/core/extract"
	"github.com/garvonious-ui/cuervo-intel-sub000/internal/core/parse"
	"github.com/garvonious-ui/cuervo-intel-sub000/internal/core/validate"
	"github.com/garvonious-ui/cuervo-intel-sub000/internal/entity"
	"github.com/garvonious-ui/cuervo-intel-sub000/internal/ingest"
	"github.com/garvonious-ui/cuervo-intel-sub000/internal/repository"
)

// Outcome is the per-file result of a run. Exactly one of OutputPath and
// Error is set unless the file was skipped as unchanged.
type Outcome struct {
	SourceFile string  `json:"source_file"`
	OutputPath *string `json:"output_path"`
	ReportType *string `json:"report_type"` // output directory name, e.g. tiktok_profiles
	Identifier *string `json:"identifier"`
	Error      *string `json:"error"`
	Skipped    bool    `json:"skipped,omitempty"`
}

func (o Outcome) Failed() bool { return o.Error != nil }

type Options struct {
	Thresholds     parse.Thresholds
	ValidateSchema bool
	Workers        int
	Recursive      bool
	SkipUnchanged  bool
}

// OptionsFrom maps the application config onto processor options.
func OptionsFrom(cfg *common.Config) Options {
	return Options{
		Thresholds:     parse.ThresholdsFrom(cfg.Parse),
		ValidateSchema: cfg.Parse.ValidateSchema,
		Workers:        cfg.Batch.Workers,
		Recursive:      cfg.Batch.Recursive,
		SkipUnchanged:  cfg.Batch.SkipUnchanged,
	}
}

// Processor runs one document through acquisition, detection, segmentation,
// assembly, validation and persistence.
type Processor struct {
	logger    *slog.Logger
	extractor extract.TextExtractor
	writer    repository.ReportWriter
	ledger    repository.LedgerRepository
	opts      Options
}

// NewProcessor wires the stages. ledger may be nil.
func NewProcessor(
	logger *slog.Logger,
	extractor extract.TextExtractor,
	writer repository.ReportWriter,
	ledger repository.LedgerRepository,
	opts Options,
) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Thresholds == (parse.Thresholds{}) {
		opts.Thresholds = parse.DefaultThresholds()
	}
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	return &Processor{
		logger:    logger,
		extractor: extractor,
		writer:    writer,
		ledger:    ledger,
		opts:      opts,
	}
}

// ParseFile turns a document into a report without writing it.
func (p *Processor) ParseFile(ctx context.Context, path string) (*entity.Report, error) {
	res, err := p.extractor.Extract(ctx, path)
	if err != nil {
		return nil, err
	}
	p.logger.Debug("text acquired", "path", path, "method", res.Method, "pages", res.Pages,
		"signature_injected", res.SignatureInjected, "duration_ms", res.Duration.Milliseconds())

	meta, err := parse.DetectMetadata(res.Text)
	if err != nil {
		return nil, err
	}
	sections := parse.Segment(res.Text)
	report, err := parse.Assemble(meta, sections, p.opts.Thresholds)
	if err != nil {
		return nil, err
	}
	if p.opts.ValidateSchema {
		if err := validate.ValidateReport(report); err != nil {
			return nil, err
		}
	}
	p.logger.Debug("report assembled", "path", path, "report_type", meta.Type,
		"identifier", meta.Identifier, "sections", len(sections))
	return report, nil
}

// ProcessFile parses path and writes its report. The returned error is the
// same failure recorded in the outcome.
func (p *Processor) ProcessFile(ctx context.Context, path string) (Outcome, error) {
	start := time.Now()
	out := Outcome{SourceFile: path}

	runID, hash := p.startRun(ctx, path)
	if runID != uuid.Nil {
		ctx = common.WithRunID(ctx, runID.String())
	} else if hash != "" && p.opts.SkipUnchanged {
		out.Skipped = true
		p.logger.Info("unchanged since last run, skipping", "path", path)
		return out, nil
	}

	report, err := p.ParseFile(ctx, path)
	if err == nil {
		var written string
		written, err = p.writer.Write(report)
		if err == nil {
			rt, id := report.ReportType.Dir(), report.Identifier()
			out.OutputPath, out.ReportType, out.Identifier = &written, &rt, &id
		}
	}

	if err != nil {
		msg := err.Error()
		out.Error = &msg
		p.logger.Error("file failed", "path", path, "error", err,
			"run_id", common.RunIDFromContext(ctx), "duration_ms", time.Since(start).Milliseconds())
	} else {
		p.logger.Info("file processed", "path", path, "report_type", *out.ReportType,
			"identifier", *out.Identifier, "run_id", common.RunIDFromContext(ctx),
			"duration_ms", time.Since(start).Milliseconds())
	}
	p.finishRun(ctx, runID, out)
	return out, err
}

// startRun hashes the file and opens a ledger row. With SkipUnchanged set
// and an identical earlier write, it returns uuid.Nil and the hash.
func (p *Processor) startRun(ctx context.Context, path string) (uuid.UUID, string) {
	if p.ledger == nil {
		return uuid.Nil, ""
	}
	hash, err := ingest.HashFile(path)
	if err != nil {
		// extraction reports the unreadable file
		return uuid.Nil, ""
	}
	if p.opts.SkipUnchanged {
		same, err := p.ledger.Unchanged(ctx, path, hash)
		if err != nil {
			p.logger.Warn("ledger lookup failed", "path", path, "error", err)
		} else if same {
			p.recordSkip(ctx, path, hash)
			return uuid.Nil, hash
		}
	}
	id, err := p.ledger.Start(ctx, path, hash)
	if err != nil {
		p.logger.Warn("ledger start failed", "path", path, "error", err)
		return uuid.Nil, ""
	}
	return id, hash
}

func (p *Processor) recordSkip(ctx context.Context, path, hash string) {
	id, err := p.ledger.Start(ctx, path, hash)
	if err == nil {
		err = p.ledger.Finish(ctx, id, repository.RunResult{Status: constants.RunStatusSkipped})
	}
	if err != nil {
		p.logger.Warn("ledger skip not recorded", "path", path, "error", err)
	}
}

func (p *Processor) finishRun(ctx context.Context, runID uuid.UUID, out Outcome) {
	if p.ledger == nil || runID == uuid.Nil {
		return
	}
	res := repository.RunResult{Status: constants.RunStatusWritten}
	if out.Error != nil {
		res.Status = constants.RunStatusFailed
		res.Error = *out.Error
	} else {
		res.ReportType, res.Identifier, res.OutputPath = *out.ReportType, *out.Identifier, *out.OutputPath
	}
	// the run row is closed even when the file's context was cancelled
	if err := p.ledger.Finish(context.WithoutCancel(ctx), runID, res); err != nil {
		p.logger.Warn("ledger finish failed", "run_id", runID, "error", err)
	}
}
