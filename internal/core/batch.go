package core

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/garvonious-ui/cuervo-intel-sub000/internal/ingest"
)

// Summary tallies a batch.
type Summary struct {
	Total     int
	Succeeded int
	Failed    int
	Skipped   int
	ByType    map[string]int
}

func Summarize(outcomes []Outcome) Summary {
	s := Summary{Total: len(outcomes), ByType: map[string]int{}}
	for _, o := range outcomes {
		switch {
		case o.Skipped:
			s.Skipped++
		case o.Failed():
			s.Failed++
		default:
			s.Succeeded++
			if o.ReportType != nil {
				s.ByType[*o.ReportType]++
			}
		}
	}
	return s
}

// ProcessDirectory runs every document in dir and returns one outcome per
// file in sorted filename order. Per-file failures are carried in the
// outcomes; the error is set only when dir itself cannot be read.
func (p *Processor) ProcessDirectory(ctx context.Context, dir string) ([]Outcome, error) {
	start := time.Now()
	docs, stats, err := ingest.ScanDirectory(dir, ingest.ScanOptions{Recursive: p.opts.Recursive})
	if err != nil {
		p.logger.Error("cannot read input directory", "path", dir, "error", err)
		return nil, err
	}
	p.logger.Info("batch started", "path", dir, "files", len(docs), "workers", p.opts.Workers,
		"scanned", stats.Scanned, "hidden", stats.Hidden)

	outcomes := make([]Outcome, len(docs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.opts.Workers)
	for i, d := range docs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				msg := err.Error()
				outcomes[i] = Outcome{SourceFile: d.Path, Error: &msg}
				return nil
			}
			outcomes[i], _ = p.ProcessFile(gctx, d.Path)
			return nil
		})
	}
	_ = g.Wait()

	sum := Summarize(outcomes)
	p.logger.Info("batch finished", "path", dir, "succeeded", sum.Succeeded, "failed", sum.Failed,
		"skipped", sum.Skipped, "duration_ms", time.Since(start).Milliseconds())
	return outcomes, nil
}
