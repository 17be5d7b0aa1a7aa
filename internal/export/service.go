package export

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/garvonious-ui/cuervo-intel-sub000/constants"
	"github.com/garvonious-ui/cuervo-intel-sub000/internal/core"
)

const (
	SheetBatch   = "Batch"
	SheetSummary = "Summary"
)

// Service renders batch outcomes as an XLSX manifest.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// ManifestXLSX returns a workbook with one row per outcome on the Batch
// sheet and per-type totals on the Summary sheet.
func (s *Service) ManifestXLSX(outcomes []core.Outcome) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	defer f.Close()

	// the default "Sheet1" becomes the batch sheet
	if err := f.SetSheetName(f.GetSheetName(0), SheetBatch); err != nil {
		return nil, err
	}
	headers := []string{"Source File", "Report Type", "Identifier", "Output Path", "Error"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(SheetBatch, cell, h)
	}

	row := 2
	for _, o := range outcomes {
		write := func(col int, v string) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(SheetBatch, cell, v)
		}
		write(1, o.SourceFile)
		write(2, deref(o.ReportType))
		write(3, deref(o.Identifier))
		write(4, deref(o.OutputPath))
		errText := deref(o.Error)
		if o.Skipped {
			errText = "skipped (unchanged)"
		}
		write(5, truncate(errText, 300))
		row++
	}

	_ = f.SetColWidth(SheetBatch, "A", "A", 48) // source
	_ = f.SetColWidth(SheetBatch, "B", "C", 22) // type, identifier
	_ = f.SetColWidth(SheetBatch, "D", "D", 60) // output
	_ = f.SetColWidth(SheetBatch, "E", "E", 80) // error
	if err := f.AutoFilter(SheetBatch, fmt.Sprintf("A1:E%d", max(row-1, 1)), nil); err != nil {
		return nil, fmt.Errorf("xlsx filter: %w", err)
	}

	if err := s.writeSummary(f, core.Summarize(outcomes)); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	s.logger.Info("export.xlsx.ok", "rows", len(outcomes), "duration_ms", time.Since(start).Milliseconds())
	return buf.Bytes(), nil
}

func (s *Service) writeSummary(f *excelize.File, sum core.Summary) error {
	if _, err := f.NewSheet(SheetSummary); err != nil {
		return err
	}
	rows := [][]any{
		{"Files", sum.Total},
		{"Succeeded", sum.Succeeded},
		{"Failed", sum.Failed},
		{"Skipped", sum.Skipped},
		{},
		{"Report Type", "Reports"},
	}
	for _, rt := range constants.ReportTypes() {
		rows = append(rows, []any{rt.Label(), sum.ByType[string(rt)]})
	}
	for i, r := range rows {
		if len(r) == 0 {
			continue
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(SheetSummary, cell, &r); err != nil {
			return err
		}
	}
	_ = f.SetColWidth(SheetSummary, "A", "A", 22)
	return nil
}

// WriteManifest writes the manifest workbook to path.
func (s *Service) WriteManifest(path string, outcomes []core.Outcome) error {
	b, err := s.ManifestXLSX(outcomes)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
