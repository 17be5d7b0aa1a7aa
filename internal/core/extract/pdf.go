package extract

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/garvonious-ui/cuervo-intel-sub000/constants"
	"github.com/garvonious-ui/cuervo-intel-sub000/internal/common"
)

func (e *Extractor) extractPDF(ctx context.Context, path string) (ExtractionResult, error) {
	res := ExtractionResult{SourceType: constants.PDF}
	var err error
	if e.cfg.Backend == common.BackendNative {
		res.Method = MethodPDFNative
		res.Text, res.Pages, res.Warnings, err = e.pdfNative(ctx, path)
	} else {
		res.Method = MethodPdftotext
		res.Text, res.Pages, res.Warnings, err = e.pdfToText(ctx, path)
	}
	return res, err
}

func (e *Extractor) pdfToText(ctx context.Context, path string) (text string, pages int, warnings []string, err error) {
	ctx, cancel := context.WithTimeout(ctx, e.cfg.Timeout)
	defer cancel()

	// pdftotext [-layout] -enc UTF-8 <path> -
	args := make([]string, 0, 5)
	if e.cfg.Layout {
		args = append(args, "-layout")
	}
	args = append(args, "-enc", "UTF-8", path, "-")

	out, errb, err := e.runner.Run(ctx, e.cfg.Pdftotext, e.logger, args...)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", 0, nil, fmt.Errorf("pdftotext timed out after %s: %w", e.cfg.Timeout, ctx.Err())
		}
		msg := strings.TrimSpace(string(errb))
		if msg == "" {
			return "", 0, nil, fmt.Errorf("pdftotext: %w", err)
		}
		return "", 0, []string{msg}, fmt.Errorf("pdftotext: %w: %s", err, truncate(msg, 512))
	}
	text = string(out)
	// A form-feed \f is used as page separator by default
	pages = strings.Count(text, "\f")
	if pages == 0 && strings.TrimSpace(text) != "" {
		pages = 1
	}
	return text, pages, nil, nil
}

// pdfNative reads the text layer in-process for hosts without poppler.
func (e *Extractor) pdfNative(ctx context.Context, path string) (text string, pages int, warnings []string, err error) {
	defer func() {
		// the reader panics on some malformed xref tables
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf reader: %v", r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return "", 0, nil, fmt.Errorf("open pdf: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			e.logger.Warn("close pdf", "path", path, "error", cerr)
		}
	}()

	var b strings.Builder
	pages = r.NumPage()
	for i := 1; i <= pages; i++ {
		if err := ctx.Err(); err != nil {
			return "", 0, warnings, err
		}
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, perr := page.GetPlainText(nil)
		if perr != nil {
			warnings = append(warnings, fmt.Sprintf("page %d: %v", i, perr))
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(content)
	}
	return b.String(), pages, warnings, nil
}
