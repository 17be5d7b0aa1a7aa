package extract

import (
	"context"
	"time"
)

// TextExtractor is stage 1: document file -> flattened text blob.
type TextExtractor interface {
	Extract(ctx context.Context, path string) (ExtractionResult, error)
}

type ExtractionResult struct {
	Text              string
	Pages             int    // pages for PDF, slides for PPTX
	SourceType        string // constants.PDF | constants.PPTX
	Method            string // MethodPdftotext | MethodPDFNative | MethodPPTXShapes
	Duration          time.Duration
	Warnings          []string
	SignatureInjected bool
}

const (
	MethodPdftotext  = "pdftotext"
	MethodPDFNative  = "pdf-native"
	MethodPPTXShapes = "pptx-shapes"
)
