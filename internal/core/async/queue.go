package async

import (
	"context"
	"time"

	"github.com/garvonious-ui/cuervo-intel-sub000/internal/core"
)

// Job is one document waiting to be parsed.
type Job struct {
	Path        string
	SubmittedAt time.Time
	TraceID     string
}

type Queue interface {
	Enqueue(ctx context.Context, job Job) error
	Shutdown(ctx context.Context)
}

// FileProcessor is the part of core.Processor the queue drives.
type FileProcessor interface {
	ProcessFile(ctx context.Context, path string) (core.Outcome, error)
}
