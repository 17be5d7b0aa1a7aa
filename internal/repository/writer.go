package repository

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"golang.org/x/text/unicode/norm"

	"github.com/garvonious-ui/cuervo-intel-sub000/internal/common"
	"github.com/garvonious-ui/cuervo-intel-sub000/internal/entity"
)

const untitled = "untitled"

var reUnsafe = regexp.MustCompile(`[^\p{L}\p{M}\p{N}_\-]`)

// SanitizeIdentifier turns a report identifier into a file stem. The result
// is stable for a given input.
func SanitizeIdentifier(id string) string {
	s := strings.ToLower(norm.NFC.String(id))
	s = reUnsafe.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if s == "" {
		return untitled
	}
	return s
}

// ReportWriter persists assembled reports.
type ReportWriter interface {
	Write(r *entity.Report) (string, error)
	PathFor(r *entity.Report) string
}

// Writer stores reports as <base>/<type dir>/<identifier>.json.
type Writer struct {
	base  string
	log   *slog.Logger
	locks sync.Map // path -> *sync.Mutex
}

func NewWriter(base string, log *slog.Logger) *Writer {
	if log == nil {
		log = slog.Default()
	}
	return &Writer{base: base, log: log}
}

func (w *Writer) PathFor(r *entity.Report) string {
	return filepath.Join(w.base, r.ReportType.Dir(), SanitizeIdentifier(r.Identifier())+".json")
}

// Write serialises r and replaces its file atomically. Concurrent writes to
// the same path inside this process are serialised.
func (w *Writer) Write(r *entity.Report) (string, error) {
	if r == nil || !r.ReportType.Valid() {
		return "", common.NewAppError("WRITE_FAILED", "report has no known type", common.ErrWrite)
	}
	path := w.PathFor(r)

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return "", writeErr(path, err)
	}

	mu := w.lockFor(path)
	mu.Lock()
	defer mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", writeErr(path, err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return "", writeErr(path, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return "", writeErr(path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return "", writeErr(path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return "", writeErr(path, err)
	}

	w.log.Info("report written", "path", path, "report_type", r.ReportType, "identifier", r.Identifier())
	return path, nil
}

func (w *Writer) lockFor(path string) *sync.Mutex {
	mu, _ := w.locks.LoadOrStore(path, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

func writeErr(path string, cause error) error {
	return common.NewAppError("WRITE_FAILED", fmt.Sprintf("write %s", path), errors.Join(common.ErrWrite, cause))
}
