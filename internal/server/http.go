package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/garvonious-ui/cuervo-intel-sub000/constants"
	"github.com/garvonious-ui/cuervo-intel-sub000/internal/common"
	"github.com/garvonious-ui/cuervo-intel-sub000/internal/repository"
)

// Handler serves the read contract and single-file parsing over HTTP.
type Handler struct {
	parser Parser
	reader repository.ReportReader
	logger *slog.Logger
}

func NewHandler(parser Parser, reader repository.ReportReader, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{parser: parser, reader: reader, logger: logger}
}

// Router builds the chi router.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(h.logRequests)

	r.Get("/healthz", h.Health)
	r.Get("/reports", h.Counts)
	r.Get("/reports/{type}", h.ListReports)
	r.Get("/reports/{type}/{id}", h.GetReport)
	r.Post("/parse", h.Parse)
	return r
}

func (h *Handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		ctx := common.WithRequestID(r.Context(), middleware.GetReqID(r.Context()))
		next.ServeHTTP(ww, r.WithContext(ctx))
		h.logger.Debug("http request", "method", r.Method, "path", r.URL.Path, "status", ww.Status(),
			"request_id", common.RequestIDFromContext(ctx), "duration_ms", time.Since(start).Milliseconds())
	})
}

func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) Counts(w http.ResponseWriter, _ *http.Request) {
	counts, err := h.reader.Counts()
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, counts)
}

func (h *Handler) ListReports(w http.ResponseWriter, r *http.Request) {
	rt, ok := constants.ParseReportType(chi.URLParam(r, "type"))
	if !ok {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown report type"})
		return
	}
	// ?section= narrows every report down to one section
	var (
		out map[string]json.RawMessage
		err error
	)
	if section := r.URL.Query().Get("section"); section != "" {
		out, err = h.reader.SectionAcross(rt, section)
	} else {
		out, err = h.reader.LoadAll(rt)
	}
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, out)
}

func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	rt, ok := constants.ParseReportType(chi.URLParam(r, "type"))
	if !ok {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown report type"})
		return
	}
	raw, err := h.reader.Load(rt, chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(raw)
}

type parseRequest struct {
	Path string `json:"path"`
}

func (h *Handler) Parse(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Path) == "" {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "body must be {\"path\": \"...\"}"})
		return
	}
	out, err := h.parser.ProcessFile(r.Context(), req.Path)
	code := http.StatusOK
	if err != nil {
		code = statusFor(err)
	}
	h.writeJSON(w, code, out)
}

func (h *Handler) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	h.writeJSON(w, statusFor(err), map[string]string{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, common.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, common.ErrUnsupportedFormat),
		errors.Is(err, common.ErrDetection),
		errors.Is(err, common.ErrUnknownReportType),
		errors.Is(err, common.ErrInvalidInput):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
