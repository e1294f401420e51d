package httpapi

import (
	"context"
	"errors"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/simaogato/fipify-backend/internal/domain"
	"github.com/simaogato/fipify-backend/internal/usecase/report"
)

// ReportGenerator produces the document for a stored record
type ReportGenerator interface {
	GenerateReport(ctx context.Context, recordID uuid.UUID) (*report.Document, error)
}

// StatusObserver records finished HTTP requests by route pattern
type StatusObserver interface {
	ObserveHTTPStatus(route string, status int, elapsed time.Duration)
}

// Handler serves report downloads
type Handler struct {
	Reports ReportGenerator
	Log     *zap.Logger
}

// NewHandler creates a new Handler instance
func NewHandler(reports ReportGenerator, logger *zap.Logger) *Handler {
	return &Handler{Reports: reports, Log: logger}
}

// NewRouter mounts health, metrics and report routes.
// metricsHandler and observer may be nil.
func NewRouter(h *Handler, metricsHandler http.Handler, observer StatusObserver) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(observe(observer))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}
	r.Get("/reports/{recordID}", h.ServeReport)

	return r
}

// ServeReport generates the report of a record and sends it as an attachment
func (h *Handler) ServeReport(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "recordID"))
	if err != nil {
		http.Error(w, "invalid record id", http.StatusBadRequest)
		return
	}

	doc, err := h.Reports.GenerateReport(r.Context(), id)
	if err != nil {
		status := statusFor(err)
		if status >= http.StatusInternalServerError {
			h.Log.Error("report download failed",
				zap.String("record_id", id.String()),
				zap.String("request_id", middleware.GetReqID(r.Context())),
				zap.Error(err))
		}
		http.Error(w, http.StatusText(status)+": "+publicMessage(err), status)
		return
	}

	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(doc.Content)))
	w.Header().Set("Content-Disposition", contentDisposition(doc.FileName))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(doc.Content); err != nil {
		h.Log.Warn("report write interrupted", zap.Error(err))
	}
}

// contentDisposition marks the response as a download named fileName.
// Non-ASCII names are sent in the RFC 2231 extended form.
func contentDisposition(fileName string) string {
	if v := mime.FormatMediaType("attachment", map[string]string{"filename": fileName}); v != "" {
		return v
	}
	return "attachment"
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, report.ErrReportUnavailable):
		return http.StatusInternalServerError
	case errors.Is(err, domain.ErrInvalidRecord):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrSourceUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func publicMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrRecordNotFound):
		return domain.ErrRecordNotFound.Error()
	case errors.Is(err, report.ErrReportUnavailable):
		return report.ErrReportUnavailable.Error()
	default:
		return "request failed"
	}
}

// observe reports every request to observer under its route pattern
func observe(observer StatusObserver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if observer == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			observer.ObserveHTTPStatus(route, status, time.Since(start))
		})
	}
}
