package httpapi

import (
	"context"
	"mime"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/simaogato/fipify-backend/internal/domain"
	"github.com/simaogato/fipify-backend/internal/usecase/report"
)

// MockReportGenerator is a mock implementation of ReportGenerator for testing
type MockReportGenerator struct {
	mock.Mock
}

func (m *MockReportGenerator) GenerateReport(ctx context.Context, id uuid.UUID) (*report.Document, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*report.Document), args.Error(1)
}

type observed struct {
	route  string
	status int
}

type fakeObserver struct {
	calls []observed
}

func (f *fakeObserver) ObserveHTTPStatus(route string, status int, _ time.Duration) {
	f.calls = append(f.calls, observed{route, status})
}

func serve(router http.Handler, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestServeReport_Download(t *testing.T) {
	gen := new(MockReportGenerator)
	id := uuid.New()
	gen.On("GenerateReport", mock.Anything, id).Return(&report.Document{
		FileName:    "Fipify_Report_Fiat_Uno Mille 1.0_2014.pdf",
		ContentType: report.ContentTypePDF,
		Content:     []byte("%PDF-1.3"),
		PageCount:   4,
	}, nil)

	obs := &fakeObserver{}
	router := NewRouter(NewHandler(gen, zap.NewNop()), nil, obs)
	w := serve(router, "/reports/"+id.String())

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, "8", w.Header().Get("Content-Length"))
	disposition, params, err := mime.ParseMediaType(w.Header().Get("Content-Disposition"))
	require.NoError(t, err)
	assert.Equal(t, "attachment", disposition)
	assert.Equal(t, "Fipify_Report_Fiat_Uno Mille 1.0_2014.pdf", params["filename"])
	assert.Equal(t, "%PDF-1.3", w.Body.String())
	assert.Equal(t, []observed{{"/reports/{recordID}", http.StatusOK}}, obs.calls)
	gen.AssertExpectations(t)
}

func TestContentDisposition_KeepsFileName(t *testing.T) {
	for _, name := range []string{
		"Fipify_Report_Fiat_Uno Mille 1.0_2014.pdf",
		"Fipify_Report_Citroën_C3 Tendance 1.6_2015.pdf",
		`Fipify_Report_VW_Gol "G5"_2010.pdf`,
	} {
		t.Run(name, func(t *testing.T) {
			disposition, params, err := mime.ParseMediaType(contentDisposition(name))
			require.NoError(t, err)
			assert.Equal(t, "attachment", disposition)
			assert.Equal(t, name, params["filename"])
		})
	}
}

func TestServeReport_Errors(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name       string
		target     string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"malformed id", "/reports/not-a-uuid", nil, http.StatusBadRequest, "invalid record id"},
		{"unknown record", "/reports/" + id.String(), domain.ErrRecordNotFound, http.StatusNotFound, "valuation record not found"},
		{"report failed", "/reports/" + id.String(), report.ErrReportUnavailable, http.StatusInternalServerError, "report could not be produced"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := new(MockReportGenerator)
			if tt.err != nil {
				gen.On("GenerateReport", mock.Anything, id).Return(nil, tt.err)
			}

			w := serve(NewRouter(NewHandler(gen, zap.NewNop()), nil, nil), tt.target)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
			assert.NotContains(t, w.Header().Get("Content-Type"), "pdf")
		})
	}
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	metricsHandler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("# metrics"))
	})
	obs := &fakeObserver{}
	router := NewRouter(NewHandler(new(MockReportGenerator), zap.NewNop()), metricsHandler, obs)

	w := serve(router, "/healthz")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())

	w = serve(router, "/metrics")
	assert.Equal(t, "# metrics", w.Body.String())

	w = serve(router, "/nope")
	assert.Equal(t, http.StatusNotFound, w.Code)

	assert.Equal(t, []observed{
		{"/healthz", http.StatusOK},
		{"/metrics", http.StatusOK},
		{"unmatched", http.StatusNotFound},
	}, obs.calls)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadGateway, statusFor(domain.ErrSourceUnavailable))
	assert.Equal(t, http.StatusBadRequest, statusFor(domain.ErrInvalidAmount))
	assert.Equal(t, http.StatusInternalServerError, statusFor(assert.AnError))
}
