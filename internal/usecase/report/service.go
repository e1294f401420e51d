package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/simaogato/fipify-backend/internal/domain"
	"github.com/simaogato/fipify-backend/internal/usecase/projection"
)

// ContentTypePDF is the media type of rendered reports
const ContentTypePDF = "application/pdf"

// Renderer turns a composed layout into document bytes
type Renderer interface {
	Render(layout *Layout) ([]byte, error)
}

// Observer is notified once per report request with its outcome
type Observer interface {
	ReportProduced(pages int, size int, elapsed time.Duration)
	ReportFailed(stage string)
}

type nopObserver struct{}

func (nopObserver) ReportProduced(int, int, time.Duration) {}
func (nopObserver) ReportFailed(string)                    {}

// Document is a rendered report ready to be saved or downloaded
type Document struct {
	FileName    string
	ContentType string
	Content     []byte
	PageCount   int
}

// ReportService runs projection, composition and rendering as one all-or-nothing operation
type ReportService struct {
	Repo     domain.ValuationRepository
	Renderer Renderer
	Observer Observer
	Now      func() time.Time
}

// NewReportService creates a new ReportService instance
func NewReportService(repo domain.ValuationRepository, renderer Renderer) *ReportService {
	return &ReportService{
		Repo:     repo,
		Renderer: renderer,
		Observer: nopObserver{},
		Now:      time.Now,
	}
}

// GenerateReport loads a stored record and produces its report
// Returns domain.ErrRecordNotFound if the record does not exist; every other
// failure wraps ErrReportUnavailable
func (s *ReportService) GenerateReport(ctx context.Context, recordID uuid.UUID) (*Document, error) {
	record, err := s.Repo.GetByID(ctx, recordID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, err
		}
		s.observer().ReportFailed("load")
		return nil, fmt.Errorf("%w: %w", ErrReportUnavailable, err)
	}

	return s.GenerateFromRecord(*record)
}

// GenerateFromRecord produces the report for a record the caller already holds
func (s *ReportService) GenerateFromRecord(record domain.ValuationRecord) (*Document, error) {
	started := s.Now()

	proj, err := projection.Generate(record)
	if err != nil {
		s.observer().ReportFailed("generate")
		return nil, fmt.Errorf("%w: %w", ErrReportUnavailable, err)
	}

	layout, err := Compose(record, proj, started)
	if err != nil {
		s.observer().ReportFailed("compose")
		return nil, err
	}

	content, err := s.Renderer.Render(layout)
	if err != nil {
		s.observer().ReportFailed("render")
		return nil, fmt.Errorf("%w: %w", ErrReportUnavailable, err)
	}
	if len(content) == 0 {
		s.observer().ReportFailed("render")
		return nil, fmt.Errorf("%w: renderer returned an empty document", ErrReportUnavailable)
	}

	s.observer().ReportProduced(len(layout.Pages), len(content), s.Now().Sub(started))

	return &Document{
		FileName:    layout.FileName,
		ContentType: ContentTypePDF,
		Content:     content,
		PageCount:   len(layout.Pages),
	}, nil
}

func (s *ReportService) observer() Observer {
	if s.Observer == nil {
		return nopObserver{}
	}
	return s.Observer
}
