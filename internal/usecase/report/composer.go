package report

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/simaogato/fipify-backend/internal/domain"
	"github.com/simaogato/fipify-backend/internal/usecase/projection"
)

// ErrReportUnavailable is the single failure signal of report generation.
// No partial report is ever produced alongside it.
var ErrReportUnavailable = errors.New("report could not be produced")

const (
	reportTitle    = "FIPIFY PREMIUM REPORT"
	reportSubtitle = "Complete and Detailed Vehicle Analysis"
	footerLegal    = "Fipify Premium Report - All rights reserved"

	fileNamePrefix = "Fipify_Report"
	fileNameExt    = "pdf"

	timestampLayout = "02/01/2006 15:04"
)

// trajectorySamples are the 0-based trajectory indices printed on page 2
var trajectorySamples = [...]int{2, 5, 8, 11, 14, 17, 20, 23}

// Compose lays the record and its projections out on exactly four pages.
// It is a pure function of its inputs: the same record, projection and timestamp
// always produce the same layout. Returns an error wrapping ErrReportUnavailable
// if the inputs are malformed or a page would overflow.
func Compose(record domain.ValuationRecord, proj *projection.Result, generatedAt time.Time) (*Layout, error) {
	if err := record.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReportUnavailable, err)
	}
	if err := checkProjection(proj); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReportUnavailable, err)
	}

	header := headerOps(generatedAt)
	builders := []func(*pageWriter){
		func(w *pageWriter) { vehicleDetailPage(w, record) },
		func(w *pageWriter) { comparisonPage(w, record, proj) },
		func(w *pageWriter) { timingPage(w, record, proj) },
		func(w *pageWriter) { summaryPage(w, record, proj) },
	}

	pages := make([]Page, 0, PageCount)
	for i, build := range builders {
		w := newPageWriter(i + 1)
		build(w)
		page, err := w.finish(header)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrReportUnavailable, err)
		}
		pages = append(pages, page)
	}

	return &Layout{
		Title:       reportTitle,
		FileName:    FileName(record),
		GeneratedAt: generatedAt,
		Pages:       pages,
	}, nil
}

// checkProjection ensures the projection has the shape the pages index into
func checkProjection(proj *projection.Result) error {
	switch {
	case proj == nil:
		return errors.New("missing projection")
	case len(proj.Trajectory) != projection.TrajectoryMonths:
		return fmt.Errorf("trajectory has %d points, want %d", len(proj.Trajectory), projection.TrajectoryMonths)
	case len(proj.Maintenance) == 0:
		return errors.New("missing maintenance schedule")
	case len(proj.Seasons) == 0:
		return errors.New("missing seasonal table")
	}
	return nil
}

// headerOps is the running header repeated on every page
func headerOps(generatedAt time.Time) []DrawOp {
	w := &pageWriter{}
	w.fillRect(0, 0, PageWidth, headerHeight, ColorPrimary)
	w.text(reportTitle, pageCenter, 15, textStyle{size: 20, weight: WeightBold, color: ColorWhite, align: AlignCenter})
	w.text(reportSubtitle, pageCenter, 22, textStyle{size: 10, weight: WeightNormal, color: ColorWhite, align: AlignCenter})
	w.text("Generated on: "+generatedAt.Format(timestampLayout), pageCenter, 28,
		textStyle{size: 10, weight: WeightNormal, color: ColorWhite, align: AlignCenter})
	return w.page.Ops
}

// FileName names the document from brand, model and model year.
// Path separators inside the parts are replaced so the name stays a single file.
func FileName(record domain.ValuationRecord) string {
	clean := strings.NewReplacer("/", "-", "\\", "-")
	return fmt.Sprintf("%s_%s_%s_%s.%s",
		fileNamePrefix,
		clean.Replace(record.Brand),
		clean.Replace(record.Model),
		clean.Replace(record.ModelYear),
		fileNameExt,
	)
}
