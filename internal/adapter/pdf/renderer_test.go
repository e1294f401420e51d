package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/fipify-backend/internal/domain"
	"github.com/simaogato/fipify-backend/internal/usecase/projection"
	"github.com/simaogato/fipify-backend/internal/usecase/report"
)

func composedLayout(t *testing.T) *report.Layout {
	t.Helper()
	record := domain.ValuationRecord{
		ID:                     uuid.New(),
		Brand:                  "Fiat",
		Model:                  "Uno Mille 1.0",
		ModelYear:              "2014",
		FuelType:               "Gasolina",
		ReferenceCode:          "001004-9",
		ReferenceMonth:         "agosto de 2024",
		CurrentValue:           decimal.NewFromInt(50000),
		AnnualDepreciationRate: decimal.RequireFromString("10"),
	}
	proj, err := projection.Generate(record)
	require.NoError(t, err)
	layout, err := report.Compose(record, proj, time.Date(2024, 8, 15, 10, 30, 0, 0, time.UTC))
	require.NoError(t, err)
	return layout
}

func TestRender_ProducesFourPagePDF(t *testing.T) {
	r := NewRenderer()
	r.Compress = false

	out, err := r.Render(composedLayout(t))

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	assert.Contains(t, string(out), "/Count 4")
	assert.Contains(t, string(out), "(Page 1) Tj")
	assert.Contains(t, string(out), "(Page 4) Tj")
	assert.Contains(t, string(out), "(FIPIFY PREMIUM REPORT) Tj")
}

func TestRender_Deterministic(t *testing.T) {
	layout := composedLayout(t)
	r := NewRenderer()

	first, err := r.Render(layout)
	require.NoError(t, err)
	second, err := r.Render(layout)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRender_EmptyLayout(t *testing.T) {
	r := NewRenderer()

	_, err := r.Render(nil)
	assert.Error(t, err)

	_, err = r.Render(&report.Layout{})
	assert.Error(t, err)
}

func TestRender_ThroughReportService(t *testing.T) {
	svc := report.NewReportService(nil, NewRenderer())
	svc.Now = func() time.Time { return time.Date(2024, 8, 15, 10, 30, 0, 0, time.UTC) }

	record := domain.ValuationRecord{
		ID:                     uuid.New(),
		Brand:                  "Volkswagen",
		Model:                  "Gol 1.0/ 16V",
		ModelYear:              "2012",
		FuelType:               "Flex",
		ReferenceCode:          "005340-6",
		ReferenceMonth:         "agosto de 2024",
		CurrentValue:           decimal.RequireFromString("27890.00"),
		AnnualDepreciationRate: decimal.RequireFromString("11.4"),
	}

	doc, err := svc.GenerateFromRecord(record)

	require.NoError(t, err)
	assert.Equal(t, "Fipify_Report_Volkswagen_Gol 1.0- 16V_2012.pdf", doc.FileName)
	assert.Equal(t, report.ContentTypePDF, doc.ContentType)
	assert.True(t, bytes.HasPrefix(doc.Content, []byte("%PDF-")))
}
