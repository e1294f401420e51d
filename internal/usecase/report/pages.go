package report

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/simaogato/fipify-backend/internal/domain"
	"github.com/simaogato/fipify-backend/internal/usecase/projection"
)

// vehicleDetailPage: record grid, current value banner, depreciation classification
func vehicleDetailPage(w *pageWriter, record domain.ValuationRecord) {
	w.sectionTitle("Detailed Vehicle Information", 10)

	w.framedBox(marginLeft, w.cursor, contentWidth, 50)
	grid := [3][2]string{
		{"Brand: " + record.Brand, "Model: " + record.Model},
		{"Year: " + record.ModelYear, "Fuel: " + record.FuelType},
		{"FIPE Code: " + record.ReferenceCode, "Reference: " + record.ReferenceMonth},
	}
	for i, row := range grid {
		y := w.cursor + 10 + float64(i)*12
		style := textStyle{size: 10, weight: WeightNormal, color: ColorText}
		w.text(row[0], 25, y, style)
		w.text(row[1], 110, y, style)
	}
	w.advance(60)

	w.fillRect(marginLeft, w.cursor, contentWidth, 20, ColorPrimary)
	w.text("Current FIPE Value", pageCenter, w.cursor+8, textStyle{size: 12, weight: WeightBold, color: ColorWhite, align: AlignCenter})
	w.text(record.FormattedValue(), pageCenter, w.cursor+16, textStyle{size: 16, weight: WeightBold, color: ColorWhite, align: AlignCenter})
	w.advance(30)

	w.sectionTitle("Depreciation Analysis", 10)

	class := domain.ClassifyDepreciation(record.AnnualDepreciationRate)
	w.framedBox(marginLeft, w.cursor, contentWidth, 30)
	bold := textStyle{size: 10, weight: WeightBold, color: ColorText}
	w.text("Annual Depreciation: "+record.AnnualDepreciationRate.String()+"%", 25, w.cursor+10, bold)
	w.text("Classification: "+class.Label(), 25, w.cursor+18, bold)
	w.text("Category Average: "+domain.CategoryAverageDepreciation.String()+"%", 25, w.cursor+26, bold)
	w.advance(30)
}

var comparisonColumns = []column{
	{x: 25, title: "Vehicle"},
	{x: 90, title: "FIPE Value"},
	{x: 140, title: "Difference"},
}

var trajectoryColumns = []column{
	{x: 25, title: "Period"},
	{x: 90, title: "Projected Value"},
	{x: 140, title: "Variation"},
}

// comparisonPage: peer table with the subject as base row, then the sampled trajectory
func comparisonPage(w *pageWriter, record domain.ValuationRecord, proj *projection.Result) {
	w.sectionTitle("Comparison with Competitors", 15)

	w.tableHeader(comparisonColumns, ColorPrimary)
	base := ColorBaseRow
	w.tableRow(comparisonColumns, []cell{
		{text: fmt.Sprintf("%s %s (YOURS)", record.Brand, record.Model)},
		{text: record.FormattedValue()},
		{text: "Base"},
	}, 0, WeightBold, &base)

	for i, peer := range proj.Comparisons {
		w.tableRow(comparisonColumns, []cell{
			{text: peer.Brand + " " + peer.Model},
			{text: domain.FormatCurrency(peer.DerivedValue)},
			{text: domain.FormatSignedPercent(domain.FractionToPercent(peer.RelativeDifference)), color: differenceColor(peer.RelativeDifference)},
		}, i, WeightNormal, nil)
	}
	w.advance(15)

	w.sectionTitle(fmt.Sprintf("Value Projection (%d months)", projection.TrajectoryMonths), 15)

	w.tableHeader(trajectoryColumns, ColorPrimary)
	for i, idx := range trajectorySamples {
		point := proj.Trajectory[idx]
		w.tableRow(trajectoryColumns, []cell{
			{text: fmt.Sprintf("%d months", point.MonthIndex)},
			{text: domain.FormatCurrency(point.Value)},
			{text: domain.FormatSignedPercent(projection.VariationFrom(record.CurrentValue, point.Value))},
		}, i, WeightNormal, nil)
	}
}

// differenceColor marks pricier peers red and cheaper peers green
func differenceColor(diff decimal.Decimal) Color {
	if diff.IsNegative() {
		return ColorGreen
	}
	return ColorRed
}

// seasonColor marks favorable quarters green and unfavorable ones red
func seasonColor(variation decimal.Decimal) Color {
	if variation.IsNegative() {
		return ColorRed
	}
	return ColorGreen
}

var maintenanceColumns = []column{
	{x: 25, title: "Year"},
	{x: 70, title: "Estimated Cost"},
	{x: 130, title: "Maintenance Type"},
}

// timingPage: seasonal blocks, best-season recommendation, maintenance cost table
func timingPage(w *pageWriter, record domain.ValuationRecord, proj *projection.Result) {
	w.sectionTitle("Seasonal Analysis - Best Time to Sell", 15)

	for _, season := range proj.Seasons {
		w.framedBox(marginLeft, w.cursor, contentWidth, 12)
		w.text(season.Period, 25, w.cursor+5, textStyle{size: 9, weight: WeightBold, color: ColorText})
		w.text(domain.FormatSignedPercent(season.Variation), 70, w.cursor+5,
			textStyle{size: 9, weight: WeightBold, color: seasonColor(season.Variation)})
		w.text(season.Description, 25, w.cursor+9, textStyle{size: 8, weight: WeightNormal, color: ColorText})
		w.advance(15)
	}
	w.advance(10)

	best := proj.BestSeason
	w.fillRect(marginLeft, w.cursor, contentWidth, 15, ColorGreen)
	w.text("Recommendation: "+best.LongPeriod, pageCenter, w.cursor+6,
		textStyle{size: 11, weight: WeightBold, color: ColorWhite, align: AlignCenter})
	w.text(fmt.Sprintf("Projected value: %s (%s)",
		domain.FormatCurrency(projection.SeasonalValue(record.CurrentValue, best)),
		domain.FormatSignedPercent(best.Variation)),
		pageCenter, w.cursor+12, textStyle{size: 9, weight: WeightBold, color: ColorWhite, align: AlignCenter})
	w.advance(25)

	w.sectionTitle("Maintenance Cost Projection", 15)

	w.tableHeader(maintenanceColumns, ColorGreen)
	for i, cost := range proj.Maintenance {
		w.tableRow(maintenanceColumns, []cell{
			{text: fmt.Sprintf("Year %d", cost.Year)},
			{text: domain.FormatCurrency(cost.Cost)},
			{text: cost.Description},
		}, i, WeightNormal, nil)
	}
}

const (
	summaryCellWidth  = 80.0
	summaryCellHeight = 15.0
	summaryColumnStep = 85.0
	summaryRowStep    = 20.0
)

var disclaimer = []string{
	"Disclaimer: This report was generated from official FIPE table data and market analysis.",
	"Values are estimates and may vary with the specific condition of the vehicle and the market.",
	"We always recommend an in-person evaluation before buying or selling decisions.",
}

// summaryPage: six-cell executive grid, strategic recommendations, disclaimer
func summaryPage(w *pageWriter, record domain.ValuationRecord, proj *projection.Result) {
	w.sectionTitle("Executive Summary", 15)

	best := proj.BestSeason
	summary := [][2]string{
		{"Current Investment", record.FormattedValue()},
		{"Value in 12 months", domain.FormatCurrency(proj.Trajectory[11].Value)},
		{"Value in 24 months", domain.FormatCurrency(proj.Trajectory[23].Value)},
		{fmt.Sprintf("Best season (%s)", best.Period), domain.FormatCurrency(projection.SeasonalValue(record.CurrentValue, best))},
		{fmt.Sprintf("Maintenance Cost (%d years)", len(proj.Maintenance)), domain.FormatCurrency(projection.TotalMaintenance(proj.Maintenance))},
		{"Valorization Score", domain.ValorizationScore(record.AnnualDepreciationRate)},
	}
	for i, item := range summary {
		x := marginLeft + float64(i%2)*summaryColumnStep
		y := w.cursor + float64(i/2)*summaryRowStep
		w.framedBox(x, y, summaryCellWidth, summaryCellHeight)
		w.text(item[0], x+2, y+6, textStyle{size: 7, weight: WeightNormal, color: ColorText})
		w.text(item[1], x+2, y+12, textStyle{size: 9, weight: WeightBold, color: ColorText})
	}
	w.advance(70)

	recommendations := []string{
		fmt.Sprintf("Sale Timing: %s to maximize return", best.LongPeriod),
		"Maintenance: Keep it up to date to preserve value",
		"Documentation: A complete history increases credibility",
		"Market: Monitor competitors regularly",
	}
	w.fillRect(marginLeft, w.cursor, contentWidth, 50, ColorStrategy)
	w.text("Strategic Recommendations", pageCenter, w.cursor+10,
		textStyle{size: 12, weight: WeightBold, color: ColorWhite, align: AlignCenter})
	for i, rec := range recommendations {
		w.text("- "+rec, 25, w.cursor+20+float64(i)*7, textStyle{size: 8, weight: WeightNormal, color: ColorWhite})
	}
	w.advance(60)

	for i, line := range disclaimer {
		w.text(line, marginLeft, w.cursor+float64(i)*4, textStyle{size: 7, weight: WeightNormal, color: ColorText})
	}
	w.advance(float64(len(disclaimer)) * 4)
}
