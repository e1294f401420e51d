package projection

import (
	"github.com/shopspring/decimal"
	"github.com/simaogato/fipify-backend/internal/domain"
)

// Peer is one row of a static comparison catalog
type Peer struct {
	Brand              string
	Model              string
	RelativeDifference decimal.Decimal
}

// ReportPeers is the comparison catalog printed in the report.
// The offsets are fixed and do not depend on the subject vehicle.
var ReportPeers = []Peer{
	{Brand: "Hyundai", Model: "HB20 Comfort", RelativeDifference: decimal.RequireFromString("0.05")},
	{Brand: "Ford", Model: "Ka SE", RelativeDifference: decimal.RequireFromString("-0.02")},
	{Brand: "Volkswagen", Model: "Gol TL", RelativeDifference: decimal.RequireFromString("-0.08")},
	{Brand: "Chevrolet", Model: "Onix LT", RelativeDifference: decimal.RequireFromString("0.03")},
	{Brand: "Renault", Model: "Kwid Zen", RelativeDifference: decimal.RequireFromString("-0.12")},
}

// DisplayPeers is the shorter catalog used by on-screen comparison cards
var DisplayPeers = []Peer{
	{Brand: "Hyundai", Model: "HB20 Comfort", RelativeDifference: decimal.RequireFromString("0.05")},
	{Brand: "Ford", Model: "Ka SE", RelativeDifference: decimal.RequireFromString("-0.02")},
	{Brand: "Volkswagen", Model: "Gol TL", RelativeDifference: decimal.RequireFromString("-0.08")},
}

// MaintenanceBaseRate is the share of the current value spent on maintenance in year 1
var MaintenanceBaseRate = decimal.RequireFromString("0.08")

// maintenanceStep holds the multiplier and label for one ownership year
type maintenanceStep struct {
	Year        int
	Multiplier  decimal.Decimal
	Description string
}

var maintenanceSchedule = []maintenanceStep{
	{Year: 1, Multiplier: decimal.RequireFromString("1.0"), Description: "Basic preventive maintenance"},
	{Year: 2, Multiplier: decimal.RequireFromString("1.2"), Description: "Services and small repairs"},
	{Year: 3, Multiplier: decimal.RequireFromString("1.5"), Description: "Replacement of wear components"},
	{Year: 4, Multiplier: decimal.RequireFromString("1.8"), Description: "More complex maintenance"},
	{Year: 5, Multiplier: decimal.RequireFromString("2.2"), Description: "Possible structural repairs"},
}

// MaintenanceMultiplierSum is the sum of the yearly multipliers (7.7)
func MaintenanceMultiplierSum() decimal.Decimal {
	sum := decimal.Zero
	for _, step := range maintenanceSchedule {
		sum = sum.Add(step.Multiplier)
	}
	return sum
}

// Seasons is the static resale seasonality table, one entry per quarter
var Seasons = []domain.SeasonalEntry{
	{
		Quarter:     1,
		Period:      "Jan - Mar",
		LongPeriod:  "January to March",
		Variation:   decimal.RequireFromString("3.5"),
		Description: "Bonus and vacation period",
	},
	{
		Quarter:     2,
		Period:      "Apr - Jun",
		LongPeriod:  "April to June",
		Variation:   decimal.RequireFromString("1.5"),
		Description: "After vehicle tax (IPVA) payments",
	},
	{
		Quarter:     3,
		Period:      "Jul - Sep",
		LongPeriod:  "July to September",
		Variation:   decimal.RequireFromString("-1.2"),
		Description: "Lower demand period",
	},
	{
		Quarter:     4,
		Period:      "Oct - Dec",
		LongPeriod:  "October to December",
		Variation:   decimal.RequireFromString("2.8"),
		Description: "Year end, 13th salary",
	},
}

// BestSeason returns the quarter with the highest variation in the static table.
// The table is constant, so this is always the first quarter today.
func BestSeason() domain.SeasonalEntry {
	best := Seasons[0]
	for _, s := range Seasons[1:] {
		if s.Variation.GreaterThan(best.Variation) {
			best = s
		}
	}
	return best
}
