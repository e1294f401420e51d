package domain

import "github.com/shopspring/decimal"

// ComparisonEntry is a synthetic peer vehicle priced relative to the subject vehicle.
// Entries are derived on every request and never persisted.
type ComparisonEntry struct {
	Brand              string
	Model              string
	RelativeDifference decimal.Decimal // signed fraction, +0.05 = 5% above the subject
	DerivedValue       decimal.Decimal // CurrentValue * (1 + RelativeDifference)
}

// ProjectionPoint is one month of the compounding value trajectory
type ProjectionPoint struct {
	MonthIndex int // 1..24
	Value      decimal.Decimal
}

// MaintenanceCostEntry is the estimated maintenance spend for one ownership year
type MaintenanceCostEntry struct {
	Year        int // 1..5
	Cost        decimal.Decimal
	Description string
}

// SeasonalEntry is one quarter of the static resale seasonality table.
// Nothing in it depends on the vehicle.
type SeasonalEntry struct {
	Quarter     int
	Period      string          // short label, e.g. "Jan - Mar"
	LongPeriod  string          // e.g. "January to March"
	Variation   decimal.Decimal // percent points, e.g. 3.5
	Description string
}
