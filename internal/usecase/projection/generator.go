package projection

import (
	"github.com/shopspring/decimal"
	"github.com/simaogato/fipify-backend/internal/domain"
)

const (
	// TrajectoryMonths is the length of the value trajectory
	TrajectoryMonths = 24

	// factorPrecision is the number of decimal places kept for the monthly rate
	// and for every compounded trajectory point
	factorPrecision = 28
)

var (
	one           = decimal.NewFromInt(1)
	hundred       = decimal.NewFromInt(100)
	percentMonths = decimal.NewFromInt(1200) // 100 percent points * 12 months
)

// Result holds everything derived from one valuation record.
// It is recomputed on every request and never cached.
type Result struct {
	Comparisons []domain.ComparisonEntry
	Trajectory  []domain.ProjectionPoint
	Maintenance []domain.MaintenanceCostEntry
	Seasons     []domain.SeasonalEntry
	BestSeason  domain.SeasonalEntry
}

// Generate derives the comparison set, the 24-month trajectory and the 5-year
// maintenance schedule from a record. It is a pure function: no I/O, no shared state.
// Returns an error if the record is malformed.
func Generate(record domain.ValuationRecord) (*Result, error) {
	if err := record.Validate(); err != nil {
		return nil, err
	}

	seasons := make([]domain.SeasonalEntry, len(Seasons))
	copy(seasons, Seasons)

	return &Result{
		Comparisons: Compare(record.CurrentValue, ReportPeers),
		Trajectory:  Trajectory(record.CurrentValue, record.AnnualDepreciationRate),
		Maintenance: Maintenance(record.CurrentValue),
		Seasons:     seasons,
		BestSeason:  BestSeason(),
	}, nil
}

// Compare prices every peer of the catalog relative to value, preserving catalog order
func Compare(value decimal.Decimal, catalog []Peer) []domain.ComparisonEntry {
	entries := make([]domain.ComparisonEntry, 0, len(catalog))
	for _, peer := range catalog {
		entries = append(entries, domain.ComparisonEntry{
			Brand:              peer.Brand,
			Model:              peer.Model,
			RelativeDifference: peer.RelativeDifference,
			DerivedValue:       value.Mul(one.Add(peer.RelativeDifference)),
		})
	}
	return entries
}

// Trajectory compounds a constant monthly factor of (1 - rate/100/12) over 24 months,
// starting from value. A zero rate yields a factor of exactly 1, so every point equals value.
func Trajectory(value, annualRate decimal.Decimal) []domain.ProjectionPoint {
	factor := one.Sub(annualRate.DivRound(percentMonths, factorPrecision))

	points := make([]domain.ProjectionPoint, 0, TrajectoryMonths)
	running := value
	for month := 1; month <= TrajectoryMonths; month++ {
		running = running.Mul(factor).Round(factorPrecision)
		points = append(points, domain.ProjectionPoint{
			MonthIndex: month,
			Value:      running,
		})
	}
	return points
}

// Maintenance applies the fixed multiplier schedule to 8% of value, year 1 to 5
func Maintenance(value decimal.Decimal) []domain.MaintenanceCostEntry {
	base := value.Mul(MaintenanceBaseRate)

	entries := make([]domain.MaintenanceCostEntry, 0, len(maintenanceSchedule))
	for _, step := range maintenanceSchedule {
		entries = append(entries, domain.MaintenanceCostEntry{
			Year:        step.Year,
			Cost:        base.Mul(step.Multiplier),
			Description: step.Description,
		})
	}
	return entries
}

// TotalMaintenance sums the yearly maintenance costs
func TotalMaintenance(entries []domain.MaintenanceCostEntry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.Cost)
	}
	return total
}

// SeasonalValue is value moved by a seasonal variation expressed in percent points
func SeasonalValue(value decimal.Decimal, season domain.SeasonalEntry) decimal.Decimal {
	return value.Mul(one.Add(season.Variation.Div(hundred)))
}

// VariationFrom returns how far projected sits from base, in percent points
func VariationFrom(base, projected decimal.Decimal) decimal.Decimal {
	return projected.Sub(base).Div(base).Mul(hundred)
}
