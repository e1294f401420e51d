package domain

import "github.com/shopspring/decimal"

// DepreciationClass represents the coarse tier a depreciation rate falls into
type DepreciationClass string

const (
	DepreciationExcellent DepreciationClass = "EXCELLENT"
	DepreciationNormal    DepreciationClass = "NORMAL"
	DepreciationHigh      DepreciationClass = "HIGH"
)

// Tier boundaries (percent per year); both are inclusive on the lower tier
var (
	ExcellentDepreciationCeiling = decimal.NewFromInt(8)
	NormalDepreciationCeiling    = decimal.NewFromInt(15)
)

// CategoryAverageDepreciation is the fixed reference rate printed next to the classification
var CategoryAverageDepreciation = decimal.RequireFromString("12.5")

// ClassifyDepreciation maps a rate to its tier:
// rate <= 8 is Excellent, 8 < rate <= 15 is Normal, above 15 is High
func ClassifyDepreciation(rate decimal.Decimal) DepreciationClass {
	switch {
	case rate.LessThanOrEqual(ExcellentDepreciationCeiling):
		return DepreciationExcellent
	case rate.LessThanOrEqual(NormalDepreciationCeiling):
		return DepreciationNormal
	default:
		return DepreciationHigh
	}
}

// Label returns the human readable name of the tier
func (c DepreciationClass) Label() string {
	switch c {
	case DepreciationExcellent:
		return "Excellent Valorization"
	case DepreciationNormal:
		return "Normal Depreciation"
	case DepreciationHigh:
		return "High Depreciation"
	default:
		return string(c)
	}
}

// Score is the fixed valorization score shown for the tier. It is a lookup, not a formula.
func (c DepreciationClass) Score() string {
	switch c {
	case DepreciationExcellent:
		return "9.2/10"
	case DepreciationNormal:
		return "7.5/10"
	default:
		return "5.8/10"
	}
}

// ValorizationScore returns the score for a rate using the same thresholds as ClassifyDepreciation
func ValorizationScore(rate decimal.Decimal) string {
	return ClassifyDepreciation(rate).Score()
}
