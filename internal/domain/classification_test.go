package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestClassifyDepreciation(t *testing.T) {
	tests := []struct {
		rate      string
		wantClass DepreciationClass
		wantScore string
	}{
		{"0", DepreciationExcellent, "9.2/10"},
		{"5", DepreciationExcellent, "9.2/10"},
		{"8.0", DepreciationExcellent, "9.2/10"},
		{"8.01", DepreciationNormal, "7.5/10"},
		{"12.5", DepreciationNormal, "7.5/10"},
		{"15.0", DepreciationNormal, "7.5/10"},
		{"15.01", DepreciationHigh, "5.8/10"},
		{"100", DepreciationHigh, "5.8/10"},
	}

	for _, tt := range tests {
		t.Run(tt.rate, func(t *testing.T) {
			rate := decimal.RequireFromString(tt.rate)
			assert.Equal(t, tt.wantClass, ClassifyDepreciation(rate))
			assert.Equal(t, tt.wantScore, ValorizationScore(rate))
		})
	}
}

func TestDepreciationClass_Label(t *testing.T) {
	assert.Equal(t, "Excellent Valorization", DepreciationExcellent.Label())
	assert.Equal(t, "Normal Depreciation", DepreciationNormal.Label())
	assert.Equal(t, "High Depreciation", DepreciationHigh.Label())
}
