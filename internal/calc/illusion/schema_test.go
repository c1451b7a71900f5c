package illusion

import (
	"errors"
	"math"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckBounds(t *testing.T) {
	require.NoError(t, CheckBounds(DefaultInput()))

	tests := []struct {
		name   string
		mutate func(in *Input)
		field  string
	}{
		{"zero shareholders", func(in *Input) { in.ShareholderCount = 0 }, "shareholder_count"},
		{"zero production", func(in *Input) { in.ProductionUnits = 0 }, "production_units"},
		{"negative price", func(in *Input) { in.SellingPricePerUnit = -1 }, "selling_price_per_unit"},
		{"zero shares", func(in *Input) { in.SharesPerShareholder = 0 }, "shares_per_shareholder"},
		{"negative operating cost", func(in *Input) { in.OperatingCostPerUnit = -0.5 }, "operating_cost_per_unit"},
		{"corporate tax above one", func(in *Input) { in.CorporateTaxRate = 1.5 }, "corporate_tax_rate"},
		{"negative dividend tax", func(in *Input) { in.DividendTaxRate = -0.1 }, "dividend_tax_rate"},
		{"NaN price", func(in *Input) { in.SellingPricePerUnit = math.NaN() }, "selling_price_per_unit"},
		{"infinite production cost", func(in *Input) { in.ProductionCostPerUnit = math.Inf(1) }, "production_cost_per_unit"},
		{"negative infinite operating cost", func(in *Input) { in.OperatingCostPerUnit = math.Inf(-1) }, "operating_cost_per_unit"},
		{"NaN corporate tax", func(in *Input) { in.CorporateTaxRate = math.NaN() }, "corporate_tax_rate"},
		{"infinite dividend tax", func(in *Input) { in.DividendTaxRate = math.Inf(1) }, "dividend_tax_rate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := DefaultInput()
			tt.mutate(&in)
			err := CheckBounds(in)
			require.Error(t, err)

			var ie *InputError
			require.True(t, errors.As(err, &ie))
			require.Len(t, ie.Fields, 1)
			assert.Contains(t, ie.Fields[0].Field, tt.field)
			assert.Contains(t, err.Error(), CodeInvalidInput)
		})
	}
}

func TestCheckBounds_RatesAtEdges(t *testing.T) {
	in := DefaultInput()
	in.CorporateTaxRate = 1
	in.DividendTaxRate = 0
	in.SellingPricePerUnit = 0
	assert.NoError(t, CheckBounds(in))
}

func TestCheckBounds_LeavesCrossFieldToCalculate(t *testing.T) {
	in := DefaultInput()
	in.ProductionUnits = 500
	require.NoError(t, CheckBounds(in))

	_, err := Run(in)
	assert.ErrorIs(t, err, ErrProductionBelowShareholders)
}

func TestRun_NonFiniteIsInvalidInput(t *testing.T) {
	in := DefaultInput()
	in.SellingPricePerUnit = math.NaN()
	in.DividendTaxRate = math.Inf(1)

	_, err := Run(in)
	require.Error(t, err)

	status, body := Failure(err)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, CodeInvalidInput, body.Code)
	require.Len(t, body.Fields, 2)
	assert.Equal(t, "selling_price_per_unit", body.Fields[0].Field)
	assert.Equal(t, "dividend_tax_rate", body.Fields[1].Field)
}
