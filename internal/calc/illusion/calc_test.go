package illusion

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenarioInput() Input {
	return Input{
		ShareholderCount:      1000,
		ProductionUnits:       2000,
		SellingPricePerUnit:   6000,
		SharesPerShareholder:  2000,
		ProductionCostPerUnit: 250,
		OperatingCostPerUnit:  1238.7218045112782,
		CorporateTaxRate:      0.30,
		DividendTaxRate:       0.05,
	}
}

func almostEqual(t *testing.T, want, got float64, msg string) {
	t.Helper()
	tol := 1e-9 * math.Max(1, math.Abs(want))
	assert.InDelta(t, want, got, tol, msg)
}

func TestCalculate_Scenario(t *testing.T) {
	res, err := Calculate(scenarioInput())
	require.NoError(t, err)

	assert.Equal(t, 1000.0, res.ExternalPeopleCount)
	assert.Equal(t, 500000.0, res.ProductionCost)
	assert.InDelta(t, 2477443.609, res.OperatingCost, 0.001)
	assert.Equal(t, 12000000.0, res.Revenue)
	assert.InDelta(t, 9022556.39, res.GrossProfit, 0.01)
	assert.InDelta(t, 2706766.92, res.CorporateTax, 0.01)
	assert.InDelta(t, 6315789.47, res.ProfitAfterTax, 0.01)
	assert.InDelta(t, 315789.47, res.DividendTax, 0.01)
	assert.InDelta(t, 6000000.00, res.DividendAfterTax, 0.01)
	assert.Equal(t, 2000000.0, res.TotalShares)
	assert.InDelta(t, 3.0, res.DividendPerShare, 1e-9)
	assert.InDelta(t, 6000.00, res.DividendPerShareholder, 0.01)
	assert.InDelta(t, 6000000.00, res.TotalExpenditure, 0.01)
	assert.InDelta(t, 6000.00, res.ExpenditurePerExternal, 0.01)
	assert.Equal(t, scenarioInput(), res.Input)
}

func TestCalculate_DefaultInputIsValid(t *testing.T) {
	res, err := Calculate(DefaultInput())
	require.NoError(t, err)
	assert.Equal(t, 1000.0, res.ExternalPeopleCount)
	assert.Equal(t, Balanced, Present(res).Metrics.Balance.Status)
}

func TestCalculate_ProductionBelowShareholders(t *testing.T) {
	in := scenarioInput()
	in.ProductionUnits = 500

	res, err := Calculate(in)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrProductionBelowShareholders))
	assert.Equal(t, Result{}, res)

	ve, ok := IsValidation(err)
	require.True(t, ok)
	assert.Equal(t, CodeProductionBelowShareholders, ve.Code)
	assert.Equal(t, "Production must be greater than or equal to No of Shareholders", ve.Message)

	_, err = Evaluate(in)
	assert.ErrorIs(t, err, ErrProductionBelowShareholders)
}

func TestCalculate_ZeroDenominators(t *testing.T) {
	tests := []struct {
		name  string
		input Input
		check func(t *testing.T, res Result)
	}{
		{
			name:  "no shareholders",
			input: Input{ShareholderCount: 0, ProductionUnits: 10, SellingPricePerUnit: 100, SharesPerShareholder: 5, CorporateTaxRate: 0.2},
			check: func(t *testing.T, res Result) {
				assert.Equal(t, 0.0, res.TotalShares)
				assert.Equal(t, 0.0, res.DividendPerShare)
				assert.Equal(t, 0.0, res.DividendPerShareholder)
				assert.Equal(t, 10.0, res.ExternalPeopleCount)
				assert.Greater(t, res.ExpenditurePerExternal, 0.0)
			},
		},
		{
			name:  "no external people",
			input: Input{ShareholderCount: 50, ProductionUnits: 50, SellingPricePerUnit: 10, SharesPerShareholder: 1, ProductionCostPerUnit: 2},
			check: func(t *testing.T, res Result) {
				assert.Equal(t, 0.0, res.ExternalPeopleCount)
				assert.Equal(t, 0.0, res.ExpenditurePerExternal)
				assert.Greater(t, res.DividendPerShareholder, 0.0)
			},
		},
		{
			name:  "no shares per shareholder",
			input: Input{ShareholderCount: 5, ProductionUnits: 8, SellingPricePerUnit: 10, SharesPerShareholder: 0},
			check: func(t *testing.T, res Result) {
				assert.Equal(t, 0.0, res.DividendPerShare)
				assert.Equal(t, 16.0, res.DividendPerShareholder)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Calculate(tt.input)
			require.NoError(t, err)
			for _, v := range []float64{res.DividendPerShare, res.DividendPerShareholder, res.ExpenditurePerExternal} {
				assert.False(t, math.IsNaN(v) || math.IsInf(v, 0))
			}
			tt.check(t, res)
		})
	}
}

func TestCalculate_Identities(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		holders := 1 + rng.Intn(5000)
		in := Input{
			ShareholderCount:      holders,
			ProductionUnits:       holders + rng.Intn(10000),
			SellingPricePerUnit:   rng.Float64() * 10000,
			SharesPerShareholder:  1 + rng.Intn(5000),
			ProductionCostPerUnit: rng.Float64() * 5000,
			OperatingCostPerUnit:  rng.Float64() * 5000,
			CorporateTaxRate:      rng.Float64(),
			DividendTaxRate:       rng.Float64(),
		}
		res, err := Calculate(in)
		require.NoError(t, err, "input %+v", in)

		assert.Equal(t, float64(in.ProductionUnits-in.ShareholderCount), res.ExternalPeopleCount)
		assert.GreaterOrEqual(t, res.ExternalPeopleCount, 0.0)
		almostEqual(t, res.ProductionCost+res.OperatingCost, res.TotalCost, "total cost")
		almostEqual(t, res.GrossProfit, res.Revenue-res.TotalCost, "gross profit")
		almostEqual(t, res.GrossProfit, res.CorporateTax+res.ProfitAfterTax, "corporate tax split")
		almostEqual(t, res.ProfitAfterTax, res.DividendTax+res.DividendAfterTax, "dividend tax split")
		assert.Equal(t, res.TaxToGovernment, res.GovernmentExpenditure)
		assert.Equal(t, res.TotalCost, res.CompanyExpenditure)
		almostEqual(t, res.GovernmentExpenditure+res.CompanyExpenditure, res.TotalExpenditure, "total expenditure")

		again, err := Calculate(in)
		require.NoError(t, err)
		assert.Equal(t, res, again)
	}
}
