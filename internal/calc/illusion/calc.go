package illusion

import (
	"errors"
	"fmt"
)

type Input struct {
	ShareholderCount      int     `json:"shareholder_count"`
	ProductionUnits       int     `json:"production_units"`
	SellingPricePerUnit   float64 `json:"selling_price_per_unit"`
	SharesPerShareholder  int     `json:"shares_per_shareholder"`
	ProductionCostPerUnit float64 `json:"production_cost_per_unit"`
	OperatingCostPerUnit  float64 `json:"operating_cost_per_unit"`
	CorporateTaxRate      float64 `json:"corporate_tax_rate"`
	DividendTaxRate       float64 `json:"dividend_tax_rate"`
}

// DefaultInput is the scenario the simulator opens with.
func DefaultInput() Input {
	return Input{
		ShareholderCount:      1000,
		ProductionUnits:       2000,
		SellingPricePerUnit:   6000,
		SharesPerShareholder:  2000,
		ProductionCostPerUnit: 250,
		OperatingCostPerUnit:  1238.72180451128,
		CorporateTaxRate:      0.30,
		DividendTaxRate:       0.05,
	}
}

type Result struct {
	Input Input `json:"input"`

	ExternalPeopleCount    float64 `json:"external_people_count"`
	ProductionCost         float64 `json:"production_cost"`
	OperatingCost          float64 `json:"operating_cost"`
	TotalCost              float64 `json:"total_cost"`
	Revenue                float64 `json:"revenue"`
	GrossProfit            float64 `json:"gross_profit"`
	CorporateTax           float64 `json:"corporate_tax"`
	ProfitAfterTax         float64 `json:"profit_after_tax"`
	DividendTax            float64 `json:"dividend_tax"`
	DividendAfterTax       float64 `json:"dividend_after_tax"`
	TotalShares            float64 `json:"total_shares"`
	DividendPerShare       float64 `json:"dividend_per_share"`
	DividendPerShareholder float64 `json:"dividend_per_shareholder"`
	TaxToGovernment        float64 `json:"tax_to_government"`
	GovernmentExpenditure  float64 `json:"government_expenditure"`
	CompanyExpenditure     float64 `json:"company_expenditure"`
	TotalExpenditure       float64 `json:"total_expenditure"`
	ExpenditurePerExternal float64 `json:"expenditure_per_external"`
}

const CodeProductionBelowShareholders = "PRODUCTION_BELOW_SHAREHOLDERS"

// ValidationError is the only failure Calculate can produce.
type ValidationError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	return ok && t.Code == e.Code
}

var ErrProductionBelowShareholders = &ValidationError{
	Code:    CodeProductionBelowShareholders,
	Message: "Production must be greater than or equal to No of Shareholders",
}

// Calculate derives the company and government money flows for one scenario.
// Single-field bounds are the caller's job (see CheckBounds); only the
// production/shareholder relation is enforced here.
func Calculate(in Input) (Result, error) {
	external := float64(in.ProductionUnits - in.ShareholderCount)
	if external < 0 {
		return Result{}, ErrProductionBelowShareholders
	}

	units := float64(in.ProductionUnits)
	holders := float64(in.ShareholderCount)

	productionCost := units * in.ProductionCostPerUnit
	operatingCost := units * in.OperatingCostPerUnit
	totalCost := productionCost + operatingCost
	revenue := units * in.SellingPricePerUnit
	grossProfit := revenue - totalCost
	corporateTax := grossProfit * in.CorporateTaxRate
	profitAfterTax := grossProfit - corporateTax
	dividendTax := profitAfterTax * in.DividendTaxRate
	dividendAfterTax := profitAfterTax - dividendTax
	totalShares := holders * float64(in.SharesPerShareholder)

	// Zero denominators report 0 instead of Inf/NaN.
	dividendPerShare := 0.0
	if totalShares > 0 {
		dividendPerShare = dividendAfterTax / totalShares
	}
	dividendPerShareholder := 0.0
	if holders > 0 {
		dividendPerShareholder = dividendAfterTax / holders
	}

	taxToGovernment := corporateTax + dividendTax
	governmentExpenditure := taxToGovernment
	companyExpenditure := totalCost
	totalExpenditure := governmentExpenditure + companyExpenditure

	expenditurePerExternal := 0.0
	if external > 0 {
		expenditurePerExternal = totalExpenditure / external
	}

	return Result{
		Input:                  in,
		ExternalPeopleCount:    external,
		ProductionCost:         productionCost,
		OperatingCost:          operatingCost,
		TotalCost:              totalCost,
		Revenue:                revenue,
		GrossProfit:            grossProfit,
		CorporateTax:           corporateTax,
		ProfitAfterTax:         profitAfterTax,
		DividendTax:            dividendTax,
		DividendAfterTax:       dividendAfterTax,
		TotalShares:            totalShares,
		DividendPerShare:       dividendPerShare,
		DividendPerShareholder: dividendPerShareholder,
		TaxToGovernment:        taxToGovernment,
		GovernmentExpenditure:  governmentExpenditure,
		CompanyExpenditure:     companyExpenditure,
		TotalExpenditure:       totalExpenditure,
		ExpenditurePerExternal: expenditurePerExternal,
	}, nil
}

// Evaluate runs Calculate and, only on success, Present.
func Evaluate(in Input) (Bundle, error) {
	res, err := Calculate(in)
	if err != nil {
		return Bundle{}, err
	}
	return Present(res), nil
}

// IsValidation reports whether err is a *ValidationError and returns it.
func IsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
