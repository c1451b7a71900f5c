package illusion

import "math"

type BalanceStatus string

const (
	Balanced   BalanceStatus = "balanced"
	Unbalanced BalanceStatus = "unbalanced"
)

// BalanceTolerance is the largest per-person gap still shown as balanced.
const BalanceTolerance = 1.0

type Balance struct {
	Status     BalanceStatus `json:"status"`
	Difference float64       `json:"difference"`
	Label      string        `json:"label"`
}

type Metrics struct {
	DividendPerShareholder float64 `json:"dividend_per_shareholder"`
	ExpenditurePerExternal float64 `json:"expenditure_per_external"`
	Balance                Balance `json:"balance"`
}

type TableRow struct {
	Code  string  `json:"code"`
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

type Slice struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Share    float64 `json:"share"`
}

type PieChart struct {
	Title  string  `json:"title"`
	Total  float64 `json:"total"`
	Slices []Slice `json:"slices"`
}

type Bar struct {
	Metric string  `json:"metric"`
	Value  float64 `json:"value"`
}

type BarChart struct {
	Title string `json:"title"`
	Bars  []Bar  `json:"bars"`
}

type DualGroup struct {
	Group         string  `json:"group"`
	Count         float64 `json:"count"`
	PerPerson     float64 `json:"per_person"`
	TotalReceived float64 `json:"total_received"`
}

// DualChart pairs a bar series (TotalReceived, primary axis) with a line
// series (PerPerson, secondary axis).
type DualChart struct {
	Title         string      `json:"title"`
	PrimaryAxis   string      `json:"primary_axis"`
	SecondaryAxis string      `json:"secondary_axis"`
	Groups        []DualGroup `json:"groups"`
}

type Charts struct {
	Pie  PieChart  `json:"pie"`
	Bar  BarChart  `json:"bar"`
	Dual DualChart `json:"dual"`
}

type Bundle struct {
	Metrics Metrics    `json:"metrics"`
	Table   []TableRow `json:"table"`
	Charts  Charts     `json:"charts"`
}

// Present projects a successful Result into everything a UI needs to show.
func Present(res Result) Bundle {
	return Bundle{
		Metrics: headline(res),
		Table:   Table(res),
		Charts: Charts{
			Pie:  pie(res),
			Bar:  bar(res),
			Dual: dual(res),
		},
	}
}

func headline(res Result) Metrics {
	return Metrics{
		DividendPerShareholder: res.DividendPerShareholder,
		ExpenditurePerExternal: res.ExpenditurePerExternal,
		Balance:                BalanceOf(res.DividendPerShareholder, res.ExpenditurePerExternal),
	}
}

func BalanceOf(dividendPerShareholder, expenditurePerExternal float64) Balance {
	diff := math.Abs(dividendPerShareholder - expenditurePerExternal)
	if diff < BalanceTolerance {
		return Balance{Status: Balanced, Difference: diff, Label: "Perfectly Balanced"}
	}
	return Balance{
		Status:     Unbalanced,
		Difference: diff,
		Label:      "Unbalanced (Diff: " + Money(diff) + ")",
	}
}

// Table lists inputs and derived values under their letter codes, A to Z.
func Table(res Result) []TableRow {
	in := res.Input
	return []TableRow{
		{"A", "No of Shareholders", float64(in.ShareholderCount)},
		{"B", "No of External People", res.ExternalPeopleCount},
		{"C", "Production", float64(in.ProductionUnits)},
		{"D", "Selling Price", in.SellingPricePerUnit},
		{"E", "Shares per Shareholder", float64(in.SharesPerShareholder)},
		{"F", "Production Cost Per Unit", in.ProductionCostPerUnit},
		{"G", "Operating Cost Per Unit", in.OperatingCostPerUnit},
		{"H", "Production Cost", res.ProductionCost},
		{"I", "Operating Cost", res.OperatingCost},
		{"J", "Total Cost", res.TotalCost},
		{"K", "Revenue", res.Revenue},
		{"L", "Gross Profit", res.GrossProfit},
		{"M", "Corporate Tax Rate", in.CorporateTaxRate},
		{"N", "Corporate Tax", res.CorporateTax},
		{"O", "Profit after Tax", res.ProfitAfterTax},
		{"P", "Dividend Tax Rate", in.DividendTaxRate},
		{"Q", "Dividend Tax", res.DividendTax},
		{"R", "Dividend after Tax", res.DividendAfterTax},
		{"S", "Total Shares", res.TotalShares},
		{"T", "Dividend Per Share", res.DividendPerShare},
		{"U", "Dividend Per Shareholder", res.DividendPerShareholder},
		{"V", "Tax to Government", res.TaxToGovernment},
		{"W", "Govt Expenditure", res.GovernmentExpenditure},
		{"X", "Company Expenditure", res.CompanyExpenditure},
		{"Y", "Total Expenditure", res.TotalExpenditure},
		{"Z", "Expenditure Per External", res.ExpenditurePerExternal},
	}
}

func pie(res Result) PieChart {
	slices := []Slice{
		{Category: "Production Cost", Amount: res.ProductionCost},
		{Category: "Operating Cost", Amount: res.OperatingCost},
		{Category: "Corporate Tax", Amount: res.CorporateTax},
		{Category: "Dividend Tax", Amount: res.DividendTax},
		{Category: "Dividend to Shareholders", Amount: res.DividendAfterTax},
	}
	total := 0.0
	for _, s := range slices {
		total += s.Amount
	}
	if total != 0 {
		for i := range slices {
			slices[i].Share = slices[i].Amount / total
		}
	}
	return PieChart{Title: "Where the Money Goes", Total: total, Slices: slices}
}

func bar(res Result) BarChart {
	return BarChart{
		Title: "Financial Overview",
		Bars: []Bar{
			{"Revenue", res.Revenue},
			{"Total Cost", res.TotalCost},
			{"Gross Profit", res.GrossProfit},
			{"Profit after Tax", res.ProfitAfterTax},
			{"Dividend after Tax", res.DividendAfterTax},
		},
	}
}

func dual(res Result) DualChart {
	holders := float64(res.Input.ShareholderCount)
	return DualChart{
		Title:         "Shareholders vs External People - The Illusion",
		PrimaryAxis:   "Total Amount ($)",
		SecondaryAxis: "Per Person ($)",
		Groups: []DualGroup{
			{
				Group:         "Shareholders",
				Count:         holders,
				PerPerson:     res.DividendPerShareholder,
				TotalReceived: res.DividendPerShareholder * holders,
			},
			{
				Group:         "Externals",
				Count:         res.ExternalPeopleCount,
				PerPerson:     res.ExpenditurePerExternal,
				TotalReceived: res.ExpenditurePerExternal * res.ExternalPeopleCount,
			},
		},
	}
}
