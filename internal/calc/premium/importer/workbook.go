package importer

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"Illusion/internal/calc/illusion"

	"github.com/xuri/excelize/v2"
)

// Columns expected in an import sheet, after one header row.
var Columns = []string{
	"shareholder_count",
	"production_units",
	"selling_price_per_unit",
	"shares_per_shareholder",
	"production_cost_per_unit",
	"operating_cost_per_unit",
	"corporate_tax_rate",
	"dividend_tax_rate",
}

type Scenario struct {
	Row   int            `json:"row"` // 1-based sheet row
	Input illusion.Input `json:"input"`
	Err   error          `json:"-"`
}

// ParseScenarios reads the first sheet of an xlsx workbook. Blank rows are
// skipped; malformed rows come back with Err set.
func ParseScenarios(r io.Reader) ([]Scenario, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("empty sheet")
	}

	var out []Scenario
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if blank(row) {
			continue
		}
		in, err := parseRow(row)
		out = append(out, Scenario{Row: i + 1, Input: in, Err: err})
	}
	return out, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func parseRow(row []string) (illusion.Input, error) {
	if len(row) < len(Columns) {
		return illusion.Input{}, fmt.Errorf("expected %d columns, got %d", len(Columns), len(row))
	}
	var in illusion.Input
	ints := []*int{&in.ShareholderCount, &in.ProductionUnits}
	for i, dst := range ints {
		v, err := toInt(row[i])
		if err != nil {
			return illusion.Input{}, fmt.Errorf("%s: %w", Columns[i], err)
		}
		*dst = v
	}
	var err error
	if in.SellingPricePerUnit, err = toFloat(row[2]); err != nil {
		return illusion.Input{}, fmt.Errorf("%s: %w", Columns[2], err)
	}
	if in.SharesPerShareholder, err = toInt(row[3]); err != nil {
		return illusion.Input{}, fmt.Errorf("%s: %w", Columns[3], err)
	}
	floats := []*float64{&in.ProductionCostPerUnit, &in.OperatingCostPerUnit, &in.CorporateTaxRate, &in.DividendTaxRate}
	for i, dst := range floats {
		col := i + 4
		v, err := toFloat(row[col])
		if err != nil {
			return illusion.Input{}, fmt.Errorf("%s: %w", Columns[col], err)
		}
		*dst = v
	}
	return in, nil
}

func toFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", ""), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not a finite number", s)
	}
	return v, nil
}

func toInt(s string) (int, error) {
	v, err := toFloat(s)
	if err != nil {
		return 0, err
	}
	if v != math.Trunc(v) {
		return 0, fmt.Errorf("%q is not a whole number", s)
	}
	// float64(math.MaxInt) rounds up to 2^63, itself out of range.
	if v >= float64(math.MaxInt) || v < float64(math.MinInt) {
		return 0, fmt.Errorf("%q is out of range", s)
	}
	return int(v), nil
}

// WriteWorkbook writes the detail table and chart data as an xlsx workbook.
func WriteWorkbook(w io.Writer, b illusion.Bundle) error {
	f := excelize.NewFile()
	defer f.Close()

	const details = "Details"
	if err := f.SetSheetName("Sheet1", details); err != nil {
		return err
	}
	cells := [][]any{{"Code", "Field Name", "Value"}}
	for _, row := range b.Table {
		cells = append(cells, []any{row.Code, row.Label, row.Value})
	}
	cells = append(cells, nil,
		[]any{"Dividend Per Shareholder", b.Metrics.DividendPerShareholder},
		[]any{"Expenditure Per External", b.Metrics.ExpenditurePerExternal},
		[]any{"Illusion Status", b.Metrics.Balance.Label},
	)
	if err := fill(f, details, cells); err != nil {
		return err
	}

	const charts = "Charts"
	if _, err := f.NewSheet(charts); err != nil {
		return err
	}
	cells = [][]any{{b.Charts.Pie.Title}, {"Category", "Amount", "Share"}}
	for _, s := range b.Charts.Pie.Slices {
		cells = append(cells, []any{s.Category, s.Amount, s.Share})
	}
	cells = append(cells, nil, []any{b.Charts.Bar.Title}, []any{"Metric", "Value"})
	for _, bar := range b.Charts.Bar.Bars {
		cells = append(cells, []any{bar.Metric, bar.Value})
	}
	d := b.Charts.Dual
	cells = append(cells, nil, []any{d.Title}, []any{"Group", "People", d.PrimaryAxis, d.SecondaryAxis})
	for _, g := range d.Groups {
		cells = append(cells, []any{g.Group, g.Count, g.TotalReceived, g.PerPerson})
	}
	if err := fill(f, charts, cells); err != nil {
		return err
	}

	return f.Write(w)
}

func fill(f *excelize.File, sheet string, rows [][]any) error {
	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}
	return nil
}
