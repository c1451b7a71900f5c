package report

import (
	"fmt"
	"io"
	"math"
	"time"

	"Illusion/internal/calc/illusion"

	"github.com/phpdave11/gofpdf"
)

type Meta struct {
	Project string `json:"project"`
	Author  string `json:"author"`
	Title   string `json:"title"`
	Notes   string `json:"notes"`
}

const (
	defaultTitle = "Share Illusion Report"
	barMaxWidth  = 70.0
	rowHeight    = 6.0
)

// Render writes an A4 PDF with the metrics, the detail table and the data of
// each chart.
func Render(w io.Writer, meta Meta, b illusion.Bundle) error {
	if meta.Title == "" {
		meta.Title = defaultTitle
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(meta.Title, false)
	pdf.SetAuthor(meta.Author, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, meta.Title)
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, rowHeight, fmt.Sprintf("Project: %s", meta.Project))
	pdf.Ln(rowHeight)
	pdf.Cell(0, rowHeight, fmt.Sprintf("Author: %s", meta.Author))
	pdf.Ln(rowHeight)
	pdf.Cell(0, rowHeight, fmt.Sprintf("Date: %s", time.Now().Format("2006-01-02")))
	pdf.Ln(10)
	if meta.Notes != "" {
		pdf.MultiCell(0, rowHeight, meta.Notes, "", "L", false)
		pdf.Ln(4)
	}

	writeMetrics(pdf, b.Metrics)
	writeTable(pdf, b.Table)

	pdf.AddPage()
	writePie(pdf, b.Charts.Pie)
	writeBars(pdf, b.Charts.Bar)
	writeDual(pdf, b.Charts.Dual)

	return pdf.Output(w)
}

func heading(pdf *gofpdf.Fpdf, text string) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, text)
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "", 10)
}

func writeMetrics(pdf *gofpdf.Fpdf, m illusion.Metrics) {
	heading(pdf, "Key Metrics")
	cells := [][2]string{
		{"Dividend Per Shareholder", illusion.Money(m.DividendPerShareholder)},
		{"Expenditure Per External", illusion.Money(m.ExpenditurePerExternal)},
		{"Illusion Status", m.Balance.Label},
	}
	for _, c := range cells {
		pdf.CellFormat(70, rowHeight, c[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(100, rowHeight, c[1], "1", 1, "R", false, 0, "")
	}
	pdf.Ln(6)
}

func writeTable(pdf *gofpdf.Fpdf, rows []illusion.TableRow) {
	heading(pdf, "Detailed Calculations")
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(220, 230, 245)
	pdf.CellFormat(15, rowHeight, "Code", "1", 0, "C", true, 0, "")
	pdf.CellFormat(80, rowHeight, "Field Name", "1", 0, "L", true, 0, "")
	pdf.CellFormat(75, rowHeight, "Value", "1", 1, "R", true, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, row := range rows {
		pdf.CellFormat(15, rowHeight, row.Code, "1", 0, "C", false, 0, "")
		pdf.CellFormat(80, rowHeight, row.Label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(75, rowHeight, illusion.Amount(row.Value), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(6)
}

func writePie(pdf *gofpdf.Fpdf, p illusion.PieChart) {
	heading(pdf, p.Title)
	for _, s := range p.Slices {
		barRow(pdf, s.Category, s.Share, fmt.Sprintf("%s (%.1f%%)", illusion.Money(s.Amount), s.Share*100))
	}
	pdf.Ln(6)
}

func writeBars(pdf *gofpdf.Fpdf, c illusion.BarChart) {
	heading(pdf, c.Title)
	peak := 0.0
	for _, b := range c.Bars {
		peak = math.Max(peak, math.Abs(b.Value))
	}
	for _, b := range c.Bars {
		barRow(pdf, b.Metric, ratio(b.Value, peak), illusion.Money(b.Value))
	}
	pdf.Ln(6)
}

func writeDual(pdf *gofpdf.Fpdf, d illusion.DualChart) {
	heading(pdf, d.Title)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(40, rowHeight, "Group", "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, rowHeight, "People", "1", 0, "R", false, 0, "")
	pdf.CellFormat(50, rowHeight, d.PrimaryAxis, "1", 0, "R", false, 0, "")
	pdf.CellFormat(50, rowHeight, d.SecondaryAxis, "1", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, g := range d.Groups {
		pdf.CellFormat(40, rowHeight, g.Group, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, rowHeight, fmt.Sprintf("%.0f", g.Count), "1", 0, "R", false, 0, "")
		pdf.CellFormat(50, rowHeight, illusion.Money(g.TotalReceived), "1", 0, "R", false, 0, "")
		pdf.CellFormat(50, rowHeight, illusion.Money(g.PerPerson), "1", 1, "R", false, 0, "")
	}
}

// barRow draws label, a bar scaled to frac of barMaxWidth, and a caption.
func barRow(pdf *gofpdf.Fpdf, label string, frac float64, caption string) {
	pdf.CellFormat(50, rowHeight, label, "", 0, "L", false, 0, "")
	x, y := pdf.GetXY()
	width := barMaxWidth * math.Max(0, math.Min(1, frac))
	pdf.SetFillColor(96, 165, 250)
	if width > 0 {
		pdf.Rect(x, y+1, width, rowHeight-2, "F")
	}
	pdf.SetX(x + barMaxWidth + 2)
	pdf.CellFormat(0, rowHeight, caption, "", 1, "L", false, 0, "")
}

func ratio(v, peak float64) float64 {
	if peak == 0 {
		return 0
	}
	return math.Abs(v) / peak
}
