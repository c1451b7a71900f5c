package main

import (
	"fmt"
	"io"

	"Illusion/internal/calc/illusion"
)

func printBundle(out io.Writer, b illusion.Bundle) {
	m := b.Metrics
	fmt.Fprintln(out, "Share Illusion")
	fmt.Fprintln(out, "==============")
	fmt.Fprintf(out, "  Dividend per shareholder:  %s\n", illusion.Money(m.DividendPerShareholder))
	fmt.Fprintf(out, "  Expenditure per external:  %s\n", illusion.Money(m.ExpenditurePerExternal))
	fmt.Fprintf(out, "  Illusion status:           %s\n", m.Balance.Label)
	fmt.Fprintln(out)

	fmt.Fprintf(out, "%-4s %-26s %24s\n", "Code", "Field Name", "Value")
	fmt.Fprintf(out, "%-4s %-26s %24s\n", "----", "--------------------------", "------------------------")
	for _, row := range b.Table {
		fmt.Fprintf(out, "%-4s %-26s %24s\n", row.Code, row.Label, illusion.Amount(row.Value))
	}
	fmt.Fprintln(out)

	pie := b.Charts.Pie
	fmt.Fprintln(out, pie.Title)
	for _, s := range pie.Slices {
		fmt.Fprintf(out, "  %-26s %20s %6.1f%%\n", s.Category, illusion.Money(s.Amount), s.Share*100)
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, b.Charts.Bar.Title)
	for _, bar := range b.Charts.Bar.Bars {
		fmt.Fprintf(out, "  %-26s %20s\n", bar.Metric, illusion.Money(bar.Value))
	}
	fmt.Fprintln(out)

	d := b.Charts.Dual
	fmt.Fprintln(out, d.Title)
	for _, g := range d.Groups {
		fmt.Fprintf(out, "  %-14s people %-10.0f total %20s  per person %14s\n",
			g.Group, g.Count, illusion.Money(g.TotalReceived), illusion.Money(g.PerPerson))
	}
}
