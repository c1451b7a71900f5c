package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"Illusion/internal/calc/illusion"
	"Illusion/internal/calc/premium/importer"
	"Illusion/internal/calc/report"

	"github.com/spf13/cobra"
)

type computeOptions struct {
	format string
	pdf    string
	xlsx   string
	meta   report.Meta
}

func computeCmd() *cobra.Command {
	in := illusion.DefaultInput()
	var opts computeOptions

	cmd := &cobra.Command{
		Use:   "compute",
		Short: "Compute one scenario and print metrics, table and chart data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCompute(cmd.OutOrStdout(), in, opts)
		},
	}

	f := cmd.Flags()
	f.IntVar(&in.ShareholderCount, "shareholders", in.ShareholderCount, "No of Shareholders")
	f.IntVar(&in.ProductionUnits, "production", in.ProductionUnits, "Production (units)")
	f.Float64Var(&in.SellingPricePerUnit, "price", in.SellingPricePerUnit, "Selling price per unit")
	f.IntVar(&in.SharesPerShareholder, "shares", in.SharesPerShareholder, "Shares per shareholder")
	f.Float64Var(&in.ProductionCostPerUnit, "production-cost", in.ProductionCostPerUnit, "Production cost per unit")
	f.Float64Var(&in.OperatingCostPerUnit, "operating-cost", in.OperatingCostPerUnit, "Operating cost per unit")
	f.Float64Var(&in.CorporateTaxRate, "corporate-tax", in.CorporateTaxRate, "Corporate tax rate (0-1)")
	f.Float64Var(&in.DividendTaxRate, "dividend-tax", in.DividendTaxRate, "Dividend tax rate (0-1)")
	f.StringVarP(&opts.format, "format", "f", "text", "Output format: text or json")
	f.StringVar(&opts.pdf, "pdf", "", "Also write a PDF report to this file")
	f.StringVar(&opts.xlsx, "xlsx", "", "Also write an xlsx workbook to this file")
	f.StringVar(&opts.meta.Project, "project", "", "Project name for the PDF report")
	f.StringVar(&opts.meta.Author, "author", "", "Author for the PDF report")
	return cmd
}

func runCompute(out io.Writer, in illusion.Input, opts computeOptions) error {
	res, err := illusion.Run(in)
	if err != nil {
		return err
	}
	b := illusion.Present(res)

	switch opts.format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(illusion.Response{Input: in, Result: res, Presentation: b}); err != nil {
			return err
		}
	case "text", "":
		printBundle(out, b)
	default:
		return fmt.Errorf("unknown format %q", opts.format)
	}

	if opts.pdf != "" {
		if err := writeFile(opts.pdf, func(w io.Writer) error { return report.Render(w, opts.meta, b) }); err != nil {
			return fmt.Errorf("write pdf: %w", err)
		}
	}
	if opts.xlsx != "" {
		if err := writeFile(opts.xlsx, func(w io.Writer) error { return importer.WriteWorkbook(w, b) }); err != nil {
			return fmt.Errorf("write xlsx: %w", err)
		}
	}
	return nil
}

func writeFile(path string, render func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
