package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "illusion",
		Short:         "Share Illusion Simulator: shareholders versus external people",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(computeCmd())
	rootCmd.AddCommand(tokenCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
