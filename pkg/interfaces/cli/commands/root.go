// Package commands wires the cartsource CLI: solve runs the full sourcing
// pipeline, check verifies availability before solving, and generate emits
// random demo carts.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	settingsFile string
	outputFormat string
	outputDir    string
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:   "cartsource",
	Short: "Pick which seller supplies each cart item at minimal total cost",
	Long: `cartsource reads a shopping cart of items with per-seller offers and
computes the cheapest way to source every unit, trading slightly higher
unit prices against the flat delivery fee charged once per distinct seller.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&settingsFile, "config", "", "Path to YAML settings file (optional)")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "format", "", "Output format: text, json, csv (default from settings)")
	rootCmd.PersistentFlags().StringVar(&outputDir, "output", "", "Output directory for results (optional)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable verbose output")
}

// Execute runs the root command. Subcommands report their own failures and
// exit non-zero; this only covers cobra usage errors.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// fail reports a fatal command error and exits non-zero.
func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
