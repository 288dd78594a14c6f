package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"ledgerkit/internal/logger"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "ledgerkit",
	Short: "Ledgerkit - financial ledger and scheduling engine",
	Long: `Ledgerkit derives the financial state of orders, expenses, and material
purchases from their line items and payments, generates installment payment
plans with due dates, and computes occurrence dates for recurring tasks and
expenses.

All commands read plain JSON and print plain JSON, so the output can be fed
directly to whatever persists or renders it.`,
	Version: version,
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.WithComponent("root")
		log.Info().
			Str("version", version).
			Msg("Ledgerkit executed")

		fmt.Println("Welcome to Ledgerkit!")
		fmt.Println("Use --help to see available commands and options.")
	},
}

func Execute() {
	log := logger.WithComponent("cmd")

	if err := rootCmd.Execute(); err != nil {
		log.Error().
			Err(err).
			Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print version information")
}

// writeJSON renders v as indented JSON to outputPath, or stdout when the
// path is empty.
func writeJSON(v interface{}, outputPath string) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	data = append(data, '\n')

	if outputPath == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
