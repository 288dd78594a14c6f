package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"ledgerkit/internal/ledger"
	"ledgerkit/internal/logger"
	"ledgerkit/pkg/models"
)

var statusCmd = &cobra.Command{
	Use:   "status [entity-file]",
	Short: "Recompute totals, balance, and payment status for a ledger entity",
	Long: `Read a ledger entity (order, expense, or material purchase) from a JSON
file, recompute its derived financial fields from the line items and
payments, and print the refreshed entity.

The stored derived fields in the input file are ignored: total, amount paid,
balance, and payment status are always recomputed so they cannot drift from
the raw items and payments.`,
	Example: `  # Recompute an order and print it
  ledgerkit status order.json

  # Save the refreshed entity to a file
  ledgerkit status order.json -o order-refreshed.json`,
	Args: cobra.ExactArgs(1),
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().StringP("output", "o", "", "Output file path (default: stdout)")
}

func runStatus(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("status")

	outputPath, _ := cmd.Flags().GetString("output")
	entityPath := args[0]

	data, err := os.ReadFile(entityPath)
	if err != nil {
		return fmt.Errorf("failed to read entity file: %w", err)
	}

	var entity models.LedgerEntity
	if err := json.Unmarshal(data, &entity); err != nil {
		return fmt.Errorf("failed to parse entity file: %w", err)
	}

	refreshed, err := ledger.NewCalculator().Recompute(entity)
	if err != nil {
		log.Error().
			Err(err).
			Str("file", entityPath).
			Msg("Entity failed validation")
		return err
	}

	log.Info().
		Str("entity", refreshed.ID).
		Str("total", refreshed.TotalAmount.String()).
		Str("balance", refreshed.Balance.String()).
		Str("status", string(refreshed.PaymentStatus)).
		Msg("Recomputed ledger entity")

	return writeJSON(refreshed, outputPath)
}
