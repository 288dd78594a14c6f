package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"ledgerkit/internal/config"
	"ledgerkit/internal/logger"
	"ledgerkit/pkg/models"
	"ledgerkit/pkg/services"
)

var summaryCmd = &cobra.Command{
	Use:   "summary [entities-file]",
	Short: "Build an outstanding-balance summary over a set of ledger entities",
	Long: `Read a JSON array of ledger entities, recompute each one, and print the
aggregate outstanding summary: totals billed, paid, and outstanding plus a
count per payment status.

With --plans, a JSON array of installment plans is additionally folded into
a delinquency report as of --as-of (default: today).`,
	Example: `  # Outstanding summary over all open orders
  ledgerkit summary orders.json

  # Include installment delinquency as of a reference date
  ledgerkit summary orders.json --plans plans.json --as-of 2024-06-01`,
	Args: cobra.ExactArgs(1),
	RunE: runSummary,
}

// SummaryOutput is the JSON output of the summary command.
type SummaryOutput struct {
	Outstanding *services.OutstandingSummary `json:"outstanding"`
	Delinquency *services.DelinquencyReport  `json:"delinquency,omitempty"`
}

func init() {
	rootCmd.AddCommand(summaryCmd)

	summaryCmd.Flags().String("plans", "", "JSON file with installment plans for the delinquency report")
	summaryCmd.Flags().String("as-of", "", "Reference date for the delinquency report, YYYY-MM-DD (default: today)")
	summaryCmd.Flags().Int("reminder-days", 0, "Reminder window in days (default: from configuration)")
	summaryCmd.Flags().StringP("output", "o", "", "Output file path (default: stdout)")
}

func runSummary(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("summary")

	plansPath, _ := cmd.Flags().GetString("plans")
	asOfStr, _ := cmd.Flags().GetString("as-of")
	reminderDays, _ := cmd.Flags().GetInt("reminder-days")
	outputPath, _ := cmd.Flags().GetString("output")

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if reminderDays == 0 {
		reminderDays = cfg.ReminderDays
	}

	entities, err := readEntities(args[0])
	if err != nil {
		return err
	}

	ctx := context.Background()
	reports := services.NewReportsService(cfg.SummaryCacheTTL())

	outstanding, err := reports.OutstandingSummary(ctx, entities)
	if err != nil {
		log.Error().
			Err(err).
			Msg("Outstanding summary failed")
		return err
	}

	output := SummaryOutput{Outstanding: outstanding}

	if plansPath != "" {
		plans, err := readPlans(plansPath)
		if err != nil {
			return err
		}
		asOf := time.Now().UTC().Truncate(24 * time.Hour)
		if asOfStr != "" {
			asOf, err = time.Parse(time.DateOnly, asOfStr)
			if err != nil {
				return fmt.Errorf("invalid --as-of %q: %w", asOfStr, err)
			}
		}
		delinquency, err := reports.DelinquencyReport(ctx, plans, asOf, reminderDays)
		if err != nil {
			log.Error().
				Err(err).
				Msg("Delinquency report failed")
			return err
		}
		output.Delinquency = delinquency
	}

	log.Info().
		Int("entities", outstanding.EntityCount).
		Str("outstanding", outstanding.TotalOutstanding.String()).
		Msg("Built summary")

	return writeJSON(output, outputPath)
}

func readEntities(path string) ([]models.LedgerEntity, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read entities file: %w", err)
	}
	var entities []models.LedgerEntity
	if err := json.Unmarshal(data, &entities); err != nil {
		return nil, fmt.Errorf("failed to parse entities file: %w", err)
	}
	return entities, nil
}

func readPlans(path string) ([]*models.InstallmentPlan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plans file: %w", err)
	}
	var plans []*models.InstallmentPlan
	if err := json.Unmarshal(data, &plans); err != nil {
		return nil, fmt.Errorf("failed to parse plans file: %w", err)
	}
	return plans, nil
}
