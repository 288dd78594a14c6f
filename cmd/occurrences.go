package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"ledgerkit/internal/logger"
	"ledgerkit/internal/recurrence"
	"ledgerkit/pkg/models"
)

var occurrencesCmd = &cobra.Command{
	Use:   "occurrences",
	Short: "List the occurrence dates of a recurrence rule",
	Long: `Generate the ordered occurrence dates for a recurring task or expense.
The start date is always the first occurrence; generation stops at --max
dates or once the next date would pass --end, whichever comes first.

Monthly rules keep the start date's day-of-month and clamp at month end, so
a rule starting January 31 produces February 28 (29 in leap years) and
returns to March 31.`,
	Example: `  # Weekly occurrences through an end date
  ledgerkit occurrences --frequency weekly --start 2024-01-01 --end 2024-01-22

  # First six monthly occurrences from a month-end start
  ledgerkit occurrences --frequency monthly --start 2024-01-31 --max 6`,
	RunE: runOccurrences,
}

// OccurrencesOutput is the JSON output of the occurrences command.
type OccurrencesOutput struct {
	Description string   `json:"description"`
	Occurrences []string `json:"occurrences"`
}

func init() {
	rootCmd.AddCommand(occurrencesCmd)

	occurrencesCmd.Flags().String("frequency", "", "Recurrence frequency: daily, weekly, biweekly, monthly (empty for one-time)")
	occurrencesCmd.Flags().String("start", "", "Start date, YYYY-MM-DD (required)")
	occurrencesCmd.Flags().String("end", "", "End date, YYYY-MM-DD (optional)")
	occurrencesCmd.Flags().Int("max", 52, "Maximum number of occurrences to generate")
	occurrencesCmd.Flags().StringP("output", "o", "", "Output file path (default: stdout)")

	occurrencesCmd.MarkFlagRequired("start")
}

func runOccurrences(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("occurrences")

	frequencyStr, _ := cmd.Flags().GetString("frequency")
	startStr, _ := cmd.Flags().GetString("start")
	endStr, _ := cmd.Flags().GetString("end")
	maxCount, _ := cmd.Flags().GetInt("max")
	outputPath, _ := cmd.Flags().GetString("output")

	frequency, err := recurrence.ParseFrequency(frequencyStr)
	if err != nil {
		return err
	}
	start, err := time.Parse(time.DateOnly, startStr)
	if err != nil {
		return fmt.Errorf("invalid --start %q: %w", startStr, err)
	}

	rule := models.RecurrenceRule{
		Frequency: frequency,
		StartDate: start,
	}
	if endStr != "" {
		end, err := time.Parse(time.DateOnly, endStr)
		if err != nil {
			return fmt.Errorf("invalid --end %q: %w", endStr, err)
		}
		rule.EndDate = &end
	}

	dates := recurrence.GenerateOccurrences(rule, maxCount)
	output := OccurrencesOutput{
		Description: recurrence.Describe(rule),
		Occurrences: make([]string, len(dates)),
	}
	for i, date := range dates {
		output.Occurrences[i] = date.Format(time.DateOnly)
	}

	log.Info().
		Str("frequency", string(frequency)).
		Str("start", startStr).
		Int("count", len(dates)).
		Msg("Generated occurrences")

	return writeJSON(output, outputPath)
}
