package cmd

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"ledgerkit/internal/installment"
	"ledgerkit/internal/logger"
	"ledgerkit/pkg/models"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Generate an installment payment plan",
	Long: `Split a total amount into equally sized installments with due dates
advanced by the chosen payment frequency. Each installment is truncated to
the currency minor unit; the rounding residual is added to the last
installment so the schedule always sums exactly to the total.

With --as-of, pending installments due before that date are marked overdue
and the output includes the next payment date and reminder-window flag.`,
	Example: `  # Three monthly installments of 1000.00 starting January 15
  ledgerkit plan --total 1000 --installments 3 --frequency monthly --first-due 2024-01-15

  # Mark overdue installments as of a reference date
  ledgerkit plan --total 1000 --installments 3 --frequency monthly \
      --first-due 2024-01-15 --as-of 2024-02-20

  # Record payments for installments 1 and 2 while generating
  ledgerkit plan --total 500 --installments 4 --frequency weekly \
      --first-due 2024-03-01 --pay 1 --pay 2`,
	RunE: runPlan,
}

// PlanOutput is the JSON output of the plan command.
type PlanOutput struct {
	Plan                 *models.InstallmentPlan `json:"plan"`
	NextPaymentDate      *string                 `json:"next_payment_date"`
	WithinReminderWindow *bool                   `json:"within_reminder_window,omitempty"`
}

func init() {
	rootCmd.AddCommand(planCmd)

	planCmd.Flags().String("total", "", "Total amount to split (required)")
	planCmd.Flags().Int("installments", 0, "Number of installments (required)")
	planCmd.Flags().String("frequency", "monthly", "Payment frequency: weekly, biweekly, monthly, quarterly")
	planCmd.Flags().String("first-due", "", "First due date, YYYY-MM-DD (required)")
	planCmd.Flags().String("as-of", "", "Reference date for overdue marking, YYYY-MM-DD")
	planCmd.Flags().Int("reminder-days", 3, "Reminder window in days, used with --as-of")
	planCmd.Flags().IntSlice("pay", nil, "Installment number to record as paid (repeatable)")
	planCmd.Flags().StringP("output", "o", "", "Output file path (default: stdout)")

	planCmd.MarkFlagRequired("total")
	planCmd.MarkFlagRequired("installments")
	planCmd.MarkFlagRequired("first-due")
}

func runPlan(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("plan")

	totalStr, _ := cmd.Flags().GetString("total")
	installments, _ := cmd.Flags().GetInt("installments")
	frequencyStr, _ := cmd.Flags().GetString("frequency")
	firstDueStr, _ := cmd.Flags().GetString("first-due")
	asOfStr, _ := cmd.Flags().GetString("as-of")
	reminderDays, _ := cmd.Flags().GetInt("reminder-days")
	payNumbers, _ := cmd.Flags().GetIntSlice("pay")
	outputPath, _ := cmd.Flags().GetString("output")

	total, err := decimal.NewFromString(totalStr)
	if err != nil {
		return fmt.Errorf("invalid --total %q: %w", totalStr, err)
	}
	frequency, err := installment.ParseFrequency(frequencyStr)
	if err != nil {
		return err
	}
	firstDue, err := time.Parse(time.DateOnly, firstDueStr)
	if err != nil {
		return fmt.Errorf("invalid --first-due %q: %w", firstDueStr, err)
	}

	scheduler := installment.NewScheduler()
	plan, err := scheduler.CreatePlan(total, installments, frequency, firstDue)
	if err != nil {
		log.Error().
			Err(err).
			Msg("Plan creation failed")
		return err
	}

	for _, number := range payNumbers {
		paymentRef := uuid.NewString()
		plan, err = scheduler.RecordPayment(plan, number, paymentRef)
		if err != nil {
			log.Error().
				Err(err).
				Int("installment", number).
				Msg("Recording payment failed")
			return err
		}
	}

	output := PlanOutput{Plan: plan}

	if asOfStr != "" {
		asOf, err := time.Parse(time.DateOnly, asOfStr)
		if err != nil {
			return fmt.Errorf("invalid --as-of %q: %w", asOfStr, err)
		}
		output.Plan = scheduler.MarkOverdue(plan, asOf)
		within := scheduler.IsWithinReminderWindow(output.Plan, asOf, reminderDays)
		output.WithinReminderWindow = &within
	}

	if next := scheduler.NextPaymentDate(output.Plan); next != nil {
		formatted := next.Format(time.DateOnly)
		output.NextPaymentDate = &formatted
	}

	log.Info().
		Str("plan", output.Plan.ID).
		Int("installments", installments).
		Str("frequency", string(frequency)).
		Msg("Generated installment plan")

	return writeJSON(output, outputPath)
}
