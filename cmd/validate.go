package main

import (
	"encoding/json"
	"fmt"
	"payments/internal/cardvalidator"
	"payments/internal/config"
	"payments/pkg/domain"
	"payments/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// validateCommand constructs the 'validate' subcommand that checks a single card
// given on the command line and prints the verdict as JSON. It exits with status 1
// when the card is invalid.
func validateCommand(cfg *config.Config) *cobra.Command {
	var card domain.Card

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validates a single card and prints the verdict",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, cardvalidator.New(cardvalidator.NewOptions(cfg)), card)
		},
	}

	cmd.Flags().StringVar(&card.Owner, "owner", "", "Card owner name")
	cmd.Flags().StringVar(&card.Number, "number", "", "Card number")
	cmd.Flags().StringVar(&card.ExpiryDate, "expiry", "", "Expiry date as MM/YY")
	cmd.Flags().StringVar(&card.CVC, "cvc", "", "Card verification code")

	return cmd
}

func runValidate(cmd *cobra.Command, validator cardvalidator.Validator, card domain.Card) error {
	verdict := validator.Validate(card)
	logger.Debug(cmd.Context(), "card validated",
		zap.String("number", cardvalidator.MaskNumber(card.Number)),
		zap.Bool("valid", verdict.Valid))

	out, err := json.MarshalIndent(verdict, "", "  ")
	if err != nil {
		return fmt.Errorf("could not encode verdict: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out)) //nolint: forbidigo

	if !verdict.Valid {
		return exitCodeError(1)
	}

	return nil
}
