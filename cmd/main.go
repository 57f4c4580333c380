// Package main provides the CLI entrypoint for the payments service.
// It wires subcommands (serve, validate, jwt), loads configuration, and initializes logging.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"payments/internal/config"
	"payments/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// exitCodeError ends the process with the given status without printing anything.
type exitCodeError int

func (e exitCodeError) Error() string { return fmt.Sprintf("exit status %d", int(e)) }

// newRootCommand builds the root command. Configuration is loaded into cfg
// before any subcommand runs, so subcommands may capture the pointer eagerly.
func newRootCommand(cfg *config.Config) *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:           "payments",
		Short:         "Card validation service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			loaded, err := config.Load(configPath)
			if err != nil {
				return err
			}
			*cfg = *loaded

			if err = logger.Setup(cfg.Environment); err != nil {
				return fmt.Errorf("could not setup logger: %w", err)
			}

			return nil
		},
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yml",
		"Config File Path (empty to read the environment only)")

	rootCmd.AddCommand(
		serveCommand(cfg),
		validateCommand(cfg),
		JWTCommand(cfg),
	)

	return rootCmd
}

// main executes the CLI and turns panics and command errors into a logged, non-zero exit.
func main() {
	ctx := context.Background()

	defer func() {
		if p := recover(); p != nil {
			logger.Error(ctx, "captured panic, exiting...", zap.Any("panic", p))
			logger.Sync(ctx)

			panic(p)
		}
	}()

	err := newRootCommand(&config.Config{}).ExecuteContext(ctx)
	logger.Sync(ctx)
	if err != nil {
		var exit exitCodeError
		if errors.As(err, &exit) {
			os.Exit(int(exit)) //nolint: gocritic
		}
		fmt.Fprintln(os.Stderr, err) //nolint: forbidigo
		os.Exit(1)
	}
}
