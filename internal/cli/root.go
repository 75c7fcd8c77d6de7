package cli

import (
	"context"
	"fmt"

	"fabric-shop/internal/app"
	"fabric-shop/internal/config"
	"fabric-shop/internal/service"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// StoreOpener opens the store engine the commands run against. The returned
// function releases the backend.
type StoreOpener func(ctx context.Context, logger zerolog.Logger) (*service.Store, func(), error)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"

	// Open defaults to the backend configured in the environment.
	Open StoreOpener
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the shopctl CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{Open: openConfiguredStore})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shopctl",
		Short: "shopctl - fabric shop operator tool",
		Long:  "Run store requests and manage the persisted shop document of the fabric shop.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewRequestCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewResetCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// openConfiguredStore opens the backend selected by the environment.
func openConfiguredStore(ctx context.Context, logger zerolog.Logger) (*service.Store, func(), error) {
	cfg, err := config.LoadStore()
	if err != nil {
		return nil, nil, err
	}

	repo, closeRepo, err := app.OpenRepository(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	store, err := app.NewStore(cfg, repo, logger)
	if err != nil {
		closeRepo()
		return nil, nil, err
	}

	return store, closeRepo, nil
}

// openStore opens the store for a command, logging to stderr.
func openStore(cmd *cobra.Command, opts *RootOptions) (*service.Store, func(), error) {
	level := "warn"
	if opts.Verbose {
		level = "debug"
	}
	logger := config.NewLoggerTo(config.LoggerConfig{Level: level, Format: "console"}, cmd.ErrOrStderr())

	open := opts.Open
	if open == nil {
		open = openConfiguredStore
	}

	store, closeStore, err := open(cmd.Context(), logger)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "failed to open store", err)
	}
	return store, closeStore, nil
}
