package cli

import (
	"github.com/spf13/cobra"
)

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Print the stored shop document",
		Long: `Print the stored shop document. A missing or unreadable document is
replaced by the seed document first.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeStore, err := openStore(cmd, rootOpts)
			if err != nil {
				return err
			}
			defer closeStore()

			out := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
			doc, err := store.Document(cmd.Context())
			if err != nil {
				return out.Fail(err)
			}
			return out.Success(doc)
		},
	}
}

// NewResetCommand creates the reset command.
func NewResetCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "reset",
		Short:         "Overwrite the stored shop document with the seed document",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeStore, err := openStore(cmd, rootOpts)
			if err != nil {
				return err
			}
			defer closeStore()

			out := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
			doc, err := store.Reset(cmd.Context())
			if err != nil {
				return out.Fail(err)
			}
			return out.Success(map[string]int{
				"users":    len(doc.Users),
				"products": len(doc.Products),
			})
		},
	}
}
