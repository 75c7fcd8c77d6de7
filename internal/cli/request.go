package cli

import (
	"fabric-shop/internal/config"
	"fabric-shop/internal/endpoint"

	"github.com/spf13/cobra"
)

// RequestOptions holds flags for the request command.
type RequestOptions struct {
	*RootOptions
	Body   string
	Caller string
}

// NewRequestCommand creates the request command.
func NewRequestCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RequestOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "request <method> <path>",
		Short: "Run one store request",
		Long: `Run one store request against the configured backend and print the result.

Example:
  shopctl request POST /cart/add --body '{"userId":2,"productId":1,"meters":3}'
  shopctl request GET '/admin/users?email=admin@shop.com'`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRequest(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Body, "body", "", "request body as JSON")
	cmd.Flags().StringVar(&opts.Caller, "as", "", "admin email to act as instead of the email query parameter")

	return cmd
}

func runRequest(opts *RequestOptions, method, path string, cmd *cobra.Command) error {
	store, closeStore, err := openStore(cmd, opts.RootOptions)
	if err != nil {
		return err
	}
	defer closeStore()

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	logger := config.NewLoggerTo(config.LoggerConfig{Level: "warn", Format: "console"}, cmd.ErrOrStderr())
	client := endpoint.NewClient(store, logger)

	reqOpts := endpoint.Options{Method: method, Caller: opts.Caller}
	if opts.Body != "" {
		reqOpts.Body = opts.Body
	}

	result, err := client.Request(cmd.Context(), path, reqOpts)
	if err != nil {
		return out.Fail(err)
	}

	return out.Success(result)
}
