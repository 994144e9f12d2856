package cli

import (
	"github.com/spf13/cobra"

	"github.com/thecodejesters/visaadmin/internal/adminops"
)

func newHealthCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:       "health [db|diagnostics]",
		Short:     "Check the API's health",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"db", "diagnostics"},
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.client()
			if err != nil {
				return err
			}
			h := adminops.NewHealth(c)

			check := ""
			if len(args) == 1 {
				check = args[0]
			}
			switch check {
			case "db":
				res, err := h.CheckDatabase(cmd.Context())
				if err != nil {
					return err
				}
				return printJSON(cmd, res)
			case "diagnostics":
				res, err := h.Diagnostics(cmd.Context())
				if err != nil {
					return err
				}
				return printJSON(cmd, res)
			default:
				res, err := h.Check(cmd.Context())
				if err != nil {
					return err
				}
				return printJSON(cmd, res)
			}
		},
	}
	return cmd
}

func newEndpointsCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "endpoints",
		Short: "Print the candidate base URLs in the order they are tried",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dc, _, err := opts.deployment()
			if err != nil {
				return err
			}
			return printJSON(cmd, dc.Candidates())
		},
	}
}
