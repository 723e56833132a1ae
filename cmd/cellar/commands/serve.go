package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve status, queue and metrics over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			addr, _ := cmd.Flags().GetString("addr")
			return c.app.Serve(cmd.Context(), addr)
		},
	}
	cmd.Flags().StringP("addr", "a", "", "Listen address (defaults to server.address from config)")
	return cmd
}
