package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Replay queued writes against the catalog service now",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := c.app.Sync(cmd.Context())
			if err != nil {
				return err
			}

			p := newPrinter(cmd.OutOrStdout())
			msg := fmt.Sprintf("synced %d of %d", result.Succeeded, result.Attempted)
			if result.Skipped > 0 {
				msg += fmt.Sprintf(", %d skipped", result.Skipped)
			}
			if result.Failed > 0 {
				p.warn(fmt.Sprintf("%s, %d failed", msg, result.Failed))
				return nil
			}
			p.ok(msg)
			return nil
		},
	}
}
