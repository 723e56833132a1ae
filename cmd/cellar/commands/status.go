package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func (c *CLI) newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show connectivity, cache and sync state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p := newPrinter(cmd.OutOrStdout())
			s := c.app.Status()

			tw := p.table()
			_, _ = fmt.Fprintf(tw, "network\t%s\n", p.network(s.Network))
			if s.Network.LastOffline != nil && !s.Network.IsOnline {
				_, _ = fmt.Fprintf(tw, "offline for\t%s\n", age(*s.Network.LastOffline, time.Now()))
			}
			_, _ = fmt.Fprintf(tw, "offline events\t%d\n", s.NetworkInfo.OfflineEvents)
			_, _ = fmt.Fprintf(tw, "queued\t%d (%d terminal)\n", s.Retry.QueuedOperations, s.Retry.TerminalOperations)
			_, _ = fmt.Fprintf(tw, "replays\t%d ok, %d failed\n", s.Retry.SuccessfulRetries, s.Retry.FailedRetries)
			_, _ = fmt.Fprintf(tw, "cache\t%d hits, %d misses, %d bytes\n", s.Cache.Hits, s.Cache.Misses, s.Cache.SizeBytes)
			return tw.Flush()
		},
	}
}
