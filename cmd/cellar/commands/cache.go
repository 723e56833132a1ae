package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and maintain the offline cache",
	}
	cmd.AddCommand(c.newCacheSweepCmd(), c.newCacheStatsCmd())
	return cmd
}

func (c *CLI) newCacheSweepCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Evict expired cache entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			n := c.app.Sweep()
			newPrinter(cmd.OutOrStdout()).ok(fmt.Sprintf("evicted %d expired entries", n))
			return nil
		},
	}
}

func (c *CLI) newCacheStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show cache counters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := c.app.CacheStats()
			tw := newPrinter(cmd.OutOrStdout()).table()
			_, _ = fmt.Fprintf(tw, "hits\t%d\n", s.Hits)
			_, _ = fmt.Fprintf(tw, "misses\t%d\n", s.Misses)
			_, _ = fmt.Fprintf(tw, "size\t%d bytes\n", s.SizeBytes)
			if !s.LastCleanup.IsZero() {
				_, _ = fmt.Fprintf(tw, "last sweep\t%s\n", s.LastCleanup.Format("2006-01-02 15:04:05"))
			}
			return tw.Flush()
		},
	}
}
