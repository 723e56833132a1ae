package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.trai.ch/cellar/internal/core/domain"
	"go.trai.ch/zerr"
)

func (c *CLI) newWinesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wines",
		Short: "List the wine catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			refresh, _ := cmd.Flags().GetBool("refresh")
			wines, err := c.app.Wines(cmd.Context(), refresh)
			if err != nil {
				return err
			}

			p := newPrinter(cmd.OutOrStdout())
			p.cacheNotice(c.app.Status().UsingCache)
			tw := p.table()
			_, _ = fmt.Fprintln(tw, "ID\tNAME\tVINTAGE\tSTOCK")
			for _, w := range wines {
				vintage := "NV"
				if w.Vintage > 0 {
					vintage = strconv.Itoa(w.Vintage)
				}
				_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", w.ID, w.Name, vintage, w.Inventory)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolP("refresh", "r", false, "Bypass the cache and fetch from the catalog service")
	return cmd
}

func (c *CLI) newStockCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stock <wine-id> <count>",
		Short: "Set the stock count of a wine",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return zerr.With(zerr.Wrap(err, domain.ErrInvalidInventory.Error()), "count", args[1])
			}
			if err := c.app.SetInventory(cmd.Context(), args[0], n); err != nil {
				return err
			}
			report(cmd, c.app.Status(), fmt.Sprintf("%s stock set to %d", args[0], n))
			return nil
		},
	}
}

// report confirms a write, noting when it was queued instead of sent.
func report(cmd *cobra.Command, s domain.StatusReport, msg string) {
	p := newPrinter(cmd.OutOrStdout())
	if s.Network.IsOnline {
		p.ok(msg)
		return
	}
	p.warn(msg + " (offline, queued for sync)")
}
