package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/cellar/internal/core/domain"
)

func (c *CLI) newOrdersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "List supplier orders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			refresh, _ := cmd.Flags().GetBool("refresh")
			orders, err := c.app.Orders(cmd.Context(), refresh)
			if err != nil {
				return err
			}

			p := newPrinter(cmd.OutOrStdout())
			p.cacheNotice(c.app.Status().UsingCache)
			tw := p.table()
			_, _ = fmt.Fprintln(tw, "ID\tSUPPLIER\tSTATUS")
			for _, o := range orders {
				_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", o.ID, o.Supplier, o.Status)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolP("refresh", "r", false, "Bypass the cache and fetch from the catalog service")
	return cmd
}

func (c *CLI) newOrderStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "order-status <order-id> <status>",
		Short:     "Set the status of a supplier order",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{string(domain.OrderDraft), string(domain.OrderSubmitted), string(domain.OrderReceived), string(domain.OrderCancelled)},
		RunE: func(cmd *cobra.Command, args []string) error {
			status := domain.OrderStatus(args[1])
			if err := c.app.SetOrderStatus(cmd.Context(), args[0], status); err != nil {
				return err
			}
			report(cmd, c.app.Status(), fmt.Sprintf("order %s marked %s", args[0], status))
			return nil
		},
	}
}
