package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func (c *CLI) newQueueCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "queue",
		Short: "Inspect and manage writes waiting to be synced",
	}
	cmd.AddCommand(
		c.newQueueListCmd(),
		c.newQueueRetryCmd(),
		c.newQueueCancelCmd(),
		c.newQueueResetCmd(),
		c.newQueueClearCmd(),
	)
	return cmd
}

func (c *CLI) newQueueListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List queued operations, oldest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p := newPrinter(cmd.OutOrStdout())
			ops := c.app.PendingOperations()
			if len(ops) == 0 {
				p.ok("nothing queued")
				return nil
			}

			now := time.Now()
			tw := p.table()
			_, _ = fmt.Fprintln(tw, "ID\tTYPE\tAGE\tATTEMPTS\tSTATE\tLAST ERROR")
			for _, op := range ops {
				_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%d/%d\t%s\t%s\n",
					op.ID, op.Type, age(op.EnqueuedAt(), now), op.RetryCount, op.MaxRetries,
					p.operationState(op), op.LastError)
			}
			return tw.Flush()
		},
	}
}

func (c *CLI) newQueueRetryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "retry <id>",
		Short: "Attempt one queued operation now",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := c.app.Retry(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			p := newPrinter(cmd.OutOrStdout())
			if ok {
				p.ok(args[0] + " synced")
			} else {
				p.warn(args[0] + " failed, still queued")
			}
			return nil
		},
	}
}

func (c *CLI) newQueueCancelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <id>",
		Short: "Drop a queued operation without syncing it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.app.Cancel(args[0]); err != nil {
				return err
			}
			newPrinter(cmd.OutOrStdout()).ok(args[0] + " cancelled")
			return nil
		},
	}
}

func (c *CLI) newQueueResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset <id>",
		Short: "Give a failed operation a fresh retry budget",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.app.Reset(args[0]); err != nil {
				return err
			}
			newPrinter(cmd.OutOrStdout()).ok(args[0] + " reset")
			return nil
		},
	}
}

func (c *CLI) newQueueClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Drop every queued operation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			n := c.app.ClearQueue()
			newPrinter(cmd.OutOrStdout()).ok(fmt.Sprintf("dropped %d operations", n))
			return nil
		},
	}
}
