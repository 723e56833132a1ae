// Package commands implements the CLI commands for cellar.
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/cellar/internal/build"
	"go.trai.ch/cellar/internal/core/domain"
)

// skipInit marks commands that do not need the offline subsystem running.
const skipInit = "cellar/skip-init"

// CLI represents the command line interface for cellar.
type CLI struct {
	app         Application
	rootCmd     *cobra.Command
	initialized bool
}

// Application represents the application logic interface.
type Application interface {
	Init(ctx context.Context)
	Dispose(ctx context.Context) error

	Status() domain.StatusReport
	Wines(ctx context.Context, force bool) ([]domain.Wine, error)
	SetInventory(ctx context.Context, wineID string, inventory int) error
	Orders(ctx context.Context, force bool) ([]domain.Order, error)
	SetOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus) error

	PendingOperations() []domain.PendingOperation
	Sync(ctx context.Context) (domain.DrainResult, error)
	Retry(ctx context.Context, id string) (bool, error)
	Cancel(id string) error
	Reset(id string) error
	ClearQueue() int

	Sweep() int
	CacheStats() domain.CacheStats

	Serve(ctx context.Context, addr string) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "cellar",
		Short:         "Offline-first inventory and ordering for the wine bar",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s)\n",
		build.Commit,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		if _, skip := cmd.Annotations[skipInit]; skip || c.initialized {
			return
		}
		c.app.Init(cmd.Context())
		c.initialized = true
	}

	rootCmd.AddCommand(c.newStatusCmd())
	rootCmd.AddCommand(c.newWinesCmd())
	rootCmd.AddCommand(c.newStockCmd())
	rootCmd.AddCommand(c.newOrdersCmd())
	rootCmd.AddCommand(c.newOrderStatusCmd())
	rootCmd.AddCommand(c.newQueueCmd())
	rootCmd.AddCommand(c.newSyncCmd())
	rootCmd.AddCommand(c.newCacheCmd())
	rootCmd.AddCommand(c.newServeCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context and releases the
// application afterwards.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	err := c.rootCmd.Execute()
	if derr := c.app.Dispose(context.WithoutCancel(ctx)); derr != nil {
		err = errors.Join(err, derr)
	}
	return err
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
