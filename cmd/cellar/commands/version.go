package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/cellar/internal/build"
)

func (c *CLI) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print the application version",
		Annotations: map[string]string{skipInit: ""},
		Run: func(cmd *cobra.Command, _ []string) {
			cmdo := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(cmdo, "cellar version %s (commit: %s)\n", build.Version, build.Commit)
		},
	}
}
