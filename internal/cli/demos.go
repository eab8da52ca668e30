package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"navigator/internal/demo"
)

func newDemosCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "demos",
		Short: "List the bundled menu trees",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, d := range demo.All() {
				fmt.Fprintf(w, "%s\t%s\n", d.Name, d.Description)
			}
			return w.Flush()
		},
	}
}
