package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/LongVanNgo/CAPTCHA-solver/pkg/resample"
)

func newFiltersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "filters",
		Short: "List the available resampling filters",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			for _, name := range resample.Names() {
				if name == resample.DefaultFilter {
					fmt.Fprintf(cmd.OutOrStdout(), "%s (default)\n", name)
					continue
				}
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	}
}
