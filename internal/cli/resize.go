package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/LongVanNgo/CAPTCHA-solver/internal/config"
	"github.com/LongVanNgo/CAPTCHA-solver/internal/service"
)

func newResizeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resize [source-dir] [dest-dir]",
		Short: "Resize every image of source-dir into dest-dir",
		Long: `Resize decodes each entry of source-dir as a grayscale image, resizes it to
28x28 and writes it to dest-dir under the same name, in the format implied by
the extension. The destination directory must already exist. The first entry
that cannot be decoded or written stops the run.`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rc := a.cfg.Resize
			if len(args) > 0 {
				rc.SourceDir = args[0]
			}
			if len(args) > 1 {
				rc.DestDir = args[1]
			}
			if err := rc.Validate(); err != nil {
				return err
			}

			report, err := service.Run(cmd.Context(), rc, a.log)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "resized %d images from %s to %s (filter %s, run %s)\n",
				len(report.Images), report.SourceDir, report.DestDir, report.Filter, report.RunID)
			return nil
		},
	}

	cmd.Flags().String("filter", "", "resampling filter name, see the filters command (default lanczos)")
	_ = a.v.BindPFlag(config.KeyFilter, cmd.Flags().Lookup("filter"))

	return cmd
}
