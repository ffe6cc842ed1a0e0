package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/LongVanNgo/CAPTCHA-solver/internal/config"
)

func newPublishCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "publish [dest-dir]",
		Short: "Upload the resized images of dest-dir to S3",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				a.cfg.Resize.DestDir = args[0]
			}
			if a.cfg.Resize.DestDir == "" {
				return fmt.Errorf("destination: %w", config.ErrMissingDir)
			}

			svc, err := a.newService(cmd.Context())
			if err != nil {
				return err
			}

			objects, err := svc.PublishImages(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, obj := range objects {
				fmt.Fprintf(out, "%s\t%d\n", obj.Key, obj.Size)
			}
			fmt.Fprintf(out, "published %d images to s3://%s\n", len(objects), a.cfg.S3.BucketName)
			return nil
		},
	}
}
