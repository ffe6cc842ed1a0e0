package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/LongVanNgo/CAPTCHA-solver/internal/config"
	"github.com/LongVanNgo/CAPTCHA-solver/internal/repository"
	"github.com/LongVanNgo/CAPTCHA-solver/internal/server"
	"github.com/LongVanNgo/CAPTCHA-solver/internal/service"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the resize, gallery and publish endpoints over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.cfg.Resize.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			svc, err := a.newService(ctx)
			if err != nil {
				return err
			}
			srv := server.New(a.cfg, svc, a.log)

			errCh := make(chan error, 1)
			go func() {
				if err := srv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			a.log.Info("Shutting down gracefully...")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				a.log.Error("Server forced to shutdown", zap.Error(err))
				return err
			}

			a.log.Info("Server exited")
			return nil
		},
	}

	cmd.Flags().String("host", "", "listen host (default localhost)")
	cmd.Flags().String("port", "", "listen port (default 8080)")
	_ = a.v.BindPFlag(config.KeyHost, cmd.Flags().Lookup("host"))
	_ = a.v.BindPFlag(config.KeyPort, cmd.Flags().Lookup("port"))

	return cmd
}

// newService wires the image service, connecting to S3 only when enabled.
func (a *app) newService(ctx context.Context) (service.ImageService, error) {
	var repo repository.S3Repository
	if a.cfg.S3.Enabled {
		r, err := repository.NewS3Repository(ctx, &a.cfg.S3, a.log)
		if err != nil {
			return nil, err
		}
		repo = r
	}
	return service.NewImageService(repo, a.cfg, a.log)
}
