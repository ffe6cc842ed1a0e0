package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/LongVanNgo/CAPTCHA-solver/internal/config"
	"github.com/LongVanNgo/CAPTCHA-solver/pkg/logger"
)

// app carries the state shared by all subcommands once the root pre-run
// has loaded configuration and built the logger.
type app struct {
	v       *viper.Viper
	envFile string
	cfg     *config.Config
	log     *zap.Logger
}

// NewRootCmd creates the root command with the resize, serve, publish and
// filters subcommands.
func NewRootCmd(ver string) *cobra.Command {
	a := &app{v: viper.New(), log: zap.NewNop()}

	cmd := &cobra.Command{
		Use:           "captcha-resize",
		Short:         "Batch-resize images to 28x28 grayscale",
		Long:          "captcha-resize converts every image of a directory into a 28x28 grayscale image of the same name in another directory.",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			_ = a.log.Sync()
		},
	}

	cmd.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	cmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	_ = a.v.BindPFlag(config.KeyLogLevel, cmd.PersistentFlags().Lookup("log-level"))

	cmd.AddCommand(newResizeCmd(a), newServeCmd(a), newPublishCmd(a), newFiltersCmd())

	return cmd
}

func (a *app) setup() error {
	if err := config.LoadEnvFile(a.envFile); err != nil {
		return err
	}
	a.cfg = config.Load(a.v)

	log, err := logger.New(a.cfg.Log.Level)
	if err != nil {
		return err
	}
	a.log = log
	return nil
}

const rootCmdExample = `  # Resize every image of ./raw into ./mnist28 with the default Lanczos filter
  captcha-resize resize ./raw ./mnist28

  # Same, configured through the environment and a bilinear filter
  RESIZE_SOURCE_DIR=./raw RESIZE_DEST_DIR=./mnist28 captcha-resize resize --filter bilinear

  # List the available resampling filters
  captcha-resize filters

  # Serve the resize and gallery endpoints on :8080
  captcha-resize serve --port 8080

  # Mirror the destination directory to S3
  S3_ENABLED=true captcha-resize publish`
