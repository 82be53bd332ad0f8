package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/oshokin/logship/internal/app"
	"github.com/oshokin/logship/internal/config"
	"github.com/oshokin/logship/internal/constants"
	"github.com/oshokin/logship/internal/logger"
	"github.com/oshokin/logship/internal/version"
)

var (
	//nolint:gochecknoglobals // It is required for configuration initialization before the application starts.
	configFilenameFromFlag string

	//nolint:gochecknoglobals,lll // It is initialized once during the application's startup and shared across the command execution logic.
	appConfig *config.Config

	//nolint:gochecknoglobals,lll // Cobra command requires a global definition for proper command-line parsing and execution.
	rootCmd = &cobra.Command{
		Use:   "logship [flags] {files}",
		Short: "Ship structured log records to a remote HTTP endpoint.",
		Long: `Logship reads newline-delimited JSON log records and forwards each one
as an HTTP request to a configured remote endpoint.

Inputs are file paths; use '-' (or no arguments) to read from stdin.
Delivery is best-effort and fire-and-forget: records are never batched,
retried, or reordered, and a failed delivery never aborts the stream.`,
		Version:          version.Full(),
		Args:             cobra.ArbitraryArgs,
		PersistentPreRun: initConfig,
		Run: func(cmd *cobra.Command, inputs []string) {
			if err := bindFlagsToConfig(cmd.Flags(), appConfig); err != nil {
				logger.Fatalf(cmd.Context(), "Failed to parse flags: %v", err)
			}

			if len(inputs) == 0 {
				inputs = []string{constants.StdinPlaceholder}
			}

			app.ExecuteRootCommand(cmd.Context(), appConfig, inputs)
		},
	}
)

// Execute executes the root command.
func Execute() {
	signals := []os.Signal{syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM}
	ctx, stop := signal.NotifyContext(context.Background(), signals...)

	defer func() {
		_ = logger.Logger().Sync()
	}()

	defer stop()

	go func() {
		defer stop()

		err := rootCmd.ExecuteContext(ctx)
		cobra.CheckErr(err)
	}()

	<-ctx.Done()
}

//nolint:gochecknoinits // Cobra requires the init function to set up flags before the command is executed.
func init() {
	rootCmd.PersistentFlags().StringVarP(
		&configFilenameFromFlag,
		"config",
		"c",
		"",
		fmt.Sprintf("path to the configuration file (default is '%s')",
			config.DefaultConfigFilename))

	rootCmdFlags := rootCmd.Flags()

	rootCmdFlags.StringP(
		"url",
		"u",
		"",
		"base of the destination URL.")

	rootCmdFlags.StringP(
		"path",
		"p",
		"",
		"path appended to the base URL, slash-normalized.")

	rootCmdFlags.StringP(
		"method",
		"m",
		"",
		"HTTP verb used for delivery: POST or PUT.")

	rootCmdFlags.StringP(
		"auth",
		"a",
		"",
		"secret inserted into the Authorization header.")

	rootCmdFlags.String(
		"auth-type",
		"",
		"authorization scheme: bearer, apikey, basic, custom or none.")
}

func initConfig(cmd *cobra.Command, _ []string) {
	var err error

	appConfig, err = config.LoadConfig(configFilenameFromFlag)
	if err != nil {
		logger.Fatalf(cmd.Context(), "Failed to load configuration: %v", err)
	}

	if err = config.ValidateConfig(appConfig); err != nil {
		logger.Fatalf(cmd.Context(), "Invalid configuration: %v", err)
	}

	logger.SetLevel(appConfig.ParsedLogLevel)
}

func bindFlagsToConfig(flags *pflag.FlagSet, cfg *config.Config) error {
	if flag := flags.Lookup("url"); flag != nil && flag.Changed {
		cfg.URL, _ = flags.GetString("url")
	}

	if flag := flags.Lookup("path"); flag != nil && flag.Changed {
		cfg.Path, _ = flags.GetString("path")
	}

	if flag := flags.Lookup("method"); flag != nil && flag.Changed {
		cfg.Method, _ = flags.GetString("method")
	}

	if flag := flags.Lookup("auth"); flag != nil && flag.Changed {
		cfg.Auth, _ = flags.GetString("auth")
	}

	if flag := flags.Lookup("auth-type"); flag != nil && flag.Changed {
		cfg.AuthType, _ = flags.GetString("auth-type")
	}

	return config.ValidateConfig(cfg)
}
