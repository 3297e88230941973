// Command comicd runs the comic download gateway: an HTTP API that accepts
// download requests, tracks them as background tasks, and serves the
// resulting files.
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/comicdl/comicd/config"
	"github.com/comicdl/comicd/internal/bootstrap"
)

type serveFlags struct {
	configFile  string
	host        string
	port        int
	downloadDir string
	concurrency int
}

func main() {
	logger := bootstrap.InitLogger()

	if err := newRootCommand(logger).Execute(); err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(1) //nolint:forbidigo // CLI must signal failure to shell scripts
	}
}

func newRootCommand(logger *slog.Logger) *cobra.Command {
	flags := &serveFlags{}

	root := &cobra.Command{
		Use:           "comicd",
		Short:         "Comic download gateway",
		Long:          "comicd accepts comic download requests over HTTP, runs them as background tasks, and serves the downloaded files.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, flags, logger)
		},
	}

	root.Flags().StringVarP(&flags.configFile, "config", "c", "", "optional YAML config file")
	root.Flags().StringVar(&flags.host, "host", "", "bind host (overrides HTTP_HOST)")
	root.Flags().IntVar(&flags.port, "port", 0, "bind port (overrides HTTP_PORT)")
	root.Flags().StringVar(&flags.downloadDir, "download-dir", "", "download root directory (overrides DOWNLOAD_DIR)")
	root.Flags().IntVar(&flags.concurrency, "concurrency", 0, "max concurrent fetches (overrides FETCH_CONCURRENCY)")

	return root
}

func runServe(cmd *cobra.Command, flags *serveFlags, logger *slog.Logger) error {
	cfg, err := bootstrap.LoadConfig(flags.configFile)
	if err != nil {
		return err
	}
	applyFlagOverrides(cmd, flags, &cfg)
	cfg.Sanitize()

	if err := cfg.HTTP.Validate(); err != nil {
		return err
	}

	services, err := bootstrap.NewServices(&bootstrap.ServiceDeps{
		Config: &cfg,
		Logger: logger,
	})
	if err != nil {
		return err
	}

	return bootstrap.RunWithShutdown(&bootstrap.RunOptions{
		Config:   &cfg,
		Services: services,
		Logger:   logger,
	})
}

// applyFlagOverrides layers explicitly-set flags on top of the loaded
// config. Unset flags leave the env/file values untouched.
func applyFlagOverrides(cmd *cobra.Command, flags *serveFlags, cfg *config.AppConfig) {
	if cmd.Flags().Changed("host") {
		cfg.HTTP.Host = flags.host
	}
	if cmd.Flags().Changed("port") {
		cfg.HTTP.Port = flags.port
	}
	if cmd.Flags().Changed("download-dir") {
		cfg.Storage.DownloadRoot = flags.downloadDir
	}
	if cmd.Flags().Changed("concurrency") {
		cfg.Runner.Concurrency = flags.concurrency
	}
}
