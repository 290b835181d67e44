package main

import (
	"context"

	"github.com/spf13/cobra"

	"salesdash/internal/config"
	"salesdash/internal/logger"
)

type rootFlags struct {
	mockup bool
	theme  string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "salesdash",
		Short:         "salesdash renders the sales analytics dashboard pages",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVar(&flags.mockup, "mockup", false, "Serve the bundled fixtures as the backend API")
	cmd.PersistentFlags().StringVar(&flags.theme, "theme", "", "Initial theme (overrides DEFAULT_THEME)")

	cmd.AddCommand(newServeCmd(flags))
	cmd.AddCommand(newRenderCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// loadConfig reads the environment, applies flag overrides and configures
// the global logger.
func loadConfig(ctx context.Context, flags *rootFlags) (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, nil, err
	}
	if flags.mockup {
		cfg.MockupMode = true
	}
	if flags.theme != "" {
		cfg.DefaultTheme = flags.theme
	}
	logger.Configure(cfg.LogLevel, cfg.LogFormat)
	return cfg, logger.GetGlobalLogger(), nil
}
