package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"cosmossdk.io/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/paw-chain/sealswap/app/telemetry"
)

// Persistent flags
const (
	FlagHome     = "home"
	FlagConfig   = "config"
	FlagLogLevel = "log-level"
	FlagHalted   = "halted"
)

// clientContext carries the resolved configuration to subcommands
type clientContext struct {
	Config    Config
	Logger    log.Logger
	telemetry *telemetry.Provider
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	v := viper.New()
	clientCtx := &clientContext{}

	rootCmd := &cobra.Command{
		Use:          "sealswapd",
		Short:        "Sealswap pricing and sealed-order settlement tools",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := LoadConfig(v, cmd.Flags())
			if err != nil {
				return err
			}

			filter, err := log.ParseLogLevel(cfg.LogLevel)
			if err != nil {
				return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
			}
			logger := log.NewLogger(cmd.ErrOrStderr(), log.FilterOption(filter))

			provider, err := telemetry.NewProvider(cfg.Telemetry)
			if err != nil {
				return fmt.Errorf("failed to initialize telemetry: %w", err)
			}
			if err := provider.HealthCheck(); err != nil {
				return fmt.Errorf("telemetry unhealthy: %w", err)
			}

			clientCtx.Config = cfg
			clientCtx.Logger = logger
			clientCtx.telemetry = provider
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			if clientCtx.telemetry == nil {
				return nil
			}
			return clientCtx.telemetry.Shutdown(context.Background())
		},
	}

	rootCmd.PersistentFlags().String(FlagHome, DefaultNodeHome(), "directory for config and data")
	rootCmd.PersistentFlags().String(FlagConfig, "", "config file (default <home>/config/sealswap.toml)")
	rootCmd.PersistentFlags().String(FlagLogLevel, defaultLogLevel, "log level (e.g. info, debug, *:error)")
	rootCmd.PersistentFlags().Bool(FlagHalted, false, "treat the pool as halted")

	rootCmd.AddCommand(
		NewQuoteCmd(clientCtx),
		NewDecideCmd(),
		NewCommitCmd(),
		NewExportVKCmd(clientCtx),
	)

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
