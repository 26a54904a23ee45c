package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/fritzstats/fritzstats/internal/collector"
	"github.com/fritzstats/fritzstats/internal/config"
	"github.com/fritzstats/fritzstats/internal/logging"
	"github.com/fritzstats/fritzstats/internal/munin"
)

var rootCmd = &cobra.Command{
	Use:   "fritzstats",
	Short: "FRITZ!Box DSL statistics poller",
	Long: "fritzstats logs in to a FRITZ!Box, reads the DSL status page and prints the line\n" +
		"statistics. Without a subcommand it answers a Munin fetch for the host encoded\n" +
		"in its fritzstats_<host> executable name.",
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := pluginConfig()
		if err != nil {
			return err
		}
		col, err := collector.New(cfg.Device)
		if err != nil {
			return err
		}
		rec, err := col.Collect(cmd.Context())
		if err != nil {
			return err
		}
		return munin.WriteValues(cmd.OutOrStdout(), cfg.Device.Host, rec)
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the Munin graph configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := pluginConfig()
		if err != nil {
			return err
		}
		return munin.WriteConfig(cmd.OutOrStdout(), cfg.Device.Host)
	},
}

// Credentials are required, so the plugin never offers itself.
var autoconfCmd = &cobra.Command{
	Use:   "autoconf",
	Short: "Answer the Munin autoconf query",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), "no")
		return err
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(autoconfCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(parseCmd)
}

// pluginConfig builds the config from the Munin environment and installs the
// stderr logger.
func pluginConfig() (*config.Config, error) {
	cfg, err := config.FromEnv(munin.PluginHost(os.Args[0]))
	if err != nil {
		return nil, err
	}
	if err := setupLogging(cfg.Logging); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setupLogging(l config.Logging) error {
	logger, err := logging.New(l.Level, l.Format)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	return nil
}
