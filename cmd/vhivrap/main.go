// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the vhivrap CLI, a research toolkit
// for HIV drug resistance, within-host viral dynamics, and treatment
// scenario analysis. Each analysis module is a subcommand: resistance,
// host, particles, graph, scenario, compare, and explain.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/vhivrap/internal/scenario"
	"github.com/pdiddy/vhivrap/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the vhivrap CLI.
var rootCmd = &cobra.Command{
	Use:   "vhivrap",
	Short: "Virtual HIV research and analysis toolkit",
	Long: `vhivrap simulates HIV drug resistance evolution, within-host viral
dynamics under host-protein suppression, and viral particle populations.
Scenarios are saved to a local store, compared side by side, ranked by a
treatment objective, and explained through factor-importance heuristics.

Each analysis module is a subcommand: resistance, host, particles, graph,
scenario, compare, and explain.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, _ := cmd.Flags().GetString("log-level")
		return setupLogging(level)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./vhivrap.yaml or ~/.config/vhivrap/config.yaml)")
	rootCmd.PersistentFlags().String("data-dir", "data", "base directory for the scenario store and exports")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, or error")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("vhivrap")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "vhivrap"))
		}
	}

	viper.SetEnvPrefix("VHIVRAP")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// setupLogging installs a tinted slog handler on stderr as the default
// logger.
func setupLogging(level string) error {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("invalid log level %q: use debug, info, warn, or error", level)
	}

	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{Level: l}),
	))
	return nil
}

// openStore opens the scenario store rooted at the configured data
// directory. The --data-dir flag wins over the store.data_dir config key.
func openStore(cmd *cobra.Command) (*scenario.Store, error) {
	dir, _ := cmd.Flags().GetString("data-dir")
	if !cmd.Flags().Changed("data-dir") {
		if v := viper.GetString("store.data_dir"); v != "" {
			dir = v
		}
	}
	return scenario.NewStore(types.StoreConfig{DataDir: dir})
}

// compareConfig builds the comparator settings from config keys. The
// toxicity weight is only forwarded when set, so an explicit zero in the
// config is distinguished from the default.
func compareConfig() types.CompareConfig {
	cfg := types.CompareConfig{
		MaxScenarios: viper.GetInt("compare.max_scenarios"),
	}
	if viper.IsSet("compare.toxicity_weight") {
		w := viper.GetFloat64("compare.toxicity_weight")
		cfg.ToxicityWeight = &w
	}
	return cfg
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
