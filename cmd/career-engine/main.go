// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the career-engine CLI.
// Implements: prd001-profile, prd002-discovery, prd005-orchestration,
//             prd006-snapshot-store, prd007-refresh (CLI surface).
// See docs/ARCHITECTURE.md § Pipeline Interface, § Project Structure.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mmeet/career-engine/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the career-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "career-engine",
	Short: "Personalized course and job recommendation pipeline",
	Long: `career-engine discovers courses and job openings from external catalogs,
asks a generative model to select the best matches for a user's career
profile, enriches each pick with a short analysis, and persists the
resulting snapshot.

Each pipeline surface is a subcommand: recommend runs the full pipeline,
profile manages stored career profiles, snapshot inspects persisted
results, and refresh re-analyzes stale users.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./career-engine.yaml or ~/.config/career-engine/config.yaml)")
	rootCmd.PersistentFlags().String("data-dir", "", "directory for the local snapshot database (default data)")
	rootCmd.PersistentFlags().String("redis-url", "", "Redis URL for the snapshot store (default: local SQLite)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("career-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "career-engine"))
		}
	}

	viper.SetEnvPrefix("CAREER_ENGINE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
