// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mmeet/career-engine/internal/refresh"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Re-analyze stored profiles with stale snapshots",
	Long: `Refresh walks all stored profiles and re-runs the pipeline for those
whose snapshot is missing, incomplete, or older than the staleness window.

By default one round runs immediately. With --serve the worker stays
resident and runs rounds on the configured cron schedule until
interrupted.`,
	RunE: runRefresh,
}

func init() {
	refreshCmd.Flags().Bool("serve", false, "keep running rounds on the cron schedule")
	refreshCmd.Flags().Bool("offline", false, "use the built-in catalogs instead of network sources")
	refreshCmd.Flags().String("model", "", "model identifier (default gemini-1.5-flash)")

	rootCmd.AddCommand(refreshCmd)
}

func runRefresh(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	cfg := pipelineConfig(cmd)

	gw, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer gw.Close()

	worker := &refresh.Worker{
		Store:  gw,
		Runner: buildPipeline(cfg, gw),
		Config: cfg.Refresh,
	}

	serve, _ := cmd.Flags().GetBool("serve")
	if !serve {
		return worker.RunOnce(ctx, os.Stderr)
	}

	if err := worker.Start(ctx, os.Stderr); err != nil {
		return err
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	worker.Stop()
	return nil
}
