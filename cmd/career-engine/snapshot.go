// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mmeet/career-engine/internal/store"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Inspect persisted recommendation snapshots",
}

var snapshotShowCmd = &cobra.Command{
	Use:   "show [uid]",
	Short: "Print the stored snapshot for a user",
	RunE:  runSnapshotShow,
}

var snapshotRunsCmd = &cobra.Command{
	Use:   "runs [uid]",
	Short: "Print recent pipeline runs for a user, newest first",
	RunE:  runSnapshotRuns,
}

func init() {
	snapshotShowCmd.Flags().Bool("json", false, "print the snapshot as JSON")
	snapshotRunsCmd.Flags().Int("limit", 10, "maximum number of runs to show")

	snapshotCmd.AddCommand(snapshotShowCmd)
	snapshotCmd.AddCommand(snapshotRunsCmd)

	rootCmd.AddCommand(snapshotCmd)
}

func runSnapshotShow(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("provide a profile uid")
	}

	ctx := context.Background()
	cfg := pipelineConfig(cmd)
	gw, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer gw.Close()

	snap, err := gw.ReadSnapshot(ctx, args[0])
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("no snapshot stored for %s", args[0])
		}
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	}
	printSnapshot(&snap)
	fmt.Printf("last analyzed: %s\n", snap.LastAnalysisDate.Format("2006-01-02 15:04 MST"))
	return nil
}

func runSnapshotRuns(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("provide a profile uid")
	}
	limit, _ := cmd.Flags().GetInt("limit")

	ctx := context.Background()
	cfg := pipelineConfig(cmd)
	gw, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer gw.Close()

	runs, err := gw.ListRuns(ctx, args[0], limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs recorded")
		return nil
	}

	fmt.Printf("%-36s  %-20s  %7s  %4s  %8s  %8s\n",
		"Run", "Started", "Courses", "Jobs", "Complete", "Duration")
	for _, r := range runs {
		fmt.Printf("%-36s  %-20s  %7d  %4d  %8v  %8s\n",
			r.RunID, r.StartedAt.Format("2006-01-02 15:04:05"),
			r.Courses, r.Jobs, r.AnalysisComplete, r.Duration.Round(10*time.Millisecond))
	}
	return nil
}
