// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmeet/career-engine/internal/profile"
	"github.com/mmeet/career-engine/internal/store"
	"github.com/mmeet/career-engine/pkg/types"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Run the full recommendation pipeline for one user",
	Long: `Recommend fetches course and job candidates, asks the model to select
the best matches for the user's career profile, analyzes each pick, and
persists the resulting snapshot.

The profile comes from --answers (a YAML questionnaire answer bag) or from
a previously stored profile selected with --uid. With --answers the
normalized profile is stored for later refresh rounds.`,
	RunE: runRecommend,
}

func init() {
	recommendCmd.Flags().String("answers", "", "path to a questionnaire answers YAML file")
	recommendCmd.Flags().String("uid", "", "run for a previously stored profile")
	recommendCmd.Flags().Bool("offline", false, "use the built-in catalogs instead of network sources")
	recommendCmd.Flags().String("model", "", "model identifier (default gemini-1.5-flash)")
	recommendCmd.Flags().Bool("json", false, "print the snapshot as JSON")

	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(cmd *cobra.Command, args []string) error {
	answersPath, _ := cmd.Flags().GetString("answers")
	uid, _ := cmd.Flags().GetString("uid")
	if answersPath == "" && uid == "" {
		return fmt.Errorf("provide --answers or --uid")
	}

	ctx := context.Background()
	cfg := pipelineConfig(cmd)

	gw, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer gw.Close()

	var p types.UserProfile
	switch {
	case answersPath != "":
		answers, err := profile.LoadAnswers(answersPath)
		if err != nil {
			return err
		}
		var keywords string
		p, keywords = profile.Normalize(answers)
		if p.UID == "" {
			return fmt.Errorf("answers file must include a uid")
		}
		fmt.Fprintf(os.Stderr, "profile %s: keywords %q\n", p.UID, keywords)
		if err := gw.WriteProfile(ctx, p); err != nil {
			return fmt.Errorf("storing profile: %w", err)
		}
	default:
		p, err = gw.ReadProfile(ctx, uid)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("no stored profile for %s: run with --answers first", uid)
			}
			return err
		}
	}

	pl := buildPipeline(cfg, gw)
	snap, runErr := pl.Run(ctx, p, os.Stderr)

	if snap != nil {
		if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(snap); err != nil {
				return err
			}
		} else {
			printSnapshot(snap)
		}
	}
	return runErr
}

func printSnapshot(snap *types.RecommendationSnapshot) {
	fmt.Printf("Run %s (complete=%v)\n\n", snap.RunID, snap.AnalysisComplete)

	printItems := func(heading string, items []types.AnalyzedItem) {
		fmt.Printf("%s (%d):\n", heading, len(items))
		if len(items) == 0 {
			fmt.Println("  none")
		}
		for i, item := range items {
			fmt.Printf("  %d. %s", i+1, item.Title)
			if item.Provider != "" {
				fmt.Printf(" (%s)", item.Provider)
			}
			fmt.Println()
			fmt.Printf("     %s\n", item.Summary)
			fmt.Printf("     %s\n", item.Reason)
		}
		fmt.Println()
	}

	printItems("Courses", snap.RecommendedCourses)
	printItems("Jobs", snap.RecommendedJobs)

	for _, w := range snap.Warnings {
		fmt.Printf("warning: %s\n", w)
	}
}
