// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/mmeet/career-engine/internal/profile"
	"github.com/mmeet/career-engine/internal/store"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage stored career profiles",
}

var profileSaveCmd = &cobra.Command{
	Use:   "save [answers.yaml]",
	Short: "Normalize a questionnaire answer bag and store the profile",
	Long: `Save reads a YAML file of raw questionnaire answers, normalizes it into
a canonical career profile, and stores it. Stored profiles are picked up
by refresh rounds and can be re-run with recommend --uid.`,
	RunE: runProfileSave,
}

var profileShowCmd = &cobra.Command{
	Use:   "show [uid]",
	Short: "Print a stored profile as YAML",
	RunE:  runProfileShow,
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored profile identifiers",
	RunE:  runProfileList,
}

func init() {
	profileCmd.AddCommand(profileSaveCmd)
	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileListCmd)

	rootCmd.AddCommand(profileCmd)
}

func runProfileSave(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("provide the path to an answers YAML file")
	}

	answers, err := profile.LoadAnswers(args[0])
	if err != nil {
		return err
	}
	p, keywords := profile.Normalize(answers)
	if p.UID == "" {
		return fmt.Errorf("answers file must include a uid")
	}

	ctx := context.Background()
	cfg := pipelineConfig(cmd)
	gw, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer gw.Close()

	if err := gw.WriteProfile(ctx, p); err != nil {
		return err
	}
	fmt.Printf("stored profile %s (keywords %q)\n", p.UID, keywords)
	return nil
}

func runProfileShow(cmd *cobra.Command, args []string) error {
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

	p, err := gw.ReadProfile(ctx, args[0])
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("no stored profile for %s", args[0])
		}
		return err
	}

	enc := yaml.NewEncoder(os.Stdout)
	defer enc.Close()
	return enc.Encode(p)
}

func runProfileList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	cfg := pipelineConfig(cmd)
	gw, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer gw.Close()

	uids, err := gw.ListUsers(ctx)
	if err != nil {
		return err
	}
	if len(uids) == 0 {
		fmt.Println("no stored profiles")
		return nil
	}
	fmt.Println(strings.Join(uids, "\n"))
	return nil
}
