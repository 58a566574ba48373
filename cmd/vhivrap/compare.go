// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/vhivrap/internal/compare"
)

var compareCmd = &cobra.Command{
	Use:   "compare [name] [name...]",
	Short: "Replay saved scenarios side by side and rank them",
	Long: `Compare replays two or more saved scenarios of the same module and
ranks them by the treatment objective, Efficacy - Resistance - Toxicity.
Replays use a seed derived from each scenario, so rankings are stable.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runCompare,
}

func runCompare(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	cmp, err := compare.Compare(context.Background(), store, args, compareConfig())
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return printJSON(cmp)
	}

	fmt.Fprintf(os.Stdout, "Scenario comparison (%s)\n\n", cmp.Module)
	fmt.Fprintf(os.Stdout, "%-4s  %-20s  %-9s  %-10s  %-9s  %s\n",
		"Rank", "Scenario", "Efficacy", "Resistance", "Toxicity", "Score")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 70))

	for i, e := range cmp.Entries {
		fmt.Fprintf(os.Stdout, "%-4d  %-20s  %-9.3f  %-10.3f  %-9.3f  %+.3f\n",
			i+1, e.Scenario.Name,
			e.Objective.Efficacy, e.Objective.Resistance, e.Objective.Toxicity,
			e.Objective.Score)
	}
	return nil
}

func init() {
	compareCmd.Flags().Bool("json", false, "output entries with full series as JSON")

	rootCmd.AddCommand(compareCmd)
}
