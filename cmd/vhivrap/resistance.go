// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/vhivrap/internal/resistance"
	"github.com/pdiddy/vhivrap/pkg/types"
)

var resistanceCmd = &cobra.Command{
	Use:   "resistance",
	Short: "Simulate per-drug resistance evolution under drug pressure",
	Long: `Resistance simulates how drug pressure, mutation rate, and patient
adherence drive the resistance index of each selected drug over time.
Per-drug jitter on pressure and mutation rate makes combination regimens
diverge; a fixed seed keeps runs reproducible.`,
	RunE: runResistance,
}

func runResistance(cmd *cobra.Command, args []string) error {
	params := types.DefaultResistanceParams()
	params.Drugs, _ = cmd.Flags().GetStringSlice("drugs")
	params.DrugPressure, _ = cmd.Flags().GetFloat64("pressure")
	params.MutationRate, _ = cmd.Flags().GetFloat64("mutation-rate")
	params.Adherence, _ = cmd.Flags().GetFloat64("adherence")
	params.DurationDays, _ = cmd.Flags().GetInt("duration")
	params.Seed, _ = cmd.Flags().GetInt64("seed")

	res, err := resistance.Simulate(params)
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		if err := printJSON(res); err != nil {
			return err
		}
	} else {
		printResistanceTable(params, res)
	}

	if name, _ := cmd.Flags().GetString("save"); name != "" {
		run := types.RunResult{Time: res.Time, Resistance: make(map[string][]float64, len(res.Curves))}
		for _, c := range res.Curves {
			run.Resistance[c.Drug] = c.Index
		}
		return saveScenarioRun(cmd, name, types.ModuleResistance, params, run)
	}
	return nil
}

func printResistanceTable(params types.ScenarioParams, res resistance.Result) {
	fmt.Fprintf(os.Stdout, "Resistance evolution over %d days (pressure %.2f, adherence %.2f)\n\n",
		params.DurationDays, params.DrugPressure, params.Adherence)

	fmt.Fprintf(os.Stdout, "%-14s  %-10s  %-10s  %-12s  %s\n",
		"Drug", "Pressure", "Mu", "Final Index", "Doubling (d)")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 62))

	for _, c := range res.Curves {
		doubling := "-"
		if d := c.DoublingTime(); !math.IsInf(d, 1) {
			doubling = fmt.Sprintf("%.1f", d)
		}
		fmt.Fprintf(os.Stdout, "%-14s  %-10.3f  %-10.4f  %-12.4f  %s\n",
			c.Drug, c.Pressure, c.MutationRate, c.FinalIndex(), doubling)
	}
}

func init() {
	resistanceCmd.Flags().StringSlice("drugs", []string{"Tenofovir"}, "drugs to simulate (comma-separated)")
	resistanceCmd.Flags().Float64("pressure", 0.6, "drug pressure (0 = none, 1 = max)")
	resistanceCmd.Flags().Float64("mutation-rate", 0.01, "viral mutation rate per day")
	resistanceCmd.Flags().Float64("adherence", 0.8, "patient adherence level")
	resistanceCmd.Flags().Int("duration", 100, "simulation duration in days")
	resistanceCmd.Flags().Int64("seed", 0, "PRNG seed (0 = default)")
	resistanceCmd.Flags().Bool("json", false, "output full series as JSON")
	resistanceCmd.Flags().String("save", "", "save the scenario and run under this name")

	rootCmd.AddCommand(resistanceCmd)
}
