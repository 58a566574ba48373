// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/vhivrap/internal/hostmodel"
	"github.com/pdiddy/vhivrap/pkg/types"
)

var hostCmd = &cobra.Command{
	Use:   "host",
	Short: "Simulate within-host viral dynamics for a virtual patient",
	Long: `Host integrates the target-cell-limited HIV model for a virtual
patient. Drug pressure, adherence, gene editing, host-protein activity,
and comorbidities shape the effective infectivity and virion production.
Prints a trajectory summary; use --json for the full series.`,
	RunE: runHost,
}

func runHost(cmd *cobra.Command, args []string) error {
	params := types.DefaultHostParams()
	params.Drugs, _ = cmd.Flags().GetStringSlice("drugs")
	params.DrugPressure, _ = cmd.Flags().GetFloat64("pressure")
	params.Adherence, _ = cmd.Flags().GetFloat64("adherence")
	params.HostActivity, _ = cmd.Flags().GetFloat64("host-activity")
	params.GeneEditing, _ = cmd.Flags().GetBool("gene-editing")
	params.GeneEffect, _ = cmd.Flags().GetFloat64("gene-effect")
	params.Diabetes, _ = cmd.Flags().GetBool("diabetes")
	params.Hypertension, _ = cmd.Flags().GetBool("hypertension")
	params.Obesity, _ = cmd.Flags().GetBool("obesity")
	params.DurationDays, _ = cmd.Flags().GetInt("duration")

	samples, _ := cmd.Flags().GetInt("samples")
	if samples == 0 {
		samples = viper.GetInt("simulation.samples")
	}

	res, err := hostmodel.Simulate(params, samples)
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		if err := printJSON(res); err != nil {
			return err
		}
	} else {
		printHostSummary(params, res)
	}

	if name, _ := cmd.Flags().GetString("save"); name != "" {
		run := types.RunResult{
			Time:          res.Time,
			ViralLoad:     res.ViralLoad,
			TargetCells:   res.TargetCells,
			InfectedCells: res.InfectedCells,
		}
		return saveScenarioRun(cmd, name, types.ModuleHost, params, run)
	}
	return nil
}

func printHostSummary(params types.ScenarioParams, res hostmodel.Result) {
	fmt.Fprintf(os.Stdout, "Within-host dynamics over %d days\n\n", params.DurationDays)

	fmt.Fprintf(os.Stdout, "Drugs:                  %s\n", strings.Join(params.Drugs, ", "))
	fmt.Fprintf(os.Stdout, "Drug effect (p*a):      %.2f\n", params.DrugPressure*params.Adherence)
	fmt.Fprintf(os.Stdout, "Host activity:          %.2f\n", params.HostActivity)
	if params.GeneEditing {
		fmt.Fprintf(os.Stdout, "Gene editing effect:    %.2f\n", params.GeneEffect)
	}
	fmt.Fprintf(os.Stdout, "Effective infectivity:  %.3e ml/day\n", res.EffectiveInfectivity)
	fmt.Fprintf(os.Stdout, "Effective burst size:   %.0f virions/cell/day\n", res.EffectiveBurst)
	fmt.Fprintln(os.Stdout)
	fmt.Fprintf(os.Stdout, "Peak viral load:        %.3e copies/ml\n", res.PeakViralLoad())
	fmt.Fprintf(os.Stdout, "Final viral load:       %.3e copies/ml\n", res.FinalViralLoad())
	fmt.Fprintf(os.Stdout, "Final target cells:     %.3e cells/ml\n", res.TargetCells[len(res.TargetCells)-1])
}

func init() {
	hostCmd.Flags().StringSlice("drugs", []string{"Tenofovir"}, "drugs applied (comma-separated)")
	hostCmd.Flags().Float64("pressure", 0.6, "combined antiretroviral effect")
	hostCmd.Flags().Float64("adherence", 0.8, "patient adherence level")
	hostCmd.Flags().Float64("host-activity", 0.5, "host-protein activity level H")
	hostCmd.Flags().Bool("gene-editing", false, "enable gene editing intervention (e.g. CCR5)")
	hostCmd.Flags().Float64("gene-effect", 0.5, "gene editing effectiveness")
	hostCmd.Flags().Bool("diabetes", false, "diabetes comorbidity")
	hostCmd.Flags().Bool("hypertension", false, "hypertension comorbidity")
	hostCmd.Flags().Bool("obesity", false, "obesity comorbidity")
	hostCmd.Flags().Int("duration", 120, "simulation duration in days")
	hostCmd.Flags().Int("samples", 0, "output series samples (0 = default)")
	hostCmd.Flags().Bool("json", false, "output full series as JSON")
	hostCmd.Flags().String("save", "", "save the scenario and run under this name")

	rootCmd.AddCommand(hostCmd)
}
