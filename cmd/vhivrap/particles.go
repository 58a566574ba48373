// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/vhivrap/internal/particles"
	"github.com/pdiddy/vhivrap/pkg/types"
)

var particlesCmd = &cobra.Command{
	Use:   "particles",
	Short: "Classify a viral particle population by suppression state",
	Long: `Particles draws a population of viral particles and classifies each
as active, drug-suppressed, or gene-suppressed. Positions are included in
the JSON output so external viewers can render the population in 3D.`,
	RunE: runParticles,
}

func runParticles(cmd *cobra.Command, args []string) error {
	params := types.DefaultParticleParams()
	params.Drugs, _ = cmd.Flags().GetStringSlice("drugs")
	params.Particles, _ = cmd.Flags().GetInt("count")
	params.DrugEffectiveness, _ = cmd.Flags().GetFloat64("effectiveness")
	params.GeneEditing, _ = cmd.Flags().GetBool("gene-editing")
	params.GeneEffect, _ = cmd.Flags().GetFloat64("gene-effect")
	params.Seed, _ = cmd.Flags().GetInt64("seed")

	res, err := particles.Populate(params)
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		if err := printJSON(res); err != nil {
			return err
		}
	} else {
		c := res.Census
		total := float64(c.Total())
		fmt.Fprintf(os.Stdout, "Particle census (%d particles)\n\n", c.Total())
		fmt.Fprintf(os.Stdout, "  active:           %4d  (%.0f%%)\n", c.Active, 100*float64(c.Active)/total)
		fmt.Fprintf(os.Stdout, "  drug-suppressed:  %4d  (%.0f%%)\n", c.DrugSuppressed, 100*float64(c.DrugSuppressed)/total)
		fmt.Fprintf(os.Stdout, "  gene-suppressed:  %4d  (%.0f%%)\n", c.GeneSuppressed, 100*float64(c.GeneSuppressed)/total)
	}

	if name, _ := cmd.Flags().GetString("save"); name != "" {
		census := res.Census
		run := types.RunResult{Census: &census}
		return saveScenarioRun(cmd, name, types.ModuleParticles, params, run)
	}
	return nil
}

func init() {
	particlesCmd.Flags().StringSlice("drugs", []string{"Tenofovir"}, "drugs applied (comma-separated)")
	particlesCmd.Flags().Int("count", 80, "number of viral particles")
	particlesCmd.Flags().Float64("effectiveness", 0.65, "drug suppression strength")
	particlesCmd.Flags().Bool("gene-editing", false, "enable gene editing intervention")
	particlesCmd.Flags().Float64("gene-effect", 0.5, "gene editing effectiveness")
	particlesCmd.Flags().Int64("seed", 0, "PRNG seed (0 = default)")
	particlesCmd.Flags().Bool("json", false, "output particles and census as JSON")
	particlesCmd.Flags().String("save", "", "save the scenario and run under this name")

	rootCmd.AddCommand(particlesCmd)
}
