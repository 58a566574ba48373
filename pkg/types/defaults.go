// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Default parameter sets mirror the values each module starts from before
// the user adjusts anything.

// DefaultResistanceParams returns the baseline resistance-engine inputs.
func DefaultResistanceParams() ScenarioParams {
	return ScenarioParams{
		Drugs:        []string{"Tenofovir"},
		DrugPressure: 0.6,
		MutationRate: 0.01,
		Adherence:    0.8,
		DurationDays: 100,
	}
}

// DefaultHostParams returns the baseline within-host model inputs.
func DefaultHostParams() ScenarioParams {
	return ScenarioParams{
		Drugs:        []string{"Tenofovir"},
		DrugPressure: 0.6,
		Adherence:    0.8,
		HostActivity: 0.5,
		GeneEffect:   0.5,
		DurationDays: 120,
	}
}

// DefaultParticleParams returns the baseline particle-census inputs.
func DefaultParticleParams() ScenarioParams {
	return ScenarioParams{
		Drugs:             []string{"Tenofovir"},
		DrugEffectiveness: 0.65,
		GeneEffect:        0.5,
		Particles:         80,
	}
}
