// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ModuleKind identifies which simulation module produced a scenario.
type ModuleKind string

const (
	ModuleResistance ModuleKind = "resistance"
	ModuleHost       ModuleKind = "host"
	ModuleParticles  ModuleKind = "particles"
	ModuleGraph      ModuleKind = "graph"
)

// ScenarioParams holds every tunable input a simulation module reads.
// Modules use the subset that applies to them and ignore the rest.
type ScenarioParams struct {
	// Drugs are the catalog drug names applied in the simulation.
	Drugs []string `json:"drugs" yaml:"drugs"`

	// DrugPressure is the combined antiretroviral effect in [0, 1].
	DrugPressure float64 `json:"drug_pressure" yaml:"drug_pressure"`

	// MutationRate is the per-day viral mutation rate.
	MutationRate float64 `json:"mutation_rate" yaml:"mutation_rate"`

	// Adherence is the patient adherence level in [0, 1].
	Adherence float64 `json:"adherence" yaml:"adherence"`

	// HostActivity is the host-protein activity level H in [0, 1].
	HostActivity float64 `json:"host_activity" yaml:"host_activity"`

	// GeneEditing enables a gene-editing intervention (e.g. CCR5).
	GeneEditing bool `json:"gene_editing" yaml:"gene_editing"`

	// GeneEffect is the editing effectiveness in [0, 1], read only when
	// GeneEditing is set.
	GeneEffect float64 `json:"gene_effect" yaml:"gene_effect"`

	// Comorbidities that increase viral fitness.
	Diabetes     bool `json:"diabetes" yaml:"diabetes"`
	Hypertension bool `json:"hypertension" yaml:"hypertension"`
	Obesity      bool `json:"obesity" yaml:"obesity"`

	// DurationDays is the simulated time span.
	DurationDays int `json:"duration_days" yaml:"duration_days"`

	// Particles is the viral particle population size for the census module.
	Particles int `json:"particles" yaml:"particles"`

	// DrugEffectiveness is the per-particle suppression probability in [0, 1]
	// used by the census module.
	DrugEffectiveness float64 `json:"drug_effectiveness" yaml:"drug_effectiveness"`

	// Seed makes stochastic draws reproducible. Zero selects a fixed default.
	Seed int64 `json:"seed" yaml:"seed"`
}

// Scenario is a named, persisted set of simulation parameters.
type Scenario struct {
	// ID is a stable UUID assigned when the scenario is first saved.
	ID string `json:"id" yaml:"id"`

	// Name is the user-chosen scenario name, unique per store.
	Name string `json:"name" yaml:"name"`

	// Module is the simulation module the scenario belongs to.
	Module ModuleKind `json:"module" yaml:"module"`

	Params ScenarioParams `json:"params" yaml:"params"`

	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// ParticleCensus counts a particle population by suppression state.
type ParticleCensus struct {
	Active         int `json:"active" yaml:"active"`
	DrugSuppressed int `json:"drug_suppressed" yaml:"drug_suppressed"`
	GeneSuppressed int `json:"gene_suppressed" yaml:"gene_suppressed"`
}

// Total returns the population size.
func (c ParticleCensus) Total() int {
	return c.Active + c.DrugSuppressed + c.GeneSuppressed
}

// ObjectiveScore decomposes the treatment objective for one run:
// Score = Efficacy - Resistance - Toxicity.
type ObjectiveScore struct {
	Efficacy   float64 `json:"efficacy" yaml:"efficacy"`
	Resistance float64 `json:"resistance" yaml:"resistance"`
	Toxicity   float64 `json:"toxicity" yaml:"toxicity"`
	Score      float64 `json:"score" yaml:"score"`
}

// RunResult holds the artifacts of one simulation run. Series fields are
// populated per module: ViralLoad/TargetCells/InfectedCells by the host
// model, Resistance by the resistance engine, Census by the particle module.
type RunResult struct {
	ID         string     `json:"id" yaml:"id"`
	ScenarioID string     `json:"scenario_id" yaml:"scenario_id"`
	Module     ModuleKind `json:"module" yaml:"module"`

	// Time holds the sample times in days, shared by all series.
	Time []float64 `json:"time,omitempty" yaml:"time,omitempty"`

	ViralLoad     []float64 `json:"viral_load,omitempty" yaml:"viral_load,omitempty"`
	TargetCells   []float64 `json:"target_cells,omitempty" yaml:"target_cells,omitempty"`
	InfectedCells []float64 `json:"infected_cells,omitempty" yaml:"infected_cells,omitempty"`

	// Resistance maps drug name to its resistance index series.
	Resistance map[string][]float64 `json:"resistance,omitempty" yaml:"resistance,omitempty"`

	Census *ParticleCensus `json:"census,omitempty" yaml:"census,omitempty"`

	Objective *ObjectiveScore `json:"objective,omitempty" yaml:"objective,omitempty"`

	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}
