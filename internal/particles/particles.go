// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package particles classifies a population of viral particles by
// suppression state. Each particle takes one uniform draw: below the drug
// effectiveness it counts as drug-suppressed, below drug effectiveness
// plus gene effect it counts as gene-suppressed, otherwise it stays active.
// Positions are kept so external viewers can render the population.
package particles

import (
	"fmt"
	"math/rand"

	"github.com/pdiddy/vhivrap/pkg/types"
)

const (
	// MinParticles and MaxParticles bound the population size.
	MinParticles = 20
	MaxParticles = 200

	defaultSeed = 42
)

// State is a particle's suppression status.
type State string

const (
	StateActive         State = "active"
	StateDrugSuppressed State = "drug-suppressed"
	StateGeneSuppressed State = "gene-suppressed"
)

// Particle is one virion with a position in the unit cube [-1, 1]^3.
type Particle struct {
	X     float64 `json:"x" yaml:"x"`
	Y     float64 `json:"y" yaml:"y"`
	Z     float64 `json:"z" yaml:"z"`
	State State   `json:"state" yaml:"state"`
}

// Result holds the classified population and its census.
type Result struct {
	Particles []Particle           `json:"particles" yaml:"particles"`
	Census    types.ParticleCensus `json:"census" yaml:"census"`
}

// Validate checks the parameter subset the particle module reads.
func Validate(p types.ScenarioParams) error {
	if p.Particles < MinParticles || p.Particles > MaxParticles {
		return fmt.Errorf("particle count %d out of range [%d, %d]", p.Particles, MinParticles, MaxParticles)
	}
	if p.DrugEffectiveness < 0 || p.DrugEffectiveness > 1 {
		return fmt.Errorf("drug effectiveness %g out of range [0, 1]", p.DrugEffectiveness)
	}
	if p.GeneEffect < 0 || p.GeneEffect > 1 {
		return fmt.Errorf("gene effect %g out of range [0, 1]", p.GeneEffect)
	}
	for _, name := range p.Drugs {
		if _, ok := types.LookupDrug(name); !ok {
			return fmt.Errorf("unknown drug %q: known drugs are %v", name, types.DrugNames())
		}
	}
	return nil
}

// Populate draws and classifies a particle population. The same seed
// always produces the same population.
func Populate(p types.ScenarioParams) (Result, error) {
	if err := Validate(p); err != nil {
		return Result{}, err
	}

	seed := p.Seed
	if seed == 0 {
		seed = defaultSeed
	}
	rng := rand.New(rand.NewSource(seed))

	geneEffect := 0.0
	if p.GeneEditing {
		geneEffect = p.GeneEffect
	}

	res := Result{Particles: make([]Particle, p.Particles)}
	for i := range res.Particles {
		part := Particle{
			X: uniform(rng, -1, 1),
			Y: uniform(rng, -1, 1),
			Z: uniform(rng, -1, 1),
		}

		switch r := rng.Float64(); {
		case r < p.DrugEffectiveness:
			part.State = StateDrugSuppressed
			res.Census.DrugSuppressed++
		case r < p.DrugEffectiveness+geneEffect:
			part.State = StateGeneSuppressed
			res.Census.GeneSuppressed++
		default:
			part.State = StateActive
			res.Census.Active++
		}

		res.Particles[i] = part
	}

	return res, nil
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + (hi-lo)*rng.Float64()
}
