// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package resistance simulates per-drug resistance evolution under drug
// pressure. The index for each drug follows R(t) = exp(mu * P * t) scaled
// by the fraction of doses missed, with per-drug jitter on mu and P so
// combination regimens diverge over time.
package resistance

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/pdiddy/vhivrap/pkg/types"
)

const (
	// MinDuration and MaxDuration bound the simulated time span in days.
	MinDuration = 50
	MaxDuration = 200

	// MaxMutationRate is the largest accepted per-day mutation rate.
	MaxMutationRate = 0.05

	// jitterLow/jitterHigh bound the uniform scale applied to each drug's
	// pressure and mutation rate.
	jitterLow  = 0.8
	jitterHigh = 1.2

	// defaultSeed is used when a scenario carries no explicit seed.
	defaultSeed = 42
)

// Curve is the resistance trajectory for one drug. Pressure and
// MutationRate record the jittered values actually used.
type Curve struct {
	Drug         string    `json:"drug" yaml:"drug"`
	Pressure     float64   `json:"pressure" yaml:"pressure"`
	MutationRate float64   `json:"mutation_rate" yaml:"mutation_rate"`
	Index        []float64 `json:"index" yaml:"index"`
}

// FinalIndex returns the resistance index at the end of the run.
func (c Curve) FinalIndex() float64 {
	if len(c.Index) == 0 {
		return 0
	}
	return c.Index[len(c.Index)-1]
}

// DoublingTime returns the days needed for the index to double,
// ln 2 / (mu * P). Returns +Inf when the exponent is zero.
func (c Curve) DoublingTime() float64 {
	rate := c.MutationRate * c.Pressure
	if rate <= 0 {
		return math.Inf(1)
	}
	return math.Ln2 / rate
}

// Result holds the sampled trajectories of one resistance run.
type Result struct {
	Time   []float64 `json:"time" yaml:"time"`
	Curves []Curve   `json:"curves" yaml:"curves"`
}

// Validate checks the parameter subset the resistance engine reads.
func Validate(p types.ScenarioParams) error {
	if len(p.Drugs) == 0 {
		return fmt.Errorf("no drugs selected: choose at least one of %v", types.DrugNames())
	}
	for _, name := range p.Drugs {
		if _, ok := types.LookupDrug(name); !ok {
			return fmt.Errorf("unknown drug %q: known drugs are %v", name, types.DrugNames())
		}
	}
	if p.DrugPressure < 0 || p.DrugPressure > 1 {
		return fmt.Errorf("drug pressure %g out of range [0, 1]", p.DrugPressure)
	}
	if p.Adherence < 0 || p.Adherence > 1 {
		return fmt.Errorf("adherence %g out of range [0, 1]", p.Adherence)
	}
	if p.MutationRate <= 0 || p.MutationRate > MaxMutationRate {
		return fmt.Errorf("mutation rate %g out of range (0, %g]", p.MutationRate, MaxMutationRate)
	}
	if p.DurationDays < MinDuration || p.DurationDays > MaxDuration {
		return fmt.Errorf("duration %d out of range [%d, %d] days", p.DurationDays, MinDuration, MaxDuration)
	}
	return nil
}

// Simulate runs the resistance engine over integer days 0..duration-1.
// The same seed always yields the same jitter draws, so saved scenarios
// replay exactly.
func Simulate(p types.ScenarioParams) (Result, error) {
	if err := Validate(p); err != nil {
		return Result{}, err
	}

	seed := p.Seed
	if seed == 0 {
		seed = defaultSeed
	}
	rng := rand.New(rand.NewSource(seed))

	t := make([]float64, p.DurationDays)
	for i := range t {
		t[i] = float64(i)
	}

	missed := 1 - p.Adherence

	curves := make([]Curve, 0, len(p.Drugs))
	for _, name := range p.Drugs {
		pressure := p.DrugPressure * jitter(rng)
		mu := p.MutationRate * jitter(rng)

		index := make([]float64, len(t))
		for i, day := range t {
			index[i] = math.Exp(mu*pressure*day) * missed
		}

		curves = append(curves, Curve{
			Drug:         name,
			Pressure:     pressure,
			MutationRate: mu,
			Index:        index,
		})
	}

	return Result{Time: t, Curves: curves}, nil
}

// jitter draws a uniform scale factor in [jitterLow, jitterHigh).
func jitter(rng *rand.Rand) float64 {
	return jitterLow + (jitterHigh-jitterLow)*rng.Float64()
}
