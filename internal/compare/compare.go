// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package compare re-runs stored scenarios side by side and ranks them by
// the treatment objective, Score = Efficacy - Resistance - Toxicity.
// Nothing here searches parameter space; the objective is computed for
// the scenarios as saved.
package compare

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"sort"

	"github.com/pdiddy/vhivrap/internal/hostmodel"
	"github.com/pdiddy/vhivrap/internal/particles"
	"github.com/pdiddy/vhivrap/internal/resistance"
	"github.com/pdiddy/vhivrap/internal/scenario"
	"github.com/pdiddy/vhivrap/pkg/types"
)

const (
	defaultMaxScenarios   = 8
	defaultToxicityWeight = 1.0
)

// Entry pairs one scenario with its replayed run and objective score.
type Entry struct {
	Scenario  types.Scenario       `json:"scenario" yaml:"scenario"`
	Run       types.RunResult      `json:"run" yaml:"run"`
	Objective types.ObjectiveScore `json:"objective" yaml:"objective"`
}

// Comparison holds ranked entries, best objective score first.
type Comparison struct {
	Module  types.ModuleKind `json:"module" yaml:"module"`
	Entries []Entry          `json:"entries" yaml:"entries"`
}

// Compare loads the named scenarios, replays each deterministically, and
// ranks them by descending objective score (ties broken by name). All
// scenarios must belong to the same module; the graph module has no
// trajectory to replay and is rejected.
func Compare(ctx context.Context, store *scenario.Store, names []string, cfg types.CompareConfig) (*Comparison, error) {
	if len(names) < 2 {
		return nil, fmt.Errorf("comparison needs at least 2 scenarios, got %d", len(names))
	}
	maxScenarios := cfg.MaxScenarios
	if maxScenarios <= 0 {
		maxScenarios = defaultMaxScenarios
	}
	if len(names) > maxScenarios {
		return nil, fmt.Errorf("comparison limited to %d scenarios, got %d", maxScenarios, len(names))
	}

	cmp := &Comparison{}
	for _, name := range names {
		sc, err := store.Get(ctx, name)
		if err != nil {
			return nil, err
		}

		if cmp.Module == "" {
			cmp.Module = sc.Module
		} else if sc.Module != cmp.Module {
			return nil, fmt.Errorf("cannot compare across modules: %q is %s, expected %s",
				sc.Name, sc.Module, cmp.Module)
		}

		run, err := Replay(sc)
		if err != nil {
			return nil, fmt.Errorf("replaying %q: %w", name, err)
		}

		obj := Objective(sc, run, cfg)
		run.Objective = &obj

		cmp.Entries = append(cmp.Entries, Entry{Scenario: sc, Run: run, Objective: obj})
	}

	sort.SliceStable(cmp.Entries, func(i, j int) bool {
		a, b := cmp.Entries[i], cmp.Entries[j]
		if a.Objective.Score != b.Objective.Score {
			return a.Objective.Score > b.Objective.Score
		}
		return a.Scenario.Name < b.Scenario.Name
	})

	return cmp, nil
}

// Replay re-runs a scenario's module with a seed derived from the
// scenario ID, so comparisons are stable across invocations.
func Replay(sc types.Scenario) (types.RunResult, error) {
	p := sc.Params
	if p.Seed == 0 {
		p.Seed = seedFromID(sc.ID)
	}

	run := types.RunResult{ScenarioID: sc.ID, Module: sc.Module}

	switch sc.Module {
	case types.ModuleResistance:
		res, err := resistance.Simulate(p)
		if err != nil {
			return types.RunResult{}, err
		}
		run.Time = res.Time
		run.Resistance = make(map[string][]float64, len(res.Curves))
		for _, c := range res.Curves {
			run.Resistance[c.Drug] = c.Index
		}

	case types.ModuleHost:
		res, err := hostmodel.Simulate(p, 0)
		if err != nil {
			return types.RunResult{}, err
		}
		run.Time = res.Time
		run.ViralLoad = res.ViralLoad
		run.TargetCells = res.TargetCells
		run.InfectedCells = res.InfectedCells

	case types.ModuleParticles:
		res, err := particles.Populate(p)
		if err != nil {
			return types.RunResult{}, err
		}
		census := res.Census
		run.Census = &census

	default:
		return types.RunResult{}, fmt.Errorf("module %q has no replayable trajectory", sc.Module)
	}

	return run, nil
}

// Objective scores a replayed run. Each term is a fraction in [0, 1]
// before weighting:
//
//   - Efficacy: fraction of peak viral load suppressed by the end (host),
//     achieved drug effect (resistance), or suppressed particle fraction.
//   - Resistance: 1 - exp(-mu*P*T), the resistance risk accumulated over
//     the run, or the active particle fraction.
//   - Toxicity: drug pressure times the summed per-drug toxicity weights.
func Objective(sc types.Scenario, run types.RunResult, cfg types.CompareConfig) types.ObjectiveScore {
	p := sc.Params

	var obj types.ObjectiveScore
	switch sc.Module {
	case types.ModuleHost:
		peak, final := peakAndFinal(run.ViralLoad)
		if peak > 0 {
			obj.Efficacy = clamp01(1 - final/peak)
		}
		obj.Resistance = resistanceRisk(p)

	case types.ModuleResistance:
		obj.Efficacy = p.DrugPressure * p.Adherence
		obj.Resistance = resistanceRisk(p)

	case types.ModuleParticles:
		if run.Census != nil && run.Census.Total() > 0 {
			total := float64(run.Census.Total())
			obj.Efficacy = float64(run.Census.DrugSuppressed+run.Census.GeneSuppressed) / total
			obj.Resistance = float64(run.Census.Active) / total
		}
	}

	obj.Toxicity = toxicity(p, sc.Module) * weight(cfg)
	obj.Score = obj.Efficacy - obj.Resistance - obj.Toxicity
	return obj
}

// resistanceRisk accumulates mutation pressure over the run duration.
func resistanceRisk(p types.ScenarioParams) float64 {
	return 1 - math.Exp(-p.MutationRate*p.DrugPressure*float64(p.DurationDays))
}

// toxicity sums the catalog toxicity weights of the applied drugs, scaled
// by how hard they are dosed.
func toxicity(p types.ScenarioParams, module types.ModuleKind) float64 {
	pressure := p.DrugPressure
	if module == types.ModuleParticles {
		pressure = p.DrugEffectiveness
	}

	sum := 0.0
	for _, name := range p.Drugs {
		if drug, ok := types.LookupDrug(name); ok {
			sum += drug.Toxicity
		}
	}
	return pressure * sum
}

// weight returns the toxicity weight, defaulting to 1.0 when unset. An
// explicit zero is honored so toxicity can be disregarded outright.
func weight(cfg types.CompareConfig) float64 {
	if cfg.ToxicityWeight == nil {
		return defaultToxicityWeight
	}
	return math.Max(0, *cfg.ToxicityWeight)
}

func peakAndFinal(series []float64) (peak, final float64) {
	for _, v := range series {
		if v > peak {
			peak = v
		}
	}
	if len(series) > 0 {
		final = series[len(series)-1]
	}
	return peak, final
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// seedFromID hashes a scenario ID into a PRNG seed.
func seedFromID(id string) int64 {
	h := fnv.New64a()
	h.Write([]byte(id))
	seed := int64(h.Sum64() & math.MaxInt64)
	if seed == 0 {
		seed = 1
	}
	return seed
}
