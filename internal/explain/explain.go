// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package explain derives heuristic factor-importance scores and a plain
// text narrative from scenario parameters. Scores are normalized to [0, 1]
// and map directly from the parameters; a surrogate-model approach (SHAP
// or similar) could replace them without changing the interface.
package explain

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pdiddy/vhivrap/pkg/types"
)

// Influence tiers.
const (
	TierStrong   = "strong"
	TierModerate = "moderate"
	TierLow      = "low"

	strongThreshold   = 0.75
	moderateThreshold = 0.5
)

// Fixed influence weights for binary comorbidity factors.
const (
	diabetesInfluence     = 0.75
	hypertensionInfluence = 0.65
	obesityInfluence      = 0.55
)

// Factor is one explanatory input with its heuristic influence score.
type Factor struct {
	Name      string  `json:"name" yaml:"name"`
	Influence float64 `json:"influence" yaml:"influence"`
}

// Tier buckets the influence score: strong above 0.75, moderate above
// 0.5, low otherwise.
func (f Factor) Tier() string {
	switch {
	case f.Influence > strongThreshold:
		return TierStrong
	case f.Influence > moderateThreshold:
		return TierModerate
	default:
		return TierLow
	}
}

// Importance maps scenario parameters to ranked factors, highest
// influence first, ties broken by name for stable output.
func Importance(module types.ModuleKind, p types.ScenarioParams) []Factor {
	var factors []Factor
	add := func(name string, influence float64) {
		factors = append(factors, Factor{Name: name, Influence: influence})
	}

	switch module {
	case types.ModuleParticles:
		add("Drug Suppression Strength", p.DrugEffectiveness)
	default:
		add("Drug Pressure", p.DrugPressure)
		add("Adherence", p.Adherence)
	}

	if module == types.ModuleHost {
		add("Host Protein Activity", p.HostActivity)
	}
	if module == types.ModuleResistance {
		// Mutation rates live in (0, 0.05]; rescale so the factor is
		// comparable to the unit-range parameters.
		add("Mutation Rate", p.MutationRate/0.05)
	}
	if p.GeneEditing {
		add("Gene Editing Effect", p.GeneEffect)
	}
	if p.Diabetes {
		add("Diabetes Comorbidity", diabetesInfluence)
	}
	if p.Hypertension {
		add("Hypertension Comorbidity", hypertensionInfluence)
	}
	if p.Obesity {
		add("Obesity Comorbidity", obesityInfluence)
	}

	sort.SliceStable(factors, func(i, j int) bool {
		if factors[i].Influence != factors[j].Influence {
			return factors[i].Influence > factors[j].Influence
		}
		return factors[i].Name < factors[j].Name
	})
	return factors
}

// Narrative assembles a textual explanation of a scenario from its
// parameters, in the voice of the research assistant panel.
func Narrative(module types.ModuleKind, p types.ScenarioParams) string {
	var sentences []string

	drugs := strings.Join(p.Drugs, ", ")
	if drugs == "" {
		drugs = "no drugs"
	}

	switch module {
	case types.ModuleResistance:
		sentences = append(sentences, fmt.Sprintf(
			"Selected drugs (%s) with drug pressure %.2f and adherence %.2f influence resistance evolution.",
			drugs, p.DrugPressure, p.Adherence))
		sentences = append(sentences, fmt.Sprintf("Mutation rate: %.3f per day.", p.MutationRate))

	case types.ModuleHost:
		sentences = append(sentences, fmt.Sprintf("Virtual patient taking %s.", drugs))
		sentences = append(sentences, fmt.Sprintf("Host-protein activity: %.2f.", p.HostActivity))
		if comorbidities := comorbidityNames(p); len(comorbidities) > 0 {
			sentences = append(sentences, fmt.Sprintf("Comorbidities: %s.", strings.Join(comorbidities, ", ")))
		}
		sentences = append(sentences, "These factors influence viral suppression dynamics.")

	case types.ModuleParticles:
		sentences = append(sentences, fmt.Sprintf(
			"Particle population under %s with drug suppression strength %.2f.",
			drugs, p.DrugEffectiveness))
		sentences = append(sentences, "Particle states show viral activity and suppression.")

	case types.ModuleGraph:
		sentences = append(sentences, fmt.Sprintf(
			"Drug-target-mutation network for %s; shared mutations indicate cross-resistance.", drugs))
	}

	if p.GeneEditing {
		sentences = append(sentences, fmt.Sprintf("Gene editing enabled, effectiveness %.2f.", p.GeneEffect))
	}

	return strings.Join(sentences, " ")
}

func comorbidityNames(p types.ScenarioParams) []string {
	var names []string
	if p.Diabetes {
		names = append(names, "diabetes")
	}
	if p.Hypertension {
		names = append(names, "hypertension")
	}
	if p.Obesity {
		names = append(names, "obesity")
	}
	return names
}
