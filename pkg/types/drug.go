// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "sort"

// DrugTarget identifies the viral protein a drug inhibits.
type DrugTarget string

const (
	TargetReverseTranscriptase DrugTarget = "Reverse Transcriptase"
	TargetIntegrase            DrugTarget = "Integrase"
)

// Drug describes one antiretroviral compound in the simulation catalog.
type Drug struct {
	// Name is the compound name as shown to users (e.g. "Tenofovir").
	Name string `json:"name" yaml:"name"`

	// Target is the viral protein the drug inhibits.
	Target DrugTarget `json:"target" yaml:"target"`

	// Mutations lists resistance mutations known to reduce the drug's effect.
	Mutations []string `json:"mutations" yaml:"mutations"`

	// Toxicity is a relative toxicity weight in [0, 1] used by objective scoring.
	Toxicity float64 `json:"toxicity" yaml:"toxicity"`
}

// catalog holds the built-in antiretroviral drugs with their targets and
// resistance mutations from the Stanford HIVdb mutation lists.
var catalog = map[string]Drug{
	"Tenofovir": {
		Name:      "Tenofovir",
		Target:    TargetReverseTranscriptase,
		Mutations: []string{"K65R", "K70E", "Y115F", "M184V"},
		Toxicity:  0.15,
	},
	"Lamivudine": {
		Name:      "Lamivudine",
		Target:    TargetReverseTranscriptase,
		Mutations: []string{"M184V", "M184I", "K65R", "L74V"},
		Toxicity:  0.10,
	},
	"Dolutegravir": {
		Name:      "Dolutegravir",
		Target:    TargetIntegrase,
		Mutations: []string{"R263K", "G118R", "E138K", "Q148H", "N155H"},
		Toxicity:  0.12,
	},
	"Efavirenz": {
		Name:      "Efavirenz",
		Target:    TargetReverseTranscriptase,
		Mutations: []string{"K103N", "Y181C", "G190A", "K101E"},
		Toxicity:  0.25,
	},
}

// Catalog returns all built-in drugs sorted by name.
func Catalog() []Drug {
	drugs := make([]Drug, 0, len(catalog))
	for _, d := range catalog {
		drugs = append(drugs, d)
	}
	sort.Slice(drugs, func(i, j int) bool { return drugs[i].Name < drugs[j].Name })
	return drugs
}

// LookupDrug returns the catalog entry for name, and whether it exists.
func LookupDrug(name string) (Drug, bool) {
	d, ok := catalog[name]
	return d, ok
}

// DrugNames returns the sorted names of all catalog drugs.
func DrugNames() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
