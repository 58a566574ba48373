// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// SimulationConfig holds shared settings for the simulation modules.
type SimulationConfig struct {
	// Seed is the default PRNG seed when a scenario does not carry one.
	Seed int64 `json:"seed" yaml:"seed"`

	// Samples is the number of output samples for continuous-time series
	// (default 300).
	Samples int `json:"samples" yaml:"samples"`
}

// StoreConfig holds settings for the scenario store.
type StoreConfig struct {
	// DataDir is the base directory for the store (contains vhivrap.db and
	// export files).
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// CompareConfig holds settings for the scenario comparator.
type CompareConfig struct {
	// ToxicityWeight scales the toxicity term of the objective. Nil means
	// the default 1.0; an explicit zero disregards toxicity entirely.
	ToxicityWeight *float64 `json:"toxicity_weight,omitempty" yaml:"toxicity_weight,omitempty"`

	// MaxScenarios bounds how many scenarios one comparison may load
	// (default 8).
	MaxScenarios int `json:"max_scenarios" yaml:"max_scenarios"`
}

// ToolConfig groups all stage configurations for the toolkit.
type ToolConfig struct {
	Simulation SimulationConfig `json:"simulation" yaml:"simulation"`
	Store      StoreConfig      `json:"store" yaml:"store"`
	Compare    CompareConfig    `json:"compare" yaml:"compare"`
}
