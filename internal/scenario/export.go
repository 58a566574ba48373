// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scenario

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/vhivrap/pkg/types"
)

// ImportFile reads a scenario from a YAML file and saves it to the store.
// The file name (without extension) becomes the scenario name when the
// document carries none, matching how the UI version saved name.json files.
func (s *Store) ImportFile(ctx context.Context, path string) (types.Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Scenario{}, fmt.Errorf("reading scenario file: %w", err)
	}

	var sc types.Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return types.Scenario{}, fmt.Errorf("parsing %s: %w", path, err)
	}

	if sc.Name == "" {
		base := filepath.Base(path)
		sc.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	if sc.Module == "" {
		return types.Scenario{}, fmt.Errorf("%s: scenario module is empty", path)
	}

	if err := s.Save(ctx, &sc); err != nil {
		return types.Scenario{}, err
	}
	return sc, nil
}

// ExportYAML writes the stored scenarios (optionally filtered by module)
// to dataDir/export.yaml and returns the path.
func (s *Store) ExportYAML(ctx context.Context, module types.ModuleKind) (string, error) {
	scenarios, err := s.List(ctx, module)
	if err != nil {
		return "", err
	}

	data, err := yaml.Marshal(scenarios)
	if err != nil {
		return "", fmt.Errorf("marshaling YAML: %w", err)
	}

	path := filepath.Join(s.dataDir, "export.yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

// ExportJSON writes the stored scenarios (optionally filtered by module)
// to dataDir/export.json and returns the path.
func (s *Store) ExportJSON(ctx context.Context, module types.ModuleKind) (string, error) {
	scenarios, err := s.List(ctx, module)
	if err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(scenarios, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling JSON: %w", err)
	}

	path := filepath.Join(s.dataDir, "export.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

// csvHeader lists the flattened scenario columns in export order.
var csvHeader = []string{
	"name", "module", "drugs", "drug_pressure", "mutation_rate", "adherence",
	"host_activity", "gene_editing", "gene_effect",
	"diabetes", "hypertension", "obesity",
	"duration_days", "particles", "drug_effectiveness", "created_at",
}

// ExportCSV writes the stored scenarios (optionally filtered by module)
// to dataDir/export.csv, one flattened row per scenario, and returns the
// path.
func (s *Store) ExportCSV(ctx context.Context, module types.ModuleKind) (string, error) {
	scenarios, err := s.List(ctx, module)
	if err != nil {
		return "", err
	}

	path := filepath.Join(s.dataDir, "export.csv")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return "", fmt.Errorf("writing CSV header: %w", err)
	}

	for _, sc := range scenarios {
		p := sc.Params
		row := []string{
			sc.Name,
			string(sc.Module),
			strings.Join(p.Drugs, ";"),
			formatFloat(p.DrugPressure),
			formatFloat(p.MutationRate),
			formatFloat(p.Adherence),
			formatFloat(p.HostActivity),
			strconv.FormatBool(p.GeneEditing),
			formatFloat(p.GeneEffect),
			strconv.FormatBool(p.Diabetes),
			strconv.FormatBool(p.Hypertension),
			strconv.FormatBool(p.Obesity),
			strconv.Itoa(p.DurationDays),
			strconv.Itoa(p.Particles),
			formatFloat(p.DrugEffectiveness),
			sc.CreatedAt.Format(time.RFC3339),
		}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("writing CSV row for %q: %w", sc.Name, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flushing CSV: %w", err)
	}
	return path, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
