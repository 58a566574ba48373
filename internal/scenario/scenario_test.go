// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scenario

import (
	"context"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/vhivrap/pkg/types"
)

// --- test helpers ---

func testStore(t *testing.T) (*Store, string) {
	t.Helper()
	dataDir := filepath.Join(t.TempDir(), "data")

	store, err := NewStore(types.StoreConfig{DataDir: dataDir})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })

	return store, dataDir
}

func sampleScenario(name string, module types.ModuleKind) types.Scenario {
	params := types.DefaultResistanceParams()
	if module == types.ModuleHost {
		params = types.DefaultHostParams()
	}
	return types.Scenario{Name: name, Module: module, Params: params}
}

func mustSave(t *testing.T, store *Store, sc types.Scenario) types.Scenario {
	t.Helper()
	if err := store.Save(context.Background(), &sc); err != nil {
		t.Fatal(err)
	}
	return sc
}

// --- schema tests ---

func TestNewStoreCreatesSchema(t *testing.T) {
	store, _ := testStore(t)

	for _, table := range []string{"scenarios", "runs"} {
		var count int
		err := store.db.QueryRow(
			`SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, table,
		).Scan(&count)
		if err != nil {
			t.Fatalf("checking table %s: %v", table, err)
		}
		if count == 0 {
			t.Errorf("table %s does not exist", table)
		}
	}
}

func TestNewStoreRequiresDataDir(t *testing.T) {
	if _, err := NewStore(types.StoreConfig{}); err == nil {
		t.Fatal("expected error for empty data dir")
	}
}

// --- scenario CRUD tests ---

func TestSaveAssignsIDAndTimestamp(t *testing.T) {
	store, _ := testStore(t)
	sc := mustSave(t, store, sampleScenario("baseline", types.ModuleResistance))

	if sc.ID == "" {
		t.Error("expected ID to be assigned")
	}
	if sc.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be assigned")
	}
}

func TestSaveGetRoundtrip(t *testing.T) {
	store, _ := testStore(t)
	saved := mustSave(t, store, sampleScenario("baseline", types.ModuleResistance))

	got, err := store.Get(context.Background(), "baseline")
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != saved.ID {
		t.Errorf("ID = %q, want %q", got.ID, saved.ID)
	}
	if got.Module != types.ModuleResistance {
		t.Errorf("Module = %q, want resistance", got.Module)
	}
	if got.Params.DrugPressure != 0.6 {
		t.Errorf("DrugPressure = %g, want 0.6", got.Params.DrugPressure)
	}
	if len(got.Params.Drugs) != 1 || got.Params.Drugs[0] != "Tenofovir" {
		t.Errorf("Drugs = %v, want [Tenofovir]", got.Params.Drugs)
	}
}

func TestSaveUpdatesExistingName(t *testing.T) {
	store, _ := testStore(t)
	first := mustSave(t, store, sampleScenario("baseline", types.ModuleResistance))

	update := sampleScenario("baseline", types.ModuleResistance)
	update.Params.Adherence = 0.4
	mustSave(t, store, update)

	got, err := store.Get(context.Background(), "baseline")
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != first.ID {
		t.Errorf("update changed ID: %q -> %q", first.ID, got.ID)
	}
	if got.Params.Adherence != 0.4 {
		t.Errorf("Adherence = %g, want 0.4", got.Params.Adherence)
	}

	all, err := store.List(context.Background(), "")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 {
		t.Errorf("expected 1 scenario after upsert, got %d", len(all))
	}
}

func TestGetMissingScenario(t *testing.T) {
	store, _ := testStore(t)

	_, err := store.Get(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListFiltersByModule(t *testing.T) {
	store, _ := testStore(t)
	mustSave(t, store, sampleScenario("res-a", types.ModuleResistance))
	mustSave(t, store, sampleScenario("res-b", types.ModuleResistance))
	mustSave(t, store, sampleScenario("host-a", types.ModuleHost))

	all, err := store.List(context.Background(), "")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Errorf("List(all) = %d scenarios, want 3", len(all))
	}

	hosts, err := store.List(context.Background(), types.ModuleHost)
	if err != nil {
		t.Fatal(err)
	}
	if len(hosts) != 1 || hosts[0].Name != "host-a" {
		t.Errorf("List(host) = %v, want [host-a]", hosts)
	}
}

func TestDelete(t *testing.T) {
	store, _ := testStore(t)
	mustSave(t, store, sampleScenario("doomed", types.ModuleResistance))

	if err := store.Delete(context.Background(), "doomed"); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Get(context.Background(), "doomed"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}

	if err := store.Delete(context.Background(), "doomed"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for second delete, got %v", err)
	}
}

// --- run tests ---

func TestSaveAndLoadRun(t *testing.T) {
	store, _ := testStore(t)
	sc := mustSave(t, store, sampleScenario("baseline", types.ModuleResistance))

	run := types.RunResult{
		ScenarioID: sc.ID,
		Module:     types.ModuleResistance,
		Time:       []float64{0, 1, 2},
		Resistance: map[string][]float64{"Tenofovir": {0.2, 0.21, 0.22}},
	}
	if err := store.SaveRun(context.Background(), &run); err != nil {
		t.Fatal(err)
	}
	if run.ID == "" {
		t.Error("expected run ID to be assigned")
	}

	got, err := store.LatestRun(context.Background(), sc.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != run.ID {
		t.Errorf("run ID = %q, want %q", got.ID, run.ID)
	}
	if len(got.Resistance["Tenofovir"]) != 3 {
		t.Errorf("resistance series length = %d, want 3", len(got.Resistance["Tenofovir"]))
	}
}

func TestLatestRunMissing(t *testing.T) {
	store, _ := testStore(t)
	sc := mustSave(t, store, sampleScenario("baseline", types.ModuleResistance))

	if _, err := store.LatestRun(context.Background(), sc.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteCascadesToRuns(t *testing.T) {
	store, _ := testStore(t)
	sc := mustSave(t, store, sampleScenario("baseline", types.ModuleResistance))

	run := types.RunResult{ScenarioID: sc.ID, Module: types.ModuleResistance}
	if err := store.SaveRun(context.Background(), &run); err != nil {
		t.Fatal(err)
	}

	if err := store.Delete(context.Background(), "baseline"); err != nil {
		t.Fatal(err)
	}

	var count int
	if err := store.db.QueryRow(`SELECT count(*) FROM runs`).Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Errorf("expected runs to cascade on delete, %d remain", count)
	}
}

// --- import/export tests ---

func TestImportFile(t *testing.T) {
	store, _ := testStore(t)
	tmpDir := t.TempDir()

	sc := sampleScenario("", types.ModuleHost)
	data, err := yaml.Marshal(&sc)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(tmpDir, "virtual-patient.yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	imported, err := store.ImportFile(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	if imported.Name != "virtual-patient" {
		t.Errorf("imported name = %q, want virtual-patient", imported.Name)
	}

	if _, err := store.Get(context.Background(), "virtual-patient"); err != nil {
		t.Errorf("imported scenario not in store: %v", err)
	}
}

func TestImportFileRejectsMissingModule(t *testing.T) {
	store, _ := testStore(t)
	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("name: broken\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := store.ImportFile(context.Background(), path); err == nil {
		t.Fatal("expected error for scenario without module")
	}
}

func TestExportYAML(t *testing.T) {
	store, dataDir := testStore(t)
	mustSave(t, store, sampleScenario("baseline", types.ModuleResistance))

	path, err := store.ExportYAML(context.Background(), "")
	if err != nil {
		t.Fatal(err)
	}
	if path != filepath.Join(dataDir, "export.yaml") {
		t.Errorf("export path = %q", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var scenarios []types.Scenario
	if err := yaml.Unmarshal(data, &scenarios); err != nil {
		t.Fatal(err)
	}
	if len(scenarios) != 1 || scenarios[0].Name != "baseline" {
		t.Errorf("exported scenarios = %v", scenarios)
	}
}

func TestExportCSV(t *testing.T) {
	store, _ := testStore(t)
	sc := sampleScenario("combo", types.ModuleResistance)
	sc.Params.Drugs = []string{"Tenofovir", "Dolutegravir"}
	mustSave(t, store, sc)

	path, err := store.ExportCSV(context.Background(), types.ModuleResistance)
	if err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("expected header + 1 row, got %d records", len(records))
	}
	if records[0][0] != "name" {
		t.Errorf("header starts with %q, want name", records[0][0])
	}
	if records[1][0] != "combo" {
		t.Errorf("row name = %q, want combo", records[1][0])
	}
	if !strings.Contains(records[1][2], "Tenofovir;Dolutegravir") {
		t.Errorf("drugs column = %q", records[1][2])
	}
}

func TestExportJSONFiltersByModule(t *testing.T) {
	store, _ := testStore(t)
	mustSave(t, store, sampleScenario("res", types.ModuleResistance))
	mustSave(t, store, sampleScenario("host", types.ModuleHost))

	path, err := store.ExportJSON(context.Background(), types.ModuleHost)
	if err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"host"`) {
		t.Error("export missing host scenario")
	}
	if strings.Contains(string(data), `"res"`) {
		t.Error("export should not contain resistance scenario")
	}
}
