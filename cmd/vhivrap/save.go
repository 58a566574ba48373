// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/vhivrap/pkg/types"
)

// saveScenarioRun persists a scenario and its run artifacts under the
// given name, updating the scenario in place when the name exists.
func saveScenarioRun(cmd *cobra.Command, name string, module types.ModuleKind, params types.ScenarioParams, run types.RunResult) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	sc := types.Scenario{Name: name, Module: module, Params: params}
	if err := store.Save(ctx, &sc); err != nil {
		return err
	}

	run.ScenarioID = sc.ID
	run.Module = module
	if err := store.SaveRun(ctx, &run); err != nil {
		return err
	}

	slog.Info("scenario saved", "name", name, "module", module, "id", sc.ID)
	return nil
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
