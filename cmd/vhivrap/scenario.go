// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/vhivrap/pkg/types"
)

var scenarioCmd = &cobra.Command{
	Use:   "scenario",
	Short: "Manage saved scenarios (list, show, delete, import, export)",
	Long: `Scenario manages the local scenario store. Simulation commands save
scenarios with --save; this command lists, inspects, removes, imports,
and exports them.`,
}

var scenarioListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved scenarios",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		module, _ := cmd.Flags().GetString("module")
		scenarios, err := store.List(context.Background(), types.ModuleKind(module))
		if err != nil {
			return err
		}
		if len(scenarios) == 0 {
			fmt.Println("No saved scenarios.")
			return nil
		}

		fmt.Fprintf(os.Stdout, "%-20s  %-12s  %-20s  %s\n", "Name", "Module", "Drugs", "Created")
		fmt.Fprintln(os.Stdout, strings.Repeat("-", 76))
		for _, sc := range scenarios {
			drugs := strings.Join(sc.Params.Drugs, ",")
			if len(drugs) > 20 {
				drugs = drugs[:17] + "..."
			}
			fmt.Fprintf(os.Stdout, "%-20s  %-12s  %-20s  %s\n",
				sc.Name, sc.Module, drugs, sc.CreatedAt.Format("2006-01-02 15:04"))
		}
		return nil
	},
}

var scenarioShowCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Show one scenario's parameters as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		sc, err := store.Get(context.Background(), args[0])
		if err != nil {
			return err
		}
		return printJSON(sc)
	},
}

var scenarioDeleteCmd = &cobra.Command{
	Use:   "delete [name]",
	Short: "Delete a scenario and its runs",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Delete(context.Background(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted scenario %q\n", args[0])
		return nil
	},
}

var scenarioImportCmd = &cobra.Command{
	Use:   "import [file...]",
	Short: "Import scenario YAML files into the store",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		for _, path := range args {
			sc, err := store.ImportFile(context.Background(), path)
			if err != nil {
				return err
			}
			fmt.Printf("Imported %q (%s)\n", sc.Name, sc.Module)
		}
		return nil
	},
}

var scenarioExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the scenario store to YAML, JSON, or CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		module, _ := cmd.Flags().GetString("module")
		kind := types.ModuleKind(module)
		format, _ := cmd.Flags().GetString("format")

		var path string
		switch format {
		case "yaml", "":
			path, err = store.ExportYAML(context.Background(), kind)
		case "json":
			path, err = store.ExportJSON(context.Background(), kind)
		case "csv":
			path, err = store.ExportCSV(context.Background(), kind)
		default:
			return fmt.Errorf("unsupported format %q: use yaml, json, or csv", format)
		}
		if err != nil {
			return err
		}
		fmt.Println("Exported to", path)
		return nil
	},
}

func init() {
	scenarioListCmd.Flags().String("module", "", "filter by module: resistance, host, particles, or graph")
	scenarioExportCmd.Flags().String("module", "", "filter by module for partial export")
	scenarioExportCmd.Flags().String("format", "yaml", "export format: yaml, json, or csv")

	scenarioCmd.AddCommand(scenarioListCmd)
	scenarioCmd.AddCommand(scenarioShowCmd)
	scenarioCmd.AddCommand(scenarioDeleteCmd)
	scenarioCmd.AddCommand(scenarioImportCmd)
	scenarioCmd.AddCommand(scenarioExportCmd)

	rootCmd.AddCommand(scenarioCmd)
}
