// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/vhivrap/internal/explain"
)

var explainCmd = &cobra.Command{
	Use:   "explain [name]",
	Short: "Explain a saved scenario's key factors",
	Long: `Explain ranks the factors driving a saved scenario by heuristic
influence scores and prints a plain-language narrative of the setup.`,
	Args: cobra.ExactArgs(1),
	RunE: runExplain,
}

func runExplain(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	sc, err := store.Get(context.Background(), args[0])
	if err != nil {
		return err
	}

	factors := explain.Importance(sc.Module, sc.Params)
	narrative := explain.Narrative(sc.Module, sc.Params)

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return printJSON(struct {
			Factors   []explain.Factor `json:"factors"`
			Narrative string           `json:"narrative"`
		}{factors, narrative})
	}

	fmt.Fprintf(os.Stdout, "Key factors for %q (%s)\n\n", sc.Name, sc.Module)
	fmt.Fprintf(os.Stdout, "%-26s  %-10s  %s\n", "Factor", "Influence", "Tier")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 50))
	for _, f := range factors {
		fmt.Fprintf(os.Stdout, "%-26s  %-10.2f  %s\n", f.Name, f.Influence, f.Tier())
	}

	fmt.Fprintf(os.Stdout, "\n%s\n", narrative)
	return nil
}

func init() {
	explainCmd.Flags().Bool("json", false, "output factors and narrative as JSON")

	rootCmd.AddCommand(explainCmd)
}
