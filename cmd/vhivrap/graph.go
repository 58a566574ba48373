// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/vhivrap/internal/kgraph"
	"github.com/pdiddy/vhivrap/pkg/types"
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Build the drug / target / resistance-mutation network",
	Long: `Graph builds the knowledge graph connecting drugs to the viral
proteins they inhibit and the mutations that confer resistance. Export as
Graphviz DOT or JSON, or list mutations shared between drugs with
--shared to spot cross-resistance.`,
	RunE: runGraph,
}

func runGraph(cmd *cobra.Command, args []string) error {
	drugs, _ := cmd.Flags().GetStringSlice("drugs")
	if len(drugs) == 0 {
		drugs = types.DrugNames()
	}

	if shared, _ := cmd.Flags().GetBool("shared"); shared {
		return printSharedMutations(drugs)
	}
	if byTarget, _ := cmd.Flags().GetBool("by-target"); byTarget {
		return printDrugsByTarget(drugs)
	}

	g, err := kgraph.Build(drugs)
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "dot", "":
		fmt.Fprint(os.Stdout, g.DOT())
	case "json":
		return printJSON(g)
	default:
		return fmt.Errorf("unsupported format %q: use dot or json", format)
	}
	return nil
}

func printSharedMutations(drugs []string) error {
	shared, err := kgraph.SharedMutations(drugs)
	if err != nil {
		return err
	}
	if len(shared) == 0 {
		fmt.Println("No shared mutations for the selected drugs.")
		return nil
	}

	mutations := make([]string, 0, len(shared))
	for mut := range shared {
		mutations = append(mutations, mut)
	}
	sort.Strings(mutations)

	fmt.Fprintf(os.Stdout, "%-10s  %s\n", "Mutation", "Drugs")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 40))
	for _, mut := range mutations {
		fmt.Fprintf(os.Stdout, "%-10s  %s\n", mut, strings.Join(shared[mut], ", "))
	}
	return nil
}

func printDrugsByTarget(drugs []string) error {
	byTarget, err := kgraph.DrugsByTarget(drugs)
	if err != nil {
		return err
	}

	targets := make([]string, 0, len(byTarget))
	for target := range byTarget {
		targets = append(targets, target)
	}
	sort.Strings(targets)

	fmt.Fprintf(os.Stdout, "%-24s  %s\n", "Target", "Drugs")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 54))
	for _, target := range targets {
		fmt.Fprintf(os.Stdout, "%-24s  %s\n", target, strings.Join(byTarget[target], ", "))
	}
	return nil
}

func init() {
	graphCmd.Flags().StringSlice("drugs", nil, "drugs to include (default: all)")
	graphCmd.Flags().String("format", "dot", "output format: dot or json")
	graphCmd.Flags().Bool("shared", false, "list mutations shared between the selected drugs")
	graphCmd.Flags().Bool("by-target", false, "group the selected drugs by the protein they inhibit")

	rootCmd.AddCommand(graphCmd)
}
