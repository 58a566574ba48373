// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package kgraph builds the drug / target / resistance-mutation knowledge
// graph from the drug catalog and exports it for external viewers.
package kgraph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pdiddy/vhivrap/pkg/types"
)

// NodeKind labels a graph node.
type NodeKind string

const (
	KindDrug     NodeKind = "drug"
	KindTarget   NodeKind = "target"
	KindMutation NodeKind = "mutation"
)

// Edge labels.
const (
	LabelInhibits          = "inhibits"
	LabelConfersResistance = "confers resistance to"
)

// Node is a graph vertex: a drug, a viral target protein, or a mutation.
type Node struct {
	ID   string   `json:"id" yaml:"id"`
	Kind NodeKind `json:"kind" yaml:"kind"`
}

// Edge is an undirected labeled connection between two nodes.
type Edge struct {
	From  string `json:"from" yaml:"from"`
	To    string `json:"to" yaml:"to"`
	Label string `json:"label" yaml:"label"`
}

// Graph is the drug-target-mutation network for a drug selection.
type Graph struct {
	Nodes []Node `json:"nodes" yaml:"nodes"`
	Edges []Edge `json:"edges" yaml:"edges"`
}

// Build constructs the graph for the named drugs. Nodes are deduplicated:
// drugs sharing a target or mutation connect through the same node.
func Build(drugNames []string) (*Graph, error) {
	if len(drugNames) == 0 {
		return nil, fmt.Errorf("no drugs selected: choose at least one of %v", types.DrugNames())
	}

	g := &Graph{}
	seen := make(map[string]bool)

	addNode := func(id string, kind NodeKind) {
		if !seen[id] {
			seen[id] = true
			g.Nodes = append(g.Nodes, Node{ID: id, Kind: kind})
		}
	}

	for _, name := range drugNames {
		drug, ok := types.LookupDrug(name)
		if !ok {
			return nil, fmt.Errorf("unknown drug %q: known drugs are %v", name, types.DrugNames())
		}
		// Repeated selections contribute nothing new.
		if seen[drug.Name] {
			continue
		}

		target := string(drug.Target)
		addNode(drug.Name, KindDrug)
		addNode(target, KindTarget)
		g.Edges = append(g.Edges, Edge{From: drug.Name, To: target, Label: LabelInhibits})

		for _, mut := range drug.Mutations {
			addNode(mut, KindMutation)
			g.Edges = append(g.Edges, Edge{From: target, To: mut, Label: LabelConfersResistance})
		}
	}

	return g, nil
}

// SharedMutations returns the mutations that appear in the resistance
// profiles of two or more of the named drugs, sorted, with the drugs
// carrying each. Cross-resistance candidates, in other words.
func SharedMutations(drugNames []string) (map[string][]string, error) {
	byMutation := make(map[string][]string)
	seen := make(map[string]bool)
	for _, name := range drugNames {
		drug, ok := types.LookupDrug(name)
		if !ok {
			return nil, fmt.Errorf("unknown drug %q: known drugs are %v", name, types.DrugNames())
		}
		// A drug does not share mutations with itself.
		if seen[drug.Name] {
			continue
		}
		seen[drug.Name] = true
		for _, mut := range drug.Mutations {
			byMutation[mut] = append(byMutation[mut], drug.Name)
		}
	}

	shared := make(map[string][]string)
	for mut, drugs := range byMutation {
		if len(drugs) >= 2 {
			sort.Strings(drugs)
			shared[mut] = drugs
		}
	}
	return shared, nil
}

// DrugsByTarget groups the named drugs by the viral protein they
// inhibit, each group sorted.
func DrugsByTarget(drugNames []string) (map[string][]string, error) {
	byTarget := make(map[string][]string)
	seen := make(map[string]bool)
	for _, name := range drugNames {
		drug, ok := types.LookupDrug(name)
		if !ok {
			return nil, fmt.Errorf("unknown drug %q: known drugs are %v", name, types.DrugNames())
		}
		if seen[drug.Name] {
			continue
		}
		seen[drug.Name] = true
		target := string(drug.Target)
		byTarget[target] = append(byTarget[target], drug.Name)
	}
	for _, drugs := range byTarget {
		sort.Strings(drugs)
	}
	return byTarget, nil
}

// DOT renders the graph in Graphviz format. Drugs are boxes, targets
// ellipses, mutations diamonds.
func (g *Graph) DOT() string {
	var b strings.Builder
	b.WriteString("graph vhivrap {\n")
	b.WriteString("  layout=neato;\n")

	for _, n := range g.Nodes {
		shape := "ellipse"
		switch n.Kind {
		case KindDrug:
			shape = "box"
		case KindMutation:
			shape = "diamond"
		}
		fmt.Fprintf(&b, "  %q [shape=%s];\n", n.ID, shape)
	}

	for _, e := range g.Edges {
		fmt.Fprintf(&b, "  %q -- %q [label=%q];\n", e.From, e.To, e.Label)
	}

	b.WriteString("}\n")
	return b.String()
}

// CountByKind returns how many nodes of each kind the graph holds.
func (g *Graph) CountByKind() map[NodeKind]int {
	counts := make(map[NodeKind]int)
	for _, n := range g.Nodes {
		counts[n.Kind]++
	}
	return counts
}
