// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package kgraph

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSingleDrug(t *testing.T) {
	g, err := Build([]string{"Tenofovir"})
	require.NoError(t, err)

	counts := g.CountByKind()
	assert.Equal(t, 1, counts[KindDrug])
	assert.Equal(t, 1, counts[KindTarget])
	assert.Equal(t, 4, counts[KindMutation])

	// 1 inhibits edge + 4 mutation edges.
	assert.Len(t, g.Edges, 5)
}

func TestBuildSharesTargetNode(t *testing.T) {
	// Tenofovir and Lamivudine both target reverse transcriptase, and
	// share the K65R and M184V mutations.
	g, err := Build([]string{"Tenofovir", "Lamivudine"})
	require.NoError(t, err)

	counts := g.CountByKind()
	assert.Equal(t, 2, counts[KindDrug])
	assert.Equal(t, 1, counts[KindTarget])
	// 4 + 4 mutations with 2 shared.
	assert.Equal(t, 6, counts[KindMutation])
}

func TestBuildUnknownDrug(t *testing.T) {
	_, err := Build([]string{"Raltegravir"})
	assert.Error(t, err)

	_, err = Build(nil)
	assert.Error(t, err)
}

func TestBuildIgnoresDuplicateDrugs(t *testing.T) {
	single, err := Build([]string{"Tenofovir"})
	require.NoError(t, err)
	doubled, err := Build([]string{"Tenofovir", "Tenofovir"})
	require.NoError(t, err)

	assert.Equal(t, single.Nodes, doubled.Nodes)
	assert.Equal(t, single.Edges, doubled.Edges)

	// A drug repeated in the selection shares no mutations with itself.
	shared, err := SharedMutations([]string{"Tenofovir", "Tenofovir"})
	require.NoError(t, err)
	assert.Empty(t, shared)

	byTarget, err := DrugsByTarget([]string{"Tenofovir", "Tenofovir"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Tenofovir"}, byTarget["Reverse Transcriptase"])
}

func TestSharedMutations(t *testing.T) {
	shared, err := SharedMutations([]string{"Tenofovir", "Lamivudine", "Dolutegravir"})
	require.NoError(t, err)

	assert.Equal(t, []string{"Lamivudine", "Tenofovir"}, shared["K65R"])
	assert.Equal(t, []string{"Lamivudine", "Tenofovir"}, shared["M184V"])

	// Integrase mutations are unique to dolutegravir in this selection.
	assert.NotContains(t, shared, "R263K")
}

func TestDrugsByTarget(t *testing.T) {
	byTarget, err := DrugsByTarget([]string{"Dolutegravir", "Tenofovir", "Lamivudine"})
	require.NoError(t, err)

	assert.Equal(t, []string{"Lamivudine", "Tenofovir"}, byTarget["Reverse Transcriptase"])
	assert.Equal(t, []string{"Dolutegravir"}, byTarget["Integrase"])
}

func TestDOTOutput(t *testing.T) {
	g, err := Build([]string{"Dolutegravir"})
	require.NoError(t, err)

	dot := g.DOT()
	assert.True(t, strings.HasPrefix(dot, "graph vhivrap {"))
	assert.Contains(t, dot, `"Dolutegravir" [shape=box];`)
	assert.Contains(t, dot, `"Integrase" [shape=ellipse];`)
	assert.Contains(t, dot, `"R263K" [shape=diamond];`)
	assert.Contains(t, dot, `"Dolutegravir" -- "Integrase" [label="inhibits"];`)
}
