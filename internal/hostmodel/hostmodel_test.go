// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package hostmodel

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/vhivrap/pkg/types"
)

func TestSimulateShape(t *testing.T) {
	p := types.DefaultHostParams()

	res, err := Simulate(p, 0)
	require.NoError(t, err)

	assert.Len(t, res.Time, DefaultSamples)
	assert.Len(t, res.ViralLoad, DefaultSamples)
	assert.Len(t, res.TargetCells, DefaultSamples)
	assert.Len(t, res.InfectedCells, DefaultSamples)

	assert.Zero(t, res.Time[0])
	assert.InDelta(t, float64(p.DurationDays), res.Time[len(res.Time)-1], 1e-9)

	// Initial conditions.
	assert.InDelta(t, initialT, res.TargetCells[0], 1e-9)
	assert.InDelta(t, initialV, res.ViralLoad[0], 1e-9)
}

func TestPopulationsStayFiniteAndNonNegative(t *testing.T) {
	res, err := Simulate(types.DefaultHostParams(), 0)
	require.NoError(t, err)

	for _, series := range [][]float64{res.TargetCells, res.InfectedCells, res.ViralLoad} {
		for i, v := range series {
			if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
				t.Fatalf("sample %d is %g", i, v)
			}
		}
	}
}

func TestAcutePeakThenDecline(t *testing.T) {
	res, err := Simulate(types.DefaultHostParams(), 0)
	require.NoError(t, err)

	peak := res.PeakViralLoad()
	assert.Greater(t, peak, initialV)
	assert.Less(t, res.FinalViralLoad(), peak)
}

func TestUntreatedInfectionPeaksAndDeclines(t *testing.T) {
	p := types.DefaultHostParams()
	p.DrugPressure = 0
	p.Adherence = 0
	p.HostActivity = 0
	p.GeneEditing = false

	res, err := Simulate(p, 0)
	require.NoError(t, err)

	assert.InDelta(t, betaBase, res.EffectiveInfectivity, 1e-12)
	assert.InDelta(t, burstBase, res.EffectiveBurst, 1e-9)

	// Untreated acute infection: load climbs orders of magnitude above
	// the inoculum, then falls back toward the chronic set point.
	peak := res.PeakViralLoad()
	assert.Greater(t, peak, 1e3*initialV)
	assert.Less(t, res.FinalViralLoad(), peak)

	for i, v := range res.ViralLoad {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("sample %d is %g", i, v)
		}
	}
}

func TestFullHostActivityClearsVirus(t *testing.T) {
	p := types.DefaultHostParams()
	p.HostActivity = 1

	res, err := Simulate(p, 0)
	require.NoError(t, err)

	// Production fully suppressed: clearance dominates and the load
	// only decays.
	assert.Zero(t, res.EffectiveBurst)
	for i := 1; i < len(res.ViralLoad); i++ {
		assert.LessOrEqual(t, res.ViralLoad[i], res.ViralLoad[i-1])
	}
	assert.Less(t, res.FinalViralLoad(), 1e-3)
}

func TestEffectiveInfectivityReductions(t *testing.T) {
	p := types.DefaultHostParams()
	p.DrugPressure = 1.0
	p.Adherence = 1.0
	p.GeneEditing = true
	p.GeneEffect = 1.0

	res, err := Simulate(p, 0)
	require.NoError(t, err)

	want := betaBase * (1 - drugBetaMax) * (1 - geneBetaMax)
	assert.InDelta(t, want, res.EffectiveInfectivity, 1e-12)

	// Gene editing ignored when disabled.
	p.GeneEditing = false
	res, err = Simulate(p, 0)
	require.NoError(t, err)
	assert.InDelta(t, betaBase*(1-drugBetaMax), res.EffectiveInfectivity, 1e-12)
}

func TestComorbiditiesRaiseBurstAndPeak(t *testing.T) {
	plain := types.DefaultHostParams()
	plain.HostActivity = 0

	comorbid := plain
	comorbid.Diabetes = true
	comorbid.Hypertension = true
	comorbid.Obesity = true

	a, err := Simulate(plain, 0)
	require.NoError(t, err)
	b, err := Simulate(comorbid, 0)
	require.NoError(t, err)

	wantBoost := diabetesBoost * hypertensionBoost * obesityBoost
	assert.InDelta(t, a.EffectiveBurst*wantBoost, b.EffectiveBurst, 1e-6)
	assert.Greater(t, b.PeakViralLoad(), a.PeakViralLoad())
}

func TestHostActivitySuppressesProduction(t *testing.T) {
	inactive := types.DefaultHostParams()
	inactive.HostActivity = 0

	active := inactive
	active.HostActivity = 1

	a, err := Simulate(inactive, 0)
	require.NoError(t, err)
	b, err := Simulate(active, 0)
	require.NoError(t, err)

	assert.InDelta(t, burstBase*(1-hostAlpha), b.EffectiveBurst, 1e-9)
	assert.Less(t, b.PeakViralLoad(), a.PeakViralLoad())
}

func TestSimulateIsDeterministic(t *testing.T) {
	p := types.DefaultHostParams()

	a, err := Simulate(p, 0)
	require.NoError(t, err)
	b, err := Simulate(p, 0)
	require.NoError(t, err)

	assert.Equal(t, a.ViralLoad, b.ViralLoad)
	assert.Equal(t, a.TargetCells, b.TargetCells)
}

func TestValidateRejectsBadParams(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*types.ScenarioParams)
	}{
		{"unknown drug", func(p *types.ScenarioParams) { p.Drugs = []string{"Ritonavir"} }},
		{"pressure out of range", func(p *types.ScenarioParams) { p.DrugPressure = 2 }},
		{"negative host activity", func(p *types.ScenarioParams) { p.HostActivity = -0.5 }},
		{"gene effect out of range", func(p *types.ScenarioParams) { p.GeneEffect = 1.1 }},
		{"zero duration", func(p *types.ScenarioParams) { p.DurationDays = 0 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := types.DefaultHostParams()
			tc.mutate(&p)
			_, err := Simulate(p, 0)
			assert.Error(t, err)
		})
	}
}
