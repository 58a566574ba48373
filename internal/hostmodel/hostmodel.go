// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package hostmodel simulates within-host HIV dynamics with the classic
// target-cell-limited model:
//
//	dT/dt = lambda - dT*T - beta_eff*V*T
//	dI/dt = beta_eff*V*T - delta*I
//	dV/dt = p_eff*I - c*V
//
// Drug pressure, adherence, gene editing, host-protein activity, and
// comorbidities all enter through the effective infectivity beta_eff and
// the effective burst size p_eff. Integration uses an adaptive
// step-doubling RK4 private to this package.
package hostmodel

import (
	"fmt"
	"math"

	"github.com/pdiddy/vhivrap/pkg/types"
)

// Model constants, literature-range values.
const (
	betaBase   = 2.5e-4 // infectivity, ml/day
	deltaI     = 0.7    // infected cell death, /day
	clearance  = 5.0    // free virus clearance, /day
	lambdaT    = 1e4    // target cell production, cells/day
	deathT     = 0.01   // target cell death, /day
	burstBase  = 5000.0 // virions per infected cell per day
	initialT   = 1e6
	initialV   = 0.1
	infectedT0 = 1e-3 // initial infected fraction of T0

	// drugBetaMax and geneBetaMax cap how much drug pressure and gene
	// editing can reduce infectivity.
	drugBetaMax = 0.8
	geneBetaMax = 0.7

	// hostAlpha scales host-protein activity H into the suppression term
	// S = hostAlpha * H applied to the burst size. At full activity
	// production stops entirely and clearance drives the load to zero.
	hostAlpha = 1.0

	// Comorbidity boosts on the burst size.
	diabetesBoost     = 1.20
	hypertensionBoost = 1.15
	obesityBoost      = 1.10

	// DefaultSamples is the output series length when none is configured.
	DefaultSamples = 300

	// Integration step bounds and tolerances, in days. The acute phase is
	// stiff with these constants: the local rate beta*V on target cells
	// reaches ~1e5/day near the viral peak, so the step adapts by
	// comparing one full RK4 step against two half steps and shrinking
	// until the estimated error fits the tolerance.
	maxStep = 0.01
	minStep = 1e-10
	relTol  = 1e-4
	absTol  = 1e-2
)

// Result holds the sampled within-host trajectories.
type Result struct {
	Time          []float64 `json:"time" yaml:"time"`
	TargetCells   []float64 `json:"target_cells" yaml:"target_cells"`
	InfectedCells []float64 `json:"infected_cells" yaml:"infected_cells"`
	ViralLoad     []float64 `json:"viral_load" yaml:"viral_load"`

	// EffectiveInfectivity and EffectiveBurst record the derived rates the
	// run used, for reporting.
	EffectiveInfectivity float64 `json:"effective_infectivity" yaml:"effective_infectivity"`
	EffectiveBurst       float64 `json:"effective_burst" yaml:"effective_burst"`
}

// PeakViralLoad returns the maximum of the viral load series.
func (r Result) PeakViralLoad() float64 {
	peak := 0.0
	for _, v := range r.ViralLoad {
		if v > peak {
			peak = v
		}
	}
	return peak
}

// FinalViralLoad returns the last sample of the viral load series.
func (r Result) FinalViralLoad() float64 {
	if len(r.ViralLoad) == 0 {
		return 0
	}
	return r.ViralLoad[len(r.ViralLoad)-1]
}

// Validate checks the parameter subset the host model reads.
func Validate(p types.ScenarioParams) error {
	for _, name := range p.Drugs {
		if _, ok := types.LookupDrug(name); !ok {
			return fmt.Errorf("unknown drug %q: known drugs are %v", name, types.DrugNames())
		}
	}
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"drug pressure", p.DrugPressure},
		{"adherence", p.Adherence},
		{"host activity", p.HostActivity},
		{"gene effect", p.GeneEffect},
	} {
		if f.value < 0 || f.value > 1 {
			return fmt.Errorf("%s %g out of range [0, 1]", f.name, f.value)
		}
	}
	if p.DurationDays < 1 {
		return fmt.Errorf("duration %d days: must be at least 1", p.DurationDays)
	}
	return nil
}

// Simulate integrates the target-cell model over p.DurationDays and returns
// samples evenly spaced series points.
func Simulate(p types.ScenarioParams, samples int) (Result, error) {
	if err := Validate(p); err != nil {
		return Result{}, err
	}
	if samples < 2 {
		samples = DefaultSamples
	}

	drugEff := p.DrugPressure * p.Adherence
	geneSup := 0.0
	if p.GeneEditing {
		geneSup = p.GeneEffect
	}
	betaEff := betaBase * (1 - drugBetaMax*drugEff) * (1 - geneBetaMax*geneSup)

	// Host-protein suppression S = alpha*H reduces virion production;
	// comorbidities push it back up.
	burst := burstBase * (1 - hostAlpha*p.HostActivity)
	if p.Diabetes {
		burst *= diabetesBoost
	}
	if p.Hypertension {
		burst *= hypertensionBoost
	}
	if p.Obesity {
		burst *= obesityBoost
	}

	res := Result{
		Time:                 make([]float64, samples),
		TargetCells:          make([]float64, samples),
		InfectedCells:        make([]float64, samples),
		ViralLoad:            make([]float64, samples),
		EffectiveInfectivity: betaEff,
		EffectiveBurst:       burst,
	}

	state := [3]float64{initialT, infectedT0 * initialT, initialV}
	record := func(i int, t float64) {
		res.Time[i] = t
		res.TargetCells[i] = state[0]
		res.InfectedCells[i] = state[1]
		res.ViralLoad[i] = state[2]
	}
	record(0, 0)

	interval := float64(p.DurationDays) / float64(samples-1)

	deriv := func(s [3]float64) [3]float64 {
		T, I, V := s[0], s[1], s[2]
		return [3]float64{
			lambdaT - deathT*T - betaEff*V*T,
			betaEff*V*T - deltaI*I,
			burst*I - clearance*V,
		}
	}

	h := maxStep
	for i := 1; i < samples; i++ {
		state, h = advance(state, interval, h, deriv)
		record(i, float64(i)*interval)
	}

	return res, nil
}

// advance integrates the state across one output interval with adaptive
// step-doubling RK4, and returns the final state plus the last accepted
// step as the starting step for the next interval.
func advance(state [3]float64, span, h float64, deriv func([3]float64) [3]float64) ([3]float64, float64) {
	remaining := span
	for remaining > 0 {
		if h > remaining {
			h = remaining
		}

		full := rk4Step(state, h, deriv)
		half := rk4Step(state, h/2, deriv)
		half = rk4Step(half, h/2, deriv)

		ratio := errorRatio(full, half)
		if ratio > 1 && h > minStep {
			h = math.Max(h/2, minStep)
			continue
		}

		// Populations cannot go negative.
		for k := range half {
			if half[k] < 0 {
				half[k] = 0
			}
		}
		state = half
		remaining -= h

		if ratio < 0.25 && h < maxStep {
			h = math.Min(h*2, maxStep)
		}
	}
	return state, h
}

// errorRatio compares one full step against two half steps and returns
// the largest component error relative to its tolerance. Non-finite
// values count as infinitely wrong so the step shrinks instead of
// propagating overflow.
func errorRatio(full, half [3]float64) float64 {
	ratio := 0.0
	for i := range full {
		if math.IsNaN(full[i]) || math.IsInf(full[i], 0) ||
			math.IsNaN(half[i]) || math.IsInf(half[i], 0) {
			return math.Inf(1)
		}
		tol := absTol + relTol*math.Abs(half[i])
		// Step doubling overestimates the O(h^5) local error by 15x.
		if e := math.Abs(full[i]-half[i]) / 15 / tol; e > ratio {
			ratio = e
		}
	}
	return ratio
}

// rk4Step advances the state by one classical Runge-Kutta step of size h.
func rk4Step(s [3]float64, h float64, deriv func([3]float64) [3]float64) [3]float64 {
	k1 := deriv(s)
	k2 := deriv(add(s, scale(k1, h/2)))
	k3 := deriv(add(s, scale(k2, h/2)))
	k4 := deriv(add(s, scale(k3, h)))

	var out [3]float64
	for i := range out {
		out[i] = s[i] + h/6*(k1[i]+2*k2[i]+2*k3[i]+k4[i])
	}
	return out
}

func add(a, b [3]float64) [3]float64 {
	return [3]float64{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

func scale(a [3]float64, f float64) [3]float64 {
	return [3]float64{a[0] * f, a[1] * f, a[2] * f}
}
