package profile

import (
	"math"

	"github.com/polyvagal-lab/profiler/internal/hrv"
)

// #region dorsal-floors

// Dorsal-pattern floors. These are fixed by the dominance property of the
// pre-check (SDNN and total power at very-low plus a flat Poincare plot must
// classify Dorsal), so they are constants rather than Thresholds fields.
const (
	dorsalSD1Floor       = 10.0
	dorsalSD2Floor       = 20.0
	dorsalEntropyCeiling = 1.0
	dorsalMarkerCutoff   = 3
)

// #endregion dorsal-floors

// #region physiological

// PhysiologicalState classifies a single resting snapshot into one of the
// three autonomic states.
//
// The dorsal pre-check runs first and short-circuits the ventral/sympathetic
// vote: a flat low-power profile can superficially resemble high
// parasympathetic tone and must not score as Ventral.
func (e *Engine) PhysiologicalState(s hrv.Snapshot) State {
	if e.isDorsalPattern(s) {
		return Dorsal
	}

	ventral, sympathetic := 0, 0

	// RMSSD vote. The middle band leans Ventral as a mild tonic-tone prior.
	switch {
	case s.RMSSD >= e.cfg.RMSSDHigh:
		ventral += 2
	case s.RMSSD <= e.cfg.RMSSDLow:
		sympathetic += 2
	default:
		ventral++
	}

	// LF/HF vote. The middle band abstains.
	switch {
	case s.LFHFRatio >= e.cfg.LFHFHigh:
		sympathetic += 2
	case s.LFHFRatio <= e.cfg.LFHFLow:
		ventral += 2
	}

	// HF power vote
	switch {
	case s.HFPower >= e.cfg.HFHigh:
		ventral++
	case s.HFPower <= e.cfg.HFLow:
		sympathetic++
	}

	// SD1 vote (short-term variability, parasympathetically driven)
	switch {
	case s.SD1 >= e.cfg.SD1High:
		ventral++
	case s.SD1 <= e.cfg.SD1Low:
		sympathetic++
	}

	// Ties resolve to Sympathetic: an unresolved-activation read, not
	// confirmed calm.
	if ventral > sympathetic {
		return Ventral
	}
	return Sympathetic
}

// isDorsalPattern accumulates independent shutdown markers and fires at the
// cutoff. Each marker is weighted by how specific it is to a flat rhythm.
func (e *Engine) isDorsalPattern(s hrv.Snapshot) bool {
	markers := 0

	if s.SDNN <= e.cfg.SDNNVeryLow {
		markers += 2
	}
	if s.TotalPower <= e.cfg.TotalPowerVeryLow {
		markers += 2
	}
	// Flat Poincare plot: both axes collapsed at once
	if s.SD1 <= dorsalSD1Floor && s.SD2 <= dorsalSD2Floor {
		markers += 2
	}
	if s.SampleEntropy != nil && *s.SampleEntropy <= dorsalEntropyCeiling {
		markers++
	}
	// Paradox marker: RMSSD not suppressed while SDNN is very low
	if s.RMSSD > e.cfg.RMSSDLow && s.SDNN <= e.cfg.SDNNVeryLow {
		markers++
	}

	return markers >= dorsalMarkerCutoff
}

// #endregion physiological

// #region presentation

// Presentation classifies the outward behavioral presentation from the five
// ordinal scores. In-between averages read as Sympathetic: absence of a
// distinct calm signature is treated as unresolved activation, not neutrality.
func (e *Engine) Presentation(a hrv.Assessment) State {
	avg := a.Average()

	switch {
	case avg >= e.cfg.BehavioralHigh:
		return Ventral
	case avg <= e.cfg.BehavioralLow:
		// Self-reported shutdown overrides the raw average in the low band.
		if a.ReportsNumbness || a.ReportsDissociation {
			return Dorsal
		}
		return Sympathetic
	default:
		return Sympathetic
	}
}

// #endregion presentation

// #region stress-response

// StressResponse classifies the reaction to stress from the relative change
// between the baseline and stress snapshots.
//
// The rules are evaluated in a fixed order and the first match wins:
//  1. minimal reactivity in both RMSSD and SDNN -> Dorsal (shutdown signature)
//  2. sharp RMSSD drop with a sympathetic LF/HF shift -> Sympathetic
//  3. severe collapse of total power and SDNN -> Dorsal
//  4. moderate RMSSD dampening -> Ventral (adaptive range)
//  5. default -> Sympathetic
//
// The order is part of the contract: collapse and minimal-reactivity
// detection take precedence over the adaptive-range read.
func (e *Engine) StressResponse(baseline, stress hrv.Snapshot) (State, error) {
	if err := baseline.ValidateBaseline(); err != nil {
		return "", err
	}

	rmssdChange := (stress.RMSSD - baseline.RMSSD) / baseline.RMSSD * 100
	sdnnChange := (stress.SDNN - baseline.SDNN) / baseline.SDNN * 100
	tpChange := (stress.TotalPower - baseline.TotalPower) / baseline.TotalPower * 100
	lfhfChange := stress.LFHFRatio - baseline.LFHFRatio

	if math.Abs(rmssdChange) < 10 && math.Abs(sdnnChange) < 10 {
		return Dorsal, nil
	}
	if rmssdChange < -30 && lfhfChange > 0.5 {
		return Sympathetic, nil
	}
	if tpChange < -50 && sdnnChange < -40 {
		return Dorsal, nil
	}
	if rmssdChange >= -30 && rmssdChange <= -10 {
		return Ventral, nil
	}
	return Sympathetic, nil
}

// #endregion stress-response
