package profile

import (
	"sort"

	"github.com/polyvagal-lab/profiler/internal/hrv"
)

// #region constants

// secondaryDominanceRatio is the proportional-dominance test for a secondary
// trigger: it qualifies only at >= 60% of the primary's reactivity. A fixed
// gap would flag noise-level secondaries next to a strong primary.
const secondaryDominanceRatio = 0.6

// Severity bands for trigger comparison reports.
const (
	severityHighCutoff   = 50.0
	severityMediumCutoff = 25.0
)

// #endregion constants

// #region scored-test

// scoredTest keeps the original test alongside its computed scores, so the
// assembler can pair the strongest stress snapshot with the final recovery.
type scoredTest struct {
	hrv.TriggerTest
	Reactivity float64
	Response   State
}

// scoreTests computes reactivity and response state for every trigger test
// against the shared baseline and ranks them by descending reactivity.
// Ties keep the original test order.
func (e *Engine) scoreTests(m hrv.MultiTrigger) ([]scoredTest, error) {
	scored := make([]scoredTest, 0, len(m.Tests))
	for _, test := range m.Tests {
		reactivity, err := e.ReactivityIndex(m.Baseline, test.Stress)
		if err != nil {
			return nil, err
		}
		response, err := e.StressResponse(m.Baseline, test.Stress)
		if err != nil {
			return nil, err
		}
		scored = append(scored, scoredTest{
			TriggerTest: test,
			Reactivity:  reactivity,
			Response:    response,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Reactivity > scored[j].Reactivity
	})
	return scored, nil
}

// #endregion scored-test

// #region score-triggers

// ScoreTriggers runs the trigger sensitivity analysis: one reactivity score
// and response state per tested trigger, ranked descending by reactivity.
func (e *Engine) ScoreTriggers(m hrv.MultiTrigger) ([]TriggerScore, error) {
	scored, err := e.scoreTests(m)
	if err != nil {
		return nil, err
	}
	ranked := make([]TriggerScore, len(scored))
	for i, s := range scored {
		ranked[i] = TriggerScore{
			Trigger:    s.Trigger,
			Reactivity: s.Reactivity,
			Response:   s.Response,
		}
	}
	return ranked, nil
}

// secondaryTrigger picks the highest-ranked trigger after the primary that
// passes the proportional-dominance test. Empty when none qualifies.
func secondaryTrigger(ranked []scoredTest) hrv.TriggerCategory {
	if len(ranked) < 2 {
		return ""
	}
	primary := ranked[0]
	for _, candidate := range ranked[1:] {
		if candidate.Trigger == primary.Trigger {
			continue
		}
		if candidate.Reactivity >= primary.Reactivity*secondaryDominanceRatio {
			return candidate.Trigger
		}
		break // ranked descending: later entries are weaker
	}
	return ""
}

// #endregion score-triggers

// #region comparison

// Severity bands a trigger reaction for comparison reports.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// severityFor bands a reactivity score.
func severityFor(reactivity float64) Severity {
	switch {
	case reactivity >= severityHighCutoff:
		return SeverityHigh
	case reactivity >= severityMediumCutoff:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// TriggerComparison is the detailed per-trigger breakdown produced by
// CompareTriggerResponses.
type TriggerComparison struct {
	Reactivity              float64
	Response                State
	RMSSDChangePercent      float64
	LFHFChange              float64
	TotalPowerChangePercent float64
	Severity                Severity
}

// CompareTriggerResponses analyzes each trigger's stress snapshot against the
// baseline, returning the detailed change breakdown per category.
func (e *Engine) CompareTriggerResponses(
	baseline hrv.Snapshot,
	stress map[hrv.TriggerCategory]hrv.Snapshot,
) (map[hrv.TriggerCategory]TriggerComparison, error) {
	if err := baseline.ValidateBaseline(); err != nil {
		return nil, err
	}

	results := make(map[hrv.TriggerCategory]TriggerComparison, len(stress))
	for trigger, snap := range stress {
		reactivity, err := e.ReactivityIndex(baseline, snap)
		if err != nil {
			return nil, err
		}
		response, err := e.StressResponse(baseline, snap)
		if err != nil {
			return nil, err
		}
		results[trigger] = TriggerComparison{
			Reactivity:              reactivity,
			Response:                response,
			RMSSDChangePercent:      (snap.RMSSD - baseline.RMSSD) / baseline.RMSSD * 100,
			LFHFChange:              snap.LFHFRatio - baseline.LFHFRatio,
			TotalPowerChangePercent: (snap.TotalPower - baseline.TotalPower) / baseline.TotalPower * 100,
			Severity:                severityFor(reactivity),
		}
	}
	return results, nil
}

// #endregion comparison
