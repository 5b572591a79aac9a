package replay

import (
	"fmt"

	"github.com/polyvagal-lab/profiler/internal/profile"
)

// #region result-types

// CaseResult is the outcome of replaying one recorded case.
type CaseResult struct {
	Name       string
	Passed     bool
	Formula    string          // formula actually produced
	Profile    profile.Profile // full classification output
	Mismatches []string        // one entry per failed expectation
	Err        error           // non-nil when classification itself failed
}

// Summary aggregates a fixture run.
type Summary struct {
	Total   int
	Passed  int
	Results []CaseResult
}

// #endregion result-types

// #region harness

// Run replays every case of a fixture through a fresh engine and checks each
// expectation. Classification errors and malformed cases fail the case but
// not the run; bad fixture thresholds fail the whole run.
func Run(f *Fixture) (Summary, error) {
	engine, err := buildEngine(f)
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{Total: len(f.Cases)}
	for _, c := range f.Cases {
		result := runCase(engine, c)
		if result.Passed {
			summary.Passed++
		}
		summary.Results = append(summary.Results, result)
	}
	return summary, nil
}

func buildEngine(f *Fixture) (*profile.Engine, error) {
	if f.Thresholds == nil {
		return profile.NewDefault(), nil
	}
	engine, err := profile.New(f.Thresholds.ToThresholds())
	if err != nil {
		return nil, fmt.Errorf("fixture thresholds: %w", err)
	}
	return engine, nil
}

func runCase(engine *profile.Engine, c Case) CaseResult {
	result := CaseResult{Name: c.Name}

	p, err := classifyCase(engine, c)
	if err != nil {
		result.Err = err
		result.Mismatches = []string{fmt.Sprintf("classification failed: %v", err)}
		return result
	}

	result.Profile = p
	result.Formula = p.Formula()
	result.Mismatches = checkExpectations(c.Expect, p)
	result.Passed = len(result.Mismatches) == 0
	return result
}

func classifyCase(engine *profile.Engine, c Case) (profile.Profile, error) {
	switch {
	case c.ThreePhase != nil && c.MultiTrigger != nil:
		return profile.Profile{}, fmt.Errorf("case %q sets both three_phase and multi_trigger", c.Name)
	case c.ThreePhase != nil:
		m, err := c.ThreePhase.ToMeasurement()
		if err != nil {
			return profile.Profile{}, err
		}
		return engine.Classify(m, c.Behavioral.ToAssessment())
	case c.MultiTrigger != nil:
		m, err := c.MultiTrigger.ToMeasurement()
		if err != nil {
			return profile.Profile{}, err
		}
		return engine.ClassifyWithTriggers(m, c.Behavioral.ToAssessment())
	default:
		return profile.Profile{}, fmt.Errorf("case %q has no measurement", c.Name)
	}
}

// #endregion harness

// #region expectations

func checkExpectations(want Expectation, got profile.Profile) []string {
	var mismatches []string

	if want.Formula != "" && got.Formula() != want.Formula {
		mismatches = append(mismatches, fmt.Sprintf("formula: got %q, want %q", got.Formula(), want.Formula))
	}
	if want.FullFormula != "" && got.FullFormula() != want.FullFormula {
		mismatches = append(mismatches, fmt.Sprintf("full formula: got %q, want %q", got.FullFormula(), want.FullFormula))
	}
	if want.Physiological != "" && string(got.Physiological) != want.Physiological {
		mismatches = append(mismatches, fmt.Sprintf("physiological: got %q, want %q", got.Physiological, want.Physiological))
	}
	if want.Presentation != "" && string(got.Presentation) != want.Presentation {
		mismatches = append(mismatches, fmt.Sprintf("presentation: got %q, want %q", got.Presentation, want.Presentation))
	}
	if want.StressResponse != "" && string(got.StressResponse) != want.StressResponse {
		mismatches = append(mismatches, fmt.Sprintf("stress response: got %q, want %q", got.StressResponse, want.StressResponse))
	}
	if want.IsPseudo != nil && got.IsPseudo != *want.IsPseudo {
		mismatches = append(mismatches, fmt.Sprintf("pseudo flag: got %v, want %v", got.IsPseudo, *want.IsPseudo))
	}
	if want.Coherence != nil && got.CoherenceScore != *want.Coherence {
		mismatches = append(mismatches, fmt.Sprintf("coherence: got %v, want %v", got.CoherenceScore, *want.Coherence))
	}
	if want.RecoveryMin != nil && got.RecoverySpeedPercent < *want.RecoveryMin {
		mismatches = append(mismatches, fmt.Sprintf("recovery %.1f below min %.1f", got.RecoverySpeedPercent, *want.RecoveryMin))
	}
	if want.RecoveryMax != nil && got.RecoverySpeedPercent > *want.RecoveryMax {
		mismatches = append(mismatches, fmt.Sprintf("recovery %.1f above max %.1f", got.RecoverySpeedPercent, *want.RecoveryMax))
	}

	return mismatches
}

// #endregion expectations
