package replay

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/polyvagal-lab/profiler/internal/hrv"
	"github.com/polyvagal-lab/profiler/internal/profile"
)

// #region fixture-types

// Fixture is the top-level JSON structure for a replay fixture: a threshold
// configuration plus recorded cases with expected classifications.
type Fixture struct {
	Description string             `json:"description"`
	Thresholds  *FixtureThresholds `json:"thresholds,omitempty"` // nil = defaults
	Cases       []Case             `json:"cases"`
}

// FixtureThresholds mirrors profile.Thresholds with JSON tags.
type FixtureThresholds struct {
	RMSSDHigh         float64 `json:"rmssd_high"`
	RMSSDLow          float64 `json:"rmssd_low"`
	SDNNHigh          float64 `json:"sdnn_high"`
	SDNNLow           float64 `json:"sdnn_low"`
	SDNNVeryLow       float64 `json:"sdnn_very_low"`
	LFHFHigh          float64 `json:"lfhf_high"`
	LFHFLow           float64 `json:"lfhf_low"`
	HFHigh            float64 `json:"hf_high"`
	HFLow             float64 `json:"hf_low"`
	TotalPowerVeryLow float64 `json:"total_power_very_low"`
	SD1High           float64 `json:"sd1_high"`
	SD1Low            float64 `json:"sd1_low"`
	RecoveryFast      float64 `json:"recovery_fast"`
	RecoverySlow      float64 `json:"recovery_slow"`
	BehavioralHigh    float64 `json:"behavioral_high"`
	BehavioralLow     float64 `json:"behavioral_low"`
}

// Case is one recorded classification with its expected outcome. Exactly one
// of ThreePhase or MultiTrigger must be set.
type Case struct {
	Name         string               `json:"name"`
	ThreePhase   *FixtureThreePhase   `json:"three_phase,omitempty"`
	MultiTrigger *FixtureMultiTrigger `json:"multi_trigger,omitempty"`
	Behavioral   FixtureBehavioral    `json:"behavioral"`
	Expect       Expectation          `json:"expect"`
}

// FixtureSnapshot mirrors hrv.Snapshot with JSON tags.
type FixtureSnapshot struct {
	MeanRR        float64  `json:"mean_rr"`
	SDNN          float64  `json:"sdnn"`
	RMSSD         float64  `json:"rmssd"`
	PNN50         float64  `json:"pnn50"`
	MeanHR        float64  `json:"mean_hr"`
	VLFPower      float64  `json:"vlf_power"`
	LFPower       float64  `json:"lf_power"`
	HFPower       float64  `json:"hf_power"`
	LFHFRatio     float64  `json:"lf_hf_ratio"`
	TotalPower    float64  `json:"total_power"`
	SD1           float64  `json:"sd1"`
	SD2           float64  `json:"sd2"`
	SampleEntropy *float64 `json:"sample_entropy,omitempty"`
}

// FixtureThreePhase mirrors hrv.ThreePhase. Snapshots are pointers so that a
// missing phase is detectable and rejected instead of decoding as zeros.
type FixtureThreePhase struct {
	Baseline            *FixtureSnapshot `json:"baseline"`
	Stress              *FixtureSnapshot `json:"stress"`
	Recovery            *FixtureSnapshot `json:"recovery"`
	RecoveryTimeSeconds float64          `json:"recovery_time_seconds"`
	Trigger             string           `json:"trigger,omitempty"`
}

// FixtureTriggerTest mirrors hrv.TriggerTest.
type FixtureTriggerTest struct {
	Trigger string           `json:"trigger"`
	Stress  *FixtureSnapshot `json:"stress"`
}

// FixtureMultiTrigger mirrors hrv.MultiTrigger.
type FixtureMultiTrigger struct {
	Baseline      *FixtureSnapshot     `json:"baseline"`
	Tests         []FixtureTriggerTest `json:"tests"`
	FinalRecovery *FixtureSnapshot     `json:"final_recovery,omitempty"`
}

// FixtureBehavioral mirrors hrv.Assessment with JSON tags.
type FixtureBehavioral struct {
	EyeContact          int  `json:"eye_contact"`
	VoiceProsody        int  `json:"voice_prosody"`
	FacialExpressivity  int  `json:"facial_expressivity"`
	SocialEngagement    int  `json:"social_engagement"`
	BodyRelaxation      int  `json:"body_relaxation"`
	ReportsDissociation bool `json:"reports_dissociation"`
	ReportsAnxiety      bool `json:"reports_anxiety"`
	ReportsNumbness     bool `json:"reports_numbness"`
}

// Expectation captures what the recorded case is expected to produce.
// Optional fields are only checked when present.
type Expectation struct {
	Formula        string   `json:"formula"`
	FullFormula    string   `json:"full_formula,omitempty"`
	Physiological  string   `json:"physiological,omitempty"`
	Presentation   string   `json:"presentation,omitempty"`
	StressResponse string   `json:"stress_response,omitempty"`
	IsPseudo       *bool    `json:"is_pseudo,omitempty"`
	Coherence      *float64 `json:"coherence,omitempty"`
	RecoveryMin    *float64 `json:"recovery_min,omitempty"`
	RecoveryMax    *float64 `json:"recovery_max,omitempty"`
}

// #endregion fixture-types

// #region fixture-loader

// LoadFixture reads and parses a JSON fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	return &f, nil
}

// #endregion fixture-loader

// #region conversions

// ToSnapshot converts a fixture snapshot to the domain type.
func (s *FixtureSnapshot) ToSnapshot() hrv.Snapshot {
	return hrv.Snapshot{
		MeanRR:        s.MeanRR,
		SDNN:          s.SDNN,
		RMSSD:         s.RMSSD,
		PNN50:         s.PNN50,
		MeanHR:        s.MeanHR,
		VLFPower:      s.VLFPower,
		LFPower:       s.LFPower,
		HFPower:       s.HFPower,
		LFHFRatio:     s.LFHFRatio,
		TotalPower:    s.TotalPower,
		SD1:           s.SD1,
		SD2:           s.SD2,
		SampleEntropy: s.SampleEntropy,
	}
}

// ToMeasurement converts a fixture three-phase block, rejecting missing
// snapshots.
func (f *FixtureThreePhase) ToMeasurement() (hrv.ThreePhase, error) {
	if f.Baseline == nil || f.Stress == nil || f.Recovery == nil {
		return hrv.ThreePhase{}, fmt.Errorf("%w: three-phase measurement requires baseline, stress and recovery snapshots",
			hrv.ErrInvalidMeasurement)
	}
	return hrv.ThreePhase{
		Baseline:            f.Baseline.ToSnapshot(),
		Stress:              f.Stress.ToSnapshot(),
		Recovery:            f.Recovery.ToSnapshot(),
		RecoveryTimeSeconds: f.RecoveryTimeSeconds,
		Trigger:             hrv.TriggerCategory(f.Trigger),
	}, nil
}

// ToMeasurement converts a fixture multi-trigger block, rejecting missing
// snapshots.
func (f *FixtureMultiTrigger) ToMeasurement() (hrv.MultiTrigger, error) {
	if f.Baseline == nil {
		return hrv.MultiTrigger{}, fmt.Errorf("%w: multi-trigger measurement requires a baseline snapshot",
			hrv.ErrInvalidMeasurement)
	}
	m := hrv.MultiTrigger{Baseline: f.Baseline.ToSnapshot()}
	for i, t := range f.Tests {
		if t.Stress == nil {
			return hrv.MultiTrigger{}, fmt.Errorf("%w: trigger test %d is missing its stress snapshot",
				hrv.ErrInvalidMeasurement, i)
		}
		m.Tests = append(m.Tests, hrv.TriggerTest{
			Trigger: hrv.TriggerCategory(t.Trigger),
			Stress:  t.Stress.ToSnapshot(),
		})
	}
	if f.FinalRecovery != nil {
		snap := f.FinalRecovery.ToSnapshot()
		m.FinalRecovery = &snap
	}
	return m, nil
}

// ToAssessment converts a fixture behavioral block to the domain type.
func (b FixtureBehavioral) ToAssessment() hrv.Assessment {
	return hrv.Assessment{
		EyeContact:          b.EyeContact,
		VoiceProsody:        b.VoiceProsody,
		FacialExpressivity:  b.FacialExpressivity,
		SocialEngagement:    b.SocialEngagement,
		BodyRelaxation:      b.BodyRelaxation,
		ReportsDissociation: b.ReportsDissociation,
		ReportsAnxiety:      b.ReportsAnxiety,
		ReportsNumbness:     b.ReportsNumbness,
	}
}

// ToThresholds converts fixture thresholds to the domain configuration.
func (t *FixtureThresholds) ToThresholds() profile.Thresholds {
	return profile.Thresholds{
		RMSSDHigh:         t.RMSSDHigh,
		RMSSDLow:          t.RMSSDLow,
		SDNNHigh:          t.SDNNHigh,
		SDNNLow:           t.SDNNLow,
		SDNNVeryLow:       t.SDNNVeryLow,
		LFHFHigh:          t.LFHFHigh,
		LFHFLow:           t.LFHFLow,
		HFHigh:            t.HFHigh,
		HFLow:             t.HFLow,
		TotalPowerVeryLow: t.TotalPowerVeryLow,
		SD1High:           t.SD1High,
		SD1Low:            t.SD1Low,
		RecoveryFast:      t.RecoveryFast,
		RecoverySlow:      t.RecoverySlow,
		BehavioralHigh:    t.BehavioralHigh,
		BehavioralLow:     t.BehavioralLow,
	}
}

// #endregion conversions
