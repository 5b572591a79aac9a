package replay

import (
	"errors"
	"strings"
	"testing"

	"github.com/polyvagal-lab/profiler/internal/hrv"
	"github.com/polyvagal-lab/profiler/internal/profile"
)

func fsnap(rmssd, sdnn, lfhf, hf, tp float64) *FixtureSnapshot {
	return &FixtureSnapshot{
		MeanRR: 850, SDNN: sdnn, RMSSD: rmssd, PNN50: 25, MeanHR: 70,
		VLFPower: tp * 0.3, LFPower: tp * 0.4, HFPower: hf, LFHFRatio: lfhf, TotalPower: tp,
		SD1: rmssd * 0.7, SD2: sdnn * 1.2,
	}
}

func boolPtr(b bool) *bool       { return &b }
func f64Ptr(f float64) *float64 { return &f }

func behavioralRegulated() FixtureBehavioral {
	return FixtureBehavioral{EyeContact: 4, VoiceProsody: 5, FacialExpressivity: 4, SocialEngagement: 5, BodyRelaxation: 4}
}

func ventralCase() Case {
	return Case{
		Name: "regulated-ventral",
		ThreePhase: &FixtureThreePhase{
			Baseline:            fsnap(48, 55, 1.2, 500, 1600),
			Stress:              fsnap(35, 45, 1.5, 400, 1300),
			Recovery:            fsnap(45, 52, 1.3, 470, 1500),
			RecoveryTimeSeconds: 180,
			Trigger:             "Ta",
		},
		Behavioral: behavioralRegulated(),
		Expect: Expectation{
			Formula:       "V-V-V (Ta)",
			Physiological: "V",
			IsPseudo:      boolPtr(false),
			Coherence:     f64Ptr(1.0),
			RecoveryMin:   f64Ptr(70),
			RecoveryMax:   f64Ptr(85),
		},
	}
}

func TestRun_AllPass(t *testing.T) {
	f := &Fixture{
		Description: "smoke",
		Cases:       []Case{ventralCase()},
	}

	summary, err := Run(f)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Total != 1 || summary.Passed != 1 {
		t.Fatalf("got %d/%d, want 1/1; results: %+v", summary.Passed, summary.Total, summary.Results)
	}
	r := summary.Results[0]
	if !r.Passed || r.Err != nil || len(r.Mismatches) != 0 {
		t.Errorf("case not clean: %+v", r)
	}
	if r.Formula != "V-V-V (Ta)" {
		t.Errorf("formula: got %q", r.Formula)
	}
}

func TestRun_MismatchFailsCase(t *testing.T) {
	c := ventralCase()
	c.Expect.Formula = "D-D-D"
	c.Expect.Coherence = f64Ptr(0.0)

	summary, err := Run(&Fixture{Cases: []Case{c}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Passed != 0 {
		t.Fatal("mismatching case counted as passed")
	}
	r := summary.Results[0]
	if len(r.Mismatches) != 2 {
		t.Fatalf("got %d mismatches, want 2: %v", len(r.Mismatches), r.Mismatches)
	}
	if !strings.Contains(r.Mismatches[0], "formula") {
		t.Errorf("first mismatch does not name the formula: %q", r.Mismatches[0])
	}
}

func TestRun_ClassificationErrorFailsCaseOnly(t *testing.T) {
	broken := ventralCase()
	broken.Name = "missing-stress"
	broken.ThreePhase.Stress = nil

	summary, err := Run(&Fixture{Cases: []Case{broken, ventralCase()}})
	if err != nil {
		t.Fatalf("run failed instead of the case: %v", err)
	}
	if summary.Total != 2 || summary.Passed != 1 {
		t.Fatalf("got %d/%d, want 1/2", summary.Passed, summary.Total)
	}
	r := summary.Results[0]
	if r.Err == nil || !errors.Is(r.Err, hrv.ErrInvalidMeasurement) {
		t.Errorf("case error: got %v, want ErrInvalidMeasurement", r.Err)
	}
}

func TestRun_AmbiguousCaseFailsCase(t *testing.T) {
	c := ventralCase()
	c.MultiTrigger = &FixtureMultiTrigger{Baseline: fsnap(48, 55, 1.2, 500, 1600)}

	summary, err := Run(&Fixture{Cases: []Case{c}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r := summary.Results[0]
	if r.Passed || r.Err == nil {
		t.Fatalf("ambiguous case not rejected: %+v", r)
	}
}

func TestRun_NoMeasurementFailsCase(t *testing.T) {
	c := Case{Name: "empty", Behavioral: behavioralRegulated()}

	summary, err := Run(&Fixture{Cases: []Case{c}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Results[0].Err == nil {
		t.Error("case without measurement not rejected")
	}
}

func TestRun_BadThresholdsFailRun(t *testing.T) {
	f := &Fixture{
		Thresholds: &FixtureThresholds{}, // all zeros
		Cases:      []Case{ventralCase()},
	}

	_, err := Run(f)
	if !errors.Is(err, profile.ErrConfiguration) {
		t.Errorf("got %v, want ErrConfiguration", err)
	}
}

func TestRun_FixtureThresholdsApplied(t *testing.T) {
	// Pushing rmssd_low above the case's baseline and lfhf_high below its
	// ratio flips the vote to sympathetic, so the recorded ventral
	// expectation must now fail.
	th := FixtureThresholds{
		RMSSDHigh: 60, RMSSDLow: 49,
		SDNNHigh: 50, SDNNLow: 30, SDNNVeryLow: 15,
		LFHFHigh: 1.0, LFHFLow: 0.5,
		HFHigh: 400, HFLow: 100,
		TotalPowerVeryLow: 500,
		SD1High:           30, SD1Low: 15,
		RecoveryFast: 80, RecoverySlow: 50,
		BehavioralHigh: 4.0, BehavioralLow: 2.5,
	}

	summary, err := Run(&Fixture{Thresholds: &th, Cases: []Case{ventralCase()}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r := summary.Results[0]
	if r.Passed {
		t.Fatalf("expected physiological mismatch under raised thresholds, got pass (%s)", r.Formula)
	}
	if r.Profile.Physiological != profile.Sympathetic {
		t.Errorf("physiological: got %s, want S under the raised cut-offs", r.Profile.Physiological)
	}
}

func TestRun_MultiTriggerCase(t *testing.T) {
	c := Case{
		Name: "attachment-dominant",
		MultiTrigger: &FixtureMultiTrigger{
			Baseline: &FixtureSnapshot{RMSSD: 100, SDNN: 100, LFHFRatio: 1.0, TotalPower: 1000},
			Tests: []FixtureTriggerTest{
				{Trigger: "Ta", Stress: &FixtureSnapshot{RMSSD: 20, SDNN: 20, LFHFRatio: 1.8, TotalPower: 200}},
				{Trigger: "Ts", Stress: &FixtureSnapshot{RMSSD: 50, SDNN: 50, LFHFRatio: 1.5, TotalPower: 500}},
			},
		},
		Behavioral: behavioralRegulated(),
		Expect:     Expectation{StressResponse: "S"},
	}

	summary, err := Run(&Fixture{Cases: []Case{c}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r := summary.Results[0]
	if !r.Passed {
		t.Fatalf("case failed: %v", r.Mismatches)
	}
	if r.Profile.PrimaryTrigger != hrv.TriggerAttachment {
		t.Errorf("primary: got %s, want Ta", r.Profile.PrimaryTrigger)
	}
	if r.Profile.SecondaryTrigger != hrv.TriggerSafety {
		t.Errorf("secondary: got %q, want Ts", r.Profile.SecondaryTrigger)
	}
}
