package hrv

import (
	"errors"
	"testing"
)

func validSnapshot() Snapshot {
	return Snapshot{
		MeanRR: 850, SDNN: 50, RMSSD: 45, PNN50: 25, MeanHR: 70,
		VLFPower: 400, LFPower: 600, HFPower: 500, LFHFRatio: 1.2, TotalPower: 1500,
		SD1: 32, SD2: 60,
	}
}

func TestSnapshotValidateBaseline(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Snapshot)
		wantOK bool
	}{
		{"valid", func(s *Snapshot) {}, true},
		{"zero-rmssd", func(s *Snapshot) { s.RMSSD = 0 }, false},
		{"negative-rmssd", func(s *Snapshot) { s.RMSSD = -3 }, false},
		{"zero-sdnn", func(s *Snapshot) { s.SDNN = 0 }, false},
		{"zero-total-power", func(s *Snapshot) { s.TotalPower = 0 }, false},
		// zero LF/HF is tolerated; the reactivity math floors the denominator
		{"zero-lfhf", func(s *Snapshot) { s.LFHFRatio = 0 }, true},
		{"zero-hf-power", func(s *Snapshot) { s.HFPower = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSnapshot()
			tt.mutate(&s)
			err := s.ValidateBaseline()
			if tt.wantOK && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.wantOK && !errors.Is(err, ErrInvalidMeasurement) {
				t.Errorf("got %v, want ErrInvalidMeasurement", err)
			}
		})
	}
}

func TestAssessmentValidate(t *testing.T) {
	valid := Assessment{EyeContact: 3, VoiceProsody: 4, FacialExpressivity: 2, SocialEngagement: 5, BodyRelaxation: 1}
	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Assessment)
	}{
		{"zero-score", func(a *Assessment) { a.EyeContact = 0 }},
		{"score-above-scale", func(a *Assessment) { a.SocialEngagement = 6 }},
		{"negative-score", func(a *Assessment) { a.BodyRelaxation = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := valid
			tt.mutate(&a)
			if err := a.Validate(); !errors.Is(err, ErrInvalidMeasurement) {
				t.Errorf("got %v, want ErrInvalidMeasurement", err)
			}
		})
	}
}

func TestAssessmentAverage(t *testing.T) {
	a := Assessment{EyeContact: 1, VoiceProsody: 2, FacialExpressivity: 3, SocialEngagement: 4, BodyRelaxation: 5}
	if got := a.Average(); got != 3.0 {
		t.Errorf("got %v, want 3.0", got)
	}
}

func TestThreePhaseValidate(t *testing.T) {
	valid := ThreePhase{
		Baseline:            validSnapshot(),
		Stress:              validSnapshot(),
		Recovery:            validSnapshot(),
		RecoveryTimeSeconds: 180,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("zero-recovery-time", func(t *testing.T) {
		m := valid
		m.RecoveryTimeSeconds = 0
		if err := m.Validate(); !errors.Is(err, ErrInvalidMeasurement) {
			t.Errorf("got %v, want ErrInvalidMeasurement", err)
		}
	})

	t.Run("bad-baseline", func(t *testing.T) {
		m := valid
		m.Baseline.SDNN = 0
		if err := m.Validate(); !errors.Is(err, ErrInvalidMeasurement) {
			t.Errorf("got %v, want ErrInvalidMeasurement", err)
		}
	})
}

func TestMultiTriggerValidate(t *testing.T) {
	t.Run("empty-test-set-valid", func(t *testing.T) {
		m := MultiTrigger{Baseline: validSnapshot()}
		if err := m.Validate(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("known-categories-valid", func(t *testing.T) {
		m := MultiTrigger{
			Baseline: validSnapshot(),
			Tests: []TriggerTest{
				{Trigger: TriggerAttachment, Stress: validSnapshot()},
				{Trigger: TriggerBody, Stress: validSnapshot()},
			},
		}
		if err := m.Validate(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("unknown-category-rejected", func(t *testing.T) {
		m := MultiTrigger{
			Baseline: validSnapshot(),
			Tests:    []TriggerTest{{Trigger: "Tz", Stress: validSnapshot()}},
		}
		if err := m.Validate(); !errors.Is(err, ErrInvalidMeasurement) {
			t.Errorf("got %v, want ErrInvalidMeasurement", err)
		}
	})

	t.Run("undetermined-category-rejected", func(t *testing.T) {
		m := MultiTrigger{
			Baseline: validSnapshot(),
			Tests:    []TriggerTest{{Trigger: TriggerUnknown, Stress: validSnapshot()}},
		}
		if err := m.Validate(); !errors.Is(err, ErrInvalidMeasurement) {
			t.Errorf("got %v, want ErrInvalidMeasurement", err)
		}
	})
}

func TestTriggerCategoryKnown(t *testing.T) {
	known := []TriggerCategory{TriggerAttachment, TriggerControl, TriggerSafety, TriggerIdentity, TriggerBody}
	for _, c := range known {
		if !c.Known() {
			t.Errorf("%s: Known() = false", c)
		}
	}
	for _, c := range []TriggerCategory{TriggerUnknown, "", "Tz"} {
		if c.Known() {
			t.Errorf("%q: Known() = true", c)
		}
	}
}
