package hrv

import (
	"errors"
	"fmt"
)

// ErrInvalidMeasurement marks inputs the engine refuses to classify: baseline
// denominators at or below zero, behavioral scores outside 1-5, missing
// snapshots. Wrapped errors carry the specific field.
var ErrInvalidMeasurement = errors.New("invalid measurement")

// #region snapshot-validation

// ValidateBaseline checks that the fields used as denominators downstream are
// strictly positive. Zero values would propagate as Inf/NaN through the
// relative-change math, so they fail here instead.
func (s Snapshot) ValidateBaseline() error {
	if s.RMSSD <= 0 {
		return fmt.Errorf("%w: baseline rmssd must be > 0, got %v", ErrInvalidMeasurement, s.RMSSD)
	}
	if s.SDNN <= 0 {
		return fmt.Errorf("%w: baseline sdnn must be > 0, got %v", ErrInvalidMeasurement, s.SDNN)
	}
	if s.TotalPower <= 0 {
		return fmt.Errorf("%w: baseline total power must be > 0, got %v", ErrInvalidMeasurement, s.TotalPower)
	}
	return nil
}

// #endregion snapshot-validation

// #region assessment-validation

// Validate checks that every ordinal score lies in the 1-5 scale.
func (a Assessment) Validate() error {
	scores := []struct {
		name  string
		value int
	}{
		{"eye_contact", a.EyeContact},
		{"voice_prosody", a.VoiceProsody},
		{"facial_expressivity", a.FacialExpressivity},
		{"social_engagement", a.SocialEngagement},
		{"body_relaxation", a.BodyRelaxation},
	}
	for _, s := range scores {
		if s.value < 1 || s.value > 5 {
			return fmt.Errorf("%w: %s score %d outside 1-5", ErrInvalidMeasurement, s.name, s.value)
		}
	}
	return nil
}

// #endregion assessment-validation

// #region measurement-validation

// Validate checks the three-phase invariants: positive baseline denominators
// and a positive recovery duration.
func (m ThreePhase) Validate() error {
	if err := m.Baseline.ValidateBaseline(); err != nil {
		return err
	}
	if m.RecoveryTimeSeconds <= 0 {
		return fmt.Errorf("%w: recovery time must be > 0 seconds, got %v",
			ErrInvalidMeasurement, m.RecoveryTimeSeconds)
	}
	return nil
}

// Validate checks the multi-trigger invariants. An empty test set is valid;
// tests that are present must carry a known trigger category.
func (m MultiTrigger) Validate() error {
	if err := m.Baseline.ValidateBaseline(); err != nil {
		return err
	}
	for i, t := range m.Tests {
		if !t.Trigger.Known() {
			return fmt.Errorf("%w: trigger test %d has unknown category %q",
				ErrInvalidMeasurement, i, t.Trigger)
		}
	}
	return nil
}

// #endregion measurement-validation
