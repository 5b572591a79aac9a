package profile

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// ErrConfiguration marks threshold sets the engine refuses to run with:
// out-of-order pairs, non-positive values, unrecognized file keys.
var ErrConfiguration = errors.New("invalid threshold configuration")

// #region thresholds

// Thresholds holds every tunable cut-off of the classification rules.
// An Engine copies its Thresholds at construction; the copy is immutable for
// the engine's lifetime so concurrent classifications stay reproducible.
//
// Defaults follow Kubios normative data; see DefaultThresholds.
type Thresholds struct {
	// RMSSD (ms) - primary parasympathetic marker
	RMSSDHigh float64 `toml:"rmssd_high"`
	RMSSDLow  float64 `toml:"rmssd_low"`

	// SDNN (ms) - overall variability
	SDNNHigh    float64 `toml:"sdnn_high"`
	SDNNLow     float64 `toml:"sdnn_low"`
	SDNNVeryLow float64 `toml:"sdnn_very_low"` // shutdown territory

	// LF/HF ratio - sympathovagal balance proxy
	LFHFHigh float64 `toml:"lfhf_high"`
	LFHFLow  float64 `toml:"lfhf_low"`

	// HF power (ms^2) - vagal activity
	HFHigh float64 `toml:"hf_high"`
	HFLow  float64 `toml:"hf_low"`

	// Total spectral power (ms^2)
	TotalPowerVeryLow float64 `toml:"total_power_very_low"`

	// Poincare SD1 (ms) - short-term variability vote
	SD1High float64 `toml:"sd1_high"`
	SD1Low  float64 `toml:"sd1_low"`

	// Recovery speed bands (%)
	RecoveryFast float64 `toml:"recovery_fast"`
	RecoverySlow float64 `toml:"recovery_slow"`

	// Behavioral presentation average (1-5 scale)
	BehavioralHigh float64 `toml:"behavioral_high"`
	BehavioralLow  float64 `toml:"behavioral_low"`
}

// DefaultThresholds returns the documented defaults.
func DefaultThresholds() Thresholds {
	return Thresholds{
		RMSSDHigh:         42.0,
		RMSSDLow:          20.0,
		SDNNHigh:          50.0,
		SDNNLow:           30.0,
		SDNNVeryLow:       15.0,
		LFHFHigh:          2.0,
		LFHFLow:           0.5,
		HFHigh:            400.0,
		HFLow:             100.0,
		TotalPowerVeryLow: 500.0,
		SD1High:           30.0,
		SD1Low:            15.0,
		RecoveryFast:      80.0,
		RecoverySlow:      50.0,
		BehavioralHigh:    4.0,
		BehavioralLow:     2.5,
	}
}

// #endregion thresholds

// #region validation

// Validate checks ordering and positivity of every threshold pair.
// Run once at engine construction.
func (t Thresholds) Validate() error {
	pairs := []struct {
		name      string
		low, high float64
	}{
		{"rmssd", t.RMSSDLow, t.RMSSDHigh},
		{"sdnn", t.SDNNLow, t.SDNNHigh},
		{"lfhf", t.LFHFLow, t.LFHFHigh},
		{"hf", t.HFLow, t.HFHigh},
		{"sd1", t.SD1Low, t.SD1High},
		{"recovery", t.RecoverySlow, t.RecoveryFast},
		{"behavioral", t.BehavioralLow, t.BehavioralHigh},
	}
	for _, p := range pairs {
		if p.low <= 0 {
			return fmt.Errorf("%w: %s_low must be > 0, got %v", ErrConfiguration, p.name, p.low)
		}
		if p.low >= p.high {
			return fmt.Errorf("%w: %s_low %v must be below %s_high %v",
				ErrConfiguration, p.name, p.low, p.name, p.high)
		}
	}
	if t.SDNNVeryLow <= 0 || t.SDNNVeryLow > t.SDNNLow {
		return fmt.Errorf("%w: sdnn_very_low %v must be in (0, sdnn_low %v]",
			ErrConfiguration, t.SDNNVeryLow, t.SDNNLow)
	}
	if t.TotalPowerVeryLow <= 0 {
		return fmt.Errorf("%w: total_power_very_low must be > 0, got %v",
			ErrConfiguration, t.TotalPowerVeryLow)
	}
	return nil
}

// #endregion validation

// #region toml-loading

// LoadThresholds reads a TOML override file on top of the defaults.
// Unrecognized keys are rejected, not ignored: a misspelled key silently
// falling back to a default would change classifications.
func LoadThresholds(path string) (Thresholds, error) {
	t := DefaultThresholds()
	md, err := toml.DecodeFile(path, &t)
	if err != nil {
		return Thresholds{}, fmt.Errorf("%w: parse %s: %v", ErrConfiguration, path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Thresholds{}, fmt.Errorf("%w: unrecognized keys in %s: %s",
			ErrConfiguration, path, strings.Join(keys, ", "))
	}
	if err := t.Validate(); err != nil {
		return Thresholds{}, err
	}
	return t, nil
}

// #endregion toml-loading
