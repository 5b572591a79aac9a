package profile

import (
	"math"

	"github.com/polyvagal-lab/profiler/internal/hrv"
)

// #region recovery-speed

// recoveryNoDropEpsilon bounds the RMSSD drop below which the stress phase is
// considered to have caused no meaningful change.
const recoveryNoDropEpsilon = 0.1

// RecoverySpeed measures how far RMSSD returned toward baseline after stress,
// as a percentage clamped to [0, 150].
//
// 100 means full recovery to baseline, above 100 is rebound overshoot. When
// the stress phase produced no meaningful RMSSD drop the result is exactly
// 100: there was nothing to recover from.
func (e *Engine) RecoverySpeed(baseline, stress, recovery hrv.Snapshot) float64 {
	drop := baseline.RMSSD - stress.RMSSD
	if math.Abs(drop) < recoveryNoDropEpsilon {
		return 100.0
	}

	recovered := recovery.RMSSD - stress.RMSSD
	percent := recovered / drop * 100

	return math.Min(math.Max(percent, 0), 150)
}

// RecoveryBand labels a recovery percentage against the configured fast/slow
// cut-offs.
type RecoveryBand string

const (
	RecoveryBandFast     RecoveryBand = "fast"
	RecoveryBandModerate RecoveryBand = "moderate"
	RecoveryBandSlow     RecoveryBand = "slow"
)

// RecoveryBand classifies a recovery-speed percentage.
func (e *Engine) RecoveryBand(percent float64) RecoveryBand {
	switch {
	case percent >= e.cfg.RecoveryFast:
		return RecoveryBandFast
	case percent >= e.cfg.RecoverySlow:
		return RecoveryBandModerate
	default:
		return RecoveryBandSlow
	}
}

// #endregion recovery-speed

// #region reactivity

// lfhfDenominatorFloor keeps the LF/HF term bounded when the baseline ratio
// sits near zero.
const lfhfDenominatorFloor = 0.1

// ReactivityIndex measures how strongly the system reacted to stress: the
// mean of four relative-change magnitudes, on a percentage-like scale with no
// upper cap.
//
// A low index can mean either a dorsal non-response or very good regulation;
// disambiguation is the classifier's job, not this metric's.
func (e *Engine) ReactivityIndex(baseline, stress hrv.Snapshot) (float64, error) {
	if err := baseline.ValidateBaseline(); err != nil {
		return 0, err
	}

	changes := []float64{
		math.Abs(stress.RMSSD-baseline.RMSSD) / baseline.RMSSD,
		math.Abs(stress.SDNN-baseline.SDNN) / baseline.SDNN,
		math.Abs(stress.LFHFRatio-baseline.LFHFRatio) / math.Max(baseline.LFHFRatio, lfhfDenominatorFloor),
		math.Abs(stress.TotalPower-baseline.TotalPower) / baseline.TotalPower,
	}

	var sum float64
	for _, c := range changes {
		sum += c
	}
	return sum / float64(len(changes)) * 100, nil
}

// #endregion reactivity

// #region coherence

// CoherenceScore measures agreement between the three classified states.
// Over a three-valued alphabet only three outcomes exist: all equal (1.0),
// exactly two equal (0.5), all distinct (0.0).
func CoherenceScore(physiological, presentation, stressResponse State) float64 {
	switch {
	case physiological == presentation && presentation == stressResponse:
		return 1.0
	case physiological == presentation || presentation == stressResponse || physiological == stressResponse:
		return 0.5
	default:
		return 0.0
	}
}

// #endregion coherence
