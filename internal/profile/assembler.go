package profile

import (
	"github.com/polyvagal-lab/profiler/internal/hrv"
)

// #region engine

// multiTriggerRecoveryDefault is reported when the extended protocol has no
// final recovery snapshot to compute from. Profiles carrying it have
// RecoveryIndeterminate set; it means "not measured", not "moderate".
const multiTriggerRecoveryDefault = 50.0

// Engine classifies autonomic profiles. It holds nothing but an immutable
// threshold copy, so a single Engine is safe for fully parallel use.
type Engine struct {
	cfg Thresholds
}

// New builds an engine with the given thresholds, validating them once.
func New(cfg Thresholds) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{cfg: cfg}, nil
}

// NewDefault builds an engine with the documented default thresholds.
func NewDefault() *Engine {
	return &Engine{cfg: DefaultThresholds()}
}

// Thresholds returns a copy of the engine's threshold configuration.
func (e *Engine) Thresholds() Thresholds {
	return e.cfg
}

// #endregion engine

// #region classify

// Classify runs the basic three-phase protocol. Pure and deterministic:
// identical inputs always produce an identical Profile.
func (e *Engine) Classify(m hrv.ThreePhase, a hrv.Assessment) (Profile, error) {
	if err := m.Validate(); err != nil {
		return Profile{}, err
	}
	if err := a.Validate(); err != nil {
		return Profile{}, err
	}

	physiological := e.PhysiologicalState(m.Baseline)
	presentation := e.Presentation(a)

	// Pseudo-presentation is narrow: a Ventral-looking mask over a
	// non-Ventral physiology. Other mismatches are not pseudo.
	isPseudo := presentation == Ventral && physiological != Ventral

	stressResponse, err := e.StressResponse(m.Baseline, m.Stress)
	if err != nil {
		return Profile{}, err
	}

	reactivity, err := e.ReactivityIndex(m.Baseline, m.Stress)
	if err != nil {
		return Profile{}, err
	}

	primary := m.Trigger
	if primary == "" {
		primary = hrv.TriggerUnknown
	}

	return Profile{
		Physiological:        physiological,
		Presentation:         presentation,
		IsPseudo:             isPseudo,
		StressResponse:       stressResponse,
		RecoverySpeedPercent: e.RecoverySpeed(m.Baseline, m.Stress, m.Recovery),
		ReactivityIndex:      reactivity,
		CoherenceScore:       CoherenceScore(physiological, presentation, stressResponse),
		PrimaryTrigger:       primary,
		Sensitivity:          map[hrv.TriggerCategory]float64{},
	}, nil
}

// #endregion classify

// #region classify-with-triggers

// ClassifyWithTriggers runs the extended protocol: every trigger test is
// scored against the shared baseline, triggers are ranked, and the primary
// trigger's response state becomes the profile's stress response.
//
// An empty test set is valid input: the profile carries an undetermined
// primary trigger, an empty sensitivity map and zero reactivity.
func (e *Engine) ClassifyWithTriggers(m hrv.MultiTrigger, a hrv.Assessment) (Profile, error) {
	if err := m.Validate(); err != nil {
		return Profile{}, err
	}
	if err := a.Validate(); err != nil {
		return Profile{}, err
	}

	physiological := e.PhysiologicalState(m.Baseline)
	presentation := e.Presentation(a)
	isPseudo := presentation == Ventral && physiological != Ventral

	ranked, err := e.scoreTests(m)
	if err != nil {
		return Profile{}, err
	}

	sensitivity := make(map[hrv.TriggerCategory]float64, len(ranked))
	for _, s := range ranked {
		sensitivity[s.Trigger] = s.Reactivity
	}

	primary := hrv.TriggerUnknown
	secondary := hrv.TriggerCategory("")
	maxReactivity := 0.0
	// The profile's stress response is the primary trigger's response state,
	// not an average across triggers.
	stressResponse := Sympathetic

	if len(ranked) > 0 {
		primary = ranked[0].Trigger
		maxReactivity = ranked[0].Reactivity
		stressResponse = ranked[0].Response
		secondary = secondaryTrigger(ranked)
	}

	recoverySpeed := multiTriggerRecoveryDefault
	recoveryIndeterminate := true
	if m.FinalRecovery != nil && len(ranked) > 0 {
		// Recovery is judged from the strongest trigger's stress phase.
		recoverySpeed = e.RecoverySpeed(m.Baseline, ranked[0].Stress, *m.FinalRecovery)
		recoveryIndeterminate = false
	}

	return Profile{
		Physiological:         physiological,
		Presentation:          presentation,
		IsPseudo:              isPseudo,
		StressResponse:        stressResponse,
		RecoverySpeedPercent:  recoverySpeed,
		RecoveryIndeterminate: recoveryIndeterminate,
		ReactivityIndex:       maxReactivity,
		CoherenceScore:        CoherenceScore(physiological, presentation, stressResponse),
		PrimaryTrigger:        primary,
		SecondaryTrigger:      secondary,
		Sensitivity:           sensitivity,
	}, nil
}

// #endregion classify-with-triggers
