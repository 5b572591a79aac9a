package profile

import (
	"fmt"
	"strings"

	"github.com/polyvagal-lab/profiler/internal/hrv"
)

// #region state

// State is one of the three autonomic regulation states of the polyvagal
// model. The letter values appear verbatim in profile formulas.
type State string

const (
	Ventral     State = "V" // social engagement, calm
	Sympathetic State = "S" // fight/flight activation
	Dorsal      State = "D" // shutdown, freeze
)

// Name returns the lowercase long-form name, used in logs and storage.
func (s State) Name() string {
	switch s {
	case Ventral:
		return "ventral"
	case Sympathetic:
		return "sympathetic"
	case Dorsal:
		return "dorsal"
	default:
		return "unknown"
	}
}

// #endregion state

// #region trigger-score

// TriggerScore is one ranked entry of the trigger sensitivity analysis.
type TriggerScore struct {
	Trigger    hrv.TriggerCategory
	Reactivity float64
	Response   State
}

// #endregion trigger-score

// #region lookup-key

// LookupKey identifies a profile for the externally-owned interpretation
// lookup. The engine emits keys; text resolution lives with the presenter.
type LookupKey struct {
	Physiological  State
	Presentation   State
	IsPseudo       bool
	StressResponse State
}

// #endregion lookup-key

// #region profile

// Profile is the classification output. It is constructed once by the engine
// and read-only thereafter.
type Profile struct {
	Physiological  State
	Presentation   State
	IsPseudo       bool
	StressResponse State

	RecoverySpeedPercent float64
	// RecoveryIndeterminate is set when RecoverySpeedPercent is the neutral
	// multi-trigger default rather than a computed value.
	RecoveryIndeterminate bool
	ReactivityIndex       float64
	CoherenceScore        float64

	PrimaryTrigger   hrv.TriggerCategory
	SecondaryTrigger hrv.TriggerCategory // empty when no trigger qualifies
	Sensitivity      map[hrv.TriggerCategory]float64
}

// base renders the X-Y-Z part shared by Formula and FullFormula.
func (p Profile) base() string {
	pseudo := ""
	if p.IsPseudo {
		pseudo = "(p)"
	}
	return fmt.Sprintf("%s-%s%s-%s", p.Physiological, p.Presentation, pseudo, p.StressResponse)
}

// Formula returns the canonical profile formula, e.g. "S-V(p)-D (Ta)".
// The trigger suffix is omitted while the primary trigger is undetermined.
func (p Profile) Formula() string {
	if p.PrimaryTrigger != hrv.TriggerUnknown && p.PrimaryTrigger != "" {
		return fmt.Sprintf("%s (%s)", p.base(), p.PrimaryTrigger)
	}
	return p.base()
}

// FullFormula includes the secondary trigger when one qualified,
// e.g. "S-V(p)-D (Ta, Tc)".
func (p Profile) FullFormula() string {
	var triggers []string
	if p.PrimaryTrigger != hrv.TriggerUnknown && p.PrimaryTrigger != "" {
		triggers = append(triggers, string(p.PrimaryTrigger))
	}
	if p.SecondaryTrigger != "" && p.SecondaryTrigger != hrv.TriggerUnknown {
		triggers = append(triggers, string(p.SecondaryTrigger))
	}
	if len(triggers) > 0 {
		return fmt.Sprintf("%s (%s)", p.base(), strings.Join(triggers, ", "))
	}
	return p.base()
}

// Circuit returns the stable X-Y part of the formula ("V-V", "S-V(p)", ...),
// the regulatory-circuit key shared by all three stress responses.
func (p Profile) Circuit() string {
	pseudo := ""
	if p.IsPseudo {
		pseudo = "(p)"
	}
	return fmt.Sprintf("%s-%s%s", p.Physiological, p.Presentation, pseudo)
}

// Key returns the tuple the interpretation lookup is keyed by.
func (p Profile) Key() LookupKey {
	return LookupKey{
		Physiological:  p.Physiological,
		Presentation:   p.Presentation,
		IsPseudo:       p.IsPseudo,
		StressResponse: p.StressResponse,
	}
}

func (p Profile) String() string {
	return p.Formula()
}

// #endregion profile
