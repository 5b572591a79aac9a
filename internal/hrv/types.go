package hrv

// #region trigger-category

// TriggerCategory identifies a class of stressor used to probe autonomic
// reactivity during the extended protocol.
type TriggerCategory string

const (
	TriggerAttachment TriggerCategory = "Ta" // rejection, loss, loneliness
	TriggerControl    TriggerCategory = "Tc" // uncertainty, chaos, helplessness
	TriggerSafety     TriggerCategory = "Ts" // threat, aggression, conflict
	TriggerIdentity   TriggerCategory = "Ti" // shame, devaluation, criticism
	TriggerBody       TriggerCategory = "Tb" // pain, illness, interoception
	TriggerUnknown    TriggerCategory = "T?" // not determined yet
)

// Known reports whether t is one of the testable stressor categories.
func (t TriggerCategory) Known() bool {
	switch t {
	case TriggerAttachment, TriggerControl, TriggerSafety, TriggerIdentity, TriggerBody:
		return true
	}
	return false
}

// Label returns a short human-readable name for the category.
func (t TriggerCategory) Label() string {
	switch t {
	case TriggerAttachment:
		return "attachment (rejection, loss, loneliness)"
	case TriggerControl:
		return "control (uncertainty, chaos, helplessness)"
	case TriggerSafety:
		return "safety (threat, aggression, conflict)"
	case TriggerIdentity:
		return "identity (shame, devaluation, criticism)"
	case TriggerBody:
		return "body (pain, illness, bodily sensations)"
	default:
		return "undetermined (more testing required)"
	}
}

// #endregion trigger-category

// #region snapshot

// Snapshot is a single Kubios-style HRV measurement window. All values are
// summary statistics; no raw beat data is carried. A Snapshot is created once
// per phase and never mutated.
type Snapshot struct {
	// Time-domain (ms, except pNN50 in %)
	MeanRR float64
	SDNN   float64
	RMSSD  float64
	PNN50  float64
	MeanHR float64 // beats/min

	// Frequency-domain (ms^2)
	VLFPower   float64
	LFPower    float64
	HFPower    float64
	LFHFRatio  float64
	TotalPower float64

	// Poincare plot (ms)
	SD1 float64
	SD2 float64

	// Optional nonlinear measure
	SampleEntropy *float64
}

// #endregion snapshot

// #region assessment

// Assessment holds the behavioral presentation scores collected alongside the
// HRV protocol. The five ordinal scores range 1-5 inclusive.
type Assessment struct {
	EyeContact         int
	VoiceProsody       int
	FacialExpressivity int
	SocialEngagement   int
	BodyRelaxation     int

	ReportsDissociation bool
	ReportsAnxiety      bool
	ReportsNumbness     bool
}

// Average returns the mean of the five social-marker scores.
func (a Assessment) Average() float64 {
	sum := a.EyeContact + a.VoiceProsody + a.FacialExpressivity +
		a.SocialEngagement + a.BodyRelaxation
	return float64(sum) / 5.0
}

// #endregion assessment

// #region three-phase

// ThreePhase is the basic protocol: baseline, stress and recovery snapshots
// taken in sequence, plus the time the subject needed to recover.
type ThreePhase struct {
	Baseline Snapshot
	Stress   Snapshot
	Recovery Snapshot

	RecoveryTimeSeconds float64

	// Trigger tags the stressor used during the stress phase, when known.
	// Empty means the stressor was unspecified.
	Trigger TriggerCategory
}

// #endregion three-phase

// #region multi-trigger

// TriggerTest binds one stressor category to the stress-phase snapshot
// recorded while that trigger was active.
type TriggerTest struct {
	Trigger TriggerCategory
	Stress  Snapshot
}

// MultiTrigger is the extended protocol: a shared baseline, one stress
// snapshot per tested trigger, and an optional final recovery snapshot taken
// after the whole battery.
type MultiTrigger struct {
	Baseline      Snapshot
	Tests         []TriggerTest
	FinalRecovery *Snapshot
}

// #endregion multi-trigger
