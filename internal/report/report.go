// Package report renders classified profiles for the terminal. The engine
// only emits formulas, states and numbers; everything human-facing lives here.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/polyvagal-lab/profiler/internal/hrv"
	"github.com/polyvagal-lab/profiler/internal/profile"
)

// #region severity-colors

var (
	highColor   = color.New(color.FgRed)
	mediumColor = color.New(color.FgYellow)
	lowColor    = color.New(color.FgGreen)
)

// markerFor colors the sensitivity marker by reaction strength.
func markerFor(score float64) string {
	switch {
	case score >= 70:
		return highColor.Sprint("●")
	case score >= 40:
		return mediumColor.Sprint("●")
	default:
		return lowColor.Sprint("●")
	}
}

// #endregion severity-colors

// #region render

// Render writes the full profile report: formula, circuit, metrics and the
// trigger sensitivity map. band may be empty when the caller has no engine
// configuration at hand.
func Render(w io.Writer, p profile.Profile, band profile.RecoveryBand) {
	fmt.Fprintf(w, "Profile formula: %s\n", color.New(color.Bold).Sprint(p.FullFormula()))
	fmt.Fprintf(w, "Regulatory circuit: %s\n", p.Circuit())

	recovery := fmt.Sprintf("%.1f%%", p.RecoverySpeedPercent)
	if band != "" {
		recovery += fmt.Sprintf(" (%s)", band)
	}
	if p.RecoveryIndeterminate {
		recovery += " [indeterminate: no final recovery measured]"
	}
	fmt.Fprintf(w, "Recovery speed:  %s\n", recovery)
	fmt.Fprintf(w, "Reactivity:      %.1f\n", p.ReactivityIndex)
	fmt.Fprintf(w, "Coherence:       %.1f\n", p.CoherenceScore)

	if p.IsPseudo {
		fmt.Fprintln(w, mediumColor.Sprint("Pseudo-presentation: outward calm masks non-ventral physiology"))
	}

	if len(p.Sensitivity) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Trigger sensitivity:")
		RenderSensitivity(w, p.Sensitivity)
	}
}

// #endregion render

// #region sensitivity

// RenderSensitivity writes the sensitivity map as bars, strongest first.
func RenderSensitivity(w io.Writer, sensitivity map[hrv.TriggerCategory]float64) {
	type entry struct {
		trigger hrv.TriggerCategory
		score   float64
	}
	entries := make([]entry, 0, len(sensitivity))
	for t, s := range sensitivity {
		entries = append(entries, entry{t, s})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].score != entries[j].score {
			return entries[i].score > entries[j].score
		}
		return entries[i].trigger < entries[j].trigger
	})

	for _, e := range entries {
		fmt.Fprintf(w, "  %s %s: %s %.0f%%\n", markerFor(e.score), e.trigger, bar(e.score), e.score)
		fmt.Fprintf(w, "      %s\n", e.trigger.Label())
	}
}

// bar renders a 10-slot bar for a 0-100 score. Scores above 100 (uncapped
// reactivity) fill the bar completely.
func bar(score float64) string {
	filled := int(score / 10)
	if filled > 10 {
		filled = 10
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", 10-filled)
}

// #endregion sensitivity
