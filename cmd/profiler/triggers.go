package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/polyvagal-lab/profiler/internal/report"
	"github.com/polyvagal-lab/profiler/internal/store"
)

var triggersSave bool

var triggersCmd = &cobra.Command{
	Use:   "triggers <multi-trigger.json>",
	Short: "Run the extended multi-trigger protocol and rank stressor sensitivity",
	Args:  cobra.ExactArgs(1),
	RunE:  runTriggers,
}

func init() {
	triggersCmd.Flags().BoolVar(&triggersSave, "save", false, "persist the profile to the database")
}

// #region triggers-run

func runTriggers(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	defer logger.Sync()

	engine, err := newEngine()
	if err != nil {
		return err
	}

	input, err := loadInput(args[0])
	if err != nil {
		return err
	}
	if input.MultiTrigger == nil {
		return fmt.Errorf("%s: triggers requires a multi_trigger measurement", args[0])
	}

	m, err := input.MultiTrigger.ToMeasurement()
	if err != nil {
		return err
	}

	p, err := engine.ClassifyWithTriggers(m, input.Behavioral.ToAssessment())
	if err != nil {
		return err
	}

	fmt.Printf("=== %s\n", input.Name)
	report.Render(os.Stdout, p, engine.RecoveryBand(p.RecoverySpeedPercent))

	if len(m.Tests) == 0 {
		fmt.Println("\nNo triggers tested; sensitivity map is empty.")
	}

	if triggersSave {
		st, err := store.NewStore(dbPath)
		if err != nil {
			return err
		}
		defer st.Close()

		rec, err := persist(st, classified{name: input.Name, input: input, profile: p})
		if err != nil {
			return err
		}
		logger.Infow("profile saved", "id", rec.ProfileID, "formula", rec.Profile.Formula())
	}
	return nil
}

// #endregion triggers-run
