package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/polyvagal-lab/profiler/internal/profile"
	"github.com/polyvagal-lab/profiler/internal/replay"
	"github.com/polyvagal-lab/profiler/internal/report"
	"github.com/polyvagal-lab/profiler/internal/store"
)

var saveProfiles bool

var classifyCmd = &cobra.Command{
	Use:   "classify <measurement.json> [more.json...]",
	Short: "Classify three-phase measurements into autonomic profiles",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runClassify,
}

func init() {
	classifyCmd.Flags().BoolVar(&saveProfiles, "save", false, "persist profiles to the database")
}

// #region classify-run

type classified struct {
	name    string
	input   *replay.Case
	profile profile.Profile
}

func runClassify(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	defer logger.Sync()

	engine, err := newEngine()
	if err != nil {
		return err
	}

	// The engine is pure and holds only immutable thresholds, so files are
	// classified concurrently.
	var mu sync.Mutex
	results := make(map[string]classified, len(args))

	var g errgroup.Group
	for _, path := range args {
		path := path
		g.Go(func() error {
			input, err := loadInput(path)
			if err != nil {
				return err
			}
			p, err := classifyInput(engine, input)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			mu.Lock()
			results[path] = classified{name: input.Name, input: input, profile: p}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var st *store.Store
	if saveProfiles {
		st, err = store.NewStore(dbPath)
		if err != nil {
			return err
		}
		defer st.Close()
	}

	for _, path := range args {
		r := results[path]
		fmt.Printf("=== %s\n", r.name)
		report.Render(os.Stdout, r.profile, engine.RecoveryBand(r.profile.RecoverySpeedPercent))
		fmt.Println()

		if st != nil {
			rec, err := persist(st, r)
			if err != nil {
				return err
			}
			logger.Infow("profile saved", "id", rec.ProfileID, "formula", rec.Profile.Formula())
		}
	}
	return nil
}

// classifyInput dispatches on the measurement mode present in the input.
func classifyInput(engine *profile.Engine, input *replay.Case) (profile.Profile, error) {
	switch {
	case input.ThreePhase != nil:
		m, err := input.ThreePhase.ToMeasurement()
		if err != nil {
			return profile.Profile{}, err
		}
		return engine.Classify(m, input.Behavioral.ToAssessment())
	case input.MultiTrigger != nil:
		m, err := input.MultiTrigger.ToMeasurement()
		if err != nil {
			return profile.Profile{}, err
		}
		return engine.ClassifyWithTriggers(m, input.Behavioral.ToAssessment())
	default:
		return profile.Profile{}, fmt.Errorf("input has neither three_phase nor multi_trigger")
	}
}

func persist(st *store.Store, r classified) (store.Record, error) {
	mode := store.ModeThreePhase
	if r.input.MultiTrigger != nil {
		mode = store.ModeMultiTrigger
	}
	inputJSON, err := json.Marshal(r.input)
	if err != nil {
		return store.Record{}, fmt.Errorf("marshal input: %w", err)
	}
	return st.SaveProfile(r.profile, mode, string(inputJSON))
}

// #endregion classify-run
