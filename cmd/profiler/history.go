package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/polyvagal-lab/profiler/internal/store"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recently classified profiles from the database",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum number of profiles to list")
}

// #region history-run

func runHistory(cmd *cobra.Command, args []string) error {
	st, err := store.NewStore(dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	records, err := st.ListProfiles(historyLimit)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("No profiles stored yet.")
		return nil
	}

	for _, rec := range records {
		fmt.Printf("%s  %-16s  recovery=%5.1f%%  reactivity=%6.1f  coherence=%.1f  %s\n",
			rec.CreatedAt.Format("2006-01-02 15:04"),
			rec.Profile.FullFormula(),
			rec.Profile.RecoverySpeedPercent,
			rec.Profile.ReactivityIndex,
			rec.Profile.CoherenceScore,
			rec.ProfileID,
		)
	}
	return nil
}

// #endregion history-run
