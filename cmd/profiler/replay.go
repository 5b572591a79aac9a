package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/polyvagal-lab/profiler/internal/replay"
)

var replayCmd = &cobra.Command{
	Use:   "replay <fixture.json>",
	Short: "Replay a recorded fixture and check expected classifications",
	Args:  cobra.ExactArgs(1),
	RunE:  runReplay,
}

// #region replay-run

func runReplay(cmd *cobra.Command, args []string) error {
	fixture, err := replay.LoadFixture(args[0])
	if err != nil {
		return err
	}

	summary, err := replay.Run(fixture)
	if err != nil {
		return err
	}

	if fixture.Description != "" {
		fmt.Println(fixture.Description)
	}

	pass := color.New(color.FgGreen).Sprint("PASS")
	fail := color.New(color.FgRed).Sprint("FAIL")

	for _, r := range summary.Results {
		if r.Passed {
			fmt.Printf("%s %s (%s)\n", pass, r.Name, r.Formula)
			continue
		}
		fmt.Printf("%s %s\n", fail, r.Name)
		for _, m := range r.Mismatches {
			fmt.Printf("     %s\n", m)
		}
	}

	fmt.Printf("\n%d/%d cases passed\n", summary.Passed, summary.Total)
	if summary.Passed != summary.Total {
		return fmt.Errorf("%d case(s) failed", summary.Total-summary.Passed)
	}
	return nil
}

// #endregion replay-run
