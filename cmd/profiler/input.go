package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/polyvagal-lab/profiler/internal/replay"
)

// #region input-loading

// loadInput reads a measurement file. The on-disk format is a replay case
// without expectations: a three_phase or multi_trigger block plus behavioral.
func loadInput(path string) (*replay.Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input %s: %w", path, err)
	}
	var c replay.Case
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse input %s: %w", path, err)
	}
	if c.Name == "" {
		c.Name = path
	}
	return &c, nil
}

// #endregion input-loading
