package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/polyvagal-lab/profiler/internal/profile"
)

var (
	thresholdsPath string
	dbPath         string
	verbose        bool
)

var rootCmd = &cobra.Command{
	Use:   "profiler",
	Short: "Autonomic profile classification from HRV measurements",
	Long: `profiler classifies autonomic regulation profiles from Kubios-style HRV
summary statistics and a short behavioral assessment, producing a
three-letter profile formula (e.g. S-V(p)-D (Ta)) with supporting metrics.`,
	SilenceUsage: true,
}

func main() {
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(triggersCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(historyCmd)

	rootCmd.PersistentFlags().StringVar(&thresholdsPath, "thresholds", "", "TOML threshold override file")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "profiles.db", "SQLite profile database")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// #region helpers

// newLogger builds the CLI logger. Warnings and up by default; everything
// with --verbose.
func newLogger() *zap.SugaredLogger {
	cfg := zap.NewDevelopmentConfig()
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return logger.Sugar()
}

// newEngine builds the classification engine from --thresholds or defaults.
func newEngine() (*profile.Engine, error) {
	if thresholdsPath == "" {
		return profile.NewDefault(), nil
	}
	cfg, err := profile.LoadThresholds(thresholdsPath)
	if err != nil {
		return nil, err
	}
	return profile.New(cfg)
}

// #endregion helpers
