package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"RoundSentinel/internal/importer"
	"RoundSentinel/internal/model"
	"RoundSentinel/internal/report"
	"RoundSentinel/internal/session"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Replay a round CSV and print the report",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		in, settings, err := analyzeFlags(cmd, cfg.Indicators)
		if err != nil {
			return err
		}

		sess, err := session.New(settings)
		if err != nil {
			return err
		}
		if _, err := importer.Import(importer.NewCSVSource(in), sess); err != nil {
			return err
		}
		report.Render(cmd.OutOrStdout(), sess.Snapshot())
		return nil
	},
}

// analyzeFlags returns the input path and the settings after applying any
// flags the user set on top of base.
func analyzeFlags(cmd *cobra.Command, base model.Settings) (string, model.Settings, error) {
	settings := base
	in, err := cmd.Flags().GetString("in")
	if err != nil {
		return "", settings, err
	}
	if cmd.Flags().Changed("window") {
		if settings.WindowSize, err = cmd.Flags().GetInt("window"); err != nil {
			return "", settings, err
		}
	}
	if cmd.Flags().Changed("pink") {
		if settings.PinkThreshold, err = cmd.Flags().GetFloat64("pink"); err != nil {
			return "", settings, err
		}
	}
	if cmd.Flags().Changed("strict") {
		if settings.StrictMode, err = cmd.Flags().GetBool("strict"); err != nil {
			return "", settings, err
		}
	}
	return in, settings, nil
}

func init() {
	analyzeCmd.Flags().String("in", "", "CSV file with timestamp,multiplier rows")
	analyzeCmd.Flags().Int("window", session.DefaultWindow, "MSI window size (10-100)")
	analyzeCmd.Flags().Float64("pink", session.DefaultPinkThreshold, "pink multiplier threshold")
	analyzeCmd.Flags().Bool("strict", true, "judge pink zones by the threshold in force when each round was recorded")
	_ = analyzeCmd.MarkFlagRequired("in")
}
