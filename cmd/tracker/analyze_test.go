package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"RoundSentinel/internal/model"
	"RoundSentinel/internal/session"
)

func newAnalyzeFlags(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "analyze"}
	cmd.Flags().String("in", "", "")
	cmd.Flags().Int("window", session.DefaultWindow, "")
	cmd.Flags().Float64("pink", session.DefaultPinkThreshold, "")
	cmd.Flags().Bool("strict", true, "")
	require.NoError(t, cmd.Flags().Parse(args))
	return cmd
}

func TestAnalyzeFlags_OverridesOnlyChanged(t *testing.T) {
	base := model.Settings{WindowSize: 40, PinkThreshold: 7, StrictMode: true}

	in, got, err := analyzeFlags(newAnalyzeFlags(t, "--in", "r.csv", "--pink", "12", "--strict=false"), base)
	require.NoError(t, err)
	assert.Equal(t, "r.csv", in)
	assert.Equal(t, model.Settings{WindowSize: 40, PinkThreshold: 12, StrictMode: false}, got)
}

func TestAnalyzeFlags_UndefinedFlag(t *testing.T) {
	cmd := &cobra.Command{Use: "analyze"}
	_, _, err := analyzeFlags(cmd, session.DefaultSettings())
	assert.Error(t, err)

	cmd.Flags().String("in", "", "")
	cmd.Flags().String("window", "", "")
	require.NoError(t, cmd.Flags().Set("window", "wide"))
	_, _, err = analyzeFlags(cmd, session.DefaultSettings())
	assert.Error(t, err)
}

func TestAnalyzeCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rounds.csv")
	body := "timestamp,multiplier\n" +
		"2025-03-01T20:00:00Z,11\n" +
		"2025-03-01T20:10:00Z,1.2\n" +
		"2025-03-01T20:20:00Z,14\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"analyze", "--config", filepath.Join(t.TempDir(), "none.yaml"), "--in", path, "--window", "10"})
	require.NoError(t, rootCmd.Execute())

	assert.Contains(t, out.String(), "MSI (10)")
	assert.Contains(t, out.String(), "20:10:00")
	assert.Contains(t, out.String(), "14.00x")
}
