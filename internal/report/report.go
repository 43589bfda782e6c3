// Package report renders session snapshots as plain-text tables.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/montanaflynn/stats"
	"github.com/olekukonko/tablewriter"

	"RoundSentinel/internal/model"
	"RoundSentinel/internal/notifier"
)

const (
	RecentRounds = 30
	RecentPinks  = 10
	MomentumTail = 10
)

// Render writes every section of the report.
func Render(w io.Writer, snap *model.Snapshot) {
	Summary(w, snap)
	RoundLog(w, snap, RecentRounds)
	PinkTable(w, snap, RecentPinks)
	Momentum(w, snap, MomentumTail)
}

// Summary writes the headline figures of a session.
func Summary(w io.Writer, snap *model.Snapshot) {
	sig := snap.Signal
	mean, median := "-", "-"
	if m, err := stats.Mean(model.Multipliers(snap.Rounds)); err == nil {
		mean = fmt.Sprintf("%.2fx", m)
	}
	if m, err := stats.Median(model.Multipliers(snap.Rounds)); err == nil {
		median = fmt.Sprintf("%.2fx", m)
	}

	fmt.Fprintln(w, "Summary:")
	table := tablewriter.NewWriter(w)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.AppendBulk([][]string{
		{"Total rounds", fmt.Sprintf("%d", len(snap.Rounds))},
		{"Momentum", fmt.Sprintf("%+.2f", snap.LatestMomentum())},
		{fmt.Sprintf("MSI (%d)", snap.Settings.WindowSize), notifier.FormatMSI(sig.LatestMSI)},
		{"MSI band", string(sig.Band)},
		{"Entry zone", sig.Tier.Zone.Label()},
		{"Danger score", fmt.Sprintf("%d%%", sig.DangerScore)},
		{"Pink zones", fmt.Sprintf("%d", len(snap.PinkZones))},
		{"Mean multiplier", mean},
		{"Median multiplier", median},
	})
	table.Render()

	if sig.WarningMsg != "" {
		fmt.Fprintln(w, sig.WarningMsg)
	}
}

// RoundLog writes the most recent rounds, newest last.
func RoundLog(w io.Writer, snap *model.Snapshot, limit int) {
	pinks := indexSet(snap.PinkZones)
	dangers := indexSet(snap.DangerZones)

	fmt.Fprintln(w, "Round log:")
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "Time", "Multiplier", "Score", "Type", "Momentum", "MSI", "Flags"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)

	for i := tailStart(len(snap.Rounds), limit); i < len(snap.Rounds); i++ {
		r := snap.Rounds[i]
		msi := "-"
		if i < len(snap.MSI) {
			msi = notifier.FormatMSI(snap.MSI[i])
		}
		var flags []string
		if pinks[i] {
			flags = append(flags, "pink")
		}
		if dangers[i] {
			flags = append(flags, "trap")
		}
		table.Append([]string{
			fmt.Sprintf("%d", i),
			r.Timestamp.Format("15:04:05"),
			fmt.Sprintf("%.2fx", r.Multiplier),
			fmt.Sprintf("%+d", r.Score),
			string(r.Type),
			fmt.Sprintf("%+.2f", snap.Momentum[i+1]),
			msi,
			strings.Join(flags, ","),
		})
	}
	table.Render()
}

// PinkTable writes the latest pink rounds and the prior pink that projected each.
func PinkTable(w io.Writer, snap *model.Snapshot, limit int) {
	fmt.Fprintln(w, "Sniper pink projections:")
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "Time", "Multiplier", "Projected by"})

	pinks := snap.PinkProjections
	for _, p := range pinks[tailStart(len(pinks), limit):] {
		by := p.ProjectedByLabel()
		if by == "" {
			by = "-"
		}
		table.Append([]string{
			fmt.Sprintf("%d", p.Index),
			p.Round.Timestamp.Format("15:04:05"),
			fmt.Sprintf("%.2fx", p.Round.Multiplier),
			by,
		})
	}
	table.Render()
}

// Momentum writes the last n points of the raw and smoothed momentum series.
func Momentum(w io.Writer, snap *model.Snapshot, n int) {
	fmt.Fprintln(w, "Momentum:")
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Point", "Raw", "Smoothed"})

	for i := tailStart(len(snap.Momentum), n); i < len(snap.Momentum); i++ {
		smoothed := "-"
		if i < len(snap.SmoothedMomentum) {
			smoothed = fmt.Sprintf("%+.3f", snap.SmoothedMomentum[i])
		}
		table.Append([]string{fmt.Sprintf("%d", i), fmt.Sprintf("%+.3f", snap.Momentum[i]), smoothed})
	}
	table.Render()
}

func tailStart(n, limit int) int {
	if limit <= 0 || n <= limit {
		return 0
	}
	return n - limit
}

func indexSet(indices []int) map[int]bool {
	set := make(map[int]bool, len(indices))
	for _, i := range indices {
		set[i] = true
	}
	return set
}
