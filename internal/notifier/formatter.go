package notifier

import (
	"fmt"
	"strings"

	"RoundSentinel/internal/model"
)

// FormatStatus formats a session snapshot into a Telegram message.
func FormatStatus(snap *model.Snapshot) string {
	var b strings.Builder
	sig := snap.Signal

	b.WriteString(fmt.Sprintf("📊 <b>RoundSentinel</b> | %s\n\n", snap.TakenAt.Format("2006-01-02 15:04:05")))
	b.WriteString(fmt.Sprintf("Rounds: %d\n", len(snap.Rounds)))
	b.WriteString(fmt.Sprintf("Momentum: %+.2f\n", snap.LatestMomentum()))
	b.WriteString(fmt.Sprintf("MSI(%d): %s\n", snap.Settings.WindowSize, FormatMSI(sig.LatestMSI)))
	b.WriteString(fmt.Sprintf("Pink zones: %d | Projections: %d\n", len(snap.PinkZones), len(snap.Projections)))
	b.WriteString(fmt.Sprintf("Danger score: %d%%\n\n", sig.DangerScore))
	b.WriteString(fmt.Sprintf("🎯 <b>%s</b>\n", sig.Tier.Zone.Label()))

	if sig.WarningMsg != "" {
		b.WriteString(fmt.Sprintf("\n%s\n", sig.WarningMsg))
	}
	return b.String()
}

// FormatZoneChange formats an entry zone transition alert.
func FormatZoneChange(from, to model.EntryZone, msi model.MSIValue) string {
	icon := "⏳"
	switch to {
	case model.ZonePink:
		icon = "✅"
	case model.ZonePurple:
		icon = "🟣"
	case model.ZonePullback:
		icon = "❌"
	}
	return fmt.Sprintf("%s <b>%s</b>\nMSI: %s (was %s)", icon, to.Label(), FormatMSI(msi), from.Label())
}

// FormatDangerAlert formats an alert for newly flagged danger zones.
func FormatDangerAlert(indices []int, score int) string {
	parts := make([]string, len(indices))
	for i, idx := range indices {
		parts[i] = fmt.Sprintf("#%d", idx)
	}
	return fmt.Sprintf("⚠️ <b>Trap pattern</b> at round %s\nDanger score: %d%%", strings.Join(parts, ", "), score)
}

// FormatPinkList formats the latest pink rounds and their projections.
func FormatPinkList(pinks []model.PinkProjection, limit int) string {
	if len(pinks) == 0 {
		return "No pink rounds yet."
	}
	if limit > 0 && len(pinks) > limit {
		pinks = pinks[len(pinks)-limit:]
	}
	var b strings.Builder
	b.WriteString("🎯 <b>Sniper pink projections</b>\n")
	for _, p := range pinks {
		by := p.ProjectedByLabel()
		if by == "" {
			by = "-"
		}
		b.WriteString(fmt.Sprintf("#%d %s %.2fx ← %s\n", p.Index, p.Round.Timestamp.Format("15:04:05"), p.Round.Multiplier, by))
	}
	return b.String()
}

// FormatMSI renders an MSI value, or "n/a" while the window is filling.
func FormatMSI(v model.MSIValue) string {
	if !v.Ready {
		return "n/a"
	}
	return fmt.Sprintf("%+.0f", v.Value)
}
