package model

// EntryZone is the entry decision derived from the latest MSI value.
type EntryZone string

const (
	ZoneNoData   EntryZone = "NO_DATA"
	ZonePink     EntryZone = "PINK"
	ZonePurple   EntryZone = "PURPLE"
	ZonePullback EntryZone = "PULLBACK"
	ZoneNeutral  EntryZone = "NEUTRAL"
)

// Label returns the human readable text for the zone.
func (z EntryZone) Label() string {
	switch z {
	case ZonePink:
		return "Pink Entry Zone"
	case ZonePurple:
		return "Purple Entry Zone"
	case ZonePullback:
		return "Pullback Zone - Avoid Entry"
	case ZoneNeutral:
		return "Neutral Zone - Wait"
	default:
		return "No Data"
	}
}

// MSIBand is the chart region an MSI value falls in.
type MSIBand string

const (
	BandBurst MSIBand = "BURST" // msi >= 6
	BandSurge MSIBand = "SURGE" // 0 < msi < 6
	BandRed   MSIBand = "RED"   // msi <= -6
	BandFlat  MSIBand = "FLAT"
)

// ZoneTier maps a minimum MSI to an entry zone.
type ZoneTier struct {
	Zone   EntryZone
	Advice string
}

// Signal is the final output of the strategy engine for one snapshot.
type Signal struct {
	LatestMSI   MSIValue
	Tier        ZoneTier
	Band        MSIBand
	DangerCount int
	DangerScore int
	WarningMsg  string
}
