package model

import "time"

// MSIValue is one point of the Momentum Score Index. Ready is false when the
// trailing window is not yet full and the value is undefined.
type MSIValue struct {
	Value float64
	Ready bool
}

// Projection links two pink rounds whose time gap matched a sniper interval.
type Projection struct {
	PriorIndex int
	LaterIndex int
	Prior      time.Time
	Later      time.Time
}

// PinkProjection is a pink round together with the prior pink round that
// projected it, if any.
type PinkProjection struct {
	Index       int
	Round       Round
	ProjectedBy *time.Time
}

// ProjectedByLabel formats ProjectedBy as hours:minutes:seconds, or "" when unset.
func (p PinkProjection) ProjectedByLabel() string {
	if p.ProjectedBy == nil {
		return ""
	}
	return p.ProjectedBy.Format("15:04:05")
}

// Settings is the tunable indicator configuration of a session.
type Settings struct {
	WindowSize    int     `yaml:"window_size" json:"window_size"`
	PinkThreshold float64 `yaml:"pink_threshold" json:"pink_threshold"`
	StrictMode    bool    `yaml:"strict_mode" json:"strict_mode"`
}

// Snapshot holds every derived series of a session at one instant.
type Snapshot struct {
	SessionID        string
	TakenAt          time.Time
	Settings         Settings
	Rounds           []Round
	Momentum         []float64
	SmoothedMomentum []float64
	PinkZones        []int
	DangerZones      []int
	MSI              []MSIValue
	Projections      []Projection
	PinkProjections  []PinkProjection
	Signal           Signal
}

// LatestMomentum returns the last cumulative momentum value.
func (s *Snapshot) LatestMomentum() float64 {
	if len(s.Momentum) == 0 {
		return 0
	}
	return s.Momentum[len(s.Momentum)-1]
}
