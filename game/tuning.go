package game

import "time"

// Tuning holds the empirically chosen color-matching thresholds and
// economy timings. The defaults come from field testing with real
// clothing under varied lighting; changing them changes gameplay, so
// they are configuration, not constants.
type Tuning struct {
	// Target acceptance window: threshold = clamp(base − confidence×scale, min, max).
	TargetBase      float64
	TargetConfScale float64
	TargetMin       float64
	TargetMax       float64

	// Earn-task acceptance window, same shape, independently tuned.
	EarnBase      float64
	EarnConfScale float64
	EarnMin       float64
	EarnMax       float64

	// Samples below this confidence are rejected outright when
	// resolving an earn task, regardless of color match.
	EarnConfidenceFloor float64

	EarnTaskDuration time.Duration
	SweepInterval    time.Duration
}

func DefaultTuning() Tuning {
	return Tuning{
		TargetBase:      55,
		TargetConfScale: 20,
		TargetMin:       35,
		TargetMax:       60,

		EarnBase:      55,
		EarnConfScale: 25,
		EarnMin:       28,
		EarnMax:       55,

		EarnConfidenceFloor: 0.25,
		EarnTaskDuration:    20 * time.Second,
		SweepInterval:       500 * time.Millisecond,
	}
}

// targetThreshold narrows the acceptance window as observation
// confidence rises; low-confidence samples get a looser but capped one.
func (t Tuning) targetThreshold(confidence float64) float64 {
	return clampFloat(t.TargetBase-confidence*t.TargetConfScale, t.TargetMin, t.TargetMax)
}

func (t Tuning) earnThreshold(confidence float64) float64 {
	return clampFloat(t.EarnBase-confidence*t.EarnConfScale, t.EarnMin, t.EarnMax)
}
