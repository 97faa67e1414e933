package schedule

import "math"

// IntervalMode says which direction an interval reminder counts.
type IntervalMode string

const (
	// Limit counts down to a ceiling that should not be exceeded.
	Limit IntervalMode = "limit"
	// Goal counts up to a target that should be reached.
	Goal IntervalMode = "goal"
)

// Band is the threshold band of an interval percentage.
type Band int

const (
	BandBest Band = iota
	BandWarn
	BandWorse
	BandWorst
)

func (b Band) String() string {
	switch b {
	case BandBest:
		return "best"
	case BandWarn:
		return "warn"
	case BandWorse:
		return "worse"
	default:
		return "worst"
	}
}

// Progress is the state of an interval reminder.
type Progress struct {
	// Remaining is target minus current.
	Remaining float64
	// Percentage is Remaining relative to |target|, 0 when target is 0.
	Percentage float64
	Band       Band
	Urgency    Urgency
}

// IntervalProgress computes the progress of an interval reminder. Bands are
// >=75 best, 50-74 warn, 25-49 worse, below 25 (or negative) worst. Limit
// reminders color best as green; goal reminders invert the assignment so a
// goal far from reached is danger and a goal passed is green.
func IntervalProgress(target, current float64, mode IntervalMode) Progress {
	p := Progress{Remaining: target - current}
	if target != 0 {
		p.Percentage = p.Remaining * 100 / math.Abs(target)
	}

	switch {
	case p.Percentage >= 75:
		p.Band = BandBest
	case p.Percentage >= 50:
		p.Band = BandWarn
	case p.Percentage >= 25:
		p.Band = BandWorse
	default:
		p.Band = BandWorst
	}

	limit := [...]Urgency{Green, Warn, Orange, Danger}
	goal := [...]Urgency{Danger, Orange, Warn, Green}
	if mode == Goal {
		p.Urgency = goal[p.Band]
	} else {
		p.Urgency = limit[p.Band]
	}
	return p
}
