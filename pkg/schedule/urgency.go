package schedule

// Urgency is the presentation class of a reminder.
type Urgency string

const (
	Green  Urgency = "green"
	Warn   Urgency = "warn"
	Orange Urgency = "orange"
	Danger Urgency = "danger"
)

// ClassifyUrgency maps a day count to an urgency class.
func ClassifyUrgency(days int) Urgency {
	switch {
	case days >= 8:
		return Green
	case days >= 3:
		return Warn
	case days >= 1:
		return Orange
	default:
		return Danger
	}
}

// Rank orders urgencies from most to least pressing.
func (u Urgency) Rank() int {
	switch u {
	case Danger:
		return 0
	case Orange:
		return 1
	case Warn:
		return 2
	default:
		return 3
	}
}
