package challenge

import "strings"

// Level is the user-facing difficulty label chosen on the home screen.
type Level string

const (
	Beginner     Level = "Beginner"
	Intermediate Level = "Intermediate"
	Advanced     Level = "Advanced"
)

// Levels lists the labels in menu order.
var Levels = []Level{Beginner, Intermediate, Advanced}

// Difficulty maps the label to its internal token. Unrecognized labels
// map to Easy.
func (l Level) Difficulty() Difficulty {
	switch l {
	case Intermediate:
		return Medium
	case Advanced:
		return Hard
	default:
		return Easy
	}
}

// ParseLevel accepts a label or a difficulty token, case-insensitively.
func ParseLevel(s string) (Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "beginner", "easy":
		return Beginner, true
	case "intermediate", "medium":
		return Intermediate, true
	case "advanced", "hard":
		return Advanced, true
	}
	return "", false
}
