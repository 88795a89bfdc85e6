// Package model contains domain models passed between layers.
package model

// Outcome is the result of a single pairwise comparison, seen from the left participant.
type Outcome int

// Outcome variants. The zero value is a draw so an unset outcome never awards a win.
const (
	OutcomeDraw Outcome = iota
	OutcomeLeft
	OutcomeRight
)

// Raw winner values with a non-draw meaning. Everything else is a draw.
const (
	WinnerLeft  = "left"
	WinnerRight = "right"
)

// Scores awarded to the left participant per outcome.
const (
	scoreWin  = 1.0
	scoreLoss = 0.0
	scoreDraw = 0.5
)

// ParseOutcome maps a raw winner value to an Outcome.
// The comparison is byte-exact: "Left" or " left" are draws, as are "tie",
// "both_bad" and the empty string.
func ParseOutcome(raw string) Outcome {
	switch raw {
	case WinnerLeft:
		return OutcomeLeft
	case WinnerRight:
		return OutcomeRight
	default:
		return OutcomeDraw
	}
}

// ScoreLeft returns the observed score for the left participant: 1, 0 or 0.5.
func (o Outcome) ScoreLeft() float64 {
	switch o {
	case OutcomeLeft:
		return scoreWin
	case OutcomeRight:
		return scoreLoss
	default:
		return scoreDraw
	}
}

func (o Outcome) String() string {
	switch o {
	case OutcomeLeft:
		return "left"
	case OutcomeRight:
		return "right"
	default:
		return "draw"
	}
}

// MatchRecord is one row of the comparison log.
type MatchRecord struct {
	Row     int     // 1-based data row, header excluded
	Left    string  // model_left identifier, byte-exact
	Right   string  // model_right identifier, byte-exact
	Outcome Outcome // parsed winner
	Raw     string  // winner value as read
}
