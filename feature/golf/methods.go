package golf

import (
	"fmt"

	"scorebook/core/scoring"
)

// Score-type labels relative to par.
const (
	TypeAce         = "ace"
	TypeCondor      = "condor"
	TypeAlbatross   = "albatross"
	TypeEagle       = "eagle"
	TypeBirdie      = "birdie"
	TypePar         = "par"
	TypeBogey       = "bogey"
	TypeDoubleBogey = "double bogey"
	TypeTripleBogey = "triple bogey"
)

// classify maps a stroke count against par to its traditional name.
func classify(raw, par float64) string {
	if raw == 1 {
		return TypeAce
	}
	switch int(raw - par) {
	case -4:
		return TypeCondor
	case -3:
		return TypeAlbatross
	case -2:
		return TypeEagle
	case -1:
		return TypeBirdie
	case 0:
		return TypePar
	case 1:
		return TypeBogey
	case 2:
		return TypeDoubleBogey
	case 3:
		return TypeTripleBogey
	}
	return fmt.Sprintf("%+d", int(raw-par))
}

// Stroke is classic stroke play: points are the strokes themselves and the
// lowest total wins.
type Stroke struct{}

func (Stroke) Name() string             { return "stroke" }
func (Stroke) HigherPointsBetter() bool { return false }

func (Stroke) ValueToPoints(raw float64) float64 {
	return raw
}

func (Stroke) ValueToScoreType(raw float64, stage scoring.StageContext) string {
	return classify(raw, parOf(stage))
}

func (Stroke) ScoreEvent(entries []scoring.StageEntry) scoring.EventScore {
	return scoring.EventScore{
		Participants: scoring.Rank(scoring.Accumulate(entries), false),
		Stats:        scoring.Stats(entries),
	}
}

// Stableford awards points per hole from the score relative to par; the
// highest total wins. At entry time points default to the raw value, so the
// stableford totals are derived here from each entry's stage par.
type Stableford struct{}

func (Stableford) Name() string             { return "stableford" }
func (Stableford) HigherPointsBetter() bool { return true }

func (Stableford) ValueToPoints(raw float64) float64 {
	return raw
}

func (Stableford) ValueToScoreType(raw float64, stage scoring.StageContext) string {
	return classify(raw, parOf(stage))
}

// stablefordPoints is the standard table: 2 points for par, one more per
// stroke under, one fewer per stroke over, never negative.
func stablefordPoints(raw, par float64) float64 {
	points := 2 + par - raw
	if points < 0 {
		return 0
	}
	return points
}

func (Stableford) ScoreEvent(entries []scoring.StageEntry) scoring.EventScore {
	adjusted := make([]scoring.StageEntry, len(entries))
	for i, entry := range entries {
		entry.Points = stablefordPoints(entry.RawValue, parOf(entry.Stage))
		adjusted[i] = entry
	}
	return scoring.EventScore{
		Participants: scoring.Rank(scoring.Accumulate(adjusted), true),
		Stats:        scoring.Stats(adjusted),
	}
}
