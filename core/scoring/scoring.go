package scoring

import (
	"sort"
)

// StageContext is what a method sees of the stage a value was scored at:
// the sibling number and the stage's merged metadata (par and friends).
type StageContext struct {
	StageID  string         `json:"stageId"`
	Number   int            `json:"number"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// StageEntry is one participant's scored stage: the raw value plus the
// fields derived from it at entry time.
type StageEntry struct {
	Stage         StageContext `json:"stage"`
	ParticipantID string       `json:"participantId"`
	RawValue      float64      `json:"rawValue"`
	Points        float64      `json:"points"`
	ScoreType     string       `json:"scoreType,omitempty"`
	Completed     bool         `json:"completed"`
}

// ParticipantResult is one participant's aggregate over an event.
type ParticipantResult struct {
	ParticipantID   string  `json:"participantId"`
	TotalPoints     float64 `json:"totalPoints"`
	TotalRaw        float64 `json:"totalRaw"`
	StagesCompleted int     `json:"stagesCompleted"`
	Rank            int     `json:"rank"`
}

// EventStats summarizes the scored portion of an event.
type EventStats struct {
	Participants  int `json:"participants"`
	StagesScored  int `json:"stagesScored"`
	ScoresEntered int `json:"scoresEntered"`
}

// EventScore is a method's event-level result: ranked per-participant
// aggregates plus overall stats.
type EventScore struct {
	Participants []ParticipantResult `json:"participants"`
	Stats        EventStats          `json:"stats"`
}

// Method is one scoring method a sport supplies. ScoreEvent must be
// order-independent over its entries and tolerate a partial set of
// completed stages; both properties are what make rescoring after every
// edit safe.
type Method interface {
	// Name is the score-format name the method registers under.
	Name() string
	// HigherPointsBetter is the comparison direction for ranking.
	HigherPointsBetter() bool
	// ValueToPoints converts a raw value to points. Identity by default.
	ValueToPoints(raw float64) float64
	// ValueToScoreType classifies a raw value against its stage, e.g.
	// relative to par.
	ValueToScoreType(raw float64, stage StageContext) string
	// ScoreEvent aggregates per-stage entries into the event result.
	ScoreEvent(entries []StageEntry) EventScore
}

// Accumulate folds entries into per-participant aggregates, in participant
// id order. Only completed entries count; accumulation is commutative, so
// input order never matters.
func Accumulate(entries []StageEntry) []ParticipantResult {
	byParticipant := map[string]*ParticipantResult{}
	for _, entry := range entries {
		if !entry.Completed {
			continue
		}
		agg, ok := byParticipant[entry.ParticipantID]
		if !ok {
			agg = &ParticipantResult{ParticipantID: entry.ParticipantID}
			byParticipant[entry.ParticipantID] = agg
		}
		agg.TotalPoints += entry.Points
		agg.TotalRaw += entry.RawValue
		agg.StagesCompleted++
	}

	results := make([]ParticipantResult, 0, len(byParticipant))
	for _, agg := range byParticipant {
		results = append(results, *agg)
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].ParticipantID < results[j].ParticipantID
	})
	return results
}

// Rank orders results by total points in the method's direction and assigns
// competition ranks (ties share a rank, the next distinct total skips past
// them). Participant id breaks ordering ties so output is deterministic.
func Rank(results []ParticipantResult, higherBetter bool) []ParticipantResult {
	ranked := make([]ParticipantResult, len(results))
	copy(ranked, results)

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].TotalPoints != ranked[j].TotalPoints {
			if higherBetter {
				return ranked[i].TotalPoints > ranked[j].TotalPoints
			}
			return ranked[i].TotalPoints < ranked[j].TotalPoints
		}
		return ranked[i].ParticipantID < ranked[j].ParticipantID
	})

	for i := range ranked {
		if i > 0 && ranked[i].TotalPoints == ranked[i-1].TotalPoints {
			ranked[i].Rank = ranked[i-1].Rank
			continue
		}
		ranked[i].Rank = i + 1
	}
	return ranked
}

// Stats counts the scored surface of an event from its entries.
func Stats(entries []StageEntry) EventStats {
	stages := map[string]bool{}
	participants := map[string]bool{}
	entered := 0
	for _, entry := range entries {
		participants[entry.ParticipantID] = true
		if entry.Completed {
			stages[entry.Stage.StageID] = true
			entered++
		}
	}
	return EventStats{
		Participants:  len(participants),
		StagesScored:  len(stages),
		ScoresEntered: entered,
	}
}
