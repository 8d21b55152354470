package event

import (
	"scorebook/core/schema"
	"scorebook/core/scoring"
	"scorebook/core/upsert"
)

// EventInput describes an event to create or update. ParticipantIDs and
// Stages follow the collection convention: a nil slice leaves the persisted
// set alone, an empty one clears it.
type EventInput struct {
	ID                 string         `json:"id,omitempty"`
	VenueEventFormatID string         `json:"venueEventFormatId,omitempty"`
	Status             string         `json:"status,omitempty"`
	StartsAt           *int64         `json:"startsAt,omitempty"`
	Name               string         `json:"name,omitempty"`
	Notes              string         `json:"notes,omitempty"`
	Location           string         `json:"location,omitempty"`
	Metadata           map[string]any `json:"metadata,omitempty"`
	ParticipantIDs     []string       `json:"participantIds,omitempty"`
	Stages             []StageInput   `json:"stages,omitempty"`
}

// StageInput is one node of an event's stage tree as supplied by a client.
// A stage without an id is matched by (parent, number); a brand-new stage
// needs a venue stage to mirror, resolved the same way when the reference
// is not supplied. SubStages is the complete child set of this node, Scores
// the complete score set (nil leaves persisted scores alone).
type StageInput struct {
	ID                      string         `json:"id,omitempty"`
	VenueEventFormatStageID string         `json:"venueEventFormatStageId,omitempty"`
	Number                  int            `json:"number"`
	Name                    string         `json:"name,omitempty"`
	Notes                   string         `json:"notes,omitempty"`
	Location                string         `json:"location,omitempty"`
	Metadata                map[string]any `json:"metadata,omitempty"`
	Scores                  []ScoreInput   `json:"scores,omitempty"`
	SubStages               []StageInput   `json:"subStages,omitempty"`
}

// ScoreInput is one participant's entry at one stage. Only the raw value,
// the completion flag and metadata are writable; points, score type and
// margins are derived through the sport's scoring method on every write.
type ScoreInput struct {
	ID            string         `json:"id,omitempty"`
	ParticipantID string         `json:"participantId"`
	RawValue      *float64       `json:"rawValue,omitempty"`
	Completed     *bool          `json:"completed,omitempty"`
	Metadata      map[string]any `json:"metadata,omitempty"`
}

// ListFilter narrows an event listing.
type ListFilter struct {
	VenueEventFormatID string
	Status             string
}

// EventResult is the outcome of a composite write: the persisted event row
// plus the change tallies of its dependent sets.
type EventResult struct {
	Event        schema.Event     `json:"event"`
	Participants upsert.ChangeSet `json:"participants"`
	Stages       upsert.ChangeSet `json:"stages"`
	Scores       upsert.ChangeSet `json:"scores"`
}

// EventStageNode is one stage of an event's tree with its mirror sources
// resolved. The embedded row carries what the event itself recorded; Venue
// and Format are the mirrored stages underneath, Merged the three-layer
// metadata view (event over venue over format) that scoring classifies
// against.
type EventStageNode struct {
	schema.EventStage
	Venue     *schema.VenueEventFormatStage       `json:"venue,omitempty"`
	Format    *schema.EventFormatStage            `json:"format,omitempty"`
	Merged    map[string]any                      `json:"mergedMetadata,omitempty"`
	Scores    []schema.ParticipantEventStageScore `json:"scores,omitempty"`
	SubStages []EventStageNode                    `json:"subStages,omitempty"`
}

// EventDetails is a fully resolved event: the row, its registration and
// format, the linked participants and the stage tree with scores attached.
type EventDetails struct {
	schema.Event
	Registration *schema.VenueEventFormat `json:"registration,omitempty"`
	EventFormat  *schema.EventFormat      `json:"eventFormat,omitempty"`
	Participants []schema.Participant     `json:"participants,omitempty"`
	Stages       []EventStageNode         `json:"stages,omitempty"`
}

// EventResults is a scored event: per-participant aggregates ranked by the
// sport's method plus overall stats.
type EventResults struct {
	EventID            string                      `json:"eventId"`
	Method             string                      `json:"method"`
	HigherPointsBetter bool                        `json:"higherPointsBetter"`
	Participants       []scoring.ParticipantResult `json:"participants"`
	Stats              scoring.EventStats          `json:"stats"`
}
