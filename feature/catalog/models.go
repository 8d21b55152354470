package catalog

import (
	"scorebook/core/schema"
	"scorebook/core/upsert"
)

// SportInput is the payload for creating a sport.
type SportInput struct {
	Name     string         `json:"name"`
	Notes    string         `json:"notes,omitempty"`
	Location string         `json:"location,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// VenueInput is the payload for creating a venue.
type VenueInput struct {
	Name     string         `json:"name"`
	Notes    string         `json:"notes,omitempty"`
	Location string         `json:"location,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// StageInput is one node of a supplied stage tree. An empty ID marks a
// stage the caller does not know yet; within one parent the sibling number
// is the fallback identity, so resupplying a tree without ids still keeps
// the persisted rows.
type StageInput struct {
	ID        string         `json:"id,omitempty"`
	Number    int            `json:"number"`
	Name      string         `json:"name,omitempty"`
	Notes     string         `json:"notes,omitempty"`
	Location  string         `json:"location,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	SubStages []StageInput   `json:"subStages,omitempty"`
}

// FormatInput is the composite payload for an event-format upsert: the
// format row plus its complete stage tree. A nil Stages field leaves the
// persisted tree alone; an empty one removes it. When Stages is absent and
// StageCount is set, the sport's plugin expands the count into its default
// layout.
type FormatInput struct {
	ID              string         `json:"id,omitempty"`
	SportID         string         `json:"sportId"`
	ScoreFormatID   string         `json:"scoreFormatId,omitempty"`
	Name            string         `json:"name,omitempty"`
	Notes           string         `json:"notes,omitempty"`
	Location        string         `json:"location,omitempty"`
	DurationMinutes *int           `json:"durationMinutes,omitempty"`
	MinTeamSize     *int           `json:"minTeamSize,omitempty"`
	MaxTeamSize     *int           `json:"maxTeamSize,omitempty"`
	Metadata        map[string]any `json:"metadata,omitempty"`
	StageCount      int            `json:"stageCount,omitempty"`
	Stages          []StageInput   `json:"stages,omitempty"`
}

// FormatResult reports what a composite format upsert did.
type FormatResult struct {
	Format schema.EventFormat `json:"format"`
	Stages upsert.ChangeSet   `json:"stages"`
}

// StageNode is one stage of a rebuilt format tree.
type StageNode struct {
	schema.EventFormatStage
	SubStages []StageNode `json:"subStages,omitempty"`
}

// FormatDetails is a format with its references resolved and its stage
// tree rebuilt.
type FormatDetails struct {
	schema.EventFormat
	Sport       *schema.Sport       `json:"sport,omitempty"`
	ScoreFormat *schema.ScoreFormat `json:"scoreFormat,omitempty"`
	Stages      []StageNode         `json:"stages,omitempty"`
}

// RegistrationInput carries the venue-level overrides for registering an
// event format at a venue. Nil override fields inherit the format's values.
type RegistrationInput struct {
	Name            string         `json:"name,omitempty"`
	Notes           string         `json:"notes,omitempty"`
	Location        string         `json:"location,omitempty"`
	DurationMinutes *int           `json:"durationMinutes,omitempty"`
	MinTeamSize     *int           `json:"minTeamSize,omitempty"`
	MaxTeamSize     *int           `json:"maxTeamSize,omitempty"`
	Metadata        map[string]any `json:"metadata,omitempty"`
}

// VenueStageNode is one stage of a venue's mirrored tree. The embedded row
// carries only what the venue itself set; Format is the source stage and
// Merged the venue-over-format metadata view scoring runs against.
type VenueStageNode struct {
	schema.VenueEventFormatStage
	Format    *schema.EventFormatStage `json:"format,omitempty"`
	Merged    map[string]any           `json:"mergedMetadata,omitempty"`
	SubStages []VenueStageNode         `json:"subStages,omitempty"`
}

// EffectiveSettings are the registration's overrides resolved over the
// format's base values.
type EffectiveSettings struct {
	DurationMinutes *int `json:"durationMinutes,omitempty"`
	MinTeamSize     *int `json:"minTeamSize,omitempty"`
	MaxTeamSize     *int `json:"maxTeamSize,omitempty"`
}

// RegistrationDetails is a venue registration with its references resolved
// and its mirrored stage tree rebuilt.
type RegistrationDetails struct {
	schema.VenueEventFormat
	Venue       *schema.Venue       `json:"venue,omitempty"`
	EventFormat *schema.EventFormat `json:"eventFormat,omitempty"`
	Effective   EffectiveSettings   `json:"effective"`
	Stages      []VenueStageNode    `json:"stages,omitempty"`
}
