package roster

import (
	"scorebook/core/schema"
	"scorebook/core/upsert"
)

// ParticipantInput is the payload for a participant upsert. An empty ID
// creates a new participant; a supplied ID updates or, for ids minted on
// another device, inserts under that id. A nil IsTeam leaves the flag as
// it is.
type ParticipantInput struct {
	ID       string         `json:"id,omitempty"`
	Name     string         `json:"name,omitempty"`
	IsTeam   *bool          `json:"isTeam,omitempty"`
	Notes    string         `json:"notes,omitempty"`
	Location string         `json:"location,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// ListFilter narrows a participant listing.
type ListFilter struct {
	// IsTeam filters on the team flag when set.
	IsTeam *bool
	// Name filters on a case-sensitive substring when set.
	Name string
}

// TeamInput is the composite payload for a team upsert: the team row plus
// its complete member set. A nil MemberIDs leaves the membership alone; an
// empty one clears it. Members may themselves be teams.
type TeamInput struct {
	ID        string         `json:"id,omitempty"`
	Name      string         `json:"name,omitempty"`
	Notes     string         `json:"notes,omitempty"`
	Location  string         `json:"location,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	MemberIDs []string       `json:"memberIds,omitempty"`
}

// TeamResult reports what a composite team upsert did.
type TeamResult struct {
	Team    schema.Participant `json:"team"`
	Members upsert.ChangeSet   `json:"members"`
}

// TeamNode is one participant in a rebuilt team tree: the team or player
// itself plus its resolved members, recursively.
type TeamNode struct {
	schema.Participant
	Members []TeamNode `json:"members,omitempty"`
}
