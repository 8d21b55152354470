package schema

import (
	"gorm.io/datatypes"
)

// Storage identifies one local store (device). Exactly one row has
// IsLocal=true, minted the first time the store is opened; rows for foreign
// stores are recorded when their snapshots are imported.
type Storage struct {
	ID        string  `gorm:"column:id;primaryKey;size:36" json:"id"`
	Name      *string `gorm:"column:name;size:120" json:"name,omitempty"`
	IsLocal   bool    `gorm:"column:is_local" json:"isLocal"`
	CreatedAt int64   `gorm:"column:created_at;autoCreateTime:milli" json:"createdAt"`
	UpdatedAt int64   `gorm:"column:updated_at;autoUpdateTime:milli" json:"updatedAt"`
}

func (Storage) TableName() string { return TableStorages }

// Sport is a named category of competition. The name is the natural key a
// sport plugin registers under, so it is required and unique.
type Sport struct {
	ID        string            `gorm:"column:id;primaryKey;size:36" json:"id"`
	Name      string            `gorm:"column:name;size:120;not null;uniqueIndex" json:"name"`
	Notes     *string           `gorm:"column:notes;size:1000" json:"notes,omitempty"`
	Location  *string           `gorm:"column:location;size:255" json:"location,omitempty"`
	Metadata  datatypes.JSONMap `gorm:"column:metadata" json:"metadata,omitempty"`
	CreatedAt int64             `gorm:"column:created_at;autoCreateTime:milli" json:"createdAt"`
	UpdatedAt int64             `gorm:"column:updated_at;autoUpdateTime:milli" json:"updatedAt"`
}

func (Sport) TableName() string { return TableSports }

// ScoreFormat names a scoring method, optionally scoped to one sport.
// A nil SportID marks a generic format; registering the same method name for
// a sport promotes the generic row instead of duplicating it.
type ScoreFormat struct {
	ID        string            `gorm:"column:id;primaryKey;size:36" json:"id"`
	Name      string            `gorm:"column:name;size:120;not null;uniqueIndex:idx_score_format_name" json:"name"`
	SportID   *string           `gorm:"column:sport_id;size:36;uniqueIndex:idx_score_format_name" json:"sportId,omitempty"`
	Notes     *string           `gorm:"column:notes;size:1000" json:"notes,omitempty"`
	Location  *string           `gorm:"column:location;size:255" json:"location,omitempty"`
	Metadata  datatypes.JSONMap `gorm:"column:metadata" json:"metadata,omitempty"`
	CreatedAt int64             `gorm:"column:created_at;autoCreateTime:milli" json:"createdAt"`
	UpdatedAt int64             `gorm:"column:updated_at;autoUpdateTime:milli" json:"updatedAt"`
}

func (ScoreFormat) TableName() string { return TableScoreFormats }

// EventFormat is a reusable, venue-independent competition structure for a
// sport. Duration and team-size bounds are base values a venue registration
// may override.
type EventFormat struct {
	ID              string            `gorm:"column:id;primaryKey;size:36" json:"id"`
	SportID         string            `gorm:"column:sport_id;size:36;not null;index" json:"sportId"`
	ScoreFormatID   string            `gorm:"column:score_format_id;size:36;not null" json:"scoreFormatId"`
	Name            *string           `gorm:"column:name;size:120" json:"name,omitempty"`
	Notes           *string           `gorm:"column:notes;size:1000" json:"notes,omitempty"`
	Location        *string           `gorm:"column:location;size:255" json:"location,omitempty"`
	DurationMinutes *int              `gorm:"column:duration_minutes" json:"durationMinutes,omitempty"`
	MinTeamSize     *int              `gorm:"column:min_team_size" json:"minTeamSize,omitempty"`
	MaxTeamSize     *int              `gorm:"column:max_team_size" json:"maxTeamSize,omitempty"`
	Metadata        datatypes.JSONMap `gorm:"column:metadata" json:"metadata,omitempty"`
	CreatedAt       int64             `gorm:"column:created_at;autoCreateTime:milli" json:"createdAt"`
	UpdatedAt       int64             `gorm:"column:updated_at;autoUpdateTime:milli" json:"updatedAt"`
}

func (EventFormat) TableName() string { return TableEventFormats }

// EventFormatStage is one node in the recursive stage tree owned by an
// EventFormat. Number orders siblings; ParentID is nil for roots.
type EventFormatStage struct {
	ID            string            `gorm:"column:id;primaryKey;size:36" json:"id"`
	EventFormatID string            `gorm:"column:event_format_id;size:36;not null;index" json:"eventFormatId"`
	ParentID      *string           `gorm:"column:parent_id;size:36;index" json:"parentId,omitempty"`
	Number        int               `gorm:"column:number;not null" json:"number"`
	Name          *string           `gorm:"column:name;size:120" json:"name,omitempty"`
	Notes         *string           `gorm:"column:notes;size:1000" json:"notes,omitempty"`
	Location      *string           `gorm:"column:location;size:255" json:"location,omitempty"`
	Metadata      datatypes.JSONMap `gorm:"column:metadata" json:"metadata,omitempty"`
	CreatedAt     int64             `gorm:"column:created_at;autoCreateTime:milli" json:"createdAt"`
	UpdatedAt     int64             `gorm:"column:updated_at;autoUpdateTime:milli" json:"updatedAt"`
}

func (EventFormatStage) TableName() string { return TableEventFormatStages }

// Venue is a physical location where events take place.
type Venue struct {
	ID        string            `gorm:"column:id;primaryKey;size:36" json:"id"`
	Name      *string           `gorm:"column:name;size:120" json:"name,omitempty"`
	Notes     *string           `gorm:"column:notes;size:1000" json:"notes,omitempty"`
	Location  *string           `gorm:"column:location;size:255" json:"location,omitempty"`
	Metadata  datatypes.JSONMap `gorm:"column:metadata" json:"metadata,omitempty"`
	CreatedAt int64             `gorm:"column:created_at;autoCreateTime:milli" json:"createdAt"`
	UpdatedAt int64             `gorm:"column:updated_at;autoUpdateTime:milli" json:"updatedAt"`
}

func (Venue) TableName() string { return TableVenues }

// VenueEventFormat binds a Venue to an EventFormat, optionally overriding
// duration and team-size bounds. Registering also snapshots the format's
// stage tree into VenueEventFormatStage rows.
type VenueEventFormat struct {
	ID              string            `gorm:"column:id;primaryKey;size:36" json:"id"`
	VenueID         string            `gorm:"column:venue_id;size:36;not null;uniqueIndex:idx_venue_format" json:"venueId"`
	EventFormatID   string            `gorm:"column:event_format_id;size:36;not null;uniqueIndex:idx_venue_format" json:"eventFormatId"`
	Name            *string           `gorm:"column:name;size:120" json:"name,omitempty"`
	Notes           *string           `gorm:"column:notes;size:1000" json:"notes,omitempty"`
	Location        *string           `gorm:"column:location;size:255" json:"location,omitempty"`
	DurationMinutes *int              `gorm:"column:duration_minutes" json:"durationMinutes,omitempty"`
	MinTeamSize     *int              `gorm:"column:min_team_size" json:"minTeamSize,omitempty"`
	MaxTeamSize     *int              `gorm:"column:max_team_size" json:"maxTeamSize,omitempty"`
	Metadata        datatypes.JSONMap `gorm:"column:metadata" json:"metadata,omitempty"`
	CreatedAt       int64             `gorm:"column:created_at;autoCreateTime:milli" json:"createdAt"`
	UpdatedAt       int64             `gorm:"column:updated_at;autoUpdateTime:milli" json:"updatedAt"`
}

func (VenueEventFormat) TableName() string { return TableVenueEventFormats }

// VenueEventFormatStage mirrors one EventFormatStage 1:1 at venue
// registration time, with venue-specific metadata merged over the format's.
type VenueEventFormatStage struct {
	ID                 string            `gorm:"column:id;primaryKey;size:36" json:"id"`
	VenueEventFormatID string            `gorm:"column:venue_event_format_id;size:36;not null;index" json:"venueEventFormatId"`
	EventFormatStageID string            `gorm:"column:event_format_stage_id;size:36;not null;index" json:"eventFormatStageId"`
	ParentID           *string           `gorm:"column:parent_id;size:36;index" json:"parentId,omitempty"`
	Number             int               `gorm:"column:number;not null" json:"number"`
	Name               *string           `gorm:"column:name;size:120" json:"name,omitempty"`
	Notes              *string           `gorm:"column:notes;size:1000" json:"notes,omitempty"`
	Location           *string           `gorm:"column:location;size:255" json:"location,omitempty"`
	Metadata           datatypes.JSONMap `gorm:"column:metadata" json:"metadata,omitempty"`
	CreatedAt          int64             `gorm:"column:created_at;autoCreateTime:milli" json:"createdAt"`
	UpdatedAt          int64             `gorm:"column:updated_at;autoUpdateTime:milli" json:"updatedAt"`
}

func (VenueEventFormatStage) TableName() string { return TableVenueEventFormatStages }

// Participant is a unified player/team entity distinguished by IsTeam.
type Participant struct {
	ID        string            `gorm:"column:id;primaryKey;size:36" json:"id"`
	IsTeam    bool              `gorm:"column:is_team" json:"isTeam"`
	Name      *string           `gorm:"column:name;size:120" json:"name,omitempty"`
	Notes     *string           `gorm:"column:notes;size:1000" json:"notes,omitempty"`
	Location  *string           `gorm:"column:location;size:255" json:"location,omitempty"`
	Metadata  datatypes.JSONMap `gorm:"column:metadata" json:"metadata,omitempty"`
	CreatedAt int64             `gorm:"column:created_at;autoCreateTime:milli" json:"createdAt"`
	UpdatedAt int64             `gorm:"column:updated_at;autoUpdateTime:milli" json:"updatedAt"`
}

func (Participant) TableName() string { return TableParticipants }

// TeamMember is the edge (teamId, participantId). The referenced participant
// may itself be a team (nested team) or a player (leaf); a team is never its
// own member.
type TeamMember struct {
	ID            string `gorm:"column:id;primaryKey;size:36" json:"id"`
	TeamID        string `gorm:"column:team_id;size:36;not null;uniqueIndex:idx_team_member" json:"teamId"`
	ParticipantID string `gorm:"column:participant_id;size:36;not null;uniqueIndex:idx_team_member" json:"participantId"`
	CreatedAt     int64  `gorm:"column:created_at;autoCreateTime:milli" json:"createdAt"`
	UpdatedAt     int64  `gorm:"column:updated_at;autoUpdateTime:milli" json:"updatedAt"`
}

func (TeamMember) TableName() string { return TableTeamMembers }

// Event statuses.
const (
	EventStatusScheduled = "scheduled"
	EventStatusActive    = "active"
	EventStatusCompleted = "completed"
)

// Event is one concrete occurrence of a competition at a venue. Its stage
// tree is generated from the venue format's tree at creation time.
type Event struct {
	ID                 string            `gorm:"column:id;primaryKey;size:36" json:"id"`
	VenueEventFormatID string            `gorm:"column:venue_event_format_id;size:36;not null;index" json:"venueEventFormatId"`
	Status             string            `gorm:"column:status;size:20;not null;default:scheduled" json:"status"`
	StartsAt           *int64            `gorm:"column:starts_at" json:"startsAt,omitempty"`
	Name               *string           `gorm:"column:name;size:120" json:"name,omitempty"`
	Notes              *string           `gorm:"column:notes;size:1000" json:"notes,omitempty"`
	Location           *string           `gorm:"column:location;size:255" json:"location,omitempty"`
	Metadata           datatypes.JSONMap `gorm:"column:metadata" json:"metadata,omitempty"`
	CreatedAt          int64             `gorm:"column:created_at;autoCreateTime:milli" json:"createdAt"`
	UpdatedAt          int64             `gorm:"column:updated_at;autoUpdateTime:milli" json:"updatedAt"`
}

func (Event) TableName() string { return TableEvents }

// EventParticipant links a Participant to an Event.
type EventParticipant struct {
	ID            string `gorm:"column:id;primaryKey;size:36" json:"id"`
	EventID       string `gorm:"column:event_id;size:36;not null;uniqueIndex:idx_event_participant" json:"eventId"`
	ParticipantID string `gorm:"column:participant_id;size:36;not null;uniqueIndex:idx_event_participant" json:"participantId"`
	CreatedAt     int64  `gorm:"column:created_at;autoCreateTime:milli" json:"createdAt"`
	UpdatedAt     int64  `gorm:"column:updated_at;autoUpdateTime:milli" json:"updatedAt"`
}

func (EventParticipant) TableName() string { return TableEventParticipants }

// EventStage is one node of an event's concrete stage tree, generated 1:1
// from the VenueEventFormatStage tree when the event is created.
type EventStage struct {
	ID                      string            `gorm:"column:id;primaryKey;size:36" json:"id"`
	EventID                 string            `gorm:"column:event_id;size:36;not null;index" json:"eventId"`
	VenueEventFormatStageID string            `gorm:"column:venue_event_format_stage_id;size:36;not null;index" json:"venueEventFormatStageId"`
	ParentID                *string           `gorm:"column:parent_id;size:36;index" json:"parentId,omitempty"`
	Number                  int               `gorm:"column:number;not null" json:"number"`
	Name                    *string           `gorm:"column:name;size:120" json:"name,omitempty"`
	Notes                   *string           `gorm:"column:notes;size:1000" json:"notes,omitempty"`
	Location                *string           `gorm:"column:location;size:255" json:"location,omitempty"`
	Metadata                datatypes.JSONMap `gorm:"column:metadata" json:"metadata,omitempty"`
	CreatedAt               int64             `gorm:"column:created_at;autoCreateTime:milli" json:"createdAt"`
	UpdatedAt               int64             `gorm:"column:updated_at;autoUpdateTime:milli" json:"updatedAt"`
}

func (EventStage) TableName() string { return TableEventStages }

// ParticipantEventStageScore is one raw score value for one participant at
// one event stage, plus the fields derived from it by the sport's scoring
// method. (event_stage_id, participant_id) is unique.
type ParticipantEventStageScore struct {
	ID            string            `gorm:"column:id;primaryKey;size:36" json:"id"`
	EventStageID  string            `gorm:"column:event_stage_id;size:36;not null;uniqueIndex:idx_stage_participant" json:"eventStageId"`
	ParticipantID string            `gorm:"column:participant_id;size:36;not null;uniqueIndex:idx_stage_participant" json:"participantId"`
	RawValue      *float64          `gorm:"column:raw_value" json:"rawValue,omitempty"`
	Points        *float64          `gorm:"column:points" json:"points,omitempty"`
	ScoreType     *string           `gorm:"column:score_type;size:40" json:"scoreType,omitempty"`
	WinMargin     *float64          `gorm:"column:win_margin" json:"winMargin,omitempty"`
	LossMargin    *float64          `gorm:"column:loss_margin" json:"lossMargin,omitempty"`
	Completed     bool              `gorm:"column:completed" json:"completed"`
	Metadata      datatypes.JSONMap `gorm:"column:metadata" json:"metadata,omitempty"`
	CreatedAt     int64             `gorm:"column:created_at;autoCreateTime:milli" json:"createdAt"`
	UpdatedAt     int64             `gorm:"column:updated_at;autoUpdateTime:milli" json:"updatedAt"`
}

func (ParticipantEventStageScore) TableName() string { return TableScores }

// Photo is a content-addressed image softly referenced to any entity via
// (RefID, RefTable). The payload lives in object storage under the hash;
// only the row travels in snapshots.
type Photo struct {
	ID          string            `gorm:"column:id;primaryKey;size:36" json:"id"`
	Hash        string            `gorm:"column:hash;size:64;not null;uniqueIndex" json:"hash"`
	RefID       string            `gorm:"column:ref_id;size:36;not null;index" json:"refId"`
	RefTable    string            `gorm:"column:ref_table;size:64;not null" json:"refTable"`
	ContentType string            `gorm:"column:content_type;size:100" json:"contentType"`
	Size        int64             `gorm:"column:size" json:"size"`
	Name        *string           `gorm:"column:name;size:255" json:"name,omitempty"`
	Metadata    datatypes.JSONMap `gorm:"column:metadata" json:"metadata,omitempty"`
	CreatedAt   int64             `gorm:"column:created_at;autoCreateTime:milli" json:"createdAt"`
	UpdatedAt   int64             `gorm:"column:updated_at;autoUpdateTime:milli" json:"updatedAt"`
}

func (Photo) TableName() string { return TablePhotos }

// MergeEntry permanently maps a foreign row, identified by
// (ForeignStorageID, ForeignID), to the local id assigned when the row was
// first imported. The pair is unique for the life of the local store.
type MergeEntry struct {
	ID               string `gorm:"column:id;primaryKey;size:36" json:"id"`
	ForeignStorageID string `gorm:"column:foreign_storage_id;size:36;not null;uniqueIndex:idx_foreign_row" json:"foreignStorageId"`
	ForeignID        string `gorm:"column:foreign_id;size:36;not null;uniqueIndex:idx_foreign_row" json:"foreignId"`
	RefTable         string `gorm:"column:ref_table;size:64;not null" json:"refTable"`
	LocalID          string `gorm:"column:local_id;size:36;not null;index" json:"localId"`
	CreatedAt        int64  `gorm:"column:created_at;autoCreateTime:milli" json:"createdAt"`
}

func (MergeEntry) TableName() string { return TableMergeEntries }
