package schema

// Table names as they appear in the database and in snapshot files.
const (
	TableStorages               = "storages"
	TableSports                 = "sports"
	TableScoreFormats           = "score_formats"
	TableEventFormats           = "event_formats"
	TableEventFormatStages      = "event_format_stages"
	TableVenues                 = "venues"
	TableVenueEventFormats      = "venue_event_formats"
	TableVenueEventFormatStages = "venue_event_format_stages"
	TableParticipants           = "participants"
	TableTeamMembers            = "team_members"
	TableEvents                 = "events"
	TableEventParticipants      = "event_participants"
	TableEventStages            = "event_stages"
	TableScores                 = "participant_event_stage_scores"
	TablePhotos                 = "photos"
	TableMergeEntries           = "merge_entries"
)

// Table describes one registry entry. RefColumns lists every column holding
// the id of another row (including self-referential parent_id and the soft
// ref_id on photos); the importer remaps each of them through the merge map.
// Synced=false keeps a table out of snapshots entirely.
type Table struct {
	Name       string
	Model      func() any
	RefColumns []string
	Synced     bool
}

// Tables is the registry in dependency order: every table appears after all
// tables it references. Migration and snapshot import both walk this order.
var Tables = []Table{
	{Name: TableStorages, Model: func() any { return &Storage{} }},
	{Name: TableSports, Model: func() any { return &Sport{} }, Synced: true},
	{Name: TableScoreFormats, Model: func() any { return &ScoreFormat{} },
		RefColumns: []string{"sport_id"}, Synced: true},
	{Name: TableEventFormats, Model: func() any { return &EventFormat{} },
		RefColumns: []string{"sport_id", "score_format_id"}, Synced: true},
	{Name: TableEventFormatStages, Model: func() any { return &EventFormatStage{} },
		RefColumns: []string{"event_format_id", "parent_id"}, Synced: true},
	{Name: TableVenues, Model: func() any { return &Venue{} }, Synced: true},
	{Name: TableVenueEventFormats, Model: func() any { return &VenueEventFormat{} },
		RefColumns: []string{"venue_id", "event_format_id"}, Synced: true},
	{Name: TableVenueEventFormatStages, Model: func() any { return &VenueEventFormatStage{} },
		RefColumns: []string{"venue_event_format_id", "event_format_stage_id", "parent_id"}, Synced: true},
	{Name: TableParticipants, Model: func() any { return &Participant{} }, Synced: true},
	{Name: TableTeamMembers, Model: func() any { return &TeamMember{} },
		RefColumns: []string{"team_id", "participant_id"}, Synced: true},
	{Name: TableEvents, Model: func() any { return &Event{} },
		RefColumns: []string{"venue_event_format_id"}, Synced: true},
	{Name: TableEventParticipants, Model: func() any { return &EventParticipant{} },
		RefColumns: []string{"event_id", "participant_id"}, Synced: true},
	{Name: TableEventStages, Model: func() any { return &EventStage{} },
		RefColumns: []string{"event_id", "venue_event_format_stage_id", "parent_id"}, Synced: true},
	{Name: TableScores, Model: func() any { return &ParticipantEventStageScore{} },
		RefColumns: []string{"event_stage_id", "participant_id"}, Synced: true},
	{Name: TablePhotos, Model: func() any { return &Photo{} },
		RefColumns: []string{"ref_id"}, Synced: true},
	{Name: TableMergeEntries, Model: func() any { return &MergeEntry{} },
		RefColumns: []string{"foreign_storage_id", "local_id"}},
}

// TableByName returns the registry entry for name.
func TableByName(name string) (Table, bool) {
	for _, t := range Tables {
		if t.Name == name {
			return t, true
		}
	}
	return Table{}, false
}

// SyncedTables returns the names of all snapshot-eligible tables in
// dependency order.
func SyncedTables() []string {
	names := make([]string, 0, len(Tables))
	for _, t := range Tables {
		if t.Synced {
			names = append(names, t.Name)
		}
	}
	return names
}

// Models returns one instance per registered table, in dependency order,
// ready to hand to AutoMigrate.
func Models() []any {
	models := make([]any, 0, len(Tables))
	for _, t := range Tables {
		models = append(models, t.Model())
	}
	return models
}
