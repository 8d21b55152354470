package scoring

// StagePlan is one stage a plugin's default generator proposes: the sibling
// number, an optional display name and the stage metadata the sport's
// methods will classify against.
type StagePlan struct {
	Number   int            `json:"number"`
	Name     string         `json:"name,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Plugin is the contract a sport module implements. One plugin owns one
// sport: its scoring methods, its default stage layout and its validation
// rules for metadata and raw values.
type Plugin interface {
	// Name is the sport's unique name.
	Name() string
	// Methods lists the sport's scoring methods. The first one is the
	// sport's default.
	Methods() []Method
	// DefaultStages expands a stage count into a concrete stage list.
	DefaultStages(count int) []StagePlan
	// ValidateMetadata checks entity metadata for one entity kind (a table
	// name from core/schema). Unknown kinds pass.
	ValidateMetadata(kind string, metadata map[string]any) error
	// ValidateRawValue checks a raw score before it is written.
	ValidateRawValue(raw float64, stage StageContext) error
}
