package golf

import (
	"fmt"

	"scorebook/core/errs"
	"scorebook/core/schema"
	"scorebook/core/scoring"
	"scorebook/core/utils"
)

// SportName is the name the plugin registers under.
const SportName = "golf"

// DefaultHoles is the stage count used when a format does not say.
const DefaultHoles = 18

// DefaultPar is the par assigned to generated stages. Real courses override
// it per hole in stage metadata.
const DefaultPar = 4

// Plugin implements scoring.Plugin for golf: stages are holes, raw values
// are stroke counts.
type Plugin struct{}

// New creates the golf plugin.
func New() *Plugin {
	return &Plugin{}
}

// Name returns the sport name.
func (p *Plugin) Name() string {
	return SportName
}

// Methods returns golf's scoring methods, stroke play first as the default.
func (p *Plugin) Methods() []scoring.Method {
	return []scoring.Method{Stroke{}, Stableford{}}
}

// DefaultStages expands a hole count into stage plans numbered from 1, all
// at DefaultPar. A non-positive count means a standard round.
func (p *Plugin) DefaultStages(count int) []scoring.StagePlan {
	if count <= 0 {
		count = DefaultHoles
	}
	plans := make([]scoring.StagePlan, 0, count)
	for i := 1; i <= count; i++ {
		plans = append(plans, scoring.StagePlan{
			Number:   i,
			Name:     fmt.Sprintf("Hole %d", i),
			Metadata: map[string]any{"par": DefaultPar},
		})
	}
	return plans
}

// ValidateMetadata checks stage metadata: when a par is present it must be
// a par golf is played at. Other entity kinds carry no golf rules.
func (p *Plugin) ValidateMetadata(kind string, metadata map[string]any) error {
	switch kind {
	case schema.TableEventFormatStages, schema.TableVenueEventFormatStages, schema.TableEventStages:
	default:
		return nil
	}

	raw, ok := metadata["par"]
	if !ok || raw == nil {
		return nil
	}
	par := utils.ToFloat(raw)
	if par < 3 || par > 6 || par != float64(int(par)) {
		return errs.Invalid(kind, "metadata.par", fmt.Sprintf("par must be a whole number between 3 and 6, got %v", raw))
	}
	return nil
}

// ValidateRawValue rejects stroke counts no round can produce.
func (p *Plugin) ValidateRawValue(raw float64, stage scoring.StageContext) error {
	if raw < 1 || raw != float64(int(raw)) {
		return errs.Invalid(schema.TableScores, "raw_value",
			fmt.Sprintf("stroke count must be a whole number of at least 1, got %v", raw))
	}
	return nil
}

// parOf reads a stage's par, falling back to DefaultPar when the stage
// metadata does not carry one.
func parOf(stage scoring.StageContext) float64 {
	if stage.Metadata != nil {
		if raw, ok := stage.Metadata["par"]; ok && raw != nil {
			return utils.ToFloat(raw)
		}
	}
	return DefaultPar
}
