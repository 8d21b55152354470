package upsert

import (
	"context"

	"scorebook/core/store"
	"scorebook/core/utils"

	"go.uber.org/zap"
)

// ChangeSet tallies what a child-set reconciliation did.
type ChangeSet struct {
	Inserted  int `json:"inserted"`
	Updated   int `json:"updated"`
	Unchanged int `json:"unchanged"`
	Pruned    int `json:"pruned"`
}

// Add folds another ChangeSet into this one.
func (c *ChangeSet) Add(other ChangeSet) {
	c.Inserted += other.Inserted
	c.Updated += other.Updated
	c.Unchanged += other.Unchanged
	c.Pruned += other.Pruned
}

// Total returns the number of rows touched or inspected.
func (c ChangeSet) Total() int {
	return c.Inserted + c.Updated + c.Unchanged + c.Pruned
}

// ReplaceSpec describes one child-set reconciliation: the supplied rows
// become the complete child set under Scope, nothing more and nothing less.
type ReplaceSpec struct {
	// Table the children live in.
	Table string
	// Scope selects the persisted children of the immediate parent. Pruning
	// never reaches outside it.
	Scope *store.Query
	// Rows is the supplied child set. Each row must already carry the
	// parent reference columns.
	Rows []store.Row
	// AltFor, when set, supplies the alternate identity condition for a
	// child without an id (e.g. the (event_stage_id, participant_id) pair
	// of a score), so resupplied children keep their persisted ids.
	AltFor func(store.Row) *store.Query
	// OnPrune, when set, runs before each orphan is deleted so the caller
	// can cascade into dependent tables.
	OnPrune func(ctx context.Context, id string) error
}

// ReplaceChildren reconciles the persisted children within spec.Scope
// against spec.Rows: every supplied child is upserted, then every persisted
// child whose id was not supplied (nor matched) is pruned. The returned
// results align with spec.Rows so callers can recurse under the ids the
// children actually live at. Errors abort immediately; every step is
// idempotent, so the whole call can be retried.
func (e *Engine) ReplaceChildren(ctx context.Context, spec ReplaceSpec) ([]Result, ChangeSet, error) {
	var set ChangeSet

	existing, err := e.store.Select(ctx, spec.Table, spec.Scope)
	if err != nil {
		return nil, set, err
	}

	results := make([]Result, 0, len(spec.Rows))
	keep := make(map[string]bool, len(spec.Rows))
	for _, row := range spec.Rows {
		var alt *store.Query
		if spec.AltFor != nil {
			alt = spec.AltFor(row)
		}
		res, err := e.Upsert(ctx, spec.Table, row, alt)
		if err != nil {
			return results, set, err
		}
		results = append(results, res)
		keep[res.ID] = true

		switch res.Outcome {
		case Inserted:
			set.Inserted++
		case Updated:
			set.Updated++
		case Unchanged:
			set.Unchanged++
		}
	}

	for _, row := range existing {
		id := utils.ToString(row["id"])
		if id == "" || keep[id] {
			continue
		}
		if spec.OnPrune != nil {
			if err := spec.OnPrune(ctx, id); err != nil {
				return results, set, err
			}
		}
		if _, err := e.store.Delete(ctx, spec.Table, store.ByID(id)); err != nil {
			return results, set, err
		}
		e.log.Debug("Pruned orphaned child",
			zap.String("table", spec.Table), zap.String("id", id))
		set.Pruned++
	}

	return results, set, nil
}
