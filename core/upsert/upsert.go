package upsert

import (
	"context"
	"encoding/json"
	"reflect"

	"scorebook/core/errs"
	"scorebook/core/store"
	"scorebook/core/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Outcome says what a single upsert did.
type Outcome string

const (
	Inserted  Outcome = "inserted"
	Updated   Outcome = "updated"
	Unchanged Outcome = "unchanged"
)

// Result reports the outcome and the id the row lives under, which is the
// existing row's id when the record matched by an alternate condition.
type Result struct {
	Outcome Outcome
	ID      string
}

// bookkeeping columns never participate in diffs.
var skipDiff = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// Engine performs idempotent reconciling writes on top of a Store.
type Engine struct {
	store store.Store
	log   *zap.Logger
}

// New creates an Engine. A nil logger disables diagnostics.
func New(s store.Store, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{store: s, log: log}
}

// Upsert reconciles one record against the table.
//
// The existing row is resolved by the record's id first, then by alt when
// the id finds nothing. A match produces a field-level diff in which a nil
// or absent value is never a change; a non-empty diff updates the row,
// an empty one reports Unchanged. No match inserts the record, minting a
// UUID when the record has no id. A record with neither id nor alt cannot
// be resolved and is a caller error.
func (e *Engine) Upsert(ctx context.Context, table string, record store.Row, alt *store.Query) (Result, error) {
	id := utils.ToString(record["id"])
	if id == "" && alt == nil {
		return Result{}, errs.Invalid(table, "id", "record carries no identifier and no alternate condition")
	}

	existing, err := e.resolve(ctx, table, id, alt)
	if err != nil {
		return Result{}, err
	}

	if existing != nil {
		existingID := utils.ToString(existing["id"])
		changes := diff(record, existing)
		if len(changes) == 0 {
			return Result{Outcome: Unchanged, ID: existingID}, nil
		}
		if err := e.store.Update(ctx, table, existingID, changes); err != nil {
			return Result{}, err
		}
		return Result{Outcome: Updated, ID: existingID}, nil
	}

	insert := make(store.Row, len(record))
	for col, val := range record {
		if val == nil {
			continue
		}
		insert[col] = val
	}
	if id == "" {
		id = uuid.NewString()
	}
	insert["id"] = id

	if err := e.store.Insert(ctx, table, insert); err != nil {
		return Result{}, err
	}
	return Result{Outcome: Inserted, ID: id}, nil
}

// resolve looks the record up by primary id, then by the alternate
// condition. A miss is nil, not an error.
func (e *Engine) resolve(ctx context.Context, table, id string, alt *store.Query) (store.Row, error) {
	if id != "" {
		row, err := e.store.SelectOne(ctx, table, store.ByID(id))
		if err == nil {
			return row, nil
		}
		if !errs.IsNotFound(err) {
			return nil, err
		}
	}
	if alt != nil {
		row, err := e.store.SelectOne(ctx, table, alt)
		if err == nil {
			return row, nil
		}
		if !errs.IsNotFound(err) {
			return nil, err
		}
	}
	return nil, nil
}

// diff returns the supplied columns whose values differ from the persisted
// row. Nil supplied values are treated as absent, so an upsert never nulls
// out a field it does not mention.
func diff(record, existing store.Row) store.Row {
	changes := store.Row{}
	for col, val := range record {
		if skipDiff[col] || val == nil {
			continue
		}
		if !valuesEqual(val, existing[col]) {
			changes[col] = val
		}
	}
	return changes
}

// valuesEqual compares a supplied value against a persisted one across the
// shapes drivers produce: bools may come back as integers, numbers as any
// width, metadata as a JSON-decoded map.
func valuesEqual(supplied, persisted any) bool {
	if persisted == nil {
		return false
	}

	if b, ok := supplied.(bool); ok {
		return utils.ToBool(persisted) == b
	}
	if b, ok := persisted.(bool); ok {
		return utils.ToBool(supplied) == b
	}

	if utils.IsNumeric(supplied) && utils.IsNumeric(persisted) {
		return utils.ToFloat(supplied) == utils.ToFloat(persisted)
	}

	sm, sIsMap := asMap(supplied)
	pm, pIsMap := asMap(persisted)
	if sIsMap || pIsMap {
		if sIsMap != pIsMap {
			return false
		}
		return reflect.DeepEqual(jsonNormalize(sm), jsonNormalize(pm))
	}

	return utils.ToString(supplied) == utils.ToString(persisted)
}

func asMap(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

// jsonNormalize pushes a map through JSON so in-process values (int, nested
// structs) and database values (everything float64) compare equal.
func jsonNormalize(m map[string]any) map[string]any {
	raw, err := json.Marshal(m)
	if err != nil {
		return m
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return m
	}
	return out
}
