package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"scorebook/core/errs"
	"scorebook/core/schema"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// columnMetadata is the one JSON-encoded column every entity shares.
const columnMetadata = "metadata"

// Gorm implements Store on a GORM connection. It knows the schema registry's
// column sets so it can fill timestamps only where the table carries them.
type Gorm struct {
	db           *gorm.DB
	tableColumns map[string]map[string]bool
}

// NewGorm wraps a connected database in the Store interface.
func NewGorm(db *gorm.DB) *Gorm {
	g := &Gorm{
		db:           db,
		tableColumns: make(map[string]map[string]bool, len(schema.Tables)),
	}
	for _, t := range schema.Tables {
		set := map[string]bool{}
		for _, col := range Columns(t.Model()) {
			set[col] = true
		}
		g.tableColumns[t.Name] = set
	}
	return g
}

func (g *Gorm) Select(ctx context.Context, table string, q *Query) ([]Row, error) {
	var results []map[string]any
	tx := applyQuery(g.db.WithContext(ctx).Table(table), q)
	if err := tx.Find(&results).Error; err != nil {
		return nil, fmt.Errorf("select from %s: %w", table, err)
	}

	rows := make([]Row, len(results))
	for i, raw := range results {
		rows[i] = normalizeRow(raw)
	}
	return rows, nil
}

func (g *Gorm) SelectOne(ctx context.Context, table string, q *Query) (Row, error) {
	limited := *q
	limited.Max = 1
	rows, err := g.Select(ctx, table, &limited)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errs.NotFound(table, q.String())
	}
	return rows[0], nil
}

func (g *Gorm) Insert(ctx context.Context, table string, row Row) error {
	record := prepareWrite(row)

	now := time.Now().UnixMilli()
	cols := g.tableColumns[table]
	if cols["created_at"] {
		if _, ok := record["created_at"]; !ok {
			record["created_at"] = now
		}
	}
	if cols["updated_at"] {
		if _, ok := record["updated_at"]; !ok {
			record["updated_at"] = now
		}
	}

	err := g.db.WithContext(ctx).Table(table).Create(record).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errs.Conflict(table, "unique constraint", record["id"])
	}
	if err != nil {
		return fmt.Errorf("insert into %s: %w", table, err)
	}
	return nil
}

func (g *Gorm) Update(ctx context.Context, table string, id string, changes Row) error {
	record := prepareWrite(changes)
	delete(record, "id")

	if g.tableColumns[table]["updated_at"] {
		if _, ok := record["updated_at"]; !ok {
			record["updated_at"] = time.Now().UnixMilli()
		}
	}
	if len(record) == 0 {
		return nil
	}

	tx := g.db.WithContext(ctx).Table(table).Where("id = ?", id).Updates(record)
	if errors.Is(tx.Error, gorm.ErrDuplicatedKey) {
		return errs.Conflict(table, "unique constraint", id)
	}
	if tx.Error != nil {
		return fmt.Errorf("update %s: %w", table, tx.Error)
	}
	if tx.RowsAffected == 0 {
		return errs.NotFound(table, id)
	}
	return nil
}

func (g *Gorm) Delete(ctx context.Context, table string, q *Query) (int64, error) {
	if q == nil || len(q.Conds) == 0 {
		return 0, fmt.Errorf("refusing to delete from %s without conditions", table)
	}

	tx := applyQuery(g.db.WithContext(ctx).Table(table), q).Delete(nil)
	if tx.Error != nil {
		return 0, fmt.Errorf("delete from %s: %w", table, tx.Error)
	}
	return tx.RowsAffected, nil
}

func (g *Gorm) Count(ctx context.Context, table string, q *Query) (int64, error) {
	var n int64
	tx := applyQuery(g.db.WithContext(ctx).Table(table), q)
	if err := tx.Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}

// applyQuery translates Query conditions to GORM clauses. Columns are
// developer-provided constants, never user input.
func applyQuery(tx *gorm.DB, q *Query) *gorm.DB {
	if q == nil {
		return tx
	}
	for _, c := range q.Conds {
		switch c.Op {
		case OpEq:
			if c.Value == nil {
				tx = tx.Where(c.Column + " IS NULL")
			} else {
				tx = tx.Where(c.Column+" = ?", c.Value)
			}
		case OpNeq:
			if c.Value == nil {
				tx = tx.Where(c.Column + " IS NOT NULL")
			} else {
				tx = tx.Where(c.Column+" <> ?", c.Value)
			}
		case OpIn:
			tx = tx.Where(c.Column+" IN ?", c.Value)
		case OpGt:
			tx = tx.Where(c.Column+" > ?", c.Value)
		case OpGte:
			tx = tx.Where(c.Column+" >= ?", c.Value)
		case OpLt:
			tx = tx.Where(c.Column+" < ?", c.Value)
		case OpLte:
			tx = tx.Where(c.Column+" <= ?", c.Value)
		case OpLike:
			tx = tx.Where(c.Column+" LIKE ?", c.Value)
		}
	}
	for _, o := range q.Orders {
		dir := " ASC"
		if o.Desc {
			dir = " DESC"
		}
		tx = tx.Order(o.Column + dir)
	}
	if q.Max > 0 {
		tx = tx.Limit(q.Max)
	}
	return tx
}

// prepareWrite copies the row and converts open maps to datatypes.JSONMap so
// the driver serializes them as JSON text.
func prepareWrite(row Row) Row {
	record := make(Row, len(row))
	for k, v := range row {
		switch m := v.(type) {
		case map[string]any:
			record[k] = datatypes.JSONMap(m)
		default:
			record[k] = v
		}
	}
	return record
}

// normalizeRow converts driver shapes to the Row contract: []byte becomes
// string and the metadata column becomes a map.
func normalizeRow(raw map[string]any) Row {
	row := make(Row, len(raw))
	for k, v := range raw {
		if k == columnMetadata {
			if m, err := toMetadata(v); err == nil {
				if m != nil {
					row[k] = m
				} else {
					row[k] = nil
				}
				continue
			}
		}
		if b, ok := v.([]byte); ok {
			row[k] = string(b)
			continue
		}
		row[k] = v
	}
	return row
}
