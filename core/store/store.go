package store

import (
	"context"
	"fmt"
	"strings"
)

// Row is one table row as a column→value map. Values are normalized driver
// scalars (string, int64, float64, bool, nil) plus map[string]any for the
// metadata column; core/utils converters absorb the remaining driver
// differences.
type Row = map[string]any

// Op is a comparison operator in a query condition.
type Op string

const (
	OpEq   Op = "eq"
	OpNeq  Op = "neq"
	OpIn   Op = "in"
	OpGt   Op = "gt"
	OpGte  Op = "gte"
	OpLt   Op = "lt"
	OpLte  Op = "lte"
	OpLike Op = "like"
)

// Cond is one condition. A nil value with OpEq matches NULL, with OpNeq it
// matches NOT NULL.
type Cond struct {
	Column string
	Op     Op
	Value  any
}

// Order sorts a result set by one column.
type Order struct {
	Column string
	Desc   bool
}

// Query is a conjunction of conditions with optional ordering and limit.
// Build it fluently:
//
//	store.NewQuery().Eq("event_id", id).OrderBy("number", false)
type Query struct {
	Conds  []Cond
	Orders []Order
	Max    int
}

// NewQuery returns an empty query matching every row.
func NewQuery() *Query {
	return &Query{}
}

// ByID returns a query matching the row with the given primary key.
func ByID(id string) *Query {
	return NewQuery().Eq("id", id)
}

// Where appends an arbitrary condition.
func (q *Query) Where(column string, op Op, value any) *Query {
	q.Conds = append(q.Conds, Cond{Column: column, Op: op, Value: value})
	return q
}

// Eq appends column = value, or column IS NULL when value is nil.
func (q *Query) Eq(column string, value any) *Query {
	return q.Where(column, OpEq, value)
}

// Neq appends column <> value, or column IS NOT NULL when value is nil.
func (q *Query) Neq(column string, value any) *Query {
	return q.Where(column, OpNeq, value)
}

// In appends column IN (values...).
func (q *Query) In(column string, values ...any) *Query {
	return q.Where(column, OpIn, values)
}

// Gt appends column > value.
func (q *Query) Gt(column string, value any) *Query {
	return q.Where(column, OpGt, value)
}

// Gte appends column >= value.
func (q *Query) Gte(column string, value any) *Query {
	return q.Where(column, OpGte, value)
}

// Lt appends column < value.
func (q *Query) Lt(column string, value any) *Query {
	return q.Where(column, OpLt, value)
}

// Lte appends column <= value.
func (q *Query) Lte(column string, value any) *Query {
	return q.Where(column, OpLte, value)
}

// Like appends column LIKE pattern.
func (q *Query) Like(column string, pattern string) *Query {
	return q.Where(column, OpLike, pattern)
}

// OrderBy appends a sort column.
func (q *Query) OrderBy(column string, desc bool) *Query {
	q.Orders = append(q.Orders, Order{Column: column, Desc: desc})
	return q
}

// Limit caps the number of returned rows. Zero means no limit.
func (q *Query) Limit(n int) *Query {
	q.Max = n
	return q
}

// String renders the conditions compactly for error messages and logs.
func (q *Query) String() string {
	if q == nil || len(q.Conds) == 0 {
		return "*"
	}
	parts := make([]string, 0, len(q.Conds))
	for _, c := range q.Conds {
		parts = append(parts, fmt.Sprintf("%s %s %v", c.Column, c.Op, c.Value))
	}
	return strings.Join(parts, " AND ")
}

// Store is the row-oriented persistence interface every engine and feature
// works against. Implementations return rows in normalized form (see Row).
type Store interface {
	// Select returns all rows matching the query.
	Select(ctx context.Context, table string, q *Query) ([]Row, error)
	// SelectOne returns the first matching row, or *errs.NotFoundError when
	// there is none.
	SelectOne(ctx context.Context, table string, q *Query) (Row, error)
	// Insert writes a new row. Missing created_at/updated_at are filled
	// when the table carries them.
	Insert(ctx context.Context, table string, row Row) error
	// Update applies the changed columns to the row with the given id and
	// refreshes updated_at. The primary key is never part of changes.
	Update(ctx context.Context, table string, id string, changes Row) error
	// Delete removes all matching rows and reports how many went away.
	Delete(ctx context.Context, table string, q *Query) (int64, error)
	// Count returns the number of matching rows.
	Count(ctx context.Context, table string, q *Query) (int64, error)
}
