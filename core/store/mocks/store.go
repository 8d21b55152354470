package mocks

import (
	"context"

	"scorebook/core/store"

	"github.com/stretchr/testify/mock"
)

// Store is a mock implementation of store.Store
type Store struct {
	mock.Mock
}

func (m *Store) Select(ctx context.Context, table string, q *store.Query) ([]store.Row, error) {
	args := m.Called(ctx, table, q)
	if rows, ok := args.Get(0).([]store.Row); ok {
		return rows, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Store) SelectOne(ctx context.Context, table string, q *store.Query) (store.Row, error) {
	args := m.Called(ctx, table, q)
	if row, ok := args.Get(0).(store.Row); ok {
		return row, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Store) Insert(ctx context.Context, table string, row store.Row) error {
	args := m.Called(ctx, table, row)
	return args.Error(0)
}

func (m *Store) Update(ctx context.Context, table string, id string, changes store.Row) error {
	args := m.Called(ctx, table, id, changes)
	return args.Error(0)
}

func (m *Store) Delete(ctx context.Context, table string, q *store.Query) (int64, error) {
	args := m.Called(ctx, table, q)
	return args.Get(0).(int64), args.Error(1)
}

func (m *Store) Count(ctx context.Context, table string, q *store.Query) (int64, error) {
	args := m.Called(ctx, table, q)
	return args.Get(0).(int64), args.Error(1)
}
