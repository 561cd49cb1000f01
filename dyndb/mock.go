// dyndb/mock.go
package dyndb

import (
	"context"

	"github.com/raywall/storefront/keys"
	"github.com/raywall/storefront/update"
)

// MockTable is a Table whose behaviour is set through function fields.
// Unset fields delegate to Fallback when present, otherwise return zero values
// (Get returns ErrNotFound).
type MockTable struct {
	Fallback Table

	GetFn        func(ctx context.Context, key keys.Key) (Item, error)
	CreateFn     func(ctx context.Context, item Item) error
	PutFn        func(ctx context.Context, item Item) error
	UpdateFn     func(ctx context.Context, plan *update.Plan) (Item, error)
	DeleteFn     func(ctx context.Context, key keys.Key, mustExist bool) error
	QueryFn      func(ctx context.Context, partition, sortPrefix string) ([]Item, error)
	ScanFn       func(ctx context.Context, filter keys.Filter) ([]Item, error)
	BatchWriteFn func(ctx context.Context, puts []Item, deletes []keys.Key) error
}

func (m *MockTable) Get(ctx context.Context, key keys.Key) (Item, error) {
	switch {
	case m.GetFn != nil:
		return m.GetFn(ctx, key)
	case m.Fallback != nil:
		return m.Fallback.Get(ctx, key)
	}
	return nil, ErrNotFound
}

func (m *MockTable) Create(ctx context.Context, item Item) error {
	switch {
	case m.CreateFn != nil:
		return m.CreateFn(ctx, item)
	case m.Fallback != nil:
		return m.Fallback.Create(ctx, item)
	}
	return nil
}

func (m *MockTable) Put(ctx context.Context, item Item) error {
	switch {
	case m.PutFn != nil:
		return m.PutFn(ctx, item)
	case m.Fallback != nil:
		return m.Fallback.Put(ctx, item)
	}
	return nil
}

func (m *MockTable) Update(ctx context.Context, plan *update.Plan) (Item, error) {
	switch {
	case m.UpdateFn != nil:
		return m.UpdateFn(ctx, plan)
	case m.Fallback != nil:
		return m.Fallback.Update(ctx, plan)
	}
	return nil, ErrNotFound
}

func (m *MockTable) Delete(ctx context.Context, key keys.Key, mustExist bool) error {
	switch {
	case m.DeleteFn != nil:
		return m.DeleteFn(ctx, key, mustExist)
	case m.Fallback != nil:
		return m.Fallback.Delete(ctx, key, mustExist)
	}
	return nil
}

func (m *MockTable) Query(ctx context.Context, partition, sortPrefix string) ([]Item, error) {
	switch {
	case m.QueryFn != nil:
		return m.QueryFn(ctx, partition, sortPrefix)
	case m.Fallback != nil:
		return m.Fallback.Query(ctx, partition, sortPrefix)
	}
	return nil, nil
}

func (m *MockTable) Scan(ctx context.Context, filter keys.Filter) ([]Item, error) {
	switch {
	case m.ScanFn != nil:
		return m.ScanFn(ctx, filter)
	case m.Fallback != nil:
		return m.Fallback.Scan(ctx, filter)
	}
	return nil, nil
}

func (m *MockTable) BatchWrite(ctx context.Context, puts []Item, deletes []keys.Key) error {
	switch {
	case m.BatchWriteFn != nil:
		return m.BatchWriteFn(ctx, puts, deletes)
	case m.Fallback != nil:
		return m.Fallback.BatchWrite(ctx, puts, deletes)
	}
	return nil
}

var _ Table = (*MockTable)(nil)
