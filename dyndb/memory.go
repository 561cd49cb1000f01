// dyndb/memory.go
package dyndb

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/raywall/storefront/keys"
	"github.com/raywall/storefront/update"
)

// MemoryTable is an in-process Table with the same conditional semantics as
// the DynamoDB one. It serves local runs (store.backend=memory) and tests.
type MemoryTable struct {
	mu    sync.RWMutex
	items map[keys.Key]Item
}

// NewMemoryTable returns an empty table.
func NewMemoryTable() *MemoryTable {
	return &MemoryTable{items: make(map[keys.Key]Item)}
}

// Len reports how many records are stored.
func (m *MemoryTable) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

func (m *MemoryTable) Get(_ context.Context, key keys.Key) (Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	item, ok := m.items[key]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(item), nil
}

func (m *MemoryTable) Create(_ context.Context, item Item) error {
	key, ok := KeyOf(item)
	if !ok {
		return fmt.Errorf("dyndb: item has no PK/SK")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.items[key]; exists {
		return ErrConditionFailed
	}
	m.items[key] = clone(item)
	return nil
}

func (m *MemoryTable) Put(_ context.Context, item Item) error {
	key, ok := KeyOf(item)
	if !ok {
		return fmt.Errorf("dyndb: item has no PK/SK")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = clone(item)
	return nil
}

func (m *MemoryTable) Update(_ context.Context, plan *update.Plan) (Item, error) {
	if plan == nil || len(plan.Assignments) == 0 {
		return nil, update.ErrNothingToUpdate
	}

	// marshal first so a bad value leaves the record untouched
	values := make(Item, len(plan.Assignments))
	for _, a := range plan.Assignments {
		av, err := attributevalue.Marshal(a.Value)
		if err != nil {
			return nil, fmt.Errorf("dyndb: marshal %s: %w", a.Field, err)
		}
		values[a.Field] = av
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.items[plan.Key]
	if !ok {
		return nil, ErrNotFound
	}
	next := clone(current)
	for field, av := range values {
		next[field] = av
	}
	m.items[plan.Key] = next
	return clone(next), nil
}

func (m *MemoryTable) Delete(_ context.Context, key keys.Key, mustExist bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.items[key]; !ok && mustExist {
		return ErrNotFound
	}
	delete(m.items, key)
	return nil
}

func (m *MemoryTable) Query(_ context.Context, partition, sortPrefix string) ([]Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var found []keys.Key
	for k := range m.items {
		if k.PK == partition && strings.HasPrefix(k.SK, sortPrefix) {
			found = append(found, k)
		}
	}
	return m.collect(found), nil
}

func (m *MemoryTable) Scan(_ context.Context, filter keys.Filter) ([]Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var found []keys.Key
	for k := range m.items {
		if filter.Match(k) {
			found = append(found, k)
		}
	}
	return m.collect(found), nil
}

func (m *MemoryTable) BatchWrite(_ context.Context, puts []Item, deletes []keys.Key) error {
	batch := make(map[keys.Key]Item, len(puts))
	for _, item := range puts {
		key, ok := KeyOf(item)
		if !ok {
			return fmt.Errorf("dyndb: item has no PK/SK")
		}
		batch[key] = clone(item)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for key, item := range batch {
		m.items[key] = item
	}
	for _, key := range deletes {
		delete(m.items, key)
	}
	return nil
}

// collect returns copies ordered by PK then SK. Caller holds the lock.
func (m *MemoryTable) collect(found []keys.Key) []Item {
	sort.Slice(found, func(i, j int) bool {
		if found[i].PK != found[j].PK {
			return found[i].PK < found[j].PK
		}
		return found[i].SK < found[j].SK
	})
	out := make([]Item, 0, len(found))
	for _, k := range found {
		out = append(out, clone(m.items[k]))
	}
	return out
}

func clone(item Item) Item {
	out := make(Item, len(item))
	for k, v := range item {
		out[k] = v
	}
	return out
}

var _ Table = (*MemoryTable)(nil)
