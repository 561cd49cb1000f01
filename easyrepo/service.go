package easyrepo

import (
	"context"

	"github.com/raywall/storefront/dyndb"
	"github.com/raywall/storefront/keys"
	"github.com/raywall/storefront/pkg/apperr"
	"github.com/raywall/storefront/pkg/metrics"
	"github.com/raywall/storefront/update"
	"github.com/raywall/storefront/validation"
)

// EasyService centralizes validation and storage for one entity type.
// Validation runs before any backend call.
type EasyService[T Record] struct {
	repo  *EasyRepository[T]
	hooks *Hooks[T]
}

// Hooks stores the logic registered to run before creates and updates.
type Hooks[T any] struct {
	BeforeCreate []BeforeSaveHook[T]
	BeforeUpdate []BeforeUpdateHook
}

// BeforeSaveHook may fill derived fields (ids) or reject a new item.
// It runs before validation.
type BeforeSaveHook[T any] func(ctx context.Context, item *T) error

// BeforeUpdateHook may reject an update plan after it was built.
type BeforeUpdateHook func(ctx context.Context, plan *update.Plan) error

// Option configures an EasyService.
type Option func(*options)

type options struct {
	metrics *metrics.Processor
}

// WithMetrics counts records excluded from collection reads.
func WithMetrics(p *metrics.Processor) Option {
	return func(o *options) { o.metrics = p }
}

// NewService creates the service for entity t stored in table.
func NewService[T Record](table dyndb.Table, t keys.EntityType, opts ...Option) *EasyService[T] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return &EasyService[T]{
		repo:  NewRepository[T](table, t, o.metrics),
		hooks: &Hooks[T]{},
	}
}

// Entity reports the entity type the service manages.
func (s *EasyService[T]) Entity() keys.EntityType { return s.repo.Entity }

// RegisterCreateHook adds fn to the BeforeCreate chain.
func (s *EasyService[T]) RegisterCreateHook(fn BeforeSaveHook[T]) {
	s.hooks.BeforeCreate = append(s.hooks.BeforeCreate, fn)
}

// RegisterUpdateHook adds fn to the BeforeUpdate chain.
func (s *EasyService[T]) RegisterUpdateHook(fn BeforeUpdateHook) {
	s.hooks.BeforeUpdate = append(s.hooks.BeforeUpdate, fn)
}

// Get retrieves the record stored under key.
func (s *EasyService[T]) Get(ctx context.Context, key keys.Key) (*T, error) {
	if err := s.checkKey(key); err != nil {
		return nil, err
	}
	return s.repo.get(ctx, key)
}

// List returns every valid record of the entity. Malformed ones are skipped.
func (s *EasyService[T]) List(ctx context.Context) ([]T, error) {
	return s.repo.list(ctx)
}

// Query returns the valid records of one partition under sortPrefix.
func (s *EasyService[T]) Query(ctx context.Context, partition, sortPrefix string) ([]T, error) {
	return s.repo.query(ctx, partition, sortPrefix)
}

// Create runs the hooks, validates item and writes it without overwriting.
// A taken key is a Conflict error.
func (s *EasyService[T]) Create(ctx context.Context, item *T) error {
	for _, hook := range s.hooks.BeforeCreate {
		if err := hook(ctx, item); err != nil {
			return err
		}
	}
	if err := validation.Check(*item); err != nil {
		return err
	}
	if err := s.checkKey((*item).Key()); err != nil {
		return err
	}
	return s.repo.create(ctx, *item)
}

// Update applies the mutable subset of fields to the record under key and
// returns the record as stored afterwards.
func (s *EasyService[T]) Update(ctx context.Context, key keys.Key, fields map[string]any) (*T, error) {
	if err := s.checkKey(key); err != nil {
		return nil, err
	}
	plan, err := update.Build(s.repo.Entity, key, fields)
	if err != nil {
		return nil, err
	}
	for _, hook := range s.hooks.BeforeUpdate {
		if err := hook(ctx, plan); err != nil {
			return nil, err
		}
	}
	return s.repo.update(ctx, plan)
}

// Delete removes the record under key; a missing record is NotFound.
func (s *EasyService[T]) Delete(ctx context.Context, key keys.Key) error {
	if err := s.checkKey(key); err != nil {
		return err
	}
	return s.repo.delete(ctx, key)
}

// Decode checks a raw record against the entity, as reads do.
func (s *EasyService[T]) Decode(item dyndb.Item) (*T, error) {
	return s.repo.decode(item)
}

// Encode renders item as a raw record with its key attributes.
func (s *EasyService[T]) Encode(item T) (dyndb.Item, error) {
	return s.repo.encode(item)
}

// checkKey rejects keys that do not address this entity, such as ids that
// embed a prefix.
func (s *EasyService[T]) checkKey(key keys.Key) error {
	if keys.Classify(key.PK, key.SK) != s.repo.Entity {
		return apperr.Validation("invalid "+s.repo.Entity.String()+" id",
			apperr.Issue{Field: "id", Message: "is not a valid identifier"})
	}
	return nil
}
