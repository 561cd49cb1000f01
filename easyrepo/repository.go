package easyrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/raywall/storefront/dyndb"
	"github.com/raywall/storefront/keys"
	"github.com/raywall/storefront/pkg/apperr"
	"github.com/raywall/storefront/pkg/metrics"
	"github.com/raywall/storefront/update"
	"github.com/raywall/storefront/validation"
	"github.com/rs/zerolog/log"
)

// Record is an entity stored in the table under its own key.
type Record interface {
	Key() keys.Key
}

// EasyRepository is the typed view of one entity inside the shared table.
// It translates backend errors into the apperr taxonomy and checks every
// record it reads. Its methods are internal to the package, encouraging use
// through EasyService.
type EasyRepository[T Record] struct {
	Table   dyndb.Table
	Entity  keys.EntityType
	metrics *metrics.Processor
}

// NewRepository binds entity t to table.
func NewRepository[T Record](table dyndb.Table, t keys.EntityType, m *metrics.Processor) *EasyRepository[T] {
	return &EasyRepository[T]{Table: table, Entity: t, metrics: m}
}

// get fetches one record; a malformed one is a DataIntegrity error.
func (r *EasyRepository[T]) get(ctx context.Context, key keys.Key) (*T, error) {
	item, err := r.Table.Get(ctx, key)
	if errors.Is(err, dyndb.ErrNotFound) {
		return nil, apperr.NotFound(r.Entity.String())
	}
	if err != nil {
		return nil, apperr.Storage("get "+r.Entity.String(), err)
	}
	v, err := r.decode(item)
	if err != nil {
		return nil, apperr.DataIntegrity(r.Entity.String(), err)
	}
	return v, nil
}

// list scans the whole entity collection.
func (r *EasyRepository[T]) list(ctx context.Context) ([]T, error) {
	items, err := r.Table.Scan(ctx, keys.ScanFilter(r.Entity))
	if err != nil {
		return nil, apperr.Storage("list "+r.Entity.String(), err)
	}
	return r.collect(ctx, items), nil
}

// query reads one partition.
func (r *EasyRepository[T]) query(ctx context.Context, partition, sortPrefix string) ([]T, error) {
	items, err := r.Table.Query(ctx, partition, sortPrefix)
	if err != nil {
		return nil, apperr.Storage("query "+r.Entity.String(), err)
	}
	return r.collect(ctx, items), nil
}

// create writes item only when its key is free.
func (r *EasyRepository[T]) create(ctx context.Context, item T) error {
	raw, err := r.encode(item)
	if err != nil {
		return err
	}
	err = r.Table.Create(ctx, raw)
	if errors.Is(err, dyndb.ErrConditionFailed) {
		return apperr.Conflict(r.Entity.String())
	}
	if err != nil {
		return apperr.Storage("create "+r.Entity.String(), err)
	}
	return nil
}

// update applies plan and returns the checked record after the write.
func (r *EasyRepository[T]) update(ctx context.Context, plan *update.Plan) (*T, error) {
	item, err := r.Table.Update(ctx, plan)
	if errors.Is(err, dyndb.ErrNotFound) {
		return nil, apperr.NotFound(r.Entity.String())
	}
	if err != nil {
		if apperr.KindOf(err) == apperr.KindValidation {
			return nil, err
		}
		return nil, apperr.Storage("update "+r.Entity.String(), err)
	}
	v, err := r.decode(item)
	if err != nil {
		return nil, apperr.DataIntegrity(r.Entity.String(), err)
	}
	return v, nil
}

// delete removes key, failing with NotFound when it is absent.
func (r *EasyRepository[T]) delete(ctx context.Context, key keys.Key) error {
	err := r.Table.Delete(ctx, key, true)
	if errors.Is(err, dyndb.ErrNotFound) {
		return apperr.NotFound(r.Entity.String())
	}
	if err != nil {
		return apperr.Storage("delete "+r.Entity.String(), err)
	}
	return nil
}

// collect decodes a scan or query page, dropping records that do not belong
// to the entity or fail validation.
func (r *EasyRepository[T]) collect(ctx context.Context, items []dyndb.Item) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		v, err := r.decode(item)
		if err != nil {
			r.exclude(ctx, item, err)
			continue
		}
		out = append(out, *v)
	}
	return out
}

func (r *EasyRepository[T]) exclude(ctx context.Context, item dyndb.Item, cause error) {
	key, _ := dyndb.KeyOf(item)
	log.Ctx(ctx).Warn().
		Err(cause).
		Str("entity", r.Entity.String()).
		Str("pk", key.PK).
		Str("sk", key.SK).
		Msg("excluding malformed record")
	_ = r.metrics.Inc(metrics.RecordsExcluded, map[string]string{"entity": r.Entity.String()})
}

// decode turns a raw record into T, checking that its key classifies as the
// repository entity, that the attributes agree with the key and that the
// value passes validation.
func (r *EasyRepository[T]) decode(item dyndb.Item) (*T, error) {
	key, ok := dyndb.KeyOf(item)
	if !ok {
		return nil, apperr.Validation("record has no string PK/SK")
	}
	if got := keys.Classify(key.PK, key.SK); got != r.Entity {
		return nil, apperr.Validation(fmt.Sprintf("key %s is a %s, not a %s", key, got, r.Entity))
	}

	var v T
	if err := attributevalue.UnmarshalMap(item, &v); err != nil {
		return nil, apperr.Validation("undecodable record: " + err.Error())
	}
	if err := validation.Check(v); err != nil {
		return nil, err
	}
	if v.Key() != key {
		return nil, apperr.Validation(fmt.Sprintf("attributes address %s, stored under %s", v.Key(), key))
	}
	return &v, nil
}

// encode renders item with its PK/SK attributes.
func (r *EasyRepository[T]) encode(item T) (dyndb.Item, error) {
	raw, err := attributevalue.MarshalMap(item)
	if err != nil {
		return nil, apperr.Storage("encode "+r.Entity.String(), err)
	}
	key := item.Key()
	raw[keys.AttrPK] = &types.AttributeValueMemberS{Value: key.PK}
	raw[keys.AttrSK] = &types.AttributeValueMemberS{Value: key.SK}
	return raw, nil
}
