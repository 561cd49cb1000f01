// Package seed resets the table to a known data set.
package seed

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/raywall/storefront/dyndb"
	"github.com/raywall/storefront/keys"
	"github.com/rs/zerolog/log"
)

// Checker validates one raw record and reports its entity type.
type Checker interface {
	CheckRecord(item dyndb.Item) (keys.EntityType, error)
}

// Summary reports what a Reset did.
type Summary struct {
	Deleted int
	Written map[keys.EntityType]int
}

// Seeder replaces the contents of a table with seed records.
type Seeder struct {
	table   dyndb.Table
	checker Checker
	s3      S3Downloader
}

// New creates a Seeder. s3 may be nil when only local files are used.
func New(table dyndb.Table, checker Checker, s3 S3Downloader) *Seeder {
	return &Seeder{table: table, checker: checker, s3: s3}
}

// Run reads source, validates every record and resets the table with them.
func (s *Seeder) Run(ctx context.Context, source string) (Summary, error) {
	data, err := Read(ctx, source, s.s3)
	if err != nil {
		return Summary{}, err
	}
	records, err := Parse(data)
	if err != nil {
		return Summary{}, err
	}
	items, counts, err := s.Prepare(records)
	if err != nil {
		return Summary{}, err
	}
	deleted, err := s.Reset(ctx, items)
	if err != nil {
		return Summary{}, err
	}

	log.Ctx(ctx).Info().Str("source", source).Int("deleted", deleted).Int("written", len(items)).Msg("table reset")
	return Summary{Deleted: deleted, Written: counts}, nil
}

// Prepare marshals and checks every record. Nothing is returned unless all
// of them are valid.
func (s *Seeder) Prepare(records []map[string]any) ([]dyndb.Item, map[keys.EntityType]int, error) {
	items := make([]dyndb.Item, 0, len(records))
	counts := make(map[keys.EntityType]int)
	seen := make(map[keys.Key]int, len(records))

	for i, rec := range records {
		item, err := attributevalue.MarshalMap(rec)
		if err != nil {
			return nil, nil, fmt.Errorf("seed: record %d: %w", i, err)
		}
		t, err := s.checker.CheckRecord(item)
		if err != nil {
			return nil, nil, fmt.Errorf("seed: record %d: %w", i, err)
		}
		k, _ := dyndb.KeyOf(item)
		if prev, dup := seen[k]; dup {
			return nil, nil, fmt.Errorf("seed: record %d repeats key %s of record %d", i, k, prev)
		}
		seen[k] = i
		counts[t]++
		items = append(items, item)
	}
	return items, counts, nil
}

// Reset deletes every record in the table, then writes items. It returns
// how many records were deleted. Not transactional.
func (s *Seeder) Reset(ctx context.Context, items []dyndb.Item) (int, error) {
	existing, err := s.table.Scan(ctx, keys.Filter{})
	if err != nil {
		return 0, fmt.Errorf("seed: scan table: %w", err)
	}

	doomed := make([]keys.Key, 0, len(existing))
	for _, item := range existing {
		if k, ok := dyndb.KeyOf(item); ok {
			doomed = append(doomed, k)
		}
	}
	if len(doomed) > 0 {
		// a batch must not touch one key twice, so deletes go first
		if err := s.table.BatchWrite(ctx, nil, doomed); err != nil {
			return 0, fmt.Errorf("seed: clear table: %w", err)
		}
	}
	if len(items) > 0 {
		if err := s.table.BatchWrite(ctx, items, nil); err != nil {
			return len(doomed), fmt.Errorf("seed: write records: %w", err)
		}
	}
	return len(doomed), nil
}
