// Package dyndb is the storage layer of the single storefront table.
//
// Every entity shares one physical table keyed by PK/SK (see package keys).
// dyndb exposes that table through the Table interface and ships two
// implementations with identical conditional semantics:
//
//   - New wraps the AWS DynamoDB Go SDK (v2). Conditions, key conditions and
//     scan filters are built with the SDK expression builder; query and scan
//     follow LastEvaluatedKey until the result set is exhausted; BatchWrite
//     splits requests in chunks of 25 and resubmits unprocessed ones.
//   - NewMemoryTable keeps records in a map guarded by a RWMutex. It backs
//     local runs and the service tests.
//
// Conditional behaviour:
//
//	Create  attribute_not_exists(PK), otherwise ErrConditionFailed
//	Update  attribute_exists(PK), otherwise ErrNotFound
//	Delete  attribute_exists(PK) when mustExist, otherwise ErrNotFound
//
// Basic usage:
//
//	awsCfg, _ := config.LoadDefaultConfig(ctx)
//	table := dyndb.New(dynamodb.NewFromConfig(awsCfg), dyndb.TableConfig{TableName: "storefront"})
//
//	item, err := table.Get(ctx, keys.UserKey("u1"))
//	if errors.Is(err, dyndb.ErrNotFound) { /* ... */ }
//
//	plan, _ := update.Build(keys.Product, keys.ProductKey("p1"), map[string]any{"price": 9.9})
//	after, err := table.Update(ctx, plan)
//
// MockTable and the fake client used in tests let callers inject failures
// without a network.
package dyndb
