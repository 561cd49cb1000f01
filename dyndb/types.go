// dyndb/types.go
package dyndb

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/raywall/storefront/keys"
	"github.com/raywall/storefront/update"
)

var (
	// ErrNotFound is returned when the addressed key does not exist.
	ErrNotFound = errors.New("dyndb: item not found")
	// ErrConditionFailed is returned by Create when the key is already taken.
	ErrConditionFailed = errors.New("dyndb: item already exists")
)

// Item is one raw record of the table.
type Item = map[string]types.AttributeValue

// DynamoDBClient is the subset of the SDK client the table uses.
type DynamoDBClient interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	BatchWriteItem(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// Table is the single physical table every entity lives in.
type Table interface {
	// Get returns the record stored under key, or ErrNotFound.
	Get(ctx context.Context, key keys.Key) (Item, error)
	// Create writes item only if its key is absent; otherwise ErrConditionFailed.
	Create(ctx context.Context, item Item) error
	// Put writes item unconditionally.
	Put(ctx context.Context, item Item) error
	// Update applies every assignment of plan atomically and returns the
	// record after the update. A missing key is ErrNotFound.
	Update(ctx context.Context, plan *update.Plan) (Item, error)
	// Delete removes key. With mustExist a missing key is ErrNotFound.
	Delete(ctx context.Context, key keys.Key, mustExist bool) error
	// Query returns the records of one partition whose sort key starts with
	// sortPrefix (all records when empty), ordered by sort key.
	Query(ctx context.Context, partition, sortPrefix string) ([]Item, error)
	// Scan returns every record matching filter.
	Scan(ctx context.Context, filter keys.Filter) ([]Item, error)
	// BatchWrite writes puts and removes deletes, 25 requests per call.
	BatchWrite(ctx context.Context, puts []Item, deletes []keys.Key) error
}

// TableConfig configures the DynamoDB table.
type TableConfig struct {
	TableName string `env:"DYNAMODB_TABLE_NAME" envDefault:"storefront"`
	// ConsistentReads makes Get and Query strongly consistent.
	ConsistentReads bool `env:"DYNAMODB_CONSISTENT_READS" envDefault:"true"`
}

// KeyOf reads the table key of a raw record.
func KeyOf(item Item) (keys.Key, bool) {
	pk, ok1 := item[keys.AttrPK].(*types.AttributeValueMemberS)
	sk, ok2 := item[keys.AttrSK].(*types.AttributeValueMemberS)
	if !ok1 || !ok2 {
		return keys.Key{}, false
	}
	return keys.Key{PK: pk.Value, SK: sk.Value}, true
}

// KeyAttributes renders key as the SDK key map.
func KeyAttributes(key keys.Key) Item {
	return Item{
		keys.AttrPK: &types.AttributeValueMemberS{Value: key.PK},
		keys.AttrSK: &types.AttributeValueMemberS{Value: key.SK},
	}
}
