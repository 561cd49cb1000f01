// dyndb/store.go
package dyndb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/raywall/storefront/envloader"
	"github.com/raywall/storefront/keys"
	"github.com/raywall/storefront/update"
)

const (
	batchWriteLimit = 25
	batchRetries    = 5
)

type dynamoTable struct {
	client DynamoDBClient
	cfg    TableConfig
}

// New creates a Table backed by DynamoDB. An empty TableName is filled from
// the environment.
func New(client DynamoDBClient, cfg TableConfig) Table {
	if cfg.TableName == "" {
		_ = envloader.Load(&cfg)
	}
	return &dynamoTable{client: client, cfg: cfg}
}

func (s *dynamoTable) Get(ctx context.Context, key keys.Key) (Item, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.cfg.TableName),
		Key:            KeyAttributes(key),
		ConsistentRead: aws.Bool(s.cfg.ConsistentReads),
	})
	if err != nil {
		return nil, fmt.Errorf("dyndb: get %s failed: %w", key, err)
	}
	if out.Item == nil {
		return nil, ErrNotFound
	}
	return out.Item, nil
}

func (s *dynamoTable) Create(ctx context.Context, item Item) error {
	cond := expression.AttributeNotExists(expression.Name(keys.AttrPK))
	expr, err := expression.NewBuilder().WithCondition(cond).Build()
	if err != nil {
		return fmt.Errorf("dyndb: build create condition: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                 aws.String(s.cfg.TableName),
		Item:                      item,
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		if conditionFailed(err) {
			return ErrConditionFailed
		}
		return fmt.Errorf("dyndb: create failed: %w", err)
	}
	return nil
}

func (s *dynamoTable) Put(ctx context.Context, item Item) error {
	_, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.cfg.TableName),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("dyndb: put failed: %w", err)
	}
	return nil
}

func (s *dynamoTable) Update(ctx context.Context, plan *update.Plan) (Item, error) {
	if plan == nil || len(plan.Assignments) == 0 {
		return nil, update.ErrNothingToUpdate
	}

	names := plan.Names()
	names["#pk"] = keys.AttrPK

	values := make(map[string]types.AttributeValue, len(plan.Assignments))
	for alias, v := range plan.Values() {
		av, err := attributevalue.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("dyndb: marshal %s: %w", alias, err)
		}
		values[alias] = av
	}

	out, err := s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(s.cfg.TableName),
		Key:                       KeyAttributes(plan.Key),
		UpdateExpression:          aws.String(plan.Expression()),
		ConditionExpression:       aws.String("attribute_exists(#pk)"),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		if conditionFailed(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("dyndb: update %s failed: %w", plan.Key, err)
	}
	if out.Attributes == nil {
		return nil, ErrNotFound
	}
	return out.Attributes, nil
}

func (s *dynamoTable) Delete(ctx context.Context, key keys.Key, mustExist bool) error {
	input := &dynamodb.DeleteItemInput{
		TableName: aws.String(s.cfg.TableName),
		Key:       KeyAttributes(key),
	}
	if mustExist {
		cond := expression.AttributeExists(expression.Name(keys.AttrPK))
		expr, err := expression.NewBuilder().WithCondition(cond).Build()
		if err != nil {
			return fmt.Errorf("dyndb: build delete condition: %w", err)
		}
		input.ConditionExpression = expr.Condition()
		input.ExpressionAttributeNames = expr.Names()
		input.ExpressionAttributeValues = expr.Values()
	}

	if _, err := s.client.DeleteItem(ctx, input); err != nil {
		if conditionFailed(err) {
			return ErrNotFound
		}
		return fmt.Errorf("dyndb: delete %s failed: %w", key, err)
	}
	return nil
}

// BatchWrite sends puts and deletes in calls of at most 25 requests.
func (s *dynamoTable) BatchWrite(ctx context.Context, puts []Item, deletes []keys.Key) error {
	writeRequests := make([]types.WriteRequest, 0, len(puts)+len(deletes))
	for _, item := range puts {
		writeRequests = append(writeRequests, types.WriteRequest{
			PutRequest: &types.PutRequest{Item: item},
		})
	}
	for _, key := range deletes {
		writeRequests = append(writeRequests, types.WriteRequest{
			DeleteRequest: &types.DeleteRequest{Key: KeyAttributes(key)},
		})
	}

	for i := 0; i < len(writeRequests); i += batchWriteLimit {
		end := i + batchWriteLimit
		if end > len(writeRequests) {
			end = len(writeRequests)
		}
		if err := s.writeChunk(ctx, writeRequests[i:end]); err != nil {
			return err
		}
	}
	return nil
}

// writeChunk resubmits unprocessed requests with a short linear backoff.
func (s *dynamoTable) writeChunk(ctx context.Context, chunk []types.WriteRequest) error {
	pending := map[string][]types.WriteRequest{s.cfg.TableName: chunk}
	for attempt := 0; attempt < batchRetries; attempt++ {
		out, err := s.client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{RequestItems: pending})
		if err != nil {
			return fmt.Errorf("dyndb: batchwrite failed: %w", err)
		}
		if len(out.UnprocessedItems[s.cfg.TableName]) == 0 {
			return nil
		}
		pending = out.UnprocessedItems
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt+1) * 50 * time.Millisecond):
		}
	}
	return fmt.Errorf("dyndb: batchwrite left %d unprocessed requests", len(pending[s.cfg.TableName]))
}

func conditionFailed(err error) bool {
	var ccf *types.ConditionalCheckFailedException
	return errors.As(err, &ccf)
}
