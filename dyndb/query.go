// dyndb/query.go
package dyndb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/raywall/storefront/keys"
)

// Query reads one partition, following LastEvaluatedKey until exhausted.
func (s *dynamoTable) Query(ctx context.Context, partition, sortPrefix string) ([]Item, error) {
	keyCond := expression.Key(keys.AttrPK).Equal(expression.Value(partition))
	if sortPrefix != "" {
		keyCond = keyCond.And(expression.Key(keys.AttrSK).BeginsWith(sortPrefix))
	}
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, fmt.Errorf("dyndb: build query: %w", err)
	}

	input := &dynamodb.QueryInput{
		TableName:                 aws.String(s.cfg.TableName),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ConsistentRead:            aws.Bool(s.cfg.ConsistentReads),
		ScanIndexForward:          aws.Bool(true),
	}

	var items []Item
	for {
		out, err := s.client.Query(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("dyndb: query %s failed: %w", partition, err)
		}
		items = append(items, out.Items...)
		if len(out.LastEvaluatedKey) == 0 {
			return items, nil
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
}

// Scan reads the whole table, filtered server-side.
func (s *dynamoTable) Scan(ctx context.Context, filter keys.Filter) ([]Item, error) {
	input := &dynamodb.ScanInput{
		TableName: aws.String(s.cfg.TableName),
	}

	if cond, ok := filterCondition(filter); ok {
		expr, err := expression.NewBuilder().WithFilter(cond).Build()
		if err != nil {
			return nil, fmt.Errorf("dyndb: build scan filter: %w", err)
		}
		input.FilterExpression = expr.Filter()
		input.ExpressionAttributeNames = expr.Names()
		input.ExpressionAttributeValues = expr.Values()
	}

	var items []Item
	for {
		out, err := s.client.Scan(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("dyndb: scan failed: %w", err)
		}
		items = append(items, out.Items...)
		if len(out.LastEvaluatedKey) == 0 {
			return items, nil
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
}

// filterCondition translates a key filter; ok is false for an empty filter.
func filterCondition(f keys.Filter) (expression.ConditionBuilder, bool) {
	var conds []expression.ConditionBuilder
	if f.PKPrefix != "" {
		conds = append(conds, expression.Name(keys.AttrPK).BeginsWith(f.PKPrefix))
	}
	if f.SKEquals != "" {
		conds = append(conds, expression.Name(keys.AttrSK).Equal(expression.Value(f.SKEquals)))
	}
	if f.SKPrefix != "" {
		conds = append(conds, expression.Name(keys.AttrSK).BeginsWith(f.SKPrefix))
	}

	switch len(conds) {
	case 0:
		return expression.ConditionBuilder{}, false
	case 1:
		return conds[0], true
	default:
		return conds[0].And(conds[1], conds[2:]...), true
	}
}
