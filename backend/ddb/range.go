/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/polystore/backend"
	"github.com/suparena/polystore/errors"
)

const (
	rangePageSize   = 100
	rangeBufferSize = 10
)

// ExecuteRangeQuery runs a key condition expression against the table and
// streams matching items lazily over the returned channel. The query text
// uses the engine's expression syntax with :name placeholders, and the key
// mapping supplies the placeholder values by field name:
//
//	ch, err := store.ExecuteRangeQuery(ctx,
//	    "tenant = :tenant AND id > :after", "events",
//	    backend.Mapping{}.Add("tenant", "acme").Add("after", 7),
//	    nil)
//
// Results arrive in engine order, page by page; pagination keys are
// consumed internally. When hydrate is non-nil each row passes through it
// and the result carries its return value alongside the raw row. Iteration
// stops when the channel closes, the context is canceled, or a result
// carries a non-nil Err. Retry policy stays with the caller: a throttled
// or failed page surfaces as an error result, and the query can be
// reissued.
func (s *Store) ExecuteRangeQuery(ctx context.Context, query, storageName string, key backend.Mapping, hydrate backend.RowHydrator) (<-chan backend.RangeResult, error) {
	if storageName == "" {
		return nil, errors.NewValidationError("storageName", "empty storage name")
	}
	if query == "" {
		return nil, errors.NewValidationError("query", "empty key condition expression")
	}
	if len(key) == 0 {
		return nil, errors.NewValidationError("key", "empty parameter mapping")
	}

	exprValues, err := expressionValues(key)
	if err != nil {
		return nil, err
	}

	input := &sdk.QueryInput{
		TableName:                 &storageName,
		KeyConditionExpression:    &query,
		ExpressionAttributeValues: exprValues,
		Limit:                     aws.Int32(rangePageSize),
	}

	resultCh := make(chan backend.RangeResult, rangeBufferSize)
	go s.rangeWorker(ctx, input, hydrate, resultCh)
	return resultCh, nil
}

// rangeWorker pages through the query and feeds the result channel.
func (s *Store) rangeWorker(
	ctx context.Context,
	input *sdk.QueryInput,
	hydrate backend.RowHydrator,
	resultCh chan<- backend.RangeResult,
) {
	defer close(resultCh)

	var lastEvaluatedKey map[string]types.AttributeValue

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if lastEvaluatedKey != nil {
			input.ExclusiveStartKey = lastEvaluatedKey
		}

		out, err := s.client.Query(ctx, input)
		if err != nil {
			select {
			case <-ctx.Done():
			case resultCh <- backend.RangeResult{Err: fmt.Errorf("query failed: %w", err)}:
			}
			return
		}

		for _, item := range out.Items {
			result := processRangeItem(item, hydrate)
			select {
			case <-ctx.Done():
				return
			case resultCh <- result:
			}
		}

		if len(out.LastEvaluatedKey) == 0 {
			return
		}
		lastEvaluatedKey = out.LastEvaluatedKey
	}
}

// expressionValues converts a parameter mapping into expression attribute
// values, prefixing each field name with a colon.
func expressionValues(params backend.Mapping) (map[string]types.AttributeValue, error) {
	values := make(map[string]types.AttributeValue, len(params))
	for _, p := range params {
		av, err := attributevalue.Marshal(p.Value)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal parameter %q: %w", p.Name, err)
		}
		values[":"+p.Name] = av
	}
	return values, nil
}

// processRangeItem converts one engine item into a range result, running
// the hydrator when one was supplied.
func processRangeItem(item map[string]types.AttributeValue, hydrate backend.RowHydrator) backend.RangeResult {
	row, err := unmarshalItem(item)
	if err != nil {
		return backend.RangeResult{Err: fmt.Errorf("failed to unmarshal item: %w", err)}
	}
	if hydrate == nil {
		return backend.RangeResult{Item: row, Row: row}
	}

	hydrated, err := hydrate(row)
	if err != nil {
		return backend.RangeResult{Row: row, Err: fmt.Errorf("failed to hydrate row: %w", err)}
	}
	return backend.RangeResult{Item: hydrated, Row: row}
}
