/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/suparena/polystore/backend"
	"github.com/suparena/polystore/errors"
)

// RangeQueryBuilder provides a fluent interface for range queries that
// need more than ExecuteRangeQuery's defaults: a secondary index, a custom
// page size, reversed sort order, or a hydrator.
type RangeQueryBuilder struct {
	store       *Store
	storageName string
	query       string
	params      backend.Mapping
	indexName   string
	pageSize    int32
	descending  bool
	hydrate     backend.RowHydrator
}

// RangeQuery creates a new range query builder for the given storage unit
// and key condition expression:
//
//	ch, err := store.RangeQuery("events", "GSI1PK = :pk AND GSI1SK > :after").
//	    WithIndex("GSI1").
//	    WithParam("pk", "EMAIL#ann@example.com").
//	    WithParam("after", "2024").
//	    Descending().
//	    Execute(ctx)
func (s *Store) RangeQuery(storageName, query string) *RangeQueryBuilder {
	return &RangeQueryBuilder{
		store:       s,
		storageName: storageName,
		query:       query,
		pageSize:    rangePageSize,
	}
}

// WithParam binds the value for one :name placeholder in the expression.
func (q *RangeQueryBuilder) WithParam(name string, value any) *RangeQueryBuilder {
	q.params = q.params.Set(name, value)
	return q
}

// WithIndex runs the query against a secondary index instead of the table.
func (q *RangeQueryBuilder) WithIndex(indexName string) *RangeQueryBuilder {
	q.indexName = indexName
	return q
}

// WithPageSize overrides the page size used for internal pagination.
func (q *RangeQueryBuilder) WithPageSize(n int32) *RangeQueryBuilder {
	q.pageSize = n
	return q
}

// Descending reverses the sort-key iteration order.
func (q *RangeQueryBuilder) Descending() *RangeQueryBuilder {
	q.descending = true
	return q
}

// WithHydrator passes each row through the hydrator and carries its return
// value on the results.
func (q *RangeQueryBuilder) WithHydrator(h backend.RowHydrator) *RangeQueryBuilder {
	q.hydrate = h
	return q
}

// build constructs the final engine query input.
func (q *RangeQueryBuilder) build() (*sdk.QueryInput, error) {
	if q.storageName == "" {
		return nil, errors.NewValidationError("storageName", "empty storage name")
	}
	if q.query == "" {
		return nil, errors.NewValidationError("query", "empty key condition expression")
	}
	if len(q.params) == 0 {
		return nil, errors.NewValidationError("params", "no placeholder values bound")
	}
	if q.pageSize < 1 {
		return nil, errors.NewValidationError("pageSize", "page size must be positive")
	}

	exprValues, err := expressionValues(q.params)
	if err != nil {
		return nil, err
	}

	input := &sdk.QueryInput{
		TableName:                 &q.storageName,
		KeyConditionExpression:    &q.query,
		ExpressionAttributeValues: exprValues,
		Limit:                     aws.Int32(q.pageSize),
	}
	if q.indexName != "" {
		input.IndexName = aws.String(q.indexName)
	}
	if q.descending {
		input.ScanIndexForward = aws.Bool(false)
	}
	return input, nil
}

// Execute launches the query and streams results lazily, like
// ExecuteRangeQuery.
func (q *RangeQueryBuilder) Execute(ctx context.Context) (<-chan backend.RangeResult, error) {
	input, err := q.build()
	if err != nil {
		return nil, err
	}

	resultCh := make(chan backend.RangeResult, rangeBufferSize)
	go q.store.rangeWorker(ctx, input, q.hydrate, resultCh)
	return resultCh, nil
}
