/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/suparena/polystore/backend"
	"github.com/suparena/polystore/errors"
)

// BackendName identifies this adapter in capability reports and errors.
const BackendName = "dynamodb"

// Store adapts DynamoDB tables to the backend contract. Tables follow the
// partition-plus-sort-key convention: every key mapping carries exactly two
// fields, the partition key first and the sort key second, named as the
// table defines them. The storage name is the table name.
type Store struct {
	client *sdk.Client
}

var (
	_ backend.Backend      = (*Store)(nil)
	_ backend.RangeCapable = (*Store)(nil)
)

// NewClient initializes a DynamoDB client using static AWS credentials.
func NewClient(awsAccessKey, awsSecretKey, awsRegion string) (*sdk.Client, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(awsRegion),
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(awsAccessKey, awsSecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	client := sdk.NewFromConfig(cfg)

	fmt.Printf("DynamoDB client initialized in region: %s\n", awsRegion)
	return client, nil
}

// NewStore wraps an existing DynamoDB client.
func NewStore(client *sdk.Client) (*Store, error) {
	if client == nil {
		return nil, errors.NewValidationError("client", "nil DynamoDB client")
	}
	return &Store{client: client}, nil
}

// Name returns the fixed backend identifier.
func (s *Store) Name() string {
	return BackendName
}

// Capabilities reports the document-store profile. Updates go through an
// update expression and touch only the named attributes, and every key
// must be composite: the engine addresses items by partition and sort key
// together under this adapter's table convention.
func (s *Store) Capabilities() backend.Capabilities {
	return backend.Capabilities{
		SupportsPartialUpdates:       true,
		SupportsCompositePrimaryKeys: true,
		RequiresCompositePrimaryKeys: true,
	}
}

// Insert writes one item carrying the key and data fields. PutItem
// overwrites any prior item under the same key, which is the contract's
// insert semantics.
func (s *Store) Insert(ctx context.Context, storageName string, key, data backend.Mapping) error {
	if err := checkInput(storageName, key); err != nil {
		return err
	}

	item, err := marshalItem(key, data)
	if err != nil {
		return err
	}

	_, err = s.client.PutItem(ctx, &sdk.PutItemInput{
		TableName: &storageName,
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("PutItem failed: %w", err)
	}
	return nil
}

// Update rewrites the named data attributes of the addressed item through
// an update expression. Attributes not named keep their stored values.
// UpdateItem creates the item when absent, matching the blind-write
// behavior of the other adapters.
func (s *Store) Update(ctx context.Context, storageName string, key, data backend.Mapping) error {
	if err := checkInput(storageName, key); err != nil {
		return err
	}

	keyAttrs, err := keyAttributes(key)
	if err != nil {
		return err
	}
	updateExpr, exprAttrNames, exprAttrValues, err := buildUpdateExpression(data)
	if err != nil {
		return err
	}

	_, err = s.client.UpdateItem(ctx, &sdk.UpdateItemInput{
		TableName:                 &storageName,
		Key:                       keyAttrs,
		UpdateExpression:          &updateExpr,
		ExpressionAttributeNames:  exprAttrNames,
		ExpressionAttributeValues: exprAttrValues,
	})
	if err != nil {
		return fmt.Errorf("UpdateItem failed: %w", err)
	}
	return nil
}

// Delete removes the addressed item. Deleting an absent key succeeds.
func (s *Store) Delete(ctx context.Context, storageName string, key backend.Mapping) error {
	if err := checkInput(storageName, key); err != nil {
		return err
	}

	keyAttrs, err := keyAttributes(key)
	if err != nil {
		return err
	}

	_, err = s.client.DeleteItem(ctx, &sdk.DeleteItemInput{
		TableName: &storageName,
		Key:       keyAttrs,
	})
	if err != nil {
		return fmt.Errorf("DeleteItem failed: %w", err)
	}
	return nil
}

// Find reads the addressed item and returns its data attributes with the
// key attributes stripped. Attribute order in the result is alphabetical;
// the engine stores items as unordered attribute maps.
func (s *Store) Find(ctx context.Context, storageName string, key backend.Mapping) (backend.Mapping, error) {
	if err := checkInput(storageName, key); err != nil {
		return nil, err
	}

	keyAttrs, err := keyAttributes(key)
	if err != nil {
		return nil, err
	}

	out, err := s.client.GetItem(ctx, &sdk.GetItemInput{
		TableName: &storageName,
		Key:       keyAttrs,
	})
	if err != nil {
		return nil, fmt.Errorf("GetItem error: %w", err)
	}
	if out.Item == nil {
		return nil, errors.NewNotFoundError(storageName, key.String())
	}

	row, err := unmarshalItem(out.Item)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal item: %w", err)
	}
	return row.Without(key.Names()...), nil
}

func checkInput(storageName string, key backend.Mapping) error {
	if storageName == "" {
		return errors.NewValidationError("storageName", "empty storage name")
	}
	if len(key) == 0 {
		return errors.NewValidationError("key", "empty key mapping")
	}
	return nil
}
