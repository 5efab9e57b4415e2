/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

//go:build integration

package ddb

import (
	"context"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/suparena/polystore/backend"
	"github.com/suparena/polystore/errors"
)

// getTestStore loads AWS settings from the environment (or a .env file)
// and returns a store with the table under test. Tests skip when the
// environment is not configured.
func getTestStore(t *testing.T) (*Store, string) {
	t.Helper()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, proceeding with environment variables")
	}

	awsAccessKey := os.Getenv("AWS_ACCESS_KEY")
	awsSecretKey := os.Getenv("AWS_SECRET_KEY")
	region := os.Getenv("AWS_REGION")
	tableName := os.Getenv("AWS_DDB_TABLE")

	if awsAccessKey == "" || awsSecretKey == "" || region == "" || tableName == "" {
		t.Skip("AWS environment not configured; skipping DynamoDB integration tests")
	}

	client, err := NewClient(awsAccessKey, awsSecretKey, region)
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	store, err := NewStore(client)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	return store, tableName
}

func TestDynamoDBRoundTrip(t *testing.T) {
	store, table := getTestStore(t)
	ctx := context.Background()

	key := backend.Mapping{}.
		Add("PK", "POLYSTORE#TEST#"+uuid.NewString()).
		Add("SK", "ROW#1")
	data := backend.Mapping{}.
		Add("name", "round trip").
		Add("updatedAt", strfmt.DateTime(time.Now()).String())

	if err := store.Insert(ctx, table, key, data); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	defer store.Delete(ctx, table, key)

	got, err := store.Find(ctx, table, key)
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if v, _ := got.Get("name"); v != "round trip" {
		t.Fatalf("Expected inserted row, got %v", got)
	}

	if err := store.Update(ctx, table, key, backend.Mapping{}.Add("name", "updated")); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	got, err = store.Find(ctx, table, key)
	if err != nil {
		t.Fatalf("Find after update failed: %v", err)
	}
	if v, _ := got.Get("name"); v != "updated" {
		t.Fatalf("Expected updated name, got %v", got)
	}
	if _, ok := got.Get("updatedAt"); !ok {
		t.Fatal("Expected untouched attribute to survive partial update")
	}

	if err := store.Delete(ctx, table, key); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.Find(ctx, table, key); !errors.IsNotFound(err) {
		t.Fatalf("Expected not-found after delete, got %v", err)
	}
}

func TestDynamoDBRangeQuery(t *testing.T) {
	store, table := getTestStore(t)
	ctx := context.Background()

	pk := "POLYSTORE#TEST#" + uuid.NewString()
	for i := 1; i <= 3; i++ {
		key := backend.Mapping{}.Add("PK", pk).Add("SK", fmt.Sprintf("ROW#%d", i))
		data := backend.Mapping{}.Add("seq", i)
		if err := store.Insert(ctx, table, key, data); err != nil {
			t.Fatalf("Insert %d failed: %v", i, err)
		}
		defer store.Delete(ctx, table, key)
	}

	params := backend.Mapping{}.Add("pk", pk).Add("after", "ROW#0")
	ch, err := store.ExecuteRangeQuery(ctx, "PK = :pk AND SK > :after", table, params, nil)
	if err != nil {
		t.Fatalf("ExecuteRangeQuery failed: %v", err)
	}

	var rows []backend.Mapping
	for result := range ch {
		if result.Err != nil {
			t.Fatalf("Range result error: %v", result.Err)
		}
		rows = append(rows, result.Row)
	}
	if len(rows) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(rows))
	}
	// Sort-key order is the engine's iteration order.
	if v, _ := rows[0].Get("SK"); v != "ROW#1" {
		t.Fatalf("Expected ROW#1 first, got %v", v)
	}
}
