/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package cassandra

import (
	"context"
	stderrors "errors"
	"reflect"
	"testing"

	"github.com/suparena/polystore/backend"
	"github.com/suparena/polystore/errors"
)

// fakeSession records every prepared query and every bound argument list,
// and plays back canned rows and injected faults.
type fakeSession struct {
	prepared []string
	execArgs [][]any
	queryArgs [][]any

	rows []backend.Mapping

	prepareErr error
	execErr    error
	queryErr   error
	iterErr    error
}

func (f *fakeSession) Prepare(ctx context.Context, query string) (PreparedStatement, error) {
	if f.prepareErr != nil {
		return nil, f.prepareErr
	}
	f.prepared = append(f.prepared, query)
	return &fakeStatement{session: f}, nil
}

type fakeStatement struct {
	session *fakeSession
}

func (f *fakeStatement) Exec(ctx context.Context, args ...any) error {
	if f.session.execErr != nil {
		return f.session.execErr
	}
	f.session.execArgs = append(f.session.execArgs, args)
	return nil
}

func (f *fakeStatement) Query(ctx context.Context, args ...any) (ResultSet, error) {
	if f.session.queryErr != nil {
		return nil, f.session.queryErr
	}
	f.session.queryArgs = append(f.session.queryArgs, args)
	return &fakeResultSet{rows: f.session.rows, iterErr: f.session.iterErr}, nil
}

type fakeResultSet struct {
	rows    []backend.Mapping
	iterErr error
	pos     int
}

func (f *fakeResultSet) Next() (backend.Mapping, bool) {
	if f.pos >= len(f.rows) {
		return nil, false
	}
	row := f.rows[f.pos]
	f.pos++
	return row, true
}

func (f *fakeResultSet) Close() error {
	return f.iterErr
}

func newTestStore(t *testing.T, session *fakeSession) *Store {
	t.Helper()
	store, err := NewStore(session)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	return store
}

func TestNewStore(t *testing.T) {
	if _, err := NewStore(nil); !errors.IsValidationError(err) {
		t.Fatalf("Expected validation error for nil session, got %v", err)
	}
}

func TestStoreInsert(t *testing.T) {
	session := &fakeSession{}
	store := newTestStore(t, session)

	key := backend.Mapping{}.Add("id", 7)
	data := backend.Mapping{}.Add("name", "Ann").Add("age", 30)

	if err := store.Insert(context.Background(), "users", key, data); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	want := "INSERT INTO users (id, name, age) VALUES (?, ?, ?)"
	if len(session.prepared) != 1 || session.prepared[0] != want {
		t.Fatalf("Expected prepared [%q], got %v", want, session.prepared)
	}
	if !reflect.DeepEqual(session.execArgs, [][]any{{7, "Ann", 30}}) {
		t.Fatalf("Expected key values before data values, got %v", session.execArgs)
	}
}

func TestStoreUpdate(t *testing.T) {
	session := &fakeSession{}
	store := newTestStore(t, session)

	key := backend.Mapping{}.Add("id", 7)
	data := backend.Mapping{}.Add("name", "Ann").Add("age", 31)

	if err := store.Update(context.Background(), "users", key, data); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	want := "UPDATE users SET name = ?, age = ? WHERE id = ?"
	if len(session.prepared) != 1 || session.prepared[0] != want {
		t.Fatalf("Expected prepared [%q], got %v", want, session.prepared)
	}
	if !reflect.DeepEqual(session.execArgs, [][]any{{"Ann", 31, 7}}) {
		t.Fatalf("Expected data values before key values, got %v", session.execArgs)
	}
}

func TestStoreDelete(t *testing.T) {
	session := &fakeSession{}
	store := newTestStore(t, session)

	key := backend.Mapping{}.Add("tenant", "acme").Add("id", 7)

	if err := store.Delete(context.Background(), "users", key); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	want := "DELETE FROM users WHERE tenant = ? AND id = ?"
	if len(session.prepared) != 1 || session.prepared[0] != want {
		t.Fatalf("Expected prepared [%q], got %v", want, session.prepared)
	}
	if !reflect.DeepEqual(session.execArgs, [][]any{{"acme", 7}}) {
		t.Fatalf("Expected key values only, got %v", session.execArgs)
	}
}

func TestStoreFind(t *testing.T) {
	t.Run("StripsKeyColumns", func(t *testing.T) {
		session := &fakeSession{
			rows: []backend.Mapping{
				backend.Mapping{}.Add("id", 7).Add("name", "Ann").Add("age", 30),
			},
		}
		store := newTestStore(t, session)

		row, err := store.Find(context.Background(), "users", backend.Mapping{}.Add("id", 7))
		if err != nil {
			t.Fatalf("Find failed: %v", err)
		}
		want := backend.Mapping{}.Add("name", "Ann").Add("age", 30)
		if !row.Equal(want) {
			t.Fatalf("Expected %v, got %v", want, row)
		}
		if _, ok := row.Get("id"); ok {
			t.Fatal("Expected key column stripped from result")
		}
		if !reflect.DeepEqual(session.queryArgs, [][]any{{7}}) {
			t.Fatalf("Expected key values bound in mapping order, got %v", session.queryArgs)
		}
	})

	t.Run("NotFoundOnEmptyResult", func(t *testing.T) {
		store := newTestStore(t, &fakeSession{})

		_, err := store.Find(context.Background(), "users", backend.Mapping{}.Add("id", 404))
		if !errors.IsNotFound(err) {
			t.Fatalf("Expected not-found error, got %v", err)
		}
	})

	t.Run("FirstRowWins", func(t *testing.T) {
		session := &fakeSession{
			rows: []backend.Mapping{
				backend.Mapping{}.Add("id", 7).Add("name", "Ann"),
				backend.Mapping{}.Add("id", 7).Add("name", "Bob"),
			},
		}
		store := newTestStore(t, session)

		row, err := store.Find(context.Background(), "users", backend.Mapping{}.Add("id", 7))
		if err != nil {
			t.Fatalf("Find failed: %v", err)
		}
		if v, _ := row.Get("name"); v != "Ann" {
			t.Fatalf("Expected first row, got name %v", v)
		}
	})

	t.Run("IterationFaultIsNotNotFound", func(t *testing.T) {
		fault := stderrors.New("read timeout")
		store := newTestStore(t, &fakeSession{iterErr: fault})

		_, err := store.Find(context.Background(), "users", backend.Mapping{}.Add("id", 7))
		if errors.IsNotFound(err) {
			t.Fatalf("Expected engine fault, got not-found: %v", err)
		}
		if !stderrors.Is(err, fault) {
			t.Fatalf("Expected wrapped fault, got %v", err)
		}
	})
}

func TestStoreFaultPropagation(t *testing.T) {
	fault := stderrors.New("no hosts available")

	t.Run("Prepare", func(t *testing.T) {
		store := newTestStore(t, &fakeSession{prepareErr: fault})
		err := store.Insert(context.Background(), "users", backend.Mapping{}.Add("id", 7), nil)
		if !stderrors.Is(err, fault) {
			t.Fatalf("Expected wrapped prepare fault, got %v", err)
		}
	})

	t.Run("Exec", func(t *testing.T) {
		store := newTestStore(t, &fakeSession{execErr: fault})
		err := store.Delete(context.Background(), "users", backend.Mapping{}.Add("id", 7))
		if !stderrors.Is(err, fault) {
			t.Fatalf("Expected wrapped exec fault, got %v", err)
		}
	})

	t.Run("Query", func(t *testing.T) {
		store := newTestStore(t, &fakeSession{queryErr: fault})
		_, err := store.Find(context.Background(), "users", backend.Mapping{}.Add("id", 7))
		if !stderrors.Is(err, fault) {
			t.Fatalf("Expected wrapped query fault, got %v", err)
		}
	})
}

// Builder rejections must short-circuit before the session is touched.
func TestStoreInvalidInputSkipsSession(t *testing.T) {
	session := &fakeSession{}
	store := newTestStore(t, session)

	if err := store.Insert(context.Background(), "users", nil, nil); !errors.IsValidationError(err) {
		t.Fatalf("Expected validation error, got %v", err)
	}
	if err := store.Update(context.Background(), "users", backend.Mapping{}.Add("id", 7), nil); !errors.IsValidationError(err) {
		t.Fatalf("Expected validation error, got %v", err)
	}
	if len(session.prepared) != 0 {
		t.Fatalf("Expected no prepared statements, got %v", session.prepared)
	}
}

// Statements are prepared fresh on every call, identical queries included.
func TestStorePreparesPerCall(t *testing.T) {
	session := &fakeSession{}
	store := newTestStore(t, session)

	key := backend.Mapping{}.Add("id", 7)
	data := backend.Mapping{}.Add("name", "Ann")

	for i := 0; i < 3; i++ {
		if err := store.Insert(context.Background(), "users", key, data); err != nil {
			t.Fatalf("Insert %d failed: %v", i, err)
		}
	}
	if len(session.prepared) != 3 {
		t.Fatalf("Expected 3 prepares, got %d", len(session.prepared))
	}
}

func TestStoreCapabilities(t *testing.T) {
	store := newTestStore(t, &fakeSession{})

	if store.Name() != "cassandra" {
		t.Fatalf("Expected backend name cassandra, got %q", store.Name())
	}

	caps := store.Capabilities()
	if caps.SupportsPartialUpdates {
		t.Fatal("Expected partial updates unsupported")
	}
	if !caps.SupportsCompositePrimaryKeys {
		t.Fatal("Expected composite keys supported")
	}
	if caps.RequiresCompositePrimaryKeys {
		t.Fatal("Expected composite keys not required")
	}

	// Capabilities are fixed per backend, not per instance or state.
	if store.Capabilities() != caps {
		t.Fatal("Expected capabilities to be constant across calls")
	}
	other := newTestStore(t, &fakeSession{})
	if other.Capabilities() != caps {
		t.Fatal("Expected capabilities to be constant across instances")
	}
}

func TestStoreRangeDeclaredButRefused(t *testing.T) {
	var b backend.Backend = newTestStore(t, &fakeSession{})

	rc, ok := b.(backend.RangeCapable)
	if !ok {
		t.Fatal("Expected store to declare the range extension")
	}

	ch, err := rc.ExecuteRangeQuery(context.Background(), "id > ?", "users", backend.Mapping{}.Add("id", 0), nil)
	if !errors.IsUnsupported(err) {
		t.Fatalf("Expected unsupported-operation error, got %v", err)
	}
	if ch != nil {
		t.Fatal("Expected nil channel on refusal")
	}
}
