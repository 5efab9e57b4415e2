/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package polystore

import (
	"context"
	"fmt"
	"testing"

	"github.com/suparena/polystore/backend"
	"github.com/suparena/polystore/backend/cassandra"
	"github.com/suparena/polystore/backend/memory"
	"github.com/suparena/polystore/errors"
)

// stubSession satisfies the cassandra session contract without a cluster.
type stubSession struct{}

func (stubSession) Prepare(ctx context.Context, query string) (cassandra.PreparedStatement, error) {
	return nil, fmt.Errorf("no cluster attached")
}

func TestRegistry(t *testing.T) {
	t.Run("BasicOperations", func(t *testing.T) {
		reg := NewRegistry()

		err := reg.RegisterBackend("cache", memory.NewStore())
		if err != nil {
			t.Fatalf("Failed to register: %v", err)
		}

		b, err := reg.GetBackend("cache")
		if err != nil {
			t.Fatalf("Failed to get: %v", err)
		}
		if b == nil || b.Name() != "memory" {
			t.Fatalf("Expected memory backend, got %v", b)
		}

		names := reg.Backends()
		if len(names) != 1 || names[0] != "cache" {
			t.Fatalf("Expected [cache], got %v", names)
		}

		if _, err := reg.GetBackend("missing"); err == nil {
			t.Fatal("Expected error for unknown name")
		}
	})

	t.Run("DuplicateRegistration", func(t *testing.T) {
		reg := NewRegistry()

		if err := reg.RegisterBackend("cache", memory.NewStore()); err != nil {
			t.Fatalf("First registration failed: %v", err)
		}
		if err := reg.RegisterBackend("cache", memory.NewStore()); err == nil {
			t.Fatal("Expected duplicate registration error")
		}
	})

	t.Run("InvalidRegistration", func(t *testing.T) {
		reg := NewRegistry()

		if err := reg.RegisterBackend("", memory.NewStore()); err == nil {
			t.Fatal("Expected error for empty name")
		}
		if err := reg.RegisterBackend("cache", nil); err == nil {
			t.Fatal("Expected error for nil backend")
		}
	})

	t.Run("SortedNames", func(t *testing.T) {
		reg := NewRegistry()
		for _, name := range []string{"primary", "archive", "cache"} {
			if err := reg.RegisterBackend(name, memory.NewStore()); err != nil {
				t.Fatalf("Failed to register %q: %v", name, err)
			}
		}
		names := reg.Backends()
		want := []string{"archive", "cache", "primary"}
		for i := range want {
			if names[i] != want[i] {
				t.Fatalf("Expected %v, got %v", want, names)
			}
		}
	})
}

// Same key, different deployment roles: the registry keys on name, so one
// engine kind can serve several roles side by side.
func TestRegistrySameKindDifferentRoles(t *testing.T) {
	reg := NewRegistry()

	if err := reg.RegisterBackend("hot", memory.NewStore()); err != nil {
		t.Fatalf("Failed to register hot store: %v", err)
	}
	if err := reg.RegisterBackend("cold", memory.NewStore()); err != nil {
		t.Fatalf("Failed to register cold store: %v", err)
	}

	hot, err := reg.GetBackend("hot")
	if err != nil {
		t.Fatalf("Failed to get hot store: %v", err)
	}
	cold, err := reg.GetBackend("cold")
	if err != nil {
		t.Fatalf("Failed to get cold store: %v", err)
	}
	if hot == cold {
		t.Fatal("Expected distinct instances per role")
	}
}

func TestThreadSafety(t *testing.T) {
	reg := NewRegistry()
	done := make(chan bool)

	// Concurrent writes
	for i := 0; i < 10; i++ {
		go func(id int) {
			reg.RegisterBackend(fmt.Sprintf("backend%d", id), memory.NewStore())
			done <- true
		}(i)
	}

	// Concurrent reads
	for i := 0; i < 10; i++ {
		go func() {
			reg.Backends()
			done <- true
		}()
	}

	// Wait for completion
	for i := 0; i < 20; i++ {
		<-done
	}

	if got := len(reg.Backends()); got != 10 {
		t.Fatalf("Expected 10 backends, got %d", got)
	}
}

// Range support has three observable states across the bundled backends:
// absent (the interface is not implemented), declared but refused (the
// interface is implemented and every call fails with ErrUnsupported), and
// delivered. Callers are expected to branch exactly this way.
func TestRangeCapabilityProbing(t *testing.T) {
	reg := NewRegistry()

	if err := reg.RegisterBackend("cache", memory.NewStore()); err != nil {
		t.Fatalf("Failed to register memory store: %v", err)
	}
	cassandraStore, err := cassandra.NewStore(stubSession{})
	if err != nil {
		t.Fatalf("Failed to build cassandra store: %v", err)
	}
	if err := reg.RegisterBackend("primary", cassandraStore); err != nil {
		t.Fatalf("Failed to register cassandra store: %v", err)
	}

	t.Run("Absent", func(t *testing.T) {
		b, _ := reg.GetBackend("cache")
		if _, ok := b.(backend.RangeCapable); ok {
			t.Fatal("Expected memory backend to not declare range support")
		}
	})

	t.Run("DeclaredButRefused", func(t *testing.T) {
		b, _ := reg.GetBackend("primary")
		rc, ok := b.(backend.RangeCapable)
		if !ok {
			t.Fatal("Expected cassandra backend to declare range support")
		}
		_, err := rc.ExecuteRangeQuery(context.Background(), "id > ?", "users",
			backend.Mapping{}.Add("id", 0), nil)
		if !errors.IsUnsupported(err) {
			t.Fatalf("Expected unsupported-operation error, got %v", err)
		}
	})
}

func TestGetVersionInfo(t *testing.T) {
	info := GetVersionInfo()
	if info.Version != Version {
		t.Fatalf("Expected %q, got %q", Version, info.Version)
	}
}
