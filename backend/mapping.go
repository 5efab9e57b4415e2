/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package backend

import (
	"fmt"
	"reflect"
	"strings"
)

// Pair is a single field name/value entry of a Mapping.
type Pair struct {
	Name  string
	Value any
}

// Mapping is an ordered collection of field name/value pairs. Key mappings
// carry the full primary key (partition key first, clustering columns after);
// data mappings carry non-key fields, disjoint from the key's field names.
// Insertion order is significant: it determines the order in which columns
// appear in generated statements and the order in which values are bound to
// positional placeholders. Field names within one mapping must be unique.
type Mapping []Pair

// Add appends a field and returns the extended mapping, so key and data
// mappings can be built fluently:
//
//	key := backend.Mapping{}.Add("tenant", "acme").Add("id", 7)
func (m Mapping) Add(name string, value any) Mapping {
	return append(m, Pair{Name: name, Value: value})
}

// Set replaces the value of an existing field in place, preserving its
// position, or appends the field when absent.
func (m Mapping) Set(name string, value any) Mapping {
	for i := range m {
		if m[i].Name == name {
			m[i].Value = value
			return m
		}
	}
	return append(m, Pair{Name: name, Value: value})
}

// Get returns the value of the named field.
func (m Mapping) Get(name string) (any, bool) {
	for _, p := range m {
		if p.Name == name {
			return p.Value, true
		}
	}
	return nil, false
}

// Names returns the field names in mapping order.
func (m Mapping) Names() []string {
	names := make([]string, len(m))
	for i, p := range m {
		names[i] = p.Name
	}
	return names
}

// Values returns the field values in mapping order.
func (m Mapping) Values() []any {
	values := make([]any, len(m))
	for i, p := range m {
		values[i] = p.Value
	}
	return values
}

// Without returns a copy of the mapping with the named fields removed,
// preserving the order of the remaining fields.
func (m Mapping) Without(names ...string) Mapping {
	if len(names) == 0 {
		return m.Clone()
	}
	excluded := make(map[string]struct{}, len(names))
	for _, n := range names {
		excluded[n] = struct{}{}
	}
	out := make(Mapping, 0, len(m))
	for _, p := range m {
		if _, skip := excluded[p.Name]; !skip {
			out = append(out, p)
		}
	}
	return out
}

// Clone returns a shallow copy of the mapping. Pair values are shared;
// the pair list itself is independent.
func (m Mapping) Clone() Mapping {
	out := make(Mapping, len(m))
	copy(out, m)
	return out
}

// Equal reports field-for-field equality regardless of order. Values are
// compared with reflect.DeepEqual.
func (m Mapping) Equal(other Mapping) bool {
	if len(m) != len(other) {
		return false
	}
	for _, p := range m {
		v, ok := other.Get(p.Name)
		if !ok || !reflect.DeepEqual(p.Value, v) {
			return false
		}
	}
	return true
}

// String renders the mapping for diagnostics, e.g. {id: 7, name: Ann}.
func (m Mapping) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, p := range m {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s: %v", p.Name, p.Value)
	}
	b.WriteByte('}')
	return b.String()
}
