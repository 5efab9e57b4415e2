/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/polystore/backend"
	"github.com/suparena/polystore/errors"
)

// keyAttributes converts a key mapping into engine key attributes. The
// mapping must carry exactly the partition key and the sort key, in that
// order; anything else violates the composite-key requirement this
// adapter's capabilities declare.
func keyAttributes(key backend.Mapping) (map[string]types.AttributeValue, error) {
	if len(key) != 2 {
		return nil, errors.NewValidationError("key",
			fmt.Sprintf("backend %q requires a composite key of partition and sort field, got %d field(s)", BackendName, len(key)))
	}

	attrs := make(map[string]types.AttributeValue, len(key))
	for _, p := range key {
		av, err := attributevalue.Marshal(p.Value)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal key field %q: %w", p.Name, err)
		}
		attrs[p.Name] = av
	}
	return attrs, nil
}

// marshalItem builds the full item from the key and data mappings.
func marshalItem(key, data backend.Mapping) (map[string]types.AttributeValue, error) {
	if _, err := keyAttributes(key); err != nil {
		return nil, err
	}

	item := make(map[string]types.AttributeValue, len(key)+len(data))
	for _, m := range []backend.Mapping{key, data} {
		for _, p := range m {
			av, err := attributevalue.Marshal(p.Value)
			if err != nil {
				return nil, fmt.Errorf("failed to marshal field %q: %w", p.Name, err)
			}
			item[p.Name] = av
		}
	}
	return item, nil
}

// unmarshalItem converts an engine item back into a mapping. Items are
// unordered attribute maps, so fields are emitted in alphabetical order to
// keep results deterministic.
func unmarshalItem(item map[string]types.AttributeValue) (backend.Mapping, error) {
	names := make([]string, 0, len(item))
	for name := range item {
		names = append(names, name)
	}
	sort.Strings(names)

	row := backend.Mapping{}
	for _, name := range names {
		var value any
		if err := attributevalue.Unmarshal(item[name], &value); err != nil {
			return nil, fmt.Errorf("failed to unmarshal attribute %q: %w", name, err)
		}
		row = row.Add(name, value)
	}
	return row, nil
}

// buildUpdateExpression transforms a data mapping into:
//   - an update expression (e.g., "SET #f0 = :v0, #f1 = :v1")
//   - a corresponding map of expression attribute names
//   - a corresponding map of expression attribute values
//
// Placeholders are numbered by the mapping's insertion order, so the same
// mapping always renders the same expression.
func buildUpdateExpression(data backend.Mapping) (string,
	map[string]string,
	map[string]types.AttributeValue,
	error) {

	if len(data) == 0 {
		return "", nil, nil, errors.NewValidationError("data", "empty data mapping for update")
	}

	setClauses := make([]string, 0, len(data))
	exprAttrNames := make(map[string]string, len(data))
	exprAttrValues := make(map[string]types.AttributeValue, len(data))

	for i, p := range data {
		placeholderName := fmt.Sprintf("#f%d", i)
		placeholderValue := fmt.Sprintf(":v%d", i)

		setClauses = append(setClauses, fmt.Sprintf("%s = %s", placeholderName, placeholderValue))
		exprAttrNames[placeholderName] = p.Name

		av, err := attributevalue.Marshal(p.Value)
		if err != nil {
			return "", nil, nil, fmt.Errorf("failed to marshal update value for field %q: %w", p.Name, err)
		}
		exprAttrValues[placeholderValue] = av
	}

	return "SET " + strings.Join(setClauses, ", "), exprAttrNames, exprAttrValues, nil
}
