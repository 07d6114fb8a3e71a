// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package binding

import (
	"fmt"
	"reflect"
	"slices"

	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/relay/internal/cmdline"
)

// ParameterMetadata describes one parameter of a command.
type ParameterMetadata struct {
	// Name holds the aliases of the parameter. Positional parameters also
	// carry their synthetic "#n" alias.
	Name cmdline.ArgumentName
	// Position is the 1-based positional index, or 0 for named parameters.
	Position     int
	Required     bool
	DefaultValue any
	IsCollection bool
	Type         reflect.Type
	Description  string
	// Field is the index sequence of the struct field, see reflect.Value.FieldByIndex.
	Field []int
}

// HasDefault reports whether a default value was declared.
func (p *ParameterMetadata) HasDefault() bool {
	return p.DefaultValue != nil
}

// TypeName returns a human readable type description.
func (p *ParameterMetadata) TypeName() string {
	return typeName(p.Type)
}

// Schema is the ordered list of parameters of one parameter struct.
type Schema struct {
	Type       reflect.Type
	Parameters []*ParameterMetadata
}

// Known reports whether alias names one of the parameters.
func (s *Schema) Known(alias string) bool {
	return slices.ContainsFunc(s.Parameters, func(p *ParameterMetadata) bool {
		return p.Name.Has(alias)
	})
}

// Validate checks that parameter names are pairwise disjoint and that
// positions run from 1 without gaps, with only the last position allowed
// to be a collection.
func Validate(params []*ParameterMetadata) error {
	var result *multierror.Error

	owner := make(map[string]string)

	for _, p := range params {
		for _, alias := range p.Name.Aliases() {
			if first, ok := owner[alias]; ok {
				result = multierror.Append(result, &DuplicateParameterNameError{
					Alias:  alias,
					First:  first,
					Second: p.Name.Primary(),
				})

				continue
			}

			owner[alias] = p.Name.Primary()
		}
	}

	var positional []*ParameterMetadata

	for _, p := range params {
		if p.Position != 0 {
			positional = append(positional, p)
		}
	}

	slices.SortFunc(positional, func(a, b *ParameterMetadata) int { return a.Position - b.Position })

	positions := make([]int, len(positional))
	for i, p := range positional {
		positions[i] = p.Position
	}

	for i, p := range positional {
		if p.Position != i+1 {
			result = multierror.Append(result, &InvalidPositionSequenceError{
				Positions: positions,
				Reason:    fmt.Sprintf("expected position %d, found %d", i+1, p.Position),
			})

			break
		}

		if p.IsCollection && i != len(positional)-1 {
			result = multierror.Append(result, &InvalidPositionSequenceError{
				Positions: positions,
				Reason:    fmt.Sprintf("collection %q must have the highest position", p.Name.Primary()),
			})
		}
	}

	if result != nil {
		result.ErrorFormat = listFormat
	}

	return result.ErrorOrNil()
}

func typeName(t reflect.Type) string {
	if t == nil {
		return ""
	}

	if t == durationType {
		return "duration"
	}

	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Bool:
		return "boolean"
	case reflect.Slice:
		return "list of " + typeName(t.Elem())
	default:
		return t.String()
	}
}
