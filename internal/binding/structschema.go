// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package binding

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"unicode"

	"github.com/matt-FFFFFF/relay/internal/cmdline"
)

// Struct tags read by StructSchema.
const (
	TagArg      = "arg"      // comma separated aliases, "-" skips the field
	TagPosition = "position" // 1-based positional index
	TagRequired = "required" // "true" makes a named parameter required
	TagDefault  = "default"  // default value, comma separated for slices
	TagDesc     = "desc"     // description shown by help output
)

// ParameterSchema describes the parameters of a parameter struct type.
type ParameterSchema interface {
	Describe(t reflect.Type) (*Schema, error)
}

// StructSchema derives schemas from struct tags. Results are cached per type.
type StructSchema struct {
	converter Converter
	cache     sync.Map // reflect.Type -> *Schema
}

// NewStructSchema returns a StructSchema that converts default values with c.
func NewStructSchema(c Converter) *StructSchema {
	return &StructSchema{converter: c}
}

// DefaultSchema is the schema provider used when none is supplied.
var DefaultSchema ParameterSchema = NewStructSchema(CtyConverter{})

// Describe implements ParameterSchema. t must be a struct or a pointer to one.
func (s *StructSchema) Describe(t reflect.Type) (*Schema, error) {
	if t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if t == nil || t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: parameters must be a struct, got %v", ErrSchema, t)
	}

	if cached, ok := s.cache.Load(t); ok {
		return cached.(*Schema), nil
	}

	params, err := s.fields(t, nil)
	if err != nil {
		return nil, errors.Join(ErrSchema, fmt.Errorf("%s: %w", t, err))
	}

	if err := Validate(params); err != nil {
		return nil, errors.Join(ErrSchema, fmt.Errorf("%s: %w", t, err))
	}

	schema := &Schema{Type: t, Parameters: params}
	actual, _ := s.cache.LoadOrStore(t, schema)

	return actual.(*Schema), nil
}

// fields walks the exported fields of t, descending into embedded structs.
func (s *StructSchema) fields(t reflect.Type, index []int) ([]*ParameterMetadata, error) {
	var params []*ParameterMetadata

	for i := range t.NumField() {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		tag := field.Tag.Get(TagArg)
		if tag == "-" {
			continue
		}

		fieldIndex := append(append([]int{}, index...), i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct && tag == "" {
			inner, err := s.fields(field.Type, fieldIndex)
			if err != nil {
				return nil, err
			}

			params = append(params, inner...)

			continue
		}

		p, err := s.parameter(field, tag, fieldIndex)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", field.Name, err)
		}

		params = append(params, p)
	}

	return params, nil
}

func (s *StructSchema) parameter(field reflect.StructField, tag string, index []int) (*ParameterMetadata, error) {
	aliases := strings.Split(tag, ",")
	if strings.TrimSpace(tag) == "" {
		aliases = []string{kebab(field.Name)}
	}

	p := &ParameterMetadata{
		Type:         field.Type,
		IsCollection: field.Type.Kind() == reflect.Slice && !isTextUnmarshaler(field.Type),
		Description:  field.Tag.Get(TagDesc),
		Field:        index,
	}

	if pos, ok := field.Tag.Lookup(TagPosition); ok {
		n, err := strconv.Atoi(pos)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("position %q must be a positive integer", pos)
		}

		p.Position = n
		p.Required = true
		aliases = append(aliases, cmdline.PositionalName(n))
	}

	if req, ok := field.Tag.Lookup(TagRequired); ok {
		b, err := strconv.ParseBool(req)
		if err != nil {
			return nil, fmt.Errorf("required %q: %w", req, err)
		}

		p.Required = p.Required || b
	}

	name, err := cmdline.NewName(aliases...)
	if err != nil {
		return nil, err
	}

	p.Name = name

	if def, ok := field.Tag.Lookup(TagDefault); ok {
		values := []string{def}

		switch {
		case p.IsCollection && def == "":
			values = []string{}
		case p.IsCollection:
			values = strings.Split(def, ",")
		}

		v, err := s.converter.Convert(values, field.Type)
		if err != nil {
			return nil, &ConversionError{Parameter: name.Primary(), Values: values, Type: field.Type, Err: err}
		}

		p.DefaultValue = v
	}

	return p, nil
}

// kebab turns DryRun into dry-run and HTTPPort into http-port.
func kebab(s string) string {
	runes := []rune(s)

	var b strings.Builder

	for i, r := range runes {
		if unicode.IsUpper(r) && i > 0 {
			prevLower := unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])

			if prevLower || (unicode.IsUpper(runes[i-1]) && nextLower) {
				b.WriteByte('-')
			}
		}

		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}
