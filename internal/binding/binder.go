// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package binding

import (
	"fmt"
	"reflect"

	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/relay/internal/cmdline"
)

// Binder fills parameter structs from command lines.
type Binder struct {
	converter Converter
}

// NewBinder returns a Binder that converts values with c.
// A nil converter means CtyConverter.
func NewBinder(c Converter) *Binder {
	if c == nil {
		c = CtyConverter{}
	}

	return &Binder{converter: c}
}

// Bind returns a pointer to a new value of schema.Type populated from line.
// Every parameter is attempted; the errors of all parameters are returned
// together as a *BindError.
func (b *Binder) Bind(schema *Schema, line *cmdline.CommandLine) (any, error) {
	ptr := reflect.New(schema.Type)
	target := ptr.Elem()

	var result *multierror.Error

	for _, p := range schema.Parameters {
		values, present := b.candidates(schema, p, line)

		v, err := b.resolve(p, values, present)
		if err != nil {
			result = multierror.Append(result, err)
			continue
		}

		if v == nil {
			continue
		}

		if err := assign(target.FieldByIndex(p.Field), v); err != nil {
			result = multierror.Append(result, &ConversionError{
				Parameter: p.Name.Primary(), Values: values, Type: p.Type, Err: err,
			})
		}
	}

	if result != nil {
		result.ErrorFormat = listFormat
		return nil, &BindError{Command: line.Name(), Err: result}
	}

	return ptr.Interface(), nil
}

// candidates finds the raw values of p. Positional parameters read the
// anonymous values first and fall back to their named form.
func (b *Binder) candidates(schema *Schema, p *ParameterMetadata, line *cmdline.CommandLine) ([]string, bool) {
	if p.Position > 0 {
		positionals := line.Positionals()

		if idx := p.Position - 1; idx < len(positionals) {
			if p.IsCollection {
				return positionals[idx:], true
			}

			return positionals[idx : idx+1], true
		}
	}

	return line.Lookup(p.Name, schema.Known)
}

// resolve applies the cardinality rules and converts. A nil value with a
// nil error leaves the field at its zero value.
func (b *Binder) resolve(p *ParameterMetadata, values []string, present bool) (any, error) {
	name := p.Name.Primary()

	if !present {
		switch {
		case p.HasDefault():
			return p.DefaultValue, nil
		case p.Required:
			return nil, &RequiredArgumentMissingError{Parameter: name}
		default:
			return nil, nil
		}
	}

	if p.IsCollection {
		if len(values) == 0 {
			return nil, &ParameterCardinalityError{Parameter: name, Reason: EmptyCollection}
		}

		return b.convert(p, values)
	}

	switch len(values) {
	case 0:
		if p.Type.Kind() == reflect.Bool {
			return reflect.ValueOf(true).Convert(p.Type).Interface(), nil
		}

		return nil, &ParameterCardinalityError{Parameter: name, Reason: MissingValue}
	case 1:
		return b.convert(p, values)
	default:
		return nil, &ParameterCardinalityError{Parameter: name, Reason: TooManyValues, Count: len(values)}
	}
}

func (b *Binder) convert(p *ParameterMetadata, values []string) (any, error) {
	v, err := b.converter.Convert(values, p.Type)
	if err != nil {
		return nil, &ConversionError{Parameter: p.Name.Primary(), Values: values, Type: p.Type, Err: err}
	}

	return v, nil
}

func assign(field reflect.Value, v any) error {
	rv := reflect.ValueOf(v)

	switch {
	case rv.Type().AssignableTo(field.Type()):
		field.Set(rv)
	case rv.Type().ConvertibleTo(field.Type()):
		field.Set(rv.Convert(field.Type()))
	default:
		return fmt.Errorf("converter returned %s, want %s", rv.Type(), field.Type())
	}

	return nil
}
