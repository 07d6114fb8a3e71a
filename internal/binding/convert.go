// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package binding

import (
	"encoding"
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// ErrUnsupportedType is returned for target types a converter cannot produce.
var ErrUnsupportedType = errors.New("unsupported parameter type")

// Converter turns raw command-line values into a value of the target type.
// For slice targets every value becomes one element; for any other target
// exactly one value is passed.
type Converter interface {
	Convert(values []string, target reflect.Type) (any, error)
}

// ConverterFunc adapts a function to the Converter interface.
type ConverterFunc func(values []string, target reflect.Type) (any, error)

// Convert implements Converter.
func (f ConverterFunc) Convert(values []string, target reflect.Type) (any, error) {
	return f(values, target)
}

var (
	durationType        = reflect.TypeFor[time.Duration]()
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
)

// CtyConverter converts through the cty type system: the raw string is
// converted to the cty type implied by the target Go type and then decoded
// with gocty. Types implementing encoding.TextUnmarshaler and time.Duration
// are handled first.
type CtyConverter struct{}

var _ Converter = CtyConverter{}

// Convert implements Converter.
func (c CtyConverter) Convert(values []string, target reflect.Type) (any, error) {
	if target.Kind() == reflect.Slice && !isTextUnmarshaler(target) {
		out := reflect.MakeSlice(target, 0, len(values))

		for i, raw := range values {
			el, err := c.scalar(raw, target.Elem())
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}

			out = reflect.Append(out, el)
		}

		return out.Interface(), nil
	}

	if len(values) != 1 {
		return nil, fmt.Errorf("expected exactly one value for %s, got %d", target, len(values))
	}

	v, err := c.scalar(values[0], target)
	if err != nil {
		return nil, err
	}

	return v.Interface(), nil
}

func (c CtyConverter) scalar(raw string, target reflect.Type) (reflect.Value, error) {
	if isTextUnmarshaler(target) {
		ptr := reflect.New(target)
		if err := ptr.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(raw)); err != nil {
			return reflect.Value{}, err
		}

		return ptr.Elem(), nil
	}

	if target == durationType {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return reflect.Value{}, err
		}

		return reflect.ValueOf(d), nil
	}

	switch target.Kind() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
	default:
		return reflect.Value{}, fmt.Errorf("%w: %s", ErrUnsupportedType, target)
	}

	ty, err := gocty.ImpliedType(reflect.Zero(target).Interface())
	if err != nil {
		return reflect.Value{}, fmt.Errorf("%w: %s: %v", ErrUnsupportedType, target, err)
	}

	val, err := convert.Convert(cty.StringVal(raw), ty)
	if err != nil {
		return reflect.Value{}, err
	}

	ptr := reflect.New(target)
	if err := gocty.FromCtyValue(val, ptr.Interface()); err != nil {
		return reflect.Value{}, err
	}

	return ptr.Elem(), nil
}

func isTextUnmarshaler(t reflect.Type) bool {
	return reflect.PointerTo(t).Implements(textUnmarshalerType)
}
