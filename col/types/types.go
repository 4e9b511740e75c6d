// Copyright 2020-2021 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package types defines the concrete column data types understood by the
// expression core.
package types

import (
	"fmt"

	"github.com/spf13/cast"

	"github.com/birchdb/go-columnexec/col"
)

// Numeric and scalar types.
var (
	// Int32 is a 32-bit signed integer type.
	Int32 col.Type = &numberType{name: "Int32", zero: int32(0), convert: convertInt32}
	// Int64 is a 64-bit signed integer type.
	Int64 col.Type = &numberType{name: "Int64", zero: int64(0), convert: convertInt64}
	// UInt8 is an 8-bit unsigned integer type, also used for booleans on the
	// wire and for the _dummy sentinel column.
	UInt8 col.Type = &numberType{name: "UInt8", zero: uint8(0), convert: convertUInt8}
	// UInt64 is a 64-bit unsigned integer type.
	UInt64 col.Type = &numberType{name: "UInt64", zero: uint64(0), convert: convertUInt64}
	// Float64 is a 64-bit floating point type.
	Float64 col.Type = &numberType{name: "Float64", zero: float64(0), float: true, convert: convertFloat64}
	// Boolean is a true/false type.
	Boolean col.Type = booleanType{}
	// String is a variable-length string type.
	String col.Type = stringType{}
)

type numberType struct {
	name    string
	zero    interface{}
	float   bool
	convert func(v interface{}) (interface{}, error)
}

func (t numberType) String() string    { return t.name }
func (t numberType) Zero() interface{} { return t.zero }
func (t numberType) IsFloat() bool     { return t.float }

func (t numberType) Convert(v interface{}) (interface{}, error) {
	c, err := t.convert(v)
	if err != nil {
		return nil, col.ErrTypeMismatch.New(fmt.Sprintf("cannot convert %v (%T) to %s", v, v, t.name))
	}
	return c, nil
}

func (t numberType) Equals(other col.Type) bool {
	o, ok := other.(*numberType)
	return ok && o.name == t.name
}

func convertInt32(v interface{}) (interface{}, error)   { return cast.ToInt32E(v) }
func convertInt64(v interface{}) (interface{}, error)   { return cast.ToInt64E(v) }
func convertUInt8(v interface{}) (interface{}, error)   { return cast.ToUint8E(v) }
func convertUInt64(v interface{}) (interface{}, error)  { return cast.ToUint64E(v) }
func convertFloat64(v interface{}) (interface{}, error) { return cast.ToFloat64E(v) }

type booleanType struct{}

func (booleanType) String() string    { return "Boolean" }
func (booleanType) Zero() interface{} { return false }

func (booleanType) Convert(v interface{}) (interface{}, error) {
	switch v := v.(type) {
	case bool:
		return v, nil
	default:
		f, err := cast.ToFloat64E(v)
		if err != nil {
			return nil, col.ErrTypeMismatch.New(fmt.Sprintf("cannot convert %v (%T) to Boolean", v, v))
		}
		return f != 0, nil
	}
}

func (booleanType) Equals(other col.Type) bool {
	_, ok := other.(booleanType)
	return ok
}

type stringType struct{}

func (stringType) String() string    { return "String" }
func (stringType) Zero() interface{} { return "" }

func (stringType) Convert(v interface{}) (interface{}, error) {
	s, err := cast.ToStringE(v)
	if err != nil {
		return nil, col.ErrTypeMismatch.New(fmt.Sprintf("cannot convert %v (%T) to String", v, v))
	}
	return s, nil
}

func (stringType) Equals(other col.Type) bool {
	_, ok := other.(stringType)
	return ok
}

// CommonArithmeticType returns the result type of an arithmetic operation
// over the given numeric types: Float64 if any operand is floating point,
// Int64 otherwise.
func CommonArithmeticType(args ...col.Type) (col.Type, error) {
	result := Int64
	for _, t := range args {
		n, ok := t.(col.NumberType)
		if !ok {
			return nil, col.ErrTypeMismatch.New(fmt.Sprintf("expected a number type, got %s", t))
		}
		if n.IsFloat() {
			result = Float64
		}
	}
	return result, nil
}
