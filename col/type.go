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

package col

// Type represents the data type of a column.
type Type interface {
	// String returns the name of the type, e.g. "Int32" or "Array(Int32)".
	String() string
	// Zero returns the zero value of this type.
	Zero() interface{}
	// Convert coerces a value to this type. It returns ErrTypeMismatch when
	// the value cannot be represented.
	Convert(v interface{}) (interface{}, error)
	// Equals reports whether other is the same type.
	Equals(other Type) bool
}

// ArrayType is implemented by types whose values are arrays of a nested
// element type. Array values are represented as []interface{}.
type ArrayType interface {
	Type
	// Elem returns the element type of the array.
	Elem() Type
}

// NumberType is implemented by numeric types. It lets functions resolve a
// common arithmetic result type without enumerating every concrete type.
type NumberType interface {
	Type
	// IsFloat reports whether the type holds floating point values.
	IsFloat() bool
}

// IsArray reports whether t is an array type.
func IsArray(t Type) bool {
	_, ok := t.(ArrayType)
	return ok
}

// IsNumber reports whether t is a numeric type.
func IsNumber(t Type) bool {
	_, ok := t.(NumberType)
	return ok
}
