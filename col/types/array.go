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

package types

import (
	"fmt"
	"reflect"

	"github.com/birchdb/go-columnexec/col"
)

type arrayType struct {
	elem col.Type
}

// NewArray returns an array type over the given element type. Array cells
// are represented as []interface{} values.
func NewArray(elem col.Type) col.ArrayType {
	return arrayType{elem: elem}
}

func (t arrayType) String() string    { return fmt.Sprintf("Array(%s)", t.elem) }
func (t arrayType) Zero() interface{} { return []interface{}{} }
func (t arrayType) Elem() col.Type    { return t.elem }

func (t arrayType) Convert(v interface{}) (interface{}, error) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || rv.Kind() != reflect.Slice {
		return nil, col.ErrTypeMismatch.New(fmt.Sprintf("cannot convert %v (%T) to %s", v, v, t))
	}

	result := make([]interface{}, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		c, err := t.elem.Convert(rv.Index(i).Interface())
		if err != nil {
			return nil, err
		}
		result[i] = c
	}
	return result, nil
}

func (t arrayType) Equals(other col.Type) bool {
	o, ok := other.(arrayType)
	return ok && t.elem.Equals(o.elem)
}
