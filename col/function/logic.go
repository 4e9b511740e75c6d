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

package function

import (
	"fmt"

	"github.com/birchdb/go-columnexec/col"
	"github.com/birchdb/go-columnexec/col/types"
)

// NewAnd returns the resolver of the logical conjunction over two or more
// arguments.
func NewAnd() col.FunctionOverloadResolver {
	return newLogic("and", func(values []bool) bool {
		for _, v := range values {
			if !v {
				return false
			}
		}
		return true
	})
}

// NewOr returns the resolver of the logical disjunction over two or more
// arguments.
func NewOr() col.FunctionOverloadResolver {
	return newLogic("or", func(values []bool) bool {
		for _, v := range values {
			if v {
				return true
			}
		}
		return false
	})
}

func newLogic(name string, combine func(values []bool) bool) col.FunctionOverloadResolver {
	return &resolver{name: name, resolve: func(args []col.Type) (col.FunctionBase, error) {
		if len(args) < 2 {
			return nil, col.ErrTypeMismatch.New(fmt.Sprintf("%s expects at least 2 arguments, got %d", name, len(args)))
		}

		return &base{
			name:          name,
			resultType:    types.Boolean,
			deterministic: true,
			foldConstants: true,
			compilable:    true,
			fn: func(_ *col.Context, row []interface{}) (interface{}, error) {
				values := make([]bool, len(row))
				for i, v := range row {
					values[i] = col.IsTrue(v)
				}
				return combine(values), nil
			},
		}, nil
	}}
}

// NewNot returns the resolver of the logical negation.
func NewNot() col.FunctionOverloadResolver {
	return &resolver{name: "not", resolve: func(args []col.Type) (col.FunctionBase, error) {
		if len(args) != 1 {
			return nil, col.ErrTypeMismatch.New(fmt.Sprintf("not expects 1 argument, got %d", len(args)))
		}

		return &base{
			name:          "not",
			resultType:    types.Boolean,
			deterministic: true,
			foldConstants: true,
			compilable:    true,
			fn: func(_ *col.Context, row []interface{}) (interface{}, error) {
				return !col.IsTrue(row[0]), nil
			},
		}, nil
	}}
}
