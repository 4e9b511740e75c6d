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
	"strings"

	"github.com/spf13/cast"

	"github.com/birchdb/go-columnexec/col"
	"github.com/birchdb/go-columnexec/col/types"
)

// NewLength returns the resolver of length, which accepts a string or an
// array and returns the number of characters or elements.
func NewLength() col.FunctionOverloadResolver {
	return &resolver{name: "length", resolve: func(args []col.Type) (col.FunctionBase, error) {
		if len(args) != 1 {
			return nil, col.ErrTypeMismatch.New(fmt.Sprintf("length expects 1 argument, got %d", len(args)))
		}

		var fn rowFunc
		switch {
		case col.IsArray(args[0]):
			fn = func(_ *col.Context, row []interface{}) (interface{}, error) {
				arr, ok := row[0].([]interface{})
				if !ok {
					return nil, col.ErrTypeMismatch.New(fmt.Sprintf("expected an array cell, got %T", row[0]))
				}
				return int64(len(arr)), nil
			}
		case args[0].Equals(types.String):
			fn = func(_ *col.Context, row []interface{}) (interface{}, error) {
				s, err := cast.ToStringE(row[0])
				if err != nil {
					return nil, col.ErrTypeMismatch.New(err.Error())
				}
				return int64(len(s)), nil
			}
		default:
			return nil, col.ErrTypeMismatch.New(fmt.Sprintf("length expects a string or array, got %s", args[0]))
		}

		return &base{
			name:          "length",
			resultType:    types.Int64,
			deterministic: true,
			foldConstants: true,
			compilable:    true,
			fn:            fn,
		}, nil
	}}
}

// NewConcat returns the resolver of string concatenation over one or more
// arguments.
func NewConcat() col.FunctionOverloadResolver {
	return &resolver{name: "concat", resolve: func(args []col.Type) (col.FunctionBase, error) {
		if len(args) == 0 {
			return nil, col.ErrTypeMismatch.New("concat expects at least 1 argument")
		}

		return &base{
			name:          "concat",
			resultType:    types.String,
			deterministic: true,
			foldConstants: true,
			compilable:    true,
			fn: func(_ *col.Context, row []interface{}) (interface{}, error) {
				var sb strings.Builder
				for _, v := range row {
					s, err := cast.ToStringE(v)
					if err != nil {
						return nil, col.ErrTypeMismatch.New(err.Error())
					}
					sb.WriteString(s)
				}
				return sb.String(), nil
			},
		}, nil
	}}
}

// NewUpper returns the resolver of upper.
func NewUpper() col.FunctionOverloadResolver {
	return newStringMap("upper", strings.ToUpper)
}

// NewLower returns the resolver of lower.
func NewLower() col.FunctionOverloadResolver {
	return newStringMap("lower", strings.ToLower)
}

func newStringMap(name string, mapFn func(string) string) col.FunctionOverloadResolver {
	return &resolver{name: name, resolve: func(args []col.Type) (col.FunctionBase, error) {
		if len(args) != 1 {
			return nil, col.ErrTypeMismatch.New(fmt.Sprintf("%s expects 1 argument, got %d", name, len(args)))
		}
		if !args[0].Equals(types.String) {
			return nil, col.ErrTypeMismatch.New(fmt.Sprintf("%s expects a string, got %s", name, args[0]))
		}

		return &base{
			name:          name,
			resultType:    types.String,
			deterministic: true,
			foldConstants: true,
			compilable:    true,
			fn: func(_ *col.Context, row []interface{}) (interface{}, error) {
				s, err := cast.ToStringE(row[0])
				if err != nil {
					return nil, col.ErrTypeMismatch.New(err.Error())
				}
				return mapFn(s), nil
			},
		}, nil
	}}
}
