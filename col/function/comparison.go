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

	"github.com/spf13/cast"

	"github.com/birchdb/go-columnexec/col"
	"github.com/birchdb/go-columnexec/col/types"
)

// NewEquals returns the resolver of the equality comparison.
func NewEquals() col.FunctionOverloadResolver {
	return newComparison("equals", func(cmp int) bool { return cmp == 0 })
}

// NewLess returns the resolver of the less-than comparison.
func NewLess() col.FunctionOverloadResolver {
	return newComparison("less", func(cmp int) bool { return cmp < 0 })
}

// NewGreater returns the resolver of the greater-than comparison.
func NewGreater() col.FunctionOverloadResolver {
	return newComparison("greater", func(cmp int) bool { return cmp > 0 })
}

func newComparison(name string, test func(cmp int) bool) col.FunctionOverloadResolver {
	return &resolver{name: name, resolve: func(args []col.Type) (col.FunctionBase, error) {
		if len(args) != 2 {
			return nil, col.ErrTypeMismatch.New(fmt.Sprintf("%s expects 2 arguments, got %d", name, len(args)))
		}

		var compare func(a, b interface{}) (int, error)
		switch {
		case col.IsNumber(args[0]) && col.IsNumber(args[1]):
			compare = compareNumbers
		case args[0].Equals(types.String) && args[1].Equals(types.String):
			compare = compareStrings
		case args[0].Equals(args[1]) && args[0].Equals(types.Boolean):
			compare = compareBooleans
		default:
			return nil, col.ErrTypeMismatch.New(fmt.Sprintf("cannot compare %s with %s", args[0], args[1]))
		}

		return &base{
			name:          name,
			resultType:    types.Boolean,
			deterministic: true,
			foldConstants: true,
			compilable:    true,
			fn: func(_ *col.Context, row []interface{}) (interface{}, error) {
				cmp, err := compare(row[0], row[1])
				if err != nil {
					return nil, err
				}
				return test(cmp), nil
			},
		}, nil
	}}
}

func compareNumbers(a, b interface{}) (int, error) {
	fa, err := cast.ToFloat64E(a)
	if err != nil {
		return 0, col.ErrTypeMismatch.New(err.Error())
	}
	fb, err := cast.ToFloat64E(b)
	if err != nil {
		return 0, col.ErrTypeMismatch.New(err.Error())
	}
	switch {
	case fa < fb:
		return -1, nil
	case fa > fb:
		return 1, nil
	default:
		return 0, nil
	}
}

func compareStrings(a, b interface{}) (int, error) {
	sa, err := cast.ToStringE(a)
	if err != nil {
		return 0, col.ErrTypeMismatch.New(err.Error())
	}
	sb, err := cast.ToStringE(b)
	if err != nil {
		return 0, col.ErrTypeMismatch.New(err.Error())
	}
	switch {
	case sa < sb:
		return -1, nil
	case sa > sb:
		return 1, nil
	default:
		return 0, nil
	}
}

func compareBooleans(a, b interface{}) (int, error) {
	ba, err := cast.ToBoolE(a)
	if err != nil {
		return 0, col.ErrTypeMismatch.New(err.Error())
	}
	bb, err := cast.ToBoolE(b)
	if err != nil {
		return 0, col.ErrTypeMismatch.New(err.Error())
	}
	switch {
	case ba == bb:
		return 0, nil
	case !ba:
		return -1, nil
	default:
		return 1, nil
	}
}
