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

// NewPlus returns the resolver of the binary addition function.
func NewPlus() col.FunctionOverloadResolver {
	return newArithmetic("plus", col.Increasing,
		func(a, b int64) int64 { return a + b },
		func(a, b float64) float64 { return a + b })
}

// NewMinus returns the resolver of the binary subtraction function.
func NewMinus() col.FunctionOverloadResolver {
	return newArithmetic("minus", col.Increasing,
		func(a, b int64) int64 { return a - b },
		func(a, b float64) float64 { return a - b })
}

// NewMultiply returns the resolver of the binary multiplication function.
func NewMultiply() col.FunctionOverloadResolver {
	return newArithmetic("multiply", col.NotMonotonic,
		func(a, b int64) int64 { return a * b },
		func(a, b float64) float64 { return a * b })
}

func newArithmetic(name string, mono col.Monotonicity, intOp func(a, b int64) int64, floatOp func(a, b float64) float64) col.FunctionOverloadResolver {
	return &resolver{name: name, resolve: func(args []col.Type) (col.FunctionBase, error) {
		if len(args) != 2 {
			return nil, col.ErrTypeMismatch.New(fmt.Sprintf("%s expects 2 arguments, got %d", name, len(args)))
		}
		resultType, err := types.CommonArithmeticType(args...)
		if err != nil {
			return nil, err
		}

		var fn rowFunc
		if resultType.Equals(types.Float64) {
			fn = func(_ *col.Context, row []interface{}) (interface{}, error) {
				a, err := cast.ToFloat64E(row[0])
				if err != nil {
					return nil, col.ErrTypeMismatch.New(err.Error())
				}
				b, err := cast.ToFloat64E(row[1])
				if err != nil {
					return nil, col.ErrTypeMismatch.New(err.Error())
				}
				return floatOp(a, b), nil
			}
		} else {
			fn = func(_ *col.Context, row []interface{}) (interface{}, error) {
				a, err := cast.ToInt64E(row[0])
				if err != nil {
					return nil, col.ErrTypeMismatch.New(err.Error())
				}
				b, err := cast.ToInt64E(row[1])
				if err != nil {
					return nil, col.ErrTypeMismatch.New(err.Error())
				}
				return intOp(a, b), nil
			}
		}

		return &base{
			name:          name,
			resultType:    resultType,
			deterministic: true,
			foldConstants: true,
			compilable:    true,
			monotonicity:  mono,
			fn:            fn,
		}, nil
	}}
}

// NewDivide returns the resolver of the binary division function. The result
// is always floating point.
func NewDivide() col.FunctionOverloadResolver {
	return &resolver{name: "divide", resolve: func(args []col.Type) (col.FunctionBase, error) {
		if len(args) != 2 {
			return nil, col.ErrTypeMismatch.New(fmt.Sprintf("divide expects 2 arguments, got %d", len(args)))
		}
		if _, err := types.CommonArithmeticType(args...); err != nil {
			return nil, err
		}

		return &base{
			name:          "divide",
			resultType:    types.Float64,
			deterministic: true,
			foldConstants: true,
			compilable:    true,
			fn: func(_ *col.Context, row []interface{}) (interface{}, error) {
				a, err := cast.ToFloat64E(row[0])
				if err != nil {
					return nil, col.ErrTypeMismatch.New(err.Error())
				}
				b, err := cast.ToFloat64E(row[1])
				if err != nil {
					return nil, col.ErrTypeMismatch.New(err.Error())
				}
				return a / b, nil
			},
		}, nil
	}}
}

// NewNegate returns the resolver of the unary negation function.
func NewNegate() col.FunctionOverloadResolver {
	return &resolver{name: "negate", resolve: func(args []col.Type) (col.FunctionBase, error) {
		if len(args) != 1 {
			return nil, col.ErrTypeMismatch.New(fmt.Sprintf("negate expects 1 argument, got %d", len(args)))
		}
		resultType, err := types.CommonArithmeticType(args...)
		if err != nil {
			return nil, err
		}

		var fn rowFunc
		if resultType.Equals(types.Float64) {
			fn = func(_ *col.Context, row []interface{}) (interface{}, error) {
				a, err := cast.ToFloat64E(row[0])
				if err != nil {
					return nil, col.ErrTypeMismatch.New(err.Error())
				}
				return -a, nil
			}
		} else {
			fn = func(_ *col.Context, row []interface{}) (interface{}, error) {
				a, err := cast.ToInt64E(row[0])
				if err != nil {
					return nil, col.ErrTypeMismatch.New(err.Error())
				}
				return -a, nil
			}
		}

		return &base{
			name:          "negate",
			resultType:    resultType,
			deterministic: true,
			foldConstants: true,
			compilable:    true,
			monotonicity:  col.Decreasing,
			fn:            fn,
		}, nil
	}}
}
