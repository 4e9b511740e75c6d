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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/birchdb/go-columnexec/col"
	"github.com/birchdb/go-columnexec/col/types"
)

func eval(t *testing.T, fn col.FunctionOverloadResolver, args ...col.ColumnWithTypeAndName) (col.Column, col.FunctionBase) {
	t.Helper()
	require := require.New(t)

	argTypes := make([]col.Type, len(args))
	argCols := make([]col.Column, len(args))
	numRows := 0
	for i, a := range args {
		argTypes[i] = a.Type
		argCols[i] = a.Column
		if a.Column.Len() > numRows {
			numRows = a.Column.Len()
		}
	}

	base, err := fn.Resolve(argTypes)
	require.NoError(err)
	result, err := base.Prepare().Execute(col.NewEmptyContext(), argCols, numRows)
	require.NoError(err)
	return result, base
}

func column(typ col.Type, values ...interface{}) col.ColumnWithTypeAndName {
	return col.ColumnWithTypeAndName{Column: col.NewColumn(typ, values), Type: typ}
}

func constant(typ col.Type, value interface{}, size int) col.ColumnWithTypeAndName {
	return col.ColumnWithTypeAndName{Column: col.NewConstColumn(typ, value, size), Type: typ}
}

func TestArithmetic(t *testing.T) {
	testCases := []struct {
		fn       col.FunctionOverloadResolver
		left     col.ColumnWithTypeAndName
		right    col.ColumnWithTypeAndName
		expected []interface{}
	}{
		{NewPlus(), column(types.Int32, int32(1), int32(2)), column(types.Int32, int32(10), int32(20)), []interface{}{int64(11), int64(22)}},
		{NewPlus(), column(types.Float64, 0.1459, 3.0), column(types.Float64, 3.0, 0.5), []interface{}{3.1459, 3.5}},
		{NewMinus(), column(types.Int64, int64(5), int64(1)), column(types.Int64, int64(3), int64(7)), []interface{}{int64(2), int64(-6)}},
		{NewMultiply(), column(types.Int32, int32(3), int32(-2)), column(types.Int64, int64(4), int64(10)), []interface{}{int64(12), int64(-20)}},
		{NewDivide(), column(types.Int32, int32(3), int32(1)), column(types.Int32, int32(2), int32(4)), []interface{}{1.5, 0.25}},
	}

	for _, tt := range testCases {
		t.Run(tt.fn.Name(), func(t *testing.T) {
			result, _ := eval(t, tt.fn, tt.left, tt.right)
			require.Equal(t, len(tt.expected), result.Len())
			for i, e := range tt.expected {
				require.Equal(t, e, result.Get(i))
			}
		})
	}
}

func TestArithmeticResultType(t *testing.T) {
	require := require.New(t)

	base, err := NewPlus().Resolve([]col.Type{types.Int32, types.Int32})
	require.NoError(err)
	require.True(base.ResultType().Equals(types.Int64))

	base, err = NewPlus().Resolve([]col.Type{types.Int32, types.Float64})
	require.NoError(err)
	require.True(base.ResultType().Equals(types.Float64))

	_, err = NewPlus().Resolve([]col.Type{types.Int32, types.String})
	require.Error(err)
	require.True(col.ErrTypeMismatch.Is(err))

	_, err = NewPlus().Resolve([]col.Type{types.Int32})
	require.Error(err)
	require.True(col.ErrTypeMismatch.Is(err))
}

func TestArithmeticConstArguments(t *testing.T) {
	require := require.New(t)

	result, _ := eval(t, NewPlus(), constant(types.Int64, int64(2), 4), constant(types.Int64, int64(3), 4))
	require.True(result.IsConst())
	require.Equal(4, result.Len())
	require.Equal(int64(5), result.Get(0))
}

func TestNegate(t *testing.T) {
	require := require.New(t)

	result, base := eval(t, NewNegate(), column(types.Int32, int32(3), int32(-7)))
	require.Equal(col.Decreasing, base.Monotonicity())
	require.Equal(int64(-3), result.Get(0))
	require.Equal(int64(7), result.Get(1))
}

func TestComparison(t *testing.T) {
	testCases := []struct {
		fn       col.FunctionOverloadResolver
		left     col.ColumnWithTypeAndName
		right    col.ColumnWithTypeAndName
		expected []interface{}
	}{
		{NewEquals(), column(types.Int32, int32(1), int32(2)), column(types.Int64, int64(1), int64(3)), []interface{}{true, false}},
		{NewLess(), column(types.Int32, int32(1), int32(5)), column(types.Int32, int32(2), int32(5)), []interface{}{true, false}},
		{NewGreater(), column(types.Float64, 2.5, 0.5), column(types.Float64, 2.0, 1.0), []interface{}{true, false}},
		{NewLess(), column(types.String, "abc", "zzz"), column(types.String, "abd", "aaa"), []interface{}{true, false}},
	}

	for _, tt := range testCases {
		t.Run(tt.fn.Name(), func(t *testing.T) {
			result, base := eval(t, tt.fn, tt.left, tt.right)
			require.True(t, base.ResultType().Equals(types.Boolean))
			for i, e := range tt.expected {
				require.Equal(t, e, result.Get(i))
			}
		})
	}
}

func TestComparisonTypeMismatch(t *testing.T) {
	_, err := NewEquals().Resolve([]col.Type{types.Int32, types.String})
	require.Error(t, err)
	require.True(t, col.ErrTypeMismatch.Is(err))
}

func TestLogic(t *testing.T) {
	require := require.New(t)

	result, _ := eval(t, NewAnd(),
		column(types.Boolean, true, true, false),
		column(types.Boolean, true, false, false),
	)
	require.Equal([]interface{}{true, false, false}, collect(result))

	result, _ = eval(t, NewOr(),
		column(types.Boolean, true, false, false),
		column(types.Boolean, false, false, true),
	)
	require.Equal([]interface{}{true, false, true}, collect(result))

	result, _ = eval(t, NewNot(), column(types.Boolean, true, false))
	require.Equal([]interface{}{false, true}, collect(result))
}

func TestLength(t *testing.T) {
	require := require.New(t)

	result, _ := eval(t, NewLength(), column(types.String, "", "hello"))
	require.Equal([]interface{}{int64(0), int64(5)}, collect(result))

	arr := types.NewArray(types.Int32)
	result, _ = eval(t, NewLength(), column(arr,
		[]interface{}{int32(1), int32(2)},
		[]interface{}{},
	))
	require.Equal([]interface{}{int64(2), int64(0)}, collect(result))

	_, err := NewLength().Resolve([]col.Type{types.Int32})
	require.Error(err)
	require.True(col.ErrTypeMismatch.Is(err))
}

func TestConcatAndCase(t *testing.T) {
	require := require.New(t)

	result, _ := eval(t, NewConcat(),
		column(types.String, "foo", "a"),
		column(types.String, "bar", "b"),
	)
	require.Equal([]interface{}{"foobar", "ab"}, collect(result))

	result, _ = eval(t, NewUpper(), column(types.String, "foo"))
	require.Equal([]interface{}{"FOO"}, collect(result))

	result, _ = eval(t, NewLower(), column(types.String, "BaR"))
	require.Equal([]interface{}{"bar"}, collect(result))
}

func TestIgnore(t *testing.T) {
	require := require.New(t)

	base, err := NewIgnore().Resolve([]col.Type{types.Int32, types.String})
	require.NoError(err)
	require.True(base.IsDeterministic())
	require.False(base.FoldConstants())
	require.False(base.IsCompilable())

	result, err := base.Prepare().Execute(col.NewEmptyContext(),
		[]col.Column{col.NewColumn(types.Int32, []interface{}{int32(1), int32(2)})}, 2)
	require.NoError(err)
	require.True(result.IsConst())
	require.Equal(2, result.Len())
	require.Equal(uint8(0), result.Get(0))
}

func TestMaterializeFunction(t *testing.T) {
	require := require.New(t)

	base, err := NewMaterialize().Resolve([]col.Type{types.Int64})
	require.NoError(err)
	require.False(base.FoldConstants())
	require.True(base.ResultType().Equals(types.Int64))

	result, err := base.Prepare().Execute(col.NewEmptyContext(),
		[]col.Column{col.NewConstColumn(types.Int64, int64(9), 1)}, 3)
	require.NoError(err)
	require.False(result.IsConst())
	require.Equal([]interface{}{int64(9), int64(9), int64(9)}, collect(result))
}

func TestRand(t *testing.T) {
	require := require.New(t)

	base, err := NewRand().Resolve(nil)
	require.NoError(err)
	require.False(base.IsDeterministic())
	require.False(base.IsCompilable())

	result, err := base.Prepare().Execute(col.NewEmptyContext(), nil, 16)
	require.NoError(err)
	require.False(result.IsConst())
	require.Equal(16, result.Len())
	for i := 0; i < result.Len(); i++ {
		f := result.Get(i).(float64)
		require.True(f >= 0 && f < 1, fmt.Sprintf("rand out of range: %v", f))
	}
}

func TestRegistryDefaults(t *testing.T) {
	require := require.New(t)

	r := NewRegistry()
	for _, name := range []string{"plus", "minus", "multiply", "divide", "negate",
		"equals", "less", "greater", "and", "or", "not",
		"length", "concat", "upper", "lower", "ignore", "materialize", "rand"} {
		_, err := r.Function(name)
		require.NoError(err)
	}
}

func collect(c col.Column) []interface{} {
	values := make([]interface{}, c.Len())
	for i := range values {
		values[i] = c.Get(i)
	}
	return values
}
