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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/birchdb/go-columnexec/col"
)

func TestConvert(t *testing.T) {
	testCases := []struct {
		typ      col.Type
		value    interface{}
		expected interface{}
	}{
		{Int32, "42", int32(42)},
		{Int32, int64(7), int32(7)},
		{Int64, 3, int64(3)},
		{UInt8, 1, uint8(1)},
		{UInt64, 18, uint64(18)},
		{Float64, "3.14", 3.14},
		{Float64, 2, float64(2)},
		{Boolean, 1, true},
		{Boolean, 0, false},
		{Boolean, true, true},
		{String, 42, "42"},
		{String, "foo", "foo"},
	}

	for _, tt := range testCases {
		t.Run(fmt.Sprintf("%s(%v)", tt.typ, tt.value), func(t *testing.T) {
			v, err := tt.typ.Convert(tt.value)
			require.NoError(t, err)
			require.Equal(t, tt.expected, v)
		})
	}
}

func TestConvertError(t *testing.T) {
	testCases := []struct {
		typ   col.Type
		value interface{}
	}{
		{Int32, "not a number"},
		{Float64, "nope"},
		{Boolean, "wat"},
		{NewArray(Int32), 42},
		{NewArray(Int32), []interface{}{"nope"}},
	}

	for _, tt := range testCases {
		t.Run(fmt.Sprintf("%s(%v)", tt.typ, tt.value), func(t *testing.T) {
			_, err := tt.typ.Convert(tt.value)
			require.Error(t, err)
			require.True(t, col.ErrTypeMismatch.Is(err))
		})
	}
}

func TestArrayConvert(t *testing.T) {
	require := require.New(t)

	arr := NewArray(Int32)
	v, err := arr.Convert([]int{1, 2, 3})
	require.NoError(err)
	require.Equal([]interface{}{int32(1), int32(2), int32(3)}, v)

	v, err = arr.Convert([]interface{}{"4", 5})
	require.NoError(err)
	require.Equal([]interface{}{int32(4), int32(5)}, v)
}

func TestTypeEquals(t *testing.T) {
	require := require.New(t)

	require.True(Int32.Equals(Int32))
	require.False(Int32.Equals(Int64))
	require.False(Int32.Equals(String))
	require.True(NewArray(Int32).Equals(NewArray(Int32)))
	require.False(NewArray(Int32).Equals(NewArray(Int64)))
	require.False(NewArray(Int32).Equals(Int32))
}

func TestCommonArithmeticType(t *testing.T) {
	require := require.New(t)

	typ, err := CommonArithmeticType(Int32, Int64)
	require.NoError(err)
	require.True(typ.Equals(Int64))

	typ, err = CommonArithmeticType(Int32, Float64)
	require.NoError(err)
	require.True(typ.Equals(Float64))

	_, err = CommonArithmeticType(Int32, String)
	require.Error(err)
	require.True(col.ErrTypeMismatch.Is(err))
}

func TestArrayString(t *testing.T) {
	require.Equal(t, "Array(Array(Int32))", NewArray(NewArray(Int32)).String())
}
