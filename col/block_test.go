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

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBlockRows(t *testing.T) {
	require := require.New(t)

	typ := testType{"Int"}
	b := NewBlock()
	require.Equal(0, b.Rows())

	b.Insert(ColumnWithTypeAndName{Column: NewColumn(typ, []interface{}{1, 2, 3}), Type: typ, Name: "a"})
	require.Equal(3, b.Rows())

	b.Insert(ColumnWithTypeAndName{Column: NewConstColumn(typ, 0, 2), Type: typ, Name: "b"})
	require.Equal(2, b.Rows())
}

func TestBlockByName(t *testing.T) {
	require := require.New(t)

	typ := testType{"Int"}
	b := NewBlock(
		ColumnWithTypeAndName{Column: NewColumn(typ, []interface{}{1}), Type: typ, Name: "a"},
		ColumnWithTypeAndName{Column: NewColumn(typ, []interface{}{2}), Type: typ, Name: "a"},
	)

	require.True(b.Has("a"))
	c, ok := b.ByName("a")
	require.True(ok)
	require.Equal(2, c.Column.Get(0))

	_, ok = b.ByName("missing")
	require.False(ok)
}

func TestBlockErase(t *testing.T) {
	require := require.New(t)

	typ := testType{"Int"}
	b := NewBlock(
		ColumnWithTypeAndName{Column: NewColumn(typ, []interface{}{1}), Type: typ, Name: "a"},
		ColumnWithTypeAndName{Column: NewColumn(typ, []interface{}{2}), Type: typ, Name: "b"},
	)

	b.Erase("a")
	require.False(b.Has("a"))
	require.Equal([]string{"b"}, b.Names())

	b.Erase("missing")
	require.Equal(1, b.NumColumns())
}

func TestBlockSchema(t *testing.T) {
	require := require.New(t)

	typ := testType{"Int"}
	b := NewBlock(
		ColumnWithTypeAndName{Column: NewColumn(typ, []interface{}{1}), Type: typ, Name: "a"},
	)

	schema := b.Schema()
	require.Len(schema, 1)
	require.Nil(schema[0].Column)
	require.Equal("a", schema[0].Name)
	require.True(typ.Equals(schema[0].Type))
}
