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
	"fmt"

	"github.com/spf13/cast"
)

// Column is a typed, immutable-after-construction vector of values. A column
// is either full (Len distinct cells) or constant (one value with a logical
// length). Columns are shared by reference between blocks and execution
// scratch space, so implementations must never mutate their cells.
type Column interface {
	// Type returns the data type of the column cells.
	Type() Type
	// Len returns the logical number of rows.
	Len() int
	// Get returns the value of row i.
	Get(i int) interface{}
	// IsConst reports whether the column holds a single value repeated
	// logically Len times.
	IsConst() bool
	// Replicate returns a column where row i of this column appears
	// offsets[i]-offsets[i-1] times. offsets must be non-decreasing and have
	// exactly Len entries; the result has offsets[Len-1] rows.
	Replicate(offsets []int) Column
}

type vectorColumn struct {
	t      Type
	values []interface{}
}

// NewColumn returns a full column of the given type over the given cells.
func NewColumn(t Type, values []interface{}) Column {
	return &vectorColumn{t: t, values: values}
}

func (c *vectorColumn) Type() Type            { return c.t }
func (c *vectorColumn) Len() int              { return len(c.values) }
func (c *vectorColumn) Get(i int) interface{} { return c.values[i] }
func (c *vectorColumn) IsConst() bool         { return false }

func (c *vectorColumn) Replicate(offsets []int) Column {
	if len(offsets) != len(c.values) {
		panic(ErrLogicalError.New(fmt.Sprintf(
			"replicate offsets size %d does not match column size %d",
			len(offsets), len(c.values))))
	}
	var total int
	if n := len(offsets); n > 0 {
		total = offsets[n-1]
	}
	values := make([]interface{}, 0, total)
	prev := 0
	for i, off := range offsets {
		for j := prev; j < off; j++ {
			values = append(values, c.values[i])
		}
		prev = off
	}
	return &vectorColumn{t: c.t, values: values}
}

type constColumn struct {
	t     Type
	value interface{}
	size  int
}

// NewConstColumn returns a constant column: a single value with a logical
// length of size rows.
func NewConstColumn(t Type, value interface{}, size int) Column {
	return &constColumn{t: t, value: value, size: size}
}

func (c *constColumn) Type() Type            { return c.t }
func (c *constColumn) Len() int              { return c.size }
func (c *constColumn) Get(i int) interface{} { return c.value }
func (c *constColumn) IsConst() bool         { return true }

func (c *constColumn) Replicate(offsets []int) Column {
	var total int
	if n := len(offsets); n > 0 {
		total = offsets[n-1]
	}
	return &constColumn{t: c.t, value: c.value, size: total}
}

// ResizeConst returns a constant column with the same value and the given
// logical length. It returns the column unchanged if it is not constant.
func ResizeConst(c Column, size int) Column {
	cc, ok := c.(*constColumn)
	if !ok {
		return c
	}
	if cc.size == size {
		return c
	}
	return &constColumn{t: cc.t, value: cc.value, size: size}
}

// Materialize returns a full column with the same cells as c. Full columns
// are returned unchanged.
func Materialize(c Column) Column {
	if !c.IsConst() {
		return c
	}
	values := make([]interface{}, c.Len())
	for i := range values {
		values[i] = c.Get(0)
	}
	return NewColumn(c.Type(), values)
}

// IsTrue reports whether a cell value is logically true. Numbers are true
// when nonzero, booleans are themselves, strings are parsed as numbers and
// nil is false.
func IsTrue(v interface{}) bool {
	switch v := v.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		f, err := cast.ToFloat64E(v)
		if err != nil {
			return false
		}
		return f != 0
	default:
		f, err := cast.ToFloat64E(v)
		if err != nil {
			return false
		}
		return f != 0
	}
}
