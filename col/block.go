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

import "fmt"

// DummyColumnName names the sentinel column inserted into an otherwise empty
// result block so that downstream operators can still observe the row count.
const DummyColumnName = "_dummy"

// ColumnWithTypeAndName describes one block column. Column may be nil when
// only the schema is known, e.g. in sample blocks and input declarations.
type ColumnWithTypeAndName struct {
	Column Column
	Type   Type
	Name   string
}

func (c ColumnWithTypeAndName) String() string {
	return fmt.Sprintf("%s %s", c.Name, c.Type)
}

// Block is a batch of rows in columnar layout: an ordered list of named,
// typed columns sharing a common row count. Lookups by name resolve to the
// most recently inserted column with that name.
type Block struct {
	cols   []ColumnWithTypeAndName
	byName map[string]int
}

// NewBlock returns a block over the given columns.
func NewBlock(cols ...ColumnWithTypeAndName) *Block {
	b := &Block{byName: make(map[string]int, len(cols))}
	for _, c := range cols {
		b.Insert(c)
	}
	return b
}

// Insert appends a column to the block.
func (b *Block) Insert(c ColumnWithTypeAndName) {
	b.cols = append(b.cols, c)
	b.byName[c.Name] = len(b.cols) - 1
}

// Erase removes the last column with the given name, if present.
func (b *Block) Erase(name string) {
	pos, ok := b.byName[name]
	if !ok {
		return
	}
	b.cols = append(b.cols[:pos], b.cols[pos+1:]...)
	b.byName = make(map[string]int, len(b.cols))
	for i, c := range b.cols {
		b.byName[c.Name] = i
	}
}

// Has reports whether the block has a column with the given name.
func (b *Block) Has(name string) bool {
	_, ok := b.byName[name]
	return ok
}

// ByName returns the last column with the given name.
func (b *Block) ByName(name string) (ColumnWithTypeAndName, bool) {
	pos, ok := b.byName[name]
	if !ok {
		return ColumnWithTypeAndName{}, false
	}
	return b.cols[pos], true
}

// Columns returns the block columns in order.
func (b *Block) Columns() []ColumnWithTypeAndName {
	return b.cols
}

// NumColumns returns the number of columns in the block.
func (b *Block) NumColumns() int {
	return len(b.cols)
}

// Rows returns the row count of the block: the smallest column length, or
// zero for a block with no columns.
func (b *Block) Rows() int {
	if len(b.cols) == 0 {
		return 0
	}
	rows := b.cols[0].Column.Len()
	for _, c := range b.cols[1:] {
		if n := c.Column.Len(); n < rows {
			rows = n
		}
	}
	return rows
}

// Schema returns the block column descriptors without their data.
func (b *Block) Schema() []ColumnWithTypeAndName {
	schema := make([]ColumnWithTypeAndName, len(b.cols))
	for i, c := range b.cols {
		schema[i] = ColumnWithTypeAndName{Type: c.Type, Name: c.Name}
	}
	return schema
}

// Names returns the column names in order.
func (b *Block) Names() []string {
	names := make([]string, len(b.cols))
	for i, c := range b.cols {
		names[i] = c.Name
	}
	return names
}
