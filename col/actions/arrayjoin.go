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

package actions

import (
	"fmt"

	"github.com/birchdb/go-columnexec/col"
)

// ArrayJoinAction replicates a block's rows according to array lengths. For
// each listed column it emits the unfolded elements under the alias name; an
// alias equal to the source name replaces the array column, otherwise the
// replicated array column is kept alongside the elements. All other columns
// are replicated in lockstep.
type ArrayJoinAction struct {
	columns []NameWithAlias
}

// NewArrayJoinAction creates an array join over the given columns. An empty
// Alias unfolds the column in place.
func NewArrayJoinAction(columns ...NameWithAlias) *ArrayJoinAction {
	normalized := make([]NameWithAlias, len(columns))
	for i, c := range columns {
		if c.Alias == "" {
			c.Alias = c.Name
		}
		normalized[i] = c
	}
	return &ArrayJoinAction{columns: normalized}
}

// Columns returns the unfolded columns and their aliases.
func (a *ArrayJoinAction) Columns() []NameWithAlias { return a.columns }

// Execute unfolds the listed array columns of the block. Every listed
// column must hold arrays of the same per-row lengths.
func (a *ArrayJoinAction) Execute(ctx *col.Context, block *col.Block) (*col.Block, error) {
	span, _ := ctx.Span("arrayjoin.Execute")
	defer span.Finish()

	if len(a.columns) == 0 {
		return nil, col.ErrLogicalError.New("ARRAY JOIN over no columns")
	}

	type unfolded struct {
		src   NameWithAlias
		elems col.Column
	}

	var offsets []int
	results := make([]unfolded, 0, len(a.columns))
	for _, c := range a.columns {
		src, ok := block.ByName(c.Name)
		if !ok {
			return nil, col.ErrUnknownIdentifier.New(c.Name, "")
		}
		at, ok := src.Type.(col.ArrayType)
		if !ok {
			return nil, col.ErrArrayJoinTypeMismatch.New(src.Type)
		}

		column := src.Column
		colOffsets := make([]int, column.Len())
		var values []interface{}
		total := 0
		for i := 0; i < column.Len(); i++ {
			arr, ok := column.Get(i).([]interface{})
			if !ok {
				return nil, col.ErrArrayJoinTypeMismatch.New(fmt.Sprintf("%T", column.Get(i)))
			}
			total += len(arr)
			colOffsets[i] = total
			values = append(values, arr...)
		}

		if offsets == nil {
			offsets = colOffsets
		} else if !equalOffsets(offsets, colOffsets) {
			return nil, col.ErrTypeMismatch.New("sizes of ARRAY JOIN columns do not match")
		}
		results = append(results, unfolded{src: c, elems: col.NewColumn(at.Elem(), values)})
	}

	replaced := make(map[string]col.Column, len(results))
	appended := make([]unfolded, 0, len(results))
	for _, u := range results {
		if u.src.Alias == u.src.Name {
			replaced[u.src.Name] = u.elems
		} else {
			appended = append(appended, u)
		}
	}

	out := col.NewBlock()
	for _, c := range block.Columns() {
		if elems, ok := replaced[c.Name]; ok {
			at := c.Type.(col.ArrayType)
			out.Insert(col.ColumnWithTypeAndName{Column: elems, Type: at.Elem(), Name: c.Name})
			continue
		}
		out.Insert(col.ColumnWithTypeAndName{
			Column: c.Column.Replicate(offsets),
			Type:   c.Type,
			Name:   c.Name,
		})
	}
	for _, u := range appended {
		out.Insert(col.ColumnWithTypeAndName{
			Column: u.elems,
			Type:   u.elems.Type(),
			Name:   u.src.Alias,
		})
	}
	return out, nil
}

func equalOffsets(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
