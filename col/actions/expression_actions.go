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
	"github.com/birchdb/go-columnexec/col/types"
)

// argument is one input of an Action: the slot it reads and whether the
// slot stays live after the Action runs.
type argument struct {
	pos         int
	neededLater bool
}

// action is one linearized step of the plan.
type action struct {
	node      *Node
	args      []argument
	resultPos int
}

// columnPlacement materializes a COLUMN node into its slot before any
// action runs.
type columnPlacement struct {
	node *Node
	pos  int
}

// resultColumn is one output of the plan.
type resultColumn struct {
	name string
	typ  col.Type
	pos  int
}

// ExpressionActions is a linearized, topologically ordered execution plan
// derived from an ActionsDAG. After construction it is immutable and safe to
// share by read across threads; one Execute call runs on one thread, start
// to finish.
type ExpressionActions struct {
	dag *ActionsDAG

	actions    []action
	placements []columnPlacement
	numColumns int

	required       []col.ColumnWithTypeAndName
	inputPositions []int
	results        []resultColumn

	sampleBlock *col.Block
	settings    col.Settings
}

// NewExpressionActions finalizes the DAG for execution (binding every
// function node to an executable), linearizes the required nodes and
// computes the output schema. The DAG must not be mutated afterwards.
func NewExpressionActions(d *ActionsDAG) (*ExpressionActions, error) {
	ea := &ExpressionActions{
		dag:      d,
		settings: d.settings,
	}
	if err := ea.linearize(); err != nil {
		return nil, err
	}

	sample, err := ea.Execute(col.NewEmptyContext(), ea.emptyInputBlock(), true)
	if err != nil {
		return nil, err
	}
	ea.sampleBlock = sample
	return ea, nil
}

func (ea *ExpressionActions) linearize() error {
	order := ea.dag.reachableFromIndex()

	// Bind executables. Every function node must have a bound overload.
	for _, n := range order {
		if n.kind != KindFunction || n.executable != nil {
			continue
		}
		if n.base == nil {
			return col.ErrLogicalError.New(fmt.Sprintf("function node %q has no bound function", n.resultName))
		}
		n.executable = n.base.Prepare()
	}

	inIndexCount := make(map[*Node]int)
	for _, n := range ea.dag.index.Nodes() {
		inIndexCount[n]++
	}
	uses := make(map[*Node]int)
	for _, n := range order {
		for _, c := range n.children {
			uses[c]++
		}
	}

	// Assign every node a slot. Slots are reused once their last consumer
	// has run; numColumns is the high-water mark.
	pos := make(map[*Node]int, len(order))
	var free []int
	alloc := func() int {
		if n := len(free); n > 0 {
			p := free[n-1]
			free = free[:n-1]
			return p
		}
		p := ea.numColumns
		ea.numColumns++
		return p
	}

	// Sources are live from block start, so they claim their slots before
	// any action can free one; freed slots are only ever reused by action
	// results.
	for _, n := range order {
		switch n.kind {
		case KindInput:
			pos[n] = alloc()
		case KindColumn:
			pos[n] = alloc()
			ea.placements = append(ea.placements, columnPlacement{node: n, pos: pos[n]})
		}
	}

	for _, n := range order {
		switch n.kind {
		case KindInput, KindColumn:
		default:
			// How many of each child's remaining uses this action consumes.
			consumed := make(map[*Node]int, len(n.children))
			for _, c := range n.children {
				consumed[c]++
			}
			args := make([]argument, len(n.children))
			for i, c := range n.children {
				args[i] = argument{
					pos:         pos[c],
					neededLater: uses[c]-consumed[c] > 0 || inIndexCount[c] > 0,
				}
			}
			for c, k := range consumed {
				uses[c] -= k
				if uses[c] == 0 && inIndexCount[c] == 0 {
					free = append(free, pos[c])
				}
			}
			pos[n] = alloc()
			ea.actions = append(ea.actions, action{node: n, args: args, resultPos: pos[n]})
		}
	}

	for _, n := range ea.dag.inputs {
		ea.required = append(ea.required, col.ColumnWithTypeAndName{Type: n.resultType, Name: n.resultName})
		p, placed := pos[n]
		if !placed {
			p = -1
		}
		ea.inputPositions = append(ea.inputPositions, p)
	}

	for _, n := range ea.dag.index.Nodes() {
		p, ok := pos[n]
		if !ok {
			return col.ErrLogicalError.New(fmt.Sprintf("index node %q was not assigned a slot", n.resultName))
		}
		ea.results = append(ea.results, resultColumn{name: n.resultName, typ: n.resultType, pos: p})
	}
	return nil
}

func (ea *ExpressionActions) emptyInputBlock() *col.Block {
	b := col.NewBlock()
	for _, rc := range ea.required {
		b.Insert(col.ColumnWithTypeAndName{
			Column: col.NewColumn(rc.Type, nil),
			Type:   rc.Type,
			Name:   rc.Name,
		})
	}
	return b
}

// RequiredColumns returns the columns every executed block must carry.
func (ea *ExpressionActions) RequiredColumns() []col.ColumnWithTypeAndName {
	return ea.required
}

// SampleBlock returns a block with the output schema and no data.
func (ea *ExpressionActions) SampleBlock() *col.Block {
	return ea.sampleBlock
}

// DAG returns the plan's source graph. Callers must not mutate it.
func (ea *ExpressionActions) DAG() *ActionsDAG {
	return ea.dag
}

// Clone returns a deep copy sharing no mutable state with this plan.
func (ea *ExpressionActions) Clone() (*ExpressionActions, error) {
	return NewExpressionActions(ea.dag.Clone())
}

// Execute evaluates the plan over a block, deriving the row count from the
// smallest column. A block with no columns is executed over zero rows.
func (ea *ExpressionActions) Execute(ctx *col.Context, block *col.Block, dryRun bool) (*col.Block, error) {
	return ea.ExecuteOnRows(ctx, block, block.Rows(), dryRun)
}

// ExecuteOnRows evaluates the plan over numRows rows of the block and
// returns the output block. With dryRun set, functions produce placeholder
// columns of the right type instead of being invoked.
func (ea *ExpressionActions) ExecuteOnRows(ctx *col.Context, block *col.Block, numRows int, dryRun bool) (*col.Block, error) {
	span, ctx := ctx.Span("expression.Execute")
	defer span.Finish()

	for _, rc := range ea.required {
		c, ok := block.ByName(rc.Name)
		if !ok {
			return nil, col.ErrTypeMismatch.New(fmt.Sprintf("block is missing required column %q", rc.Name))
		}
		if !c.Type.Equals(rc.Type) {
			return nil, col.ErrTypeMismatch.New(fmt.Sprintf(
				"column %q has type %s, expected %s", rc.Name, c.Type, rc.Type))
		}
	}

	if ea.settings.ProjectInput {
		referenced := make(map[string]bool, len(ea.required))
		for _, rc := range ea.required {
			referenced[rc.Name] = true
		}
		for _, name := range block.Names() {
			if !referenced[name] {
				block.Erase(name)
			}
		}
	}

	cols := make([]col.Column, ea.numColumns)
	for i, rc := range ea.required {
		if p := ea.inputPositions[i]; p >= 0 {
			c, _ := block.ByName(rc.Name)
			cols[p] = c.Column
		}
	}
	for _, cp := range ea.placements {
		cols[cp.pos] = col.ResizeConst(cp.node.column, numRows)
	}
	// Limits bound real executions; schema-only dry runs are exempt.
	if !dryRun {
		if err := ea.checkLimits(cols); err != nil {
			return nil, err
		}
	}

	for _, a := range ea.actions {
		var err error
		numRows, err = ea.executeAction(ctx, a, cols, numRows, dryRun)
		if err != nil {
			return nil, err
		}
		if !dryRun {
			if err := ea.checkLimits(cols); err != nil {
				return nil, err
			}
		}
	}

	result := col.NewBlock()
	for _, rc := range ea.results {
		c := cols[rc.pos]
		if c == nil {
			return nil, col.ErrLogicalError.New(fmt.Sprintf("result column %q was released", rc.name))
		}
		result.Insert(col.ColumnWithTypeAndName{
			Column: col.ResizeConst(c, numRows),
			Type:   rc.typ,
			Name:   rc.name,
		})
	}
	if result.NumColumns() == 0 {
		result.Insert(col.ColumnWithTypeAndName{
			Column: col.NewConstColumn(types.UInt8, uint8(0), numRows),
			Type:   types.UInt8,
			Name:   col.DummyColumnName,
		})
	}
	return result, nil
}

func (ea *ExpressionActions) executeAction(ctx *col.Context, a action, cols []col.Column, numRows int, dryRun bool) (int, error) {
	switch a.node.kind {
	case KindAlias:
		c := cols[a.args[0].pos]
		if !a.args[0].neededLater {
			cols[a.args[0].pos] = nil
		}
		cols[a.resultPos] = c
		return numRows, nil

	case KindArrayJoin:
		src := cols[a.args[0].pos]
		at, ok := src.Type().(col.ArrayType)
		if !ok {
			return 0, col.ErrArrayJoinTypeMismatch.New(src.Type())
		}

		offsets := make([]int, src.Len())
		var values []interface{}
		total := 0
		for i := 0; i < src.Len(); i++ {
			arr, ok := src.Get(i).([]interface{})
			if !ok {
				return 0, col.ErrArrayJoinTypeMismatch.New(fmt.Sprintf("%T", src.Get(i)))
			}
			total += len(arr)
			offsets[i] = total
			values = append(values, arr...)
		}

		if !a.args[0].neededLater {
			cols[a.args[0].pos] = nil
		}
		// Row replication must be applied to every live column in lockstep.
		for i, c := range cols {
			if c != nil {
				cols[i] = c.Replicate(offsets)
			}
		}
		cols[a.resultPos] = col.NewColumn(at.Elem(), values)
		return total, nil

	case KindFunction:
		var result col.Column
		if dryRun {
			result = col.NewConstColumn(a.node.resultType, a.node.resultType.Zero(), numRows)
		} else {
			args := make([]col.Column, len(a.args))
			for i, arg := range a.args {
				args[i] = cols[arg.pos]
			}
			var err error
			result, err = a.node.executable.Execute(ctx, args, numRows)
			if err != nil {
				return 0, err
			}
		}
		for _, arg := range a.args {
			if !arg.neededLater {
				cols[arg.pos] = nil
			}
		}
		cols[a.resultPos] = result
		return numRows, nil

	default:
		return 0, col.ErrLogicalError.New(fmt.Sprintf("unexpected %s node in linearized actions", a.node.kind))
	}
}

func (ea *ExpressionActions) checkLimits(cols []col.Column) error {
	if ea.settings.MaxTemporaryColumns <= 0 && ea.settings.MaxTemporaryNonConstColumns <= 0 {
		return nil
	}
	live, nonConst := 0, 0
	for _, c := range cols {
		if c == nil {
			continue
		}
		live++
		if !c.IsConst() {
			nonConst++
		}
	}
	if max := ea.settings.MaxTemporaryColumns; max > 0 && live > max {
		return col.ErrTooManyTemporaryColumns.New(live, max)
	}
	if max := ea.settings.MaxTemporaryNonConstColumns; max > 0 && nonConst > max {
		return col.ErrTooManyTemporaryNonConstColumns.New(nonConst, max)
	}
	return nil
}

// ColumnIsAlwaysFalse reports whether the named output column is statically
// known to be logically false; the optimizer uses it to short-circuit
// filters that can never pass.
func (ea *ExpressionActions) ColumnIsAlwaysFalse(name string) bool {
	n, ok := ea.dag.index.get(name)
	if !ok {
		return false
	}
	return n.column != nil && n.column.IsConst() && !col.IsTrue(n.column.Get(0))
}
