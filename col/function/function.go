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

// Package function implements the builtin scalar functions of the engine.
package function

import (
	"github.com/birchdb/go-columnexec/col"
)

// resolver adapts a resolve closure to col.FunctionOverloadResolver.
type resolver struct {
	name    string
	resolve func(args []col.Type) (col.FunctionBase, error)
}

func (r *resolver) Name() string { return r.name }

func (r *resolver) Resolve(args []col.Type) (col.FunctionBase, error) {
	return r.resolve(args)
}

// rowFunc computes one output cell from one row of argument cells.
type rowFunc func(ctx *col.Context, args []interface{}) (interface{}, error)

// base is the common bound-function implementation. Most builtins only
// differ in their row function and flags.
type base struct {
	name          string
	resultType    col.Type
	deterministic bool
	foldConstants bool
	compilable    bool
	monotonicity  col.Monotonicity
	fn            rowFunc
	exec          col.ExecutableFunction
}

func (b *base) Name() string                   { return b.name }
func (b *base) ResultType() col.Type           { return b.resultType }
func (b *base) IsDeterministic() bool          { return b.deterministic }
func (b *base) FoldConstants() bool            { return b.foldConstants }
func (b *base) IsCompilable() bool             { return b.compilable }
func (b *base) Monotonicity() col.Monotonicity { return b.monotonicity }

func (b *base) Prepare() col.ExecutableFunction {
	if b.exec != nil {
		return b.exec
	}
	return &rowwiseExecutable{base: b}
}

// rowwiseExecutable evaluates the row function over every row of the block.
// When all the arguments are constant and the function is deterministic, the
// result is a constant column computed from a single row.
type rowwiseExecutable struct {
	base *base
}

func (e *rowwiseExecutable) Execute(ctx *col.Context, args []col.Column, numRows int) (col.Column, error) {
	if e.base.deterministic && allConst(args) {
		v, err := e.evalRow(ctx, args, 0)
		if err != nil {
			return nil, err
		}
		return col.NewConstColumn(e.base.resultType, v, numRows), nil
	}

	values := make([]interface{}, numRows)
	for i := 0; i < numRows; i++ {
		v, err := e.evalRow(ctx, args, i)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return col.NewColumn(e.base.resultType, values), nil
}

func (e *rowwiseExecutable) evalRow(ctx *col.Context, args []col.Column, i int) (interface{}, error) {
	row := make([]interface{}, len(args))
	for j, a := range args {
		row[j] = a.Get(i)
	}
	v, err := e.base.fn(ctx, row)
	if err != nil {
		return nil, err
	}
	return e.base.resultType.Convert(v)
}

func allConst(args []col.Column) bool {
	for _, a := range args {
		if !a.IsConst() {
			return false
		}
	}
	return true
}
