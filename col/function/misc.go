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
	"math/rand"

	"github.com/birchdb/go-columnexec/col"
	"github.com/birchdb/go-columnexec/col/types"
)

// NewIgnore returns the resolver of ignore, which evaluates to zero for any
// arguments. Its result is constant but must never be folded into consumers,
// since the whole point of the function is to keep its arguments alive.
func NewIgnore() col.FunctionOverloadResolver {
	return &resolver{name: "ignore", resolve: func(args []col.Type) (col.FunctionBase, error) {
		return &base{
			name:          "ignore",
			resultType:    types.UInt8,
			deterministic: true,
			foldConstants: false,
			compilable:    false,
			exec:          ignoreExecutable{},
		}, nil
	}}
}

type ignoreExecutable struct{}

func (ignoreExecutable) Execute(_ *col.Context, _ []col.Column, numRows int) (col.Column, error) {
	return col.NewConstColumn(types.UInt8, uint8(0), numRows), nil
}

// NewMaterialize returns the resolver of materialize, which turns a constant
// column into a full one. Folding it back into a constant would defeat it, so
// its result is never folded.
func NewMaterialize() col.FunctionOverloadResolver {
	return &resolver{name: "materialize", resolve: func(args []col.Type) (col.FunctionBase, error) {
		if len(args) != 1 {
			return nil, col.ErrTypeMismatch.New(fmt.Sprintf("materialize expects 1 argument, got %d", len(args)))
		}
		return &base{
			name:          "materialize",
			resultType:    args[0],
			deterministic: true,
			foldConstants: false,
			compilable:    false,
			exec:          materializeExecutable{},
		}, nil
	}}
}

type materializeExecutable struct{}

func (materializeExecutable) Execute(_ *col.Context, args []col.Column, numRows int) (col.Column, error) {
	return col.Materialize(col.ResizeConst(args[0], numRows)), nil
}

// NewRand returns the resolver of rand, a non-deterministic function
// producing uniform floats in [0, 1).
func NewRand() col.FunctionOverloadResolver {
	return &resolver{name: "rand", resolve: func(args []col.Type) (col.FunctionBase, error) {
		if len(args) != 0 {
			return nil, col.ErrTypeMismatch.New(fmt.Sprintf("rand expects no arguments, got %d", len(args)))
		}
		return &base{
			name:          "rand",
			resultType:    types.Float64,
			deterministic: false,
			foldConstants: false,
			compilable:    false,
			exec:          randExecutable{},
		}, nil
	}}
}

type randExecutable struct{}

func (randExecutable) Execute(_ *col.Context, _ []col.Column, numRows int) (col.Column, error) {
	values := make([]interface{}, numRows)
	for i := range values {
		values[i] = rand.Float64()
	}
	return col.NewColumn(types.Float64, values), nil
}
