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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/birchdb/go-columnexec/col"
	"github.com/birchdb/go-columnexec/col/function"
	"github.com/birchdb/go-columnexec/col/types"
)

func names(cols []col.ColumnWithTypeAndName) []string {
	result := make([]string, len(cols))
	for i, c := range cols {
		result[i] = c.Name
	}
	return result
}

func TestEmptyChain(t *testing.T) {
	require := require.New(t)

	chain := NewActionsChain(col.DefaultSettings())
	require.True(chain.IsEmpty())

	_, err := chain.LastStep()
	require.Error(err)
	require.True(col.ErrEmptyChain.Is(err))

	_, err = chain.LastActions()
	require.Error(err)
	require.True(col.ErrEmptyChain.Is(err))

	_, err = chain.AddStep()
	require.Error(err)
	require.True(col.ErrEmptyChain.Is(err))

	err = chain.Finalize([]string{"x"})
	require.Error(err)
	require.True(col.ErrEmptyChain.Is(err))
}

func TestChainAddStep(t *testing.T) {
	require := require.New(t)

	chain := NewActionsChain(col.DefaultSettings())
	step1, err := chain.AddInitialStep(schema(input("a", types.Int32)))
	require.NoError(err)

	dag := step1.Actions()
	_, err = dag.AddColumn(literal("five", types.Int64, int64(5)))
	require.NoError(err)
	_, err = dag.AddFunction(function.NewNegate(), []string{"a"}, "na", nil)
	require.NoError(err)

	// constants flow to the next step as constants
	step2, err := chain.AddStep()
	require.NoError(err)
	five, ok := step2.Actions().FindNode("five")
	require.True(ok)
	require.Equal(KindColumn, five.Kind())
	na, ok := step2.Actions().FindNode("na")
	require.True(ok)
	require.Equal(KindInput, na.Kind())

	// unless declared non-constant
	step3, err := chain.AddStep("five")
	require.NoError(err)
	five, ok = step3.Actions().FindNode("five")
	require.True(ok)
	require.Equal(KindInput, five.Kind())

	last, err := chain.LastStep()
	require.NoError(err)
	require.Equal(step3, last)

	lastActions, err := chain.LastActions()
	require.NoError(err)
	require.Equal(step3.Actions(), lastActions)

	chain.Clear()
	require.True(chain.IsEmpty())
}

func TestChainFinalize(t *testing.T) {
	require := require.New(t)

	chain := NewActionsChain(col.DefaultSettings())
	step1, err := chain.AddInitialStep(schema(input("a", types.Int32), input("b", types.Int32)))
	require.NoError(err)

	dag := step1.Actions()
	_, err = dag.AddColumn(literal("zero", types.Int64, int64(0)))
	require.NoError(err)
	_, err = dag.AddFunction(function.NewPlus(), []string{"a", "b"}, "sum", nil)
	require.NoError(err)
	_, err = dag.AddFunction(function.NewGreater(), []string{"sum", "zero"}, "filt", nil)
	require.NoError(err)
	step1.AddRequiredOutput("filt", true)

	step2, err := chain.AddStep()
	require.NoError(err)
	_, err = step2.Actions().AddFunction(function.NewMultiply(), []string{"sum", "sum"}, "sq", nil)
	require.NoError(err)

	require.NoError(chain.Finalize([]string{"sq"}))

	// each stage exposes exactly what downstream needs
	require.Equal([]string{"sum", "filt"}, names(step1.ResultColumns()))
	require.Equal([]string{"a", "b"}, names(step1.RequiredColumns()))
	require.Equal([]string{"sq"}, names(step2.ResultColumns()))
	require.Equal([]string{"sum"}, names(step2.RequiredColumns()))

	// nothing downstream reads the filter column, so it stays removable
	_, canRemove := step1.RequiredOutput()
	require.Equal([]bool{true}, canRemove)
}

func TestChainFinalizeKeepsDemandedFilterColumn(t *testing.T) {
	require := require.New(t)

	chain := NewActionsChain(col.DefaultSettings())
	step1, err := chain.AddInitialStep(schema(input("a", types.Int32), input("b", types.Int32)))
	require.NoError(err)

	dag := step1.Actions()
	_, err = dag.AddColumn(literal("zero", types.Int64, int64(0)))
	require.NoError(err)
	_, err = dag.AddFunction(function.NewPlus(), []string{"a", "b"}, "sum", nil)
	require.NoError(err)
	_, err = dag.AddFunction(function.NewGreater(), []string{"sum", "zero"}, "filt", nil)
	require.NoError(err)
	step1.AddRequiredOutput("filt", true)

	step2, err := chain.AddStep()
	require.NoError(err)
	_, err = step2.Actions().AddFunction(function.NewMultiply(), []string{"sum", "sum"}, "sq", nil)
	require.NoError(err)

	// the final projection wants the filter column too
	require.NoError(chain.Finalize([]string{"sq", "filt"}))

	_, canRemove := step1.RequiredOutput()
	require.Equal([]bool{false}, canRemove)
	require.Contains(names(step2.RequiredColumns()), "filt")
}

func TestArrayJoinStepFinalize(t *testing.T) {
	require := require.New(t)

	arr := types.NewArray(types.Int32)
	aj := NewArrayJoinAction(NameWithAlias{Name: "arr", Alias: "e"})
	step := NewArrayJoinStep(aj,
		schema(input("arr", arr), input("k", types.Int32), input("extra", types.Int32)),
		schema(input("arr", arr), input("k", types.Int32), input("extra", types.Int32), input("e", types.Int32)),
	)

	require.NoError(step.finalize([]string{"e", "k"}))
	require.Equal([]string{"k", "e"}, names(step.ResultColumns()))
	// the array source is always required, unrelated columns drop out
	require.Equal([]string{"arr", "k"}, names(step.RequiredColumns()))
}

type stubTableJoin struct {
	required []col.ColumnWithTypeAndName
	appended []col.ColumnWithTypeAndName
}

func (j stubTableJoin) RequiredColumns() []col.ColumnWithTypeAndName { return j.required }
func (j stubTableJoin) AppendedColumns() []col.ColumnWithTypeAndName { return j.appended }

type stubJoiner struct{}

func (stubJoiner) Join(ctx *col.Context, block *col.Block) (*col.Block, error) {
	return block, nil
}

func TestJoinStepFinalize(t *testing.T) {
	require := require.New(t)

	tj := stubTableJoin{
		required: schema(input("id", types.Int64)),
		appended: schema(input("name", types.String)),
	}
	step := NewJoinStep(tj, stubJoiner{},
		schema(input("id", types.Int64), input("k", types.Int32), input("extra", types.Int32)),
		schema(input("id", types.Int64), input("k", types.Int32), input("extra", types.Int32), input("name", types.String)),
	)

	require.NoError(step.finalize([]string{"name", "k"}))
	require.Equal([]string{"k", "name"}, names(step.ResultColumns()))
	require.Equal([]string{"id", "k"}, names(step.RequiredColumns()))

	joinTable, joiner := step.Join()
	require.NotNil(joinTable)
	require.NotNil(joiner)
}

func TestChainWithArrayJoinStep(t *testing.T) {
	require := require.New(t)

	arr := types.NewArray(types.Int32)
	chain := NewActionsChain(col.DefaultSettings())
	step1, err := chain.AddInitialStep(schema(input("arr", arr), input("k", types.Int32)))
	require.NoError(err)
	_, err = step1.Actions().AddFunction(function.NewNegate(), []string{"k"}, "nk", nil)
	require.NoError(err)

	aj := NewArrayJoinAction(NameWithAlias{Name: "arr", Alias: "e"})
	chain.Append(NewArrayJoinStep(aj,
		schema(input("arr", arr), input("nk", types.Int64)),
		schema(input("arr", arr), input("nk", types.Int64), input("e", types.Int32)),
	))

	step3, err := chain.AddStep()
	require.NoError(err)
	_, err = step3.Actions().AddFunction(function.NewPlus(), []string{"e", "nk"}, "r", nil)
	require.NoError(err)

	require.NoError(chain.Finalize([]string{"r"}))

	require.Equal([]string{"r"}, names(step3.ResultColumns()))
	require.Equal([]string{"nk", "e"}, names(step3.RequiredColumns()))
	require.Equal([]string{"arr", "nk"}, names(chain.Steps()[1].RequiredColumns()))
	require.Equal([]string{"arr", "nk"}, names(step1.ResultColumns()))

	require.NotEmpty(chain.DumpChain())
}

func TestPrependProjectInput(t *testing.T) {
	require := require.New(t)

	chain := NewActionsChain(col.DefaultSettings())
	step, err := chain.AddInitialStep(schema(input("a", types.Int32)))
	require.NoError(err)

	require.False(step.Actions().Settings().ProjectInput)
	step.PrependProjectInput()
	require.True(step.Actions().Settings().ProjectInput)
}
