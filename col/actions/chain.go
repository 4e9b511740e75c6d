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
	"github.com/birchdb/go-columnexec/col"
)

// TableJoin analyzes a join clause: the columns the join reads from the
// left side and the columns it appends to the block. The join algorithm
// itself lives outside this package.
type TableJoin interface {
	RequiredColumns() []col.ColumnWithTypeAndName
	AppendedColumns() []col.ColumnWithTypeAndName
}

// Joiner materializes the joined block at execution time.
type Joiner interface {
	Join(ctx *col.Context, block *col.Block) (*col.Block, error)
}

// StepKind tags the closed set of chain step variants.
type StepKind int8

const (
	// StepExpression is a plain expression computation stage.
	StepExpression StepKind = iota
	// StepArrayJoin is an ARRAY JOIN stage.
	StepArrayJoin
	// StepJoin is a JOIN stage.
	StepJoin
)

func (k StepKind) String() string {
	switch k {
	case StepExpression:
		return "EXPRESSION"
	case StepArrayJoin:
		return "ARRAY JOIN"
	case StepJoin:
		return "JOIN"
	default:
		return "STEP"
	}
}

// Step is one stage of an ActionsChain. The three variants share this one
// struct dispatched on kind; the set is closed.
type Step struct {
	kind StepKind

	actions   *ActionsDAG      // StepExpression
	arrayJoin *ArrayJoinAction // StepArrayJoin
	tableJoin TableJoin        // StepJoin
	joiner    Joiner           // StepJoin

	// required/result are the fixed column lists of array join and join
	// steps; expression steps derive both from their DAG.
	required []col.ColumnWithTypeAndName
	result   []col.ColumnWithTypeAndName

	// requiredOutput are columns this step must produce for the operator
	// that consumes it (e.g. a filter column for WHERE). canRemove marks
	// entries the outer plan may drop from the block after that operator
	// has run; Finalize clears the mark for anything demanded downstream.
	requiredOutput []string
	canRemove      []bool
}

// NewExpressionActionsStep wraps a DAG into a chain step.
func NewExpressionActionsStep(dag *ActionsDAG) *Step {
	return &Step{kind: StepExpression, actions: dag}
}

// NewArrayJoinStep creates an ARRAY JOIN step over fixed required and
// result column lists.
func NewArrayJoinStep(arrayJoin *ArrayJoinAction, required, result []col.ColumnWithTypeAndName) *Step {
	return &Step{kind: StepArrayJoin, arrayJoin: arrayJoin, required: required, result: result}
}

// NewJoinStep creates a JOIN step from a join analyzer and runtime.
func NewJoinStep(tableJoin TableJoin, joiner Joiner, required, result []col.ColumnWithTypeAndName) *Step {
	return &Step{kind: StepJoin, tableJoin: tableJoin, joiner: joiner, required: required, result: result}
}

// Kind returns the step variant.
func (s *Step) Kind() StepKind { return s.kind }

// Actions returns the DAG of an expression step, or nil.
func (s *Step) Actions() *ActionsDAG { return s.actions }

// ArrayJoin returns the array join of an ARRAY JOIN step, or nil.
func (s *Step) ArrayJoin() *ArrayJoinAction { return s.arrayJoin }

// Join returns the join collaborators of a JOIN step.
func (s *Step) Join() (TableJoin, Joiner) { return s.tableJoin, s.joiner }

// AddRequiredOutput declares a column this step must produce for its
// consumer. canRemove marks it as droppable once that consumer has run.
func (s *Step) AddRequiredOutput(name string, canRemove bool) {
	s.requiredOutput = append(s.requiredOutput, name)
	s.canRemove = append(s.canRemove, canRemove)
}

// RequiredOutput returns the declared output demands and their removability
// after Finalize.
func (s *Step) RequiredOutput() ([]string, []bool) {
	return s.requiredOutput, s.canRemove
}

// PrependProjectInput makes an expression step drop unreferenced columns
// from its incoming blocks.
func (s *Step) PrependProjectInput() {
	if s.kind == StepExpression {
		s.actions.settings.ProjectInput = true
	}
}

// RequiredColumns returns the columns this step reads from the previous one.
func (s *Step) RequiredColumns() []col.ColumnWithTypeAndName {
	if s.kind == StepExpression {
		return s.actions.RequiredColumns()
	}
	return s.required
}

// ResultColumns returns the columns this step exposes to the next one.
func (s *Step) ResultColumns() []col.ColumnWithTypeAndName {
	if s.kind == StepExpression {
		return s.actions.Outputs()
	}
	return s.result
}

// finalize narrows the step to the given output demand.
func (s *Step) finalize(requiredOutput []string) error {
	out := make(map[string]bool, len(requiredOutput))
	for _, name := range requiredOutput {
		out[name] = true
	}

	switch s.kind {
	case StepExpression:
		if s.actions.projected {
			return nil
		}
		return s.actions.RemoveUnusedActions(requiredOutput)

	case StepArrayJoin:
		sources := make(map[string]bool)
		aliases := make(map[string]bool)
		for _, c := range s.arrayJoin.Columns() {
			sources[c.Name] = true
			aliases[c.Alias] = true
		}
		s.result = filterColumns(s.result, func(name string) bool {
			return out[name]
		})
		s.required = filterColumns(s.required, func(name string) bool {
			return sources[name] || (out[name] && !aliases[name])
		})
		return nil

	case StepJoin:
		joinRequired := make(map[string]bool)
		for _, c := range s.tableJoin.RequiredColumns() {
			joinRequired[c.Name] = true
		}
		s.result = filterColumns(s.result, func(name string) bool {
			return out[name]
		})
		s.required = filterColumns(s.required, func(name string) bool {
			return joinRequired[name] || out[name]
		})
		return nil

	default:
		return col.ErrLogicalError.New("unknown chain step kind")
	}
}

func filterColumns(cols []col.ColumnWithTypeAndName, keep func(name string) bool) []col.ColumnWithTypeAndName {
	result := cols[:0:0]
	for _, c := range cols {
		if keep(c.Name) {
			result = append(result, c)
		}
	}
	return result
}

// ActionsChain stitches the expression stages of one query plan fragment
// together: expression, ARRAY JOIN, expression, JOIN, expression and so on.
// Finalize propagates column demands backward so every stage exposes
// exactly what later stages need.
type ActionsChain struct {
	settings col.Settings
	steps    []*Step
}

// NewActionsChain creates an empty chain; new expression steps inherit the
// given settings.
func NewActionsChain(settings col.Settings) *ActionsChain {
	return &ActionsChain{settings: settings}
}

// Steps returns the chain steps in order.
func (c *ActionsChain) Steps() []*Step { return c.steps }

// IsEmpty reports whether the chain has no steps.
func (c *ActionsChain) IsEmpty() bool { return len(c.steps) == 0 }

// Append pushes an externally constructed step.
func (c *ActionsChain) Append(s *Step) *Step {
	c.steps = append(c.steps, s)
	return s
}

// AddInitialStep pushes the first expression step, reading the given source
// columns.
func (c *ActionsChain) AddInitialStep(inputs []col.ColumnWithTypeAndName) (*Step, error) {
	dag, err := NewActionsDAG(inputs, c.settings)
	if err != nil {
		return nil, err
	}
	return c.Append(NewExpressionActionsStep(dag)), nil
}

// AddStep pushes a new expression step whose starting columns are the
// previous step's result columns. Constant results are carried over as
// constants unless listed in nonConstInputs, so later folding does not
// assume constancy for them.
func (c *ActionsChain) AddStep(nonConstInputs ...string) (*Step, error) {
	if len(c.steps) == 0 {
		return nil, col.ErrEmptyChain.New()
	}
	nonConst := make(map[string]bool, len(nonConstInputs))
	for _, name := range nonConstInputs {
		nonConst[name] = true
	}

	dag, err := NewActionsDAG(nil, c.settings)
	if err != nil {
		return nil, err
	}
	for _, column := range c.steps[len(c.steps)-1].ResultColumns() {
		if column.Column != nil && column.Column.IsConst() && !nonConst[column.Name] {
			if _, err := dag.AddColumn(column); err != nil {
				return nil, err
			}
			continue
		}
		if _, err := dag.AddInputColumn(column); err != nil {
			return nil, err
		}
	}
	return c.Append(NewExpressionActionsStep(dag)), nil
}

// LastStep returns the tail step.
func (c *ActionsChain) LastStep() (*Step, error) {
	if len(c.steps) == 0 {
		return nil, col.ErrEmptyChain.New()
	}
	return c.steps[len(c.steps)-1], nil
}

// LastActions returns the DAG of the tail step, which must be an expression
// step.
func (c *ActionsChain) LastActions() (*ActionsDAG, error) {
	s, err := c.LastStep()
	if err != nil {
		return nil, err
	}
	if s.kind != StepExpression {
		return nil, col.ErrLogicalError.New("last chain step is not an expression step")
	}
	return s.actions, nil
}

// Clear empties the chain.
func (c *ActionsChain) Clear() {
	c.steps = nil
}

// Finalize walks the steps back to front. The last step is narrowed to the
// query's final projection; each earlier step is narrowed to its own
// declared output demands plus whatever the next step requires. Declared
// outputs demanded downstream lose their removable mark.
func (c *ActionsChain) Finalize(finalProjection []string) error {
	if len(c.steps) == 0 {
		return col.ErrEmptyChain.New()
	}

	downstream := finalProjection
	for i := len(c.steps) - 1; i >= 0; i-- {
		s := c.steps[i]

		dset := make(map[string]bool, len(downstream))
		for _, name := range downstream {
			dset[name] = true
		}

		var out []string
		seen := make(map[string]bool)
		for j, name := range s.requiredOutput {
			if dset[name] {
				s.canRemove[j] = false
			}
			if !seen[name] {
				seen[name] = true
				out = append(out, name)
			}
		}
		for _, name := range downstream {
			if !seen[name] {
				seen[name] = true
				out = append(out, name)
			}
		}

		if err := s.finalize(out); err != nil {
			return err
		}

		downstream = nil
		for _, rc := range s.RequiredColumns() {
			downstream = append(downstream, rc.Name)
		}
	}
	return nil
}
