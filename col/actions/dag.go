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
	"strings"

	"github.com/birchdb/go-columnexec/col"
	"github.com/birchdb/go-columnexec/internal/similartext"
)

// NameWithAlias pairs a source column name with the name it should be
// exposed under.
type NameWithAlias struct {
	Name  string
	Alias string
}

// ActionsDAG is a directed acyclic graph of typed, named column-producing
// nodes: the intermediate representation for expression computations. It
// owns its nodes; node identity is by pointer, never by name.
//
// An ActionsDAG is built single-threaded. Once it is wrapped in an
// ExpressionActions no further mutation is permitted.
type ActionsDAG struct {
	nodes  []*Node // arena, in insertion order: children precede parents
	index  *Index
	inputs []*Node // INPUT nodes, in discovery order

	settings  col.Settings
	projected bool
	cache     *CompilationCache
}

// NewActionsDAG creates a DAG whose initial visible columns are the given
// inputs. Input column values, if any, are ignored: only names and types
// matter here.
func NewActionsDAG(inputs []col.ColumnWithTypeAndName, settings col.Settings) (*ActionsDAG, error) {
	d := &ActionsDAG{
		index:    newIndex(),
		settings: settings,
		cache:    SharedCompilationCache,
	}
	for _, c := range inputs {
		if _, err := d.AddInput(c.Name, c.Type); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// Settings returns the DAG settings.
func (d *ActionsDAG) Settings() col.Settings { return d.settings }

// SetCompilationCache replaces the compilation cache handle. By default DAGs
// share the process-wide cache.
func (d *ActionsDAG) SetCompilationCache(c *CompilationCache) { d.cache = c }

func (d *ActionsDAG) addNode(n *Node) *Node {
	d.nodes = append(d.nodes, n)
	return n
}

// lookup resolves a name against the current Index.
func (d *ActionsDAG) lookup(name string) (*Node, error) {
	if n, ok := d.index.get(name); ok {
		return n, nil
	}
	return nil, col.ErrUnknownIdentifier.New(name, similartext.Find(d.index.Names(), name))
}

// AddInput inserts an INPUT node: a column the caller must provide in every
// executed block. Input names must be unique.
func (d *ActionsDAG) AddInput(name string, t col.Type) (*Node, error) {
	for _, in := range d.inputs {
		if in.resultName == name {
			return nil, col.ErrDuplicateInput.New(name)
		}
	}
	n := d.addNode(&Node{
		kind:                 KindInput,
		resultName:           name,
		resultType:           t,
		allowConstantFolding: true,
	})
	d.inputs = append(d.inputs, n)
	d.index.push(n)
	return n, nil
}

// AddInputColumn is AddInput over a column descriptor.
func (d *ActionsDAG) AddInputColumn(c col.ColumnWithTypeAndName) (*Node, error) {
	return d.AddInput(c.Name, c.Type)
}

// AddColumn inserts a COLUMN node holding a materialized column value: a
// constant or a precomputed full column.
func (d *ActionsDAG) AddColumn(c col.ColumnWithTypeAndName) (*Node, error) {
	return d.addColumn(c, true)
}

func (d *ActionsDAG) addColumn(c col.ColumnWithTypeAndName, allowFolding bool) (*Node, error) {
	if c.Column == nil {
		return nil, col.ErrLogicalError.New(fmt.Sprintf("cannot add column %q without a value", c.Name))
	}
	n := d.addNode(&Node{
		kind:                 KindColumn,
		resultName:           c.Name,
		resultType:           c.Type,
		column:               c.Column,
		allowConstantFolding: allowFolding,
	})
	d.index.push(n)
	return n, nil
}

// AddAlias exposes the column named name under alias. When canReplace is set
// and alias already resolves, the Index entry is replaced in place;
// otherwise the alias is appended and shadows earlier entries with the same
// name.
func (d *ActionsDAG) AddAlias(name, alias string, canReplace bool) (*Node, error) {
	child, err := d.lookup(name)
	if err != nil {
		return nil, err
	}

	n := d.addNode(&Node{
		kind:                 KindAlias,
		resultName:           alias,
		resultType:           child.resultType,
		children:             []*Node{child},
		column:               child.column,
		allowConstantFolding: child.allowConstantFolding,
	})
	if canReplace && d.index.contains(alias) {
		d.index.replaceName(alias, n)
	} else {
		d.index.push(n)
	}
	return n, nil
}

// AddAliases bulk-renames columns without pruning anything else from the
// output.
func (d *ActionsDAG) AddAliases(aliases []NameWithAlias) error {
	for _, a := range aliases {
		if _, err := d.AddAlias(a.Name, a.Alias, true); err != nil {
			return err
		}
	}
	return nil
}

// Project bulk-renames the listed columns and replaces the Index so that
// only they, in the given order, remain visible. An empty Alias keeps the
// source name. After Project, unused-removal passes become no-ops.
func (d *ActionsDAG) Project(projection []NameWithAlias) error {
	result := newIndex()
	for _, p := range projection {
		child, err := d.lookup(p.Name)
		if err != nil {
			return err
		}
		if p.Alias == "" || p.Alias == p.Name {
			result.push(child)
			continue
		}
		n := d.addNode(&Node{
			kind:                 KindAlias,
			resultName:           p.Alias,
			resultType:           child.resultType,
			children:             []*Node{child},
			column:               child.column,
			allowConstantFolding: child.allowConstantFolding,
		})
		result.push(n)
	}
	d.index = result
	d.projected = true
	return nil
}

// AddArrayJoin inserts an ARRAY_JOIN node unfolding the array column named
// source into a column of its elements named resultName.
func (d *ActionsDAG) AddArrayJoin(source, resultName string) (*Node, error) {
	child, err := d.lookup(source)
	if err != nil {
		return nil, err
	}
	at, ok := child.resultType.(col.ArrayType)
	if !ok {
		return nil, col.ErrTypeMismatch.New(fmt.Sprintf("ARRAY JOIN requires an array column, %q is %s", source, child.resultType))
	}

	n := d.addNode(&Node{
		kind:                 KindArrayJoin,
		resultName:           resultName,
		resultType:           at.Elem(),
		children:             []*Node{child},
		allowConstantFolding: true,
	})
	d.index.push(n)
	return n, nil
}

// AddFunction resolves the named arguments against the Index, binds the
// function to their types and inserts a FUNCTION node. When every argument
// is a foldable constant and the function is deterministic, the function is
// evaluated on a single row at build time; when that yields a constant column,
// a COLUMN node holding it is inserted instead.
func (d *ActionsDAG) AddFunction(fn col.FunctionOverloadResolver, argNames []string, resultName string, ctx *col.Context) (*Node, error) {
	if ctx == nil {
		ctx = col.NewEmptyContext()
	}

	children := make([]*Node, len(argNames))
	argTypes := make([]col.Type, len(argNames))
	for i, name := range argNames {
		child, err := d.lookup(name)
		if err != nil {
			return nil, err
		}
		children[i] = child
		argTypes[i] = child.resultType
	}

	base, err := fn.Resolve(argTypes)
	if err != nil {
		return nil, err
	}

	if resultName == "" {
		resultName = fmt.Sprintf("%s(%s)", base.Name(), strings.Join(argNames, ", "))
	}

	if base.IsDeterministic() && foldableChildren(children) {
		column, err := evalConstant(ctx, base, children)
		if err != nil {
			return nil, err
		}
		if column.IsConst() {
			return d.addColumn(col.ColumnWithTypeAndName{
				Column: column,
				Type:   base.ResultType(),
				Name:   resultName,
			}, base.FoldConstants())
		}
	}

	n := d.addNode(&Node{
		kind:                 KindFunction,
		resultName:           resultName,
		resultType:           base.ResultType(),
		children:             children,
		resolver:             fn,
		base:                 base,
		allowConstantFolding: true,
	})
	d.index.push(n)
	return n, nil
}

// foldableChildren reports whether every child carries a true constant that
// permits folding. ALIAS nodes carry their child's constant and no-folding
// mark, so the check sees through renames.
func foldableChildren(children []*Node) bool {
	for _, c := range children {
		if c.column == nil || !c.column.IsConst() || !c.allowConstantFolding {
			return false
		}
	}
	return true
}

// evalConstant evaluates a bound function over the constant values of the
// given children on a one-row block.
func evalConstant(ctx *col.Context, base col.FunctionBase, children []*Node) (col.Column, error) {
	args := make([]col.Column, len(children))
	for i, c := range children {
		args[i] = col.ResizeConst(c.column, 1)
	}
	return base.Prepare().Execute(ctx, args, 1)
}

// RemoveColumn removes the last Index entry with the given name. The node
// stays in the graph and may still be reached transitively.
func (d *ActionsDAG) RemoveColumn(name string) bool {
	return d.index.remove(name)
}

// TryRestoreColumn re-exposes a column that is still in the graph but not
// currently visible. It reports whether the column was found.
func (d *ActionsDAG) TryRestoreColumn(name string) bool {
	if d.index.contains(name) {
		return true
	}
	for i := len(d.nodes) - 1; i >= 0; i-- {
		if d.nodes[i].resultName == name {
			d.index.push(d.nodes[i])
			return true
		}
	}
	return false
}

// HasArrayJoin reports whether the DAG contains any ARRAY_JOIN node.
func (d *ActionsDAG) HasArrayJoin() bool {
	for _, n := range d.nodes {
		if n.kind == KindArrayJoin {
			return true
		}
	}
	return false
}

// IsEmpty reports whether the DAG computes nothing: only INPUT nodes exist.
func (d *ActionsDAG) IsEmpty() bool {
	for _, n := range d.nodes {
		if n.kind != KindInput {
			return false
		}
	}
	return true
}

// RequiredColumns returns the columns the DAG reads from the incoming
// block: its INPUT nodes, in discovery order.
func (d *ActionsDAG) RequiredColumns() []col.ColumnWithTypeAndName {
	result := make([]col.ColumnWithTypeAndName, len(d.inputs))
	for i, n := range d.inputs {
		result[i] = col.ColumnWithTypeAndName{Type: n.resultType, Name: n.resultName}
	}
	return result
}

// Outputs returns the visible columns of the DAG in Index order. COLUMN
// nodes carry their value, so constants survive stage boundaries.
func (d *ActionsDAG) Outputs() []col.ColumnWithTypeAndName {
	result := make([]col.ColumnWithTypeAndName, 0, d.index.Len())
	for _, n := range d.index.Nodes() {
		result = append(result, col.ColumnWithTypeAndName{
			Column: n.column,
			Type:   n.resultType,
			Name:   n.resultName,
		})
	}
	return result
}

// Index returns the DAG output index.
func (d *ActionsDAG) Index() *Index { return d.index }

// NumNodes returns the number of nodes in the graph.
func (d *ActionsDAG) NumNodes() int { return len(d.nodes) }

// FindNode returns the last node with the given name in the Index.
func (d *ActionsDAG) FindNode(name string) (*Node, bool) {
	return d.index.get(name)
}

// Clone deep-copies the DAG. Nodes are freshly allocated; internal edges are
// remapped; the compilation cache handle is shared.
func (d *ActionsDAG) Clone() *ActionsDAG {
	mapping := make(map[*Node]*Node, len(d.nodes))
	clone := &ActionsDAG{
		nodes:     make([]*Node, 0, len(d.nodes)),
		index:     newIndex(),
		settings:  d.settings,
		projected: d.projected,
		cache:     d.cache,
	}

	for _, n := range d.nodes {
		c := &Node{
			kind:                 n.kind,
			resultName:           n.resultName,
			resultType:           n.resultType,
			resolver:             n.resolver,
			base:                 n.base,
			executable:           n.executable,
			isCompiled:           n.isCompiled,
			column:               n.column,
			allowConstantFolding: n.allowConstantFolding,
		}
		for _, child := range n.children {
			c.children = append(c.children, mapping[child])
		}
		mapping[n] = c
		clone.nodes = append(clone.nodes, c)
	}

	for _, n := range d.inputs {
		clone.inputs = append(clone.inputs, mapping[n])
	}
	for _, n := range d.index.Nodes() {
		clone.index.push(mapping[n])
	}
	return clone
}
