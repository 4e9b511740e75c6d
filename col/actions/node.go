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

// Package actions implements the expression evaluation core: the ActionsDAG
// intermediate representation, the ExpressionActions execution plan derived
// from it, and the ActionsChain that composes multiple stages of a query.
package actions

import (
	"fmt"
	"strings"

	"github.com/birchdb/go-columnexec/col"
)

// NodeKind is the kind of computation a DAG node performs.
type NodeKind int8

const (
	// KindInput is a column read from the incoming block.
	KindInput NodeKind = iota
	// KindColumn is a materialized column value: a literal, a folded
	// constant or a precomputed column.
	KindColumn
	// KindAlias renames the column produced by its only child.
	KindAlias
	// KindArrayJoin unfolds an array column into its elements. It is the
	// only kind that changes the row count of the block.
	KindArrayJoin
	// KindFunction applies a scalar function to the columns produced by its
	// children.
	KindFunction
)

func (k NodeKind) String() string {
	switch k {
	case KindInput:
		return "INPUT"
	case KindColumn:
		return "COLUMN"
	case KindAlias:
		return "ALIAS"
	case KindArrayJoin:
		return "ARRAY JOIN"
	case KindFunction:
		return "FUNCTION"
	default:
		return fmt.Sprintf("NodeKind(%d)", int8(k))
	}
}

// Node is one vertex of an ActionsDAG: the computation of exactly one named,
// typed column. Nodes are identified by pointer; result names are
// human-readable and not necessarily unique within a DAG.
type Node struct {
	kind       NodeKind
	resultName string
	resultType col.Type
	children   []*Node

	// function state, set by AddFunction and finalization
	resolver   col.FunctionOverloadResolver
	base       col.FunctionBase
	executable col.ExecutableFunction
	isCompiled bool

	// column value for COLUMN nodes and folded constants
	column col.Column

	// allowConstantFolding, when false, forbids consumers from folding the
	// constant value of this node into themselves (e.g. the result of
	// ignore()). It is a property of the produced column, not of a function,
	// and survives aliasing.
	allowConstantFolding bool
}

// Kind returns the node kind.
func (n *Node) Kind() NodeKind { return n.kind }

// Name returns the name of the produced column.
func (n *Node) Name() string { return n.resultName }

// Type returns the type of the produced column.
func (n *Node) Type() col.Type { return n.resultType }

// Children returns the dependency nodes, in argument order.
func (n *Node) Children() []*Node { return n.children }

// Column returns the materialized column of a COLUMN node, or nil.
func (n *Node) Column() col.Column { return n.column }

// Function returns the bound function of a FUNCTION node, or nil.
func (n *Node) Function() col.FunctionBase { return n.base }

// IsCompiled reports whether the node is a fused compiled supernode.
func (n *Node) IsCompiled() bool { return n.isCompiled }

func (n *Node) String() string {
	switch n.kind {
	case KindInput:
		return fmt.Sprintf("INPUT %s %s", n.resultName, n.resultType)
	case KindColumn:
		suffix := ""
		if !n.allowConstantFolding {
			suffix = " (no folding)"
		}
		if n.column != nil && n.column.IsConst() {
			return fmt.Sprintf("COLUMN %s %s = %v%s", n.resultName, n.resultType, n.column.Get(0), suffix)
		}
		return fmt.Sprintf("COLUMN %s %s%s", n.resultName, n.resultType, suffix)
	case KindAlias:
		return fmt.Sprintf("ALIAS %s -> %s", n.children[0].resultName, n.resultName)
	case KindArrayJoin:
		return fmt.Sprintf("ARRAY JOIN %s -> %s %s", n.children[0].resultName, n.resultName, n.resultType)
	case KindFunction:
		names := make([]string, len(n.children))
		for i, c := range n.children {
			names[i] = c.resultName
		}
		suffix := ""
		if n.isCompiled {
			suffix = " [compiled]"
		}
		fname := n.resultName
		if n.base != nil {
			fname = n.base.Name()
		}
		return fmt.Sprintf("FUNCTION %s(%s) -> %s %s%s", fname, strings.Join(names, ", "), n.resultName, n.resultType, suffix)
	default:
		return n.kind.String()
	}
}
