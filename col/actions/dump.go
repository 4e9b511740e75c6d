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
)

// DumpNames returns the visible column names, comma separated.
func (d *ActionsDAG) DumpNames() string {
	return strings.Join(d.index.Names(), ", ")
}

// DumpDAG returns a flat description of every node with numeric ids, plus
// the Index. The format is stable enough for tests but is not a
// compatibility surface.
func (d *ActionsDAG) DumpDAG() string {
	id := make(map[*Node]int, len(d.nodes))
	var sb strings.Builder
	for i, n := range d.nodes {
		id[n] = i
		refs := make([]string, len(n.children))
		for j, c := range n.children {
			refs[j] = fmt.Sprintf("%d", id[c])
		}
		if len(refs) > 0 {
			fmt.Fprintf(&sb, "%d: %s [%s]\n", i, n, strings.Join(refs, ", "))
		} else {
			fmt.Fprintf(&sb, "%d: %s\n", i, n)
		}
	}
	fmt.Fprintf(&sb, "Index: %s\n", d.DumpNames())
	return sb.String()
}

// String renders the DAG as a tree rooted at its visible columns, the form
// EXPLAIN uses.
func (d *ActionsDAG) String() string {
	p := col.NewTreePrinter()
	_ = p.WriteNode("ActionsDAG")
	children := make([]string, 0, d.index.Len())
	for _, n := range d.index.Nodes() {
		children = append(children, dumpNodeTree(n))
	}
	_ = p.WriteChildren(children...)
	return p.String()
}

func dumpNodeTree(n *Node) string {
	p := col.NewTreePrinter()
	_ = p.WriteNode("%s", n)
	if len(n.children) > 0 {
		children := make([]string, len(n.children))
		for i, c := range n.children {
			children[i] = dumpNodeTree(c)
		}
		_ = p.WriteChildren(children...)
	}
	return p.String()
}

// String returns one line per input slot and per constant slot, then one line
// per linearized action: its kind, node name, argument slots and result slot,
// followed by the output columns.
func (ea *ExpressionActions) String() string {
	var sb strings.Builder
	for i, rc := range ea.required {
		if p := ea.inputPositions[i]; p >= 0 {
			fmt.Fprintf(&sb, "INPUT %s %s @%d\n", rc.Name, rc.Type, p)
		}
	}
	for _, cp := range ea.placements {
		fmt.Fprintf(&sb, "COLUMN %s %s @%d\n", cp.node.resultName, cp.node.resultType, cp.pos)
	}
	for _, a := range ea.actions {
		args := make([]string, len(a.args))
		for i, arg := range a.args {
			args[i] = fmt.Sprintf("%s @%d", a.node.children[i].resultName, arg.pos)
		}
		switch a.node.kind {
		case KindFunction:
			fmt.Fprintf(&sb, "FUNCTION %s(%s) -> %s @%d\n",
				a.node.base.Name(), strings.Join(args, ", "), a.node.resultName, a.resultPos)
		default:
			fmt.Fprintf(&sb, "%s %s -> %s @%d\n",
				a.node.kind, strings.Join(args, ", "), a.node.resultName, a.resultPos)
		}
	}
	results := make([]string, len(ea.results))
	for i, rc := range ea.results {
		results[i] = fmt.Sprintf("%s @%d", rc.name, rc.pos)
	}
	fmt.Fprintf(&sb, "output: %s\n", strings.Join(results, ", "))
	return sb.String()
}

// DumpChain concatenates per-step dumps of the chain.
func (c *ActionsChain) DumpChain() string {
	var sb strings.Builder
	for i, s := range c.steps {
		fmt.Fprintf(&sb, "step %d (%s)\n", i, s.kind)
		switch s.kind {
		case StepExpression:
			sb.WriteString(indent(s.actions.DumpDAG()))
		default:
			required := make([]string, len(s.required))
			for j, rc := range s.required {
				required[j] = rc.Name
			}
			result := make([]string, len(s.result))
			for j, rc := range s.result {
				result[j] = rc.Name
			}
			fmt.Fprintf(&sb, "  required: %s\n", strings.Join(required, ", "))
			fmt.Fprintf(&sb, "  result: %s\n", strings.Join(result, ", "))
		}
	}
	return sb.String()
}

func indent(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, line := range lines {
		lines[i] = "  " + line
	}
	return strings.Join(lines, "\n") + "\n"
}
