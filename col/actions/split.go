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

// SplitActionsBeforeArrayJoin moves every computation that does not depend
// on the array-joined columns out of this DAG and into a new one, which is
// returned. Executing the returned DAG, then the ARRAY JOIN, then this DAG
// is equivalent to executing the original DAG.
//
// ARRAY_JOIN nodes over the given columns are satisfied externally: they
// become inputs of this DAG, fed by the unfolded element columns the ARRAY
// JOIN step produces. Non-deterministic functions never commute with row
// replication and always stay on the post-join side.
//
// It returns nil when nothing can be pulled out.
func (d *ActionsDAG) SplitActionsBeforeArrayJoin(arrayJoined []string) (*ActionsDAG, error) {
	set := make(map[string]bool, len(arrayJoined))
	for _, name := range arrayJoined {
		set[name] = true
	}

	// A node stays on the post-join side when it is seeded by the
	// array-joined set or consumes anything that is.
	post := make(map[*Node]bool, len(d.nodes))
	movable := false
	for _, n := range d.nodes {
		stays := set[n.resultName]
		switch n.kind {
		case KindArrayJoin:
			stays = true
		case KindFunction:
			if n.base != nil && !n.base.IsDeterministic() {
				stays = true
			}
		}
		for _, c := range n.children {
			if post[c] {
				stays = true
			}
		}
		post[n] = stays
		if !stays && (n.kind == KindFunction || n.kind == KindAlias) {
			movable = true
		}
	}
	if !movable {
		return nil, nil
	}

	// Rebuild this DAG out of the post-side nodes. Moved computations and
	// externally satisfied ARRAY_JOIN results turn into inputs.
	var (
		selfNodes  []*Node
		selfInputs []*Node
		selfIndex  = newIndex()
		selfMap    = make(map[*Node]*Node)
		inputs     = make(map[string]*Node)
		needPre    = make(map[*Node]bool)
	)
	input := func(name string, t col.Type) *Node {
		if n, ok := inputs[name]; ok {
			return n
		}
		n := &Node{
			kind:                 KindInput,
			resultName:           name,
			resultType:           t,
			allowConstantFolding: true,
		}
		inputs[name] = n
		selfNodes = append(selfNodes, n)
		selfInputs = append(selfInputs, n)
		return n
	}
	bridge := func(c *Node) *Node {
		if post[c] {
			return selfMap[c]
		}
		if c.kind != KindInput {
			needPre[c] = true
		}
		return input(c.resultName, c.resultType)
	}

	for _, n := range d.nodes {
		if !post[n] {
			continue
		}
		switch n.kind {
		case KindInput:
			selfMap[n] = input(n.resultName, n.resultType)
		case KindArrayJoin:
			if set[n.children[0].resultName] {
				selfMap[n] = input(n.resultName, n.resultType)
				continue
			}
			c := &Node{
				kind:                 KindArrayJoin,
				resultName:           n.resultName,
				resultType:           n.resultType,
				children:             []*Node{bridge(n.children[0])},
				allowConstantFolding: n.allowConstantFolding,
			}
			selfMap[n] = c
			selfNodes = append(selfNodes, c)
		default:
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
				c.children = append(c.children, bridge(child))
			}
			selfMap[n] = c
			selfNodes = append(selfNodes, c)
		}
	}

	for _, n := range d.index.Nodes() {
		if post[n] {
			selfIndex.push(selfMap[n])
			continue
		}
		if n.kind != KindInput {
			needPre[n] = true
		}
		selfIndex.push(input(n.resultName, n.resultType))
	}

	// Assemble the pre-join DAG from the moved nodes. All original inputs
	// flow through it so the ARRAY JOIN and the post side see them.
	pre := &ActionsDAG{
		index:    newIndex(),
		settings: d.settings,
		cache:    d.cache,
	}
	preMap := make(map[*Node]*Node)
	for _, n := range d.nodes {
		if post[n] && n.kind != KindInput {
			continue
		}
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
			c.children = append(c.children, preMap[child])
		}
		preMap[n] = c
		pre.nodes = append(pre.nodes, c)
		if n.kind == KindInput {
			pre.inputs = append(pre.inputs, c)
			pre.index.push(c)
		}
	}
	for _, n := range d.nodes {
		if needPre[n] {
			pre.index.push(preMap[n])
		}
	}

	d.nodes = selfNodes
	d.inputs = selfInputs
	d.index = selfIndex
	return pre, nil
}
