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
	"github.com/sirupsen/logrus"

	"github.com/birchdb/go-columnexec/col"
	"github.com/birchdb/go-columnexec/internal/similartext"
)

// RemoveUnusedActions restricts the Index to the given names and deletes
// every node not reachable from them. A nil required list keeps the whole
// current Index and only drops unreachable nodes. The pass is idempotent and
// a no-op once Project has fixed the output.
func (d *ActionsDAG) RemoveUnusedActions(required []string) error {
	if d.projected {
		return nil
	}

	var keep func(name string) bool
	if required == nil {
		keep = func(string) bool { return true }
	} else {
		set := make(map[string]bool, len(required))
		for _, name := range required {
			if !d.index.contains(name) {
				return col.ErrUnknownIdentifier.New(name, similartext.Find(d.index.Names(), name))
			}
			set[name] = true
		}
		keep = func(name string) bool { return set[name] }
	}

	marked := make(map[*Node]bool)
	var mark func(n *Node)
	mark = func(n *Node) {
		if marked[n] {
			return
		}
		marked[n] = true
		for _, c := range n.children {
			mark(c)
		}
	}

	result := newIndex()
	for _, n := range d.index.Nodes() {
		if keep(n.resultName) {
			result.push(n)
			mark(n)
		}
	}

	removed := len(d.nodes) - len(marked)
	if removed == 0 {
		d.index = result
		return nil
	}

	nodes := make([]*Node, 0, len(marked))
	for _, n := range d.nodes {
		if marked[n] {
			nodes = append(nodes, n)
		}
	}
	inputs := make([]*Node, 0, len(d.inputs))
	for _, n := range d.inputs {
		if marked[n] {
			inputs = append(inputs, n)
		}
	}

	d.nodes = nodes
	d.inputs = inputs
	d.index = result

	logrus.WithField("removed", removed).Debug("removed unused expression actions")
	return nil
}
