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

// Index is the ordered output interface of a DAG: the visible columns and
// their order. The sequence may contain duplicate names; by-name lookup
// resolves to the most recently inserted occurrence.
type Index struct {
	nodes  []*Node
	byName map[string]int
}

func newIndex() *Index {
	return &Index{byName: make(map[string]int)}
}

func (i *Index) push(n *Node) {
	i.nodes = append(i.nodes, n)
	i.byName[n.resultName] = len(i.nodes) - 1
}

// replaceName replaces the last entry with the given name, keeping its
// position. It reports whether an entry was replaced.
func (i *Index) replaceName(name string, n *Node) bool {
	pos, ok := i.byName[name]
	if !ok {
		return false
	}
	i.nodes[pos] = n
	delete(i.byName, name)
	i.byName[n.resultName] = pos
	return true
}

// get returns the last node with the given name.
func (i *Index) get(name string) (*Node, bool) {
	pos, ok := i.byName[name]
	if !ok {
		return nil, false
	}
	return i.nodes[pos], true
}

func (i *Index) contains(name string) bool {
	_, ok := i.byName[name]
	return ok
}

// remove deletes the last entry with the given name from both the sequence
// and the map. An earlier entry with the same name, if any, becomes the one
// resolvable by name again.
func (i *Index) remove(name string) bool {
	pos, ok := i.byName[name]
	if !ok {
		return false
	}
	i.nodes = append(i.nodes[:pos], i.nodes[pos+1:]...)
	i.rebuild()
	return true
}

func (i *Index) rebuild() {
	i.byName = make(map[string]int, len(i.nodes))
	for pos, n := range i.nodes {
		i.byName[n.resultName] = pos
	}
}

// Nodes returns the index entries in order.
func (i *Index) Nodes() []*Node { return i.nodes }

// Names returns the entry names in order, duplicates included.
func (i *Index) Names() []string {
	names := make([]string, len(i.nodes))
	for pos, n := range i.nodes {
		names[pos] = n.resultName
	}
	return names
}

// Len returns the number of entries.
func (i *Index) Len() int { return len(i.nodes) }
