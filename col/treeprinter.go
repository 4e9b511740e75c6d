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

package col

import (
	"fmt"
	"strings"
)

// TreePrinter prints one node of a tree-shaped textual dump, such as the
// ones produced for EXPLAIN. Nodes are written first, then their already
// rendered children.
type TreePrinter struct {
	buf          strings.Builder
	nodeWritten  bool
	childWritten bool
}

// NewTreePrinter creates a new tree printer.
func NewTreePrinter() *TreePrinter {
	return &TreePrinter{}
}

// WriteNode writes the top line of the tree. It must be called exactly once,
// before any children are written.
func (p *TreePrinter) WriteNode(format string, args ...interface{}) error {
	if p.nodeWritten {
		return ErrLogicalError.New("tree printer node written twice")
	}
	fmt.Fprintf(&p.buf, format, args...)
	p.buf.WriteRune('\n')
	p.nodeWritten = true
	return nil
}

// WriteChildren writes the rendered children of the node, indented under it.
// Children may themselves be multi-line trees.
func (p *TreePrinter) WriteChildren(children ...string) error {
	if !p.nodeWritten {
		return ErrLogicalError.New("tree printer children written before node")
	}
	if p.childWritten {
		return ErrLogicalError.New("tree printer children written twice")
	}
	p.childWritten = true

	for i, child := range children {
		last := i == len(children)-1
		lines := strings.Split(strings.TrimRight(child, "\n"), "\n")
		for j, line := range lines {
			switch {
			case j == 0 && !last:
				p.buf.WriteString(" ├─ ")
			case j == 0 && last:
				p.buf.WriteString(" └─ ")
			case !last:
				p.buf.WriteString(" │  ")
			default:
				p.buf.WriteString("    ")
			}
			p.buf.WriteString(line)
			p.buf.WriteRune('\n')
		}
	}
	return nil
}

// String returns the rendered tree.
func (p *TreePrinter) String() string {
	return p.buf.String()
}
