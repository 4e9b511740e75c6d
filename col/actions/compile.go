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
	"sync"
	"sync/atomic"

	"github.com/mitchellh/hashstructure"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/birchdb/go-columnexec/col"
)

// Compiler produces a single executable for a connected subgraph of
// function nodes. root is the subgraph root with its original children; args
// are the frontier nodes whose columns become the arguments of the fused
// executable, in order.
type Compiler interface {
	Compile(root *Node, args []*Node) (col.ExecutableFunction, error)
}

// CompilationCache is a process-wide store of fused executables, keyed by
// subgraph signature. Lookups are frequent and insertions rare, so access
// follows a readers-writer discipline. Cached executables are shared across
// DAGs and outlive the DAG they were compiled for.
type CompilationCache struct {
	mu      sync.RWMutex
	entries map[uint64]*cacheEntry

	hits   uint64
	misses uint64
}

type cacheEntry struct {
	exec col.ExecutableFunction
	refs int64
}

// NewCompilationCache creates an empty compilation cache.
func NewCompilationCache() *CompilationCache {
	return &CompilationCache{entries: make(map[uint64]*cacheEntry)}
}

// SharedCompilationCache is the cache used by every DAG that does not set
// its own.
var SharedCompilationCache = NewCompilationCache()

func (c *CompilationCache) lookup(key uint64) (col.ExecutableFunction, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		atomic.AddUint64(&c.misses, 1)
		return nil, false
	}
	atomic.AddInt64(&entry.refs, 1)
	atomic.AddUint64(&c.hits, 1)
	return entry.exec, true
}

func (c *CompilationCache) insert(key uint64, exec col.ExecutableFunction) col.ExecutableFunction {
	c.mu.Lock()
	defer c.mu.Unlock()
	if entry, ok := c.entries[key]; ok {
		atomic.AddInt64(&entry.refs, 1)
		return entry.exec
	}
	c.entries[key] = &cacheEntry{exec: exec, refs: 1}
	return exec
}

// Stats returns the number of cache hits, misses and stored entries.
func (c *CompilationCache) Stats() (hits, misses uint64, entries int) {
	c.mu.RLock()
	entries = len(c.entries)
	c.mu.RUnlock()
	return atomic.LoadUint64(&c.hits), atomic.LoadUint64(&c.misses), entries
}

// subgraphSignature identifies a fused subgraph shape for caching: function
// names in evaluation order, frontier argument types and the edges between
// them. Frontier args are numbered first, interior nodes after.
type subgraphSignature struct {
	Functions []string
	ArgTypes  []string
	Edges     [][]int
}

// CompileExpressions fuses maximal connected subgraphs of compilable
// function nodes of at least MinCountToCompileExpression nodes each,
// replacing every subgraph with a single supernode whose executable is
// produced by the compiler. Candidate subgraphs are compiled concurrently.
// It is a no-op when compilation is disabled or no compiler is given.
func (d *ActionsDAG) CompileExpressions(compiler Compiler) error {
	if !d.settings.CompileExpressions || compiler == nil {
		return nil
	}
	min := d.settings.MinCountToCompileExpression
	if min < 1 {
		min = 1
	}

	reachable := d.reachableFromIndex()
	inIndex := make(map[*Node]bool)
	for _, n := range d.index.Nodes() {
		inIndex[n] = true
	}
	consumers := make(map[*Node]int)
	for _, n := range reachable {
		for _, c := range n.children {
			consumers[c]++
		}
	}

	compilable := func(n *Node) bool {
		return n.kind == KindFunction && !n.isCompiled &&
			n.base != nil && n.base.IsCompilable() && n.base.IsDeterministic()
	}

	// A fused subgraph is rooted at a compilable node whose result escapes
	// the compilable region: it is visible in the Index, consumed by a
	// non-compilable node, or shared by several consumers.
	escapes := make(map[*Node]bool)
	for _, p := range reachable {
		if compilable(p) {
			continue
		}
		for _, c := range p.children {
			escapes[c] = true
		}
	}

	type candidate struct {
		root *Node
		args []*Node
		size int
		exec col.ExecutableFunction
	}
	var candidates []*candidate

	for _, n := range reachable {
		if !compilable(n) {
			continue
		}
		if !inIndex[n] && !escapes[n] && consumers[n] <= 1 {
			continue
		}

		cand := &candidate{root: n}
		seen := map[*Node]bool{n: true}
		argSeen := map[*Node]bool{}
		size := 1
		var grow func(n *Node)
		grow = func(n *Node) {
			for _, c := range n.children {
				if compilable(c) && consumers[c] == 1 && !inIndex[c] && !seen[c] {
					seen[c] = true
					size++
					grow(c)
					continue
				}
				if !seen[c] && !argSeen[c] {
					argSeen[c] = true
					cand.args = append(cand.args, c)
				}
			}
		}
		grow(n)
		cand.size = size
		if cand.size >= min {
			candidates = append(candidates, cand)
		}
	}

	if len(candidates) == 0 {
		return nil
	}

	var eg errgroup.Group
	for _, cand := range candidates {
		cand := cand
		eg.Go(func() error {
			key, err := hashstructure.Hash(signatureOf(cand.root, cand.args), nil)
			if err != nil {
				return err
			}
			if exec, ok := d.cache.lookup(key); ok {
				cand.exec = exec
				logrus.WithFields(logrus.Fields{
					"functions": cand.size,
					"cache":     "hit",
				}).Debug("fused compiled expression")
				return nil
			}
			exec, err := compiler.Compile(cand.root, cand.args)
			if err != nil {
				return err
			}
			cand.exec = d.cache.insert(key, exec)
			logrus.WithFields(logrus.Fields{
				"functions": cand.size,
				"cache":     "miss",
			}).Debug("fused compiled expression")
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	for _, cand := range candidates {
		cand.root.children = cand.args
		cand.root.executable = cand.exec
		cand.root.isCompiled = true
	}
	return nil
}

// reachableFromIndex returns the nodes reachable from the Index, children
// before parents.
func (d *ActionsDAG) reachableFromIndex() []*Node {
	var order []*Node
	seen := make(map[*Node]bool)
	var visit func(n *Node)
	visit = func(n *Node) {
		if seen[n] {
			return
		}
		seen[n] = true
		for _, c := range n.children {
			visit(c)
		}
		order = append(order, n)
	}
	for _, n := range d.index.Nodes() {
		visit(n)
	}
	return order
}

// signatureOf builds the cache signature of a subgraph: args numbered
// first, interior function nodes after, in evaluation order.
func signatureOf(root *Node, args []*Node) subgraphSignature {
	id := make(map[*Node]int, len(args))
	sig := subgraphSignature{}
	for i, a := range args {
		id[a] = i
		sig.ArgTypes = append(sig.ArgTypes, a.resultType.String())
	}
	next := len(args)
	var visit func(n *Node)
	visit = func(n *Node) {
		if _, ok := id[n]; ok {
			return
		}
		edges := make([]int, 0, len(n.children))
		for _, c := range n.children {
			visit(c)
			edges = append(edges, id[c])
		}
		id[n] = next
		next++
		sig.Functions = append(sig.Functions, n.base.Name())
		sig.Edges = append(sig.Edges, edges)
	}
	visit(root)
	return sig
}

// InterpretedCompiler is the builtin Compiler: it fuses a subgraph into one
// executable that evaluates the sub-DAG in topological order. Results are
// identical with compilation on or off.
type InterpretedCompiler struct{}

func (InterpretedCompiler) Compile(root *Node, args []*Node) (col.ExecutableFunction, error) {
	argPos := make(map[*Node]int, len(args))
	for i, a := range args {
		argPos[a] = i
	}

	var steps []fusedStep
	pos := make(map[*Node]int)
	var visit func(n *Node) error
	visit = func(n *Node) error {
		if _, ok := pos[n]; ok {
			return nil
		}
		if _, ok := argPos[n]; ok {
			return nil
		}
		if n.kind != KindFunction || n.base == nil {
			return col.ErrLogicalError.New("fused subgraph contains a non-function node")
		}
		for _, c := range n.children {
			if err := visit(c); err != nil {
				return err
			}
		}
		step := fusedStep{exec: n.base.Prepare()}
		for _, c := range n.children {
			if p, ok := argPos[c]; ok {
				step.args = append(step.args, fusedArg{arg: true, pos: p})
			} else {
				step.args = append(step.args, fusedArg{pos: pos[c]})
			}
		}
		pos[n] = len(steps)
		steps = append(steps, step)
		return nil
	}
	if err := visit(root); err != nil {
		return nil, err
	}

	return &fusedExecutable{steps: steps}, nil
}

type fusedArg struct {
	arg bool // argument column vs intermediate result
	pos int
}

type fusedStep struct {
	exec col.ExecutableFunction
	args []fusedArg
}

// fusedExecutable evaluates the fused steps in order. It holds no mutable
// state, so one instance is safely shared across threads and DAGs through
// the compilation cache.
type fusedExecutable struct {
	steps []fusedStep
}

func (f *fusedExecutable) Execute(ctx *col.Context, args []col.Column, numRows int) (col.Column, error) {
	results := make([]col.Column, len(f.steps))
	for i, step := range f.steps {
		cols := make([]col.Column, len(step.args))
		for j, a := range step.args {
			if a.arg {
				cols[j] = args[a.pos]
			} else {
				cols[j] = results[a.pos]
			}
		}
		c, err := step.exec.Execute(ctx, cols, numRows)
		if err != nil {
			return nil, err
		}
		results[i] = c
	}
	return results[len(results)-1], nil
}
