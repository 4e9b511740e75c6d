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

// Monotonicity describes how a function output orders relative to its input.
type Monotonicity int8

const (
	// NotMonotonic means no order relationship is known.
	NotMonotonic Monotonicity = iota
	// Increasing means the output does not decrease when the input grows.
	Increasing
	// Decreasing means the output does not increase when the input grows.
	Decreasing
)

// FunctionOverloadResolver resolves a function name to a concrete overload
// for a set of argument types. It is the only way the expression core learns
// about scalar functions; the catalog behind it is external.
type FunctionOverloadResolver interface {
	// Name returns the function name.
	Name() string
	// Resolve binds the function to the given argument types. It returns
	// ErrTypeMismatch when no overload accepts them.
	Resolve(args []Type) (FunctionBase, error)
}

// FunctionBase is a function bound to concrete argument types.
type FunctionBase interface {
	// Name returns the function name.
	Name() string
	// ResultType returns the type produced on the bound argument types.
	ResultType() Type
	// IsDeterministic reports whether the function always produces the same
	// output for the same input. Non-deterministic functions are never
	// constant-folded or compiled.
	IsDeterministic() bool
	// FoldConstants reports whether a constant result of this function may
	// replace it in consumers. Functions like ignore() return false: their
	// value is constant but must not propagate.
	FoldConstants() bool
	// IsCompilable reports whether the function may be fused into a compiled
	// supernode.
	IsCompilable() bool
	// Monotonicity returns the order relationship between the first argument
	// and the result.
	Monotonicity() Monotonicity
	// Prepare returns the executable form of the function.
	Prepare() ExecutableFunction
}

// ExecutableFunction evaluates a bound function over argument columns.
type ExecutableFunction interface {
	// Execute evaluates the function on numRows rows of the given argument
	// columns and returns the result column.
	Execute(ctx *Context, args []Column, numRows int) (Column, error)
}
