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
	"gopkg.in/src-d/go-errors.v1"
)

var (
	// ErrUnknownIdentifier is returned when a column name cannot be resolved
	// against the visible columns of a DAG or block.
	ErrUnknownIdentifier = errors.NewKind("unknown identifier %q%s")

	// ErrTypeMismatch is returned when function resolution fails on the given
	// argument types, when an ARRAY JOIN source is not an array, or when a
	// block column does not match the expected type at execution time.
	ErrTypeMismatch = errors.NewKind("type mismatch: %s")

	// ErrDuplicateInput is returned when two input columns with the same name
	// are added to the same DAG.
	ErrDuplicateInput = errors.NewKind("duplicate input column %q")

	// ErrFunctionNotFound is returned when a function name is not present in
	// the registry.
	ErrFunctionNotFound = errors.NewKind("function not found: %s%s")

	// ErrEmptyChain is returned by accessors of an empty actions chain.
	ErrEmptyChain = errors.NewKind("empty chain of actions")

	// ErrTooManyTemporaryColumns is returned when the number of live columns
	// during execution exceeds the configured limit.
	ErrTooManyTemporaryColumns = errors.NewKind("too many temporary columns: %d, maximum: %d")

	// ErrTooManyTemporaryNonConstColumns is returned when the number of live
	// non-constant columns during execution exceeds the configured limit.
	ErrTooManyTemporaryNonConstColumns = errors.NewKind("too many temporary non-constant columns: %d, maximum: %d")

	// ErrArrayJoinTypeMismatch is returned when an ARRAY JOIN is executed over
	// a column that is not array-typed.
	ErrArrayJoinTypeMismatch = errors.NewKind("ARRAY JOIN requires an array argument, got %s")

	// ErrLogicalError is returned when an internal invariant does not hold.
	// Seeing it means there is a bug in this package, not in the caller.
	ErrLogicalError = errors.NewKind("logical error: %s")
)
