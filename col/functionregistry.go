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
	"github.com/birchdb/go-columnexec/internal/similartext"
)

// FunctionRegistry maps function names to their overload resolvers.
type FunctionRegistry struct {
	fns map[string]FunctionOverloadResolver
}

// NewFunctionRegistry creates a new empty FunctionRegistry.
func NewFunctionRegistry() *FunctionRegistry {
	return &FunctionRegistry{fns: make(map[string]FunctionOverloadResolver)}
}

// Register adds resolvers to the registry, replacing any previous resolver
// registered under the same name.
func (r *FunctionRegistry) Register(fns ...FunctionOverloadResolver) {
	for _, fn := range fns {
		r.fns[fn.Name()] = fn
	}
}

// Function returns the resolver with the given name, or ErrFunctionNotFound.
func (r *FunctionRegistry) Function(name string) (FunctionOverloadResolver, error) {
	if len(r.fns) == 0 {
		return nil, ErrFunctionNotFound.New(name, "")
	}

	if fn, ok := r.fns[name]; ok {
		return fn, nil
	}
	similar := similartext.FindFromMap(r.fns, name)
	return nil, ErrFunctionNotFound.New(name, similar)
}

// MustFunction is like Function but panics on lookup failure. It is meant for
// wiring up plans over a registry known to contain the function.
func (r *FunctionRegistry) MustFunction(name string) FunctionOverloadResolver {
	fn, err := r.Function(name)
	if err != nil {
		panic(err)
	}
	return fn
}
