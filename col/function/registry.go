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

package function

import (
	"github.com/birchdb/go-columnexec/col"
)

// Defaults is the set of builtin functions.
var Defaults = []col.FunctionOverloadResolver{
	NewPlus(),
	NewMinus(),
	NewMultiply(),
	NewDivide(),
	NewNegate(),
	NewEquals(),
	NewLess(),
	NewGreater(),
	NewAnd(),
	NewOr(),
	NewNot(),
	NewLength(),
	NewConcat(),
	NewUpper(),
	NewLower(),
	NewIgnore(),
	NewMaterialize(),
	NewRand(),
}

// NewRegistry returns a function registry loaded with the builtin functions.
func NewRegistry() *col.FunctionRegistry {
	r := col.NewFunctionRegistry()
	r.Register(Defaults...)
	return r
}
