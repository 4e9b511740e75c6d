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

// Package col defines the columnar runtime surface of the expression
// engine: data types, columns, blocks, execution contexts, scalar function
// interfaces, settings and the error kinds shared by every layer above.
//
// Columns are immutable after construction and shared by reference; a Block
// is a batch of named, typed columns with one common row count. Scalar
// functions reach the engine only through FunctionOverloadResolver, so the
// catalog behind them is replaceable.
package col
