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
	"testing"

	"github.com/stretchr/testify/require"
)

const expectedTree = `FUNCTION plus(k2, r) -> total Int64
 ├─ FUNCTION multiply(k, 2) -> k2 Int64
 │   ├─ INPUT k Int32
 │   └─ COLUMN 2 Int64
 └─ FUNCTION plus(e, k) -> r Int64
     ├─ ARRAY JOIN arr -> e Int32
     └─ INPUT k Int32
`

func TestTreePrinter(t *testing.T) {
	p := NewTreePrinter()
	require.NoError(t, p.WriteNode("FUNCTION plus(%s, %s) -> total Int64", "k2", "r"))

	p2 := NewTreePrinter()
	require.NoError(t, p2.WriteNode("FUNCTION multiply(k, 2) -> k2 Int64"))
	require.NoError(t, p2.WriteChildren(
		"INPUT k Int32",
		"COLUMN 2 Int64",
	))

	p3 := NewTreePrinter()
	require.NoError(t, p3.WriteNode("FUNCTION plus(e, k) -> r Int64"))
	require.NoError(t, p3.WriteChildren(
		"ARRAY JOIN arr -> e Int32",
		"INPUT k Int32",
	))

	require.NoError(t, p.WriteChildren(
		p2.String(),
		p3.String(),
	))

	require.Equal(t, expectedTree, p.String())
}

func TestTreePrinterMisuse(t *testing.T) {
	require := require.New(t)

	p := NewTreePrinter()
	require.Error(p.WriteChildren("orphan"))

	require.NoError(p.WriteNode("root"))
	require.Error(p.WriteNode("root again"))

	require.NoError(p.WriteChildren("child"))
	require.Error(p.WriteChildren("child again"))
}
