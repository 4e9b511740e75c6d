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

func TestSettingsFromYAML(t *testing.T) {
	require := require.New(t)

	settings, err := SettingsFromYAML([]byte(`
max_temporary_columns: 128
max_temporary_non_const_columns: 64
compile_expressions: true
project_input: true
`))
	require.NoError(err)
	require.Equal(128, settings.MaxTemporaryColumns)
	require.Equal(64, settings.MaxTemporaryNonConstColumns)
	require.True(settings.CompileExpressions)
	require.True(settings.ProjectInput)
	// missing keys keep defaults
	require.Equal(2, settings.MinCountToCompileExpression)
}

func TestSettingsFromYAMLInvalid(t *testing.T) {
	_, err := SettingsFromYAML([]byte(`max_temporary_columns: [nope]`))
	require.Error(t, err)
}
