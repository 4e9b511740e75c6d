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
	yaml "gopkg.in/yaml.v2"
)

// Settings controls planning and execution of expression actions. The zero
// value disables all limits and compilation.
type Settings struct {
	// MaxTemporaryColumns bounds the number of live columns during one
	// execution. Zero means unlimited.
	MaxTemporaryColumns int `yaml:"max_temporary_columns"`
	// MaxTemporaryNonConstColumns bounds the number of live non-constant
	// columns during one execution. Zero means unlimited.
	MaxTemporaryNonConstColumns int `yaml:"max_temporary_non_const_columns"`
	// MinCountToCompileExpression is the smallest connected function subgraph
	// worth fusing into a compiled supernode.
	MinCountToCompileExpression int `yaml:"min_count_to_compile_expression"`
	// CompileExpressions enables fusing function subgraphs via an external
	// compiler.
	CompileExpressions bool `yaml:"compile_expressions"`
	// ProjectInput drops block columns not referenced by any input of the
	// plan before execution.
	ProjectInput bool `yaml:"project_input"`
}

// DefaultSettings returns the settings used when the caller provides none.
func DefaultSettings() Settings {
	return Settings{
		MinCountToCompileExpression: 2,
	}
}

// SettingsFromYAML reads settings from YAML. Missing keys keep their default
// values.
func SettingsFromYAML(b []byte) (Settings, error) {
	settings := DefaultSettings()
	if err := yaml.Unmarshal(b, &settings); err != nil {
		return Settings{}, err
	}
	return settings, nil
}
