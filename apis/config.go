/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package apis

// Config carries read-only resolution knobs that influence strategies.
// It is passed by value and should be treated as immutable by implementations.
type Config struct {
	// IncludeBuiltins controls whether the shared built-in definitions
	// ("Boolean", "Number", ...) resolve to their bare names. If false, such
	// cases fall through to namespace search.
	IncludeBuiltins bool `mapstructure:"include_builtins" yaml:"include_builtins"`

	// MaxUnwrap limits how many pointer layers are stripped from a value's
	// type before its definition is looked up.
	MaxUnwrap int `mapstructure:"max_unwrap" yaml:"max_unwrap"`

	// WarnUnresolved emits a warning whenever a value's name cannot be determined.
	WarnUnresolved bool `mapstructure:"warn_unresolved" yaml:"warn_unresolved"`

	// Namespaces seeds the namespace list of freshly built registries.
	Namespaces []string `mapstructure:"namespaces" yaml:"namespaces"`
}
