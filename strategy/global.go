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

package strategy

import (
	"dirpx.dev/clsx/apis"
)

// NewGlobalStrategy creates an apis.Strategy that accepts a definition's bare
// name when the root scope maps that name back to the very same definition.
func NewGlobalStrategy(sc apis.Scope) apis.Strategy {
	return &globalStrategy{scope: sc}
}

// globalStrategy covers built-ins and other globally unique classes.
// It performs no registration.
type globalStrategy struct {
	scope apis.Scope
}

// Ensure globalStrategy implements apis.Strategy.
var _ apis.Strategy = (*globalStrategy)(nil)

// TryResolve returns the bare name if the scope agrees on its identity.
func (s *globalStrategy) TryResolve(subj apis.Subject, cfg apis.Config) (string, bool) {
	def := subj.Definition
	if def == nil || s.scope == nil {
		return "", false
	}
	if def.Builtin() && !cfg.IncludeBuiltins {
		return "", false
	}
	name := def.Name()
	if got, ok := s.scope.Lookup(name); ok && got == def {
		return name, true
	}
	return "", false
}
