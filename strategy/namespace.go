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
	"go.uber.org/zap"

	"dirpx.dev/clsx/apis"
)

// NewNamespaceStrategy creates an apis.Strategy that searches the registry's
// namespaces for "<namespace>.<bare name>" and registers the first match.
func NewNamespaceStrategy(reg apis.Registry, defs apis.Definitions, log *zap.Logger) apis.Strategy {
	if log == nil {
		log = zap.NewNop()
	}
	return &namespaceStrategy{reg: reg, defs: defs, log: log}
}

// namespaceStrategy is the costly fallback. Namespaces are tried in
// insertion order, so callers disambiguate equal bare names by ordering.
// A hit is registered, making later resolutions take the tag fast path.
type namespaceStrategy struct {
	reg  apis.Registry
	defs apis.Definitions
	log  *zap.Logger
}

// Ensure namespaceStrategy implements apis.Strategy.
var _ apis.Strategy = (*namespaceStrategy)(nil)

// TryResolve walks the namespace list and stops at the first identical definition.
func (s *namespaceStrategy) TryResolve(subj apis.Subject, _ apis.Config) (string, bool) {
	def := subj.Definition
	if def == nil || s.reg == nil || s.defs == nil {
		return "", false
	}
	bare := def.Name()
	for _, ns := range s.reg.Namespaces() {
		name := ns + "." + bare
		if s.defs.Resolve(name, true) != def {
			continue
		}
		if err := s.reg.Register(def, name); err != nil {
			s.log.Warn("cannot register namespace match", zap.String("name", name), zap.Error(err))
			return name, true
		}
		s.log.Debug("namespace match registered", zap.String("name", name))
		return name, true
	}
	return "", false
}
