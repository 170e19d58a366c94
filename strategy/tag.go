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

// NewTagStrategy creates an apis.Strategy that returns a definition's class tag.
func NewTagStrategy(reg apis.Registry) apis.Strategy {
	return &tagStrategy{reg: reg}
}

// tagStrategy is the fast path: an explicit registration always wins and
// needs no search.
type tagStrategy struct {
	reg apis.Registry
}

// Ensure tagStrategy implements apis.Strategy.
var _ apis.Strategy = (*tagStrategy)(nil)

// TryResolve returns the most recently registered name of s.Definition.
func (s *tagStrategy) TryResolve(subj apis.Subject, _ apis.Config) (string, bool) {
	if subj.Definition == nil || s.reg == nil {
		return "", false
	}
	return s.reg.Tag(subj.Definition)
}
