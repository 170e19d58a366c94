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

// NewNamerStrategy creates an apis.Strategy that uses apis.Namer.
func NewNamerStrategy() apis.Strategy {
	return &namerStrategy{}
}

// namerStrategy: if the value implements apis.Namer, return its
// ClassName() and stop the chain.
type namerStrategy struct{}

// Ensure namerStrategy implements apis.Strategy.
var _ apis.Strategy = (*namerStrategy)(nil)

// TryResolve checks if the value implements apis.Namer and returns a non-empty ClassName().
func (*namerStrategy) TryResolve(subj apis.Subject, _ apis.Config) (string, bool) {
	// No instance -> cannot use Namer.
	if subj.Value == nil {
		return "", false
	}
	if n, ok := subj.Value.(apis.Namer); ok {
		if name := n.ClassName(); name != "" {
			return name, true
		}
	}
	return "", false
}
