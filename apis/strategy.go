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

import (
	"reflect"

	"dirpx.dev/clsx/class"
)

// Subject is what a Strategy names: the original value (nil when resolving
// a bare type or definition) and the definition it belongs to.
type Subject struct {
	// Value is the value handed to Resolve, if any.
	Value any
	// Type is the normalized instance type.
	Type reflect.Type
	// Definition is the class of Value/Type. Never nil when a strategy runs.
	Definition *class.Definition
}

// Strategy is a pluggable resolution step. A Resolver chains multiple
// strategies in order (e.g., Tag -> Namer -> Global -> Namespace).
type Strategy interface {
	// TryResolve attempts to name s according to cfg.
	// It returns (name, true) if handled; otherwise ("", false) to fall through.
	TryResolve(s Subject, cfg Config) (name string, handled bool)
}
