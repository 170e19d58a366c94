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

// Resolver turns values, types and definitions into qualified names.
// Typical chain: TagStrategy -> NamerStrategy -> GlobalStrategy -> NamespaceStrategy.
type Resolver interface {
	// Resolve returns the qualified name of v, NullName for an empty v,
	// or "" if none can be determined.
	Resolve(v any, cfg Config) string

	// ResolveType returns the qualified name of t, or "" if none can be determined.
	ResolveType(t reflect.Type, cfg Config) string
}

// Definitions resolves qualified names back to definitions.
type Definitions interface {
	// Resolve returns the definition named name, or nil. With useCache false
	// the memoized dotted-path results are bypassed.
	Resolve(name string, useCache bool) *class.Definition
	// Purge drops memoized dotted-path results.
	Purge()
}

// Instances builds instances from names and keeps one frozen default
// instance per name.
type Instances interface {
	// Create builds a fresh instance of def, or returns nil for a nil def.
	Create(def *class.Definition) any
	// Instance builds a fresh instance of the class named name. An unknown
	// name is a programming error.
	Instance(name string) any
	// Default returns the memoized, frozen instance of the class named name.
	Default(name string) any
}

// Namer lets a value declare its own qualified name.
type Namer interface {
	// ClassName returns the qualified class name of the receiver's type.
	ClassName() string
}

// Freezer is implemented by instances that can reject further mutation.
// Default instances are frozen before they are published.
type Freezer interface {
	Freeze()
}
