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

import "dirpx.dev/clsx/class"

// Scope is the root object dotted names are resolved against. It replaces
// ambient global lookups with an explicit, statically declared hierarchy.
type Scope interface {
	// Lookup returns the definition stored directly under the top-level key name.
	Lookup(name string) (*class.Definition, bool)
	// Walk follows path segment by segment and fails on the first missing one.
	Walk(path string) (*class.Definition, bool)
	// Set mounts def at path, creating intermediate namespaces.
	Set(path string, def *class.Definition) error
	// Delete removes whatever is mounted at path.
	Delete(path string) bool
	// Entries returns every mounted definition with its full path.
	Entries() []Entry
}
