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

// NullName is the qualified name of an absent value. Resolving it as a
// definition always yields nil.
const NullName = "null"

// Registry is the name table behind explicit registrations. It owns the
// class tags (definition -> most recent name) and the namespace list.
type Registry interface {
	// Register maps name to def and stamps name as def's class tag.
	// An empty name means def.Name().
	Register(def *class.Definition, name string) error
	// Lookup returns the definition registered under name.
	Lookup(name string) (*class.Definition, bool)
	// Tag returns the most recently registered name of def.
	Tag(def *class.Definition) (string, bool)
	// AddNamespace appends ns unless it is already present.
	AddNamespace(ns string)
	// Namespaces returns the namespace list in insertion order.
	Namespaces() []string
	// Entries returns a snapshot of the name table sorted by name.
	Entries() []Entry
	// Count returns the number of registered names.
	Count() int
	// Reset clears names, tags and namespaces.
	Reset()
}

// Entry is a single (name, definition) association in a snapshot.
type Entry struct {
	// Name is the qualified name.
	Name string `yaml:"name"`
	// Definition is the associated class.
	Definition *class.Definition `yaml:"-"`
}
