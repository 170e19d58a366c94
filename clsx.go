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

package clsx

import (
	"reflect"

	"github.com/pkg/errors"

	"dirpx.dev/clsx/apis"
	"dirpx.dev/clsx/class"
)

// ErrNotAClass is returned when a type cannot act as a class
// (anonymous struct, interface, func, ...).
var ErrNotAClass = errors.New("clsx: type cannot act as a class")

// QualifiedName returns the qualified class name of v: "null" for an empty
// value, "" if the class is neither registered, global nor found under a
// known namespace. v may also be a *class.Definition or a reflect.Type.
func QualifiedName(v any) string {
	s := st.Load()
	return s.res.Resolve(v, s.cfg)
}

// QualifiedTypeName returns the qualified class name of t.
func QualifiedTypeName(t reflect.Type) string {
	s := st.Load()
	return s.res.ResolveType(t, s.cfg)
}

// DefinitionByName returns the class definition named name, or nil.
// Dotted paths found by walking the scope are cached.
func DefinitionByName(name string) *class.Definition {
	return st.Load().defs.Resolve(name, true)
}

// ResolveDefinition is DefinitionByName with control over the walk cache.
// With useCache false the scope is walked again; the result is still cached.
func ResolveDefinition(name string, useCache bool) *class.Definition {
	return st.Load().defs.Resolve(name, useCache)
}

// CreateInstance builds a fresh instance of def, honoring its factory override.
func CreateInstance(def *class.Definition) any {
	return st.Load().ins.Create(def)
}

// InstanceByName builds a fresh instance of the class named name.
// An unknown name is a programming error reported through the builder's
// fatal hook, which panics by default.
func InstanceByName(name string) any {
	return st.Load().ins.Instance(name)
}

// DefaultInstanceByName returns the shared, frozen default instance of the
// class named name. It is built on first use and never rebuilt.
func DefaultInstanceByName(name string) any {
	return st.Load().ins.Default(name)
}

// Register records def under name in the global registry and tags def with
// it. An empty name registers def under its bare name. Writes are serialized
// with snapshot rebuilds so a registry being migrated never misses them.
func Register(def *class.Definition, name string) error {
	buildMu.Lock()
	defer buildMu.Unlock()
	return st.Load().reg.Register(def, name)
}

// RegisterClass defines T with opts and registers it under name (or its bare
// name when empty). It is meant for package-level variables and init
// functions, and panics on failure:
//
//	var Widget = clsx.RegisterClass[Widget]("app.Widget")
func RegisterClass[T any](name string, opts ...class.Option) *class.Definition {
	def := class.Define[T](opts...)
	if def == nil {
		panic(errors.Wrapf(ErrNotAClass, "register %s", reflect.TypeFor[T]()))
	}
	if err := Register(def, name); err != nil {
		panic(errors.Wrapf(err, "register %s", reflect.TypeFor[T]()))
	}
	return def
}

// AddNamespace appends ns to the namespaces searched for unregistered
// classes. Duplicates and empty strings are ignored.
func AddNamespace(ns string) {
	buildMu.Lock()
	defer buildMu.Unlock()
	st.Load().reg.AddNamespace(ns)
}

// Namespaces returns a copy of the namespace search list.
func Namespaces() []string {
	return st.Load().reg.Namespaces()
}

// Mount places def at the dotted path in the active scope, creating
// intermediate namespaces. Cached walk results are kept: re-read a remounted
// path with ResolveDefinition(path, false) or call PurgeDefinitions.
func Mount(path string, def *class.Definition) error {
	return st.Load().sc.Set(path, def)
}

// PurgeDefinitions drops every cached dotted-path walk.
func PurgeDefinitions() {
	st.Load().defs.Purge()
}

// Entries returns the explicit registrations of the global registry.
func Entries() []apis.Entry {
	return st.Load().reg.Entries()
}
