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

// Package clsx provides a global, process-wide class identity service.
//
// clsx maps Go values and types to stable qualified class names such as
// "app.Widget", and maps those names back to class definitions and to
// shared default instances. Names are useful wherever a type has to be
// identified by a string: configuration files, persisted documents,
// logs and plugin tables.
//
// # Classes
//
// A class is a *class.Definition. There is exactly one definition per Go
// instance type (pointer layers are ignored), so definitions are compared
// with ==. Predeclared types fold onto shared built-ins: every numeric kind
// is "Number", bool is "Boolean", string is "String", unnamed slices are
// "Array", unnamed maps are "Object" and time.Time is "Date".
//
// # Naming a class
//
// QualifiedName tries, in order:
//
//  1. The class tag: the most recent name the class was registered under.
//  2. apis.Namer: a value may report its own name.
//  3. The root scope: a class mounted at the top level under its bare
//     name (this covers the built-ins).
//  4. The namespace list: for each namespace ns, the definition found at
//     "ns.<bare name>" must be the class itself. A hit is registered, so
//     the next call takes the tag path.
//
// If nothing matches, a warning is logged and "" is returned. Empty values
// (nil, typed nil, NaN) are named "null".
//
// # Registering
//
// Classes are registered at init time:
//
//	var WidgetClass = clsx.RegisterClass[Widget]("app.Widget")
//
// or discovered through a namespace:
//
//	_ = clsx.Mount("app.Widget", class.Of[Widget]())
//	clsx.AddNamespace("app")
//
// # Scope
//
// The root scope (apis.Scope, scope.Global by default) is a hierarchy of
// namespaces and definitions. DefinitionByName first looks for an exact
// top-level key, then for an explicit registration, then walks the dotted
// path segment by segment. Successful walks are cached by full name;
// ResolveDefinition(name, false) bypasses the cache.
//
// # Instances
//
// InstanceByName builds a fresh instance; an unknown name panics by default
// (see builder.WithFatal). DefaultInstanceByName builds one instance per
// name, freezes it and returns the same value afterwards.
//
// # Snapshot
//
// All components live in one immutable snapshot behind an atomic pointer.
// Reads are lock-free. Writers (SetConfig, SetScope, SetBuilder, SetExt,
// SetRegistry, SetResolver, SetAll) take a build mutex, rebuild the layers
// that are not pinned and publish a new snapshot. SetRegistry and
// SetResolver pin their layer until UnpinRegistry/UnpinResolver.
// Rebuilding the registry migrates names, tags and namespaces; the name
// cache and the default instances start empty.
package clsx
