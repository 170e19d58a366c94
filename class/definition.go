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

// Package class models the "constructor" side of clsx: a Definition is the
// canonical, pointer-identified descriptor of a Go type that can produce
// instances.
//
// Exactly one Definition exists per instance type. Pointer layers are
// stripped before lookup, so Widget, *Widget and **Widget share the same
// Definition, and comparing two definitions with == is an identity check.
//
// Built-in Go types are folded onto a small set of shared definitions
// (Boolean, Number, String, Array, Object, Date) so that, e.g., every numeric
// kind resolves to the same "Number" class.
package class

import (
	"reflect"
	"strings"
	"sync"
	"sync/atomic"

	uref "dirpx.dev/clsx/utils/reflect"
)

// Definition describes a class: its bare name, its instance type and the
// optional hooks used to build instances.
type Definition struct {
	name    string
	typ     reflect.Type
	builtin bool
	hooks   atomic.Pointer[hooks]
}

// hooks is replaced wholesale on Define so readers never see a torn update.
type hooks struct {
	ctor    func() any
	factory func() any
}

// Option configures the hooks of a Definition.
type Option func(*hooks)

// WithConstructor replaces the default zero-value construction used by New.
func WithConstructor(fn func() any) Option {
	return func(h *hooks) {
		h.ctor = fn
	}
}

// WithFactory installs a static factory override. When present, instance
// creation calls it instead of constructing the type.
func WithFactory(fn func() any) Option {
	return func(h *hooks) {
		h.factory = fn
	}
}

// definitions maps a normalized reflect.Type to its canonical *Definition.
var definitions sync.Map // map[reflect.Type]*Definition

// For returns the canonical Definition for t, creating it on first use.
// It returns nil when t cannot act as a class (anonymous struct, func,
// interface, ...).
func For(t reflect.Type) *Definition {
	if t == nil {
		return nil
	}
	t, err := uref.Indirect(t, 0)
	if err != nil {
		return nil
	}
	if d, ok := definitions.Load(t); ok {
		return d.(*Definition)
	}
	d := newDefinition(t)
	if d == nil {
		return nil
	}
	actual, _ := definitions.LoadOrStore(t, d)
	return actual.(*Definition)
}

// Of returns the canonical Definition for T.
func Of[T any]() *Definition {
	return For(reflect.TypeFor[T]())
}

// Define returns the canonical Definition for T and applies opts to it.
// Calling Define again with new options replaces the previous hooks.
// Built-in definitions are shared by many Go types and cannot be defined:
// Define returns nil for them.
func Define[T any](opts ...Option) *Definition {
	d := Of[T]()
	if d == nil || d.builtin {
		return nil
	}
	if len(opts) == 0 {
		return d
	}
	next := hooks{}
	if prev := d.hooks.Load(); prev != nil {
		next = *prev
	}
	for _, opt := range opts {
		opt(&next)
	}
	d.hooks.Store(&next)
	return d
}

// Name returns the bare class name, e.g. "Widget" or "Number".
func (d *Definition) Name() string {
	if d == nil {
		return ""
	}
	return d.name
}

// Type returns the instance type the definition is keyed by.
func (d *Definition) Type() reflect.Type {
	if d == nil {
		return nil
	}
	return d.typ
}

// Builtin reports whether d is one of the shared built-in definitions.
func (d *Definition) Builtin() bool {
	return d != nil && d.builtin
}

// Factory returns the static factory override, if one was installed.
func (d *Definition) Factory() (func() any, bool) {
	if d == nil {
		return nil, false
	}
	if h := d.hooks.Load(); h != nil && h.factory != nil {
		return h.factory, true
	}
	return nil, false
}

// New builds a fresh instance without consulting the factory override.
// Structs are returned as pointers, maps and slices are empty but non-nil,
// everything else is the zero value.
func (d *Definition) New() any {
	if d == nil {
		return nil
	}
	if h := d.hooks.Load(); h != nil && h.ctor != nil {
		return h.ctor()
	}
	switch d.typ.Kind() {
	case reflect.Struct:
		return reflect.New(d.typ).Interface()
	case reflect.Map:
		return reflect.MakeMap(d.typ).Interface()
	case reflect.Slice:
		return reflect.MakeSlice(d.typ, 0, 0).Interface()
	}
	return reflect.Zero(d.typ).Interface()
}

// String implements fmt.Stringer.
func (d *Definition) String() string {
	if d == nil {
		return "<nil>"
	}
	if d.builtin {
		return d.name
	}
	return d.name + "(" + d.typ.String() + ")"
}

// newDefinition decides which definition t belongs to.
func newDefinition(t reflect.Type) *Definition {
	if b := builtinFor(t); b != nil {
		return b
	}
	if t.Name() == "" || t.PkgPath() == "" || t.Kind() == reflect.Interface {
		return nil
	}
	return &Definition{name: stripTypeParams(t.Name()), typ: t}
}

// stripTypeParams removes generic type instantiation suffix: "T[int,string]" -> "T".
func stripTypeParams(s string) string {
	if i := strings.IndexByte(s, '['); i >= 0 {
		return s[:i]
	}
	return s
}
