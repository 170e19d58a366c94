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

package class

import (
	"reflect"
	"time"
)

// Built-in definitions shared by every predeclared Go type of the matching kind.
var (
	Boolean = newBuiltin("Boolean", reflect.TypeFor[bool]())
	Number  = newBuiltin("Number", reflect.TypeFor[float64]())
	String  = newBuiltin("String", reflect.TypeFor[string]())
	Array   = newBuiltin("Array", reflect.TypeFor[[]any]())
	Object  = newBuiltin("Object", reflect.TypeFor[map[string]any]())
	Date    = newBuiltin("Date", reflect.TypeFor[time.Time](), WithConstructor(func() any { return time.Now() }))
)

// Builtins returns the shared built-in definitions in a stable order.
func Builtins() []*Definition {
	return []*Definition{Boolean, Number, String, Array, Object, Date}
}

func newBuiltin(name string, t reflect.Type, opts ...Option) *Definition {
	d := &Definition{name: name, typ: t, builtin: true}
	if len(opts) > 0 {
		h := hooks{}
		for _, opt := range opts {
			opt(&h)
		}
		d.hooks.Store(&h)
	}
	definitions.Store(t, d)
	return d
}

// builtinFor maps predeclared and unnamed container types to their shared
// definition. Named user types (type Celsius float64) are never folded.
func builtinFor(t reflect.Type) *Definition {
	if t == reflect.TypeFor[time.Time]() {
		return Date
	}
	if t.Name() == "" {
		switch t.Kind() {
		case reflect.Slice, reflect.Array:
			return Array
		case reflect.Map:
			return Object
		}
		return nil
	}
	if t.PkgPath() != "" {
		return nil
	}
	switch t.Kind() {
	case reflect.Bool:
		return Boolean
	case reflect.String:
		return String
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return Number
	}
	return nil
}
