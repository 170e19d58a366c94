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

package reflect

import (
	"math"
	"reflect"

	"github.com/pkg/errors"
)

// DefaultMaxUnwrap bounds pointer unwrapping when callers pass a non-positive depth.
const DefaultMaxUnwrap = 8

var (
	// ErrReflectNilType is returned when a nil reflect.Type is provided.
	ErrReflectNilType = errors.New("reflect: nil reflect.Type provided")
	// ErrReflectTooDeep indicates that the type is still an unnamed pointer
	// after maxUnwrap dereferences (e.g. *********T with a small limit).
	ErrReflectTooDeep = errors.New("reflect: pointer chain exceeds unwrap limit")
)

// Indirect strips unnamed pointer layers from t and returns the instance type
// a class definition is keyed by.
//
// Unwrapping policy:
//   - unnamed ptr -> Elem()
//   - named types (including named pointer types) are returned as-is
//   - anything else is returned as-is; the caller decides whether it is a class
//
// If maxUnwrap <= 0, DefaultMaxUnwrap is used.
func Indirect(t reflect.Type, maxUnwrap int) (reflect.Type, error) {
	if t == nil {
		return nil, ErrReflectNilType
	}
	if maxUnwrap <= 0 {
		maxUnwrap = DefaultMaxUnwrap
	}
	for i := 0; i < maxUnwrap; i++ {
		if t.Kind() != reflect.Ptr || t.Name() != "" {
			return t, nil
		}
		t = t.Elem()
	}
	if t.Kind() == reflect.Ptr && t.Name() == "" {
		return nil, ErrReflectTooDeep
	}
	return t, nil
}

// IsEmpty reports whether v denotes absence: nil, a typed nil
// (pointer, map, slice, func, chan, interface) or a NaN.
// Legitimate zero values such as 0, false or "" are not empty.
func IsEmpty(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func,
		reflect.Chan, reflect.Interface, reflect.UnsafePointer:
		return rv.IsNil()
	case reflect.Float32, reflect.Float64:
		return math.IsNaN(rv.Float())
	case reflect.Complex64, reflect.Complex128:
		c := rv.Complex()
		return math.IsNaN(real(c)) || math.IsNaN(imag(c))
	case reflect.Invalid:
		return true
	}
	return false
}
