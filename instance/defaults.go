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

package instance

import (
	"reflect"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"dirpx.dev/clsx/apis"
	"dirpx.dev/clsx/class"
)

// ErrUnknownClass reports an instance request for a name that resolves to no class.
var ErrUnknownClass = errors.New("clsx(instance): unknown class")

// Fatal handles programming errors such as requesting an instance of an
// unknown class. It is not expected to return.
type Fatal func(err error)

// Panic is the default Fatal.
func Panic(err error) {
	panic(err)
}

// New constructs an apis.Instances resolving names through defs.
// A nil fatal defaults to Panic.
func New(defs apis.Definitions, log *zap.Logger, fatal Fatal) apis.Instances {
	if log == nil {
		log = zap.NewNop()
	}
	if fatal == nil {
		fatal = Panic
	}
	return &instances{
		defs:     defs,
		log:      log,
		fatal:    fatal,
		defaults: make(map[string]*cell),
	}
}

// instances owns the default-instance cache of one registry.
type instances struct {
	defs  apis.Definitions
	log   *zap.Logger
	fatal Fatal

	mu       sync.Mutex
	defaults map[string]*cell
}

// cell is a build-once slot. A build that yields nil leaves it empty so the
// next request retries; a published value is never replaced.
type cell struct {
	mu    sync.Mutex
	value any
	done  bool
}

// Ensure instances implements apis.Instances.
var _ apis.Instances = (*instances)(nil)

// Create builds a fresh instance of def.
func (i *instances) Create(def *class.Definition) any {
	return Create(def)
}

// Instance builds a fresh instance of the class named name.
func (i *instances) Instance(name string) any {
	def := i.defs.Resolve(name, true)
	if def == nil {
		i.log.Error("instance requested for unknown class", zap.String("name", name))
		i.fatal(errors.Wrapf(ErrUnknownClass, "cannot create instance of %q", name))
		return nil
	}
	return Create(def)
}

// Default returns the frozen default instance of the class named name,
// building it on first use.
func (i *instances) Default(name string) any {
	i.mu.Lock()
	c, ok := i.defaults[name]
	if !ok {
		c = &cell{}
		i.defaults[name] = c
	}
	i.mu.Unlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.done {
		return share(c.value)
	}
	v := i.Instance(name)
	if v == nil {
		return nil
	}
	c.value, c.done = Freeze(v), true
	return share(c.value)
}

// Freeze makes v safe to share: it calls Freeze on apis.Freezer values and
// then strips pointers, so callers receive copies and cannot mutate the
// published top-level value. Nil pointers are returned unchanged.
// Maps and slices cannot be frozen in place; Default copies them on every read.
func Freeze(v any) any {
	if f, ok := v.(apis.Freezer); ok {
		f.Freeze()
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr && !rv.IsNil() {
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return v
	}
	return rv.Interface()
}

// share hands out a published default. Maps and slices are reference
// types, so each caller receives its own shallow copy; other values are
// already copies.
func share(v any) any {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		if rv.IsNil() {
			return v
		}
		out := reflect.MakeMapWithSize(rv.Type(), rv.Len())
		for it := rv.MapRange(); it.Next(); {
			out.SetMapIndex(it.Key(), it.Value())
		}
		return out.Interface()
	case reflect.Slice:
		if rv.IsNil() {
			return v
		}
		out := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
		reflect.Copy(out, rv)
		return out.Interface()
	}
	return v
}
