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

// Package lookup resolves qualified names back to class definitions.
package lookup

import (
	"go.uber.org/zap"

	"dirpx.dev/clsx/apis"
	"dirpx.dev/clsx/cache"
	"dirpx.dev/clsx/class"
)

// New constructs an apis.Definitions over the root scope sc and the
// explicit registrations in reg. Either may be nil.
func New(sc apis.Scope, reg apis.Registry, log *zap.Logger) apis.Definitions {
	if log == nil {
		log = zap.NewNop()
	}
	return &definitions{
		scope: sc,
		reg:   reg,
		memo:  cache.New[*class.Definition](),
		log:   log,
	}
}

// definitions memoizes dotted-path walks by full name. Entries are never
// invalidated; callers that mutate the scope afterwards read with
// useCache=false or Purge.
type definitions struct {
	scope apis.Scope
	reg   apis.Registry
	memo  *cache.Memo[*class.Definition]
	log   *zap.Logger
}

// Ensure definitions implements apis.Definitions.
var _ apis.Definitions = (*definitions)(nil)

// Resolve returns the definition named name, or nil.
//
// Order: reserved/empty names, top-level scope key, explicit registration,
// memo (if useCache), dotted-path walk.
func (d *definitions) Resolve(name string, useCache bool) *class.Definition {
	if name == apis.NullName || name == "" {
		return nil
	}
	if d.scope != nil {
		if def, ok := d.scope.Lookup(name); ok {
			return def
		}
	}
	if d.reg != nil {
		if def, ok := d.reg.Lookup(name); ok {
			return def
		}
	}
	if useCache {
		if def, ok := d.memo.Get(name); ok {
			return def
		}
	}
	if d.scope == nil {
		return nil
	}
	def, ok := d.scope.Walk(name)
	if !ok {
		return nil
	}
	d.memo.Set(name, def)
	d.log.Debug("definition cached", zap.String("name", name), zap.Stringer("definition", def))
	return def
}

// Purge drops memoized walk results.
func (d *definitions) Purge() {
	d.memo.Flush()
}
