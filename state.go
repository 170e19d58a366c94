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
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"

	"dirpx.dev/clsx/apis"
	"dirpx.dev/clsx/builder"
	"dirpx.dev/clsx/config"
	"dirpx.dev/clsx/scope"
)

// init initializes the global state over the process-wide scope.
func init() {
	st.Store(build(&state{cfg: config.DefaultConfig(), sc: scope.Global(), bld: builder.New()}))
}

var (
	// ErrNilRegistry is raised when a builder returns a nil registry.
	ErrNilRegistry = errors.New("clsx: builder returned nil registry")
	// ErrNilDefinitions is raised when a builder returns a nil name lookup.
	ErrNilDefinitions = errors.New("clsx: builder returned nil definitions")
	// ErrNilResolver is raised when a builder returns a nil resolver.
	ErrNilResolver = errors.New("clsx: builder returned nil resolver")
	// ErrNilInstances is raised when a builder returns a nil instance provider.
	ErrNilInstances = errors.New("clsx: builder returned nil instances")
)

// buildMu serializes writers (reconfigurations/swaps) so we never publish
// partially-built snapshots.
var buildMu sync.Mutex

// st is the global clsx state.
var st atomic.Pointer[state]

// state is the global clsx state snapshot.
// Immutable snapshot published atomically via st.Store; never mutate fields
// of a published state. Writers create a new state and swap it atomically.
type state struct {
	// cfg is the global configuration.
	cfg apis.Config
	// ext is the opaque extension value passed to the builder.
	ext any
	// sc is the root scope.
	sc apis.Scope
	// reg holds explicit registrations, tags and namespaces.
	reg apis.Registry
	// defs resolves names to definitions.
	defs apis.Definitions
	// res resolves values to names.
	res apis.Resolver
	// ins builds instances and owns the default-instance cache.
	ins apis.Instances
	// bld builds every layer above.
	bld apis.Builder
	// preg indicates whether the reg is pinned (immutable).
	preg bool
	// pres indicates whether the res is pinned (immutable).
	pres bool
}

// build completes next from its cfg, ext, scope and builder. Pinned layers
// are kept; the registry and resolver of prev are handed to the builder for
// migration. Derived layers (defs, ins) are always rebuilt.
func build(next *state, prev ...*state) *state {
	var old *state
	if len(prev) > 0 {
		old = prev[0]
	}
	var oreg apis.Registry
	var ores apis.Resolver
	if old != nil {
		oreg, ores = old.reg, old.res
	}

	if !next.preg || next.reg == nil {
		next.reg = next.bld.BuildRegistry(next.cfg, oreg, next.ext)
	}
	if next.reg == nil {
		panic(ErrNilRegistry)
	}
	next.defs = next.bld.BuildDefinitions(next.cfg, next.sc, next.reg, next.ext)
	if next.defs == nil {
		panic(ErrNilDefinitions)
	}
	if !next.pres || next.res == nil {
		next.res = next.bld.BuildResolver(next.cfg, next.sc, next.reg, next.defs, ores, next.ext)
	}
	if next.res == nil {
		panic(ErrNilResolver)
	}
	next.ins = next.bld.BuildInstances(next.cfg, next.defs, next.ext)
	if next.ins == nil {
		panic(ErrNilInstances)
	}
	return next
}

// update publishes a copy of the current state modified by fn and rebuilt
// through the builder.
func update(fn func(s *state)) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	next := *old
	fn(&next)
	st.Store(build(&next, old))
}

// repin publishes a copy of the current state with new pin flags only.
func repin(fn func(s *state)) {
	buildMu.Lock()
	defer buildMu.Unlock()

	next := *st.Load()
	fn(&next)
	st.Store(&next)
}

// SetAll explicitly sets all global clsx state components.
//
// Nil arguments leave the corresponding component unchanged,
// except for ext which is always replaced. A non-nil reg or res is pinned;
// a nil one is rebuilt and unpinned.
//
// This is mainly used by tests to get a clean deterministic state.
func SetAll(cfg *apis.Config, ext any, sc apis.Scope, reg apis.Registry, res apis.Resolver, bld apis.Builder) {
	update(func(s *state) {
		if cfg != nil {
			s.cfg = *cfg
		}
		s.ext = ext
		if sc != nil {
			s.sc = sc
		}
		if bld != nil {
			s.bld = bld
		}
		s.reg, s.preg = reg, reg != nil
		s.res, s.pres = res, res != nil
	})
}

// Config returns the global configuration.
func Config() apis.Config {
	return st.Load().cfg
}

// SetConfig sets the global configuration to cfg and rebuilds unpinned layers.
func SetConfig(cfg apis.Config) {
	update(func(s *state) {
		s.cfg = cfg
	})
}

// Scope returns the root scope.
func Scope() apis.Scope {
	return st.Load().sc
}

// SetScope replaces the root scope and rebuilds unpinned layers.
// The definition cache starts empty.
func SetScope(sc apis.Scope) {
	if sc == nil {
		return
	}
	update(func(s *state) {
		s.sc = sc
	})
}

// Registry returns the global registry.
func Registry() apis.Registry {
	return st.Load().reg
}

// SetRegistry sets and pins the global registry. Layers depending on it
// are rebuilt unless pinned.
func SetRegistry(reg apis.Registry) {
	if reg == nil {
		return
	}
	update(func(s *state) {
		s.reg, s.preg = reg, true
	})
}

// Resolver returns the global resolver.
func Resolver() apis.Resolver {
	return st.Load().res
}

// SetResolver sets and pins the global resolver.
func SetResolver(res apis.Resolver) {
	if res == nil {
		return
	}
	repin(func(s *state) {
		s.res, s.pres = res, true
	})
}

// Builder returns the global builder.
func Builder() apis.Builder {
	return st.Load().bld
}

// SetBuilder sets the global builder and rebuilds unpinned layers with it.
func SetBuilder(b apis.Builder) {
	if b == nil {
		return
	}
	update(func(s *state) {
		s.bld = b
	})
}

// SetExt replaces the extension value and rebuilds non-pinned layers via the builder.
func SetExt[T any](ext T) {
	update(func(s *state) {
		s.ext = ext
	})
}

// ExtAs returns the global extension value as type T.
func ExtAs[T any]() (T, bool) {
	ext, ok := st.Load().ext.(T)
	return ext, ok
}

// IsRegistryPinned returns whether the global registry is pinned (immutable).
func IsRegistryPinned() bool {
	return st.Load().preg
}

// PinRegistry makes the global registry immutable.
func PinRegistry() {
	repin(func(s *state) { s.preg = true })
}

// UnpinRegistry makes the global registry rebuildable again.
func UnpinRegistry() {
	repin(func(s *state) { s.preg = false })
}

// IsResolverPinned returns whether the global resolver is pinned (immutable).
func IsResolverPinned() bool {
	return st.Load().pres
}

// PinResolver makes the global resolver immutable.
func PinResolver() {
	repin(func(s *state) { s.pres = true })
}

// UnpinResolver makes the global resolver rebuildable again.
func UnpinResolver() {
	repin(func(s *state) { s.pres = false })
}
