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
	"runtime"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/clsx/apis"
	"dirpx.dev/clsx/instance"
	"dirpx.dev/clsx/lookup"
	"dirpx.dev/clsx/registry"
	"dirpx.dev/clsx/scope"
)

// ---------------------- Helpers ----------------------

func boolToChar(b bool) string {
	if b {
		return "T"
	}
	return "F"
}

// Reset to a clean snapshot using our test builder.
// This fully replaces builder, config, ext and rebuilds every layer.
// Pins are reset (preg=false, pres=false) because we pass nil reg/res.
func resetWithBuilder(tb testing.TB, b apis.Builder, cfg apis.Config, ext any) {
	tb.Helper()
	SetAll(&cfg, ext, scope.New(scope.WithBuiltins()), nil, nil, b)
}

// ---------------------- Test doubles (mocks) ----------------------

type mockRegistry struct {
	apis.Registry
	id string
}

func newMockRegistry(id string) *mockRegistry {
	return &mockRegistry{Registry: registry.New(apis.Config{}), id: id}
}

type mockResolver struct {
	id       string
	resolveC int
	mu       sync.Mutex
}

func (r *mockResolver) Resolve(v any, cfg apis.Config) string {
	r.mu.Lock()
	r.resolveC++
	r.mu.Unlock()
	return r.id + ":" + boolToChar(cfg.IncludeBuiltins) + ":" + strconv.Itoa(cfg.MaxUnwrap)
}

func (r *mockResolver) ResolveType(t reflect.Type, cfg apis.Config) string {
	return r.Resolve(nil, cfg) + ":" + t.String()
}

type mockBuilder struct {
	mu             sync.Mutex
	lastCfg        apis.Config
	lastExt        any
	lastScope      apis.Scope
	lastPrevRegID  string
	lastPrevResID  string
	regCounter     int
	resCounter     int
	insCounter     int
	returnFixedReg apis.Registry // optional override
	returnFixedRes apis.Resolver // optional override
}

func (b *mockBuilder) BuildRegistry(cfg apis.Config, prev apis.Registry, ext any) apis.Registry {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lastCfg, b.lastExt = cfg, ext
	if mr, ok := prev.(*mockRegistry); ok {
		b.lastPrevRegID = mr.id
	}
	if b.returnFixedReg != nil {
		return b.returnFixedReg
	}
	b.regCounter++
	return newMockRegistry("reg#" + strconv.Itoa(b.regCounter))
}

func (b *mockBuilder) BuildDefinitions(_ apis.Config, sc apis.Scope, reg apis.Registry, _ any) apis.Definitions {
	b.mu.Lock()
	b.lastScope = sc
	b.mu.Unlock()
	return lookup.New(sc, reg, nil)
}

func (b *mockBuilder) BuildResolver(cfg apis.Config, _ apis.Scope, _ apis.Registry, _ apis.Definitions, prev apis.Resolver, ext any) apis.Resolver {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lastCfg, b.lastExt = cfg, ext
	if mr, ok := prev.(*mockResolver); ok {
		b.lastPrevResID = mr.id
	}
	if b.returnFixedRes != nil {
		return b.returnFixedRes
	}
	b.resCounter++
	return &mockResolver{id: "res#" + strconv.Itoa(b.resCounter)}
}

func (b *mockBuilder) BuildInstances(_ apis.Config, defs apis.Definitions, _ any) apis.Instances {
	b.mu.Lock()
	b.insCounter++
	b.mu.Unlock()
	return instance.New(defs, nil, nil)
}

// nilBuilder returns nil from BuildResolver.
type nilBuilder struct{ mockBuilder }

func (*nilBuilder) BuildResolver(apis.Config, apis.Scope, apis.Registry, apis.Definitions, apis.Resolver, any) apis.Resolver {
	return nil
}

// ---------------------- Tests ----------------------

func TestSetConfig_Rebuilds_Unpinned(t *testing.T) {
	b := &mockBuilder{}
	resetWithBuilder(t, b, apis.Config{IncludeBuiltins: false, MaxUnwrap: 8}, nil)

	// snapshot 1
	s1Reg := Registry()
	s1Res := Resolver()

	// change cfg -> both should rebuild (not pinned)
	SetConfig(apis.Config{IncludeBuiltins: true, MaxUnwrap: 4})

	assert.NotSame(t, s1Reg, Registry(), "registry was not rebuilt on SetConfig (unpinned)")
	assert.NotSame(t, s1Res, Resolver(), "resolver was not rebuilt on SetConfig (unpinned)")

	b.mu.Lock()
	gotCfg, prevReg, prevRes := b.lastCfg, b.lastPrevRegID, b.lastPrevResID
	b.mu.Unlock()
	assert.Equal(t, 4, gotCfg.MaxUnwrap)
	assert.True(t, gotCfg.IncludeBuiltins)
	assert.Equal(t, "reg#1", prevReg, "builder did not receive the previous registry")
	assert.Equal(t, "res#1", prevRes, "builder did not receive the previous resolver")
	assert.Equal(t, "res#2:T:4", QualifiedName(struct{}{}))
}

func TestSetRegistry_PinsRegistry_and_RebuildsResolverIfUnpinned(t *testing.T) {
	b := &mockBuilder{}
	resetWithBuilder(t, b, apis.Config{IncludeBuiltins: false, MaxUnwrap: 8}, nil)

	customReg := newMockRegistry("custom")
	SetRegistry(customReg)
	require.True(t, IsRegistryPinned())

	beforeRes := Resolver()
	SetConfig(apis.Config{IncludeBuiltins: true, MaxUnwrap: 8})

	assert.Same(t, customReg, Registry(), "pinned registry was rebuilt")
	assert.NotSame(t, beforeRes, Resolver(), "unpinned resolver was not rebuilt")
}

func TestSetResolver_PinsResolver(t *testing.T) {
	b := &mockBuilder{}
	resetWithBuilder(t, b, apis.Config{IncludeBuiltins: false, MaxUnwrap: 8}, nil)

	customRes := &mockResolver{id: "custom"}
	SetResolver(customRes)
	require.True(t, IsResolverPinned())

	regBefore := Registry()

	// Change cfg -> expect: registry rebuilt (not pinned), resolver unchanged (pinned)
	SetConfig(apis.Config{IncludeBuiltins: true, MaxUnwrap: 8})

	assert.Same(t, customRes, Resolver(), "pinned resolver was rebuilt")
	assert.NotSame(t, regBefore, Registry(), "unpinned registry was not rebuilt")
}

func TestSetBuilder_Rebuilds_Only_Unpinned(t *testing.T) {
	a := &mockBuilder{}
	resetWithBuilder(t, a, apis.Config{IncludeBuiltins: false, MaxUnwrap: 8}, nil)

	// Pin resolver, leave registry unpinned
	SetResolver(&mockResolver{id: "pinned"})
	regBefore := Registry()
	resBefore := Resolver()

	b := &mockBuilder{}
	SetBuilder(b)

	assert.Same(t, b, Builder())
	assert.NotSame(t, regBefore, Registry(), "unpinned registry was not rebuilt")
	assert.Same(t, resBefore, Resolver(), "pinned resolver was rebuilt")

	b.mu.Lock()
	defer b.mu.Unlock()
	assert.Equal(t, 1, b.regCounter)
	assert.Equal(t, 0, b.resCounter)
	assert.Equal(t, 1, b.insCounter)
}

func TestSetExt_Rebuilds_Unpinned_and_PassesValue(t *testing.T) {
	b := &mockBuilder{}
	resetWithBuilder(t, b, apis.Config{IncludeBuiltins: false, MaxUnwrap: 8}, nil)

	type extCfg struct{ X int }
	SetExt(extCfg{X: 42})

	b.mu.Lock()
	got := b.lastExt
	b.mu.Unlock()
	assert.Equal(t, extCfg{X: 42}, got, "builder did not receive ext")

	ec, ok := ExtAs[extCfg]()
	assert.True(t, ok)
	assert.Equal(t, 42, ec.X)
	_, ok = ExtAs[string]()
	assert.False(t, ok)

	// Pin both and ensure no rebuild on SetExt
	SetRegistry(Registry())
	SetResolver(Resolver())
	counts := func() (int, int) {
		b.mu.Lock()
		defer b.mu.Unlock()
		return b.regCounter, b.resCounter
	}
	rBefore, sBefore := counts()
	SetExt(extCfg{X: 7})
	rAfter, sAfter := counts()
	assert.Equal(t, rBefore, rAfter, "SetExt rebuilt a pinned registry")
	assert.Equal(t, sBefore, sAfter, "SetExt rebuilt a pinned resolver")
}

func TestUnpin_Allows_Rebuild_After(t *testing.T) {
	b := &mockBuilder{}
	resetWithBuilder(t, b, apis.Config{IncludeBuiltins: false, MaxUnwrap: 8}, nil)

	PinRegistry()
	PinResolver()

	reg1 := Registry()
	res1 := Resolver()
	SetConfig(apis.Config{IncludeBuiltins: true, MaxUnwrap: 4})
	require.Same(t, reg1, Registry(), "pinned registry rebuilt on SetConfig")
	require.Same(t, res1, Resolver(), "pinned resolver rebuilt on SetConfig")

	UnpinRegistry()
	UnpinResolver()
	assert.False(t, IsRegistryPinned())
	assert.False(t, IsResolverPinned())

	SetConfig(apis.Config{IncludeBuiltins: false, MaxUnwrap: 6})
	assert.NotSame(t, reg1, Registry(), "registry should rebuild after UnpinRegistry")
	assert.NotSame(t, res1, Resolver(), "resolver should rebuild after UnpinResolver")
}

func TestSetScope_RebuildsOverNewScope(t *testing.T) {
	b := &mockBuilder{}
	resetWithBuilder(t, b, apis.Config{MaxUnwrap: 8}, nil)

	sc := scope.New()
	SetScope(sc)
	assert.Same(t, sc, Scope())

	b.mu.Lock()
	got := b.lastScope
	b.mu.Unlock()
	assert.Same(t, sc, got, "builder did not receive the new scope")

	SetScope(nil)
	assert.Same(t, sc, Scope(), "SetScope(nil) should be ignored")
}

func TestSetAll_PanicsOnNilLayer(t *testing.T) {
	good := &mockBuilder{}
	resetWithBuilder(t, good, apis.Config{MaxUnwrap: 8}, nil)
	before := Resolver()

	assert.PanicsWithValue(t, ErrNilResolver, func() { SetBuilder(&nilBuilder{}) })
	assert.Same(t, before, Resolver(), "a failed build must not publish a snapshot")

	// The build lock must have been released.
	resetWithBuilder(t, good, apis.Config{MaxUnwrap: 8}, nil)
}

func TestQualifiedName_Concurrent_With_SetConfig(t *testing.T) {
	b := &mockBuilder{}
	resetWithBuilder(t, b, apis.Config{IncludeBuiltins: false, MaxUnwrap: 8}, nil)

	type token struct{}
	done := make(chan struct{})
	var wg sync.WaitGroup

	readers := runtime.GOMAXPROCS(0) * 4
	wg.Add(readers)
	for i := 0; i < readers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				_ = QualifiedName(token{})
				_ = QualifiedTypeName(reflect.TypeOf(token{}))
				_ = DefinitionByName("Number")
			}
		}()
	}

	go func() {
		for i := 0; i < 20; i++ {
			SetConfig(apis.Config{
				IncludeBuiltins: i%2 == 0,
				MaxUnwrap:       4 + (i % 5),
			})
			time.Sleep(time.Millisecond)
		}
		close(done)
	}()

	wg.Wait()
	<-done
}
