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

package instance_test

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/clsx/apis"
	"dirpx.dev/clsx/class"
	"dirpx.dev/clsx/instance"
	"dirpx.dev/clsx/lookup"
	"dirpx.dev/clsx/scope"
)

type Widget struct {
	Label string
	Tags  []string
}

type Settings struct {
	Level  int
	frozen bool
}

func (s *Settings) Freeze() { s.frozen = true }

func (s *Settings) Frozen() bool { return s.frozen }

// SetLevel rejects mutation once the receiver is frozen.
func (s *Settings) SetLevel(l int) bool {
	if s.frozen {
		return false
	}
	s.Level = l
	return true
}

type Service struct{ Name string }

type Limits map[string]int

type Hosts []string

func newInstances(t *testing.T, mounts map[string]*class.Definition, fatal instance.Fatal) apis.Instances {
	t.Helper()
	sc := scope.New(scope.WithBuiltins())
	for path, def := range mounts {
		require.NoError(t, sc.Set(path, def))
	}
	return instance.New(lookup.New(sc, nil, nil), nil, fatal)
}

func TestCreate(t *testing.T) {
	assert.Nil(t, instance.Create(nil))

	w, ok := instance.CreateAs[*Widget](class.Of[Widget]())
	require.True(t, ok)
	assert.NotNil(t, w)

	n, ok := instance.CreateAs[float64](class.Number)
	require.True(t, ok)
	assert.Equal(t, 0.0, n)

	arr, ok := instance.CreateAs[[]any](class.Array)
	require.True(t, ok)
	assert.NotNil(t, arr)
	assert.Empty(t, arr)
}

func TestCreate_FactoryOverride(t *testing.T) {
	shared := &Service{Name: "singleton"}
	var ctorCalls atomic.Int32
	def := class.Define[Service](
		class.WithConstructor(func() any { ctorCalls.Add(1); return &Service{Name: "ctor"} }),
		class.WithFactory(func() any { return shared }),
	)

	got, ok := instance.CreateAs[*Service](def)
	require.True(t, ok)
	assert.Same(t, shared, got)
	assert.Equal(t, int32(0), ctorCalls.Load(), "factory bypasses construction")
}

func TestInstance_UnknownIsFatal(t *testing.T) {
	ins := newInstances(t, nil, nil)

	assert.PanicsWithError(t, `cannot create instance of "app.Missing": clsx(instance): unknown class`, func() {
		ins.Instance("app.Missing")
	})
}

func TestInstance_CustomFatal(t *testing.T) {
	var got error
	ins := newInstances(t, nil, func(err error) { got = err })

	assert.Nil(t, ins.Instance("app.Missing"))
	assert.ErrorIs(t, got, instance.ErrUnknownClass)
}

func TestInstance_Fresh(t *testing.T) {
	ins := newInstances(t, map[string]*class.Definition{"app.Widget": class.Of[Widget]()}, nil)

	a := ins.Instance("app.Widget").(*Widget)
	b := ins.Instance("app.Widget").(*Widget)
	assert.NotSame(t, a, b)
}

func TestDefault_BuildOnceAndImmutable(t *testing.T) {
	ins := newInstances(t, map[string]*class.Definition{"app.Widget": class.Of[Widget]()}, nil)

	first := ins.Default("app.Widget")
	second := ins.Default("app.Widget")

	w, ok := first.(Widget)
	require.True(t, ok, "default instance is published by value, got %T", first)
	assert.Equal(t, first, second)

	// A caller's copy can be changed without touching the published value.
	w.Label = "changed"
	assert.Equal(t, "", ins.Default("app.Widget").(Widget).Label)
}

func TestDefault_Freezer(t *testing.T) {
	ins := newInstances(t, map[string]*class.Definition{"cfg.Settings": class.Of[Settings]()}, nil)

	s := ins.Default("cfg.Settings").(Settings)
	assert.True(t, s.Frozen())
	assert.False(t, s.SetLevel(3), "frozen default rejects mutation")
	assert.Equal(t, 0, ins.Default("cfg.Settings").(Settings).Level)
}

func TestDefault_MapAndSliceCannotBeMutated(t *testing.T) {
	class.Define[Limits](class.WithConstructor(func() any { return Limits{"cpu": 2} }))
	class.Define[Hosts](class.WithConstructor(func() any { return Hosts{"a", "b"} }))
	ins := newInstances(t, map[string]*class.Definition{
		"cfg.Limits": class.Of[Limits](),
		"cfg.Hosts":  class.Of[Hosts](),
	}, nil)

	obj := ins.Default("Object").(map[string]any)
	obj["x"] = 1
	assert.Empty(t, ins.Default("Object"))

	limits := ins.Default("cfg.Limits").(Limits)
	limits["cpu"] = 99
	delete(limits, "cpu")
	assert.Equal(t, Limits{"cpu": 2}, ins.Default("cfg.Limits"))

	hosts := ins.Default("cfg.Hosts").(Hosts)
	hosts[0] = "z"
	assert.Equal(t, Hosts{"a", "b"}, ins.Default("cfg.Hosts"))
}

func TestDefault_SingleBuildUnderConcurrency(t *testing.T) {
	var builds atomic.Int32
	type Counter struct{ N int }
	def := class.Define[Counter](class.WithConstructor(func() any {
		builds.Add(1)
		return &Counter{N: 7}
	}))
	ins := newInstances(t, map[string]*class.Definition{"app.Counter": def}, nil)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = ins.Default("app.Counter")
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), builds.Load())
	assert.Equal(t, Counter{N: 7}, ins.Default("app.Counter"))
}

func TestDefault_NilBuildIsRetried(t *testing.T) {
	var calls atomic.Int32
	type Lazy struct{}
	def := class.Define[Lazy](class.WithFactory(func() any {
		if calls.Add(1) == 1 {
			return nil
		}
		return &Lazy{}
	}))
	ins := newInstances(t, map[string]*class.Definition{"app.Lazy": def}, nil)

	assert.Nil(t, ins.Default("app.Lazy"))
	assert.Equal(t, Lazy{}, ins.Default("app.Lazy"))
	assert.Equal(t, Lazy{}, ins.Default("app.Lazy"))
	assert.Equal(t, int32(2), calls.Load())
}

func TestFreeze(t *testing.T) {
	assert.Equal(t, 3, instance.Freeze(3))
	var nilPtr *Widget
	assert.Equal(t, nilPtr, instance.Freeze(nilPtr))
	assert.Equal(t, Widget{Label: "x"}, instance.Freeze(&Widget{Label: "x"}))
}
