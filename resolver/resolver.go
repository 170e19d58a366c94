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

package resolver

import (
	"reflect"

	"go.uber.org/zap"

	"dirpx.dev/clsx/apis"
	"dirpx.dev/clsx/class"
	uref "dirpx.dev/clsx/utils/reflect"
)

// New constructs an apis.Resolver that tries the given strategies in order.
// Nil strategies are ignored. The returned resolver is safe for concurrent use
// provided strategies themselves are safe for concurrent TryResolve calls.
func New(log *zap.Logger, strategies ...apis.Strategy) apis.Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	// Filter out nils to avoid nil-interface panics on call sites.
	out := make([]apis.Strategy, 0, len(strategies))
	for _, s := range strategies {
		if s != nil {
			out = append(out, s)
		}
	}
	return chain{strats: out, log: log}
}

// chain is an immutable, order-preserving resolver over a set of strategies.
type chain struct {
	strats []apis.Strategy
	log    *zap.Logger
}

// Resolve names v. Empty values are "null"; a definition or reflect.Type is
// named as the class itself; anything else is named by its type.
// Returns an empty string if no strategy produced a name.
func (r chain) Resolve(v any, cfg apis.Config) string {
	if uref.IsEmpty(v) {
		return apis.NullName
	}
	switch x := v.(type) {
	case *class.Definition:
		return r.run(apis.Subject{Type: x.Type(), Definition: x}, cfg)
	case reflect.Type:
		return r.ResolveType(x, cfg)
	}
	t, err := uref.Indirect(reflect.TypeOf(v), cfg.MaxUnwrap)
	if err != nil {
		r.unresolved(reflect.TypeOf(v), "", cfg, err)
		return ""
	}
	return r.run(apis.Subject{Value: v, Type: t, Definition: class.For(t)}, cfg)
}

// ResolveType names t. Strategies that need an instance are skipped naturally.
// Returns an empty string if no strategy produced a name.
func (r chain) ResolveType(t reflect.Type, cfg apis.Config) string {
	if t == nil {
		return apis.NullName
	}
	nt, err := uref.Indirect(t, cfg.MaxUnwrap)
	if err != nil {
		r.unresolved(t, "", cfg, err)
		return ""
	}
	return r.run(apis.Subject{Type: nt, Definition: class.For(nt)}, cfg)
}

// run executes strategies in order until one handles the subject.
func (r chain) run(s apis.Subject, cfg apis.Config) string {
	if s.Definition == nil {
		r.unresolved(s.Type, "", cfg, nil)
		return ""
	}
	for _, st := range r.strats {
		if name, ok := st.TryResolve(s, cfg); ok {
			return name
		}
	}
	r.unresolved(s.Type, s.Definition.Name(), cfg, nil)
	return ""
}

// unresolved is the single diagnostic sink for names that cannot be determined.
func (r chain) unresolved(t reflect.Type, bare string, cfg apis.Config, err error) {
	if !cfg.WarnUnresolved {
		return
	}
	fields := []zap.Field{zap.String("bare", bare)}
	if t != nil {
		fields = append(fields, zap.Stringer("type", t))
	}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	r.log.Warn("class name unresolved; register it or mount it under a known namespace", fields...)
}
