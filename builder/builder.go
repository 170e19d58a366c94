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

package builder

import (
	"go.uber.org/zap"

	"dirpx.dev/clsx/apis"
	"dirpx.dev/clsx/instance"
	"dirpx.dev/clsx/lookup"
	"dirpx.dev/clsx/registry"
	"dirpx.dev/clsx/resolver"
	"dirpx.dev/clsx/strategy"
)

// Option configures the default builder.
type Option func(*builder)

// WithLogger sets the logger handed to every built component.
// By default the global zap logger is used, named "clsx".
func WithLogger(log *zap.Logger) Option {
	return func(b *builder) {
		b.log = log
	}
}

// WithFatal sets the handler for programming errors (unknown class on
// instance requests). Defaults to instance.Panic.
func WithFatal(fatal instance.Fatal) Option {
	return func(b *builder) {
		b.fatal = fatal
	}
}

// New creates and returns a new instance of an apis.Builder.
func New(opts ...Option) apis.Builder {
	b := &builder{}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// builder holds the ambient dependencies shared by the components it builds.
type builder struct {
	log   *zap.Logger
	fatal instance.Fatal
}

// logger resolves lazily so zap.ReplaceGlobals before a rebuild is honored.
func (b *builder) logger() *zap.Logger {
	if b.log != nil {
		return b.log
	}
	return zap.L().Named("clsx")
}

// BuildRegistry builds and returns a new apis.Registry based on the provided configuration
// and pre-existing registry. If a pre-existing registry is provided, its names, namespaces
// and class tags are copied into the new registry. Namespaces from cfg are appended after
// the previous ones so an existing search order is never changed.
func (b *builder) BuildRegistry(cfg apis.Config, preg apis.Registry, _ any) apis.Registry {
	if preg == nil {
		return registry.New(cfg)
	}
	nreg := registry.New(apis.Config{})
	for _, ns := range preg.Namespaces() {
		nreg.AddNamespace(ns)
	}
	for _, ns := range cfg.Namespaces {
		nreg.AddNamespace(ns)
	}
	entries := preg.Entries()
	for _, e := range entries {
		_ = nreg.Register(e.Definition, e.Name)
	}
	// Entries come sorted by name; re-stamp so each tag matches the old registry.
	for _, e := range entries {
		if tag, ok := preg.Tag(e.Definition); ok && tag == e.Name {
			_ = nreg.Register(e.Definition, e.Name)
		}
	}
	return nreg
}

// BuildDefinitions builds the name -> definition lookup with a fresh cache.
func (b *builder) BuildDefinitions(_ apis.Config, sc apis.Scope, reg apis.Registry, _ any) apis.Definitions {
	return lookup.New(sc, reg, b.logger())
}

// BuildResolver builds and returns a new apis.Resolver chaining, in order,
// the class tag, apis.Namer, the root scope and the namespace search.
func (b *builder) BuildResolver(_ apis.Config, sc apis.Scope, reg apis.Registry, defs apis.Definitions, _ apis.Resolver, _ any) apis.Resolver {
	log := b.logger()
	return resolver.New(log,
		strategy.NewTagStrategy(reg),
		strategy.NewNamerStrategy(),
		strategy.NewGlobalStrategy(sc),
		strategy.NewNamespaceStrategy(reg, defs, log),
	)
}

// BuildInstances builds the instance provider and its default-instance cache.
func (b *builder) BuildInstances(_ apis.Config, defs apis.Definitions, _ any) apis.Instances {
	return instance.New(defs, b.logger(), b.fatal)
}
