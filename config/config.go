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

package config

import (
	"dirpx.dev/clsx/apis"
	uref "dirpx.dev/clsx/utils/reflect"
)

const (
	// DefaultIncludeBuiltins represents the default for IncludeBuiltins.
	// When true, built-in definitions resolve to their bare names.
	DefaultIncludeBuiltins = true
	// DefaultMaxUnwrap represents the default for MaxUnwrap.
	// A value of 8 should be sufficient for all practical purposes.
	DefaultMaxUnwrap = uref.DefaultMaxUnwrap
	// DefaultWarnUnresolved represents the default for WarnUnresolved.
	DefaultWarnUnresolved = true
)

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	// Ensure MaxUnwrap is valid.
	if cfg.MaxUnwrap < 0 {
		cfg.MaxUnwrap = DefaultMaxUnwrap
	}
	return cfg
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		IncludeBuiltins: DefaultIncludeBuiltins,
		MaxUnwrap:       DefaultMaxUnwrap,
		WarnUnresolved:  DefaultWarnUnresolved,
	}
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithIncludeBuiltins sets the IncludeBuiltins option.
func WithIncludeBuiltins(include bool) Option {
	return func(c *apis.Config) {
		c.IncludeBuiltins = include
	}
}

// WithMaxUnwrap sets the MaxUnwrap option.
// A negative value resets to the default.
func WithMaxUnwrap(max int) Option {
	return func(c *apis.Config) {
		if max < 0 {
			c.MaxUnwrap = DefaultMaxUnwrap
			return
		}
		c.MaxUnwrap = max
	}
}

// WithWarnUnresolved sets the WarnUnresolved option.
func WithWarnUnresolved(warn bool) Option {
	return func(c *apis.Config) {
		c.WarnUnresolved = warn
	}
}

// WithNamespaces appends namespaces, skipping empty and duplicate entries.
func WithNamespaces(namespaces ...string) Option {
	return func(c *apis.Config) {
		for _, ns := range namespaces {
			if ns == "" || contains(c.Namespaces, ns) {
				continue
			}
			c.Namespaces = append(c.Namespaces, ns)
		}
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
