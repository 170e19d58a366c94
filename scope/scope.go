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

// Package scope provides the root object qualified names are resolved
// against: a tree whose inner nodes are namespaces and whose leaves are
// class definitions, populated explicitly at startup.
package scope

import (
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"dirpx.dev/clsx/apis"
	"dirpx.dev/clsx/class"
)

var (
	// ErrEmptyPath is returned when an empty path or path segment is provided.
	ErrEmptyPath = errors.New("clsx(scope): empty path")
	// ErrNilDefinition is returned when a nil definition is mounted.
	ErrNilDefinition = errors.New("clsx(scope): nil definition")
	// ErrReservedName is returned when a path equals apis.NullName.
	ErrReservedName = errors.New("clsx(scope): reserved name")
	// ErrPathConflict indicates that an intermediate path segment is
	// already occupied by a definition.
	ErrPathConflict = errors.New("clsx(scope): path segment is a definition")
)

// Option configures a Scope at construction time.
type Option func(*Scope)

// WithBuiltins mounts the shared built-in definitions under their bare names.
func WithBuiltins() Option {
	return func(s *Scope) {
		for _, def := range class.Builtins() {
			s.entries[def.Name()] = node{def: def}
		}
	}
}

// New constructs an empty Scope.
func New(opts ...Option) *Scope {
	s := &Scope{entries: make(map[string]node)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var (
	global     *Scope
	globalOnce sync.Once
)

// Global returns the process-wide root scope with built-ins mounted.
func Global() *Scope {
	globalOnce.Do(func() {
		global = New(WithBuiltins())
	})
	return global
}

// Scope is a namespace: every key maps to either a definition or a nested Scope.
type Scope struct {
	mu      sync.RWMutex
	entries map[string]node
}

// node holds exactly one of def or sub.
type node struct {
	def *class.Definition
	sub *Scope
}

// Ensure Scope implements apis.Scope.
var _ apis.Scope = (*Scope)(nil)

// Lookup returns the definition stored directly under the top-level key name.
// The key is matched verbatim, dots included.
func (s *Scope) Lookup(name string) (*class.Definition, bool) {
	if name == "" {
		return nil, false
	}
	s.mu.RLock()
	n, ok := s.entries[name]
	s.mu.RUnlock()
	if !ok || n.def == nil {
		return nil, false
	}
	return n.def, true
}

// Walk follows path one segment at a time. It fails the moment a segment is
// missing or a definition is found before the last segment, and succeeds
// only if the last segment is a definition.
func (s *Scope) Walk(path string) (*class.Definition, bool) {
	if path == "" {
		return nil, false
	}
	segments := strings.Split(path, ".")
	cur := s
	for i, seg := range segments {
		cur.mu.RLock()
		n, ok := cur.entries[seg]
		cur.mu.RUnlock()
		if !ok {
			return nil, false
		}
		if i == len(segments)-1 {
			return n.def, n.def != nil
		}
		if n.sub == nil {
			return nil, false
		}
		cur = n.sub
	}
	return nil, false
}

// Sub returns the namespace mounted at path, if any.
func (s *Scope) Sub(path string) (*Scope, bool) {
	if path == "" {
		return nil, false
	}
	cur := s
	for _, seg := range strings.Split(path, ".") {
		cur.mu.RLock()
		n, ok := cur.entries[seg]
		cur.mu.RUnlock()
		if !ok || n.sub == nil {
			return nil, false
		}
		cur = n.sub
	}
	return cur, true
}

// Set mounts def at path, creating intermediate namespaces as needed.
// An existing definition at the final segment is replaced; a namespace there
// is replaced too, dropping everything below it.
func (s *Scope) Set(path string, def *class.Definition) error {
	if def == nil {
		return ErrNilDefinition
	}
	if path == apis.NullName {
		return ErrReservedName
	}
	segments, err := split(path)
	if err != nil {
		return err
	}

	cur := s
	for i, seg := range segments[:len(segments)-1] {
		cur.mu.Lock()
		n, ok := cur.entries[seg]
		switch {
		case !ok:
			n = node{sub: New()}
			cur.entries[seg] = n
		case n.def != nil:
			cur.mu.Unlock()
			return errors.Wrapf(ErrPathConflict, "mount %q at %q", path, strings.Join(segments[:i+1], "."))
		}
		cur.mu.Unlock()
		cur = n.sub
	}

	cur.mu.Lock()
	cur.entries[segments[len(segments)-1]] = node{def: def}
	cur.mu.Unlock()
	return nil
}

// Delete removes whatever is mounted at path and reports whether anything was removed.
func (s *Scope) Delete(path string) bool {
	segments, err := split(path)
	if err != nil {
		return false
	}
	cur := s
	if len(segments) > 1 {
		parent, ok := s.Sub(strings.Join(segments[:len(segments)-1], "."))
		if !ok {
			return false
		}
		cur = parent
	}
	last := segments[len(segments)-1]

	cur.mu.Lock()
	defer cur.mu.Unlock()
	if _, ok := cur.entries[last]; !ok {
		return false
	}
	delete(cur.entries, last)
	return true
}

// Entries returns every mounted definition with its full dotted path,
// sorted by path.
func (s *Scope) Entries() []apis.Entry {
	var out []apis.Entry
	s.collect("", &out)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (s *Scope) collect(prefix string, out *[]apis.Entry) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for key, n := range s.entries {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}
		if n.def != nil {
			*out = append(*out, apis.Entry{Name: full, Definition: n.def})
			continue
		}
		n.sub.collect(full, out)
	}
}

func split(path string) ([]string, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	segments := strings.Split(path, ".")
	for _, seg := range segments {
		if seg == "" {
			return nil, errors.Wrapf(ErrEmptyPath, "path %q", path)
		}
	}
	return segments, nil
}
