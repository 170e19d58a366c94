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

package registry

import (
	"sort"
	"sync"

	"github.com/pkg/errors"

	"dirpx.dev/clsx/apis"
	"dirpx.dev/clsx/class"
)

var (
	// ErrNilDefinition is returned when a nil definition is provided.
	ErrNilDefinition = errors.New("clsx(registry): nil definition provided")
	// ErrEmptyName is returned when no name is given and none can be derived.
	ErrEmptyName = errors.New("clsx(registry): empty name provided")
	// ErrReservedName is returned when registering under apis.NullName.
	ErrReservedName = errors.New("clsx(registry): reserved name")
)

// New constructs a Registry seeded with cfg.Namespaces.
func New(cfg apis.Config) apis.Registry {
	r := &registry{
		names: make(map[string]*class.Definition),
		tags:  make(map[*class.Definition]string),
	}
	for _, ns := range cfg.Namespaces {
		r.AddNamespace(ns)
	}
	return r
}

// registry is a mutex-guarded Registry.
type registry struct {
	// mu guards every field below.
	mu sync.RWMutex
	// names maps qualified names to definitions.
	names map[string]*class.Definition
	// tags maps a definition to its most recently registered name.
	tags map[*class.Definition]string
	// namespaces is the ordered, de-duplicated namespace list.
	namespaces []string
}

// Ensure registry implements apis.Registry.
var _ apis.Registry = (*registry)(nil)

// Register maps name to def and stamps it as def's class tag.
// Registering the same pair again is a no-op; another name adds an alias
// and moves the tag.
func (r *registry) Register(def *class.Definition, name string) error {
	// Validate inputs early.
	if def == nil {
		return ErrNilDefinition
	}
	if name == "" {
		name = def.Name()
	}
	if name == "" {
		return ErrEmptyName
	}
	if name == apis.NullName {
		return errors.Wrapf(ErrReservedName, "register %s", def)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.names[name] = def
	r.tags[def] = name
	return nil
}

// Lookup returns the definition registered under name.
func (r *registry) Lookup(name string) (*class.Definition, bool) {
	if name == "" {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.names[name]
	return def, ok
}

// Tag returns the most recently registered name of def.
func (r *registry) Tag(def *class.Definition) (string, bool) {
	if def == nil {
		return "", false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	name, ok := r.tags[def]
	return name, ok
}

// AddNamespace appends ns unless it is empty or already present.
func (r *registry) AddNamespace(ns string) {
	if ns == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, v := range r.namespaces {
		if v == ns {
			return
		}
	}
	r.namespaces = append(r.namespaces, ns)
}

// Namespaces returns a copy of the namespace list in insertion order.
func (r *registry) Namespaces() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.namespaces))
	copy(out, r.namespaces)
	return out
}

// Entries returns a snapshot of the name table sorted by name.
func (r *registry) Entries() []apis.Entry {
	r.mu.RLock()
	entries := make([]apis.Entry, 0, len(r.names))
	for name, def := range r.names {
		entries = append(entries, apis.Entry{Name: name, Definition: def})
	}
	r.mu.RUnlock()
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries
}

// Count returns the number of registered names.
func (r *registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.names)
}

// Reset clears names, tags and namespaces.
func (r *registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.names = make(map[string]*class.Definition)
	r.tags = make(map[*class.Definition]string)
	r.namespaces = nil
}
