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

// Package cache wraps github.com/patrickmn/go-cache with a typed, never
// expiring memo used for lookups whose results are stable for the process
// lifetime.
package cache

import (
	gocache "github.com/patrickmn/go-cache"
)

// New initializes a memo whose entries never expire and are never evicted.
func New[V any]() *Memo[V] {
	return &Memo[V]{cache: gocache.New(gocache.NoExpiration, 0)}
}

// Memo is a typed, concurrency-safe string-keyed memo.
type Memo[V any] struct {
	cache *gocache.Cache
}

// Get retrieves an item by key.
func (m *Memo[V]) Get(key string) (V, bool) {
	var zero V

	value, found := m.cache.Get(key)
	if !found {
		return zero, false
	}
	v, ok := value.(V)
	if !ok {
		return zero, false
	}
	return v, true
}

// Set stores value under key, replacing any previous value.
func (m *Memo[V]) Set(key string, value V) {
	m.cache.Set(key, value, gocache.NoExpiration)
}

// Delete removes keys from the memo.
func (m *Memo[V]) Delete(keys ...string) {
	for _, key := range keys {
		m.cache.Delete(key)
	}
}

// Flush removes every item.
func (m *Memo[V]) Flush() {
	m.cache.Flush()
}

// Len returns the number of memoized items.
func (m *Memo[V]) Len() int {
	return m.cache.ItemCount()
}
