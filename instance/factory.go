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

// Package instance builds instances from class definitions and keeps one
// frozen default instance per qualified name.
package instance

import (
	"dirpx.dev/clsx/class"
)

// Create builds a fresh instance of def. A nil def yields nil. A static
// factory override, when installed, replaces construction entirely.
// Create performs no caching.
func Create(def *class.Definition) any {
	if def == nil {
		return nil
	}
	if factory, ok := def.Factory(); ok {
		return factory()
	}
	return def.New()
}

// CreateAs is Create with a type assertion to T.
func CreateAs[T any](def *class.Definition) (T, bool) {
	v, ok := Create(def).(T)
	return v, ok
}
