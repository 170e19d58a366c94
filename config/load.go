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
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"dirpx.dev/clsx/apis"
)

// EnvPrefix prefixes environment overrides, e.g. CLSX_MAX_UNWRAP=4.
const EnvPrefix = "CLSX"

// Load reads an apis.Config from path (YAML, JSON or TOML by extension).
// An empty path looks for clsx.yaml in the working directory and falls back
// to the defaults plus environment overrides when there is none. An explicit
// path that cannot be read is an error.
func Load(path string) (apis.Config, error) {
	v := viper.New()

	def := DefaultConfig()
	v.SetDefault("include_builtins", def.IncludeBuiltins)
	v.SetDefault("max_unwrap", def.MaxUnwrap)
	v.SetDefault("warn_unresolved", def.WarnUnresolved)
	v.SetDefault("namespaces", []string{})

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("clsx")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return apis.Config{}, errors.Wrapf(err, "clsx(config): read %q", path)
		}
	}

	var raw apis.Config
	if err := v.Unmarshal(&raw); err != nil {
		return apis.Config{}, errors.Wrap(err, "clsx(config): unmarshal")
	}

	// Re-apply through the options so the same normalization rules hold.
	return NewConfig(
		WithIncludeBuiltins(raw.IncludeBuiltins),
		WithMaxUnwrap(raw.MaxUnwrap),
		WithWarnUnresolved(raw.WarnUnresolved),
		WithNamespaces(raw.Namespaces...),
	), nil
}
