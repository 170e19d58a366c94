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

package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"dirpx.dev/clsx"
	"dirpx.dev/clsx/apis"
	"dirpx.dev/clsx/class"
)

// classEntry is the YAML view of a named definition.
type classEntry struct {
	Name      string `yaml:"name"`
	Found     bool   `yaml:"found"`
	Class     string `yaml:"class,omitempty"`
	Type      string `yaml:"type,omitempty"`
	Builtin   bool   `yaml:"builtin,omitempty"`
	Qualified string `yaml:"qualified,omitempty"`
}

func describe(name string, def *class.Definition) classEntry {
	e := classEntry{Name: name, Found: def != nil}
	if def == nil {
		return e
	}
	e.Class = def.Name()
	e.Type = def.Type().String()
	e.Builtin = def.Builtin()
	e.Qualified = clsx.QualifiedName(def)
	return e
}

func writeYAML(cmd *cobra.Command, v any) error {
	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func newScopeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scope",
		Short: "List the classes mounted in the root scope",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries := clsx.Scope().Entries()
			out := make([]classEntry, 0, len(entries))
			for _, e := range entries {
				out = append(out, describe(e.Name, e.Definition))
			}
			return writeYAML(cmd, out)
		},
	}
}

func newResolveCmd() *cobra.Command {
	var noCache bool
	cmd := &cobra.Command{
		Use:   "resolve <name>...",
		Short: "Resolve qualified names to classes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := make([]classEntry, 0, len(args))
			for _, name := range args {
				out = append(out, describe(name, clsx.ResolveDefinition(name, !noCache)))
			}
			return writeYAML(cmd, out)
		},
	}
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "walk the scope even for cached names")
	return cmd
}

func newNamespacesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "namespaces",
		Short: "Show the namespace search list and explicit registrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			view := struct {
				Namespaces    []string     `yaml:"namespaces"`
				Registrations []apis.Entry `yaml:"registrations"`
			}{
				Namespaces:    clsx.Namespaces(),
				Registrations: clsx.Entries(),
			}
			if view.Namespaces == nil {
				view.Namespaces = []string{}
			}
			if view.Registrations == nil {
				view.Registrations = []apis.Entry{}
			}
			return writeYAML(cmd, view)
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "clsx version: %s\n", Version)
			fmt.Fprintf(cmd.OutOrStdout(), "Git commit: %s\n", GitCommit)
			fmt.Fprintf(cmd.OutOrStdout(), "Go version: %s\n", runtime.Version())
		},
	}
}
