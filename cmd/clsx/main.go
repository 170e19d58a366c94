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
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"dirpx.dev/clsx"
	"dirpx.dev/clsx/builder"
	"dirpx.dev/clsx/config"
)

var (
	// Version information - will be set at build time
	Version   = "dev"
	GitCommit = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newRootCmd assembles the command tree. Flags are bound per tree so tests
// can build fresh ones.
func newRootCmd() *cobra.Command {
	var (
		cfgPath string
		verbose bool
	)

	rootCmd := &cobra.Command{
		Use:   "clsx",
		Short: "Inspect the clsx class registry",
		Long: `clsx prints the classes mounted in the root scope, the namespace
search list and the result of resolving qualified names.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			clsx.SetBuilder(builder.New(builder.WithLogger(newLogger(verbose))))
			clsx.SetConfig(cfg)
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "config file (default ./clsx.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log resolution details to stderr")

	rootCmd.AddCommand(newScopeCmd())
	rootCmd.AddCommand(newResolveCmd())
	rootCmd.AddCommand(newNamespacesCmd())
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

// newLogger returns a development logger when verbose, a no-op one otherwise.
func newLogger(verbose bool) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	log, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return log.Named("clsx")
}
