// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/walteh/keystamp/pkg/config"
	"github.com/walteh/keystamp/pkg/policy"
)

// 📋 newPlanCmd creates the plan command
func newPlanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: "Show the changes keystamp would make without writing",
		Long: `Plan runs the same pipeline as keystamp but prints a unified diff for
every file that would change. Nothing is written.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnnotate(cmd.Context(), cmd.OutOrStdout(), true)
		},
	}
}

// 🔑 newPolicyCmd creates the policy command
func newPolicyCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "policy",
		Short: "List the compiled-in key policy",
		Long: `Policy prints the identity overrides and the category mapping. The default
table is for reading; hcl, yaml and json emit a policy document that parses
back into the same tables.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tables := policy.Default()
			if format != "table" {
				return config.WritePolicy(cmd.OutOrStdout(), format, tables.Document())
			}

			rows := [][]string{{"match", "record id", "provider", "content type", "model", "key"}}
			for _, e := range tables.Entries() {
				rows = append(rows, []string{
					e.Source.String(),
					e.RecordID,
					e.Category.Provider,
					e.Category.ContentType,
					e.Model,
					e.Key,
				})
			}
			return newReporter(cmd.Context(), cmd.OutOrStdout()).Table(rows)
		},
	}

	cmd.Flags().StringVarP(&format, "output", "o", "table",
		fmt.Sprintf("output format, table or one of %s", strings.Join(config.PolicyFormats, ", ")))

	return cmd
}

// 🚀 newVersionCmd creates the version command
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprint(cmd.OutOrStdout(), FormatVersion())
			return err
		},
	}
}
