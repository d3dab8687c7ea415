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
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/keystamp/pkg/config"
	"github.com/walteh/keystamp/pkg/log"
	"github.com/walteh/keystamp/pkg/operation"
	"github.com/walteh/keystamp/pkg/policy"
	"github.com/walteh/keystamp/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// newRootCmd creates the keystamp command tree
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keystamp",
		Short: "Stamp use_api_key into locked model definitions",
		Long: `keystamp walks the locked model definitions and inserts a use_api_key
declaration after each contentType. The key comes from the record id override
table first and the provider/contentType table second. Files that already
declare use_api_key are left alone, so the command can be re-run safely.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnnotate(cmd.Context(), cmd.OutOrStdout(), false)
		},
	}

	cmd.AddCommand(
		newPlanCmd(),
		newPolicyCmd(),
		newVersionCmd(),
	)

	return cmd
}

// newReporter creates the console reporter. Only warnings are mirrored to
// the diagnostic logger since the console already carries every line.
func newReporter(ctx context.Context, out io.Writer) *log.Logger {
	return log.New(out, zerolog.Ctx(ctx).Level(zerolog.WarnLevel))
}

// 🏃 runAnnotate runs the migration over the default tree
func runAnnotate(ctx context.Context, out io.Writer, dryRun bool) error {
	cfg := config.Default()
	reporter := newReporter(ctx, out)
	ctx = log.NewContext(ctx, reporter)

	if dryRun {
		reporter.Header(fmt.Sprintf("planning %s", cfg))
	} else {
		reporter.Header(fmt.Sprintf("annotating %s", cfg))
	}

	tally, err := annotate(ctx, cfg, dryRun)
	if err != nil {
		reporter.Errorf("%v", err)
		return err
	}

	if err := reporter.Summary(tally); err != nil {
		return errors.Errorf("printing summary: %w", err)
	}

	switch {
	case tally.Total() == 0:
		reporter.Info("no model files found")
	case dryRun && tally.Updated > 0:
		reporter.Infof("dry run, %d files not written", tally.Updated)
	case !dryRun:
		reporter.Successf("annotated %d of %d files", tally.Updated, tally.Total())
	}

	return nil
}

// annotate runs the operation with the reporter carried by ctx
func annotate(ctx context.Context, cfg *config.Config, dryRun bool) (*status.Tally, error) {
	op, err := operation.NewAnnotateOperation(operation.Options{
		Config: cfg,
		Policy: policy.Default(),
		DryRun: dryRun,
	})
	if err != nil {
		return nil, errors.Errorf("creating annotate operation: %w", err)
	}

	tally, err := op.Execute(ctx)
	if err != nil {
		return nil, errors.Errorf("annotating model files: %w", err)
	}
	return tally, nil
}
