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

package operation

import (
	"context"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/walteh/keystamp/pkg/config"
	"github.com/walteh/keystamp/pkg/log"
	"github.com/walteh/keystamp/pkg/model"
	"github.com/walteh/keystamp/pkg/patch"
	"github.com/walteh/keystamp/pkg/policy"
	"github.com/walteh/keystamp/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 🔧 Options contains configuration for the annotate operation
type Options struct {
	// Config selects the files and the declaration to insert
	Config *config.Config
	// Policy resolves keys
	Policy *policy.Tables
	// Logger reports per-file outcomes, defaults to the reporter carried by
	// the context passed to Execute
	Logger *log.Logger
	// Files reads and writes model files, defaults to the local disk
	Files status.FileStore
	// DryRun prints diffs instead of writing
	DryRun bool
}

// 🏷️ AnnotateOperation stamps the resolved key into every candidate file
type AnnotateOperation struct {
	config   *config.Config
	policy   *policy.Tables
	reporter *log.Logger
	files    status.FileStore
	patcher  *patch.Patcher
	dryRun   bool
}

// 🏭 NewAnnotateOperation creates a new annotate operation
func NewAnnotateOperation(opts Options) (*AnnotateOperation, error) {
	if opts.Config == nil {
		return nil, errors.Errorf("config is required")
	}
	if opts.Policy == nil {
		return nil, errors.Errorf("policy is required")
	}
	if err := opts.Config.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	patcher, err := patch.New(opts.Config)
	if err != nil {
		return nil, errors.Errorf("creating patcher: %w", err)
	}

	files := opts.Files
	if files == nil {
		files = status.DiskStore{}
	}

	return &AnnotateOperation{
		config:   opts.Config,
		policy:   opts.Policy,
		reporter: opts.Logger,
		files:    files,
		patcher:  patcher,
		dryRun:   opts.DryRun,
	}, nil
}

// 🏃 Execute processes every candidate, one file at a time. A read or write
// failure stops the run; files handled before it keep their changes.
func (op *AnnotateOperation) Execute(ctx context.Context) (*status.Tally, error) {
	logger := zerolog.Ctx(ctx)

	reporter := op.reporter
	if reporter == nil {
		reporter = log.FromContext(ctx)
	}

	files, err := Candidates(ctx, op.config)
	if err != nil {
		return nil, errors.Errorf("listing candidates: %w", err)
	}

	logger.Debug().Str("config", op.config.String()).Bool("dry_run", op.dryRun).Int("files", len(files)).Msg("starting annotate")

	tally := status.NewTally()
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return tally, errors.Errorf("run cancelled: %w", err)
		}

		outcome, err := op.processFile(ctx, reporter, file)
		if err != nil {
			return tally, errors.Errorf("processing %s: %w", file, err)
		}
		tally.Record(outcome)
	}

	return tally, nil
}

// 📄 processFile moves one file to its terminal state
func (op *AnnotateOperation) processFile(ctx context.Context, reporter *log.Logger, file string) (status.Outcome, error) {
	logger := zerolog.Ctx(ctx)

	content, err := op.files.ReadFile(ctx, file)
	if err != nil {
		return status.OutcomeUnknown, err
	}

	if model.HasDeclaration(content, op.config.Field) {
		return report(ctx, reporter, log.FileOutcome{Path: file, Outcome: status.OutcomeAlreadyAnnotated}), nil
	}

	fields := model.Extract(content)
	logger.Debug().
		Str("file", file).
		Str("provider", model.Value(fields.Provider)).
		Str("content_type", model.Value(fields.ContentType)).
		Str("record_id", model.Value(fields.RecordID)).
		Msg("extracted fields")

	if !fields.Eligible() {
		return report(ctx, reporter, log.FileOutcome{Path: file, Outcome: status.OutcomeIneligible}), nil
	}

	res := op.policy.Resolve(fields)
	if !res.Resolved() {
		return report(ctx, reporter, log.FileOutcome{
			Path:    file,
			Outcome: status.OutcomeUnresolved,
			Pair:    res.Category.String(),
		}), nil
	}

	logger.Debug().Str("file", file).Str("key", res.Key).Str("source", res.Source.String()).Str("model", res.Model).Msg("resolved key")

	rel, err := filepath.Rel(op.config.Root, file)
	if err != nil {
		rel = file
	}

	result, err := op.patcher.Apply(ctx, filepath.ToSlash(rel), content, res.Key)
	if err != nil {
		return status.OutcomeUnknown, errors.Errorf("patching: %w", err)
	}

	if op.dryRun {
		diff, err := patch.Unified(file, content, result.Content)
		if err != nil {
			return status.OutcomeUnknown, errors.Errorf("rendering diff: %w", err)
		}
		reporter.LogDiff(diff)
		reporter.LogNewline()
	} else if err := op.files.WriteFileAtomic(ctx, file, result.Content); err != nil {
		return status.OutcomeUnknown, errors.Errorf("writing file: %w", err)
	}

	outcome := report(ctx, reporter, log.FileOutcome{
		Path:     file,
		Outcome:  status.OutcomeAnnotated,
		Key:      res.Key,
		Source:   res.Source.String(),
		Rewrites: result.Rewrites,
	})
	reporter.LogReview(ctx, file, op.config.Anchor, result.Review)

	return outcome, nil
}

func report(ctx context.Context, reporter *log.Logger, fo log.FileOutcome) status.Outcome {
	reporter.LogFileOutcome(ctx, fo)
	return fo.Outcome
}
