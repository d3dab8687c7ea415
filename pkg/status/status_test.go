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

package status

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutcome(t *testing.T) {
	tests := []struct {
		name        string
		outcome     Outcome
		wantString  string
		wantSkipped bool
	}{
		{name: "annotated", outcome: OutcomeAnnotated, wantString: "annotated", wantSkipped: false},
		{name: "already_annotated", outcome: OutcomeAlreadyAnnotated, wantString: "already annotated", wantSkipped: true},
		{name: "ineligible", outcome: OutcomeIneligible, wantString: "not a model", wantSkipped: true},
		{name: "unresolved", outcome: OutcomeUnresolved, wantString: "no mapping", wantSkipped: true},
		{name: "unknown", outcome: OutcomeUnknown, wantString: "unknown", wantSkipped: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantString, tt.outcome.String())
			assert.Equal(t, tt.wantSkipped, tt.outcome.Skipped())
		})
	}
}

func TestTally(t *testing.T) {
	tally := NewTally()
	tally.Record(OutcomeAnnotated)
	tally.Record(OutcomeAnnotated)
	tally.Record(OutcomeAlreadyAnnotated)
	tally.Record(OutcomeIneligible)
	tally.Record(OutcomeUnresolved)
	tally.Record(OutcomeUnresolved)

	assert.Equal(t, 2, tally.Updated)
	assert.Equal(t, 4, tally.Skipped)
	assert.Equal(t, 6, tally.Total())
	assert.Equal(t, 2, tally.Count(OutcomeAnnotated))
	assert.Equal(t, 1, tally.Count(OutcomeAlreadyAnnotated))
	assert.Equal(t, 1, tally.Count(OutcomeIneligible))
	assert.Equal(t, 2, tally.Count(OutcomeUnresolved))
}

func TestTally_ZeroValue(t *testing.T) {
	var tally Tally
	assert.Zero(t, tally.Count(OutcomeAnnotated))
	tally.Record(OutcomeIneligible)
	assert.Equal(t, 1, tally.Skipped)
	assert.Equal(t, 1, tally.Count(OutcomeIneligible))
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestWriteFileAtomic(t *testing.T) {
	tests := []struct {
		name        string
		setup       func(t *testing.T, dir string) string
		content     string
		errContains string
		check       func(t *testing.T, dir, path string)
	}{
		{
			name: "replaces_existing_file_and_keeps_mode",
			setup: func(t *testing.T, dir string) string {
				path := filepath.Join(dir, "model.ts")
				require.NoError(t, os.WriteFile(path, []byte("old"), 0o600))
				return path
			},
			content: "new",
			check: func(t *testing.T, dir, path string) {
				got, err := os.ReadFile(path)
				require.NoError(t, err)
				assert.Equal(t, "new", string(got))

				info, err := os.Stat(path)
				require.NoError(t, err)
				assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

				assert.Equal(t, []string{"model.ts"}, listDir(t, dir), "no temp file should remain")
			},
		},
		{
			name: "creates_missing_file",
			setup: func(t *testing.T, dir string) string {
				return filepath.Join(dir, "fresh.ts")
			},
			content: "content",
			check: func(t *testing.T, dir, path string) {
				got, err := os.ReadFile(path)
				require.NoError(t, err)
				assert.Equal(t, "content", string(got))
				assert.Equal(t, []string{"fresh.ts"}, listDir(t, dir))
			},
		},
		{
			name: "missing_directory",
			setup: func(t *testing.T, dir string) string {
				return filepath.Join(dir, "nope", "model.ts")
			},
			content:     "content",
			errContains: "creating temp file",
			check: func(t *testing.T, dir, path string) {
				assert.Empty(t, listDir(t, dir))
			},
		},
		{
			name: "rename_failure_cleans_up",
			setup: func(t *testing.T, dir string) string {
				path := filepath.Join(dir, "model.ts")
				require.NoError(t, os.Mkdir(path, 0o755))
				return path
			},
			content:     "content",
			errContains: "renaming temp file",
			check: func(t *testing.T, dir, path string) {
				assert.Equal(t, []string{"model.ts"}, listDir(t, dir), "temp file should be removed")
				info, err := os.Stat(path)
				require.NoError(t, err)
				assert.True(t, info.IsDir(), "target should be untouched")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := tt.setup(t, dir)

			err := WriteFileAtomic(context.Background(), path, []byte(tt.content))
			if tt.errContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
			} else {
				require.NoError(t, err)
			}

			tt.check(t, dir, path)
		})
	}
}

func TestDiskStore(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "model.ts")

	var store FileStore = DiskStore{}

	_, err := store.ReadFile(ctx, path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading file")

	require.NoError(t, store.WriteFileAtomic(ctx, path, []byte("x")))
	got, err := store.ReadFile(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, "x", string(got))
}
