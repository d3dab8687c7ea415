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

package operation_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/keystamp/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

func TestCandidates(t *testing.T) {
	ctx, cfg, _ := createTestEnv(t, map[string]string{
		"b.ts":                        "",
		"kie/a.ts":                    "",
		"kie/index.ts":                "",
		"getKieApiKey.ts":             "",
		"runware/notes.md":            "",
		"runware/legacy.js":           "",
		"sub/dir/d.ts":                "",
		"ModelFileGenerator.ts":       "",
		"odd.ts/inside.ts":            "",
		"runware/getRunwareApiKey.ts": "",
	})

	files, err := operation.Candidates(ctx, cfg)
	require.NoError(t, err)

	want := []string{
		filepath.Join(cfg.Root, "b.ts"),
		filepath.Join(cfg.Root, "kie", "a.ts"),
		filepath.Join(cfg.Root, "odd.ts", "inside.ts"),
		filepath.Join(cfg.Root, "sub", "dir", "d.ts"),
	}
	assert.Equal(t, want, files)
}

func TestCandidates_EmptyRoot(t *testing.T) {
	ctx, cfg, _ := createTestEnv(t, nil)

	files, err := operation.Candidates(ctx, cfg)
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestCandidates_RootErrors(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, root string) string
	}{
		{
			name: "missing_root",
			setup: func(t *testing.T, root string) string {
				return filepath.Join(root, "missing")
			},
		},
		{
			name: "root_is_a_file",
			setup: func(t *testing.T, root string) string {
				p := filepath.Join(root, "file.ts")
				require.NoError(t, os.WriteFile(p, nil, 0o644))
				return p
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cfg, _ := createTestEnv(t, nil)
			cfg.Root = tt.setup(t, cfg.Root)

			files, err := operation.Candidates(ctx, cfg)
			require.Error(t, err)
			assert.Nil(t, files)
			assert.True(t, errors.Is(err, operation.ErrRootNotFound))
		})
	}
}
