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
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/keystamp/pkg/config"
	"gitlab.com/tozd/go/errors"
)

// ErrRootNotFound is returned when the model root is missing or not a directory
var ErrRootNotFound = errors.Base("model root not found")

// 🔍 Candidates lists every file under the root with the configured
// extension, minus excluded base names, in lexical order
func Candidates(ctx context.Context, cfg *config.Config) ([]string, error) {
	logger := zerolog.Ctx(ctx)

	info, err := os.Stat(cfg.Root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Errorf("%w: %s", ErrRootNotFound, cfg.Root)
		}
		return nil, errors.Errorf("checking root: %w", err)
	}
	if !info.IsDir() {
		return nil, errors.Errorf("%w: %s is not a directory", ErrRootNotFound, cfg.Root)
	}

	matches, err := doublestar.Glob(os.DirFS(cfg.Root), "**/*"+cfg.Extension,
		doublestar.WithFilesOnly(),
		doublestar.WithFailOnIOErrors(),
	)
	if err != nil {
		return nil, errors.Errorf("walking %s: %w", cfg.Root, err)
	}

	sort.Strings(matches)

	files := make([]string, 0, len(matches))
	for _, m := range matches {
		if cfg.IsExcluded(path.Base(m)) {
			logger.Debug().Str("file", m).Msg("excluded")
			continue
		}
		files = append(files, filepath.Join(cfg.Root, filepath.FromSlash(m)))
	}

	logger.Debug().Str("root", cfg.Root).Int("matched", len(matches)).Int("candidates", len(files)).Msg("listed candidates")

	return files, nil
}
