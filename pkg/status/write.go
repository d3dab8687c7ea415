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
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

const defaultFileMode fs.FileMode = 0o644

// 🗄️ FileStore reads model files and replaces them in place
type FileStore interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
	WriteFileAtomic(ctx context.Context, path string, content []byte) error
}

// 💽 DiskStore is the FileStore backed by the local filesystem
type DiskStore struct{}

var _ FileStore = DiskStore{}

// ReadFile reads the whole file
func (DiskStore) ReadFile(ctx context.Context, path string) ([]byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading file: %w", err)
	}
	return content, nil
}

// WriteFileAtomic replaces the file, see WriteFileAtomic
func (DiskStore) WriteFileAtomic(ctx context.Context, path string, content []byte) error {
	return WriteFileAtomic(ctx, path, content)
}

// 💾 WriteFileAtomic replaces path with content. The content goes to a temp
// file in the same directory first, is synced, and is renamed over path.
// The original file mode is kept. The temp file never outlives a failure.
func WriteFileAtomic(ctx context.Context, path string, content []byte) (err error) {
	logger := zerolog.Ctx(ctx)

	mode := defaultFileMode
	if info, statErr := os.Stat(path); statErr == nil {
		mode = info.Mode().Perm()
	} else if !errors.Is(statErr, fs.ErrNotExist) {
		return errors.Errorf("checking file: %w", statErr)
	}

	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return errors.Errorf("creating temp file: %w", err)
	}
	tempPath := tmp.Name()

	defer func() {
		if err == nil {
			return
		}
		_ = tmp.Close()
		if rmErr := os.Remove(tempPath); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
			logger.Warn().Err(rmErr).Str("temp", tempPath).Msg("removing temp file")
		}
	}()

	if _, err = tmp.Write(content); err != nil {
		return errors.Errorf("writing temp file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return errors.Errorf("syncing temp file: %w", err)
	}
	if err = tmp.Chmod(mode); err != nil {
		return errors.Errorf("setting temp file mode: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return errors.Errorf("closing temp file: %w", err)
	}

	if err = os.Rename(tempPath, path); err != nil {
		return errors.Errorf("renaming temp file: %w", err)
	}

	logger.Debug().Str("path", path).Int("size", len(content)).Msg("wrote file")
	return nil
}
