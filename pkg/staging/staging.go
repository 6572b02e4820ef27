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

// Package staging materializes a temporary, filtered copy of a source tree
// restricted to an explicit file list, used when a push must exclude
// untracked content without relying on the transfer tool's own filtering.
package staging

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 📦 Stage creates a uniquely named temporary directory and copies every
// listed file from sourceRoot into it, preserving relative structure.
// It fails fast, naming the offending path, if a listed file does not exist
// under sourceRoot. The caller owns the returned directory and must run
// Cleanup on every exit path of the enclosing operation.
func Stage(ctx context.Context, sourceRoot string, files []string) (string, error) {
	logger := zerolog.Ctx(ctx)

	dir, err := os.MkdirTemp("", "movesync-staging-")
	if err != nil {
		return "", errors.Errorf("creating staging directory: %w", err)
	}

	for _, rel := range files {
		src := filepath.Join(sourceRoot, filepath.FromSlash(rel))
		info, err := os.Lstat(src)
		if os.IsNotExist(err) {
			return dir, errors.Errorf("staging %q: file not found under %s", rel, sourceRoot)
		}
		if err != nil {
			return dir, errors.Errorf("staging %q: %w", rel, err)
		}
		if info.IsDir() {
			// Directories materialize implicitly through their files.
			continue
		}

		dst := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
			return dir, errors.Errorf("creating parent directories for %q: %w", rel, err)
		}
		if err := copyFile(src, dst, info.Mode()); err != nil {
			return dir, errors.Errorf("staging %q: %w", rel, err)
		}
	}

	logger.Debug().
		Str("staging_dir", dir).
		Int("files", len(files)).
		Msg("staging directory populated")
	return dir, nil
}

// 🧹 Cleanup recursively removes a staging directory. It is idempotent and
// safe to call even if staging partially failed or never started.
func Cleanup(dir string) error {
	if dir == "" {
		return nil
	}
	if err := os.RemoveAll(dir); err != nil {
		return errors.Errorf("removing staging directory: %w", err)
	}
	return nil
}

func copyFile(src, dst string, mode os.FileMode) error {
	source, err := os.Open(src)
	if err != nil {
		return errors.Errorf("opening source file: %w", err)
	}
	defer source.Close()

	destination, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode.Perm())
	if err != nil {
		return errors.Errorf("creating destination file: %w", err)
	}
	defer destination.Close()

	if _, err := io.Copy(destination, source); err != nil {
		return errors.Errorf("copying file: %w", err)
	}
	return nil
}
