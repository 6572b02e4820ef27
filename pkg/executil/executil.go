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

// Package executil is the only place movesync spawns processes. Everything
// above it hands over a fully built command line and receives exit status
// plus captured output once the process has fully exited; there is no
// streaming of partial progress.
package executil

import (
	"context"
	"io"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// 📦 Result holds the outcome of one subprocess run.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// 🏃 Runner executes a fully built command line. Run blocks until the
// process exits; a non-zero exit status is reported through Result, not
// through the error, so callers decide what failure means for them.
type Runner interface {
	Run(ctx context.Context, command string) (*Result, error)
}

// 🖥️ LocalRunner runs commands through the local shell.
type LocalRunner struct {
	Shell string // Defaults to "sh"
}

// NewLocalRunner creates a runner using the default shell.
func NewLocalRunner() *LocalRunner {
	return &LocalRunner{}
}

// Run implements Runner.
func (r *LocalRunner) Run(ctx context.Context, command string) (*Result, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("command", command).Msg("running subprocess")

	shell := r.Shell
	if shell == "" {
		shell = "sh"
	}

	cmd := exec.CommandContext(ctx, shell, "-c", command)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, errors.Errorf("opening stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, errors.Errorf("opening stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, errors.Errorf("starting command: %w", err)
	}

	// Both pipes must be drained concurrently or a chatty process can
	// deadlock against a full pipe buffer.
	var outBuf, errBuf strings.Builder
	g := new(errgroup.Group)
	g.Go(func() error {
		_, err := io.Copy(&outBuf, stdout)
		return err
	})
	g.Go(func() error {
		_, err := io.Copy(&errBuf, stderr)
		return err
	})
	pumpErr := g.Wait()
	waitErr := cmd.Wait()

	if pumpErr != nil {
		return nil, errors.Errorf("reading command output: %w", pumpErr)
	}

	result := &Result{
		Stdout:   outBuf.String(),
		Stderr:   errBuf.String(),
		ExitCode: cmd.ProcessState.ExitCode(),
	}

	var exitErr *exec.ExitError
	if waitErr != nil && !errors.As(waitErr, &exitErr) {
		return nil, errors.Errorf("waiting for command: %w", waitErr)
	}
	if ctx.Err() != nil {
		return result, errors.Errorf("command interrupted: %w", ctx.Err())
	}

	logger.Debug().
		Int("exit_code", result.ExitCode).
		Int("stdout_bytes", len(result.Stdout)).
		Int("stderr_bytes", len(result.Stderr)).
		Msg("subprocess finished")
	return result, nil
}
