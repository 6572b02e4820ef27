// Package vcs is the version-control collaborator: it answers exactly one
// question, which relative paths under a root are tracked. The staging
// service uses the answer to keep untracked content out of a push.
package vcs

import (
	"context"
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/walteh/movesync/pkg/executil"
	"gitlab.com/tozd/go/errors"
)

// 🔍 TrackedFiles returns the flat list of git-tracked relative paths under
// root. Output is NUL-delimited so paths with unusual characters survive.
func TrackedFiles(ctx context.Context, r executil.Runner, root string) ([]string, error) {
	command := shellquote.Join("git", "-C", root, "ls-files", "-z")

	res, err := r.Run(ctx, command)
	if err != nil {
		return nil, errors.Errorf("listing tracked files: %w", err)
	}
	if res.ExitCode != 0 {
		return nil, errors.Errorf("listing tracked files under %s: %s",
			root, strings.TrimSpace(res.Stderr))
	}

	var files []string
	for _, f := range strings.Split(res.Stdout, "\x00") {
		if f != "" {
			files = append(files, f)
		}
	}
	return files, nil
}
