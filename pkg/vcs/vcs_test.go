package vcs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/movesync/pkg/executil"
)

// fakeRunner returns canned results and records the command it was given.
type fakeRunner struct {
	result  *executil.Result
	err     error
	command string
}

func (f *fakeRunner) Run(_ context.Context, command string) (*executil.Result, error) {
	f.command = command
	return f.result, f.err
}

func TestTrackedFiles(t *testing.T) {
	r := &fakeRunner{result: &executil.Result{
		Stdout: "index.php\x00wp-content/themes/mytheme/style.css\x00file with spaces.txt\x00",
	}}

	files, err := TrackedFiles(context.Background(), r, "/var/www/example")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"index.php",
		"wp-content/themes/mytheme/style.css",
		"file with spaces.txt",
	}, files)
	assert.Equal(t, "git -C /var/www/example ls-files -z", r.command)
}

func TestTrackedFiles_GitFailure(t *testing.T) {
	r := &fakeRunner{result: &executil.Result{
		ExitCode: 128,
		Stderr:   "fatal: not a git repository\n",
	}}

	_, err := TrackedFiles(context.Background(), r, "/tmp/nowhere")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a git repository")
}

func TestTrackedFiles_EmptyRepository(t *testing.T) {
	r := &fakeRunner{result: &executil.Result{Stdout: ""}}

	files, err := TrackedFiles(context.Background(), r, "/var/www/example")
	require.NoError(t, err)
	assert.Empty(t, files)
}
