package operation

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/movesync/pkg/executil"
)

func TestPushDatabase_CommandSequence(t *testing.T) {
	r := &scriptedRunner{respond: rsyncResponder}
	op, err := New(Options{
		Movefile: testMovefile("/home/me/sites/example"),
		Runner:   r,
		Logger:   testLogger(),
		Target:   "production",
		DB:       true,
	})
	require.NoError(t, err)
	require.NoError(t, op.Push(context.Background()))

	// Backup the remote destination, dump the local source, ship the dump
	// up, import it, then rewrite URLs and paths. Nine commands, in order.
	require.Len(t, r.commands, 9)

	backup := r.commands[0]
	assert.True(t, strings.HasPrefix(backup, "ssh "), backup)
	assert.Contains(t, backup, "mysqldump")
	assert.Contains(t, backup, "app_prod")
	assert.Contains(t, backup, "movesync-backup-production-")

	fetch := r.commands[1]
	assert.True(t, strings.HasPrefix(fetch, "scp -P 22 "), fetch)
	assert.Contains(t, fetch, "deploy@example.com:/tmp/movesync-backup-production-")

	assert.Contains(t, r.commands[2], "rm -f /tmp/movesync-backup-production-")

	localDump := r.commands[3]
	assert.True(t, strings.HasPrefix(localDump, "mysqldump "), localDump)
	assert.Contains(t, localDump, "--single-transaction")
	assert.Contains(t, localDump, "| gzip >")

	upload := r.commands[4]
	assert.True(t, strings.HasPrefix(upload, "scp -P 22 "), upload)
	assert.True(t, strings.Contains(upload, " deploy@example.com:/tmp/movesync-app-"), upload)

	remoteImport := r.commands[5]
	assert.True(t, strings.HasPrefix(remoteImport, "ssh "), remoteImport)
	assert.Contains(t, remoteImport, "gunzip -c")
	assert.Contains(t, remoteImport, "mysql")

	assert.Contains(t, r.commands[6], "rm -f /tmp/movesync-app-")

	vhostRule := r.commands[7]
	assert.True(t, strings.HasPrefix(vhostRule, "ssh "), vhostRule)
	assert.Contains(t, vhostRule, "wp search-replace")
	assert.Contains(t, vhostRule, "http://localhost:8080")
	assert.Contains(t, vhostRule, "https://example.com")
	assert.Contains(t, vhostRule, "--skip-columns=guid")
	assert.Contains(t, vhostRule, "--all-tables")

	pathRule := r.commands[8]
	assert.Contains(t, pathRule, "/home/me/sites/example")
	assert.Contains(t, pathRule, "/var/www/example")
}

func TestPullDatabase_SearchReplaceRunsLocally(t *testing.T) {
	r := &scriptedRunner{respond: rsyncResponder}
	op, err := New(Options{
		Movefile: testMovefile("/home/me/sites/example"),
		Runner:   r,
		Logger:   testLogger(),
		Target:   "production",
		DB:       true,
	})
	require.NoError(t, err)
	require.NoError(t, op.Pull(context.Background()))

	var sr []string
	for _, c := range r.commands {
		if strings.Contains(c, "search-replace") {
			sr = append(sr, c)
		}
	}
	require.Len(t, sr, 2)
	for _, c := range sr {
		assert.True(t, strings.HasPrefix(c, "wp "), "local rewrite must not cross ssh: %s", c)
		assert.Contains(t, c, "--path=/home/me/sites/example")
	}
}

func TestDatabase_FailureStopsTheSequence(t *testing.T) {
	r := &scriptedRunner{respond: func(command string) *executil.Result {
		if strings.Contains(command, "mysqldump") {
			return &executil.Result{ExitCode: 2, Stderr: "Access denied for user"}
		}
		return nil
	}}
	op, err := New(Options{
		Movefile: testMovefile("/src"),
		Runner:   r,
		Logger:   testLogger(),
		Target:   "production",
		DB:       true,
	})
	require.NoError(t, err)

	err = op.Push(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Access denied")
	require.Len(t, r.commands, 1, "nothing may run after the backup dump fails")
}
