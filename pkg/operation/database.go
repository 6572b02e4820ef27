package operation

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/kballard/go-shellquote"
	"github.com/walteh/movesync/pkg/cmdbuild"
	"github.com/walteh/movesync/pkg/config"
	"github.com/walteh/movesync/pkg/replace"
)

// remoteTmpDir is where dump files live on a remote host while in transit.
const remoteTmpDir = "/tmp"

// moveDatabase exports the source database, transfers the dump, imports it
// into the destination, and rewrites URLs and paths there. The destination
// database is backed up locally first so a bad move can be undone by hand.
func (o *Operation) moveDatabase(ctx context.Context, from, to *config.Environment) error {
	o.logger.Taskf("moving database %s to %s", from.Database.Name, to.Name)

	if o.opts.DryRun {
		rules, err := replace.Rules(from, to)
		if err != nil {
			return err
		}
		o.logger.Note(fmt.Sprintf("Would import %s into %s and rewrite %d URL/path pair(s).",
			from.Database.Name, to.Database.Name, len(rules)))
		return nil
	}

	stamp := time.Now().Format("20060102150405")

	backupPath := filepath.Join(os.TempDir(),
		fmt.Sprintf("movesync-backup-%s-%s.sql.gz", to.Name, stamp))
	if err := o.dumpDatabase(ctx, to, backupPath); err != nil {
		return err
	}
	o.logger.Note(fmt.Sprintf("Destination database backed up to %s.", backupPath))

	dumpPath := filepath.Join(os.TempDir(),
		fmt.Sprintf("movesync-%s-%s.sql.gz", from.Database.Name, stamp))
	if err := o.dumpDatabase(ctx, from, dumpPath); err != nil {
		return err
	}
	defer os.Remove(dumpPath)

	if err := o.importDatabase(ctx, to, dumpPath); err != nil {
		return err
	}

	return o.searchReplace(ctx, from, to)
}

// dumpDatabase exports env's database, compressed, to the local localPath.
// A remote environment dumps to its own tmp first, then the file travels
// down over scp and the remote copy is removed.
func (o *Operation) dumpDatabase(ctx context.Context, env *config.Environment, localPath string) error {
	if !env.IsRemote() {
		dump := cmdbuild.Mysqldump{DB: dbFor(env), OutputPath: localPath, Compress: true}
		command, err := dump.Build()
		if err != nil {
			return err
		}
		_, err = o.run(ctx, command, "mysqldump "+env.Database.Name)
		return err
	}

	remotePath := path.Join(remoteTmpDir, filepath.Base(localPath))
	dump := cmdbuild.Mysqldump{DB: dbFor(env), OutputPath: remotePath, Compress: true}
	inner, err := dump.Build()
	if err != nil {
		return err
	}
	command, err := cmdbuild.SSHExec{Remote: remoteFor(env), Command: inner}.Build()
	if err != nil {
		return err
	}
	if _, err := o.run(ctx, command, "remote mysqldump "+env.Database.Name); err != nil {
		return err
	}

	fetch := cmdbuild.SCP{
		Remote:     remoteFor(env),
		LocalPath:  localPath,
		RemotePath: remotePath,
		Direction:  cmdbuild.Download,
	}
	command, err = fetch.Build()
	if err != nil {
		return err
	}
	if _, err := o.run(ctx, command, "fetching database dump"); err != nil {
		return err
	}

	return o.removeRemote(ctx, env, remotePath)
}

// importDatabase loads the local dump at localPath into env's database.
func (o *Operation) importDatabase(ctx context.Context, env *config.Environment, localPath string) error {
	if !env.IsRemote() {
		imp := cmdbuild.MysqlImport{DB: dbFor(env), InputPath: localPath, Compressed: true}
		command, err := imp.Build()
		if err != nil {
			return err
		}
		_, err = o.run(ctx, command, "mysql import "+env.Database.Name)
		return err
	}

	remotePath := path.Join(remoteTmpDir, filepath.Base(localPath))
	push := cmdbuild.SCP{
		Remote:     remoteFor(env),
		LocalPath:  localPath,
		RemotePath: remotePath,
		Direction:  cmdbuild.Upload,
	}
	command, err := push.Build()
	if err != nil {
		return err
	}
	if _, err := o.run(ctx, command, "uploading database dump"); err != nil {
		return err
	}

	imp := cmdbuild.MysqlImport{DB: dbFor(env), InputPath: remotePath, Compressed: true}
	inner, err := imp.Build()
	if err != nil {
		return err
	}
	command, err = cmdbuild.SSHExec{Remote: remoteFor(env), Command: inner}.Build()
	if err != nil {
		return err
	}
	if _, err := o.run(ctx, command, "remote mysql import "+env.Database.Name); err != nil {
		return err
	}

	return o.removeRemote(ctx, env, remotePath)
}

// searchReplace rewrites source URLs and paths inside the destination
// database, one rule at a time, on whichever side the destination lives.
func (o *Operation) searchReplace(ctx context.Context, from, to *config.Environment) error {
	rules, err := replace.Rules(from, to)
	if err != nil {
		return err
	}

	for _, rule := range rules {
		sr := cmdbuild.SearchReplace{Path: to.Path, From: rule.From, To: rule.To}
		command, err := sr.Build()
		if err != nil {
			return err
		}
		if to.IsRemote() {
			command, err = cmdbuild.SSHExec{Remote: remoteFor(to), Command: command}.Build()
			if err != nil {
				return err
			}
		}
		if _, err := o.run(ctx, command, fmt.Sprintf("search-replace %s", rule.From)); err != nil {
			return err
		}
		o.logger.Note(fmt.Sprintf("Replaced %s with %s.", rule.From, rule.To))
	}
	return nil
}

// removeRemote deletes a transient file on env's remote side.
func (o *Operation) removeRemote(ctx context.Context, env *config.Environment, remotePath string) error {
	command, err := cmdbuild.SSHExec{
		Remote:  remoteFor(env),
		Command: shellquote.Join("rm", "-f", remotePath),
	}.Build()
	if err != nil {
		return err
	}
	_, err = o.run(ctx, command, "removing remote dump")
	return err
}
