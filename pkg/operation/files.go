package operation

import (
	"context"
	"path"

	"github.com/walteh/movesync/pkg/cmdbuild"
	"github.com/walteh/movesync/pkg/config"
	"github.com/walteh/movesync/pkg/preview"
	"github.com/walteh/movesync/pkg/staging"
	"github.com/walteh/movesync/pkg/stats"
	"github.com/walteh/movesync/pkg/vcs"
	"gitlab.com/tozd/go/errors"
)

// syncGroup moves one content group from one environment to the other.
// Exactly one transfer subprocess runs; statistics are parsed only after
// it has fully exited.
func (o *Operation) syncGroup(ctx context.Context, g Group, from, to *config.Environment) error {
	o.logger.Taskf("syncing %s", g.describe())

	excludes := append(o.opts.Movefile.MergedExcludes(to), g.Excludes...)
	source := path.Join(groupRoot(from, g), g.Rel)
	dest := path.Join(groupRoot(to, g), g.Rel)

	// A push restricted to version-controlled files syncs from an
	// ephemeral staging tree instead of the live source. Cleanup is
	// deferred so the directory is released on every exit path.
	if o.opts.VCS && !from.IsRemote() {
		tracked, err := vcs.TrackedFiles(ctx, o.runner, source)
		if err != nil {
			return err
		}
		staged, err := staging.Stage(ctx, source, tracked)
		defer func() {
			if cerr := staging.Cleanup(staged); cerr != nil {
				o.logger.Warningf("leaving staging directory %s behind: %v", staged, cerr)
			}
		}()
		if err != nil {
			return err
		}
		source = staged
	}

	if o.opts.DryRun && !from.IsRemote() {
		entries, err := preview.Scan(source, preview.Options{Excludes: excludes})
		if err != nil {
			return errors.Errorf("previewing %s: %w", g.describe(), err)
		}
		o.logger.Plan(entries)
	}

	req := cmdbuild.Rsync{
		Source:       source + "/",
		Dest:         dest,
		SourceRemote: remoteFor(from),
		DestRemote:   remoteFor(to),
		Excludes:     excludes,
		DryRun:       o.opts.DryRun,
		Stats:        true,
		Itemize:      o.opts.DryRun,
	}
	command, err := req.Build()
	if err != nil {
		return err
	}

	res, err := o.run(ctx, command, "rsync "+g.describe())
	if err != nil {
		return err
	}

	st, ok := stats.ParseStats(res.Stdout)
	if !ok {
		// The transfer itself succeeded; missing statistics are not fatal.
		o.logger.Note("Transfer statistics unavailable.")
		return nil
	}

	var sum *stats.DryRunSummary
	if o.opts.DryRun {
		s := stats.ParseDryRunSummary(res.Stdout)
		sum = &s
	}
	for _, line := range stats.FormatNoteLines(st, sum, o.opts.DryRun) {
		o.logger.Note(line)
	}
	return nil
}
