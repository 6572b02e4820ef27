package operation

import (
	"context"
	"fmt"
)

// 📥 Pull moves the selected content groups and database from the target
// environment down into the local one.
func (o *Operation) Pull(ctx context.Context) error {
	o.logger.Header(fmt.Sprintf("pulling %s into %s", o.target.Name, o.local.Name))

	for _, g := range o.fileGroups() {
		if err := o.syncGroup(ctx, g, o.target, o.local); err != nil {
			return err
		}
	}
	if o.wantDB() {
		if err := o.moveDatabase(ctx, o.target, o.local); err != nil {
			return err
		}
	}

	if o.opts.DryRun {
		o.logger.Success("dry run complete, nothing was changed")
	} else {
		o.logger.Successf("pull from %s complete", o.target.Name)
	}
	return nil
}
