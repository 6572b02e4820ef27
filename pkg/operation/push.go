package operation

import (
	"context"
	"fmt"

	"gitlab.com/tozd/go/errors"
)

// 🚀 Push moves the selected content groups and database from the local
// environment to the target.
func (o *Operation) Push(ctx context.Context) error {
	if o.target.Protected && !o.opts.Force && !o.opts.DryRun {
		return errors.Errorf("environment %q is protected; pass --force to push to it", o.target.Name)
	}

	o.logger.Header(fmt.Sprintf("pushing %s to %s", o.local.Name, o.target.Name))

	for _, g := range o.fileGroups() {
		if err := o.syncGroup(ctx, g, o.local, o.target); err != nil {
			return err
		}
	}
	if o.wantDB() {
		if err := o.moveDatabase(ctx, o.local, o.target); err != nil {
			return err
		}
	}

	if o.opts.DryRun {
		o.logger.Success("dry run complete, nothing was changed")
	} else {
		o.logger.Successf("push to %s complete", o.target.Name)
	}
	return nil
}
