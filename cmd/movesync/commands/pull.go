package commands

import (
	"github.com/spf13/cobra"
	"github.com/walteh/movesync/cmd/movesync/opts"
	"github.com/walteh/movesync/pkg/operation"
)

// NewPullCmd creates the pull command.
func NewPullCmd(ro *opts.RootOpts) *cobra.Command {
	var (
		sel    selection
		target string
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "pull",
		Short: "Pull remote content into the local environment",
		Long: `Pull moves the selected content groups and database from the target
environment down into the local one, rewriting URLs and paths so the
site works locally.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			mf, err := ro.LoadMovefile(ctx)
			if err != nil {
				return err
			}

			op, err := operation.New(operation.Options{
				Movefile:  mf,
				Runner:    ro.Runner,
				Logger:    ro.Logger,
				Target:    target,
				DB:        sel.db,
				Uploads:   sel.uploads,
				Themes:    sel.themes,
				Plugins:   sel.plugins,
				Languages: sel.languages,
				Core:      sel.core,
				All:       sel.all,
				DryRun:    dryRun,
			})
			if err != nil {
				return err
			}
			return op.Pull(ctx)
		},
	}

	cmd.Flags().StringVarP(&target, "environment", "e", "", "environment to pull from")
	_ = cmd.MarkFlagRequired("environment")
	sel.register(cmd)
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "d", false, "preview without changing anything")
	return cmd
}
