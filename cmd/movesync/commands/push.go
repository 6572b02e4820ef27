package commands

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
	"github.com/walteh/movesync/cmd/movesync/opts"
	"github.com/walteh/movesync/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// NewPushCmd creates the push command.
func NewPushCmd(ro *opts.RootOpts) *cobra.Command {
	var (
		sel    selection
		target string
		dryRun bool
		useVCS bool
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "push",
		Short: "Push local content to a remote environment",
		Long: `Push moves the selected content groups and database from the local
environment up to the target. A dry run previews the file plan and the
transfer totals without changing either side.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			mf, err := ro.LoadMovefile(ctx)
			if err != nil {
				return err
			}

			// A protected target asks for explicit confirmation unless the
			// caller already forced or is only previewing.
			env, err := mf.Env(target)
			if err != nil {
				return err
			}
			if env.Protected && !force && !dryRun {
				confirmed := false
				prompt := &survey.Confirm{
					Message: fmt.Sprintf("%q is a protected environment. Push anyway?", target),
				}
				if err := survey.AskOne(prompt, &confirmed); err != nil {
					return errors.Errorf("confirming push: %w", err)
				}
				if !confirmed {
					return errors.Errorf("push to %q cancelled", target)
				}
				force = true
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
				VCS:       useVCS,
				Force:     force,
			})
			if err != nil {
				return err
			}
			return op.Push(ctx)
		},
	}

	cmd.Flags().StringVarP(&target, "environment", "e", "", "target environment")
	_ = cmd.MarkFlagRequired("environment")
	sel.register(cmd)
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "d", false, "preview without changing anything")
	cmd.Flags().BoolVar(&useVCS, "vcs", false, "push only version-controlled files")
	cmd.Flags().BoolVar(&force, "force", false, "push to a protected environment without asking")
	return cmd
}
