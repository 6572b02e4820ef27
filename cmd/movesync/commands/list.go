package commands

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/walteh/movesync/cmd/movesync/opts"
)

// NewListCmd creates the list command.
func NewListCmd(ro *opts.RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the environments defined in the movefile",
		RunE: func(cmd *cobra.Command, args []string) error {
			mf, err := ro.LoadMovefile(cmd.Context())
			if err != nil {
				return err
			}

			data := pterm.TableData{{"NAME", "VHOST", "PATH", "SSH", "PROTECTED"}}
			for _, name := range mf.EnvNames() {
				env := mf.Environments[name]

				ssh := "-"
				if env.IsRemote() {
					ssh = env.SSH.Host
					if env.SSH.User != "" {
						ssh = env.SSH.User + "@" + ssh
					}
					if env.SSH.Port != 0 {
						ssh = fmt.Sprintf("%s:%d", ssh, env.SSH.Port)
					}
				}

				protected := ""
				if env.Protected {
					protected = "yes"
				}

				data = append(data, []string{name, env.Vhost, env.Path, ssh, protected})
			}

			return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
		},
	}
}
