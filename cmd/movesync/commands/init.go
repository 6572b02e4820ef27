package commands

import (
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/walteh/movesync/cmd/movesync/opts"
	"gitlab.com/tozd/go/errors"
)

const sampleMovefile = `# movesync configuration.
# Values interpolate environment variables as ${VAR}.

exclude:
  - ".git/"
  - ".DS_Store"
  - "node_modules/"

environments:
  local:
    vhost: "http://localhost:8080"
    path: "/home/you/sites/example"
    database:
      name: "example"
      user: "root"
      password: "${LOCAL_DB_PASSWORD}"
      host: "127.0.0.1"

  production:
    vhost: "https://example.com"
    path: "/var/www/example"
    protected: true
    database:
      name: "example_production"
      user: "deploy"
      password: "${PRODUCTION_DB_PASSWORD}"
      host: "127.0.0.1"
    ssh:
      host: "example.com"
      user: "deploy"
      port: 22
`

// NewInitCmd creates the init command.
func NewInitCmd(ro *opts.RootOpts) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a commented sample movefile",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ro.ConfigPath

			if _, err := os.Stat(path); err == nil && !force {
				return errors.Errorf("%s already exists; pass --force to overwrite it", path)
			}
			if err := os.WriteFile(path, []byte(sampleMovefile), 0o644); err != nil {
				return errors.Errorf("writing %s: %w", path, err)
			}

			pterm.Success.Printfln("wrote %s; edit it to match your environments", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing movefile")
	return cmd
}
