package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/movesync/cmd/movesync/commands"
	"github.com/walteh/movesync/cmd/movesync/opts"
	"github.com/walteh/movesync/pkg/executil"
	"github.com/walteh/movesync/pkg/log"
)

var (
	// Flags
	configFile string
	debug      bool
)

// newRootCmd wires the shared dependencies and registers every subcommand.
func newRootCmd() *cobra.Command {
	ro := &opts.RootOpts{}

	root := &cobra.Command{
		Use:           "movesync",
		Short:         "Move a site's files and database between environments",
		Long: `Movesync pushes and pulls a site between the environments named in its
movefile: content groups travel over rsync, the database travels as a
compressed dump over ssh, and URLs and paths are rewritten on arrival.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging()
			ro.ConfigPath = configFile
			ro.Logger = log.New(os.Stdout, logLevel())
			ro.Runner = executil.NewLocalRunner()
		},
	}

	root.PersistentFlags().StringVarP(&configFile, "config", "c", "movefile.yml", "movefile path")
	root.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	root.AddCommand(
		commands.NewPushCmd(ro),
		commands.NewPullCmd(ro),
		commands.NewListCmd(ro),
		commands.NewDoctorCmd(ro),
		commands.NewInitCmd(ro),
	)
	return root
}

func logLevel() zerolog.Level {
	if debug {
		return zerolog.DebugLevel
	}
	return zerolog.InfoLevel
}

// setupLogging configures zerolog based on flags
func setupLogging() {
	zerolog.SetGlobalLevel(logLevel())
	l := zerolog.New(os.Stderr).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &l
}
