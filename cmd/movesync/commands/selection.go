package commands

import "github.com/spf13/cobra"

// selection holds the content-group flags push and pull share.
type selection struct {
	db        bool
	uploads   bool
	themes    bool
	plugins   bool
	languages bool
	core      bool
	all       bool
}

func (s *selection) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&s.db, "db", false, "move the database")
	cmd.Flags().BoolVar(&s.uploads, "uploads", false, "move the uploads group")
	cmd.Flags().BoolVar(&s.themes, "themes", false, "move the themes group")
	cmd.Flags().BoolVar(&s.plugins, "plugins", false, "move the plugins group")
	cmd.Flags().BoolVar(&s.languages, "languages", false, "move the languages group")
	cmd.Flags().BoolVar(&s.core, "core", false, "move the application core")
	cmd.Flags().BoolVar(&s.all, "all", false, "move everything")
}
